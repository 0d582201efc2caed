package bossbattle

import (
	"fmt"
	"math"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
)

// Базовые характеристики сгенерированных игроков босса по позициям.
// Минимальный валидный состав: вратарь, два защитника, два полузащитника,
// один нападающий.
type rosterSlot struct {
	name     string
	position string
	attack   int
	defense  int
	stamina  int
}

const baseLevel = 10

var bossRosterTemplate = []rosterSlot{
	{"Страж ворот", entity.PositionGoalkeeper, 20, 80, 60},
	{"Левый бастион", entity.PositionDefender, 35, 70, 65},
	{"Правый бастион", entity.PositionDefender, 35, 70, 65},
	{"Разыгрывающий", entity.PositionMidfielder, 55, 55, 70},
	{"Диспетчер", entity.PositionMidfielder, 55, 55, 70},
	{"Таран", entity.PositionForward, 80, 30, 65},
}

// GenerateRoster строит синтетический состав босса для заданной сложности.
// Характеристики масштабируются StatMultiplier с округлением вниз;
// уровни остаются базовыми — бонус уровня добавляется позже,
// в PrepareForMatch, чтобы не применять его дважды.
// Детерминирована: одинаковая сложность даёт одинаковый состав.
func GenerateRoster(difficulty string) entity.Roster {
	profile := ProfileFor(difficulty)

	players := make([]entity.Player, 0, len(bossRosterTemplate))
	lineup := make([]string, 0, len(bossRosterTemplate))
	for _, slot := range bossRosterTemplate {
		players = append(players, entity.Player{
			Name:     slot.name,
			Position: slot.position,
			Level:    baseLevel,
			Attack:   int(math.Floor(float64(slot.attack) * profile.StatMultiplier)),
			Defense:  int(math.Floor(float64(slot.defense) * profile.StatMultiplier)),
			Stamina:  int(math.Floor(float64(slot.stamina) * profile.StatMultiplier)),
		})
		lineup = append(lineup, slot.name)
	}

	return entity.Roster{
		TeamName:  fmt.Sprintf("Босс (%s)", difficulty),
		Players:   players,
		Formation: entity.Formation{Lineup: lineup},
	}
}

// PrepareForMatch возвращает производную копию состава для одного матча:
// каждому игроку добавляется бонус уровня и выставляется модификатор формы.
// Исходный состав не мутируется — состав босса переиспользуется
// многими вызовами.
func PrepareForMatch(roster entity.Roster, modifiers entity.DifficultyModifiers) entity.Roster {
	prepared := roster.Clone()
	for i := range prepared.Players {
		prepared.Players[i].Level += modifiers.LevelBonus
		prepared.Players[i].FormModifier = modifiers.FormBonus
	}
	return prepared
}

// ValidateRoster проверяет, что состав удовлетворяет минимальному контракту
// симулятора матчей: непустой, по одному игроку на каждую обязательную позицию.
func ValidateRoster(roster entity.Roster) error {
	if len(roster.Players) == 0 {
		return fmt.Errorf("%w: roster has no players", apperrors.ErrValidation)
	}
	required := []string{
		entity.PositionGoalkeeper,
		entity.PositionDefender,
		entity.PositionMidfielder,
		entity.PositionForward,
	}
	for _, position := range required {
		if !roster.HasPosition(position) {
			return fmt.Errorf("%w: roster is missing position %s", apperrors.ErrValidation, position)
		}
	}
	return nil
}
