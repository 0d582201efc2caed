package bossbattle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
)

func TestGenerateRoster_Deterministic(t *testing.T) {
	// Одна сложность — один и тот же состав
	first := GenerateRoster(entity.BossDifficultyHard)
	second := GenerateRoster(entity.BossDifficultyHard)

	assert.Equal(t, first, second, "GenerateRoster должна быть детерминированной")
}

func TestGenerateRoster_ValidAndComplete(t *testing.T) {
	for _, difficulty := range []string{
		entity.BossDifficultyEasy,
		entity.BossDifficultyNormal,
		entity.BossDifficultyHard,
		entity.BossDifficultyNightmare,
	} {
		roster := GenerateRoster(difficulty)

		require.NoError(t, ValidateRoster(roster), "Сгенерированный состав (%s) должен проходить валидацию", difficulty)
		assert.Len(t, roster.Players, 6)
		assert.Len(t, roster.Formation.Lineup, 6)
	}
}

func TestGenerateRoster_StatsScaleLevelsDoNot(t *testing.T) {
	// Arrange
	easy := GenerateRoster(entity.BossDifficultyEasy)
	nightmare := GenerateRoster(entity.BossDifficultyNightmare)

	// Assert: характеристики масштабируются множителем сложности
	assert.Greater(t, nightmare.Players[0].Defense, easy.Players[0].Defense,
		"Характеристики nightmare-состава должны быть выше easy")

	// Assert: уровни остаются базовыми — бонус уровня добавляет PrepareForMatch
	for i := range nightmare.Players {
		assert.Equal(t, easy.Players[i].Level, nightmare.Players[i].Level,
			"Уровень игрока не должен зависеть от сложности при генерации")
	}
}

func TestPrepareForMatch_AppliesBonusOnce(t *testing.T) {
	// Arrange
	stored := GenerateRoster(entity.BossDifficultyNightmare)
	baseLevels := make([]int, len(stored.Players))
	for i, p := range stored.Players {
		baseLevels[i] = p.Level
	}
	modifiers := ProfileFor(entity.BossDifficultyNightmare)

	// Act
	prepared := PrepareForMatch(stored, modifiers)

	// Assert: бонус уровня применён ровно один раз
	for i, p := range prepared.Players {
		assert.Equal(t, baseLevels[i]+modifiers.LevelBonus, p.Level,
			"Уровень игрока %d должен вырасти ровно на LevelBonus", i)
		assert.Equal(t, modifiers.FormBonus, p.FormModifier)
	}
}

func TestPrepareForMatch_DoesNotMutateStoredRoster(t *testing.T) {
	// Arrange
	stored := GenerateRoster(entity.BossDifficultyHard)
	snapshot := stored.Clone()
	modifiers := ProfileFor(entity.BossDifficultyHard)

	// Act: готовим состав к матчу дважды подряд
	PrepareForMatch(stored, modifiers)
	PrepareForMatch(stored, modifiers)

	// Assert: сохранённый состав не изменился — бонус не накапливается
	assert.Equal(t, snapshot, stored, "PrepareForMatch не должна мутировать сохранённый состав")
}

func TestValidateRoster_MissingPosition(t *testing.T) {
	// Состав без вратаря
	roster := entity.Roster{Players: []entity.Player{
		{Name: "DF", Position: entity.PositionDefender},
		{Name: "MF", Position: entity.PositionMidfielder},
		{Name: "FW", Position: entity.PositionForward},
	}}

	err := ValidateRoster(roster)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateRoster_EmptyRoster(t *testing.T) {
	err := ValidateRoster(entity.Roster{})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
