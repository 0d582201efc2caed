package matchsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/service/bossbattle"
)

func balancedRoster(name string) entity.Roster {
	return entity.Roster{
		TeamName: name,
		Players: []entity.Player{
			{Name: "GK", Position: entity.PositionGoalkeeper, Level: 10, Attack: 20, Defense: 80, Stamina: 60},
			{Name: "DF1", Position: entity.PositionDefender, Level: 10, Attack: 35, Defense: 70, Stamina: 65},
			{Name: "DF2", Position: entity.PositionDefender, Level: 10, Attack: 35, Defense: 70, Stamina: 65},
			{Name: "MF1", Position: entity.PositionMidfielder, Level: 10, Attack: 55, Defense: 55, Stamina: 70},
			{Name: "MF2", Position: entity.PositionMidfielder, Level: 10, Attack: 55, Defense: 55, Stamina: 70},
			{Name: "FW", Position: entity.PositionForward, Level: 10, Attack: 80, Defense: 30, Stamina: 65},
		},
	}
}

func TestEngine_Resolve_SeededIsReproducible(t *testing.T) {
	// Один seed — одна последовательность исходов
	first := NewEngine(42)
	second := NewEngine(42)

	a := balancedRoster("A")
	b := balancedRoster("B")

	for i := 0; i < 5; i++ {
		r1, err1 := first.Resolve(a, b)
		r2, err2 := second.Resolve(a, b)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, r1, r2, "Симуляция %d с одинаковым seed должна совпадать", i)
	}
}

func TestEngine_Resolve_ScoreBounds(t *testing.T) {
	engine := NewEngine(7)
	a := balancedRoster("A")
	b := balancedRoster("B")

	// Десять моментов на сторону — счёт всегда в [0, 10]
	for i := 0; i < 100; i++ {
		result, err := engine.Resolve(a, b)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.GoalsFor, 0)
		assert.LessOrEqual(t, result.GoalsFor, 10)
		assert.GreaterOrEqual(t, result.GoalsAgainst, 0)
		assert.LessOrEqual(t, result.GoalsAgainst, 10)
		assert.GreaterOrEqual(t, result.Damage(), 0, "Урон не может быть отрицательным")
	}
}

func TestEngine_Resolve_StrongerTeamScoresMore(t *testing.T) {
	engine := NewEngine(2026)

	weak := balancedRoster("Слабые")
	strong := balancedRoster("Сильные")
	for i := range strong.Players {
		strong.Players[i].Attack *= 3
		strong.Players[i].Level += 10
	}

	// Агрегируем по многим матчам: преимущество статистическое, не пер-матчевое
	strongGoals, weakGoals := 0, 0
	for i := 0; i < 200; i++ {
		result, err := engine.Resolve(strong, weak)
		require.NoError(t, err)
		strongGoals += result.GoalsFor
		weakGoals += result.GoalsAgainst
	}

	assert.Greater(t, strongGoals, weakGoals, "Сильная команда должна забивать больше на дистанции")
}

func TestEngine_Resolve_EmptyRosterRejected(t *testing.T) {
	engine := NewEngine(1)

	_, err := engine.Resolve(entity.Roster{}, balancedRoster("B"))
	assert.Error(t, err, "Пустой состав атакующего должен отклоняться")

	_, err = engine.Resolve(balancedRoster("A"), entity.Roster{})
	assert.Error(t, err, "Пустой состав защищающегося должен отклоняться")
}

func TestEngine_ImplementsMatchResolver(t *testing.T) {
	var _ bossbattle.MatchResolver = NewEngine(0)
}
