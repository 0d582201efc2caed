package bossbattle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

func TestProfileFor_KnownDifficulties(t *testing.T) {
	easy := ProfileFor(entity.BossDifficultyEasy)
	assert.Equal(t, 1, easy.LevelBonus)
	assert.Equal(t, 1.0, easy.StatMultiplier)

	nightmare := ProfileFor(entity.BossDifficultyNightmare)
	assert.Equal(t, 8, nightmare.LevelBonus)
	assert.Equal(t, 1.6, nightmare.StatMultiplier)
}

func TestProfileFor_UnknownFallsBackToNormal(t *testing.T) {
	unknown := ProfileFor("impossible")
	normal := ProfileFor(entity.BossDifficultyNormal)

	assert.Equal(t, normal, unknown, "Неизвестная сложность должна трактоваться как normal")
}

func TestProfileFor_StrictlyIncreasing(t *testing.T) {
	// Уровни сложности должны строго возрастать по бонусу уровня и множителю
	order := []string{
		entity.BossDifficultyEasy,
		entity.BossDifficultyNormal,
		entity.BossDifficultyHard,
		entity.BossDifficultyNightmare,
	}

	for i := 1; i < len(order); i++ {
		prev := ProfileFor(order[i-1])
		curr := ProfileFor(order[i])

		assert.Greater(t, curr.LevelBonus, prev.LevelBonus,
			"LevelBonus должен строго расти от %s к %s", order[i-1], order[i])
		assert.Greater(t, curr.StatMultiplier, prev.StatMultiplier,
			"StatMultiplier должен строго расти от %s к %s", order[i-1], order[i])
	}
}
