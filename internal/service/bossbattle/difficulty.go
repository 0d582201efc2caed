package bossbattle

import (
	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// Профили сложности боссов. Четыре фиксированных уровня со строго
// возрастающими LevelBonus и StatMultiplier. Профиль фиксируется
// снимком в боссе при создании — правка этих значений не влияет
// на уже созданных боссов.
var difficultyProfiles = map[string]entity.DifficultyModifiers{
	entity.BossDifficultyEasy: {
		LevelBonus:     1,
		FormBonus:      0.0,
		StatMultiplier: 1.0,
	},
	entity.BossDifficultyNormal: {
		LevelBonus:     3,
		FormBonus:      0.1,
		StatMultiplier: 1.15,
	},
	entity.BossDifficultyHard: {
		LevelBonus:     5,
		FormBonus:      0.2,
		StatMultiplier: 1.35,
	},
	entity.BossDifficultyNightmare: {
		LevelBonus:     8,
		FormBonus:      0.3,
		StatMultiplier: 1.6,
	},
}

// ProfileFor возвращает модификаторы для уровня сложности.
// Неизвестный уровень трактуется как normal.
func ProfileFor(difficulty string) entity.DifficultyModifiers {
	if profile, ok := difficultyProfiles[difficulty]; ok {
		return profile
	}
	return difficultyProfiles[entity.BossDifficultyNormal]
}
