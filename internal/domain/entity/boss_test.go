package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoss_StatusChecks(t *testing.T) {
	// Arrange
	active := &Boss{Status: BossStatusActive}
	defeated := &Boss{Status: BossStatusDefeated}
	terminated := &Boss{Status: BossStatusTerminated}

	// Act & Assert
	assert.True(t, active.IsActive(), "Босс в статусе active должен быть активен")
	assert.False(t, active.IsDefeated())
	assert.False(t, active.IsTerminated())

	assert.True(t, defeated.IsDefeated(), "Босс в статусе defeated должен быть повержен")
	assert.False(t, defeated.IsActive())

	assert.True(t, terminated.IsTerminated(), "Босс в статусе terminated должен быть снят")
	assert.False(t, terminated.IsActive())
}

func TestBoss_HPPercent(t *testing.T) {
	// Arrange & Act & Assert
	boss := &Boss{MaxHP: 1000, CurrentHP: 1000}
	assert.Equal(t, 100, boss.HPPercent(), "Полное здоровье — 100%")

	boss.CurrentHP = 250
	assert.Equal(t, 25, boss.HPPercent())

	boss.CurrentHP = 0
	assert.Equal(t, 0, boss.HPPercent(), "Ноль здоровья — 0%")

	// Некорректный max_hp не должен приводить к делению на ноль
	broken := &Boss{MaxHP: 0, CurrentHP: 0}
	assert.Equal(t, 0, broken.HPPercent())
}

func TestIsValidBossDifficulty(t *testing.T) {
	assert.True(t, IsValidBossDifficulty(BossDifficultyEasy))
	assert.True(t, IsValidBossDifficulty(BossDifficultyNormal))
	assert.True(t, IsValidBossDifficulty(BossDifficultyHard))
	assert.True(t, IsValidBossDifficulty(BossDifficultyNightmare))

	assert.False(t, IsValidBossDifficulty(""), "Пустая сложность невалидна")
	assert.False(t, IsValidBossDifficulty("impossible"), "Неизвестная сложность невалидна")
	assert.False(t, IsValidBossDifficulty("Easy"), "Сложность чувствительна к регистру")
}

func TestDifficultyModifiers_ScanValue(t *testing.T) {
	// Arrange
	original := DifficultyModifiers{
		LevelBonus:     5,
		FormBonus:      0.2,
		StatMultiplier: 1.35,
	}

	// Act: сериализуем как JSONB
	value, err := original.Value()
	require.NoError(t, err)

	// Act: читаем обратно
	var restored DifficultyModifiers
	err = restored.Scan(value)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestDifficultyModifiers_Scan_Nil(t *testing.T) {
	var m DifficultyModifiers
	err := m.Scan(nil)

	require.NoError(t, err)
	assert.Equal(t, DifficultyModifiers{}, m, "nil из базы должен давать нулевые модификаторы")
}

func TestDifficultyModifiers_Scan_InvalidType(t *testing.T) {
	var m DifficultyModifiers
	err := m.Scan("not bytes")

	assert.Error(t, err, "Scan должен отклонять значения, не являющиеся []byte")
}

func TestGameSettings_CooldownWindow(t *testing.T) {
	// Кулдаун включён
	enabled := &GameSettings{CooldownEnabled: true, CooldownHours: 12}
	assert.Equal(t, 12*time.Hour, enabled.CooldownWindow())

	// Рубильник выключен — окно нулевое независимо от часов
	disabled := &GameSettings{CooldownEnabled: false, CooldownHours: 12}
	assert.Equal(t, time.Duration(0), disabled.CooldownWindow())

	// Ноль часов — кулдауна нет даже при включённом рубильнике
	zeroHours := &GameSettings{CooldownEnabled: true, CooldownHours: 0}
	assert.Equal(t, time.Duration(0), zeroHours.CooldownWindow())
}

func TestBossParticipant_AverageDamage(t *testing.T) {
	participant := &BossParticipant{TotalDamage: 10, Attempts: 4}
	assert.InDelta(t, 2.5, participant.AverageDamage(), 0.0001)

	// Без попыток среднее равно нулю, а не NaN
	fresh := &BossParticipant{}
	assert.Equal(t, float64(0), fresh.AverageDamage())
}
