package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы статусов босса
const (
	BossStatusActive     = "active"
	BossStatusDefeated   = "defeated"
	BossStatusTerminated = "terminated"
)

// Константы уровней сложности босса
const (
	BossDifficultyEasy      = "easy"
	BossDifficultyNormal    = "normal"
	BossDifficultyHard      = "hard"
	BossDifficultyNightmare = "nightmare"
)

// DifficultyModifiers — снимок модификаторов сложности на момент создания босса.
// Хранится в JSONB, чтобы последующие правки профилей сложности
// не влияли на уже созданных боссов.
type DifficultyModifiers struct {
	LevelBonus     int     `json:"level_bonus"`
	FormBonus      float64 `json:"form_bonus"`
	StatMultiplier float64 `json:"stat_multiplier"`
}

// Scan реализует интерфейс sql.Scanner для DifficultyModifiers
func (m *DifficultyModifiers) Scan(value interface{}) error {
	if value == nil {
		*m = DifficultyModifiers{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = DifficultyModifiers{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для DifficultyModifiers
func (m DifficultyModifiers) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Boss представляет одного рейдового босса с общим пулом здоровья
type Boss struct {
	ID                  uint                `gorm:"primaryKey" json:"id"`
	Name                string              `gorm:"size:100;not null" json:"name"`
	Description         string              `gorm:"size:500;not null;default:''" json:"description"`
	ImageRef            string              `gorm:"size:255;not null;default:''" json:"image_ref"`
	Status              string              `gorm:"size:20;not null;default:'active';index" json:"status"`
	MaxHP               int                 `gorm:"not null" json:"max_hp"`
	CurrentHP           int                 `gorm:"not null" json:"current_hp"`
	Difficulty          string              `gorm:"size:20;not null;default:'normal'" json:"difficulty"`
	DifficultyModifiers DifficultyModifiers `gorm:"type:jsonb;not null" json:"difficulty_modifiers"`
	OpposingRoster      Roster              `gorm:"type:jsonb;not null" json:"opposing_roster"`
	TotalDamage         int                 `gorm:"not null;default:0" json:"total_damage"`
	TotalParticipants   int                 `gorm:"not null;default:0" json:"total_participants"`
	TotalAttempts       int                 `gorm:"not null;default:0" json:"total_attempts"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	DefeatedAt          *time.Time          `json:"defeated_at,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Boss) TableName() string {
	return "bosses"
}

// IsActive проверяет, доступен ли босс для атак
func (b *Boss) IsActive() bool {
	return b.Status == BossStatusActive
}

// IsDefeated проверяет, побеждён ли босс
func (b *Boss) IsDefeated() bool {
	return b.Status == BossStatusDefeated
}

// IsTerminated проверяет, снят ли босс администратором
func (b *Boss) IsTerminated() bool {
	return b.Status == BossStatusTerminated
}

// HPPercent возвращает остаток здоровья в процентах (0-100)
func (b *Boss) HPPercent() int {
	if b.MaxHP <= 0 {
		return 0
	}
	return b.CurrentHP * 100 / b.MaxHP
}

// IsValidBossDifficulty проверяет, что difficulty — один из четырёх уровней
func IsValidBossDifficulty(difficulty string) bool {
	switch difficulty {
	case BossDifficultyEasy, BossDifficultyNormal, BossDifficultyHard, BossDifficultyNightmare:
		return true
	}
	return false
}
