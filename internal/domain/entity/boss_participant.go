package entity

import (
	"time"
)

// BossParticipant — накопительная запись урона одной команды по одному боссу.
// Одна строка на пару (босс, команда); урон и попытки только растут.
type BossParticipant struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BossID          uint      `gorm:"not null;index;uniqueIndex:idx_boss_participant" json:"boss_id"`
	TeamID          uint      `gorm:"not null;uniqueIndex:idx_boss_participant" json:"team_id"`
	TeamName        string    `gorm:"size:100;not null" json:"team_name"`
	TotalDamage     int       `gorm:"not null;default:0" json:"total_damage"`
	Attempts        int       `gorm:"not null;default:0" json:"attempts"`
	LastAttemptAt   time.Time `json:"last_attempt_at"`
	LastMatchResult string    `gorm:"size:20;not null;default:''" json:"last_match_result"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (BossParticipant) TableName() string {
	return "boss_participants"
}

// AverageDamage возвращает средний урон за попытку
func (p *BossParticipant) AverageDamage() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.TotalDamage) / float64(p.Attempts)
}
