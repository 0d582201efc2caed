package entity

import (
	"time"
)

// GameSettings — единственная строка с рантайм-настройками боевой системы.
// Редактируется из админки без передеплоя; сервисы читают кешированную копию.
type GameSettings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Enabled         bool      `gorm:"not null;default:true" json:"enabled"`
	RewardsEnabled  bool      `gorm:"not null;default:true" json:"rewards_enabled"`
	CooldownEnabled bool      `gorm:"not null;default:false" json:"cooldown_enabled"`
	CooldownHours   int       `gorm:"not null;default:0" json:"cooldown_hours"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (GameSettings) TableName() string {
	return "game_settings"
}

// CooldownWindow возвращает длительность кулдауна между попытками одной команды.
// 0 — кулдаун выключен.
func (s *GameSettings) CooldownWindow() time.Duration {
	if !s.CooldownEnabled || s.CooldownHours <= 0 {
		return 0
	}
	return time.Duration(s.CooldownHours) * time.Hour
}
