package repository

import (
	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// SettingsRepository определяет методы для работы с рантайм-настройками
type SettingsRepository interface {
	// Get возвращает строку настроек, создавая её со значениями
	// по умолчанию при первом обращении.
	Get() (*entity.GameSettings, error)
	Save(settings *entity.GameSettings) error
}
