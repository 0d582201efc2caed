package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// SettingsRepo реализует repository.SettingsRepository
type SettingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo создает новый репозиторий настроек
func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get возвращает строку настроек, создавая её со значениями по умолчанию
// при первом обращении. Настройки живут одной строкой с id=1.
func (r *SettingsRepo) Get() (*entity.GameSettings, error) {
	var settings entity.GameSettings
	err := r.db.First(&settings, 1).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load game settings failed: %w", err)
	}

	settings = entity.GameSettings{
		ID:             1,
		Enabled:        true,
		RewardsEnabled: true,
	}
	if err := r.db.Create(&settings).Error; err != nil {
		if isUniqueViolation(err) {
			// Конкурентная инициализация — строка уже есть, перечитываем
			if err := r.db.First(&settings, 1).Error; err != nil {
				return nil, fmt.Errorf("reload game settings failed: %w", err)
			}
			return &settings, nil
		}
		return nil, fmt.Errorf("init game settings failed: %w", err)
	}
	return &settings, nil
}

// Save сохраняет настройки
func (r *SettingsRepo) Save(settings *entity.GameSettings) error {
	settings.ID = 1
	return r.db.Save(settings).Error
}
