package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
)

// SettingsService — процесс-уровневый кеш рантайм-настроек боевой системы.
// Настройки загружаются лениво при первом обращении и далее читаются из
// памяти; устаревшие чтения между Refresh/Update допустимы — это UX-рубильник,
// а не инвариант безопасности.
type SettingsService struct {
	repo repository.SettingsRepository

	mu     sync.RWMutex
	cached *entity.GameSettings
}

// NewSettingsService создает новый сервис настроек
func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get возвращает текущие настройки (копию), загружая их при первом вызове
func (s *SettingsService) Get() (entity.GameSettings, error) {
	s.mu.RLock()
	if s.cached != nil {
		settings := *s.cached
		s.mu.RUnlock()
		return settings, nil
	}
	s.mu.RUnlock()

	return s.Refresh()
}

// Refresh перечитывает настройки из хранилища и обновляет кеш
func (s *SettingsService) Refresh() (entity.GameSettings, error) {
	settings, err := s.repo.Get()
	if err != nil {
		return entity.GameSettings{}, fmt.Errorf("refresh game settings failed: %w", err)
	}

	s.mu.Lock()
	s.cached = settings
	s.mu.Unlock()

	log.Printf("[SettingsService] Настройки загружены: enabled=%t rewards=%t cooldown=%t (%dч)",
		settings.Enabled, settings.RewardsEnabled, settings.CooldownEnabled, settings.CooldownHours)
	return *settings, nil
}

// Update сохраняет настройки и обновляет кеш
func (s *SettingsService) Update(settings entity.GameSettings) (entity.GameSettings, error) {
	if settings.CooldownHours < 0 {
		settings.CooldownHours = 0
	}

	if err := s.repo.Save(&settings); err != nil {
		return entity.GameSettings{}, fmt.Errorf("save game settings failed: %w", err)
	}

	s.mu.Lock()
	s.cached = &settings
	s.mu.Unlock()

	log.Printf("[SettingsService] Настройки обновлены: enabled=%t rewards=%t cooldown=%t (%dч)",
		settings.Enabled, settings.RewardsEnabled, settings.CooldownEnabled, settings.CooldownHours)
	return settings, nil
}
