package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/service"
)

// SettingsHandler обрабатывает запросы к рантайм-настройкам боевой системы
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings возвращает текущие настройки боевой системы
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		log.Printf("[SettingsHandler] Ошибка получения настроек: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// RefreshSettings принудительно перечитывает настройки из хранилища
func (h *SettingsHandler) RefreshSettings(c *gin.Context) {
	settings, err := h.settingsService.Refresh()
	if err != nil {
		log.Printf("[SettingsHandler] Ошибка обновления настроек: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettingsRequest представляет запрос на изменение настроек
type UpdateSettingsRequest struct {
	Enabled         *bool `json:"enabled" binding:"required"`
	RewardsEnabled  *bool `json:"rewards_enabled" binding:"required"`
	CooldownEnabled *bool `json:"cooldown_enabled" binding:"required"`
	CooldownHours   int   `json:"cooldown_hours" binding:"min=0,max=168"`
}

// UpdateSettings сохраняет настройки и обновляет процесс-уровневый кеш
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsService.Update(entity.GameSettings{
		Enabled:         *req.Enabled,
		RewardsEnabled:  *req.RewardsEnabled,
		CooldownEnabled: *req.CooldownEnabled,
		CooldownHours:   req.CooldownHours,
	})
	if err != nil {
		log.Printf("[SettingsHandler] Ошибка сохранения настроек: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
