package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
	"github.com/yourusername/fantasy-api/internal/handler/dto"
	"github.com/yourusername/fantasy-api/internal/middleware"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
	"github.com/yourusername/fantasy-api/internal/service"
)

// BossHandler обрабатывает запросы, связанные с боссами
type BossHandler struct {
	bossService      *service.BossService
	challengeService *service.ChallengeService
	settingsService  *service.SettingsService
	cooldown         *middleware.CooldownGuard
}

// NewBossHandler создает новый обработчик боссов
func NewBossHandler(
	bossService *service.BossService,
	challengeService *service.ChallengeService,
	settingsService *service.SettingsService,
	cooldown *middleware.CooldownGuard,
) *BossHandler {
	return &BossHandler{
		bossService:      bossService,
		challengeService: challengeService,
		settingsService:  settingsService,
		cooldown:         cooldown,
	}
}

// PlayerRequest представляет игрока в запросе атаки
type PlayerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Position string `json:"position" binding:"required,oneof=GK DF MF FW"`
	Level    int    `json:"level" binding:"required,min=1,max=200"`
	Attack   int    `json:"attack" binding:"min=0,max=1000"`
	Defense  int    `json:"defense" binding:"min=0,max=1000"`
	Stamina  int    `json:"stamina" binding:"min=0,max=1000"`
}

// ChallengeRequest представляет запрос на атаку босса
type ChallengeRequest struct {
	TeamID   uint            `json:"team_id" binding:"required"`
	TeamName string          `json:"team_name" binding:"required,min=1,max=100"`
	Players  []PlayerRequest `json:"players" binding:"required,min=1,max=30"`
	Lineup   []string        `json:"lineup,omitempty"`
}

// ChallengeBoss обрабатывает попытку атаки команды на босса
func (h *BossHandler) ChallengeBoss(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attacker := entity.Roster{
		TeamName:  req.TeamName,
		Formation: entity.Formation{Lineup: req.Lineup},
		Players:   make([]entity.Player, 0, len(req.Players)),
	}
	for _, p := range req.Players {
		attacker.Players = append(attacker.Players, entity.Player{
			Name:     p.Name,
			Position: p.Position,
			Level:    p.Level,
			Attack:   p.Attack,
			Defense:  p.Defense,
			Stamina:  p.Stamina,
		})
	}

	// Кулдаун резервируем до атаки и снимаем, если попытка не применилась.
	// Это UX-ограничение; корректность босса от него не зависит.
	reserved := false
	if settings, err := h.settingsService.Get(); err == nil {
		if window := settings.CooldownWindow(); window > 0 && h.cooldown != nil {
			allowed, retryAfter := h.cooldown.Acquire(bossID, req.TeamID, window)
			if !allowed {
				c.Header("Retry-After", strconv.Itoa(retryAfter))
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":       "Team is on cooldown for this boss. Please try again later.",
					"error_type":  "cooldown",
					"retry_after": retryAfter,
				})
				return
			}
			reserved = true
		}
	} else {
		log.Printf("[BossHandler] Не удалось получить настройки для кулдауна: %v", err)
	}

	outcome, err := h.challengeService.Challenge(bossID, req.TeamID, req.TeamName, attacker)
	if err != nil {
		if reserved {
			h.cooldown.Release(bossID, req.TeamID)
		}
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetBoss возвращает информацию о боссе
func (h *BossHandler) GetBoss(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	boss, err := h.bossService.GetBossByID(bossID)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBossResponse(boss, false))
}

// GetActiveBoss возвращает информацию о текущем активном боссе
func (h *BossHandler) GetActiveBoss(c *gin.Context) {
	boss, err := h.bossService.GetActiveBoss()
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBossResponse(boss, false))
}

// ListBosses возвращает список боссов с фильтрацией и пагинацией
func (h *BossHandler) ListBosses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filters := repository.BossFilters{
		Status:     c.Query("status"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
	}

	bosses, total, err := h.bossService.ListBosses(page, pageSize, filters)
	if err != nil {
		log.Printf("[BossHandler] Ошибка при получении списка боссов: %v", err)
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedBossResponse(bosses, total, page, pageSize))
}

// GetLeaderboard возвращает лидерборд босса
func (h *BossHandler) GetLeaderboard(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	participants, err := h.bossService.GetLeaderboard(bossID, limit)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLeaderboardResponse(bossID, participants))
}

// GetParticipant возвращает запись участника для пары (босс, команда)
func (h *BossHandler) GetParticipant(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint)
	teamID := c.MustGet("teamID").(uint)

	participant, err := h.bossService.GetParticipant(bossID, teamID)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewParticipantResponse(participant))
}

// CreateBossRequest представляет запрос на создание босса
type CreateBossRequest struct {
	Name        string         `json:"name" binding:"required,min=3,max=100"`
	Description string         `json:"description" binding:"omitempty,max=500"`
	ImageRef    string         `json:"image_ref" binding:"omitempty,max=255"`
	MaxHP       int            `json:"max_hp" binding:"required,min=1"`
	Difficulty  string         `json:"difficulty" binding:"required,oneof=easy normal hard nightmare"`
	Roster      *entity.Roster `json:"roster,omitempty"` // Опционально, иначе генерируется
}

// CreateBoss обрабатывает запрос на создание босса
func (h *BossHandler) CreateBoss(c *gin.Context) {
	var req CreateBossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boss, err := h.bossService.CreateBoss(req.Name, req.Description, req.ImageRef, req.MaxHP, req.Difficulty, req.Roster)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBossResponse(boss, true))
}

// DeleteBoss обрабатывает запрос на удаление босса
func (h *BossHandler) DeleteBoss(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	if err := h.bossService.DeleteBoss(bossID); err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Boss deleted successfully"})
}

// ResetBoss обрабатывает запрос на сброс босса к исходному состоянию
func (h *BossHandler) ResetBoss(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	boss, err := h.bossService.ResetBoss(bossID)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBossResponse(boss, true))
}

// VerifyLedger возвращает сверку агрегатов босса с журналом участников
func (h *BossHandler) VerifyLedger(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	check, err := h.bossService.VerifyLedger(bossID)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

// handleBossError обрабатывает ошибки сервисов и возвращает соответствующий HTTP-статус
func (h *BossHandler) handleBossError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, repository.ErrBossNotActive) || errors.Is(err, repository.ErrBossAlreadyDefeated) || errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, service.ErrFeatureDisabled) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	} else if errors.Is(err, service.ErrResolverFailure) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in BossHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
