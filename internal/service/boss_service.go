package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
	"github.com/yourusername/fantasy-api/internal/service/bossbattle"
)

// BossService предоставляет методы для работы с боссами:
// административный жизненный цикл и read-only проекции (лидерборд).
type BossService struct {
	bossRepo        repository.BossRepository
	participantRepo repository.ParticipantRepository
	cacheRepo       repository.CacheRepository
	config          *bossbattle.Config
}

// NewBossService создает новый сервис боссов
func NewBossService(
	bossRepo repository.BossRepository,
	participantRepo repository.ParticipantRepository,
	cacheRepo repository.CacheRepository,
	config *bossbattle.Config,
) *BossService {
	return &BossService{
		bossRepo:        bossRepo,
		participantRepo: participantRepo,
		cacheRepo:       cacheRepo,
		config:          config,
	}
}

// CreateBoss создает нового босса. Модификаторы сложности снимаются
// снимком на момент создания; состав генерируется, если не передан.
func (s *BossService) CreateBoss(name, description, imageRef string, maxHP int, difficulty string, roster *entity.Roster) (*entity.Boss, error) {
	if maxHP <= 0 {
		return nil, fmt.Errorf("%w: max_hp must be positive", apperrors.ErrValidation)
	}
	if maxHP > s.config.MaxBossHP {
		return nil, fmt.Errorf("%w: max_hp exceeds limit %d", apperrors.ErrValidation, s.config.MaxBossHP)
	}
	if !entity.IsValidBossDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, difficulty)
	}

	var opposing entity.Roster
	if roster != nil {
		if err := bossbattle.ValidateRoster(*roster); err != nil {
			return nil, err
		}
		opposing = *roster
	} else {
		opposing = bossbattle.GenerateRoster(difficulty)
	}

	boss := &entity.Boss{
		Name:                name,
		Description:         description,
		ImageRef:            imageRef,
		Status:              entity.BossStatusActive,
		MaxHP:               maxHP,
		CurrentHP:           maxHP,
		Difficulty:          difficulty,
		DifficultyModifiers: bossbattle.ProfileFor(difficulty),
		OpposingRoster:      opposing,
	}

	if err := s.bossRepo.Create(boss); err != nil {
		return nil, fmt.Errorf("failed to create boss: %w", err)
	}

	log.Printf("[BossService] Создан босс #%d %q (difficulty=%s, hp=%d)", boss.ID, boss.Name, boss.Difficulty, boss.MaxHP)
	return boss, nil
}

// GetBossByID возвращает босса по ID
func (s *BossService) GetBossByID(bossID uint) (*entity.Boss, error) {
	return s.bossRepo.GetByID(bossID)
}

// GetActiveBoss возвращает самого свежего активного босса
func (s *BossService) GetActiveBoss() (*entity.Boss, error) {
	return s.bossRepo.GetActive()
}

// ListBosses возвращает список боссов с фильтрацией и пагинацией
func (s *BossService) ListBosses(page, pageSize int, filters repository.BossFilters) ([]entity.Boss, int64, error) {
	offset := (page - 1) * pageSize
	return s.bossRepo.ListWithFilters(filters, pageSize, offset)
}

// DeleteBoss удаляет босса вместе с журналом его участников
func (s *BossService) DeleteBoss(bossID uint) error {
	if _, err := s.bossRepo.GetByID(bossID); err != nil {
		return err
	}

	if err := s.participantRepo.DeleteByBoss(bossID); err != nil {
		return fmt.Errorf("failed to delete participants of boss #%d: %w", bossID, err)
	}
	if err := s.bossRepo.Delete(bossID); err != nil {
		return fmt.Errorf("failed to delete boss #%d: %w", bossID, err)
	}

	s.invalidateLeaderboard(bossID)
	log.Printf("[BossService] Босс #%d удалён вместе с журналом участников", bossID)
	return nil
}

// ResetBoss возвращает босса к исходному состоянию.
// Журнал участников сохраняется: лидерборд — «зал славы», переживающий сброс,
// поэтому суммарный урон участников может превышать max_hp босса.
func (s *BossService) ResetBoss(bossID uint) (*entity.Boss, error) {
	if err := s.bossRepo.Reset(bossID); err != nil {
		return nil, err
	}

	log.Printf("[BossService] Босс #%d сброшен к исходному состоянию", bossID)
	return s.bossRepo.GetByID(bossID)
}

// GetLeaderboard возвращает топ участников босса по убыванию урона.
// Снапшот кешируется с коротким TTL: лидерборд — eventually-consistent
// проекция, транзакционное чтение вместе с атакой не требуется.
func (s *BossService) GetLeaderboard(bossID uint, limit int) ([]entity.BossParticipant, error) {
	if limit <= 0 {
		limit = s.config.DefaultLeaderboardLimit
	}
	if limit > s.config.MaxLeaderboardLimit {
		limit = s.config.MaxLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("boss:%d:leaderboard:%d", bossID, limit)

	if s.cacheRepo != nil {
		var cached []entity.BossParticipant
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[BossService] Ошибка чтения лидерборда из кеша (boss=%d): %v", bossID, err)
		}
	}

	participants, err := s.participantRepo.TopDamagers(bossID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard for boss #%d: %w", bossID, err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, participants, s.config.LeaderboardCacheTTL); err != nil {
			log.Printf("[BossService] Ошибка записи лидерборда в кеш (boss=%d): %v", bossID, err)
		}
	}

	return participants, nil
}

// ExportLeaderboard возвращает полный журнал участников босса без кеша.
// Используется админской выгрузкой файлов.
func (s *BossService) ExportLeaderboard(bossID uint) ([]entity.BossParticipant, error) {
	count, err := s.participantRepo.CountByBoss(bossID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants for boss #%d: %w", bossID, err)
	}
	return s.participantRepo.TopDamagers(bossID, int(count))
}

// GetParticipant возвращает запись участника для пары (босс, команда)
func (s *BossService) GetParticipant(bossID, teamID uint) (*entity.BossParticipant, error) {
	return s.participantRepo.GetByBossAndTeam(bossID, teamID)
}

// LedgerCheck — сверка агрегатов босса с журналом участников
type LedgerCheck struct {
	BossTotalDamage   int   `json:"boss_total_damage"`
	ParticipantsTotal int64 `json:"participants_total_damage"`
	BossParticipants  int   `json:"boss_total_participants"`
	ParticipantsCount int64 `json:"participants_count"`
	Consistent        bool  `json:"consistent"`
}

// VerifyLedger сверяет счётчики босса с журналом участников.
// Админская диагностика: после сброса босса расхождение ожидаемо,
// т.к. журнал переживает сброс.
func (s *BossService) VerifyLedger(bossID uint) (*LedgerCheck, error) {
	boss, err := s.bossRepo.GetByID(bossID)
	if err != nil {
		return nil, err
	}

	sum, err := s.participantRepo.SumDamageByBoss(bossID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum participant damage for boss #%d: %w", bossID, err)
	}
	count, err := s.participantRepo.CountByBoss(bossID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants for boss #%d: %w", bossID, err)
	}

	return &LedgerCheck{
		BossTotalDamage:   boss.TotalDamage,
		ParticipantsTotal: sum,
		BossParticipants:  boss.TotalParticipants,
		ParticipantsCount: count,
		Consistent:        int64(boss.TotalDamage) == sum && int64(boss.TotalParticipants) == count,
	}, nil
}

// invalidateLeaderboard сбрасывает кешированные снапшоты лидерборда босса
func (s *BossService) invalidateLeaderboard(bossID uint) {
	if s.cacheRepo == nil {
		return
	}
	// Ключи содержат limit, поэтому чистим только типовые значения;
	// остальные истекут по TTL.
	for _, limit := range []int{s.config.DefaultLeaderboardLimit, s.config.MaxLeaderboardLimit} {
		key := fmt.Sprintf("boss:%d:leaderboard:%d", bossID, limit)
		if err := s.cacheRepo.Delete(key); err != nil {
			log.Printf("[BossService] Не удалось сбросить кеш %s: %v", key, err)
		}
	}
}
