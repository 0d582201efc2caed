package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
	"github.com/yourusername/fantasy-api/internal/service/bossbattle"
)

// ChallengeOutcome — итог одной попытки атаки на босса
type ChallengeOutcome struct {
	AttemptID string                 `json:"attempt_id"`
	Damage    int                    `json:"damage"`
	NewHP     int                    `json:"new_hp"`
	Defeated  bool                   `json:"is_defeated"`
	Match     bossbattle.MatchResult `json:"match_outcome"`
	// LedgerWarning заполняется, если попытка применена к боссу, но запись
	// в журнал участников не удалась. Для клиента это не ошибка.
	LedgerWarning string `json:"ledger_warning,omitempty"`
}

// RewardDistributor — хук раздачи наград после победы над боссом.
// Вызывается ровно один раз на босса, только из попытки, выполнившей
// переход active → defeated.
type RewardDistributor interface {
	DistributeBossRewards(boss *entity.Boss) error
}

// ChallengeService координирует одну попытку атаки от начала до конца:
// загрузка босса, валидация, подготовка состава, симуляция матча,
// атомарное применение урона, журнал участников, хук наград.
type ChallengeService struct {
	bossRepo        repository.BossRepository
	participantRepo repository.ParticipantRepository
	settings        *SettingsService
	resolver        bossbattle.MatchResolver
	rewards         RewardDistributor
}

// NewChallengeService создает новый сервис атак.
// resolver внедряется при сборке и никогда не подменяется на лету.
func NewChallengeService(
	bossRepo repository.BossRepository,
	participantRepo repository.ParticipantRepository,
	settings *SettingsService,
	resolver bossbattle.MatchResolver,
	rewards RewardDistributor,
) *ChallengeService {
	return &ChallengeService{
		bossRepo:        bossRepo,
		participantRepo: participantRepo,
		settings:        settings,
		resolver:        resolver,
		rewards:         rewards,
	}
}

// Challenge выполняет одну попытку атаки команды на босса.
//
// Предварительные проверки статуса — быстрый отказ для UX, взаимное
// исключение они не дают: босса могут изменить между проверкой и записью.
// Корректность целиком обеспечивает атомарный ApplyDamage.
func (s *ChallengeService) Challenge(bossID uint, teamID uint, teamName string, attacker entity.Roster) (*ChallengeOutcome, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	if !settings.Enabled {
		return nil, ErrFeatureDisabled
	}

	if err := bossbattle.ValidateRoster(attacker); err != nil {
		return nil, err
	}

	boss, err := s.bossRepo.GetByID(bossID)
	if err != nil {
		return nil, err
	}
	if boss.IsDefeated() {
		return nil, fmt.Errorf("%w: boss #%d", repository.ErrBossAlreadyDefeated, bossID)
	}
	if !boss.IsActive() {
		return nil, fmt.Errorf("%w: boss #%d has status %q", repository.ErrBossNotActive, bossID, boss.Status)
	}
	if boss.CurrentHP <= 0 {
		return nil, fmt.Errorf("%w: boss #%d", repository.ErrBossAlreadyDefeated, bossID)
	}

	attemptID := uuid.NewString()

	// Состав босса готовится производной копией: бонус уровня и форма
	// применяются к этому матчу, сохранённый состав не мутируется.
	opposing := bossbattle.PrepareForMatch(boss.OpposingRoster, boss.DifficultyModifiers)

	match, err := s.resolver.Resolve(attacker, opposing)
	if err != nil {
		// До ApplyDamage босс не тронут; клиент может отправить новую попытку.
		log.Printf("[ChallengeService] attempt=%s: симуляция матча для boss=%d team=%d не удалась: %v", attemptID, bossID, teamID, err)
		return nil, fmt.Errorf("%w: %v", ErrResolverFailure, err)
	}

	damage := match.Damage()

	applied, err := s.bossRepo.ApplyDamage(bossID, damage)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) ||
			errors.Is(err, repository.ErrBossNotActive) ||
			errors.Is(err, repository.ErrBossAlreadyDefeated) {
			return nil, err
		}
		// Любой другой сбой на атомарном шаге — хранилище недоступно;
		// босс остался в состоянии до попытки.
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	outcome := &ChallengeOutcome{
		AttemptID: attemptID,
		Damage:    damage,
		NewHP:     applied.NewHP,
		Defeated:  applied.Defeated,
		Match:     match,
	}

	// Журнал участников — после коммита по боссу. Сбой здесь не отменяет
	// попытку: агрегаты босса уже долговечны, запись участника догонит
	// следующая попытка команды.
	created, err := s.participantRepo.RecordAttempt(repository.AttemptRecord{
		BossID:      bossID,
		TeamID:      teamID,
		TeamName:    teamName,
		Damage:      damage,
		MatchResult: match.String(),
		AttemptAt:   time.Now(),
	})
	if err != nil {
		log.Printf("[ChallengeService] attempt=%s: запись в журнал участников boss=%d team=%d не удалась: %v", attemptID, bossID, teamID, err)
		outcome.LedgerWarning = "attempt applied, but participant ledger update failed"
	} else if created {
		// Счётчик участников инкрементируется отдельным best-effort шагом:
		// при падении между коммитом и этим инкрементом допускаем недосчёт.
		if err := s.bossRepo.IncrementParticipants(bossID, 1); err != nil {
			log.Printf("[ChallengeService] attempt=%s: инкремент total_participants для boss=%d не удался: %v", attemptID, bossID, err)
		}
	}

	if applied.Defeated {
		log.Printf("[ChallengeService] attempt=%s: босс #%d повержен командой #%d (%s), урон %d", attemptID, bossID, teamID, teamName, damage)
		s.runDefeatHook(bossID, settings)
	}

	return outcome, nil
}

// runDefeatHook вызывает раздачу наград после свежего перехода в defeated.
// Вызывающий гарантирует, что переход выполнила именно эта попытка.
func (s *ChallengeService) runDefeatHook(bossID uint, settings entity.GameSettings) {
	if !settings.RewardsEnabled {
		log.Printf("[ChallengeService] Награды выключены, пропускаем раздачу для boss=%d", bossID)
		return
	}
	if s.rewards == nil {
		return
	}

	boss, err := s.bossRepo.GetByID(bossID)
	if err != nil {
		log.Printf("[ChallengeService] Не удалось перечитать босса #%d для раздачи наград: %v", bossID, err)
		return
	}

	if err := s.rewards.DistributeBossRewards(boss); err != nil {
		log.Printf("[ChallengeService] Раздача наград для босса #%d не удалась: %v", bossID, err)
	}
}
