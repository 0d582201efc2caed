package service

import (
	"fmt"
	"log"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
)

// RewardService — базовая реализация RewardDistributor.
// Начисление валюты ведёт отдельная биллинговая подсистема; здесь только
// фиксируем факт победы и состав получателей в журнале процесса.
type RewardService struct {
	participantRepo repository.ParticipantRepository
}

// NewRewardService создает новый сервис наград
func NewRewardService(participantRepo repository.ParticipantRepository) *RewardService {
	return &RewardService{participantRepo: participantRepo}
}

// DistributeBossRewards раздаёт награды участникам поверженного босса.
// Вызывается ровно один раз — из попытки, выполнившей переход в defeated.
func (s *RewardService) DistributeBossRewards(boss *entity.Boss) error {
	// total_participants может недосчитывать (best-effort инкремент),
	// поэтому берём журнал с запасом.
	participants, err := s.participantRepo.TopDamagers(boss.ID, 1000)
	if err != nil {
		return fmt.Errorf("failed to load participants for boss #%d rewards: %w", boss.ID, err)
	}

	if len(participants) == 0 {
		log.Printf("[RewardService] Босс #%d повержен без записей в журнале участников", boss.ID)
		return nil
	}

	for i, p := range participants {
		share := 0.0
		if boss.TotalDamage > 0 {
			share = float64(p.TotalDamage) / float64(boss.TotalDamage)
		}
		log.Printf("[RewardService] Босс #%d: место %d — команда #%d (%s), урон %d (%.1f%%)",
			boss.ID, i+1, p.TeamID, p.TeamName, p.TotalDamage, share*100)
	}

	log.Printf("[RewardService] Награды за босса #%d зафиксированы для %d команд", boss.ID, len(participants))
	return nil
}
