package repository

import (
	"time"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// AttemptRecord — данные одной попытки для записи в журнал участников
type AttemptRecord struct {
	BossID      uint
	TeamID      uint
	TeamName    string
	Damage      int
	MatchResult string
	AttemptAt   time.Time
}

// ParticipantRepository определяет методы для работы с журналом участников
type ParticipantRepository interface {
	// RecordAttempt добавляет попытку в запись участника (upsert):
	// инкрементирует total_damage и attempts, перезаписывает
	// last_attempt_at / last_match_result. Возвращает created == true,
	// если запись для этой пары (босс, команда) создана впервые.
	RecordAttempt(record AttemptRecord) (created bool, err error)
	GetByBossAndTeam(bossID, teamID uint) (*entity.BossParticipant, error)
	// TopDamagers возвращает участников босса по убыванию урона;
	// при равном уроне — в порядке появления записи.
	TopDamagers(bossID uint, limit int) ([]entity.BossParticipant, error)
	CountByBoss(bossID uint) (int64, error)
	// SumDamageByBoss возвращает суммарный урон всех участников босса
	SumDamageByBoss(bossID uint) (int64, error)
	DeleteByBoss(bossID uint) error
}
