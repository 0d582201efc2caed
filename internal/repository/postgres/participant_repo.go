package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
)

// ParticipantRepo реализует repository.ParticipantRepository
type ParticipantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo создает новый репозиторий участников
func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// RecordAttempt добавляет попытку в запись участника (upsert).
// Сначала пробуем UPDATE с атомарными инкрементами; если строки ещё нет —
// INSERT. Гонку двух первых попыток одной команды разруливает уникальный
// индекс (boss_id, team_id): проигравший INSERT получает 23505 и повторяет
// UPDATE. Урон из конкурирующих попыток просто суммируется.
func (r *ParticipantRepo) RecordAttempt(record repository.AttemptRecord) (bool, error) {
	updates := map[string]interface{}{
		"total_damage":      gorm.Expr("total_damage + ?", record.Damage),
		"attempts":          gorm.Expr("attempts + ?", 1),
		"last_attempt_at":   record.AttemptAt,
		"last_match_result": record.MatchResult,
	}

	result := r.db.Model(&entity.BossParticipant{}).
		Where("boss_id = ? AND team_id = ?", record.BossID, record.TeamID).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("record attempt for boss #%d team #%d failed: %w", record.BossID, record.TeamID, result.Error)
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	participant := &entity.BossParticipant{
		BossID:          record.BossID,
		TeamID:          record.TeamID,
		TeamName:        record.TeamName,
		TotalDamage:     record.Damage,
		Attempts:        1,
		LastAttemptAt:   record.AttemptAt,
		LastMatchResult: record.MatchResult,
	}

	if err := r.db.Create(participant).Error; err != nil {
		if isUniqueViolation(err) {
			// Конкурирующая первая попытка той же команды успела раньше —
			// докатываем нашу попытку обычным UPDATE.
			log.Printf("[ParticipantRepo] Конкурентная первая попытка для boss=%d team=%d, повторяем UPDATE", record.BossID, record.TeamID)
			retry := r.db.Model(&entity.BossParticipant{}).
				Where("boss_id = ? AND team_id = ?", record.BossID, record.TeamID).
				Updates(updates)
			if retry.Error != nil {
				return false, fmt.Errorf("retry record attempt for boss #%d team #%d failed: %w", record.BossID, record.TeamID, retry.Error)
			}
			return false, nil
		}
		return false, fmt.Errorf("create participant for boss #%d team #%d failed: %w", record.BossID, record.TeamID, err)
	}

	return true, nil
}

// GetByBossAndTeam возвращает запись участника для пары (босс, команда)
func (r *ParticipantRepo) GetByBossAndTeam(bossID, teamID uint) (*entity.BossParticipant, error) {
	var participant entity.BossParticipant
	err := r.db.Where("boss_id = ? AND team_id = ?", bossID, teamID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// TopDamagers возвращает участников босса по убыванию урона.
// Вторичная сортировка по id ASC даёт стабильный порядок при равном уроне
// (кто раньше появился в журнале — тот выше).
func (r *ParticipantRepo) TopDamagers(bossID uint, limit int) ([]entity.BossParticipant, error) {
	var participants []entity.BossParticipant
	err := r.db.Where("boss_id = ?", bossID).
		Order("total_damage DESC, id ASC").
		Limit(limit).
		Find(&participants).Error
	// Пустой слайс — валидный результат, ErrRecordNotFound здесь не бывает
	return participants, err
}

// CountByBoss возвращает количество участников босса
func (r *ParticipantRepo) CountByBoss(bossID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.BossParticipant{}).
		Where("boss_id = ?", bossID).
		Count(&count).Error
	return count, err
}

// SumDamageByBoss возвращает суммарный урон всех участников босса.
// Используется админкой для сверки с boss.total_damage.
func (r *ParticipantRepo) SumDamageByBoss(bossID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&entity.BossParticipant{}).
		Where("boss_id = ?", bossID).
		Select("COALESCE(SUM(total_damage), 0)").
		Scan(&sum).Error
	return sum, err
}

// DeleteByBoss удаляет все записи участников босса.
// Вызывается только при удалении самого босса.
func (r *ParticipantRepo) DeleteByBoss(bossID uint) error {
	return r.db.Where("boss_id = ?", bossID).
		Delete(&entity.BossParticipant{}).Error
}
