package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/domain/repository"
	apperrors "github.com/yourusername/fantasy-api/internal/pkg/errors"
)

// BossRepo реализует repository.BossRepository
type BossRepo struct {
	db *gorm.DB
}

// NewBossRepo создает новый репозиторий боссов
func NewBossRepo(db *gorm.DB) *BossRepo {
	return &BossRepo{db: db}
}

// Create создает нового босса
func (r *BossRepo) Create(boss *entity.Boss) error {
	return r.db.Create(boss).Error
}

// GetByID возвращает босса по ID
func (r *BossRepo) GetByID(id uint) (*entity.Boss, error) {
	var boss entity.Boss
	err := r.db.First(&boss, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &boss, nil
}

// GetActive возвращает самого свежего активного босса
func (r *BossRepo) GetActive() (*entity.Boss, error) {
	var boss entity.Boss
	err := r.db.Where("status = ?", entity.BossStatusActive).
		Order("created_at DESC").
		First(&boss).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &boss, nil
}

// ListWithFilters возвращает список боссов с фильтрами и total count
func (r *BossRepo) ListWithFilters(filters repository.BossFilters, limit, offset int) ([]entity.Boss, int64, error) {
	var bosses []entity.Boss
	var total int64

	query := r.db.Model(&entity.Boss{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}

	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("id DESC").Find(&bosses).Error
	if err != nil {
		return nil, 0, err
	}

	return bosses, total, nil
}

// ApplyDamage атомарно применяет урон к боссу.
// Читает строку босса под блокировкой FOR UPDATE, пересчитывает current_hp
// (не ниже нуля), инкрементирует total_damage и total_attempts тем же UPDATE.
// Переход active → defeated и установка defeated_at происходят в той же
// транзакции, поэтому срабатывают максимум один раз на босса: конкурирующий
// вызов увидит status=defeated и получит repository.ErrBossNotActive.
func (r *BossRepo) ApplyDamage(bossID uint, damage int) (*repository.DamageApplied, error) {
	if damage < 0 {
		return nil, fmt.Errorf("%w: damage must be non-negative", apperrors.ErrValidation)
	}

	var applied repository.DamageApplied

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var boss entity.Boss
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&boss, bossID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		// Порядок проверок совпадает с быстрым путём в ChallengeService:
		// побеждённый босс даёт AlreadyDefeated, снятый — NotActive.
		if boss.Status == entity.BossStatusDefeated {
			return fmt.Errorf("%w: boss #%d", repository.ErrBossAlreadyDefeated, bossID)
		}
		if boss.Status != entity.BossStatusActive {
			return fmt.Errorf("%w: boss #%d has status %q", repository.ErrBossNotActive, bossID, boss.Status)
		}
		if boss.CurrentHP <= 0 {
			// Активный босс с нулевым HP невозможен при корректных переходах,
			// но под блокировкой перепроверяем явно.
			return fmt.Errorf("%w: boss #%d", repository.ErrBossAlreadyDefeated, bossID)
		}

		newHP := boss.CurrentHP - damage
		if newHP < 0 {
			newHP = 0
		}

		updates := map[string]interface{}{
			"current_hp":     newHP,
			"total_damage":   gorm.Expr("total_damage + ?", damage),
			"total_attempts": gorm.Expr("total_attempts + ?", 1),
		}

		if newHP == 0 {
			now := time.Now()
			updates["status"] = entity.BossStatusDefeated
			updates["defeated_at"] = &now
			applied.Defeated = true
			applied.DefeatedAt = &now
		}

		if err := tx.Model(&entity.Boss{}).
			Where("id = ?", bossID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("apply damage to boss #%d failed: %w", bossID, err)
		}

		applied.NewHP = newHP
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &applied, nil
}

// IncrementParticipants атомарно увеличивает total_participants на delta через gorm.Expr
func (r *BossRepo) IncrementParticipants(bossID uint, delta int) error {
	return r.db.Model(&entity.Boss{}).
		Where("id = ?", bossID).
		Update("total_participants", gorm.Expr("total_participants + ?", delta)).
		Error
}

// Reset возвращает босса к исходному состоянию: полное здоровье, статус active,
// счётчики в ноль, defeated_at очищен. Журнал участников не трогаем —
// история урона переживает сброс.
func (r *BossRepo) Reset(bossID uint) error {
	result := r.db.Model(&entity.Boss{}).
		Where("id = ?", bossID).
		Updates(map[string]interface{}{
			"current_hp":         gorm.Expr("max_hp"),
			"status":             entity.BossStatusActive,
			"total_damage":       0,
			"total_participants": 0,
			"total_attempts":     0,
			"defeated_at":        nil,
		})

	if result.Error != nil {
		return fmt.Errorf("reset boss #%d failed: %w", bossID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Update обновляет информацию о боссе
func (r *BossRepo) Update(boss *entity.Boss) error {
	return r.db.Save(boss).Error
}

// Delete удаляет босса
func (r *BossRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Boss{}, id).Error
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
