package repository

import (
	"time"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// DamageApplied — результат атомарного применения урона к боссу.
// Defeated == true только у того вызова, который перевёл босса active → defeated.
type DamageApplied struct {
	NewHP      int
	Defeated   bool
	DefeatedAt *time.Time
}

// BossFilters определяет фильтры для поиска боссов
type BossFilters struct {
	Status     string // Фильтр по статусу (active, defeated, terminated)
	Difficulty string // Фильтр по сложности
	Search     string // Поиск по названию/описанию
}

// BossRepository определяет методы для работы с боссами
type BossRepository interface {
	Create(boss *entity.Boss) error
	GetByID(id uint) (*entity.Boss, error)
	// GetActive возвращает самого свежего босса в статусе active
	GetActive() (*entity.Boss, error)
	ListWithFilters(filters BossFilters, limit, offset int) ([]entity.Boss, int64, error)
	// ApplyDamage атомарно применяет урон к боссу: уменьшает current_hp
	// (не ниже нуля), увеличивает total_damage и total_attempts, и при
	// достижении нуля ровно один раз выполняет переход в defeated.
	// Всё — в одной транзакции с блокировкой строки босса.
	ApplyDamage(bossID uint, damage int) (*DamageApplied, error)
	// IncrementParticipants атомарно увеличивает total_participants на delta
	IncrementParticipants(bossID uint, delta int) error
	// Reset возвращает босса к исходному состоянию: полное здоровье,
	// статус active, счётчики в ноль, defeated_at очищен.
	// Записи участников НЕ затрагиваются.
	Reset(bossID uint) error
	Update(boss *entity.Boss) error
	Delete(id uint) error
}
