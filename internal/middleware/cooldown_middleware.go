package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/fantasy-api/internal/domain/repository"
)

// CooldownGuard ограничивает частоту атак одной команды на одного босса.
// Вызывается хендлером после разбора запроса (ключ строится из bossID и
// teamID, которых нет в URL до парсинга тела).
type CooldownGuard struct {
	cache repository.CacheRepository
}

// NewCooldownGuard создает новый CooldownGuard
func NewCooldownGuard(cache repository.CacheRepository) *CooldownGuard {
	return &CooldownGuard{cache: cache}
}

func cooldownKey(bossID, teamID uint) string {
	return fmt.Sprintf("cooldown:boss:%d:team:%d", bossID, teamID)
}

// Acquire резервирует окно кулдауна для пары (босс, команда).
// Возвращает allowed=false и остаток окна в секундах, если окно ещё активно.
// При ошибке кеша пропускаем запрос (fail-open), но логируем:
// кулдаун — UX-ограничение, а не инвариант корректности.
func (g *CooldownGuard) Acquire(bossID, teamID uint, window time.Duration) (allowed bool, retryAfter int) {
	if window <= 0 {
		return true, 0
	}

	key := cooldownKey(bossID, teamID)

	ok, err := g.cache.SetNX(key, time.Now().Unix(), window)
	if err != nil {
		log.Printf("[CooldownGuard] Cache error for key %s: %v. Allowing request (fail-open).", key, err)
		return true, 0
	}
	if ok {
		return true, 0
	}

	ttl, err := g.cache.TTL(key)
	if err != nil || ttl < 0 {
		return false, int(window.Seconds())
	}
	return false, int(ttl.Seconds())
}

// Release снимает резерв кулдауна. Вызывается, когда попытка не была
// применена (ошибка до атомарного шага), чтобы не штрафовать команду
// за несостоявшуюся атаку.
func (g *CooldownGuard) Release(bossID, teamID uint) {
	key := cooldownKey(bossID, teamID)

	if err := g.cache.Delete(key); err != nil {
		log.Printf("[CooldownGuard] Failed to release key %s: %v", key, err)
	}
}
