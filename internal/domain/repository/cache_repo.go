package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Используется для снапшотов лидерборда (SetJSON/GetJSON/Delete),
// резервирования кулдауна команд (SetNX/TTL/Delete) и счётчиков
// rate limiting (Increment/ExpireAt/TTL).
type CacheRepository interface {
	Delete(key string) error
	Increment(key string) (int64, error)
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	ExpireAt(key string, expiration time.Time) error
	// TTL возвращает остаток времени жизни ключа.
	// Отрицательное значение — ключ без TTL или ключ не существует.
	TTL(key string) (time.Duration, error)
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
