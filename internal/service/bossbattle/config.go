package bossbattle

import "time"

// Config содержит настройки боевой системы, не меняющиеся в рантайме
type Config struct {
	// MaxBossHP — верхняя граница пула здоровья при создании босса
	MaxBossHP int

	// DefaultLeaderboardLimit — размер лидерборда по умолчанию
	DefaultLeaderboardLimit int

	// MaxLeaderboardLimit — максимальный запрашиваемый размер лидерборда
	MaxLeaderboardLimit int

	// LeaderboardCacheTTL — время жизни снапшота лидерборда в кеше.
	// Лидерборд — eventually-consistent проекция, короткий TTL достаточен.
	LeaderboardCacheTTL time.Duration
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() *Config {
	return &Config{
		MaxBossHP:               1000000,
		DefaultLeaderboardLimit: 10,
		MaxLeaderboardLimit:     100,
		LeaderboardCacheTTL:     15 * time.Second,
	}
}
