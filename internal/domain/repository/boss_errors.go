package repository

import "errors"

var (
	// ErrBossNotActive означает, что босс не в статусе active (defeated или terminated).
	ErrBossNotActive = errors.New("boss is not active")
	// ErrBossAlreadyDefeated означает, что у босса уже нет здоровья.
	ErrBossAlreadyDefeated = errors.New("boss is already defeated")
)
