package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCache реализует repository.CacheRepository для тестов middleware
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCache) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCache) ExpireAt(key string, expiration time.Time) error {
	args := m.Called(key, expiration)
	return args.Error(0)
}

func (m *MockCache) TTL(key string) (time.Duration, error) {
	args := m.Called(key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockCache) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func TestCooldownGuard_Acquire_FirstAttemptAllowed(t *testing.T) {
	// Arrange: резерв свободен
	cache := new(MockCache)
	cache.On("SetNX", "cooldown:boss:1:team:42", mock.Anything, 6*time.Hour).Return(true, nil)

	guard := NewCooldownGuard(cache)

	// Act
	allowed, retryAfter := guard.Acquire(1, 42, 6*time.Hour)

	// Assert
	assert.True(t, allowed)
	assert.Equal(t, 0, retryAfter)
	cache.AssertExpectations(t)
}

func TestCooldownGuard_Acquire_WindowActive(t *testing.T) {
	// Arrange: резерв уже занят, до истечения окна 90 секунд
	cache := new(MockCache)
	cache.On("SetNX", "cooldown:boss:1:team:42", mock.Anything, mock.Anything).Return(false, nil)
	cache.On("TTL", "cooldown:boss:1:team:42").Return(90*time.Second, nil)

	guard := NewCooldownGuard(cache)

	// Act
	allowed, retryAfter := guard.Acquire(1, 42, 6*time.Hour)

	// Assert
	assert.False(t, allowed)
	assert.Equal(t, 90, retryAfter, "retry_after должен браться из TTL ключа")
}

func TestCooldownGuard_Acquire_ZeroWindowSkipsCache(t *testing.T) {
	// Кулдаун выключен — кеш вообще не трогаем
	cache := new(MockCache)
	guard := NewCooldownGuard(cache)

	allowed, _ := guard.Acquire(1, 42, 0)

	assert.True(t, allowed)
	cache.AssertNotCalled(t, "SetNX", mock.Anything, mock.Anything, mock.Anything)
}

func TestCooldownGuard_Acquire_CacheFailureFailsOpen(t *testing.T) {
	// Недоступный кеш не блокирует атаки: кулдаун — UX-ограничение
	cache := new(MockCache)
	cache.On("SetNX", mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New("connection refused"))

	guard := NewCooldownGuard(cache)

	allowed, retryAfter := guard.Acquire(1, 42, time.Hour)

	assert.True(t, allowed, "При ошибке кеша запрос пропускается (fail-open)")
	assert.Equal(t, 0, retryAfter)
}

func TestCooldownGuard_Release_DeletesReservation(t *testing.T) {
	cache := new(MockCache)
	cache.On("Delete", "cooldown:boss:1:team:42").Return(nil)

	guard := NewCooldownGuard(cache)

	guard.Release(1, 42)

	cache.AssertCalled(t, "Delete", "cooldown:boss:1:team:42")
}
