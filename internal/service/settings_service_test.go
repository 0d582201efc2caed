package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// Моки определены в challenge_service_test.go

func TestSettingsService_Get_LazyLoadAndCache(t *testing.T) {
	// Arrange
	repo := new(MockSettingsRepository)
	repo.On("Get").Return(&entity.GameSettings{ID: 1, Enabled: true, CooldownHours: 6}, nil).Once()

	svc := NewSettingsService(repo)

	// Act: два чтения подряд
	first, err := svc.Get()
	require.NoError(t, err)
	second, err := svc.Get()
	require.NoError(t, err)

	// Assert: хранилище опрошено один раз, дальше — кеш
	assert.Equal(t, first, second)
	assert.Equal(t, 6, first.CooldownHours)
	repo.AssertNumberOfCalls(t, "Get", 1)
}

func TestSettingsService_Get_RepoFailure(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Get").Return(nil, errors.New("connection refused"))

	svc := NewSettingsService(repo)

	_, err := svc.Get()
	assert.Error(t, err, "Без загруженного кеша сбой хранилища должен всплывать")
}

func TestSettingsService_Refresh_UpdatesCache(t *testing.T) {
	// Arrange: после Refresh чтения видят новое состояние
	repo := new(MockSettingsRepository)
	repo.On("Get").Return(&entity.GameSettings{ID: 1, Enabled: true}, nil).Once()

	svc := NewSettingsService(repo)
	initial, err := svc.Get()
	require.NoError(t, err)
	require.True(t, initial.Enabled)

	repo.On("Get").Return(&entity.GameSettings{ID: 1, Enabled: false}, nil).Once()

	// Act
	refreshed, err := svc.Refresh()

	// Assert
	require.NoError(t, err)
	assert.False(t, refreshed.Enabled)

	cached, err := svc.Get()
	require.NoError(t, err)
	assert.False(t, cached.Enabled, "Get после Refresh должен видеть новое состояние")
}

func TestSettingsService_Update_SavesAndCaches(t *testing.T) {
	// Arrange
	repo := new(MockSettingsRepository)
	repo.On("Save", &entity.GameSettings{ID: 1, Enabled: false, CooldownEnabled: true, CooldownHours: 24}).Return(nil)

	svc := NewSettingsService(repo)

	// Act
	updated, err := svc.Update(entity.GameSettings{ID: 1, Enabled: false, CooldownEnabled: true, CooldownHours: 24})

	// Assert: сохранено и закешировано без обращения к Get
	require.NoError(t, err)
	assert.False(t, updated.Enabled)

	cached, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, updated, cached)
	repo.AssertNotCalled(t, "Get")
}

func TestSettingsService_Update_NegativeCooldownClamped(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Save", &entity.GameSettings{ID: 1, CooldownHours: 0}).Return(nil)

	svc := NewSettingsService(repo)

	updated, err := svc.Update(entity.GameSettings{ID: 1, CooldownHours: -5})

	require.NoError(t, err)
	assert.Equal(t, 0, updated.CooldownHours, "Отрицательный кулдаун зажимается в ноль")
}
