package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCache определён в cooldown_middleware_test.go

func rateLimitedRouter(rl *RateLimiter, cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", rl.LimitByIP(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiter_FirstRequestInWindowSetsTTL(t *testing.T) {
	// Arrange: первый запрос в окне
	cache := new(MockCache)
	cache.On("Increment", mock.Anything).Return(int64(1), nil)
	cache.On("ExpireAt", mock.Anything, mock.Anything).Return(nil)
	cache.On("TTL", mock.Anything).Return(time.Minute, nil)

	router := rateLimitedRouter(NewRateLimiter(cache), RateLimitConfig{
		MaxRequests: 5, Window: time.Minute, KeyPrefix: "rl:test",
	})

	// Act
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	cache.AssertCalled(t, "ExpireAt", mock.Anything, mock.Anything)
}

func TestRateLimiter_ExceededReturns429(t *testing.T) {
	// Arrange: счётчик уже за лимитом, до конца окна 30 секунд
	cache := new(MockCache)
	cache.On("Increment", mock.Anything).Return(int64(6), nil)
	cache.On("TTL", mock.Anything).Return(30*time.Second, nil)

	router := rateLimitedRouter(NewRateLimiter(cache), RateLimitConfig{
		MaxRequests: 5, Window: time.Minute, KeyPrefix: "rl:test",
	})

	// Act
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_CacheFailureFailsOpen(t *testing.T) {
	// Недоступный кеш пропускает запросы, а не блокирует API
	cache := new(MockCache)
	cache.On("Increment", mock.Anything).Return(int64(0), assert.AnError)

	router := rateLimitedRouter(NewRateLimiter(cache), RateLimitConfig{
		MaxRequests: 5, Window: time.Minute, KeyPrefix: "rl:test",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
