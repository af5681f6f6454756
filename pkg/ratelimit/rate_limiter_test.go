package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, cfg *Config) *RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, cfg)
}

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 5,
		SeatingRequests: 2,
		HealthRequests:  10,
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	limiter := newLimiter(t, testConfig())
	ctx := context.Background()

	first, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeSeating)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeSeating)
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeSeating)
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 2, third.Limit)
}

func TestRateLimiter_BudgetsAreIndependent(t *testing.T) {
	limiter := newLimiter(t, testConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeSeating)
		require.NoError(t, err)
	}

	other, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeSeating)
	require.NoError(t, err)
	assert.True(t, other.Allowed, "another client has its own budget")

	health, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeHealth)
	require.NoError(t, err)
	assert.True(t, health.Allowed, "another category has its own budget")
}

func TestRateLimiter_DisabledAndWhitelisted(t *testing.T) {
	cfg := testConfig()
	cfg.WhitelistedIPs = []string{"127.0.0.1"}
	limiter := newLimiter(t, cfg)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := limiter.IsAllowed(ctx, "127.0.0.1", RateLimitTypeSeating)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	cfg.Enabled = false
	for i := 0; i < 5; i++ {
		res, err := limiter.IsAllowed(ctx, "10.0.0.9", RateLimitTypeSeating)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}

func TestGetRateLimitType(t *testing.T) {
	tests := map[string]RateLimitType{
		"/health":                               RateLimitTypeHealth,
		"/api/v1/admin/sessions/:id/occupied":   RateLimitTypeAdmin,
		"/api/v1/auth/login":                    RateLimitTypeAuth,
		"/api/v1/sessions/:id/seats":            RateLimitTypeSeating,
		"/api/v1/customers/:id/recommendations": RateLimitTypeCustomer,
		"/api/v1/movies/week":                   RateLimitTypePublic,
		"/api/v1/sessions/:id":                  RateLimitTypePublic,
		"/swagger/*any":                         RateLimitTypeDefault,
	}
	for path, want := range tests {
		assert.Equal(t, want, getRateLimitType(path), path)
	}
}

func TestMiddleware_Returns429WithHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := newLimiter(t, testConfig())

	r := gin.New()
	r.Use(Middleware(limiter))
	r.GET("/api/v1/sessions/:id/seats", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc/seats", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.20")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
