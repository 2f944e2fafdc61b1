// File: internal/utils/rate/rate_test.go
package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
)

func newTestLimiter(t *testing.T, cfg config.RateLimitConfig) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLimiter(client, zap.NewNop(), cfg), mr
}

func TestLimiter_AllowWithinLimit(t *testing.T) {
	rule := config.RateLimitRule{Enabled: true, Limit: 3, Window: time.Minute}
	limiter, _ := newTestLimiter(t, config.RateLimitConfig{Enabled: true})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "login:1.2.3.4", rule)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "login:1.2.3.4", rule)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestLimiter_WindowExpiry(t *testing.T) {
	rule := config.RateLimitRule{Enabled: true, Limit: 1, Window: time.Minute}
	limiter, mr := newTestLimiter(t, config.RateLimitConfig{Enabled: true})

	ctx := context.Background()
	allowed, err := limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, err = limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	rule := config.RateLimitRule{Enabled: true, Limit: 0, Window: time.Minute}
	limiter, _ := newTestLimiter(t, config.RateLimitConfig{Enabled: false})

	allowed, err := limiter.Allow(context.Background(), "k", rule)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_SeparateKeys(t *testing.T) {
	rule := config.RateLimitRule{Enabled: true, Limit: 1, Window: time.Minute}
	limiter, _ := newTestLimiter(t, config.RateLimitConfig{Enabled: true})

	ctx := context.Background()
	allowed, err := limiter.Allow(ctx, "a", rule)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "b", rule)
	require.NoError(t, err)
	assert.True(t, allowed)
}
