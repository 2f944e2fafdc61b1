// File: internal/utils/rate/rate.go
package rate

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
)

// Limiter представляет ограничитель скорости запросов на основе Redis
// (фиксированное окно).
type Limiter struct {
	client *redis.Client
	logger *zap.Logger
	config config.RateLimitConfig
}

// NewLimiter создает новый ограничитель скорости запросов.
func NewLimiter(client *redis.Client, logger *zap.Logger, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{client: client, logger: logger, config: cfg}
}

// Allow проверяет, разрешен ли запрос по заданному правилу.
func (l *Limiter) Allow(ctx context.Context, key string, rule config.RateLimitRule) (bool, error) {
	// Если ограничение скорости отключено, всегда разрешаем запрос
	if !l.config.Enabled || !rule.Enabled {
		return true, nil
	}

	redisKey := fmt.Sprintf("rate:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		// В случае ошибки Redis разрешаем запрос, чтобы не блокировать
		// пользователей
		l.logger.Error("Failed to increment rate limit counter", zap.Error(err), zap.String("key", key))
		return true, err
	}

	if count == 1 {
		// Первый запрос в окне: задаем время жизни счетчика
		if err := l.client.Expire(ctx, redisKey, rule.Window).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Error("Failed to set rate limit window", zap.Error(err), zap.String("key", key))
		}
	}

	if count > int64(rule.Limit) {
		l.logger.Warn("Rate limit exceeded",
			zap.String("key", key),
			zap.Int64("count", count),
			zap.Int("limit", rule.Limit),
		)
		return false, nil
	}

	return true, nil
}
