package ratelimit

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"shrinklink/constant"
)

// RedisLimiter is a fixed-window limiter backed by a shared redis counter,
// for deployments running more than one service instance. On redis failure
// it fails open: an unreachable counter must not block link creation.
type RedisLimiter struct {
	pool   *redis.Pool
	limit  int
	period time.Duration
}

func NewRedisLimiter(pool *redis.Pool, limit int, period time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = time.Hour
	}
	return &RedisLimiter{pool: pool, limit: limit, period: period}
}

func (r *RedisLimiter) Check(clientKey string) Result {
	conn := r.pool.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			zap.L().Warn("Failed to close redis connection", zap.Error(err))
		}
	}()

	key := constant.GetRateLimitKey(clientKey)
	count, err := redis.Int(conn.Do("INCR", key))
	if err != nil {
		zap.L().Warn("Rate limit counter unavailable, allowing request",
			zap.String("client_key", clientKey),
			zap.Error(err))
		return Result{Allowed: true, Remaining: r.limit - 1}
	}
	if count == 1 {
		if _, err := conn.Do("EXPIRE", key, int(r.period.Seconds())); err != nil {
			zap.L().Warn("Failed to set rate limit window expiry",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	if count > r.limit {
		return Result{Allowed: false, Remaining: 0}
	}
	return Result{Allowed: true, Remaining: r.limit - count}
}
