package infrastructure

import (
	"context"
	"fmt"

	"user-directory-service/internal/adapter/ratelimit"
	"user-directory-service/internal/config"
	redisclient "user-directory-service/pkg/redis"

	"go.uber.org/zap"
)

// NewRedisClient creates a new Redis client with configuration
func NewRedisClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	redisConfig := redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}

	rdb, err := redisclient.NewClient(ctx, redisConfig, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// NewRateLimiter connects to Redis only when rate limiting is enabled. The
// returned client is nil otherwise and the limiter allows every request.
func NewRateLimiter(ctx context.Context, cfg *config.Config, l *zap.Logger) (*ratelimit.Limiter, *redisclient.Client, error) {
	limiterCfg := ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstCapacity:     cfg.RateLimit.BurstCapacity,
		Enabled:           cfg.RateLimit.Enabled,
	}

	if !cfg.RateLimit.Enabled {
		l.Info("rate limiting disabled")
		return ratelimit.New(nil, limiterCfg, l), nil, nil
	}

	rdb, err := NewRedisClient(ctx, cfg, l)
	if err != nil {
		return nil, nil, err
	}

	l.Info("rate limiting enabled",
		zap.Float64("requests_per_second", limiterCfg.RequestsPerSecond),
		zap.Int("burst", limiterCfg.BurstCapacity),
	)

	return ratelimit.New(rdb.Client, limiterCfg, l), rdb, nil
}
