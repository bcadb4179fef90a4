package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// tokenBucket refills `rate` tokens per second up to `capacity` and consumes one
// token per call. State lives in a hash {last_refill, tokens} so every replica of
// the service shares the same bucket.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', now, 'tokens', tokens)
redis.call('EXPIRE', key, ttl)
return allowed
`)

// Config holds configuration for the rate limiter.
type Config struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// Limiter is a Redis-backed token bucket shared by the HTTP and gRPC servers.
type Limiter struct {
	client redis.Scripter
	config Config
	log    *zap.Logger
	now    func() time.Time
}

// New creates a limiter. A nil client or a disabled config yields a limiter that
// allows everything.
func New(client redis.Scripter, config Config, log *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Enabled reports whether requests are actually being limited.
func (l *Limiter) Enabled() bool {
	return l != nil && l.config.Enabled && l.client != nil
}

// Config returns the limiter configuration
func (l *Limiter) Config() Config {
	return l.config
}

// Allow consumes one token from the bucket identified by key.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}

	now := float64(l.now().UnixNano()) / float64(time.Second)

	allowed, err := tokenBucket.Run(ctx, l.client, []string{"ratelimit:tb:" + key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		now,
		l.bucketTTLSeconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}

	return allowed == 1, nil
}

// bucketTTLSeconds keeps a bucket at least as long as it takes to refill fully.
func (l *Limiter) bucketTTLSeconds() int {
	ttl := 60
	if l.config.RequestsPerSecond > 0 {
		refill := int(float64(l.config.BurstCapacity)/l.config.RequestsPerSecond) + 1
		ttl = max(ttl, refill)
	}
	return ttl
}
