package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// only the holder's token may delete the key
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is a lease lock shared by every API instance. The TTL bounds how
// long a crashed holder can block a tenant.
type Redis struct {
	client      redis.UniversalClient
	log         *zap.Logger
	prefix      string
	ttl         time.Duration
	retryDelay  time.Duration
	maxAttempts int
}

type RedisOption func(*Redis)

func WithRetry(delay time.Duration, attempts int) RedisOption {
	return func(r *Redis) {
		r.retryDelay = delay
		r.maxAttempts = attempts
	}
}

func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

func NewRedis(client redis.UniversalClient, ttl time.Duration, log *zap.Logger, opts ...RedisOption) *Redis {
	r := &Redis{
		client:      client,
		log:         log.With(zap.String("component", "redis_lock")),
		prefix:      "lock:",
		ttl:         ttl,
		retryDelay:  50 * time.Millisecond,
		maxAttempts: 60,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	k := r.prefix + key
	token := uuid.NewString()

	for attempt := 1; ; attempt++ {
		ok, err := r.client.SetNX(ctx, k, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				// the server may have applied the SET before the deadline hit
				r.release(k, token)
				return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			return r.unlocker(k, token), nil
		}

		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %s after %d attempts", ErrNotAcquired, key, attempt)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-time.After(r.retryDelay):
		}
	}
}

func (r *Redis) unlocker(k, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { r.release(k, token) })
	}
}

func (r *Redis) release(k, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, r.client, []string{k}, token).Err(); err != nil {
		r.log.Warn("lock release failed", zap.String("key", k), zap.Error(err))
	}
}

var _ Locker = (*Redis)(nil)
