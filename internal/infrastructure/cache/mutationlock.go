package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mealsub/internal/shared/config"
)

// releaseLockScript deletes the key only if it still holds our token, so an
// expired lock that was re-acquired by another holder is left alone.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisMutationLocker is a best-effort distributed lock built on SET NX PX.
// The TTL bounds how long a crashed holder can block others.
type RedisMutationLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMutationLocker(client *redis.Client, ttl time.Duration) *RedisMutationLocker {
	return &RedisMutationLocker{client: client, ttl: ttl}
}

// TryLock acquires key without waiting. The returned release func is nil
// when the lock was not acquired.
func (l *RedisMutationLocker) TryLock(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseLockScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}

	return release, true, nil
}

// LocalMutationLocker serializes mutations within one process. Used when
// Redis is disabled.
type LocalMutationLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalMutationLocker() *LocalMutationLocker {
	return &LocalMutationLocker{held: make(map[string]struct{})}
}

func (l *LocalMutationLocker) TryLock(_ context.Context, key string) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, false, nil
	}
	l.held[key] = struct{}{}

	var once sync.Once
	release := func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}

	return release, true, nil
}
