package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

// incrScript increments a counter and attaches the TTL only when the key was
// just created, so repeated attempts never extend the challenge lifetime.
var incrScript = redis.NewScript(`
local value = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return value
`)

// RedisStore implements Store on top of a Redis client. Redis INCR and DEL
// are atomic server-side, which gives the coordinator its race-safety
// guarantees without client-side locking.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", errors.Join(ErrStoreUnavailable, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	value, err := incrScript.Run(ctx, s.client, []string{key}, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return value, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	removed, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return removed, nil
}
