package otp

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// consumeScript deletes the key only when the stored code matches, so check
// and delete happen in one step on the server.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, keyPrefix+email, code, s.ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, email, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{keyPrefix + email}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
