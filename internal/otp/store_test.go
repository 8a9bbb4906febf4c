package otp

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestMemoryStore_ConsumeMatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	require.NoError(t, s.Put(ctx, "a@test.com", "123456"))

	ok, err := s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	// consumed, second attempt fails
	ok, err = s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_MismatchKeepsCode(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	require.NoError(t, s.Put(ctx, "a@test.com", "123456"))

	ok, err := s.Consume(ctx, "a@test.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_OverwriteAndMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	ok, err := s.Consume(ctx, "missing@test.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "a@test.com", "111111"))
	require.NoError(t, s.Put(ctx, "a@test.com", "222222"))

	ok, err = s.Consume(ctx, "a@test.com", "111111")
	require.NoError(t, err)
	assert.False(t, ok, "older code must be overwritten")

	ok, err = s.Consume(ctx, "a@test.com", "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10 * time.Millisecond)

	require.NoError(t, s.Put(ctx, "a@test.com", "123456"))
	time.Sleep(20 * time.Millisecond)

	ok, err := s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Minute), mr
}

func TestRedisStore_ConsumeMatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	require.NoError(t, s.Put(ctx, "a@test.com", "123456"))

	ok, err := s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_MismatchKeepsCode(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	require.NoError(t, s.Put(ctx, "a@test.com", "123456"))

	ok, err := s.Consume(ctx, "a@test.com", "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Put(ctx, "a@test.com", "123456"))
	mr.FastForward(2 * time.Minute)

	ok, err := s.Consume(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}
