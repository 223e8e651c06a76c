package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_EmptyAddrDisables(t *testing.T) {
	rdb, err := NewClient(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestLimiter_DisabledAllows(t *testing.T) {
	var nilLimiter *Limiter
	assert.False(t, nilLimiter.Enabled())

	limiter := NewLimiter(nil, 5, time.Minute)
	assert.False(t, limiter.Enabled())

	for i := 0; i < 10; i++ {
		ok, err := limiter.Allow(context.Background(), "login:127.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestLimiter_ZeroLimitDisables(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewLimiter(rdb, 0, time.Minute)
	assert.False(t, limiter.Enabled())
}

func TestLimiter_UnreachableRedisReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewLimiter(rdb, 5, time.Minute)
	require.True(t, limiter.Enabled())

	_, err := limiter.Allow(context.Background(), "login:127.0.0.1")
	assert.Error(t, err)
}
