package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache_GetSet(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "regions")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "regions", []byte(`["Inner West"]`), time.Minute))
	assert.True(t, mr.Exists("test:regions"))

	val, found, err := c.Get(ctx, "regions")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `["Inner West"]`, string(val))

	mr.FastForward(2 * time.Minute)
	_, found, err = c.Get(ctx, "regions")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetOrLoad_ReadThrough(t *testing.T) {
	_, c := setupTestRedis(t)
	ctx := context.Background()

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"NSW", "VIC"}, nil
	}

	first, err := GetOrLoad(ctx, c, "states", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, c, "states", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, []string{"NSW", "VIC"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_BackendDownFallsBackToLoad(t *testing.T) {
	mr, c := setupTestRedis(t)
	mr.Close()

	got, err := GetOrLoad(context.Background(), c, "states", time.Minute, func() ([]string, error) {
		return []string{"QLD"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"QLD"}, got)
}

func TestGetOrLoad_LoadErrorIsNotCached(t *testing.T) {
	mr, c := setupTestRedis(t)
	boom := errors.New("store down")

	_, err := GetOrLoad(context.Background(), c, "regions", time.Minute, func() ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("test:regions"))
}

func TestNoop(t *testing.T) {
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := GetOrLoad(context.Background(), Noop{}, "k", time.Minute, func() (int, error) {
			calls++
			return 1, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestNewRedisCache_BadAddress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
