package cache

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = Close(client) })
	return NewRedisCache(client, time.Minute), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := setupRedis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "drill", Count: 3}))

	var got payload
	found, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "drill", Count: 3}, got)
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _ := setupRedis(t)

	var got string
	found, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "one"))
	require.NoError(t, c.Set(ctx, "b", "two"))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	var got string
	found, err := c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting nothing is fine.
	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client, time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "lived"))
	mr.FastForward(2 * time.Second)

	var got string
	found, err := c.Get(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = Close(client) })

	assert.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}
