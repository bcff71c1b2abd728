package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyCache wraps a MemoryCache and fails every call while broken is set.
type flakyCache struct {
	inner  *MemoryCache
	broken bool
	calls  int
}

func (c *flakyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.calls++
	if c.broken {
		return false, errors.New("connection refused")
	}
	return c.inner.Get(ctx, key, dest)
}

func (c *flakyCache) Set(ctx context.Context, key string, value interface{}) error {
	c.calls++
	if c.broken {
		return errors.New("connection refused")
	}
	return c.inner.Set(ctx, key, value)
}

func (c *flakyCache) Delete(ctx context.Context, keys ...string) error {
	c.calls++
	if c.broken {
		return errors.New("connection refused")
	}
	return c.inner.Delete(ctx, keys...)
}

func newFailover(t *testing.T) (*FailoverCache, *flakyCache, *MemoryCache) {
	t.Helper()
	primary := &flakyCache{inner: NewMemoryCache(time.Minute)}
	fallback := NewMemoryCache(time.Minute)
	logger := zerolog.Nop()
	return NewFailoverCache(primary, fallback, &logger), primary, fallback
}

func TestFailoverCache_PrimaryHealthy(t *testing.T) {
	c, primary, fallback := newFailover(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v"))

	var got string
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", got)

	// The value never touched the fallback.
	found, err = fallback.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Positive(t, primary.calls)
}

func TestFailoverCache_FallsBackOnError(t *testing.T) {
	c, primary, fallback := newFailover(t)
	ctx := context.Background()

	primary.broken = true
	require.NoError(t, c.Set(ctx, "k", "v"))

	var got string
	found, err := fallback.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)

	// Once down, the primary is skipped until the probe window elapses.
	callsAfterSet := primary.calls
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, callsAfterSet, primary.calls)
}

func TestFailoverCache_ProbeRecovers(t *testing.T) {
	c, primary, _ := newFailover(t)
	ctx := context.Background()

	primary.broken = true
	require.NoError(t, c.Set(ctx, "down", 1))

	primary.broken = false
	require.NoError(t, primary.inner.Set(ctx, "k", "v"))

	// Pretend the last failed probe was long ago.
	c.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

	var got string
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", got)
	assert.False(t, c.isDown.Load())
}

func TestFailoverCache_DeleteReachesFallback(t *testing.T) {
	c, primary, fallback := newFailover(t)
	ctx := context.Background()

	// Entry written while the primary was down lives in the fallback.
	primary.broken = true
	require.NoError(t, c.Set(ctx, "k", "stale"))

	primary.broken = false
	c.isDown.Store(false)

	require.NoError(t, c.Delete(ctx, "k"))

	var got string
	found, err := fallback.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
