package cache

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverCache serves from the primary until it errors, then flips to the
// fallback and probes the primary again after a minute.
type FailoverCache struct {
	primary   domain.Cache
	fallback  domain.Cache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed probe
}

func NewFailoverCache(primary, fallback domain.Cache, logger *zerolog.Logger) *FailoverCache {
	return &FailoverCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.isDown.Load() {
		found, err := c.primary.Get(ctx, key, dest)
		if err == nil {
			return found, nil
		}
		c.markDown(err)
	}

	if c.shouldProbe() {
		found, err := c.primary.Get(ctx, key, dest)
		if err == nil {
			c.isDown.Store(false)
			return found, nil
		}
		c.lastCheck.Store(time.Now().UnixNano())
	}

	return c.fallback.Get(ctx, key, dest)
}

func (c *FailoverCache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.isDown.Load() {
		err := c.primary.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		c.markDown(err)
	}
	return c.fallback.Set(ctx, key, value)
}

func (c *FailoverCache) Delete(ctx context.Context, keys ...string) error {
	if !c.isDown.Load() {
		err := c.primary.Delete(ctx, keys...)
		if err != nil {
			c.markDown(err)
		}
	}
	// Deletes always reach the fallback so a later failover cannot revive
	// an entry the caller invalidated.
	return c.fallback.Delete(ctx, keys...)
}

func (c *FailoverCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary cache failed, falling back to memory")
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().UnixNano())
}

func (c *FailoverCache) shouldProbe() bool {
	if !c.isDown.Load() {
		return false
	}
	return time.Since(time.Unix(0, c.lastCheck.Load())) > time.Minute
}
