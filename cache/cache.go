// Package cache memoizes expensive or rate limited upstream calls behind a
// key-value store with per entry TTLs.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mww/fantasy_rankings/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Store is the key-value backend. A missing or expired key is reported as
// found == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache wraps a Store with single-flight read-through semantics. It is safe for
// concurrent use and is normally shared by the whole process.
type Cache struct {
	store          Store
	group          singleflight.Group
	computeTimeout time.Duration
	metrics        *metrics.Metrics
	logger         logrus.FieldLogger
}

// DefaultComputeTimeout bounds a shared compute call once it is detached from
// the caller that started it.
const DefaultComputeTimeout = 2 * time.Minute

func New(store Store, m *metrics.Metrics, logger logrus.FieldLogger) *Cache {
	return &Cache{
		store:          store,
		computeTimeout: DefaultComputeTimeout,
		metrics:        m,
		logger:         logger.WithField("component", "cache"),
	}
}

// Key builds a cache key from a function identity and all of its arguments.
func Key(fn string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, fn)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, "|")
}

// GetOrCompute returns the cached value for key, or calls compute, stores the
// result for ttl and returns it. Concurrent callers that miss on the same key
// share a single compute call, which keeps running when the caller that started
// it gives up. A caller whose ctx ends stops waiting and gets ctx.Err().
// Errors from compute are returned and never cached.
//
// Problems talking to the store are logged and treated as a miss so that a
// broken cache slows things down instead of failing requests.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, c, key); ok {
		c.metrics.CacheHit()
		return v, nil
	}
	c.metrics.CacheMiss()

	ch := c.group.DoChan(key, func() (any, error) {
		// The flight outlives any single caller, so it must not inherit
		// their cancellation.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.computeTimeout)
		defer cancel()

		v, err := compute(ctx)
		if err != nil {
			return v, err
		}

		b, err := json.Marshal(v)
		if err != nil {
			c.logger.WithField("key", key).Warnf("error encoding value for cache: %v", err)
			return v, nil
		}
		if err := c.store.Set(ctx, key, b, ttl); err != nil {
			c.logger.WithField("key", key).Warnf("error writing to cache: %v", err)
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("error waiting for %s: %w", key, ctx.Err())
	}
}

func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T
	b, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WithField("key", key).Warnf("error reading from cache: %v", err)
		return v, false
	}
	if !found {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		c.logger.WithField("key", key).Warnf("error decoding cached value: %v", err)
		var zero T
		return zero, false
	}
	return v, true
}
