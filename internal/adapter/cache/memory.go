package cache

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cbr-rates-service/internal/domain/model"
	"cbr-rates-service/pkg/logger"
)

type entry[T any] struct {
	payload   T
	fetchedAt time.Time
}

// Memory is an in-process read-through TTL cache keyed by (kind, date).
// Entries are replaced wholesale, never mutated, and evicted lazily: an
// expired entry is simply invisible to reads until the next successful
// fetch overwrites it.
type Memory[T any] struct {
	entries  map[model.CacheKey]entry[T]
	mutex    sync.RWMutex
	cacheTTL time.Duration
	now      func() time.Time
	log      *logger.Logger
	hits     prometheus.Counter
	misses   prometheus.Counter
}

func NewMemory[T any](cacheTTL time.Duration, log *logger.Logger, hits, misses prometheus.Counter) *Memory[T] {
	return &Memory[T]{
		entries:  make(map[model.CacheKey]entry[T]),
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
		hits:     hits,
		misses:   misses,
	}
}

// GetOrFetch returns the cached payload for key when a fresh entry exists,
// otherwise calls fetch and stores the result on success. fetch runs
// outside the lock, so two concurrent misses for the same key may both hit
// upstream; the last writer wins. A failed fetch stores nothing and leaves
// any expired entry in place.
func (c *Memory[T]) GetOrFetch(ctx context.Context, key model.CacheKey, fetch func(context.Context) (T, error)) (T, error) {
	c.mutex.RLock()
	e, found := c.entries[key]
	c.mutex.RUnlock()

	if found && c.now().Sub(e.fetchedAt) < c.cacheTTL {
		c.log.Debug("Cache hit", "key", key.String())
		if c.hits != nil {
			c.hits.Inc()
		}
		return e.payload, nil
	}

	c.log.Debug("Cache miss", "key", key.String(), "expired", found)
	if c.misses != nil {
		c.misses.Inc()
	}

	payload, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mutex.Lock()
	c.entries[key] = entry[T]{payload: payload, fetchedAt: c.now()}
	c.mutex.Unlock()
	c.log.Debug("Cache set", "key", key.String())

	return payload, nil
}
