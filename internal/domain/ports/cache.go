package ports

import (
	"context"

	"cbr-rates-service/internal/domain/model"
)

// SnapshotCache is a read-through TTL cache. GetOrFetch returns the cached
// payload when a non-expired entry exists for key, otherwise invokes fetch
// and stores the result on success. A failed fetch stores nothing.
type SnapshotCache[T any] interface {
	GetOrFetch(ctx context.Context, key model.CacheKey, fetch func(context.Context) (T, error)) (T, error)
}
