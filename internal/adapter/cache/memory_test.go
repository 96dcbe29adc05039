package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbr-rates-service/internal/domain/model"
	"cbr-rates-service/pkg/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) *Memory[string] {
	t.Helper()
	return NewMemory[string](ttl, logger.NewLogger("error"), nil, nil)
}

func TestGetOrFetch_ReadThrough(t *testing.T) {
	c := newTestCache(t, 15*time.Minute)
	key := model.CacheKey{Kind: model.KindDaily, Date: "2024-06-07"}

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	got, err := c.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.Equal(t, 1, calls)

	// Second read within the TTL must not invoke fetch.
	got, err = c.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.Equal(t, 1, calls)
}

func TestGetOrFetch_ExpiryTriggersRefetch(t *testing.T) {
	c := newTestCache(t, 15*time.Minute)
	key := model.CacheKey{Kind: model.KindDaily, Date: ""}

	base := time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	_, err := c.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)

	c.now = func() time.Time { return base.Add(14 * time.Minute) }
	_, err = c.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "entry still fresh")

	c.now = func() time.Time { return base.Add(16 * time.Minute) }
	_, err = c.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired entry must be refetched")
}

func TestGetOrFetch_FetchFailureStoresNothing(t *testing.T) {
	c := newTestCache(t, 15*time.Minute)
	key := model.CacheKey{Kind: model.KindDaily, Date: ""}

	fetchErr := errors.New("upstream down")
	calls := 0

	_, err := c.GetOrFetch(context.Background(), key, func(context.Context) (string, error) {
		calls++
		return "", fetchErr
	})
	require.ErrorIs(t, err, fetchErr)

	// The failure was not cached: the next read fetches again.
	got, err := c.GetOrFetch(context.Background(), key, func(context.Context) (string, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetch_DistinctKeys(t *testing.T) {
	c := newTestCache(t, 15*time.Minute)

	// An empty date (latest) and an explicit date are separate entries,
	// even when the explicit date is today.
	latestKey := model.CacheKey{Kind: model.KindDaily, Date: ""}
	todayKey := model.CacheKey{Kind: model.KindDaily, Date: time.Now().Format("2006-01-02")}

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	_, err := c.GetOrFetch(context.Background(), latestKey, fetch)
	require.NoError(t, err)
	_, err = c.GetOrFetch(context.Background(), todayKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
