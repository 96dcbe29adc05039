package ports

import (
	"context"

	"cbr-rates-service/internal/domain/model"
)

// Feed reads the upstream CBR endpoints. Dates are ISO (YYYY-MM-DD);
// the adapter owns the translation into the feed's own formats.
type Feed interface {
	// FetchDaily retrieves and normalizes the full daily table.
	// An empty requestedDate means the latest available table.
	FetchDaily(ctx context.Context, requestedDate string) (*model.Snapshot, error)

	// FetchDynamic retrieves the per-unit series for one internal currency
	// id over [dateFrom, dateTo]. Malformed records are dropped; surviving
	// points keep feed order.
	FetchDynamic(ctx context.Context, currencyID, dateFrom, dateTo string) ([]model.HistoryPoint, error)
}
