package ports

import (
	"context"

	"cbr-rates-service/internal/domain/model"
)

type RatesService interface {
	GetDaily(ctx context.Context, dateISO string, strict bool) (*model.Snapshot, error)
	GetHistory(ctx context.Context, code, dateFrom, dateTo string) (*model.History, error)
	Convert(ctx context.Context, fromCode, toCode string, amount float64, dateISO string) (*model.Conversion, error)
	ListCurrencies(ctx context.Context, dateISO string) (*model.CurrencyList, error)
}
