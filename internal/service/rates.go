package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cbr-rates-service/internal/domain/model"
	"cbr-rates-service/internal/domain/ports"
	"cbr-rates-service/pkg/logger"
	"cbr-rates-service/pkg/utils"
)

var (
	ErrInvalidDate         = utils.ErrInvalidDate
	ErrUpstreamUnavailable = errors.New("upstream feed unavailable")
	ErrNotFound            = errors.New("currency not found")
	ErrDateMismatch        = errors.New("no feed data for requested date")
)

const rubCode = "RUB"

type RatesService struct {
	feed  ports.Feed
	cache ports.SnapshotCache[*model.Snapshot]
	log   *logger.Logger
}

func NewRatesService(feed ports.Feed, cache ports.SnapshotCache[*model.Snapshot], log *logger.Logger) *RatesService {
	return &RatesService{
		feed:  feed,
		cache: cache,
		log:   log,
	}
}

// GetDaily returns the daily snapshot for dateISO (empty for latest),
// served from the cache within the TTL window. The snapshot's effective
// date is whatever the feed returned; with strict set, a mismatch between
// it and an explicitly requested date becomes ErrDateMismatch.
func (s *RatesService) GetDaily(ctx context.Context, dateISO string, strict bool) (*model.Snapshot, error) {
	if dateISO != "" {
		if _, err := utils.ParseISODate(dateISO); err != nil {
			return nil, err
		}
	}

	key := model.CacheKey{Kind: model.KindDaily, Date: dateISO}
	snapshot, err := s.cache.GetOrFetch(ctx, key, func(ctx context.Context) (*model.Snapshot, error) {
		return s.feed.FetchDaily(ctx, dateISO)
	})
	if err != nil {
		s.log.Error("Failed to fetch daily snapshot", "error", err, "date", dateISO)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if strict && dateISO != "" {
		effectiveISO, convErr := utils.UpstreamDateToISO(snapshot.Date)
		if convErr == nil && effectiveISO != dateISO {
			return nil, fmt.Errorf("%w: requested %s, latest feed date is %s", ErrDateMismatch, dateISO, snapshot.Date)
		}
	}

	return snapshot, nil
}

// resolveID maps a currency code to the feed's internal id via the latest
// snapshot. The dynamic endpoint is keyed by that id, not the char code.
func (s *RatesService) resolveID(ctx context.Context, code string) (string, error) {
	snapshot, err := s.GetDaily(ctx, "", false)
	if err != nil {
		return "", err
	}

	rate, found := snapshot.Rates[code]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	return rate.ID, nil
}

// GetHistory returns the per-unit series for code over [dateFrom, dateTo].
// RUB never hits upstream: the series is synthesized flat at 1.0, one point
// per calendar day, with an inverted range swapped rather than rejected.
func (s *RatesService) GetHistory(ctx context.Context, code, dateFrom, dateTo string) (*model.History, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if code == rubCode {
		return rubHistory(dateFrom, dateTo)
	}

	currencyID, err := s.resolveID(ctx, code)
	if err != nil {
		return nil, err
	}

	points, err := s.feed.FetchDynamic(ctx, currencyID, dateFrom, dateTo)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			return nil, err
		}
		s.log.Error("Failed to fetch dynamic series", "error", err, "code", code)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	name := code
	if snapshot, err := s.GetDaily(ctx, "", false); err == nil {
		if rate, found := snapshot.Rates[code]; found {
			name = rate.Name
		}
	}

	return &model.History{
		Code:   code,
		Name:   name,
		From:   dateFrom,
		To:     dateTo,
		Points: points,
	}, nil
}

func rubHistory(dateFrom, dateTo string) (*model.History, error) {
	from, err := utils.ParseISODate(dateFrom)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseISODate(dateTo)
	if err != nil {
		return nil, err
	}

	if to.Before(from) {
		from, to = to, from
	}

	days := int(to.Sub(from).Hours()/24) + 1
	points := make([]model.HistoryPoint, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		points = append(points, model.HistoryPoint{
			Date:       utils.FormatISODate(d),
			RubPerUnit: 1.0,
		})
	}

	return &model.History{
		Code:   rubCode,
		Name:   "Российский рубль",
		From:   dateFrom,
		To:     dateTo,
		Points: points,
	}, nil
}

// Convert computes the cross rate rubPerUnit[from]/rubPerUnit[to] on the
// snapshot for dateISO (latest when empty). Rate and result stay nil when
// the target per-unit value is zero.
func (s *RatesService) Convert(ctx context.Context, fromCode, toCode string, amount float64, dateISO string) (*model.Conversion, error) {
	snapshot, err := s.GetDaily(ctx, dateISO, false)
	if err != nil {
		return nil, err
	}

	from := strings.ToUpper(strings.TrimSpace(fromCode))
	to := strings.ToUpper(strings.TrimSpace(toCode))

	fromRate, found := snapshot.Rates[from]
	if !found {
		return nil, fmt.Errorf("%w: %s on %s", ErrNotFound, from, snapshot.Date)
	}
	toRate, found := snapshot.Rates[to]
	if !found {
		return nil, fmt.Errorf("%w: %s on %s", ErrNotFound, to, snapshot.Date)
	}

	conversion := &model.Conversion{
		Date:   snapshot.Date,
		From:   from,
		To:     to,
		Amount: amount,
	}

	if toRate.RubPerUnit != 0 {
		rate := fromRate.RubPerUnit / toRate.RubPerUnit
		result := amount * rate
		conversion.Rate = &rate
		conversion.Result = &result
	}

	return conversion, nil
}

// ListCurrencies returns the codes and names present in the snapshot for
// dateISO, sorted by code.
func (s *RatesService) ListCurrencies(ctx context.Context, dateISO string) (*model.CurrencyList, error) {
	snapshot, err := s.GetDaily(ctx, dateISO, false)
	if err != nil {
		return nil, err
	}

	items := make([]model.CurrencyInfo, 0, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		name := rate.Name
		if name == "" {
			name = code
		}
		items = append(items, model.CurrencyInfo{Code: code, Name: name})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })

	return &model.CurrencyList{
		Date:  snapshot.Date,
		Items: items,
	}, nil
}
