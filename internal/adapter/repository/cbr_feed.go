package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cbr-rates-service/internal/domain/model"
	"cbr-rates-service/pkg/logger"
	"cbr-rates-service/pkg/utils"
)

const (
	rubName = "Российский рубль"

	maxErrorDetail = 300
)

// UpstreamError carries the HTTP status and a response excerpt from a
// failed feed call. Status is 0 on transport-level failures.
type UpstreamError struct {
	Status int
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return fmt.Sprintf("CBR returned %d", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// CBRFeed reads the CBR daily table and per-currency dynamic series.
type CBRFeed struct {
	dailyURL   string
	dynamicURL string
	httpClient *http.Client
	log        *logger.Logger
	requests   *prometheus.CounterVec
}

func NewCBRFeed(dailyURL, dynamicURL string, timeout time.Duration, log *logger.Logger, requests *prometheus.CounterVec) *CBRFeed {
	return &CBRFeed{
		dailyURL:   dailyURL,
		dynamicURL: dynamicURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		requests: requests,
	}
}

// FetchDaily retrieves one full daily table. requestedDate is ISO or empty
// for the latest table. The returned snapshot keeps the feed's own Date
// attribute verbatim, which may differ from the requested date when the
// feed has no data for that day.
func (f *CBRFeed) FetchDaily(ctx context.Context, requestedDate string) (*model.Snapshot, error) {
	params := url.Values{}
	if requestedDate != "" {
		upstreamDate, err := utils.ToUpstreamDate(requestedDate)
		if err != nil {
			return nil, err
		}
		params.Set("date_req", upstreamDate)
	}

	body, err := f.get(ctx, "daily", f.dailyURL, params)
	if err != nil {
		return nil, err
	}

	doc, err := decodeDaily(body)
	if err != nil {
		return nil, fmt.Errorf("decode daily table: %w", err)
	}

	snapshot := &model.Snapshot{
		Date:          doc.Date,
		Items:         make([]model.RateEntry, 0, len(doc.Valutes)),
		RequestedDate: requestedDate,
		Rates:         make(map[string]model.Rate, len(doc.Valutes)+1),
	}

	for _, v := range doc.Valutes {
		charCode := strings.ToUpper(strings.TrimSpace(v.CharCode))
		nominal := parseNominal(v.Nominal)
		value := parseValue(v.Value)

		snapshot.Items = append(snapshot.Items, model.RateEntry{
			ID:       v.ID,
			NumCode:  strings.TrimSpace(v.NumCode),
			CharCode: charCode,
			Name:     v.Name,
			Nominal:  nominal,
			Value:    value,
		})

		if charCode != "" && value != nil && nominal > 0 {
			snapshot.Rates[charCode] = model.Rate{
				RubPerUnit: *value / float64(nominal),
				Nominal:    nominal,
				Name:       v.Name,
				ID:         v.ID,
			}
		}
	}

	snapshot.Count = len(snapshot.Items)
	snapshot.Rates["RUB"] = model.Rate{RubPerUnit: 1.0, Nominal: 1, Name: rubName, ID: "RUB"}

	return snapshot, nil
}

// FetchDynamic retrieves the per-unit series for one internal currency id.
// Records with an unparseable date, value or nominal are dropped; the
// surviving points keep feed order, which is chronological.
func (f *CBRFeed) FetchDynamic(ctx context.Context, currencyID, dateFrom, dateTo string) ([]model.HistoryPoint, error) {
	fromUpstream, err := utils.ToUpstreamDate(dateFrom)
	if err != nil {
		return nil, err
	}
	toUpstream, err := utils.ToUpstreamDate(dateTo)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("date_req1", fromUpstream)
	params.Set("date_req2", toUpstream)
	params.Set("VAL_NM_RQ", currencyID)

	body, err := f.get(ctx, "dynamic", f.dynamicURL, params)
	if err != nil {
		return nil, err
	}

	doc, err := decodeDynamic(body)
	if err != nil {
		return nil, fmt.Errorf("decode dynamic series: %w", err)
	}

	points := make([]model.HistoryPoint, 0, len(doc.Records))
	for _, rec := range doc.Records {
		point, ok := parseDynamicRecord(rec)
		if !ok {
			f.log.Debug("Dropped malformed dynamic record", "date", rec.Date, "value", rec.Value)
			continue
		}
		points = append(points, point)
	}

	return points, nil
}

func parseDynamicRecord(rec dynamicRecord) (model.HistoryPoint, bool) {
	dateISO, err := utils.UpstreamDateToISO(rec.Date)
	if err != nil {
		return model.HistoryPoint{}, false
	}

	value := parseValue(rec.Value)
	nominal := parseNominal(rec.Nominal)
	if value == nil || nominal <= 0 {
		return model.HistoryPoint{}, false
	}

	return model.HistoryPoint{
		Date:       dateISO,
		RubPerUnit: *value / float64(nominal),
	}, true
}

func (f *CBRFeed) get(ctx context.Context, endpoint, baseURL string, params url.Values) ([]byte, error) {
	reqURL := baseURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.countRequest(endpoint, "error")
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.countRequest(endpoint, "error")
		return nil, &UpstreamError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		f.countRequest(endpoint, "error")
		detail := string(body)
		if len(detail) > maxErrorDetail {
			detail = detail[:maxErrorDetail]
		}
		return nil, &UpstreamError{Status: resp.StatusCode, Detail: detail}
	}

	f.countRequest(endpoint, "ok")
	return body, nil
}

func (f *CBRFeed) countRequest(endpoint, outcome string) {
	if f.requests != nil {
		f.requests.WithLabelValues(endpoint, outcome).Inc()
	}
}

// parseValue normalizes a feed decimal (comma separator) and parses it.
// Returns nil when the text is not a number.
func parseValue(s string) *float64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseNominal parses a unit multiplier, defaulting to 1 on absent or
// unparseable input.
func parseNominal(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return n
}
