package model

type HistoryPoint struct {
	Date       string  `json:"date"`
	RubPerUnit float64 `json:"rub_per_unit"`
}

// History is a per-unit time series for one currency. Points are in feed
// order, which is chronological; the feed may skip non-trading days.
type History struct {
	Code   string         `json:"code"`
	Name   string         `json:"name"`
	From   string         `json:"from"`
	To     string         `json:"to"`
	Points []HistoryPoint `json:"points"`
}

// Conversion is the result of a cross-rate computation. Rate and Result
// are nil when the target currency's per-unit value is zero.
type Conversion struct {
	Date   string   `json:"date"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount float64  `json:"amount"`
	Rate   *float64 `json:"rate"`
	Result *float64 `json:"result"`
}
