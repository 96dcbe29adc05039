package model

// RateEntry is one raw record from the feed's daily table. Value is nil
// when the feed's text could not be parsed as a number; such entries stay
// in Snapshot.Items but are excluded from Snapshot.Rates.
type RateEntry struct {
	ID       string   `json:"id"`
	NumCode  string   `json:"num_code"`
	CharCode string   `json:"char_code"`
	Name     string   `json:"name"`
	Nominal  int      `json:"nominal"`
	Value    *float64 `json:"value"`
}

// Rate is the normalized per-unit view of one currency.
type Rate struct {
	RubPerUnit float64 `json:"rub_per_unit"`
	Nominal    int     `json:"nominal"`
	Name       string  `json:"name"`
	ID         string  `json:"id"`
}

// Snapshot is the full daily rate table for one effective date. Date is
// the feed's own DD.MM.YYYY value and may differ from the requested date
// when the feed has no data for that day. Rates always contains RUB at 1.0.
type Snapshot struct {
	Date          string          `json:"date"`
	Count         int             `json:"count"`
	Items         []RateEntry     `json:"items"`
	RequestedDate string          `json:"requested_date_iso,omitempty"`
	Rates         map[string]Rate `json:"rates_map"`
}

// CurrencyInfo is the /cbr/currencies list element.
type CurrencyInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CurrencyList struct {
	Date  string         `json:"date"`
	Items []CurrencyInfo `json:"items"`
}
