package utils

import (
	"errors"
	"time"
)

// Date layouts used by the CBR feed. Requests take DD/MM/YYYY in the
// query string; responses carry DD.MM.YYYY in Date attributes.
const (
	ISODateLayout      = "2006-01-02"
	upstreamReqLayout  = "02/01/2006"
	upstreamRespLayout = "02.01.2006"
)

var ErrInvalidDate = errors.New("invalid date")

// ParseISODate validates a YYYY-MM-DD string and returns the parsed day.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, dateStr)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ToUpstreamDate converts YYYY-MM-DD into the DD/MM/YYYY form the feed
// expects in query parameters.
func ToUpstreamDate(isoDate string) (string, error) {
	t, err := ParseISODate(isoDate)
	if err != nil {
		return "", err
	}
	return t.Format(upstreamReqLayout), nil
}

// UpstreamDateToISO converts the feed's DD.MM.YYYY into YYYY-MM-DD.
func UpstreamDateToISO(upstreamDate string) (string, error) {
	t, err := time.Parse(upstreamRespLayout, upstreamDate)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(ISODateLayout), nil
}

func FormatISODate(date time.Time) string {
	return date.Format(ISODateLayout)
}
