package model

import "fmt"

// CacheKind names a cached payload family.
type CacheKind string

const KindDaily CacheKind = "daily"

// CacheKey identifies one cached payload. Date is the requested ISO date,
// empty for "latest"; an empty date and an explicit today are distinct keys.
type CacheKey struct {
	Kind CacheKind
	Date string
}

func (k CacheKey) String() string {
	if k.Date == "" {
		return fmt.Sprintf("%s-latest", k.Kind)
	}
	return fmt.Sprintf("%s-%s", k.Kind, k.Date)
}
