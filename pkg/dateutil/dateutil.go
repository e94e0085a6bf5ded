package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the layout of charge months ("2024-03").
const MonthLayout = "2006-01"

// isoLayouts are tried in order when parsing dates coming from the document store.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISODate parses the date formats the data layer emits. Empty input is
// reported with ok=false rather than an error since payment dates are nullable.
func ParseISODate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMonth parses a "YYYY-MM" month key.
func ParseMonth(raw string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", raw)
	}
	return t, nil
}

// MonthKey formats a date as its "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// SameMonth reports whether two dates fall in the same calendar month and year.
// Each date is read in its own location, as written.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
