package shared

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate reads a calendar date. RFC3339 timestamps are accepted and cut
// down to their UTC date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	y, m, d := parsed.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// NormalizeDate rewrites a valid date into DateLayout and leaves anything
// else untouched for the domain to reject.
func NormalizeDate(value string) string {
	parsed, err := ParseDate(value)
	if err != nil {
		return value
	}
	return parsed.Format(DateLayout)
}
