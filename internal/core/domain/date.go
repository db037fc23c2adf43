package domain

import (
	"strings"
	"time"
)

var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseEventDate accepts the date formats clients send for events. Values
// without a zone are read as UTC.
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, Invalid("Invalid date")
}
