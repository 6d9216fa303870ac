package models

import "time"

// Layouts accepted for event instants. Forms submit timezone-naive
// datetime-local values; API clients may send RFC 3339.
var instantLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseInstant parses a timezone-naive event instant.
func ParseInstant(s string) (time.Time, error) {
	var err error
	for _, layout := range instantLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
