package utils

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/constants"
)

// ParseDate parses an optional "YYYY-MM-DD" string. A nil or empty input
// yields a nil date.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(constants.DateFormat, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders a date in the wire format, or nil when unset.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(constants.DateFormat)
	return &s
}
