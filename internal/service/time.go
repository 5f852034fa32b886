package service

import (
	"fmt"
	"time"
)

// parseDateTime accepts RFC 3339 timestamps or bare dates.
func parseDateTime(field, s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be an ISO 8601 date", ErrInvalidInput, field)
}

func parseDateTimePtr(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDateTime(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
