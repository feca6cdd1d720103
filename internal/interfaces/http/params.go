package http

import (
	"fmt"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

// dateParam reads a required YYYY-MM-DD query parameter. An absent
// parameter defaults to today.
func dateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date, expected YYYY-MM-DD", name)
	}
	return parsed, nil
}

// optionalDateParam reads an optional YYYY-MM-DD query parameter
func optionalDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date, expected YYYY-MM-DD", name)
	}
	return &parsed, nil
}

// parseDate parses a YYYY-MM-DD request body field
func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	return parsed, nil
}
