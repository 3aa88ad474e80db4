package service

import "time"

// nowFunc lets tests pin the clock.
type nowFunc func() time.Time

func defaultNow() time.Time { return time.Now() }

// parseTimePtr parses an optional RFC3339 timestamp.
func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
