package models

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the canonical wire format for calendar dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the canonical wire format for times of day.
	ClockLayout = "15:04"

	MinutesPerDay = 24 * 60
)

// MinutesToClock renders minutes-from-midnight as "HH:MM".
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClockToMinutes parses an "HH:MM" string into minutes from midnight.
func ClockToMinutes(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate parses a "2006-01-02" date string into midnight in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
