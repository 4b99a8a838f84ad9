package types

import (
	"time"

	"github.com/pkg/errors"
)

const (
	DateKeyLayout  = "2006-01-02"
	MonthKeyLayout = "2006-01"
)

// DateKey formats the calendar fields of t as seen in t's own location.
// Callers convert to the application location first; nothing here goes
// through UTC.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// DateKeyIn is DateKey after moving t into loc.
func DateKeyIn(t time.Time, loc *time.Location) string {
	return DateKey(t.In(loc))
}

// ParseDateKey returns local midnight of key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", key)
	}
	return t, nil
}

func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseMonthKey returns the first day of the month named by key in loc.
func ParseMonthKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(MonthKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing month %q", key)
	}
	return t, nil
}
