package model

import (
	"fmt"
	"time"
)

// LocalDate is a calendar date with no attached time zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewLocalDate creates a LocalDate, validating the components against the
// proleptic Gregorian calendar.
func NewLocalDate(year int, month time.Month, day int) (LocalDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return LocalDate{}, fmt.Errorf("date with year=%d, month=%d, day=%d is invalid", year, int(month), day)
	}
	return LocalDate{Year: year, Month: month, Day: day}, nil
}

// ParseLocalDate parses an ISO-8601 date string, e.g. "2022-07-21". Strings
// with a time component attached are rejected.
func ParseLocalDate(iso string) (LocalDate, error) {
	if len(iso) != 10 {
		return LocalDate{}, fmt.Errorf("%q is an invalid date string", iso)
	}
	t, err := time.ParseInLocation("2006-01-02", iso, time.UTC)
	if err != nil {
		return LocalDate{}, fmt.Errorf("%q is an invalid date string", iso)
	}
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf extracts the calendar date of the given instant, in the instant's
// own location.
func DateOf(t time.Time) LocalDate {
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns midnight on this date in the given civil time zone.
func (d LocalDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d LocalDate) Before(other LocalDate) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

func (d LocalDate) After(other LocalDate) bool {
	return d.Time(time.UTC).After(other.Time(time.UTC))
}

// AddDays returns the date n days after this one (n may be negative).
func (d LocalDate) AddDays(n int) LocalDate {
	t := d.Time(time.UTC).AddDate(0, 0, n)
	return DateOf(t)
}

func (d LocalDate) Yesterday() LocalDate {
	return d.AddDays(-1)
}

func (d LocalDate) Tomorrow() LocalDate {
	return d.AddDays(1)
}

// Weekday returns the day of the week this date falls on.
func (d LocalDate) Weekday() DayOfWeek {
	// time.Weekday numbers from Sunday, DayOfWeek from Monday.
	return DayOfWeek((int(d.Time(time.UTC).Weekday()) + 6) % 7)
}

// DaysSince returns the number of whole days from other to this date.
func (d LocalDate) DaysSince(other LocalDate) int {
	return int(d.Time(time.UTC).Sub(other.Time(time.UTC)) / (24 * time.Hour))
}

// String formats the date as ISO-8601, e.g. "2022-07-21".
func (d LocalDate) String() string {
	return d.Time(time.UTC).Format("2006-01-02")
}
