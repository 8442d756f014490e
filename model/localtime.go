package model

import (
	"fmt"
	"regexp"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

var timePattern = regexp.MustCompile(`^[0-9]{1,2}:[0-9]{2}$`)

// LocalTime is a time of day as printed in a timetable, stored as minutes
// since midnight. Values of 1440 and above (up to, but excluding, 2880)
// represent times on the following calendar day, which timetables use for
// services that run past midnight without changing their nominal weekday.
type LocalTime struct {
	MinuteOfDay int
}

// NewLocalTime creates a LocalTime from a minute of day value, e.g. 74 for
// 1:14am. Values outside [0, 2880) are rejected.
func NewLocalTime(minuteOfDay int) (LocalTime, error) {
	if minuteOfDay < 0 || minuteOfDay >= 2*MinutesPerDay {
		return LocalTime{}, fmt.Errorf("minute of day %d is out of range for a local time", minuteOfDay)
	}
	return LocalTime{MinuteOfDay: minuteOfDay}, nil
}

// ParseLocalTime parses a 24-hour "H:MM" or "HH:MM" string, e.g. "2:04" or
// "15:28". A time occurring on the next day is indicated with the nextDay
// flag; this layer never infers it from markers inside the string.
func ParseLocalTime(value string, nextDay bool) (LocalTime, error) {
	if !timePattern.MatchString(value) {
		return LocalTime{}, fmt.Errorf("%q cannot be interpreted as a local time", value)
	}

	var hour, minute int
	fmt.Sscanf(value, "%d:%d", &hour, &minute)
	if hour >= 24 || minute >= 60 {
		return LocalTime{}, fmt.Errorf("%q cannot be interpreted as a local time", value)
	}

	if nextDay {
		hour += 24
	}
	return NewLocalTime(hour*60 + minute)
}

// StartOfTomorrow is the first minute of the following day, i.e. midnight
// expressed as a next-day time.
func StartOfTomorrow() LocalTime {
	return LocalTime{MinuteOfDay: MinutesPerDay}
}

// IsNextDay reports whether this time occurs on the following calendar day.
func (t LocalTime) IsNextDay() bool {
	return t.MinuteOfDay >= MinutesPerDay
}

func (t LocalTime) Before(other LocalTime) bool {
	return t.MinuteOfDay < other.MinuteOfDay
}

func (t LocalTime) After(other LocalTime) bool {
	return t.MinuteOfDay > other.MinuteOfDay
}

func (t LocalTime) BeforeOrEqual(other LocalTime) bool {
	return t.MinuteOfDay <= other.MinuteOfDay
}

func (t LocalTime) AfterOrEqual(other LocalTime) bool {
	return t.MinuteOfDay >= other.MinuteOfDay
}

// Yesterday returns the same time of day expressed from the previous day's
// point of view, i.e. 24 hours earlier. Errors if the result would be
// negative.
func (t LocalTime) Yesterday() (LocalTime, error) {
	return NewLocalTime(t.MinuteOfDay - MinutesPerDay)
}

// Tomorrow returns the same time of day expressed from the following day's
// point of view, i.e. 24 hours later. Errors if the result would exceed the
// representable range.
func (t LocalTime) Tomorrow() (LocalTime, error) {
	return NewLocalTime(t.MinuteOfDay + MinutesPerDay)
}

// String formats the time as "HH:MM". Next-day times keep counting up, e.g.
// 24 minutes past the following midnight is "24:24".
func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.MinuteOfDay/60, t.MinuteOfDay%60)
}
