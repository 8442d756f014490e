package model

import "fmt"

// DayOfWeek is a day of the week, stored as the number of days since Monday,
// e.g. 3 for Thursday. Valid values are 0-6 inclusive.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayCodes = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NewDayOfWeek creates a DayOfWeek from a days-since-Monday value, erroring
// if it is outside 0-6.
func NewDayOfWeek(daysSinceMonday int) (DayOfWeek, error) {
	if daysSinceMonday < 0 || daysSinceMonday >= 7 {
		return 0, fmt.Errorf("%d is not a valid days since Monday value", daysSinceMonday)
	}
	return DayOfWeek(daysSinceMonday), nil
}

func (d DayOfWeek) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

func (d DayOfWeek) IsWeekday() bool {
	return !d.IsWeekend()
}

// Yesterday returns the previous day of the week, wrapping from Monday to
// Sunday.
func (d DayOfWeek) Yesterday() DayOfWeek {
	return (d + 6) % 7
}

// Tomorrow returns the next day of the week, wrapping from Sunday to Monday.
func (d DayOfWeek) Tomorrow() DayOfWeek {
	return (d + 1) % 7
}

// Code returns the three-letter code for this day, e.g. "thu".
func (d DayOfWeek) Code() string {
	return dayCodes[d]
}

// Name returns the full name of this day, e.g. "Thursday".
func (d DayOfWeek) Name() string {
	return dayNames[d]
}
