package model

import "fmt"

// WeekdaySet records which days of the week a timetable section runs on. The
// textual form is a 7-character mask starting from Monday, e.g. "MTWT___" for
// Monday to Thursday, or "_____SS" for weekends.
type WeekdaySet struct {
	days [7]bool
}

var maskLetters = [7]byte{'M', 'T', 'W', 'T', 'F', 'S', 'S'}

// NewWeekdaySet creates a WeekdaySet from per-day booleans, Monday first.
func NewWeekdaySet(days ...bool) (WeekdaySet, error) {
	if len(days) != 7 {
		return WeekdaySet{}, fmt.Errorf("a weekday set needs 7 days, got %d", len(days))
	}
	var s WeekdaySet
	copy(s.days[:], days)
	return s, nil
}

// ParseWeekdaySet parses a 7-character mask, e.g. "MTWTF__". Each position
// must hold either that day's letter or an underscore.
func ParseWeekdaySet(value string) (WeekdaySet, error) {
	if len(value) != 7 {
		return WeekdaySet{}, fmt.Errorf("%q is not a valid weekday set", value)
	}
	var s WeekdaySet
	for i := 0; i < 7; i++ {
		switch value[i] {
		case maskLetters[i]:
			s.days[i] = true
		case '_':
			s.days[i] = false
		default:
			return WeekdaySet{}, fmt.Errorf("%q is not a valid weekday set", value)
		}
	}
	return s, nil
}

// Includes reports whether the given day is part of the set.
func (s WeekdaySet) Includes(day DayOfWeek) bool {
	return s.days[day]
}

// Count returns the number of days in the set.
func (s WeekdaySet) Count() int {
	n := 0
	for _, set := range s.days {
		if set {
			n++
		}
	}
	return n
}

// IndexOf returns the ordinal position of the given day among the set days,
// e.g. 2 for Wednesday in "MTW____". Returns -1 if the day is not in the set.
// This ordinal decides the per-weekday offset applied to entry indices.
func (s WeekdaySet) IndexOf(day DayOfWeek) int {
	if !s.days[day] {
		return -1
	}
	n := 0
	for i := 0; i < int(day); i++ {
		if s.days[i] {
			n++
		}
	}
	return n
}

// DayByIndex is the inverse of IndexOf: it returns the i-th set day, erroring
// if i is out of range.
func (s WeekdaySet) DayByIndex(i int) (DayOfWeek, error) {
	if i >= 0 {
		n := 0
		for day := 0; day < 7; day++ {
			if !s.days[day] {
				continue
			}
			if n == i {
				return DayOfWeek(day), nil
			}
			n++
		}
	}
	return 0, fmt.Errorf("weekday set %s has no day at index %d", s, i)
}

// String formats the set as a 7-character mask, e.g. "MTWT___".
func (s WeekdaySet) String() string {
	mask := make([]byte, 7)
	for i := 0; i < 7; i++ {
		if s.days[i] {
			mask[i] = maskLetters[i]
		} else {
			mask[i] = '_'
		}
	}
	return string(mask)
}
