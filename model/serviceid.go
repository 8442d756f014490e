package model

import (
	"errors"
	"fmt"
	"strconv"
)

// A ServiceID packs everything needed to recover one concrete service into a
// single integer, rendered as 6 base-36 digits: two digits of timetable ID,
// three digits of entry index, and one digit of week number.
type ServiceID int64

const (
	// MaxTimetables bounds timetable IDs, which must fit 2 base-36 digits.
	MaxTimetables = 36 * 36

	// MaxEntriesPerTimetable bounds entry indices, which must fit 3 base-36
	// digits.
	MaxEntriesPerTimetable = 36 * 36 * 36

	// WeeksPerCycle is the length of the repeating week cycle. A week number
	// fits a single base-36 digit.
	WeeksPerCycle = 36
)

// ErrInvalidServiceID indicates a service ID string or component that is out
// of range or malformed.
var ErrInvalidServiceID = errors.New("invalid service ID")

// ComposeServiceID packs a timetable ID, entry index, and week number into a
// ServiceID.
func ComposeServiceID(timetable int, index int, week int) (ServiceID, error) {
	if timetable < 0 || timetable >= MaxTimetables {
		return 0, fmt.Errorf("%w: timetable %d out of range", ErrInvalidServiceID, timetable)
	}
	if index < 0 || index >= MaxEntriesPerTimetable {
		return 0, fmt.Errorf("%w: entry index %d out of range", ErrInvalidServiceID, index)
	}
	if week < 0 || week >= WeeksPerCycle {
		return 0, fmt.Errorf("%w: week %d out of range", ErrInvalidServiceID, week)
	}
	return ServiceID(timetable)*36*36*36*36 + ServiceID(index)*36 + ServiceID(week), nil
}

// Components unpacks the timetable ID, entry index, and week number.
func (id ServiceID) Components() (timetable int, index int, week int) {
	timetable = int(id / (36 * 36 * 36 * 36))
	index = int(id / 36 % (36 * 36 * 36))
	week = int(id % 36)
	return timetable, index, week
}

// String encodes the ID as a 6-character base-36 string, zero-padded, e.g.
// "1d05xa".
func (id ServiceID) String() string {
	return fmt.Sprintf("%06s", strconv.FormatInt(int64(id), 36))
}

// ParseServiceID decodes a 6-character base-36 string. Anything that is not
// exactly 6 characters of [0-9a-z] is rejected.
func ParseServiceID(value string) (ServiceID, error) {
	if len(value) != 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidServiceID, value)
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return 0, fmt.Errorf("%w: %q", ErrInvalidServiceID, value)
		}
	}
	parsed, err := strconv.ParseInt(value, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidServiceID, value)
	}
	return ServiceID(parsed), nil
}
