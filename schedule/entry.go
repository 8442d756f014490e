package schedule

import (
	"fmt"

	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
)

// StopTime is one stop on a repeating entry, paired with the local time the
// service stops there. The time may run past midnight (see model.LocalTime)
// without changing the entry's nominal weekday.
type StopTime struct {
	Stop network.StopID
	Time model.LocalTime
}

// Entry is one repeating scheduled trip pattern within a timetable section.
// Its index is unique across the whole owning timetable, not just its
// section.
type Entry struct {
	Index int
	Times []StopTime
}

// NewEntry validates the index range and that the entry serves at least two
// stops.
func NewEntry(index int, times []StopTime) (Entry, error) {
	if index < 0 || index >= model.MaxEntriesPerTimetable {
		return Entry{}, fmt.Errorf(
			"entry index must be 0-%d inclusive, got %d",
			model.MaxEntriesPerTimetable-1, index)
	}
	if len(times) < 2 {
		return Entry{}, fmt.Errorf("entry %d has fewer than 2 stops", index)
	}
	return Entry{Index: index, Times: times}, nil
}

// TimeAt returns the local time this entry stops at the given stop, or false
// if it skips it.
func (e Entry) TimeAt(stop network.StopID) (model.LocalTime, bool) {
	for _, st := range e.Times {
		if st.Stop == stop {
			return st.Time, true
		}
	}
	return model.LocalTime{}, false
}

// StopsAt reports whether the entry serves the given stop.
func (e Entry) StopsAt(stop network.StopID) bool {
	_, ok := e.TimeAt(stop)
	return ok
}
