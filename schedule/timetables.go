package schedule

import (
	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
)

// Timetables is the full collection of timetables across every line, loaded
// from one data release. Read-only once constructed.
type Timetables struct {
	All []*Timetable
}

// NewTimetables wraps a list of timetables.
func NewTimetables(timetables []*Timetable) *Timetables {
	return &Timetables{All: timetables}
}

// EntryByIndex resolves an occurrence by timetable ID and occurrence index.
// Returns nil if the timetable or index is unknown.
func (ts *Timetables) EntryByIndex(id TimetableID, index int) *Occurrence {
	for _, t := range ts.All {
		if t.ID == id {
			return t.EntryByIndex(index)
		}
	}
	return nil
}

// ForLine returns every timetable belonging to the given line.
func (ts *Timetables) ForLine(line network.LineID) []*Timetable {
	var result []*Timetable
	for _, t := range ts.All {
		if t.Line == line {
			result = append(result, t)
		}
	}
	return result
}

// EffectiveOn returns the timetables in effect on the given day for each of
// the given lines. A temporary timetable in effect displaces the line's main
// timetable for that day. There should only ever be one timetable in effect
// per line, but when several qualify all of them are included rather than
// erroring.
func (ts *Timetables) EffectiveOn(day model.LocalDate, lines []network.LineID) []*Timetable {
	var result []*Timetable
	for _, line := range lines {
		var current, temporary []*Timetable
		for _, t := range ts.ForLine(line) {
			if !t.InEffect(day) {
				continue
			}
			current = append(current, t)
			if t.Kind == KindTemporary {
				temporary = append(temporary, t)
			}
		}
		if len(temporary) > 0 {
			result = append(result, temporary...)
		} else {
			result = append(result, current...)
		}
	}
	return result
}
