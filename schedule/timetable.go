package schedule

import (
	"fmt"

	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
)

// TimetableID is the integer identifier of a timetable. It must fit 2 base-36
// digits (0-1295); by convention its first base-36 digit matches the line ID.
type TimetableID int

// TimetableKind says whether a timetable is the line's standing timetable or
// a temporary override.
type TimetableKind string

const (
	KindMain      TimetableKind = "main"
	KindTemporary TimetableKind = "temporary"
)

// ParseTimetableKind validates a timetable kind string.
func ParseTimetableKind(value string) (TimetableKind, error) {
	k := TimetableKind(value)
	if k != KindMain && k != KindTemporary {
		return "", fmt.Errorf("invalid timetable kind %q", value)
	}
	return k, nil
}

// Timetable is a recurring timetable for one line: the contents of a single
// .ttbl file. Read-only once constructed.
type Timetable struct {
	ID   TimetableID
	Line network.LineID

	// Created is the date the timetable was originally authored, used to see
	// how recently each line's data has been updated.
	Created model.LocalDate

	Kind TimetableKind

	// Begins and Ends bound the validity window. A nil date is a wildcard:
	// nil Begins applies retroactively to every past day, nil Ends means no
	// known end date.
	Begins *model.LocalDate
	Ends   *model.LocalDate

	Sections []Section
}

// NewTimetable validates the ID range and the section index layout: entries
// within each section must be contiguous from the section's start index, and
// section index spans must not overlap.
func NewTimetable(id TimetableID, line network.LineID, created model.LocalDate,
	kind TimetableKind, begins, ends *model.LocalDate,
	sections []Section) (*Timetable, error) {

	if id < 0 || int(id) >= model.MaxTimetables {
		return nil, fmt.Errorf(
			"timetable ID must be 0-%d inclusive, got %d", model.MaxTimetables-1, id)
	}

	for si := range sections {
		s := &sections[si]
		for i, e := range s.Entries {
			if e.Index != s.StartIndex+i {
				return nil, fmt.Errorf(
					"timetable %d: entry index %d does not follow its section (want %d)",
					id, e.Index, s.StartIndex+i)
			}
		}
		end := s.StartIndex + s.IndexSpan()
		if end > model.MaxEntriesPerTimetable {
			return nil, fmt.Errorf("timetable %d: index space exhausted", id)
		}
		for sj := range sections[:si] {
			o := &sections[sj]
			if s.StartIndex < o.StartIndex+o.IndexSpan() && o.StartIndex < end {
				return nil, fmt.Errorf("timetable %d: overlapping section index ranges", id)
			}
		}
	}

	return &Timetable{
		ID:       id,
		Line:     line,
		Created:  created,
		Kind:     kind,
		Begins:   begins,
		Ends:     ends,
		Sections: sections,
	}, nil
}

// InEffect reports whether the timetable applies on the given day, treating
// nil bounds as wildcards.
func (t *Timetable) InEffect(day model.LocalDate) bool {
	if t.Begins != nil && day.Before(*t.Begins) {
		return false
	}
	if t.Ends != nil && day.After(*t.Ends) {
		return false
	}
	return true
}

// Occurrence is an entry occurrence resolved against its timetable: the
// entry's stop times together with the line, direction, and nominal weekday
// it runs on.
type Occurrence struct {
	Timetable TimetableID
	Line      network.LineID
	Direction network.DirectionID
	Weekday   model.DayOfWeek
	Index     int
	Times     []StopTime
}

// EntryByIndex resolves a timetable-wide occurrence index, or returns nil if
// no section covers it.
func (t *Timetable) EntryByIndex(index int) *Occurrence {
	for si := range t.Sections {
		s := &t.Sections[si]
		entry, day, ok := s.EntryByIndex(index)
		if !ok {
			continue
		}
		return &Occurrence{
			Timetable: t.ID,
			Line:      t.Line,
			Direction: s.Direction,
			Weekday:   day,
			Index:     index,
			Times:     entry.Times,
		}
	}
	return nil
}
