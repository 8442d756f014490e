package schedule

import (
	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
)

// Section groups the entries of a timetable that run in a common direction on
// the same days of the week.
//
// Each entry occupies one index slot per weekday it runs on: a section with n
// entries over d weekdays spans indices [StartIndex, StartIndex + n*d). The
// slots are laid out by weekday first, so the occurrence of entry j on the
// k-th set weekday has index StartIndex + k*n + j. An index alone therefore
// identifies both an entry and the weekday it runs on.
type Section struct {
	Direction  network.DirectionID
	Weekdays   model.WeekdaySet
	StartIndex int
	Entries    []Entry
}

// IndexSpan returns the number of index slots this section occupies.
func (s *Section) IndexSpan() int {
	return len(s.Entries) * s.Weekdays.Count()
}

// HasIndex reports whether the given timetable-wide index addresses an
// occurrence in this section.
func (s *Section) HasIndex(index int) bool {
	return index >= s.StartIndex && index < s.StartIndex+s.IndexSpan()
}

// EntryByIndex recovers the entry and weekday addressed by a timetable-wide
// index. Returns false if the index is outside this section.
func (s *Section) EntryByIndex(index int) (Entry, model.DayOfWeek, bool) {
	if !s.HasIndex(index) {
		return Entry{}, 0, false
	}

	offset := index - s.StartIndex
	day, err := s.Weekdays.DayByIndex(offset / len(s.Entries))
	if err != nil {
		return Entry{}, 0, false
	}
	return s.Entries[offset%len(s.Entries)], day, true
}

// IndexOf returns the timetable-wide index of the given entry's occurrence on
// the given weekday, or false if the entry or weekday is foreign to this
// section.
func (s *Section) IndexOf(entry Entry, day model.DayOfWeek) (int, bool) {
	ordinal := s.Weekdays.IndexOf(day)
	if ordinal < 0 {
		return 0, false
	}
	local := entry.Index - s.StartIndex
	if local < 0 || local >= len(s.Entries) {
		return 0, false
	}
	return s.StartIndex + ordinal*len(s.Entries) + local, true
}
