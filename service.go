package vicrail

import (
	"fmt"
	"time"

	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
	"vicrail.dev/vicrail/schedule"
)

// Service is a timetable entry pinned to a specific calendar day: the 16:17
// Traralgon train on the 22nd of July, rather than "the 16:17 on weekdays".
// Services are derived fresh per query and never stored or mutated.
type Service struct {
	ID        model.ServiceID
	Line      network.LineID
	Direction network.DirectionID

	// Weekday is the nominal timetabled day. Stops past midnight fall on the
	// following calendar day without changing it.
	Weekday model.DayOfWeek

	Stops []ServiceStop
}

// ServiceStop is one stop of a concrete service.
type ServiceStop struct {
	Stop network.StopID

	// Time is the absolute instant the service stops there, in UTC.
	Time time.Time

	// Platform is the guessed platform, or "" when the platform rules could
	// not narrow it down to one candidate.
	Platform network.PlatformID

	// SetDownOnly marks stops where passengers may alight but not board.
	SetDownOnly bool
}

// StopAt returns this service's call at the given stop, or nil if it skips
// it.
func (s *Service) StopAt(stop network.StopID) *ServiceStop {
	for i := range s.Stops {
		if s.Stops[i].Stop == stop {
			return &s.Stops[i]
		}
	}
	return nil
}

// Specificize pins an entry occurrence to the calendar using the week number
// carried in the service ID: it resolves the concrete date, converts each
// timetable time to a UTC instant, and attaches the guessed platform and
// set-down-only flag per stop.
//
// The now parameter anchors week resolution (see MondayOfWeek) and is passed
// explicitly so results are deterministic.
func (s *Snapshot) Specificize(occ *schedule.Occurrence, id model.ServiceID, now time.Time) (*Service, error) {
	line := s.Network.Line(occ.Line)
	if line == nil {
		return nil, fmt.Errorf("specificizing service %v: %w: %d", id, ErrLineNotFound, occ.Line)
	}

	_, _, week := id.Components()
	monday, err := MondayOfWeek(week, now, s.Location)
	if err != nil {
		return nil, fmt.Errorf("specificizing service %v: %w", id, err)
	}
	date := monday.AddDays(int(occ.Weekday))
	midnight := date.Time(s.Location)

	pattern := make([]network.StopID, len(occ.Times))
	for i, st := range occ.Times {
		pattern[i] = st.Stop
	}

	stops := make([]ServiceStop, len(occ.Times))
	for i, st := range occ.Times {
		// Times past midnight (minute of day >= 1440) spill into the next
		// calendar day through plain offset addition.
		instant := midnight.Add(time.Duration(st.Time.MinuteOfDay) * time.Minute).UTC()

		platform, _ := s.Network.GuessPlatform(st.Stop, network.PlatformClues{
			Line:            occ.Line,
			Direction:       occ.Direction,
			StoppingPattern: pattern,
			Weekday:         occ.Weekday,
			Time:            instant,
		})

		stops[i] = ServiceStop{
			Stop:        st.Stop,
			Time:        instant,
			Platform:    platform,
			SetDownOnly: s.isSetDownOnly(st.Stop, line, occ.Direction),
		}
	}

	return &Service{
		ID:        id,
		Line:      occ.Line,
		Direction: occ.Direction,
		Weekday:   occ.Weekday,
		Stops:     stops,
	}, nil
}

// ResolveService looks up a concrete service by its ID: the ID names the
// timetable, entry occurrence, and week, which is everything needed to
// rebuild the service. Returns ErrServiceNotFound if the current data has no
// such entry.
func (s *Snapshot) ResolveService(id model.ServiceID, now time.Time) (*Service, error) {
	timetable, index, _ := id.Components()

	occ := s.Timetables.EntryByIndex(schedule.TimetableID(timetable), index)
	if occ == nil {
		return nil, fmt.Errorf("resolving service %v: %w", id, ErrServiceNotFound)
	}

	return s.Specificize(occ, id, now)
}
