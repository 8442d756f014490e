package vicrail

import (
	"fmt"
	"sort"
	"time"

	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/network"
	"vicrail.dev/vicrail/schedule"
)

// maxSearchDays caps how many civil days the departure search will walk
// before giving up, whether or not it has found enough departures.
const maxSearchDays = 15

// Departure is one service leaving the queried stop, with that stop's call
// pulled out for convenience.
type Departure struct {
	Stop        network.StopID
	Time        time.Time
	Platform    network.PlatformID
	SetDownOnly bool
	Service     *Service
}

// possibility is a departure candidate before specificizing: an entry
// occurrence and the local time it calls at the queried stop, expressed in
// the frame of the day being searched.
type possibility struct {
	timetable schedule.TimetableID
	index     int
	time      model.LocalTime
}

// Departures finds up to count departures from a stop. Forward searches
// return departures at or after the anchor instant, earliest first; reverse
// searches return departures at or before it, latest first. Each service
// appears at most once, even when its call at the stop is listed both on its
// timetabled day and as the following day's spillover.
//
// The search walks civil days outward from the anchor date, one day at a
// time, collecting each day's candidates (including services that began the
// previous day and reach the stop after midnight), specificizing them, and
// applying the filter, until count departures are found or maxSearchDays is
// exhausted.
func (s *Snapshot) Departures(stop network.StopID, anchor time.Time, count int,
	reverse bool, filter string) ([]Departure, error) {

	if s.Network.Stop(stop) == nil {
		return nil, fmt.Errorf("stop %d: %w", stop, ErrStopNotFound)
	}
	if count <= 0 {
		return nil, nil
	}

	var lines []network.LineID
	for _, l := range s.Network.LinesAt(stop) {
		lines = append(lines, l.ID)
	}

	local := anchor.In(s.Location)
	anchorDate := model.DateOf(local)
	anchorTime, err := model.NewLocalTime(local.Hour()*60 + local.Minute())
	if err != nil {
		return nil, fmt.Errorf("converting anchor time: %w", err)
	}

	parsedFilter := parseDepartureFilter(s.Network, stop, filter)

	var results []Departure
	seen := make(map[model.ServiceID]struct{}, count)

	for offset := 0; offset < maxSearchDays && len(results) < count; offset++ {
		day := anchorDate.AddDays(offset)
		if reverse {
			day = anchorDate.AddDays(-offset)
		}

		// Only the anchor day is bounded by the anchor time; every further
		// day is searched in full.
		var minTime, maxTime *model.LocalTime
		if offset == 0 {
			if reverse {
				maxTime = &anchorTime
			} else {
				minTime = &anchorTime
			}
		}

		today := s.Timetables.EffectiveOn(day, lines)
		yesterday := s.Timetables.EffectiveOn(day.Yesterday(), lines)

		candidates, err := completePossibilities(
			yesterday, today, stop, day.Weekday(), minTime, maxTime)
		if err != nil {
			return nil, err
		}

		if reverse {
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[j].time.Before(candidates[i].time)
			})
		} else {
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].time.Before(candidates[j].time)
			})
		}

		week := WeekOf(day)
		weekday := day.Weekday()

		for i := range candidates {
			departure, err := s.specificizeCandidate(&candidates[i], stop, weekday, week, anchor)
			if err != nil {
				return nil, err
			}

			// Days beyond the anchor day are searched without time bounds, so
			// an entry listed past midnight can resolve to an instant on the
			// wrong side of the anchor.
			if reverse {
				if departure.Time.After(anchor) {
					continue
				}
			} else if departure.Time.Before(anchor) {
				continue
			}

			// A service listed past midnight on its own day comes up again as
			// the following day's spillover. Keep the first copy.
			if _, dup := seen[departure.Service.ID]; dup {
				continue
			}

			if parsedFilter.keep(departure) {
				seen[departure.Service.ID] = struct{}{}
				results = append(results, *departure)
			}
		}
	}

	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

// specificizeCandidate turns one candidate into a full departure. Candidates
// that spilled over from the previous day belong to that day's week; when the
// previous day was a Sunday, that is the previous cycle week.
func (s *Snapshot) specificizeCandidate(candidate *possibility, stop network.StopID,
	weekday model.DayOfWeek, week int, now time.Time) (*Departure, error) {

	occ := s.Timetables.EntryByIndex(candidate.timetable, candidate.index)
	if occ == nil {
		return nil, fmt.Errorf(
			"timetable %d has no entry at index %d", candidate.timetable, candidate.index)
	}

	entryWeek := week
	if occ.Weekday > weekday {
		entryWeek = posMod(week-1, model.WeeksPerCycle)
	}

	id, err := model.ComposeServiceID(int(candidate.timetable), candidate.index, entryWeek)
	if err != nil {
		return nil, fmt.Errorf("building service ID: %w", err)
	}

	service, err := s.Specificize(occ, id, now)
	if err != nil {
		return nil, err
	}

	call := service.StopAt(stop)
	if call == nil {
		return nil, fmt.Errorf("service %v does not stop at %d", id, stop)
	}

	return &Departure{
		Stop:        stop,
		Time:        call.Time,
		Platform:    call.Platform,
		SetDownOnly: call.SetDownOnly,
		Service:     service,
	}, nil
}

// completePossibilities collects every candidate departing the stop on the
// given day of week: the day's own entries, plus spillover from entries
// timetabled the previous day whose call at this stop is past midnight.
// Spillover times are shifted back 24 hours into the current day's frame so
// the merged list shares one ordering.
func completePossibilities(yesterday, today []*schedule.Timetable,
	stop network.StopID, weekday model.DayOfWeek,
	minTime, maxTime *model.LocalTime) ([]possibility, error) {

	if (minTime != nil && minTime.IsNextDay()) || (maxTime != nil && maxTime.IsNextDay()) {
		return nil, fmt.Errorf("departure search bounds cannot be next-day times")
	}

	// From yesterday's point of view only the post-midnight tail matters, so
	// the bounds move forward a day.
	minYesterday := model.StartOfTomorrow()
	if minTime != nil {
		shifted, err := minTime.Tomorrow()
		if err != nil {
			return nil, err
		}
		minYesterday = shifted
	}
	var maxYesterday *model.LocalTime
	if maxTime != nil {
		shifted, err := maxTime.Tomorrow()
		if err != nil {
			return nil, err
		}
		maxYesterday = &shifted
	}

	spillover := possibilitiesOn(yesterday, stop, weekday.Yesterday(), &minYesterday, maxYesterday)
	for i := range spillover {
		shifted, err := spillover[i].time.Yesterday()
		if err != nil {
			return nil, err
		}
		spillover[i].time = shifted
	}

	return append(spillover, possibilitiesOn(today, stop, weekday, minTime, maxTime)...), nil
}

// possibilitiesOn collects candidates from the given timetables whose
// sections run on the given day of week and whose entries call at the stop
// within the optional time bounds. It does not consider spillover from the
// previous day.
func possibilitiesOn(timetables []*schedule.Timetable, stop network.StopID,
	weekday model.DayOfWeek, minTime, maxTime *model.LocalTime) []possibility {

	var result []possibility

	for _, t := range timetables {
		for si := range t.Sections {
			section := &t.Sections[si]
			if !section.Weekdays.Includes(weekday) {
				continue
			}

			// The same entry carries a distinct index for each weekday it
			// runs on; without the weekday offset every occurrence would
			// resolve to the section's first active day.
			indexOffset := section.Weekdays.IndexOf(weekday) * len(section.Entries)

			for _, entry := range section.Entries {
				stopTime, ok := entry.TimeAt(stop)
				if !ok {
					continue
				}
				if minTime != nil && stopTime.Before(*minTime) {
					continue
				}
				if maxTime != nil && stopTime.After(*maxTime) {
					continue
				}

				result = append(result, possibility{
					timetable: t.ID,
					index:     entry.Index + indexOffset,
					time:      stopTime,
				})
			}
		}
	}

	return result
}
