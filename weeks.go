package vicrail

import (
	"fmt"
	"time"

	"vicrail.dev/vicrail/model"
)

// weekAnchor is the Monday the repeating week cycle is counted from: the
// first Monday of 2022. Week numbers are the whole weeks elapsed since this
// date, modulo the cycle length.
var weekAnchor = model.LocalDate{Year: 2022, Month: time.January, Day: 3}

// WeekOf returns the week number (0-35) of the week containing the given
// date.
func WeekOf(date model.LocalDate) int {
	return posMod(floorDiv(date.DaysSince(weekAnchor), 7), model.WeeksPerCycle)
}

// CurrentWeek returns the week number of the week containing the given
// instant, read in the given civil time zone. The instant is always an
// explicit parameter so week arithmetic stays deterministic under test.
func CurrentWeek(now time.Time, loc *time.Location) int {
	return WeekOf(model.DateOf(now.In(loc)))
}

// MondayOfWeek resolves a week number to the Monday of its closest
// occurrence to now. Every week number recurs every 36 weeks; the occurrence
// chosen is the next one if it is at most 18 weeks ahead, otherwise the
// previous one, which is then at most 17 weeks back. At exactly 18 weeks both
// are equidistant and the forward one wins.
func MondayOfWeek(week int, now time.Time, loc *time.Location) (model.LocalDate, error) {
	if week < 0 || week >= model.WeeksPerCycle {
		return model.LocalDate{}, fmt.Errorf("%d is not a valid week number", week)
	}

	current := CurrentWeek(now, loc)

	diff := week - current
	nextOffset := diff
	if diff < 0 {
		nextOffset = diff + model.WeeksPerCycle
	}
	prevOffset := diff
	if diff >= 0 {
		prevOffset = diff - model.WeeksPerCycle
	}

	offset := prevOffset
	if nextOffset <= 18 {
		offset = nextOffset
	}

	return mondayOf(model.DateOf(now.In(loc))).AddDays(offset * 7), nil
}

// mondayOf returns the Monday of the week containing the given date.
func mondayOf(date model.LocalDate) model.LocalDate {
	return date.AddDays(-int(date.Weekday()))
}

func posMod(x, m int) int {
	return (x%m + m) % m
}

func floorDiv(x, d int) int {
	q := x / d
	if x%d != 0 && (x < 0) != (d < 0) {
		q--
	}
	return q
}
