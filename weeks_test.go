package vicrail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vicrail.dev/vicrail/model"
)

func melbourne(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)
	return loc
}

func TestWeekOf(t *testing.T) {
	anchor := model.LocalDate{Year: 2022, Month: time.January, Day: 3}

	assert.Equal(t, 0, WeekOf(anchor))
	assert.Equal(t, 0, WeekOf(anchor.AddDays(6)))
	assert.Equal(t, 1, WeekOf(anchor.AddDays(7)))
	assert.Equal(t, 35, WeekOf(anchor.AddDays(-7)))
	assert.Equal(t, 35, WeekOf(anchor.AddDays(-1)))
	assert.Equal(t, 0, WeekOf(anchor.AddDays(36*7)))
}

func TestCurrentWeek(t *testing.T) {
	loc := melbourne(t)

	// 2023-07-12 is 555 days past the anchor, in cycle week 7.
	now := time.Date(2023, time.July, 12, 10, 0, 0, 0, loc)
	assert.Equal(t, 7, CurrentWeek(now, loc))

	// The week is read off the civil date in the timetable's zone, not UTC.
	lateEvening := time.Date(2023, time.July, 16, 23, 30, 0, 0, loc)
	assert.Equal(t, 7, CurrentWeek(lateEvening, loc))
	assert.Equal(t, 8, CurrentWeek(lateEvening.Add(time.Hour), loc))
}

func TestMondayOfWeek(t *testing.T) {
	loc := melbourne(t)
	now := time.Date(2023, time.July, 12, 10, 0, 0, 0, loc)
	thisMonday := model.LocalDate{Year: 2023, Month: time.July, Day: 10}

	monday, err := MondayOfWeek(7, now, loc)
	require.NoError(t, err)
	assert.Equal(t, thisMonday, monday)

	monday, err = MondayOfWeek(8, now, loc)
	require.NoError(t, err)
	assert.Equal(t, thisMonday.AddDays(7), monday)

	// 18 weeks ahead still resolves forward.
	monday, err = MondayOfWeek(25, now, loc)
	require.NoError(t, err)
	assert.Equal(t, thisMonday.AddDays(18*7), monday)

	// 19 ahead would be closer behind.
	monday, err = MondayOfWeek(26, now, loc)
	require.NoError(t, err)
	assert.Equal(t, thisMonday.AddDays(-17*7), monday)

	_, err = MondayOfWeek(-1, now, loc)
	assert.Error(t, err)
	_, err = MondayOfWeek(36, now, loc)
	assert.Error(t, err)
}

func TestMondayOfWeekProperties(t *testing.T) {
	loc := melbourne(t)
	now := time.Date(2024, time.March, 22, 18, 45, 0, 0, loc)
	today := model.DateOf(now.In(loc))

	for week := 0; week < model.WeeksPerCycle; week++ {
		monday, err := MondayOfWeek(week, now, loc)
		require.NoError(t, err)

		// The resolved date is a Monday of the requested week number, at
		// most 18 weeks ahead or 17 behind.
		assert.Equal(t, model.Monday, monday.Weekday())
		assert.Equal(t, week, WeekOf(monday))

		distance := monday.DaysSince(today)
		assert.LessOrEqual(t, distance, 18*7)
		assert.GreaterOrEqual(t, distance, -18*7)
	}
}
