package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vicrail.dev/vicrail/model"
)

func guessTestNetwork(t *testing.T, platforms []Platform) *Network {
	t.Helper()

	suburban, err := NewLine(1, "Hillside", ColorCyan, ClassSuburban, Route{
		Kind: RouteLinear,
		Linear: &LinearRoute{
			Stops:            []StopID{30, 20, 10},
			UpTerminusName:   "City",
			DownTerminusName: "Hillside",
		},
	}, nil)
	require.NoError(t, err)

	regional, err := NewLine(2, "Plains", ColorPurple, ClassRegional, Route{
		Kind: RouteLinear,
		Linear: &LinearRoute{
			Stops:            []StopID{40, 30, 20, 10},
			UpTerminusName:   "City",
			DownTerminusName: "Plains",
		},
	}, nil)
	require.NoError(t, err)

	net, err := NewBuilder("test").
		AddStop(&Stop{ID: 10, Name: "city", URLName: "city", Platforms: []Platform{{ID: "1", Name: "1"}}}).
		AddStop(&Stop{ID: 20, Name: "junction", URLName: "junction", Platforms: platforms}).
		AddStop(&Stop{ID: 30, Name: "suburb", URLName: "suburb", Platforms: []Platform{{ID: "1", Name: "1"}}}).
		AddStop(&Stop{ID: 40, Name: "plains", URLName: "plains", Platforms: []Platform{{ID: "1", Name: "1"}}}).
		AddLine(suburban).
		AddLine(regional).
		Build()
	require.NoError(t, err)

	return net
}

func clues(line LineID, direction DirectionID, pattern []StopID) PlatformClues {
	return PlatformClues{
		Line:            line,
		Direction:       direction,
		StoppingPattern: pattern,
		Weekday:         model.Thursday,
	}
}

func TestGuessPlatformSinglePlatform(t *testing.T) {
	net := guessTestNetwork(t, []Platform{{ID: "1", Name: "1"}})

	// One platform needs no rules at all.
	platform, ok := net.GuessPlatform(30, clues(1, "up", []StopID{30, 20, 10}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("1"), platform)
}

func TestGuessPlatformByDirection(t *testing.T) {
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1", Rules: []PlatformRule{ParsePlatformRule("up")}},
		{ID: "2", Name: "2", Rules: []PlatformRule{ParsePlatformRule("down")}},
	})

	platform, ok := net.GuessPlatform(20, clues(1, "up", []StopID{30, 20, 10}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("1"), platform)

	platform, ok = net.GuessPlatform(20, clues(1, "down", []StopID{10, 20, 30}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("2"), platform)
}

func TestGuessPlatformByServiceClass(t *testing.T) {
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1", Rules: []PlatformRule{ParsePlatformRule("up suburban")}},
		{ID: "2", Name: "2", Rules: []PlatformRule{ParsePlatformRule("down")}},
		{ID: "3", Name: "3", Rules: []PlatformRule{ParsePlatformRule("regional")}},
	})

	platform, ok := net.GuessPlatform(20, clues(2, "up", []StopID{40, 30, 20, 10}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("3"), platform)

	platform, ok = net.GuessPlatform(20, clues(1, "up", []StopID{30, 20, 10}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("1"), platform)
}

func TestGuessPlatformNegationAndDays(t *testing.T) {
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1", Rules: []PlatformRule{ParsePlatformRule("up !weekend")}},
		{ID: "2", Name: "2", Rules: []PlatformRule{ParsePlatformRule("up weekend")}},
	})

	c := clues(1, "up", []StopID{30, 20, 10})
	c.Weekday = model.Tuesday
	platform, ok := net.GuessPlatform(20, c)
	assert.True(t, ok)
	assert.Equal(t, PlatformID("1"), platform)

	c.Weekday = model.Sunday
	platform, ok = net.GuessPlatform(20, c)
	assert.True(t, ok)
	assert.Equal(t, PlatformID("2"), platform)
}

func TestGuessPlatformStoppingPattern(t *testing.T) {
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1", Rules: []PlatformRule{ParsePlatformRule("terminates-at-10")}},
		{ID: "2", Name: "2", Rules: []PlatformRule{ParsePlatformRule("originates-at-40")}},
	})

	// Terminates at the city: platform 1. But a run from the plains matches
	// platform 2 as well, which leaves a tie.
	platform, ok := net.GuessPlatform(20, clues(1, "up", []StopID{30, 20, 10}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("1"), platform)

	_, ok = net.GuessPlatform(20, clues(2, "up", []StopID{40, 30, 20, 10}))
	assert.False(t, ok)
}

func TestGuessPlatformAmbiguity(t *testing.T) {
	// No rules anywhere: every platform is a candidate, so no guess.
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1"},
		{ID: "2", Name: "2"},
	})

	platform, ok := net.GuessPlatform(20, clues(1, "up", []StopID{30, 20, 10}))
	assert.False(t, ok)
	assert.Equal(t, PlatformID(""), platform)
}

func TestGuessPlatformUnknownClauseNeverMatches(t *testing.T) {
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1", Rules: []PlatformRule{ParsePlatformRule("hovercraft")}},
		{ID: "2", Name: "2", Rules: []PlatformRule{ParsePlatformRule("up")}},
	})

	platform, ok := net.GuessPlatform(20, clues(1, "up", []StopID{30, 20, 10}))
	assert.True(t, ok)
	assert.Equal(t, PlatformID("2"), platform)
}

func TestGuessPlatformDeterministic(t *testing.T) {
	net := guessTestNetwork(t, []Platform{
		{ID: "1", Name: "1", Rules: []PlatformRule{ParsePlatformRule("up suburban !weekend")}},
		{ID: "2", Name: "2", Rules: []PlatformRule{ParsePlatformRule("down")}},
		{ID: "3", Name: "3", Rules: []PlatformRule{ParsePlatformRule("regional terminates-at-10")}},
	})

	// Identical clues must always produce the identical guess.
	inputs := []PlatformClues{
		clues(1, "up", []StopID{30, 20, 10}),
		clues(1, "down", []StopID{10, 20, 30}),
		clues(2, "up", []StopID{40, 30, 20, 10}),
	}
	for _, c := range inputs {
		first, firstOK := net.GuessPlatform(20, c)
		for i := 0; i < 10; i++ {
			again, againOK := net.GuessPlatform(20, c)
			assert.Equal(t, first, again)
			assert.Equal(t, firstOK, againOK)
		}
	}
}

func TestGuessPlatformUnknownStopOrLine(t *testing.T) {
	net := guessTestNetwork(t, []Platform{{ID: "1", Name: "1"}})

	_, ok := net.GuessPlatform(99, clues(1, "up", nil))
	assert.False(t, ok)

	_, ok = net.GuessPlatform(20, clues(99, "up", nil))
	assert.False(t, ok)
}
