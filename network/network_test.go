package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStop(id StopID, name string) *Stop {
	return &Stop{
		ID:      id,
		Name:    name,
		URLName: name,
		Platforms: []Platform{
			{ID: "1", Name: "Platform 1"},
		},
	}
}

func testLine(t *testing.T, id LineID, name string, stops []StopID) *Line {
	t.Helper()
	line, err := NewLine(id, name, ColorRed, ClassSuburban, Route{
		Kind: RouteLinear,
		Linear: &LinearRoute{
			Stops:            stops,
			UpTerminusName:   "City",
			DownTerminusName: name,
		},
	}, nil)
	require.NoError(t, err)
	return line
}

func TestNetworkBuilder(t *testing.T) {
	net, err := NewBuilder("2022-04-30").
		AddStop(testStop(1, "alpha")).
		AddStop(testStop(2, "beta")).
		AddStop(testStop(3, "gamma")).
		AddLine(testLine(t, 1, "first", []StopID{1, 2})).
		AddLine(testLine(t, 2, "second", []StopID{2, 3})).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "2022-04-30", net.Hash())

	assert.Equal(t, "alpha", net.Stop(1).Name)
	assert.Nil(t, net.Stop(99))
	assert.Equal(t, StopID(2), net.StopByURLName("beta").ID)
	assert.Nil(t, net.StopByURLName("nope"))

	assert.Equal(t, "first", net.Line(1).Name)
	assert.Nil(t, net.Line(99))

	assert.Len(t, net.Stops(), 3)
	assert.Len(t, net.Lines(), 2)
}

func TestNetworkBuilderRejectsDuplicates(t *testing.T) {
	_, err := NewBuilder("x").
		AddStop(testStop(1, "alpha")).
		AddStop(testStop(1, "beta")).
		Build()
	assert.Error(t, err)

	_, err = NewBuilder("x").
		AddStop(testStop(1, "alpha")).
		AddStop(testStop(2, "beta")).
		AddLine(testLine(t, 1, "first", []StopID{1, 2})).
		AddLine(testLine(t, 1, "second", []StopID{1, 2})).
		Build()
	assert.Error(t, err)
}

func TestNetworkBuilderRejectsUnknownStops(t *testing.T) {
	_, err := NewBuilder("x").
		AddStop(testStop(1, "alpha")).
		AddLine(testLine(t, 1, "first", []StopID{1, 2})).
		Build()
	assert.Error(t, err)
}

func TestLinesAt(t *testing.T) {
	net, err := NewBuilder("x").
		AddStop(testStop(1, "alpha")).
		AddStop(testStop(2, "beta")).
		AddStop(testStop(3, "gamma")).
		AddLine(testLine(t, 1, "first", []StopID{1, 2})).
		AddLine(testLine(t, 2, "second", []StopID{2, 3})).
		Build()
	require.NoError(t, err)

	lines := net.LinesAt(2)
	require.Len(t, lines, 2)
	assert.Equal(t, LineID(1), lines[0].ID)
	assert.Equal(t, LineID(2), lines[1].ID)

	assert.Len(t, net.LinesAt(3), 1)
	assert.Empty(t, net.LinesAt(99))
}

func TestStopsServedBy(t *testing.T) {
	net, err := NewBuilder("x").
		AddStop(testStop(1, "alpha")).
		AddStop(testStop(2, "beta")).
		AddLine(testLine(t, 1, "first", []StopID{1, 2})).
		Build()
	require.NoError(t, err)

	stops, err := net.StopsServedBy(1, "down")
	require.NoError(t, err)
	assert.Equal(t, []StopID{2, 1}, stops)

	_, err = net.StopsServedBy(1, "sideways")
	assert.Error(t, err)
	_, err = net.StopsServedBy(9, "up")
	assert.Error(t, err)
}

func TestLineDirectionLookups(t *testing.T) {
	line := testLine(t, 1, "first", []StopID{1, 2, 3})

	up := line.Direction("up")
	require.NotNil(t, up)
	assert.Equal(t, []StopID{1, 2, 3}, up.Stops)
	assert.Nil(t, line.Direction("loop"))

	assert.True(t, line.StopsAt(2))
	assert.False(t, line.StopsAt(9))
	assert.ElementsMatch(t, []StopID{1, 2, 3}, line.AllStops())
}

func TestGeneralDirections(t *testing.T) {
	assert.True(t, IsUpDirection("up"))
	assert.True(t, IsUpDirection("up-via-loop"))
	assert.True(t, IsUpDirection("echuca-up"))
	assert.False(t, IsUpDirection("down"))
	assert.False(t, IsUpDirection("upward"))

	assert.True(t, IsDownDirection("down"))
	assert.True(t, IsDownDirection("down-direct"))
	assert.True(t, IsDownDirection("swan-hill-down"))
	assert.False(t, IsDownDirection("up-via-loop"))
}
