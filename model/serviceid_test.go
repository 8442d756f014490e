package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeServiceID(t *testing.T) {
	id, err := ComposeServiceID(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ServiceID(0), id)
	assert.Equal(t, "000000", id.String())

	id, err = ComposeServiceID(1295, 46655, 35)
	require.NoError(t, err)
	assert.Equal(t, "zzzzzz", id.String())

	for _, tc := range []struct{ timetable, index, week int }{
		{-1, 0, 0},
		{1296, 0, 0},
		{0, -1, 0},
		{0, 46656, 0},
		{0, 0, -1},
		{0, 0, 36},
	} {
		_, err := ComposeServiceID(tc.timetable, tc.index, tc.week)
		assert.ErrorIs(t, err, ErrInvalidServiceID)
	}
}

func TestServiceIDComponents(t *testing.T) {
	for _, tc := range []struct{ timetable, index, week int }{
		{0, 0, 0},
		{1, 2, 3},
		{102, 1553, 20},
		{1295, 46655, 35},
	} {
		id, err := ComposeServiceID(tc.timetable, tc.index, tc.week)
		require.NoError(t, err)

		timetable, index, week := id.Components()
		assert.Equal(t, tc.timetable, timetable)
		assert.Equal(t, tc.index, index)
		assert.Equal(t, tc.week, week)
	}
}

func TestParseServiceID(t *testing.T) {
	id, err := ComposeServiceID(102, 1553, 20)
	require.NoError(t, err)

	encoded := id.String()
	assert.Len(t, encoded, 6)

	parsed, err := ParseServiceID(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	// Small IDs are zero padded.
	small, err := ComposeServiceID(0, 1, 5)
	require.NoError(t, err)
	parsed, err = ParseServiceID(small.String())
	require.NoError(t, err)
	assert.Equal(t, small, parsed)

	for _, bad := range []string{"", "zzzzz", "zzzzzzz", "00000!", "0000 0", "ABCDEF", "00-000"} {
		_, err := ParseServiceID(bad)
		assert.ErrorIs(t, err, ErrInvalidServiceID, bad)
	}
}
