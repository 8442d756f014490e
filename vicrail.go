// Package vicrail answers "what trains depart this stop, and when" against a
// recurring multi-line rail timetable. It resolves abstract repeating
// timetable entries into concrete calendar-dated services, and searches them
// day by day for upcoming (or past) departures from a stop.
package vicrail

import (
	"errors"
	"time"

	"vicrail.dev/vicrail/network"
	"vicrail.dev/vicrail/schedule"
)

var (
	// ErrStopNotFound indicates a query for a stop the network doesn't have.
	ErrStopNotFound = errors.New("stop not found")

	// ErrLineNotFound indicates a query for a line the network doesn't have.
	ErrLineNotFound = errors.New("line not found")

	// ErrServiceNotFound indicates a service ID whose timetable or entry
	// index doesn't exist in the current data.
	ErrServiceNotFound = errors.New("service not found")
)

// Snapshot is one immutable view of the network and its timetables, built
// from a single data release. Queries capture a snapshot reference once and
// run entirely against it; the refresh process swaps in whole new snapshots
// and never mutates an existing one, so any number of queries may run in
// parallel.
type Snapshot struct {
	Network    *network.Network
	Timetables *schedule.Timetables

	// Location is the civil time zone all timetable times are written in.
	Location *time.Location
}
