package network

import "strings"

// StopID is the stable integer identifier for a stop. It tends to match the
// ID used by the upstream operator API, but nothing may rely on that.
type StopID int

// LineID is the stable integer identifier for a line.
type LineID int

// PlatformID identifies a platform within a single stop. It usually matches
// the station signage, e.g. "1" or "15a", so it is a string rather than a
// number.
type PlatformID string

// DirectionID identifies a specific ordered sequence of stops on a line.
// Simple lines run "up" and "down"; city loop lines run "up-direct",
// "up-via-loop", "down-direct" and "down-via-loop"; branched lines prefix the
// branch name, e.g. "echuca-up".
type DirectionID string

// IsUpDirection reports whether the direction is city-bound in the general
// sense, covering "up" itself as well as variants like "up-via-loop" and
// "echuca-up".
func IsUpDirection(d DirectionID) bool {
	return generalDirection(d, "up")
}

// IsDownDirection reports whether the direction heads away from the city in
// the general sense.
func IsDownDirection(d DirectionID) bool {
	return generalDirection(d, "down")
}

func generalDirection(d DirectionID, general string) bool {
	s := string(d)
	return s == general ||
		strings.HasPrefix(s, general+"-") ||
		strings.HasSuffix(s, "-"+general)
}
