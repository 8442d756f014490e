package vicrail

import "vicrail.dev/vicrail/network"

// Stops where suburban passengers are explicitly permitted to board
// city-bound regional trains, exempting them from the set-down-only rule.
var boardingExceptionStops = []network.StopID{
	1153, // Pakenham
	1187, // Sunbury
}

// isSetDownOnly reports whether a call at the given stop discharges
// passengers only. City-bound regional trains calling at a stop that suburban
// trains also serve are set down only, except at the few stops above.
func (s *Snapshot) isSetDownOnly(stop network.StopID, line *network.Line, direction network.DirectionID) bool {
	if line.Service != network.ClassRegional {
		return false
	}
	if !network.IsUpDirection(direction) {
		return false
	}

	for _, exception := range boardingExceptionStops {
		if stop == exception {
			return false
		}
	}

	for _, other := range s.Network.LinesAt(stop) {
		if other.Service == network.ClassSuburban {
			return true
		}
	}
	return false
}
