package network

import "fmt"

// LoopPortal is the last stop on a line before it enters the city loop when
// heading up. Which portal a line uses decides the order it visits the loop
// stations in.
type LoopPortal string

const (
	PortalRichmond       LoopPortal = "richmond"
	PortalJolimont       LoopPortal = "jolimont"
	PortalNorthMelbourne LoopPortal = "north-melbourne"
)

// ParseLoopPortal validates a loop portal string.
func ParseLoopPortal(value string) (LoopPortal, error) {
	p := LoopPortal(value)
	if p != PortalRichmond && p != PortalJolimont && p != PortalNorthMelbourne {
		return "", fmt.Errorf("invalid city loop portal %q", value)
	}
	return p, nil
}

// The five city loop stations, plus the three portal stops.
const (
	stopParliament       StopID = 1155
	stopMelbourneCentral StopID = 1120
	stopFlagstaff        StopID = 1068
	stopSouthernCross    StopID = 1181
	stopFlindersStreet   StopID = 1071
	stopRichmond         StopID = 1162
	stopJolimont         StopID = 1104
	stopNorthMelbourne   StopID = 1144
)

// cityStationName is the display name of the up terminus shared by every
// city loop line.
const cityStationName = "Flinders Street"

// stopsToCityDirect returns the stops between the given portal (exclusive)
// and Flinders Street (inclusive) when skipping the loop.
func stopsToCityDirect(portal LoopPortal) ([]StopID, error) {
	switch portal {
	case PortalRichmond, PortalJolimont:
		return []StopID{stopFlindersStreet}, nil
	case PortalNorthMelbourne:
		return []StopID{stopSouthernCross, stopFlindersStreet}, nil
	}
	return nil, fmt.Errorf("invalid city loop portal %q", portal)
}

// stopsToCityViaLoop returns the stops between the given portal (exclusive)
// and Flinders Street (inclusive) when travelling around the loop.
func stopsToCityViaLoop(portal LoopPortal) ([]StopID, error) {
	switch portal {
	case PortalRichmond, PortalJolimont:
		return []StopID{
			stopParliament, stopMelbourneCentral, stopFlagstaff,
			stopSouthernCross, stopFlindersStreet,
		}, nil
	case PortalNorthMelbourne:
		return []StopID{
			stopFlagstaff, stopMelbourneCentral, stopParliament,
			stopFlindersStreet,
		}, nil
	}
	return nil, fmt.Errorf("invalid city loop portal %q", portal)
}
