package network

import "fmt"

// Line is a train line, e.g. the "Pakenham" line. Its directions are derived
// from its route once, at construction, and cached.
type Line struct {
	ID      LineID
	Name    string
	Color   LineColor
	Service ServiceClass
	Route   Route

	// ExternalRoutes holds the route IDs this line maps to in the upstream
	// operator's API. A single line here may cover several routes there.
	ExternalRoutes []int

	directions []Direction
	allStops   []StopID
}

// NewLine builds a line and derives its directions from the route. The
// direction stop sequences are validated here: a direction may not visit the
// same stop twice, and each down direction must be the exact reverse of its
// up counterpart.
func NewLine(id LineID, name string, color LineColor, service ServiceClass,
	route Route, externalRoutes []int) (*Line, error) {

	directions, err := route.Directions()
	if err != nil {
		return nil, fmt.Errorf("deriving directions for line %d: %w", id, err)
	}

	for _, d := range directions {
		seen := make(map[StopID]bool, len(d.Stops))
		for _, stop := range d.Stops {
			if seen[stop] {
				return nil, fmt.Errorf(
					"line %d direction %q visits stop %d twice", id, d.ID, stop)
			}
			seen[stop] = true
		}
	}

	return &Line{
		ID:             id,
		Name:           name,
		Color:          color,
		Service:        service,
		Route:          route,
		ExternalRoutes: externalRoutes,
		directions:     directions,
		allStops:       collectStops(directions),
	}, nil
}

// Directions returns every direction this line runs in.
func (l *Line) Directions() []Direction {
	return l.directions
}

// Direction returns the direction with the given ID, or nil if the line has
// no such direction.
func (l *Line) Direction(id DirectionID) *Direction {
	for i := range l.directions {
		if l.directions[i].ID == id {
			return &l.directions[i]
		}
	}
	return nil
}

// StopsAt reports whether any direction of this line serves the given stop.
func (l *Line) StopsAt(stop StopID) bool {
	for _, s := range l.allStops {
		if s == stop {
			return true
		}
	}
	return false
}

// AllStops returns every stop served by any direction of this line, each stop
// once, in first-seen order.
func (l *Line) AllStops() []StopID {
	return l.allStops
}

func collectStops(directions []Direction) []StopID {
	var result []StopID
	seen := map[StopID]bool{}
	for _, d := range directions {
		for _, s := range d.Stops {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}
	return result
}
