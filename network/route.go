package network

import "fmt"

// RouteKind tags which variant of Route is populated.
type RouteKind string

const (
	RouteLinear   RouteKind = "linear"
	RouteCityLoop RouteKind = "city-loop"
	RouteBranch   RouteKind = "branch"
)

// Route describes the shape of a line: the stops it visits and therefore the
// directions it can run in. Exactly one of the variant fields is non-nil,
// matching Kind.
type Route struct {
	Kind     RouteKind
	Linear   *LinearRoute
	CityLoop *CityLoopRoute
	Branch   *BranchRoute
}

// LinearRoute is a line running between two termini with no loops or
// branches, so it has exactly two directions: "up" and "down".
type LinearRoute struct {
	// Stops holds the line's stops in order, down terminus first.
	Stops []StopID

	// The terminus names are provided here because the route has no access
	// to stop names, and uses them to name its directions.
	UpTerminusName   string
	DownTerminusName string
}

// CityLoopRoute is a linear run of stops from the down terminus up to (and
// including) one of the city loop portals. The five loop stations are not
// stored; they are appended from the fixed portal topology, giving four
// directions: up-direct, up-via-loop, down-direct and down-via-loop.
type CityLoopRoute struct {
	Stops            []StopID
	Portal           LoopPortal
	DownTerminusName string
}

// BranchRoute is a line that splits into two or more branches. Each branch
// carries its complete stop list, including any stops shared with other
// branches, and contributes its own up/down direction pair.
type BranchRoute struct {
	Branches []Branch
}

// Branch is one arm of a BranchRoute. Its ID prefixes the direction IDs, so
// branch "echuca" runs in directions "echuca-up" and "echuca-down".
type Branch struct {
	ID               string
	Stops            []StopID
	UpTerminusName   string
	DownTerminusName string
}

// Direction is a named, ordered sequence of stops a line can run through.
type Direction struct {
	ID    DirectionID
	Name  string
	Stops []StopID
}

// Directions derives every direction this route can run in. The result is
// deterministic for a given route, so lines compute it once at construction
// and cache it.
func (r Route) Directions() ([]Direction, error) {
	switch r.Kind {
	case RouteLinear:
		if r.Linear == nil {
			return nil, fmt.Errorf("linear route data missing")
		}
		return r.Linear.directions(), nil
	case RouteCityLoop:
		if r.CityLoop == nil {
			return nil, fmt.Errorf("city loop route data missing")
		}
		return r.CityLoop.directions()
	case RouteBranch:
		if r.Branch == nil {
			return nil, fmt.Errorf("branch route data missing")
		}
		return r.Branch.directions()
	}
	return nil, fmt.Errorf("unknown route kind %q", r.Kind)
}

func (r *LinearRoute) directions() []Direction {
	return []Direction{
		{ID: "up", Name: r.UpTerminusName, Stops: copyStops(r.Stops)},
		{ID: "down", Name: r.DownTerminusName, Stops: reverseStops(r.Stops)},
	}
}

func (r *CityLoopRoute) directions() ([]Direction, error) {
	direct, err := stopsToCityDirect(r.Portal)
	if err != nil {
		return nil, err
	}
	viaLoop, err := stopsToCityViaLoop(r.Portal)
	if err != nil {
		return nil, err
	}

	upDirect := append(copyStops(r.Stops), direct...)
	upViaLoop := append(copyStops(r.Stops), viaLoop...)

	return []Direction{
		{ID: "up-direct", Name: cityStationName, Stops: upDirect},
		{ID: "up-via-loop", Name: cityStationName + " via City Loop", Stops: upViaLoop},
		{ID: "down-direct", Name: r.DownTerminusName, Stops: reverseStops(upDirect)},
		{ID: "down-via-loop", Name: r.DownTerminusName + " via City Loop", Stops: reverseStops(upViaLoop)},
	}, nil
}

func (r *BranchRoute) directions() ([]Direction, error) {
	if len(r.Branches) == 0 {
		return nil, fmt.Errorf("branch route has no branches")
	}

	if err := checkSharedPrefixOrder(r.Branches); err != nil {
		return nil, err
	}

	result := make([]Direction, 0, len(r.Branches)*2)
	for _, b := range r.Branches {
		result = append(result,
			Direction{
				ID:    DirectionID(b.ID + "-up"),
				Name:  b.UpTerminusName,
				Stops: copyStops(b.Stops),
			},
			Direction{
				ID:    DirectionID(b.ID + "-down"),
				Name:  b.DownTerminusName,
				Stops: reverseStops(b.Stops),
			},
		)
	}
	return result, nil
}

// checkSharedPrefixOrder verifies that stops appearing on multiple branches
// appear in the same relative order on each of them.
func checkSharedPrefixOrder(branches []Branch) error {
	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			a, b := branches[i], branches[j]

			posB := make(map[StopID]int, len(b.Stops))
			for pos, stop := range b.Stops {
				posB[stop] = pos
			}

			lastPos := -1
			for _, stop := range a.Stops {
				pos, shared := posB[stop]
				if !shared {
					continue
				}
				if pos <= lastPos {
					return fmt.Errorf(
						"branches %q and %q order their shared stops differently",
						a.ID, b.ID)
				}
				lastPos = pos
			}
		}
	}
	return nil
}

func copyStops(stops []StopID) []StopID {
	out := make([]StopID, len(stops))
	copy(out, stops)
	return out
}

func reverseStops(stops []StopID) []StopID {
	out := make([]StopID, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = s
	}
	return out
}
