package parse

import (
	"encoding/json"
	"fmt"
	"io"

	"vicrail.dev/vicrail/network"
)

type linesJSON struct {
	Lines []lineJSON `json:"lines"`
}

type lineJSON struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Service   string    `json:"service"`
	Route     routeJSON `json:"route"`
	PTVRoutes []int     `json:"ptvRoutes"`
}

// routeJSON covers all three route shapes. Which fields apply depends on
// Type.
type routeJSON struct {
	Type string `json:"type"`

	// linear and city-loop
	Stops []int `json:"stops"`

	// linear
	UpTerminus string `json:"upTerminus"`

	// linear and city-loop
	DownTerminus string `json:"downTerminus"`

	// city-loop
	Portal string `json:"portal"`

	// branch
	Branches []branchJSON `json:"branches"`
}

type branchJSON struct {
	ID           string `json:"id"`
	Stops        []int  `json:"stops"`
	UpTerminus   string `json:"upTerminus"`
	DownTerminus string `json:"downTerminus"`
}

// ParseLines reads the lines.json file of a bundle.
func ParseLines(data io.Reader) ([]*network.Line, error) {
	var file linesJSON
	if err := json.NewDecoder(data).Decode(&file); err != nil {
		return nil, fmt.Errorf("unmarshaling lines json: %w", err)
	}

	lines := make([]*network.Line, 0, len(file.Lines))
	for _, l := range file.Lines {
		if l.Name == "" {
			return nil, fmt.Errorf("line %d has no name", l.ID)
		}

		color, err := network.ParseLineColor(l.Color)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.ID, err)
		}
		service, err := network.ParseServiceClass(l.Service)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.ID, err)
		}
		route, err := parseRoute(l.Route)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.ID, err)
		}

		line, err := network.NewLine(
			network.LineID(l.ID), l.Name, color, service, route, l.PTVRoutes)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func parseRoute(r routeJSON) (network.Route, error) {
	switch network.RouteKind(r.Type) {
	case network.RouteLinear:
		return network.Route{
			Kind: network.RouteLinear,
			Linear: &network.LinearRoute{
				Stops:            stopIDs(r.Stops),
				UpTerminusName:   r.UpTerminus,
				DownTerminusName: r.DownTerminus,
			},
		}, nil

	case network.RouteCityLoop:
		portal, err := network.ParseLoopPortal(r.Portal)
		if err != nil {
			return network.Route{}, err
		}
		return network.Route{
			Kind: network.RouteCityLoop,
			CityLoop: &network.CityLoopRoute{
				Stops:            stopIDs(r.Stops),
				Portal:           portal,
				DownTerminusName: r.DownTerminus,
			},
		}, nil

	case network.RouteBranch:
		if len(r.Branches) == 0 {
			return network.Route{}, fmt.Errorf("branch route has no branches")
		}
		branches := make([]network.Branch, 0, len(r.Branches))
		for _, b := range r.Branches {
			if b.ID == "" {
				return network.Route{}, fmt.Errorf("branch has no ID")
			}
			branches = append(branches, network.Branch{
				ID:               b.ID,
				Stops:            stopIDs(b.Stops),
				UpTerminusName:   b.UpTerminus,
				DownTerminusName: b.DownTerminus,
			})
		}
		return network.Route{
			Kind:   network.RouteBranch,
			Branch: &network.BranchRoute{Branches: branches},
		}, nil

	default:
		return network.Route{}, fmt.Errorf("unknown route type %q", r.Type)
	}
}

func stopIDs(ids []int) []network.StopID {
	stops := make([]network.StopID, 0, len(ids))
	for _, id := range ids {
		stops = append(stops, network.StopID(id))
	}
	return stops
}
