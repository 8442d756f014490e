package parse

import (
	"encoding/json"
	"fmt"
	"io"

	"vicrail.dev/vicrail/network"
)

type stopsJSON struct {
	Stops []stopJSON `json:"stops"`
}

type stopJSON struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	URLName   string         `json:"urlName"`
	Platforms []platformJSON `json:"platforms"`
	Adjacent  []int          `json:"adjacent"`
	PTVID     int            `json:"ptvID"`
}

type platformJSON struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Rules []string `json:"rules"`
}

// ParseStops reads the stops.json file of a bundle.
func ParseStops(data io.Reader) ([]*network.Stop, error) {
	var file stopsJSON
	if err := json.NewDecoder(data).Decode(&file); err != nil {
		return nil, fmt.Errorf("unmarshaling stops json: %w", err)
	}

	stops := make([]*network.Stop, 0, len(file.Stops))
	for _, s := range file.Stops {
		if s.Name == "" {
			return nil, fmt.Errorf("stop %d has no name", s.ID)
		}
		if s.URLName == "" {
			return nil, fmt.Errorf("stop %d has no url name", s.ID)
		}
		if len(s.Platforms) == 0 {
			return nil, fmt.Errorf("stop %d has no platforms", s.ID)
		}

		platforms := make([]network.Platform, 0, len(s.Platforms))
		for _, p := range s.Platforms {
			if p.ID == "" || p.Name == "" {
				return nil, fmt.Errorf("stop %d has a platform without ID or name", s.ID)
			}
			rules := make([]network.PlatformRule, 0, len(p.Rules))
			for _, r := range p.Rules {
				rules = append(rules, network.ParsePlatformRule(r))
			}
			platforms = append(platforms, network.Platform{
				ID:    network.PlatformID(p.ID),
				Name:  p.Name,
				Rules: rules,
			})
		}

		adjacent := make([]network.StopID, 0, len(s.Adjacent))
		for _, a := range s.Adjacent {
			adjacent = append(adjacent, network.StopID(a))
		}

		stops = append(stops, &network.Stop{
			ID:         network.StopID(s.ID),
			Name:       s.Name,
			URLName:    s.URLName,
			Platforms:  platforms,
			Adjacent:   adjacent,
			ExternalID: s.PTVID,
		})
	}

	return stops, nil
}
