package network

// Stop is a station on the network. Stops are read-only once the network is
// built.
type Stop struct {
	ID   StopID
	Name string

	// URLName is the name as used in URLs: lowercase, a-z and 0-9 only.
	// Unique across the network, but not stable across renames, so it must
	// never be used as an identifier.
	URLName string

	Platforms []Platform

	// Adjacent lists the stops next to this one on any line, with no other
	// stop in between. Express running does not affect adjacency.
	Adjacent []StopID

	// ExternalID is this stop's ID in the upstream operator's API.
	ExternalID int
}

// Platform returns the platform with the given ID, or nil if the stop has no
// such platform.
func (s *Stop) Platform(id PlatformID) *Platform {
	for i := range s.Platforms {
		if s.Platforms[i].ID == id {
			return &s.Platforms[i]
		}
	}
	return nil
}
