package network

import "fmt"

// Network holds every stop and line. It is built once per data refresh and
// never mutated afterwards, so queries may share it freely across goroutines.
//
// Stops and lines are kept in insertion order, which follows the source data
// and keeps output deterministic.
type Network struct {
	hash string

	stops     []*Stop
	stopIndex map[StopID]int

	lines     []*Line
	lineIndex map[LineID]int
}

// Hash identifies the data release this network was built from, e.g.
// "2022-04-30". Clients cache network data and use the hash to detect
// staleness.
func (n *Network) Hash() string {
	return n.hash
}

// Stop returns the stop with the given ID, or nil.
func (n *Network) Stop(id StopID) *Stop {
	i, ok := n.stopIndex[id]
	if !ok {
		return nil
	}
	return n.stops[i]
}

// StopByURLName returns the stop with the given URL name, or nil.
func (n *Network) StopByURLName(urlName string) *Stop {
	for _, s := range n.stops {
		if s.URLName == urlName {
			return s
		}
	}
	return nil
}

// Stops returns every stop, in insertion order.
func (n *Network) Stops() []*Stop {
	return n.stops
}

// Line returns the line with the given ID, or nil.
func (n *Network) Line(id LineID) *Line {
	i, ok := n.lineIndex[id]
	if !ok {
		return nil
	}
	return n.lines[i]
}

// Lines returns every line, in insertion order.
func (n *Network) Lines() []*Line {
	return n.lines
}

// LinesAt returns every line that serves the given stop in any direction, in
// insertion order.
func (n *Network) LinesAt(stop StopID) []*Line {
	var result []*Line
	for _, l := range n.lines {
		if l.StopsAt(stop) {
			result = append(result, l)
		}
	}
	return result
}

// StopsServedBy returns the ordered stop list for one direction of a line.
func (n *Network) StopsServedBy(line LineID, direction DirectionID) ([]StopID, error) {
	l := n.Line(line)
	if l == nil {
		return nil, fmt.Errorf("line %d not found", line)
	}
	d := l.Direction(direction)
	if d == nil {
		return nil, fmt.Errorf("line %d has no direction %q", line, direction)
	}
	return d.Stops, nil
}

// Builder accumulates stops and lines, then validates them into an immutable
// Network. All mutation happens here; the built network is read-only.
type Builder struct {
	hash  string
	stops []*Stop
	lines []*Line
}

// NewBuilder creates a network builder. The hash identifies the data release
// the network is built from.
func NewBuilder(hash string) *Builder {
	return &Builder{hash: hash}
}

func (b *Builder) AddStop(stop *Stop) *Builder {
	b.stops = append(b.stops, stop)
	return b
}

func (b *Builder) AddLine(line *Line) *Builder {
	b.lines = append(b.lines, line)
	return b
}

// Build validates cross-references and freezes the network. Duplicate IDs or
// lines referencing unknown stops indicate broken source data and fail the
// build.
func (b *Builder) Build() (*Network, error) {
	n := &Network{
		hash:      b.hash,
		stops:     b.stops,
		stopIndex: make(map[StopID]int, len(b.stops)),
		lines:     b.lines,
		lineIndex: make(map[LineID]int, len(b.lines)),
	}

	for i, s := range b.stops {
		if _, dup := n.stopIndex[s.ID]; dup {
			return nil, fmt.Errorf("duplicate stop ID %d", s.ID)
		}
		n.stopIndex[s.ID] = i
	}

	for i, l := range b.lines {
		if _, dup := n.lineIndex[l.ID]; dup {
			return nil, fmt.Errorf("duplicate line ID %d", l.ID)
		}
		n.lineIndex[l.ID] = i

		for _, stop := range l.AllStops() {
			if _, ok := n.stopIndex[stop]; !ok {
				return nil, fmt.Errorf("line %d serves unknown stop %d", l.ID, stop)
			}
		}
	}

	return n, nil
}
