package vicrail

import (
	"strconv"
	"strings"

	"vicrail.dev/vicrail/network"
)

// departureFilter is a parsed departure filter string. Every recognized token
// becomes one predicate; a departure passes when all predicates hold.
// Predicates are pure functions of an already-computed departure, so applying
// a filter twice is the same as applying it once.
type departureFilter struct {
	preds []func(*Departure) bool
}

// parseDepartureFilter parses a space-separated filter string, e.g.
// "narr nsdo up". Recognized tokens:
//
//	narr            drop services terminating at the queried stop
//	nsdo            drop set-down-only departures
//	up / down       keep one general direction
//	direction-<id>  keep one specific direction
//	line-<id>       keep one line
//	service-<class> keep lines of one service class
//	platform-<id>   keep one platform
//
// Unrecognized tokens are ignored, matching the platform rule language.
func parseDepartureFilter(n *network.Network, stop network.StopID, filter string) departureFilter {
	f := departureFilter{}

	for _, token := range strings.Fields(filter) {
		switch {
		case token == "narr":
			f.preds = append(f.preds, func(d *Departure) bool {
				last := d.Service.Stops[len(d.Service.Stops)-1]
				return last.Stop != stop
			})

		case token == "nsdo":
			f.preds = append(f.preds, func(d *Departure) bool {
				return !d.SetDownOnly
			})

		case token == "up":
			f.preds = append(f.preds, func(d *Departure) bool {
				return network.IsUpDirection(d.Service.Direction)
			})

		case token == "down":
			f.preds = append(f.preds, func(d *Departure) bool {
				return network.IsDownDirection(d.Service.Direction)
			})

		case strings.HasPrefix(token, "direction-"):
			want := network.DirectionID(strings.TrimPrefix(token, "direction-"))
			f.preds = append(f.preds, func(d *Departure) bool {
				return d.Service.Direction == want
			})

		case strings.HasPrefix(token, "line-"):
			id, err := strconv.Atoi(strings.TrimPrefix(token, "line-"))
			if err != nil {
				continue
			}
			want := network.LineID(id)
			f.preds = append(f.preds, func(d *Departure) bool {
				return d.Service.Line == want
			})

		case strings.HasPrefix(token, "service-"):
			class := network.ServiceClass(strings.TrimPrefix(token, "service-"))
			// Expand the class to its set of lines now, once.
			want := map[network.LineID]bool{}
			for _, l := range n.Lines() {
				if l.Service == class {
					want[l.ID] = true
				}
			}
			f.preds = append(f.preds, func(d *Departure) bool {
				return want[d.Service.Line]
			})

		case strings.HasPrefix(token, "platform-"):
			want := network.PlatformID(strings.TrimPrefix(token, "platform-"))
			f.preds = append(f.preds, func(d *Departure) bool {
				return d.Platform == want
			})
		}
	}

	return f
}

func (f departureFilter) keep(d *Departure) bool {
	for _, pred := range f.preds {
		if !pred(d) {
			return false
		}
	}
	return true
}
