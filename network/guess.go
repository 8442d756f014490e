package network

import (
	"strconv"
	"strings"
	"time"

	"vicrail.dev/vicrail/model"
)

// PlatformClues is the information about a service used to guess which
// platform it will use.
type PlatformClues struct {
	Line      LineID
	Direction DirectionID

	// StoppingPattern is the full ordered stop list of the service, not just
	// the stop being asked about.
	StoppingPattern []StopID

	// Weekday is the service's nominal timetabled day, which for stops after
	// midnight differs from the calendar day.
	Weekday model.DayOfWeek

	Time time.Time
}

// GuessPlatform guesses which platform at the given stop a service will use,
// by filtering the stop's platforms through their rules. Returns ("", false)
// when the rules cannot narrow it down to exactly one platform; a tie is
// never broken arbitrarily.
//
// The guess is a pure function of the network and the clues: identical input
// always yields the identical answer.
func (n *Network) GuessPlatform(stop StopID, clues PlatformClues) (PlatformID, bool) {
	stopData := n.Stop(stop)
	lineData := n.Line(clues.Line)
	if stopData == nil || lineData == nil {
		return "", false
	}

	// A stop with a single platform needs no guessing.
	if len(stopData.Platforms) == 1 {
		return stopData.Platforms[0].ID, true
	}

	var matches []PlatformID
	for _, platform := range stopData.Platforms {
		if platformMatches(&platform, lineData, clues) {
			matches = append(matches, platform.ID)
		}
	}

	if len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

// platformMatches reports whether a platform is a candidate: it has no rules
// at all, or at least one rule whose clauses all hold.
func platformMatches(platform *Platform, line *Line, clues PlatformClues) bool {
	if len(platform.Rules) == 0 {
		return true
	}
	for _, rule := range platform.Rules {
		if ruleMatches(rule, line, clues) {
			return true
		}
	}
	return false
}

func ruleMatches(rule PlatformRule, line *Line, clues PlatformClues) bool {
	for _, clause := range rule.clauses {
		if clauseMatches(clause.text, line, clues) == clause.negated {
			return false
		}
	}
	return true
}

// clauseMatches evaluates a single clause against the service clues. An
// unrecognized clause is simply false, never an error.
func clauseMatches(clause string, line *Line, clues PlatformClues) bool {
	// Direction based: "up", "down", or a literal direction ID like
	// "up-via-loop".
	if clause == "up" && IsUpDirection(clues.Direction) {
		return true
	}
	if clause == "down" && IsDownDirection(clues.Direction) {
		return true
	}
	if clause == string(clues.Direction) {
		return true
	}

	// Line based: "cyan", "regional", "line-10", etc.
	if clause == string(line.Color) {
		return true
	}
	if clause == string(line.Service) {
		return true
	}
	if idClause(clause, "line", func(id StopID) bool { return LineID(id) == line.ID }) {
		return true
	}

	// Stopping pattern based: "stops-at-1181", "terminates-at-1071", etc.
	stops := clues.StoppingPattern
	if len(stops) > 0 {
		origin := stops[0]
		terminus := stops[len(stops)-1]
		if idClause(clause, "stops-at", func(id StopID) bool { return containsStop(stops, id) }) {
			return true
		}
		if idClause(clause, "originates-at", func(id StopID) bool { return id == origin }) {
			return true
		}
		if idClause(clause, "terminates-at", func(id StopID) bool { return id == terminus }) {
			return true
		}
	}

	// Day of week based: "weekend", "weekday", or a code like "thu".
	if clause == "weekend" && clues.Weekday.IsWeekend() {
		return true
	}
	if clause == "weekday" && clues.Weekday.IsWeekday() {
		return true
	}
	if clause == clues.Weekday.Code() {
		return true
	}

	return false
}

// idClause handles clauses like "stops-at-20", where an integer ID follows
// the prefix. Returns false if the clause has a different prefix or the
// suffix is not a number.
func idClause(clause string, prefix string, predicate func(StopID) bool) bool {
	rest, ok := strings.CutPrefix(clause, prefix+"-")
	if !ok {
		return false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return false
	}
	return predicate(StopID(id))
}

func containsStop(stops []StopID, id StopID) bool {
	for _, s := range stops {
		if s == id {
			return true
		}
	}
	return false
}
