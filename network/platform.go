package network

import "strings"

// Platform is a single platform at a stop, along with the rules describing
// which trains are expected to use it.
type Platform struct {
	ID   PlatformID
	Name string

	// Rules are parsed once at load. A platform with no rules matches any
	// service; otherwise a service matches the platform if any one rule
	// matches in full.
	Rules []PlatformRule
}

// PlatformRule is one parsed rule string: a conjunction of clauses that must
// all hold for the rule to match.
type PlatformRule struct {
	clauses []ruleClause
}

type ruleClause struct {
	negated bool
	text    string
}

// ParsePlatformRule parses a space-separated conjunction of clauses, e.g.
// "up cyan !weekend". A leading "!" negates a clause. Clause texts are not
// validated here; an unrecognized clause simply never matches.
func ParsePlatformRule(rule string) PlatformRule {
	parsed := PlatformRule{}
	for _, word := range strings.Fields(rule) {
		negated := strings.HasPrefix(word, "!")
		parsed.clauses = append(parsed.clauses, ruleClause{
			negated: negated,
			text:    strings.TrimPrefix(word, "!"),
		})
	}
	return parsed
}

// String reassembles the rule into its textual form.
func (r PlatformRule) String() string {
	words := make([]string, len(r.clauses))
	for i, c := range r.clauses {
		if c.negated {
			words[i] = "!" + c.text
		} else {
			words[i] = c.text
		}
	}
	return strings.Join(words, " ")
}
