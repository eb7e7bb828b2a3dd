package dot11

import (
	"fmt"
	"strings"
)

// Match selects which classified frames are reported.
type Match uint8

const (
	// MatchProbeRequest accepts management probe requests only.
	MatchProbeRequest Match = iota
	MatchManagement
	MatchControl
	MatchData
	MatchAll
)

var matchNames = [...]string{
	MatchProbeRequest: "probe-request",
	MatchManagement:   "management",
	MatchControl:      "control",
	MatchData:         "data",
	MatchAll:          "all",
}

// String returns the configuration name of the match.
func (m Match) String() string {
	if int(m) < len(matchNames) {
		return matchNames[m]
	}
	return fmt.Sprintf("match(%d)", uint8(m))
}

// ParseMatch parses a configuration name. An empty name selects probe requests.
func ParseMatch(s string) (Match, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MatchProbeRequest, nil
	}
	for i, name := range matchNames {
		if name == s {
			return Match(i), nil
		}
	}
	return 0, fmt.Errorf("unknown match %q (want one of %s)", s, strings.Join(matchNames[:], ", "))
}

// Accepts reports whether c is selected by m.
func (m Match) Accepts(c Classification) bool {
	switch m {
	case MatchProbeRequest:
		return c.IsProbeRequest()
	case MatchManagement:
		return c.Type == TypeManagement
	case MatchControl:
		return c.Type == TypeControl
	case MatchData:
		return c.Type == TypeData
	case MatchAll:
		return true
	default:
		return false
	}
}
