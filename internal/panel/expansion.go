package panel

import (
	"fmt"
	"strings"
)

// ExpansionLevel is how far the bottom panel is raised
type ExpansionLevel int

const (
	Collapsed ExpansionLevel = iota
	Mid
	Full
)

func (l ExpansionLevel) String() string {
	switch l {
	case Collapsed:
		return "collapsed"
	case Mid:
		return "mid"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

// Valid reports whether l is one of the known levels
func (l ExpansionLevel) Valid() bool {
	return l >= Collapsed && l <= Full
}

// Raise returns the next level up, stopping at Full
func (l ExpansionLevel) Raise() ExpansionLevel {
	if !l.Valid() {
		return Mid
	}
	if l == Full {
		return Full
	}
	return l + 1
}

// Lower returns the next level down, stopping at Collapsed
func (l ExpansionLevel) Lower() ExpansionLevel {
	if !l.Valid() || l == Collapsed {
		return Collapsed
	}
	return l - 1
}

// ParseExpansion parses a level name as written in config files and flags
func ParseExpansion(s string) (ExpansionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "collapsed", "summary":
		return Collapsed, nil
	case "mid", "medium", "half":
		return Mid, nil
	case "full", "large":
		return Full, nil
	default:
		return Collapsed, fmt.Errorf("unknown expansion level %q", s)
	}
}
