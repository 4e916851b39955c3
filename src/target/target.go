// Package target selects which configured save entries a command run
// operates on.
package target

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Selector matches entry names against the glob patterns given as command
// arguments. A nil or empty Selector matches every entry.
type Selector struct {
	patterns []string
}

// New validates each pattern and returns a Selector over them. Blank
// arguments are ignored.
func New(patterns []string) (*Selector, error) {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid name pattern %q", p)
		}
		cleaned = append(cleaned, p)
	}
	return &Selector{patterns: cleaned}, nil
}

// All reports whether the selector matches every entry.
func (s *Selector) All() bool {
	return s == nil || len(s.patterns) == 0
}

// Match reports whether the named entry is selected.
func (s *Selector) Match(name string) bool {
	if s.All() {
		return true
	}
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
