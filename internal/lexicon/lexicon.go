package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateMarker is returned when a lexicon lists the same marker twice
var ErrDuplicateMarker = errors.New("duplicate marker")

// Lexicon is an ordered, immutable list of lowercase markers
type Lexicon struct {
	name    string
	markers []string
}

// New builds a lexicon, rejecting empty, non-lowercase, or duplicate markers
func New(name string, markers []string) (*Lexicon, error) {
	seen := make(map[string]bool, len(markers))
	list := make([]string, 0, len(markers))

	for _, m := range markers {
		if m == "" {
			return nil, fmt.Errorf("lexicon %s: empty marker", name)
		}
		if m != strings.ToLower(m) {
			return nil, fmt.Errorf("lexicon %s: marker %q is not lowercase", name, m)
		}
		if seen[m] {
			return nil, fmt.Errorf("lexicon %s: %w: %q", name, ErrDuplicateMarker, m)
		}
		seen[m] = true
		list = append(list, m)
	}

	return &Lexicon{name: name, markers: list}, nil
}

// MustNew is like New but panics on an invalid lexicon
func MustNew(name string, markers []string) *Lexicon {
	l, err := New(name, markers)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the lexicon name
func (l *Lexicon) Name() string {
	return l.name
}

// Len returns the number of markers
func (l *Lexicon) Len() int {
	return len(l.markers)
}

// Markers returns a copy of the markers in declaration order
func (l *Lexicon) Markers() []string {
	out := make([]string, len(l.markers))
	copy(out, l.markers)
	return out
}

// Each calls fn for every marker in declaration order without copying
func (l *Lexicon) Each(fn func(marker string)) {
	for _, m := range l.markers {
		fn(m)
	}
}

// Contains reports whether marker is part of the lexicon
func (l *Lexicon) Contains(marker string) bool {
	for _, m := range l.markers {
		if m == marker {
			return true
		}
	}
	return false
}
