package register

import "strings"

const closeTier = "</ol></li>"

// State is the nesting context carried from one row of a table to the next.
// Methods return a new State rather than modifying the receiver.
type State struct {
	// OpenTiers counts unclosed <li><ol> pairs, not including the two
	// lists that wrap every table.
	OpenTiers int
	// LastHeading is the first-cell content of the most recent new section.
	LastHeading string
	// SubHeadingWidth is the cell count of the last sub risk type heading,
	// zero until one is seen.
	SubHeadingWidth int
}

// CloseAll closes every open tier.
func (s State) CloseAll() (string, State) {
	markup := strings.Repeat(closeTier, s.OpenTiers)
	s.OpenTiers = 0
	return markup, s
}

// Open records one newly opened tier.
func (s State) Open() State {
	s.OpenTiers++
	return s
}

// CloseOne closes the innermost open tier.
func (s State) CloseOne() (string, State) {
	if s.OpenTiers == 0 {
		return "", s
	}
	s.OpenTiers--
	return closeTier, s
}
