// Package position defines seat labels and the static turn-order tables used
// to decide who acts next.
package position

import (
	"fmt"
	"strings"
)

// Position is a seat label relative to the button.
type Position string

const (
	UTG  Position = "UTG"
	UTG1 Position = "UTG1"
	UTG2 Position = "UTG2"
	UTG3 Position = "UTG3"
	LJ   Position = "LJ"
	HJ   Position = "HJ"
	CO   Position = "CO"
	BTN  Position = "BTN"
	SB   Position = "SB"
	BB   Position = "BB"
)

// Preflop9 is the 9-max preflop order: first to act through the big blind.
var Preflop9 = []Position{UTG, UTG1, UTG2, LJ, HJ, CO, BTN, SB, BB}

// Postflop9 is the 9-max postflop order starting at the small blind.
var Postflop9 = []Position{SB, BB, UTG, UTG1, UTG2, LJ, HJ, CO, BTN}

// Order10 is the 10-max preflop order used by the preflop drill.
var Order10 = []Position{UTG, UTG1, UTG2, UTG3, LJ, HJ, CO, BTN, SB, BB}

// Set is a membership set of positions.
type Set map[Position]struct{}

// NewSet builds a Set from the given positions.
func NewSet(ps ...Position) Set {
	s := make(Set, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s Set) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

// Parse upper-cases and validates a position label.
func Parse(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown position %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known seat labels.
func (p Position) Valid() bool {
	return IndexOf(Order10, p) >= 0
}

// IsBlind reports whether p posts a blind. The blinds play out of position
// after the flop.
func (p Position) IsBlind() bool {
	return p == SB || p == BB
}

// IndexOf returns the index of p in order, or -1.
func IndexOf(order []Position, p Position) int {
	for i, o := range order {
		if o == p {
			return i
		}
	}
	return -1
}

// Before returns the positions strictly before p in order.
func Before(order []Position, p Position) []Position {
	idx := IndexOf(order, p)
	if idx <= 0 {
		return nil
	}
	return append([]Position(nil), order[:idx]...)
}

// Between returns the positions strictly between from and to in order.
func Between(order []Position, from, to Position) []Position {
	i, j := IndexOf(order, from), IndexOf(order, to)
	if i < 0 || j < 0 || j <= i+1 {
		return nil
	}
	return append([]Position(nil), order[i+1:j]...)
}

// NextActive scans forward circularly from current and returns the first
// position present in active. When current is not part of order, or nobody
// else is active, current is returned unchanged.
func NextActive(order []Position, active Set, current Position) Position {
	idx := IndexOf(order, current)
	if idx < 0 {
		return current
	}
	for step := 1; step <= len(order); step++ {
		p := order[(idx+step)%len(order)]
		if active.Has(p) {
			return p
		}
	}
	return current
}
