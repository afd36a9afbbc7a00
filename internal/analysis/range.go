package analysis

import (
	"fmt"
	"strings"

	"github.com/lox/pokerdrill/poker"
)

// Matcher is anything that can decide hand-class membership.
type Matcher interface {
	Contains(k Key) bool
}

// Range is a set of hand classes.
type Range struct {
	keys map[Key]struct{}
}

// NewRange creates an empty range.
func NewRange() *Range {
	return &Range{keys: make(map[Key]struct{})}
}

// ParseRange creates a range from standard notation.
// Examples: "AA,KK", "AKs,AKo", "TT+", "A5s-A2s", "KTs+", "22-66", "AK"
func ParseRange(notation string) (*Range, error) {
	r := NewRange()
	for part := range strings.SplitSeq(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := r.addPart(part); err != nil {
			return nil, fmt.Errorf("invalid range part %q: %w", part, err)
		}
	}
	return r, nil
}

// MustParseRange is ParseRange for package-level tables.
func MustParseRange(notation string) *Range {
	r, err := ParseRange(notation)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Range) addPart(part string) error {
	switch {
	case strings.HasSuffix(part, "+"):
		return r.addPlus(strings.TrimSuffix(part, "+"))
	case strings.Contains(part, "-"):
		return r.addDash(part)
	default:
		return r.addClass(part)
	}
}

// parseBase splits "AKs" into its ranks and which flavours it names.
func parseBase(s string) (r1, r2 uint8, suited, offsuit bool, err error) {
	if len(s) < 2 || len(s) > 3 {
		return 0, 0, false, false, fmt.Errorf("invalid notation length: %s", s)
	}
	var ok1, ok2 bool
	r1, ok1 = poker.ParseRank(s[0])
	r2, ok2 = poker.ParseRank(s[1])
	if !ok1 || !ok2 {
		return 0, 0, false, false, fmt.Errorf("invalid rank in: %s", s)
	}
	if len(s) == 2 {
		return r1, r2, true, true, nil
	}
	if r1 == r2 {
		return 0, 0, false, false, fmt.Errorf("pocket pairs cannot have suited/offsuit modifier: %s", s)
	}
	switch s[2] {
	case 's':
		return r1, r2, true, false, nil
	case 'o':
		return r1, r2, false, true, nil
	}
	return 0, 0, false, false, fmt.Errorf("invalid modifier: %c", s[2])
}

func (r *Range) add(r1, r2 uint8, suited, offsuit bool) {
	if r1 == r2 {
		r.keys[makeKey(r1, r2, false)] = struct{}{}
		return
	}
	if suited {
		r.keys[makeKey(r1, r2, true)] = struct{}{}
	}
	if offsuit {
		r.keys[makeKey(r1, r2, false)] = struct{}{}
	}
}

func (r *Range) addClass(s string) error {
	r1, r2, suited, offsuit, err := parseBase(s)
	if err != nil {
		return err
	}
	r.add(r1, r2, suited, offsuit)
	return nil
}

// addPlus handles "TT+" (pairs TT and higher) and "KTs+" (kicker up to one
// below the high card).
func (r *Range) addPlus(base string) error {
	r1, r2, suited, offsuit, err := parseBase(base)
	if err != nil {
		return err
	}
	if r1 == r2 {
		for rank := r1; rank <= poker.Ace; rank++ {
			r.add(rank, rank, false, false)
		}
		return nil
	}
	hi, lo := max(r1, r2), min(r1, r2)
	for rank := lo; rank < hi; rank++ {
		r.add(hi, rank, suited, offsuit)
	}
	return nil
}

// addDash handles "22-66" and "A5s-A2s".
func (r *Range) addDash(notation string) error {
	start, end, ok := strings.Cut(notation, "-")
	if !ok || strings.Contains(end, "-") {
		return fmt.Errorf("invalid dash range format")
	}
	s1, s2, suited, offsuit, err := parseBase(strings.TrimSpace(start))
	if err != nil {
		return err
	}
	e1, e2, _, _, err := parseBase(strings.TrimSpace(end))
	if err != nil {
		return err
	}

	if s1 == s2 && e1 == e2 {
		for rank := min(s1, e1); rank <= max(s1, e1); rank++ {
			r.add(rank, rank, false, false)
		}
		return nil
	}
	if s1 == e1 {
		for rank := min(s2, e2); rank <= max(s2, e2); rank++ {
			r.add(s1, rank, suited, offsuit)
		}
		return nil
	}
	return fmt.Errorf("unsupported range format: %s", notation)
}

// Contains reports whether k is in the range.
func (r *Range) Contains(k Key) bool {
	_, ok := r.keys[k]
	return ok
}

// Func adapts a predicate to a Matcher.
type Func func(k Key) bool

// Contains calls f.
func (f Func) Contains(k Key) bool { return f(k) }

// Union matches a key contained in any of ms.
func Union(ms ...Matcher) Matcher {
	return Func(func(k Key) bool {
		for _, m := range ms {
			if m.Contains(k) {
				return true
			}
		}
		return false
	})
}

// Pairs matches every pocket pair.
var Pairs Matcher = Func(Key.Pair)

// SuitedConnectors matches suited hands whose ranks are adjacent, including
// AKs.
var SuitedConnectors Matcher = Func(func(k Key) bool {
	return k.Suited() && k.Gap() == 0
})

// SuitedConnectorsFrom matches suited connectors whose high card is at least
// high, e.g. SuitedConnectorsFrom('8') is 87s, 98s, T9s and up.
func SuitedConnectorsFrom(high byte) Matcher {
	return Func(func(k Key) bool {
		return SuitedConnectors.Contains(k) && atLeast(k.High(), high)
	})
}

// SuitedWith matches suited hands containing rank with the other card at
// least minKicker, e.g. SuitedWith('Q', '6') is Q6s through AQs.
func SuitedWith(rank, minKicker byte) Matcher {
	return Func(func(k Key) bool {
		if !k.Suited() {
			return false
		}
		var other byte
		switch rank {
		case k.High():
			other = k.Low()
		case k.Low():
			other = k.High()
		default:
			return false
		}
		return atLeast(other, minKicker)
	})
}

// Containing matches any hand holding rank, suited or not.
func Containing(rank byte) Matcher {
	return Func(func(k Key) bool {
		return k.High() == rank || k.Low() == rank
	})
}

// Broadway matches hands with both cards ten or higher; suited selects the
// suited or offsuit half.
func Broadway(suited bool) Matcher {
	return Func(func(k Key) bool {
		return !k.Pair() && k.Broadway() && k.Suited() == suited
	})
}
