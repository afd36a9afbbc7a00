// Package analysis holds the preflop hand-strength heuristics: canonical
// hand keys, a Chen-like score, equity estimates against random hands and
// the named range tables used by the recommendation engine.
package analysis

import (
	"fmt"

	"github.com/lox/pokerdrill/poker"
)

// Key is one of the 169 canonical starting-hand classes: "AA", "AKs", "72o".
// The higher rank always comes first.
type Key string

// HandKey canonicalizes a four character hand code such as "AsKd" into its
// key ("AKo").
func HandKey(code string) (Key, error) {
	if len(code) != 4 {
		return "", fmt.Errorf("invalid hand code %q", code)
	}
	cards, err := poker.ParseCards(code[0:2], code[2:4])
	if err != nil {
		return "", fmt.Errorf("invalid hand code %q: %w", code, err)
	}
	a, b := cards[0], cards[1]
	return makeKey(a.Rank(), b.Rank(), a.Suit() == b.Suit()), nil
}

func makeKey(r1, r2 uint8, suited bool) Key {
	hi, lo := max(r1, r2), min(r1, r2)
	if hi == lo {
		return Key([]byte{poker.RankChar(hi), poker.RankChar(lo)})
	}
	flag := byte('o')
	if suited {
		flag = 's'
	}
	return Key([]byte{poker.RankChar(hi), poker.RankChar(lo), flag})
}

// High returns the higher rank character.
func (k Key) High() byte { return k[0] }

// Low returns the lower rank character.
func (k Key) Low() byte { return k[1] }

// Pair reports whether both cards share a rank.
func (k Key) Pair() bool { return len(k) == 2 }

// Suited reports whether a non-pair is suited.
func (k Key) Suited() bool { return len(k) == 3 && k[2] == 's' }

// Gap returns the number of ranks strictly between the two cards: 0 for
// connectors, -1 for pairs.
func (k Key) Gap() int {
	d := poker.RankIndex(k.Low()) - poker.RankIndex(k.High())
	return d - 1
}

// Broadway reports whether both cards are ten or higher.
func (k Key) Broadway() bool {
	return isBroadwayRank(k.High()) && isBroadwayRank(k.Low())
}

func isBroadwayRank(r byte) bool {
	return poker.RankIndex(r) >= 0 && poker.RankIndex(r) <= poker.RankIndex('T')
}

// atLeast reports whether rank r is rank floor or higher.
func atLeast(r, floor byte) bool {
	return poker.RankIndex(r) <= poker.RankIndex(floor)
}
