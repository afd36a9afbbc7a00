// Package poker holds the card primitives shared by the scenario engine and
// the preflop analysis tables.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades]
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

// RankOrder lists rank characters from strongest to weakest. Index 0 is the
// ace, so a smaller index means a higher rank.
const RankOrder = "AKQJT98765432"

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	offset := suit*13 + rank
	return Card(1) << offset
}

// bitPosition returns which bit this card occupies (0-51), or 255 when empty.
func (c Card) bitPosition() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12).
func (c Card) Rank() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos % 13
}

// Suit returns the suit of the card (0-3).
func (c Card) Suit() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos / 13
}

// String returns the two character form, e.g. "As".
func (c Card) String() string {
	rank, suit := c.Rank(), c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}
	return NewCard(rank, uint8(suit)), nil
}

// ParseCards parses each token with ParseCard and rejects duplicates.
func ParseCards(tokens ...string) ([]Card, error) {
	var seen Hand
	out := make([]Card, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseCard(tok)
		if err != nil {
			return nil, err
		}
		if seen.HasCard(c) {
			return nil, fmt.Errorf("duplicate card: %s", c)
		}
		seen.AddCard(c)
		out = append(out, c)
	}
	return out, nil
}

// ParseRank converts a rank character (either case) to its 0-12 value.
func ParseRank(b byte) (uint8, bool) {
	i := strings.IndexByte(rankChars, upper(b))
	if i < 0 {
		return 0, false
	}
	return uint8(i), true
}

// RankChar returns the upper-case character for a 0-12 rank.
func RankChar(rank uint8) byte {
	if rank > 12 {
		return '?'
	}
	return rankChars[rank]
}

// RankIndex returns the position of a rank character in RankOrder, or -1.
func RankIndex(r byte) int {
	return strings.IndexByte(RankOrder, upper(r))
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card.
func (h Hand) HasCard(c Card) bool {
	return (h & Hand(c)) != 0
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
