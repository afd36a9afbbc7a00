package phh

import (
	"strings"

	"github.com/lox/pokerdrill/poker"
)

const unknownCard = "??"

// NormalizeCard converts a card to PHH notation ("10h" and "ah" become "Th"
// and "Ah"). Anything unparseable is reported as "??".
func NormalizeCard(card string) string {
	card = strings.TrimSpace(card)
	if strings.HasPrefix(card, "10") {
		card = "T" + card[2:]
	}
	c, err := poker.ParseCard(card)
	if err != nil {
		return unknownCard
	}
	return c.String()
}

// NormalizeCards normalizes a slice of card strings.
func NormalizeCards(cards []string) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = NormalizeCard(c)
	}
	return out
}

// HoleCards joins a two card holding, or masks it when the cards are unknown.
func HoleCards(cards []string) string {
	if len(cards) != 2 {
		return unknownCard + unknownCard
	}
	return strings.Join(NormalizeCards(cards), "")
}
