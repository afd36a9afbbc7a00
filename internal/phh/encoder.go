package phh

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokerdrill/internal/script"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FormatAction converts a player directive to a PHH action string. seat is
// zero based. totalBet is the player's street total after a bet or raise.
// It returns false for deal directives, which are written by FormatDeal.
func FormatAction(seat int, kind script.Kind, totalBet float64) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch kind {
	case script.Fold:
		return player + " f", true
	case script.Check, script.Call:
		return player + " cc", true
	case script.BetTo, script.RaiseTo, script.AllIn:
		if totalBet <= 0 {
			return player + " cc", true
		}
		return fmt.Sprintf("%s cbr %s", player, formatAmount(totalBet)), true
	default:
		return "", false
	}
}

// FormatDeal returns the board deal line for cards.
func FormatDeal(cards []string) string {
	return "d db " + strings.Join(NormalizeCards(cards), "")
}

// FormatHoleDeal returns the hole card deal line for a zero based seat.
func FormatHoleDeal(seat int, cards []string) string {
	return fmt.Sprintf("d dh p%d %s", seat+1, HoleCards(cards))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
