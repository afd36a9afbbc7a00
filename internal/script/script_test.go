package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerdrill/internal/position"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
		want Action
	}{
		{"flop", "DEAL_FLOP Ks 7d 2c", Action{Kind: DealFlop, Cards: []string{"Ks", "7d", "2c"}}},
		{"turn lower case", "deal_turn 3h", Action{Kind: DealTurn, Cards: []string{"3h"}}},
		{"river", "DEAL_RIVER 9s", Action{Kind: DealRiver, Cards: []string{"9s"}}},
		{"fold", "btn fold", Action{Kind: Fold, Actor: position.BTN}},
		{"check", "BB CHECK", Action{Kind: Check, Actor: position.BB}},
		{"all in", "SB ALL_IN", Action{Kind: AllIn, Actor: position.SB}},
		{"bare call", "BB CALL", Action{Kind: Call, Actor: position.BB}},
		{"call with amount", "BB CALL 2.5", Action{Kind: Call, Actor: position.BB, Amount: 2.5, HasAmount: true}},
		{"call with junk amount", "BB CALL lots", Action{Kind: Call, Actor: position.BB}},
		{"bet", "CO BET 3", Action{Kind: BetTo, Actor: position.CO, Amount: 3, HasAmount: true}},
		{"raise", "BTN RAISE 2.5", Action{Kind: RaiseTo, Actor: position.BTN, Amount: 2.5, HasAmount: true}},
		{"legacy bet_to", "CO BET_TO 4", Action{Kind: BetTo, Actor: position.CO, Amount: 4, HasAmount: true}},
		{"legacy raise_to", "HJ raise_to 9", Action{Kind: RaiseTo, Actor: position.HJ, Amount: 9, HasAmount: true}},
		{"extra whitespace", "  UTG   RAISE   2  ", Action{Kind: RaiseTo, Actor: position.UTG, Amount: 2, HasAmount: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"DEAL_FLOP Ks 7d", ErrCardCount},
		{"DEAL_FLOP Ks 7d 2c 3h", ErrCardCount},
		{"DEAL_TURN", ErrCardCount},
		{"DEAL_RIVER 9s 2c", ErrCardCount},
		{"BTN", ErrUnknownAction},
		{"BTN LIMP", ErrUnknownAction},
		{"SB posts 0.5BB", ErrUnknownAction},
		{"Flop: Ks 7d 2c", ErrUnknownAction},
		{"BTN RAISE", ErrMissingAmount},
		{"CO BET big", ErrMissingAmount},
		{"CO BET_TO", ErrMissingAmount},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tc.line)
			require.ErrorIs(t, err, tc.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
		})
	}
}

func TestActionStringRoundTrip(t *testing.T) {
	t.Parallel()
	lines := []string{
		"DEAL_FLOP Ks 7d 2c",
		"DEAL_TURN 3h",
		"BTN RAISE 2.5",
		"CO BET 8",
		"BB CALL 2.5",
		"BB CALL",
		"SB FOLD",
		"BB CHECK",
		"UTG ALL_IN",
	}
	for _, line := range lines {
		a, err := Parse(line)
		require.NoError(t, err)
		assert.Equal(t, line, a.String())

		again, err := Parse(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, again)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()
	eight := 8.0
	assert.Equal(t, "FOLD", Label("fold", nil))
	assert.Equal(t, "CHECK", Label("CHECK", nil))
	assert.Equal(t, "CALL", Label("CALL", &eight))
	assert.Equal(t, "ALL-IN", Label("ALL_IN", nil))
	assert.Equal(t, "RAISE 8BB", Label("RAISE", &eight))
	assert.Equal(t, "BET", Label("BET", nil))
	assert.Equal(t, "LIMP", Label("limp", nil))
}

func TestLogLine(t *testing.T) {
	t.Parallel()
	size := 2.5
	assert.Equal(t, "BTN raises to 2.5BB", LogLine(position.BTN, "RAISE", &size))
	assert.Equal(t, "CO bets to 2.5BB", LogLine(position.CO, "BET", &size))
	assert.Equal(t, "CO bets", LogLine(position.CO, "BET", nil))
	assert.Equal(t, "BB goes all-in", LogLine(position.BB, "ALL_IN", nil))
	assert.Equal(t, "SB folds", LogLine(position.SB, "FOLD", nil))
	assert.Equal(t, "BB checks", LogLine(position.BB, "CHECK", nil))
	assert.Equal(t, "BB calls", LogLine(position.BB, "CALL", nil))
}

func TestFormatBB(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "8", FormatBB(8))
	assert.Equal(t, "2.5", FormatBB(2.5))
	assert.Equal(t, "0.5", FormatBB(0.5))
}
