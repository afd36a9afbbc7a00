package phh_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerdrill/internal/phh"
	"github.com/lox/pokerdrill/internal/script"
)

func TestNormalizeCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"10h", "Th"},
		{"10H", "Th"},
		{"ah", "Ah"},
		{"As", "As"},
		{" kd ", "Kd"},
		{"??", "??"},
		{"", "??"},
		{"Zz", "??"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, phh.NormalizeCard(tt.in), "NormalizeCard(%q)", tt.in)
	}
}

func TestHoleCards(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AhKh", phh.HoleCards([]string{"ah", "Kh"}))
	assert.Equal(t, "????", phh.HoleCards(nil))
	assert.Equal(t, "????", phh.HoleCards([]string{"Ah"}))
}

func TestFormatAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		seat     int
		kind     script.Kind
		totalBet float64
		want     string
		ok       bool
	}{
		{"fold", 0, script.Fold, 0, "p1 f", true},
		{"check", 1, script.Check, 0, "p2 cc", true},
		{"call", 2, script.Call, 0, "p3 cc", true},
		{"raise", 0, script.RaiseTo, 7.5, "p1 cbr 7.5", true},
		{"bet", 3, script.BetTo, 12, "p4 cbr 12", true},
		{"all in", 5, script.AllIn, 100, "p6 cbr 100", true},
		{"all in for nothing", 5, script.AllIn, 0, "p6 cc", true},
		{"deal", 0, script.DealFlop, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := phh.FormatAction(tt.seat, tt.kind, tt.totalBet)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDeals(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "d db Kd7c2s", phh.FormatDeal([]string{"Kd", "7c", "2s"}))
	assert.Equal(t, "d db Th", phh.FormatDeal([]string{"10h"}))
	assert.Equal(t, "d dh p3 ????", phh.FormatHoleDeal(2, nil))
}

func TestEncode(t *testing.T) {
	t.Parallel()
	hand := &phh.HandHistory{
		Variant:           "NT",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []float64{0, 0, 0},
		BlindsOrStraddles: []float64{0.5, 1, 0},
		MinBet:            1,
		StartingStacks:    []float64{100, 100, 100},
		Actions: []string{
			"d dh p1 ????",
			"d dh p2 QhJs",
			"d dh p3 ????",
			"p3 cbr 2.5",
			"p1 f",
			"p2 cc",
		},
		Players:   []string{"SB", "BB", "BTN"},
		HandID:    "S003",
		Time:      "15:22:00",
		TimeZone:  "UTC",
		Day:       14,
		Month:     11,
		Year:      2025,
		Timestamp: time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))

	want := "" +
		"variant = \"NT\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0.0, 0.0, 0.0]\n" +
		"blinds_or_straddles = [0.5, 1.0, 0.0]\n" +
		"min_bet = 1.0\n" +
		"starting_stacks = [100.0, 100.0, 100.0]\n" +
		"actions = [\"d dh p1 ????\", \"d dh p2 QhJs\", \"d dh p3 ????\", \"p3 cbr 2.5\", \"p1 f\", \"p2 cc\"]\n" +
		"players = [\"SB\", \"BB\", \"BTN\"]\n" +
		"hand = \"S003\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"
	assert.Equal(t, want, buf.String())

	data, err := phh.EncodeToBytes(hand)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestEncodeNil(t *testing.T) {
	t.Parallel()
	assert.Error(t, phh.Encode(&bytes.Buffer{}, nil))
}
