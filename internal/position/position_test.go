package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		order   []Position
		active  Set
		current Position
		want    Position
	}{
		{
			name:    "next seat active",
			order:   Preflop9,
			active:  NewSet(UTG, UTG1, BB),
			current: UTG,
			want:    UTG1,
		},
		{
			name:    "skips inactive seats",
			order:   Preflop9,
			active:  NewSet(BTN, BB),
			current: BTN,
			want:    BB,
		},
		{
			name:    "wraps around the table",
			order:   Postflop9,
			active:  NewSet(SB, CO, BTN),
			current: BTN,
			want:    SB,
		},
		{
			name:    "current absent from order",
			order:   Preflop9,
			active:  NewSet(UTG, BB),
			current: UTG3,
			want:    UTG3,
		},
		{
			name:    "only current active",
			order:   Preflop9,
			active:  NewSet(CO),
			current: CO,
			want:    CO,
		},
		{
			name:    "empty active set",
			order:   Preflop9,
			active:  NewSet(),
			current: HJ,
			want:    HJ,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NextActive(tc.order, tc.active, tc.current))
		})
	}
}

func TestNextActiveNeverLeavesActiveSet(t *testing.T) {
	t.Parallel()
	active := NewSet(UTG2, HJ, SB)
	for _, cur := range Preflop9 {
		got := NextActive(Preflop9, active, cur)
		assert.True(t, active.Has(got), "from %s got %s", cur, got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	p, err := Parse(" btn ")
	require.NoError(t, err)
	assert.Equal(t, BTN, p)

	_, err = Parse("DEALER")
	assert.Error(t, err)
}

func TestBeforeAndBetween(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Position{UTG, UTG1, UTG2, UTG3}, Before(Order10, LJ))
	assert.Nil(t, Before(Order10, UTG))
	assert.Equal(t, []Position{HJ, CO}, Between(Order10, LJ, BTN))
	assert.Nil(t, Between(Order10, CO, BTN))
	assert.True(t, BB.IsBlind())
	assert.False(t, BTN.IsBlind())
}
