package preflop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerdrill/internal/analysis"
	"github.com/lox/pokerdrill/internal/position"
)

func TestGenerateInvariants(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 300; seed++ {
		spot, err := NewSeededGenerator(seed).Generate()
		require.NoError(t, err)

		assert.Equal(t, "10MAX", spot.Table)
		assert.True(t, strings.HasPrefix(spot.ID, "PF-"))
		assert.Len(t, spot.ID, 11)
		assert.Contains(t, heroPositions, spot.HeroPos)
		assert.Equal(t, spot.HeroPos, spot.ToAct)
		assert.True(t, spot.Phase.Valid())
		assert.Contains(t, openSizes, spot.OpenSizeBB)
		assert.Equal(t, 0.5, spot.SB)
		assert.Equal(t, 1.0, spot.BB)
		assert.Equal(t, 1.0, spot.Ante)

		_, err = analysis.HandKey(spot.HeroHand)
		require.NoError(t, err, spot.HeroHand)

		require.Len(t, spot.Players, len(position.Order10))
		hero, err := spot.Hero()
		require.NoError(t, err)
		assert.Equal(t, spot.HeroPos, hero.Pos)
		assert.True(t, hero.InHand)
		assert.Greater(t, hero.StackBB, 0.0)
		assert.Empty(t, hero.LastAction)

		heroIdx := position.IndexOf(position.Order10, spot.HeroPos)
		openIdx := position.IndexOf(position.Order10, spot.OpenerPos)
		assert.Less(t, openIdx, heroIdx, "opener acts before the hero")

		var total float64
		for _, p := range spot.Players {
			total += p.InvestedBB
			assert.GreaterOrEqual(t, p.StackBB, 0.0)
			assert.LessOrEqual(t, p.StackBB, 100.0)
			if p.StackBB == 0 {
				assert.False(t, p.InHand, p.Pos)
				assert.NotEmpty(t, p.LastAction, p.Pos)
			}
		}
		assert.InDelta(t, Round1(total), spot.PotBB, 1e-9)

		cost, _, err := ComputeCallCost(spot.Players, spot.HeroPos)
		require.NoError(t, err)
		assert.InDelta(t, cost, spot.CallCostBB, 1e-9)

		prefix := string(spot.OpenerPos) + " OPEN " + formatBB(spot.OpenSizeBB) + "BB"
		assert.True(t, strings.HasPrefix(spot.LineSummary, prefix), spot.LineSummary)
		assert.True(t, strings.HasSuffix(spot.LineSummary, " (BBA 1BB)"), spot.LineSummary)
	}
}

func TestGenerateCallersSitBetweenOpenerAndHero(t *testing.T) {
	t.Parallel()

	sawCallers := false
	for seed := int64(1); seed <= 200; seed++ {
		spot, err := NewSeededGenerator(seed).Generate()
		require.NoError(t, err)

		between := position.Between(position.Order10, spot.OpenerPos, spot.HeroPos)
		callLabel := "CALL " + formatBB(spot.OpenSizeBB) + "BB"
		callers := 0
		for _, p := range spot.Players {
			if p.LastAction != callLabel {
				continue
			}
			assert.Contains(t, between, p.Pos)
			callers++
		}
		assert.LessOrEqual(t, callers, 3)
		if callers > 0 {
			sawCallers = true
			assert.Contains(t, spot.LineSummary, ", ")
		}
	}
	assert.True(t, sawCallers)
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	a, err := NewSeededGenerator(99).Generate()
	require.NoError(t, err)
	b, err := NewSeededGenerator(99).Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeededGenerator(100).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestGenerateHandDistribution(t *testing.T) {
	t.Parallel()
	g := NewSeededGenerator(7)
	suited, unpaired := 0, 0
	for range 2000 {
		hand := g.randomHand()
		require.Len(t, hand, 4)
		assert.NotEqual(t, hand[:2], hand[2:], "duplicate card %s", hand)
		if hand[0] == hand[2] {
			assert.NotEqual(t, hand[1], hand[3], "pairs are never suited")
			continue
		}
		unpaired++
		if hand[1] == hand[3] {
			suited++
		}
	}
	assert.InDelta(t, 0.35, float64(suited)/float64(unpaired), 0.05)
}

func TestBuildRejectsBustedHero(t *testing.T) {
	t.Parallel()
	g := NewSeededGenerator(1)
	c := g.sample()

	c.stacks[c.heroPos] = 0
	_, ok := g.build(c)
	assert.False(t, ok)

	c.stacks[c.heroPos] = stackCap
	spot, ok := g.build(c)
	require.True(t, ok)
	hero, err := spot.Hero()
	require.NoError(t, err)
	assert.True(t, hero.InHand)
}

func TestGenerateWithSingleAttempt(t *testing.T) {
	t.Parallel()
	spot, err := NewSeededGenerator(5, WithMaxAttempts(1)).Generate()
	require.NoError(t, err)
	hero, err := spot.Hero()
	require.NoError(t, err)
	assert.Greater(t, hero.StackBB, 0.0)
}
