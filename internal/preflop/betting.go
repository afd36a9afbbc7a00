package preflop

import (
	"fmt"
	"math"

	"github.com/lox/pokerdrill/internal/position"
)

// ActionKind enumerates the preflop betting primitives.
type ActionKind string

const (
	PostSB  ActionKind = "POST_SB"
	PostBB  ActionKind = "POST_BB"
	Ante    ActionKind = "ANTE"
	Fold    ActionKind = "FOLD"
	Call    ActionKind = "CALL"
	RaiseTo ActionKind = "RAISE_TO"
	Shove   ActionKind = "SHOVE"
)

// Action is a primitive applied to one seat. Amount is the blind or ante
// size for posts and the total investment target for CALL and RAISE_TO.
type Action struct {
	Kind   ActionKind
	Amount float64
}

// Apply mutates the seat at pos. Payments never exceed the stack.
func Apply(players []PlayerState, pos position.Position, a Action) error {
	p, err := findPlayer(players, pos)
	if err != nil {
		return err
	}

	payTo := func(target float64) {
		need := math.Max(0, target-p.InvestedBB)
		pay := math.Min(p.StackBB, need)
		p.StackBB = Round1(p.StackBB - pay)
		p.InvestedBB = Round1(p.InvestedBB + pay)
	}

	switch a.Kind {
	case Fold:
		p.InHand = false
		p.LastAction = "FOLD"
	case Ante:
		pay := math.Min(p.StackBB, a.Amount)
		p.StackBB = Round1(p.StackBB - pay)
		p.InvestedBB = Round1(p.InvestedBB + pay)
		p.AnteBB = Round1(p.AnteBB + pay)
		p.LastAction = "ANTE " + formatBB(a.Amount) + "BB"
	case PostSB, PostBB:
		payTo(p.InvestedBB + a.Amount)
		p.LastAction = "POST " + formatBB(a.Amount) + "BB"
	case Call:
		payTo(a.Amount)
		p.LastAction = "CALL " + formatBB(a.Amount) + "BB"
	case RaiseTo:
		payTo(a.Amount)
		p.LastAction = "RAISE " + formatBB(a.Amount) + "BB"
	case Shove:
		payTo(p.InvestedBB + p.StackBB)
		p.LastAction = "ALL-IN"
	default:
		return fmt.Errorf("unknown preflop action %q", a.Kind)
	}
	return nil
}

// ComputePot returns the total invested and the largest investment among
// seats still in the hand. Antes count toward both.
func ComputePot(players []PlayerState) (potBB, currentBetBB float64) {
	for _, p := range players {
		potBB += p.InvestedBB
		if p.InHand {
			currentBetBB = math.Max(currentBetBB, p.InvestedBB)
		}
	}
	return Round1(potBB), Round1(currentBetBB)
}

// ComputeCallCost returns what the seat at pos must add to match the
// current bet. Its own ante is dead money and does not count as matched.
func ComputeCallCost(players []PlayerState, pos position.Position) (callCostBB, currentBetBB float64, err error) {
	p, err := findPlayer(players, pos)
	if err != nil {
		return 0, 0, err
	}
	_, currentBetBB = ComputePot(players)
	live := math.Max(0, p.InvestedBB-p.AnteBB)
	return Round1(math.Max(0, currentBetBB-live)), currentBetBB, nil
}

// CapStacks clamps every stack to [0, limit].
func CapStacks(players []PlayerState, limit float64) {
	for i := range players {
		players[i].StackBB = Clamp(players[i].StackBB, 0, limit)
	}
}
