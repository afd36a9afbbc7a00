package replay

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/script"
)

const sizeTolerance = 1e-9

// ApplyScriptNode executes every directive of a script node. Actions by
// players who are no longer active are skipped.
func (rt *Runtime) ApplyScriptNode(nodeID string) error {
	node, err := rt.Node(nodeID)
	if err != nil {
		return err
	}
	if node.Type != scenario.NodeScript {
		return fmt.Errorf("%w: %q", ErrNotScriptNode, nodeID)
	}

	rt.enterStreet(node.Street)

	for _, line := range node.ScriptActions {
		a, err := script.Parse(line)
		if err != nil {
			return fmt.Errorf("node %s: %w", nodeID, err)
		}

		if a.Kind.IsDeal() {
			street := dealStreet(a.Kind)
			rt.deal(street, a.Cards)
			rt.state.ActionLog = append(rt.state.ActionLog, streetMarker(street, a.Cards))
			rt.emitDeal(street, a.Cards, false)
			continue
		}

		actor, err := rt.playerAt(a.Actor)
		if err != nil {
			return fmt.Errorf("node %s: %w", nodeID, err)
		}
		if !actor.Active {
			continue
		}

		order := OrderForStreet(rt.state.Street)
		active := rt.activeSet()
		rt.move(actor, a, true)
		rt.emitMove(actor, a.Kind, false)
		if a.Kind == script.Fold {
			active = rt.activeSet()
		}

		var size *float64
		if a.Kind == script.BetTo || a.Kind == script.RaiseTo {
			size = &a.Amount
		}
		rt.state.ActionLog = append(rt.state.ActionLog, script.LogLine(a.Actor, verb(a.Kind), size))
		rt.state.ToActPos = position.NextActive(order, active, a.Actor)
	}
	return nil
}

func streetMarker(street scenario.Street, cards []string) string {
	name := map[scenario.Street]string{scenario.Flop: "Flop", scenario.Turn: "Turn", scenario.River: "River"}[street]
	return name + ": " + strings.Join(cards, " ")
}

// GradeDecision compares a chosen action and optional size to the node's
// authored answer. It has no side effects.
func GradeDecision(node *scenario.Node, action scenario.ActionType, size *float64) bool {
	if node == nil || node.Correct == nil {
		return false
	}
	c := node.Correct
	switch c.Grading {
	case scenario.GradeExact:
		return action == c.Action
	case scenario.GradeExactOrClose:
		if action != c.Action {
			return false
		}
		if c.SizeBB == nil {
			return true
		}
		if size == nil {
			return false
		}
		if math.Abs(*size-*c.SizeBB) < sizeTolerance {
			return true
		}
		return slices.ContainsFunc(c.CloseSizesBB, func(x float64) bool {
			return math.Abs(x-*size) < sizeTolerance
		})
	default:
		return false
	}
}

// ApplyDecision applies the hero's chosen action at a decision node using the
// same money rule as scripted actions.
func (rt *Runtime) ApplyDecision(node *scenario.Node, action scenario.ActionType, size *float64) error {
	if node == nil || !node.IsDecision() {
		return ErrNotDecisionNode
	}
	if !node.Legal(action) {
		return fmt.Errorf("%w: %s at %s", ErrIllegalAction, action, node.NodeID)
	}
	hero, err := rt.hero()
	if err != nil {
		return err
	}
	rt.enterStreet(node.Street)

	order := OrderForStreet(rt.state.Street)
	active := rt.activeSet()

	a := script.Action{Actor: hero.Pos}
	var target *float64
	switch action {
	case scenario.Fold:
		a.Kind = script.Fold
	case scenario.Check:
		a.Kind = script.Check
	case scenario.Call:
		a.Kind = script.Call
	case scenario.AllIn:
		a.Kind = script.AllIn
	case scenario.Bet, scenario.Raise:
		a.Kind = script.RaiseTo
		if action == scenario.Bet {
			a.Kind = script.BetTo
		}
		if size != nil {
			a.Amount = *size
		}
		a.HasAmount = true
		target = &a.Amount
	default:
		return fmt.Errorf("%w: %s", ErrIllegalAction, action)
	}

	rt.move(hero, a, true)
	rt.emitMove(hero, a.Kind, false)
	hero.LastAction = script.Label(string(action), target)
	rt.state.ActionLog = append(rt.state.ActionLog, script.LogLine(hero.Pos, string(action), target))
	rt.state.ToActPos = position.NextActive(order, active, hero.Pos)
	return nil
}

// RunUntilDecision executes script nodes and follows next pointers until it
// reaches a decision node, which it returns. It returns nil when the chain
// ends. With a non-empty review set, decision nodes outside the set are
// skipped without being applied.
func (rt *Runtime) RunUntilDecision(review map[string]bool) (*scenario.Node, error) {
	for !rt.done {
		node, err := rt.Node(rt.current)
		if err != nil {
			return nil, err
		}

		if node.Type == scenario.NodeScript {
			if err := rt.ApplyScriptNode(node.NodeID); err != nil {
				return nil, err
			}
			rt.Advance()
			continue
		}

		if len(review) > 0 && !review[node.NodeID] {
			rt.Advance()
			continue
		}
		return node, nil
	}
	return nil, nil
}

// Advance moves to the current node's successor. It returns false, and marks
// the runtime done, when there is none.
func (rt *Runtime) Advance() bool {
	if rt.done {
		return false
	}
	node := rt.nodes[rt.current]
	if node == nil || node.Next == "" {
		rt.done = true
		return false
	}
	rt.current = node.Next
	return true
}

// NewAttempt builds the record for one graded decision.
func NewAttempt(scenarioID, nodeID string, action scenario.ActionType, size *float64, correct bool, at time.Time) scenario.AttemptResult {
	var sz *float64
	if size != nil {
		v := *size
		sz = &v
	}
	return scenario.AttemptResult{
		ScenarioID:   scenarioID,
		NodeID:       nodeID,
		ChosenAction: action,
		ChosenSizeBB: sz,
		IsCorrect:    correct,
		Timestamp:    at.UnixMilli(),
	}
}
