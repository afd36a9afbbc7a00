// Package replay owns the live state of a scripted scenario: it replays the
// seed history, executes script nodes, applies and grades hero decisions.
package replay

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/script"
)

var (
	ErrHeroNotFound     = errors.New("hero not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrNotScriptNode    = errors.New("not a script node")
	ErrNotDecisionNode  = errors.New("not a decision node")
	ErrIllegalAction    = errors.New("illegal action")
	ErrScenarioFinished = errors.New("scenario finished")
)

// Runtime is the mutable copy of a scenario being played. It is not safe for
// concurrent use.
type Runtime struct {
	scenario *scenario.Scenario
	nodes    map[string]*scenario.Node
	current  string
	done     bool

	players []scenario.Player
	state   scenario.GameState

	observers []func(Event)
}

// New copies the scenario's table and initial state, positions the runtime on
// nodes[0] and replays the seed history. The scenario itself is never
// modified.
func New(s *scenario.Scenario, opts ...Option) (*Runtime, error) {
	if len(s.Nodes) == 0 {
		return nil, fmt.Errorf("%w: scenario %s has no nodes", ErrNodeNotFound, s.ID)
	}

	rt := &Runtime{
		scenario: s,
		nodes:    make(map[string]*scenario.Node, len(s.Nodes)),
		current:  s.Nodes[0].NodeID,
		players:  make([]scenario.Player, len(s.Table.Players)),
		state:    s.InitialState.Clone(),
	}
	for i := range s.Nodes {
		rt.nodes[s.Nodes[i].NodeID] = &s.Nodes[i]
	}
	for _, opt := range opts {
		opt(rt)
	}
	for i, p := range s.Table.Players {
		p.Active = true
		p.InvestedThisStreet = 0
		p.LastAction = ""
		rt.players[i] = p
	}
	if _, err := rt.hero(); err != nil {
		return nil, err
	}

	events := rt.state.SeedEvents
	if len(events) == 0 {
		events = SeedEventsFromLog(rt.state.ActionLog)
	}
	rt.replaySeed(events)
	return rt, nil
}

// OrderForStreet returns the turn order used on a street.
func OrderForStreet(street scenario.Street) []position.Position {
	if street == scenario.Preflop {
		return position.Preflop9
	}
	return position.Postflop9
}

// Scenario returns the scenario being played.
func (rt *Runtime) Scenario() *scenario.Scenario { return rt.scenario }

// Done reports whether the node chain has been exhausted.
func (rt *Runtime) Done() bool { return rt.done }

// Node looks up a node by id.
func (rt *Runtime) Node(id string) (*scenario.Node, error) {
	n, ok := rt.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return n, nil
}

// HeroPos returns the hero's seat.
func (rt *Runtime) HeroPos() (position.Position, error) {
	p, err := rt.hero()
	if err != nil {
		return "", err
	}
	return p.Pos, nil
}

// Player returns a copy of the player at pos.
func (rt *Runtime) Player(pos position.Position) (scenario.Player, error) {
	p, err := rt.playerAt(pos)
	if err != nil {
		return scenario.Player{}, err
	}
	return *p, nil
}

// Snapshot is a detached copy of the runtime for display.
type Snapshot struct {
	NodeID  string             `json:"nodeId"`
	Done    bool               `json:"done"`
	Players []scenario.Player  `json:"players"`
	State   scenario.GameState `json:"state"`
}

// Snapshot returns a deep copy of the current players and state.
func (rt *Runtime) Snapshot() Snapshot {
	return Snapshot{
		NodeID:  rt.current,
		Done:    rt.done,
		Players: slices.Clone(rt.players),
		State:   rt.state.Clone(),
	}
}

func (rt *Runtime) hero() (*scenario.Player, error) {
	for i := range rt.players {
		if rt.players[i].IsUser {
			return &rt.players[i], nil
		}
	}
	return nil, ErrHeroNotFound
}

func (rt *Runtime) playerAt(pos position.Position) (*scenario.Player, error) {
	for i := range rt.players {
		if rt.players[i].Pos == pos {
			return &rt.players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, pos)
}

func (rt *Runtime) activeSet() position.Set {
	set := make(position.Set, len(rt.players))
	for _, p := range rt.players {
		if p.Active {
			set[p.Pos] = struct{}{}
		}
	}
	return set
}

// resetStreet moves to street and clears per-street investment, badges and
// the current bet.
func (rt *Runtime) resetStreet(street scenario.Street) {
	rt.state.Street = street
	rt.state.CurrentBet = 0
	for i := range rt.players {
		rt.players[i].InvestedThisStreet = 0
		rt.players[i].LastAction = ""
	}
}

// enterStreet resets street state only when the street actually changes.
func (rt *Runtime) enterStreet(street scenario.Street) {
	if rt.state.Street != street {
		rt.resetStreet(street)
	}
}

// deal reveals board cards and starts the matching street.
func (rt *Runtime) deal(street scenario.Street, cards []string) {
	if street == scenario.Flop {
		rt.state.Board = slices.Clone(cards)
	} else {
		rt.state.Board = append(rt.state.Board, cards...)
	}
	rt.resetStreet(street)
}

func dealStreet(k script.Kind) scenario.Street {
	switch k {
	case script.DealFlop:
		return scenario.Flop
	case script.DealTurn:
		return scenario.Turn
	default:
		return scenario.River
	}
}

// pay moves min(stack, need) from the player's stack into their street
// investment and, when intoPot is set, into the pot. It returns the amount
// moved.
func (rt *Runtime) pay(p *scenario.Player, need float64, intoPot bool) float64 {
	amt := math.Max(0, math.Min(p.Stack, need))
	p.Stack = round1(p.Stack - amt)
	p.InvestedThisStreet = round1(p.InvestedThisStreet + amt)
	if intoPot {
		rt.state.Pot = round1(rt.state.Pot + amt)
	}
	return amt
}

// move applies a player action's chip movement and badge. Deal actions are
// handled by the caller.
func (rt *Runtime) move(p *scenario.Player, a script.Action, intoPot bool) {
	switch a.Kind {
	case script.Fold:
		p.Active = false
		p.LastAction = script.Label("FOLD", nil)
	case script.Check:
		p.LastAction = script.Label("CHECK", nil)
	case script.Call:
		if a.HasAmount {
			rt.state.CurrentBet = math.Max(rt.state.CurrentBet, a.Amount)
		}
		rt.pay(p, math.Max(0, rt.state.CurrentBet-p.InvestedThisStreet), intoPot)
		p.LastAction = script.Label("CALL", nil)
	case script.AllIn:
		toCall := math.Max(0, rt.state.CurrentBet-p.InvestedThisStreet)
		rt.pay(p, toCall+p.Stack, intoPot)
		p.LastAction = script.Label("ALL_IN", nil)
	case script.BetTo, script.RaiseTo:
		target := a.Amount
		rt.pay(p, math.Max(0, target-p.InvestedThisStreet), intoPot)
		rt.state.CurrentBet = math.Max(rt.state.CurrentBet, target)
		p.LastAction = script.Label(verb(a.Kind), &target)
	}
}

// verb maps a directive kind to the hero action vocabulary used by labels
// and log lines.
func verb(k script.Kind) string {
	switch k {
	case script.BetTo:
		return "BET"
	case script.RaiseTo:
		return "RAISE"
	}
	return string(k)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
