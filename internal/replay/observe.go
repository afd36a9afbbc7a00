package replay

import (
	"slices"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/script"
)

// Event is one table change reported to observers: a board deal or a
// player action after its chips have moved.
type Event struct {
	Street scenario.Street   `json:"street"`
	Kind   script.Kind       `json:"kind"`
	Actor  position.Position `json:"actor,omitempty"`
	Cards  []string          `json:"cards,omitempty"`
	// Invested is the actor's street total after the action.
	Invested float64 `json:"invested"`
	// AllIn is set when the action left the actor without chips.
	AllIn bool `json:"allIn"`
	// Seed marks events replayed from the scenario's history.
	Seed bool `json:"seed"`
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithObserver registers fn to receive every event, including those
// replayed from the seed history while New runs.
func WithObserver(fn func(Event)) Option {
	return func(rt *Runtime) {
		if fn != nil {
			rt.observers = append(rt.observers, fn)
		}
	}
}

func (rt *Runtime) emit(ev Event) {
	for _, fn := range rt.observers {
		fn(ev)
	}
}

func (rt *Runtime) emitDeal(street scenario.Street, cards []string, seed bool) {
	if len(rt.observers) == 0 {
		return
	}
	rt.emit(Event{Street: street, Kind: dealKind(street), Cards: slices.Clone(cards), Seed: seed})
}

func (rt *Runtime) emitMove(p *scenario.Player, kind script.Kind, seed bool) {
	if len(rt.observers) == 0 {
		return
	}
	rt.emit(Event{
		Street:   rt.state.Street,
		Kind:     kind,
		Actor:    p.Pos,
		Invested: p.InvestedThisStreet,
		AllIn:    p.Stack <= 0 && kind != script.Fold,
		Seed:     seed,
	})
}

func dealKind(street scenario.Street) script.Kind {
	switch street {
	case scenario.Flop:
		return script.DealFlop
	case scenario.Turn:
		return script.DealTurn
	default:
		return script.DealRiver
	}
}
