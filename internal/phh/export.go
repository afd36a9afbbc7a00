package phh

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/replay"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/script"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// ErrNoAnswer is returned when a decision node has no authored answer to
// play.
var ErrNoAnswer = errors.New("phh: decision has no correct answer")

// dealOrder seats players from the small blind round to the button.
var dealOrder = []position.Position{
	position.SB, position.BB, position.UTG, position.UTG1, position.UTG2,
	position.UTG3, position.LJ, position.HJ, position.CO, position.BTN,
}

// FromScenario plays s from its seed history to the end of its node chain,
// answering every decision with the authored correct action, and returns the
// resulting hand history stamped with at.
func FromScenario(s *scenario.Scenario, at time.Time) (*HandHistory, error) {
	seats := slices.Clone(s.Table.Players)
	slices.SortStableFunc(seats, func(a, b scenario.Player) int {
		return cmp.Compare(position.IndexOf(dealOrder, a.Pos), position.IndexOf(dealOrder, b.Pos))
	})

	var events []replay.Event
	rt, err := replay.New(s, replay.WithObserver(func(ev replay.Event) {
		events = append(events, ev)
	}))
	if err != nil {
		return nil, fmt.Errorf("phh: scenario %s: %w", s.ID, err)
	}

	for {
		node, err := rt.RunUntilDecision(nil)
		if err != nil {
			return nil, fmt.Errorf("phh: scenario %s: %w", s.ID, err)
		}
		if node == nil {
			break
		}
		if node.Correct == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoAnswer, node.NodeID)
		}
		if err := rt.ApplyDecision(node, node.Correct.Action, node.Correct.SizeBB); err != nil {
			return nil, fmt.Errorf("phh: scenario %s: %w", s.ID, err)
		}
		if !rt.Advance() {
			break
		}
	}

	snap := rt.Snapshot()
	hand := &HandHistory{
		Variant:   Variant,
		SeatCount: len(seats),
		MinBet:    s.Table.BB,
		HandID:    s.ID,
		Time:      at.UTC().Format("15:04:05"),
		TimeZone:  "UTC",
		Day:       at.UTC().Day(),
		Month:     int(at.UTC().Month()),
		Year:      at.UTC().Year(),
		Board:     NormalizeCards(snap.State.Board),
		Pot:       snap.State.Pot,
		Timestamp: at,
		Metadata: map[string]any{
			"title":      s.Title,
			"tags":       s.Meta().Tags,
			"difficulty": s.Meta().Difficulty,
		},
	}

	index := make(map[position.Position]int, len(seats))
	for i, p := range seats {
		index[p.Pos] = i
		hand.Seats = append(hand.Seats, p.Seat)
		hand.Players = append(hand.Players, string(p.Pos))
		hand.Antes = append(hand.Antes, 0)
		hand.BlindsOrStraddles = append(hand.BlindsOrStraddles, blindFor(s.Table, p.Pos))
		hand.StartingStacks = append(hand.StartingStacks, p.Stack)

		final, err := rt.Player(p.Pos)
		if err != nil {
			return nil, fmt.Errorf("phh: scenario %s: %w", s.ID, err)
		}
		hand.FinishingStacks = append(hand.FinishingStacks, final.Stack)

		holes := []string(nil)
		if p.IsUser {
			holes = s.InitialState.HeroHoleCards
			hand.Metadata["hero"] = fmt.Sprintf("p%d", i+1)
		}
		hand.Actions = append(hand.Actions, FormatHoleDeal(i, holes))
	}

	if len(s.InitialState.Board) > 0 && !slices.ContainsFunc(events, isSeedDeal) {
		hand.Actions = append(hand.Actions, FormatDeal(s.InitialState.Board))
	}
	hand.Actions = append(hand.Actions, transcript(events, index, s.Table.BB)...)
	return hand, nil
}

// transcript converts runtime events to PHH action lines. Bets and raises
// that do not exceed the street's high bet are written as calls.
func transcript(events []replay.Event, index map[position.Position]int, bb float64) []string {
	street, high := scenario.Preflop, bb
	var out []string
	for _, ev := range events {
		if ev.Street != street {
			street, high = ev.Street, 0
		}
		if ev.Kind.IsDeal() {
			out = append(out, FormatDeal(ev.Cards))
			continue
		}
		seat, ok := index[ev.Actor]
		if !ok {
			continue
		}
		kind, total := ev.Kind, 0.0
		switch kind {
		case script.BetTo, script.RaiseTo, script.AllIn:
			if ev.Invested > high {
				total, high = ev.Invested, ev.Invested
			} else {
				kind = script.Call
			}
		}
		if line, ok := FormatAction(seat, kind, total); ok {
			out = append(out, line)
		}
	}
	return out
}

func isSeedDeal(ev replay.Event) bool {
	return ev.Seed && ev.Kind.IsDeal()
}

func blindFor(t scenario.Table, pos position.Position) float64 {
	switch pos {
	case position.SB:
		return t.SB
	case position.BB:
		return t.BB
	}
	return 0
}
