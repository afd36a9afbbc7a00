package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/script"
	"github.com/lox/pokerdrill/poker"
)

// ErrInvalid wraps every structural problem reported by Validate.
var ErrInvalid = errors.New("invalid scenario")

var streetRank = map[Street]int{Preflop: 0, Flop: 1, Turn: 2, River: 3}

// Validate checks the structural invariants the replay engine relies on:
// one hero, unique seats, a linear acyclic node chain starting at nodes[0],
// parseable script lines and a well-formed answer on every decision node.
func (s *Scenario) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if s.ID == "" {
		add("missing id")
	}

	seats := position.NewSet()
	heroes := 0
	for _, p := range s.Table.Players {
		if !p.Pos.Valid() {
			add("player seat %d has unknown position %q", p.Seat, p.Pos)
			continue
		}
		if seats.Has(p.Pos) {
			add("duplicate position %s", p.Pos)
		}
		seats[p.Pos] = struct{}{}
		if p.Stack < 0 {
			add("%s has negative stack", p.Pos)
		}
		if p.IsUser {
			heroes++
		}
	}
	if heroes != 1 {
		add("expected exactly one hero, found %d", heroes)
	}

	st := s.InitialState
	if !st.Street.Valid() {
		add("initial street %q", st.Street)
	}
	if n := len(st.Board); n != 0 && n != st.Street.BoardSize() {
		add("board has %d cards on %s", n, st.Street)
	}
	if n := len(st.HeroHoleCards); n != 0 && n != 2 {
		add("hero has %d hole cards", n)
	}
	var dealt dealtCards
	if err := dealt.add(append(slices.Clone(st.Board), st.HeroHoleCards...)); err != nil {
		add("initial cards: %v", err)
	}

	errs = append(errs, s.validateNodes(seats, &dealt)...)
	return errors.Join(errs...)
}

func (s *Scenario) validateNodes(seats position.Set, dealt *dealtCards) []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if len(s.Nodes) == 0 {
		add("no nodes")
		return errs
	}

	byID := make(map[string]*Node, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if _, dup := byID[n.NodeID]; dup {
			add("duplicate node %q", n.NodeID)
		}
		byID[n.NodeID] = n
	}

	visited := make(map[string]bool, len(s.Nodes))
	prev := s.InitialState.Street
	for n := &s.Nodes[0]; n != nil; {
		if visited[n.NodeID] {
			add("node chain cycles at %q", n.NodeID)
			break
		}
		visited[n.NodeID] = true
		if streetRank[n.Street] < streetRank[prev] {
			add("node %q goes back to %s", n.NodeID, n.Street)
		}
		prev = n.Street
		errs = append(errs, validateNode(n, seats, dealt)...)

		if n.Next == "" {
			break
		}
		if n.Terminal {
			add("terminal node %q has next %q", n.NodeID, n.Next)
		}
		next, ok := byID[n.Next]
		if !ok {
			add("node %q points at missing node %q", n.NodeID, n.Next)
			break
		}
		n = next
	}
	for _, n := range s.Nodes {
		if !visited[n.NodeID] {
			add("node %q is unreachable from %q", n.NodeID, s.Nodes[0].NodeID)
		}
	}
	return errs
}

func validateNode(n *Node, seats position.Set, dealt *dealtCards) []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: node %q: "+format, append([]any{ErrInvalid, n.NodeID}, args...)...))
	}
	if !n.Street.Valid() {
		add("street %q", n.Street)
	}

	switch n.Type {
	case NodeScript:
		for _, line := range n.ScriptActions {
			a, err := script.Parse(line)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: node %q: %w", ErrInvalid, n.NodeID, err))
				continue
			}
			if a.Kind.IsDeal() {
				if err := dealt.add(a.Cards); err != nil {
					add("%q: %v", line, err)
				}
				continue
			}
			if !seats.Has(a.Actor) {
				add("%q: no player at %s", line, a.Actor)
			}
		}
	case NodeDecision:
		if len(n.LegalActions) == 0 {
			add("no legal actions")
		}
		if n.Correct == nil {
			add("missing correct answer")
			break
		}
		switch n.Correct.Grading {
		case GradeExact, GradeExactOrClose:
		default:
			add("grading %q", n.Correct.Grading)
		}
		if !n.Legal(n.Correct.Action) {
			add("correct action %s is not legal", n.Correct.Action)
		}
	default:
		add("type %q", n.Type)
	}
	return errs
}

// dealtCards tracks every card shown along the node chain so that no card
// turns up twice.
type dealtCards struct {
	seen poker.Hand
}

func (d *dealtCards) add(tokens []string) error {
	cards, err := poker.ParseCards(tokens...)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if d.seen.HasCard(c) {
			return fmt.Errorf("%s already dealt", c)
		}
		d.seen.AddCard(c)
	}
	return nil
}
