// Package scenario holds the authored training content: scenarios, their
// node chains, and the attempt records produced by grading.
package scenario

import (
	"slices"

	"github.com/lox/pokerdrill/internal/position"
)

// Street represents the betting round
type Street string

const (
	Preflop Street = "PREFLOP"
	Flop    Street = "FLOP"
	Turn    Street = "TURN"
	River   Street = "RIVER"
)

// BoardSize returns how many community cards are visible on the street.
func (s Street) BoardSize() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// Valid reports whether s is one of the four streets.
func (s Street) Valid() bool {
	switch s {
	case Preflop, Flop, Turn, River:
		return true
	}
	return false
}

// ActionType is a decision the hero can take.
type ActionType string

const (
	Fold  ActionType = "FOLD"
	Check ActionType = "CHECK"
	Call  ActionType = "CALL"
	Bet   ActionType = "BET"
	Raise ActionType = "RAISE"
	AllIn ActionType = "ALL_IN"
)

// Sized reports whether the action carries a target amount.
func (a ActionType) Sized() bool {
	return a == Bet || a == Raise
}

// GradingMode selects how a decision is compared to the authored answer.
type GradingMode string

const (
	GradeExact        GradingMode = "EXACT"
	GradeExactOrClose GradingMode = "EXACT_OR_CLOSE"
)

// NodeType discriminates script and decision nodes.
type NodeType string

const (
	NodeScript   NodeType = "SCRIPT"
	NodeDecision NodeType = "DECISION"
)

// Player is a seat at the table. The runtime fields are reset by the replay
// engine when a scenario is loaded.
type Player struct {
	Seat   int               `json:"seat"`
	Pos    position.Position `json:"pos"`
	Stack  float64           `json:"stack"`
	IsUser bool              `json:"isUser,omitempty"`

	Active             bool    `json:"active"`
	InvestedThisStreet float64 `json:"investedThisStreet"`
	LastAction         string  `json:"lastAction"`
}

// GameState is the mutable table state for one hand.
type GameState struct {
	Street        Street            `json:"street"`
	Board         []string          `json:"board"`
	Pot           float64           `json:"pot"`
	HeroHoleCards []string          `json:"heroHoleCards"`
	ActionLog     []string          `json:"actionLog"`
	ToActPos      position.Position `json:"toActPos"`
	CurrentBet    float64           `json:"currentBet"`

	// SeedEvents optionally replaces the textual seed log when reconstructing
	// starting stacks and board.
	SeedEvents []SeedEvent `json:"seedEvents,omitempty"`
}

// Clone returns a deep copy of the state.
func (g GameState) Clone() GameState {
	out := g
	out.Board = slices.Clone(g.Board)
	out.HeroHoleCards = slices.Clone(g.HeroHoleCards)
	out.ActionLog = slices.Clone(g.ActionLog)
	out.SeedEvents = slices.Clone(g.SeedEvents)
	return out
}

// SeedEventKind discriminates SeedEvent.
type SeedEventKind string

const (
	SeedPost   SeedEventKind = "post"
	SeedStreet SeedEventKind = "street"
	SeedAction SeedEventKind = "action"
)

// SeedEvent is one typed step of the pre-decision history.
//
//	post:   Pos, Amount
//	street: Street, Cards (the newly revealed cards)
//	action: Line, a script directive such as "BTN RAISE 2.5"
type SeedEvent struct {
	Kind   SeedEventKind     `json:"kind"`
	Pos    position.Position `json:"pos,omitempty"`
	Amount float64           `json:"amount,omitempty"`
	Street Street            `json:"street,omitempty"`
	Cards  []string          `json:"cards,omitempty"`
	Line   string            `json:"line,omitempty"`
}

// Table holds blinds and seated players.
type Table struct {
	SB      float64  `json:"sb"`
	BB      float64  `json:"bb"`
	Players []Player `json:"players"`
}

// Correct is the authored answer for a decision node.
type Correct struct {
	Action       ActionType  `json:"action"`
	SizeBB       *float64    `json:"sizeBB,omitempty"`
	Grading      GradingMode `json:"grading"`
	CloseSizesBB []float64   `json:"closeSizesBB,omitempty"`
}

// Node is one step of a scenario. Script nodes carry ScriptActions; decision
// nodes carry the prompt, legal actions and the correct answer.
type Node struct {
	NodeID   string   `json:"nodeId"`
	Type     NodeType `json:"type"`
	Street   Street   `json:"street"`
	Next     string   `json:"next,omitempty"`
	Terminal bool     `json:"terminal,omitempty"`

	ScriptActions []string `json:"scriptActions,omitempty"`

	Prompt       string       `json:"prompt,omitempty"`
	LegalActions []ActionType `json:"legalActions,omitempty"`
	RaiseOptions []float64    `json:"raiseOptions,omitempty"`
	Correct      *Correct     `json:"correct,omitempty"`
	Explain      []string     `json:"explain,omitempty"`
}

// IsDecision reports whether the node waits for the hero.
func (n *Node) IsDecision() bool { return n.Type == NodeDecision }

// Legal reports whether a is in the node's legal action set.
func (n *Node) Legal(a ActionType) bool {
	return slices.Contains(n.LegalActions, a)
}

// Scenario is an authored multi-street hand. It is never mutated after load.
type Scenario struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Tags         []string  `json:"tags"`
	Difficulty   int       `json:"difficulty"`
	Table        Table     `json:"table"`
	InitialState GameState `json:"initialState"`
	Nodes        []Node    `json:"nodes"`
}

// Meta is the list view of a scenario.
type Meta struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Difficulty int      `json:"difficulty"`
}

// Meta returns the list view, defaulting tags to empty and difficulty to 1.
func (s *Scenario) Meta() Meta {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	diff := s.Difficulty
	if diff == 0 {
		diff = 1
	}
	return Meta{ID: s.ID, Title: s.Title, Tags: tags, Difficulty: diff}
}

// AttemptResult records one graded decision. Records are append-only.
type AttemptResult struct {
	ScenarioID   string     `json:"scenarioId"`
	NodeID       string     `json:"nodeId"`
	ChosenAction ActionType `json:"chosenAction"`
	ChosenSizeBB *float64   `json:"chosenSizeBB"`
	IsCorrect    bool       `json:"isCorrect"`
	Timestamp    int64      `json:"timestamp"`
}
