package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/replay"
	"github.com/lox/pokerdrill/internal/scenario"
)

// Outcome is the result of one graded scenario decision.
type Outcome struct {
	Node    *scenario.Node         `json:"node"`
	Attempt scenario.AttemptResult `json:"attempt"`
	Correct bool                   `json:"correct"`
}

// Play walks one scenario from its first node, pausing at each decision.
type Play struct {
	rt      *replay.Runtime
	store   attempts.Store
	clock   quartz.Clock
	logger  *log.Logger
	review  bool
	reviews map[string]bool
	pending *scenario.Node
}

// NewPlay prepares a play-through of s. Answers are appended to store.
func NewPlay(s *scenario.Scenario, store attempts.Store, opts ...Option) (*Play, error) {
	o := buildOptions("play", opts)
	rt, err := replay.New(s)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
	}
	return &Play{
		rt:     rt,
		store:  store,
		clock:  o.clock,
		logger: o.logger.With("scenario", s.ID),
		review: o.review,
	}, nil
}

// Start runs the opening script and returns the first decision, or nil if
// there is nothing to answer. In review mode only previously missed
// decisions are presented.
func (p *Play) Start(ctx context.Context) (*scenario.Node, error) {
	if p.review {
		list, err := p.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load review set: %w", err)
		}
		p.reviews = attempts.ReviewSet(list, p.rt.Scenario().ID)
		p.logger.Debug("review mode", "nodes", len(p.reviews))
	}
	return p.runToDecision()
}

// Submit grades and records the hero's answer to the pending decision and
// applies it to the table.
func (p *Play) Submit(ctx context.Context, action scenario.ActionType, size *float64) (Outcome, error) {
	node := p.pending
	if node == nil {
		if p.rt.Done() {
			return Outcome{}, replay.ErrScenarioFinished
		}
		return Outcome{}, ErrNoDecision
	}
	if !node.Legal(action) {
		return Outcome{}, fmt.Errorf("%w: %s at %s", replay.ErrIllegalAction, action, node.NodeID)
	}

	correct := replay.GradeDecision(node, action, size)
	attempt := replay.NewAttempt(p.rt.Scenario().ID, node.NodeID, action, size, correct, p.clock.Now())
	if err := p.store.Append(ctx, attempt); err != nil {
		return Outcome{}, fmt.Errorf("record attempt: %w", err)
	}
	if err := p.rt.ApplyDecision(node, action, size); err != nil {
		return Outcome{}, err
	}
	p.pending = nil

	p.logger.Info("decision graded", "node", node.NodeID, "action", action, "correct", correct)
	return Outcome{Node: node, Attempt: attempt, Correct: correct}, nil
}

// Next moves past the answered decision and returns the following one, or
// nil when the scenario is over.
func (p *Play) Next() (*scenario.Node, error) {
	if p.pending != nil {
		return nil, fmt.Errorf("decision %s is still pending", p.pending.NodeID)
	}
	if !p.rt.Advance() {
		return nil, nil
	}
	return p.runToDecision()
}

// Done reports whether the scenario has run to the end of its chain.
func (p *Play) Done() bool { return p.rt.Done() }

// Snapshot returns the table as it stands.
func (p *Play) Snapshot() replay.Snapshot { return p.rt.Snapshot() }

// Scenario returns the scenario being played.
func (p *Play) Scenario() *scenario.Scenario { return p.rt.Scenario() }

func (p *Play) runToDecision() (*scenario.Node, error) {
	node, err := p.rt.RunUntilDecision(p.reviews)
	if err != nil {
		return nil, err
	}
	p.pending = node
	if node == nil {
		p.logger.Debug("scenario finished")
	}
	return node, nil
}
