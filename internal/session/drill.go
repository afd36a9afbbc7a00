package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/preflop"
	"github.com/lox/pokerdrill/internal/replay"
	"github.com/lox/pokerdrill/internal/scenario"
)

// DrillOutcome is the result of one graded preflop spot.
type DrillOutcome struct {
	Spot           *preflop.Spot          `json:"spot"`
	Recommendation preflop.Recommendation `json:"recommendation"`
	Attempt        scenario.AttemptResult `json:"attempt"`
	Correct        bool                   `json:"correct"`
}

// Drill deals generated preflop spots one at a time.
type Drill struct {
	gen     *preflop.Generator
	store   attempts.Store
	clock   quartz.Clock
	logger  *log.Logger
	spot    *preflop.Spot
	rec     preflop.Recommendation
	choices []scenario.ActionType
}

// NewDrill creates a drill drawing spots from gen.
func NewDrill(gen *preflop.Generator, store attempts.Store, opts ...Option) *Drill {
	o := buildOptions("drill", opts)
	return &Drill{gen: gen, store: store, clock: o.clock, logger: o.logger}
}

// Deal generates the next spot and its recommendation.
func (d *Drill) Deal() (*preflop.Spot, []scenario.ActionType, error) {
	spot, err := d.gen.Generate()
	if err != nil {
		return nil, nil, err
	}
	rec, err := preflop.Recommend(spot)
	if err != nil {
		return nil, nil, fmt.Errorf("recommend %s: %w", spot.ID, err)
	}
	choices, err := preflop.DrillChoices(spot)
	if err != nil {
		return nil, nil, err
	}
	d.spot, d.rec, d.choices = spot, rec, choices
	d.logger.Debug("dealt spot", "id", spot.ID, "hero", spot.HeroPos, "hand", spot.HeroHand, "phase", spot.Phase)
	return spot, choices, nil
}

// Submit grades choice against the recommendation for the dealt spot. The
// spot is consumed; call Deal for the next one.
func (d *Drill) Submit(ctx context.Context, choice scenario.ActionType) (DrillOutcome, error) {
	if d.spot == nil {
		return DrillOutcome{}, ErrNoDecision
	}
	if !slices.Contains(d.choices, choice) {
		return DrillOutcome{}, fmt.Errorf("%w: %s", ErrChoiceUnavailable, choice)
	}

	correct := preflop.GradeDrill(d.rec, choice)
	var size *float64
	if choice == scenario.Raise && d.rec.RaiseToBB != nil {
		size = d.rec.RaiseToBB
	}
	attempt := replay.NewAttempt(DrillScenarioID, d.spot.ID, choice, size, correct, d.clock.Now())
	if err := d.store.Append(ctx, attempt); err != nil {
		return DrillOutcome{}, fmt.Errorf("record attempt: %w", err)
	}

	out := DrillOutcome{Spot: d.spot, Recommendation: d.rec, Attempt: attempt, Correct: correct}
	d.logger.Info("spot graded", "id", d.spot.ID, "choice", choice, "recommended", d.rec.Action, "correct", correct)
	d.spot, d.choices = nil, nil
	return out, nil
}
