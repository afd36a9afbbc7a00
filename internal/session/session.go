// Package session drives interactive training: authored scenario play-
// throughs and generated preflop drills. Each graded answer is recorded in
// an attempt store.
package session

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

var (
	// ErrNoDecision is returned when an answer is submitted with nothing
	// awaiting one.
	ErrNoDecision = errors.New("no decision pending")
	// ErrChoiceUnavailable is returned for a drill choice the spot does not
	// offer.
	ErrChoiceUnavailable = errors.New("choice not available")
)

// DrillScenarioID is the scenario ID preflop drill attempts are filed under.
const DrillScenarioID = "PREFLOP"

type options struct {
	clock  quartz.Clock
	logger *log.Logger
	review bool
}

// Option configures a session.
type Option func(*options)

// WithClock sets the clock used for attempt timestamps.
func WithClock(c quartz.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithReview restricts a scenario play-through to previously missed
// decisions.
func WithReview() Option {
	return func(o *options) { o.review = true }
}

func buildOptions(prefix string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	o.logger = o.logger.WithPrefix(prefix)
	return o
}
