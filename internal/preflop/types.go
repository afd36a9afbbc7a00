// Package preflop generates single-decision preflop tournament spots and
// recommends an action for the hero facing an open.
package preflop

import (
	"errors"
	"fmt"

	"github.com/lox/pokerdrill/internal/position"
)

var (
	// ErrPlayerNotFound is returned when a position has no seat in the spot.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrHeroNotFound is returned when no seat is marked as the hero.
	ErrHeroNotFound = errors.New("hero not found")
)

// Phase is the tournament stage a spot is played in.
type Phase string

const (
	PhaseEarly        Phase = "EARLY"
	PhaseMid          Phase = "MID"
	PhaseRegCloseSoon Phase = "REG_CLOSE_SOON"
	PhaseRegClosed    Phase = "REG_CLOSED"
	PhaseBubble       Phase = "BUBBLE"
	PhasePayJump      Phase = "PAY_JUMP"
)

// Phases lists every phase in tournament order.
var Phases = []Phase{PhaseEarly, PhaseMid, PhaseRegCloseSoon, PhaseRegClosed, PhaseBubble, PhasePayJump}

// Late reports whether ICM pressure applies (bubble or pay jump).
func (p Phase) Late() bool {
	return p == PhaseBubble || p == PhasePayJump
}

// Tightening is the extra equity the hero needs to call in this phase.
func (p Phase) Tightening() float64 {
	switch p {
	case PhaseMid:
		return 0.02
	case PhaseRegCloseSoon:
		return 0.03
	case PhaseRegClosed:
		return 0.04
	case PhaseBubble:
		return 0.08
	case PhasePayJump:
		return 0.10
	default:
		return 0
	}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p.Tightening() > 0 || p == PhaseEarly
}

// PlayerState is one seat in a preflop spot. Amounts are in big blinds.
type PlayerState struct {
	Pos        position.Position `json:"pos"`
	StackBB    float64           `json:"stackBB"`
	InHand     bool              `json:"inHand"`
	InvestedBB float64           `json:"investedBB"`
	AnteBB     float64           `json:"anteBB"`
	LastAction string            `json:"lastAction,omitempty"`
	IsHero     bool              `json:"isHero,omitempty"`
}

// Spot is a generated preflop decision: an open, zero or more flat calls,
// and the hero to act.
type Spot struct {
	ID          string            `json:"id"`
	Table       string            `json:"table"`
	Phase       Phase             `json:"phase"`
	SB          float64           `json:"sb"`
	BB          float64           `json:"bb"`
	Ante        float64           `json:"ante"`
	HeroPos     position.Position `json:"heroPos"`
	HeroHand    string            `json:"heroHand"`
	Players     []PlayerState     `json:"players"`
	ToAct       position.Position `json:"toAct"`
	PotBB       float64           `json:"potBB"`
	CallCostBB  float64           `json:"callCostBB"`
	LineSummary string            `json:"lineSummary"`
	OpenerPos   position.Position `json:"openerPos"`
	OpenSizeBB  float64           `json:"openSizeBB"`
}

// Player returns the seat at pos.
func (s *Spot) Player(pos position.Position) (*PlayerState, error) {
	return findPlayer(s.Players, pos)
}

// Hero returns the hero's seat.
func (s *Spot) Hero() (*PlayerState, error) {
	for i := range s.Players {
		if s.Players[i].IsHero {
			return &s.Players[i], nil
		}
	}
	return nil, ErrHeroNotFound
}

func findPlayer(players []PlayerState, pos position.Position) (*PlayerState, error) {
	for i := range players {
		if players[i].Pos == pos {
			return &players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, pos)
}
