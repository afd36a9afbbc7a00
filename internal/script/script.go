// Package script parses the compact action directives used by authored
// scenarios, e.g. "BTN RAISE 2.5" or "DEAL_FLOP Ks 7d 2c".
package script

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lox/pokerdrill/internal/position"
)

// Kind identifies the directive.
type Kind string

const (
	DealFlop  Kind = "DEAL_FLOP"
	DealTurn  Kind = "DEAL_TURN"
	DealRiver Kind = "DEAL_RIVER"
	Fold      Kind = "FOLD"
	Check     Kind = "CHECK"
	Call      Kind = "CALL"
	AllIn     Kind = "ALL_IN"
	BetTo     Kind = "BET_TO"
	RaiseTo   Kind = "RAISE_TO"
)

// IsDeal reports whether the directive reveals board cards.
func (k Kind) IsDeal() bool {
	return k == DealFlop || k == DealTurn || k == DealRiver
}

var (
	ErrEmpty         = errors.New("empty script action")
	ErrUnknownAction = errors.New("unknown script action")
	ErrMissingAmount = errors.New("missing amount")
	ErrCardCount     = errors.New("wrong number of cards")
)

// ParseError reports a directive that matches no grammar.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Action is one parsed directive. Deal actions carry Cards; player actions
// carry Actor and, for CALL/BET_TO/RAISE_TO, an Amount in big blinds.
type Action struct {
	Kind      Kind
	Actor     position.Position
	Cards     []string
	Amount    float64
	HasAmount bool
}

// Parse reads a single directive line.
func Parse(line string) (Action, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Action{}, &ParseError{Line: line, Err: ErrEmpty}
	}

	head := strings.ToUpper(parts[0])
	switch Kind(head) {
	case DealFlop:
		if len(parts) != 4 {
			return Action{}, &ParseError{Line: line, Err: fmt.Errorf("%w: DEAL_FLOP needs 3", ErrCardCount)}
		}
		return Action{Kind: DealFlop, Cards: parts[1:]}, nil
	case DealTurn, DealRiver:
		if len(parts) != 2 {
			return Action{}, &ParseError{Line: line, Err: fmt.Errorf("%w: %s needs 1", ErrCardCount, head)}
		}
		return Action{Kind: Kind(head), Cards: parts[1:2]}, nil
	}

	if len(parts) < 2 {
		return Action{}, &ParseError{Line: line, Err: ErrUnknownAction}
	}
	a := Action{Actor: position.Position(head)}
	verb := strings.ToUpper(parts[1])
	amount, hasAmount := 0.0, false
	if len(parts) > 2 {
		amount, hasAmount = parseAmount(parts[2])
	}

	switch verb {
	case "FOLD":
		a.Kind = Fold
	case "CHECK":
		a.Kind = Check
	case "ALL_IN":
		a.Kind = AllIn
	case "CALL":
		a.Kind = Call
		a.Amount, a.HasAmount = amount, hasAmount
	case "BET", "BET_TO", "RAISE", "RAISE_TO":
		if !hasAmount {
			return Action{}, &ParseError{Line: line, Err: fmt.Errorf("%w: %s", ErrMissingAmount, verb)}
		}
		a.Kind = RaiseTo
		if strings.HasPrefix(verb, "BET") {
			a.Kind = BetTo
		}
		a.Amount, a.HasAmount = amount, true
	default:
		return Action{}, &ParseError{Line: line, Err: ErrUnknownAction}
	}
	return a, nil
}

func parseAmount(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders the action back into directive form.
func (a Action) String() string {
	switch a.Kind {
	case DealFlop, DealTurn, DealRiver:
		return string(a.Kind) + " " + strings.Join(a.Cards, " ")
	case BetTo:
		return fmt.Sprintf("%s BET %s", a.Actor, FormatBB(a.Amount))
	case RaiseTo:
		return fmt.Sprintf("%s RAISE %s", a.Actor, FormatBB(a.Amount))
	case Call:
		if a.HasAmount {
			return fmt.Sprintf("%s CALL %s", a.Actor, FormatBB(a.Amount))
		}
	}
	return fmt.Sprintf("%s %s", a.Actor, a.Kind)
}

// FormatBB prints an amount in big blinds with no trailing zeros: 2.5 stays
// "2.5" and 8.0 becomes "8".
func FormatBB(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
