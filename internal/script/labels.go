package script

import (
	"fmt"
	"strings"

	"github.com/lox/pokerdrill/internal/position"
)

// Label returns the short badge shown next to a player, e.g. "RAISE 8BB".
// Actions other than the six hero actions are upper-cased and echoed.
func Label(action string, size *float64) string {
	a := strings.ToUpper(action)
	switch a {
	case "FOLD", "CHECK", "CALL":
		return a
	case "ALL_IN":
		return "ALL-IN"
	case "BET", "RAISE":
		if size != nil {
			return fmt.Sprintf("%s %sBB", a, FormatBB(*size))
		}
		return a
	}
	return a
}

// LogLine returns the action log entry for a position taking an action,
// e.g. "BTN raises to 8BB".
func LogLine(pos position.Position, action string, size *float64) string {
	a := strings.ToUpper(action)
	switch a {
	case "FOLD":
		return fmt.Sprintf("%s folds", pos)
	case "CHECK":
		return fmt.Sprintf("%s checks", pos)
	case "CALL":
		return fmt.Sprintf("%s calls", pos)
	case "ALL_IN":
		return fmt.Sprintf("%s goes all-in", pos)
	case "BET":
		if size != nil {
			return fmt.Sprintf("%s bets to %sBB", pos, FormatBB(*size))
		}
		return fmt.Sprintf("%s bets", pos)
	case "RAISE":
		if size != nil {
			return fmt.Sprintf("%s raises to %sBB", pos, FormatBB(*size))
		}
		return fmt.Sprintf("%s raises", pos)
	}
	return fmt.Sprintf("%s %s", pos, a)
}
