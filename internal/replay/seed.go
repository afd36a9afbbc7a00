package replay

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/script"
)

var (
	flopMarker  = regexp.MustCompile(`(?i)^Flop:\s+(\S+)\s+(\S+)\s+(\S+)$`)
	turnMarker  = regexp.MustCompile(`(?i)^Turn:\s+(\S+)$`)
	riverMarker = regexp.MustCompile(`(?i)^River:\s+(\S+)$`)
	postLine    = regexp.MustCompile(`(?i)^([A-Z0-9]+)\s+posts\s+([\d.]+)BB$`)
)

// SeedEventsFromLog derives typed seed events from a human-readable action
// log. Street markers ("Flop: Ks 7d 2c"), blind posts ("SB posts 0.5BB") and
// script directives are recognised; every other line is decoration and is
// dropped.
func SeedEventsFromLog(lines []string) []scenario.SeedEvent {
	var events []scenario.SeedEvent
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := flopMarker.FindStringSubmatch(line); m != nil {
			events = append(events, scenario.SeedEvent{Kind: scenario.SeedStreet, Street: scenario.Flop, Cards: m[1:4]})
			continue
		}
		if m := turnMarker.FindStringSubmatch(line); m != nil {
			events = append(events, scenario.SeedEvent{Kind: scenario.SeedStreet, Street: scenario.Turn, Cards: m[1:2]})
			continue
		}
		if m := riverMarker.FindStringSubmatch(line); m != nil {
			events = append(events, scenario.SeedEvent{Kind: scenario.SeedStreet, Street: scenario.River, Cards: m[1:2]})
			continue
		}
		if m := postLine.FindStringSubmatch(line); m != nil {
			amt, err := strconv.ParseFloat(m[2], 64)
			if err != nil || math.IsInf(amt, 0) {
				continue
			}
			events = append(events, scenario.SeedEvent{
				Kind:   scenario.SeedPost,
				Pos:    position.Position(strings.ToUpper(m[1])),
				Amount: amt,
			})
			continue
		}

		a, err := script.Parse(line)
		if err != nil {
			continue
		}
		if a.Kind.IsDeal() {
			events = append(events, scenario.SeedEvent{Kind: scenario.SeedStreet, Street: dealStreet(a.Kind), Cards: a.Cards})
			continue
		}
		events = append(events, scenario.SeedEvent{Kind: scenario.SeedAction, Line: line})
	}
	return events
}

// replaySeed rebuilds stacks, board and badges from the seed history. The
// authored pot already includes this money, so nothing is added to it.
func (rt *Runtime) replaySeed(events []scenario.SeedEvent) {
	rt.resetStreet(scenario.Preflop)

	for _, ev := range events {
		switch ev.Kind {
		case scenario.SeedStreet:
			if ev.Street.Valid() && ev.Street != scenario.Preflop {
				rt.deal(ev.Street, ev.Cards)
				rt.emitDeal(ev.Street, ev.Cards, true)
			}
		case scenario.SeedPost:
			p, err := rt.playerAt(ev.Pos)
			if err != nil || !p.Active {
				continue
			}
			rt.pay(p, ev.Amount, false)
			// A blind sets the price to call, so a later seed "CALL" with no
			// amount completes to the posted blind instead of paying nothing.
			rt.state.CurrentBet = math.Max(rt.state.CurrentBet, p.InvestedThisStreet)
			p.LastAction = fmt.Sprintf("POST %sBB", script.FormatBB(ev.Amount))
		case scenario.SeedAction:
			a, err := script.Parse(ev.Line)
			if err != nil {
				continue
			}
			if a.Kind.IsDeal() {
				rt.deal(dealStreet(a.Kind), a.Cards)
				rt.emitDeal(dealStreet(a.Kind), a.Cards, true)
				continue
			}
			p, err := rt.playerAt(a.Actor)
			if err != nil || !p.Active {
				continue
			}
			rt.move(p, a, false)
			rt.emitMove(p, a.Kind, true)
		}
	}
}
