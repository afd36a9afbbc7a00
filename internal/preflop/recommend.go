package preflop

import (
	"fmt"
	"math"

	"github.com/lox/pokerdrill/internal/analysis"
	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/scenario"
)

// Mode is the decision framework the recommendation used.
type Mode string

const (
	ModePushFold Mode = "PUSH_FOLD"
	ModeNormal   Mode = "NORMAL"
)

const (
	pushFoldBelowBB     = 15.0
	shortStackBB        = 20.0
	premiumShoveBB      = 35.0
	committedStackBB    = 12.0
	committedRatio      = 6.0
	maxNeed             = 0.95
	shortStackPenalty   = 0.01
	threeBetMultIP      = 3.0
	threeBetMultOOP     = 3.5
	minOpenSizeForRatio = 0.1
)

// Recommendation is the engine's answer for a spot together with every
// intermediate value used to reach it.
type Recommendation struct {
	Action    scenario.ActionType `json:"action"`
	Mode      Mode                `json:"mode"`
	RaiseToBB *float64            `json:"raiseToBB,omitempty"`
	OppCount  int                 `json:"oppCount"`

	PotBB      float64 `json:"potBB"`
	CallCostBB float64 `json:"callCostBB"`

	Equity      float64 `json:"equity"`
	EquityFinal float64 `json:"equityFinal"`
	Need        float64 `json:"need"`
	NeedAdj     float64 `json:"needAdj"`

	PhasePenalty  float64 `json:"phasePenalty"`
	OpenerPenalty float64 `json:"openerPenalty"`
	HeroBonus     float64 `json:"heroBonus"`
	ShortPenalty  float64 `json:"shortPenalty"`
	Margin        float64 `json:"margin"`

	Debug           analysis.EquityDebug `json:"dbg"`
	OpenerRatio     float64              `json:"openerRatio"`
	OpenerVeryShort bool                 `json:"openerVeryShort"`
	IsPremium       bool                 `json:"isPremium"`
}

// Recommend evaluates the hero's options against the open in spot.
func Recommend(spot *Spot) (Recommendation, error) {
	hero, err := spot.Hero()
	if err != nil {
		return Recommendation{}, err
	}
	opener, err := spot.Player(spot.OpenerPos)
	if err != nil {
		return Recommendation{}, fmt.Errorf("opener: %w", err)
	}
	key, err := analysis.HandKey(spot.HeroHand)
	if err != nil {
		return Recommendation{}, fmt.Errorf("hero hand: %w", err)
	}

	// Seats that put chips in are the opponents; idle seats have not
	// acted yet and are ignored.
	contributors := 0
	for _, p := range spot.Players {
		if p.InvestedBB > 0 {
			contributors++
		}
	}

	rec := Recommendation{
		OppCount:   max(1, contributors-1),
		PotBB:      spot.PotBB,
		CallCostBB: spot.CallCostBB,
		Debug:      analysis.Debug(key),
		IsPremium:  analysis.PremiumSafety.Contains(key),
	}

	openSize := math.Max(minOpenSizeForRatio, spot.OpenSizeBB)
	rec.OpenerRatio = opener.StackBB / openSize
	rec.OpenerVeryShort = opener.StackBB <= committedStackBB || rec.OpenerRatio <= committedRatio

	call := spot.CallCostBB
	scale := callScale(call)

	rec.Equity = analysis.EquityVsRandom(key, rec.OppCount)
	rec.EquityFinal = rec.Equity
	if spot.Phase.Late() {
		rec.EquityFinal = math.Max(0, rec.Equity-lateEquityCut(rec.OpenerRatio)*scale)
	}

	rec.Need = BreakEvenEquity(call, spot.PotBB)
	rec.PhasePenalty = spot.Phase.Tightening() * scale
	rec.OpenerPenalty = openerStackPenalty(spot.OpenSizeBB, opener.StackBB) * scale
	rec.HeroBonus = heroDeepBonus(spot.OpenSizeBB, hero.StackBB, key)
	rec.NeedAdj = math.Min(maxNeed, math.Max(0, rec.Need+rec.PhasePenalty+rec.OpenerPenalty-rec.HeroBonus))
	rec.Margin = callMargin(call)

	if hero.StackBB < pushFoldBelowBB {
		rec.Mode = ModePushFold
		rec.Action = scenario.Fold
		if rec.IsPremium || analysis.ShoveRangeAllowed(key, hero.StackBB) {
			rec.Action = scenario.AllIn
		}
		return rec, nil
	}

	rec.Mode = ModeNormal
	if hero.StackBB <= shortStackBB {
		rec.ShortPenalty = shortStackPenalty
	}

	rec.Action = scenario.Fold
	if rec.EquityFinal >= rec.NeedAdj+rec.Margin+rec.ShortPenalty {
		rec.Action = scenario.Call
	}

	raiseTo := threeBetSize(spot.OpenSizeBB, spot.HeroPos)
	switch {
	case rec.OpenerVeryShort:
		rec.Action = scenario.Fold
		if rec.IsPremium {
			rec.Action = scenario.Raise
			if hero.StackBB <= premiumShoveBB {
				rec.Action = scenario.AllIn
			}
		}
	case analysis.ThreeBetRange(false, spot.Phase.Late()).Contains(key):
		rec.Action = scenario.Raise
		if hero.StackBB <= shortStackBB && analysis.ReshoveValue.Contains(key) {
			rec.Action = scenario.AllIn
		}
	}

	if rec.IsPremium && rec.Action == scenario.Fold {
		rec.Action = scenario.Raise
		if hero.StackBB <= shortStackBB {
			rec.Action = scenario.AllIn
		}
	}

	if rec.Action == scenario.Raise {
		rec.RaiseToBB = &raiseTo
	}
	return rec, nil
}

// GradeDrill reports whether choice matches the recommended action.
func GradeDrill(rec Recommendation, choice scenario.ActionType) bool {
	return choice == rec.Action
}

// DrillChoices returns the actions offered to the hero. Push/fold spots
// offer only FOLD and ALL_IN; CALL also needs a positive call cost.
func DrillChoices(spot *Spot) ([]scenario.ActionType, error) {
	hero, err := spot.Hero()
	if err != nil {
		return nil, err
	}
	pushFold := hero.StackBB < pushFoldBelowBB
	choices := []scenario.ActionType{scenario.Fold}
	if !pushFold && spot.CallCostBB > 0 {
		choices = append(choices, scenario.Call)
	}
	if !pushFold {
		choices = append(choices, scenario.Raise)
	}
	return append(choices, scenario.AllIn), nil
}

// Explain renders the beginner explanation followed by the calculation
// details behind rec.
func Explain(rec Recommendation) []string {
	pct := func(v float64) string { return formatBB(Round2(v*100)) + "%" }

	lines := []string{
		"This drill asks whether your equity is high enough for the price of the call.",
		"Pot odds give the minimum equity you need. Your hand's equity is estimated from a heuristic table. Call when it is comfortably above the requirement and fold otherwise.",
		"Late in a tournament (bubble or pay jump) the evaluation is more conservative. An opener close to committed is assumed to hold a stronger range.",
		fmt.Sprintf("Pot = %sBB, call cost = %sBB", formatBB(rec.PotBB), formatBB(rec.CallCostBB)),
		"Break-even equity (raw) = " + pct(rec.Need),
		"Adjusted break-even = " + pct(rec.NeedAdj) + " (phase + opener - hero deep bonus)",
		fmt.Sprintf("Equity (base) = %s, equity (final) = %s (heads-up baseline %s, key %s, score %s)",
			pct(rec.Equity), pct(rec.EquityFinal), pct(rec.Debug.HeadsUp), rec.Debug.Key, formatBB(rec.Debug.Score)),
		fmt.Sprintf("Opponents = %d, opener ratio (stack/open) = %sx", rec.OppCount, formatBB(Round2(rec.OpenerRatio))),
		fmt.Sprintf("Penalties: phase %sp, opener %sp, short %sp, hero deep bonus %sp",
			pct(rec.PhasePenalty), pct(rec.OpenerPenalty), pct(rec.ShortPenalty), pct(rec.HeroBonus)),
		fmt.Sprintf("Mode: %s (push/fold below %sBB)", rec.Mode, formatBB(pushFoldBelowBB)),
	}
	return lines
}

// callScale softens phase and opener adjustments for cheap calls.
func callScale(call float64) float64 {
	switch {
	case call <= 0.5:
		return 0.2
	case call <= 1:
		return 0.35
	case call <= 2:
		return 0.6
	default:
		return 1
	}
}

func callMargin(call float64) float64 {
	switch {
	case call <= 0.5:
		return 0.003
	case call <= 1:
		return 0.006
	case call <= 2:
		return 0.012
	default:
		return 0.02
	}
}

func lateEquityCut(openerRatio float64) float64 {
	switch {
	case openerRatio <= 6:
		return 0.08
	case openerRatio <= 10:
		return 0.06
	case openerRatio <= 15:
		return 0.04
	default:
		return 0.03
	}
}

func openerStackPenalty(openSize, openerStack float64) float64 {
	ratio := openerStack / math.Max(minOpenSizeForRatio, openSize)
	switch {
	case ratio <= 6:
		return 0.08
	case ratio <= 10:
		return 0.05
	case ratio <= 15:
		return 0.03
	case ratio <= 25:
		return 0.01
	default:
		return 0
	}
}

// heroDeepBonus lowers the requirement for speculative hands when the hero
// covers the open many times over. Offsuit hands never qualify.
func heroDeepBonus(openSize, heroStack float64, key analysis.Key) float64 {
	if !analysis.ExpansionEligible.Contains(key) {
		return 0
	}
	ratio := heroStack / math.Max(minOpenSizeForRatio, openSize)
	switch {
	case ratio >= 30:
		return 0.03
	case ratio >= 20:
		return 0.02
	case ratio >= 15:
		return 0.01
	default:
		return 0
	}
}

func threeBetSize(openSize float64, hero position.Position) float64 {
	mult := threeBetMultIP
	if hero.IsBlind() {
		mult = threeBetMultOOP
	}
	return Round1(openSize * mult)
}
