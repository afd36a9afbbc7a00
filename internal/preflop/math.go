package preflop

import (
	"math"
	"strconv"
)

// BreakEvenEquity is the share of the final pot a call must win to break
// even: call / (pot + call). A free option needs nothing.
func BreakEvenEquity(callBB, potBB float64) float64 {
	if callBB <= 0 {
		return 0
	}
	denom := potBB + callBB
	if denom <= 0 {
		return 1
	}
	return callBB / denom
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func formatBB(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
