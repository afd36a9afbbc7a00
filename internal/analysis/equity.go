package analysis

import (
	"math"

	"github.com/lox/pokerdrill/poker"
)

var rankValues = map[byte]float64{
	'A': 10, 'K': 8, 'Q': 7, 'J': 6, 'T': 5,
	'9': 4.5, '8': 4, '7': 3.5, '6': 3, '5': 2.5, '4': 2, '3': 1.5, '2': 1,
}

// multiwayFactor discounts heads-up equity by opponent count; index is the
// number of opponents and anything past the end uses the last entry.
var multiwayFactor = []float64{1, 1, 0.73, 0.63, 0.56, 0.50}

func gapPenalty(gap int) float64 {
	switch {
	case gap <= 0:
		return 0
	case gap == 1:
		return 1
	case gap == 2:
		return 2
	case gap == 3:
		return 4
	default:
		return 5
	}
}

// ChenScore maps a hand key to a 0-20 strength score.
func ChenScore(k Key) float64 {
	hi, lo := k.High(), k.Low()
	if k.Pair() {
		if hi == 'A' {
			return 20
		}
		return math.Max(5, 2*rankValues[hi])
	}

	score := math.Max(rankValues[hi], rankValues[lo])
	if k.Suited() {
		score += 2
	}
	gap := k.Gap()
	score -= gapPenalty(gap)
	switch gap {
	case 0:
		score++
	case 1:
		score += 0.5
	}
	if hi != 'A' && poker.RankIndex(hi) >= poker.RankIndex('9') {
		score += 0.5
	}
	return clamp(score, 0, 20)
}

// HeadsUpEquity maps a score linearly onto [0.28, 0.85] and clamps the result
// to [0.25, 0.87].
func HeadsUpEquity(score float64) float64 {
	return clamp(0.28+score/20*0.57, 0.25, 0.87)
}

// MultiwayEquity discounts a heads-up equity for the number of opponents.
func MultiwayEquity(eHU float64, opponents int) float64 {
	i := max(opponents, 0)
	if i >= len(multiwayFactor) {
		i = len(multiwayFactor) - 1
	}
	return eHU * multiwayFactor[i]
}

// EquityVsRandom estimates the hand's equity against opponents holding random
// hands, clamped to [0.05, 0.87].
func EquityVsRandom(k Key, opponents int) float64 {
	return clamp(MultiwayEquity(HeadsUpEquity(ChenScore(k)), opponents), 0.05, 0.87)
}

// EquityDebug exposes the intermediate values behind an equity estimate.
type EquityDebug struct {
	Key     Key     `json:"key"`
	Score   float64 `json:"score"`
	HeadsUp float64 `json:"eHU"`
}

// Debug returns the key, score and heads-up equity rounded to two decimals.
func Debug(k Key) EquityDebug {
	score := ChenScore(k)
	return EquityDebug{Key: k, Score: round2(score), HeadsUp: round2(HeadsUpEquity(score))}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
