package analysis

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code string
		want Key
	}{
		{"AsKd", "AKo"},
		{"7s8s", "87s"},
		{"KdKc", "KK"},
		{"2hAh", "A2s"},
		{"tcJc", "JTs"},
		{"9d3s", "93o"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			t.Parallel()
			got, err := HandKey(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "AsK", "AsKdx", "XsKd", "AsAs"} {
		_, err := HandKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestKeyHelpers(t *testing.T) {
	t.Parallel()
	assert.True(t, Key("QQ").Pair())
	assert.Equal(t, -1, Key("QQ").Gap())
	assert.Equal(t, 0, Key("AKs").Gap())
	assert.Equal(t, 3, Key("J7o").Gap())
	assert.True(t, Key("KTo").Broadway())
	assert.False(t, Key("K9s").Broadway())
	assert.True(t, Key("K9s").Suited())
	assert.False(t, Key("K9o").Suited())
}

func TestChenScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  Key
		want float64
	}{
		{"AA", 20},
		{"KK", 16},
		{"TT", 10},
		{"55", 5},
		{"22", 5},
		{"AKs", 13},  // 10 + 2 + 1
		{"AKo", 11},  // 10 + 1
		{"AQo", 9.5}, // 10 - 1 + 0.5
		{"87s", 7.5}, // 4 + 2 + 1 + 0.5 low-card bonus
		{"72o", 0},   // 3.5 - 5 + 0.5, clamped
		{"J9s", 7.5}, // 6 + 2 - 1 + 0.5
		{"T6o", 1},   // 5 - 4
	}
	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, ChenScore(tc.key), 1e-9)
		})
	}
}

func TestEquity(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.85, HeadsUpEquity(20), 1e-9)
	assert.InDelta(t, 0.28, HeadsUpEquity(0), 1e-9)
	assert.InDelta(t, 0.565, HeadsUpEquity(10), 1e-9)

	assert.InDelta(t, 0.5, MultiwayEquity(0.5, 0), 1e-9)
	assert.InDelta(t, 0.5, MultiwayEquity(0.5, 1), 1e-9)
	assert.InDelta(t, 0.365, MultiwayEquity(0.5, 2), 1e-9)
	assert.InDelta(t, 0.315, MultiwayEquity(0.5, 3), 1e-9)
	assert.InDelta(t, 0.28, MultiwayEquity(0.5, 4), 1e-9)
	assert.InDelta(t, 0.25, MultiwayEquity(0.5, 5), 1e-9)
	assert.InDelta(t, 0.25, MultiwayEquity(0.5, 9), 1e-9)

	assert.InDelta(t, 0.85, EquityVsRandom("AA", 1), 1e-9)
	assert.InDelta(t, 0.28*0.5, EquityVsRandom("72o", 7), 1e-9)

	for _, k := range []Key{"AA", "72o", "87s", "KTo"} {
		for opps := 1; opps <= 8; opps++ {
			e := EquityVsRandom(k, opps)
			assert.GreaterOrEqual(t, e, 0.05)
			assert.LessOrEqual(t, e, 0.87)
		}
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()
	d := Debug("87s")
	assert.Equal(t, Key("87s"), d.Key)
	assert.Equal(t, 7.5, d.Score)
	assert.Equal(t, 0.49, d.HeadsUp) // 0.28 + 7.5/20*0.57 = 0.49375
}

func TestParseRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		notation string
		want     []Key
	}{
		{"AA,KK", []Key{"AA", "KK"}},
		{"TT+", []Key{"AA", "JJ", "KK", "QQ", "TT"}},
		{"A5s-A2s", []Key{"A2s", "A3s", "A4s", "A5s"}},
		{"KTs+", []Key{"KJs", "KQs", "KTs"}},
		{"22-44", []Key{"22", "33", "44"}},
		{"AK", []Key{"AKo", "AKs"}},
		{"QJo", []Key{"QJo"}},
		{" 99 , ", []Key{"99"}},
	}
	for _, tc := range tests {
		t.Run(tc.notation, func(t *testing.T) {
			t.Parallel()
			r, err := ParseRange(tc.notation)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.want, slices.Collect(maps.Keys(r.keys)))
		})
	}

	for _, bad := range []string{"AKx", "AAs", "Z2", "A", "AK-QJ", "22-33-44"} {
		_, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestNamedTables(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		table Matcher
		in    []Key
		out   []Key
	}{
		{"premium safety", PremiumSafety, []Key{"AA", "KK", "QQ", "AKs", "AKo"}, []Key{"JJ", "AQs"}},
		{"premium", Premium, []Key{"JJ", "AKo"}, []Key{"TT", "AQs"}},
		{"three-bet tight", ThreeBetTight, []Key{"99", "AJs", "KQs", "AQo"}, []Key{"A5s", "88", "AJo", "KQo"}},
		{"three-bet default", ThreeBetDefault, []Key{"A5s", "A2s", "KJs", "KTs", "87s", "99"}, []Key{"A6s", "76s", "K9s", "KJo"}},
		{"three-bet committed", ThreeBetCommitted, []Key{"TT", "AQo", "KK"}, []Key{"99", "AJs", "KQs"}},
		{"expansion", ExpansionEligible, []Key{"22", "54s", "A2s", "K3s", "Q6s", "J6s", "AKs"}, []Key{"Q5s", "J5s", "AKo", "T8s", "96s"}},
		{"shove under 5", ShoveUnder5, []Key{"22", "A2o", "K9s", "QTs", "JTs", "87s"}, []Key{"K8s", "KQo", "76s", "T8s"}},
		{"shove under 10", ShoveUnder10, []Key{"22", "A2o", "KQo", "JTo", "87s"}, []Key{"76s", "K9s", "T8s"}},
		{"shove under 15", ShoveUnder15, []Key{"66", "T9s", "QJs", "A2s", "KTo"}, []Key{"55", "98s", "A9o", "K9s"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, k := range tc.in {
				assert.True(t, tc.table.Contains(k), "expected %s in range", k)
			}
			for _, k := range tc.out {
				assert.False(t, tc.table.Contains(k), "expected %s outside range", k)
			}
		})
	}
}

func TestShoveRangeAllowed(t *testing.T) {
	t.Parallel()
	assert.True(t, ShoveRangeAllowed("A2o", 4))
	assert.True(t, ShoveRangeAllowed("A2o", 9.9))
	assert.False(t, ShoveRangeAllowed("A2o", 10))
	assert.True(t, ShoveRangeAllowed("A2s", 14))
	assert.False(t, ShoveRangeAllowed("AA", 15))
	assert.False(t, ShoveRangeAllowed("72o", 2))
}

func TestThreeBetRange(t *testing.T) {
	t.Parallel()
	assert.True(t, ThreeBetRange(true, false).Contains("AQo"))
	assert.False(t, ThreeBetRange(true, false).Contains("99"))
	assert.True(t, ThreeBetRange(false, true).Contains("99"))
	assert.True(t, ThreeBetRange(false, false).Contains("A4s"))
	assert.False(t, ThreeBetRange(false, true).Contains("A4s"))
}
