package analysis

// Named hand tables used by the preflop recommendation engine.
var (
	// PremiumSafety hands never fold and always qualify for push/fold shoves.
	PremiumSafety = MustParseRange("QQ+,AKs,AKo")

	// Premium hands always 3-bet.
	Premium = MustParseRange("JJ+,AKs,AKo")

	// ReshoveValue hands prefer an all-in over a 3-bet at 20BB or less.
	ReshoveValue = MustParseRange("JJ+,AKs,AKo")

	// ThreeBetCommitted is the value-only range against an opener who is
	// already committed.
	ThreeBetCommitted Matcher = Union(Premium, MustParseRange("TT,AQs,AQo"))

	// ThreeBetTight is the late-tournament value range.
	ThreeBetTight Matcher = Union(Premium, MustParseRange("TT,99,AQs,AQo,AJs,KQs"))

	// ThreeBetDefault adds a few suited bluffs to the value range.
	ThreeBetDefault Matcher = Union(ThreeBetTight, MustParseRange("A5s-A2s,KJs,KTs,T9s,98s,87s"))

	// ExpansionEligible hands may loosen up when the hero is deep. Offsuit
	// hands never qualify.
	ExpansionEligible Matcher = Union(
		Pairs,
		SuitedConnectors,
		SuitedWith('A', '2'),
		SuitedWith('K', '2'),
		SuitedWith('Q', '6'),
		SuitedWith('J', '6'),
	)

	// ShoveUnder5 is close to any-two-cards survival shoving.
	ShoveUnder5 Matcher = Union(
		Pairs,
		Containing('A'),
		SuitedWith('K', '9'),
		Broadway(true),
		MustParseRange("JTs,T9s,98s,87s"),
	)

	// ShoveUnder10 opens up offsuit broadways and suited connectors.
	ShoveUnder10 Matcher = Union(
		Pairs,
		Containing('A'),
		Broadway(true),
		Broadway(false),
		SuitedConnectorsFrom('8'),
	)

	// ShoveUnder15 is the tightest shove range.
	ShoveUnder15 Matcher = Union(
		MustParseRange("66+"),
		SuitedConnectorsFrom('T'),
		Broadway(true),
		SuitedWith('A', '2'),
		Broadway(false),
	)
)

// ShoveRangeAllowed reports whether k is an all-in at stack big blinds.
// Stacks of 15BB or more never use the push/fold tables.
func ShoveRangeAllowed(k Key, stack float64) bool {
	switch {
	case stack < 5:
		return ShoveUnder5.Contains(k)
	case stack < 10:
		return ShoveUnder10.Contains(k)
	case stack < 15:
		return ShoveUnder15.Contains(k)
	default:
		return false
	}
}

// ThreeBetRange selects the 3-bet table for the situation.
func ThreeBetRange(openerCommitted, latePhase bool) Matcher {
	switch {
	case openerCommitted:
		return ThreeBetCommitted
	case latePhase:
		return ThreeBetTight
	default:
		return ThreeBetDefault
	}
}
