package preflop

import (
	"errors"
	rand "math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/lox/pokerdrill/internal/position"
	"github.com/lox/pokerdrill/internal/randutil"
)

const (
	tableName          = "10MAX"
	smallBlind         = 0.5
	bigBlind           = 1.0
	bigBlindAnte       = 1.0
	stackCap           = 100.0
	suitedChance       = 0.35
	maxCallers         = 3
	defaultMaxAttempts = 64
)

// ErrNoSpot is returned when neither sampling nor the fallback produced a
// spot with the hero still in the hand.
var ErrNoSpot = errors.New("could not generate a preflop spot")

var (
	heroPositions = []position.Position{
		position.UTG1, position.UTG2, position.UTG3, position.LJ,
		position.HJ, position.CO, position.BTN, position.SB, position.BB,
	}
	openSizes = []float64{2.0, 2.2, 2.5, 3.0, 3.5}
	ranks     = []byte("AKQJT98765432")
	suits     = []byte("shdc")

	stackBuckets = [][2]int{
		{1, 4}, {5, 10}, {10, 15}, {15, 20}, {20, 29}, {30, 39}, {40, 49},
		{50, 59}, {60, 69}, {70, 79}, {80, 89}, {90, 99}, {100, 100},
	}
)

// Generator samples preflop spots from a seeded random stream. It is not
// safe for concurrent use.
type Generator struct {
	rng         *rand.Rand
	maxAttempts int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxAttempts bounds how many candidates are sampled before falling
// back to a forced 100BB hero stack.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand, opts ...GeneratorOption) *Generator {
	g := &Generator{rng: rng, maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeededGenerator creates a generator whose spots are fully determined
// by seed, IDs included.
func NewSeededGenerator(seed int64, opts ...GeneratorOption) *Generator {
	return NewGenerator(randutil.New(seed), opts...)
}

// candidate holds every random choice behind one spot so the fallback can
// rebuild it with a different hero stack.
type candidate struct {
	heroPos  position.Position
	heroHand string
	phase    Phase
	stacks   map[position.Position]float64
	opener   position.Position
	openSize float64
	callers  []position.Position
}

// Generate returns a spot where the hero is still in the hand with chips
// behind. Candidates that leave the hero out are redrawn.
func (g *Generator) Generate() (*Spot, error) {
	var last candidate
	for range g.maxAttempts {
		last = g.sample()
		if spot, ok := g.build(last); ok {
			return spot, nil
		}
	}

	last.stacks[last.heroPos] = stackCap
	if spot, ok := g.build(last); ok {
		return spot, nil
	}
	return nil, ErrNoSpot
}

func (g *Generator) sample() candidate {
	c := candidate{
		heroPos: randutil.Pick(g.rng, heroPositions),
	}
	c.heroHand = g.randomHand()
	c.phase = randutil.Pick(g.rng, Phases)

	c.stacks = make(map[position.Position]float64, len(position.Order10))
	for _, pos := range position.Order10 {
		if pos == c.heroPos {
			c.stacks[pos] = float64(randutil.IntRange(g.rng, 5, 100))
			continue
		}
		b := randutil.Pick(g.rng, stackBuckets)
		c.stacks[pos] = float64(randutil.IntRange(g.rng, b[0], b[1]))
	}

	c.opener = c.heroPos
	if before := position.Before(position.Order10, c.heroPos); len(before) > 0 {
		c.opener = randutil.Pick(g.rng, before)
	}
	c.openSize = randutil.Pick(g.rng, openSizes)

	between := position.Between(position.Order10, c.opener, c.heroPos)
	if len(between) > 0 {
		n := randutil.IntRange(g.rng, 0, min(maxCallers, len(between)))
		c.callers = randutil.Shuffled(g.rng, between)[:n]
	}
	return c
}

// randomHand draws two ranks independently. Pairs always get two suits;
// other hands are suited 35% of the time.
func (g *Generator) randomHand() string {
	r1 := randutil.Pick(g.rng, ranks)
	r2 := randutil.Pick(g.rng, ranks)
	s1 := randutil.Pick(g.rng, suits)
	if r1 != r2 && randutil.Chance(g.rng, suitedChance) {
		return string([]byte{r1, s1, r2, s1})
	}
	s2 := randutil.Pick(g.rng, suits)
	for s2 == s1 {
		s2 = randutil.Pick(g.rng, suits)
	}
	return string([]byte{r1, s1, r2, s2})
}

func (g *Generator) build(c candidate) (*Spot, bool) {
	players := make([]PlayerState, 0, len(position.Order10))
	for _, pos := range position.Order10 {
		players = append(players, PlayerState{
			Pos:     pos,
			StackBB: c.stacks[pos],
			InHand:  true,
			IsHero:  pos == c.heroPos,
		})
	}

	steps := []struct {
		pos position.Position
		act Action
	}{
		{position.SB, Action{Kind: PostSB, Amount: smallBlind}},
		{position.BB, Action{Kind: PostBB, Amount: bigBlind}},
		{position.BB, Action{Kind: Ante, Amount: bigBlindAnte}},
		{c.opener, Action{Kind: RaiseTo, Amount: c.openSize}},
	}
	for _, caller := range c.callers {
		steps = append(steps, struct {
			pos position.Position
			act Action
		}{caller, Action{Kind: Call, Amount: c.openSize}})
	}
	for _, s := range steps {
		if err := Apply(players, s.pos, s.act); err != nil {
			return nil, false
		}
	}

	for i := range players {
		p := &players[i]
		if p.StackBB <= 0 {
			p.StackBB = 0
			p.InHand = false
			if p.LastAction == "" {
				p.LastAction = "OUT"
			}
		}
	}

	hero, err := findPlayer(players, c.heroPos)
	if err != nil {
		return nil, false
	}
	hero.LastAction = ""

	pot, _ := ComputePot(players)
	callCost, _, err := ComputeCallCost(players, c.heroPos)
	if err != nil {
		return nil, false
	}
	CapStacks(players, stackCap)

	if hero.StackBB <= 0 || !hero.InHand {
		return nil, false
	}

	return &Spot{
		ID:          g.newID(),
		Table:       tableName,
		Phase:       c.phase,
		SB:          smallBlind,
		BB:          bigBlind,
		Ante:        bigBlindAnte,
		HeroPos:     c.heroPos,
		HeroHand:    c.heroHand,
		Players:     players,
		ToAct:       c.heroPos,
		PotBB:       Round1(pot),
		CallCostBB:  Round1(callCost),
		LineSummary: lineSummary(c),
		OpenerPos:   c.opener,
		OpenSizeBB:  c.openSize,
	}, true
}

func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(randutil.Reader{R: g.rng})
	if err != nil {
		id = uuid.New()
	}
	return "PF-" + id.String()[:8]
}

func lineSummary(c candidate) string {
	size := formatBB(c.openSize) + "BB"
	var b strings.Builder
	b.WriteString(string(c.opener) + " OPEN " + size)
	if len(c.callers) > 0 {
		names := make([]string, len(c.callers))
		for i, p := range c.callers {
			names[i] = string(p)
		}
		b.WriteString(", " + strings.Join(names, ", ") + " CALL " + size)
	}
	b.WriteString(" (BBA " + formatBB(bigBlindAnte) + "BB)")
	return b.String()
}
