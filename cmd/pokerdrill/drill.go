package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/pokerdrill/cmd/pokerdrill/shared"
	"github.com/lox/pokerdrill/internal/preflop"
	"github.com/lox/pokerdrill/internal/session"
)

// DrillCmd deals generated preflop spots.
type DrillCmd struct {
	Seed  *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Count int    `kong:"help='Number of spots (defaults to the config value)'"`
}

func (c *DrillCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := shared.SetupSignalHandler()
	defer cancel()

	seed := cfg.Drill.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	count := cfg.Drill.Count
	if c.Count > 0 {
		count = c.Count
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	gen := preflop.NewSeededGenerator(seed, preflop.WithMaxAttempts(cfg.Drill.MaxAttempts))
	d := session.NewDrill(gen, store, session.WithLogger(shared.SessionLogger(g.Debug)))
	fmt.Println(infoStyle.Render(fmt.Sprintf("seed %d", seed)))
	return runDrill(ctx, d, count, os.Stdin, os.Stdout)
}

// runDrill deals count spots, reading answers from in.
func runDrill(ctx context.Context, d *session.Drill, count int, in io.Reader, out io.Writer) error {
	ask, err := newAsker(in, out)
	if err != nil {
		return err
	}
	defer func() { _ = ask.Close() }()

	correct, total := 0, 0
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		spot, choices, err := d.Deal()
		if err != nil {
			return err
		}
		writeSpot(out, i, spot)
		writeChoices(out, choices)

		choice, _, err := ask.ask(choices, false)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
		res, err := d.Submit(ctx, choice)
		if err != nil {
			return err
		}
		total++
		if res.Correct {
			correct++
		}
		writeVerdict(out, res.Correct, describeRecommendation(res.Recommendation))
		writeExplain(out, preflop.Explain(res.Recommendation))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d/%d correct", correct, total)))
	return nil
}
