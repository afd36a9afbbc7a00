package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lox/pokerdrill/cmd/pokerdrill/shared"
	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/session"
)

// PlayCmd plays an authored scenario at the terminal.
type PlayCmd struct {
	Scenario  string `arg:"" help:"Scenario file or ID"`
	WrongOnly bool   `help:"Only replay decisions you previously missed"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := shared.SetupSignalHandler()
	defer cancel()

	s, err := loadScenario(ctx, c.Scenario, cfg.Server.Scenarios)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	opts := []session.Option{session.WithLogger(shared.SessionLogger(g.Debug))}
	if c.WrongOnly {
		list, err := store.List(ctx)
		if err != nil {
			return err
		}
		if len(attempts.WrongNodeIDs(list, s.ID)) == 0 {
			fmt.Println(correctStyle.Render("No missed decisions in " + s.ID + ". Nothing to review."))
			return nil
		}
		opts = append(opts, session.WithReview())
	}

	p, err := session.NewPlay(s, store, opts...)
	if err != nil {
		return err
	}
	return playScenario(ctx, p, os.Stdin, os.Stdout)
}

// playScenario runs p to the end, reading answers from in.
func playScenario(ctx context.Context, p *session.Play, in io.Reader, out io.Writer) error {
	ask, err := newAsker(in, out)
	if err != nil {
		return err
	}
	defer func() { _ = ask.Close() }()

	node, err := p.Start(ctx)
	if err != nil {
		return err
	}

	correct, total := 0, 0
	for node != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		writeTable(out, p.Scenario(), p.Snapshot())
		writeDecision(out, node)

		action, size, err := ask.ask(node.LegalActions, true)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
		res, err := p.Submit(ctx, action, size)
		if err != nil {
			return err
		}
		total++
		if res.Correct {
			correct++
		}
		writeVerdict(out, res.Correct, describeCorrect(node.Correct))
		writeExplain(out, node.Explain)
		fmt.Fprintln(out)

		if node, err = p.Next(); err != nil {
			return err
		}
	}

	if p.Done() {
		writeTable(out, p.Scenario(), p.Snapshot())
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d/%d correct", correct, total)))
	return nil
}
