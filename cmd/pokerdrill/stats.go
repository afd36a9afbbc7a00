package main

import (
	"fmt"
	"os"

	"github.com/lox/pokerdrill/cmd/pokerdrill/shared"
)

// StatsCmd reports or clears attempt history.
type StatsCmd struct {
	Scenario string `arg:"" optional:"" help:"Scenario ID (all scenarios when omitted)"`
	Clear    bool   `help:"Delete all recorded attempts"`
}

func (c *StatsCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := shared.SetupSignalHandler()
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if c.Clear {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println(correctStyle.Render("Attempt history cleared."))
		return nil
	}
	list, err := store.List(ctx)
	if err != nil {
		return err
	}
	writeStats(os.Stdout, statsRows(list, c.Scenario))
	return nil
}
