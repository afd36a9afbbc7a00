package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lox/pokerdrill/internal/fileutil"
	"github.com/lox/pokerdrill/internal/phh"
)

// ExportCmd writes a scenario's authored line as a PHH hand history.
type ExportCmd struct {
	Scenario string `arg:"" help:"Scenario file or ID"`
	Output   string `short:"o" type:"path" help:"Write to a file instead of stdout"`
}

func (c *ExportCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	s, err := loadScenario(context.Background(), c.Scenario, cfg.Server.Scenarios)
	if err != nil {
		return err
	}

	hand, err := phh.FromScenario(s, time.Now())
	if err != nil {
		return err
	}
	data, err := phh.EncodeToBytes(hand)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.ID, err)
	}

	if c.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := fileutil.WriteFileAtomic(c.Output, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, infoStyle.Render(fmt.Sprintf("wrote %s (%d actions)", c.Output, len(hand.Actions))))
	return nil
}
