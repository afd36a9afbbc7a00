package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/lox/pokerdrill/internal/phh"
	"github.com/lox/pokerdrill/internal/scenario"
)

// ValidateCmd checks every scenario in a directory.
type ValidateCmd struct {
	Dir string `arg:"" optional:"" type:"path" help:"Scenario directory (defaults to the config value)"`
}

func (c *ValidateCmd) Run(g *Globals) error {
	dir := c.Dir
	if dir == "" {
		cfg, err := g.loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.Server.Scenarios
	}
	return validateDir(dir, os.Stdout)
}

// validateDir loads every *.json file in dir, checks the schema and
// structure, and plays the authored line to the end. It reports each file
// and fails if any did.
func validateDir(dir string, out io.Writer) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no scenarios found in %s", dir)
	}
	slices.Sort(files)

	failed := 0
	seen := make(map[string]string, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		if err := validateFile(f, seen); err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", wrongStyle.Render("FAIL"), name, err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", correctStyle.Render("ok  "), name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed validation", failed, len(files))
	}
	return nil
}

func validateFile(path string, seen map[string]string) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if prev, ok := seen[s.ID]; ok {
		return fmt.Errorf("duplicate id %s (also in %s)", s.ID, filepath.Base(prev))
	}
	seen[s.ID] = path
	if _, err := phh.FromScenario(s, time.Time{}); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}
