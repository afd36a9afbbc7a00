package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/config"
	"github.com/lox/pokerdrill/internal/scenario"
	"github.com/lox/pokerdrill/internal/server"
)

// loadConfig reads the config file named by the global flags.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", g.Config, err)
	}
	if g.EnvFile != "" {
		if err := cfg.ApplyEnvFile(g.EnvFile); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("env file %s: %w", g.EnvFile, err)
		}
	}
	if g.Debug {
		cfg.Server.LogLevel = "debug"
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (attempts.Store, error) {
	store, err := attempts.Open(ctx, cfg.Storage.Backend, cfg.StorageTarget())
	if err != nil {
		return nil, fmt.Errorf("open %s attempt store: %w", cfg.Storage.Backend, err)
	}
	return store, nil
}

// loadScenario accepts a path to a scenario file or a scenario ID looked up
// in the configured scenario directory.
func loadScenario(ctx context.Context, ref, dir string) (*scenario.Scenario, error) {
	if strings.EqualFold(filepath.Ext(ref), ".json") {
		return scenario.Load(ref)
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return scenario.Load(ref)
	}
	return server.NewDirStore(dir).Get(ctx, ref)
}
