package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerdrill/cmd/pokerdrill/shared"
	"github.com/lox/pokerdrill/internal/server"
)

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	Addr      string `kong:"help='Listen address (overrides config)'"`
	Scenarios string `kong:"type='path',help='Scenario directory (overrides config)'"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if c.Scenarios != "" {
		cfg.Server.Scenarios = c.Scenarios
	}

	logger := shared.SetupLogger(cfg.Level(), cfg.Server.LogFormat)
	ctx, cancel := shared.SetupSignalHandlerWithLogger(logger)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	scenarios := server.NewDirStore(cfg.Server.Scenarios)
	metas, err := scenarios.List(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Str("address", cfg.Server.Addr).
		Str("scenarios", cfg.Server.Scenarios).
		Int("scenario_count", len(metas)).
		Str("storage", cfg.Storage.Backend).
		Msg("Starting pokerdrill server")

	srv := server.New(scenarios, store, logger)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Start(cfg.Server.Addr)
	})
	eg.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
