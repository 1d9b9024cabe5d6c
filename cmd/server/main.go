package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/iamorlov/cityguesser/internal/catalog"
	"github.com/iamorlov/cityguesser/internal/config"
	"github.com/iamorlov/cityguesser/internal/database"
	"github.com/iamorlov/cityguesser/internal/game"
	"github.com/iamorlov/cityguesser/internal/geocode"
	"github.com/iamorlov/cityguesser/internal/grok"
	"github.com/iamorlov/cityguesser/internal/hints"
	"github.com/iamorlov/cityguesser/internal/migrations"
	"github.com/iamorlov/cityguesser/internal/server"
	"github.com/iamorlov/cityguesser/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	if err := server.EnsureAdmin(ctx, logger, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	// --- Game wiring ---
	sessions := session.NewSQLiteStore(db)

	var llm grok.Completer
	if cfg.GrokAPIKey != "" {
		llm = grok.NewClient(cfg.GrokBaseURL, cfg.GrokAPIKey, cfg.GrokModel, cfg.GrokTimeout)
		logger.Info("grok completions enabled", "model", cfg.GrokModel)
	} else {
		logger.Warn("GROK_API_KEY not set, falling back to static cities and canned hints")
	}

	selector := catalog.NewSelector(llm, sessions, catalog.MajorCities, logger)
	generator := hints.NewGrokGenerator(llm, logger)
	geocoder := geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeTimeout)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		DB:       db,
		Sessions: sessions,
		Selector: selector,
		Hints:    generator,
		Geocoder: geocoder,
		Rules:    game.DefaultRules(),
		SPADir:   cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
