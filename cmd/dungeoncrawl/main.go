// Package main is the entry point for dungeoncrawl.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncrawl/internal/config"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/observability"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "dungeon seed (overrides config; 0 keeps the configured seed)")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(*configPath, *seed); err != nil {
		log.Fatalf("dungeoncrawl: %v", err)
	}
}

func run(configPath string, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Set up OTEL environment variables from our .env variables
	if cfg.Telemetry.Enabled {
		setupOTelEnv()
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Enabled)
	if err != nil {
		// Continue without telemetry - game still works
		logger.Warn("telemetry setup failed, running without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	registry, err := gamedata.LoadRegistry()
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	session := game.NewSession(ctx, cfg.Game(), registry, game.WithLogger(logger))
	logger.Info("game started", zap.Int64("seed", cfg.Seed))

	app := ui.NewApp(screen, session, registry, cfg.Timing.TickInterval, logger.Named("ui"))
	return app.Run(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the header
	// is built here from the raw key
	apiKey := os.Getenv("HONEYCOMB_DUNGEONCRAWL_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONCRAWL_DATASET")
	if dataset == "" {
		dataset = "dungeoncrawl" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
