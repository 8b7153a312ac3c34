package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/logging"
	"github.com/hearthforge/hearthforge-go/internal/repository"
	"github.com/hearthforge/hearthforge-go/internal/server"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting hearthforge server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Create context that is cancelled on termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize definition store
	store, err := repository.Open(ctx, cfg.Storage, logger.Named("store"))
	if err != nil {
		logger.Fatal("failed to open definition store", zap.Error(err))
	}
	defer store.Close()

	defaults, err := catalog.Default()
	if err != nil {
		logger.Fatal("built-in catalog is invalid", zap.Error(err))
	}
	seeded, err := repository.Bootstrap(ctx, store, defaults)
	if err != nil {
		logger.Fatal("failed to seed definition store", zap.Error(err))
	}
	if seeded {
		logger.Info("definition store seeded with built-in catalog")
	}

	cat, err := repository.LoadCatalog(ctx, store)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Strings("decks", cat.DeckNames()),
		zap.String("player_deck", cfg.Game.PlayerDeck),
		zap.String("bot_deck", cfg.Game.BotDeck),
	)

	srv := server.New(cfg, cat, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("hearthforge server stopped")
}
