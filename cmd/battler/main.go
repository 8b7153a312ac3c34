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
	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/logging"
	"github.com/hearthforge/hearthforge-go/internal/repository"
	"github.com/hearthforge/hearthforge-go/internal/server"
	"github.com/hearthforge/hearthforge-go/internal/tui"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	logPath    = flag.String("log", "battler.log", "file the match log is written to")
	playerDeck = flag.String("deck", "", "player deck (overrides game.player_deck)")
	botDeck    = flag.String("bot-deck", "", "bot deck (overrides game.bot_deck)")
	seed       = flag.Int64("seed", 0, "shuffle seed, 0 for random")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "battler: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if *playerDeck != "" {
		cfg.Game.PlayerDeck = *playerDeck
	}
	if *botDeck != "" {
		cfg.Game.BotDeck = *botDeck
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logger, err := logging.New(cfg.Logging, *logPath)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Storage, logger.Named("store"))
	if err != nil {
		return fmt.Errorf("open definition store: %w", err)
	}
	defer store.Close()

	defaults, err := catalog.Default()
	if err != nil {
		return err
	}
	if _, err := repository.Bootstrap(ctx, store, defaults); err != nil {
		return fmt.Errorf("seed definition store: %w", err)
	}
	cat, err := repository.LoadCatalog(ctx, store)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var recorder *game.ReplayRecorder
	if cfg.Replay.Enabled {
		recorder = game.NewReplayRecorder(logger.Named("replay"), cfg.Replay.Dir)
	}
	factory := server.NewMatchFactory(cat, cfg.Game, cfg.Server.BotDelay, recorder, logger.Named("match"))
	engine, err := factory.NewMatch()
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	logger.Info("match started",
		zap.String("match_id", engine.MatchID()),
		zap.String("player_deck", cfg.Game.PlayerDeck),
		zap.String("bot_deck", cfg.Game.BotDeck),
	)

	if err := tui.Run(ctx, engine, logger.Named("tui")); err != nil {
		return err
	}

	snap := engine.Snapshot()
	if recorder != nil && snap.GameOver {
		path, err := recorder.SaveReplay(engine.MatchID())
		if err != nil {
			logger.Error("failed to save replay", zap.Error(err))
		} else {
			fmt.Printf("Replay saved to %s\n", path)
		}
	}
	switch {
	case snap.GameOver && snap.PlayerWon:
		fmt.Println("Victory!")
	case snap.GameOver:
		fmt.Println("Defeat.")
	default:
		fmt.Println("Match abandoned.")
	}
	return nil
}
