package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/importer"
	"github.com/hearthforge/hearthforge-go/internal/logging"
	"github.com/hearthforge/hearthforge-go/internal/repository"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	batchSize  = flag.Int("batch", importer.DefaultBatchSize, "cards written per batch")
	seed       = flag.Bool("seed", true, "seed an empty store with the built-in catalog first")
)

func main() {
	flag.Parse()

	csvPath := "data/cards.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	absPath, err := filepath.Abs(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get absolute path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("importing card definitions",
		zap.String("csv", absPath),
		zap.String("driver", cfg.Storage.Driver),
	)

	file, err := os.Open(absPath)
	if err != nil {
		logger.Fatal("failed to open CSV file", zap.Error(err))
	}
	defer file.Close()

	cards, skipped, err := importer.ParseCSV(file)
	if err != nil {
		logger.Fatal("failed to read CSV", zap.Error(err))
	}
	for _, rowErr := range skipped {
		logger.Warn("skipping row", zap.Int("line", rowErr.Line), zap.Error(rowErr.Err))
	}
	if len(cards) == 0 {
		logger.Fatal("CSV file has no valid card rows")
	}
	logger.Info("parsed cards", zap.Int("valid", len(cards)), zap.Int("skipped", len(skipped)))

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.Storage, logger.Named("store"))
	if err != nil {
		logger.Fatal("failed to open definition store", zap.Error(err))
	}
	defer store.Close()

	if *seed {
		defaults, err := catalog.Default()
		if err != nil {
			logger.Fatal("built-in catalog is invalid", zap.Error(err))
		}
		if seeded, err := repository.Bootstrap(ctx, store, defaults); err != nil {
			logger.Fatal("failed to seed definition store", zap.Error(err))
		} else if seeded {
			logger.Info("definition store seeded with built-in catalog")
		}
	}

	result, err := importer.New(store, *batchSize, logger).Import(ctx, cards)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err), zap.Int("imported", result.Imported))
	}

	rate := 0.0
	if secs := result.Duration.Seconds(); secs > 0 {
		rate = float64(result.Imported) / secs
	}
	logger.Info("import complete",
		zap.Int("imported", result.Imported),
		zap.Int("new_ids", result.Assigned),
		zap.Duration("duration", result.Duration),
		zap.Float64("cards_per_second", rate),
	)

	all, err := store.LoadAllCardDefinitions(ctx)
	if err == nil {
		logger.Info("cards in store", zap.Int("total", len(all)))
	}
}
