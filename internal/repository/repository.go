// Package repository persists card, deck and hero power definitions.
package repository

import (
	"context"
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/repository/memory"
	"github.com/hearthforge/hearthforge-go/internal/repository/postgres"
	"github.com/hearthforge/hearthforge-go/internal/repository/sqlite"
	"go.uber.org/zap"
)

// Store is a keyed-record store of definitions. Saves upsert by name.
type Store interface {
	LoadAllCardDefinitions(ctx context.Context) ([]catalog.CardRecord, error)
	LoadAllDeckDefinitions(ctx context.Context) ([]catalog.DeckRecord, error)
	LoadAllHeroPowerDefinitions(ctx context.Context) ([]catalog.HeroPowerRecord, error)
	SaveCardDefinitions(ctx context.Context, cards []catalog.CardRecord) error
	SaveDeckDefinitions(ctx context.Context, decks []catalog.DeckRecord) error
	SaveHeroPowerDefinitions(ctx context.Context, powers []catalog.HeroPowerRecord) error
	Close() error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Open connects to the store named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case config.DriverMemory, "":
		logger.Info("using in-memory definition store")
		return memory.New(), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite definition store opened", zap.String("path", cfg.SQLite.Path))
		return store, nil
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(ctx, db)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Bootstrap seeds an empty store with the definitions in c. It reports
// whether anything was written.
func Bootstrap(ctx context.Context, store Store, c *catalog.Catalog) (bool, error) {
	existing, err := store.LoadAllCardDefinitions(ctx)
	if err != nil {
		return false, fmt.Errorf("load card definitions: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	cards, decks, powers := c.Records()
	if err := store.SaveHeroPowerDefinitions(ctx, powers); err != nil {
		return false, fmt.Errorf("save hero powers: %w", err)
	}
	if err := store.SaveCardDefinitions(ctx, cards); err != nil {
		return false, fmt.Errorf("save cards: %w", err)
	}
	if err := store.SaveDeckDefinitions(ctx, decks); err != nil {
		return false, fmt.Errorf("save decks: %w", err)
	}
	return true, nil
}

// LoadCatalog reads every definition from store and validates them.
func LoadCatalog(ctx context.Context, store Store) (*catalog.Catalog, error) {
	cards, err := store.LoadAllCardDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load card definitions: %w", err)
	}
	decks, err := store.LoadAllDeckDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load deck definitions: %w", err)
	}
	powers, err := store.LoadAllHeroPowerDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hero power definitions: %w", err)
	}
	return catalog.FromRecords(cards, decks, powers)
}
