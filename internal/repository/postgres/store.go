// Package postgres provides a PostgreSQL-backed definition store.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schema string

// NewDB creates a connection pool from cfg and verifies it with a ping.
func NewDB(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	stats := pool.Stat()
	logger.Info("database connection pool initialized",
		zap.Int32("max_conns", stats.MaxConns()),
		zap.Int32("total_conns", stats.TotalConns()),
		zap.Int32("idle_conns", stats.IdleConns()),
	)
	return pool, nil
}

// Store persists definitions in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore applies the schema and wraps pool. The store owns the pool.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Truncate removes every definition.
func (s *Store) Truncate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE cards, decks, hero_powers`); err != nil {
		return fmt.Errorf("truncate definitions: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// LoadAllCardDefinitions returns every card ordered by id.
func (s *Store) LoadAllCardDefinitions(ctx context.Context) ([]catalog.CardRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, type, cost, attack, health, divine_shield, targeting, effect,
		       battlecry, battlecry_targeting, deathrattle, deathrattle_targeting, description, art
		FROM cards ORDER BY id, name`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []catalog.CardRecord
	for rows.Next() {
		var (
			rec                                     catalog.CardRecord
			cardType, targeting, bcTarget, drTarget string
			effect, battlecry, deathrattle          string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &cardType, &rec.Cost, &rec.Attack, &rec.Health, &rec.DivineShield,
			&targeting, &effect, &battlecry, &bcTarget, &deathrattle, &drTarget, &rec.Description, &rec.Art); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		rec.Type = catalog.CardType(cardType)
		rec.Targeting = entity.TargetingType(targeting)
		rec.BattlecryTargeting = entity.TargetingType(bcTarget)
		rec.DeathrattleTargeting = entity.TargetingType(drTarget)
		if rec.Effect, err = catalog.DecodeEffect(effect); err != nil {
			return nil, fmt.Errorf("card %q: %w", rec.Name, err)
		}
		if rec.Battlecry, err = catalog.DecodeEffect(battlecry); err != nil {
			return nil, fmt.Errorf("card %q battlecry: %w", rec.Name, err)
		}
		if rec.Deathrattle, err = catalog.DecodeEffect(deathrattle); err != nil {
			return nil, fmt.Errorf("card %q deathrattle: %w", rec.Name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadAllDeckDefinitions returns every deck ordered by name.
func (s *Store) LoadAllDeckDefinitions(ctx context.Context) ([]catalog.DeckRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, hero, hero_power, cards FROM decks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer rows.Close()

	var out []catalog.DeckRecord
	for rows.Next() {
		var (
			rec   catalog.DeckRecord
			cards string
		)
		if err := rows.Scan(&rec.Name, &rec.Hero, &rec.HeroPower, &cards); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		if rec.Cards, err = catalog.DecodeDeckEntries(cards); err != nil {
			return nil, fmt.Errorf("deck %q: %w", rec.Name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadAllHeroPowerDefinitions returns every hero power ordered by id.
func (s *Store) LoadAllHeroPowerDefinitions(ctx context.Context) ([]catalog.HeroPowerRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, cost, description, targeting, effect FROM hero_powers ORDER BY id, name`)
	if err != nil {
		return nil, fmt.Errorf("query hero powers: %w", err)
	}
	defer rows.Close()

	var out []catalog.HeroPowerRecord
	for rows.Next() {
		var (
			rec               catalog.HeroPowerRecord
			targeting, effect string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Cost, &rec.Description, &targeting, &effect); err != nil {
			return nil, fmt.Errorf("scan hero power: %w", err)
		}
		rec.Targeting = entity.TargetingType(targeting)
		if rec.Effect, err = catalog.DecodeEffect(effect); err != nil {
			return nil, fmt.Errorf("hero power %q: %w", rec.Name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveCardDefinitions upserts cards by name in one batch.
func (s *Store) SaveCardDefinitions(ctx context.Context, cards []catalog.CardRecord) error {
	batch := &pgx.Batch{}
	for _, rec := range cards {
		effect, err := catalog.EncodeEffect(rec.Effect)
		if err != nil {
			return err
		}
		battlecry, err := catalog.EncodeEffect(rec.Battlecry)
		if err != nil {
			return err
		}
		deathrattle, err := catalog.EncodeEffect(rec.Deathrattle)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO cards (id, name, type, cost, attack, health, divine_shield, targeting, effect,
			                   battlecry, battlecry_targeting, deathrattle, deathrattle_targeting, description, art)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (name) DO UPDATE SET
			    id = EXCLUDED.id, type = EXCLUDED.type, cost = EXCLUDED.cost,
			    attack = EXCLUDED.attack, health = EXCLUDED.health, divine_shield = EXCLUDED.divine_shield,
			    targeting = EXCLUDED.targeting, effect = EXCLUDED.effect,
			    battlecry = EXCLUDED.battlecry, battlecry_targeting = EXCLUDED.battlecry_targeting,
			    deathrattle = EXCLUDED.deathrattle, deathrattle_targeting = EXCLUDED.deathrattle_targeting,
			    description = EXCLUDED.description, art = EXCLUDED.art`,
			rec.ID, rec.Name, string(rec.Type), rec.Cost, rec.Attack, rec.Health, rec.DivineShield,
			string(rec.Targeting.Normalize()), effect,
			battlecry, string(rec.BattlecryTargeting.Normalize()),
			deathrattle, string(rec.DeathrattleTargeting.Normalize()),
			rec.Description, rec.Art,
		)
	}
	return s.sendBatch(ctx, batch, "cards")
}

// SaveDeckDefinitions upserts decks by name in one batch.
func (s *Store) SaveDeckDefinitions(ctx context.Context, decks []catalog.DeckRecord) error {
	batch := &pgx.Batch{}
	for _, rec := range decks {
		cards, err := catalog.EncodeDeckEntries(rec.Cards)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO decks (name, hero, hero_power, cards) VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET
			    hero = EXCLUDED.hero, hero_power = EXCLUDED.hero_power, cards = EXCLUDED.cards`,
			rec.Name, rec.Hero, rec.HeroPower, cards,
		)
	}
	return s.sendBatch(ctx, batch, "decks")
}

// SaveHeroPowerDefinitions upserts hero powers by name in one batch.
func (s *Store) SaveHeroPowerDefinitions(ctx context.Context, powers []catalog.HeroPowerRecord) error {
	batch := &pgx.Batch{}
	for _, rec := range powers {
		effect, err := catalog.EncodeEffect(rec.Effect)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO hero_powers (id, name, cost, description, targeting, effect) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET
			    id = EXCLUDED.id, cost = EXCLUDED.cost, description = EXCLUDED.description,
			    targeting = EXCLUDED.targeting, effect = EXCLUDED.effect`,
			rec.ID, rec.Name, rec.Cost, rec.Description, string(rec.Targeting.Normalize()), effect,
		)
	}
	return s.sendBatch(ctx, batch, "hero powers")
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch, what string) error {
	if batch.Len() == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert %s: %w", what, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", what, err)
	}
	return nil
}
