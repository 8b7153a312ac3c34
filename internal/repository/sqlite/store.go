// Package sqlite provides a SQLite-backed definition store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store persists definitions in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadAllCardDefinitions returns every card ordered by id.
func (s *Store) LoadAllCardDefinitions(ctx context.Context) ([]catalog.CardRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

// LoadAllDeckDefinitions returns every deck ordered by name.
func (s *Store) LoadAllDeckDefinitions(ctx context.Context) ([]catalog.DeckRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, hero, hero_power, cards FROM decks ORDER BY name`)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}
	return out, nil
}

// LoadAllHeroPowerDefinitions returns every hero power ordered by id.
func (s *Store) LoadAllHeroPowerDefinitions(ctx context.Context) ([]catalog.HeroPowerRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hero powers: %w", err)
	}
	return out, nil
}

// SaveCardDefinitions upserts cards by name in one transaction.
func (s *Store) SaveCardDefinitions(ctx context.Context, cards []catalog.CardRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
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
			_, err = tx.ExecContext(ctx, `
				INSERT INTO cards (id, name, type, cost, attack, health, divine_shield, targeting, effect,
				                   battlecry, battlecry_targeting, deathrattle, deathrattle_targeting, description, art)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET
				    id = excluded.id, type = excluded.type, cost = excluded.cost,
				    attack = excluded.attack, health = excluded.health, divine_shield = excluded.divine_shield,
				    targeting = excluded.targeting, effect = excluded.effect,
				    battlecry = excluded.battlecry, battlecry_targeting = excluded.battlecry_targeting,
				    deathrattle = excluded.deathrattle, deathrattle_targeting = excluded.deathrattle_targeting,
				    description = excluded.description, art = excluded.art`,
				rec.ID, rec.Name, string(rec.Type), rec.Cost, rec.Attack, rec.Health, rec.DivineShield,
				string(rec.Targeting.Normalize()), effect,
				battlecry, string(rec.BattlecryTargeting.Normalize()),
				deathrattle, string(rec.DeathrattleTargeting.Normalize()),
				rec.Description, rec.Art,
			)
			if err != nil {
				return fmt.Errorf("upsert card %q: %w", rec.Name, err)
			}
		}
		return nil
	})
}

// SaveDeckDefinitions upserts decks by name in one transaction.
func (s *Store) SaveDeckDefinitions(ctx context.Context, decks []catalog.DeckRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range decks {
			cards, err := catalog.EncodeDeckEntries(rec.Cards)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO decks (name, hero, hero_power, cards) VALUES (?, ?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET
				    hero = excluded.hero, hero_power = excluded.hero_power, cards = excluded.cards`,
				rec.Name, rec.Hero, rec.HeroPower, cards,
			)
			if err != nil {
				return fmt.Errorf("upsert deck %q: %w", rec.Name, err)
			}
		}
		return nil
	})
}

// SaveHeroPowerDefinitions upserts hero powers by name in one transaction.
func (s *Store) SaveHeroPowerDefinitions(ctx context.Context, powers []catalog.HeroPowerRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range powers {
			effect, err := catalog.EncodeEffect(rec.Effect)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO hero_powers (id, name, cost, description, targeting, effect) VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET
				    id = excluded.id, cost = excluded.cost, description = excluded.description,
				    targeting = excluded.targeting, effect = excluded.effect`,
				rec.ID, rec.Name, rec.Cost, rec.Description, string(rec.Targeting.Normalize()), effect,
			)
			if err != nil {
				return fmt.Errorf("upsert hero power %q: %w", rec.Name, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
