// Package memory provides a process-local definition store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
)

// Store keeps definitions in mutex-guarded maps keyed by name.
type Store struct {
	mu     sync.RWMutex
	cards  map[string]catalog.CardRecord
	decks  map[string]catalog.DeckRecord
	powers map[string]catalog.HeroPowerRecord
}

// New creates an empty store.
func New() *Store {
	return &Store{
		cards:  make(map[string]catalog.CardRecord),
		decks:  make(map[string]catalog.DeckRecord),
		powers: make(map[string]catalog.HeroPowerRecord),
	}
}

// LoadAllCardDefinitions returns every card ordered by id.
func (s *Store) LoadAllCardDefinitions(ctx context.Context) ([]catalog.CardRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.CardRecord, 0, len(s.cards))
	for _, rec := range s.cards {
		rec.Effect = rec.Effect.Clone()
		rec.Battlecry = rec.Battlecry.Clone()
		rec.Deathrattle = rec.Deathrattle.Clone()
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadAllDeckDefinitions returns every deck ordered by name.
func (s *Store) LoadAllDeckDefinitions(ctx context.Context) ([]catalog.DeckRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.DeckRecord, 0, len(s.decks))
	for _, rec := range s.decks {
		rec.Cards = append([]catalog.DeckEntry(nil), rec.Cards...)
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadAllHeroPowerDefinitions returns every hero power ordered by id.
func (s *Store) LoadAllHeroPowerDefinitions(ctx context.Context) ([]catalog.HeroPowerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.HeroPowerRecord, 0, len(s.powers))
	for _, rec := range s.powers {
		rec.Effect = rec.Effect.Clone()
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveCardDefinitions(ctx context.Context, cards []catalog.CardRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range cards {
		rec.Effect = rec.Effect.Clone()
		rec.Battlecry = rec.Battlecry.Clone()
		rec.Deathrattle = rec.Deathrattle.Clone()
		s.cards[rec.Name] = rec
	}
	return nil
}

func (s *Store) SaveDeckDefinitions(ctx context.Context, decks []catalog.DeckRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range decks {
		rec.Cards = append([]catalog.DeckEntry(nil), rec.Cards...)
		s.decks[rec.Name] = rec
	}
	return nil
}

func (s *Store) SaveHeroPowerDefinitions(ctx context.Context, powers []catalog.HeroPowerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range powers {
		rec.Effect = rec.Effect.Clone()
		s.powers[rec.Name] = rec
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
