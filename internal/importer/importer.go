// Package importer loads card definitions from CSV exports into a store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/repository"
	"go.uber.org/zap"
)

// DefaultBatchSize is the number of cards written per store call.
const DefaultBatchSize = 100

// Columns every export must carry. Any other known column is optional.
var requiredColumns = []string{"name", "type", "cost"}

var knownColumns = map[string]bool{
	"id": true, "name": true, "type": true, "cost": true,
	"attack": true, "health": true, "divine_shield": true,
	"targeting": true, "effect": true, "description": true, "art": true,
	"battlecry": true, "battlecry_targeting": true,
	"deathrattle": true, "deathrattle_targeting": true,
}

// RowError reports a row that could not be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseCSV reads card records from r. The first row is a header naming the
// columns. Effect cells hold the JSON form of an effect. Rows that fail to
// parse are skipped and reported in the returned slice.
func ParseCSV(r io.Reader) ([]catalog.CardRecord, []*RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("csv is empty")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if !knownColumns[name] {
			return nil, nil, fmt.Errorf("unknown column %q", name)
		}
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", name)
		}
	}

	var (
		cards   []catalog.CardRecord
		skipped []*RowError
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := reader.FieldPos(0)
		card, err := parseRow(row, cols)
		if err != nil {
			skipped = append(skipped, &RowError{Line: line, Err: err})
			continue
		}
		cards = append(cards, card)
	}
	return cards, skipped, nil
}

func parseRow(row []string, cols map[string]int) (catalog.CardRecord, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		card catalog.CardRecord
		err  error
	)
	card.Name = get("name")
	card.Type = catalog.CardType(strings.ToUpper(get("type")))
	card.Description = get("description")
	card.Art = get("art")
	card.Targeting = entity.TargetingType(strings.ToUpper(get("targeting")))
	card.BattlecryTargeting = entity.TargetingType(strings.ToUpper(get("battlecry_targeting")))
	card.DeathrattleTargeting = entity.TargetingType(strings.ToUpper(get("deathrattle_targeting")))

	ints := []struct {
		col string
		dst *int
	}{
		{"id", &card.ID},
		{"cost", &card.Cost},
		{"attack", &card.Attack},
		{"health", &card.Health},
	}
	for _, f := range ints {
		v := get(f.col)
		if v == "" {
			continue
		}
		if *f.dst, err = strconv.Atoi(v); err != nil {
			return card, fmt.Errorf("%s: %q is not a number", f.col, v)
		}
	}
	if v := get("divine_shield"); v != "" {
		if card.DivineShield, err = strconv.ParseBool(strings.ToLower(v)); err != nil {
			return card, fmt.Errorf("divine_shield: %q is not a boolean", v)
		}
	}

	if card.Effect, err = catalog.DecodeEffect(get("effect")); err != nil {
		return card, fmt.Errorf("effect: %w", err)
	}
	if card.Battlecry, err = catalog.DecodeEffect(get("battlecry")); err != nil {
		return card, fmt.Errorf("battlecry: %w", err)
	}
	if card.Deathrattle, err = catalog.DecodeEffect(get("deathrattle")); err != nil {
		return card, fmt.Errorf("deathrattle: %w", err)
	}
	return card, nil
}

// Result summarizes an import.
type Result struct {
	Imported int
	Assigned int
	Duration time.Duration
}

// Importer upserts parsed cards into a store.
type Importer struct {
	store     repository.Store
	batchSize int
	logger    *zap.Logger
}

// New creates an importer writing to store.
func New(store repository.Store, batchSize int, logger *zap.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, batchSize: batchSize, logger: logger}
}

// Import merges cards into the stored definitions. Cards replace stored
// cards of the same name; cards without an id keep the stored id or get the
// next free one. The merged set is validated before anything is written.
func (im *Importer) Import(ctx context.Context, cards []catalog.CardRecord) (Result, error) {
	start := time.Now()
	cards = append([]catalog.CardRecord(nil), cards...)

	existing, err := im.store.LoadAllCardDefinitions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load card definitions: %w", err)
	}
	decks, err := im.store.LoadAllDeckDefinitions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load deck definitions: %w", err)
	}
	powers, err := im.store.LoadAllHeroPowerDefinitions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load hero power definitions: %w", err)
	}

	storedIDs := make(map[string]int, len(existing))
	nextID := 1
	for _, c := range existing {
		storedIDs[c.Name] = c.ID
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}
	for _, c := range cards {
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}

	var result Result
	incoming := make(map[string]bool, len(cards))
	for i := range cards {
		if cards[i].ID == 0 {
			if id, ok := storedIDs[cards[i].Name]; ok {
				cards[i].ID = id
			} else {
				cards[i].ID = nextID
				nextID++
				result.Assigned++
			}
		}
		incoming[cards[i].Name] = true
	}

	merged := make([]catalog.CardRecord, 0, len(existing)+len(cards))
	for _, c := range existing {
		if !incoming[c.Name] {
			merged = append(merged, c)
		}
	}
	merged = append(merged, cards...)
	if _, err := catalog.FromRecords(merged, decks, powers); err != nil {
		return Result{}, fmt.Errorf("validate import: %w", err)
	}

	for i := 0; i < len(cards); i += im.batchSize {
		end := min(i+im.batchSize, len(cards))
		if err := im.store.SaveCardDefinitions(ctx, cards[i:end]); err != nil {
			return result, fmt.Errorf("save cards %d-%d: %w", i+1, end, err)
		}
		result.Imported = end
		im.logger.Info("import progress",
			zap.Int("imported", result.Imported),
			zap.Int("total", len(cards)),
		)
	}

	result.Duration = time.Since(start)
	return result, nil
}
