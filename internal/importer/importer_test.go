package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/repository"
	"github.com/hearthforge/hearthforge-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sampleCSV = `name,type,cost,attack,health,divine_shield,targeting,effect,battlecry,battlecry_targeting
Chillwind Yeti,minion,4,4,6,,,,,
Ironbeak Owl,MINION,3,2,1,false,,,"{""kind"":""DAMAGE"",""amount"":1}",single_minion
Moonfire,spell,0,,,,SINGLE_CHARACTER,"{""kind"":""DAMAGE"",""amount"":1}",,
Broken,minion,two,1,1,,,,,
Bad Effect,spell,1,,,,NO_TARGET,{not json,,
`

func seededStore(t *testing.T) repository.Store {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	store := memory.New()
	_, err = repository.Bootstrap(context.Background(), store, cat)
	require.NoError(t, err)
	return store
}

func TestParseCSV(t *testing.T) {
	cards, skipped, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, cards, 3)

	yeti := cards[0]
	assert.Equal(t, "Chillwind Yeti", yeti.Name)
	assert.Equal(t, catalog.CardTypeMinion, yeti.Type)
	assert.Equal(t, 6, yeti.Health)
	assert.Nil(t, yeti.Effect)

	owl := cards[1]
	require.NotNil(t, owl.Battlecry)
	assert.Equal(t, effects.KindDamage, owl.Battlecry.Kind)
	assert.Equal(t, entity.TargetSingleMinion, owl.BattlecryTargeting)

	moonfire := cards[2]
	assert.Equal(t, catalog.CardTypeSpell, moonfire.Type)
	assert.Equal(t, entity.TargetSingleCharacter, moonfire.Targeting)
	require.NotNil(t, moonfire.Effect)
	assert.Equal(t, 1, moonfire.Effect.Amount)

	require.Len(t, skipped, 2)
	assert.Equal(t, 5, skipped[0].Line)
	assert.Contains(t, skipped[0].Error(), "cost")
	assert.Equal(t, 6, skipped[1].Line)
	assert.Contains(t, skipped[1].Error(), "effect")
}

func TestParseCSVHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "empty"},
		{"missing column", "name,type\nWisp,minion\n", `missing column "cost"`},
		{"unknown column", "name,type,cost,rarity\n", `unknown column "rarity"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestImportUpsertsAndAssignsIDs(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	cards, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	im := New(store, 2, zaptest.NewLogger(t))
	result, err := im.Import(ctx, cards)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 2, result.Assigned)

	cat, err := repository.LoadCatalog(ctx, store)
	require.NoError(t, err)

	yeti, ok := cat.Card("Chillwind Yeti")
	require.True(t, ok)
	assert.Equal(t, 209, yeti.ID)
	assert.Equal(t, 6, yeti.Health)

	owl, ok := cat.Card("Ironbeak Owl")
	require.True(t, ok)
	assert.Equal(t, 217, owl.ID)
	moonfire, ok := cat.Card("Moonfire")
	require.True(t, ok)
	assert.Equal(t, 218, moonfire.ID)

	// The decks still build with the updated Yeti.
	deck, err := cat.BuildDeck("Mage Basics", nil)
	require.NoError(t, err)
	assert.Len(t, deck, 30)

	assert.Equal(t, 0, cards[1].ID, "input slice must not be modified")
}

func TestImportRejectsInvalidSet(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	before, err := store.LoadAllCardDefinitions(ctx)
	require.NoError(t, err)

	im := New(store, 0, nil)
	_, err = im.Import(ctx, []catalog.CardRecord{
		{Name: "Ghost", Type: catalog.CardTypeMinion, Cost: 1, Attack: 1, Health: 0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate import")

	after, err := store.LoadAllCardDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
}

func TestSampleExportImports(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "data", "cards.csv"))
	require.NoError(t, err)
	defer f.Close()

	cards, skipped, err := ParseCSV(f)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Len(t, cards, 6)

	result, err := New(seededStore(t), 0, zaptest.NewLogger(t)).Import(context.Background(), cards)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Assigned)
}
