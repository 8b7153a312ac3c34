package catalog

import (
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"Mage Basics", "Warrior Basics"}, c.DeckNames())
	assert.Equal(t, []string{"Fireblast", "Armor Up!", "Lesser Heal", "Reinforce", "Steady Shot", "Life Tap"}, c.HeroPowerNames())

	for _, name := range c.DeckNames() {
		d, ok := c.Deck(name)
		require.True(t, ok)
		assert.Equal(t, 30, d.Size(), name)
	}

	fireball, ok := c.Card("Fireball")
	require.True(t, ok)
	assert.Equal(t, CardTypeSpell, fireball.Type)
	assert.Equal(t, 4, fireball.Cost)
	assert.Equal(t, entity.TargetSingleCharacter, fireball.Targeting)
	assert.Equal(t, effects.KindDamage, fireball.Effect.Kind)
	assert.Equal(t, 6, fireball.Effect.Amount)

	hoarder, ok := c.Card("Loot Hoarder")
	require.True(t, ok)
	assert.Equal(t, entity.TargetNone, hoarder.DeathrattleTargeting)
	assert.Equal(t, effects.KindDraw, hoarder.Deathrattle.Kind)
}

func TestBuildDeckUsesFreshIDs(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	seq := NewIDSequence(1000)
	mage, err := c.BuildDeck("Mage Basics", seq)
	require.NoError(t, err)
	warrior, err := c.BuildDeck("Warrior Basics", seq)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, card := range append(mage, warrior...) {
		assert.False(t, seen[card.CardID()], "duplicate id %d", card.CardID())
		seen[card.CardID()] = true
		assert.GreaterOrEqual(t, card.CardID(), 1000)
	}
	assert.Len(t, seen, 60)
	assert.Equal(t, 1060, seq.Next())
}

func TestBuildDeckCopiesAreIndependent(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	cards, err := c.BuildDeck("Mage Basics", nil)
	require.NoError(t, err)

	var fireballs []*entity.Spell
	for _, card := range cards {
		if s, ok := card.(*entity.Spell); ok && s.Name == "Fireball" {
			fireballs = append(fireballs, s)
		}
	}
	require.Len(t, fireballs, 2)
	fireballs[0].Effect.Amount = 99
	assert.Equal(t, 6, fireballs[1].Effect.Amount)

	rec, _ := c.Card("Fireball")
	assert.Equal(t, 6, rec.Effect.Amount)
}

func TestBuildCardMinion(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	card, err := c.BuildCard("Abomination", 7)
	require.NoError(t, err)
	m, ok := card.(*entity.Minion)
	require.True(t, ok)
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, 4, m.Attack)
	assert.Equal(t, 4, m.Health)
	assert.Equal(t, entity.TargetAllMinions, m.DeathrattleTargeting)
	assert.Equal(t, entity.TargetNone, m.BattlecryTargeting)

	squire, err := c.BuildCard("Argent Squire", 8)
	require.NoError(t, err)
	assert.True(t, squire.(*entity.Minion).DivineShield)

	_, err = c.BuildCard("Ragnaros", 9)
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestBuildHero(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	hero, err := c.BuildHero("Jaina", "Fireblast")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultHeroHealth, hero.Health)
	require.NotNil(t, hero.Power)
	assert.Equal(t, 2, hero.Power.Cost)
	assert.Equal(t, entity.TargetSingleCharacter, hero.Power.Targeting)
	assert.Equal(t, "Deal 1 damage.", hero.Power.Description)

	tap, err := c.BuildHeroPower("Life Tap")
	require.NoError(t, err)
	assert.Equal(t, entity.TargetNone, tap.Targeting)
	assert.Len(t, tap.Effect.Chain(), 2)

	garrosh, err := c.BuildDeckHero("Warrior Basics")
	require.NoError(t, err)
	assert.Equal(t, "Garrosh", garrosh.Name)
	assert.Equal(t, "Armor Up!", garrosh.Power.Name)

	_, err = c.BuildHero("Jaina", "Shapeshift")
	assert.ErrorIs(t, err, ErrUnknownHeroPower)
	_, err = c.BuildDeck("Druid Basics", nil)
	assert.ErrorIs(t, err, ErrUnknownDeck)
}

func TestRecordsRoundTrip(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	cards, decks, powers := c.Records()
	again, err := FromRecords(cards, decks, powers)
	require.NoError(t, err)
	assert.Equal(t, c.DeckNames(), again.DeckNames())

	againCards, _, _ := again.Records()
	assert.Equal(t, cards, againCards)
}

func TestValidationRejectsBadDefinitions(t *testing.T) {
	power := HeroPowerRecord{ID: 1, Name: "Ping", Cost: 2, Targeting: entity.TargetSingleCharacter, Effect: effects.Damage(1)}
	good := CardRecord{ID: 1, Name: "Yeti", Type: CardTypeMinion, Cost: 4, Attack: 4, Health: 5}

	tests := []struct {
		name  string
		cards []CardRecord
		decks []DeckRecord
	}{
		{
			name:  "negative cost",
			cards: []CardRecord{{ID: 2, Name: "Bad", Type: CardTypeMinion, Cost: -1, Attack: 1, Health: 1}},
		},
		{
			name:  "zero health minion",
			cards: []CardRecord{{ID: 2, Name: "Bad", Type: CardTypeMinion, Cost: 1, Attack: 1, Health: 0}},
		},
		{
			name:  "unknown type",
			cards: []CardRecord{{ID: 2, Name: "Bad", Type: "WEAPON", Cost: 1}},
		},
		{
			name:  "spell without effect",
			cards: []CardRecord{{ID: 2, Name: "Bad", Type: CardTypeSpell, Cost: 1}},
		},
		{
			name:  "unknown targeting",
			cards: []CardRecord{{ID: 2, Name: "Bad", Type: CardTypeSpell, Cost: 1, Targeting: "EVERYONE", Effect: effects.Damage(1)}},
		},
		{
			name:  "unknown effect kind",
			cards: []CardRecord{{ID: 2, Name: "Bad", Type: CardTypeSpell, Cost: 1, Effect: &effects.Effect{Kind: "FREEZE"}}},
		},
		{
			name:  "duplicate id",
			cards: []CardRecord{{ID: 1, Name: "Other", Type: CardTypeMinion, Cost: 1, Attack: 1, Health: 1}},
		},
		{
			name:  "deck references unknown card",
			decks: []DeckRecord{{Name: "D", Hero: "H", HeroPower: "Ping", Cards: []DeckEntry{{Card: "Ragnaros", Count: 1}}}},
		},
		{
			name:  "deck references unknown power",
			decks: []DeckRecord{{Name: "D", Hero: "H", HeroPower: "Shapeshift", Cards: []DeckEntry{{Card: "Yeti", Count: 1}}}},
		},
		{
			name:  "empty deck",
			decks: []DeckRecord{{Name: "D", Hero: "H", HeroPower: "Ping"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := append([]CardRecord{good}, tt.cards...)
			_, err := FromRecords(cards, tt.decks, []HeroPowerRecord{power})
			assert.Error(t, err)
		})
	}
}

func TestParseLowercaseType(t *testing.T) {
	c, err := Parse([]byte(`
hero_powers:
  - {id: 1, name: Ping, cost: 2, targeting: SINGLE_CHARACTER, effect: {kind: DAMAGE, amount: 1}}
cards:
  - {id: 1, name: Wisp, type: minion, cost: 0, attack: 1, health: 1}
decks:
  - {name: Wisps, hero: Ghost, hero_power: Ping, cards: [{card: Wisp, count: 30}]}
`))
	require.NoError(t, err)
	card, ok := c.Card("Wisp")
	require.True(t, ok)
	assert.Equal(t, CardTypeMinion, card.Type)

	_, err = Parse([]byte("cards: [not: valid"))
	assert.Error(t, err)
}
