package catalog

import (
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// IDSequence hands out card instance ids. It is not safe for concurrent use.
type IDSequence struct {
	next int
}

// NewIDSequence starts a sequence at start.
func NewIDSequence(start int) *IDSequence {
	return &IDSequence{next: start}
}

// Next returns the next unused id.
func (s *IDSequence) Next() int {
	id := s.next
	s.next++
	return id
}

// BuildCard creates a fresh card instance with the given id.
func (c *Catalog) BuildCard(name string, id int) (entity.Card, error) {
	rec, ok := c.cards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return rec.Build(id), nil
}

// Build turns the record into a card instance with the given id.
func (r CardRecord) Build(id int) entity.Card {
	if r.Type == CardTypeSpell {
		spell := entity.NewSpell(id, r.Name, r.Cost, r.Targeting.Normalize(), r.Effect.Clone())
		spell.Art = r.Art
		if r.Description != "" {
			spell.Description = r.Description
		}
		return spell
	}
	m := entity.NewMinion(id, r.Name, r.Cost, r.Attack, r.Health)
	m.Art = r.Art
	m.DivineShield = r.DivineShield
	m.Battlecry = r.Battlecry.Clone()
	m.BattlecryTargeting = r.BattlecryTargeting.Normalize()
	m.Deathrattle = r.Deathrattle.Clone()
	m.DeathrattleTargeting = r.DeathrattleTargeting.Normalize()
	return m
}

// BuildDeck creates one card instance per copy listed in the deck, drawing
// ids from seq.
func (c *Catalog) BuildDeck(name string, seq *IDSequence) ([]entity.Card, error) {
	d, ok := c.decks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
	}
	if seq == nil {
		seq = NewIDSequence(1)
	}
	cards := make([]entity.Card, 0, d.Size())
	for _, entry := range d.Cards {
		for i := 0; i < entry.Count; i++ {
			card, err := c.BuildCard(entry.Card, seq.Next())
			if err != nil {
				return nil, fmt.Errorf("deck %q: %w", name, err)
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// BuildHeroPower creates a fresh hero power instance.
func (c *Catalog) BuildHeroPower(name string) (*entity.HeroPower, error) {
	rec, ok := c.powers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeroPower, name)
	}
	desc := rec.Description
	if desc == "" {
		desc = rec.Effect.Describe()
	}
	return &entity.HeroPower{
		ID:          rec.ID,
		Name:        rec.Name,
		Cost:        rec.Cost,
		Description: desc,
		Effect:      rec.Effect.Clone(),
		Targeting:   rec.Targeting.Normalize(),
	}, nil
}

// BuildHero creates a hero at full health carrying the named power.
func (c *Catalog) BuildHero(heroName, powerName string) (*entity.Hero, error) {
	power, err := c.BuildHeroPower(powerName)
	if err != nil {
		return nil, err
	}
	return entity.NewHero(heroName, entity.DefaultHeroHealth, power), nil
}

// BuildDeckHero creates the hero and power a deck is registered with.
func (c *Catalog) BuildDeckHero(deckName string) (*entity.Hero, error) {
	d, ok := c.decks[deckName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeck, deckName)
	}
	return c.BuildHero(d.Hero, d.HeroPower)
}
