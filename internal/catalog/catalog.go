// Package catalog maps stored card, deck and hero power definitions onto
// playable entities and ships the built-in default content.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var (
	ErrUnknownCard      = errors.New("unknown card")
	ErrUnknownDeck      = errors.New("unknown deck")
	ErrUnknownHeroPower = errors.New("unknown hero power")
)

type document struct {
	HeroPowers []HeroPowerRecord `yaml:"hero_powers"`
	Cards      []CardRecord      `yaml:"cards"`
	Decks      []DeckRecord      `yaml:"decks"`
}

// Catalog is a validated, read-only set of definitions keyed by name.
type Catalog struct {
	cards      map[string]CardRecord
	decks      map[string]DeckRecord
	powers     map[string]HeroPowerRecord
	cardOrder  []string
	deckOrder  []string
	powerOrder []string
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse reads a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return FromRecords(doc.Cards, doc.Decks, doc.HeroPowers)
}

// FromRecords builds a catalog from stored definitions and validates it.
func FromRecords(cards []CardRecord, decks []DeckRecord, powers []HeroPowerRecord) (*Catalog, error) {
	c := &Catalog{
		cards:  make(map[string]CardRecord, len(cards)),
		decks:  make(map[string]DeckRecord, len(decks)),
		powers: make(map[string]HeroPowerRecord, len(powers)),
	}
	for _, p := range powers {
		p.Targeting = p.Targeting.Normalize()
		if _, dup := c.powers[p.Name]; dup {
			return nil, fmt.Errorf("hero power %q defined twice", p.Name)
		}
		c.powers[p.Name] = p
		c.powerOrder = append(c.powerOrder, p.Name)
	}
	for _, card := range cards {
		card.Targeting = card.Targeting.Normalize()
		card.BattlecryTargeting = card.BattlecryTargeting.Normalize()
		card.DeathrattleTargeting = card.DeathrattleTargeting.Normalize()
		card.Type = CardType(strings.ToUpper(string(card.Type)))
		if _, dup := c.cards[card.Name]; dup {
			return nil, fmt.Errorf("card %q defined twice", card.Name)
		}
		c.cards[card.Name] = card
		c.cardOrder = append(c.cardOrder, card.Name)
	}
	for _, d := range decks {
		if _, dup := c.decks[d.Name]; dup {
			return nil, fmt.Errorf("deck %q defined twice", d.Name)
		}
		c.decks[d.Name] = d
		c.deckOrder = append(c.deckOrder, d.Name)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every definition and every deck reference.
func (c *Catalog) Validate() error {
	var errs []error
	ids := make(map[int]string)
	for _, name := range c.cardOrder {
		card := c.cards[name]
		if err := validateCard(card); err != nil {
			errs = append(errs, err)
		}
		if other, dup := ids[card.ID]; dup && card.ID != 0 {
			errs = append(errs, fmt.Errorf("card %q: id %d already used by %q", name, card.ID, other))
		}
		ids[card.ID] = name
	}
	for _, name := range c.powerOrder {
		if err := validatePower(c.powers[name]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range c.deckOrder {
		d := c.decks[name]
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, errors.New("deck without a name"))
		}
		if d.Size() == 0 {
			errs = append(errs, fmt.Errorf("deck %q: no cards", d.Name))
		}
		if _, ok := c.powers[d.HeroPower]; !ok {
			errs = append(errs, fmt.Errorf("deck %q: %w %q", d.Name, ErrUnknownHeroPower, d.HeroPower))
		}
		for _, entry := range d.Cards {
			if _, ok := c.cards[entry.Card]; !ok {
				errs = append(errs, fmt.Errorf("deck %q: %w %q", d.Name, ErrUnknownCard, entry.Card))
			}
			if entry.Count < 0 {
				errs = append(errs, fmt.Errorf("deck %q: negative count for %q", d.Name, entry.Card))
			}
		}
	}
	return errors.Join(errs...)
}

func validateCard(card CardRecord) error {
	if strings.TrimSpace(card.Name) == "" {
		return fmt.Errorf("card %d: missing name", card.ID)
	}
	if card.Cost < 0 {
		return fmt.Errorf("card %q: negative cost %d", card.Name, card.Cost)
	}
	switch card.Type {
	case CardTypeMinion:
		if card.Attack < 0 {
			return fmt.Errorf("card %q: negative attack %d", card.Name, card.Attack)
		}
		if card.Health < 1 {
			return fmt.Errorf("card %q: health must be at least 1, got %d", card.Name, card.Health)
		}
		if err := validateEffect(card.Name, "battlecry", card.Battlecry, card.BattlecryTargeting); err != nil {
			return err
		}
		return validateEffect(card.Name, "deathrattle", card.Deathrattle, card.DeathrattleTargeting)
	case CardTypeSpell:
		if card.Effect == nil {
			return fmt.Errorf("card %q: spell without effect", card.Name)
		}
		return validateEffect(card.Name, "effect", card.Effect, card.Targeting)
	default:
		return fmt.Errorf("card %q: unknown type %q", card.Name, card.Type)
	}
}

func validatePower(p HeroPowerRecord) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("hero power %d: missing name", p.ID)
	}
	if p.Cost < 0 {
		return fmt.Errorf("hero power %q: negative cost %d", p.Name, p.Cost)
	}
	if p.Effect == nil {
		return fmt.Errorf("hero power %q: missing effect", p.Name)
	}
	return validateEffect(p.Name, "effect", p.Effect, p.Targeting)
}

func validateEffect(owner, slot string, effect *effects.Effect, t entity.TargetingType) error {
	if !t.Normalize().Valid() {
		return fmt.Errorf("%s %s: unknown targeting %q", owner, slot, t)
	}
	if effect == nil {
		return nil
	}
	if err := effect.Validate(); err != nil {
		return fmt.Errorf("%s %s: %w", owner, slot, err)
	}
	return nil
}

// Records returns the definitions in their original order.
func (c *Catalog) Records() ([]CardRecord, []DeckRecord, []HeroPowerRecord) {
	cards := make([]CardRecord, 0, len(c.cardOrder))
	for _, name := range c.cardOrder {
		cards = append(cards, c.cards[name])
	}
	decks := make([]DeckRecord, 0, len(c.deckOrder))
	for _, name := range c.deckOrder {
		decks = append(decks, c.decks[name])
	}
	powers := make([]HeroPowerRecord, 0, len(c.powerOrder))
	for _, name := range c.powerOrder {
		powers = append(powers, c.powers[name])
	}
	return cards, decks, powers
}

// Card returns the definition named name.
func (c *Catalog) Card(name string) (CardRecord, bool) {
	card, ok := c.cards[name]
	return card, ok
}

// Deck returns the deck named name.
func (c *Catalog) Deck(name string) (DeckRecord, bool) {
	d, ok := c.decks[name]
	return d, ok
}

// DeckNames returns the deck names sorted alphabetically.
func (c *Catalog) DeckNames() []string {
	names := append([]string(nil), c.deckOrder...)
	sort.Strings(names)
	return names
}

// HeroPowerNames returns the hero power names in definition order.
func (c *Catalog) HeroPowerNames() []string {
	return append([]string(nil), c.powerOrder...)
}
