package catalog

import (
	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// CardType distinguishes the two card variants in stored definitions.
type CardType string

const (
	CardTypeMinion CardType = "MINION"
	CardTypeSpell  CardType = "SPELL"
)

// CardRecord is a stored card definition.
type CardRecord struct {
	ID           int                  `yaml:"id" json:"id"`
	Name         string               `yaml:"name" json:"name"`
	Type         CardType             `yaml:"type" json:"type"`
	Cost         int                  `yaml:"cost" json:"cost"`
	Attack       int                  `yaml:"attack,omitempty" json:"attack,omitempty"`
	Health       int                  `yaml:"health,omitempty" json:"health,omitempty"`
	DivineShield bool                 `yaml:"divine_shield,omitempty" json:"divine_shield,omitempty"`
	Targeting    entity.TargetingType `yaml:"targeting,omitempty" json:"targeting,omitempty"`
	Effect       *effects.Effect      `yaml:"effect,omitempty" json:"effect,omitempty"`
	Description  string               `yaml:"description,omitempty" json:"description,omitempty"`
	Art          string               `yaml:"art,omitempty" json:"art,omitempty"`

	Battlecry            *effects.Effect      `yaml:"battlecry,omitempty" json:"battlecry,omitempty"`
	BattlecryTargeting   entity.TargetingType `yaml:"battlecry_targeting,omitempty" json:"battlecry_targeting,omitempty"`
	Deathrattle          *effects.Effect      `yaml:"deathrattle,omitempty" json:"deathrattle,omitempty"`
	DeathrattleTargeting entity.TargetingType `yaml:"deathrattle_targeting,omitempty" json:"deathrattle_targeting,omitempty"`
}

// DeckEntry is a card name and how many copies a deck holds.
type DeckEntry struct {
	Card  string `yaml:"card" json:"card"`
	Count int    `yaml:"count" json:"count"`
}

// DeckRecord is a stored deck definition.
type DeckRecord struct {
	Name      string      `yaml:"name" json:"name"`
	Hero      string      `yaml:"hero" json:"hero"`
	HeroPower string      `yaml:"hero_power" json:"hero_power"`
	Cards     []DeckEntry `yaml:"cards" json:"cards"`
}

// Size returns the number of cards in the deck.
func (d DeckRecord) Size() int {
	n := 0
	for _, entry := range d.Cards {
		n += entry.Count
	}
	return n
}

// HeroPowerRecord is a stored hero power definition.
type HeroPowerRecord struct {
	ID          int                  `yaml:"id" json:"id"`
	Name        string               `yaml:"name" json:"name"`
	Cost        int                  `yaml:"cost" json:"cost"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Targeting   entity.TargetingType `yaml:"targeting,omitempty" json:"targeting,omitempty"`
	Effect      *effects.Effect      `yaml:"effect" json:"effect"`
}
