package entity

import "github.com/hearthforge/hearthforge-go/internal/game/effects"

// DefaultHeroHealth is the starting health of every hero.
const DefaultHeroHealth = 30

// HeroPower is the reusable ability a hero brings to the match.
type HeroPower struct {
	ID           int
	Name         string
	Cost         int
	Description  string
	Effect       *effects.Effect
	Targeting    TargetingType
	UsedThisTurn bool
}

// CanUse reports whether the power can be activated with the given mana.
func (p *HeroPower) CanUse(mana int) bool {
	return p != nil && !p.UsedThisTurn && p.Cost <= mana
}

// Clone returns an independent copy.
func (p *HeroPower) Clone() *HeroPower {
	if p == nil {
		return nil
	}
	cpy := *p
	cpy.Effect = p.Effect.Clone()
	return &cpy
}

// Hero is the character a side loses with.
type Hero struct {
	Name      string
	MaxHealth int
	Health    int
	Armor     int
	Power     *HeroPower
}

// NewHero builds a hero at full health.
func NewHero(name string, maxHealth int, power *HeroPower) *Hero {
	if maxHealth <= 0 {
		maxHealth = DefaultHeroHealth
	}
	return &Hero{
		Name:      name,
		MaxHealth: maxHealth,
		Health:    maxHealth,
		Power:     power,
	}
}

// TakeDamage absorbs damage with armor first and returns the health lost.
func (h *Hero) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	absorbed := amount
	if absorbed > h.Armor {
		absorbed = h.Armor
	}
	h.Armor -= absorbed
	remaining := amount - absorbed
	h.Health -= remaining
	return remaining
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (h *Hero) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := h.Health
	h.Health += amount
	if h.Health > h.MaxHealth {
		h.Health = h.MaxHealth
	}
	return h.Health - before
}

// GainArmor adds armor.
func (h *Hero) GainArmor(amount int) {
	if amount > 0 {
		h.Armor += amount
	}
}

// IsDead reports whether the hero has been reduced to zero health.
func (h *Hero) IsDead() bool {
	return h.Health <= 0
}

// Clone returns an independent copy.
func (h *Hero) Clone() *Hero {
	if h == nil {
		return nil
	}
	cpy := *h
	cpy.Power = h.Power.Clone()
	return &cpy
}
