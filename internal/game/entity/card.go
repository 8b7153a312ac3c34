package entity

import (
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
)

// Card is the closed set of playable cards: *Minion and *Spell.
// Dispatch on the concrete type with a type switch.
type Card interface {
	CardID() int
	CardName() string
	Cost() int
	Clone() Card
	sealed()
}

// Base carries the attributes every card shares.
type Base struct {
	ID       int
	Name     string
	ManaCost int
	Art      string
}

func (b Base) CardID() int      { return b.ID }
func (b Base) CardName() string { return b.Name }
func (b Base) Cost() int        { return b.ManaCost }

// MinionState is the per-turn lifecycle of a minion on the board.
type MinionState int

const (
	MinionDormant MinionState = iota
	MinionReady
	MinionAttacked
	MinionDead
)

func (s MinionState) String() string {
	switch s {
	case MinionDormant:
		return "DORMANT"
	case MinionReady:
		return "READY"
	case MinionAttacked:
		return "ATTACKED"
	case MinionDead:
		return "DEAD"
	default:
		return fmt.Sprintf("MINION_STATE_%d", int(s))
	}
}

// Minion is a card that stays on the board and fights.
type Minion struct {
	Base
	Attack    int
	MaxHealth int
	Health    int

	DivineShield        bool
	SummonedThisTurn    bool
	HasAttackedThisTurn bool
	CanAttackThisTurn   bool

	Battlecry            *effects.Effect
	BattlecryTargeting   TargetingType
	Deathrattle          *effects.Effect
	DeathrattleTargeting TargetingType
}

// NewMinion builds a minion at full health.
func NewMinion(id int, name string, cost, attack, health int) *Minion {
	return &Minion{
		Base:      Base{ID: id, Name: name, ManaCost: cost},
		Attack:    attack,
		MaxHealth: health,
		Health:    health,
	}
}

func (m *Minion) sealed() {}

// Clone returns an independent copy, including effect descriptors.
func (m *Minion) Clone() Card {
	return m.CloneMinion()
}

// CloneMinion is Clone without the interface conversion.
func (m *Minion) CloneMinion() *Minion {
	cpy := *m
	cpy.Battlecry = m.Battlecry.Clone()
	cpy.Deathrattle = m.Deathrattle.Clone()
	return &cpy
}

// IsDead reports whether the minion is waiting for cleanup.
func (m *Minion) IsDead() bool {
	return m.Health <= 0
}

// State maps the flags onto the minion lifecycle.
func (m *Minion) State() MinionState {
	switch {
	case m.IsDead():
		return MinionDead
	case m.HasAttackedThisTurn:
		return MinionAttacked
	case m.CanAttackThisTurn:
		return MinionReady
	default:
		return MinionDormant
	}
}

// CanAttack reports whether the minion may declare an attack now.
func (m *Minion) CanAttack() bool {
	return m.State() == MinionReady && m.Attack > 0
}

// TakeDamage applies damage, consuming divine shield first. It returns the
// damage actually dealt.
func (m *Minion) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if m.DivineShield {
		m.DivineShield = false
		return 0
	}
	m.Health -= amount
	return amount
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (m *Minion) Heal(amount int) int {
	if amount <= 0 || m.IsDead() {
		return 0
	}
	before := m.Health
	m.Health += amount
	if m.Health > m.MaxHealth {
		m.Health = m.MaxHealth
	}
	return m.Health - before
}

// Buff raises attack and health; health gains raise MaxHealth too.
func (m *Minion) Buff(attack, health int) {
	m.Attack += attack
	if m.Attack < 0 {
		m.Attack = 0
	}
	m.MaxHealth += health
	m.Health += health
}

// Summon puts the minion into its just-played state.
func (m *Minion) Summon() {
	m.SummonedThisTurn = true
	m.CanAttackThisTurn = false
	m.HasAttackedThisTurn = false
}

// ResetForTurn readies the minion at the start of its controller's turn.
func (m *Minion) ResetForTurn() {
	m.SummonedThisTurn = false
	m.CanAttackThisTurn = true
	m.HasAttackedThisTurn = false
}

// Value is the attack+health figure the planner uses to rank minions.
func (m *Minion) Value() int {
	return m.Attack + m.MaxHealth
}

// Spell is a one-shot card.
type Spell struct {
	Base
	Targeting   TargetingType
	Effect      *effects.Effect
	Description string
}

// NewSpell builds a spell; the description defaults to the effect text.
func NewSpell(id int, name string, cost int, targeting TargetingType, effect *effects.Effect) *Spell {
	return &Spell{
		Base:        Base{ID: id, Name: name, ManaCost: cost},
		Targeting:   targeting,
		Effect:      effect,
		Description: effect.Describe(),
	}
}

func (s *Spell) sealed() {}

// Clone returns an independent copy.
func (s *Spell) Clone() Card {
	cpy := *s
	cpy.Effect = s.Effect.Clone()
	return &cpy
}

// IsAreaDamage reports whether the spell damages a whole board.
func (s *Spell) IsAreaDamage() bool {
	return s.Targeting.IsArea() && s.Effect.Contains(effects.KindDamage)
}

// CloneCards deep-copies a card slice.
func CloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// CloneMinions deep-copies a board.
func CloneMinions(minions []*Minion) []*Minion {
	out := make([]*Minion, len(minions))
	for i, m := range minions {
		out[i] = m.CloneMinion()
	}
	return out
}
