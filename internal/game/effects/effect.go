package effects

import (
	"fmt"
	"strings"
)

// Kind identifies what an effect does when the engine interprets it.
type Kind string

const (
	// KindDamage deals Amount damage to every resolved target.
	KindDamage Kind = "DAMAGE"
	// KindHeal restores Amount health to every resolved target.
	KindHeal Kind = "HEAL"
	// KindDestroy destroys every resolved target minion.
	KindDestroy Kind = "DESTROY"
	// KindBuff gives every resolved target minion +Attack/+Health.
	KindBuff Kind = "BUFF"
	// KindGiveDivineShield gives every resolved target minion divine shield.
	KindGiveDivineShield Kind = "GIVE_DIVINE_SHIELD"
	// KindDraw makes the controller draw Amount cards.
	KindDraw Kind = "DRAW"
	// KindGainArmor gives the controller's hero Amount armor.
	KindGainArmor Kind = "GAIN_ARMOR"
	// KindSummon summons Amount copies of Token for the controller.
	KindSummon Kind = "SUMMON"
	// KindDamageEnemyHero deals Amount damage to the opposing hero.
	KindDamageEnemyHero Kind = "DAMAGE_ENEMY_HERO"
	// KindDamageOwnHero deals Amount damage to the controller's hero.
	KindDamageOwnHero Kind = "DAMAGE_OWN_HERO"
)

var knownKinds = map[Kind]bool{
	KindDamage:           true,
	KindHeal:             true,
	KindDestroy:          true,
	KindBuff:             true,
	KindGiveDivineShield: true,
	KindDraw:             true,
	KindGainArmor:        true,
	KindSummon:           true,
	KindDamageEnemyHero:  true,
	KindDamageOwnHero:    true,
}

// Valid reports whether the kind is one the engine knows how to interpret.
func (k Kind) Valid() bool {
	return knownKinds[k]
}

// UsesTargets reports whether the effect applies to the resolved target list
// rather than to a fixed side.
func (k Kind) UsesTargets() bool {
	switch k {
	case KindDamage, KindHeal, KindDestroy, KindBuff, KindGiveDivineShield:
		return true
	default:
		return false
	}
}

// TokenSpec describes a minion created by a summon effect.
type TokenSpec struct {
	Name   string `json:"name" yaml:"name"`
	Attack int    `json:"attack" yaml:"attack"`
	Health int    `json:"health" yaml:"health"`
}

// Effect is a data description of a card, hero power or minion trigger.
// The engine is the only interpreter.
type Effect struct {
	Kind   Kind       `json:"kind" yaml:"kind"`
	Amount int        `json:"amount,omitempty" yaml:"amount,omitempty"`
	Attack int        `json:"attack,omitempty" yaml:"attack,omitempty"`
	Health int        `json:"health,omitempty" yaml:"health,omitempty"`
	Token  *TokenSpec `json:"token,omitempty" yaml:"token,omitempty"`
	Then   *Effect    `json:"then,omitempty" yaml:"then,omitempty"`
}

// Damage builds a damage effect.
func Damage(amount int) *Effect { return &Effect{Kind: KindDamage, Amount: amount} }

// Heal builds a heal effect.
func Heal(amount int) *Effect { return &Effect{Kind: KindHeal, Amount: amount} }

// Destroy builds a destroy effect.
func Destroy() *Effect { return &Effect{Kind: KindDestroy} }

// Buff builds a stat buff effect.
func Buff(attack, health int) *Effect { return &Effect{Kind: KindBuff, Attack: attack, Health: health} }

// Draw builds a card draw effect.
func Draw(amount int) *Effect { return &Effect{Kind: KindDraw, Amount: amount} }

// GainArmor builds an armor gain effect.
func GainArmor(amount int) *Effect { return &Effect{Kind: KindGainArmor, Amount: amount} }

// Summon builds a token summon effect.
func Summon(count int, token TokenSpec) *Effect {
	return &Effect{Kind: KindSummon, Amount: count, Token: &token}
}

// DamageEnemyHero builds an effect hitting the opposing hero.
func DamageEnemyHero(amount int) *Effect { return &Effect{Kind: KindDamageEnemyHero, Amount: amount} }

// DamageOwnHero builds an effect hitting the controller's hero.
func DamageOwnHero(amount int) *Effect { return &Effect{Kind: KindDamageOwnHero, Amount: amount} }

// WithThen appends a follow-up effect to the end of the chain and returns the head.
func (e *Effect) WithThen(next *Effect) *Effect {
	if e == nil {
		return next
	}
	tail := e
	for tail.Then != nil {
		tail = tail.Then
	}
	tail.Then = next
	return e
}

// Clone returns a deep copy of the effect chain.
func (e *Effect) Clone() *Effect {
	if e == nil {
		return nil
	}
	cpy := *e
	if e.Token != nil {
		token := *e.Token
		cpy.Token = &token
	}
	cpy.Then = e.Then.Clone()
	return &cpy
}

// Chain returns the effect followed by every Then link, in application order.
func (e *Effect) Chain() []*Effect {
	var out []*Effect
	for cur := e; cur != nil; cur = cur.Then {
		out = append(out, cur)
	}
	return out
}

// Contains reports whether any link of the chain has the given kind.
func (e *Effect) Contains(kind Kind) bool {
	for _, link := range e.Chain() {
		if link.Kind == kind {
			return true
		}
	}
	return false
}

// Validate checks that every link of the chain is interpretable.
func (e *Effect) Validate() error {
	for i, link := range e.Chain() {
		if !link.Kind.Valid() {
			return fmt.Errorf("effect link %d: unknown kind %q", i, link.Kind)
		}
		if link.Amount < 0 {
			return fmt.Errorf("effect link %d: negative amount %d", i, link.Amount)
		}
		if link.Kind == KindSummon {
			if link.Token == nil {
				return fmt.Errorf("effect link %d: summon without token", i)
			}
			if link.Token.Health < 1 {
				return fmt.Errorf("effect link %d: token %q needs at least 1 health", i, link.Token.Name)
			}
		}
	}
	return nil
}

// Describe renders rules text for the effect chain.
func (e *Effect) Describe() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, link := range e.Chain() {
		parts = append(parts, link.describeOne())
	}
	return strings.Join(parts, " ")
}

func (e *Effect) describeOne() string {
	switch e.Kind {
	case KindDamage:
		return fmt.Sprintf("Deal %d damage.", e.Amount)
	case KindHeal:
		return fmt.Sprintf("Restore %d health.", e.Amount)
	case KindDestroy:
		return "Destroy a minion."
	case KindBuff:
		return fmt.Sprintf("Give +%d/+%d.", e.Attack, e.Health)
	case KindGiveDivineShield:
		return "Give Divine Shield."
	case KindDraw:
		if e.Amount == 1 {
			return "Draw a card."
		}
		return fmt.Sprintf("Draw %d cards.", e.Amount)
	case KindGainArmor:
		return fmt.Sprintf("Gain %d armor.", e.Amount)
	case KindSummon:
		if e.Token == nil {
			return "Summon a minion."
		}
		count := e.Amount
		if count < 1 {
			count = 1
		}
		return fmt.Sprintf("Summon %d %d/%d %s.", count, e.Token.Attack, e.Token.Health, e.Token.Name)
	case KindDamageEnemyHero:
		return fmt.Sprintf("Deal %d damage to the enemy hero.", e.Amount)
	case KindDamageOwnHero:
		return fmt.Sprintf("Take %d damage.", e.Amount)
	default:
		return string(e.Kind)
	}
}
