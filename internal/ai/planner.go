// Package ai plans the bot's turn. Planning is pure: the planner reads a View
// and returns decisions, and the engine executes them through its normal
// action API.
package ai

import (
	"math/rand"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"go.uber.org/zap"
)

// areaPreferenceThreshold is the enemy board size from which an area damage
// spell beats the raw top score.
const areaPreferenceThreshold = 3

// DecisionKind names a planned action.
type DecisionKind string

const (
	DecisionPlayCard     DecisionKind = "PLAY_CARD"
	DecisionAttack       DecisionKind = "ATTACK"
	DecisionUseHeroPower DecisionKind = "USE_HERO_POWER"
	DecisionEndTurn      DecisionKind = "END_TURN"
)

// Decision is one step of a bot turn. Indices refer to the hand and board as
// they will be when the step executes, provided earlier steps succeeded; ids
// let the executor recover when they did not.
type Decision struct {
	Kind          DecisionKind
	HandIndex     int
	CardID        int
	AttackerIndex int
	AttackerID    int
	Target        *targeting.Target
}

// View is the read-only slice of match state the planner works from.
type View struct {
	Side       entity.Side
	Hand       []entity.Card
	Board      []*entity.Minion
	EnemyBoard []*entity.Minion
	Hero       *entity.Hero
	EnemyHero  *entity.Hero
	Mana       int
}

// Planner produces greedy single-pass turn plans.
type Planner struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewPlanner creates a planner using rng for its random choices.
func NewPlanner(rng *rand.Rand, logger *zap.Logger) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Planner{rng: rng, logger: logger}
}

// Plan returns the ordered decisions for the bot's turn, always ending with
// an EndTurn decision.
func (p *Planner) Plan(view View) []Decision {
	var plan []Decision

	hand := make([]entity.Card, len(view.Hand))
	copy(hand, view.Hand)
	mana := view.Mana
	boardCount := len(view.Board)

	for {
		idx := p.pickCard(hand, mana, boardCount, view)
		if idx < 0 {
			break
		}
		chosen := hand[idx]
		decision := Decision{Kind: DecisionPlayCard, HandIndex: idx, CardID: chosen.CardID()}
		switch c := chosen.(type) {
		case *entity.Minion:
			if c.Battlecry != nil {
				decision.Target = p.FindBestSpellTarget(c.BattlecryTargeting, c.Battlecry, view)
			}
			boardCount++
		case *entity.Spell:
			decision.Target = p.FindBestSpellTarget(c.Targeting, c.Effect, view)
		}
		plan = append(plan, decision)
		mana -= chosen.Cost()
		hand = append(hand[:idx], hand[idx+1:]...)
	}

	if view.Hero != nil && view.Hero.Power.CanUse(mana) {
		power := view.Hero.Power
		target := p.FindBestSpellTarget(power.Targeting, power.Effect, view)
		if target != nil || !power.Targeting.IsSingle() {
			plan = append(plan, Decision{Kind: DecisionUseHeroPower, Target: target})
			mana -= power.Cost
		}
	}

	for i, minion := range view.Board {
		if !minion.CanAttack() {
			continue
		}
		target := p.FindBestAttackTarget(minion, view)
		plan = append(plan, Decision{
			Kind:          DecisionAttack,
			AttackerIndex: i,
			AttackerID:    minion.CardID(),
			Target:        &target,
		})
	}

	plan = append(plan, Decision{Kind: DecisionEndTurn})

	if p.logger != nil {
		p.logger.Debug("bot turn planned",
			zap.Int("decisions", len(plan)),
			zap.Int("mana", view.Mana),
			zap.Int("mana_left", mana),
		)
	}
	return plan
}

// pickCard returns the hand index of the card to play next, or -1.
func (p *Planner) pickCard(hand []entity.Card, mana, boardCount int, view View) int {
	best, bestScore := -1, 0.0
	area, areaScore := -1, 0.0
	for i, c := range hand {
		if !p.playable(c, mana, boardCount, view) {
			continue
		}
		score := EvaluateCard(c)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
		if spell, ok := c.(*entity.Spell); ok && hitsEnemyBoard(spell) {
			if area < 0 || score > areaScore {
				area, areaScore = i, score
			}
		}
	}
	if area >= 0 && len(view.EnemyBoard) >= areaPreferenceThreshold {
		return area
	}
	return best
}

func (p *Planner) playable(c entity.Card, mana, boardCount int, view View) bool {
	if c.Cost() > mana {
		return false
	}
	switch card := c.(type) {
	case *entity.Minion:
		return boardCount < entity.MaxBoardSize
	case *entity.Spell:
		// a single-target spell with nothing to aim at would waste the card
		if card.Targeting.IsSingle() {
			return p.hasCandidate(card.Targeting, card.Effect, view)
		}
		return true
	default:
		return true
	}
}

func (p *Planner) hasCandidate(t entity.TargetingType, effect *effects.Effect, view View) bool {
	if beneficial(effect) {
		if t == entity.TargetSingleCharacter {
			return true
		}
		return len(view.Board) > 0
	}
	switch t {
	case entity.TargetSingleCharacter:
		return true
	case entity.TargetSingleFriendlyMinion:
		return len(view.Board) > 0
	default:
		return len(view.EnemyBoard) > 0
	}
}

func hitsEnemyBoard(s *entity.Spell) bool {
	return s.IsAreaDamage() && s.Targeting != entity.TargetAllFriendlyMinions
}

// beneficial reports whether the effect is meant for friendly characters.
func beneficial(effect *effects.Effect) bool {
	if effect == nil {
		return false
	}
	switch effect.Kind {
	case effects.KindHeal, effects.KindBuff, effects.KindGiveDivineShield:
		return true
	default:
		return false
	}
}

// EvaluateCard scores a card for the greedy play loop.
func EvaluateCard(c entity.Card) float64 {
	switch card := c.(type) {
	case *entity.Minion:
		efficiency := 10.0
		if card.ManaCost > 0 {
			efficiency = float64(card.Attack+card.MaxHealth) / float64(card.ManaCost)
		}
		switch {
		case card.DivineShield:
			return efficiency * 1.5
		case card.Battlecry != nil:
			return efficiency * 1.2
		case card.Deathrattle != nil:
			return efficiency * 1.1
		default:
			return efficiency
		}
	case *entity.Spell:
		if card.ManaCost == 0 {
			return 5.0
		}
		return 3.0 / float64(card.ManaCost)
	default:
		return 1.0
	}
}

// FindBestAttackTarget picks the most valuable enemy minion the attacker can
// kill in one hit. Without one it goes face when the enemy board is empty and
// otherwise accepts a random trade.
func (p *Planner) FindBestAttackTarget(attacker *entity.Minion, view View) targeting.Target {
	enemy := view.Side.Opponent()
	var best *entity.Minion
	for _, m := range view.EnemyBoard {
		if m.Health > attacker.Attack {
			continue
		}
		if best == nil || m.Value() > best.Value() {
			best = m
		}
	}
	if best != nil {
		return targeting.MinionTarget(enemy, best.CardID())
	}
	if len(view.EnemyBoard) == 0 {
		return targeting.HeroTarget(enemy)
	}
	pick := view.EnemyBoard[p.rng.Intn(len(view.EnemyBoard))]
	return targeting.MinionTarget(enemy, pick.CardID())
}

// FindBestSpellTarget chooses an explicit target for a single-target effect,
// or nil when the effect resolves its own targets.
func (p *Planner) FindBestSpellTarget(t entity.TargetingType, effect *effects.Effect, view View) *targeting.Target {
	if !t.IsSingle() {
		return nil
	}
	if beneficial(effect) {
		return p.friendlyTarget(t, effect, view)
	}

	enemy := view.Side.Opponent()
	switch t {
	case entity.TargetSingleEnemyMinion, entity.TargetSingleMinion:
		best := mostValuable(view.EnemyBoard)
		if best == nil {
			return nil
		}
		target := targeting.MinionTarget(enemy, best.CardID())
		return &target
	case entity.TargetSingleCharacter:
		candidates := make([]targeting.Target, 0, len(view.EnemyBoard)+1)
		for _, m := range view.EnemyBoard {
			candidates = append(candidates, targeting.MinionTarget(enemy, m.CardID()))
		}
		candidates = append(candidates, targeting.HeroTarget(enemy))
		target := candidates[p.rng.Intn(len(candidates))]
		return &target
	default:
		return nil
	}
}

func (p *Planner) friendlyTarget(t entity.TargetingType, effect *effects.Effect, view View) *targeting.Target {
	if effect.Kind == effects.KindHeal && t == entity.TargetSingleCharacter && view.Hero != nil {
		if view.Hero.Health < view.Hero.MaxHealth || len(view.Board) == 0 {
			target := targeting.HeroTarget(view.Side)
			return &target
		}
	}
	best := mostValuable(view.Board)
	if best == nil {
		return nil
	}
	target := targeting.MinionTarget(view.Side, best.CardID())
	return &target
}

func mostValuable(minions []*entity.Minion) *entity.Minion {
	var best *entity.Minion
	for _, m := range minions {
		if best == nil || m.Value() > best.Value() {
			best = m
		}
	}
	return best
}
