package game

import (
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/rules"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"go.uber.org/zap"
)

// DrawCard draws the top card of side's deck. It returns nil when the card
// was burned because the hand was full, or when the deck was empty and the
// hero took fatigue damage instead.
func (e *Engine) DrawCard(side entity.Side) (entity.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !side.Valid() {
		return nil, e.contractViolation(ErrUnknownSide, zap.Int("side", int(side)))
	}
	if e.gameOver {
		return nil, ErrGameOver
	}
	if e.botTurnActive {
		return nil, ErrBotTurnInProgress
	}

	card := e.drawLocked(side)
	e.checkWinLocked()
	e.recordLocked("draw")
	if card == nil {
		return nil, nil
	}
	return card.Clone(), nil
}

// PlayCard plays the card at handIndex. target is optional and overrides
// automatic targeting for spells and battlecries. The mana cost is paid once
// the play is accepted, even if the effect ends up with nothing to hit.
func (e *Engine) PlayCard(side entity.Side, handIndex int, target *targeting.Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.botTurnActive {
		return ErrBotTurnInProgress
	}
	if err := e.playCardLocked(side, handIndex, target); err != nil {
		return err
	}
	e.recordLocked("play_card")
	return nil
}

func (e *Engine) playCardLocked(side entity.Side, handIndex int, target *targeting.Target) error {
	if err := e.checkActorLocked(side); err != nil {
		return err
	}
	if handIndex < 0 {
		return e.contractViolation(ErrNegativeIndex, zap.Int("hand_index", handIndex))
	}
	st := e.side(side)
	if handIndex >= len(st.hand) {
		return fmt.Errorf("%w: %d (hand has %d)", ErrHandIndex, handIndex, len(st.hand))
	}

	card := st.hand[handIndex]
	if !st.mana.CanAfford(card.Cost()) {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientMana, card.CardName(), card.Cost(), st.mana.Current)
	}

	var (
		targetType entity.TargetingType
		effect     *effects.Effect
	)
	switch c := card.(type) {
	case *entity.Minion:
		if len(st.board) >= entity.MaxBoardSize {
			return ErrBoardFull
		}
		targetType, effect = c.BattlecryTargeting, c.Battlecry
	case *entity.Spell:
		targetType, effect = c.Targeting, c.Effect
	}
	if target != nil && effect != nil {
		if err := targeting.Validate(targetType, *target, field{e}, side); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
	}

	if err := st.mana.Spend(card.Cost()); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientMana, err)
	}
	st.hand = append(st.hand[:handIndex], st.hand[handIndex+1:]...)
	e.publish(rules.NewEventWithAmount(rules.EventCardPlayed, side, card.CardID(), card.Cost()))

	switch c := card.(type) {
	case *entity.Minion:
		c.Summon()
		st.board = append(st.board, c)
		e.publish(rules.NewEvent(rules.EventMinionSummoned, side, c.CardID()))
		e.appendLog(fmt.Sprintf("%s plays %s", side, c.CardName()))
		if c.Battlecry != nil {
			e.enqueueEffect(rules.QueuedBattlecry, side, c.CardID(), c.BattlecryTargeting, c.Battlecry, target)
		}
	case *entity.Spell:
		e.publish(rules.NewEvent(rules.EventSpellCast, side, c.CardID()))
		e.appendLog(fmt.Sprintf("%s casts %s", side, c.CardName()))
		e.enqueueEffect(rules.QueuedSpell, side, c.CardID(), c.Targeting, c.Effect, target)
	}

	e.logger.Debug("card played",
		zap.String("match_id", e.matchID),
		zap.Stringer("side", side),
		zap.String("card", card.CardName()),
		zap.Int("card_id", card.CardID()),
	)
	return e.settleLocked()
}

// Attack makes the minion at attackerIndex attack an enemy minion or the
// enemy hero.
func (e *Engine) Attack(side entity.Side, attackerIndex int, target targeting.Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.botTurnActive {
		return ErrBotTurnInProgress
	}
	if err := e.attackLocked(side, attackerIndex, target); err != nil {
		return err
	}
	e.recordLocked("attack")
	return nil
}

func (e *Engine) attackLocked(side entity.Side, attackerIndex int, target targeting.Target) error {
	if err := e.checkActorLocked(side); err != nil {
		return err
	}
	if attackerIndex < 0 {
		return e.contractViolation(ErrNegativeIndex, zap.Int("attacker_index", attackerIndex))
	}
	st := e.side(side)
	if attackerIndex >= len(st.board) {
		return fmt.Errorf("%w: %d (board has %d)", ErrBoardIndex, attackerIndex, len(st.board))
	}
	attacker := st.board[attackerIndex]
	if !attacker.CanAttack() {
		return fmt.Errorf("%w: %s is %s", ErrCannotAttack, attacker.CardName(), attacker.State())
	}

	enemy := side.Opponent()
	if target.Side != enemy {
		return fmt.Errorf("%w: %s is not an enemy", ErrInvalidTarget, target)
	}
	var defender *entity.Minion
	switch target.Kind {
	case targeting.KindHero:
	case targeting.KindMinion:
		idx := e.findMinion(enemy, target.ID)
		if idx < 0 {
			return fmt.Errorf("%w: %s is not on the board", ErrInvalidTarget, target)
		}
		defender = e.side(enemy).board[idx]
	default:
		return fmt.Errorf("%w: unknown target kind %q", ErrInvalidTarget, target.Kind)
	}

	evt := rules.NewEventWithAmount(rules.EventAttack, side, attacker.CardID(), attacker.Attack)
	evt.TargetSide = enemy
	evt.TargetHero = defender == nil
	if defender != nil {
		evt.TargetID = defender.CardID()
	}
	e.publish(evt)

	if defender == nil {
		e.appendLog(fmt.Sprintf("%s attacks the %s hero", attacker.CardName(), enemy))
		e.damageHero(side, attacker.CardID(), enemy, attacker.Attack)
		e.checkWinLocked()
	} else {
		e.appendLog(fmt.Sprintf("%s attacks %s", attacker.CardName(), defender.CardName()))
		dealt, taken := attacker.Attack, defender.Attack
		e.damageMinion(side, attacker.CardID(), enemy, defender, dealt)
		e.damageMinion(enemy, defender.CardID(), side, attacker, taken)
	}
	attacker.HasAttackedThisTurn = true

	return e.settleLocked()
}

// UseHeroPower activates side's hero power. target is optional.
func (e *Engine) UseHeroPower(side entity.Side, target *targeting.Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.botTurnActive {
		return ErrBotTurnInProgress
	}
	if err := e.useHeroPowerLocked(side, target); err != nil {
		return err
	}
	e.recordLocked("hero_power")
	return nil
}

func (e *Engine) useHeroPowerLocked(side entity.Side, target *targeting.Target) error {
	if err := e.checkActorLocked(side); err != nil {
		return err
	}
	st := e.side(side)
	power := st.hero.Power
	if power == nil {
		return ErrNoHeroPower
	}
	if power.UsedThisTurn {
		return ErrHeroPowerUsed
	}
	if !power.CanUse(st.mana.Current) {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientMana, power.Name, power.Cost, st.mana.Current)
	}
	if target != nil {
		if err := targeting.Validate(power.Targeting, *target, field{e}, side); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
	}

	if err := st.mana.Spend(power.Cost); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientMana, err)
	}
	power.UsedThisTurn = true
	e.publish(rules.NewEventWithAmount(rules.EventHeroPowerUsed, side, power.ID, power.Cost))
	e.appendLog(fmt.Sprintf("%s uses %s", side, power.Name))
	e.enqueueEffect(rules.QueuedHeroPower, side, power.ID, power.Targeting, power.Effect, target)

	return e.settleLocked()
}

// EndTurn finishes the current side's turn.
func (e *Engine) EndTurn() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return ErrGameOver
	}
	if e.botTurnActive {
		return ErrBotTurnInProgress
	}
	if err := e.endTurnLocked(); err != nil {
		return err
	}
	e.recordLocked("end_turn")
	return nil
}

func (e *Engine) endTurnLocked() error {
	ending := e.turns.Current()
	e.publish(rules.NewEvent(rules.EventTurnEnded, ending, 0))

	next, newRound := e.turns.Advance()
	player, bot := e.side(entity.SidePlayer), e.side(entity.SideBot)

	if next == entity.SideBot {
		for _, m := range bot.board {
			m.ResetForTurn()
		}
		if player.hero.Power != nil {
			player.hero.Power.UsedThisTurn = false
		}
	} else {
		if newRound {
			for _, st := range e.sides {
				st.mana.Ramp()
				st.mana.Refill()
			}
		}
		e.drawLocked(entity.SidePlayer)
		e.drawLocked(entity.SideBot)
		for _, m := range player.board {
			m.ResetForTurn()
		}
		if bot.hero.Power != nil {
			bot.hero.Power.UsedThisTurn = false
		}
	}

	e.publish(rules.NewEventWithAmount(rules.EventTurnStarted, next, 0, e.turns.TurnNumber()))
	e.appendLog(fmt.Sprintf("turn %d: %s to act", e.turns.TurnNumber(), next))
	e.logger.Debug("turn ended",
		zap.String("match_id", e.matchID),
		zap.Stringer("ended", ending),
		zap.Stringer("next", next),
		zap.Int("turn", e.turns.TurnNumber()),
	)
	return e.settleLocked()
}
