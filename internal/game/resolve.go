package game

import (
	"errors"
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/rules"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"go.uber.org/zap"
)

var errCleanupLimit = errors.New("board cleanup did not settle")

// enqueueEffect queues effect for controller. Explicit targets are used as
// given; otherwise targets are resolved when the effect runs so that it sees
// the board as it is at that moment.
func (e *Engine) enqueueEffect(kind rules.QueuedEffectKind, controller entity.Side, sourceID int, t entity.TargetingType, effect *effects.Effect, explicit *targeting.Target) {
	if effect == nil {
		return
	}
	e.queue.Enqueue(rules.QueuedEffect{
		Controller:  controller,
		Kind:        kind,
		SourceID:    sourceID,
		Description: effect.Describe(),
		Resolve: func() error {
			pick := func() []targeting.Target {
				return e.resolver.Resolve(t, field{e}, controller)
			}
			if explicit != nil {
				fixed := []targeting.Target{*explicit}
				pick = func() []targeting.Target { return fixed }
			}
			switch kind {
			case rules.QueuedBattlecry:
				e.publish(rules.NewEvent(rules.EventBattlecry, controller, sourceID))
			case rules.QueuedDeathrattle:
				e.publish(rules.NewEvent(rules.EventDeathrattle, controller, sourceID))
			}
			return e.applyEffect(controller, sourceID, effect, pick, t.Normalize().IsRandom())
		},
	})
}

// applyEffect interprets every link of an effect chain. Links that work on
// targets share the target list picked for the first link, except under
// random targeting where every link picks again; an empty list makes them
// no-ops.
func (e *Engine) applyEffect(controller entity.Side, sourceID int, effect *effects.Effect, pick func() []targeting.Target, repick bool) error {
	var targets []targeting.Target
	for i, link := range effect.Chain() {
		if i == 0 || repick {
			targets = pick()
		}
		switch link.Kind {
		case effects.KindDamage:
			for _, t := range targets {
				e.damageTarget(controller, sourceID, t, link.Amount)
			}
		case effects.KindHeal:
			for _, t := range targets {
				e.healTarget(controller, sourceID, t, link.Amount)
			}
		case effects.KindDestroy:
			for _, t := range targets {
				if m := e.minionAt(t); m != nil {
					m.Health = 0
					e.appendLog(fmt.Sprintf("%s is destroyed", m.CardName()))
				}
			}
		case effects.KindBuff:
			for _, t := range targets {
				if m := e.minionAt(t); m != nil {
					m.Buff(link.Attack, link.Health)
				}
			}
		case effects.KindGiveDivineShield:
			for _, t := range targets {
				if m := e.minionAt(t); m != nil {
					m.DivineShield = true
				}
			}
		case effects.KindDraw:
			for i := 0; i < link.Amount; i++ {
				e.drawLocked(controller)
			}
		case effects.KindGainArmor:
			hero := e.side(controller).hero
			hero.GainArmor(link.Amount)
			e.publish(rules.NewEventWithAmount(rules.EventArmorGained, controller, sourceID, link.Amount))
		case effects.KindSummon:
			e.summonTokens(controller, sourceID, link)
		case effects.KindDamageEnemyHero:
			e.damageHero(controller, sourceID, controller.Opponent(), link.Amount)
		case effects.KindDamageOwnHero:
			e.damageHero(controller, sourceID, controller, link.Amount)
		default:
			return fmt.Errorf("unknown effect kind %q", link.Kind)
		}
	}
	return nil
}

// minionAt returns the minion a target points at, including minions at zero
// health that cleanup has not removed yet.
func (e *Engine) minionAt(t targeting.Target) *entity.Minion {
	if t.IsHero() {
		return nil
	}
	st := e.side(t.Side)
	if st == nil {
		return nil
	}
	if idx := e.findMinion(t.Side, t.ID); idx >= 0 {
		return st.board[idx]
	}
	return nil
}

func (e *Engine) damageTarget(source entity.Side, sourceID int, t targeting.Target, amount int) {
	if t.IsHero() {
		e.damageHero(source, sourceID, t.Side, amount)
		return
	}
	if m := e.minionAt(t); m != nil {
		e.damageMinion(source, sourceID, t.Side, m, amount)
	}
}

func (e *Engine) damageMinion(source entity.Side, sourceID int, owner entity.Side, m *entity.Minion, amount int) {
	if amount <= 0 {
		return
	}
	hadShield := m.DivineShield
	dealt := m.TakeDamage(amount)
	if hadShield && !m.DivineShield {
		e.appendLog(fmt.Sprintf("%s loses Divine Shield", m.CardName()))
	}
	if dealt == 0 {
		return
	}
	evt := rules.NewEventWithAmount(rules.EventDamageDealt, source, sourceID, dealt)
	evt.TargetID = m.CardID()
	evt.TargetSide = owner
	e.publish(evt)
}

func (e *Engine) damageHero(source entity.Side, sourceID int, owner entity.Side, amount int) {
	if amount <= 0 {
		return
	}
	hero := e.side(owner).hero
	lost := hero.TakeDamage(amount)
	if lost > 0 {
		evt := rules.NewEventWithAmount(rules.EventDamageDealt, source, sourceID, lost)
		evt.TargetSide = owner
		evt.TargetHero = true
		e.publish(evt)
	}
	e.appendLog(fmt.Sprintf("%s hero takes %d damage (%d health, %d armor)", owner, amount, hero.Health, hero.Armor))
}

func (e *Engine) healTarget(source entity.Side, sourceID int, t targeting.Target, amount int) {
	var restored int
	if t.IsHero() {
		st := e.side(t.Side)
		if st == nil {
			return
		}
		restored = st.hero.Heal(amount)
	} else if m := e.minionAt(t); m != nil {
		restored = m.Heal(amount)
	}
	if restored == 0 {
		return
	}
	evt := rules.NewEventWithAmount(rules.EventHealed, source, sourceID, restored)
	evt.TargetID = t.ID
	evt.TargetSide = t.Side
	evt.TargetHero = t.IsHero()
	e.publish(evt)
}

func (e *Engine) summonTokens(controller entity.Side, sourceID int, link *effects.Effect) {
	if link.Token == nil {
		return
	}
	count := link.Amount
	if count < 1 {
		count = 1
	}
	st := e.side(controller)
	for i := 0; i < count && len(st.board) < entity.MaxBoardSize; i++ {
		token := entity.NewMinion(e.newTokenID(), link.Token.Name, 0, link.Token.Attack, link.Token.Health)
		token.Summon()
		st.board = append(st.board, token)
		e.publish(rules.NewEvent(rules.EventMinionSummoned, controller, token.CardID()))
		e.appendLog(fmt.Sprintf("%s summons %s", controller, token.CardName()))
	}
}

// drawLocked moves the top card of side's deck into its hand. A full hand
// burns the card; an empty deck deals fatigue damage equal to the number of
// empty draws so far.
func (e *Engine) drawLocked(side entity.Side) entity.Card {
	st := e.side(side)
	if len(st.deck) == 0 {
		st.fatigue++
		st.hero.TakeDamage(st.fatigue)
		e.publish(rules.NewEventWithAmount(rules.EventFatigue, side, 0, st.fatigue))
		e.appendLog(fmt.Sprintf("%s takes %d fatigue damage", side, st.fatigue))
		return nil
	}

	card := st.deck[0]
	st.deck[0] = nil
	st.deck = st.deck[1:]
	if len(st.hand) >= entity.MaxHandSize {
		e.publish(rules.NewEvent(rules.EventCardBurned, side, card.CardID()))
		e.appendLog(fmt.Sprintf("%s burns %s", side, card.CardName()))
		return nil
	}
	st.hand = append(st.hand, card)
	e.publish(rules.NewEvent(rules.EventCardDrawn, side, card.CardID()))
	return card
}

// settleLocked drains queued effects, removes dead minions until the boards
// are stable and checks for a winner.
func (e *Engine) settleLocked() error {
	if err := e.queue.Drain(); err != nil {
		e.checkWinLocked()
		return e.resolutionFailure(err)
	}
	if err := e.cleanupLocked(); err != nil {
		e.checkWinLocked()
		return e.resolutionFailure(err)
	}
	e.checkWinLocked()
	return nil
}

func (e *Engine) resolutionFailure(err error) error {
	e.logger.Error("effect resolution failed",
		zap.String("match_id", e.matchID),
		zap.Error(err),
	)
	return fmt.Errorf("resolve effects: %w", err)
}

type deadMinion struct {
	owner  entity.Side
	minion *entity.Minion
}

// cleanupLocked removes dead minions, player board first and in board
// order, then runs their deathrattles. It repeats until a pass finds no dead
// minion.
func (e *Engine) cleanupLocked() error {
	for pass := 0; pass < maxCleanupPasses; pass++ {
		var dead []deadMinion
		for _, side := range []entity.Side{entity.SidePlayer, entity.SideBot} {
			st := e.side(side)
			alive := make([]*entity.Minion, 0, len(st.board))
			for _, m := range st.board {
				if m.IsDead() {
					dead = append(dead, deadMinion{owner: side, minion: m})
					continue
				}
				alive = append(alive, m)
			}
			st.board = alive
		}
		if len(dead) == 0 {
			return nil
		}

		for _, d := range dead {
			e.publish(rules.NewEvent(rules.EventMinionDied, d.owner, d.minion.CardID()))
			e.appendLog(fmt.Sprintf("%s dies", d.minion.CardName()))
			if d.minion.Deathrattle != nil {
				e.enqueueEffect(rules.QueuedDeathrattle, d.owner, d.minion.CardID(), d.minion.DeathrattleTargeting, d.minion.Deathrattle, nil)
			}
		}
		if err := e.queue.Drain(); err != nil {
			return err
		}
	}
	return errCleanupLimit
}

// checkWinLocked ends the match once a hero is dead. The player loses when
// both heroes die at the same time.
func (e *Engine) checkWinLocked() {
	if e.gameOver {
		return
	}
	player, bot := e.side(entity.SidePlayer).hero, e.side(entity.SideBot).hero
	switch {
	case player.IsDead():
		e.gameOver, e.playerWon = true, false
	case bot.IsDead():
		e.gameOver, e.playerWon = true, true
	default:
		return
	}

	e.queue.Clear()
	winner := entity.SideBot
	if e.playerWon {
		winner = entity.SidePlayer
	}
	e.publish(rules.NewEvent(rules.EventGameOver, winner, 0))
	e.appendLog(fmt.Sprintf("game over: %s wins", winner))
	e.logger.Info("match finished",
		zap.String("match_id", e.matchID),
		zap.Stringer("winner", winner),
		zap.Int("turn", e.turns.TurnNumber()),
	)
	if e.recorder != nil {
		e.recordLocked("game_over")
		e.recorder.StopRecording(e.matchID)
	}
}
