package game

import (
	"context"
	"time"

	"github.com/hearthforge/hearthforge-go/internal/ai"
	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"go.uber.org/zap"
)

// RunBotTurn plays the bot's turn to completion and then ends it. Outside
// actions are rejected with ErrBotTurnInProgress until it returns.
// Cancelling ctx only skips the pacing delays; the turn still completes.
// A nil ctx behaves like context.Background().
func (e *Engine) RunBotTurn(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e.mu.Lock()
	if e.gameOver {
		e.mu.Unlock()
		return ErrGameOver
	}
	if e.botTurnActive {
		e.mu.Unlock()
		return ErrBotTurnInProgress
	}
	if !e.turns.IsTurnOf(entity.SideBot) {
		e.mu.Unlock()
		return ErrNotBotTurn
	}
	e.botTurnActive = true
	plan := e.planner.Plan(e.viewLocked(entity.SideBot))
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.botTurnActive = false
		e.mu.Unlock()
	}()

	e.logger.Debug("bot turn started",
		zap.String("match_id", e.matchID),
		zap.Int("decisions", len(plan)),
	)

	for _, decision := range plan {
		if decision.Kind == ai.DecisionEndTurn {
			break
		}
		e.pause(ctx)

		e.mu.Lock()
		if e.gameOver {
			e.mu.Unlock()
			return nil
		}
		err := e.executeLocked(decision)
		if err == nil {
			e.recordLocked(string(decision.Kind))
		}
		e.mu.Unlock()

		if err != nil {
			if !IsRuleViolation(err) {
				return err
			}
			e.logger.Debug("bot decision rejected",
				zap.String("match_id", e.matchID),
				zap.String("decision", string(decision.Kind)),
				zap.Error(err),
			)
		}
	}

	e.pause(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver || !e.turns.IsTurnOf(entity.SideBot) {
		return nil
	}
	if err := e.endTurnLocked(); err != nil {
		return err
	}
	e.recordLocked("end_turn")
	return nil
}

func (e *Engine) pause(ctx context.Context) {
	if e.botDelay <= 0 || ctx.Err() != nil {
		return
	}
	timer := time.NewTimer(e.botDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// executeLocked runs one planned decision. Cards and minions are looked up by
// id because earlier steps may have shifted indices, and targets that died in
// the meantime are chosen again.
func (e *Engine) executeLocked(d ai.Decision) error {
	bot := entity.SideBot
	switch d.Kind {
	case ai.DecisionPlayCard:
		idx := e.findInHand(bot, d.CardID)
		if idx < 0 {
			return ErrHandIndex
		}
		var target *targeting.Target
		switch c := e.side(bot).hand[idx].(type) {
		case *entity.Minion:
			target = e.refreshTarget(d.Target, c.BattlecryTargeting, c.Battlecry)
		case *entity.Spell:
			target = e.refreshTarget(d.Target, c.Targeting, c.Effect)
		}
		return e.playCardLocked(bot, idx, target)

	case ai.DecisionAttack:
		idx := e.findMinion(bot, d.AttackerID)
		if idx < 0 {
			return ErrBoardIndex
		}
		attacker := e.side(bot).board[idx]
		target := targeting.HeroTarget(bot.Opponent())
		if d.Target != nil {
			target = *d.Target
		}
		if !target.IsHero() && e.minionAt(target) == nil {
			target = e.planner.FindBestAttackTarget(attacker, e.viewLocked(bot))
		}
		return e.attackLocked(bot, idx, target)

	case ai.DecisionUseHeroPower:
		power := e.side(bot).hero.Power
		if power == nil {
			return ErrNoHeroPower
		}
		return e.useHeroPowerLocked(bot, e.refreshTarget(d.Target, power.Targeting, power.Effect))

	default:
		return nil
	}
}

func (e *Engine) refreshTarget(planned *targeting.Target, t entity.TargetingType, effect *effects.Effect) *targeting.Target {
	if planned == nil || planned.IsHero() || e.minionAt(*planned) != nil {
		return planned
	}
	return e.planner.FindBestSpellTarget(t, effect, e.viewLocked(entity.SideBot))
}

// viewLocked builds the planner's read-only view for side.
func (e *Engine) viewLocked(side entity.Side) ai.View {
	own, enemy := e.side(side), e.side(side.Opponent())
	return ai.View{
		Side:       side,
		Hand:       entity.CloneCards(own.hand),
		Board:      entity.CloneMinions(own.board),
		EnemyBoard: entity.CloneMinions(enemy.board),
		Hero:       own.hero.Clone(),
		EnemyHero:  enemy.hero.Clone(),
		Mana:       own.mana.Current,
	}
}
