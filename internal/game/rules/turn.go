package rules

import "github.com/hearthforge/hearthforge-go/internal/game/entity"

// TurnManager tracks whose turn it is and the round counter. The player
// always opens; a round is a player turn followed by a bot turn.
type TurnManager struct {
	current    entity.Side
	turnNumber int
}

// NewTurnManager creates a turn manager at round 1, player to act.
func NewTurnManager() *TurnManager {
	return &TurnManager{
		current:    entity.SidePlayer,
		turnNumber: 1,
	}
}

// Current returns the side whose turn it is.
func (tm *TurnManager) Current() entity.Side {
	return tm.current
}

// TurnNumber returns the current round (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// IsTurnOf reports whether side is the acting side.
func (tm *TurnManager) IsTurnOf(side entity.Side) bool {
	return tm.current == side
}

// Advance hands the turn to the other side. newRound is true when the bot
// hands back to the player, which also bumps the round counter.
func (tm *TurnManager) Advance() (next entity.Side, newRound bool) {
	tm.current = tm.current.Opponent()
	if tm.current == entity.SidePlayer {
		tm.turnNumber++
		return tm.current, true
	}
	return tm.current, false
}
