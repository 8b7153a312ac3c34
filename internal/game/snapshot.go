package game

import (
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// SideView is the read model of one side. All values are copies.
type SideView struct {
	Hero     *entity.Hero     `json:"hero"`
	Hand     []entity.Card    `json:"hand"`
	Board    []*entity.Minion `json:"board"`
	DeckSize int              `json:"deck_size"`
	Mana     int              `json:"mana"`
	MaxMana  int              `json:"max_mana"`
	Fatigue  int              `json:"fatigue"`
}

// Snapshot is a deep copy of the match state. Mutating it has no effect on
// the engine.
type Snapshot struct {
	MatchID           string      `json:"match_id"`
	CurrentTurn       entity.Side `json:"current_turn"`
	TurnNumber        int         `json:"turn_number"`
	Player            SideView    `json:"player"`
	Bot               SideView    `json:"bot"`
	GameOver          bool        `json:"game_over"`
	PlayerWon         bool        `json:"player_won"`
	BotTurnInProgress bool        `json:"bot_turn_in_progress"`
}

// Side returns the view of s.
func (s Snapshot) Side(side entity.Side) SideView {
	if side == entity.SideBot {
		return s.Bot
	}
	return s.Player
}

// Snapshot returns a copy of the current match state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		MatchID:           e.matchID,
		CurrentTurn:       e.turns.Current(),
		TurnNumber:        e.turns.TurnNumber(),
		Player:            e.sideViewLocked(entity.SidePlayer),
		Bot:               e.sideViewLocked(entity.SideBot),
		GameOver:          e.gameOver,
		PlayerWon:         e.playerWon,
		BotTurnInProgress: e.botTurnActive,
	}
}

func (e *Engine) sideViewLocked(side entity.Side) SideView {
	st := e.side(side)
	return SideView{
		Hero:     st.hero.Clone(),
		Hand:     entity.CloneCards(st.hand),
		Board:    entity.CloneMinions(st.board),
		DeckSize: len(st.deck),
		Mana:     st.mana.Current,
		MaxMana:  st.mana.Max,
		Fatigue:  st.fatigue,
	}
}
