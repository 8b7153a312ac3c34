package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

func turnLabel(snap game.Snapshot) string {
	switch {
	case snap.GameOver && snap.PlayerWon:
		return "VICTORY"
	case snap.GameOver:
		return "DEFEAT"
	case snap.BotTurnInProgress || snap.CurrentTurn == entity.SideBot:
		return "Enemy turn"
	default:
		return "Your turn"
	}
}

// renderStatusBar produces a full-width inverted line with both hero health
// totals, the player's mana and the turn number.
func (m Model) renderStatusBar() string {
	snap := m.engine.Snapshot()

	left := fmt.Sprintf(" %s | Mana %d/%d", turnLabel(snap), snap.Player.Mana, snap.Player.MaxMana)
	right := fmt.Sprintf("You %d | Enemy %d | T:%d ", heroHealth(snap.Player), heroHealth(snap.Bot), snap.TurnNumber)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

func heroHealth(view game.SideView) int {
	if view.Hero == nil {
		return 0
	}
	return view.Hero.Health
}
