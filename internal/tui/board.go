package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// boardHeight is the number of terminal rows renderBoard occupies.
const boardHeight = 13

func heroLine(label string, view game.SideView) string {
	h := view.Hero
	if h == nil {
		return styleSectionTitle.Render(label)
	}
	line := fmt.Sprintf("%s  %s  %d/%d HP", label, h.Name, h.Health, h.MaxHealth)
	if h.Armor > 0 {
		line += fmt.Sprintf(" +%d armor", h.Armor)
	}
	if h.Power != nil {
		used := ""
		if h.Power.UsedThisTurn {
			used = " (used)"
		}
		line += fmt.Sprintf("  [%s %d%s]", h.Power.Name, h.Power.Cost, used)
	}
	line += fmt.Sprintf("  mana %d/%d  deck %d  hand %d", view.Mana, view.MaxMana, view.DeckSize, len(view.Hand))
	return styleHero.Render(line)
}

func minionBox(prefix string, i int, m *entity.Minion) string {
	style := styleMinion
	switch {
	case m.DivineShield:
		style = styleMinionShield
	case m.CanAttack():
		style = styleMinionReady
	}
	return style.Render(fmt.Sprintf("%s%d %s\n%d/%d", prefix, i+1, m.Name, m.Attack, m.Health))
}

func renderRow(prefix string, board []*entity.Minion) string {
	if len(board) == 0 {
		return styleSystem.Render("\n  (empty board)\n")
	}
	boxes := make([]string, 0, len(board))
	for i, m := range board {
		boxes = append(boxes, minionBox(prefix, i, m))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func cardLabel(c entity.Card) string {
	switch card := c.(type) {
	case *entity.Minion:
		return fmt.Sprintf("%s (%d) %d/%d", card.Name, card.ManaCost, card.Attack, card.Health)
	case *entity.Spell:
		return fmt.Sprintf("%s (%d)", card.Name, card.ManaCost)
	default:
		return c.CardName()
	}
}

func renderHand(view game.SideView, myTurn bool) string {
	if len(view.Hand) == 0 {
		return styleSystem.Render("hand: (empty)")
	}
	parts := make([]string, 0, len(view.Hand))
	for i, c := range view.Hand {
		label := fmt.Sprintf("%d:%s", i+1, cardLabel(c))
		if myTurn && c.Cost() <= view.Mana {
			parts = append(parts, styleCardPlayable.Render(label))
		} else {
			parts = append(parts, styleCard.Render(label))
		}
	}
	return "hand: " + strings.Join(parts, "  ")
}

// renderBoard draws both heroes, both boards and the player's hand.
func renderBoard(snap game.Snapshot, width int) string {
	myTurn := snap.CurrentTurn == entity.SidePlayer && !snap.BotTurnInProgress
	rows := []string{
		heroLine("ENEMY", snap.Bot),
		renderRow("e", snap.Bot.Board),
		styleSystem.Render(strings.Repeat("─", max(width, 10))),
		renderRow("f", snap.Player.Board),
		heroLine("YOU", snap.Player),
		renderHand(snap.Player, myTurn),
	}
	return lipgloss.NewStyle().Height(boardHeight).MaxWidth(max(width, 10)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
