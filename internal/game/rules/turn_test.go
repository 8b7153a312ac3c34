package rules

import (
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

func TestTurnManagerAlternates(t *testing.T) {
	tm := NewTurnManager()

	if tm.Current() != entity.SidePlayer || tm.TurnNumber() != 1 {
		t.Fatalf("expected player on turn 1, got %s on %d", tm.Current(), tm.TurnNumber())
	}

	next, newRound := tm.Advance()
	if next != entity.SideBot || newRound {
		t.Fatalf("expected bot within the same round, got %s newRound=%t", next, newRound)
	}
	if tm.TurnNumber() != 1 {
		t.Fatalf("expected to remain on turn 1, got %d", tm.TurnNumber())
	}

	next, newRound = tm.Advance()
	if next != entity.SidePlayer || !newRound {
		t.Fatalf("expected player to open a new round, got %s newRound=%t", next, newRound)
	}
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn number 2 after wrap, got %d", tm.TurnNumber())
	}
	if !tm.IsTurnOf(entity.SidePlayer) || tm.IsTurnOf(entity.SideBot) {
		t.Fatalf("IsTurnOf disagrees with Current")
	}
}
