package watchers

import (
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/rules"
)

func TestMatchStatsWatcher(t *testing.T) {
	watcher := NewMatchStatsWatcher()
	if got := watcher.For(entity.SidePlayer); got != (SideStats{}) {
		t.Fatalf("expected zero stats initially, got %+v", got)
	}

	watcher.Watch(rules.NewEvent(rules.EventCardPlayed, entity.SidePlayer, 1))
	watcher.Watch(rules.NewEvent(rules.EventSpellCast, entity.SidePlayer, 1))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamageDealt, entity.SidePlayer, 1, 6))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamageDealt, entity.SidePlayer, 4, 2))
	watcher.Watch(rules.NewEvent(rules.EventMinionDied, entity.SideBot, 9))
	watcher.Watch(rules.NewEventWithAmount(rules.EventFatigue, entity.SideBot, 0, 3))
	watcher.Watch(rules.NewEvent(rules.EventTurnEnded, entity.SideBot, 0))

	player := watcher.For(entity.SidePlayer)
	if player.CardsPlayed != 1 || player.SpellsCast != 1 || player.DamageDealt != 8 {
		t.Fatalf("unexpected player stats %+v", player)
	}
	bot := watcher.For(entity.SideBot)
	if bot.MinionsLost != 1 || bot.FatigueTaken != 3 {
		t.Fatalf("unexpected bot stats %+v", bot)
	}

	watcher.Reset()
	if got := watcher.For(entity.SidePlayer); got != (SideStats{}) {
		t.Fatalf("expected zero stats after reset, got %+v", got)
	}
}

func TestMatchStatsWatcherIgnoresUnknownSide(t *testing.T) {
	watcher := NewMatchStatsWatcher()
	watcher.Watch(rules.NewEvent(rules.EventCardPlayed, entity.Side(7), 1))
	if got := watcher.For(entity.Side(7)); got != (SideStats{}) {
		t.Fatalf("events for unknown sides must be ignored, got %+v", got)
	}
	if got := watcher.For(entity.SidePlayer); got.CardsPlayed != 0 {
		t.Fatalf("unknown side leaked into player stats %+v", got)
	}
}
