package rules

import (
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

type spellWatcher struct {
	*BaseWatcher
	count int
}

func (w *spellWatcher) Watch(event Event) {
	if event.Type != EventSpellCast {
		return
	}
	w.count++
}

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	w := &spellWatcher{BaseWatcher: NewBaseWatcher("SpellWatcher")}
	registry.Add(w)
	registry.Add(nil)

	registry.Notify(NewEvent(EventAttack, entity.SidePlayer, 1))
	if w.count != 0 {
		t.Fatal("attack must not trip the spell watcher")
	}

	registry.Notify(NewEvent(EventSpellCast, entity.SidePlayer, 2))
	if w.count != 1 {
		t.Fatalf("expected watcher to see one spell, got %d", w.count)
	}
}

func TestWatcherRegistryReplacesSameKey(t *testing.T) {
	registry := NewWatcherRegistry()

	first := &spellWatcher{BaseWatcher: NewBaseWatcher("SpellWatcher")}
	second := &spellWatcher{BaseWatcher: NewBaseWatcher("SpellWatcher")}
	registry.Add(first)
	registry.Add(second)

	registry.Notify(NewEvent(EventSpellCast, entity.SidePlayer, 2))
	if first.count != 0 || second.count != 1 {
		t.Fatalf("expected only the replacement to be notified, got %d and %d", first.count, second.count)
	}
}
