package rules

import (
	"errors"
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

func TestEffectQueueFIFO(t *testing.T) {
	q := NewEffectQueue()

	var order []string
	q.Enqueue(QueuedEffect{
		ID:         "first",
		Controller: entity.SidePlayer,
		Kind:       QueuedBattlecry,
		Resolve: func() error {
			order = append(order, "first")
			return nil
		},
	})
	q.Enqueue(QueuedEffect{
		ID:   "second",
		Kind: QueuedDeathrattle,
		Resolve: func() error {
			order = append(order, "second")
			return nil
		},
	})

	item, ok := q.Dequeue()
	if !ok {
		t.Fatalf("expected an item")
	}
	if item.ID != "first" {
		t.Fatalf("expected FIFO order (first), got %s", item.ID)
	}
	if err := item.Resolve(); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if err := q.Drain(); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("unexpected resolution order %v", order)
	}
	if q.Len() != 0 {
		t.Fatalf("expected queue to be empty")
	}
}

func TestEffectQueueDrainRunsFollowUpsLast(t *testing.T) {
	q := NewEffectQueue()

	var order []string
	q.Enqueue(QueuedEffect{
		Resolve: func() error {
			order = append(order, "a")
			q.Enqueue(QueuedEffect{Resolve: func() error {
				order = append(order, "a-child")
				return nil
			}})
			return nil
		},
	})
	q.Enqueue(QueuedEffect{Resolve: func() error {
		order = append(order, "b")
		return nil
	}})

	if err := q.Drain(); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	want := []string{"a", "b", "a-child"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestEffectQueueDrainStopsOnError(t *testing.T) {
	q := NewEffectQueue()
	boom := errors.New("boom")
	ran := false

	q.Enqueue(QueuedEffect{Kind: QueuedSpell, SourceID: 4, Resolve: func() error { return boom }})
	q.Enqueue(QueuedEffect{Resolve: func() error {
		ran = true
		return nil
	}})

	err := q.Drain()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if ran {
		t.Fatalf("items after a failure must not resolve")
	}
	if q.Len() != 0 {
		t.Fatalf("queue should be cleared after a failure")
	}
}

func TestEffectQueueDrainLimit(t *testing.T) {
	q := NewEffectQueue()
	var loop func() error
	loop = func() error {
		q.Enqueue(QueuedEffect{Resolve: loop})
		return nil
	}
	q.Enqueue(QueuedEffect{Resolve: loop})

	if err := q.Drain(); !errors.Is(err, ErrDrainLimit) {
		t.Fatalf("expected ErrDrainLimit, got %v", err)
	}
}

func TestEffectQueueAssignsIDs(t *testing.T) {
	q := NewEffectQueue()
	id := q.Enqueue(QueuedEffect{})
	if id == "" {
		t.Fatalf("expected generated id")
	}
	if got := q.List()[0].ID; got != id {
		t.Fatalf("expected listed id %s, got %s", id, got)
	}
}
