package rules

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// maxDrainSteps bounds a single drain. Boards and hands are bounded, so a
// legitimate chain of triggers never comes close.
const maxDrainSteps = 512

// ErrDrainLimit is returned when a drain does not reach a fixed point.
var ErrDrainLimit = errors.New("effect queue did not settle")

// QueuedEffectKind describes where a queued effect came from.
type QueuedEffectKind string

const (
	QueuedBattlecry   QueuedEffectKind = "BATTLECRY"
	QueuedDeathrattle QueuedEffectKind = "DEATHRATTLE"
	QueuedSpell       QueuedEffectKind = "SPELL"
	QueuedHeroPower   QueuedEffectKind = "HERO_POWER"
)

// QueuedEffect is one pending effect resolution.
type QueuedEffect struct {
	ID          string
	Controller  entity.Side
	Kind        QueuedEffectKind
	SourceID    int
	Description string
	Resolve     func() error
}

// EffectQueue orders effect resolution first-in first-out. Effects enqueued
// while draining run after everything already waiting.
type EffectQueue struct {
	mu    sync.Mutex
	items []QueuedEffect
}

// NewEffectQueue creates an empty queue.
func NewEffectQueue() *EffectQueue {
	return &EffectQueue{
		items: make([]QueuedEffect, 0, 8),
	}
}

// Enqueue appends an item to the back of the queue and returns its id.
func (q *EffectQueue) Enqueue(item QueuedEffect) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	q.items = append(q.items, item)
	return item.ID
}

// Dequeue removes the front item.
func (q *EffectQueue) Dequeue() (QueuedEffect, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return QueuedEffect{}, false
	}
	item := q.items[0]
	q.items[0] = QueuedEffect{}
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of waiting items.
func (q *EffectQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// List returns a copy of the waiting items, front first.
func (q *EffectQueue) List() []QueuedEffect {
	q.mu.Lock()
	defer q.mu.Unlock()
	cpy := make([]QueuedEffect, len(q.items))
	copy(cpy, q.items)
	return cpy
}

// Clear drops every waiting item.
func (q *EffectQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
}

// Drain resolves items until the queue is empty. Resolve runs without the
// queue lock held so it may enqueue follow-ups. The first resolution error
// stops the drain and the remaining items are discarded.
func (q *EffectQueue) Drain() error {
	for steps := 0; ; steps++ {
		if steps >= maxDrainSteps {
			q.Clear()
			return ErrDrainLimit
		}
		item, ok := q.Dequeue()
		if !ok {
			return nil
		}
		if item.Resolve == nil {
			continue
		}
		if err := item.Resolve(); err != nil {
			q.Clear()
			return fmt.Errorf("resolve %s from #%d: %w", item.Kind, item.SourceID, err)
		}
	}
}
