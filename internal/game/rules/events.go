package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// EventType indicates the category of a match event.
type EventType string

const (
	EventCardPlayed     EventType = "CARD_PLAYED"
	EventMinionSummoned EventType = "MINION_SUMMONED"
	EventSpellCast      EventType = "SPELL_CAST"
	EventBattlecry      EventType = "BATTLECRY"
	EventDeathrattle    EventType = "DEATHRATTLE"
	EventAttack         EventType = "ATTACK"
	EventDamageDealt    EventType = "DAMAGE_DEALT"
	EventHealed         EventType = "HEALED"
	EventArmorGained    EventType = "ARMOR_GAINED"
	EventMinionDied     EventType = "MINION_DIED"
	EventHeroPowerUsed  EventType = "HERO_POWER_USED"
	EventCardDrawn      EventType = "CARD_DRAWN"
	EventCardBurned     EventType = "CARD_BURNED"
	EventFatigue        EventType = "FATIGUE"
	EventTurnStarted    EventType = "TURN_STARTED"
	EventTurnEnded      EventType = "TURN_ENDED"
	EventGameOver       EventType = "GAME_OVER"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string
	Side        entity.Side // side that caused the event (or owns the affected object)
	SourceID    int         // card id of the source, 0 when none
	TargetID    int         // card id of the affected minion, 0 for heroes
	TargetSide  entity.Side
	TargetHero  bool
	Amount      int
	Description string
	Timestamp   time.Time
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
// Listeners live as long as the bus, which lives as long as its match.
type EventBus struct {
	mu             sync.RWMutex
	listeners      []Listener
	typedListeners map[EventType][]Listener
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		typedListeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers a listener for all events. Nil listeners are ignored.
func (bus *EventBus) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.listeners = append(bus.listeners, listener)
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) {
	if callback == nil {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], callback)
}

// Publish delivers the event to all registered listeners synchronously, in
// subscription order. Listeners must not subscribe from inside the callback.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, side entity.Side, sourceID int) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		Side:      side,
		SourceID:  sourceID,
		Timestamp: time.Now(),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, side entity.Side, sourceID, amount int) Event {
	evt := NewEvent(eventType, side, sourceID)
	evt.Amount = amount
	return evt
}
