package rules

import "sync"

// Watcher observes match events and accumulates state about them.
type Watcher interface {
	// Watch is called for every published event; watchers filter internally.
	Watch(event Event)
	// Key uniquely identifies the watcher within a registry.
	Key() string
}

// BaseWatcher provides key handling for watchers.
type BaseWatcher struct {
	key string
}

// NewBaseWatcher creates a base watcher with the given key.
func NewBaseWatcher(key string) *BaseWatcher {
	return &BaseWatcher{key: key}
}

// Key returns the unique key for this watcher.
func (bw *BaseWatcher) Key() string {
	return bw.key
}

// WatcherRegistry manages the watchers attached to a match.
type WatcherRegistry struct {
	mu       sync.RWMutex
	order    []string
	watchers map[string]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// Add registers a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) Add(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	key := watcher.Key()
	if _, ok := wr.watchers[key]; !ok {
		wr.order = append(wr.order, key)
	}
	wr.watchers[key] = watcher
}

// Notify forwards an event to every registered watcher in registration order.
func (wr *WatcherRegistry) Notify(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.order {
		wr.watchers[key].Watch(event)
	}
}
