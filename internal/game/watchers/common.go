package watchers

import (
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/rules"
)

// MatchStatsKey is the registry key of the match statistics watcher.
const MatchStatsKey = "MatchStatsWatcher"

// SideStats are the per-side counters a match accumulates.
type SideStats struct {
	CardsPlayed   int `json:"cards_played"`
	SpellsCast    int `json:"spells_cast"`
	MinionsLost   int `json:"minions_lost"`
	DamageDealt   int `json:"damage_dealt"`
	HeroPowerUses int `json:"hero_power_uses"`
	CardsDrawn    int `json:"cards_drawn"`
	CardsBurned   int `json:"cards_burned"`
	FatigueTaken  int `json:"fatigue_taken"`
}

// MatchStatsWatcher tracks per-side statistics for one match.
type MatchStatsWatcher struct {
	*rules.BaseWatcher
	stats map[entity.Side]*SideStats
}

// NewMatchStatsWatcher creates an empty statistics watcher.
func NewMatchStatsWatcher() *MatchStatsWatcher {
	w := &MatchStatsWatcher{
		BaseWatcher: rules.NewBaseWatcher(MatchStatsKey),
	}
	w.Reset()
	return w
}

// Watch implements the Watcher interface.
func (w *MatchStatsWatcher) Watch(event rules.Event) {
	s, ok := w.stats[event.Side]
	if !ok {
		return
	}
	switch event.Type {
	case rules.EventCardPlayed:
		s.CardsPlayed++
	case rules.EventSpellCast:
		s.SpellsCast++
	case rules.EventMinionDied:
		s.MinionsLost++
	case rules.EventDamageDealt:
		s.DamageDealt += event.Amount
	case rules.EventHeroPowerUsed:
		s.HeroPowerUses++
	case rules.EventCardDrawn:
		s.CardsDrawn++
	case rules.EventCardBurned:
		s.CardsBurned++
	case rules.EventFatigue:
		s.FatigueTaken += event.Amount
	}
}

// Reset clears the watcher's state.
func (w *MatchStatsWatcher) Reset() {
	w.stats = map[entity.Side]*SideStats{
		entity.SidePlayer: {},
		entity.SideBot:    {},
	}
}

// For returns a copy of the statistics of side.
func (w *MatchStatsWatcher) For(side entity.Side) SideStats {
	if s, ok := w.stats[side]; ok {
		return *s
	}
	return SideStats{}
}
