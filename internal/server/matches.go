package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"go.uber.org/zap"
)

// MatchFactory builds engines from the catalog using the configured decks
// and heroes.
type MatchFactory struct {
	catalog  *catalog.Catalog
	cfg      config.GameConfig
	botDelay time.Duration
	recorder *game.ReplayRecorder
	logger   *zap.Logger
}

// NewMatchFactory creates a factory. recorder may be nil.
func NewMatchFactory(cat *catalog.Catalog, cfg config.GameConfig, botDelay time.Duration, recorder *game.ReplayRecorder, logger *zap.Logger) *MatchFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchFactory{
		catalog:  cat,
		cfg:      cfg,
		botDelay: botDelay,
		recorder: recorder,
		logger:   logger,
	}
}

// NewMatch builds a fresh engine. Extra options are applied last.
func (f *MatchFactory) NewMatch(extra ...game.Option) (*game.Engine, error) {
	seq := catalog.NewIDSequence(1)
	playerDeck, err := f.catalog.BuildDeck(f.cfg.PlayerDeck, seq)
	if err != nil {
		return nil, fmt.Errorf("player deck: %w", err)
	}
	botDeck, err := f.catalog.BuildDeck(f.cfg.BotDeck, seq)
	if err != nil {
		return nil, fmt.Errorf("bot deck: %w", err)
	}
	playerHero, err := f.hero(f.cfg.PlayerDeck, f.cfg.PlayerHero, f.cfg.PlayerPower)
	if err != nil {
		return nil, fmt.Errorf("player hero: %w", err)
	}
	botHero, err := f.hero(f.cfg.BotDeck, f.cfg.BotHero, f.cfg.BotPower)
	if err != nil {
		return nil, fmt.Errorf("bot hero: %w", err)
	}

	opts := []game.Option{
		game.WithLogger(f.logger),
		game.WithBotDelay(f.botDelay),
	}
	if f.cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(f.cfg.Seed))
	}
	if f.recorder != nil {
		opts = append(opts, game.WithReplayRecorder(f.recorder))
	}
	opts = append(opts, extra...)
	return game.NewEngine(playerDeck, botDeck, playerHero, botHero, opts...)
}

// hero uses the deck's registered hero and power unless overridden.
func (f *MatchFactory) hero(deckName, heroName, powerName string) (*entity.Hero, error) {
	deck, ok := f.catalog.Deck(deckName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownDeck, deckName)
	}
	if heroName == "" {
		heroName = deck.Hero
	}
	if powerName == "" {
		powerName = deck.HeroPower
	}
	return f.catalog.BuildHero(heroName, powerName)
}

// MatchInfo is a summary of a live match.
type MatchInfo struct {
	ID        string    `json:"id"`
	Remote    string    `json:"remote"`
	Started   time.Time `json:"started"`
	GameOver  bool      `json:"game_over"`
	PlayerWon bool      `json:"player_won"`
	Turn      int       `json:"turn"`
}

type liveMatch struct {
	engine  *game.Engine
	remote  string
	started time.Time
}

// MatchManager tracks the matches hosted by the server.
type MatchManager struct {
	matches map[string]*liveMatch
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMatchManager creates an empty manager.
func NewMatchManager(logger *zap.Logger) *MatchManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchManager{
		matches: make(map[string]*liveMatch),
		logger:  logger,
	}
}

// Add registers an engine under its match id.
func (m *MatchManager) Add(engine *game.Engine, remote string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.matches[engine.MatchID()] = &liveMatch{engine: engine, remote: remote, started: time.Now()}

	m.logger.Info("match registered",
		zap.String("match_id", engine.MatchID()),
		zap.String("remote", remote),
	)
}

// Get returns the engine for matchID.
func (m *MatchManager) Get(matchID string) (*game.Engine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	match, ok := m.matches[matchID]
	if !ok {
		return nil, false
	}
	return match.engine, true
}

// Remove forgets a match.
func (m *MatchManager) Remove(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.matches, matchID)

	m.logger.Info("match removed", zap.String("match_id", matchID))
}

// All returns a summary of every registered match.
func (m *MatchManager) All() []MatchInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]MatchInfo, 0, len(m.matches))
	for id, match := range m.matches {
		snap := match.engine.Snapshot()
		out = append(out, MatchInfo{
			ID:        id,
			Remote:    match.remote,
			Started:   match.started,
			GameOver:  snap.GameOver,
			PlayerWon: snap.PlayerWon,
			Turn:      snap.TurnNumber,
		})
	}
	return out
}

// ActiveCount returns the number of matches that have not ended.
func (m *MatchManager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, match := range m.matches {
		if !match.engine.Snapshot().GameOver {
			count++
		}
	}
	return count
}
