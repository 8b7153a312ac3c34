// Package game runs a single match: turns, mana, card play, combat and the
// ordered resolution of battlecries, deathrattles and spells.
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearthforge/hearthforge-go/internal/ai"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/mana"
	"github.com/hearthforge/hearthforge-go/internal/game/rules"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"github.com/hearthforge/hearthforge-go/internal/game/watchers"
	"go.uber.org/zap"
)

const (
	openingHandPlayer = 3
	openingHandBot    = 4
	maxLogLines       = 200
	maxCleanupPasses  = 64
)

// sideState is everything one participant owns.
type sideState struct {
	hero    *entity.Hero
	deck    []entity.Card
	hand    []entity.Card
	board   []*entity.Minion
	mana    mana.Pool
	fatigue int
}

// Engine owns the state of one match. Every public action holds the engine
// mutex for its whole duration.
type Engine struct {
	mu       sync.Mutex
	logger   *zap.Logger
	matchID  string
	seed     int64
	seeded   bool
	rng      *rand.Rand
	resolver *targeting.Resolver
	planner  *ai.Planner
	botDelay time.Duration
	recorder *ReplayRecorder

	turns    *rules.TurnManager
	queue    *rules.EffectQueue
	bus      *rules.EventBus
	watchers *rules.WatcherRegistry
	stats    *watchers.MatchStatsWatcher

	sides  [2]*sideState
	nextID int

	gameOver      bool
	playerWon     bool
	botTurnActive bool

	log []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSeed makes shuffles and random choices reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithPlanner replaces the bot planner.
func WithPlanner(planner *ai.Planner) Option {
	return func(e *Engine) {
		e.planner = planner
	}
}

// WithBotDelay sets the pause between bot actions.
func WithBotDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.botDelay = d
	}
}

// WithMatchID overrides the generated match id.
func WithMatchID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.matchID = id
		}
	}
}

// WithReplayRecorder records a snapshot after every successful action.
func WithReplayRecorder(recorder *ReplayRecorder) Option {
	return func(e *Engine) {
		e.recorder = recorder
	}
}

// NewEngine starts a match. Both decks are copied and shuffled, then the
// player draws three cards and the bot four.
func NewEngine(playerDeck, botDeck []entity.Card, playerHero, botHero *entity.Hero, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:   zap.NewNop(),
		matchID:  uuid.NewString(),
		turns:    rules.NewTurnManager(),
		queue:    rules.NewEffectQueue(),
		bus:      rules.NewEventBus(),
		watchers: rules.NewWatcherRegistry(),
		stats:    watchers.NewMatchStatsWatcher(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if len(playerDeck) == 0 || len(botDeck) == 0 {
		return nil, e.contractViolation(ErrEmptyDeck, zap.Int("player_deck", len(playerDeck)), zap.Int("bot_deck", len(botDeck)))
	}
	if playerHero == nil || botHero == nil {
		return nil, e.contractViolation(ErrNilHero)
	}
	seen := make(map[int]bool, len(playerDeck)+len(botDeck))
	for _, deck := range [][]entity.Card{playerDeck, botDeck} {
		for _, c := range deck {
			if seen[c.CardID()] {
				return nil, e.contractViolation(ErrDuplicateCardID, zap.Int("card_id", c.CardID()))
			}
			seen[c.CardID()] = true
		}
	}

	if !e.seeded {
		e.seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	e.resolver = targeting.NewResolver(e.rng)
	if e.planner == nil {
		e.planner = ai.NewPlanner(e.rng, e.logger.Named("planner"))
	}

	e.watchers.Add(e.stats)
	e.bus.Subscribe(e.watchers.Notify)

	e.sides[entity.SidePlayer] = newSideState(playerHero, playerDeck)
	e.sides[entity.SideBot] = newSideState(botHero, botDeck)
	for _, st := range e.sides {
		for _, c := range st.deck {
			if c.CardID() >= e.nextID {
				e.nextID = c.CardID() + 1
			}
		}
		e.rng.Shuffle(len(st.deck), func(i, j int) {
			st.deck[i], st.deck[j] = st.deck[j], st.deck[i]
		})
	}

	for i := 0; i < openingHandPlayer; i++ {
		e.drawLocked(entity.SidePlayer)
	}
	for i := 0; i < openingHandBot; i++ {
		e.drawLocked(entity.SideBot)
	}
	e.checkWinLocked()

	e.logger.Info("match started",
		zap.String("match_id", e.matchID),
		zap.Int64("seed", e.seed),
		zap.String("player_hero", playerHero.Name),
		zap.String("bot_hero", botHero.Name),
	)
	e.appendLog(fmt.Sprintf("%s vs %s", playerHero.Name, botHero.Name))

	if e.recorder != nil {
		e.recorder.StartRecording(e.matchID)
		e.recordLocked("start")
	}
	return e, nil
}

func newSideState(hero *entity.Hero, deck []entity.Card) *sideState {
	return &sideState{
		hero:  hero.Clone(),
		deck:  entity.CloneCards(deck),
		hand:  make([]entity.Card, 0, entity.MaxHandSize),
		board: make([]*entity.Minion, 0, entity.MaxBoardSize),
		mana:  mana.NewPool(),
	}
}

// MatchID identifies the match in logs and replays.
func (e *Engine) MatchID() string {
	return e.matchID
}

// Events returns the match event bus. Listeners run synchronously while the
// engine lock is held and must not call back into the engine.
func (e *Engine) Events() *rules.EventBus {
	return e.bus
}

// MatchStats holds the accumulated statistics of both sides.
type MatchStats struct {
	Player watchers.SideStats `json:"player"`
	Bot    watchers.SideStats `json:"bot"`
}

// Stats returns the statistics gathered so far.
func (e *Engine) Stats() MatchStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return MatchStats{
		Player: e.stats.For(entity.SidePlayer),
		Bot:    e.stats.For(entity.SideBot),
	}
}

// Log returns the most recent human readable game log lines.
func (e *Engine) Log() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

func (e *Engine) appendLog(line string) {
	e.log = append(e.log, line)
	if len(e.log) > maxLogLines {
		e.log = e.log[len(e.log)-maxLogLines:]
	}
}

func (e *Engine) publish(evt rules.Event) {
	e.bus.Publish(evt)
}

func (e *Engine) contractViolation(err error, fields ...zap.Field) error {
	fields = append([]zap.Field{zap.String("match_id", e.matchID), zap.Error(err)}, fields...)
	e.logger.Error("engine contract violation", fields...)
	return err
}

func (e *Engine) side(s entity.Side) *sideState {
	if !s.Valid() {
		return nil
	}
	return e.sides[s]
}

// checkActorLocked rejects actions that can never be taken by side right now.
func (e *Engine) checkActorLocked(side entity.Side) error {
	if !side.Valid() {
		return e.contractViolation(ErrUnknownSide, zap.Int("side", int(side)))
	}
	if e.gameOver {
		return ErrGameOver
	}
	if !e.turns.IsTurnOf(side) {
		return ErrNotYourTurn
	}
	return nil
}

func (e *Engine) recordLocked(action string) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordState(e.matchID, action, e.snapshotLocked())
}

// field exposes the boards to the targeting package.
type field struct {
	e *Engine
}

func (f field) BoardIDs(side entity.Side) []int {
	st := f.e.side(side)
	if st == nil {
		return nil
	}
	ids := make([]int, 0, len(st.board))
	for _, m := range st.board {
		// dead minions wait for cleanup but are no longer targets
		if m.Health > 0 {
			ids = append(ids, m.CardID())
		}
	}
	return ids
}

func (f field) MinionSide(id int) (entity.Side, bool) {
	for _, s := range []entity.Side{entity.SidePlayer, entity.SideBot} {
		if f.e.findMinion(s, id) >= 0 {
			return s, true
		}
	}
	return 0, false
}

// findMinion returns the board index of minion id on side, or -1.
func (e *Engine) findMinion(side entity.Side, id int) int {
	for i, m := range e.side(side).board {
		if m.CardID() == id {
			return i
		}
	}
	return -1
}

func (e *Engine) findInHand(side entity.Side, id int) int {
	for i, c := range e.side(side).hand {
		if c.CardID() == id {
			return i
		}
	}
	return -1
}

func (e *Engine) newTokenID() int {
	id := e.nextID
	e.nextID++
	return id
}
