// Package server hosts matches over WebSocket. Every connection plays its
// own match against the bot.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"go.uber.org/zap"
)

const (
	writeWait   = 10 * time.Second
	sendBuffer  = 32
	maxReadSize = 64 << 10
)

// Inbound message types.
const (
	MsgPlayCard  = "play_card"
	MsgAttack    = "attack"
	MsgHeroPower = "hero_power"
	MsgEndTurn   = "end_turn"
	MsgState     = "state"
)

// Outbound message types.
const (
	MsgError    = "error"
	MsgGameOver = "game_over"
)

// ClientMessage is a request from the client.
type ClientMessage struct {
	Type          string            `json:"type"`
	HandIndex     int               `json:"hand_index,omitempty"`
	AttackerIndex int               `json:"attacker_index,omitempty"`
	Target        *targeting.Target `json:"target,omitempty"`
}

// ServerMessage is pushed to the client.
type ServerMessage struct {
	Type   string           `json:"type"`
	Reason string           `json:"reason,omitempty"`
	State  *game.Snapshot   `json:"state,omitempty"`
	Log    []string         `json:"log,omitempty"`
	Stats  *game.MatchStats `json:"stats,omitempty"`
	Replay string           `json:"replay,omitempty"`
}

// Server is the WebSocket match host.
type Server struct {
	cfg      config.ServerConfig
	factory  *MatchFactory
	recorder *game.ReplayRecorder
	matches  *MatchManager
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a server hosting matches built from cat.
func New(cfg *config.Config, cat *catalog.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	var recorder *game.ReplayRecorder
	if cfg.Replay.Enabled {
		recorder = game.NewReplayRecorder(logger.Named("replay"), cfg.Replay.Dir)
	}
	return &Server{
		cfg:      cfg.Server,
		factory:  NewMatchFactory(cat, cfg.Game, cfg.Server.BotDelay, recorder, logger.Named("match")),
		recorder: recorder,
		matches:  NewMatchManager(logger),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Matches exposes the live match registry.
func (s *Server) Matches() *MatchManager {
	return s.matches
}

// Handler returns the HTTP routes: /ws, /healthz and /matches.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":         "ok",
			"active_matches": s.matches.ActiveCount(),
		})
	})
	mux.HandleFunc("/matches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.matches.All())
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting WebSocket server", zap.String("address", s.cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type client struct {
	conn   *websocket.Conn
	send   chan ServerMessage
	engine *game.Engine
	logger *zap.Logger
	saved  bool
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	engine, err := s.factory.NewMatch()
	if err != nil {
		s.logger.Error("failed to create match", zap.Error(err))
		_ = conn.WriteJSON(ServerMessage{Type: MsgError, Reason: err.Error()})
		_ = conn.Close()
		return
	}
	s.matches.Add(engine, r.RemoteAddr)

	c := &client{
		conn:   conn,
		send:   make(chan ServerMessage, sendBuffer),
		engine: engine,
		logger: s.logger.With(zap.String("match_id", engine.MatchID())),
	}

	ctx, cancel := context.WithCancel(r.Context())
	go c.writePump()
	c.pushState()
	s.readPump(ctx, c)
	cancel()
}

func (s *Server) readPump(ctx context.Context, c *client) {
	defer func() {
		close(c.send)
		s.matches.Remove(c.engine.MatchID())
		if s.recorder != nil && !c.saved {
			s.recorder.ClearReplay(c.engine.MatchID())
		}
	}()
	c.conn.SetReadLimit(maxReadSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.push(ServerMessage{Type: MsgError, Reason: fmt.Sprintf("malformed message: %v", err)})
			continue
		}
		s.handleMessage(ctx, c, msg)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) handleMessage(ctx context.Context, c *client, msg ClientMessage) {
	c.logger.Debug("received message", zap.String("type", msg.Type))

	var err error
	switch msg.Type {
	case MsgPlayCard:
		err = c.engine.PlayCard(entity.SidePlayer, msg.HandIndex, msg.Target)
	case MsgAttack:
		if msg.Target == nil {
			err = errors.New("attack needs a target")
			break
		}
		err = c.engine.Attack(entity.SidePlayer, msg.AttackerIndex, *msg.Target)
	case MsgHeroPower:
		err = c.engine.UseHeroPower(entity.SidePlayer, msg.Target)
	case MsgEndTurn:
		err = c.engine.EndTurn()
		if err == nil && !c.engine.Snapshot().GameOver {
			c.pushState()
			err = c.engine.RunBotTurn(ctx)
		}
	case MsgState:
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	if err != nil {
		if !game.IsRuleViolation(err) {
			c.logger.Warn("request failed", zap.String("type", msg.Type), zap.Error(err))
		}
		c.push(ServerMessage{Type: MsgError, Reason: err.Error()})
		return
	}
	c.pushState()
	s.finishIfOver(c)
}

// push drops the message when the writer has fallen behind.
func (c *client) push(msg ServerMessage) {
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("dropping message for slow client", zap.String("type", msg.Type))
	}
}

func (c *client) pushState() {
	snap := c.engine.Snapshot()
	c.push(ServerMessage{Type: MsgState, State: &snap, Log: c.engine.Log()})
}

func (s *Server) finishIfOver(c *client) {
	snap := c.engine.Snapshot()
	if !snap.GameOver || c.saved {
		return
	}
	c.saved = true

	stats := c.engine.Stats()
	msg := ServerMessage{Type: MsgGameOver, State: &snap, Stats: &stats}
	if s.recorder != nil {
		path, err := s.recorder.SaveReplay(c.engine.MatchID())
		if err != nil {
			c.logger.Error("failed to save replay", zap.Error(err))
		} else {
			msg.Replay = path
		}
	}
	c.logger.Info("match finished", zap.Bool("player_won", snap.PlayerWon), zap.Int("turn", snap.TurnNumber))
	c.push(msg)
}
