package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/config"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// wireState decodes the parts of a snapshot the tests look at.
type wireState struct {
	MatchID           string      `json:"match_id"`
	CurrentTurn       entity.Side `json:"current_turn"`
	TurnNumber        int         `json:"turn_number"`
	GameOver          bool        `json:"game_over"`
	BotTurnInProgress bool        `json:"bot_turn_in_progress"`
	Player            struct {
		Hand    []json.RawMessage `json:"hand"`
		Mana    int               `json:"mana"`
		MaxMana int               `json:"max_mana"`
	} `json:"player"`
	Bot struct {
		DeckSize int `json:"deck_size"`
	} `json:"bot"`
}

type wireMessage struct {
	Type   string     `json:"type"`
	Reason string     `json:"reason"`
	State  *wireState `json:"state"`
	Log    []string   `json:"log"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.BotDelay = 0
	cfg.Game.Seed = 11
	cfg.Replay.Dir = t.TempDir()

	srv := New(cfg, cat, zaptest.NewLogger(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestConnectionStartsMatch(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)

	msg := read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	require.NotNil(t, msg.State)
	assert.Equal(t, entity.SidePlayer, msg.State.CurrentTurn)
	assert.Len(t, msg.State.Player.Hand, 3)
	assert.Equal(t, 1, msg.State.Player.MaxMana)
	assert.Equal(t, 26, msg.State.Bot.DeckSize)
	assert.NotEmpty(t, msg.Log)

	_, ok := srv.Matches().Get(msg.State.MatchID)
	assert.True(t, ok)
	assert.Equal(t, 1, srv.Matches().ActiveCount())
}

func TestRuleViolationIsReportedAndNonFatal(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	read(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgPlayCard, HandIndex: 9}))
	msg := read(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.NotEmpty(t, msg.Reason)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "shuffle"}))
	msg = read(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Reason, "shuffle")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = read(t, conn)
	assert.Equal(t, MsgError, msg.Type)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgState}))
	msg = read(t, conn)
	assert.Equal(t, MsgState, msg.Type)
}

func TestEndTurnRunsBot(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	first := read(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgEndTurn}))

	msg := read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	assert.Equal(t, entity.SideBot, msg.State.CurrentTurn)

	msg = read(t, conn)
	require.Equal(t, MsgState, msg.Type)
	assert.Equal(t, entity.SidePlayer, msg.State.CurrentTurn)
	assert.False(t, msg.State.BotTurnInProgress)
	assert.Equal(t, first.State.TurnNumber+1, msg.State.TurnNumber)
	assert.Equal(t, 2, msg.State.Player.MaxMana)
	assert.Len(t, msg.State.Player.Hand, 4)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMatchFactoryUsesDeckHeroes(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	f := NewMatchFactory(cat, config.GameConfig{
		Seed:       3,
		PlayerDeck: "Warrior Basics",
		BotDeck:    "Mage Basics",
		BotPower:   "Lesser Heal",
	}, 0, nil, zaptest.NewLogger(t))

	engine, err := f.NewMatch()
	require.NoError(t, err)
	snap := engine.Snapshot()
	assert.Equal(t, "Garrosh", snap.Player.Hero.Name)
	assert.Equal(t, "Armor Up!", snap.Player.Hero.Power.Name)
	assert.Equal(t, "Jaina", snap.Bot.Hero.Name)
	assert.Equal(t, "Lesser Heal", snap.Bot.Hero.Power.Name)

	bad := NewMatchFactory(cat, config.GameConfig{PlayerDeck: "Nope", BotDeck: "Mage Basics"}, 0, nil, nil)
	_, err = bad.NewMatch()
	assert.ErrorIs(t, err, catalog.ErrUnknownDeck)
}
