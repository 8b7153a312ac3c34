package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hearthforge/hearthforge-go/internal/catalog"
	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	seq := catalog.NewIDSequence(1)
	playerDeck, err := cat.BuildDeck("Mage Basics", seq)
	require.NoError(t, err)
	botDeck, err := cat.BuildDeck("Warrior Basics", seq)
	require.NoError(t, err)
	playerHero, err := cat.BuildDeckHero("Mage Basics")
	require.NoError(t, err)
	botHero, err := cat.BuildDeckHero("Warrior Basics")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	engine, err := game.NewEngine(playerDeck, botDeck, playerHero, botHero,
		game.WithSeed(5), game.WithLogger(logger))
	require.NoError(t, err)

	m := New(context.Background(), engine, logger)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func submit(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  command
	}{
		{"play 1", command{kind: cmdPlay, index: 0}},
		{"PLAY 3 face", command{kind: cmdPlay, index: 2, target: "face"}},
		{"p 2 e1", command{kind: cmdPlay, index: 1, target: "e1"}},
		{"attack 1 face", command{kind: cmdAttack, index: 0, target: "face"}},
		{"a 2 e3", command{kind: cmdAttack, index: 1, target: "e3"}},
		{"power", command{kind: cmdPower}},
		{"hp f1", command{kind: cmdPower, target: "f1"}},
		{"end", command{kind: cmdEnd}},
		{"  quit  ", command{kind: cmdQuit}},
		{"?", command{kind: cmdHelp}},
	}
	for _, tt := range tests {
		got, err := parseCommand(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, input := range []string{"", "dance", "play", "play 0", "play x", "attack 1", "power a b", "play 1 face extra"} {
		_, err := parseCommand(input)
		assert.Error(t, err, input)
	}
}

func TestResolveTarget(t *testing.T) {
	snap := game.Snapshot{
		Player: game.SideView{Board: []*entity.Minion{entity.NewMinion(11, "Wisp", 0, 1, 1)}},
		Bot: game.SideView{Board: []*entity.Minion{
			entity.NewMinion(21, "Yeti", 4, 4, 5),
			entity.NewMinion(22, "Raptor", 2, 3, 2),
		}},
	}

	tests := []struct {
		token string
		want  *targeting.Target
	}{
		{"", nil},
		{"face", ptr(targeting.HeroTarget(entity.SideBot))},
		{"me", ptr(targeting.HeroTarget(entity.SidePlayer))},
		{"e2", ptr(targeting.MinionTarget(entity.SideBot, 22))},
		{"f1", ptr(targeting.MinionTarget(entity.SidePlayer, 11))},
	}
	for _, tt := range tests {
		got, err := resolveTarget(tt.token, snap)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}

	for _, bad := range []string{"e3", "f2", "x1", "e", "ezz"} {
		_, err := resolveTarget(bad, snap)
		assert.Error(t, err, bad)
	}
}

func ptr(t targeting.Target) *targeting.Target { return &t }

func TestViewShowsHeroesAndStatus(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "Jaina")
	assert.Contains(t, view, "Garrosh")
	assert.Contains(t, view, "Fireblast")
	assert.Contains(t, view, "Your turn")
	assert.Contains(t, view, "Mana 1/1")
}

func TestViewBeforeResize(t *testing.T) {
	m := New(context.Background(), newTestModel(t).engine, nil)
	assert.Equal(t, "Loading...", m.View())
}

func TestHandleEnterQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := submit(t, m, "quit")

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestHandleEnterHelpAndUnknown(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submit(t, m, "help")
	assert.Nil(t, cmd)
	assert.Contains(t, m.viewport.View(), "end your turn")

	m, _ = submit(t, m, "dance")
	last := m.notes[len(m.notes)-1]
	assert.Equal(t, noteError, last.kind)
	assert.Contains(t, last.text, "dance")
}

func TestRuleViolationBecomesNote(t *testing.T) {
	m := newTestModel(t)

	// Fireblast costs 2 and the player starts with 1 mana.
	m, cmd := submit(t, m, "power face")
	assert.Nil(t, cmd)
	last := m.notes[len(m.notes)-1]
	assert.Equal(t, noteError, last.kind)

	m, _ = submit(t, m, "play 9")
	last = m.notes[len(m.notes)-1]
	assert.Equal(t, noteError, last.kind)

	assert.Equal(t, 30, m.engine.Snapshot().Bot.Hero.Health)
}

func TestEndTurnRunsBotAsCommand(t *testing.T) {
	m := newTestModel(t)
	before := m.engine.Snapshot().TurnNumber

	cmd, err := m.execute(command{kind: cmdEnd})
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, entity.SideBot, m.engine.Snapshot().CurrentTurn)

	msg := m.runBotTurn()()
	done, ok := msg.(botTurnDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	m.botRunning = true
	updated, _ := m.Update(done)
	m = updated.(Model)
	assert.False(t, m.botRunning)

	snap := m.engine.Snapshot()
	assert.Equal(t, entity.SidePlayer, snap.CurrentTurn)
	assert.Equal(t, before+1, snap.TurnNumber)
	assert.Equal(t, 2, snap.Player.MaxMana)
}

func TestStatusBarFillsWidth(t *testing.T) {
	m := newTestModel(t)
	bar := m.renderStatusBar()
	assert.True(t, strings.Contains(bar, "T:1"), bar)
	assert.Contains(t, bar, "You 30")
	assert.Contains(t, bar, "Enemy 30")
}
