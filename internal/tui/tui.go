// Package tui is a terminal front end for a single match against the bot.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

const (
	maxNotes     = 6
	redrawPeriod = 150 * time.Millisecond
)

type noteKind int

const (
	noteInput noteKind = iota
	noteError
	noteSystem
)

type note struct {
	text string
	kind noteKind
}

// Model is the Bubble Tea model for a match.
type Model struct {
	ctx    context.Context
	engine *game.Engine
	logger *zap.Logger

	viewport viewport.Model
	input    textinput.Model

	notes []note

	width      int
	height     int
	ready      bool
	quitting   bool
	botRunning bool
	announced  bool
}

// botTurnDoneMsg is sent when RunBotTurn returns.
type botTurnDoneMsg struct {
	err error
}

// redrawMsg repaints the board while the bot is acting.
type redrawMsg struct{}

// New creates a TUI model driving engine.
func New(ctx context.Context, engine *game.Engine, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 128
	ti.PromptStyle = styleInputPrompt
	ti.Placeholder = "type help"

	return Model{
		ctx:    ctx,
		engine: engine,
		logger: logger,
		input:  ti,
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, engine *game.Engine, logger *zap.Logger) error {
	m := New(ctx, engine, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, resizes and bot progress.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - boardHeight - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case redrawMsg:
		m.refreshViewport()
		if m.botRunning {
			return m, redraw()
		}
		return m, nil

	case botTurnDoneMsg:
		m.botRunning = false
		if msg.err != nil {
			m.logger.Warn("bot turn failed", zap.Error(msg.err))
			m = m.addNote(note{text: msg.err.Error(), kind: noteError})
		}
		m = m.checkGameOver()
		m.refreshViewport()
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter executes the submitted line against the engine.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m = m.addNote(note{text: "> " + input, kind: noteInput})

	c, err := parseCommand(input)
	if err != nil {
		m = m.addNote(note{text: err.Error(), kind: noteError})
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	switch c.kind {
	case cmdQuit:
		m.quitting = true
		return m, tea.Quit
	case cmdHelp:
		for _, line := range helpLines {
			m = m.addNote(note{text: line, kind: noteSystem})
		}
	default:
		cmd, err = m.execute(c)
		if err != nil {
			m = m.addNote(note{text: err.Error(), kind: noteError})
		}
		if cmd != nil {
			m.botRunning = true
		}
	}

	m = m.checkGameOver()
	m.refreshViewport()
	return m, cmd
}

// execute runs one game command for the player. A non-nil command is
// returned when the turn passed to the bot.
func (m Model) execute(c command) (tea.Cmd, error) {
	snap := m.engine.Snapshot()

	switch c.kind {
	case cmdPlay:
		target, err := resolveTarget(c.target, snap)
		if err != nil {
			return nil, err
		}
		return nil, m.engine.PlayCard(entity.SidePlayer, c.index, target)

	case cmdAttack:
		target, err := resolveTarget(c.target, snap)
		if err != nil {
			return nil, err
		}
		return nil, m.engine.Attack(entity.SidePlayer, c.index, *target)

	case cmdPower:
		target, err := resolveTarget(c.target, snap)
		if err != nil {
			return nil, err
		}
		return nil, m.engine.UseHeroPower(entity.SidePlayer, target)

	case cmdEnd:
		if err := m.engine.EndTurn(); err != nil {
			return nil, err
		}
		if m.engine.Snapshot().GameOver {
			return nil, nil
		}
		return tea.Batch(m.runBotTurn(), redraw()), nil
	}
	return nil, fmt.Errorf("unsupported command")
}

func (m Model) runBotTurn() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		return botTurnDoneMsg{err: engine.RunBotTurn(ctx)}
	}
}

func redraw() tea.Cmd {
	return tea.Tick(redrawPeriod, func(time.Time) tea.Msg { return redrawMsg{} })
}

func (m Model) checkGameOver() Model {
	snap := m.engine.Snapshot()
	if !snap.GameOver || m.announced {
		return m
	}
	m.announced = true
	stats := m.engine.Stats()
	result := "Defeat."
	if snap.PlayerWon {
		result = "Victory!"
	}
	m = m.addNote(note{text: fmt.Sprintf("%s Turn %d, you dealt %d damage and played %d cards. Type quit to leave.",
		result, snap.TurnNumber, stats.Player.DamageDealt, stats.Player.CardsPlayed), kind: noteSystem})
	return m
}

func (m Model) addNote(n note) Model {
	m.notes = append(m.notes, n)
	if len(m.notes) > maxNotes {
		m.notes = m.notes[len(m.notes)-maxNotes:]
	}
	return m
}

// refreshViewport rebuilds the log pane from the engine log followed by the
// most recent local notes.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var styled []string
	for _, line := range m.engine.Log() {
		styled = append(styled, styleLog.Render(line))
	}
	if len(m.notes) > 0 {
		styled = append(styled, "")
	}
	for _, n := range m.notes {
		switch n.kind {
		case noteError:
			styled = append(styled, styleError.Render(n.text))
		case noteSystem:
			if m.announced && strings.HasPrefix(n.text, "Victory") {
				styled = append(styled, styleVictory.Render(n.text))
			} else {
				styled = append(styled, styleSystem.Render(n.text))
			}
		default:
			styled = append(styled, styleInputPrompt.Render(n.text))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the board, the log pane, the status bar and the input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	board := renderBoard(m.engine.Snapshot(), m.width)
	return board + "\n" + m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap leaves the arrow keys to the text input.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
}
