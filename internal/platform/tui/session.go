package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// SessionModel is the top-level model of one player's session: the game
// screen plus the run history, switched with tab while no run is active.
type SessionModel struct {
	game       Model
	scoreboard ScoreboardModel
	store      *storage.Store
	width      int
	height     int
	inScores   bool
	quitting   bool
}

// NewSessionModel creates a session whose game starts on the ready screen.
func NewSessionModel(opts Options) (SessionModel, error) {
	game, err := NewModel(opts)
	if err != nil {
		return SessionModel{}, err
	}
	return SessionModel{
		game:   game,
		store:  opts.Store,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}, nil
}

// Init starts the game clock.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update routes messages to the active screen. Ticks always reach the game so
// the clock keeps running while the scoreboard is shown.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.inScores {
			m.scoreboard = m.updateScoreboard(msg)
		}
		return m.updateGame(msg)

	case TickMsg:
		return m.updateGame(msg)

	case tea.KeyMsg:
		if m.inScores {
			return m.handleScoreboardKey(msg)
		}
		if key.Matches(msg, m.game.keys.Scores) && m.game.Browsable() {
			m.openScoreboard()
			return m, nil
		}
		return m.updateGame(msg)
	}

	return m, nil
}

// openScoreboard switches to the run history, reloading it from the store.
func (m *SessionModel) openScoreboard() {
	m.scoreboard = NewScoreboardModel(m.store, m.game.player, m.width, m.height)
	m.scoreboard.embedded = true
	m.inScores = true
}

// handleScoreboardKey processes keyboard input while the scoreboard is shown.
func (m SessionModel) handleScoreboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.game.finish()
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.inScores = false
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) ScoreboardModel {
	next, _ := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		return sb
	}
	return m.scoreboard
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}
	if m.game.quitting {
		m.quitting = true
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inScores {
		return m.scoreboard.View()
	}
	return m.game.View()
}
