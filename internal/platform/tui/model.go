package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// DefaultPlayer names the local player in run history and best scores.
const DefaultPlayer = "local"

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a game model.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; nil plays without persistence
	Player  string         // Best-score key and history name; empty means DefaultPlayer
	Logger  *log.Logger    // Optional; nil discards log output
}

// Model is the Bubble Tea model driving one flappy engine.
type Model struct {
	engine   *flappy.Engine
	bounds   flappy.Bounds
	screen   *core.Screen
	store    *storage.Store
	player   string
	tickRate int
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	quitting bool
}

// NewModel builds an engine from opts and wraps it in a model.
func NewModel(opts Options) (Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Player == "" {
		opts.Player = DefaultPlayer
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engineOpts := flappy.Options{
		World:  opts.Config.WorldGeometry(),
		Config: opts.Config,
		Logger: logger,
		Seed:   opts.Runtime.Seed,
	}
	if opts.Store != nil {
		engineOpts.Storage = storage.NewBestScores(opts.Store, opts.Player, logger)
	}

	engine, err := flappy.New(engineOpts)
	if err != nil {
		return Model{}, err
	}

	return Model{
		engine: engine,
		bounds: flappy.Bounds{
			World:         engine.World(),
			ObstacleWidth: engine.Config().Obstacles.Width,
		},
		screen:   core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		store:    opts.Store,
		player:   opts.Player,
		tickRate: opts.Runtime.TickRate,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		logger:   logger,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world never changes size; only the projection does.
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	switch cmd := m.keys.CommandFor(msg, m.engine.State()); cmd {
	case core.CommandNone:
	case core.CommandStart:
		// The press that starts a run is also its first flap.
		m.engine.HandleInput(core.CommandStart)
		m.engine.HandleInput(core.CommandJump)
	default:
		m.engine.HandleInput(cmd)
	}

	return m, nil
}

// handleTick advances the engine by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.engine.Advance()
	if result.Cause != flappy.CauseNone {
		m.recordRun(result.Cause)
	}
	return m, tickCmd(m.tickRate)
}

// recordRun appends the run that just ended to the history.
func (m Model) recordRun(cause flappy.EndCause) {
	snap := m.engine.Snapshot()
	m.logger.Info("run finished", "player", m.player, "score", snap.Score, "ticks", snap.Tick, "cause", cause)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(m.player, snap.Score, snap.Tick, cause.String()); err != nil {
		m.logger.Warn("could not record run", "player", m.player, "error", err)
	}
}

// finish settles an ended run so its best score is persisted before exit.
func (m Model) finish() {
	if m.engine.State() == flappy.StateEnded {
		m.engine.Reset()
	}
}

// Snapshot returns the current engine state.
func (m Model) Snapshot() flappy.Snapshot {
	return m.engine.Snapshot()
}

// Browsable reports whether the player can leave the game screen without
// losing a run in progress.
func (m Model) Browsable() bool {
	state := m.engine.State()
	return state == flappy.StateReady || state == flappy.StateEnded
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawSnapshot(m.screen, m.engine.Snapshot(), m.bounds)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a local Bubble Tea program for one player.
func Run(opts Options) error {
	session, err := NewSessionModel(opts)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	p := tea.NewProgram(session, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
