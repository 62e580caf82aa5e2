package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// KeyMap defines the key bindings for a game session.
// It centralizes bindings so they can be shown in help and tested.
type KeyMap struct {
	Flap   key.Binding
	Pause  key.Binding
	Reset  key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Pause, k.Reset, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Pause, k.Reset},
		{k.Scores, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "flap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "again"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CommandFor translates a key press into the engine command that makes
// sense in the given run state. Keys with no meaning there map to CommandNone.
func (k KeyMap) CommandFor(msg tea.KeyMsg, state flappy.RunState) core.Command {
	switch {
	case key.Matches(msg, k.Flap):
		switch state {
		case flappy.StateReady:
			return core.CommandStart
		case flappy.StateRunning:
			return core.CommandJump
		}
	case key.Matches(msg, k.Pause):
		switch state {
		case flappy.StateRunning:
			return core.CommandSuspend
		case flappy.StateSuspended:
			return core.CommandResume
		}
	case key.Matches(msg, k.Reset):
		if state == flappy.StateEnded {
			return core.CommandReset
		}
	}
	return core.CommandNone
}
