package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the session's current screen.
type Mode int

const (
	ModeMenu Mode = iota
	ModeDetail
	ModeGraph
)

// String returns a human-readable label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeDetail:
		return "detail"
	case ModeGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// Key bindings as constants for consistency.
const (
	KeyQuit        = "ctrl+c"
	KeyBack        = "q"
	KeyBackAlt     = "esc"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeySelectFirst = "home"
	KeySelectLast  = "end"
	KeyConfirm     = "enter"
	KeyToggleHelp  = "?"
)

// keyMap holds the session's bindings. It satisfies help.KeyMap.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys(KeySelectPrev, KeySelectPrevK),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys(KeySelectNext, KeySelectNextJ),
		key.WithHelp("↓/j", "down"),
	),
	First: key.NewBinding(
		key.WithKeys(KeySelectFirst),
		key.WithHelp("home", "first"),
	),
	Last: key.NewBinding(
		key.WithKeys(KeySelectLast),
		key.WithHelp("end", "last"),
	),
	Select: key.NewBinding(
		key.WithKeys(KeyConfirm),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys(KeyBack, KeyBackAlt),
		key.WithHelp("q/esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys(KeyToggleHelp),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys(KeyQuit),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// menuInput translates a terminal key into a menu input.
func menuInput(msg tea.KeyMsg) Input {
	switch {
	case key.Matches(msg, keys.Up):
		return InputUp
	case key.Matches(msg, keys.Down):
		return InputDown
	case key.Matches(msg, keys.First):
		return InputFirst
	case key.Matches(msg, keys.Last):
		return InputLast
	case key.Matches(msg, keys.Select):
		return InputConfirm
	default:
		return InputNone
	}
}

// HandleKeyMsg processes keyboard input for the current mode and returns the
// next session state.
func (s Session) HandleKeyMsg(msg tea.KeyMsg) (Session, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		s.quitting = true
		return s, tea.Quit
	}

	switch s.mode {
	case ModeDetail:
		// Any key dismisses a detail view. While it is loading only back does.
		if s.detail != nil && s.detail.loading && !key.Matches(msg, keys.Back) {
			return s, nil
		}
		return s.toMenu(), nil

	case ModeGraph:
		if key.Matches(msg, keys.Back) {
			return s.toMenu(), nil
		}
		return s, nil
	}

	if key.Matches(msg, keys.Help) {
		s.help.ShowAll = !s.help.ShowAll
		return s, nil
	}

	menu, opt, activated := s.menu.Apply(menuInput(msg))
	s.menu = menu
	if !activated {
		return s, nil
	}
	return s.activate(opt)
}
