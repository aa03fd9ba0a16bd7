package monitor

import (
	"github.com/rileyhilliard/hostdash/internal/errors"
)

// Action is what activating a menu option asks the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionShowSystemInfo
	ActionShowMemoryInfo
	ActionShowDiskInfo
	ActionShowGPUInfo
	ActionLiveCPUGraph
	ActionExit
)

// String returns a human-readable label for the action.
func (a Action) String() string {
	switch a {
	case ActionShowSystemInfo:
		return "system"
	case ActionShowMemoryInfo:
		return "memory"
	case ActionShowDiskInfo:
		return "disk"
	case ActionShowGPUInfo:
		return "gpu"
	case ActionLiveCPUGraph:
		return "cpu-graph"
	case ActionExit:
		return "exit"
	default:
		return "none"
	}
}

// MenuOption is a single menu entry.
type MenuOption struct {
	Label  string
	Action Action
}

// DefaultOptions returns the dashboard's main menu.
func DefaultOptions() []MenuOption {
	return []MenuOption{
		{Label: "System Info", Action: ActionShowSystemInfo},
		{Label: "Memory info", Action: ActionShowMemoryInfo},
		{Label: "Disk info", Action: ActionShowDiskInfo},
		{Label: "GPU info", Action: ActionShowGPUInfo},
		{Label: "CPU graph", Action: ActionLiveCPUGraph},
		{Label: "Exit", Action: ActionExit},
	}
}

// Input is a menu key event after translation from the terminal key.
type Input int

const (
	InputNone Input = iota
	InputUp
	InputDown
	InputFirst
	InputLast
	InputConfirm
)

// MenuState is the menu navigation state: the options and the selected index.
// It is a value; every transition returns a new MenuState and the selected
// index always stays within [0, len(options)-1]. Movement clamps at both ends.
type MenuState struct {
	options  []MenuOption
	selected int
}

// NewMenuState creates a menu positioned at the first option.
func NewMenuState(options []MenuOption) (MenuState, error) {
	if len(options) == 0 {
		return MenuState{}, errors.New(errors.ErrConfig,
			"Menu has no options",
			"Provide at least one menu option")
	}
	opts := make([]MenuOption, len(options))
	copy(opts, options)
	return MenuState{options: opts}, nil
}

// Options returns a copy of the option list.
func (m MenuState) Options() []MenuOption {
	opts := make([]MenuOption, len(m.options))
	copy(opts, m.options)
	return opts
}

// Len returns the number of options.
func (m MenuState) Len() int {
	return len(m.options)
}

// Selected returns the selected index.
func (m MenuState) Selected() int {
	return m.selected
}

// MoveUp selects the previous option; no-op at the top.
func (m MenuState) MoveUp() MenuState {
	if m.selected > 0 {
		m.selected--
	}
	return m
}

// MoveDown selects the next option; no-op at the bottom.
func (m MenuState) MoveDown() MenuState {
	if m.selected < len(m.options)-1 {
		m.selected++
	}
	return m
}

// First selects the first option.
func (m MenuState) First() MenuState {
	m.selected = 0
	return m
}

// Last selects the last option.
func (m MenuState) Last() MenuState {
	if len(m.options) > 0 {
		m.selected = len(m.options) - 1
	}
	return m
}

// Activate returns the selected option. The state is unchanged.
// A zero MenuState yields an option with ActionNone.
func (m MenuState) Activate() MenuOption {
	if m.selected < 0 || m.selected >= len(m.options) {
		return MenuOption{}
	}
	return m.options[m.selected]
}

// Apply runs one input through the state machine. activated is true only for
// InputConfirm, in which case opt is the selected option.
func (m MenuState) Apply(in Input) (next MenuState, opt MenuOption, activated bool) {
	switch in {
	case InputUp:
		return m.MoveUp(), MenuOption{}, false
	case InputDown:
		return m.MoveDown(), MenuOption{}, false
	case InputFirst:
		return m.First(), MenuOption{}, false
	case InputLast:
		return m.Last(), MenuOption{}, false
	case InputConfirm:
		return m, m.Activate(), true
	default:
		return m, MenuOption{}, false
	}
}
