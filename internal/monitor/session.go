package monitor

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/screen"
)

// Defaults for Options fields left zero.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultInterval = time.Second
	DefaultWidth    = 80
	DefaultHeight   = 24
)

// Graph labels for the live CPU plot.
const (
	GraphXLabel = "Time"
	GraphYLabel = "CPU %"
)

// Options configures a Session.
type Options struct {
	Provider metrics.Provider
	// Menu defaults to DefaultOptions().
	Menu  []MenuOption
	Theme Theme
	// Timeout bounds each detail read.
	Timeout time.Duration
	// Interval is the live graph sampling cadence.
	Interval     time.Duration
	StartInGraph bool
	Log          logger.Logger
}

// liveGraph is the state of a running CPU plot. Its series is discarded when
// the session leaves graph mode.
type liveGraph struct {
	series *Series
	next   int
	err    error
}

// Session is the Bubble Tea model driving the dashboard. It is a value:
// every Update returns the next session and the previous one is discarded.
type Session struct {
	provider metrics.Provider
	log      logger.Logger
	menu     MenuState
	mode     Mode
	detail   *detailView
	graph    *liveGraph

	// gen identifies the current screen. Results from commands started for an
	// earlier screen carry an older gen and are dropped.
	gen int

	width    int
	height   int
	timeout  time.Duration
	interval time.Duration
	styles   screen.Styles
	help     help.Model
	quitting bool
}

// detailMsg carries the result of a detail read.
type detailMsg struct {
	gen  int
	view detailView
}

// graphTickMsg fires once per sampling interval while a graph is shown.
type graphTickMsg struct {
	gen int
	at  time.Time
}

// cpuSampleMsg carries one CPU reading.
type cpuSampleMsg struct {
	gen   int
	tick  int
	value float64
	err   error
}

// NewSession creates a session showing the menu, or the live graph when
// opts.StartInGraph is set.
func NewSession(opts Options) (Session, error) {
	if opts.Provider == nil {
		return Session{}, errors.New(errors.ErrConfig,
			"No metrics provider configured",
			"This is a bug: the dashboard needs a provider to read host metrics")
	}

	options := opts.Menu
	if options == nil {
		options = DefaultOptions()
	}
	menu, err := NewMenuState(options)
	if err != nil {
		return Session{}, err
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}

	s := Session{
		provider: opts.Provider,
		log:      opts.Log,
		menu:     menu,
		mode:     ModeMenu,
		width:    DefaultWidth,
		height:   DefaultHeight,
		timeout:  opts.Timeout,
		interval: opts.Interval,
		styles:   opts.Theme.Styles(),
		help:     newHelp(),
	}
	if opts.StartInGraph {
		s = s.enterGraph()
	}
	return s, nil
}

// Mode returns the current screen.
func (s Session) Mode() Mode {
	return s.mode
}

// Menu returns the menu state. It is preserved across detail and graph screens.
func (s Session) Menu() MenuState {
	return s.menu
}

// Series returns the live graph samples, or nil outside graph mode.
func (s Session) Series() *Series {
	if s.graph == nil {
		return nil
	}
	return s.graph.series
}

// Quitting reports whether the session has asked the program to exit.
func (s Session) Quitting() bool {
	return s.quitting
}

// Init starts sampling when the session opens on the live graph.
func (s Session) Init() tea.Cmd {
	if s.mode == ModeGraph {
		return s.graphStartCmd()
	}
	return nil
}

// Update handles messages and returns the next session state.
func (s Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.HandleKeyMsg(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width

	case detailMsg:
		if msg.gen != s.gen || s.mode != ModeDetail {
			s.log.Debug("dropping stale %s result", msg.view.action)
			return s, nil
		}
		view := msg.view
		s.detail = &view

	case graphTickMsg:
		if msg.gen != s.gen || s.graph == nil || s.graph.err != nil {
			return s, nil
		}
		tick := s.graph.next
		s.graph.next++
		return s, tea.Batch(s.graphTickCmd(), s.sampleCmd(tick))

	case cpuSampleMsg:
		if msg.gen != s.gen || s.graph == nil {
			return s, nil
		}
		if msg.err != nil {
			s.log.Error("cpu sampling stopped: %v", msg.err)
			s.graph.err = msg.err
			return s, nil
		}
		if latest, ok := s.graph.series.Latest(); ok && msg.tick <= latest.Tick {
			return s, nil
		}
		s.graph.series.Push(msg.tick, roundTenth(msg.value))
	}

	return s, nil
}

// View renders the current screen as a full frame.
func (s Session) View() string {
	if s.quitting {
		return ""
	}

	buf := screen.NewBuffer(s.height, s.width)
	switch s.mode {
	case ModeDetail:
		if s.detail != nil {
			drawDetail(buf, s.detail)
		}
	case ModeGraph:
		if s.graph != nil {
			drawGraph(buf, s.graph)
		}
	default:
		drawMenu(buf, s.menu, s.help.View(keys))
	}
	return buf.Render(s.styles)
}

// activate performs the action of a confirmed menu option.
func (s Session) activate(opt MenuOption) (Session, tea.Cmd) {
	s.log.Debug("menu: %s", opt.Action)

	switch opt.Action {
	case ActionExit:
		s.quitting = true
		return s, tea.Quit
	case ActionLiveCPUGraph:
		s = s.enterGraph()
		return s, s.graphStartCmd()
	case ActionShowSystemInfo, ActionShowMemoryInfo, ActionShowDiskInfo, ActionShowGPUInfo:
		s.gen++
		s.mode = ModeDetail
		s.detail = loadingView(opt.Action)
		s.graph = nil
		return s, s.fetchCmd(opt.Action)
	default:
		return s, nil
	}
}

func (s Session) enterGraph() Session {
	s.gen++
	s.mode = ModeGraph
	s.detail = nil
	s.graph = &liveGraph{series: NewSeries(DefaultCapacity)}
	return s
}

// toMenu returns to the menu with the selection unchanged.
func (s Session) toMenu() Session {
	s.gen++
	s.mode = ModeMenu
	s.detail = nil
	s.graph = nil
	return s
}

// fetchCmd reads one detail view off the UI goroutine.
func (s Session) fetchCmd(action Action) tea.Cmd {
	provider, timeout, log, gen := s.provider, s.timeout, s.log, s.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		view := readDetail(ctx, provider, action)
		if view.err != nil {
			log.Warn("%s info: %v", action, view.err)
		}
		return detailMsg{gen: gen, view: view}
	}
}

// graphStartCmd primes the CPU counters and schedules the first tick, so the
// first plotted sample covers a full interval.
func (s Session) graphStartCmd() tea.Cmd {
	provider, timeout := s.provider, s.timeout
	prime := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, _ = provider.CPUPercent(ctx)
		return nil
	}
	return tea.Batch(prime, s.graphTickCmd())
}

func (s Session) graphTickCmd() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return graphTickMsg{gen: gen, at: t}
	})
}

func (s Session) sampleCmd(tick int) tea.Cmd {
	provider, timeout, gen := s.provider, s.timeout, s.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		v, err := provider.CPUPercent(ctx)
		return cpuSampleMsg{gen: gen, tick: tick, value: v, err: err}
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
