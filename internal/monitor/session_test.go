package monitor

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// fakeProvider serves canned snapshots and records CPU reads.
type fakeProvider struct {
	mu       sync.Mutex
	system   metrics.SystemInfo
	memory   metrics.MemoryInfo
	disk     metrics.DiskInfo
	gpu      metrics.GPUInfo
	cpu      float64
	err      error
	cpuErr   error
	cpuCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		system: metrics.SystemInfo{
			Name:         "Linux",
			Release:      "6.8.0",
			Version:      "ubuntu 24.04",
			Architecture: "x86_64",
			Hostname:     "devbox",
			Uptime:       26*time.Hour + 5*time.Minute,
		},
		memory: metrics.MemoryInfo{
			TotalBytes:     16 << 30,
			AvailableBytes: 4 << 30,
			UsedPercent:    75,
		},
		disk: metrics.DiskInfo{
			Path:        "/",
			TotalBytes:  500 << 30,
			UsedBytes:   100 << 30,
			FreeBytes:   400 << 30,
			UsedPercent: 20,
		},
		cpu: 12.345,
	}
}

func (f *fakeProvider) SystemInfo(context.Context) (metrics.SystemInfo, error) {
	return f.system, f.err
}

func (f *fakeProvider) MemoryInfo(context.Context) (metrics.MemoryInfo, error) {
	return f.memory, f.err
}

func (f *fakeProvider) DiskInfo(context.Context) (metrics.DiskInfo, error) {
	return f.disk, f.err
}

func (f *fakeProvider) GPUInfo(context.Context) (metrics.GPUInfo, error) {
	return f.gpu, f.err
}

func (f *fakeProvider) CPUPercent(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cpuCalls++
	return f.cpu, f.cpuErr
}

func newTestSession(t *testing.T, p metrics.Provider) Session {
	t.Helper()
	s, err := NewSession(Options{Provider: p})
	require.NoError(t, err)
	return s
}

func update(t *testing.T, s Session, msg tea.Msg) (Session, tea.Cmd) {
	t.Helper()
	m, cmd := s.Update(msg)
	next, ok := m.(Session)
	require.True(t, ok)
	return next, cmd
}

func press(t *testing.T, s Session, k tea.KeyType) (Session, tea.Cmd) {
	t.Helper()
	return update(t, s, tea.KeyMsg{Type: k})
}

func pressRune(t *testing.T, s Session, r rune) (Session, tea.Cmd) {
	t.Helper()
	return update(t, s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// selectAction moves the menu onto the option with the given action.
func selectAction(t *testing.T, s Session, action Action) Session {
	t.Helper()
	s, _ = press(t, s, tea.KeyHome)
	for s.Menu().Activate().Action != action {
		before := s.Menu().Selected()
		s, _ = press(t, s, tea.KeyDown)
		require.NotEqual(t, before, s.Menu().Selected(), "action %s not in menu", action)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, newFakeProvider())

	assert.Equal(t, ModeMenu, s.Mode())
	assert.Equal(t, 0, s.Menu().Selected())
	assert.Equal(t, len(DefaultOptions()), s.Menu().Len())
	assert.Nil(t, s.Series())
	assert.Nil(t, s.Init())
	assert.Equal(t, DefaultTimeout, s.timeout)
	assert.Equal(t, DefaultInterval, s.interval)
}

func TestNewSession_Errors(t *testing.T) {
	_, err := NewSession(Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	_, err = NewSession(Options{Provider: newFakeProvider(), Menu: []MenuOption{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestSession_StartInGraph(t *testing.T) {
	s, err := NewSession(Options{Provider: newFakeProvider(), StartInGraph: true})
	require.NoError(t, err)

	assert.Equal(t, ModeGraph, s.Mode())
	require.NotNil(t, s.Series())
	assert.Equal(t, 0, s.Series().Len())
	assert.NotNil(t, s.Init())
}

func TestSession_MenuNavigation(t *testing.T) {
	s := newTestSession(t, newFakeProvider())

	s, _ = press(t, s, tea.KeyUp)
	assert.Equal(t, 0, s.Menu().Selected())

	s, _ = press(t, s, tea.KeyDown)
	s, _ = pressRune(t, s, 'j')
	assert.Equal(t, 2, s.Menu().Selected())

	s, _ = pressRune(t, s, 'k')
	assert.Equal(t, 1, s.Menu().Selected())

	s, _ = press(t, s, tea.KeyEnd)
	assert.Equal(t, s.Menu().Len()-1, s.Menu().Selected())

	s, _ = press(t, s, tea.KeyHome)
	assert.Equal(t, 0, s.Menu().Selected())
}

func TestSession_MemoryDetailRoundTrip(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	s = selectAction(t, s, ActionShowMemoryInfo)
	menuBefore := s.Menu()

	s, cmd := press(t, s, tea.KeyEnter)
	require.Equal(t, ModeDetail, s.Mode())
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(), "Getting memory info...")
	assert.NotContains(t, s.View(), ReturnPrompt)

	s, _ = update(t, s, cmd())
	view := s.View()
	assert.Contains(t, view, "Memory Information:")
	assert.Contains(t, view, "Total Memory: 16.00 GB")
	assert.Contains(t, view, "Available Memory: 4.00 GB")
	assert.Contains(t, view, "Memory Usage: 75.0%")
	assert.Contains(t, view, ReturnPrompt)

	s, cmd = pressRune(t, s, 'x')
	assert.Nil(t, cmd)
	assert.Equal(t, ModeMenu, s.Mode())
	assert.Equal(t, menuBefore, s.Menu())
	assert.Contains(t, s.View(), MenuTitle)
}

func TestSession_DetailViews(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		setup  func(p *fakeProvider)
		expect []string
	}{
		{
			name:   "system",
			action: ActionShowSystemInfo,
			expect: []string{"System Information:", "System: Linux", "Release: 6.8.0", "Architecture: x86_64", "Uptime: 1d 2h 5m"},
		},
		{
			name:   "disk",
			action: ActionShowDiskInfo,
			expect: []string{"Disk Information (/):", "Total: 500 GiB", "Used: 100 GiB (20.0%)", "Free: 400 GiB"},
		},
		{
			name:   "no gpus",
			action: ActionShowGPUInfo,
			expect: []string{"GPU Information:", "No GPUs found"},
		},
		{
			name:   "gpu",
			action: ActionShowGPUInfo,
			setup: func(p *fakeProvider) {
				p.gpu = metrics.GPUInfo{Devices: []metrics.GPUDevice{
					{ID: 0, Name: "NVIDIA A100", MemoryTotalMB: 40960, MemoryFreeMB: 40000, UtilizationPercent: 3},
				}}
			},
			expect: []string{"GPU 0: NVIDIA A100", "Memory: 40000 MB free of 40960 MB", "Utilization: 3%"},
		},
		{
			name:   "provider error",
			action: ActionShowMemoryInfo,
			setup: func(p *fakeProvider) {
				p.err = errors.New(errors.ErrProvider, "Failed to read memory info", "Check permissions")
			},
			expect: []string{"✗ Failed to read memory info", "Check permissions", ReturnPrompt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakeProvider()
			if tt.setup != nil {
				tt.setup(p)
			}
			s := newTestSession(t, p)
			s = selectAction(t, s, tt.action)

			s, cmd := press(t, s, tea.KeyEnter)
			require.NotNil(t, cmd)
			s, _ = update(t, s, cmd())

			view := s.View()
			for _, want := range tt.expect {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestSession_LoadingIgnoresKeysExceptBack(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	s = selectAction(t, s, ActionShowSystemInfo)

	s, cmd := press(t, s, tea.KeyEnter)
	require.NotNil(t, cmd)

	s, _ = pressRune(t, s, 'x')
	assert.Equal(t, ModeDetail, s.Mode())

	s, _ = press(t, s, tea.KeyEsc)
	assert.Equal(t, ModeMenu, s.Mode())
}

func TestSession_StaleDetailDropped(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	s = selectAction(t, s, ActionShowMemoryInfo)

	s, cmd := press(t, s, tea.KeyEnter)
	require.NotNil(t, cmd)

	// Leave before the read finishes, then deliver the late result.
	s, _ = pressRune(t, s, 'q')
	require.Equal(t, ModeMenu, s.Mode())

	s, _ = update(t, s, cmd())
	assert.Equal(t, ModeMenu, s.Mode())
	assert.NotContains(t, s.View(), "Memory Information:")
}

func TestSession_LiveGraph(t *testing.T) {
	p := newFakeProvider()
	s := newTestSession(t, p)
	s = selectAction(t, s, ActionLiveCPUGraph)
	selected := s.Menu().Selected()

	s, cmd := press(t, s, tea.KeyEnter)
	require.Equal(t, ModeGraph, s.Mode())
	require.NotNil(t, cmd)
	require.NotNil(t, s.Series())
	assert.Contains(t, s.View(), "Waiting for first sample...")

	s, cmd = update(t, s, graphTickMsg{gen: s.gen, at: time.Now()})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, s.graph.next)

	s, _ = update(t, s, s.sampleCmd(0)())
	require.Equal(t, 1, s.Series().Len())
	latest, _ := s.Series().Latest()
	assert.Equal(t, 12.3, latest.Value)
	assert.Contains(t, s.View(), "Current CPU usage: 12.3 %")
	assert.Contains(t, s.View(), GraphYLabel)

	// Out-of-order samples are ignored.
	s, _ = update(t, s, cpuSampleMsg{gen: s.gen, tick: 0, value: 99})
	assert.Equal(t, 1, s.Series().Len())

	// Ticks from an earlier graph session are ignored.
	_, cmd = update(t, s, graphTickMsg{gen: s.gen - 1})
	assert.Nil(t, cmd)

	s, _ = pressRune(t, s, 'x')
	assert.Equal(t, ModeGraph, s.Mode(), "only back leaves the graph")

	s, _ = pressRune(t, s, 'q')
	assert.Equal(t, ModeMenu, s.Mode())
	assert.Equal(t, selected, s.Menu().Selected())
	assert.Nil(t, s.Series())
}

func TestSession_GraphCancelDropsLateSamples(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	s = selectAction(t, s, ActionLiveCPUGraph)
	s, _ = press(t, s, tea.KeyEnter)

	sample := s.sampleCmd(0)
	s, _ = press(t, s, tea.KeyEsc)
	require.Equal(t, ModeMenu, s.Mode())

	s, cmd := update(t, s, sample())
	assert.Nil(t, cmd)
	assert.Equal(t, ModeMenu, s.Mode())
	assert.Nil(t, s.Series())
}

func TestSession_GraphErrorStopsSampling(t *testing.T) {
	p := newFakeProvider()
	p.cpuErr = errors.New(errors.ErrProvider, "Failed to read CPU usage", "")
	buf := logger.NewBufferLogger()

	s, err := NewSession(Options{Provider: p, Log: buf})
	require.NoError(t, err)
	s = selectAction(t, s, ActionLiveCPUGraph)
	s, _ = press(t, s, tea.KeyEnter)

	s, _ = update(t, s, s.sampleCmd(0)())
	assert.True(t, buf.HasLevel("error"))

	_, cmd := update(t, s, graphTickMsg{gen: s.gen})
	assert.Nil(t, cmd, "no further ticks after a sampling failure")

	view := s.View()
	assert.Contains(t, view, "✗ Failed to read CPU usage")
	assert.Contains(t, view, "Press q or esc to return to menu...")

	s, _ = pressRune(t, s, 'q')
	assert.Equal(t, ModeMenu, s.Mode())
}

func TestSession_Exit(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	s = selectAction(t, s, ActionExit)

	s, cmd := press(t, s, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, s.Quitting())
	assert.Equal(t, "", s.View())
}

func TestSession_CtrlCQuitsFromAnyMode(t *testing.T) {
	starts := map[string]func(t *testing.T, s Session) Session{
		"menu": func(_ *testing.T, s Session) Session { return s },
		"detail": func(t *testing.T, s Session) Session {
			s = selectAction(t, s, ActionShowSystemInfo)
			s, _ = press(t, s, tea.KeyEnter)
			return s
		},
		"graph": func(t *testing.T, s Session) Session {
			s = selectAction(t, s, ActionLiveCPUGraph)
			s, _ = press(t, s, tea.KeyEnter)
			return s
		},
	}

	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			s := start(t, newTestSession(t, newFakeProvider()))
			s, cmd := press(t, s, tea.KeyCtrlC)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, s.Quitting())
		})
	}
}

func TestSession_WindowResize(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	s, _ = update(t, s, tea.WindowSizeMsg{Width: 100, Height: 40})

	lines := strings.Split(s.View(), "\n")
	require.Len(t, lines, 40)
	for _, line := range lines {
		assert.Equal(t, 100, len([]rune(line)))
	}

	opts := DefaultOptions()
	last := opts[len(opts)-1]
	row, col := menuOrigin(40, 100, len(opts), len(opts)-1, last.Label)
	assert.Equal(t, last.Label, string([]rune(lines[row])[col:col+len(last.Label)]))
}

func TestSession_HelpToggle(t *testing.T) {
	s := newTestSession(t, newFakeProvider())
	short := s.View()

	s, _ = pressRune(t, s, '?')
	assert.True(t, s.help.ShowAll)
	assert.NotEqual(t, short, s.View())
	assert.Contains(t, s.View(), "home")
}
