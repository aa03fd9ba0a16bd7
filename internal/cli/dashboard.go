package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/monitor"
)

// isInteractive reports whether stdin and stdout are both terminals.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runProgram runs the dashboard model full-screen. Replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// dashboardCommand starts the full-screen dashboard.
func dashboardCommand(configPath string, debug, startInGraph bool) error {
	if !isInteractive() {
		return errors.New(errors.ErrTerminal,
			"The dashboard needs an interactive terminal",
			"Run 'hostdash snapshot' for plain output when piping or scripting")
	}

	cfg, cleanup, err := loadRuntime(configPath, debug)
	if err != nil {
		return err
	}
	defer cleanup()

	log := logger.NewEnvLogger("[dashboard]")

	session, err := monitor.NewSession(monitor.Options{
		Provider:     newProvider(cfg),
		Theme:        themeFromConfig(cfg),
		Timeout:      cfg.Provider.Timeout,
		StartInGraph: startInGraph,
		Log:          log,
	})
	if err != nil {
		return err
	}

	// Honour NO_COLOR and CLICOLOR_FORCE.
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	log.Info("starting dashboard (graph=%t)", startInGraph)
	if err := runProgram(session); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Dashboard stopped unexpectedly",
			"Check the log file for details, or run with --debug")
	}
	log.Info("dashboard closed")
	return nil
}
