package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/monitor"
)

// loadRuntime loads and validates config, then points the logger at the
// configured log file. The returned cleanup closes the file.
func loadRuntime(configPath string, debug bool) (*config.Config, func(), error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, func() {}, err
	}

	w, err := openLog(cfg.Log.File)
	if err != nil {
		return nil, func() {}, err
	}
	logger.Configure(w, debug || cfg.Log.Debug)

	cleanup := func() {
		logger.Configure(nil, false)
		_ = w.Close()
	}
	return cfg, cleanup, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openLog opens the log file for appending, creating parent directories.
// An empty path discards logs.
func openLog(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create log directory for "+path,
			"Check permissions or change log.file in your config")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file "+path,
			"Check permissions or change log.file in your config")
	}
	return f, nil
}

// newProvider builds the local metrics provider from config.
func newProvider(cfg *config.Config) *metrics.Host {
	return metrics.NewHost(metrics.HostOptions{
		DiskPath:   cfg.Disk.Path,
		GPUEnabled: cfg.GPU.Enabled,
		GPUCommand: cfg.GPU.Command,
		GPUTimeout: cfg.GPU.Timeout,
		Log:        logger.NewEnvLogger("[metrics]"),
	})
}

// themeFromConfig converts validated hex colours into a dashboard theme.
func themeFromConfig(cfg *config.Config) monitor.Theme {
	return monitor.Theme{
		Highlight:     lipgloss.Color(cfg.Theme.Highlight),
		HighlightText: lipgloss.Color(cfg.Theme.HighlightText),
	}
}
