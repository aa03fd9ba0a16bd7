package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

// ProviderCheck performs one metric read and reports a short description of it.
type ProviderCheck struct {
	CheckName string
	Timeout   time.Duration
	Read      func(ctx context.Context) (string, error)
}

func (c *ProviderCheck) Name() string     { return c.CheckName }
func (c *ProviderCheck) Category() string { return CategoryMetrics }

func (c *ProviderCheck) Run(ctx context.Context) CheckResult {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	desc, err := c.Read(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    firstLine(err),
			Suggestion: "Run with --debug and check the log for details",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: desc,
	}
}

// NewMetricsChecks returns a read check for each host metric source.
func NewMetricsChecks(p metrics.Provider, timeout time.Duration) []Check {
	return []Check{
		&ProviderCheck{CheckName: "system_info", Timeout: timeout, Read: func(ctx context.Context) (string, error) {
			info, err := p.SystemInfo(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("System: %s %s (%s)", info.Name, info.Release, info.Architecture), nil
		}},
		&ProviderCheck{CheckName: "memory_info", Timeout: timeout, Read: func(ctx context.Context) (string, error) {
			info, err := p.MemoryInfo(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Memory: %s total", humanize.IBytes(info.TotalBytes)), nil
		}},
		&ProviderCheck{CheckName: "disk_info", Timeout: timeout, Read: func(ctx context.Context) (string, error) {
			info, err := p.DiskInfo(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Disk %s: %s free", info.Path, humanize.IBytes(info.FreeBytes)), nil
		}},
		&ProviderCheck{CheckName: "cpu_percent", Timeout: timeout, Read: func(ctx context.Context) (string, error) {
			if _, err := p.CPUPercent(ctx); err != nil {
				return "", err
			}
			return "CPU usage readable", nil
		}},
	}
}

// GPUCheck looks for the nvidia-smi binary and counts the devices it reports.
type GPUCheck struct {
	Enabled  bool
	Command  string
	Provider metrics.Provider
	Timeout  time.Duration

	// LookPath resolves Command. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

func (c *GPUCheck) Name() string     { return "gpu_query" }
func (c *GPUCheck) Category() string { return CategoryGPU }

func (c *GPUCheck) Run(ctx context.Context) CheckResult {
	if !c.Enabled {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "GPU reads disabled in config",
		}
	}

	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(c.Command)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s not found, GPU view will report no GPUs", c.Command),
			Suggestion: "Install the NVIDIA driver tools or set gpu.enabled: false",
		}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	info, err := c.Provider.GPUInfo(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    firstLine(err),
			Suggestion: fmt.Sprintf("Run '%s' directly to see the driver error", path),
		}
	}

	if info.Empty() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s found at %s but reports no GPUs", c.Command, path),
		}
	}

	n := len(info.Devices)
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d GPU%s via %s", n, pluralize(n), path),
	}
}

// TerminalCheck reports whether the interactive dashboard can start.
type TerminalCheck struct {
	Interactive func() bool
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run(context.Context) CheckResult {
	if c.Interactive == nil || !c.Interactive() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Not running in an interactive terminal",
			Suggestion: "Use 'hostdash snapshot' for scripted output",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Interactive terminal detected",
	}
}
