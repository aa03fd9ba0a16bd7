package metrics

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	hderrors "github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// HostOptions configures a Host provider.
type HostOptions struct {
	DiskPath   string
	GPUEnabled bool
	GPUCommand string
	GPUTimeout time.Duration

	// Runner executes the GPU query. Defaults to os/exec.
	Runner CommandRunner
	Log    logger.Logger
}

// Host reads metrics from the local machine through gopsutil and nvidia-smi.
type Host struct {
	diskPath   string
	gpuEnabled bool
	gpuCommand string
	gpuTimeout time.Duration
	run        CommandRunner
	log        logger.Logger
}

// NewHost creates a provider for the local machine.
func NewHost(opts HostOptions) *Host {
	h := &Host{
		diskPath:   opts.DiskPath,
		gpuEnabled: opts.GPUEnabled,
		gpuCommand: opts.GPUCommand,
		gpuTimeout: opts.GPUTimeout,
		run:        opts.Runner,
		log:        opts.Log,
	}
	if h.diskPath == "" {
		h.diskPath = "/"
	}
	if h.gpuCommand == "" {
		h.gpuCommand = "nvidia-smi"
	}
	if h.gpuTimeout <= 0 {
		h.gpuTimeout = 2 * time.Second
	}
	if h.run == nil {
		h.run = execRunner
	}
	if h.log == nil {
		h.log = logger.NewEnvLogger("[metrics]")
	}
	return h
}

// SystemInfo reads the OS name, kernel release, platform version and architecture.
func (h *Host) SystemInfo(ctx context.Context) (SystemInfo, error) {
	h.log.Debug("getting system info")
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return SystemInfo{}, hderrors.WrapWithCode(err, hderrors.ErrProvider,
			"Failed to read system info",
			"Check that host information is readable on this platform")
	}
	return SystemInfo{
		Name:         osName(info.OS),
		Release:      info.KernelVersion,
		Version:      strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		Architecture: info.KernelArch,
		Hostname:     info.Hostname,
		Uptime:       time.Duration(info.Uptime) * time.Second,
	}, nil
}

// MemoryInfo reads virtual memory totals.
func (h *Host) MemoryInfo(ctx context.Context) (MemoryInfo, error) {
	h.log.Debug("getting memory info")
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, hderrors.WrapWithCode(err, hderrors.ErrProvider,
			"Failed to read memory info",
			"Check that memory statistics are readable (e.g. /proc/meminfo)")
	}
	return MemoryInfo{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedPercent:    vm.UsedPercent,
	}, nil
}

// DiskInfo reads usage of the configured mount point.
func (h *Host) DiskInfo(ctx context.Context) (DiskInfo, error) {
	h.log.Debug("getting disk info for %s", h.diskPath)
	usage, err := disk.UsageWithContext(ctx, h.diskPath)
	if err != nil {
		return DiskInfo{}, hderrors.WrapWithCode(err, hderrors.ErrProvider,
			"Failed to read disk info for "+h.diskPath,
			"Check disk.path points at a mounted filesystem")
	}
	return DiskInfo{
		Path:        usage.Path,
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// GPUInfo queries nvidia-smi. A missing binary or a driver that reports no
// devices yields an empty GPUInfo rather than an error.
func (h *Host) GPUInfo(ctx context.Context) (GPUInfo, error) {
	if !h.gpuEnabled {
		return GPUInfo{}, nil
	}
	h.log.Debug("getting GPU info via %s", h.gpuCommand)

	ctx, cancel := context.WithTimeout(ctx, h.gpuTimeout)
	defer cancel()

	out, err := h.run(ctx, h.gpuCommand, NvidiaQueryArgs...)
	if err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound):
			h.log.Debug("%s not found, reporting no GPUs", h.gpuCommand)
			return GPUInfo{}, nil
		case ctx.Err() != nil:
			return GPUInfo{}, hderrors.WrapWithCode(ctx.Err(), hderrors.ErrProvider,
				"Timed out reading GPU info",
				"Raise gpu.timeout or disable GPU reads with gpu.enabled: false")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			h.log.Warn("%s exited with code %d, reporting no GPUs", h.gpuCommand, exitErr.ExitCode())
			return GPUInfo{}, nil
		}
		return GPUInfo{}, hderrors.WrapWithCode(err, hderrors.ErrProvider,
			"Failed to run "+h.gpuCommand,
			"Check gpu.command or disable GPU reads with gpu.enabled: false")
	}

	info, err := ParseNvidiaSMI(out)
	if err != nil {
		return GPUInfo{}, hderrors.WrapWithCode(err, hderrors.ErrProvider,
			"Failed to parse GPU info",
			"Check that "+h.gpuCommand+" supports --query-gpu")
	}
	return info, nil
}

// CPUPercent returns total CPU utilization since the previous call. It does
// not block; callers own the sampling cadence.
func (h *Host) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, hderrors.WrapWithCode(err, hderrors.ErrProvider,
			"Failed to read CPU utilization",
			"Check that CPU statistics are readable (e.g. /proc/stat)")
	}
	if len(pcts) == 0 {
		return 0, hderrors.New(hderrors.ErrProvider,
			"CPU utilization unavailable",
			"The platform reported no CPU times")
	}
	return pcts[0], nil
}

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// osName maps gopsutil's lowercase OS identifiers to display names.
func osName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}
