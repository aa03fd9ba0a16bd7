package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/screen"
)

// ReturnPrompt is shown under every detail view.
const ReturnPrompt = "Press any key to return to menu..."

const bytesPerGB = 1 << 30

// detailLine is one line of a detail view with its display attribute.
type detailLine struct {
	text string
	attr screen.Attr
}

// detailView is the content of a one-shot information screen.
type detailView struct {
	action  Action
	title   string
	lines   []detailLine
	err     error
	loading bool
}

func plain(format string, args ...interface{}) detailLine {
	return detailLine{text: fmt.Sprintf(format, args...)}
}

// detailTitle returns the heading for an information action.
func detailTitle(action Action) string {
	switch action {
	case ActionShowSystemInfo:
		return "System Information:"
	case ActionShowMemoryInfo:
		return "Memory Information:"
	case ActionShowDiskInfo:
		return "Disk Information:"
	case ActionShowGPUInfo:
		return "GPU Information:"
	default:
		return ""
	}
}

// loadingView is shown while a detail read is in flight.
func loadingView(action Action) *detailView {
	return &detailView{
		action:  action,
		title:   detailTitle(action),
		lines:   []detailLine{{text: fmt.Sprintf("Getting %s info...", action), attr: screen.AttrMuted}},
		loading: true,
	}
}

// readDetail queries the provider for one information action and formats the result.
func readDetail(ctx context.Context, p metrics.Provider, action Action) detailView {
	view := detailView{action: action, title: detailTitle(action)}

	switch action {
	case ActionShowSystemInfo:
		info, err := p.SystemInfo(ctx)
		if err != nil {
			view.err = err
			break
		}
		view.lines = systemLines(info)

	case ActionShowMemoryInfo:
		info, err := p.MemoryInfo(ctx)
		if err != nil {
			view.err = err
			break
		}
		view.lines = memoryLines(info)

	case ActionShowDiskInfo:
		info, err := p.DiskInfo(ctx)
		if err != nil {
			view.err = err
			break
		}
		view.title = fmt.Sprintf("Disk Information (%s):", info.Path)
		view.lines = diskLines(info)

	case ActionShowGPUInfo:
		info, err := p.GPUInfo(ctx)
		if err != nil {
			view.err = err
			break
		}
		view.lines = gpuLines(info)

	default:
		view.err = errors.New(errors.ErrProvider,
			fmt.Sprintf("No information view for %s", action), "")
	}

	return view
}

func systemLines(info metrics.SystemInfo) []detailLine {
	return []detailLine{
		plain("System: %s", info.Name),
		plain("Release: %s", info.Release),
		plain("Version: %s", info.Version),
		plain("Architecture: %s", info.Architecture),
		plain("Hostname: %s", info.Hostname),
		plain("Uptime: %s", formatUptime(info.Uptime)),
	}
}

func memoryLines(info metrics.MemoryInfo) []detailLine {
	return []detailLine{
		plain("Total Memory: %.2f GB", float64(info.TotalBytes)/bytesPerGB),
		plain("Available Memory: %.2f GB", float64(info.AvailableBytes)/bytesPerGB),
		{
			text: fmt.Sprintf("Memory Usage: %.1f%%", info.UsedPercent),
			attr: MetricAttr(info.UsedPercent),
		},
	}
}

func diskLines(info metrics.DiskInfo) []detailLine {
	return []detailLine{
		plain("Total: %s", humanize.IBytes(info.TotalBytes)),
		{
			text: fmt.Sprintf("Used: %s (%.1f%%)", humanize.IBytes(info.UsedBytes), info.UsedPercent),
			attr: MetricAttr(info.UsedPercent),
		},
		plain("Free: %s", humanize.IBytes(info.FreeBytes)),
	}
}

func gpuLines(info metrics.GPUInfo) []detailLine {
	if info.Empty() {
		return []detailLine{plain("No GPUs found")}
	}

	var lines []detailLine
	for _, d := range info.Devices {
		lines = append(lines,
			plain("GPU %d: %s", d.ID, d.Name),
			plain("  Memory: %.0f MB free of %.0f MB", d.MemoryFreeMB, d.MemoryTotalMB),
			detailLine{
				text: fmt.Sprintf("  Utilization: %.0f%%", d.UtilizationPercent),
				attr: MetricAttr(d.UtilizationPercent),
			},
		)
	}
	return lines
}

// formatUptime renders a duration as days, hours and minutes.
func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// drawDetail draws a detail view: heading, content or error, then the return prompt.
func drawDetail(s screen.Surface, view *detailView) {
	s.SetAttr(screen.AttrTitle)
	s.WriteAt(0, 0, view.title)

	row := 1
	if view.err != nil {
		s.SetAttr(screen.AttrError)
		for i, line := range errors.Lines(view.err) {
			if i == 0 {
				line = "✗ " + line
			} else {
				line = "  " + line
			}
			s.WriteAt(row, 0, line)
			row++
		}
	} else {
		for _, line := range view.lines {
			s.SetAttr(line.attr)
			s.WriteAt(row, 0, line.text)
			row++
		}
	}

	if view.loading {
		s.SetAttr(screen.AttrNormal)
		return
	}

	s.SetAttr(screen.AttrMuted)
	s.WriteAt(row+1, 0, ReturnPrompt)
	s.SetAttr(screen.AttrNormal)
}
