// Package metrics reads host metric snapshots: system identity, memory, disk,
// GPU devices and CPU utilization.
//
// Every read returns a fresh value. Nothing is cached between calls, and the
// returned snapshot belongs to the caller.
package metrics

import (
	"context"
	"time"
)

// Provider supplies metric snapshots. Implementations must be safe to call
// from Bubble Tea commands, which run on their own goroutines.
type Provider interface {
	SystemInfo(ctx context.Context) (SystemInfo, error)
	MemoryInfo(ctx context.Context) (MemoryInfo, error)
	DiskInfo(ctx context.Context) (DiskInfo, error)
	// GPUInfo reports an empty GPUInfo when the host has no GPUs.
	GPUInfo(ctx context.Context) (GPUInfo, error)
	// CPUPercent returns overall CPU utilization since the previous call.
	CPUPercent(ctx context.Context) (float64, error)
}

// SystemInfo identifies the host operating system.
type SystemInfo struct {
	Name         string        `yaml:"name"`
	Release      string        `yaml:"release"`
	Version      string        `yaml:"version"`
	Architecture string        `yaml:"architecture"`
	Hostname     string        `yaml:"hostname"`
	Uptime       time.Duration `yaml:"uptime"`
}

// MemoryInfo contains virtual memory usage.
type MemoryInfo struct {
	TotalBytes     uint64  `yaml:"total_bytes"`
	AvailableBytes uint64  `yaml:"available_bytes"`
	UsedPercent    float64 `yaml:"used_percent"`
}

// DiskInfo contains usage for a single mount point.
type DiskInfo struct {
	Path        string  `yaml:"path"`
	TotalBytes  uint64  `yaml:"total_bytes"`
	UsedBytes   uint64  `yaml:"used_bytes"`
	FreeBytes   uint64  `yaml:"free_bytes"`
	UsedPercent float64 `yaml:"used_percent"`
}

// GPUDevice is a single GPU as reported by nvidia-smi.
type GPUDevice struct {
	ID                 int     `yaml:"id"`
	Name               string  `yaml:"name"`
	MemoryTotalMB      float64 `yaml:"memory_total_mb"`
	MemoryFreeMB       float64 `yaml:"memory_free_mb"`
	UtilizationPercent float64 `yaml:"utilization_percent"`
}

// GPUInfo lists the host's GPUs. An empty list means no GPUs were found.
type GPUInfo struct {
	Devices []GPUDevice `yaml:"devices"`
}

// Empty reports whether no GPUs were found.
func (g GPUInfo) Empty() bool {
	return len(g.Devices) == 0
}
