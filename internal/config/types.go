package config

import "time"

// Config represents the complete hostdash configuration file.
type Config struct {
	Disk     DiskConfig     `yaml:"disk" mapstructure:"disk"`
	GPU      GPUConfig      `yaml:"gpu" mapstructure:"gpu"`
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Theme    ThemeConfig    `yaml:"theme" mapstructure:"theme"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DiskConfig controls which filesystem the disk view reports on.
type DiskConfig struct {
	// Path is the mount point passed to the disk usage query.
	Path string `yaml:"path" mapstructure:"path"`
}

// GPUConfig controls the nvidia-smi GPU query.
type GPUConfig struct {
	// Enabled toggles GPU reads. When false the GPU view always reports no GPUs.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Command is the nvidia-smi binary (name on PATH or absolute path).
	Command string `yaml:"command" mapstructure:"command"`

	// Timeout bounds a single nvidia-smi invocation.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ProviderConfig bounds metric reads made by the detail views.
type ProviderConfig struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ThemeConfig holds the menu highlight colors (hex, e.g. "#00FFFF").
type ThemeConfig struct {
	Highlight     string `yaml:"highlight" mapstructure:"highlight"`
	HighlightText string `yaml:"highlight_text" mapstructure:"highlight_text"`
}

// LogConfig controls where logs go while the dashboard owns the terminal.
type LogConfig struct {
	// File receives log output. Empty discards logs.
	File string `yaml:"file" mapstructure:"file"`

	// Debug enables debug-level messages.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Disk: DiskConfig{
			Path: "/",
		},
		GPU: GPUConfig{
			Enabled: true,
			Command: "nvidia-smi",
			Timeout: 2 * time.Second,
		},
		Provider: ProviderConfig{
			Timeout: 5 * time.Second,
		},
		Theme: ThemeConfig{
			Highlight:     "#00FFFF",
			HighlightText: "#000000",
		},
	}
}
