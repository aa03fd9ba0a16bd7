package config

import (
	"fmt"
	"regexp"

	"github.com/rileyhilliard/hostdash/internal/errors"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Disk.Path == "" {
		return errors.New(errors.ErrConfig,
			"disk.path can't be empty",
			"Set it to a mount point, e.g. disk.path: /")
	}

	if cfg.GPU.Enabled && cfg.GPU.Command == "" {
		return errors.New(errors.ErrConfig,
			"gpu.command can't be empty while GPU reads are enabled",
			"Set gpu.command: nvidia-smi, or disable with gpu.enabled: false")
	}

	if cfg.GPU.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("gpu.timeout must be positive (got %s)", cfg.GPU.Timeout),
			"Use a duration like 2s")
	}

	if cfg.Provider.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("provider.timeout must be positive (got %s)", cfg.Provider.Timeout),
			"Use a duration like 5s")
	}

	for key, value := range map[string]string{
		"theme.highlight":      cfg.Theme.Highlight,
		"theme.highlight_text": cfg.Theme.HighlightText,
	} {
		if !hexColor.MatchString(value) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s must be a hex color (got %q)", key, value),
				"Use a value like #00FFFF")
		}
	}

	return nil
}
