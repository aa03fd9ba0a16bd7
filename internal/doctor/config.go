package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rileyhilliard/hostdash/internal/config"
	hderrors "github.com/rileyhilliard/hostdash/internal/errors"
)

// ConfigFileCheck reports which config file is in use.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %s", firstLine(err)),
			Suggestion: "Check the --config path and its permissions",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusPass,
			Message:    "No config file, using defaults",
			Suggestion: "Create " + config.ConfigFileName + " to change the disk path, GPU command or colours",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", path),
	}
}

// ConfigSchemaCheck loads and validates the config, including environment overrides.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(context.Context) CheckResult {
	if _, err := config.LoadOrDefault(c.ConfigPath); err != nil {
		suggestion := "Fix the values in your config file"
		var hdErr *hderrors.Error
		if errors.As(err, &hdErr) && hdErr.Suggestion != "" {
			suggestion = hdErr.Suggestion
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Invalid config: %s", firstLine(err)),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config valid",
	}
}

// NewConfigChecks returns the config checks for an explicit path (or "" to search).
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}

// firstLine returns the headline of an error without cause or suggestion.
func firstLine(err error) string {
	lines := hderrors.Lines(err)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
