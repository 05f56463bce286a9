package doctor

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
)

// ConfigFileCheck reports which config file is in effect. Running without
// one is allowed, so a missing file is only a warning.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return failFromError(c.Name(), err, "Check the --config path")
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using built-in defaults",
			Suggestion: "Run 'pimon init' to create a .pimon.yaml",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", path),
	}
}

// ConfigValidCheck resolves the full configuration (file, .env and
// environment) and validates it.
type ConfigValidCheck struct {
	ConfigPath string
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return CategoryConfig }

func (c *ConfigValidCheck) Run(context.Context) CheckResult {
	cfg, _, err := config.Resolve(c.ConfigPath)
	if err != nil {
		return failFromError(c.Name(), err, "Fix the YAML syntax in your config file")
	}
	if err := config.Validate(cfg); err != nil {
		return failFromError(c.Name(), err, "Fix the values in your config file")
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Settings valid, scraping every %s", cfg.Interval),
	}
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigValidCheck{ConfigPath: configPath},
	}
}

// failFromError builds a failing result, preferring the structured error's
// own message and suggestion.
func failFromError(name string, err error, fallback string) CheckResult {
	result := CheckResult{
		Name:       name,
		Status:     StatusFail,
		Message:    err.Error(),
		Suggestion: fallback,
	}
	var pErr *errors.Error
	if stderrors.As(err, &pErr) {
		result.Message = pErr.Message
		if pErr.Suggestion != "" {
			result.Suggestion = pErr.Suggestion
		}
	}
	return result
}
