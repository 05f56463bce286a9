package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
)

// Overrides are command-line values that win over the config file and
// environment.
type Overrides struct {
	URL      string
	Interval string
}

// globalOverrides collects the root --url and --interval flags.
func globalOverrides() Overrides {
	return Overrides{URL: urlFlag, Interval: intervalFlag}
}

// ParseInterval parses a refresh interval flag. Bare numbers are rejected
// so "5" is never silently read as nanoseconds.
func ParseInterval(flag string) (time.Duration, error) {
	duration, err := time.ParseDuration(strings.TrimSpace(flag))
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 500ms, or 2m.")
	}
	return duration, nil
}

// loadSettings resolves the config file, applies overrides and validates the
// result. It also returns the file the settings came from, empty for defaults.
func loadSettings(configPath string, o Overrides) (*config.Config, string, error) {
	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return nil, "", err
	}

	if u := strings.TrimSpace(o.URL); u != "" {
		cfg.URL = u
	}
	if o.Interval != "" {
		d, err := ParseInterval(o.Interval)
		if err != nil {
			return nil, "", err
		}
		cfg.Interval = d
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
