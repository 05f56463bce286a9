package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/sampler"
)

// Lower bounds for tunables.
const (
	MinInterval       = 100 * time.Millisecond
	MinPollInterval   = 10 * time.Millisecond
	MinHistory        = 10
	MinFrameInterval  = 16 * time.Millisecond
	MinConnectTimeout = 100 * time.Millisecond
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but pimon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade pimon or regenerate the file with 'pimon init --force'.")
	}

	if _, err := sampler.ValidateURL(cfg.URL); err != nil {
		return err
	}

	if err := validateDuration("interval", cfg.Interval, MinInterval); err != nil {
		return err
	}
	if err := validateDuration("poll_interval", cfg.PollInterval, MinPollInterval); err != nil {
		return err
	}
	if err := validateDuration("connect_timeout", cfg.ConnectTimeout, MinConnectTimeout); err != nil {
		return err
	}
	if err := validateDuration("frame_interval", cfg.FrameInterval, MinFrameInterval); err != nil {
		return err
	}

	if cfg.History < MinHistory {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history is %d, but charts need at least %d samples", cfg.History, MinHistory),
			fmt.Sprintf("Set 'history' to %d or more in %s.", DefaultHistory, ConfigFileName))
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode '%s'", cfg.Color),
			"Use one of: auto, always, never.")
	}

	return nil
}

func validateDuration(key string, d, min time.Duration) error {
	if d < min {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s is %s, which is below the minimum of %s", key, d, min),
			fmt.Sprintf("Raise '%s' in %s, or drop it to use the default.", key, ConfigFileName))
	}
	return nil
}
