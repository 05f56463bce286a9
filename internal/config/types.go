package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .pimon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// URL is the node_exporter endpoint to scrape.
	URL string `yaml:"url" mapstructure:"url"`

	// Interval is the time between scrapes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// PollInterval is how often the sampler checks for commands.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// ConnectTimeout bounds the TCP dial of each scrape.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// History is the number of samples kept per chart.
	History int `yaml:"history" mapstructure:"history"`

	// FrameInterval is the dashboard redraw period.
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color" mapstructure:"color"`
}

// Defaults.
const (
	DefaultURL            = "http://localhost:9100/metrics"
	DefaultInterval       = time.Second
	DefaultPollInterval   = 100 * time.Millisecond
	DefaultConnectTimeout = 5 * time.Second
	DefaultHistory        = 150
	DefaultFrameInterval  = 200 * time.Millisecond
	DefaultColor          = ColorAuto
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		URL:            DefaultURL,
		Interval:       DefaultInterval,
		PollInterval:   DefaultPollInterval,
		ConnectTimeout: DefaultConnectTimeout,
		History:        DefaultHistory,
		FrameInterval:  DefaultFrameInterval,
		Color:          DefaultColor,
	}
}
