package config

import (
	"bytes"
	"os"

	"github.com/rileyhilliard/pimon/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileLayout is the on-disk form of Config. Durations are written as
// strings like "1s" so the file stays hand-editable.
type fileLayout struct {
	Version        int    `yaml:"version"`
	URL            string `yaml:"url"`
	Interval       string `yaml:"interval"`
	PollInterval   string `yaml:"poll_interval"`
	ConnectTimeout string `yaml:"connect_timeout"`
	History        int    `yaml:"history"`
	FrameInterval  string `yaml:"frame_interval"`
	Color          string `yaml:"color"`
}

const fileHeader = "# pimon configuration\n" +
	"# METRICS_URL and PIMON_* environment variables override these values.\n"

// Marshal renders cfg as YAML with a short header comment.
func Marshal(cfg *Config) ([]byte, error) {
	layout := fileLayout{
		Version:        cfg.Version,
		URL:            cfg.URL,
		Interval:       cfg.Interval.String(),
		PollInterval:   cfg.PollInterval.String(),
		ConnectTimeout: cfg.ConnectTimeout.String(),
		History:        cfg.History,
		FrameInterval:  cfg.FrameInterval.String(),
		Color:          cfg.Color,
	}
	if layout.Version == 0 {
		layout.Version = CurrentConfigVersion
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(layout); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config", "")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config", "")
	}
	return buf.Bytes(), nil
}

// Write validates cfg and saves it to path.
func Write(path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check that the directory exists and is writable")
	}
	return nil
}
