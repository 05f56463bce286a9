package cli

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/logger"
	"github.com/rileyhilliard/pimon/internal/monitor"
	"github.com/rileyhilliard/pimon/internal/sampler"
)

// runMonitor resolves settings from the global flags and opens the dashboard.
func runMonitor() error {
	cfg, _, err := loadSettings(cfgFile, globalOverrides())
	if err != nil {
		return err
	}
	applyColorMode(cfg.Color, noColorFlag)
	return monitorCommand(cfg, monitorLogFile)
}

// newSampler builds a sampler from the resolved settings.
func newSampler(cfg *config.Config, opts ...sampler.Option) *sampler.Sampler {
	base := []sampler.Option{
		sampler.WithPollInterval(cfg.PollInterval),
		sampler.WithConnectTimeout(cfg.ConnectTimeout),
		sampler.WithLogger(logger.NewEnvLogger("[sampler]")),
	}
	return sampler.New(append(base, opts...)...)
}

// monitorCommand starts the TUI dashboard. Log output goes to logFile when
// set and is discarded otherwise, so it never tears the alt screen.
func monitorCommand(cfg *config.Config, logFile string) error {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "pimon")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't open log file "+logFile,
				"Check the directory exists and is writable")
		}
		defer f.Close()
		defer log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The model sends the first ChangeURLCommand from Init.
	s := newSampler(cfg)
	if err := s.Start(ctx); err != nil {
		return err
	}

	model := monitor.NewModel(s, monitor.Options{
		URL:             cfg.URL,
		RefreshInterval: cfg.Interval,
		FrameInterval:   cfg.FrameInterval,
		HistorySize:     cfg.History,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	// Graceful shutdown: the sampler exits within one poll quantum.
	s.Stop()

	return err
}
