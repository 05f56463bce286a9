package sampler

import (
	"time"

	"github.com/rileyhilliard/pimon/internal/metrics"
)

// Command is a request from the UI to the sampling loop.
// The only implementations are QuitCommand and ChangeURLCommand.
type Command interface {
	isCommand()
}

// QuitCommand stops the sampling loop after the current iteration.
type QuitCommand struct{}

// ChangeURLCommand replaces the scrape target and refresh interval. It takes
// effect at the next refresh; no fetch is triggered by the command itself.
type ChangeURLCommand struct {
	URL             string
	RefreshInterval time.Duration
}

func (QuitCommand) isCommand()      {}
func (ChangeURLCommand) isCommand() {}

// Result is one message from the sampling loop. A nil Metrics means no
// value is available yet.
type Result struct {
	Metrics *metrics.MetricsResult
}
