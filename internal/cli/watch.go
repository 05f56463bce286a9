package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/metrics"
	"github.com/rileyhilliard/pimon/internal/monitor"
	"github.com/rileyhilliard/pimon/internal/sampler"
)

// WatchOptions controls headless output.
type WatchOptions struct {
	JSON  bool // One JSON envelope per line
	Count int  // Stop after this many results, 0 for no limit
}

// resultPoller is the part of a sampler watch reads from.
type resultPoller interface {
	TryDequeueResult() (metrics.MetricsResult, bool)
}

// watchCommand runs a sampler without the TUI and prints every result until
// ctx is done or opts.Count results were written.
func watchCommand(ctx context.Context, cfg *config.Config, opts WatchOptions, out io.Writer) error {
	s := newSampler(cfg,
		sampler.WithURL(cfg.URL),
		sampler.WithRefreshInterval(cfg.Interval),
	)
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Stop()

	return runWatch(ctx, s, cfg.PollInterval, opts, out)
}

// runWatch drains src every poll and writes each result to out.
func runWatch(ctx context.Context, src resultPoller, poll time.Duration, opts WatchOptions, out io.Writer) error {
	if poll <= 0 {
		poll = sampler.DefaultPollInterval
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	written := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for {
			result, ok := src.TryDequeueResult()
			if !ok {
				break
			}
			if err := writeWatchResult(out, result, opts.JSON); err != nil {
				return err
			}
			written++
			if opts.Count > 0 && written >= opts.Count {
				return nil
			}
		}
	}
}

func writeWatchResult(out io.Writer, result metrics.MetricsResult, asJSON bool) error {
	if asJSON {
		return WriteJSONLine(out, result)
	}
	_, err := fmt.Fprintln(out, formatWatchLine(result))
	return err
}

// formatWatchLine renders a result as one human-readable line.
func formatWatchLine(r metrics.MetricsResult) string {
	return fmt.Sprintf("cpu %5.1f%%  mem %s/%s  io r %s w %s  net rx %s tx %s  load %.2f  %s",
		r.TotalCPUUsage(),
		monitor.FormatBytes(float64(r.MemoryUsedBytes())),
		monitor.FormatBytes(float64(r.MemoryTotalBytes)),
		monitor.FormatRate(metrics.Sum(r.DiskReadBytesPerSecond)),
		monitor.FormatRate(metrics.Sum(r.DiskWrittenBytesPerSecond)),
		monitor.FormatRate(metrics.Sum(r.NetworkReceiveBytesPerSecond)),
		monitor.FormatRate(metrics.Sum(r.NetworkTransmitBytesPerSecond)),
		r.Load1,
		monitor.FormatUptime(r.BootTimeSeconds),
	)
}
