// Package sampler runs the background scrape loop.
//
// A Sampler polls its command queue every quantum, fetches the configured
// endpoint once per refresh interval, and publishes a metrics.MetricsResult
// for every fetch after the first. The UI talks to it only through
// EnqueueCommand and TryDequeueResult, neither of which blocks.
package sampler

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/logger"
	"github.com/rileyhilliard/pimon/internal/metrics"
)

const (
	// DefaultRefreshInterval is the time between scrapes.
	DefaultRefreshInterval = time.Second
	// DefaultPollInterval is how often commands are drained.
	DefaultPollInterval = 100 * time.Millisecond
)

// State is the lifecycle stage of a Sampler.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithURL sets the initial scrape target. An empty URL disables fetching
// until a ChangeURLCommand arrives.
func WithURL(u string) Option {
	return func(s *Sampler) { s.url = u }
}

// WithRefreshInterval sets the initial time between scrapes.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Sampler) { s.refreshInterval = d }
}

// WithPollInterval sets the command polling quantum.
func WithPollInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithConnectTimeout bounds the TCP dial of each scrape.
func WithConnectTimeout(d time.Duration) Option {
	return func(s *Sampler) { s.connectTimeout = d }
}

// WithHTTPClient replaces the HTTP client used for scrapes.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sampler) { s.httpClient = c }
}

// WithFetcher replaces the scrape transport entirely.
func WithFetcher(f Fetcher) Option {
	return func(s *Sampler) { s.fetcher = f }
}

// WithLogger sets the logger for cycle errors and debug stats. Without it the
// package default from logger.Default is used.
func WithLogger(l logger.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now. Ticks and uptime are derived from it.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) {
		if now != nil {
			s.now = now
		}
	}
}

// Sampler turns periodic scrapes into MetricsResults.
type Sampler struct {
	commands *Queue[Command]
	results  *Queue[Result]

	fetcher        Fetcher
	httpClient     *http.Client
	connectTimeout time.Duration
	pollInterval   time.Duration
	log            logger.Logger
	now            func() time.Time

	// Owned by the loop goroutine once Run starts.
	url             string
	refreshInterval time.Duration
	previous        *metrics.RawSnapshot
	epoch           time.Time

	state    atomic.Int32
	done     chan struct{}
	stopOnce sync.Once
}

// New creates an idle Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		commands:        NewQueue[Command](),
		results:         NewQueue[Result](),
		connectTimeout:  DefaultConnectTimeout,
		pollInterval:    DefaultPollInterval,
		refreshInterval: DefaultRefreshInterval,
		log:             logger.Default(),
		now:             time.Now,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = NewHTTPFetcher(s.httpClient, s.connectTimeout)
	}
	return s
}

// State returns the current lifecycle stage.
func (s *Sampler) State() State {
	return State(s.state.Load())
}

// EnqueueCommand hands cmd to the loop. It never blocks.
func (s *Sampler) EnqueueCommand(cmd Command) {
	s.commands.Enqueue(cmd)
}

// TryDequeueResult returns the oldest unread result, if any.
func (s *Sampler) TryDequeueResult() (metrics.MetricsResult, bool) {
	for {
		r, ok := s.results.TryDequeue()
		if !ok {
			return metrics.MetricsResult{}, false
		}
		if r.Metrics != nil {
			return *r.Metrics, true
		}
	}
}

// Done is closed when Run returns.
func (s *Sampler) Done() <-chan struct{} {
	return s.done
}

// Start runs the loop on a new goroutine.
func (s *Sampler) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return errors.New(errors.ErrConfig, "Sampler was already started",
			"Create a new sampler for each run")
	}
	go s.loop(ctx)
	return nil
}

// Stop asks the loop to quit and waits for it to return. The wait covers at
// most one poll quantum plus one in-flight fetch. Stop on a sampler that never
// started only marks it stopped.
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() {
		if s.state.CompareAndSwap(int32(StateIdle), int32(StateStopped)) {
			close(s.done)
			return
		}
		s.EnqueueCommand(QuitCommand{})
	})
	<-s.done
}

// Run executes the loop on the calling goroutine until a QuitCommand is
// drained or ctx is cancelled. Cancelling ctx also aborts an in-flight fetch.
func (s *Sampler) Run(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return errors.New(errors.ErrConfig, "Sampler was already started",
			"Create a new sampler for each run")
	}
	return s.loop(ctx)
}

func (s *Sampler) loop(ctx context.Context) error {
	defer close(s.done)
	defer s.state.Store(int32(StateStopped))

	s.epoch = s.now()
	last := s.epoch
	var elapsed time.Duration

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			s.log.Debug("context done, stopping")
			return err
		}

		quit := s.drainCommands()

		current := s.now()
		elapsed += current.Sub(last)
		last = current

		if elapsed >= s.refreshInterval {
			elapsed = 0
			s.refresh(ctx)
		}

		if quit {
			return nil
		}

		wait := s.pollInterval - s.now().Sub(current)
		if wait <= 0 {
			continue
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

// drainCommands applies every queued command and reports whether a
// QuitCommand was among them.
func (s *Sampler) drainCommands() bool {
	quit := false
	for {
		cmd, ok := s.commands.TryDequeue()
		if !ok {
			return quit
		}
		switch c := cmd.(type) {
		case QuitCommand:
			s.log.Info("stopping sampler")
			quit = true
		case ChangeURLCommand:
			s.log.Info("changing URL to %s, refresh interval %s", c.URL, c.RefreshInterval)
			s.url = c.URL
			s.refreshInterval = c.RefreshInterval
		}
	}
}

// refresh runs one fetch, parse and diff cycle. Failures are logged and leave
// the previous snapshot in place.
func (s *Sampler) refresh(ctx context.Context) {
	if s.url == "" {
		return
	}

	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		s.log.Error("%s", errors.Summarize(err))
		return
	}

	snap := metrics.NewRawSnapshot()
	metrics.Populate(&snap, body)
	completed := s.now()
	if ms := completed.Sub(s.epoch).Milliseconds(); ms > 0 {
		snap.Tick = uint64(ms)
	}
	s.log.Debug("fetched %d bytes from %s, %d cpus", len(body), s.url, len(snap.CPUSecondsTotal))

	if s.previous == nil {
		s.previous = &snap
		return
	}

	result := metrics.Compute(*s.previous, snap, completed)
	s.previous = &snap
	s.results.Enqueue(Result{Metrics: &result})
}
