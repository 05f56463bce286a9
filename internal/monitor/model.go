package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/pimon/internal/metrics"
	"github.com/rileyhilliard/pimon/internal/sampler"
)

// DefaultFrameInterval is the redraw period (5 fps).
const DefaultFrameInterval = 200 * time.Millisecond

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ResultSource is the side of the sampler the dashboard talks to.
// *sampler.Sampler satisfies it.
type ResultSource interface {
	EnqueueCommand(cmd sampler.Command)
	TryDequeueResult() (metrics.MetricsResult, bool)
}

// Options configures a Model.
type Options struct {
	URL             string
	RefreshInterval time.Duration
	FrameInterval   time.Duration
	HistorySize     int
	// Now replaces time.Now for the header clock.
	Now func() time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	source  ResultSource
	history *History
	current *metrics.MetricsResult

	url           string
	interval      time.Duration
	frameInterval time.Duration
	now           func() time.Time

	width      int
	height     int
	lastUpdate time.Time
	quitting   bool
	viewMode   ViewMode
	showHelp   bool

	// URL editor
	editingURL bool
	urlInput   textinput.Model
	urlErr     string

	// Detail view viewport for scrollable content
	detailViewport viewport.Model
	viewportReady  bool
}

// frameMsg drives one redraw.
type frameMsg time.Time

// NewModel creates a dashboard reading from src.
func NewModel(src ResultSource, opts Options) Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = sampler.DefaultRefreshInterval
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	input := textinput.New()
	input.Prompt = "URL: "
	input.Placeholder = "http://localhost:9100/metrics"
	input.CharLimit = 512

	return Model{
		source:        src,
		history:       NewHistory(opts.HistorySize),
		url:           opts.URL,
		interval:      opts.RefreshInterval,
		frameInterval: opts.FrameInterval,
		now:           opts.Now,
		urlInput:      input,
	}
}

// Init points the sampler at the configured URL and starts the frame clock.
func (m Model) Init() tea.Cmd {
	m.source.EnqueueCommand(sampler.ChangeURLCommand{URL: m.url, RefreshInterval: m.interval})
	return m.frameCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		if m.viewMode == ViewDetail && m.viewportReady {
			var vpCmd tea.Cmd
			m.detailViewport, vpCmd = m.detailViewport.Update(msg)
			return m, vpCmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Reserve space for header and footer
		headerHeight := 2
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, viewportHeight)
			m.detailViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = viewportHeight
		}
		m.urlInput.Width = m.width - len(m.urlInput.Prompt) - 2

		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case frameMsg:
		if m.drainResults() > 0 && m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}
		return m, m.frameCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var content string
	if m.viewMode == ViewDetail {
		content = m.renderDetailView()
	} else {
		content = m.renderDashboard()
	}
	if m.showHelp {
		return m.renderHelpOverlay(content)
	}
	return content
}

// frameCmd schedules the next redraw.
func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// drainResults moves every queued result into the history and returns how
// many there were. It never blocks.
func (m *Model) drainResults() int {
	n := 0
	for {
		result, ok := m.source.TryDequeueResult()
		if !ok {
			return n
		}
		m.history.Push(result)
		m.current = &result
		m.lastUpdate = m.now()
		n++
	}
}

// History returns the rolling series behind the charts.
func (m Model) History() *History {
	return m.history
}

// Current returns the newest result, or nil before the first one arrives.
func (m Model) Current() *metrics.MetricsResult {
	return m.current
}

// URL returns the scrape target the dashboard last sent to the sampler.
func (m Model) URL() string {
	return m.url
}

// Quitting reports whether the user asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// SecondsSinceUpdate returns how many seconds have passed since the last result.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}

// size returns the terminal dimensions, falling back to 80x24.
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
