package monitor

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/sampler"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewDetail
)

// String returns a human-readable label for the view mode.
func (v ViewMode) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	default:
		return "dashboard"
	}
}

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyEditURL      = "u"
	KeyToggleDetail = "d"
	KeyExpand       = "enter"
	KeyCollapse     = "esc"
	KeyToggleHelp   = "?"
	KeySubmit       = "enter"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if m.editingURL {
		return true, m.handleURLEditKey(msg)
	}

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		return true, m.quit()

	case KeyEditURL:
		m.beginURLEdit()
		return true, nil

	case KeyToggleDetail, KeyExpand:
		if m.viewMode == ViewDetail {
			m.viewMode = ViewDashboard
		} else {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewDashboard
		return true, nil
	}

	return false, nil
}

// handleURLEditKey routes keys to the URL editor while it is open.
func (m *Model) handleURLEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case KeyQuitAlt:
		return m.quit()

	case KeyCollapse:
		m.endURLEdit()
		return nil

	case KeySubmit:
		value := strings.TrimSpace(m.urlInput.Value())
		if _, err := sampler.ValidateURL(value); err != nil {
			m.urlErr = errors.Summarize(err)
			return nil
		}
		if value != m.url {
			// Samples from the old target would share charts with the new one.
			m.history.Clear()
			m.current = nil
			m.lastUpdate = time.Time{}
		}
		m.url = value
		m.source.EnqueueCommand(sampler.ChangeURLCommand{URL: value, RefreshInterval: m.interval})
		m.endURLEdit()
		return nil
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	m.urlErr = ""
	return cmd
}

func (m *Model) beginURLEdit() {
	m.editingURL = true
	m.showHelp = false
	m.urlErr = ""
	m.urlInput.SetValue(m.url)
	m.urlInput.CursorEnd()
	m.urlInput.Focus()
}

func (m *Model) endURLEdit() {
	m.editingURL = false
	m.urlErr = ""
	m.urlInput.Blur()
}

// quit asks the sampler to stop and ends the program.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.source.EnqueueCommand(sampler.QuitCommand{})
	return tea.Quit
}
