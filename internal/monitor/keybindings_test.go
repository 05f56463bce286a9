package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewMode_String(t *testing.T) {
	assert.Equal(t, "dashboard", ViewDashboard.String())
	assert.Equal(t, "detail", ViewDetail.String())
	assert.Equal(t, "dashboard", ViewMode(7).String())
}

func TestViewMode_Constants(t *testing.T) {
	assert.Equal(t, ViewMode(0), ViewDashboard)
	assert.Equal(t, ViewMode(1), ViewDetail)
}

func TestKeyConstants(t *testing.T) {
	assert.Equal(t, "q", KeyQuit)
	assert.Equal(t, "ctrl+c", KeyQuitAlt)
	assert.Equal(t, "u", KeyEditURL)
	assert.Equal(t, "d", KeyToggleDetail)
	assert.Equal(t, "esc", KeyCollapse)
	assert.Equal(t, "?", KeyToggleHelp)
}

func TestHelpBindingsCoverKeys(t *testing.T) {
	var keys []string
	for _, b := range helpBindings {
		keys = append(keys, b.Key)
	}
	assert.Contains(t, keys, "q / Ctrl+C")
	assert.Contains(t, keys, "u")
	assert.Contains(t, keys, "?")
}
