package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// spinnerColors cycle under the spinner glyph while it runs.
var spinnerColors = []lipgloss.Color{
	"#FF8C8C", // cpu
	"#87CEFA", // mem
	"#FFD700", // io
	"#00FF7F", // net
}
