package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// scaleMode picks the ceiling a row's chart is drawn against.
type scaleMode int

const (
	scalePercent scaleMode = iota
	scaleMemoryTotal
	scaleAuto
)

type dashboardRow struct {
	label  string
	series Series
	scale  scaleMode
}

// dashboardRows is the chart stack, top to bottom. Continuation rows have a
// blank label.
var dashboardRows = []dashboardRow{
	{label: "CPU", series: SeriesCPU, scale: scalePercent},
	{label: "MEM", series: SeriesMemory, scale: scaleMemoryTotal},
	{label: "I/O", series: SeriesDiskRead, scale: scaleAuto},
	{label: "   ", series: SeriesDiskWrite, scale: scaleAuto},
	{label: "NET", series: SeriesNetReceive, scale: scaleAuto},
	{label: "   ", series: SeriesNetTransmit, scale: scaleAuto},
}

// rowPrefixWidth is label + value + unit + gap.
const rowPrefixWidth = 4 + 4 + 2 + 1

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	width, height := m.size()

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")

	footer := m.renderFooter(width)
	footerLines := strings.Count(footer, "\n") + 1

	graphHeight := (height - 1 - footerLines) / len(dashboardRows)
	if graphHeight < 1 {
		graphHeight = 1
	}
	graphWidth := width - rowPrefixWidth
	if graphWidth < 1 {
		graphWidth = 1
	}

	rows := make([]string, 0, len(dashboardRows))
	for _, row := range dashboardRows {
		rows = append(rows, m.renderRow(row, graphWidth, graphHeight))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// renderHeader renders the clock and uptime on the left and the target on
// the right.
func (m Model) renderHeader(width int) string {
	uptime := 0.0
	if m.current != nil {
		uptime = m.current.BootTimeSeconds
	}
	left := FormatClock(m.now()) + "  " + FormatUptime(uptime)

	right := m.url
	if right == "" {
		right = "no URL, press u"
	}
	room := width - lipgloss.Width(left) - 4
	if room < 0 {
		room = 0
	}
	right = truncate(right, room)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return HeaderStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderRow renders one labelled chart.
func (m Model) renderRow(row dashboardRow, graphWidth, graphHeight int) string {
	values := m.history.Values(row.series)
	last := m.history.Last(row.series)

	var value int
	var unit string
	if row.scale == scalePercent {
		value, unit = int(last), "%"
	} else {
		value, unit = AutoUnit(last)
	}

	prefix := RowLabelStyle.Render(row.label) +
		RowValueStyle.Render(fmt.Sprintf("%03d", value)) +
		RowUnitStyle.Render(unit) + " "

	graph := RenderBrailleSparkline(values, graphWidth, graphHeight, m.rowCeiling(row, values), SeriesColor(row.series))
	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, graph)
}

// rowCeiling returns the value drawn at the top of a row's chart.
func (m Model) rowCeiling(row dashboardRow, values []float64) float64 {
	switch row.scale {
	case scalePercent:
		return 100
	case scaleMemoryTotal:
		if m.current != nil && m.current.MemoryTotalBytes > 0 {
			return float64(m.current.MemoryTotalBytes)
		}
	}
	return AutoMax(values)
}

// renderFooter renders the URL editor when open, otherwise the key hints.
// A rejected URL adds a second line with the reason.
func (m Model) renderFooter(width int) string {
	if m.editingURL {
		line := m.urlInput.View()
		if m.urlErr != "" {
			line += "\n" + ErrorTextStyle.Render(truncate(m.urlErr, width-2))
		}
		return line
	}

	hints := []string{"q quit", "u url", "d detail", "? help"}
	if m.current == nil {
		hints = append(hints, "waiting for data")
	} else if s := m.SecondsSinceUpdate(); s > 0 {
		hints = append(hints, fmt.Sprintf("updated %ds ago", s))
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width == 1 {
		return "…"
	}
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}
