package monitor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pimon/internal/metrics"
)

var detailTitleStyle = lipgloss.NewStyle().
	Foreground(ColorAccent).
	Bold(true).
	Padding(0, 1)

// renderDetailView renders the per-CPU and per-device breakdown inside the
// scrollable viewport.
func (m Model) renderDetailView() string {
	width, _ := m.size()

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")

	if m.viewportReady {
		b.WriteString(m.detailViewport.View())
	} else {
		b.WriteString(m.renderDetailContent(width))
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetailFooter())
	return b.String()
}

// updateDetailViewportContent re-renders the detail sections into the viewport.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	width, _ := m.size()
	m.detailViewport.SetContent(m.renderDetailContent(width))
}

// renderDetailContent builds every detail section for the newest result.
func (m Model) renderDetailContent(width int) string {
	if m.current == nil {
		return detailTitleStyle.Render("Waiting for metrics data...")
	}
	r := m.current

	sections := []string{
		m.renderDetailCPUSection(r, width),
		m.renderDetailMemorySection(r, width),
		m.renderDeviceSection("Disk", SeriesDiskRead, r.DiskReadBytesPerSecond, r.DiskWrittenBytesPerSecond, "read", "write", width),
		m.renderDeviceSection("Network", SeriesNetReceive, r.NetworkReceiveBytesPerSecond, r.NetworkTransmitBytesPerSecond, "rx", "tx", width),
	}
	return strings.Join(sections, "\n")
}

// renderDetailCPUSection renders one bar per CPU plus load averages.
func (m Model) renderDetailCPUSection(r *metrics.MetricsResult, width int) string {
	total := r.TotalCPUUsage()
	lines := []string{SectionHeader("CPU", fmt.Sprintf("%5.1f%%", total), width)}

	barWidth := width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	for i, usage := range r.CPUUsage {
		label := LabelStyle.Render(fmt.Sprintf("cpu%-3d", i))
		pct := lipgloss.NewStyle().Foreground(MetricColor(usage)).Render(fmt.Sprintf("%5.1f%%", usage))
		lines = append(lines, SectionContentLine(label+" "+ThinProgressBar(barWidth, usage)+" "+pct, width))
	}

	load := fmt.Sprintf("load   %.2f  %.2f  %.2f", r.Load1, r.Load5, r.Load15)
	lines = append(lines, SectionContentLine(LabelStyle.Render(load), width))
	lines = append(lines, SectionContentLine(
		RenderMiniSparkline(m.history.Values(SeriesCPU), width-4, 100, ColorCPUGraph), width))
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderDetailMemorySection renders used, available, free and total memory.
func (m Model) renderDetailMemorySection(r *metrics.MetricsResult, width int) string {
	used := r.MemoryUsedBytes()
	var percent float64
	if r.MemoryTotalBytes > 0 {
		percent = float64(used) / float64(r.MemoryTotalBytes) * 100
	}
	lines := []string{SectionHeader("Memory", fmt.Sprintf("%5.1f%%", percent), width)}

	barWidth := width - 6
	if barWidth < 10 {
		barWidth = 10
	}
	lines = append(lines, SectionContentLine(ThinProgressBar(barWidth, percent), width))

	for _, row := range []struct {
		label string
		value uint64
	}{
		{"used", used},
		{"available", r.MemoryAvailableBytes},
		{"free", r.MemoryFreeBytes},
		{"total", r.MemoryTotalBytes},
	} {
		text := LabelStyle.Render(fmt.Sprintf("%-10s", row.label)) + ValueStyle.Render(FormatBytes(float64(row.value)))
		lines = append(lines, SectionContentLine(text, width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderDeviceSection renders one line per device with its two rates.
// Devices are sorted by name.
func (m Model) renderDeviceSection(title string, trend Series, in, out map[string]float64, inLabel, outLabel string, width int) string {
	summary := fmt.Sprintf("%s %s  %s %s", inLabel, FormatRate(metrics.Sum(in)), outLabel, FormatRate(metrics.Sum(out)))
	lines := []string{SectionHeader(title, summary, width)}

	devices := make([]string, 0, len(in)+len(out))
	seen := make(map[string]bool, len(in)+len(out))
	for _, table := range []map[string]float64{in, out} {
		for name := range table {
			if !seen[name] {
				seen[name] = true
				devices = append(devices, name)
			}
		}
	}
	sort.Strings(devices)

	if len(devices) == 0 {
		lines = append(lines, SectionContentLine(LabelStyle.Render("no devices"), width))
	}
	for _, name := range devices {
		text := ValueStyle.Render(fmt.Sprintf("%-12s", truncate(name, 12))) +
			LabelStyle.Render(fmt.Sprintf(" %s %12s  %s %12s", inLabel, FormatRate(in[name]), outLabel, FormatRate(out[name])))
		lines = append(lines, SectionContentLine(text, width))
	}

	values := m.history.Values(trend)
	lines = append(lines, SectionContentLine(
		RenderMiniSparkline(values, width-4, AutoMax(values), SeriesColor(trend)), width))
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderDetailFooter renders navigation hints for the detail view.
func (m Model) renderDetailFooter() string {
	if m.editingURL {
		w, _ := m.size()
		return m.renderFooter(w)
	}
	hints := []string{"Esc back", "↑↓ scroll", "u url", "q quit"}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
