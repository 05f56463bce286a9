package metrics

import "github.com/rileyhilliard/pimon/internal/exposition"

var _ exposition.Listener = (*FieldMapper)(nil)

// FieldMapper is an exposition.Listener that copies known node_exporter
// series into a RawSnapshot. Unknown series and labels are ignored.
type FieldMapper struct {
	snap *RawSnapshot

	// Line-scoped scratch state.
	metric    string
	cpuIndex  int
	cpuMode   string
	device    string
	hasDevice bool
}

// NewFieldMapper returns a mapper writing into snap. Missing maps in snap are
// allocated.
func NewFieldMapper(snap *RawSnapshot) *FieldMapper {
	snap.ensureMaps()
	m := &FieldMapper{snap: snap}
	m.resetLabels()
	return m
}

// Populate parses payload into snap.
func Populate(snap *RawSnapshot, payload []byte) {
	exposition.Parse(payload, NewFieldMapper(snap))
}

func (m *FieldMapper) resetLabels() {
	m.cpuIndex = -1
	m.cpuMode = ""
	m.device = ""
	m.hasDevice = false
}

func (m *FieldMapper) OnMetricsBegin(name string) {
	m.metric = name
}

func (m *FieldMapper) OnMetricsLabel(name, value string) {
	switch {
	case m.metric == MetricCPUSeconds:
		switch name {
		case LabelCPU:
			m.cpuIndex = parseTolerantInt(value)
		case LabelMode:
			m.cpuMode = value
		}
	case deviceTables[m.metric] != nil:
		if name == LabelDevice {
			m.device = value
			m.hasDevice = true
		}
	}
}

func (m *FieldMapper) OnMetricsValue(value string) {
	if set, ok := gaugeFields[m.metric]; ok {
		set(m.snap, value)
		return
	}

	if m.metric == MetricCPUSeconds {
		// Samples without a usable cpu label would land on a negative index.
		if set, ok := cpuModes[m.cpuMode]; ok && m.cpuIndex >= 0 {
			cpu := m.snap.CPUSecondsTotal[m.cpuIndex]
			set(&cpu, ParseTolerantFloat(value))
			m.snap.CPUSecondsTotal[m.cpuIndex] = cpu
		}
		m.resetLabels()
		return
	}

	if table, ok := deviceTables[m.metric]; ok {
		if m.hasDevice {
			table(m.snap)[m.device] = ParseTolerantFloat(value)
		}
		m.resetLabels()
	}
}

// OnMetricsEnd also drops labels of a line that never reached its value, so
// they cannot leak into the next sample.
func (m *FieldMapper) OnMetricsEnd() {
	m.metric = ""
	m.resetLabels()
}
