package metrics

// node_exporter metric names understood by FieldMapper.
const (
	MetricBootTime        = "node_boot_time_seconds"
	MetricLoad1           = "node_load1"
	MetricLoad5           = "node_load5"
	MetricLoad15          = "node_load15"
	MetricMemAvailable    = "node_memory_MemAvailable_bytes"
	MetricMemTotal        = "node_memory_MemTotal_bytes"
	MetricMemFree         = "node_memory_MemFree_bytes"
	MetricCPUSeconds      = "node_cpu_seconds_total"
	MetricDiskIOTime      = "node_disk_io_time_seconds_total"
	MetricDiskReadTime    = "node_disk_read_time_seconds_total"
	MetricDiskWriteTime   = "node_disk_write_time_seconds_total"
	MetricDiskReadBytes   = "node_disk_read_bytes_total"
	MetricDiskWritten     = "node_disk_written_bytes_total"
	MetricNetReceiveBytes = "node_network_receive_bytes_total"
	MetricNetTransmitByte = "node_network_transmit_bytes_total"
)

// Label names read from CPU and device series.
const (
	LabelCPU    = "cpu"
	LabelMode   = "mode"
	LabelDevice = "device"
)

// gaugeFields assigns scalar gauges straight into the snapshot.
var gaugeFields = map[string]func(s *RawSnapshot, value string){
	MetricBootTime: func(s *RawSnapshot, v string) { s.BootTimestamp = ParseTolerantUint(v) },
	MetricLoad1:    func(s *RawSnapshot, v string) { s.Load1 = ParseTolerantFloat(v) },
	MetricLoad5:    func(s *RawSnapshot, v string) { s.Load5 = ParseTolerantFloat(v) },
	MetricLoad15:   func(s *RawSnapshot, v string) { s.Load15 = ParseTolerantFloat(v) },
	MetricMemAvailable: func(s *RawSnapshot, v string) {
		s.MemoryAvailableBytes = ParseTolerantUint(v)
	},
	MetricMemTotal: func(s *RawSnapshot, v string) { s.MemoryTotalBytes = ParseTolerantUint(v) },
	MetricMemFree:  func(s *RawSnapshot, v string) { s.MemoryFreeBytes = ParseTolerantUint(v) },
}

// deviceTables selects the per-device counter map for each device series.
var deviceTables = map[string]func(s *RawSnapshot) map[string]float64{
	MetricDiskIOTime:      func(s *RawSnapshot) map[string]float64 { return s.DiskIOTimeSecondsTotal },
	MetricDiskReadTime:    func(s *RawSnapshot) map[string]float64 { return s.DiskReadTimeSecondsTotal },
	MetricDiskWriteTime:   func(s *RawSnapshot) map[string]float64 { return s.DiskWriteTimeSecondsTotal },
	MetricDiskReadBytes:   func(s *RawSnapshot) map[string]float64 { return s.DiskReadBytesTotal },
	MetricDiskWritten:     func(s *RawSnapshot) map[string]float64 { return s.DiskWrittenBytesTotal },
	MetricNetReceiveBytes: func(s *RawSnapshot) map[string]float64 { return s.NetworkReceiveBytesTotal },
	MetricNetTransmitByte: func(s *RawSnapshot) map[string]float64 { return s.NetworkTransmitBytesTotal },
}

// cpuModes maps the mode label of node_cpu_seconds_total to its accumulator.
// Modes not listed (guest, guest_nice) are ignored.
var cpuModes = map[string]func(c *CPUSeconds, v float64){
	"idle":    func(c *CPUSeconds, v float64) { c.Idle = v },
	"iowait":  func(c *CPUSeconds, v float64) { c.IOWait = v },
	"irq":     func(c *CPUSeconds, v float64) { c.IRQ = v },
	"nice":    func(c *CPUSeconds, v float64) { c.Nice = v },
	"softirq": func(c *CPUSeconds, v float64) { c.SoftIRQ = v },
	"steal":   func(c *CPUSeconds, v float64) { c.Steal = v },
	"system":  func(c *CPUSeconds, v float64) { c.System = v },
	"user":    func(c *CPUSeconds, v float64) { c.User = v },
}

// IsKnownMetric reports whether name is one of the series FieldMapper reads.
func IsKnownMetric(name string) bool {
	if name == MetricCPUSeconds {
		return true
	}
	if _, ok := gaugeFields[name]; ok {
		return true
	}
	_, ok := deviceTables[name]
	return ok
}
