// Package metrics turns node_exporter samples into render-ready rates.
//
// A RawSnapshot accumulates the cumulative counters and gauges of one fetch,
// filled by a FieldMapper listening to the exposition parser. Compute diffs
// two snapshots into a MetricsResult: per-CPU busy percentages and per-device
// bytes per second.
package metrics

import "sort"

// CPUSeconds holds the cumulative seconds one CPU spent in each mode.
type CPUSeconds struct {
	Idle    float64
	IOWait  float64
	IRQ     float64
	Nice    float64
	SoftIRQ float64
	Steal   float64
	System  float64
	User    float64
}

// Total returns the sum of all mode counters.
func (c CPUSeconds) Total() float64 {
	return c.Idle + c.IOWait + c.IRQ + c.Nice + c.SoftIRQ + c.Steal + c.System + c.User
}

// RawSnapshot is the counter and gauge state scraped in one refresh cycle.
// Counter maps hold totals since boot, keyed by CPU index or device name.
type RawSnapshot struct {
	// Tick is monotonic milliseconds at fetch completion.
	Tick uint64
	// BootTimestamp is unix seconds; 0 means unknown.
	BootTimestamp uint64

	Load1  float64
	Load5  float64
	Load15 float64

	MemoryAvailableBytes uint64
	MemoryTotalBytes     uint64
	MemoryFreeBytes      uint64

	CPUSecondsTotal map[int]CPUSeconds

	// Disk time counters are scraped but not surfaced in MetricsResult.
	DiskIOTimeSecondsTotal    map[string]float64
	DiskReadTimeSecondsTotal  map[string]float64
	DiskWriteTimeSecondsTotal map[string]float64

	DiskReadBytesTotal        map[string]float64
	DiskWrittenBytesTotal     map[string]float64
	NetworkReceiveBytesTotal  map[string]float64
	NetworkTransmitBytesTotal map[string]float64
}

// NewRawSnapshot returns a snapshot with every map allocated.
func NewRawSnapshot() RawSnapshot {
	var s RawSnapshot
	s.ensureMaps()
	return s
}

func (s *RawSnapshot) ensureMaps() {
	if s.CPUSecondsTotal == nil {
		s.CPUSecondsTotal = make(map[int]CPUSeconds)
	}
	for _, table := range []*map[string]float64{
		&s.DiskIOTimeSecondsTotal,
		&s.DiskReadTimeSecondsTotal,
		&s.DiskWriteTimeSecondsTotal,
		&s.DiskReadBytesTotal,
		&s.DiskWrittenBytesTotal,
		&s.NetworkReceiveBytesTotal,
		&s.NetworkTransmitBytesTotal,
	} {
		if *table == nil {
			*table = make(map[string]float64)
		}
	}
}

// SortedCPUIndexes returns the CPU indexes present in the snapshot in
// ascending order.
func (s RawSnapshot) SortedCPUIndexes() []int {
	idx := make([]int, 0, len(s.CPUSecondsTotal))
	for i := range s.CPUSecondsTotal {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// MetricsResult is one derived sample, ready for rendering.
type MetricsResult struct {
	Tick            uint64  `json:"tick"`
	BootTimeSeconds float64 `json:"uptime_seconds"`

	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`

	MemoryAvailableBytes uint64 `json:"memory_available_bytes"`
	MemoryTotalBytes     uint64 `json:"memory_total_bytes"`
	MemoryFreeBytes      uint64 `json:"memory_free_bytes"`

	// CPUUsage is busy percent per CPU index, zero-filled for gaps.
	CPUUsage []float64 `json:"cpu_usage"`

	DiskReadBytesPerSecond        map[string]float64 `json:"disk_read_bytes_per_second"`
	DiskWrittenBytesPerSecond     map[string]float64 `json:"disk_written_bytes_per_second"`
	NetworkReceiveBytesPerSecond  map[string]float64 `json:"network_receive_bytes_per_second"`
	NetworkTransmitBytesPerSecond map[string]float64 `json:"network_transmit_bytes_per_second"`
}

// TotalCPUUsage returns the mean usage across all CPUs, or 0 with no CPUs.
func (r MetricsResult) TotalCPUUsage() float64 {
	if len(r.CPUUsage) == 0 {
		return 0
	}
	var total float64
	for _, u := range r.CPUUsage {
		total += u
	}
	return total / float64(len(r.CPUUsage))
}

// MemoryUsedBytes returns total minus available memory, floored at zero.
func (r MetricsResult) MemoryUsedBytes() uint64 {
	if r.MemoryAvailableBytes >= r.MemoryTotalBytes {
		return 0
	}
	return r.MemoryTotalBytes - r.MemoryAvailableBytes
}

// Sum adds every value in a per-device rate table.
func Sum(rates map[string]float64) float64 {
	var total float64
	for _, v := range rates {
		total += v
	}
	return total
}
