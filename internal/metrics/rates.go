package metrics

import (
	"math"
	"time"
)

// Compute derives a MetricsResult from two snapshots taken in order.
// now is only used to turn the boot timestamp into an uptime.
func Compute(previous, current RawSnapshot, now time.Time) MetricsResult {
	result := MetricsResult{
		Tick:                 current.Tick,
		Load1:                current.Load1,
		Load5:                current.Load5,
		Load15:               current.Load15,
		MemoryAvailableBytes: current.MemoryAvailableBytes,
		MemoryTotalBytes:     current.MemoryTotalBytes,
		MemoryFreeBytes:      current.MemoryFreeBytes,
	}

	if current.BootTimestamp != 0 {
		result.BootTimeSeconds = float64(now.Unix() - int64(current.BootTimestamp))
	}

	result.CPUUsage = cpuUsage(previous, current)

	elapsed := (float64(current.Tick) - float64(previous.Tick)) / 1000
	result.DiskReadBytesPerSecond = byteRates(previous.DiskReadBytesTotal, current.DiskReadBytesTotal, elapsed)
	result.DiskWrittenBytesPerSecond = byteRates(previous.DiskWrittenBytesTotal, current.DiskWrittenBytesTotal, elapsed)
	result.NetworkReceiveBytesPerSecond = byteRates(previous.NetworkReceiveBytesTotal, current.NetworkReceiveBytesTotal, elapsed)
	result.NetworkTransmitBytesPerSecond = byteRates(previous.NetworkTransmitBytesTotal, current.NetworkTransmitBytesTotal, elapsed)

	return result
}

// cpuUsage returns busy percent per CPU index in ascending index order.
//
// Gaps below an index are zero-filled. An index absent from previous is
// skipped without advancing the fill cursor, so the next index present in both
// snapshots fills it with zero; a trailing new index leaves the slice short.
func cpuUsage(previous, current RawSnapshot) []float64 {
	usage := make([]float64, 0, len(current.CPUSecondsTotal))
	next := 0
	for _, idx := range current.SortedCPUIndexes() {
		for next < idx {
			usage = append(usage, 0)
			next++
		}

		prev, ok := previous.CPUSecondsTotal[idx]
		if !ok {
			continue
		}

		cur := current.CPUSecondsTotal[idx]
		usage = append(usage, busyPercent(cur.Total()-prev.Total(), cur.Idle-prev.Idle))
		next++
	}
	return usage
}

// busyPercent is 100*(total-idle)/total clamped to [0,100]. A zero or NaN
// total counts as idle.
func busyPercent(totalDelta, idleDelta float64) float64 {
	if totalDelta == 0 {
		return 0
	}
	p := 100 * (totalDelta - idleDelta) / totalDelta
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(100, math.Max(0, p))
}

// byteRates returns per-second deltas for devices present in both tables.
//
// A counter that went backwards (target restarted) yields a negative rate.
// It is not clamped.
func byteRates(previous, current map[string]float64, elapsedSeconds float64) map[string]float64 {
	rates := make(map[string]float64, len(current))
	if elapsedSeconds <= 0 {
		return rates
	}
	for device, value := range current {
		prev, ok := previous[device]
		if !ok {
			continue
		}
		rates[device] = (value - prev) / elapsedSeconds
	}
	return rates
}
