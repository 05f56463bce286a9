package monitor

import (
	"sync"

	"github.com/rileyhilliard/pimon/internal/metrics"
)

// DefaultHistorySize is the default number of data points to retain per series.
const DefaultHistorySize = 150

// Series identifies one chart in the dashboard.
type Series int

const (
	SeriesCPU Series = iota
	SeriesMemory
	SeriesDiskRead
	SeriesDiskWrite
	SeriesNetReceive
	SeriesNetTransmit

	seriesCount
)

// String returns a short label for the series.
func (s Series) String() string {
	switch s {
	case SeriesCPU:
		return "cpu"
	case SeriesMemory:
		return "mem"
	case SeriesDiskRead:
		return "io_read"
	case SeriesDiskWrite:
		return "io_write"
	case SeriesNetReceive:
		return "net_rx"
	case SeriesNetTransmit:
		return "net_tx"
	default:
		return "unknown"
	}
}

// History keeps a fixed window of samples per series using ring buffers.
// Buffers start full of zeros, so every series always reports size values.
type History struct {
	mu     sync.RWMutex
	size   int
	series [seriesCount]*ringBuffer
	pushes int
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	h := &History{size: size}
	for i := range h.series {
		h.series[i] = newZeroFilledRingBuffer(size)
	}
	return h
}

// Push appends one derived sample to every series.
func (h *History) Push(r metrics.MetricsResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.series[SeriesCPU].push(r.TotalCPUUsage())
	h.series[SeriesMemory].push(float64(r.MemoryUsedBytes()))
	h.series[SeriesDiskRead].push(metrics.Sum(r.DiskReadBytesPerSecond))
	h.series[SeriesDiskWrite].push(metrics.Sum(r.DiskWrittenBytesPerSecond))
	h.series[SeriesNetReceive].push(metrics.Sum(r.NetworkReceiveBytesPerSecond))
	h.series[SeriesNetTransmit].push(metrics.Sum(r.NetworkTransmitBytesPerSecond))
	h.pushes++
}

// Values returns the series in chronological order (oldest first).
func (h *History) Values(s Series) []float64 {
	if s < 0 || s >= seriesCount {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.series[s].getAll()
}

// Last returns the newest value of the series.
func (h *History) Last(s Series) float64 {
	if s < 0 || s >= seriesCount {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.series[s].last()
}

// Size returns the window length.
func (h *History) Size() int {
	return h.size
}

// Pushes returns how many samples have been pushed since creation or Clear.
func (h *History) Pushes() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pushes
}

// Clear resets every series to zeros.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.series {
		h.series[i] = newZeroFilledRingBuffer(h.size)
	}
	h.pushes = 0
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// newZeroFilledRingBuffer creates a ring buffer that already holds size zeros.
func newZeroFilledRingBuffer(size int) *ringBuffer {
	r := newRingBuffer(size)
	r.count = size
	return r
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the newest value is at head-1.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}

// getAll returns all stored values in chronological order.
func (r *ringBuffer) getAll() []float64 {
	return r.getLast(r.count)
}

// last returns the newest value, or 0 when empty.
func (r *ringBuffer) last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+r.size)%r.size]
}
