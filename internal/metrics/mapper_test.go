package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "node_exporter.txt"))
	require.NoError(t, err)
	return data
}

func TestPopulate_Fixture(t *testing.T) {
	snap := NewRawSnapshot()
	Populate(&snap, loadFixture(t))

	assert.Equal(t, uint64(1700000120), snap.BootTimestamp)
	assert.InDelta(t, 0.42, snap.Load1, 1e-9)
	assert.InDelta(t, 0.3, snap.Load5, 1e-9)
	assert.InDelta(t, 0.18, snap.Load15, 1e-9)
	assert.Equal(t, uint64(3217082880), snap.MemoryAvailableBytes)
	assert.Equal(t, uint64(4102348000), snap.MemoryTotalBytes)
	assert.Equal(t, uint64(1073741824), snap.MemoryFreeBytes)

	require.Len(t, snap.CPUSecondsTotal, 2)
	cpu0 := snap.CPUSecondsTotal[0]
	assert.InDelta(t, 18234.51, cpu0.Idle, 1e-9)
	assert.InDelta(t, 12.37, cpu0.IOWait, 1e-9)
	assert.InDelta(t, 1.02, cpu0.Nice, 1e-9)
	assert.InDelta(t, 7.89, cpu0.SoftIRQ, 1e-9)
	assert.InDelta(t, 321.4, cpu0.System, 1e-9)
	assert.InDelta(t, 912.75, cpu0.User, 1e-9)
	assert.InDelta(t, 880.01, snap.CPUSecondsTotal[1].User, 1e-9)

	assert.Equal(t, map[string]float64{"mmcblk0": 698236928, "sda": 12582912}, snap.DiskReadBytesTotal)
	assert.Equal(t, map[string]float64{"mmcblk0": 2147483648, "sda": 4096}, snap.DiskWrittenBytesTotal)
	assert.Equal(t, map[string]float64{"eth0": 987654321, "lo": 123456, "wlan0": 0}, snap.NetworkReceiveBytesTotal)
	assert.Equal(t, map[string]float64{"eth0": 123456789, "lo": 123456, "wlan0": 0}, snap.NetworkTransmitBytesTotal)
	assert.Len(t, snap.DiskIOTimeSecondsTotal, 2)
	assert.Len(t, snap.DiskReadTimeSecondsTotal, 2)
	assert.Len(t, snap.DiskWriteTimeSecondsTotal, 2)
}

func TestFieldMapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, snap RawSnapshot)
	}{
		{
			name:  "unknown series ignored",
			input: "node_uname_info{machine=\"x\"} 1\nnode_load1 2\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Equal(t, 2.0, snap.Load1)
				assert.Empty(t, snap.CPUSecondsTotal)
			},
		},
		{
			name:  "label order does not matter for cpu",
			input: "node_cpu_seconds_total{mode=\"user\",cpu=\"3\"} 7\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Equal(t, 7.0, snap.CPUSecondsTotal[3].User)
			},
		},
		{
			name:  "unknown cpu mode ignored",
			input: "node_cpu_seconds_total{cpu=\"0\",mode=\"guest\"} 7\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Empty(t, snap.CPUSecondsTotal)
			},
		},
		{
			name:  "cpu sample without cpu label dropped",
			input: "node_cpu_seconds_total{mode=\"idle\"} 7\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Empty(t, snap.CPUSecondsTotal)
			},
		},
		{
			name:  "malformed cpu index reads as zero",
			input: "node_cpu_seconds_total{cpu=\"x\",mode=\"idle\"} 7\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Equal(t, 7.0, snap.CPUSecondsTotal[0].Idle)
			},
		},
		{
			name:  "device sample without device label dropped",
			input: "node_disk_read_bytes_total{major=\"8\"} 10\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Empty(t, snap.DiskReadBytesTotal)
			},
		},
		{
			name:  "labels do not leak across lines",
			input: "node_network_receive_bytes_total{device=\"eth0\"}\nnode_network_receive_bytes_total 5\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Empty(t, snap.NetworkReceiveBytesTotal)
			},
		},
		{
			name:  "device label on an unrelated metric ignored",
			input: "node_network_up{device=\"eth0\"} 1\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Empty(t, snap.NetworkReceiveBytesTotal)
			},
		},
		{
			name:  "malformed value reads as zero",
			input: "node_load5 abc\nnode_disk_written_bytes_total{device=\"sda\"} ??\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Equal(t, 0.0, snap.Load5)
				assert.Equal(t, map[string]float64{"sda": 0}, snap.DiskWrittenBytesTotal)
			},
		},
		{
			name:  "later sample overwrites earlier",
			input: "node_load15 1\nnode_load15 4\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Equal(t, 4.0, snap.Load15)
			},
		},
		{
			name:  "memory gauges saturate on negative",
			input: "node_memory_MemFree_bytes -5\n",
			check: func(t *testing.T, snap RawSnapshot) {
				assert.Equal(t, uint64(0), snap.MemoryFreeBytes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewRawSnapshot()
			Populate(&snap, []byte(tt.input))
			tt.check(t, snap)
		})
	}
}

func TestNewFieldMapper_AllocatesMaps(t *testing.T) {
	var snap RawSnapshot
	Populate(&snap, []byte("node_disk_read_bytes_total{device=\"sda\"} 1\n"))
	assert.NotNil(t, snap.CPUSecondsTotal)
	assert.Equal(t, 1.0, snap.DiskReadBytesTotal["sda"])
}

func TestIsKnownMetric(t *testing.T) {
	assert.True(t, IsKnownMetric(MetricCPUSeconds))
	assert.True(t, IsKnownMetric(MetricLoad1))
	assert.True(t, IsKnownMetric(MetricNetTransmitByte))
	assert.False(t, IsKnownMetric("node_uname_info"))
}

func TestSortedCPUIndexes(t *testing.T) {
	snap := NewRawSnapshot()
	for _, i := range []int{5, 0, 2} {
		snap.CPUSecondsTotal[i] = CPUSeconds{}
	}
	assert.Equal(t, []int{0, 2, 5}, snap.SortedCPUIndexes())
}
