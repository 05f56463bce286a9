package monitor

import (
	"fmt"
	"math"
	"time"
)

// byteUnits are the decimal suffixes used by AutoUnit.
var byteUnits = []string{"B", "K", "M", "G", "T"}

// AutoUnit scales a byte quantity to a whole number with a decimal unit
// suffix (powers of 1000). Values are truncated, not rounded. Negative values,
// such as a rate across a counter reset, scale by magnitude.
func AutoUnit(bytes float64) (int, string) {
	if math.IsNaN(bytes) || math.IsInf(bytes, 0) {
		return 0, byteUnits[0]
	}
	value := bytes
	unit := 0
	for unit < len(byteUnits)-1 && math.Abs(value) >= 1000 {
		value /= 1000
		unit++
	}
	return int(value), byteUnits[unit]
}

// FormatBytes renders a byte quantity as "%03d<unit>", the dashboard's
// fixed-width style.
func FormatBytes(bytes float64) string {
	v, unit := AutoUnit(bytes)
	return fmt.Sprintf("%03d%s", v, unit)
}

// FormatRate renders a bytes-per-second rate with one decimal.
func FormatRate(bytesPerSecond float64) string {
	value := bytesPerSecond
	unit := 0
	for unit < len(byteUnits)-1 && math.Abs(value) >= 1000 {
		value /= 1000
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%.0f B/s", value)
	}
	return fmt.Sprintf("%.1f %sB/s", value, byteUnits[unit])
}

// UptimeDHMS splits an uptime in seconds into days, hours, minutes and
// seconds. Negative and non-finite input yields zeros.
func UptimeDHMS(seconds float64) (days, hours, minutes, secs int) {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, 0, 0, 0
	}
	total := int64(seconds)
	days = int(total / 86400)
	total %= 86400
	hours = int(total / 3600)
	total %= 3600
	minutes = int(total / 60)
	secs = int(total % 60)
	return days, hours, minutes, secs
}

// FormatUptime renders "UP ddd hh:mm:ss".
func FormatUptime(seconds float64) string {
	d, h, m, s := UptimeDHMS(seconds)
	return fmt.Sprintf("UP %03d %02d:%02d:%02d", d, h, m, s)
}

// FormatClock renders the header timestamp.
func FormatClock(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
