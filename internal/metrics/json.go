package metrics

import (
	"encoding/json"
	"math"
)

// jsonFloat encodes NaN and ±Inf as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func jsonFloats(values []float64) []jsonFloat {
	if values == nil {
		return nil
	}
	out := make([]jsonFloat, len(values))
	for i, v := range values {
		out[i] = jsonFloat(v)
	}
	return out
}

func jsonRates(rates map[string]float64) map[string]jsonFloat {
	if rates == nil {
		return nil
	}
	out := make(map[string]jsonFloat, len(rates))
	for k, v := range rates {
		out[k] = jsonFloat(v)
	}
	return out
}

// MarshalJSON writes the result with its json tags, turning non-finite
// floats into null.
func (r MetricsResult) MarshalJSON() ([]byte, error) {
	// plain drops the method set so the embedded copy does not recurse.
	type plain MetricsResult
	return json.Marshal(struct {
		plain
		BootTimeSeconds               jsonFloat            `json:"uptime_seconds"`
		Load1                         jsonFloat            `json:"load1"`
		Load5                         jsonFloat            `json:"load5"`
		Load15                        jsonFloat            `json:"load15"`
		CPUUsage                      []jsonFloat          `json:"cpu_usage"`
		DiskReadBytesPerSecond        map[string]jsonFloat `json:"disk_read_bytes_per_second"`
		DiskWrittenBytesPerSecond     map[string]jsonFloat `json:"disk_written_bytes_per_second"`
		NetworkReceiveBytesPerSecond  map[string]jsonFloat `json:"network_receive_bytes_per_second"`
		NetworkTransmitBytesPerSecond map[string]jsonFloat `json:"network_transmit_bytes_per_second"`
	}{
		plain:                         plain(r),
		BootTimeSeconds:               jsonFloat(r.BootTimeSeconds),
		Load1:                         jsonFloat(r.Load1),
		Load5:                         jsonFloat(r.Load5),
		Load15:                        jsonFloat(r.Load15),
		CPUUsage:                      jsonFloats(r.CPUUsage),
		DiskReadBytesPerSecond:        jsonRates(r.DiskReadBytesPerSecond),
		DiskWrittenBytesPerSecond:     jsonRates(r.DiskWrittenBytesPerSecond),
		NetworkReceiveBytesPerSecond:  jsonRates(r.NetworkReceiveBytesPerSecond),
		NetworkTransmitBytesPerSecond: jsonRates(r.NetworkTransmitBytesPerSecond),
	})
}
