package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]string{"key": "value"}
	err := WriteJSONSuccess(&buf, data)
	require.NoError(t, err)

	var env JSONEnvelope
	err = json.Unmarshal(buf.Bytes(), &env)
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, nil)
	require.NoError(t, err)

	var env JSONEnvelope
	err = json.Unmarshal(buf.Bytes(), &env)
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Nil(t, env.Error)
}

func TestWriteJSONLine_SingleLine(t *testing.T) {
	var buf bytes.Buffer

	result := metrics.MetricsResult{
		Tick:     2000,
		Load1:    0.5,
		CPUUsage: []float64{25, 75},
		NetworkReceiveBytesPerSecond: map[string]float64{
			"eth0": 1024,
		},
	}
	require.NoError(t, WriteJSONLine(&buf, result))
	require.NoError(t, WriteJSONLine(&buf, result))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "each envelope should be exactly one line")

	var env struct {
		Success bool                  `json:"success"`
		Data    metrics.MetricsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &env))
	assert.True(t, env.Success)
	assert.Equal(t, uint64(2000), env.Data.Tick)
	assert.Equal(t, []float64{25, 75}, env.Data.CPUUsage)
	assert.Equal(t, 1024.0, env.Data.NetworkReceiveBytesPerSecond["eth0"])
}

func TestWriteJSONError_AllFields(t *testing.T) {
	var buf bytes.Buffer

	details := map[string]string{"url": "http://pi:9100/metrics"}
	err := WriteJSONError(&buf, ErrCodeFetchFailed, "Couldn't reach pi", "Check node_exporter is running", details)
	require.NoError(t, err)

	var env JSONEnvelope
	err = json.Unmarshal(buf.Bytes(), &env)
	require.NoError(t, err)

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)

	assert.Equal(t, ErrCodeFetchFailed, env.Error.Code)
	assert.Equal(t, "Couldn't reach pi", env.Error.Message)
	assert.Equal(t, "Check node_exporter is running", env.Error.Suggestion)

	detailsMap, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "http://pi:9100/metrics", detailsMap["url"])
}

func TestWriteJSONFromError_NilError(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONFromError(&buf, nil)
	require.NoError(t, err)

	var env JSONEnvelope
	err = json.Unmarshal(buf.Bytes(), &env)
	require.NoError(t, err)

	assert.False(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFromError_StructuredError(t *testing.T) {
	var buf bytes.Buffer

	pErr := errors.New(errors.ErrConfig, "Specified config file not found: /x.yaml", "Check the path is correct")
	err := WriteJSONFromError(&buf, pErr)
	require.NoError(t, err)

	var env JSONEnvelope
	err = json.Unmarshal(buf.Bytes(), &env)
	require.NoError(t, err)

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeConfigNotFound, env.Error.Code)
	assert.Equal(t, "Specified config file not found: /x.yaml", env.Error.Message)
	assert.Equal(t, "Check the path is correct", env.Error.Suggestion)
}

func TestWriteJSONFromError_WrappedStructuredError(t *testing.T) {
	var buf bytes.Buffer

	innerErr := errors.New(errors.ErrStatus, "pi returned 404 Not Found", "Check the metrics path")
	wrappedErr := fmt.Errorf("scrape: %w", innerErr)
	err := WriteJSONFromError(&buf, wrappedErr)
	require.NoError(t, err)

	var env JSONEnvelope
	err = json.Unmarshal(buf.Bytes(), &env)
	require.NoError(t, err)

	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeBadStatus, env.Error.Code)
	assert.Equal(t, "pi returned 404 Not Found", env.Error.Message)
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_GenericError(t *testing.T) {
	result := ErrorToJSON(fmt.Errorf("generic error message"))

	require.NotNil(t, result)
	assert.Equal(t, ErrCodeUnknown, result.Code)
	assert.Equal(t, "generic error message", result.Message)
	assert.Empty(t, result.Suggestion)
}

func TestErrorToJSON_AllInternalErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		internalCode string
		message      string
		wantCode     string
	}{
		{
			name:         "config not found",
			internalCode: errors.ErrConfig,
			message:      "Config file not found",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "config couldn't find",
			internalCode: errors.ErrConfig,
			message:      "Couldn't find config file",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "config invalid",
			internalCode: errors.ErrConfig,
			message:      "interval is 5ms, below the 100ms minimum",
			wantCode:     ErrCodeConfigInvalid,
		},
		{
			name:         "url error",
			internalCode: errors.ErrURL,
			message:      "URL must use http or https",
			wantCode:     ErrCodeURLInvalid,
		},
		{
			name:         "fetch error",
			internalCode: errors.ErrFetch,
			message:      "Couldn't reach pi",
			wantCode:     ErrCodeFetchFailed,
		},
		{
			name:         "status error",
			internalCode: errors.ErrStatus,
			message:      "pi returned 500",
			wantCode:     ErrCodeBadStatus,
		},
		{
			name:         "parse error",
			internalCode: errors.ErrParse,
			message:      "Unexpected character",
			wantCode:     ErrCodeParseFailed,
		},
		{
			name:         "unmapped code",
			internalCode: "OTHER",
			message:      "Something else",
			wantCode:     ErrCodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.internalCode, tt.message, "some suggestion")
			result := ErrorToJSON(err)

			require.NotNil(t, result)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}
