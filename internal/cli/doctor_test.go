package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorTarget(t *testing.T) {
	tests := []struct {
		name    string
		content string
		o       Overrides
		wantURL string
	}{
		{"defaults", "", Overrides{}, "http://localhost:9100/metrics"},
		{"from file", "url: http://pi:9100/metrics\n", Overrides{}, "http://pi:9100/metrics"},
		{"flag wins", "url: http://pi:9100/metrics\n", Overrides{URL: " http://other/metrics "}, "http://other/metrics"},
		{"broken file falls back", "url: [oops\n", Overrides{}, "http://localhost:9100/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := isolateEnv(t)
			if tt.content != "" {
				writeFile(t, filepath.Join(project, ".pimon.yaml"), tt.content)
			}

			cfg := doctorTarget("", tt.o)
			assert.Equal(t, tt.wantURL, cfg.URL)
		})
	}
}

func TestDoctorCommand_JSON(t *testing.T) {
	project := isolateEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `node_cpu_seconds_total{cpu="0",mode="idle"} 10`)
		fmt.Fprintln(w, "node_memory_MemTotal_bytes 2000000000")
	}))
	defer srv.Close()
	writeFile(t, filepath.Join(project, ".pimon.yaml"), "url: "+srv.URL+"\n")

	var out bytes.Buffer
	require.NoError(t, doctorCommand(context.Background(), "", Overrides{}, true, &out))

	var env struct {
		Success bool         `json:"success"`
		Data    DoctorOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, srv.URL, env.Data.URL)
	require.Len(t, env.Data.Categories, 2)
	assert.Equal(t, "CONFIG", env.Data.Categories[0].Name)
	assert.Equal(t, "ENDPOINT", env.Data.Categories[1].Name)
	assert.False(t, env.Data.Summary.AllClear)
	assert.Equal(t, 4, env.Data.Summary.Pass)
	assert.Equal(t, 1, env.Data.Summary.Warn)
	assert.Contains(t, out.String(), `"status": "warn"`)
}

func TestDoctorCommand_TextUnreachable(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, doctorCommand(context.Background(), "", Overrides{URL: srv.URL}, false, &out))

	text := out.String()
	assert.Contains(t, text, "pimon Diagnostic Report")
	assert.Contains(t, text, "CONFIG")
	assert.Contains(t, text, "ENDPOINT")
	assert.Contains(t, text, "404")
	assert.Contains(t, text, "Run 'pimon init'")
	assert.Contains(t, text, "4 issues found")
}
