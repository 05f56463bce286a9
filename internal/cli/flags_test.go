package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv moves the test into an empty project directory under a fake
// home and clears every variable config resolution reads. It returns the
// project directory.
func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	project := filepath.Join(home, "project")
	require.NoError(t, os.MkdirAll(project, 0755))

	t.Setenv("HOME", home)
	for _, key := range []string{
		config.EnvURL, "PIMON_URL", "PIMON_INTERVAL", "PIMON_POLL_INTERVAL",
		"PIMON_CONNECT_TIMEOUT", "PIMON_HISTORY", "PIMON_FRAME_INTERVAL",
		"PIMON_COLOR", "PIMON_NON_INTERACTIVE", "CI", "NO_COLOR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(project)
	return project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    time.Duration
		wantErr bool
	}{
		{name: "valid seconds", flag: "5s", want: 5 * time.Second},
		{name: "valid milliseconds", flag: "500ms", want: 500 * time.Millisecond},
		{name: "valid complex duration", flag: "1m30s", want: 90 * time.Second},
		{name: "surrounding spaces", flag: " 2s ", want: 2 * time.Second},
		{name: "bare number is rejected", flag: "5", wantErr: true},
		{name: "invalid string", flag: "fast", wantErr: true},
		{name: "empty string", flag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.flag)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, path, err := loadSettings("", Overrides{})
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, config.DefaultURL, cfg.URL)
	assert.Equal(t, config.DefaultInterval, cfg.Interval)
}

func TestLoadSettings_FileThenFlags(t *testing.T) {
	dir := isolateEnv(t)
	writeFile(t, filepath.Join(dir, config.ConfigFileName),
		"version: 1\nurl: http://file:9100/metrics\ninterval: 3s\nhistory: 60\n")

	cfg, path, err := loadSettings("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.ConfigFileName), path)
	assert.Equal(t, "http://file:9100/metrics", cfg.URL)
	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, 60, cfg.History)

	cfg, _, err = loadSettings("", Overrides{URL: " http://flag:9100/metrics ", Interval: "500ms"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9100/metrics", cfg.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 60, cfg.History, "unrelated keys keep file values")
}

func TestLoadSettings_FlagBeatsEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvURL, "http://env:9100/metrics")

	cfg, _, err := loadSettings("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "http://env:9100/metrics", cfg.URL)

	cfg, _, err = loadSettings("", Overrides{URL: "http://flag:9100/metrics"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9100/metrics", cfg.URL)
}

func TestLoadSettings_Errors(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name       string
		configPath string
		overrides  Overrides
	}{
		{name: "missing explicit config", configPath: "/nonexistent/pimon.yaml"},
		{name: "unparseable interval", overrides: Overrides{Interval: "soon"}},
		{name: "interval below minimum", overrides: Overrides{Interval: "1ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, err := loadSettings(tt.configPath, tt.overrides)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}
