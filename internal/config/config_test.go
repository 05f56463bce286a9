package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables the loader reads so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURL, "PIMON_URL", "PIMON_INTERVAL", "PIMON_HISTORY", "PIMON_COLOR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "http://localhost:9100/metrics", cfg.URL)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 150, cfg.History)
	assert.Equal(t, 200*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, "auto", cfg.Color)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
url: http://kiosk.local:9100/metrics
interval: 2s
history: 300
color: NEVER
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://kiosk.local:9100/metrics", cfg.URL)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 300, cfg.History)
	assert.Equal(t, ColorNever, cfg.Color)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultFrameInterval, cfg.FrameInterval)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("url: [unclosed"), 0644))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(dir, "dur.yaml")
		require.NoError(t, os.WriteFile(path, []byte("interval: soon\n"), 0644))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("url: http://from-file/metrics\ninterval: 2s\n"), 0644))

	t.Setenv(EnvURL, "http://from-env:9100/metrics")
	t.Setenv("PIMON_INTERVAL", "3s")
	t.Setenv("PIMON_HISTORY", "42")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9100/metrics", cfg.URL)
	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, 42, cfg.History)
}

func TestLoad_MetricsURLBeatsPrefixedURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIMON_URL", "http://prefixed/metrics")
	t.Setenv(EnvURL, "http://historical/metrics")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://historical/metrics", cfg.URL)
}

func TestLoad_PrefixedURLAloneApplies(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("url: http://from-file/metrics\n"), 0644))
	t.Setenv("PIMON_URL", " http://prefixed/metrics ")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://prefixed/metrics", cfg.URL)
}

func TestLoad_BlankMetricsURLIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIMON_URL", "http://prefixed/metrics")
	t.Setenv(EnvURL, "   ")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://prefixed/metrics", cfg.URL)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("METRICS_URL=http://dotenv:9100/metrics\n"), 0644))
	t.Cleanup(func() { os.Unsetenv(EnvURL) })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "http://dotenv:9100/metrics", os.Getenv(EnvURL))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:9100/metrics", cfg.URL)
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvURL, "http://shell/metrics")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("METRICS_URL=http://dotenv/metrics\n"), 0644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "http://shell/metrics", os.Getenv(EnvURL))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("url: http://x/metrics\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))
		t.Chdir(dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("parent directory stops at git root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(""), 0644))
		child := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(child, 0755))
		t.Chdir(child)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, ConfigFileName), evalPath(t, found, root))
	})
}

// evalPath rewrites found relative to the symlink-resolved root so macOS
// /private/var temp dirs compare equal.
func evalPath(t *testing.T, found, root string) string {
	t.Helper()
	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	rel, err := filepath.Rel(resolvedRoot, found)
	if err != nil || rel == ".." || filepath.IsAbs(rel) {
		return found
	}
	return filepath.Join(root, rel)
}

func TestResolve(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv(EnvURL) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("interval: 5s\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("METRICS_URL=http://env-file/metrics\n"), 0644))

	cfg, path, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(path))
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, "http://env-file/metrics", cfg.URL)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "x.yaml"), ExpandTilde("~/x.yaml"))
	assert.Equal(t, "/etc/pimon.yaml", ExpandTilde("/etc/pimon.yaml"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
