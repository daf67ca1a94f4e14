package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the working directory free of heliflight.toml and .env files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for _, b := range envBindings {
		t.Setenv(b.Env, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.toml", `
[database]
driver = "postgres"
dsn = "postgres://file"
max_open_conns = 8

[logging]
level = "debug"
`)
	t.Setenv("HELIFLIGHT_DB_DSN", "postgres://env")
	t.Setenv("HELIFLIGHT_LOG_FORMAT", "json")

	cfg, err := Load(LoadOptions{
		ConfigPath:    path,
		FlagOverrides: map[string]any{"logging.format": "console"},
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 8, cfg.Database.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadDefaultFileFromWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, DefaultConfigPath, "[console]\nbanner = false\n")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.False(t, cfg.Console.Banner)
}

func TestLoadEnvFile(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("HELIFLIGHT_LOG_LEVEL")
	writeFile(t, dir, DefaultEnvFile, "HELIFLIGHT_LOG_LEVEL=warn\n")
	t.Cleanup(func() { os.Unsetenv("HELIFLIGHT_LOG_LEVEL") })

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigPath: filepath.Join(dir, "missing.toml")})
	assert.Error(t, err)

	t.Setenv("HELIFLIGHT_DB_AUTO_MIGRATE", "sometimes")
	_, err = Load(LoadOptions{})
	assert.ErrorContains(t, err, "HELIFLIGHT_DB_AUTO_MIGRATE")

	t.Setenv("HELIFLIGHT_DB_AUTO_MIGRATE", "")
	_, err = Load(LoadOptions{FlagOverrides: map[string]any{"database.driver": "oracle"}})
	assert.ErrorContains(t, err, "invalid config")
}

func TestEncodeRoundTrip(t *testing.T) {
	dir := isolate(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, DefaultConfig()))
	assert.Contains(t, buf.String(), "[database]")

	path := writeFile(t, dir, "encoded.toml", buf.String())
	cfg, err := Load(LoadOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()

	sc := cfg.Storage()
	assert.Equal(t, "sqlite", sc.Driver)
	assert.Equal(t, 10*time.Second, sc.ConnectTimeout)

	lc := cfg.Logger()
	assert.Equal(t, "stderr", lc.Output)
}

// chdir changes the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
