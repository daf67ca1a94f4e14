package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heliflight.log")

	log, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Named("flight-service").WithSession("s-1").Info("Flight added", Int64("flight_id", 4))
	log.Debug("hidden")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Flight added"`)
	assert.Contains(t, string(data), `"session_id":"s-1"`)
	assert.Contains(t, string(data), `"flight_id":4`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose", Format: "json", Output: "stderr"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		_, err := parseLogLevel(level)
		assert.NoError(t, err, level)
	}
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.WithError(assert.AnError).Error("ignored")
	assert.NoError(t, log.Close())
}
