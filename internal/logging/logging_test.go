package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LevelForVerbosity(0))
	assert.Equal(t, slog.LevelInfo, LevelForVerbosity(1))
	assert.Equal(t, slog.LevelDebug, LevelForVerbosity(2))
	assert.Equal(t, slog.LevelDebug, LevelForVerbosity(5))
}

func TestConsoleHandlerGatesByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, LevelForVerbosity(1), true))

	logger.Info("Loading cycles")
	logger.Debug("Validating cycle core")

	assert.Contains(t, buf.String(), "Loading cycles")
	assert.NotContains(t, buf.String(), "Validating cycle core")
}

func TestSetupWithLogFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "cardlint.log")
	require.NoError(t, Setup(&console, 0, true, logFile))

	slog.Debug("Validating card Sure Gamble")
	slog.Warn("Couldn't open packs file")

	assert.NotContains(t, console.String(), "Sure Gamble")
	assert.Contains(t, console.String(), "Couldn't open packs file")

	written, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), "Sure Gamble")
	assert.Contains(t, string(written), "Couldn't open packs file")
}
