// internal/utils/logger_test.go
package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The logger is a process-wide singleton; tests restore the INFO level and
// point the file at a scratch path.

func TestLoggerWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	require.NoError(t, InitLogger(logFile))

	logger := GetLogger()
	logger.SetLogLevel(INFO)
	logger.Info("catalog loaded", map[string]interface{}{
		"categories": 7,
		"source":     "embedded",
	})

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)

	line := string(raw)
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "catalog loaded")
	assert.Contains(t, line, "logger_test.go:")
	// Fields render sorted by key
	assert.Contains(t, line, "| categories=7 source=embedded")
}

func TestLoggerLevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, InitLogger(logFile))

	logger := GetLogger()
	logger.SetLogLevel(ERROR)
	defer logger.SetLogLevel(INFO)

	logger.Debugf("suppressed %d", 1)
	logger.Infof("suppressed %d", 2)
	logger.Warn("suppressed", nil)
	logger.Errorf("kept %d", 3)

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "suppressed")
	assert.Contains(t, string(raw), "[ERROR]")
	assert.Contains(t, string(raw), "kept 3")
}

func TestInitLoggerCreatesDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "deeper", "app.log")
	require.NoError(t, InitLogger(logFile))

	GetLogger().Info("first line", nil)

	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}
