package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
			require.NoError(t, InitWithFileConfig(tt.level, cfg, false))
			t.Cleanup(func() { Set(nil) })

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			for _, exp := range tt.expected {
				assert.Contains(t, string(content), `"level":"`+exp+`"`)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), `"level":"`+exc+`"`)
			}
		})
	}
}

func TestUnknownLevel(t *testing.T) {
	err := InitWithFileConfig("verbose", FileConfig{}, false)
	assert.ErrorContains(t, err, "verbose")

	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestNamedComponent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Named("session").Warn("draw failed", zap.String("reason", "lost context"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "session", entries[0].LoggerName)
	assert.Equal(t, "lost context", entries[0].ContextMap()["reason"])
}

func TestNopBeforeInit(t *testing.T) {
	Set(nil)
	assert.NotPanics(t, func() {
		Info("dropped")
		Named("x").Error("dropped")
		Sync()
	})
}

func TestFileIsJSONLines(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "buddy.log")
	require.NoError(t, InitWithFileConfig("info", DefaultFileConfig(logFile), false))
	t.Cleanup(func() { Set(nil) })

	Named("shell").Info("mode selected", zap.String("mode", "standalone"))
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	line := strings.TrimSpace(string(content))
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"component":"shell"`)
	assert.Contains(t, line, `"mode":"standalone"`)
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/buddy.log")
	assert.Equal(t, FileConfig{
		Path:       "/tmp/buddy.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
	}, cfg)
}
