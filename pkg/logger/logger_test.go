package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetupLogger_Development(t *testing.T) {
	l, err := SetupLogger(Options{Env: "development"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel), "development logger should allow debug level")
}

func TestSetupLogger_Production(t *testing.T) {
	l, err := SetupLogger(Options{Env: "production"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel), "production logger should not allow debug level")
}

func TestSetupLogger_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := SetupLogger(Options{Env: "production", LogDir: dir})
	require.NoError(t, err)

	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestLeveledHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Replace(zap.New(core))
	t.Cleanup(func() { Replace(zap.NewNop()) })

	Info("loaded %d properties", 3)
	Warning("skipped %s", "certificate")
	Error("store: %v", "down")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "loaded 3 properties", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}
