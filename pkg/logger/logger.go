// Package logger wires zap into the service and keeps the leveled helpers used across packages.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	sugared = base.Sugar()
)

// Options controls where logs go.
type Options struct {
	Env    string // "production" switches to JSON output and info level
	LogDir string // empty disables the daily file
}

// SetupLogger builds the process logger: stdout plus a daily file under opts.LogDir.
func SetupLogger(opts Options) (*zap.Logger, error) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	level := zapcore.DebugLevel
	newEncoder := zapcore.NewConsoleEncoder
	if opts.Env == "production" {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		level = zapcore.InfoLevel
		newEncoder = zapcore.NewJSONEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	if opts.LogDir != "" {
		if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := filepath.Join(opts.LogDir, time.Now().Format("2006-01-02")+".log")
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(f), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Replace(l)
	return l, nil
}

// Replace swaps the process logger. Tests use it with an observer core.
func Replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugared = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// L returns the structured logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Info logs at info level.
func Info(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugared.Infof(format, v...)
}

// Warning logs at warn level.
func Warning(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugared.Warnf(format, v...)
}

// Error logs at error level.
func Error(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugared.Errorf(format, v...)
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}
