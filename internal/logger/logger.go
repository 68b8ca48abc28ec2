// Package logger provides structured logging setup for the application.
package logger

import (
	"go.uber.org/zap"
)

// Logger wraps a zap.Logger so callers can defer initialization until the
// configured level is known.
type Logger struct {
	// Log is the active logger. It is a no-op until Init succeeds.
	Log *zap.Logger
}

// New returns a Logger with a no-op backend.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the backend with a production logger at the given level
// ("debug", "info", "warn", "error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
