// Package logger wraps Uber's zap logger with level configuration from
// the application config.
package logger

import (
	"go.uber.org/zap"
)

// Logger wraps the zap.Logger used across services and jobs.
type Logger struct {
	*zap.Logger
}

// New builds a production zap logger at the given level. An unparseable
// level falls back to info.
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err == nil {
		cfg.Level = lvl
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zl}, nil
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
