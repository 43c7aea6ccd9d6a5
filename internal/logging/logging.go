// Package logging holds the process-wide zap logger. File-level scan errors
// are logged here; they never abort a scan.
package logging

import (
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

// Init configures the global logger. Verbose mode uses the development
// config at debug level; otherwise output is limited to warnings.
func Init(verbose bool) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	l, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

// L returns the global logger, initializing a quiet one on first use.
func L() *zap.SugaredLogger {
	if logger == nil {
		Init(false)
	}
	return logger
}

// Sync flushes buffered log entries; safe to call at exit.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
