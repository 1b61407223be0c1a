// Package logging provides the package-level *zap.Logger used by pqharmonics.
package logging

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger holds the package-level logger. A nil value means no logger has
// been installed and Logger returns a no-op logger.
var logger atomic.Pointer[zap.Logger]

// SetLogger installs the package-level logger. Pass nil to disable logging.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the package-level logger, a no-op logger by default.
//
// Logger is safe for concurrent use.
func Logger() *zap.Logger {
	l := logger.Load()
	if l == nil {
		l = zap.NewNop()
		logger.Store(l)
	}
	return l
}

// New builds a logger at the given level. Production loggers emit JSON,
// development loggers emit console output.
func New(level string, production bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
