// Package log builds the zap.Logger used across codec, zpaq and the
// cmd/zparsgo CLI. Verbosity and encoding mirror the Rust CLI's
// init_tracing: a -v/--verbose value of 1 or more raises the level
// (the flag takes a number; repeating -v does not count), --log-format switches
// between a human-readable console encoder and JSON.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the zap encoder.
type Format int

const (
	// Pretty uses zap's console encoder.
	Pretty Format = iota
	// JSON uses zap's JSON encoder.
	JSON
)

// New builds a *zap.Logger for the given verbosity count (0 = info,
// 1 = debug, 2+ = debug as well; zap has no separate trace level, so
// verbose fields carry a "verbose" flag instead, see DESIGN.md) and
// output format.
func New(verbosity int, format Format) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbosity >= 1 {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case Pretty:
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case JSON:
		cfg.Encoding = "json"
	}

	return cfg.Build()
}

// Nop returns a logger that discards everything. It is the same as
// zap.NewNop, which codec and zpaq call themselves when a caller does
// not supply a logger.
func Nop() *zap.Logger {
	return zap.NewNop()
}
