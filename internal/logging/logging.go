// Package logging builds the root logr.Logger for subdns, backed by zap.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a logger writing to stderr in the given format. verbose
// enables V(1) output. The returned flush func should be deferred.
func New(format string, verbose bool) (logr.Logger, func(), error) {
	var zc zap.Config
	switch format {
	case "", FormatJSON:
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case FormatConsole:
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	default:
		return logr.Discard(), func() {}, fmt.Errorf("logging: unknown format %q (want %s or %s)", format, FormatJSON, FormatConsole)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("logging: failed to build logger: %w", err)
	}

	return zapr.NewLogger(zl).WithName("subdns"), func() { _ = zl.Sync() }, nil
}
