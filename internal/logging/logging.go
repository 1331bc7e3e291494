// Package logging builds the logr.Logger shared by the batch runner and the
// CLI. The backend is zap, bridged through zapr.
//
// Verbosity follows logr conventions: Info is V(0), DEBUG and TRACE are the
// higher V-levels below.
package logging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// V-levels for logger.V(...).
const (
	DEBUG = 1
	TRACE = 2
)

// Output formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrUnknownLevel and ErrUnknownFormat are returned by New.
var (
	ErrUnknownLevel  = errors.New("logging: unknown level")
	ErrUnknownFormat = errors.New("logging: unknown format")
)

// Config selects the minimum level and the encoder.
type Config struct {
	// Level is one of error, info, debug, trace. Empty means info.
	Level string

	// Format is json or console. Empty means console.
	Format string
}

// New returns a zap-backed logr.Logger writing to stderr.
func New(cfg Config) (logr.Logger, error) {
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return logr.Discard(), err
	}

	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
	case FormatJSON:
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	default:
		return logr.Discard(), fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true

	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("logging: build zap logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

// parseLevel maps a level name to a zap level. logr V(n) maps to zap level
// -n, so trace must sit at -TRACE for V(TRACE) to be enabled.
func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	}

	return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// NewTestLogger returns a development logger at TRACE verbosity.
func NewTestLogger() logr.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	zl, err := zc.Build()
	if err != nil {
		return logr.Discard()
	}

	return zapr.NewLogger(zl)
}

// IntoContext stores l in ctx.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}

// FromContext returns the logger in ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
