// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zap backed implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "comment posted", "item", id, "comment", c.ID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is used for anomalies the caller recovers from, such as a
	// corrupted stored user record.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Drivers accepted by New.
const (
	DriverSlog = "slog"
	DriverZap  = "zap"
)

// New builds a Logger writing to w. level is one of debug, info, warn, error.
func New(driver, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(driver) {
	case "", DriverSlog:
		return NewSlogText(w, level), nil
	case DriverZap:
		return NewZapLogger(w, level)
	default:
		return nil, fmt.Errorf("unknown log driver %q", driver)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }

// Nop discards everything.
func Nop() Logger {
	return nopLogger{}
}
