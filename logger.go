// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while capture goroutines are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for screencap and its sub-packages.
// By default, screencap produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent default.
//
// Log levels used by screencap:
//   - [slog.LevelDebug]: pipeline state, texture uploads
//   - [slog.LevelInfo]: lifecycle events (pipeline created, display configured)
//   - [slog.LevelWarn]: dropped frames
//   - [slog.LevelError]: precondition violations and resource failures
//
// Example:
//
//	screencap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by screencap.
// Sub-packages (source/..., integration/...) call this to share
// the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
