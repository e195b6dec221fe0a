// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/screencap"
)

// initLogging installs the process logger and hands it to the library.
// format is "json" or "text"; level is "debug", "info", "warn" or "error".
func initLogging(format, level string, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(handler).With("component", "screencapdemo")
	slog.SetDefault(logger)
	screencap.SetLogger(slog.New(handler))
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
