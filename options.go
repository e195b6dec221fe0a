// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option configures a Display during creation.
//
// Example:
//
//	d, err := screencap.NewDisplay(pipeline, src,
//	    screencap.WithLogger(slog.Default()))
type Option func(*options)

type options struct {
	locker Locker
	logger *slog.Logger
	id     uuid.UUID
}

func defaultOptions() options {
	return options{
		locker: &Mutex{},
		id:     uuid.New(),
	}
}

// WithLocker replaces the lock guarding the staging buffer.
// The default is a Mutex.
func WithLocker(l Locker) Option {
	return func(o *options) {
		if l != nil {
			o.locker = l
		}
	}
}

// WithLogger sets a logger for this display only. By default the
// package logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithID sets the display ID reported in logs. By default a random
// UUID is generated.
func WithID(id uuid.UUID) Option {
	return func(o *options) {
		o.id = id
	}
}
