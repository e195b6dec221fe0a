// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/screencap"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidDimensions is returned for a non-positive framebuffer size.
	ErrInvalidDimensions = errors.New("backend: invalid dimensions")
)

// GraphicsBackend provides the screencap.Device of one graphics context.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type GraphicsBackend interface {
	// Name returns the backend identifier (e.g., "opengl", "software").
	Name() string

	// Init prepares the backend for a framebuffer of the given size.
	// Backends bound to a window expect its context to be current on the
	// calling goroutine.
	Init(width, height int) error

	// Resize changes the framebuffer size. Pipelines created before the
	// resize keep their projection until a display calls
	// SetProjectionMatrix.
	Resize(width, height int) error

	// Clear fills the framebuffer with an opaque color.
	Clear(r, g, b float32)

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Device returns the device for the pipeline, or nil before Init.
	Device() screencap.Device
}
