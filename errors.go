// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"errors"
	"fmt"
)

// Precondition errors. The operation was called before the setup it needs.
var (
	// ErrNotInitialized is returned when an operation requires Init first.
	ErrNotInitialized = errors.New("screencap: display not initialized")

	// ErrNotConfigured is returned by Update, Draw and Flip before a
	// successful Configure.
	ErrNotConfigured = errors.New("screencap: display not configured")

	// ErrInvalidState is returned when a lifecycle transition is not allowed
	// from the current state.
	ErrInvalidState = errors.New("screencap: invalid state transition")

	// ErrShutdown is returned for operations on a display that was shut down.
	ErrShutdown = errors.New("screencap: display is shut down")

	// ErrNilDevice is returned when a Pipeline is created without a Device.
	ErrNilDevice = errors.New("screencap: nil Device")

	// ErrNilPipeline is returned when a Display is created without a Pipeline.
	ErrNilPipeline = errors.New("screencap: nil Pipeline")

	// ErrNilSource is returned when a Display is created without a Source.
	ErrNilSource = errors.New("screencap: nil Source")
)

// Capability errors. The request is valid but not implemented.
var (
	// ErrUnsupportedFormat is returned for any pixel format other than BGRA.
	ErrUnsupportedFormat = errors.New("screencap: unsupported pixel format")

	// ErrFormatNotSet is returned when the pipeline is bootstrapped with FormatNone.
	ErrFormatNotSet = errors.New("screencap: pixel format not set")

	// ErrPlanarUnsupported is returned when a planar layout is requested.
	ErrPlanarUnsupported = errors.New("screencap: planar texture setup not implemented")
)

// Resource errors. Acquiring a lock or GPU object failed.
var (
	// ErrInvalidDimensions is returned for a non-positive output size.
	ErrInvalidDimensions = errors.New("screencap: invalid dimensions")

	// ErrInvalidFrameRate is returned for a frame rate outside 0..MaxFrameRate.
	ErrInvalidFrameRate = errors.New("screencap: invalid frame rate")

	// ErrShaderCompile is returned when a shader fails to compile.
	ErrShaderCompile = errors.New("screencap: shader compile failed")

	// ErrProgramLink is returned when the shader program fails to link.
	ErrProgramLink = errors.New("screencap: program link failed")

	// ErrUniformMissing is returned when a uniform location cannot be resolved.
	ErrUniformMissing = errors.New("screencap: uniform location not found")

	// ErrTextureExists is returned when instance textures are allocated twice.
	ErrTextureExists = errors.New("screencap: texture already created")

	// ErrTextureCreate is returned when the device cannot allocate a texture.
	ErrTextureCreate = errors.New("screencap: texture creation failed")

	// ErrVertexArray is returned when the shared vertex array cannot be created.
	ErrVertexArray = errors.New("screencap: vertex array creation failed")

	// ErrZeroProjection is returned by SetProjectionMatrix for an all-zero matrix.
	ErrZeroProjection = errors.New("screencap: projection matrix is zero")
)

// OpError records a failed operation with a status code.
//
// Codes are negative and distinct per failure branch of one operation.
// They are stable per call site but not unified across operations:
// branch on success or failure, treat the magnitude as diagnostic only.
type OpError struct {
	Op   string
	Code int
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s (status %d): %v", e.Op, e.Code, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, code int, err error) *OpError {
	return &OpError{Op: op, Code: code, Err: err}
}

// Status converts an error returned by this package into a status code:
// 0 for nil, the OpError code when one is wrapped, -1 otherwise.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return -1
}
