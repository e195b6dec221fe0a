// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl provides an OpenGL 3.3 core backend for screencap using
// the go-gl bindings.
//
// The backend draws into the context that is current on the calling
// goroutine. Create the window and context first, lock the goroutine to
// its OS thread, then open the backend:
//
//	runtime.LockOSThread()
//	window.MakeContextCurrent()
//	b, err := backend.Open("opengl", width, height)
package opengl

import "errors"

// Package errors for the OpenGL backend.
var (
	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("opengl: backend not initialized")

	// ErrInitFailed is returned when the GL function pointers cannot be loaded,
	// usually because no context is current.
	ErrInitFailed = errors.New("opengl: initialization failed")

	// ErrUnsupported is returned for formats or modes without a GL mapping.
	ErrUnsupported = errors.New("opengl: unsupported")
)
