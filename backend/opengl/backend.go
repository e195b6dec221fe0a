// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/backend"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// loadGL loads the GL function pointers once per process.
func loadGL() error {
	glInitOnce.Do(func() {
		if err := gl.Init(); err != nil {
			glInitErr = fmt.Errorf("%w: %w", ErrInitFailed, err)
		}
	})
	return glInitErr
}

// Backend is the OpenGL 3.3 core backend.
// It implements the backend.GraphicsBackend interface.
//
// Like every GL object, a Backend must only be used on the goroutine whose
// OS thread holds the current context.
type Backend struct {
	device      *Device
	initialized bool
}

var _ backend.GraphicsBackend = (*Backend)(nil)

// NewBackend creates a new OpenGL backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendOpenGL
}

// Init loads the GL entry points and sets the viewport to the framebuffer.
func (b *Backend) Init(width, height int) error {
	if err := loadGL(); err != nil {
		return err
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	b.device = &Device{}
	b.initialized = true

	screencap.Logger().Info("opengl: backend initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"width", width,
		"height", height)
	return nil
}

// Resize updates the viewport.
func (b *Backend) Resize(width, height int) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

// Clear clears the color buffer.
func (b *Backend) Clear(r, g, bl float32) {
	if !b.initialized {
		return
	}
	gl.ClearColor(r, g, bl, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Close releases the backend. GL objects created through the device are
// owned by the pipeline and displays and must be released by them.
func (b *Backend) Close() {
	b.device = nil
	b.initialized = false
}

// Device returns the GL device, or nil before Init.
func (b *Backend) Device() screencap.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}
