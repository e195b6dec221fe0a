// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/screencap"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based headless backend.
	BackendSoftware = "software"
	// BackendOpenGL is the name of the OpenGL 3.3 core backend.
	BackendOpenGL = "opengl"
)

// SoftwareBackend is a CPU-based backend.
// It renders into an in-memory framebuffer that can be read back with
// Snapshot, which makes it usable without a window or a GPU.
type SoftwareBackend struct {
	initialized bool
	device      *SoftwareDevice
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() GraphicsBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init allocates a width x height framebuffer.
func (b *SoftwareBackend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	b.device = NewSoftwareDevice(width, height)
	b.initialized = true
	screencap.Logger().Debug("backend: software initialized", "width", width, "height", height)
	return nil
}

// Resize reallocates the framebuffer.
func (b *SoftwareBackend) Resize(width, height int) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	b.device.resize(width, height)
	return nil
}

// Clear fills the framebuffer with an opaque color.
func (b *SoftwareBackend) Clear(r, g, bl float32) {
	if !b.initialized {
		return
	}
	b.device.clear(color.RGBA{R: unorm(r), G: unorm(g), B: unorm(bl), A: 0xff})
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.device = nil
	b.initialized = false
}

// Device returns the software device, or nil before Init.
func (b *SoftwareBackend) Device() screencap.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}

// Snapshot returns a copy of the framebuffer, or nil before Init.
func (b *SoftwareBackend) Snapshot() *image.RGBA {
	if b.device == nil {
		return nil
	}
	return b.device.Snapshot()
}

func unorm(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	default:
		return uint8(v*255 + 0.5)
	}
}

// fill paints dst with an opaque color.
func fill(dst *image.RGBA, c color.RGBA) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}
