// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capturecanvas

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/internal/framesync"
	"github.com/gogpu/screencap/internal/pixconv"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("capturecanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("capturecanvas: invalid dimensions")

	// ErrNoTextureCreator is returned when the drawer has no texture creator.
	ErrNoTextureCreator = errors.New("capturecanvas: draw context has no TextureCreator")

	// ErrTextureNotUpdatable is returned when the texture created by the
	// drawer does not implement gpucontext.TextureUpdater.
	ErrTextureNotUpdatable = errors.New("capturecanvas: texture does not implement gpucontext.TextureUpdater")
)

// textureDestroyer is implemented by textures that hold GPU resources.
type textureDestroyer interface {
	Destroy()
}

// syncLocker adapts sync.Mutex to framesync.Locker.
type syncLocker struct{ mu sync.Mutex }

func (l *syncLocker) Lock() error   { l.mu.Lock(); return nil }
func (l *syncLocker) Unlock() error { l.mu.Unlock(); return nil }

// Canvas receives BGRA frames and renders the latest one as an RGBA texture.
type Canvas struct {
	staging *framesync.Buffer

	// geom is read by OnFrame; everything below it is render-goroutine state.
	geom sync.Mutex
	w, h int

	bgra        []byte
	rgba        []byte
	texture     gpucontext.Texture
	oldTexture  gpucontext.Texture
	orientation screencap.Orientation
	dirty       bool
	sizeChanged bool
	closed      bool
}

var _ screencap.FrameSink = (*Canvas)(nil)

// New creates a canvas for width x height BGRA frames.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	c := &Canvas{
		staging: framesync.New(&syncLocker{}),
		w:       width,
		h:       height,
		bgra:    make([]byte, width*height*4),
		rgba:    make([]byte, width*height*4),
		dirty:   true,
	}
	if err := c.staging.Resize(width * height * 4); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(width, height int) *Canvas {
	c, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Size returns the frame size the canvas accepts.
func (c *Canvas) Size() (width, height int) {
	c.geom.Lock()
	defer c.geom.Unlock()
	return c.w, c.h
}

// OnFrame stages a BGRA frame. Frames of another format or size are
// dropped and logged.
func (c *Canvas) OnFrame(f *screencap.Frame) {
	c.geom.Lock()
	w, h := c.w, c.h
	c.geom.Unlock()

	switch {
	case f == nil || f.Planes[0] == nil:
		screencap.Logger().Warn("capturecanvas: empty frame dropped")
		return
	case f.PixelFormat != screencap.FormatBGRA:
		screencap.Logger().Warn("capturecanvas: frame dropped", "format", f.PixelFormat)
		return
	case f.Width != w || f.Height != h || f.Sizes[0] != w*h*4 || len(f.Planes[0]) < f.Sizes[0]:
		screencap.Logger().Warn("capturecanvas: frame dropped",
			"width", f.Width, "height", f.Height, "bytes", f.Sizes[0],
			"want_width", w, "want_height", h)
		return
	}
	if err := c.staging.Write(f.Planes[0][:f.Sizes[0]]); err != nil {
		screencap.Logger().Warn("capturecanvas: frame dropped", "error", err)
	}
}

// Flip selects the CPU-side orientation applied on conversion.
// The next render re-converts the last frame.
func (c *Canvas) Flip(horizontal, vertical bool) {
	o := screencap.Orientation{Horizontal: horizontal, Vertical: vertical}
	if o != c.orientation {
		c.orientation = o
		c.dirty = true
	}
}

// Orientation returns the current orientation.
func (c *Canvas) Orientation() screencap.Orientation {
	return c.orientation
}

// IsDirty reports whether a render would upload pixels.
func (c *Canvas) IsDirty() bool {
	return c.dirty || c.staging.Dirty()
}

// Resize changes the accepted frame size. A staged frame is discarded and
// the texture is recreated on the next render.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	c.geom.Lock()
	defer c.geom.Unlock()
	if c.w == width && c.h == height {
		return nil
	}
	if err := c.staging.Resize(width * height * 4); err != nil {
		return fmt.Errorf("capturecanvas: staging resize failed: %w", err)
	}
	c.w, c.h = width, height
	c.bgra = make([]byte, width*height*4)
	c.rgba = make([]byte, width*height*4)
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Pixels returns the RGBA pixels of the last converted frame.
func (c *Canvas) Pixels() []byte {
	return c.rgba
}

// Flush converts the latest staged frame into the RGBA buffer.
// It reports whether the buffer changed since the last upload.
func (c *Canvas) Flush() (bool, error) {
	if c.closed {
		return false, ErrCanvasClosed
	}
	c.geom.Lock()
	w, h := c.w, c.h
	c.geom.Unlock()

	got, err := c.staging.Drain(func(pixels []byte) error {
		copy(c.bgra, pixels)
		return nil
	})
	if err != nil {
		return false, err
	}
	if !got && !c.dirty {
		return false, nil
	}
	op := pixconv.Op{SwapRB: true, FlipX: c.orientation.Horizontal, FlipY: c.orientation.Vertical}
	if err := pixconv.Convert(c.rgba, c.bgra, w*pixconv.BytesPerPixel, w, h, op); err != nil {
		return false, err
	}
	return true, nil
}

// Texture returns the current GPU texture, or nil before the first render.
func (c *Canvas) Texture() gpucontext.Texture {
	return c.texture
}

// Close releases the texture. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	destroy(c.oldTexture)
	destroy(c.texture)
	c.oldTexture, c.texture = nil, nil
	err := c.staging.Release()
	c.bgra, c.rgba = nil, nil
	return err
}

func destroy(t gpucontext.Texture) {
	if d, ok := t.(textureDestroyer); ok {
		d.Destroy()
	}
}
