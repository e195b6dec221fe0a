// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Draw draws the captured screen at the origin with the configured output
// size.
func (d *Display) Draw() error {
	d.mu.Lock()
	w, h := float32(d.settings.OutputWidth), float32(d.settings.OutputHeight)
	d.mu.Unlock()
	return d.DrawAt(0, 0, w, h)
}

// DrawAt draws the captured screen as a w x h quad with its top-left
// corner at (x, y), in the units of the projection matrix.
//
// The pipeline uniforms are shared by every display, so DrawAt uploads
// this display's projection, texture coordinates and placement each time.
func (d *Display) DrawAt(x, y, w, h float32) error {
	const op = "draw"
	d.mu.Lock()
	defer d.mu.Unlock()
	log := d.log()

	b := d.pipeline.snapshot()
	if b.program == 0 || !d.state.drawable() {
		log.Error("screencap: cannot draw, the shader program has not been created", "state", d.state)
		return opError(op, -1, ErrNotConfigured)
	}

	switch d.settings.PixelFormat {
	case FormatBGRA:
		if d.tex0 == 0 {
			log.Error("screencap: cannot draw, no texture")
			return opError(op, -3, ErrNotConfigured)
		}
		d.device.BindTexture(0, d.tex0)
	default:
		log.Error("screencap: cannot bind textures for format", "format", d.settings.PixelFormat)
		return opError(op, -2, fmt.Errorf("%w: %s", ErrUnsupportedFormat, d.settings.PixelFormat))
	}

	d.placement = ScaleTranslate(x, y, w, h)
	coords := d.orientation.TexCoords()

	d.device.UseProgram(b.program)
	d.device.BindVertexArray(b.vao)
	d.device.UniformMatrix4(b.locProjection, d.projection)
	d.device.UniformFloats(b.locTexCoords, coords[:])
	d.device.UniformMatrix4(b.locPlacement, d.placement)
	d.device.DrawArrays(gputypes.PrimitiveTopologyTriangleStrip, 0, quadVertexCount)
	return nil
}

// Flip selects how the texture is sampled. Vertical is the default, which
// matches a top-down frame drawn with the default projection. Flipping
// changes texture coordinates only; no pixels are uploaded.
func (d *Display) Flip(horizontal, vertical bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.drawable() {
		d.log().Error("screencap: flip before configure", "state", d.state)
		return opError("flip", -1, ErrNotConfigured)
	}
	return d.flipLocked(Orientation{Horizontal: horizontal, Vertical: vertical})
}

func (d *Display) flipLocked(o Orientation) error {
	const op = "flip"
	b := d.pipeline.snapshot()
	if b.program == 0 {
		d.log().Error("screencap: cannot flip, the pipeline is not set up")
		return opError(op, -1, ErrNotConfigured)
	}
	if b.locTexCoords < 0 {
		d.log().Error("screencap: cannot flip, texture coordinate uniform not resolved")
		return opError(op, -2, fmt.Errorf("%w: %s", ErrUniformMissing, uniformTexCoords))
	}

	d.orientation = o
	coords := o.TexCoords()
	d.device.UseProgram(b.program)
	d.device.UniformFloats(b.locTexCoords, coords[:])
	return nil
}

// SetProjectionMatrix replaces the projection used by this display.
// The default is an orthographic projection of the viewport with the
// origin at the top-left corner, computed when the pipeline was set up.
func (d *Display) SetProjectionMatrix(m Mat4) error {
	const op = "set projection"
	d.mu.Lock()
	defer d.mu.Unlock()

	b := d.pipeline.snapshot()
	if b.program == 0 || !d.state.drawable() {
		d.log().Error("screencap: projection can only be set after configure")
		return opError(op, -1, ErrNotConfigured)
	}
	if m.IsZero() {
		return opError(op, -2, ErrZeroProjection)
	}

	d.projection = m
	d.device.UseProgram(b.program)
	d.device.UniformMatrix4(b.locProjection, m)
	return nil
}

// Projection returns the projection used by this display.
func (d *Display) Projection() Mat4 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.projection
}

// Placement returns the placement matrix of the last draw.
func (d *Display) Placement() Mat4 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.placement
}
