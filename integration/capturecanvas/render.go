// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capturecanvas

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// RenderTo draws the latest frame at (0, 0).
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition draws the latest frame with its top-left corner at (x, y).
//
// The texture is created through dc.TextureCreator() on the first call and
// after a Resize; later calls upload only when a new frame arrived or the
// orientation changed. Until the first frame arrives the texture is transparent.
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}

	changed, err := c.Flush()
	if err != nil {
		return err
	}

	if c.sizeChanged && c.texture != nil {
		destroy(c.oldTexture)
		c.oldTexture = c.texture
		c.texture = nil
	}
	c.sizeChanged = false

	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		w, h := c.Size()
		tex, err := creator.NewTextureFromRGBA(w, h, c.rgba)
		if err != nil {
			return fmt.Errorf("capturecanvas: NewTextureFromRGBA failed: %w", err)
		}
		c.texture = tex

		// The old texture may be referenced until the creation above
		// completed.
		destroy(c.oldTexture)
		c.oldTexture = nil
	} else if changed {
		updater, ok := c.texture.(gpucontext.TextureUpdater)
		if !ok {
			return ErrTextureNotUpdatable
		}
		if err := updater.UpdateData(c.rgba); err != nil {
			return fmt.Errorf("capturecanvas: texture update failed: %w", err)
		}
	}
	c.dirty = false

	return dc.DrawTexture(c.texture, x, y)
}
