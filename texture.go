// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ensureTextures allocates the instance texture for the configured settings.
// It fails if the texture already exists.
func (d *Display) ensureTextures() error {
	const op = "setup textures"
	s := d.settings

	if s.OutputWidth <= 0 {
		return opError(op, -1, fmt.Errorf("%w: output width %d", ErrInvalidDimensions, s.OutputWidth))
	}
	if s.OutputHeight <= 0 {
		return opError(op, -2, fmt.Errorf("%w: output height %d", ErrInvalidDimensions, s.OutputHeight))
	}

	switch s.PixelFormat {
	case FormatBGRA:
		if d.tex0 != 0 {
			return opError(op, -3, ErrTextureExists)
		}
		tex, err := d.device.CreateTexture(TextureDesc{
			Size:          gputypes.NewExtent2D(uint32(s.OutputWidth), uint32(s.OutputHeight)),
			StorageFormat: s.PixelFormat.StorageFormat(),
			UploadFormat:  s.PixelFormat.UploadFormat(),
			AddressMode:   gputypes.AddressModeClampToEdge,
			Filter:        gputypes.FilterModeLinear,
		})
		if err != nil || tex == 0 {
			return opError(op, -5, fmt.Errorf("%w: %w", ErrTextureCreate, err))
		}
		d.tex0 = tex
		d.texSize = [2]int{s.OutputWidth, s.OutputHeight}
		d.log().Debug("screencap: texture created",
			"texture", tex,
			"width", s.OutputWidth,
			"height", s.OutputHeight)
		return nil
	default:
		return opError(op, -4, fmt.Errorf("%w: %s", ErrPlanarUnsupported, s.PixelFormat))
	}
}

// deleteTextures frees every instance texture.
func (d *Display) deleteTextures() {
	if d.tex0 != 0 {
		d.device.DeleteTexture(d.tex0)
		d.tex0 = 0
	}
	if d.tex1 != 0 {
		d.device.DeleteTexture(d.tex1)
		d.tex1 = 0
	}
	d.texSize = [2]int{}
}

// uploadStaging copies the staging buffer into the instance texture.
// It runs inside Buffer.Drain with the lock held.
func (d *Display) uploadStaging(pixels []byte) error {
	size := gputypes.NewExtent2D(uint32(d.texSize[0]), uint32(d.texSize[1]))
	return d.device.UpdateTexture(d.tex0, size, d.settings.PixelFormat.UploadFormat(), pixels)
}

// displayTexture is the gpucontext view of an instance texture.
type displayTexture struct {
	handle        uint32
	width, height int
}

var _ gpucontext.Texture = displayTexture{}

func (t displayTexture) Width() int  { return t.width }
func (t displayTexture) Height() int { return t.height }

// Handle returns the device texture handle.
func (t displayTexture) Handle() uint32 { return t.handle }

// Texture returns the instance texture, or nil before Configure.
// The concrete value also has a Handle() uint32 method.
func (d *Display) Texture() gpucontext.Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tex0 == 0 {
		return nil
	}
	return displayTexture{handle: d.tex0, width: d.texSize[0], height: d.texSize[1]}
}
