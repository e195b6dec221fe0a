// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"
)

func internalFormat(f gputypes.TextureFormat) (int32, error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return gl.RGBA8, nil
	case gputypes.TextureFormatR8Unorm:
		return gl.R8, nil
	}
	return 0, fmt.Errorf("%w: storage format %s", ErrUnsupported, f)
}

// pixelFormat returns the client format and component type for uploads.
func pixelFormat(f gputypes.TextureFormat) (format, xtype uint32, err error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return gl.RGBA, gl.UNSIGNED_BYTE, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return gl.BGRA, gl.UNSIGNED_BYTE, nil
	case gputypes.TextureFormatR8Unorm:
		return gl.RED, gl.UNSIGNED_BYTE, nil
	}
	return 0, 0, fmt.Errorf("%w: upload format %s", ErrUnsupported, f)
}

func bytesPerPixel(f gputypes.TextureFormat) int {
	if f == gputypes.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

func wrapMode(m gputypes.AddressMode) (int32, error) {
	switch m {
	case gputypes.AddressModeClampToEdge:
		return gl.CLAMP_TO_EDGE, nil
	case gputypes.AddressModeRepeat:
		return gl.REPEAT, nil
	case gputypes.AddressModeMirrorRepeat:
		return gl.MIRRORED_REPEAT, nil
	}
	return 0, fmt.Errorf("%w: address mode %d", ErrUnsupported, m)
}

func filterMode(m gputypes.FilterMode) int32 {
	if m == gputypes.FilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func drawMode(t gputypes.PrimitiveTopology) (uint32, error) {
	switch t {
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP, nil
	case gputypes.PrimitiveTopologyTriangleList:
		return gl.TRIANGLES, nil
	}
	return 0, fmt.Errorf("%w: topology %d", ErrUnsupported, t)
}
