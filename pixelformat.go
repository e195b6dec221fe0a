// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// PixelFormat tags the layout of the pixel planes delivered by a Source.
type PixelFormat int

const (
	// FormatNone means no format was configured.
	FormatNone PixelFormat = iota
	// FormatBGRA is packed 8-bit B, G, R, A in a single plane.
	FormatBGRA
	// FormatNV12 is a Y plane followed by an interleaved UV plane.
	FormatNV12
	// FormatYUV420P is three separate Y, U and V planes.
	FormatYUV420P
)

// MaxPlanes is the largest number of planes a Frame can carry.
const MaxPlanes = 3

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatBGRA:
		return "BGRA"
	case FormatNV12:
		return "NV12"
	case FormatYUV420P:
		return "YUV420P"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Planar reports whether the format stores channels in separate planes.
func (f PixelFormat) Planar() bool {
	return f == FormatNV12 || f == FormatYUV420P
}

// Supported reports whether the display pipeline can render the format.
// Only packed BGRA is implemented.
func (f PixelFormat) Supported() bool {
	return f == FormatBGRA
}

// BytesPerPixel returns the size of one packed pixel, or 0 for planar
// and unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatBGRA {
		return 4
	}
	return 0
}

// FrameSize returns the staging buffer size for a width x height frame.
// Returns 0 for formats without a packed layout.
func (f PixelFormat) FrameSize(width, height int) int {
	return width * height * f.BytesPerPixel()
}

// UploadFormat returns the layout in which pixel bytes are handed to the GPU.
func (f PixelFormat) UploadFormat() gputypes.TextureFormat {
	if f == FormatBGRA {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatUndefined
}

// StorageFormat returns the GPU-side internal format of the display texture.
// It differs from UploadFormat on purpose: the staging bytes keep the order
// of the source, the texture keeps the order the GPU samples natively.
func (f PixelFormat) StorageFormat() gputypes.TextureFormat {
	if f == FormatBGRA {
		return gputypes.TextureFormatRGBA8Unorm
	}
	return gputypes.TextureFormatUndefined
}

// ParsePixelFormat parses a format name as produced by String, ignoring case.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for _, f := range []PixelFormat{FormatNone, FormatBGRA, FormatNV12, FormatYUV420P} {
		if strings.EqualFold(f.String(), s) {
			return f, nil
		}
	}
	return FormatNone, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}
