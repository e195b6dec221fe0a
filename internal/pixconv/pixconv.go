// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixconv converts between the 4-byte pixel layouts used by
// screencap: BGRA frames from capture sources and RGBA textures and images.
package pixconv

import "fmt"

// BytesPerPixel is the size of every layout handled by this package.
const BytesPerPixel = 4

// Op describes a conversion. The zero Op is a plain copy.
type Op struct {
	// SwapRB exchanges bytes 0 and 2 of each pixel (BGRA <-> RGBA).
	SwapRB bool
	// FlipX mirrors each row.
	FlipX bool
	// FlipY reverses the row order.
	FlipY bool
	// Opaque forces the alpha byte to 0xff.
	Opaque bool
}

// Convert writes width x height pixels from src into dst, applying op.
// src rows are srcStride bytes apart; dst is tightly packed.
func Convert(dst, src []byte, srcStride, width, height int, op Op) error {
	row := width * BytesPerPixel
	if width < 0 || height < 0 || srcStride < row {
		return fmt.Errorf("pixconv: invalid geometry %dx%d stride %d", width, height, srcStride)
	}
	if len(dst) < row*height {
		return fmt.Errorf("pixconv: destination has %d bytes, want %d", len(dst), row*height)
	}
	if height > 0 && len(src) < srcStride*(height-1)+row {
		return fmt.Errorf("pixconv: source has %d bytes, want %d", len(src), srcStride*(height-1)+row)
	}

	r, b := 0, 2
	if op.SwapRB {
		r, b = 2, 0
	}
	for y := 0; y < height; y++ {
		sy := y
		if op.FlipY {
			sy = height - 1 - y
		}
		srow := src[sy*srcStride : sy*srcStride+row]
		drow := dst[y*row : (y+1)*row]
		if !op.FlipX && !op.SwapRB && !op.Opaque {
			copy(drow, srow)
			continue
		}
		for x := 0; x < width; x++ {
			sx := x
			if op.FlipX {
				sx = width - 1 - x
			}
			s := srow[sx*BytesPerPixel : sx*BytesPerPixel+BytesPerPixel]
			d := drow[x*BytesPerPixel : x*BytesPerPixel+BytesPerPixel]
			d[0], d[1], d[2], d[3] = s[r], s[1], s[b], s[3]
			if op.Opaque {
				d[3] = 0xff
			}
		}
	}
	return nil
}
