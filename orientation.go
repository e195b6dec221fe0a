// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

// Orientation selects how the display texture is sampled, following the
// "flip horizontal" / "flip vertical" semantics of image editors.
type Orientation struct {
	Horizontal bool
	Vertical   bool
}

// DefaultOrientation reconciles a top-left image origin with the
// bottom-left framebuffer origin.
var DefaultOrientation = Orientation{Horizontal: false, Vertical: true}

// Texture coordinates (u, v) for the four quad vertices, in the vertex
// shader's gl_VertexID order.
var (
	texCoordsNormal     = [8]float32{0, 0, 0, 1, 1, 0, 1, 1}
	texCoordsVertical   = [8]float32{0, 1, 0, 0, 1, 1, 1, 0}
	texCoordsHorizontal = [8]float32{1, 0, 1, 1, 0, 0, 0, 1}
	texCoordsBoth       = [8]float32{1, 1, 1, 0, 0, 1, 0, 0}
)

// TexCoords returns the fixed coordinate set for the orientation.
func (o Orientation) TexCoords() [8]float32 {
	switch {
	case !o.Horizontal && !o.Vertical:
		return texCoordsNormal
	case !o.Horizontal && o.Vertical:
		return texCoordsVertical
	case o.Horizontal && !o.Vertical:
		return texCoordsHorizontal
	default:
		return texCoordsBoth
	}
}

// String returns a short name for logs.
func (o Orientation) String() string {
	switch {
	case !o.Horizontal && !o.Vertical:
		return "normal"
	case !o.Horizontal && o.Vertical:
		return "vertical"
	case o.Horizontal && !o.Vertical:
		return "horizontal"
	default:
		return "both"
	}
}
