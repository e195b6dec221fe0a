// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

// Mat4 is a 4x4 float32 matrix in column-major order, the layout expected
// by a matrix uniform upload with transpose disabled:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
//
// Scale lives on the diagonal, translation in the last column.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection for the box
// [left, right] x [bottom, top] x [near, far].
//
// Ortho(0, w, h, 0, 0, 100) maps pixel coordinates with a top-left origin
// to normalized device coordinates.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rml := right - left
	tmb := top - bottom
	fmn := far - near
	return Mat4{
		2 / rml, 0, 0, 0,
		0, 2 / tmb, 0, 0,
		0, 0, -2 / fmn, 0,
		-(right + left) / rml, -(top + bottom) / tmb, -(far + near) / fmn, 1,
	}
}

// Translation returns a matrix that translates by (x, y, z).
func Translation(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// ScaleTranslate returns the placement matrix for a unit quad drawn at
// (x, y) with size (w, h). The cells are written directly, without a
// general multiplication.
func ScaleTranslate(x, y, w, h float32) Mat4 {
	return Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, 1, 0,
		x, y, 0, 1,
	}
}

// Multiply returns m * other.
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Apply transforms the point (x, y, z, 1) and returns the resulting x and y.
func (m Mat4) Apply(x, y, z float32) (float32, float32) {
	px := m[0]*x + m[4]*y + m[8]*z + m[12]
	py := m[1]*x + m[5]*y + m[9]*z + m[13]
	pw := m[3]*x + m[7]*y + m[11]*z + m[15]
	if pw != 0 && pw != 1 {
		px /= pw
		py /= pw
	}
	return px, py
}

// IsZero reports whether every cell is zero.
func (m Mat4) IsZero() bool {
	return m == Mat4{}
}
