// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestIdentityApply(t *testing.T) {
	x, y := Identity().Apply(3, -4, 0)
	if x != 3 || y != -4 {
		t.Errorf("Identity().Apply(3, -4) = (%v, %v)", x, y)
	}
}

func TestOrthoMapsViewportCorners(t *testing.T) {
	m := Ortho(0, 800, 600, 0, 0, 100)
	tests := []struct {
		name         string
		x, y         float32
		wantX, wantY float32
	}{
		{"top-left", 0, 0, -1, 1},
		{"bottom-right", 800, 600, 1, -1},
		{"center", 400, 300, 0, 0},
		{"top-right", 800, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := m.Apply(tt.x, tt.y, 0)
			if !approx(x, tt.wantX) || !approx(y, tt.wantY) {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestScaleTranslateLayout(t *testing.T) {
	m := ScaleTranslate(10, 20, 100, 50)

	// Column-major: scale on the diagonal, translation in cells 12 and 13.
	if m[0] != 100 || m[5] != 50 || m[10] != 1 || m[15] != 1 {
		t.Errorf("diagonal = %v %v %v %v", m[0], m[5], m[10], m[15])
	}
	if m[12] != 10 || m[13] != 20 || m[14] != 0 {
		t.Errorf("translation = %v %v %v", m[12], m[13], m[14])
	}

	corners := [][4]float32{
		{0, 0, 10, 20},
		{1, 0, 110, 20},
		{0, 1, 10, 70},
		{1, 1, 110, 70},
	}
	for _, c := range corners {
		x, y := m.Apply(c[0], c[1], 0)
		if x != c[2] || y != c[3] {
			t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", c[0], c[1], x, y, c[2], c[3])
		}
	}
}

func TestScaleTranslateMatchesProduct(t *testing.T) {
	scale := Identity()
	scale[0], scale[5] = 100, 50
	want := Translation(10, 20, 0).Multiply(scale)
	if got := ScaleTranslate(10, 20, 100, 50); got != want {
		t.Errorf("ScaleTranslate = %v, want %v", got, want)
	}
}

func TestMultiplyIdentity(t *testing.T) {
	m := Ortho(0, 640, 480, 0, 0, 100)
	if got := m.Multiply(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Multiply(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestIsZero(t *testing.T) {
	if !(Mat4{}).IsZero() {
		t.Error("zero matrix not reported as zero")
	}
	if Identity().IsZero() {
		t.Error("identity reported as zero")
	}
}
