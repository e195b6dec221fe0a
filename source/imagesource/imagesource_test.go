// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imagesource

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/gogpu/screencap"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// quadrants returns a 2x2 image: red, green on top, blue, white below.
func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, white)
	return img
}

func bgraOf(c color.RGBA) [4]byte { return [4]byte{c.B, c.G, c.R, c.A} }

func deliver(t *testing.T, s *Source, w, h int) []byte {
	t.Helper()
	var got []byte
	s.SetSink(screencap.FrameSinkFunc(func(f *screencap.Frame) {
		got = bytes.Clone(f.Planes[0][:f.Sizes[0]])
	}))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	err := s.Configure(screencap.Settings{OutputWidth: w, OutputHeight: h, PixelFormat: screencap.FormatBGRA})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	s.Emit()
	if got == nil {
		t.Fatal("no frame delivered")
	}
	return got
}

func at(buf []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func TestScaledDelivery(t *testing.T) {
	s := New(quadrants())
	s.SetScaler(draw.NearestNeighbor)
	frame := deliver(t, s, 4, 4)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red}, {1, 1, red},
		{3, 0, green}, {2, 1, green},
		{0, 3, blue}, {1, 2, blue},
		{3, 3, white}, {2, 2, white},
	}
	for _, tt := range tests {
		if got := at(frame, 4, tt.x, tt.y); got != bgraOf(tt.want) {
			t.Errorf("pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, bgraOf(tt.want))
		}
	}
}

func TestNoImage(t *testing.T) {
	src, err := screencap.NewSource(Name)
	if err != nil {
		t.Fatalf("NewSource(%q): %v", Name, err)
	}
	_ = src.Init()
	err = src.Configure(screencap.Settings{OutputWidth: 2, OutputHeight: 2, PixelFormat: screencap.FormatBGRA})
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("Configure without image: %v, want ErrNoImage", err)
	}
}

func TestSetImageWhileConfigured(t *testing.T) {
	s := New(quadrants())
	s.SetScaler(draw.NearestNeighbor)
	deliver(t, s, 2, 2)

	solid := image.NewRGBA(image.Rect(0, 0, 1, 1))
	solid.SetRGBA(0, 0, green)
	s.SetImage(solid)
	var got []byte
	s.SetSink(screencap.FrameSinkFunc(func(f *screencap.Frame) {
		got = bytes.Clone(f.Planes[0][:f.Sizes[0]])
	}))
	s.Emit()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if p := at(got, 2, x, y); p != bgraOf(green) {
				t.Errorf("pixel(%d, %d) = %v, want green", x, y, p)
			}
		}
	}
}

func TestLoadFormats(t *testing.T) {
	encoders := map[string]func(io.Writer, image.Image) error{
		"png":  png.Encode,
		"bmp":  bmp.Encode,
		"tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	}
	for ext, encode := range encoders {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf, quadrants()); err != nil {
				t.Fatalf("encode: %v", err)
			}
			path := filepath.Join(t.TempDir(), "frame."+ext)
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				t.Fatal(err)
			}

			s, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			s.SetScaler(draw.NearestNeighbor)
			frame := deliver(t, s, 2, 2)
			if got := at(frame, 2, 1, 0); got != bgraOf(green) {
				t.Errorf("pixel(1, 0) = %v, want green", got)
			}
			if got := at(frame, 2, 0, 1); got != bgraOf(blue) {
				t.Errorf("pixel(0, 1) = %v, want blue", got)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); !errors.Is(err, image.ErrFormat) {
		t.Errorf("junk file: %v, want image.ErrFormat", err)
	}
}

func TestToBGRA(t *testing.T) {
	img := quadrants()
	got := ToBGRA(img.SubImage(image.Rect(1, 0, 2, 2)).(*image.RGBA))
	g, w := bgraOf(green), bgraOf(white)
	want := append(g[:], w[:]...)
	if !bytes.Equal(got, want) {
		t.Errorf("ToBGRA(sub) = %v, want %v", got, want)
	}
}
