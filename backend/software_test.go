// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/screencap"
)

func TestSoftwareBackendName(t *testing.T) {
	b := NewSoftwareBackend()
	if b.Name() != "software" {
		t.Errorf("Name() = %q, want %q", b.Name(), "software")
	}
}

func TestSoftwareBackendInit(t *testing.T) {
	b := NewSoftwareBackend()
	if b.Device() != nil {
		t.Error("Device() before Init should be nil")
	}
	if err := b.Init(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Init(0, 10) error = %v, want ErrInvalidDimensions", err)
	}
	if err := b.Init(8, 4); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	_, _, w, h := b.Device().Viewport()
	if w != 8 || h != 4 {
		t.Errorf("Viewport() = %dx%d, want 8x4", w, h)
	}
	if err := b.Resize(16, 2); err != nil {
		t.Fatal(err)
	}
	if _, _, w, h = b.Device().Viewport(); w != 16 || h != 2 {
		t.Errorf("Viewport() after Resize = %dx%d, want 16x2", w, h)
	}
}

func TestSoftwareBackendClear(t *testing.T) {
	b := NewSoftwareBackend()
	if err := b.Init(2, 2); err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	b.Clear(1, 0, 0.5)
	if got, want := b.Snapshot().RGBAAt(1, 1), (color.RGBA{R: 255, G: 0, B: 128, A: 255}); got != want {
		t.Errorf("pixel after Clear = %v, want %v", got, want)
	}
}

// sinkSource is a minimal capture source driven by the test.
type sinkSource struct{ sink screencap.FrameSink }

func (s *sinkSource) Init() error                        { return nil }
func (s *sinkSource) Configure(screencap.Settings) error { return nil }
func (s *sinkSource) Start() error                       { return nil }
func (s *sinkSource) Stop() error                        { return nil }
func (s *sinkSource) Shutdown() error                    { return nil }
func (s *sinkSource) SetSink(sink screencap.FrameSink)   { s.sink = sink }

// quadrants returns a 2x2 BGRA frame: red, green / blue, white.
func quadrants() []byte {
	return []byte{
		0, 0, 255, 255, 0, 255, 0, 255,
		255, 0, 0, 255, 255, 255, 255, 255,
	}
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestSoftwareRendersDisplay(t *testing.T) {
	tests := []struct {
		name       string
		horizontal bool
		vertical   bool
		want       [4]color.RGBA // (0,0) (1,0) (0,1) (1,1)
	}{
		{"default", false, true, [4]color.RGBA{red, green, blue, white}},
		{"horizontal", true, true, [4]color.RGBA{green, red, white, blue}},
		{"upside down", false, false, [4]color.RGBA{blue, white, red, green}},
		{"both", true, false, [4]color.RGBA{white, blue, green, red}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewSoftwareBackend()
			if err := b.Init(2, 2); err != nil {
				t.Fatal(err)
			}
			defer b.Close()

			p, err := screencap.NewPipeline(b.Device())
			if err != nil {
				t.Fatal(err)
			}
			src := &sinkSource{}
			d, err := screencap.NewDisplay(p, src)
			if err != nil {
				t.Fatal(err)
			}
			if err := d.Init(); err != nil {
				t.Fatal(err)
			}
			defer d.Shutdown()
			if err := d.Configure(screencap.Settings{OutputWidth: 2, OutputHeight: 2, PixelFormat: screencap.FormatBGRA}); err != nil {
				t.Fatal(err)
			}

			f := &screencap.Frame{PixelFormat: screencap.FormatBGRA, Width: 2, Height: 2}
			f.Planes[0] = quadrants()
			f.Sizes[0] = len(f.Planes[0])
			src.sink.OnFrame(f)

			if err := d.Update(); err != nil {
				t.Fatal(err)
			}
			if err := d.Flip(tt.horizontal, tt.vertical); err != nil {
				t.Fatal(err)
			}
			if err := d.Draw(); err != nil {
				t.Fatal(err)
			}

			img := b.Snapshot()
			pts := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
			for i, pt := range pts {
				if got := img.RGBAAt(pt[0], pt[1]); got != tt.want[i] {
					t.Errorf("pixel %v = %v, want %v", pt, got, tt.want[i])
				}
			}
		})
	}
}

func TestSoftwareScalesIntoPlacement(t *testing.T) {
	dev := NewSoftwareDevice(8, 8)
	p, _ := screencap.NewPipeline(dev)
	src := &sinkSource{}
	d, _ := screencap.NewDisplay(p, src)
	_ = d.Init()
	defer d.Shutdown()
	if err := d.Configure(screencap.Settings{OutputWidth: 2, OutputHeight: 2, PixelFormat: screencap.FormatBGRA}); err != nil {
		t.Fatal(err)
	}
	f := &screencap.Frame{PixelFormat: screencap.FormatBGRA}
	f.Planes[0] = []byte{
		0, 0, 255, 255, 0, 0, 255, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	f.Sizes[0] = 16
	src.sink.OnFrame(f)
	_ = d.Update()

	if err := d.DrawAt(4, 4, 4, 4); err != nil {
		t.Fatal(err)
	}
	img := dev.Snapshot()
	if got := img.RGBAAt(6, 6); got != red {
		t.Errorf("inside placement = %v, want red", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("outside placement = %v, want black", got)
	}
}
