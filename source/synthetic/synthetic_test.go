// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package synthetic

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/screencap"
)

type collector struct {
	mu     sync.Mutex
	frames [][]byte
	ch     chan struct{}
}

func newCollector() *collector {
	return &collector{ch: make(chan struct{}, 64)}
}

func (c *collector) OnFrame(f *screencap.Frame) {
	c.mu.Lock()
	c.frames = append(c.frames, bytes.Clone(f.Planes[0][:f.Sizes[0]]))
	c.mu.Unlock()
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

func (c *collector) last() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames[len(c.frames)-1]
}

func configured(t *testing.T, w, h int) (*Source, *collector) {
	t.Helper()
	s := New()
	c := newCollector()
	s.SetSink(c)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	err := s.Configure(screencap.Settings{
		OutputWidth:  w,
		OutputHeight: h,
		PixelFormat:  screencap.FormatBGRA,
		FrameRate:    200,
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return s, c
}

func pixel(buf []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func TestRegistered(t *testing.T) {
	src, err := screencap.NewSource(Name)
	if err != nil {
		t.Fatalf("NewSource(%q): %v", Name, err)
	}
	if _, ok := src.(*Source); !ok {
		t.Errorf("NewSource(%q) = %T, want *Source", Name, src)
	}
}

func TestFirstFrame(t *testing.T) {
	const w, h = 16, 4
	s, c := configured(t, w, h)
	s.Emit()

	frame := c.last()
	if len(frame) != w*h*4 {
		t.Fatalf("frame is %d bytes, want %d", len(frame), w*h*4)
	}
	// Frame 0: no scroll, scan line on row 0.
	for x := 0; x < w; x++ {
		bar := Bars[x*len(Bars)/w]
		want := [4]byte{bar[0], bar[1], bar[2], 0xff}
		if got := pixel(frame, w, x, 1); got != want {
			t.Errorf("pixel(%d, 1) = %v, want %v", x, got, want)
		}
		if got := pixel(frame, w, x, 0); got != [4]byte{ScanLine, ScanLine, ScanLine, 0xff} {
			t.Errorf("scan line pixel(%d, 0) = %v", x, got)
		}
	}
}

func TestPatternMoves(t *testing.T) {
	const w, h = 16, 4
	s, c := configured(t, w, h)
	s.Emit()
	first := c.last()
	s.Emit()
	second := c.last()

	if bytes.Equal(first, second) {
		t.Fatal("consecutive frames are identical")
	}
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", s.Frames())
	}
	// Step is 1 pixel at this width: the scan line moves to row 1.
	if got := pixel(second, w, 0, 1); got != [4]byte{ScanLine, ScanLine, ScanLine, 0xff} {
		t.Errorf("scan line not on row 1: %v", got)
	}
	bar := Bars[BarAt(0, 1, w)]
	if got := pixel(second, w, 0, 2); got != [4]byte{bar[0], bar[1], bar[2], 0xff} {
		t.Errorf("scrolled pixel(0, 2) = %v, want bar %v", got, bar)
	}
}

func TestBarAt(t *testing.T) {
	tests := []struct {
		x, offset, width, want int
	}{
		{0, 0, 80, 0},
		{79, 0, 80, 7},
		{10, 0, 80, 1},
		{0, 10, 80, 1},
		{75, 10, 80, 0},
	}
	for _, tt := range tests {
		if got := BarAt(tt.x, tt.offset, tt.width); got != tt.want {
			t.Errorf("BarAt(%d, %d, %d) = %d, want %d", tt.x, tt.offset, tt.width, got, tt.want)
		}
	}
}

func TestStartDelivers(t *testing.T) {
	s, c := configured(t, 8, 8)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-c.ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("frame %d not delivered", i)
		}
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	n := s.Frames()
	time.Sleep(20 * time.Millisecond)
	if s.Frames() != n {
		t.Errorf("frames delivered after Stop: %d -> %d", n, s.Frames())
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
