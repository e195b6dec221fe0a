// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
)

// Frame is one delivery from a Source.
//
// Planes holds the pixel data per plane. Packed formats use only plane 0.
// Sizes holds the number of valid bytes in each plane. Strides is
// informational: packed BGRA frames are expected to be tightly packed.
//
// A Frame and its planes are only valid for the duration of OnFrame.
type Frame struct {
	PixelFormat PixelFormat
	Width       int
	Height      int
	Planes      [MaxPlanes][]byte
	Sizes       [MaxPlanes]int
	Strides     [MaxPlanes]int
}

// FrameSink receives frames from a Source. OnFrame may be called from any
// goroutine and must not block for long.
type FrameSink interface {
	OnFrame(f *Frame)
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(f *Frame)

// OnFrame calls fn(f).
func (fn FrameSinkFunc) OnFrame(f *Frame) { fn(f) }

// Source is a screen capture driver.
//
// The lifecycle is Init, Configure, Start and Stop (repeatable), Shutdown.
// Stop and Shutdown are synchronous: once they return no further OnFrame
// call is in flight.
type Source interface {
	Init() error
	Configure(s Settings) error
	Start() error
	Stop() error
	Shutdown() error

	// SetSink registers the receiver of frames. It is called once, before
	// Init, by the Display that owns the source.
	SetSink(sink FrameSink)
}

var sources = gpucontext.NewRegistry[Source](
	gpucontext.WithPriority("synthetic", "image"),
)

// RegisterSource makes a capture source available by name.
// Source packages call it from init.
func RegisterSource(name string, factory func() Source) {
	sources.Register(name, factory)
}

// NewSource creates the source registered under name. An empty name
// selects the highest-priority registered source.
func NewSource(name string) (Source, error) {
	if name == "" {
		name = sources.BestName()
		if name == "" {
			return nil, fmt.Errorf("%w: no capture source registered", ErrNilSource)
		}
	}
	if !sources.Has(name) {
		return nil, fmt.Errorf("%w: unknown capture source %q (available: %v)", ErrNilSource, name, Sources())
	}
	return sources.Get(name), nil
}

// Sources returns the names of the registered capture sources, sorted.
func Sources() []string {
	names := sources.Available()
	slices.Sort(names)
	return names
}
