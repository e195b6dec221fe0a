// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"errors"
	"fmt"

	"github.com/gogpu/screencap/internal/framesync"
)

var _ FrameSink = (*Display)(nil)

// OnFrame copies the primary plane of f into the staging buffer.
// It is called by the source, on any goroutine.
//
// Invalid frames are logged and dropped without touching the staging
// buffer: a nil or empty plane, a byte count larger than the plane, a
// format or size other than the configured one. Nothing is reported back
// to the source.
func (d *Display) OnFrame(f *Frame) {
	d.received.Add(1)
	if err := d.acceptFrame(f); err != nil {
		d.dropped.Add(1)
		d.log().Warn("screencap: frame dropped", "reason", err)
		return
	}

	n := f.Sizes[0]
	if err := d.staging.Write(f.Planes[0][:n]); err != nil {
		// The copy may have completed when only Unlock failed; a failed
		// Lock or a rejected size means the frame is lost.
		if errors.Is(err, framesync.ErrSizeMismatch) || errors.Is(err, framesync.ErrNotAllocated) {
			d.dropped.Add(1)
		}
		d.log().Error("screencap: staging write failed", "error", err)
	}
}

func (d *Display) acceptFrame(f *Frame) error {
	want := d.accept.Load()
	switch {
	case want == nil:
		return ErrNotConfigured
	case f == nil:
		return errors.New("nil frame")
	case f.Sizes[0] <= 0:
		return fmt.Errorf("plane 0 byte count is %d", f.Sizes[0])
	case f.Planes[0] == nil:
		return errors.New("plane 0 is nil")
	case f.Sizes[0] > len(f.Planes[0]):
		return fmt.Errorf("plane 0 byte count %d exceeds plane length %d", f.Sizes[0], len(f.Planes[0]))
	case f.PixelFormat != want.format:
		return fmt.Errorf("%w: frame is %s, display expects %s", ErrUnsupportedFormat, f.PixelFormat, want.format)
	case f.Sizes[0] != want.size:
		return fmt.Errorf("frame has %d bytes, display expects %d", f.Sizes[0], want.size)
	}
	return nil
}

// Update uploads the latest frame to the instance texture if a new one
// arrived since the previous Update. Otherwise it issues no GPU call.
// It never waits for a frame.
func (d *Display) Update() error {
	const op = "update"
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.drawable() || d.tex0 == 0 {
		d.log().Error("screencap: update before configure", "state", d.state)
		return opError(op, -1, ErrNotConfigured)
	}

	uploaded, err := d.staging.Drain(d.uploadStaging)
	switch {
	case err != nil && uploaded:
		d.log().Error("screencap: texture upload failed", "error", err)
		return opError(op, -3, err)
	case err != nil:
		d.log().Error("screencap: failed to lock the staging buffer", "error", err)
		return opError(op, -2, err)
	}
	if uploaded {
		d.log().Debug("screencap: frame uploaded", "texture", d.tex0)
	}
	return nil
}
