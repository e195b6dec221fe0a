// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import "fmt"

// Frame rate limits in frames per second.
const (
	// DefaultFrameRate is used by sources when Settings.FrameRate is zero.
	DefaultFrameRate = 30
	// MaxFrameRate is the highest rate Validate accepts.
	MaxFrameRate = 1000
)

// Settings configures a Display and the Source behind it.
// The same record is handed verbatim to Source.Configure.
type Settings struct {
	// OutputWidth is the width of the delivered frames in pixels (> 0).
	OutputWidth int
	// OutputHeight is the height of the delivered frames in pixels (> 0).
	OutputHeight int
	// PixelFormat is the layout the source must deliver. Only FormatBGRA
	// is accepted by Display.
	PixelFormat PixelFormat
	// Screen selects which monitor the source captures (0 = primary).
	Screen int
	// FrameRate is the requested delivery rate in frames per second,
	// at most MaxFrameRate. Zero selects DefaultFrameRate.
	FrameRate int
}

// FrameSize returns the byte size of one frame in the configured format.
func (s Settings) FrameSize() int {
	return s.PixelFormat.FrameSize(s.OutputWidth, s.OutputHeight)
}

// Rate returns FrameRate, or DefaultFrameRate when unset.
func (s Settings) Rate() int {
	if s.FrameRate <= 0 {
		return DefaultFrameRate
	}
	return s.FrameRate
}

// Validate checks format, dimensions, screen index and frame rate.
func (s Settings) Validate() error {
	if s.PixelFormat == FormatNone {
		return ErrFormatNotSet
	}
	if !s.PixelFormat.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.PixelFormat)
	}
	if s.OutputWidth <= 0 || s.OutputHeight <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, s.OutputWidth, s.OutputHeight)
	}
	if s.Screen < 0 {
		return fmt.Errorf("screencap: invalid screen index %d", s.Screen)
	}
	if s.FrameRate < 0 || s.FrameRate > MaxFrameRate {
		return fmt.Errorf("%w: %d fps, want 0..%d", ErrInvalidFrameRate, s.FrameRate, MaxFrameRate)
	}
	return nil
}
