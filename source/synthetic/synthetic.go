// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package synthetic provides a capture source that generates a moving test
// pattern instead of reading a screen.
//
// The pattern is eight vertical color bars scrolling to the left with a gray
// scan line moving down, so orientation and motion are visible at a glance.
// Importing the package registers it as "synthetic".
package synthetic

import (
	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/source"
)

// Name is the registry name of the synthetic source.
const Name = "synthetic"

func init() {
	screencap.RegisterSource(Name, func() screencap.Source {
		return New()
	})
}

// Bars are the bar colors from left to right, as B, G, R.
var Bars = [8][3]byte{
	{0xff, 0xff, 0xff}, // white
	{0x00, 0xff, 0xff}, // yellow
	{0xff, 0xff, 0x00}, // cyan
	{0x00, 0xff, 0x00}, // green
	{0xff, 0x00, 0xff}, // magenta
	{0x00, 0x00, 0xff}, // red
	{0xff, 0x00, 0x00}, // blue
	{0x00, 0x00, 0x00}, // black
}

// ScanLine is the gray level of the moving scan line.
const ScanLine = 0x80

// Source delivers the test pattern at the configured frame rate.
type Source struct {
	*source.Loop
}

// New returns an unconfigured synthetic source.
func New() *Source {
	return &Source{Loop: source.NewLoop(Name, &pattern{})}
}

type pattern struct {
	width, height int
	step          int
	row           []byte
}

func (p *pattern) Prepare(s screencap.Settings) error {
	p.width, p.height = s.OutputWidth, s.OutputHeight
	p.step = max(1, p.width/120)
	p.row = make([]byte, p.width*4)
	return nil
}

// Fill renders frame seq. The bars are offset by seq*step pixels and the
// scan line sits on row seq*step modulo the height.
func (p *pattern) Fill(seq uint64, buf []byte) {
	offset := int(seq * uint64(p.step) % uint64(p.width))
	for x := 0; x < p.width; x++ {
		c := Bars[BarAt(x, offset, p.width)]
		i := x * 4
		p.row[i+0] = c[0]
		p.row[i+1] = c[1]
		p.row[i+2] = c[2]
		p.row[i+3] = 0xff
	}
	stride := p.width * 4
	for y := 0; y < p.height; y++ {
		copy(buf[y*stride:(y+1)*stride], p.row)
	}

	line := int(seq * uint64(p.step) % uint64(p.height))
	scan := buf[line*stride : (line+1)*stride]
	for i := 0; i < len(scan); i += 4 {
		scan[i+0], scan[i+1], scan[i+2], scan[i+3] = ScanLine, ScanLine, ScanLine, 0xff
	}
}

// BarAt returns the index into Bars of column x for a pattern scrolled by
// offset pixels in a frame width pixels wide.
func BarAt(x, offset, width int) int {
	return (x + offset) % width * len(Bars) / width
}
