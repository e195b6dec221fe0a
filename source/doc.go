// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package source provides the delivery loop shared by the software capture
// sources.
//
// A Loop implements screencap.Source on top of a Producer: it owns the
// lifecycle state, the frame buffer and a ticker goroutine that fills the
// buffer and hands it to the sink at the configured frame rate.
//
// Concrete sources live in subpackages and register themselves in the
// screencap source registry when imported:
//
//	import _ "github.com/gogpu/screencap/source/synthetic"
//
//	src, err := screencap.NewSource("synthetic")
package source
