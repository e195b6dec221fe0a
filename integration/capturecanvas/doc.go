// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package capturecanvas shows captured frames through any
// gpucontext.TextureDrawer, such as a gogpu window.
//
// A Canvas is a screencap.FrameSink. Give it to a capture source, then call
// RenderTo from the draw callback of the window:
//
//	canvas, err := capturecanvas.New(1280, 720)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer canvas.Close()
//
//	src, _ := screencap.NewSource("synthetic")
//	src.SetSink(canvas)
//	// Init, Configure with 1280x720 BGRA, Start.
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Pipeline
//
// Frames are copied into a single staging slot on the capture goroutine;
// a frame that is not rendered in time is replaced by the next one. RenderTo
// drains the slot, converts BGRA to RGBA and applies the orientation on the
// CPU, then creates the GPU texture on first use and updates it afterwards.
//
// # Thread Safety
//
// OnFrame may be called from any goroutine. Every other method must be
// called from the render goroutine.
package capturecanvas
