// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package screencap renders a continuously updated screen capture into an
// existing graphics context.
//
// # Overview
//
// A capture Source delivers frames asynchronously, on a goroutine it owns.
// A Display copies each frame into a staging buffer guarded by a Locker.
// The render goroutine, which owns the graphics context, polls the buffer
// with Update and draws the result with Draw. Only the most recent frame is
// kept: frames that arrive between two Update calls replace each other.
//
// # Quick Start
//
//	pipeline, _ := screencap.NewPipeline(device) // device from backend/opengl
//	src, _ := screencap.NewSource("synthetic")
//	d, _ := screencap.NewDisplay(pipeline, src)
//
//	d.Init()
//	d.Configure(screencap.Settings{
//	    OutputWidth:  1280,
//	    OutputHeight: 720,
//	    PixelFormat:  screencap.FormatBGRA,
//	})
//	d.Start()
//
//	for !window.ShouldClose() {
//	    d.Update()
//	    d.Draw()
//	}
//	d.Shutdown()
//
// # Shared pipeline
//
// Every Display created with the same Pipeline shares one shader program and
// one vertex array. They are created by the first successful Configure and
// reused afterwards. The quad is drawn without vertex buffers.
//
// # Orientation
//
// Flip selects one of four texture coordinate sets. The default is a
// vertical flip, which shows top-down frames upright with the default
// top-left projection.
//
// # Errors
//
// Failures are returned as *OpError values carrying a negative status code
// per failure branch; see Status. Invalid frames handed to OnFrame are
// logged and dropped, never returned to the source.
//
// # Pixel formats
//
// Only packed BGRA is implemented. Planar formats are recognized and
// rejected with ErrUnsupportedFormat.
package screencap
