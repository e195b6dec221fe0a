// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend provides the graphics backends that supply a
// screencap.Device.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/screencap/backend"
//
// The OpenGL backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/screencap/backend/opengl"
//
// # Backend Selection
//
// Use Open() to get the best available backend, or pass a name to request
// a specific one:
//
//	b, err := backend.Open("", 1280, 720)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	pipeline, err := screencap.NewPipeline(b.Device())
//
// # Available Backends
//
// - "opengl": OpenGL 3.3 core via go-gl; needs a current context
// - "software": CPU rasterizer into an in-memory framebuffer (always available)
package backend
