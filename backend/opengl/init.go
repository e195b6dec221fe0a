// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"github.com/gogpu/screencap/backend"
)

// init registers the OpenGL backend on package import.
// This enables automatic backend selection when using backend.Default().
//
//	import _ "github.com/gogpu/screencap/backend/opengl"
func init() {
	backend.Register(backend.BackendOpenGL, func() backend.GraphicsBackend {
		return &Backend{}
	})
}
