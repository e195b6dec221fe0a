// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/screencap"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() GraphicsBackend

// backends holds the registered factories. When several are available the
// OpenGL backend wins and the software backend is the headless fallback.
var backends = gpucontext.NewRegistry[GraphicsBackend](
	gpucontext.WithPriority(BackendOpenGL, BackendSoftware),
)

// Register makes a backend available by name, replacing any previous
// factory with that name. Backend packages call it from init.
func Register(name string, factory BackendFactory) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the sorted names of the registered backends.
func Available() []string {
	names := backends.Available()
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Get returns a new instance of the named backend, or nil.
func Get(name string) GraphicsBackend {
	return backends.Get(name)
}

// Default returns a new instance of the highest-priority backend, or nil
// when none is registered.
func Default() GraphicsBackend {
	return backends.Best()
}

// Open returns the named backend, or the default one for an empty name,
// initialized for a width x height framebuffer.
func Open(name string, width, height int) (GraphicsBackend, error) {
	b := Default()
	if name != "" {
		b = Get(name)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrBackendNotAvailable, name, Available())
	}
	if err := b.Init(width, height); err != nil {
		return nil, fmt.Errorf("backend %s: %w", b.Name(), err)
	}
	screencap.Logger().Debug("backend: opened", "name", b.Name(), "width", width, "height", height)
	return b, nil
}
