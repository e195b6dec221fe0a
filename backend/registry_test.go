// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"slices"
	"testing"
)

func TestSoftwareRegistered(t *testing.T) {
	if !IsRegistered(BackendSoftware) {
		t.Fatal("software backend not registered")
	}
	if !slices.Contains(Available(), BackendSoftware) {
		t.Errorf("Available() = %v, missing software", Available())
	}
	if b := Get(BackendSoftware); b == nil || b.Name() != BackendSoftware {
		t.Errorf("Get(software) = %v", b)
	}
	if b := Get("missing"); b != nil {
		t.Errorf("Get(missing) = %v, want nil", b)
	}
}

func TestDefaultFallsBackToSoftware(t *testing.T) {
	// The OpenGL backend lives in its own package and is not imported here.
	b := Default()
	if b == nil || b.Name() != BackendSoftware {
		t.Fatalf("Default() = %v, want software", b)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	Register("test", func() GraphicsBackend { return NewSoftwareBackend() })
	defer Unregister("test")

	if !IsRegistered("test") {
		t.Fatal("test backend not registered")
	}
	Unregister("test")
	if IsRegistered("test") {
		t.Error("test backend still registered after Unregister")
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open("missing", 4, 4); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(missing) error = %v, want ErrBackendNotAvailable", err)
	}
	if _, err := Open(BackendSoftware, -1, 4); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Open(software, -1, 4) error = %v, want ErrInvalidDimensions", err)
	}
	b, err := Open("", 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if b.Device() == nil {
		t.Error("Device() is nil after Open")
	}
}
