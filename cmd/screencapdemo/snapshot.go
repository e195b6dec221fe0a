// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/screencap/backend"
)

// snapshotter is implemented by backends that can read back the framebuffer.
type snapshotter interface {
	Snapshot() *image.RGBA
}

// runSnapshot renders the scene headless and writes the framebuffer to
// cfg.Output.
func runSnapshot(cfg *Config) (err error) {
	log := initLogging(cfg.LogFormat, cfg.LogLevel, nil)

	name := cfg.Backend
	if name == "" {
		name = backend.BackendSoftware
	}
	b, err := backend.Open(name, cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("open backend %q: %w", name, err)
	}
	defer b.Close()

	snap, ok := b.(snapshotter)
	if !ok {
		return fmt.Errorf("backend %q cannot read back pixels", name)
	}

	s, err := newScene(cfg, b.Device(), log)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close()) }()

	timeout := time.Duration(cfg.Frames+1) * time.Second / time.Duration(cfg.Settings().Rate()) * 4
	if err := s.waitFrames(uint64(cfg.Frames), max(timeout, time.Second)); err != nil {
		return err
	}

	b.Clear(0.1, 0.1, 0.1)
	if err := s.render(float32(cfg.Width), float32(cfg.Height)); err != nil {
		return err
	}
	if err := writeImage(cfg.Output, snap.Snapshot()); err != nil {
		return err
	}
	log.Info("snapshot written", "path", cfg.Output, "backend", b.Name())
	return nil
}

// encoderFor returns the encoder matching the extension of path.
func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
}

func writeImage(path string, img image.Image) (err error) {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return encode(f, img)
}
