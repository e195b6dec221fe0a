// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/screencap/backend"
	_ "github.com/gogpu/screencap/backend/opengl" // register "opengl"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// runWindow shows the scene in a GLFW window until it is closed.
//
// Keys: H and V toggle the flips, P pauses capture, Escape quits.
func runWindow(cfg *Config) (err error) {
	log := initLogging(cfg.LogFormat, cfg.LogLevel, nil)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "screencap", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	name := cfg.Backend
	if name == "" {
		name = backend.BackendOpenGL
	}
	fbw, fbh := window.GetFramebufferSize()
	b, err := backend.Open(name, fbw, fbh)
	if err != nil {
		return fmt.Errorf("open backend %q: %w", name, err)
	}
	defer b.Close()

	s, err := newScene(cfg, b.Device(), log)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close()) }()

	flipH, flipV := cfg.FlipH, cfg.FlipV
	var loopErr error
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyH:
			flipH = !flipH
			loopErr = s.flip(flipH, flipV)
		case glfw.KeyV:
			flipV = !flipV
			loopErr = s.flip(flipH, flipV)
		case glfw.KeyP:
			loopErr = s.togglePause()
		}
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return
		}
		fbw, fbh = width, height
		if err := b.Resize(width, height); err != nil {
			loopErr = err
			return
		}
		loopErr = s.resize(width, height)
	})

	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	for !window.ShouldClose() {
		b.Clear(0.1, 0.1, 0.1)
		if err := s.render(float32(fbw), float32(fbh)); err != nil {
			return err
		}
		window.SwapBuffers()
		glfw.PollEvents()
		if loopErr != nil {
			return loopErr
		}

		select {
		case <-report.C:
			st := s.main.Stats()
			log.Debug("capture stats",
				"received", st.Received,
				"dropped", st.Dropped,
				"overwritten", st.Overwritten,
				"uploads", st.Uploads)
		default:
		}
	}
	return nil
}
