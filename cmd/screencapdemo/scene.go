// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/source/imagesource"
	_ "github.com/gogpu/screencap/source/synthetic" // register "synthetic"
)

// scene is a full-view display and a picture-in-picture display sharing
// one pipeline. Each display has its own source.
type scene struct {
	log      *slog.Logger
	pipeline *screencap.Pipeline
	main     *screencap.Display
	pip      *screencap.Display
}

// pipSettings returns the settings of the picture-in-picture display:
// a quarter of the main resolution.
func pipSettings(s screencap.Settings) screencap.Settings {
	s.OutputWidth = max(1, s.OutputWidth/4)
	s.OutputHeight = max(1, s.OutputHeight/4)
	return s
}

func newSource(cfg *Config) (screencap.Source, error) {
	src, err := screencap.NewSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	if img, ok := src.(*imagesource.Source); ok && cfg.Image != "" {
		if err := img.Load(cfg.Image); err != nil {
			return nil, errors.Join(err, src.Shutdown())
		}
	}
	return src, nil
}

func newScene(cfg *Config, device screencap.Device, log *slog.Logger) (*scene, error) {
	pipeline, err := screencap.NewPipeline(device)
	if err != nil {
		return nil, err
	}
	s := &scene{log: log, pipeline: pipeline}

	if s.main, err = s.open(cfg, cfg.Settings()); err != nil {
		return nil, errors.Join(fmt.Errorf("main display: %w", err), s.close())
	}
	if s.pip, err = s.open(cfg, pipSettings(cfg.Settings())); err != nil {
		return nil, errors.Join(fmt.Errorf("pip display: %w", err), s.close())
	}
	return s, nil
}

func (s *scene) open(cfg *Config, settings screencap.Settings) (*screencap.Display, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	d, err := screencap.NewDisplay(s.pipeline, src, screencap.WithLogger(s.log))
	if err != nil {
		return nil, errors.Join(err, src.Shutdown())
	}
	if err := d.Init(); err != nil {
		// A display that failed Init does not own the source yet.
		return nil, errors.Join(err, d.Shutdown(), src.Shutdown())
	}
	if err := d.Configure(settings); err != nil {
		return nil, errors.Join(err, d.Shutdown())
	}
	if err := d.Flip(cfg.FlipH, cfg.FlipV); err != nil {
		return nil, errors.Join(err, d.Shutdown())
	}
	if err := d.Start(); err != nil {
		return nil, errors.Join(err, d.Shutdown())
	}
	s.log.Info("display started",
		"id", d.ID(),
		"source", cfg.Source,
		"width", settings.OutputWidth,
		"height", settings.OutputHeight)
	return d, nil
}

func (s *scene) displays() []*screencap.Display {
	var out []*screencap.Display
	for _, d := range []*screencap.Display{s.main, s.pip} {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// render uploads the latest frames and draws the main display over the
// whole viewport and the picture-in-picture in the top-right corner.
func (s *scene) render(width, height float32) error {
	for _, d := range s.displays() {
		if err := d.Update(); err != nil {
			return err
		}
	}
	if err := s.main.DrawAt(0, 0, width, height); err != nil {
		return err
	}
	return s.pip.DrawAt(width*0.72, height*0.03, width*0.25, height*0.25)
}

// resize updates the projection of every display after the viewport
// changed.
func (s *scene) resize(width, height int) error {
	m := screencap.Ortho(0, float32(width), float32(height), 0, 0, 100)
	for _, d := range s.displays() {
		if err := d.SetProjectionMatrix(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *scene) flip(horizontal, vertical bool) error {
	for _, d := range s.displays() {
		if err := d.Flip(horizontal, vertical); err != nil {
			return err
		}
	}
	return nil
}

// togglePause stops running displays and restarts stopped ones.
func (s *scene) togglePause() error {
	var errs []error
	for _, d := range s.displays() {
		if d.State() == screencap.StateRunning {
			errs = append(errs, d.Stop())
		} else {
			errs = append(errs, d.Start())
		}
	}
	return errors.Join(errs...)
}

// waitFrames blocks until the main display received n frames.
func (s *scene) waitFrames(n uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for s.main.Stats().Received < n {
		if time.Now().After(deadline) {
			return fmt.Errorf("received %d of %d frames in %s", s.main.Stats().Received, n, timeout)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

func (s *scene) close() error {
	var errs []error
	for _, d := range s.displays() {
		st := d.Stats()
		s.log.Info("display shut down",
			"id", d.ID(),
			"received", st.Received,
			"dropped", st.Dropped,
			"overwritten", st.Overwritten,
			"uploads", st.Uploads)
		errs = append(errs, d.Shutdown())
	}
	s.pipeline.Release()
	return errors.Join(errs...)
}
