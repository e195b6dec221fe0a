// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/gogpu/screencap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "screencapdemo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *Default())
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "width: 640\nheight: 360\nsource: image\nimage: a.png\nlog_level: debug\n")
	t.Setenv("SCREENCAP_HEIGHT", "400")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindFlags(fs)
	if err := fs.Parse([]string{"--fps=60", "--flip-v=false"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"width from file", cfg.Width, 640},
		{"height from env", cfg.Height, 400},
		{"fps from flag", cfg.FrameRate, 60},
		{"flip from flag", cfg.FlipV, false},
		{"source from file", cfg.Source, "image"},
		{"log level from file", cfg.LogLevel, "debug"},
		{"output default", cfg.Output, "screencap.png"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadBadFile(t *testing.T) {
	path := writeConfig(t, "width: [1, 2\n")
	if _, err := Load(path, nil); err == nil {
		t.Error("Load of malformed YAML succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"no frames", func(c *Config) { c.Frames = 0 }, false},
		{"image without path", func(c *Config) { c.Source = "image" }, false},
		{"image with path", func(c *Config) { c.Source, c.Image = "image", "x.png" }, true},
		{"negative screen", func(c *Config) { c.Screen = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSettings(t *testing.T) {
	cfg := Default()
	s := cfg.Settings()
	if s.PixelFormat != screencap.FormatBGRA || s.OutputWidth != cfg.Width || s.OutputHeight != cfg.Height {
		t.Errorf("Settings() = %+v", s)
	}
	pip := pipSettings(s)
	if pip.OutputWidth != cfg.Width/4 || pip.OutputHeight != cfg.Height/4 {
		t.Errorf("pipSettings() = %dx%d", pip.OutputWidth, pip.OutputHeight)
	}
	if tiny := pipSettings(screencap.Settings{OutputWidth: 2, OutputHeight: 3}); tiny.OutputWidth != 1 || tiny.OutputHeight != 1 {
		t.Errorf("pipSettings(2x3) = %dx%d, want 1x1", tiny.OutputWidth, tiny.OutputHeight)
	}
}
