// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/screencap"
)

// Config is the demo configuration. It is read from screencapdemo.yaml,
// SCREENCAP_* environment variables and command-line flags, in increasing
// order of precedence.
type Config struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	FrameRate int    `mapstructure:"fps"`
	Screen    int    `mapstructure:"screen"`
	Source    string `mapstructure:"source"`
	Image     string `mapstructure:"image"`
	Backend   string `mapstructure:"backend"`
	LogFormat string `mapstructure:"log_format"`
	LogLevel  string `mapstructure:"log_level"`
	Output    string `mapstructure:"output"`
	Frames    int    `mapstructure:"frames"`
	FlipH     bool   `mapstructure:"flip_h"`
	FlipV     bool   `mapstructure:"flip_v"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:     1280,
		Height:    720,
		FrameRate: screencap.DefaultFrameRate,
		Source:    "synthetic",
		LogFormat: "text",
		LogLevel:  "info",
		Output:    "screencap.png",
		Frames:    3,
		FlipV:     true,
	}
}

// Settings returns the display settings for c.
func (c *Config) Settings() screencap.Settings {
	return screencap.Settings{
		OutputWidth:  c.Width,
		OutputHeight: c.Height,
		PixelFormat:  screencap.FormatBGRA,
		Screen:       c.Screen,
		FrameRate:    c.FrameRate,
	}
}

// Validate checks the values the library does not check itself.
func (c *Config) Validate() error {
	if c.Frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", c.Frames)
	}
	if c.Source == "image" && c.Image == "" {
		return errors.New("source \"image\" needs an image path")
	}
	return c.Settings().Validate()
}

// bindFlags registers the configuration flags on fs.
func bindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("width", d.Width, "output width in pixels")
	fs.Int("height", d.Height, "output height in pixels")
	fs.Int("fps", d.FrameRate, "capture frame rate")
	fs.Int("screen", d.Screen, "monitor index to capture")
	fs.String("source", d.Source, "capture source (see the sources command)")
	fs.String("image", d.Image, "image file for the image source")
	fs.String("backend", d.Backend, "graphics backend (empty selects the best available)")
	fs.String("log-format", d.LogFormat, "log format: text or json")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.String("output", d.Output, "snapshot file (.png, .bmp or .tiff)")
	fs.Int("frames", d.Frames, "frames to capture before the snapshot")
	fs.Bool("flip-h", d.FlipH, "mirror the capture horizontally")
	fs.Bool("flip-v", d.FlipV, "mirror the capture vertically")
}

// Load reads the configuration. cfgFile may be empty, in which case
// screencapdemo.yaml is looked up in the user config directory and the
// working directory; a missing file is not an error.
func Load(cfgFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	cfg := Default()

	v.SetDefault("width", cfg.Width)
	v.SetDefault("height", cfg.Height)
	v.SetDefault("fps", cfg.FrameRate)
	v.SetDefault("screen", cfg.Screen)
	v.SetDefault("source", cfg.Source)
	v.SetDefault("image", cfg.Image)
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("frames", cfg.Frames)
	v.SetDefault("flip_h", cfg.FlipH)
	v.SetDefault("flip_v", cfg.FlipV)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("screencapdemo")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "screencap"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SCREENCAP")
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{
			"width": "width", "height": "height", "fps": "fps", "screen": "screen",
			"source": "source", "image": "image", "backend": "backend",
			"log_format": "log-format", "log_level": "log-level",
			"output": "output", "frames": "frames",
			"flip_h": "flip-h", "flip_v": "flip-v",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
