// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/screencap"
)

// Lifecycle errors returned by Loop.
var (
	ErrNotInitialized = errors.New("source: not initialized")
	ErrNotConfigured  = errors.New("source: not configured")
	ErrRunning        = errors.New("source: running")
	ErrNotRunning     = errors.New("source: not running")
	ErrShutdown       = errors.New("source: shut down")
)

// Producer renders frames for a Loop.
type Producer interface {
	// Prepare is called by Configure with validated settings.
	Prepare(s screencap.Settings) error
	// Fill writes frame number seq into buf, which holds exactly
	// s.FrameSize() bytes of packed BGRA.
	Fill(seq uint64, buf []byte)
}

type loopState int

const (
	stateNew loopState = iota
	stateInitialized
	stateConfigured
	stateRunning
	stateShutdown
)

// Loop delivers frames from a Producer on a ticker goroutine.
// It implements screencap.Source.
type Loop struct {
	name     string
	producer Producer

	mu     sync.Mutex
	state  loopState
	cancel context.CancelFunc
	done   chan struct{}

	// emit guards the delivery state. It is never held while waiting on
	// mu, so Stop can wait for the goroutine while holding mu.
	emit     sync.Mutex
	sink     screencap.FrameSink
	settings screencap.Settings
	buf      []byte

	seq atomic.Uint64
}

var _ screencap.Source = (*Loop)(nil)

// NewLoop returns a loop named name around p.
func NewLoop(name string, p Producer) *Loop {
	return &Loop{name: name, producer: p}
}

// Name returns the source name.
func (l *Loop) Name() string { return l.name }

// Frames returns the number of frames delivered so far.
func (l *Loop) Frames() uint64 { return l.seq.Load() }

// Settings returns the last accepted settings.
func (l *Loop) Settings() screencap.Settings {
	l.emit.Lock()
	defer l.emit.Unlock()
	return l.settings
}

func (l *Loop) log() *slog.Logger {
	return screencap.Logger().With("source", l.name)
}

func (l *Loop) SetSink(sink screencap.FrameSink) {
	l.emit.Lock()
	defer l.emit.Unlock()
	l.sink = sink
}

func (l *Loop) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.state {
	case stateShutdown:
		return ErrShutdown
	case stateNew:
		l.state = stateInitialized
	}
	return nil
}

// Configure accepts BGRA settings and allocates the frame buffer.
// It is rejected while running.
func (l *Loop) Configure(s screencap.Settings) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case stateNew:
		return ErrNotInitialized
	case stateRunning:
		return ErrRunning
	case stateShutdown:
		return ErrShutdown
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("source %s: %w", l.name, err)
	}

	l.emit.Lock()
	err := l.producer.Prepare(s)
	if err == nil {
		l.buf = make([]byte, s.FrameSize())
		l.settings = s
	}
	l.emit.Unlock()
	if err != nil {
		return fmt.Errorf("source %s: %w", l.name, err)
	}
	l.state = stateConfigured

	l.log().Debug("source: configured",
		"width", s.OutputWidth,
		"height", s.OutputHeight,
		"fps", s.Rate(),
		"screen", s.Screen)
	return nil
}

// Start launches the delivery goroutine.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case stateNew, stateInitialized:
		return ErrNotConfigured
	case stateRunning:
		return ErrRunning
	case stateShutdown:
		return ErrShutdown
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	interval := time.Second / time.Duration(l.Settings().Rate())
	l.cancel = cancel
	l.done = done
	l.state = stateRunning

	go l.run(ctx, interval, done)
	l.log().Debug("source: started", "interval", interval)
	return nil
}

func (l *Loop) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Emit()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Emit()
		}
	}
}

// Stop cancels the delivery goroutine and waits for it to exit.
// No OnFrame call is in flight once Stop returns.
func (l *Loop) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != stateRunning {
		return ErrNotRunning
	}
	l.stopLocked()
	return nil
}

func (l *Loop) stopLocked() {
	l.cancel()
	<-l.done
	l.cancel = nil
	l.done = nil
	l.state = stateConfigured
	l.log().Debug("source: stopped", "frames", l.seq.Load())
}

// Shutdown stops delivery if needed and frees the frame buffer.
// It is idempotent.
func (l *Loop) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == stateShutdown {
		return nil
	}
	if l.state == stateRunning {
		l.stopLocked()
	}
	l.emit.Lock()
	l.buf = nil
	l.emit.Unlock()
	l.state = stateShutdown
	return nil
}

// Emit renders and delivers one frame synchronously. It does nothing
// before Configure or without a sink.
func (l *Loop) Emit() {
	l.emit.Lock()
	defer l.emit.Unlock()
	sink, s := l.sink, l.settings
	if sink == nil || l.buf == nil {
		return
	}

	seq := l.seq.Add(1) - 1
	l.producer.Fill(seq, l.buf)

	f := &screencap.Frame{
		PixelFormat: s.PixelFormat,
		Width:       s.OutputWidth,
		Height:      s.OutputHeight,
	}
	f.Planes[0] = l.buf
	f.Sizes[0] = len(l.buf)
	f.Strides[0] = s.OutputWidth * s.PixelFormat.BytesPerPixel()
	sink.OnFrame(f)
}
