// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gogpu/screencap/internal/framesync"
)

// Display shows the frames of one capture Source in the graphics context
// of its Pipeline.
//
// Frames arrive through OnFrame on any goroutine and are copied into a
// staging buffer. The render goroutine calls Update to upload the latest
// frame and Draw to render it. Every other method, except OnFrame, State,
// Settings, Stats and Texture, must be called on the render goroutine.
type Display struct {
	id       uuid.UUID
	pipeline *Pipeline
	device   Device
	source   Source
	lock     Locker
	logger   *slog.Logger
	staging  *framesync.Buffer

	mu          sync.Mutex
	state       State
	settings    Settings
	tex0        uint32
	tex1        uint32 // second plane, planar formats only
	texSize     [2]int
	projection  Mat4
	placement   Mat4
	orientation Orientation

	// accept describes the frames OnFrame takes; nil when not configured.
	accept   atomic.Pointer[frameSpec]
	received atomic.Uint64
	dropped  atomic.Uint64
}

type frameSpec struct {
	format PixelFormat
	size   int
}

// FrameStats reports frame hand-off activity of a Display.
type FrameStats struct {
	// Received counts frames delivered to OnFrame.
	Received uint64
	// Dropped counts delivered frames that were rejected.
	Dropped uint64
	// Overwritten counts frames replaced before the render goroutine
	// uploaded them.
	Overwritten uint64
	// Uploads counts staging buffer uploads to the texture.
	Uploads uint64
}

// NewDisplay creates a display that renders src through pipeline.
// The display registers itself as the sink of src.
func NewDisplay(pipeline *Pipeline, src Source, opts ...Option) (*Display, error) {
	if pipeline == nil {
		return nil, ErrNilPipeline
	}
	if src == nil {
		return nil, ErrNilSource
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Display{
		id:          o.id,
		pipeline:    pipeline,
		device:      pipeline.Device(),
		source:      src,
		lock:        o.locker,
		logger:      o.logger,
		staging:     framesync.New(o.locker),
		placement:   Identity(),
		orientation: DefaultOrientation,
	}
	src.SetSink(d)
	return d, nil
}

// ID returns the display ID used in log records.
func (d *Display) ID() uuid.UUID { return d.id }

// State returns the lifecycle state.
func (d *Display) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Settings returns the active settings. It is the zero value before a
// successful Configure.
func (d *Display) Settings() Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings
}

// Orientation returns the flip state used by Draw.
func (d *Display) Orientation() Orientation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orientation
}

// StagingSize returns the byte size of the staging buffer.
func (d *Display) StagingSize() int {
	return d.staging.Len()
}

// Stats returns a snapshot of the frame counters.
func (d *Display) Stats() FrameStats {
	st := d.staging.Stats()
	return FrameStats{
		Received:    d.received.Load(),
		Dropped:     d.dropped.Load(),
		Overwritten: st.Overwritten,
		Uploads:     st.Drains,
	}
}

func (d *Display) log() *slog.Logger {
	l := d.logger
	if l == nil {
		l = Logger()
	}
	return l.With("display", d.id.String())
}

// Init creates the staging lock and initializes the capture source.
func (d *Display) Init() error {
	const op = "init"
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateUninitialized {
		return opError(op, -3, fmt.Errorf("%w: init from %s", ErrInvalidState, d.state))
	}
	if err := d.lock.Create(); err != nil {
		d.log().Error("screencap: failed to create the staging lock", "error", err)
		return opError(op, -1, err)
	}
	if err := d.source.Init(); err != nil {
		d.log().Error("screencap: capture source init failed", "error", err)
		return opError(op, -2, errors.Join(err, d.lock.Destroy()))
	}
	d.state = StateInitialized
	d.log().Debug("screencap: display initialized")
	return nil
}

// Configure validates s, configures the source, reallocates the staging
// buffer and sets up the graphics objects: the shared pipeline on first
// use, then the instance texture.
//
// Settings are checked before anything is changed. An invalid format or
// size leaves the staging buffer and textures untouched. A failure after
// the source accepted s leaves the display in StateInitialized with no
// texture, whatever state it was in before.
//
// Status codes: -1 format, -2 source, -3 settings, -4 graphics,
// -5 not initialized, -6 shut down, -7 running, -8 staging.
func (d *Display) Configure(s Settings) error {
	const op = "configure"
	d.mu.Lock()
	defer d.mu.Unlock()
	log := d.log()

	switch d.state {
	case StateInitialized, StateConfigured, StateStopped:
	case StateUninitialized:
		log.Error("screencap: configure before init")
		return opError(op, -5, ErrNotInitialized)
	case StateShutdown:
		return opError(op, -6, ErrShutdown)
	default:
		return opError(op, -7, fmt.Errorf("%w: configure while %s", ErrInvalidState, d.state))
	}

	if err := s.Validate(); err != nil {
		log.Error("screencap: invalid settings", "format", s.PixelFormat, "error", err)
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrFormatNotSet) {
			return opError(op, -1, err)
		}
		return opError(op, -3, err)
	}

	if err := d.source.Configure(s); err != nil {
		log.Error("screencap: capture source configure failed", "error", err)
		return opError(op, -2, err)
	}

	// Frames of the previous configuration are rejected from here on.
	d.accept.Store(nil)
	if err := d.staging.Resize(s.FrameSize()); err != nil {
		log.Error("screencap: staging buffer allocation failed", "error", err)
		return opError(op, -8, d.unconfigure(err))
	}

	resized := d.texSize != [2]int{s.OutputWidth, s.OutputHeight}
	d.settings = s
	if err := d.setupGraphics(resized); err != nil {
		log.Error("screencap: graphics setup failed", "error", err)
		return opError(op, -4, d.unconfigure(err))
	}

	d.accept.Store(&frameSpec{format: s.PixelFormat, size: s.FrameSize()})
	d.state = StateConfigured
	log.Info("screencap: display configured",
		"width", s.OutputWidth,
		"height", s.OutputHeight,
		"format", s.PixelFormat,
		"staging_bytes", s.FrameSize())
	return nil
}

// unconfigure drops what a failed Configure already replaced and returns
// the display to StateInitialized, so it cannot be started until the next
// successful Configure. Staging release errors are joined to cause.
func (d *Display) unconfigure(cause error) error {
	d.accept.Store(nil)
	d.settings = Settings{}
	d.deleteTextures()
	d.state = StateInitialized
	return errors.Join(cause, d.staging.Release())
}

// setupGraphics bootstraps the shared pipeline and the instance texture and
// resets the placement and orientation.
func (d *Display) setupGraphics(resized bool) error {
	const op = "setup graphics"

	if err := d.pipeline.Ensure(d.settings.PixelFormat); err != nil {
		return opError(op, -1, err)
	}
	if resized {
		d.deleteTextures()
	}
	if d.tex0 == 0 {
		if err := d.ensureTextures(); err != nil {
			return opError(op, -2, err)
		}
	}

	d.projection = d.pipeline.Projection()
	d.placement = Identity()
	if err := d.flipLocked(DefaultOrientation); err != nil {
		return opError(op, -3, err)
	}
	return nil
}

// Start starts frame delivery.
func (d *Display) Start() error {
	const op = "start"
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateConfigured && d.state != StateStopped {
		d.log().Error("screencap: start in wrong state", "state", d.state)
		return opError(op, -1, fmt.Errorf("%w: start while %s", ErrInvalidState, d.state))
	}
	if err := d.source.Start(); err != nil {
		d.log().Error("screencap: capture source start failed", "error", err)
		return opError(op, -2, err)
	}
	d.state = StateRunning
	return nil
}

// Stop stops frame delivery. It returns after the source is quiet.
// A frame already in the staging buffer can still be uploaded and drawn.
func (d *Display) Stop() error {
	const op = "stop"
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateRunning {
		return opError(op, -1, fmt.Errorf("%w: stop while %s", ErrInvalidState, d.state))
	}
	if err := d.source.Stop(); err != nil {
		d.log().Error("screencap: capture source stop failed", "error", err)
		return opError(op, -2, err)
	}
	d.state = StateStopped
	return nil
}

// Shutdown stops and shuts down the source, destroys the lock and frees the
// staging buffer and textures. It is safe to call more than once; calls
// after the first return nil.
//
// On failure the returned status is -1 for the lock, -2 for the source and
// -3 for both. Resources are released either way.
func (d *Display) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateShutdown {
		return nil
	}
	prev := d.state
	d.state = StateShutdown
	d.accept.Store(nil)

	var srcErr, lockErr error
	if prev != StateUninitialized {
		if prev == StateRunning {
			srcErr = d.source.Stop()
		}
		srcErr = errors.Join(srcErr, d.source.Shutdown())
		if err := d.staging.Release(); err != nil {
			lockErr = err
		}
		lockErr = errors.Join(lockErr, d.lock.Destroy())
	}
	d.deleteTextures()

	code := 0
	if lockErr != nil {
		code--
		d.log().Error("screencap: failed to destroy the staging lock", "error", lockErr)
	}
	if srcErr != nil {
		code -= 2
		d.log().Error("screencap: capture source shutdown failed", "error", srcErr)
	}
	d.log().Debug("screencap: display shut down", "from", prev)
	if code != 0 {
		return opError("shutdown", code, errors.Join(srcErr, lockErr))
	}
	return nil
}
