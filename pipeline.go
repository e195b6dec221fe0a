// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"errors"
	"fmt"
	"sync"
)

// Pipeline holds the rendering objects shared by every Display created
// with it: one shader program, its two shaders, one vertex array and the
// resolved uniform locations.
//
// Objects are created lazily by the first Ensure and then only read.
// Ensure is serialized, but like every Device call it must run on the
// goroutine that owns the graphics context.
type Pipeline struct {
	device Device

	mu      sync.Mutex
	program uint32
	vert    uint32
	frag    uint32
	vao     uint32
	format  PixelFormat

	locProjection int32
	locPlacement  int32
	locTexCoords  int32
	locTexture    int32

	projection Mat4
}

// NewPipeline creates an empty pipeline bound to device.
func NewPipeline(device Device) (*Pipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Pipeline{
		device:        device,
		locProjection: -1,
		locPlacement:  -1,
		locTexCoords:  -1,
		locTexture:    -1,
	}, nil
}

// Device returns the device the pipeline renders with.
func (p *Pipeline) Device() Device { return p.device }

// Ready reports whether the shared program exists.
func (p *Pipeline) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.program != 0
}

// Format returns the pixel format the program was built for.
func (p *Pipeline) Format() PixelFormat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format
}

// Projection returns the projection computed from the viewport at bootstrap.
func (p *Pipeline) Projection() Mat4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.projection
}

// Ensure creates the shared program and vertex array if they do not exist.
// It returns nil immediately once the program exists.
//
// On failure every object created by this call is deleted and the pipeline
// is left empty.
func (p *Pipeline) Ensure(format PixelFormat) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.program != 0 {
		return nil
	}

	if err := p.createProgram(format); err != nil {
		return err
	}

	if p.vao == 0 {
		vao, err := p.device.CreateVertexArray()
		if err != nil || vao == 0 {
			p.teardownLocked()
			return opError("ensure pipeline", -7, errors.Join(ErrVertexArray, err))
		}
		p.vao = vao
	}

	coords := DefaultOrientation.TexCoords()
	p.device.UniformFloats(p.locTexCoords, coords[:])

	Logger().Info("screencap: pipeline created",
		"format", format,
		"program", p.program,
		"vao", p.vao)
	return nil
}

func (p *Pipeline) createProgram(format PixelFormat) error {
	const op = "ensure pipeline"
	log := Logger()

	if format == FormatNone {
		log.Error("screencap: cannot set up shaders, pixel format not set")
		return opError(op, -1, ErrFormatNotSet)
	}
	fragSource, err := fragmentShaderFor(format)
	if err != nil {
		log.Error("screencap: no fragment shader", "format", format)
		return opError(op, -2, err)
	}

	vert, err := p.device.CompileShader(VertexStage, vertexShaderSource)
	if err != nil {
		if vert != 0 {
			p.device.DeleteShader(vert)
		}
		log.Error("screencap: vertex shader compile failed", "error", err)
		return opError(op, -3, fmt.Errorf("%w: vertex: %w", ErrShaderCompile, err))
	}
	p.vert = vert

	frag, err := p.device.CompileShader(FragmentStage, fragSource)
	if err != nil {
		if frag != 0 {
			p.device.DeleteShader(frag)
		}
		p.teardownLocked()
		log.Error("screencap: fragment shader compile failed", "error", err)
		return opError(op, -4, fmt.Errorf("%w: fragment: %w", ErrShaderCompile, err))
	}
	p.frag = frag

	prog, err := p.device.LinkProgram(p.vert, p.frag)
	if err != nil {
		if prog != 0 {
			p.device.DeleteProgram(prog)
		}
		p.teardownLocked()
		log.Error("screencap: program link failed", "error", err)
		return opError(op, -5, fmt.Errorf("%w: %w", ErrProgramLink, err))
	}
	p.program = prog
	p.device.UseProgram(prog)

	p.locProjection = p.device.UniformLocation(prog, uniformProjection)
	p.locPlacement = p.device.UniformLocation(prog, uniformPlacement)
	p.locTexCoords = p.device.UniformLocation(prog, uniformTexCoords)
	p.locTexture = p.device.UniformLocation(prog, uniformTexture)

	var missing []string
	for _, u := range []struct {
		name string
		loc  int32
	}{
		{uniformProjection, p.locProjection},
		{uniformPlacement, p.locPlacement},
		{uniformTexCoords, p.locTexCoords},
		{uniformTexture, p.locTexture},
	} {
		if u.loc < 0 {
			missing = append(missing, u.name)
		}
	}
	if len(missing) > 0 {
		p.teardownLocked()
		log.Error("screencap: shader interface mismatch", "missing", missing)
		return opError(op, -6, fmt.Errorf("%w: %v", ErrUniformMissing, missing))
	}

	_, _, vw, vh := p.device.Viewport()
	p.projection = Ortho(0, float32(vw), float32(vh), 0, 0, 100)
	p.device.UniformMatrix4(p.locProjection, p.projection)
	p.device.UniformInt(p.locTexture, 0)
	p.format = format

	log.Debug("screencap: shaders linked",
		"viewport_width", vw,
		"viewport_height", vh)
	return nil
}

// teardownLocked deletes the program objects and resets the locations.
// The vertex array is kept: it does not depend on the program.
func (p *Pipeline) teardownLocked() {
	if p.program != 0 {
		p.device.DeleteProgram(p.program)
		p.program = 0
	}
	if p.vert != 0 {
		p.device.DeleteShader(p.vert)
		p.vert = 0
	}
	if p.frag != 0 {
		p.device.DeleteShader(p.frag)
		p.frag = 0
	}
	p.locProjection = -1
	p.locPlacement = -1
	p.locTexCoords = -1
	p.locTexture = -1
	p.format = FormatNone
}

// Release deletes every shared object. Displays using the pipeline must
// not draw afterwards; a later Ensure rebuilds from scratch.
func (p *Pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.teardownLocked()
	if p.vao != 0 {
		p.device.DeleteVertexArray(p.vao)
		p.vao = 0
	}
}

// bindings is a snapshot of the handles needed by one draw.
type bindings struct {
	program       uint32
	vao           uint32
	locProjection int32
	locPlacement  int32
	locTexCoords  int32
}

func (p *Pipeline) snapshot() bindings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return bindings{
		program:       p.program,
		vao:           p.vao,
		locProjection: p.locProjection,
		locPlacement:  p.locPlacement,
		locTexCoords:  p.locTexCoords,
	}
}
