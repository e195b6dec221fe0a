// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gltest provides a recording screencap.Device for tests.
//
// The recorder keeps GPU state in memory: shader and program handles,
// uniform values, texture contents and the list of draw calls. Failures
// can be injected per call type.
package gltest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/screencap"
)

// ErrInjected is returned by calls configured to fail.
var ErrInjected = errors.New("gltest: injected failure")

// Texture is the recorded state of one texture.
type Texture struct {
	Desc    screencap.TextureDesc
	Data    []byte
	Uploads int
}

// Draw records one DrawArrays call together with the bound state.
type Draw struct {
	Topology gputypes.PrimitiveTopology
	First    int32
	Count    int32
	Program  uint32
	VAO      uint32
	Texture  uint32
}

// Failures selects calls that return ErrInjected.
type Failures struct {
	VertexCompile   bool
	FragmentCompile bool
	Link            bool
	VertexArray     bool
	Texture         bool
	Upload          bool
	// MissingUniforms lists uniform names reported as inactive (-1).
	MissingUniforms []string
}

// Device is a recording implementation of screencap.Device.
// It is safe for concurrent use so that race tests can inspect it.
type Device struct {
	mu sync.Mutex

	Fail Failures

	viewport [4]int32
	next     uint32

	shaders   map[uint32]screencap.ShaderStage
	programs  map[uint32]bool
	vaos      map[uint32]bool
	textures  map[uint32]*Texture
	uniforms  map[int32][]float32
	locations map[string]int32

	current   uint32
	boundVAO  uint32
	boundTex  [4]uint32
	activeTex int

	draws    []Draw
	compiles int
	links    int
	vaoCount int
	uploads  int
	deleted  int
}

var _ screencap.Device = (*Device)(nil)

// New returns a device with the given viewport size.
func New(width, height int32) *Device {
	return &Device{
		viewport:  [4]int32{0, 0, width, height},
		shaders:   make(map[uint32]screencap.ShaderStage),
		programs:  make(map[uint32]bool),
		vaos:      make(map[uint32]bool),
		textures:  make(map[uint32]*Texture),
		uniforms:  make(map[int32][]float32),
		locations: make(map[string]int32),
	}
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) CompileShader(stage screencap.ShaderStage, source string) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if source == "" {
		return 0, fmt.Errorf("gltest: empty %s shader", stage)
	}
	if (stage == screencap.VertexStage && d.Fail.VertexCompile) ||
		(stage == screencap.FragmentStage && d.Fail.FragmentCompile) {
		// Mirror drivers that hand back a handle for a failed compile.
		h := d.handle()
		d.shaders[h] = stage
		return h, fmt.Errorf("%w: %s compile", ErrInjected, stage)
	}
	d.compiles++
	h := d.handle()
	d.shaders[h] = stage
	return h, nil
}

func (d *Device) DeleteShader(shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.shaders[shader]; ok {
		delete(d.shaders, shader)
		d.deleted++
	}
}

func (d *Device) LinkProgram(vert, frag uint32) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shaders[vert] != screencap.VertexStage || d.shaders[frag] != screencap.FragmentStage {
		return 0, fmt.Errorf("gltest: link with invalid shaders %d, %d", vert, frag)
	}
	if d.Fail.Link {
		return 0, fmt.Errorf("%w: link", ErrInjected)
	}
	d.links++
	h := d.handle()
	d.programs[h] = true
	return h, nil
}

func (d *Device) DeleteProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.programs[program] {
		delete(d.programs, program)
		d.deleted++
	}
	if d.current == program {
		d.current = 0
	}
}

func (d *Device) UseProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = program
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.programs[program] {
		return -1
	}
	for _, m := range d.Fail.MissingUniforms {
		if m == name {
			return -1
		}
	}
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	loc := int32(len(d.locations))
	d.locations[name] = loc
	return loc
}

func (d *Device) UniformMatrix4(location int32, m screencap.Mat4) {
	d.setUniform(location, m[:])
}

func (d *Device) UniformFloats(location int32, v []float32) {
	d.setUniform(location, v)
}

func (d *Device) UniformInt(location int32, v int32) {
	d.setUniform(location, []float32{float32(v)})
}

func (d *Device) setUniform(location int32, v []float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if location < 0 {
		return
	}
	d.uniforms[location] = append([]float32(nil), v...)
}

func (d *Device) Viewport() (x, y, width, height int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport[0], d.viewport[1], d.viewport[2], d.viewport[3]
}

func (d *Device) CreateVertexArray() (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Fail.VertexArray {
		return 0, fmt.Errorf("%w: vertex array", ErrInjected)
	}
	d.vaoCount++
	h := d.handle()
	d.vaos[h] = true
	return h, nil
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vaos[vao] {
		delete(d.vaos, vao)
		d.deleted++
	}
}

func (d *Device) BindVertexArray(vao uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.boundVAO = vao
}

func (d *Device) CreateTexture(desc screencap.TextureDesc) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Fail.Texture {
		return 0, fmt.Errorf("%w: texture", ErrInjected)
	}
	h := d.handle()
	size := int(desc.Size.Width) * int(desc.Size.Height) * 4
	d.textures[h] = &Texture{Desc: desc, Data: make([]byte, size)}
	return h, nil
}

func (d *Device) DeleteTexture(tex uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.textures[tex]; ok {
		delete(d.textures, tex)
		d.deleted++
	}
}

func (d *Device) BindTexture(unit int, tex uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if unit < 0 || unit >= len(d.boundTex) {
		return
	}
	d.activeTex = unit
	d.boundTex[unit] = tex
}

func (d *Device) UpdateTexture(tex uint32, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[tex]
	if !ok {
		return fmt.Errorf("gltest: update of unknown texture %d", tex)
	}
	if d.Fail.Upload {
		return fmt.Errorf("%w: upload", ErrInjected)
	}
	if size != t.Desc.Size {
		return fmt.Errorf("gltest: upload size %dx%d, texture is %dx%d",
			size.Width, size.Height, t.Desc.Size.Width, t.Desc.Size.Height)
	}
	if format != t.Desc.UploadFormat {
		return fmt.Errorf("gltest: upload format %s, texture expects %s", format, t.Desc.UploadFormat)
	}
	if len(pixels) != len(t.Data) {
		return fmt.Errorf("gltest: upload of %d bytes, texture holds %d", len(pixels), len(t.Data))
	}
	copy(t.Data, pixels)
	t.Uploads++
	d.uploads++
	return nil
}

func (d *Device) DrawArrays(topology gputypes.PrimitiveTopology, first, count int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draws = append(d.draws, Draw{
		Topology: topology,
		First:    first,
		Count:    count,
		Program:  d.current,
		VAO:      d.boundVAO,
		Texture:  d.boundTex[d.activeTex],
	})
}

// SetViewport changes the viewport reported to the pipeline.
func (d *Device) SetViewport(width, height int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = [4]int32{0, 0, width, height}
}

// Compiles returns the number of successful shader compiles.
func (d *Device) Compiles() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.compiles
}

// Links returns the number of successful program links.
func (d *Device) Links() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.links
}

// VertexArrays returns the number of vertex arrays created.
func (d *Device) VertexArrays() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vaoCount
}

// Uploads returns the number of successful texture uploads.
func (d *Device) Uploads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.uploads
}

// Draws returns a copy of the recorded draw calls.
func (d *Device) Draws() []Draw {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Draw(nil), d.draws...)
}

// Uniform returns the last value uploaded to the named uniform.
func (d *Device) Uniform(name string) []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.locations[name]
	if !ok {
		return nil
	}
	return append([]float32(nil), d.uniforms[loc]...)
}

// Texture returns the recorded state of a texture, or nil.
func (d *Device) Texture(tex uint32) *Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[tex]
	if !ok {
		return nil
	}
	cp := *t
	cp.Data = append([]byte(nil), t.Data...)
	return &cp
}

// LiveObjects returns the number of shaders, programs, vertex arrays and
// textures that were created and not deleted.
func (d *Device) LiveObjects() (shaders, programs, vaos, textures int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shaders), len(d.programs), len(d.vaos), len(d.textures)
}
