// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/internal/pixconv"
)

// Uniforms read by the software quad rasterizer. They match the
// interface of the screencap shaders.
const (
	uniformProjection = "u_pm"
	uniformPlacement  = "u_vm"
	uniformTexCoords  = "u_texcoords"
	uniformTexture    = "u_tex"
)

const maxTextureUnits = 4

// ErrUnknownObject is returned for handles the device did not create.
var ErrUnknownObject = errors.New("backend: unknown object")

type softTexture struct {
	desc screencap.TextureDesc
	img  *image.RGBA
}

// SoftwareDevice implements screencap.Device on the CPU.
//
// Shader sources are accepted as-is; draws run a Go implementation of the
// screencap quad shader that reads the same uniforms. Textures are stored
// as RGBA images, matching the storage format of the display texture.
type SoftwareDevice struct {
	mu sync.Mutex

	fb   *image.RGBA
	next uint32

	shaders   map[uint32]screencap.ShaderStage
	programs  map[uint32]bool
	vaos      map[uint32]bool
	textures  map[uint32]*softTexture
	locations map[string]int32
	uniforms  map[int32][]float32

	current  uint32
	boundTex [maxTextureUnits]uint32
}

var _ screencap.Device = (*SoftwareDevice)(nil)

// NewSoftwareDevice returns a device rendering into a width x height
// framebuffer cleared to opaque black.
func NewSoftwareDevice(width, height int) *SoftwareDevice {
	d := &SoftwareDevice{
		shaders:  make(map[uint32]screencap.ShaderStage),
		programs: make(map[uint32]bool),
		vaos:     make(map[uint32]bool),
		textures: make(map[uint32]*softTexture),
		locations: map[string]int32{
			uniformProjection: 0,
			uniformPlacement:  1,
			uniformTexCoords:  2,
			uniformTexture:    3,
		},
		uniforms: make(map[int32][]float32),
	}
	d.resize(width, height)
	return d
}

func (d *SoftwareDevice) resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fb = image.NewRGBA(image.Rect(0, 0, width, height))
	fill(d.fb, color.RGBA{A: 0xff})
}

func (d *SoftwareDevice) clear(c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fill(d.fb, c)
}

// Snapshot returns a copy of the framebuffer.
func (d *SoftwareDevice) Snapshot() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := image.NewRGBA(d.fb.Bounds())
	copy(out.Pix, d.fb.Pix)
	return out
}

func (d *SoftwareDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *SoftwareDevice) CompileShader(stage screencap.ShaderStage, source string) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if source == "" {
		return 0, fmt.Errorf("backend: empty %s shader source", stage)
	}
	h := d.handle()
	d.shaders[h] = stage
	return h, nil
}

func (d *SoftwareDevice) DeleteShader(shader uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.shaders, shader)
}

func (d *SoftwareDevice) LinkProgram(vert, frag uint32) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	vs, okv := d.shaders[vert]
	fs, okf := d.shaders[frag]
	if !okv || !okf || vs != screencap.VertexStage || fs != screencap.FragmentStage {
		return 0, fmt.Errorf("%w: link of shaders %d and %d", ErrUnknownObject, vert, frag)
	}
	h := d.handle()
	d.programs[h] = true
	return h, nil
}

func (d *SoftwareDevice) DeleteProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *SoftwareDevice) UseProgram(program uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = program
}

func (d *SoftwareDevice) UniformLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.programs[program] {
		return -1
	}
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *SoftwareDevice) UniformMatrix4(location int32, m screencap.Mat4) {
	d.setUniform(location, m[:])
}

func (d *SoftwareDevice) UniformFloats(location int32, v []float32) {
	d.setUniform(location, v)
}

func (d *SoftwareDevice) UniformInt(location int32, v int32) {
	d.setUniform(location, []float32{float32(v)})
}

func (d *SoftwareDevice) setUniform(location int32, v []float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if location < 0 {
		return
	}
	d.uniforms[location] = append(d.uniforms[location][:0], v...)
}

func (d *SoftwareDevice) Viewport() (x, y, width, height int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := d.fb.Bounds()
	return 0, 0, int32(b.Dx()), int32(b.Dy())
}

func (d *SoftwareDevice) CreateVertexArray() (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.vaos[h] = true
	return h, nil
}

func (d *SoftwareDevice) DeleteVertexArray(vao uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.vaos, vao)
}

// BindVertexArray is a no-op: the quad has no vertex attributes.
func (d *SoftwareDevice) BindVertexArray(uint32) {}

func (d *SoftwareDevice) CreateTexture(desc screencap.TextureDesc) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return 0, fmt.Errorf("%w: %dx%d texture", ErrInvalidDimensions, desc.Size.Width, desc.Size.Height)
	}
	if desc.StorageFormat != gputypes.TextureFormatRGBA8Unorm {
		return 0, fmt.Errorf("backend: software textures store RGBA8Unorm, not %s", desc.StorageFormat)
	}
	h := d.handle()
	d.textures[h] = &softTexture{
		desc: desc,
		img:  image.NewRGBA(image.Rect(0, 0, int(desc.Size.Width), int(desc.Size.Height))),
	}
	return h, nil
}

func (d *SoftwareDevice) DeleteTexture(tex uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.textures, tex)
	for i, b := range d.boundTex {
		if b == tex {
			d.boundTex[i] = 0
		}
	}
}

func (d *SoftwareDevice) BindTexture(unit int, tex uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if unit >= 0 && unit < maxTextureUnits {
		d.boundTex[unit] = tex
	}
}

// UpdateTexture replaces the whole texture. BGRA uploads are swizzled into
// the RGBA storage.
func (d *SoftwareDevice) UpdateTexture(tex uint32, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[tex]
	if !ok {
		return fmt.Errorf("%w: texture %d", ErrUnknownObject, tex)
	}
	if size.Width != t.desc.Size.Width || size.Height != t.desc.Size.Height {
		return fmt.Errorf("backend: partial texture update %dx%d of %dx%d",
			size.Width, size.Height, t.desc.Size.Width, t.desc.Size.Height)
	}
	if len(pixels) != len(t.img.Pix) {
		return fmt.Errorf("backend: texture update of %d bytes, want %d", len(pixels), len(t.img.Pix))
	}
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		copy(t.img.Pix, pixels)
	case gputypes.TextureFormatBGRA8Unorm:
		w, h := int(size.Width), int(size.Height)
		return pixconv.Convert(t.img.Pix, pixels, w*pixconv.BytesPerPixel, w, h, pixconv.Op{SwapRB: true})
	default:
		return fmt.Errorf("backend: unsupported upload format %s", format)
	}
	return nil
}

// DrawArrays rasterizes the screencap quad. Only the triangle strip
// topology of the quad shader is supported; other draws are ignored.
func (d *SoftwareDevice) DrawArrays(topology gputypes.PrimitiveTopology, first, count int32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if topology != gputypes.PrimitiveTopologyTriangleStrip || first != 0 || count < 4 || d.current == 0 {
		screencap.Logger().Debug("backend: software draw ignored",
			"topology", topology, "first", first, "count", count)
		return
	}
	pm, okp := d.matrix(uniformProjection)
	vm, okv := d.matrix(uniformPlacement)
	tc := d.uniforms[d.locations[uniformTexCoords]]
	unit := 0
	if v := d.uniforms[d.locations[uniformTexture]]; len(v) == 1 {
		unit = int(v[0])
	}
	if !okp || !okv || len(tc) != 8 || unit < 0 || unit >= maxTextureUnits {
		return
	}
	t, ok := d.textures[d.boundTex[unit]]
	if !ok {
		return
	}

	mvp := pm.Multiply(vm)
	fbw, fbh := float32(d.fb.Bounds().Dx()), float32(d.fb.Bounds().Dy())
	toScreen := func(x, y float32) (float32, float32) {
		nx, ny := mvp.Apply(x, y, 0)
		return (nx + 1) / 2 * fbw, (1 - ny) / 2 * fbh
	}
	// Vertex 1 is the quad corner (0, 0), vertex 2 the corner (1, 1).
	x0, y0 := toScreen(0, 0)
	x1, y1 := toScreen(1, 1)
	flipX := (tc[2] > tc[4]) != (x0 > x1)
	flipY := (tc[3] > tc[5]) != (y0 > y1)

	dr := image.Rect(
		round(min(x0, x1)), round(min(y0, y1)),
		round(max(x0, x1)), round(max(y0, y1)),
	)
	if dr.Empty() {
		return
	}
	src := orient(t.img, flipX, flipY)
	if dr.Size() == src.Bounds().Size() {
		draw.Draw(d.fb, dr, src, image.Point{}, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(d.fb, dr, src, src.Bounds(), draw.Src, nil)
}

func (d *SoftwareDevice) matrix(name string) (screencap.Mat4, bool) {
	var m screencap.Mat4
	v := d.uniforms[d.locations[name]]
	if len(v) != len(m) {
		return m, false
	}
	copy(m[:], v)
	return m, true
}

// orient returns a copy of img mirrored as requested, with alpha forced
// to opaque like the fragment shader does.
func orient(img *image.RGBA, flipX, flipY bool) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y):]
	_ = pixconv.Convert(out.Pix, src, img.Stride, b.Dx(), b.Dy(), pixconv.Op{FlipX: flipX, FlipY: flipY, Opaque: true})
	return out
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
