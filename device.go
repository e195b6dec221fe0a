// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import "github.com/gogpu/gputypes"

// ShaderStage identifies the pipeline stage a shader is compiled for.
type ShaderStage int

const (
	// VertexStage is the vertex shader stage.
	VertexStage ShaderStage = iota
	// FragmentStage is the fragment shader stage.
	FragmentStage
)

// String returns the stage name.
func (s ShaderStage) String() string {
	if s == VertexStage {
		return "vertex"
	}
	return "fragment"
}

// TextureDesc describes a 2D texture allocation.
type TextureDesc struct {
	Size gputypes.Extent3D
	// StorageFormat is the GPU-side internal format.
	StorageFormat gputypes.TextureFormat
	// UploadFormat is the byte layout of data passed to UpdateTexture.
	UploadFormat gputypes.TextureFormat
	AddressMode  gputypes.AddressMode
	Filter       gputypes.FilterMode
}

// Device is the graphics context the display renders into.
//
// Handles are non-zero on success; zero means "no object". Uniform locations
// are -1 when the name is not an active uniform of the program.
//
// A Device is bound to the goroutine that owns the graphics context.
// None of its methods may be called from the capture goroutine.
type Device interface {
	CompileShader(stage ShaderStage, source string) (uint32, error)
	DeleteShader(shader uint32)
	LinkProgram(vert, frag uint32) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m Mat4)
	UniformFloats(location int32, v []float32)
	UniformInt(location int32, v int32)

	// Viewport returns the current viewport rectangle.
	Viewport() (x, y, width, height int32)

	CreateVertexArray() (uint32, error)
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)

	CreateTexture(desc TextureDesc) (uint32, error)
	DeleteTexture(tex uint32)
	// BindTexture activates the texture unit and binds tex to it.
	BindTexture(unit int, tex uint32)
	// UpdateTexture replaces the full contents of tex.
	UpdateTexture(tex uint32, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte) error

	DrawArrays(topology gputypes.PrimitiveTopology, first, count int32)
}
