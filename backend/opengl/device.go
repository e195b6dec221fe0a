// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/screencap"
)

// Device implements screencap.Device on the current OpenGL context.
type Device struct{}

var _ screencap.Device = (*Device)(nil)

func (d *Device) CompileShader(stage screencap.ShaderStage, source string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == screencap.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, fmt.Errorf("opengl: glCreateShader(%s) failed: 0x%x", stage, gl.GetError())
	}

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(info))
		return shader, fmt.Errorf("opengl: %s shader: %s", stage, strings.TrimRight(info, "\x00"))
	}
	return shader, nil
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) LinkProgram(vert, frag uint32) (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("opengl: glCreateProgram failed: 0x%x", gl.GetError())
	}
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(info))
		return program, fmt.Errorf("opengl: link: %s", strings.TrimRight(info, "\x00"))
	}
	gl.DetachShader(program, vert)
	gl.DetachShader(program, frag)
	return program, nil
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(location int32, m screencap.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) UniformFloats(location int32, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(location, int32(len(v)), &v[0])
}

func (d *Device) UniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) Viewport() (x, y, width, height int32) {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return vp[0], vp[1], vp[2], vp[3]
}

func (d *Device) CreateVertexArray() (uint32, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("opengl: glGenVertexArrays failed: 0x%x", gl.GetError())
	}
	return vao, nil
}

func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Device) CreateTexture(desc screencap.TextureDesc) (uint32, error) {
	internal, err := internalFormat(desc.StorageFormat)
	if err != nil {
		return 0, err
	}
	format, xtype, err := pixelFormat(desc.UploadFormat)
	if err != nil {
		return 0, err
	}
	wrap, err := wrapMode(desc.AddressMode)
	if err != nil {
		return 0, err
	}
	filter := filterMode(desc.Filter)

	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("opengl: glGenTextures failed: 0x%x", gl.GetError())
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
		int32(desc.Size.Width), int32(desc.Size.Height), 0,
		format, xtype, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("opengl: texture %dx%d: error 0x%x", desc.Size.Width, desc.Size.Height, e)
	}
	return tex, nil
}

func (d *Device) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (d *Device) BindTexture(unit int, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *Device) UpdateTexture(tex uint32, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte) error {
	glFormat, xtype, err := pixelFormat(format)
	if err != nil {
		return err
	}
	want := int(size.Width) * int(size.Height) * bytesPerPixel(format)
	if len(pixels) < want {
		return fmt.Errorf("opengl: texture update of %d bytes, want %d", len(pixels), want)
	}

	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(size.Width), int32(size.Height),
		glFormat, xtype, gl.Ptr(pixels))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("opengl: glTexSubImage2D: error 0x%x", e)
	}
	return nil
}

func (d *Device) DrawArrays(topology gputypes.PrimitiveTopology, first, count int32) {
	mode, err := drawMode(topology)
	if err != nil {
		screencap.Logger().Warn("opengl: draw skipped", "error", err)
		return
	}
	gl.DrawArrays(mode, first, count)
}
