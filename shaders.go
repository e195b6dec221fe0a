// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import "fmt"

// Uniform names shared by the vertex and fragment shaders.
const (
	uniformProjection = "u_pm"
	uniformPlacement  = "u_vm"
	uniformTexCoords  = "u_texcoords"
	uniformTexture    = "u_tex"
)

// quadVertexCount is the vertex count of one draw. The strip only has four
// distinct corners; indices past the last corner collapse onto it and
// produce degenerate triangles.
const quadVertexCount = 6

// vertexShaderSource draws a unit quad without vertex buffers: the corner
// is selected by gl_VertexID and placed by u_vm, then projected by u_pm.
const vertexShaderSource = `#version 330
uniform mat4 u_pm;
uniform mat4 u_vm;
uniform float u_texcoords[8];

const vec2 pos[4] = vec2[4](
  vec2(0.0, 1.0),
  vec2(0.0, 0.0),
  vec2(1.0, 1.0),
  vec2(1.0, 0.0)
);

out vec2 v_tex;

void main() {
  int id = min(gl_VertexID, 3);
  gl_Position = u_pm * u_vm * vec4(pos[id], 0.0, 1.0);
  v_tex = vec2(u_texcoords[id * 2], u_texcoords[id * 2 + 1]);
}
`

// fragmentShaderBGRA samples the display texture. BGRA bytes are reordered
// by the upload itself, so the sampled texel is already RGB.
const fragmentShaderBGRA = `#version 330
uniform sampler2D u_tex;

in vec2 v_tex;
layout(location = 0) out vec4 fragcolor;

void main() {
  vec4 tc = texture(u_tex, v_tex);
  fragcolor.rgb = tc.rgb;
  fragcolor.a = 1.0;
}
`

// fragmentShaderFor returns the fragment shader that renders f.
func fragmentShaderFor(f PixelFormat) (string, error) {
	switch f {
	case FormatBGRA:
		return fragmentShaderBGRA, nil
	case FormatNone:
		return "", ErrFormatNotSet
	default:
		return "", fmt.Errorf("%w: no fragment shader for %s", ErrUnsupportedFormat, f)
	}
}
