// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/pbr/driver"
)

var stages = [...]uint32{
	driver.SVertex:   gl.VERTEX_SHADER,
	driver.SFragment: gl.FRAGMENT_SHADER,
	driver.SGeometry: gl.GEOMETRY_SHADER,
	// Compute shaders require 4.3; the enum is kept so
	// that CreateShader fails natively.
	driver.SCompute: 0x91B9,
}

// CreateShader implements driver.GL.
func (c *GL) CreateShader(stage driver.Stage) uint32 { return gl.CreateShader(stages[stage]) }

// ShaderSource implements driver.GL.
func (c *GL) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
}

// CompileShader implements driver.GL.
func (c *GL) CompileShader(sh uint32) bool {
	gl.CompileShader(sh)
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderLog implements driver.GL.
func (c *GL) ShaderLog(sh uint32) string {
	var n int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	s := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(sh, n, nil, gl.Str(s))
	return strings.TrimRight(s, "\x00")
}

// DeleteShader implements driver.GL.
func (c *GL) DeleteShader(sh uint32) { gl.DeleteShader(sh) }

// CreateProgram implements driver.GL.
func (c *GL) CreateProgram() uint32 { return gl.CreateProgram() }

// AttachShader implements driver.GL.
func (c *GL) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }

// DetachShader implements driver.GL.
func (c *GL) DetachShader(prog, sh uint32) { gl.DetachShader(prog, sh) }

// LinkProgram implements driver.GL.
func (c *GL) LinkProgram(prog uint32) bool {
	gl.LinkProgram(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramLog implements driver.GL.
func (c *GL) ProgramLog(prog uint32) string {
	var n int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	s := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(prog, n, nil, gl.Str(s))
	return strings.TrimRight(s, "\x00")
}

// DeleteProgram implements driver.GL.
func (c *GL) DeleteProgram(prog uint32) { gl.DeleteProgram(prog) }

// UseProgram implements driver.GL.
func (c *GL) UseProgram(prog uint32) { gl.UseProgram(prog) }

// UniformLocation implements driver.GL.
func (c *GL) UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

// UniformBlockIndex implements driver.GL.
func (c *GL) UniformBlockIndex(prog uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(prog, gl.Str(name+"\x00"))
}

// UniformBlockBinding implements driver.GL.
func (c *GL) UniformBlockBinding(prog, index uint32, binding int) {
	gl.UniformBlockBinding(prog, index, uint32(binding))
}

// Uniform1i implements driver.GL.
func (c *GL) Uniform1i(loc, v int32) { gl.Uniform1i(loc, v) }

// Uniform1f implements driver.GL.
func (c *GL) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

// Uniform2f implements driver.GL.
func (c *GL) Uniform2f(loc int32, v0, v1 float32) { gl.Uniform2f(loc, v0, v1) }

// Uniform3f implements driver.GL.
func (c *GL) Uniform3f(loc int32, v0, v1, v2 float32) { gl.Uniform3f(loc, v0, v1, v2) }

// Uniform4f implements driver.GL.
func (c *GL) Uniform4f(loc int32, v0, v1, v2, v3 float32) { gl.Uniform4f(loc, v0, v1, v2, v3) }

// UniformMatrix3 implements driver.GL.
// m is column-major.
func (c *GL) UniformMatrix3(loc int32, m *[9]float32) { gl.UniformMatrix3fv(loc, 1, false, &m[0]) }

// UniformMatrix4 implements driver.GL.
// m is column-major.
func (c *GL) UniformMatrix4(loc int32, m *[16]float32) { gl.UniformMatrix4fv(loc, 1, false, &m[0]) }
