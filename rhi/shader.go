// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package rhi

import (
	"log"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/linear"
)

// Shader is the source of one shader stage.
type Shader struct {
	Stage driver.Stage
	// Name identifies the source in diagnostics
	// (e.g., its file name).
	Name   string
	Source string
}

// ShaderSet is the collection of shaders that make up a
// program. A stage may appear more than once, in which
// case the sources are linked together.
type ShaderSet struct {
	Name    string
	Shaders []Shader
}

// Add appends a shader to the set.
func (s *ShaderSet) Add(stage driver.Stage, name, src string) *ShaderSet {
	s.Shaders = append(s.Shaders, Shader{stage, name, src})
	return s
}

type program struct {
	name string
}

// CompileShader compiles s into a new native shader.
// On failure, it logs the compiler output and deletes the
// shader; the returned id is then no longer valid.
func (d *Device) CompileShader(s Shader) (uint32, bool) {
	id, err := d.compile(s)
	return id, err == nil
}

func (d *Device) compile(s Shader) (uint32, error) {
	id := d.gl.CreateShader(s.Stage)
	d.gl.ShaderSource(id, s.Source)
	if !d.gl.CompileShader(id) {
		err := &CompileError{s.Stage, s.Name, d.gl.ShaderLog(id)}
		log.Print("[!] ", err)
		d.gl.DeleteShader(id)
		return id, err
	}
	return id, nil
}

// LinkProgram compiles and links the shaders of set into a
// new program.
// It returns a *CompileError for the first stage that fails
// to compile and a *LinkError if linking fails. Every
// native object created by the call is deleted in either
// case.
func (d *Device) LinkProgram(set ShaderSet) (int, error) {
	shaders := make([]uint32, 0, len(set.Shaders))
	release := func() {
		for _, sh := range shaders {
			d.gl.DeleteShader(sh)
		}
	}
	for _, s := range set.Shaders {
		id, err := d.compile(s)
		if err != nil {
			release()
			return -1, err
		}
		shaders = append(shaders, id)
	}
	id := d.gl.CreateProgram()
	for _, sh := range shaders {
		d.gl.AttachShader(id, sh)
	}
	ok := d.gl.LinkProgram(id)
	var msg string
	if !ok {
		msg = d.gl.ProgramLog(id)
		log.Printf("[!] rhi: program %s failed to link:\n%s", set.Name, msg)
	}
	for _, sh := range shaders {
		d.gl.DetachShader(id, sh)
	}
	release()
	if !ok {
		d.gl.DeleteProgram(id)
		return -1, &LinkError{set.Name, msg}
	}
	return d.programs.add(id, d.nextGen(), program{set.Name}), nil
}

// MustLinkProgram is like LinkProgram but passes errors to
// FailFunc.
func (d *Device) MustLinkProgram(set ShaderSet) int {
	h, err := d.LinkProgram(set)
	if err != nil {
		d.Fail(err)
	}
	return h
}

// ProgramName returns the name of the set from which
// program h was linked.
func (d *Device) ProgramName(h int) string {
	if _, p, ok := d.programs.get(h); ok {
		return p.name
	}
	return ""
}

// UseProgram makes h the current program.
// Program 0 unbinds the current program.
func (d *Device) UseProgram(h int) {
	if h == 0 {
		d.gl.UseProgram(0)
		d.curProg = 0
		return
	}
	if id, _, ok := d.programs.get(h); ok {
		d.gl.UseProgram(id)
		d.curProg = h
	}
}

// CurrentProgram returns the program in use, or 0.
func (d *Device) CurrentProgram() int { return d.curProg }

// DeleteProgram deletes program h.
// Program 0 cannot be deleted.
func (d *Device) DeleteProgram(h int) bool {
	if h == 0 {
		return false
	}
	id, _, ok := d.programs.kill(h)
	if !ok {
		return false
	}
	d.gl.DeleteProgram(id)
	if d.curProg == h {
		d.curProg = 0
	}
	return true
}

// UniformLocation returns the location of the named
// uniform of program h, or -1.
func (d *Device) UniformLocation(h int, name string) int32 {
	if h == 0 {
		return -1
	}
	if id, _, ok := d.programs.get(h); ok {
		return d.gl.UniformLocation(id, name)
	}
	return -1
}

// location resolves name in the current program.
func (d *Device) location(name string) int32 {
	return d.UniformLocation(d.curProg, name)
}

// SetInt sets an int uniform of the current program.
func (d *Device) SetInt(name string, v int32) {
	if loc := d.location(name); loc != -1 {
		d.gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform of the current program.
func (d *Device) SetFloat(name string, v float32) {
	if loc := d.location(name); loc != -1 {
		d.gl.Uniform1f(loc, v)
	}
}

// SetVec2 sets a vec2 uniform of the current program.
func (d *Device) SetVec2(name string, v *linear.V2) {
	if loc := d.location(name); loc != -1 {
		d.gl.Uniform2f(loc, v[0], v[1])
	}
}

// SetVec3 sets a vec3 uniform of the current program.
func (d *Device) SetVec3(name string, v *linear.V3) {
	if loc := d.location(name); loc != -1 {
		d.gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetVec4 sets a vec4 uniform of the current program.
func (d *Device) SetVec4(name string, v *linear.V4) {
	if loc := d.location(name); loc != -1 {
		d.gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// SetMatrix3 sets a mat3 uniform of the current program.
func (d *Device) SetMatrix3(name string, m *linear.M3) {
	if loc := d.location(name); loc != -1 {
		var a [9]float32
		for i := range m {
			copy(a[i*3:], m[i][:])
		}
		d.gl.UniformMatrix3(loc, &a)
	}
}

// SetMatrix4 sets a mat4 uniform of the current program.
func (d *Device) SetMatrix4(name string, m *linear.M4) {
	if loc := d.location(name); loc != -1 {
		var a [16]float32
		for i := range m {
			copy(a[i*4:], m[i][:])
		}
		d.gl.UniformMatrix4(loc, &a)
	}
}

// SetSampler assigns a texture unit to the named sampler
// of the current program.
func (d *Device) SetSampler(name string, unit int) {
	d.SetInt(name, int32(unit))
}

// SetBufferBlock assigns a uniform buffer binding point to
// the named uniform block of the current program.
func (d *Device) SetBufferBlock(name string, index int) {
	id, _, ok := d.programs.get(d.curProg)
	if !ok || d.curProg == 0 {
		return
	}
	if bi := d.gl.UniformBlockIndex(id, name); bi != driver.InvalidIndex {
		d.gl.UniformBlockBinding(id, bi, index)
	}
}
