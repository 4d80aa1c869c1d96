// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package soft

import (
	"fmt"
	"strings"

	"github.com/gviegas/pbr/driver"
)

// Shader is the state of a shader object.
type Shader struct {
	Stage    driver.Stage
	Source   string
	Compiled bool
	Log      string
	// Flagged is set when the shader was deleted while
	// attached to a program.
	Flagged bool
}

// Program is the state of a program object.
type Program struct {
	Attached []uint32
	Linked   bool
	Log      string
	// Uniforms maps uniform names to locations.
	// It is populated by LinkProgram from the
	// declarations found in the attached sources.
	Uniforms map[string]int32
	// Blocks maps uniform block names to indices.
	Blocks map[string]uint32
	// Bindings maps block indices to binding points.
	Bindings map[uint32]int
	// Values holds the last value set for each
	// uniform location.
	Values map[int32]Value
}

// Value is the value of a uniform.
type Value struct {
	Ints   []int32
	Floats []float32
}

// Shader returns the shader named sh, or nil.
func (gl *GL) Shader(sh uint32) *Shader { return gl.shaders[sh] }

// Program returns the program named prog, or nil.
func (gl *GL) Program(prog uint32) *Program { return gl.programs[prog] }

// CurrentProgram returns the program in use.
func (gl *GL) CurrentProgram() uint32 { return gl.prog }

// Uniform returns the value of the named uniform of prog.
func (gl *GL) Uniform(prog uint32, name string) (Value, bool) {
	p := gl.programs[prog]
	if p == nil || !p.Linked {
		return Value{}, false
	}
	loc, ok := p.Uniforms[name]
	if !ok {
		return Value{}, false
	}
	v, ok := p.Values[loc]
	return v, ok
}

// BlockBinding returns the binding point of the named
// uniform block of prog, or -1.
func (gl *GL) BlockBinding(prog uint32, name string) int {
	p := gl.programs[prog]
	if p == nil {
		return -1
	}
	idx, ok := p.Blocks[name]
	if !ok {
		return -1
	}
	if b, ok := p.Bindings[idx]; ok {
		return b
	}
	return -1
}

// CreateShader implements driver.GL.
func (gl *GL) CreateShader(stage driver.Stage) uint32 {
	if stage < driver.SVertex || stage > driver.SCompute {
		gl.fail(driver.InvalidEnum)
		return 0
	}
	sh := gl.progNames.Get()
	gl.shaders[sh] = &Shader{Stage: stage}
	return sh
}

// ShaderSource implements driver.GL.
func (gl *GL) ShaderSource(sh uint32, src string) {
	s := gl.shaders[sh]
	if s == nil {
		gl.fail(driver.InvalidValue)
		return
	}
	s.Source = src
}

// CompileShader implements driver.GL.
// Compilation fails for empty sources and for sources
// containing an #error directive.
func (gl *GL) CompileShader(sh uint32) bool {
	s := gl.shaders[sh]
	if s == nil {
		gl.fail(driver.InvalidValue)
		return false
	}
	s.Compiled, s.Log = false, ""
	if strings.TrimSpace(s.Source) == "" {
		s.Log = "0:0: error: empty shader source"
		return false
	}
	for i, line := range strings.Split(s.Source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#error") {
			s.Log = fmt.Sprintf("0:%d: error: %s", i+1, strings.TrimSpace(line[len("#error"):]))
			return false
		}
	}
	s.Compiled = true
	return true
}

// ShaderLog implements driver.GL.
func (gl *GL) ShaderLog(sh uint32) string {
	if s := gl.shaders[sh]; s != nil {
		return s.Log
	}
	gl.fail(driver.InvalidValue)
	return ""
}

// DeleteShader implements driver.GL.
// Shaders that are attached are deleted when the last
// program detaches them.
func (gl *GL) DeleteShader(sh uint32) {
	if _, ok := gl.shaders[sh]; !ok {
		return
	}
	for _, p := range gl.programs {
		for _, x := range p.Attached {
			if x == sh {
				gl.shaders[sh].Flagged = true
				return
			}
		}
	}
	delete(gl.shaders, sh)
	gl.progNames.Put(sh)
}

// CreateProgram implements driver.GL.
func (gl *GL) CreateProgram() uint32 {
	prog := gl.progNames.Get()
	gl.programs[prog] = &Program{
		Uniforms: make(map[string]int32),
		Blocks:   make(map[string]uint32),
		Bindings: make(map[uint32]int),
		Values:   make(map[int32]Value),
	}
	return prog
}

// AttachShader implements driver.GL.
func (gl *GL) AttachShader(prog, sh uint32) {
	p, s := gl.programs[prog], gl.shaders[sh]
	if p == nil || s == nil {
		gl.fail(driver.InvalidValue)
		return
	}
	for _, x := range p.Attached {
		if x == sh {
			gl.fail(driver.InvalidOperation)
			return
		}
	}
	p.Attached = append(p.Attached, sh)
}

// DetachShader implements driver.GL.
func (gl *GL) DetachShader(prog, sh uint32) {
	p := gl.programs[prog]
	if p == nil {
		gl.fail(driver.InvalidValue)
		return
	}
	for i, x := range p.Attached {
		if x == sh {
			p.Attached = append(p.Attached[:i], p.Attached[i+1:]...)
			if gl.shaders[sh].Flagged {
				gl.DeleteShader(sh)
			}
			return
		}
	}
	gl.fail(driver.InvalidOperation)
}

// LinkProgram implements driver.GL.
// Linking fails if no shader is attached, if any
// attached shader failed to compile, or if a graphics
// program lacks a vertex or fragment stage.
func (gl *GL) LinkProgram(prog uint32) bool {
	p := gl.programs[prog]
	if p == nil {
		gl.fail(driver.InvalidValue)
		return false
	}
	p.Linked, p.Log = false, ""
	clear(p.Uniforms)
	clear(p.Blocks)
	clear(p.Bindings)
	clear(p.Values)
	if len(p.Attached) == 0 {
		p.Log = "error: no shaders attached"
		return false
	}
	var stages [driver.SCompute + 1]int
	for _, sh := range p.Attached {
		s := gl.shaders[sh]
		if !s.Compiled {
			p.Log = fmt.Sprintf("error: %s shader %d not compiled", s.Stage, sh)
			return false
		}
		stages[s.Stage]++
	}
	if stages[driver.SCompute] == 0 && (stages[driver.SVertex] == 0 || stages[driver.SFragment] == 0) {
		p.Log = "error: missing vertex or fragment stage"
		return false
	}
	for _, sh := range p.Attached {
		declare(p, gl.shaders[sh].Source)
	}
	p.Linked = true
	return true
}

// declare adds the uniform and uniform block declarations
// found in src to p.
func declare(p *Program, src string) {
	for _, line := range strings.Split(src, "\n") {
		f := strings.Fields(strings.NewReplacer("{", " { ", ";", " ; ").Replace(line))
		i := 0
		for i < len(f) && f[i] != "uniform" {
			i++
		}
		f = f[min(i+1, len(f)):]
		switch {
		case len(f) == 0:
		case len(f) == 1 || f[1] == "{":
			if _, ok := p.Blocks[f[0]]; !ok {
				p.Blocks[f[0]] = uint32(len(p.Blocks))
			}
		default:
			name, _, _ := strings.Cut(f[1], "[")
			if _, ok := p.Uniforms[name]; !ok {
				p.Uniforms[name] = int32(len(p.Uniforms))
			}
		}
	}
}

// ProgramLog implements driver.GL.
func (gl *GL) ProgramLog(prog uint32) string {
	if p := gl.programs[prog]; p != nil {
		return p.Log
	}
	gl.fail(driver.InvalidValue)
	return ""
}

// DeleteProgram implements driver.GL.
func (gl *GL) DeleteProgram(prog uint32) {
	p, ok := gl.programs[prog]
	if !ok {
		return
	}
	attached := p.Attached
	p.Attached = nil
	if gl.prog == prog {
		gl.prog = 0
	}
	delete(gl.programs, prog)
	gl.progNames.Put(prog)
	for _, sh := range attached {
		if gl.shaders[sh].Flagged {
			gl.DeleteShader(sh)
		}
	}
}

// UseProgram implements driver.GL.
func (gl *GL) UseProgram(prog uint32) {
	if prog != 0 {
		p := gl.programs[prog]
		if p == nil {
			gl.fail(driver.InvalidValue)
			return
		}
		if !p.Linked {
			gl.fail(driver.InvalidOperation)
			return
		}
	}
	gl.prog = prog
}

// UniformLocation implements driver.GL.
func (gl *GL) UniformLocation(prog uint32, name string) int32 {
	p := gl.programs[prog]
	if p == nil || !p.Linked {
		gl.fail(driver.InvalidOperation)
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

// UniformBlockIndex implements driver.GL.
func (gl *GL) UniformBlockIndex(prog uint32, name string) uint32 {
	p := gl.programs[prog]
	if p == nil || !p.Linked {
		gl.fail(driver.InvalidOperation)
		return driver.InvalidIndex
	}
	if idx, ok := p.Blocks[name]; ok {
		return idx
	}
	return driver.InvalidIndex
}

// UniformBlockBinding implements driver.GL.
func (gl *GL) UniformBlockBinding(prog, index uint32, binding int) {
	p := gl.programs[prog]
	if p == nil || !p.Linked || index >= uint32(len(p.Blocks)) || binding < 0 || binding >= maxBase {
		gl.fail(driver.InvalidValue)
		return
	}
	p.Bindings[index] = binding
}

func (gl *GL) set(loc int32, v Value) {
	if loc == -1 {
		return
	}
	p := gl.programs[gl.prog]
	if p == nil || loc < 0 || loc >= int32(len(p.Uniforms)) {
		gl.fail(driver.InvalidOperation)
		return
	}
	p.Values[loc] = v
}

// Uniform1i implements driver.GL.
func (gl *GL) Uniform1i(loc, v int32) { gl.set(loc, Value{Ints: []int32{v}}) }

// Uniform1f implements driver.GL.
func (gl *GL) Uniform1f(loc int32, v float32) { gl.set(loc, Value{Floats: []float32{v}}) }

// Uniform2f implements driver.GL.
func (gl *GL) Uniform2f(loc int32, v0, v1 float32) {
	gl.set(loc, Value{Floats: []float32{v0, v1}})
}

// Uniform3f implements driver.GL.
func (gl *GL) Uniform3f(loc int32, v0, v1, v2 float32) {
	gl.set(loc, Value{Floats: []float32{v0, v1, v2}})
}

// Uniform4f implements driver.GL.
func (gl *GL) Uniform4f(loc int32, v0, v1, v2, v3 float32) {
	gl.set(loc, Value{Floats: []float32{v0, v1, v2, v3}})
}

// UniformMatrix3 implements driver.GL.
func (gl *GL) UniformMatrix3(loc int32, m *[9]float32) {
	gl.set(loc, Value{Floats: append([]float32(nil), m[:]...)})
}

// UniformMatrix4 implements driver.GL.
func (gl *GL) UniformMatrix4(loc int32, m *[16]float32) {
	gl.set(loc, Value{Floats: append([]float32(nil), m[:]...)})
}
