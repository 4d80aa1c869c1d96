// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package soft

import (
	"github.com/gviegas/pbr/driver"
)

// Buffer is the state of a buffer object.
type Buffer struct {
	Data   []byte
	Usage  driver.Usage
	Mapped bool
	// Maps counts successful calls to MapBuffer.
	Maps int
}

// VertexArray is the state of a vertex array object.
type VertexArray struct {
	Attribs  [maxAttrib]Attrib
	Elements uint32
}

// Attrib describes one vertex attribute.
type Attrib struct {
	Enabled    bool
	Size       int
	Type       driver.AttrType
	Normalized bool
	Stride     int
	Offset     int
	Buffer     uint32
}

// Draw records a draw call.
type Draw struct {
	Mode        driver.Primitive
	First       int
	Count       int
	Indexed     bool
	VertexArray uint32
	Program     uint32
	// Textures holds, per unit, the texture bound to
	// Tex2D, or to TexCube when no 2D texture is bound.
	Textures [maxUnit]uint32
}

// Buffer returns the buffer named buf, or nil.
func (gl *GL) Buffer(buf uint32) *Buffer { return gl.buffers[buf] }

// VertexArray returns the vertex array named va, or nil.
func (gl *GL) VertexArray(va uint32) *VertexArray { return gl.vertexArrays[va] }

// BufferBase returns the buffer bound to the uniform
// binding point index.
func (gl *GL) BufferBase(index int) uint32 {
	if index < 0 || index >= maxBase {
		return 0
	}
	return gl.bases[index]
}

// Draws returns the draw calls recorded so far.
func (gl *GL) Draws() []Draw { return gl.draws }

// ResetDraws discards the recorded draw calls.
func (gl *GL) ResetDraws() { gl.draws = gl.draws[:0] }

// GenBuffer implements driver.GL.
func (gl *GL) GenBuffer() uint32 {
	buf := gl.bufNames.Get()
	gl.buffers[buf] = &Buffer{}
	return buf
}

// DeleteBuffer implements driver.GL.
func (gl *GL) DeleteBuffer(buf uint32) {
	if _, ok := gl.buffers[buf]; !ok {
		return
	}
	for i := range gl.bufBound {
		if gl.bufBound[i] == buf {
			gl.bufBound[i] = 0
		}
	}
	for i := range gl.bases {
		if gl.bases[i] == buf {
			gl.bases[i] = 0
		}
	}
	if va := gl.vertexArrays[gl.va]; va != nil && va.Elements == buf {
		va.Elements = 0
	}
	delete(gl.buffers, buf)
	gl.bufNames.Put(buf)
}

// BindBuffer implements driver.GL.
func (gl *GL) BindBuffer(target driver.BufTarget, buf uint32) {
	if target < 0 || int(target) >= nBufTgt {
		gl.fail(driver.InvalidEnum)
		return
	}
	if _, ok := gl.buffers[buf]; buf != 0 && !ok {
		gl.fail(driver.InvalidOperation)
		return
	}
	if target == driver.BElementArray {
		if va := gl.vertexArrays[gl.va]; va != nil {
			va.Elements = buf
		}
	}
	gl.bufBound[target] = buf
}

func (gl *GL) boundBuffer(target driver.BufTarget) *Buffer {
	if target < 0 || int(target) >= nBufTgt {
		gl.fail(driver.InvalidEnum)
		return nil
	}
	buf := gl.bufBound[target]
	if target == driver.BElementArray {
		if va := gl.vertexArrays[gl.va]; va != nil {
			buf = va.Elements
		}
	}
	if buf == 0 {
		gl.fail(driver.InvalidOperation)
		return nil
	}
	return gl.buffers[buf]
}

// BufferData implements driver.GL.
func (gl *GL) BufferData(target driver.BufTarget, size int, data []byte, usg driver.Usage) {
	if size < 0 || (data != nil && len(data) < size) {
		gl.fail(driver.InvalidValue)
		return
	}
	b := gl.boundBuffer(target)
	if b == nil {
		return
	}
	if b.Mapped {
		gl.fail(driver.InvalidOperation)
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usg
}

// MapBuffer implements driver.GL.
func (gl *GL) MapBuffer(target driver.BufTarget) []byte {
	b := gl.boundBuffer(target)
	if b == nil {
		return nil
	}
	if b.Mapped {
		gl.fail(driver.InvalidOperation)
		return nil
	}
	b.Mapped = true
	b.Maps++
	return b.Data
}

// UnmapBuffer implements driver.GL.
func (gl *GL) UnmapBuffer(target driver.BufTarget) bool {
	b := gl.boundBuffer(target)
	if b == nil {
		return false
	}
	if !b.Mapped {
		gl.fail(driver.InvalidOperation)
		return false
	}
	b.Mapped = false
	return true
}

// BindBufferBase implements driver.GL.
func (gl *GL) BindBufferBase(target driver.BufTarget, index int, buf uint32) {
	if target != driver.BUniform {
		gl.fail(driver.InvalidEnum)
		return
	}
	if index < 0 || index >= maxBase {
		gl.fail(driver.InvalidValue)
		return
	}
	if _, ok := gl.buffers[buf]; buf != 0 && !ok {
		gl.fail(driver.InvalidOperation)
		return
	}
	gl.bases[index] = buf
	gl.bufBound[target] = buf
}

// GenVertexArray implements driver.GL.
func (gl *GL) GenVertexArray() uint32 {
	va := gl.vaNames.Get()
	gl.vertexArrays[va] = &VertexArray{}
	return va
}

// DeleteVertexArray implements driver.GL.
func (gl *GL) DeleteVertexArray(va uint32) {
	if _, ok := gl.vertexArrays[va]; !ok {
		return
	}
	if gl.va == va {
		gl.va = 0
	}
	delete(gl.vertexArrays, va)
	gl.vaNames.Put(va)
}

// BindVertexArray implements driver.GL.
func (gl *GL) BindVertexArray(va uint32) {
	if _, ok := gl.vertexArrays[va]; va != 0 && !ok {
		gl.fail(driver.InvalidOperation)
		return
	}
	gl.va = va
}

func (gl *GL) boundVertexArray() *VertexArray {
	va := gl.vertexArrays[gl.va]
	if va == nil {
		gl.fail(driver.InvalidOperation)
	}
	return va
}

// EnableVertexAttrib implements driver.GL.
func (gl *GL) EnableVertexAttrib(index int) {
	if index < 0 || index >= maxAttrib {
		gl.fail(driver.InvalidValue)
		return
	}
	if va := gl.boundVertexArray(); va != nil {
		va.Attribs[index].Enabled = true
	}
}

// VertexAttribPointer implements driver.GL.
func (gl *GL) VertexAttribPointer(index, size int, typ driver.AttrType, normalized bool, stride, offset int) {
	if index < 0 || index >= maxAttrib || size < 1 || size > 4 || stride < 0 || offset < 0 {
		gl.fail(driver.InvalidValue)
		return
	}
	va := gl.boundVertexArray()
	if va == nil {
		return
	}
	buf := gl.bufBound[driver.BArray]
	if buf == 0 {
		gl.fail(driver.InvalidOperation)
		return
	}
	a := &va.Attribs[index]
	a.Size = size
	a.Type = typ
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = buf
}

func (gl *GL) record(mode driver.Primitive, first, count int, indexed bool) {
	d := Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Indexed:     indexed,
		VertexArray: gl.va,
		Program:     gl.prog,
	}
	for u := range gl.units {
		if tex := gl.units[u][driver.Tex2D]; tex != 0 {
			d.Textures[u] = tex
		} else {
			d.Textures[u] = gl.units[u][driver.TexCube]
		}
	}
	gl.draws = append(gl.draws, d)
}

// checkAttribs reports whether enabled attributes can
// source n vertices starting at first.
func (gl *GL) checkAttribs(va *VertexArray, first, n int) bool {
	for i := range va.Attribs {
		a := &va.Attribs[i]
		if !a.Enabled || n == 0 {
			continue
		}
		b := gl.buffers[a.Buffer]
		if b == nil {
			return false
		}
		stride := a.Stride
		if stride == 0 {
			stride = a.Size * a.Type.Size()
		}
		end := a.Offset + (first+n-1)*stride + a.Size*a.Type.Size()
		if end > len(b.Data) {
			return false
		}
	}
	return true
}

// DrawArrays implements driver.GL.
func (gl *GL) DrawArrays(mode driver.Primitive, first, count int) {
	if first < 0 || count < 0 {
		gl.fail(driver.InvalidValue)
		return
	}
	va := gl.boundVertexArray()
	if va == nil {
		return
	}
	if !gl.checkAttribs(va, first, count) {
		gl.fail(driver.InvalidOperation)
		return
	}
	gl.record(mode, first, count, false)
}

// DrawElements implements driver.GL.
func (gl *GL) DrawElements(mode driver.Primitive, count int, offset int) {
	if count < 0 || offset < 0 {
		gl.fail(driver.InvalidValue)
		return
	}
	va := gl.boundVertexArray()
	if va == nil {
		return
	}
	eb := gl.buffers[va.Elements]
	if eb == nil || offset+count*4 > len(eb.Data) {
		gl.fail(driver.InvalidOperation)
		return
	}
	gl.record(mode, offset/4, count, true)
}
