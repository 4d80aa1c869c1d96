// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/pbr/driver"
)

var bufTargets = [...]uint32{
	driver.BArray:        gl.ARRAY_BUFFER,
	driver.BElementArray: gl.ELEMENT_ARRAY_BUFFER,
	driver.BUniform:      gl.UNIFORM_BUFFER,
}

var usages = [...]uint32{
	driver.UStaticDraw:  gl.STATIC_DRAW,
	driver.UStreamDraw:  gl.STREAM_DRAW,
	driver.UDynamicDraw: gl.DYNAMIC_DRAW,
}

var attrTypes = [...]uint32{
	driver.AByte:  gl.BYTE,
	driver.AShort: gl.SHORT,
	driver.AUInt:  gl.UNSIGNED_INT,
	driver.AFloat: gl.FLOAT,
}

var primitives = [...]uint32{
	driver.PTriangles:     gl.TRIANGLES,
	driver.PTriangleStrip: gl.TRIANGLE_STRIP,
	driver.PLines:         gl.LINES,
	driver.PPoints:        gl.POINTS,
}

// GenBuffer implements driver.GL.
func (c *GL) GenBuffer() (buf uint32) {
	gl.GenBuffers(1, &buf)
	return
}

// DeleteBuffer implements driver.GL.
func (c *GL) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }

// BindBuffer implements driver.GL.
func (c *GL) BindBuffer(target driver.BufTarget, buf uint32) {
	gl.BindBuffer(bufTargets[target], buf)
}

// BufferData implements driver.GL.
func (c *GL) BufferData(target driver.BufTarget, size int, data []byte, usg driver.Usage) {
	gl.BufferData(bufTargets[target], size, ptr(data), usages[usg])
}

// MapBuffer implements driver.GL.
func (c *GL) MapBuffer(target driver.BufTarget) []byte {
	t := bufTargets[target]
	var size int32
	gl.GetBufferParameteriv(t, gl.BUFFER_SIZE, &size)
	p := gl.MapBuffer(t, gl.WRITE_ONLY)
	if p == nil || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

// UnmapBuffer implements driver.GL.
func (c *GL) UnmapBuffer(target driver.BufTarget) bool {
	return gl.UnmapBuffer(bufTargets[target])
}

// BindBufferBase implements driver.GL.
func (c *GL) BindBufferBase(target driver.BufTarget, index int, buf uint32) {
	gl.BindBufferBase(bufTargets[target], uint32(index), buf)
}

// GenVertexArray implements driver.GL.
func (c *GL) GenVertexArray() (va uint32) {
	gl.GenVertexArrays(1, &va)
	return
}

// DeleteVertexArray implements driver.GL.
func (c *GL) DeleteVertexArray(va uint32) { gl.DeleteVertexArrays(1, &va) }

// BindVertexArray implements driver.GL.
func (c *GL) BindVertexArray(va uint32) { gl.BindVertexArray(va) }

// EnableVertexAttrib implements driver.GL.
func (c *GL) EnableVertexAttrib(index int) { gl.EnableVertexAttribArray(uint32(index)) }

// VertexAttribPointer implements driver.GL.
func (c *GL) VertexAttribPointer(index, size int, typ driver.AttrType, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(index), int32(size), attrTypes[typ], normalized, int32(stride), gl.PtrOffset(offset))
}

// DrawArrays implements driver.GL.
func (c *GL) DrawArrays(mode driver.Primitive, first, count int) {
	gl.DrawArrays(primitives[mode], int32(first), int32(count))
}

// DrawElements implements driver.GL.
func (c *GL) DrawElements(mode driver.Primitive, count int, offset int) {
	gl.DrawElements(primitives[mode], int32(count), gl.UNSIGNED_INT, gl.PtrOffset(offset))
}
