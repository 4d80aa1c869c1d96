// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package rhi

import (
	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/engine/mesh"
)

// BufferType is the type of a buffer's contents.
// It determines the target to which the buffer is bound.
type BufferType int

// Buffer types.
const (
	VertexBuffer BufferType = iota
	IndexBuffer
	UniformBuffer
)

func (t BufferType) target() driver.BufTarget {
	switch t {
	case IndexBuffer:
		return driver.BElementArray
	case UniformBuffer:
		return driver.BUniform
	}
	return driver.BArray
}

// Usage is a hint of how often a buffer is updated.
type Usage int

// Usages.
const (
	Static Usage = iota
	Stream
	Dynamic
)

func (u Usage) native() driver.Usage {
	switch u {
	case Stream:
		return driver.UStreamDraw
	case Dynamic:
		return driver.UDynamicDraw
	}
	return driver.UStaticDraw
}

type buffer struct {
	typ   BufferType
	usage Usage
	size  int
}

type vertexArray struct {
	// Buffers created by UploadGeometry, deleted along
	// with the vertex array.
	owned    []int
	vertices int
	indices  int
}

// LayoutEntry describes one vertex attribute.
type LayoutEntry struct {
	Index  int
	Size   int
	Type   driver.AttrType
	Stride int
	Offset int
}

// Layout describes the attributes sourced from a vertex
// buffer.
type Layout []LayoutEntry

// GeometryLayout is the layout of mesh.Vertex data.
var GeometryLayout = func() (l Layout) {
	for s := mesh.Position; s < 1<<mesh.MaxSemantic; s <<= 1 {
		l = append(l, LayoutEntry{
			Index:  s.I(),
			Size:   s.Components(),
			Type:   driver.AFloat,
			Stride: mesh.Stride,
			Offset: s.Offset(),
		})
	}
	return
}()

// CreateBuffer creates a buffer of the given size,
// initialized from data if it is not nil.
func (d *Device) CreateBuffer(typ BufferType, usg Usage, size int, data []byte) int {
	target := typ.target()
	id := d.gl.GenBuffer()
	d.gl.BindBuffer(target, id)
	d.gl.BufferData(target, size, data, usg.native())
	d.gl.BindBuffer(target, 0)
	return d.buffers.add(id, d.nextGen(), buffer{typ, usg, size})
}

// BufferSize returns the size of the storage allocated for
// buffer h, or zero.
func (d *Device) BufferSize(h int) int {
	if _, b, ok := d.buffers.get(h); ok {
		return b.size
	}
	return 0
}

// SetBufferLayout enables and describes the attributes of
// the bound vertex array that source vertex buffer h.
// It returns false if h is not a live vertex buffer.
func (d *Device) SetBufferLayout(h int, l Layout) bool {
	id, b, ok := d.buffers.get(h)
	if !ok || b.typ != VertexBuffer {
		return false
	}
	d.gl.BindBuffer(driver.BArray, id)
	for _, e := range l {
		d.gl.EnableVertexAttrib(e.Index)
		d.gl.VertexAttribPointer(e.Index, e.Size, e.Type, false, e.Stride, e.Offset)
	}
	d.gl.BindBuffer(driver.BArray, 0)
	return true
}

// UpdateBuffer copies size bytes of data into buffer h.
// size is not checked against the buffer's capacity;
// bytes past the end of the storage are dropped.
// A negative size reports false.
func (d *Device) UpdateBuffer(h, size int, data []byte) bool {
	id, b, ok := d.buffers.get(h)
	if !ok || size < 0 {
		return false
	}
	target := b.typ.target()
	d.gl.BindBuffer(target, id)
	defer d.gl.BindBuffer(target, 0)
	m := d.gl.MapBuffer(target)
	if m == nil {
		return false
	}
	copy(m, data[:min(size, len(data))])
	return d.gl.UnmapBuffer(target)
}

// BindBufferBase binds uniform buffer h to the binding
// point index.
func (d *Device) BindBufferBase(h, index int) {
	if id, b, ok := d.buffers.get(h); ok && b.typ == UniformBuffer {
		d.gl.BindBufferBase(driver.BUniform, index, id)
	}
}

// DeleteBuffer deletes buffer h.
func (d *Device) DeleteBuffer(h int) bool {
	id, _, ok := d.buffers.kill(h)
	if ok {
		d.gl.DeleteBuffer(id)
	}
	return ok
}

// CreateVertexArray creates an empty vertex array.
func (d *Device) CreateVertexArray() int {
	return d.vertexArrays.add(d.gl.GenVertexArray(), d.nextGen(), vertexArray{})
}

// BindVertexArray binds vertex array h.
func (d *Device) BindVertexArray(h int) {
	if id, _, ok := d.vertexArrays.get(h); ok {
		d.gl.BindVertexArray(id)
	}
}

// UnbindVertexArray unbinds the current vertex array.
func (d *Device) UnbindVertexArray() { d.gl.BindVertexArray(0) }

// DeleteVertexArray deletes vertex array h and the buffers
// that UploadGeometry created for it.
func (d *Device) DeleteVertexArray(h int) bool {
	id, va, ok := d.vertexArrays.kill(h)
	if !ok {
		return false
	}
	d.gl.DeleteVertexArray(id)
	for _, b := range va.owned {
		d.DeleteBuffer(b)
	}
	va.owned = nil
	return true
}

// UploadGeometry creates a vertex array holding g,
// stores its handle in g.VertexArray and returns it.
// Vertices go into a static vertex buffer described by
// GeometryLayout; indices, if any, into a static index
// buffer. It returns -1 if g has no vertices.
func (d *Device) UploadGeometry(g *mesh.Geometry) int {
	if g.NumVertices() == 0 {
		return -1
	}
	h := d.CreateVertexArray()
	vaID, _, _ := d.vertexArrays.get(h)
	d.gl.BindVertexArray(vaID)

	vb := d.CreateBuffer(VertexBuffer, Static, len(g.VertexBytes()), g.VertexBytes())
	d.SetBufferLayout(vb, GeometryLayout)
	owned := []int{vb}
	if g.NumIndices() > 0 {
		ib := d.CreateBuffer(IndexBuffer, Static, len(g.IndexBytes()), g.IndexBytes())
		// CreateBuffer leaves the element array target
		// unbound, which detaches it from the vertex
		// array; bind it again.
		ibID, _, _ := d.buffers.get(ib)
		d.gl.BindBuffer(driver.BElementArray, ibID)
		owned = append(owned, ib)
	}
	d.gl.BindVertexArray(0)

	_, va, _ := d.vertexArrays.get(h)
	va.owned = owned
	va.vertices = g.NumVertices()
	va.indices = g.NumIndices()
	g.VertexArray = h
	return h
}

// GeometryCounts returns the number of vertices and
// indices uploaded to vertex array h.
func (d *Device) GeometryCounts(h int) (vertices, indices int) {
	if _, va, ok := d.vertexArrays.get(h); ok {
		return va.vertices, va.indices
	}
	return 0, 0
}

// DrawGeometry draws every vertex of vertex array h as a
// triangle list, in vertex order. Index buffers are not
// used; see DrawGeometryIndexed.
func (d *Device) DrawGeometry(h int) {
	id, va, ok := d.vertexArrays.get(h)
	if !ok {
		return
	}
	d.gl.BindVertexArray(id)
	d.gl.DrawArrays(driver.PTriangles, 0, va.vertices)
	d.gl.BindVertexArray(0)
}

// DrawGeometryIndexed draws vertex array h through its
// index buffer, falling back to DrawGeometry if it has
// none.
func (d *Device) DrawGeometryIndexed(h int) {
	id, va, ok := d.vertexArrays.get(h)
	if !ok {
		return
	}
	if va.indices == 0 {
		d.DrawGeometry(h)
		return
	}
	d.gl.BindVertexArray(id)
	d.gl.DrawElements(driver.PTriangles, va.indices, 0)
	d.gl.BindVertexArray(0)
}
