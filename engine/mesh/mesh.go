// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package mesh implements the geometry representation used
// in the engine's renderer.
package mesh

import (
	"errors"
	"unsafe"

	"github.com/gviegas/pbr/linear"
)

const prefix = "mesh: "

var (
	ErrNoVertices = errors.New(prefix + "geometry has no vertices")
	ErrIndex      = errors.New(prefix + "index out of range")
)

// Semantic specifies the intended use of a vertex attribute.
type Semantic int

// Semantics.
const (
	Position Semantic = 1 << iota
	Normal
	TexCoord0
	Tangent

	MaxSemantic = iota
)

// I computes log₂(s).
// This value is the attribute location used by the shaders.
func (s Semantic) I() (i int) {
	for s > 1 {
		s >>= 1
		i++
	}
	return
}

// String implements fmt.Stringer.
func (s Semantic) String() string {
	switch s {
	case Position:
		return "Position"
	case Normal:
		return "Normal"
	case TexCoord0:
		return "TexCoord0"
	case Tangent:
		return "Tangent"
	default:
		return "[!] invalid Semantic value"
	}
}

// Components returns the number of float32 components
// of s.
func (s Semantic) Components() int {
	if s == TexCoord0 {
		return 2
	}
	return 3
}

// Offset returns the byte offset of s within a Vertex.
func (s Semantic) Offset() int {
	switch s {
	case Normal:
		return int(unsafe.Offsetof(Vertex{}.Normal))
	case TexCoord0:
		return int(unsafe.Offsetof(Vertex{}.UV))
	case Tangent:
		return int(unsafe.Offsetof(Vertex{}.Tangent))
	}
	return 0
}

// Vertex is the interleaved vertex format.
type Vertex struct {
	Position linear.V3
	Normal   linear.V3
	UV       linear.V2
	Tangent  linear.V3
}

// Stride is the size in bytes of a Vertex.
const Stride = int(unsafe.Sizeof(Vertex{}))

// Geometry is CPU-side vertex data.
// Indices are optional; when present, every three of
// them define a triangle.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32

	// VertexArray is the RHI handle of the uploaded
	// geometry, or -1 if it was not uploaded.
	VertexArray int
}

// New creates a geometry that has not been uploaded.
func New(vertices []Vertex, indices []uint32) *Geometry {
	return &Geometry{
		Vertices:    vertices,
		Indices:     indices,
		VertexArray: -1,
	}
}

// NumVertices returns the number of vertices.
func (g *Geometry) NumVertices() int { return len(g.Vertices) }

// NumIndices returns the number of indices.
func (g *Geometry) NumIndices() int { return len(g.Indices) }

// VertexBytes returns the raw vertex data.
// It aliases g.Vertices.
func (g *Geometry) VertexBytes() []byte {
	if len(g.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&g.Vertices[0])), len(g.Vertices)*Stride)
}

// IndexBytes returns the raw index data.
// It aliases g.Indices.
func (g *Geometry) IndexBytes() []byte {
	if len(g.Indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&g.Indices[0])), len(g.Indices)*4)
}

// Check validates g.
func (g *Geometry) Check() error {
	if len(g.Vertices) == 0 {
		return ErrNoVertices
	}
	n := uint32(len(g.Vertices))
	for _, i := range g.Indices {
		if i >= n {
			return ErrIndex
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the
// vertex positions.
func (g *Geometry) Bounds() (min, max linear.V3) {
	if len(g.Vertices) == 0 {
		return
	}
	min = g.Vertices[0].Position
	max = min
	for i := range g.Vertices[1:] {
		p := &g.Vertices[i+1].Position
		min.Min(&min, p)
		max.Max(&max, p)
	}
	return
}
