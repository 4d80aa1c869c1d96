// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/chewxy/math32"

	"github.com/gviegas/pbr/linear"
)

func near(x, y float32) bool { return math32.Abs(x-y) < 1e-5 }

func TestSemantic(t *testing.T) {
	for i, s := range []Semantic{Position, Normal, TexCoord0, Tangent} {
		if x := s.I(); x != i {
			t.Fatalf("%v.I:\nhave %d\nwant %d", s, x, i)
		}
	}
	if MaxSemantic != 4 || Stride != 44 {
		t.Fatalf("MaxSemantic, Stride:\nhave %d, %d\nwant 4, 44", MaxSemantic, Stride)
	}
	offs := []int{Position.Offset(), Normal.Offset(), TexCoord0.Offset(), Tangent.Offset()}
	if !slices.Equal(offs, []int{0, 12, 24, 32}) {
		t.Fatalf("Semantic.Offset:\nhave %v\nwant [0 12 24 32]", offs)
	}
	if TexCoord0.Components() != 2 || Tangent.Components() != 3 {
		t.Fatal("Semantic.Components: wrong count")
	}
}

func TestBytes(t *testing.T) {
	g := New([]Vertex{{Position: linear.V3{1, 2, 3}}, {}}, []uint32{1, 0, 1})
	if n := len(g.VertexBytes()); n != 2*Stride {
		t.Fatalf("Geometry.VertexBytes: len\nhave %d\nwant %d", n, 2*Stride)
	}
	ib := g.IndexBytes()
	if len(ib) != 12 || !bytes.Equal(ib[:4], []byte{1, 0, 0, 0}) {
		t.Fatalf("Geometry.IndexBytes:\nhave %v", ib)
	}
	if g.VertexArray != -1 {
		t.Fatalf("Geometry.VertexArray:\nhave %d\nwant -1", g.VertexArray)
	}
	if err := g.Check(); err != nil {
		t.Fatalf("Geometry.Check: %v", err)
	}

	g.Indices[2] = 2
	if err := g.Check(); !errors.Is(err, ErrIndex) {
		t.Fatalf("Geometry.Check:\nhave %v\nwant %v", err, ErrIndex)
	}
	if err := New(nil, nil).Check(); !errors.Is(err, ErrNoVertices) {
		t.Fatalf("Geometry.Check: empty\nhave %v\nwant %v", err, ErrNoVertices)
	}
	if b := New(nil, nil).VertexBytes(); b != nil {
		t.Fatalf("Geometry.VertexBytes: empty\nhave %v\nwant nil", b)
	}
}

func TestBounds(t *testing.T) {
	for _, x := range [...]struct {
		g        *Geometry
		min, max linear.V3
	}{
		{UnitCube(), linear.V3{-1, -1, -1}, linear.V3{1, 1, 1}},
		{Box(2, 4, 6), linear.V3{-1, -2, -3}, linear.V3{1, 2, 3}},
	} {
		if min, max := x.g.Bounds(); min != x.min || max != x.max {
			t.Fatalf("Geometry.Bounds:\nhave %v, %v\nwant %v, %v", min, max, x.min, x.max)
		}
	}
}

func TestComputeTangents(t *testing.T) {
	quad := []Vertex{
		{Position: linear.V3{0, 0, 0}, Normal: linear.V3{0, 0, 1}, UV: linear.V2{0, 0}},
		{Position: linear.V3{1, 0, 0}, Normal: linear.V3{0, 0, 1}, UV: linear.V2{1, 0}},
		{Position: linear.V3{1, 1, 0}, Normal: linear.V3{0, 0, 1}, UV: linear.V2{1, 1}},
		{Position: linear.V3{0, 1, 0}, Normal: linear.V3{0, 0, 1}, UV: linear.V2{0, 1}},
	}
	g := New(quad, []uint32{0, 1, 2, 0, 2, 3})
	g.ComputeTangents()
	for i, v := range g.Vertices {
		if !near(v.Tangent[0], 1) || !near(v.Tangent[1], 0) || !near(v.Tangent[2], 0) {
			t.Fatalf("Geometry.ComputeTangents: vertex %d\nhave %v\nwant [1 0 0]", i, v.Tangent)
		}
	}

	// Degenerate texture coordinates leave a zero tangent.
	flat := New([]Vertex{{}, {Position: linear.V3{1}}, {Position: linear.V3{0, 1}}}, nil)
	flat.ComputeTangents()
	if x := flat.Vertices[0].Tangent; x != (linear.V3{}) {
		t.Fatalf("Geometry.ComputeTangents: degenerate\nhave %v\nwant [0 0 0]", x)
	}
}

func TestSphere(t *testing.T) {
	g := Sphere(2, 32, 32)
	if n := g.NumVertices(); n != 33*33 {
		t.Fatalf("Sphere: NumVertices\nhave %d\nwant %d", n, 33*33)
	}
	// Two triangles per cell, minus one per cell on each
	// of the pole rows.
	if n, want := g.NumIndices(), (32*32*2-2*32)*3; n != want {
		t.Fatalf("Sphere: NumIndices\nhave %d\nwant %d", n, want)
	}
	if err := g.Check(); err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	for i, v := range g.Vertices {
		if !near(v.Position.Len(), 2) || !near(v.Normal.Len(), 1) {
			t.Fatalf("Sphere: vertex %d\nhave %v, %v", i, v.Position, v.Normal)
		}
	}
	// Rows are evenly spaced in v.
	if x := g.Vertices[33].UV[1]; !near(x, 1-1.0/32) {
		t.Fatalf("Sphere: v\nhave %v\nwant %v", x, 1-1.0/32)
	}
	if x := g.Vertices[1].UV[0]; !near(x, 1.0/32) {
		t.Fatalf("Sphere: u\nhave %v\nwant %v", x, 1.0/32)
	}
}

func TestUnitCube(t *testing.T) {
	g := UnitCube()
	if g.NumVertices() != 36 || g.NumIndices() != 0 {
		t.Fatalf("UnitCube:\nhave %d vertices, %d indices\nwant 36, 0", g.NumVertices(), g.NumIndices())
	}
	for i, v := range g.Vertices {
		for _, c := range v.Position {
			if c != -1 && c != 1 {
				t.Fatalf("UnitCube: vertex %d\nhave %v", i, v.Position)
			}
		}
		if v.Normal != (linear.V3{}) {
			t.Fatalf("UnitCube: vertex %d has a normal", i)
		}
	}
}

func TestBox(t *testing.T) {
	g := Box(1, 1, 1)
	if n := g.NumVertices(); n != 36 {
		t.Fatalf("Box: NumVertices\nhave %d\nwant 36", n)
	}
	for i, v := range g.Vertices {
		if !near(v.Normal.Len(), 1) || !near(v.Tangent.Len(), 1) || !near(v.Normal.Dot(&v.Tangent), 0) {
			t.Fatalf("Box: vertex %d: bad basis %v, %v", i, v.Normal, v.Tangent)
		}
		// Every position lies on the plane of its normal.
		if x := v.Normal.Dot(&v.Position); !near(x, 0.5) {
			t.Fatalf("Box: vertex %d: plane distance\nhave %v\nwant 0.5", i, x)
		}
	}
}

const quadOBJ = `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o quad
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestLoadOBJ(t *testing.T) {
	g, err := LoadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if n := g.NumVertices(); n != 6 {
		t.Fatalf("LoadOBJ: NumVertices\nhave %d\nwant 6", n)
	}
	if !slices.Equal(g.Indices, []uint32{0, 1, 2, 3, 4, 5}) {
		t.Fatalf("LoadOBJ: Indices\nhave %v", g.Indices)
	}
	if x := g.Vertices[2].Position; x != (linear.V3{1, 1, 0}) {
		t.Fatalf("LoadOBJ: position\nhave %v\nwant [1 1 0]", x)
	}
	// v is flipped.
	if x := g.Vertices[2].UV; x != (linear.V2{1, 0}) {
		t.Fatalf("LoadOBJ: uv\nhave %v\nwant [1 0]", x)
	}
	if v := g.Vertices[5]; v.Normal != (linear.V3{0, 0, 1}) || v.Position != (linear.V3{0, 1, 0}) {
		t.Fatalf("LoadOBJ: last vertex\nhave %+v", v)
	}
	for i, v := range g.Vertices {
		if !near(v.Tangent.Len(), 1) {
			t.Fatalf("LoadOBJ: vertex %d: tangent %v", i, v.Tangent)
		}
	}

	g, err = LoadOBJ(strings.NewReader("v 0 0 0\nv 0 1 0\nv 1 0 0\nf -3 -2 -1\n"))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if x := g.Vertices[0].Normal; x != (linear.V3{0, 0, -1}) {
		t.Fatalf("LoadOBJ: flat normal\nhave %v\nwant [0 0 -1]", x)
	}
}

func TestLoadOBJError(t *testing.T) {
	for _, s := range []string{
		"v 0 0\n",
		"v 0 0 0\nf 1 1\n",
		"v 0 0 0\nf 1 2 3\n",
		"v 0 0 0\nf 0 1 1\n",
		"v a b c\n",
	} {
		if _, err := LoadOBJ(strings.NewReader(s)); !errors.Is(err, ErrOBJ) {
			t.Fatalf("LoadOBJ(%q):\nhave %v\nwant %v", s, err, ErrOBJ)
		}
	}
	if _, err := LoadOBJ(strings.NewReader("# nothing\n")); !errors.Is(err, ErrNoVertices) {
		t.Fatalf("LoadOBJ: empty\nhave %v\nwant %v", err, ErrNoVertices)
	}
}

func TestLoadOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadOBJFile(path)
	if err != nil {
		t.Fatalf("LoadOBJFile: %v", err)
	}
	if n := g.NumVertices(); n != 6 {
		t.Fatalf("LoadOBJFile: NumVertices\nhave %d\nwant 6", n)
	}

	if _, err = LoadOBJFile(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadOBJFile: missing file\nhave %v\nwant %v", err, os.ErrNotExist)
	}
}
