// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/pbr/engine/mesh"
	"github.com/gviegas/pbr/linear"
	"github.com/gviegas/pbr/rhi"
)

// Shape is a drawable scene object.
// It is implemented by *Mesh and *Sphere.
type Shape interface {
	// Name identifies the shape.
	Name() string

	// Transform returns the shape's placement.
	Transform() *Transform

	// Material returns the shape's material, or nil.
	Material() *PBRMaterial

	// SetMaterial sets the shape's material.
	SetMaterial(m *PBRMaterial)

	// SetProgram makes the shape draw with program
	// prog instead of its material's. Program 0 restores
	// the material's program.
	SetProgram(prog int)

	// Prepare uploads the shape's geometry.
	Prepare(d *rhi.Device) error

	// Draw draws the shape with the current constant
	// buffers.
	Draw(d *rhi.Device)

	// BBox returns the world-space bounds of the shape.
	BBox() BBox

	base() *shapeBase
}

type shapeBase struct {
	name  string
	xform Transform
	mat   *PBRMaterial
	prog  int
	geom  *mesh.Geometry
}

func newBase(name string, g *mesh.Geometry) shapeBase {
	return shapeBase{name: name, xform: Identity(), geom: g}
}

func (s *shapeBase) base() *shapeBase { return s }

func (s *shapeBase) Name() string { return s.name }

func (s *shapeBase) Transform() *Transform { return &s.xform }

func (s *shapeBase) Material() *PBRMaterial { return s.mat }

func (s *shapeBase) SetMaterial(m *PBRMaterial) { s.mat = m }

func (s *shapeBase) SetProgram(prog int) { s.prog = prog }

// Geometry returns the shape's geometry.
func (s *shapeBase) Geometry() *mesh.Geometry { return s.geom }

func (s *shapeBase) Prepare(d *rhi.Device) error {
	if s.geom == nil {
		return ErrNoGeometry
	}
	if s.geom.VertexArray >= 0 {
		return nil
	}
	if d.UploadGeometry(s.geom) < 0 {
		return ErrNoGeometry
	}
	return nil
}

// draw issues the shape's draw call.
// The order of state changes is fixed: transform,
// program, matrices, material data, geometry and then
// program 0.
func (s *shapeBase) draw(d *rhi.Device, indexed bool) {
	if s.geom == nil || s.geom.VertexArray < 0 {
		return
	}
	s.xform.Update()
	switch {
	case s.prog != 0:
		d.UseProgram(s.prog)
	case s.mat != nil:
		s.mat.Use(d)
	}
	d.SetMatrix4("ModelMatrix", s.xform.World())
	d.SetMatrix3("NormalMatrix", s.xform.Normal())
	if s.mat != nil {
		s.mat.UploadData(d)
	}
	if indexed {
		d.DrawGeometryIndexed(s.geom.VertexArray)
	} else {
		d.DrawGeometry(s.geom.VertexArray)
	}
	d.UseProgram(0)
}

// Mesh is a shape made from arbitrary geometry.
// Its geometry is drawn in vertex order.
type Mesh struct {
	shapeBase
	bounds BBox
}

// NewMesh creates a mesh shape from g.
func NewMesh(name string, g *mesh.Geometry) *Mesh {
	m := &Mesh{shapeBase: newBase(name, g)}
	if g != nil {
		m.bounds.Min, m.bounds.Max = g.Bounds()
	}
	return m
}

// LoadMesh creates a mesh shape from an OBJ file.
func LoadMesh(name, path string) (*Mesh, error) {
	g, err := mesh.LoadOBJFile(path)
	if err != nil {
		return nil, err
	}
	return NewMesh(name, g), nil
}

// Draw implements Shape.
func (m *Mesh) Draw(d *rhi.Device) { m.draw(d, false) }

// BBox implements Shape.
func (m *Mesh) BBox() BBox {
	m.xform.Update()
	return m.bounds.Transform(m.xform.World())
}

// Sphere segment counts.
const (
	SphereWidthSegments  = 32
	SphereHeightSegments = 32
)

// Sphere is a UV sphere shape.
type Sphere struct {
	shapeBase
	radius float32
}

// NewSphere creates a sphere shape centered at position.
// Its geometry is generated by Prepare.
func NewSphere(name string, position linear.V3, radius float32) *Sphere {
	s := &Sphere{shapeBase: newBase(name, nil), radius: radius}
	s.xform.Position = position
	return s
}

// Radius returns the radius of s.
func (s *Sphere) Radius() float32 { return s.radius }

// Prepare implements Shape.
func (s *Sphere) Prepare(d *rhi.Device) error {
	if s.geom == nil {
		s.geom = mesh.Sphere(s.radius, SphereWidthSegments, SphereHeightSegments)
	}
	return s.shapeBase.Prepare(d)
}

// Draw implements Shape.
// Sphere geometry is indexed.
func (s *Sphere) Draw(d *rhi.Device) { s.draw(d, true) }

// BBox implements Shape.
func (s *Sphere) BBox() BBox {
	r := s.radius * max(s.xform.Scale[0], s.xform.Scale[1], s.xform.Scale[2])
	p := s.xform.Position
	return BBox{
		Min: linear.V3{p[0] - r, p[1] - r, p[2] - r},
		Max: linear.V3{p[0] + r, p[1] + r, p[2] + r},
	}
}
