// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/pbr/linear"
)

// Scene is a flat collection of shapes, lights and
// cameras, plus an optional environment.
// Shapes are drawn in insertion order.
type Scene struct {
	shapes  []Shape
	lights  []Light
	cameras []*Camera
	sky     *Skybox

	bbox    BBox
	hasBBox bool
}

// AddShape appends s, growing the scene bounds to
// contain it. If the scene has an environment, s's
// material is updated with it.
func (s *Scene) AddShape(sh Shape) {
	b := sh.BBox()
	if s.hasBBox {
		s.bbox.Expand(&b)
	} else {
		s.bbox, s.hasBBox = b, true
	}
	if s.sky != nil && sh.Material() != nil {
		sh.Material().Update(s.sky)
	}
	s.shapes = append(s.shapes, sh)
}

// AddLight appends l.
// Only the first MaxLight lights are rendered.
func (s *Scene) AddLight(l Light) { s.lights = append(s.lights, l) }

// AddCamera appends c.
func (s *Scene) AddCamera(c *Camera) { s.cameras = append(s.cameras, c) }

// SetEnvironment sets the scene's skybox and updates the
// material of every shape with it.
func (s *Scene) SetEnvironment(sky *Skybox) {
	s.sky = sky
	if sky == nil {
		return
	}
	for _, sh := range s.shapes {
		if m := sh.Material(); m != nil {
			m.Update(sky)
		}
	}
}

// HasSkybox reports whether the scene has an environment.
func (s *Scene) HasSkybox() bool { return s.sky != nil }

// Skybox returns the scene's environment, or nil.
func (s *Scene) Skybox() *Skybox { return s.sky }

// Shapes returns the scene's shapes.
func (s *Scene) Shapes() []Shape { return s.shapes }

// Lights returns the scene's lights.
func (s *Scene) Lights() []Light { return s.lights }

// Cameras returns the scene's cameras.
func (s *Scene) Cameras() []*Camera { return s.cameras }

// BBox returns the bounds of every shape added so far.
// It is the zero box for an empty scene.
func (s *Scene) BBox() BBox { return s.bbox }

// Intersect returns the shape whose bounding box is hit
// first by the ray from origin along dir.
func (s *Scene) Intersect(origin, dir linear.V3) (Shape, bool) {
	var (
		hit  Shape
		dist float32
	)
	for _, sh := range s.shapes {
		b := sh.BBox()
		if t, ok := b.IntersectRay(&origin, &dir); ok && (hit == nil || t < dist) {
			hit, dist = sh, t
		}
	}
	return hit, hit != nil
}
