// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"github.com/gviegas/pbr/linear"
)

// ComputeTangents sets the tangent of every vertex from the
// texture coordinate gradients of the triangles that share
// it, orthogonalized against the vertex normal.
// Triangles are taken from g.Indices if present, otherwise
// from consecutive vertex triples.
// Triangles with degenerate texture coordinates contribute
// nothing.
func (g *Geometry) ComputeTangents() {
	tan := make([]linear.V3, len(g.Vertices))
	n := len(g.Indices)
	if n == 0 {
		n = len(g.Vertices)
	}
	n -= n % 3
	idx := func(i int) uint32 {
		if len(g.Indices) == 0 {
			return uint32(i)
		}
		return g.Indices[i]
	}
	for i := 0; i < n; i += 3 {
		i0, i1, i2 := idx(i), idx(i+1), idx(i+2)
		if int(max(i0, i1, i2)) >= len(g.Vertices) {
			continue
		}
		v0, v1, v2 := &g.Vertices[i0], &g.Vertices[i1], &g.Vertices[i2]

		var e1, e2 linear.V3
		e1.Sub(&v1.Position, &v0.Position)
		e2.Sub(&v2.Position, &v0.Position)
		var s, t linear.V2
		s.Sub(&v1.UV, &v0.UV)
		t.Sub(&v2.UV, &v0.UV)

		det := s[0]*t[1] - s[1]*t[0]
		if det == 0 {
			continue
		}
		r := 1 / det
		var a, b, sdir linear.V3
		a.Scale(t[1], &e1)
		b.Scale(s[1], &e2)
		sdir.Sub(&a, &b)
		sdir.Scale(r, &sdir)

		tan[i0].Add(&tan[i0], &sdir)
		tan[i1].Add(&tan[i1], &sdir)
		tan[i2].Add(&tan[i2], &sdir)
	}
	for i := range g.Vertices {
		v := &g.Vertices[i]
		var p linear.V3
		p.Scale(v.Normal.Dot(&tan[i]), &v.Normal)
		p.Sub(&tan[i], &p)
		v.Tangent.Norm(&p)
	}
}
