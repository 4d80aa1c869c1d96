// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/pbr/linear"
)

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max linear.V3
}

// Expand grows b to contain c.
func (b *BBox) Expand(c *BBox) {
	b.Min.Min(&b.Min, &c.Min)
	b.Max.Max(&b.Max, &c.Max)
}

// Center returns the center of b.
func (b *BBox) Center() (c linear.V3) {
	c.Add(&b.Min, &b.Max)
	c.Scale(0.5, &c)
	return
}

// Transform returns the box that bounds b transformed
// by m.
func (b *BBox) Transform(m *linear.M4) BBox {
	r := BBox{
		Min: linear.V3{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: linear.V3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
	for i := range 8 {
		p := linear.V4{b.Min[0], b.Min[1], b.Min[2], 1}
		for j := range 3 {
			if i&(1<<j) != 0 {
				p[j] = b.Max[j]
			}
		}
		p.Mul(m, &p)
		q := linear.V3{p[0], p[1], p[2]}
		r.Min.Min(&r.Min, &q)
		r.Max.Max(&r.Max, &q)
	}
	return r
}

// IntersectRay reports whether the ray from origin along
// dir hits b, and the distance to the hit.
// A ray starting inside b hits at distance zero.
func (b *BBox) IntersectRay(origin, dir *linear.V3) (float32, bool) {
	tmin, tmax := float32(0), math32.Inf(1)
	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (b.Min[i] - origin[i]) * inv
		t1 := (b.Max[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmax = min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
