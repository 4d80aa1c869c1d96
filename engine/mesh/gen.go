// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/pbr/linear"
)

// Sphere generates an indexed UV sphere centered at the
// origin.
// The poles are closed by single triangles, so the first
// and last rows produce no degenerate faces.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	row := widthSegments + 1
	verts := make([]Vertex, 0, row*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sv, cv := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			su, cu := math32.Sincos(u * 2 * math32.Pi)
			var vert Vertex
			vert.Position = linear.V3{-radius * cu * sv, radius * cv, radius * su * sv}
			vert.Normal.Norm(&vert.Position)
			vert.UV = linear.V2{u, 1 - v}
			verts = append(verts, vert)
		}
	}
	var idx []uint32
	for iy := range heightSegments {
		for ix := range widthSegments {
			a := uint32(iy*row + ix + 1)
			b := uint32(iy*row + ix)
			c := uint32((iy+1)*row + ix)
			d := uint32((iy+1)*row + ix + 1)
			if iy != 0 {
				idx = append(idx, a, b, d)
			}
			if iy != heightSegments-1 {
				idx = append(idx, b, c, d)
			}
		}
	}
	g := New(verts, idx)
	g.ComputeTangents()
	return g
}

// unitCube holds the positions of a cube spanning [-1, 1]
// on every axis, as 12 triangles wound clockwise when seen
// from outside.
// It is used to draw the skybox.
var unitCube = [36]linear.V3{
	// Back.
	{-1, -1, -1}, {1, 1, -1}, {1, -1, -1},
	{1, 1, -1}, {-1, -1, -1}, {-1, 1, -1},
	// Front.
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1},
	{1, 1, 1}, {-1, 1, 1}, {-1, -1, 1},
	// Left.
	{-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1},
	{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1},
	// Right.
	{1, 1, 1}, {1, -1, -1}, {1, 1, -1},
	{1, -1, -1}, {1, 1, 1}, {1, -1, 1},
	// Bottom.
	{-1, -1, -1}, {1, -1, -1}, {1, -1, 1},
	{1, -1, 1}, {-1, -1, 1}, {-1, -1, -1},
	// Top.
	{-1, 1, -1}, {1, 1, 1}, {1, 1, -1},
	{1, 1, 1}, {-1, 1, -1}, {-1, 1, 1},
}

// UnitCube generates the 36 positions of a non-indexed
// cube spanning [-1, 1]. Only positions are set.
func UnitCube() *Geometry {
	verts := make([]Vertex, len(unitCube))
	for i := range verts {
		verts[i].Position = unitCube[i]
	}
	return New(verts, nil)
}

// Box generates a non-indexed box of the given dimensions
// centered at the origin, with per-face normals, texture
// coordinates and tangents.
func Box(width, height, depth float32) *Geometry {
	verts := make([]Vertex, len(unitCube))
	half := linear.V3{width / 2, height / 2, depth / 2}
	for f := range 6 {
		tri := unitCube[f*6 : f*6+6]
		// The face normal is the axis shared by its
		// six positions.
		var n linear.V3
		for i := range n {
			if tri[0][i] == tri[1][i] && tri[1][i] == tri[2][i] {
				n[i] = tri[0][i]
			}
		}
		// Project onto the two remaining axes for UVs.
		var ua, va int
		switch {
		case n[0] != 0:
			ua, va = 2, 1
		case n[1] != 0:
			ua, va = 0, 2
		default:
			ua, va = 0, 1
		}
		for i, p := range tri {
			v := &verts[f*6+i]
			for j := range p {
				v.Position[j] = p[j] * half[j]
			}
			v.Normal = n
			v.UV = linear.V2{(p[ua] + 1) / 2, (1 - p[va]) / 2}
		}
	}
	g := New(verts, nil)
	g.ComputeTangents()
	return g
}
