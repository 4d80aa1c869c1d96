// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"testing"
)

// These are the per-frame operations of a moving camera.

func BenchmarkView(b *testing.B) {
	eye := V3{2, 1, 5}
	center := V3{0, 0, 0}
	up := V3{0, 1, 0}
	var v, p, vp M4
	p.Perspective(0.785, 16.0/9.0, 0.1, 1000)
	b.Run("M4.LookAt", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v.LookAt(&eye, &center, &up)
		}
	})
	b.Run("M4.Mul", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			vp.Mul(&p, &v)
		}
	})
	b.Log(vp)
}

func BenchmarkInvert(b *testing.B) {
	var m, n M4
	m.Translate(3, -1, 2)
	var inv M3
	var nm M3
	b.Run("M4.Invert", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			n.Invert(&m)
		}
	})
	b.Run("M3.Normal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			nm.Normal(&m)
		}
	})
	b.Run("M3.Invert", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			inv.Invert(&nm)
		}
	})
	b.Log(n, inv)
}

func BenchmarkRotate(b *testing.B) {
	var q Q
	var m M4
	axis := V3{0, 1, 0}
	v := V3{1, 0, 0}
	var w V3
	b.Run("Q.Rotate", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			q.Rotate(float32(i%628)*0.01, &axis)
		}
	})
	b.Run("Q.Apply", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			q.Apply(&w, &v)
		}
	})
	b.Run("M4.RotateQ", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			m.RotateQ(&q)
		}
	})
	b.Log(w, m)
}

func BenchmarkNorm(b *testing.B) {
	v := V3{-2, 3, 9}
	var n V3
	for i := 0; i < b.N; i++ {
		n.Norm(&v)
	}
	b.Log(n)
}
