// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/pbr/linear"
)

// Transform places an object in the world.
type Transform struct {
	Position linear.V3
	Rotation linear.Q
	Scale    linear.V3

	world  linear.M4
	normal linear.M3
}

// Identity returns the identity transform.
func Identity() (t Transform) {
	t.Rotation.I()
	t.Scale = linear.V3{1, 1, 1}
	t.world.I()
	t.normal.I()
	return
}

// SetScale sets the scale on every axis.
func (t *Transform) SetScale(x, y, z float32) { t.Scale = linear.V3{x, y, z} }

// Update recomputes the world and normal matrices as
// translation × rotation × scale.
func (t *Transform) Update() {
	var tr, r, s linear.M4
	tr.Translate(t.Position[0], t.Position[1], t.Position[2])
	r.RotateQ(&t.Rotation)
	s.Scale(t.Scale[0], t.Scale[1], t.Scale[2])
	t.world.Mul(&tr, &r)
	t.world.Mul(&t.world, &s)
	t.normal.Normal(&t.world)
}

// World returns the world matrix computed by the last
// call to Update.
func (t *Transform) World() *linear.M4 { return &t.world }

// Normal returns the normal matrix computed by the last
// call to Update.
func (t *Transform) Normal() *linear.M3 { return &t.normal }
