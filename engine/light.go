// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/pbr/engine/internal/shader"
	"github.com/gviegas/pbr/linear"
)

// LightData is the per-light record uploaded to the GPU.
type LightData = shader.LightLayout

// Light is a light source.
// It is implemented by *PointLight, *SpotLight and
// *DirectionalLight.
type Light interface {
	// Data returns the GPU record of the light.
	Data() LightData

	light() *Emitter
}

// Emitter holds the properties common to every light.
type Emitter struct {
	On        bool
	Intensity float32
	Color     linear.V3
}

func (e *Emitter) light() *Emitter { return e }

func (e *Emitter) data(l *LightData, typ int32) {
	var emis linear.V3
	emis.Scale(e.Intensity, &e.Color)
	l.SetOn(e.On)
	l.SetType(typ)
	l.SetEmission(&emis)
}

// down is the direction of unrotated lights.
var down = linear.V3{0, -1, 0}

// PointLight is an omnidirectional, positional light.
type PointLight struct {
	Emitter
	Position linear.V3
}

// NewPointLight creates a point light that is on.
func NewPointLight(position, color linear.V3, intensity float32) *PointLight {
	return &PointLight{Emitter{true, intensity, color}, position}
}

// Data implements Light.
func (l *PointLight) Data() (d LightData) {
	l.data(&d, shader.PointLight)
	d.SetPosition(&l.Position)
	return
}

// Default spot light cone, in degrees.
const (
	DefaultCutoff      = 35
	DefaultOuterCutoff = 40
)

// SpotLight is a positional light emitting in a cone.
// Cone angles are in radians.
type SpotLight struct {
	Emitter
	Position    linear.V3
	Orientation linear.Q
	Cutoff      float32
	OuterCutoff float32
}

// NewSpotLight creates a spot light that is on and
// points downwards, with the default cone.
func NewSpotLight(position, color linear.V3, intensity float32) *SpotLight {
	l := &SpotLight{
		Emitter:     Emitter{true, intensity, color},
		Position:    position,
		Cutoff:      Radians(DefaultCutoff),
		OuterCutoff: Radians(DefaultOuterCutoff),
	}
	l.Orientation.I()
	return l
}

// Direction returns the direction of the cone's axis.
func (l *SpotLight) Direction() (d linear.V3) {
	l.Orientation.Apply(&d, &down)
	return
}

// Data implements Light.
// Only the inner cutoff is sent.
func (l *SpotLight) Data() (d LightData) {
	l.data(&d, shader.SpotLight)
	d.SetPosition(&l.Position)
	d.SetAux(l.Cutoff)
	return
}

// DirectionalLight is a light infinitely far away.
type DirectionalLight struct {
	Emitter
	Orientation linear.Q
}

// NewDirectionalLight creates a directional light that
// is on and points downwards.
func NewDirectionalLight(color linear.V3, intensity float32) *DirectionalLight {
	l := &DirectionalLight{Emitter: Emitter{true, intensity, color}}
	l.Orientation.I()
	return l
}

// Direction returns the direction of the light.
func (l *DirectionalLight) Direction() (d linear.V3) {
	l.Orientation.Apply(&d, &down)
	return
}

// SetDirection orients the light towards dir.
func (l *DirectionalLight) SetDirection(dir linear.V3) { l.Orientation = orient(dir) }

// Data implements Light.
// The direction is stored in place of the position.
func (l *DirectionalLight) Data() (d LightData) {
	l.data(&d, shader.DirectLight)
	dir := l.Direction()
	d.SetPosition(&dir)
	return
}

// orient returns the rotation that takes the down
// vector to dir.
func orient(dir linear.V3) (q linear.Q) {
	if dir.Len() == 0 {
		q.I()
		return
	}
	dir.Norm(&dir)
	d := down.Dot(&dir)
	if d < -1+1e-6 {
		// Opposite vectors; any perpendicular axis.
		q.Rotate(math32.Pi, &linear.V3{1, 0, 0})
		return
	}
	q.V.Cross(&down, &dir)
	q.R = 1 + d
	q.Norm(&q)
	return
}
