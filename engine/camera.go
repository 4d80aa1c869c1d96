// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/pbr/linear"
)

// Camera is a perspective camera.
// Its orientation is kept as pitch and yaw angles, so
// that it never rolls.
type Camera struct {
	// Position is the location of the viewer.
	// UpdateView must be called after changing it.
	Position linear.V3

	pitch, yaw float32

	fov, aspect float32
	near, far   float32

	view linear.M4
	proj linear.M4
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 { return deg * math32.Pi / 180 }

// NewPerspective creates a camera at eye looking at the
// point at.
// fov is the vertical field of view in degrees.
func NewPerspective(width, height int, eye, at, up linear.V3, near, far, fov float32) *Camera {
	c := &Camera{fov: fov, near: near, far: far}
	c.LookAt(eye, at, up)
	c.SetAspect(width, height)
	return c
}

// LookAt places the camera at eye, looking at the point
// at. It resets the pitch and yaw angles.
func (c *Camera) LookAt(eye, at, up linear.V3) {
	c.Position = eye
	c.view.LookAt(&eye, &at, &up)
	var dir linear.V3
	dir.Sub(&at, &eye)
	dir.Norm(&dir)
	c.pitch = math32.Asin(-dir[1])
	c.yaw = math32.Atan2(dir[0], -dir[2])
}

// SetAspect updates the projection for a viewport of
// the given size.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.proj.Perspective(Radians(c.fov), c.aspect, c.near, c.far)
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float32) {
	c.fov = fov
	c.proj.Perspective(Radians(c.fov), c.aspect, c.near, c.far)
}

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return c.fov }

// Aspect returns the aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// Near returns the distance to the near plane.
func (c *Camera) Near() float32 { return c.near }

// Far returns the distance to the far plane.
func (c *Camera) Far() float32 { return c.far }

// Pitch returns the rotation about the x axis, in
// radians.
func (c *Camera) Pitch() float32 { return c.pitch }

// Yaw returns the rotation about the y axis, in radians.
func (c *Camera) Yaw() float32 { return c.yaw }

// Rotate changes the orientation by dpitch and dyaw
// radians.
// Yaw is wrapped to [0, 2π) and pitch is clamped to
// [-π/2, π/2]. It calls UpdateView.
func (c *Camera) Rotate(dpitch, dyaw float32) {
	c.pitch += dpitch
	c.yaw -= dyaw
	c.yaw = math32.Mod(c.yaw, 2*math32.Pi)
	if c.yaw < 0 {
		c.yaw += 2 * math32.Pi
	}
	c.pitch = max(-math32.Pi/2, min(c.pitch, math32.Pi/2))
	c.UpdateView()
}

// UpdateView recomputes the view matrix from the
// position and orientation.
func (c *Camera) UpdateView() {
	var rx, ry, t linear.M4
	rx.RotateX(c.pitch)
	ry.RotateY(c.yaw)
	t.Translate(-c.Position[0], -c.Position[1], -c.Position[2])
	c.view.Mul(&rx, &ry)
	c.view.Mul(&c.view, &t)
}

// Move moves the camera dist units along dir.
// It does nothing if dir is the zero vector.
func (c *Camera) Move(dir linear.V3, dist float32) {
	if dir.Len() == 0 {
		return
	}
	dir.Norm(&dir)
	dir.Scale(dist, &dir)
	c.Position.Add(&c.Position, &dir)
	c.UpdateView()
}

// Right returns the camera's right vector.
func (c *Camera) Right() linear.V3 { return linear.V3{c.view[0][0], c.view[1][0], c.view[2][0]} }

// Up returns the camera's up vector.
func (c *Camera) Up() linear.V3 { return linear.V3{c.view[0][1], c.view[1][1], c.view[2][1]} }

// Front returns the camera's z axis, which points
// away from the view direction.
func (c *Camera) Front() linear.V3 { return linear.V3{c.view[0][2], c.view[1][2], c.view[2][2]} }

// View returns the view matrix.
func (c *Camera) View() *linear.M4 { return &c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() *linear.M4 { return &c.proj }

// ViewProjection returns the projection matrix times the
// view matrix.
func (c *Camera) ViewProjection() (m linear.M4) {
	m.Mul(&c.proj, &c.view)
	return
}

// Ray returns the world-space ray through the pixel
// (x, y) of a viewport of the given size. y grows downwards.
func (c *Camera) Ray(x, y float32, width, height int) (origin, dir linear.V3) {
	ndc := linear.V4{2*x/float32(width) - 1, 1 - 2*y/float32(height), -1, 1}
	var ip, iv linear.M4
	ip.Invert(&c.proj)
	iv.Invert(&c.view)
	var eye, world linear.V4
	eye.Mul(&ip, &ndc)
	eye = linear.V4{eye[0], eye[1], -1, 0}
	world.Mul(&iv, &eye)
	dir = linear.V3{world[0], world[1], world[2]}
	dir.Norm(&dir)
	return c.Position, dir
}
