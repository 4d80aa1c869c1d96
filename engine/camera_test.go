// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/gviegas/pbr/linear"
)

func TestCameraLookAt(t *testing.T) {
	up := linear.V3{0, 1, 0}
	for _, x := range [...]struct{ eye, at linear.V3 }{
		{linear.V3{-3, 3, -3}, linear.V3{}},
		{linear.V3{0, 0, 5}, linear.V3{}},
		{linear.V3{10, -2, 1}, linear.V3{0, 1, -4}},
		{linear.V3{1, 1, 1}, linear.V3{2, 1, 1}},
	} {
		c := NewPerspective(1920, 1080, x.eye, x.at, up, 0.1, 500, 60)
		var want linear.M4
		want.LookAt(&x.eye, &x.at, &up)
		c.UpdateView()
		if !nearlyM4(c.View(), &want) {
			t.Fatalf("Camera.UpdateView: %v -> %v\nhave %v\nwant %v", x.eye, x.at, *c.View(), want)
		}
		if c.Position != x.eye {
			t.Fatalf("Camera.Position:\nhave %v\nwant %v", c.Position, x.eye)
		}
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewPerspective(1920, 1080, linear.V3{0, 0, 5}, linear.V3{}, linear.V3{0, 1, 0}, 0.1, 500, 60)
	if c.FOV() != 60 || c.Near() != 0.1 || c.Far() != 500 {
		t.Fatalf("Camera: unexpected parameters %v %v %v", c.FOV(), c.Near(), c.Far())
	}
	if a := c.Aspect(); math32.Abs(a-16.0/9) > epsilon {
		t.Fatalf("Camera.Aspect:\nhave %v\nwant %v", a, 16.0/9)
	}
	var want linear.M4
	want.Perspective(Radians(60), 16.0/9, 0.1, 500)
	if !nearlyM4(c.Projection(), &want) {
		t.Fatalf("Camera.Projection:\nhave %v\nwant %v", *c.Projection(), want)
	}

	c.SetAspect(0, 100)
	if a := c.Aspect(); math32.Abs(a-16.0/9) > epsilon {
		t.Fatal("Camera.SetAspect: zero width changed the aspect")
	}
	c.SetFOV(90)
	want.Perspective(Radians(90), c.Aspect(), 0.1, 500)
	if !nearlyM4(c.Projection(), &want) {
		t.Fatalf("Camera.SetFOV:\nhave %v\nwant %v", *c.Projection(), want)
	}

	vp := c.ViewProjection()
	want.Mul(c.Projection(), c.View())
	if vp != want {
		t.Fatalf("Camera.ViewProjection:\nhave %v\nwant %v", vp, want)
	}
}

func TestCameraRotate(t *testing.T) {
	c := NewPerspective(1, 1, linear.V3{0, 0, 5}, linear.V3{}, linear.V3{0, 1, 0}, 0.1, 10, 60)
	if math32.Abs(c.Pitch()) > epsilon || math32.Abs(c.Yaw()) > epsilon {
		t.Fatalf("Camera: looking down -z\nhave pitch %v, yaw %v\nwant 0, 0", c.Pitch(), c.Yaw())
	}

	c.Rotate(10, 0)
	if p := c.Pitch(); p != math32.Pi/2 {
		t.Fatalf("Camera.Rotate: pitch\nhave %v\nwant %v", p, math32.Pi/2)
	}
	c.Rotate(-20, 0)
	if p := c.Pitch(); p != -math32.Pi/2 {
		t.Fatalf("Camera.Rotate: pitch\nhave %v\nwant %v", p, -math32.Pi/2)
	}
	c.Rotate(math32.Pi/2, 0)

	for _, dyaw := range []float32{1, 3, -7, 20, -0.5} {
		c.Rotate(0, dyaw)
		if y := c.Yaw(); y < 0 || y >= 2*math32.Pi {
			t.Fatalf("Camera.Rotate(0, %v): yaw %v out of range", dyaw, y)
		}
	}

	// A positive yaw delta turns the camera to the left.
	c = NewPerspective(1, 1, linear.V3{}, linear.V3{0, 0, -1}, linear.V3{0, 1, 0}, 0.1, 10, 60)
	c.Rotate(0, math32.Pi/2)
	front := c.Front()
	if !nearlyV3(front, linear.V3{1, 0, 0}) {
		t.Fatalf("Camera.Rotate: front\nhave %v\nwant %v", front, linear.V3{1, 0, 0})
	}
}

func TestCameraMove(t *testing.T) {
	c := NewPerspective(1, 1, linear.V3{0, 0, 5}, linear.V3{}, linear.V3{0, 1, 0}, 0.1, 10, 60)
	view := *c.View()
	c.Move(linear.V3{}, 10)
	if c.Position != (linear.V3{0, 0, 5}) || *c.View() != view {
		t.Fatal("Camera.Move: zero direction moved the camera")
	}
	c.Move(linear.V3{2, 0, 0}, 3)
	if !nearlyV3(c.Position, linear.V3{3, 0, 5}) {
		t.Fatalf("Camera.Move:\nhave %v\nwant %v", c.Position, linear.V3{3, 0, 5})
	}
	if r := c.Right(); !nearlyV3(r, linear.V3{1, 0, 0}) {
		t.Fatalf("Camera.Right:\nhave %v", r)
	}
	if u := c.Up(); !nearlyV3(u, linear.V3{0, 1, 0}) {
		t.Fatalf("Camera.Up:\nhave %v", u)
	}
	if w := c.View()[3]; !nearlyV3(linear.V3{w[0], w[1], w[2]}, linear.V3{-3, 0, -5}) {
		t.Fatalf("Camera.View: translation\nhave %v", w)
	}
}

func TestCameraRay(t *testing.T) {
	c := NewPerspective(800, 600, linear.V3{0, 0, 5}, linear.V3{}, linear.V3{0, 1, 0}, 0.1, 100, 60)
	origin, dir := c.Ray(400, 300, 800, 600)
	if origin != c.Position {
		t.Fatalf("Camera.Ray: origin\nhave %v\nwant %v", origin, c.Position)
	}
	if !nearlyV3(dir, linear.V3{0, 0, -1}) {
		t.Fatalf("Camera.Ray: center\nhave %v\nwant %v", dir, linear.V3{0, 0, -1})
	}
	// The top edge is fov/2 above the center.
	_, dir = c.Ray(400, 0, 800, 600)
	if a := math32.Atan2(dir[1], -dir[2]); math32.Abs(a-Radians(30)) > 1e-4 {
		t.Fatalf("Camera.Ray: top edge angle\nhave %v\nwant %v", a, Radians(30))
	}
	_, dir = c.Ray(0, 300, 800, 600)
	if dir[0] >= 0 {
		t.Fatalf("Camera.Ray: left edge\nhave %v", dir)
	}
}
