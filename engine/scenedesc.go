// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gviegas/pbr/engine/material"
	"github.com/gviegas/pbr/linear"
	"github.com/gviegas/pbr/rhi"
)

// SceneDesc describes the contents of a scene.
// It is usually read from a YAML document:
//
//	skyboxes: [Pinetree, Ruins]
//	skybox: 1
//	objects:
//	  - name: gun
//	    scale: [5.5, 5.5, 5.5]
//	  - name: ball
//	    shape: sphere
//	    radius: 2
//	    position: [0, 5, 0]
//	lights:
//	  - type: directional
//	    direction: [-1, -1, -1]
//	camera:
//	  eye: [-3, 3, -3]
//	  fov: 60
type SceneDesc struct {
	// Skybox folders, relative to <root>/PBR.
	Skyboxes []string `yaml:"skyboxes"`
	// Index of the initial skybox.
	Skybox  int          `yaml:"skybox"`
	Objects []ObjectDesc `yaml:"objects"`
	Lights  []LightDesc  `yaml:"lights"`
	Camera  CameraDesc   `yaml:"camera"`
}

// Shape kinds of ObjectDesc.
const (
	MeshShape   = "mesh"
	SphereShape = "sphere"
)

// ObjectDesc describes a shape.
// Meshes are loaded from <root>/Objects/<name>/<name>.obj.
// The material is read from
// <root>/Objects/<material>/material.xml, where material
// defaults to the name for meshes; spheres without a
// material use the fallback parameters.
type ObjectDesc struct {
	Name     string     `yaml:"name"`
	Shape    string     `yaml:"shape,omitempty"`
	Material string     `yaml:"material,omitempty"`
	Radius   float32    `yaml:"radius,omitempty"`
	Position linear.V3  `yaml:"position"`
	Scale    *linear.V3 `yaml:"scale,omitempty"`
}

// Light types of LightDesc.
const (
	PointLightType       = "point"
	SpotLightType        = "spot"
	DirectionalLightType = "directional"
)

// LightDesc describes a light.
// Cone angles are in degrees.
type LightDesc struct {
	Type        string    `yaml:"type"`
	Position    linear.V3 `yaml:"position,omitempty"`
	Direction   linear.V3 `yaml:"direction,omitempty"`
	Color       linear.V3 `yaml:"color"`
	Intensity   float32   `yaml:"intensity"`
	Cutoff      float32   `yaml:"cutoff,omitempty"`
	OuterCutoff float32   `yaml:"outer_cutoff,omitempty"`
}

// CameraDesc describes a perspective camera.
type CameraDesc struct {
	Eye  linear.V3 `yaml:"eye"`
	At   linear.V3 `yaml:"at"`
	Up   linear.V3 `yaml:"up"`
	FOV  float32   `yaml:"fov"`
	Near float32   `yaml:"near"`
	Far  float32   `yaml:"far"`
}

// DefaultSceneDesc returns the demo scene.
func DefaultSceneDesc() *SceneDesc {
	one := func(s float32) *linear.V3 { return &linear.V3{s, s, s} }
	return &SceneDesc{
		Skyboxes: []string{"Pinetree", "Ruins", "WalkOfFame", "WinterForest"},
		Skybox:   1,
		Objects: []ObjectDesc{
			{Name: "sphere", Position: linear.V3{-20, 0, 0}},
			{Name: "gun", Scale: one(5.5)},
			{Name: "preview", Position: linear.V3{20, 0, 0}, Scale: one(1)},
			{Name: "specular", Position: linear.V3{-10, 0, 0}, Scale: one(1)},
			{Name: "rough", Position: linear.V3{10, 0, 0}, Scale: one(1)},
		},
		Lights: []LightDesc{
			{Type: DirectionalLightType, Direction: linear.V3{-1, -1, -1}, Color: linear.V3{1, 1, 1}, Intensity: 1},
		},
		Camera: CameraDesc{
			Eye:  linear.V3{-3, 3, -3},
			Up:   linear.V3{0, 1, 0},
			FOV:  60,
			Near: 0.1,
			Far:  500,
		},
	}
}

// LoadSceneDesc decodes a YAML scene description.
// Unknown fields are an error.
func LoadSceneDesc(r io.Reader) (*SceneDesc, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var desc SceneDesc
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf(prefix+"scene description: %w", err)
	}
	if err := desc.check(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// LoadSceneDescFile decodes the YAML scene description
// at path.
func LoadSceneDescFile(path string) (*SceneDesc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	desc, err := LoadSceneDesc(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

func (desc *SceneDesc) check() error {
	if n := len(desc.Skyboxes); n > 0 && (desc.Skybox < 0 || desc.Skybox >= n) {
		return fmt.Errorf(prefix+"skybox index %d out of range [0, %d)", desc.Skybox, n)
	}
	names := make(map[string]bool, len(desc.Objects))
	for i := range desc.Objects {
		o := &desc.Objects[i]
		switch o.Shape {
		case "", MeshShape:
		case SphereShape:
			if o.Radius <= 0 {
				return fmt.Errorf(prefix+"object %s: non-positive radius", o.Name)
			}
		default:
			return fmt.Errorf(prefix+"object %s: unknown shape %q", o.Name, o.Shape)
		}
		if o.Name == "" {
			return fmt.Errorf(prefix+"object %d: missing name", i)
		}
		// Shapes and geometries are cached by name.
		if names[o.Name] {
			return fmt.Errorf(prefix+"object %s: duplicate name", o.Name)
		}
		names[o.Name] = true
	}
	for i := range desc.Lights {
		switch t := desc.Lights[i].Type; t {
		case PointLightType, SpotLightType, DirectionalLightType:
		default:
			return fmt.Errorf(prefix+"light %d: unknown type %q", i, t)
		}
	}
	return nil
}

// NewLight creates the light described by ld.
func (ld *LightDesc) NewLight() Light {
	switch ld.Type {
	case SpotLightType:
		l := NewSpotLight(ld.Position, ld.Color, ld.Intensity)
		if ld.Direction.Len() > 0 {
			l.Orientation = orient(ld.Direction)
		}
		if ld.Cutoff > 0 {
			l.Cutoff = Radians(ld.Cutoff)
		}
		if ld.OuterCutoff > 0 {
			l.OuterCutoff = Radians(ld.OuterCutoff)
		}
		return l
	case DirectionalLightType:
		l := NewDirectionalLight(ld.Color, ld.Intensity)
		l.SetDirection(ld.Direction)
		return l
	}
	return NewPointLight(ld.Position, ld.Color, ld.Intensity)
}

// NewCamera creates the camera described by cd for a
// viewport of the given size.
func (cd *CameraDesc) NewCamera(width, height int) *Camera {
	up := cd.Up
	if up.Len() == 0 {
		up = linear.V3{0, 1, 0}
	}
	return NewPerspective(width, height, cd.Eye, cd.At, up, cd.Near, cd.Far, cd.FOV)
}

// World is a scene built from a SceneDesc.
type World struct {
	Scene    *Scene
	Camera   *Camera
	Skyboxes []*Skybox
	Current  int
}

// SetSkybox makes skybox i the environment of the scene.
// It reports whether i is valid.
func (w *World) SetSkybox(i int) bool {
	if i < 0 || i >= len(w.Skyboxes) {
		return false
	}
	w.Current = i
	w.Scene.SetEnvironment(w.Skyboxes[i])
	return true
}

// Build loads every asset named by desc, relative to
// root, and assembles the scene.
// res must have been initialized.
func (desc *SceneDesc) Build(d *rhi.Device, res *Resources, root string, width, height int) (*World, error) {
	if err := desc.check(); err != nil {
		return nil, err
	}
	w := &World{Scene: new(Scene)}
	// Cached objects are left to res.Release.
	fail := func(err error) (*World, error) {
		for _, sky := range w.Skyboxes {
			sky.Release(d)
		}
		return nil, err
	}

	for _, name := range desc.Skyboxes {
		sky, err := LoadSkybox(d, res, filepath.Join(root, "PBR", name))
		if err != nil {
			return fail(err)
		}
		sky.Initialize(d)
		w.Skyboxes = append(w.Skyboxes, sky)
	}

	w.Camera = desc.Camera.NewCamera(width, height)
	w.Scene.AddCamera(w.Camera)

	for i := range desc.Objects {
		sh, err := desc.Objects[i].build(d, res, root)
		if err != nil {
			return fail(err)
		}
		w.Scene.AddShape(sh)
	}

	for i := range desc.Lights {
		w.Scene.AddLight(desc.Lights[i].NewLight())
	}

	if len(w.Skyboxes) > 0 {
		w.SetSkybox(desc.Skybox)
	}
	return w, nil
}

func (o *ObjectDesc) build(d *rhi.Device, res *Resources, root string) (Shape, error) {
	_, dupShape := res.Shape(o.Name)
	_, dupGeom := res.Geometry(o.Name)
	if dupShape || dupGeom {
		return nil, fmt.Errorf(prefix+"object %s: already in resources", o.Name)
	}
	var sh Shape
	matName := o.Material
	if o.Shape == SphereShape {
		sh = NewSphere(o.Name, o.Position, o.Radius)
	} else {
		dir := filepath.Join(root, "Objects", o.Name)
		m, err := LoadMesh(o.Name, filepath.Join(dir, o.Name+".obj"))
		if err != nil {
			return nil, err
		}
		m.Transform().Position = o.Position
		sh = m
		if matName == "" {
			matName = o.Name
		}
	}
	if o.Scale != nil {
		sh.Transform().Scale = *o.Scale
	}

	pm := material.NewParameterMap()
	dir := filepath.Join(root, "Objects", matName)
	if matName != "" {
		var err error
		if pm, err = material.LoadFile(filepath.Join(dir, "material.xml")); err != nil {
			return nil, err
		}
	}
	mat, err := BuildMaterial(d, res, dir, pm)
	if err != nil {
		return nil, err
	}
	sh.SetMaterial(mat)

	if err := sh.Prepare(d); err != nil {
		return nil, fmt.Errorf(prefix+"object %s: %w", o.Name, err)
	}
	res.AddShape(o.Name, sh)
	res.AddGeometry(o.Name, sh.base().geom)
	return sh, nil
}
