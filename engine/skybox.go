// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"fmt"
	"path/filepath"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/engine/internal/shader"
	"github.com/gviegas/pbr/engine/mesh"
	"github.com/gviegas/pbr/img"
	"github.com/gviegas/pbr/rhi"
)

// Environment map files, relative to a skybox folder.
const (
	CubeFile       = "cube.cube"
	IrradianceFile = "irradiance.cube"
	GGXFile        = "ggx.cube"
)

// Skybox is the environment of a scene.
// Cube is drawn around the viewer; Irradiance and GGX
// hold the diffuse and prefiltered specular lighting
// derived from it.
type Skybox struct {
	Name       string
	Program    int
	Cube       int
	Irradiance int
	GGX        int

	geom *mesh.Geometry
}

// NewSkybox creates a skybox that draws cubemap cube
// with program prog. It has no lighting maps.
func NewSkybox(prog, cube int) *Skybox {
	return &Skybox{Program: prog, Cube: cube, Irradiance: -1, GGX: -1}
}

// LoadSkybox loads the environment maps in folder.
// The skybox program is taken from res, and the new
// cubemaps are cached as "sky-", "irradiance-" and
// "ggx-" followed by folder.
func LoadSkybox(d *rhi.Device, res *Resources, folder string) (*Skybox, error) {
	prog, ok := res.Program(SkyboxProgram)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProgram, SkyboxProgram)
	}
	sky := NewSkybox(prog, -1)
	sky.Name = filepath.Base(folder)

	plain := clampSampler(driver.FLinear)
	mips := clampSampler(driver.FLinearMipLinear)
	for _, x := range [...]struct {
		file, key string
		s         rhi.Sampler
		dst       *int
	}{
		{CubeFile, "sky-", plain, &sky.Cube},
		{IrradianceFile, "irradiance-", plain, &sky.Irradiance},
		{GGXFile, "ggx-", mips, &sky.GGX},
	} {
		if tex, ok := res.Texture(x.key + folder); ok {
			*x.dst = tex
			continue
		}
		c, err := img.LoadCUBE(filepath.Join(folder, x.file))
		if err != nil {
			return nil, err
		}
		tex, err := d.CreateCubemap(c, x.s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", x.file, err)
		}
		*x.dst = tex
		res.AddTexture(x.key+folder, tex)
	}
	return sky, nil
}

// Initialize uploads the cube geometry.
func (s *Skybox) Initialize(d *rhi.Device) {
	if s.geom == nil {
		s.geom = mesh.UnitCube()
	}
	if s.geom.VertexArray < 0 {
		d.UploadGeometry(s.geom)
	}
}

// Draw draws the environment cube.
// Initialize must have been called.
func (s *Skybox) Draw(d *rhi.Device) {
	if s.geom == nil {
		return
	}
	d.UseProgram(s.Program)
	d.BindTextureUnit(shader.EnvMapUnit, s.Cube)
	d.DrawGeometry(s.geom.VertexArray)
	d.UseProgram(0)
}

// Release deletes the cube geometry.
// Textures are owned by Resources.
func (s *Skybox) Release(d *rhi.Device) {
	if s.geom != nil && s.geom.VertexArray >= 0 {
		d.DeleteVertexArray(s.geom.VertexArray)
		s.geom.VertexArray = -1
	}
}
