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

// Resources caches GPU objects by name.
// Entries are shared; removing one from the cache does not
// delete the GPU object (see Release).
type Resources struct {
	programs   map[string]int
	textures   map[string]int
	geometries map[string]*mesh.Geometry
	shapes     map[string]Shape
}

// NewResources creates an empty cache.
func NewResources() *Resources {
	return &Resources{
		programs:   make(map[string]int),
		textures:   make(map[string]int),
		geometries: make(map[string]*mesh.Geometry),
		shapes:     make(map[string]Shape),
	}
}

// TextureSampler is the sampler of textures loaded by
// LoadTexture.
func TextureSampler() rhi.Sampler {
	return rhi.Sampler{
		WrapS: driver.WRepeat,
		WrapT: driver.WRepeat,
		WrapR: driver.WRepeat,
		Min:   driver.FLinearMipLinear,
		Mag:   driver.FLinear,
	}
}

func clampSampler(minFilter driver.Filter) rhi.Sampler {
	return rhi.Sampler{
		WrapS: driver.WClampEdge,
		WrapT: driver.WClampEdge,
		WrapR: driver.WClampEdge,
		Min:   minFilter,
		Mag:   driver.FLinear,
	}
}

// Init links the built-in programs and loads the BRDF
// look-up texture.
// Link failures are also passed to d.Fail.
func (r *Resources) Init(d *rhi.Device, config *Config) error {
	if config == nil {
		config = &cfg
	}
	for _, desc := range shader.Programs {
		prog, err := LinkDesc(d, desc)
		if err != nil {
			d.Fail(err)
			return err
		}
		r.AddProgram(desc.Name, prog)
	}
	im, err := img.Load(filepath.Join(config.AssetRoot, config.BRDF))
	if err != nil {
		return fmt.Errorf(prefix+"BRDF texture: %w", err)
	}
	tex, err := d.CreateTexture(im, clampSampler(driver.FLinear))
	if err != nil {
		return fmt.Errorf(prefix+"BRDF texture: %w", err)
	}
	r.AddTexture(BRDFTexture, tex)
	return nil
}

// LinkDesc builds the program described by desc and
// assigns its fixed sampler units and block bindings.
func LinkDesc(d *rhi.Device, desc *shader.ProgramDesc) (int, error) {
	set := rhi.ShaderSet{Name: desc.Name}
	for _, s := range desc.Sources {
		src, err := shader.Read(s.File)
		if err != nil {
			return -1, err
		}
		set.Add(s.Stage, s.File, src)
	}
	prog, err := d.LinkProgram(set)
	if err != nil {
		return -1, err
	}
	prev := d.CurrentProgram()
	d.UseProgram(prog)
	for name, unit := range desc.Samplers {
		d.SetSampler(name, unit)
	}
	for name, slot := range desc.Blocks {
		d.SetBufferBlock(name, slot)
	}
	d.UseProgram(prev)
	return prog, nil
}

// LoadTexture creates a 2D texture from the image file at
// path, with a full mip chain.
// Textures are cached by path.
func (r *Resources) LoadTexture(d *rhi.Device, path string) (int, error) {
	if t, ok := r.textures[path]; ok {
		return t, nil
	}
	im, err := img.Load(path)
	if err != nil {
		return -1, err
	}
	t, err := d.CreateTexture(im, TextureSampler())
	if err != nil {
		return -1, fmt.Errorf("%s: %w", path, err)
	}
	if len(im.Levels) == 1 {
		d.GenerateMipmaps(t)
	}
	r.textures[path] = t
	return t, nil
}

// AddProgram caches a program.
func (r *Resources) AddProgram(name string, prog int) { r.programs[name] = prog }

// AddTexture caches a texture.
func (r *Resources) AddTexture(name string, tex int) { r.textures[name] = tex }

// AddGeometry caches a geometry.
func (r *Resources) AddGeometry(name string, g *mesh.Geometry) { r.geometries[name] = g }

// AddShape caches a shape.
func (r *Resources) AddShape(name string, s Shape) { r.shapes[name] = s }

// Program returns a cached program.
func (r *Resources) Program(name string) (int, bool) { p, ok := r.programs[name]; return p, ok }

// Texture returns a cached texture.
func (r *Resources) Texture(name string) (int, bool) { t, ok := r.textures[name]; return t, ok }

// Geometry returns a cached geometry.
func (r *Resources) Geometry(name string) (*mesh.Geometry, bool) {
	g, ok := r.geometries[name]
	return g, ok
}

// Shape returns a cached shape.
func (r *Resources) Shape(name string) (Shape, bool) { s, ok := r.shapes[name]; return s, ok }

// DeleteProgram removes a program from the cache.
func (r *Resources) DeleteProgram(name string) bool { return remove(r.programs, name) }

// DeleteTexture removes a texture from the cache.
func (r *Resources) DeleteTexture(name string) bool { return remove(r.textures, name) }

// DeleteGeometry removes a geometry from the cache.
func (r *Resources) DeleteGeometry(name string) bool { return remove(r.geometries, name) }

// DeleteShape removes a shape from the cache.
func (r *Resources) DeleteShape(name string) bool { return remove(r.shapes, name) }

func remove[T any](m map[string]T, name string) bool {
	if _, ok := m[name]; !ok {
		return false
	}
	delete(m, name)
	return true
}

// Release deletes every cached GPU object and empties
// the cache.
func (r *Resources) Release(d *rhi.Device) {
	for _, p := range r.programs {
		d.DeleteProgram(p)
	}
	for _, t := range r.textures {
		d.DeleteTexture(t)
	}
	for _, g := range r.geometries {
		if g.VertexArray >= 0 {
			d.DeleteVertexArray(g.VertexArray)
			g.VertexArray = -1
		}
	}
	clear(r.programs)
	clear(r.textures)
	clear(r.geometries)
	clear(r.shapes)
}
