// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"path/filepath"

	"github.com/gviegas/pbr/engine/internal/shader"
	"github.com/gviegas/pbr/engine/material"
	"github.com/gviegas/pbr/linear"
	"github.com/gviegas/pbr/rhi"
)

// Material fallbacks used by BuildMaterial.
var (
	FallbackDiffuse   = linear.V3{0.5, 0.5, 0.5}
	FallbackSpecular  = linear.V3{0.04, 0.04, 0.04}
	FallbackRoughness = float32(0.2)
	FallbackMetallic  = float32(0.5)
)

// PBRMaterial is a metallic-roughness material.
//
// Negative Diffuse, Metallic and Roughness factors make
// the program sample the corresponding texture instead.
// Texture handles are -1 when unset.
type PBRMaterial struct {
	Program int

	Diffuse   linear.V3
	Specular  linear.V3
	Metallic  float32
	Roughness float32

	DiffuseTex  int
	NormalTex   int
	MetallicTex int
	RoughTex    int

	// Image-based lighting. IrradianceTex and GGXTex are
	// set by Update.
	IrradianceTex int
	GGXTex        int
	BRDFTex       int
}

// NewPBRMaterial creates a material using the unreal
// program and BRDF texture of res.
// Every factor is initially negative and every texture
// unset; the specular color is 0.04.
func NewPBRMaterial(res *Resources) *PBRMaterial {
	m := &PBRMaterial{
		Program:       -1,
		Diffuse:       linear.V3{-1, -1, -1},
		Specular:      linear.V3{0.04, 0.04, 0.04},
		Metallic:      -1,
		Roughness:     -1,
		DiffuseTex:    -1,
		NormalTex:     -1,
		MetallicTex:   -1,
		RoughTex:      -1,
		IrradianceTex: -1,
		GGXTex:        -1,
		BRDFTex:       -1,
	}
	if res != nil {
		if p, ok := res.Program(UnrealProgram); ok {
			m.Program = p
		}
		if t, ok := res.Texture(BRDFTexture); ok {
			m.BRDFTex = t
		}
	}
	return m
}

// SetDiffuseTexture makes m sample its diffuse color
// from texture tex.
func (m *PBRMaterial) SetDiffuseTexture(tex int) {
	m.DiffuseTex = tex
	m.Diffuse = linear.V3{-1, -1, -1}
}

// SetMetallicTexture makes m sample its metalness from
// texture tex.
func (m *PBRMaterial) SetMetallicTexture(tex int) {
	m.MetallicTex = tex
	m.Metallic = -1
}

// SetRoughnessTexture makes m sample its roughness from
// texture tex.
func (m *PBRMaterial) SetRoughnessTexture(tex int) {
	m.RoughTex = tex
	m.Roughness = -1
}

// Update takes the irradiance and specular environment
// maps from sky.
func (m *PBRMaterial) Update(sky *Skybox) {
	m.IrradianceTex = sky.Irradiance
	m.GGXTex = sky.GGX
}

// Use makes m's program current.
func (m *PBRMaterial) Use(d *rhi.Device) { d.UseProgram(m.Program) }

// UploadData sets the material uniforms of the current
// program and binds m's textures.
func (m *PBRMaterial) UploadData(d *rhi.Device) {
	d.SetFloat("metallic", m.Metallic)
	d.SetFloat("roughness", m.Roughness)
	d.SetVec3("spec", &m.Specular)
	d.SetVec3("diffuse", &m.Diffuse)

	for _, x := range [...]struct {
		tex, unit int
		name      string
	}{
		{m.DiffuseTex, shader.DiffuseUnit, "diffuseTex"},
		{m.NormalTex, shader.NormalUnit, "normalTex"},
		{m.MetallicTex, shader.MetallicUnit, "metallicTex"},
		{m.RoughTex, shader.RoughnessUnit, "roughTex"},
	} {
		if x.tex != -1 {
			d.BindTextureUnit(x.unit, x.tex)
			d.SetSampler(x.name, x.unit)
		}
	}
	var useNormal int32
	if m.NormalTex != -1 {
		useNormal = 1
	}
	d.SetInt("useNormalTex", useNormal)

	d.BindTextureUnit(shader.IrradianceUnit, m.IrradianceTex)
	d.SetSampler("irradianceTex", shader.IrradianceUnit)
	d.BindTextureUnit(shader.GGXUnit, m.GGXTex)
	d.SetSampler("ggxTex", shader.GGXUnit)
	d.BindTextureUnit(shader.BRDFUnit, m.BRDFTex)
	d.SetSampler("brdfTex", shader.BRDFUnit)
}

// BuildMaterial creates a material from the parameters
// in pm. Texture paths are relative to dir.
//
// Diffuse is an RGB value, else a texture, else gray.
// Normal is a texture or nothing. Specular is an RGB
// value, else 0.04. Roughness and metallic are a float,
// else a texture, else 0.2 and 0.5, respectively.
func BuildMaterial(d *rhi.Device, res *Resources, dir string, pm *material.ParameterMap) (*PBRMaterial, error) {
	m := NewPBRMaterial(res)
	load := func(name string) (int, error) {
		return res.LoadTexture(d, filepath.Join(dir, pm.Texture(name)))
	}

	switch {
	case pm.HasRGB(material.Diffuse):
		m.Diffuse = pm.Color(material.Diffuse, FallbackDiffuse)
	case pm.HasTexture(material.Diffuse):
		t, err := load(material.Diffuse)
		if err != nil {
			return nil, err
		}
		m.SetDiffuseTexture(t)
	default:
		m.Diffuse = FallbackDiffuse
	}

	if pm.HasTexture(material.Normal) {
		t, err := load(material.Normal)
		if err != nil {
			return nil, err
		}
		m.NormalTex = t
	}

	m.Specular = pm.Color(material.Specular, FallbackSpecular)

	switch {
	case pm.HasFloat(material.Roughness):
		m.Roughness = pm.Float(material.Roughness, FallbackRoughness)
	case pm.HasTexture(material.Roughness):
		t, err := load(material.Roughness)
		if err != nil {
			return nil, err
		}
		m.SetRoughnessTexture(t)
	default:
		m.Roughness = FallbackRoughness
	}

	switch {
	case pm.HasFloat(material.Metallic):
		m.Metallic = pm.Float(material.Metallic, FallbackMetallic)
	case pm.HasTexture(material.Metallic):
		t, err := load(material.Metallic)
		if err != nil {
			return nil, err
		}
		m.SetMetallicTexture(t)
	default:
		m.Metallic = FallbackMetallic
	}
	return m, nil
}
