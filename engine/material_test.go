// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"path/filepath"
	"testing"

	"github.com/gviegas/pbr/engine/material"
	"github.com/gviegas/pbr/img"
	"github.com/gviegas/pbr/linear"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	im, err := img.New(img.RGBA8, 8, 8, 1, 1)
	if err != nil {
		t.Fatalf("img.New: %v", err)
	}
	if err := img.SavePNG(path, im); err != nil {
		t.Fatalf("img.SavePNG: %v", err)
	}
}

func TestNewPBRMaterial(t *testing.T) {
	m := NewPBRMaterial(nil)
	if m.Program != -1 || m.BRDFTex != -1 || m.DiffuseTex != -1 || m.Metallic >= 0 || m.Roughness >= 0 {
		t.Fatalf("NewPBRMaterial(nil):\nhave %+v", *m)
	}
	if m.Specular != (linear.V3{0.04, 0.04, 0.04}) {
		t.Fatalf("NewPBRMaterial: specular\nhave %v", m.Specular)
	}

	d, _ := newDevice(t)
	res, _ := newResources(t, d)
	m = NewPBRMaterial(res)
	prog, _ := res.Program(UnrealProgram)
	brdf, _ := res.Texture(BRDFTexture)
	if m.Program != prog || m.BRDFTex != brdf {
		t.Fatalf("NewPBRMaterial:\nhave %d, %d\nwant %d, %d", m.Program, m.BRDFTex, prog, brdf)
	}

	m.SetDiffuseTexture(brdf)
	m.SetMetallicTexture(brdf)
	m.SetRoughnessTexture(brdf)
	if m.Diffuse != (linear.V3{-1, -1, -1}) || m.Metallic != -1 || m.Roughness != -1 {
		t.Fatalf("PBRMaterial: texture setters\nhave %+v", *m)
	}
}

func TestBuildMaterialFallback(t *testing.T) {
	d, _ := newDevice(t)
	res, _ := newResources(t, d)
	m, err := BuildMaterial(d, res, t.TempDir(), material.NewParameterMap())
	if err != nil {
		t.Fatalf("BuildMaterial: %v", err)
	}
	if m.Diffuse != FallbackDiffuse || m.Specular != FallbackSpecular {
		t.Fatalf("BuildMaterial: colors\nhave %v, %v", m.Diffuse, m.Specular)
	}
	if m.Roughness != FallbackRoughness || m.Metallic != FallbackMetallic {
		t.Fatalf("BuildMaterial: factors\nhave %v, %v", m.Roughness, m.Metallic)
	}
	for _, tex := range [...]int{m.DiffuseTex, m.NormalTex, m.MetallicTex, m.RoughTex} {
		if tex != -1 {
			t.Fatalf("BuildMaterial: unexpected texture %d", tex)
		}
	}
}

func TestBuildMaterial(t *testing.T) {
	d, gl := newDevice(t)
	res, _ := newResources(t, d)
	dir := t.TempDir()
	for _, f := range [...]string{"a.png", "n.png", "r.png"} {
		writePNG(t, filepath.Join(dir, f))
	}

	pm := material.NewParameterMap()
	pm.SetTexture(material.Diffuse, "a.png")
	pm.SetTexture(material.Normal, "n.png")
	pm.SetTexture(material.Roughness, "r.png")
	pm.SetTexture(material.Metallic, "r.png")
	pm.SetFloat(material.Metallic, 0.75)
	pm.SetRGB(material.Specular, linear.V3{0.1, 0.2, 0.3})

	m, err := BuildMaterial(d, res, dir, pm)
	if err != nil {
		t.Fatalf("BuildMaterial: %v", err)
	}
	if m.DiffuseTex == -1 || m.Diffuse != (linear.V3{-1, -1, -1}) {
		t.Fatalf("BuildMaterial: diffuse\nhave %d, %v", m.DiffuseTex, m.Diffuse)
	}
	if m.NormalTex == -1 || m.RoughTex == -1 || m.Roughness != -1 {
		t.Fatalf("BuildMaterial: normal/roughness\nhave %d, %d, %v", m.NormalTex, m.RoughTex, m.Roughness)
	}
	// A float takes precedence over a texture.
	if m.Metallic != 0.75 || m.MetallicTex != -1 {
		t.Fatalf("BuildMaterial: metallic\nhave %v, %d", m.Metallic, m.MetallicTex)
	}
	if m.Specular != (linear.V3{0.1, 0.2, 0.3}) {
		t.Fatalf("BuildMaterial: specular\nhave %v", m.Specular)
	}

	info, ok := d.TextureInfo(m.DiffuseTex)
	if !ok || info.Width != 8 {
		t.Fatalf("rhi.Device.TextureInfo: %+v, %t", info, ok)
	}
	texs, _, _, _, _ := gl.Live()
	if _, err := res.LoadTexture(d, filepath.Join(dir, "a.png")); err != nil {
		t.Fatalf("Resources.LoadTexture: %v", err)
	}
	if n, _, _, _, _ := gl.Live(); n != texs {
		t.Fatal("Resources.LoadTexture: cached texture was loaded again")
	}

	// An RGB value takes precedence over a texture.
	pm = material.NewParameterMap()
	pm.SetTexture(material.Diffuse, "a.png")
	pm.SetRGB(material.Diffuse, linear.V3{1, 0, 0})
	if m, err = BuildMaterial(d, res, dir, pm); err != nil || m.Diffuse != (linear.V3{1, 0, 0}) || m.DiffuseTex != -1 {
		t.Fatalf("BuildMaterial: RGB diffuse\nhave %v, %d, %v", m.Diffuse, m.DiffuseTex, err)
	}

	pm = material.NewParameterMap()
	pm.SetTexture(material.Normal, "missing.png")
	if _, err := BuildMaterial(d, res, dir, pm); err == nil {
		t.Fatal("BuildMaterial: missing texture did not fail")
	}
}

func TestMaterialUploadData(t *testing.T) {
	d, gl := newDevice(t)
	res, _ := newResources(t, d)
	m := NewPBRMaterial(res)
	m.Diffuse = linear.V3{0.25, 0.5, 0.75}
	m.Metallic, m.Roughness = 1, 0.5

	m.Use(d)
	prog := gl.CurrentProgram()
	m.UploadData(d)
	for _, x := range [...]struct {
		name string
		want []float32
	}{
		{"diffuse", []float32{0.25, 0.5, 0.75}},
		{"metallic", []float32{1}},
		{"roughness", []float32{0.5}},
		{"spec", []float32{0.04, 0.04, 0.04}},
	} {
		v, ok := gl.Uniform(prog, x.name)
		if !ok || len(v.Floats) != len(x.want) {
			t.Fatalf("%s uniform: have %v, %t", x.name, v, ok)
		}
		for i := range x.want {
			if v.Floats[i] != x.want[i] {
				t.Fatalf("%s uniform:\nhave %v\nwant %v", x.name, v.Floats, x.want)
			}
		}
	}
	if v, ok := gl.Uniform(prog, "useNormalTex"); !ok || v.Ints[0] != 0 {
		t.Fatalf("useNormalTex uniform: have %v, %t", v, ok)
	}
	d.UseProgram(0)
}
