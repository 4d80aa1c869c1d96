// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gviegas/pbr/engine/internal/shader"
	"github.com/gviegas/pbr/linear"
)

func TestResourcesInit(t *testing.T) {
	d, gl := newDevice(t)
	res, _ := newResources(t, d)

	for _, desc := range shader.Programs {
		prog, ok := res.Program(desc.Name)
		if !ok {
			t.Fatalf("Resources.Program(%q): not found", desc.Name)
		}
		if d.ProgramName(prog) != desc.Name {
			t.Fatalf("rhi.Device.ProgramName:\nhave %q\nwant %q", d.ProgramName(prog), desc.Name)
		}
		d.UseProgram(prog)
		id := gl.CurrentProgram()
		for name, slot := range desc.Blocks {
			if b := gl.BlockBinding(id, name); b != slot {
				t.Fatalf("%s: %s binding\nhave %d\nwant %d", desc.Name, name, b, slot)
			}
		}
		for name, unit := range desc.Samplers {
			if v, ok := gl.Uniform(id, name); !ok || v.Ints[0] != int32(unit) {
				t.Fatalf("%s: %s unit\nhave %v\nwant %d", desc.Name, name, v.Ints, unit)
			}
		}
	}
	d.UseProgram(0)
	if _, ok := res.Texture(BRDFTexture); !ok {
		t.Fatal("Resources.Texture: BRDF texture not found")
	}

	res.Release(d)
	if texs, bufs, vas, shs, progs := gl.Live(); texs+bufs+vas+shs+progs != 0 {
		t.Fatalf("Resources.Release: live objects %d %d %d %d %d", texs, bufs, vas, shs, progs)
	}
	if _, ok := res.Program(UnrealProgram); ok {
		t.Fatal("Resources.Release: cache not emptied")
	}
}

func TestResourcesInitError(t *testing.T) {
	d, _ := newDevice(t)
	config := DefaultConfig()
	config.AssetRoot = t.TempDir()
	if err := NewResources().Init(d, &config); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Resources.Init: missing BRDF\nhave %v\nwant %v", err, os.ErrNotExist)
	}
}

func TestResourcesCache(t *testing.T) {
	d, gl := newDevice(t)
	res, _ := newResources(t, d)

	brdf, _ := res.Texture(BRDFTexture)
	if !res.DeleteTexture(BRDFTexture) || res.DeleteTexture(BRDFTexture) {
		t.Fatal("Resources.DeleteTexture: unexpected result")
	}
	if _, ok := d.TextureInfo(brdf); !ok {
		t.Fatal("Resources.DeleteTexture: GPU object deleted")
	}

	sh := NewSphere("ball", linear.V3{}, 1)
	if err := sh.Prepare(d); err != nil {
		t.Fatalf("Sphere.Prepare: %v", err)
	}
	res.AddShape("ball", sh)
	res.AddGeometry("ball", sh.Geometry())
	if s, ok := res.Shape("ball"); !ok || s != Shape(sh) {
		t.Fatal("Resources.Shape: not found")
	}
	if g, ok := res.Geometry("ball"); !ok || g != sh.Geometry() {
		t.Fatal("Resources.Geometry: not found")
	}
	if !res.DeleteShape("ball") || res.DeleteShape("ball") {
		t.Fatal("Resources.DeleteShape: unexpected result")
	}
	if !res.DeleteProgram(SkyboxProgram) {
		t.Fatal("Resources.DeleteProgram: not found")
	}

	res.Release(d)
	if sh.Geometry().VertexArray != -1 {
		t.Fatal("Resources.Release: geometry not released")
	}
	if _, _, vas, _, _ := gl.Live(); vas != 0 {
		t.Fatalf("Resources.Release: %d vertex arrays left", vas)
	}
	if res.DeleteGeometry("ball") {
		t.Fatal("Resources.Release: cache not emptied")
	}
}

func TestLoadSkybox(t *testing.T) {
	d, gl := newDevice(t)
	res, root := newResources(t, d)
	folder := filepath.Join(root, "Ruins")
	if err := os.Mkdir(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	writeCubes(t, folder)

	sky, err := LoadSkybox(d, res, folder)
	if err != nil {
		t.Fatalf("LoadSkybox: %v", err)
	}
	if sky.Name != "Ruins" {
		t.Fatalf("Skybox.Name:\nhave %q\nwant \"Ruins\"", sky.Name)
	}
	for _, x := range [...]struct {
		key string
		tex int
	}{
		{"sky-", sky.Cube},
		{"irradiance-", sky.Irradiance},
		{"ggx-", sky.GGX},
	} {
		if tex, ok := res.Texture(x.key + folder); !ok || tex != x.tex {
			t.Fatalf("Resources.Texture(%q):\nhave %d, %t\nwant %d", x.key+folder, tex, ok, x.tex)
		}
	}
	if info, _ := d.TextureInfo(sky.GGX); info.Levels != 3 {
		t.Fatalf("Skybox.GGX: levels\nhave %d\nwant 3", info.Levels)
	}

	// Cached maps are shared.
	texs, _, _, _, _ := gl.Live()
	again, err := LoadSkybox(d, res, folder)
	if err != nil {
		t.Fatalf("LoadSkybox: %v", err)
	}
	if again.Cube != sky.Cube || again.Irradiance != sky.Irradiance || again.GGX != sky.GGX {
		t.Fatal("LoadSkybox: cached maps not reused")
	}
	if n, _, _, _, _ := gl.Live(); n != texs {
		t.Fatalf("LoadSkybox: textures\nhave %d\nwant %d", n, texs)
	}

	if _, err := LoadSkybox(d, res, filepath.Join(root, "missing")); err == nil {
		t.Fatal("LoadSkybox: missing folder did not fail")
	}
	if _, err := LoadSkybox(d, NewResources(), folder); !errors.Is(err, ErrNoProgram) {
		t.Fatalf("LoadSkybox: no program\nhave %v\nwant %v", err, ErrNoProgram)
	}

	sky.Initialize(d)
	sky.Release(d)
	if sky.geom.VertexArray != -1 {
		t.Fatal("Skybox.Release: geometry not released")
	}
}
