// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Program descriptions.
//
// Every program shares the constant buffers below, bound
// once per frame to fixed binding points:
//
//	cameraBlock   | CameraSlot   | CameraLayout
//	lightBlock    | LightsSlot   | LightsLayout
//	rendererBlock | RendererSlot | RendererLayout
//
// Texture units are fixed as well, so that the IBL maps
// can stay bound across draws.

package shader

import (
	"embed"
	"fmt"

	"github.com/gviegas/pbr/driver"
)

// Constant buffer binding points.
const (
	CameraSlot = iota
	LightsSlot
	RendererSlot
)

// Texture units.
const (
	DiffuseUnit = iota + 1
	NormalUnit
	MetallicUnit
	RoughnessUnit
	EnvMapUnit
	IrradianceUnit
	GGXUnit
	BRDFUnit
)

// Uniform block names.
const (
	CameraBlock   = "cameraBlock"
	LightsBlock   = "lightBlock"
	RendererBlock = "rendererBlock"
)

//go:embed glsl
var glsl embed.FS

// Source describes one source file of a program.
type Source struct {
	Stage driver.Stage
	File  string
}

// ProgramDesc describes how a program is built and which
// fixed bindings it uses.
type ProgramDesc struct {
	Name    string
	Sources []Source
	// Samplers maps sampler uniform names to texture
	// units. Only samplers whose unit is the same for
	// every draw are listed.
	Samplers map[string]int
	// Blocks maps uniform block names to binding points.
	Blocks map[string]int
}

// Unreal is the metallic/roughness PBR program.
var Unreal = ProgramDesc{
	Name: "unreal",
	Sources: []Source{
		{driver.SVertex, "unreal.vs"},
		{driver.SFragment, "unreal.fs"},
		{driver.SFragment, "common.fs"},
	},
	Samplers: map[string]int{
		"irradianceTex": IrradianceUnit,
		"ggxTex":        GGXUnit,
		"brdfTex":       BRDFUnit,
	},
	Blocks: map[string]int{
		CameraBlock:   CameraSlot,
		RendererBlock: RendererSlot,
		LightsBlock:   LightsSlot,
	},
}

// Skybox is the environment program.
var Skybox = ProgramDesc{
	Name: "skybox",
	Sources: []Source{
		{driver.SVertex, "skybox.vs"},
		{driver.SFragment, "skybox.fs"},
		{driver.SFragment, "common.fs"},
	},
	Samplers: map[string]int{
		"envMap": EnvMapUnit,
	},
	Blocks: map[string]int{
		RendererBlock: RendererSlot,
		CameraBlock:   CameraSlot,
	},
}

// Programs lists the built-in program descriptions.
var Programs = []*ProgramDesc{&Unreal, &Skybox}

// Read returns the contents of an embedded source file.
func Read(file string) (string, error) {
	b, err := glsl.ReadFile("glsl/" + file)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	return string(b), nil
}
