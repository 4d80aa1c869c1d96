// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements real-time rendering of
// physically-based scenes.
//
// A frame is produced by a Renderer from a Scene and a
// Camera. The Scene holds shapes, lights and an optional
// environment (Skybox); GPU objects shared among scene
// entities are cached in Resources. Every call must be
// made from the thread that owns the rhi.Device.
package engine

import (
	"errors"

	"github.com/gviegas/pbr/engine/internal/shader"
)

const prefix = "engine: "

var (
	ErrNoDevice   = errors.New(prefix + "nil device")
	ErrNoProgram  = errors.New(prefix + "program not found")
	ErrNoGeometry = errors.New(prefix + "shape has no geometry")
	ErrNoCamera   = errors.New(prefix + "scene has no camera")
)

// The maximum number of lights per frame.
// Lights past this count are ignored.
const MaxLight = shader.MaxLight

// Names of the built-in programs, as registered in
// Resources.
const (
	UnrealProgram = "unreal"
	SkyboxProgram = "skybox"
)

// BRDFTexture is the name of the BRDF look-up texture in
// Resources.
const BRDFTexture = "brdf"

// ToneParams are the parameters of the filmic tone
// curve (A: shoulder strength, B: linear strength,
// C: linear angle, D: toe strength, E: toe numerator,
// F: toe denominator, W: linear white point).
type ToneParams struct {
	A float32 `toml:"a" yaml:"a"`
	B float32 `toml:"b" yaml:"b"`
	C float32 `toml:"c" yaml:"c"`
	D float32 `toml:"d" yaml:"d"`
	E float32 `toml:"e" yaml:"e"`
	F float32 `toml:"f" yaml:"f"`
	W float32 `toml:"w" yaml:"w"`
}

// Renderer defaults.
const (
	DefaultGamma    = 2.4
	DefaultExposure = 3.0
)

// DefaultToneParams returns the default tone curve.
func DefaultToneParams() ToneParams {
	return ToneParams{0.15, 0.5, 0.1, 0.2, 0.02, 0.3, 11.2}
}

func (p *ToneParams) curve(x float32) float32 {
	return ((x*(p.A*x+p.C*p.B) + p.D*p.E) / (x*(p.A*x+p.B) + p.D*p.F)) - p.E/p.F
}

// TonemapCurve evaluates the tone curve described by p
// at v, normalized by its value at the white point.
func TonemapCurve(p ToneParams, v float32) float32 {
	return p.curve(v) / p.curve(p.W)
}

// Config is used to configure the engine.
type Config struct {
	// Gamma used for display encoding.
	//
	// Default is 2.4.
	Gamma float32 `toml:"gamma" yaml:"gamma"`

	// Exposure applied before tone mapping.
	//
	// Default is 3.0.
	Exposure float32 `toml:"exposure" yaml:"exposure"`

	// Tone curve.
	//
	// Default is DefaultToneParams().
	Tone ToneParams `toml:"tone" yaml:"tone"`

	// Whether to draw the scene's environment.
	//
	// Default is true.
	DrawSkybox bool `toml:"draw_skybox" yaml:"draw_skybox"`

	// Directory that asset paths are relative to.
	//
	// Default is ".".
	AssetRoot string `toml:"asset_root" yaml:"asset_root"`

	// Path of the BRDF look-up texture, relative to
	// AssetRoot.
	//
	// Default is "PBR/brdf.img".
	BRDF string `toml:"brdf" yaml:"brdf"`

	// Name of the driver to open. The empty string
	// selects any registered driver.
	//
	// Default is "opengl".
	Driver string `toml:"driver" yaml:"driver"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Gamma:      DefaultGamma,
		Exposure:   DefaultExposure,
		Tone:       DefaultToneParams(),
		DrawSkybox: true,
		AssetRoot:  ".",
		BRDF:       "PBR/brdf.img",
		Driver:     "opengl",
	}
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
// It affects renderers created afterwards with a nil
// Config.
func Configure(config *Config) {
	cfg = *config
	if cfg.AssetRoot == "" {
		cfg.AssetRoot = "."
	}
}

// CurrentConfig returns the engine's configuration.
func CurrentConfig() Config { return cfg }

func init() {
	config := DefaultConfig()
	Configure(&config)
}
