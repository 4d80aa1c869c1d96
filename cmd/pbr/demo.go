// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/engine"
	"github.com/gviegas/pbr/img"
	"github.com/gviegas/pbr/linear"
	"github.com/gviegas/pbr/rhi"
	"github.com/gviegas/pbr/wsi"
)

// Limits of the tone parameters that can be tuned
// at run time.
const (
	maxGamma    = 4
	maxExposure = 8
	toneStep    = 0.1
	// Tone curve parameters move by a twentieth of
	// their range.
	toneSteps     = 20
	materialStep  = 0.05
	nToneParam    = 7
	nColorChannel = 6
)

// toneLimits are the upper limits of the tone curve
// parameters, indexed in A, B, C, D, E, F, W order.
// Every lower limit is 0.
var toneLimits = [nToneParam]float32{2, 2, 2, 2, 0.2, 2, 30}

const toneNames = "ABCDEFW"

// toneParam returns a pointer to parameter i of p.
func toneParam(p *engine.ToneParams, i int) *float32 {
	return [nToneParam]*float32{&p.A, &p.B, &p.C, &p.D, &p.E, &p.F, &p.W}[i]
}

var errEmptyFramebuffer = errors.New("pbr: framebuffer is empty")

// demo is the application state that outlives a frame.
type demo struct {
	cfg      *Config
	dev      *rhi.Device
	res      *engine.Resources
	renderer *engine.Renderer
	world    *engine.World

	tuning   bool
	selected engine.Shape
	// Tone parameter edited by KeyY.
	tone int
	// Material color channel edited by KeyV: the diffuse
	// r, g and b, then the specular r, g and b.
	channel int

	// Window size, in screen coordinates.
	width, height int
	// Framebuffer size, in pixels.
	fbWidth, fbHeight int

	frames int
}

// setState sets the fixed pipeline state used by every
// frame.
func setState(d *rhi.Device, samples int) {
	d.Enable(driver.CDepthTest)
	d.DepthFunc(driver.CLessEqual)
	d.Enable(driver.CSeamlessCube)
	if samples > 0 {
		d.Enable(driver.CMultisample)
	}
}

// newDemo loads the scene and prepares it for
// rendering.
func newDemo(d *rhi.Device, cfg *Config, width, height, fbWidth, fbHeight int) (*demo, error) {
	engine.Configure(&cfg.Engine)
	config := engine.CurrentConfig()
	setState(d, cfg.Samples)

	res := engine.NewResources()
	if err := res.Init(d, &config); err != nil {
		res.Release(d)
		return nil, err
	}

	desc := engine.DefaultSceneDesc()
	if cfg.Scene != "" {
		var err error
		if desc, err = engine.LoadSceneDescFile(cfg.Scene); err != nil {
			res.Release(d)
			return nil, err
		}
	}
	world, err := desc.Build(d, res, config.AssetRoot, width, height)
	if err != nil {
		res.Release(d)
		return nil, err
	}

	r := engine.NewRenderer(d, &config)
	if err := r.Prepare(); err != nil {
		res.Release(d)
		return nil, err
	}

	app := &demo{
		cfg:      cfg,
		dev:      d,
		res:      res,
		renderer: r,
		world:    world,
	}
	app.resize(width, height, fbWidth, fbHeight)
	log.Printf("pbr: loaded %d shapes, %d lights, %d skyboxes",
		len(world.Scene.Shapes()), len(world.Scene.Lights()), len(world.Skyboxes))
	return app, nil
}

// release deletes every GPU object the demo created.
func (app *demo) release() {
	app.renderer.Release()
	for _, sky := range app.world.Skyboxes {
		sky.Release(app.dev)
	}
	app.res.Release(app.dev)
}

func (app *demo) resize(width, height, fbWidth, fbHeight int) {
	app.width, app.height = width, height
	app.fbWidth, app.fbHeight = fbWidth, fbHeight
	if fbWidth > 0 && fbHeight > 0 {
		app.world.Camera.SetAspect(fbWidth, fbHeight)
		app.dev.Viewport(0, 0, fbWidth, fbHeight)
	}
}

// update applies the input of one frame that took dt
// seconds.
func (app *demo) update(in *input, dt float32) {
	cam := app.world.Camera
	if in.look {
		s := dt * app.cfg.Sensitivity
		cam.Rotate(in.dy*s, in.dx*s)
	}

	var dir linear.V3
	front, right := cam.Front(), cam.Right()
	if in.Held(wsi.KeyW) {
		dir.Sub(&dir, &front)
	}
	if in.Held(wsi.KeyS) {
		dir.Add(&dir, &front)
	}
	if in.Held(wsi.KeyD) {
		dir.Add(&dir, &right)
	}
	if in.Held(wsi.KeyA) {
		dir.Sub(&dir, &right)
	}
	cam.Move(dir, dt*app.cfg.Speed)

	for _, p := range in.presses {
		app.keyPress(p.key, p.mod)
	}
	for _, c := range in.clicks {
		app.pick(c[0], c[1])
	}
}

func (app *demo) keyPress(key wsi.Key, mod wsi.Modifier) {
	r := app.renderer
	sign := float32(-1)
	if mod&wsi.ModShift != 0 {
		sign = 1
	}
	switch key {
	case wsi.KeyH:
		app.tuning = !app.tuning
	case wsi.KeyP:
		if err := app.snapshot(); err != nil {
			log.Printf("[!] pbr: snapshot: %v", err)
		} else {
			log.Printf("pbr: snapshot saved to %s", app.cfg.Snapshot)
		}
	case wsi.KeyK:
		r.SetDrawSkybox(!r.DrawSkybox())
	case wsi.Key1, wsi.Key2, wsi.Key3, wsi.Key4:
		if !app.world.SetSkybox(int(key - wsi.Key1)) {
			log.Printf("[!] pbr: no skybox %d", key-wsi.Key1+1)
		}
	case wsi.KeyG:
		r.SetGamma(clamp(r.Gamma()+sign*toneStep, 0, maxGamma))
	case wsi.KeyE:
		r.SetExposure(clamp(r.Exposure()+sign*toneStep, 0, maxExposure))
	case wsi.KeyT:
		app.tone = (app.tone + nToneParam - int(sign)) % nToneParam
	case wsi.KeyY:
		p := r.ToneParams()
		x := toneParam(&p, app.tone)
		hi := toneLimits[app.tone]
		*x = clamp(*x+sign*hi/toneSteps, 0, hi)
		r.SetToneParams(p)
	case wsi.KeyR:
		r.RestoreToneDefaults()
	case wsi.KeyC:
		app.channel = (app.channel + nColorChannel - int(sign)) % nColorChannel
	case wsi.KeyV, wsi.KeyM, wsi.KeyN:
		if app.selected == nil {
			log.Printf("[!] pbr: no object selected")
			return
		}
		app.editMaterial(app.selected.Material(), key, sign*materialStep)
	}
}

// editMaterial moves a factor of m by step. Factors that
// a texture provides are left unchanged.
func (app *demo) editMaterial(m *engine.PBRMaterial, key wsi.Key, step float32) {
	var x *float32
	switch key {
	case wsi.KeyV:
		if app.channel < 3 {
			if m.DiffuseTex >= 0 {
				return
			}
			x = &m.Diffuse[app.channel]
		} else {
			x = &m.Specular[app.channel-3]
		}
	case wsi.KeyM:
		if m.MetallicTex >= 0 {
			return
		}
		x = &m.Metallic
	case wsi.KeyN:
		if m.RoughTex >= 0 {
			return
		}
		x = &m.Roughness
	default:
		return
	}
	*x = clamp(*x+step, 0, 1)
}

func clamp(x, lo, hi float32) float32 { return max(lo, min(x, hi)) }

// pick selects the shape under the window position
// (x, y), if any.
func (app *demo) pick(x, y int) {
	if app.width <= 0 || app.height <= 0 {
		return
	}
	origin, dir := app.world.Camera.Ray(float32(x), float32(y), app.width, app.height)
	sh, ok := app.world.Scene.Intersect(origin, dir)
	if !ok {
		app.selected = nil
		return
	}
	app.selected = sh
	log.Printf("pbr: selected %s", sh.Name())
}

// snapshot writes the framebuffer to the snapshot path.
func (app *demo) snapshot() error {
	im := app.dev.Snapshot(0, 0, app.fbWidth, app.fbHeight)
	if im == nil {
		return errEmptyFramebuffer
	}
	if err := im.FlipY(); err != nil {
		return err
	}
	return img.SavePNG(app.cfg.Snapshot, im)
}

// render draws one frame.
func (app *demo) render() error {
	app.dev.Clear(0.1, 0.1, 0.1, 1)
	if err := app.renderer.RenderScene(app.world.Scene); err != nil {
		return err
	}
	app.dev.CheckError("frame")
	app.frames++
	return nil
}

// title returns the window title for the frames counted
// since the last call, and resets the count.
func (app *demo) title() string {
	s := fmt.Sprintf("%s: %d FPS @ (%dx%d)", app.cfg.Title, app.frames, app.fbWidth, app.fbHeight)
	app.frames = 0
	if !app.tuning {
		return s
	}
	r := app.renderer
	p := r.ToneParams()
	s += fmt.Sprintf(" | gamma %.1f | exposure %.1f | %c %.2f | skybox %d",
		r.Gamma(), r.Exposure(), toneNames[app.tone], *toneParam(&p, app.tone), app.world.Current+1)
	if !r.DrawSkybox() {
		s += " (hidden)"
	}
	if app.selected != nil {
		m := app.selected.Material()
		s += fmt.Sprintf(" | %s diffuse %.2v specular %.2v metallic %.2f roughness %.2f",
			app.selected.Name(), m.Diffuse, m.Specular, m.Metallic, m.Roughness)
	}
	return s
}
