// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"unsafe"

	"github.com/gviegas/pbr/engine/internal/shader"
	"github.com/gviegas/pbr/rhi"
)

// Renderer draws scenes.
//
// Each frame uploads three constant buffers (renderer
// parameters, lights and camera, in this order) and then
// draws every shape followed by the environment.
type Renderer struct {
	d *rhi.Device

	gamma      float32
	exposure   float32
	tone       ToneParams
	drawSkybox bool

	cameraBuf   int
	lightsBuf   int
	rendererBuf int
	prepared    bool
}

// Constant buffer sizes.
const (
	CameraBufferSize   = int(unsafe.Sizeof(shader.CameraLayout{}))
	LightsBufferSize   = int(unsafe.Sizeof(shader.LightsLayout{}))
	RendererBufferSize = int(unsafe.Sizeof(shader.RendererLayout{}))
)

// NewRenderer creates a renderer that draws through d.
// If config is nil, the engine's configuration is used.
// Prepare must be called before rendering.
func NewRenderer(d *rhi.Device, config *Config) *Renderer {
	if config == nil {
		config = &cfg
	}
	return &Renderer{
		d:           d,
		gamma:       config.Gamma,
		exposure:    config.Exposure,
		tone:        config.Tone,
		drawSkybox:  config.DrawSkybox,
		cameraBuf:   -1,
		lightsBuf:   -1,
		rendererBuf: -1,
	}
}

// Prepare creates the constant buffers and binds them to
// their binding points.
// Calling Prepare again has no effect.
func (r *Renderer) Prepare() error {
	if r.d == nil {
		return ErrNoDevice
	}
	if r.prepared {
		return nil
	}
	r.lightsBuf = r.d.CreateBuffer(rhi.UniformBuffer, rhi.Dynamic, LightsBufferSize, nil)
	r.cameraBuf = r.d.CreateBuffer(rhi.UniformBuffer, rhi.Dynamic, CameraBufferSize, nil)
	r.rendererBuf = r.d.CreateBuffer(rhi.UniformBuffer, rhi.Dynamic, RendererBufferSize, nil)

	r.d.BindBufferBase(r.cameraBuf, shader.CameraSlot)
	r.d.BindBufferBase(r.lightsBuf, shader.LightsSlot)
	r.d.BindBufferBase(r.rendererBuf, shader.RendererSlot)
	r.d.CheckError("renderer prepare")
	r.prepared = true
	return nil
}

// Release deletes the constant buffers.
func (r *Renderer) Release() {
	if !r.prepared {
		return
	}
	r.d.DeleteBuffer(r.cameraBuf)
	r.d.DeleteBuffer(r.lightsBuf)
	r.d.DeleteBuffer(r.rendererBuf)
	r.cameraBuf, r.lightsBuf, r.rendererBuf = -1, -1, -1
	r.prepared = false
}

// Render draws s as seen from c.
// It does nothing if r is not prepared.
func (r *Renderer) Render(s *Scene, c *Camera) {
	if !r.prepared || s == nil || c == nil {
		return
	}
	r.uploadRenderer()
	r.uploadLights(s)
	r.uploadCamera(c)

	for _, sh := range s.Shapes() {
		sh.Draw(r.d)
	}
	if r.drawSkybox && s.HasSkybox() {
		s.Skybox().Draw(r.d)
	}
}

// RenderScene draws s as seen from its first camera.
func (r *Renderer) RenderScene(s *Scene) error {
	if len(s.Cameras()) == 0 {
		return ErrNoCamera
	}
	r.Render(s, s.Cameras()[0])
	return nil
}

// RendererData returns the renderer parameters in
// their GPU layout.
func (r *Renderer) RendererData() (l shader.RendererLayout) {
	l.SetGamma(r.gamma)
	l.SetExposure(r.exposure)
	t := &r.tone
	l.SetTone(t.A, t.B, t.C, t.D, t.E, t.F, t.W)
	return
}

func (r *Renderer) uploadRenderer() {
	l := r.RendererData()
	r.d.UpdateBuffer(r.rendererBuf, RendererBufferSize, l.Bytes())
}

// LightsData returns the lights of s in their GPU
// layout. Unused entries are zero.
func LightsData(s *Scene) (l shader.LightsLayout) {
	lights := s.Lights()
	for i := range min(MaxLight, len(lights)) {
		l[i] = lights[i].Data()
	}
	return
}

func (r *Renderer) uploadLights(s *Scene) {
	l := LightsData(s)
	r.d.UpdateBuffer(r.lightsBuf, LightsBufferSize, l.Bytes())
}

// CameraData returns the camera matrices and position
// in their GPU layout.
func CameraData(c *Camera) (l shader.CameraLayout) {
	vp := c.ViewProjection()
	l.SetV(c.View())
	l.SetP(c.Projection())
	l.SetVP(&vp)
	l.SetPosition(&c.Position)
	return
}

func (r *Renderer) uploadCamera(c *Camera) {
	l := CameraData(c)
	r.d.UpdateBuffer(r.cameraBuf, CameraBufferSize, l.Bytes())
}

// Gamma returns the display gamma.
func (r *Renderer) Gamma() float32 { return r.gamma }

// SetGamma sets the display gamma.
func (r *Renderer) SetGamma(g float32) { r.gamma = g }

// Exposure returns the exposure.
func (r *Renderer) Exposure() float32 { return r.exposure }

// SetExposure sets the exposure.
func (r *Renderer) SetExposure(e float32) { r.exposure = e }

// ToneParams returns the tone curve parameters.
func (r *Renderer) ToneParams() ToneParams { return r.tone }

// SetToneParams sets the tone curve parameters.
func (r *Renderer) SetToneParams(p ToneParams) { r.tone = p }

// RestoreToneDefaults restores the default gamma,
// exposure and tone curve.
func (r *Renderer) RestoreToneDefaults() {
	r.gamma = DefaultGamma
	r.exposure = DefaultExposure
	r.tone = DefaultToneParams()
}

// DrawSkybox reports whether the environment is drawn.
func (r *Renderer) DrawSkybox() bool { return r.drawSkybox }

// SetDrawSkybox sets whether the environment is drawn.
func (r *Renderer) SetDrawSkybox(draw bool) { r.drawSkybox = draw }

// Prepared reports whether Prepare was called.
func (r *Renderer) Prepared() bool { return r.prepared }
