// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gl implements driver.GL on top of an OpenGL 4.1
// core profile context.
// The context itself is created by the windowing layer;
// Driver.Open must be called from the thread on which it
// is current.
package gl

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/pbr/driver"
)

func init() { driver.Register(&Driver{}) }

// Driver implements driver.Driver.
type Driver struct {
	ctx *GL
}

// Open loads the GL entry points of the current context.
func (d *Driver) Open() (driver.GL, error) {
	if d.ctx != nil {
		return d.ctx, nil
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", driver.ErrNoContext, err)
	}
	log.Printf("opengl: %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	d.ctx = &GL{drv: d}
	return d.ctx, nil
}

// Name returns "opengl".
func (d *Driver) Name() string { return "opengl" }

// Close forgets the context.
// The native context is owned by the windowing layer.
func (d *Driver) Close() { d.ctx = nil }

// GL implements driver.GL.
type GL struct {
	drv *Driver
}

// Driver implements driver.GL.
func (c *GL) Driver() driver.Driver { return c.drv }

// GetError implements driver.GL.
func (c *GL) GetError() driver.ErrorCode {
	switch gl.GetError() {
	case gl.NO_ERROR:
		return driver.NoError
	case gl.INVALID_ENUM:
		return driver.InvalidEnum
	case gl.INVALID_VALUE:
		return driver.InvalidValue
	case gl.INVALID_OPERATION:
		return driver.InvalidOperation
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return driver.InvalidFramebufferOperation
	case gl.OUT_OF_MEMORY:
		return driver.OutOfMemory
	}
	return driver.InvalidOperation
}

var capabilities = [...]uint32{
	driver.CDepthTest:    gl.DEPTH_TEST,
	driver.CCullFace:     gl.CULL_FACE,
	driver.CMultisample:  gl.MULTISAMPLE,
	driver.CSeamlessCube: gl.TEXTURE_CUBE_MAP_SEAMLESS,
	driver.CBlend:        gl.BLEND,
}

var cmpFuncs = [...]uint32{
	driver.CLess:      gl.LESS,
	driver.CLessEqual: gl.LEQUAL,
	driver.CEqual:     gl.EQUAL,
	driver.CAlways:    gl.ALWAYS,
}

// Enable implements driver.GL.
func (c *GL) Enable(cp driver.Cap) { gl.Enable(capabilities[cp]) }

// Disable implements driver.GL.
func (c *GL) Disable(cp driver.Cap) { gl.Disable(capabilities[cp]) }

// DepthFunc implements driver.GL.
func (c *GL) DepthFunc(fn driver.CmpFunc) { gl.DepthFunc(cmpFuncs[fn]) }

// ClearColor implements driver.GL.
func (c *GL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// Clear implements driver.GL.
func (c *GL) Clear(mask driver.ClearMask) {
	var bits uint32
	if mask&driver.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&driver.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&driver.ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

// Viewport implements driver.GL.
func (c *GL) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ReadPixels implements driver.GL.
func (c *GL) ReadPixels(x, y, width, height int, pf driver.PixelFmt, pt driver.PixelType, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), pixelFmts[pf], pixelTypes[pt], gl.Ptr(dst))
}
