// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package soft implements an in-memory driver.GL.
// It keeps every object a GL context would (textures,
// buffers, vertex arrays, shaders and programs) together
// with binding state, validates calls the way a core
// profile context does, and records draw calls instead of
// rasterizing them.
// It is meant for headless execution and tests.
package soft

import (
	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/internal/names"
)

func init() { driver.Register(&Driver{}) }

// Driver implements driver.Driver.
type Driver struct {
	gl *GL
}

// Open creates the in-memory context.
// It never fails.
func (d *Driver) Open() (driver.GL, error) {
	if d.gl == nil {
		d.gl = New()
		d.gl.drv = d
	}
	return d.gl, nil
}

// Name returns "soft".
func (d *Driver) Name() string { return "soft" }

// Close discards the context.
func (d *Driver) Close() { d.gl = nil }

const (
	maxUnit   = 32
	maxAttrib = 16
	maxBase   = 16
	nTarget   = int(driver.Tex2DMultisample) + 1
	nBufTgt   = int(driver.BUniform) + 1
)

// GL implements driver.GL.
type GL struct {
	drv driver.Driver

	texNames  names.Pool
	bufNames  names.Pool
	vaNames   names.Pool
	progNames names.Pool // shared by shaders and programs

	textures     map[uint32]*Texture
	buffers      map[uint32]*Buffer
	vertexArrays map[uint32]*VertexArray
	shaders      map[uint32]*Shader
	programs     map[uint32]*Program

	unit     int
	units    [maxUnit][nTarget]uint32
	bufBound [nBufTgt]uint32
	bases    [maxBase]uint32
	va       uint32
	prog     uint32

	caps       map[driver.Cap]bool
	depthFn    driver.CmpFunc
	clearColor [4]float32
	viewport   [4]int
	fb         []byte

	errs  []driver.ErrorCode
	draws []Draw
}

// New creates a new GL that is not owned by a Driver.
func New() *GL {
	return &GL{
		textures:     make(map[uint32]*Texture),
		buffers:      make(map[uint32]*Buffer),
		vertexArrays: make(map[uint32]*VertexArray),
		shaders:      make(map[uint32]*Shader),
		programs:     make(map[uint32]*Program),
		caps:         make(map[driver.Cap]bool),
		depthFn:      driver.CLess,
	}
}

// Driver returns the Driver that owns gl, which may be
// nil if gl was created by New.
func (gl *GL) Driver() driver.Driver { return gl.drv }

func (gl *GL) fail(code driver.ErrorCode) { gl.errs = append(gl.errs, code) }

// GetError implements driver.GL.
func (gl *GL) GetError() driver.ErrorCode {
	if len(gl.errs) == 0 {
		return driver.NoError
	}
	code := gl.errs[0]
	gl.errs = gl.errs[1:]
	return code
}

// PushError records code as if a call had failed.
func (gl *GL) PushError(code driver.ErrorCode) { gl.fail(code) }

// Enable implements driver.GL.
func (gl *GL) Enable(c driver.Cap) { gl.caps[c] = true }

// Disable implements driver.GL.
func (gl *GL) Disable(c driver.Cap) { delete(gl.caps, c) }

// Enabled reports whether c is enabled.
func (gl *GL) Enabled(c driver.Cap) bool { return gl.caps[c] }

// DepthFunc implements driver.GL.
func (gl *GL) DepthFunc(fn driver.CmpFunc) { gl.depthFn = fn }

// Depth returns the depth comparison function.
func (gl *GL) Depth() driver.CmpFunc { return gl.depthFn }

// ClearColor implements driver.GL.
func (gl *GL) ClearColor(r, g, b, a float32) { gl.clearColor = [4]float32{r, g, b, a} }

// Viewport implements driver.GL.
// It also resizes the framebuffer.
func (gl *GL) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		gl.fail(driver.InvalidValue)
		return
	}
	gl.viewport = [4]int{x, y, width, height}
	if n := width * height * 4; n != len(gl.fb) {
		gl.fb = make([]byte, n)
	}
}

// Clear implements driver.GL.
// Only the color buffer is kept.
func (gl *GL) Clear(mask driver.ClearMask) {
	if mask&driver.ClearColor == 0 {
		return
	}
	var px [4]byte
	for i, c := range gl.clearColor {
		px[i] = byte(min(max(c, 0), 1)*255 + 0.5)
	}
	for i := 0; i < len(gl.fb); i += 4 {
		copy(gl.fb[i:], px[:])
	}
}

// ReadPixels implements driver.GL.
// Only PRGB and PRGBA with TUByte are supported.
func (gl *GL) ReadPixels(x, y, width, height int, pf driver.PixelFmt, pt driver.PixelType, dst []byte) {
	if pt != driver.TUByte || (pf != driver.PRGB && pf != driver.PRGBA) {
		gl.fail(driver.InvalidEnum)
		return
	}
	fw, fh := gl.viewport[2], gl.viewport[3]
	if x < 0 || y < 0 || x+width > fw || y+height > fh {
		gl.fail(driver.InvalidValue)
		return
	}
	nc := pf.Channels()
	if len(dst) < width*height*nc {
		gl.fail(driver.InvalidOperation)
		return
	}
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			src := ((y+j)*fw + x + i) * 4
			copy(dst[(j*width+i)*nc:][:nc], gl.fb[src:src+nc])
		}
	}
}

// Live returns the number of objects of each kind that
// have not been deleted.
func (gl *GL) Live() (textures, buffers, vertexArrays, shaders, programs int) {
	return len(gl.textures), len(gl.buffers), len(gl.vertexArrays), len(gl.shaders), len(gl.programs)
}
