// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package rhi implements the render hardware interface.
//
// A Device owns every GPU object created through it and
// exposes these objects as small integer handles.
// Handles index into per-kind tables which grow
// monotonically. Deleting an object releases its native
// resources and tombstones the slot; the handle is never
// handed out again.
//
// Operations on invalid handles do nothing (or report false).
// Shader and native API failures are routed to FailFunc,
// which stops the process by default.
package rhi

import (
	"errors"
	"fmt"
	"log"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/img"
)

const prefix = "rhi: "

var (
	ErrHandle   = errors.New(prefix + "invalid handle")
	ErrMismatch = errors.New(prefix + "texture type mismatch")
	ErrSize     = errors.New(prefix + "data does not match texture size")
	ErrLevel    = errors.New(prefix + "invalid mip level")
)

// Kind identifies one of the resource tables.
type Kind int

// Resource kinds.
const (
	KVertexArray Kind = iota
	KBuffer
	KProgram
	KTexture
)

func (k Kind) String() string {
	switch k {
	case KVertexArray:
		return "vertex array"
	case KBuffer:
		return "buffer"
	case KProgram:
		return "program"
	case KTexture:
		return "texture"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// slot is the bookkeeping common to every table record.
type slot struct {
	id  uint32
	gen uint32
}

type entry[T any] struct {
	slot
	rec T
}

// table maps handles to records of type T.
type table[T any] struct {
	s []entry[T]
}

// add appends a record and returns its handle.
func (t *table[T]) add(id, gen uint32, rec T) int {
	t.s = append(t.s, entry[T]{slot{id, gen}, rec})
	return len(t.s) - 1
}

// get returns the record of a live handle.
func (t *table[T]) get(h int) (uint32, *T, bool) {
	if h < 0 || h >= len(t.s) || t.s[h].id == 0 {
		return 0, nil, false
	}
	return t.s[h].id, &t.s[h].rec, true
}

// kill tombstones a live handle and returns its native id.
func (t *table[T]) kill(h int) (uint32, *T, bool) {
	id, rec, ok := t.get(h)
	if ok {
		t.s[h].id = 0
	}
	return id, rec, ok
}

func (t *table[T]) gen(h int) (uint32, bool) {
	if h < 0 || h >= len(t.s) {
		return 0, false
	}
	return t.s[h].gen, true
}

func (t *table[T]) len() int { return len(t.s) }

// Device is the render hardware interface.
// It is not safe for concurrent use; every call must be
// made from the thread that owns the GL context.
type Device struct {
	gl driver.GL

	vertexArrays table[vertexArray]
	buffers      table[buffer]
	programs     table[program]
	textures     table[Texture]

	curProg int
	unit    int
	gen     uint32

	// FailFunc is called with unrecoverable errors.
	// It defaults to log.Fatal.
	FailFunc func(error)
}

// New creates a device on top of gl.
// Program handle 0 is reserved and means "no program".
func New(gl driver.GL) *Device {
	d := &Device{gl: gl}
	d.gen = 1
	// Slot 0 is never tombstoned; its native id is
	// irrelevant since UseProgram special-cases it.
	d.programs.add(^uint32(0), 0, program{})
	return d
}

// GL returns the underlying backend.
func (d *Device) GL() driver.GL { return d.gl }

func (d *Device) nextGen() uint32 {
	g := d.gen
	d.gen++
	return g
}

// Fail reports an unrecoverable error.
func (d *Device) Fail(err error) {
	if d.FailFunc != nil {
		d.FailFunc(err)
		return
	}
	log.Fatal(err)
}

// Len returns the number of slots (live or tombstoned)
// in the given table.
func (d *Device) Len(k Kind) int {
	switch k {
	case KVertexArray:
		return d.vertexArrays.len()
	case KBuffer:
		return d.buffers.len()
	case KProgram:
		return d.programs.len()
	case KTexture:
		return d.textures.len()
	}
	return 0
}

// Gen returns the generation of the given slot, or zero
// if h is out of range. Generations are unique across the
// device.
func (d *Device) Gen(k Kind, h int) uint32 {
	var g uint32
	switch k {
	case KVertexArray:
		g, _ = d.vertexArrays.gen(h)
	case KBuffer:
		g, _ = d.buffers.gen(h)
	case KProgram:
		g, _ = d.programs.gen(h)
	case KTexture:
		g, _ = d.textures.gen(h)
	}
	return g
}

// Valid reports whether h refers to a live object created
// with generation gen.
func (d *Device) Valid(k Kind, h int, gen uint32) bool {
	var ok bool
	switch k {
	case KVertexArray:
		_, _, ok = d.vertexArrays.get(h)
	case KBuffer:
		_, _, ok = d.buffers.get(h)
	case KProgram:
		_, _, ok = d.programs.get(h)
	case KTexture:
		_, _, ok = d.textures.get(h)
	}
	return ok && d.Gen(k, h) == gen
}

// checkErrors drains the native error queue.
func (d *Device) checkErrors() (codes []driver.ErrorCode) {
	for {
		c := d.gl.GetError()
		if c == driver.NoError || len(codes) == 16 {
			return
		}
		codes = append(codes, c)
	}
}

// IsError drains the native error queue, logging every
// error found. It reports whether there was any.
func (d *Device) IsError() bool {
	codes := d.checkErrors()
	for _, c := range codes {
		log.Printf("[!] rhi: GL error [%v]", c)
	}
	return len(codes) > 0
}

// CheckError drains the native error queue and passes a
// *GLError to FailFunc if it was not empty.
func (d *Device) CheckError(context string) {
	if codes := d.checkErrors(); len(codes) > 0 {
		d.Fail(&GLError{Context: context, Codes: codes})
	}
}

// Snapshot reads back the given region of the framebuffer
// as an RGB8 image, bottom row first.
// It returns nil if the region is empty.
func (d *Device) Snapshot(x, y, width, height int) *img.Image {
	if width <= 0 || height <= 0 {
		return nil
	}
	dst := make([]byte, width*height*3)
	d.gl.ReadPixels(x, y, width, height, driver.PRGB, driver.TUByte, dst)
	return &img.Image{Format: img.RGB8, Width: width, Height: height, Depth: 1, Levels: [][]byte{dst}}
}

// Clear clears the color and depth buffers.
func (d *Device) Clear(r, g, b, a float32) {
	d.gl.ClearColor(r, g, b, a)
	d.gl.Clear(driver.ClearColor | driver.ClearDepth)
}

// Viewport sets the viewport.
func (d *Device) Viewport(x, y, width, height int) { d.gl.Viewport(x, y, width, height) }

// Enable enables a capability.
func (d *Device) Enable(c driver.Cap) { d.gl.Enable(c) }

// Disable disables a capability.
func (d *Device) Disable(c driver.Cap) { d.gl.Disable(c) }

// DepthFunc sets the depth comparison function.
func (d *Device) DepthFunc(fn driver.CmpFunc) { d.gl.DepthFunc(fn) }
