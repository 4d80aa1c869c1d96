// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package rhi

import (
	"fmt"

	"github.com/gviegas/pbr/driver"
	"github.com/gviegas/pbr/img"
)

// Sampler describes how a texture is sampled.
type Sampler struct {
	WrapS, WrapT, WrapR driver.Wrap
	Min, Mag            driver.Filter
	// Samples is the number of samples of an empty 2D
	// texture. Values greater than zero create a
	// multisample texture.
	Samples int
}

// DefaultSampler returns a sampler that repeats on every
// axis and uses nearest filtering.
func DefaultSampler() Sampler {
	return Sampler{
		WrapS: driver.WRepeat,
		WrapT: driver.WRepeat,
		WrapR: driver.WRepeat,
		Min:   driver.FNearest,
		Mag:   driver.FNearest,
	}
}

// Texture describes a texture created by a Device.
type Texture struct {
	Type    img.Type
	Format  img.Format
	Width   int
	Height  int
	Depth   int
	Levels  int
	Sampler Sampler

	target driver.TexTarget
	nfmt   nativeFmt
}

// nativeFmt is the backend equivalent of an img.Format.
type nativeFmt struct {
	ifmt driver.InternalFmt
	pf   driver.PixelFmt
	pt   driver.PixelType
}

// nativeFmts is indexed by img.Format. Formats without a
// native equivalent have an invalid internal format.
var nativeFmts = func() (t [img.BC7 + 1]nativeFmt) {
	type group struct {
		first img.Format
		ifmt  driver.InternalFmt
		pf    driver.PixelFmt
		pt    driver.PixelType
	}
	for _, g := range [...]group{
		{img.R8, driver.R8un, driver.PRed, driver.TUByte},
		{img.R16, driver.R16un, driver.PRed, driver.TUShort},
		{img.R8S, driver.R8n, driver.PRed, driver.TByte},
		{img.R16S, driver.R16n, driver.PRed, driver.TShort},
		{img.R16F, driver.R16f, driver.PRed, driver.THalf},
		{img.R32F, driver.R32f, driver.PRed, driver.TFloat},
		{img.R16I, driver.R16i, driver.PRedInt, driver.TShort},
		{img.R32I, driver.R32i, driver.PRedInt, driver.TInt},
		{img.R16UI, driver.R16ui, driver.PRedInt, driver.TUShort},
		{img.R32UI, driver.R32ui, driver.PRedInt, driver.TUInt},
	} {
		// Channel counts 1 through 4 are consecutive on
		// both sides.
		for i := range 4 {
			t[g.first+img.Format(i)] = nativeFmt{
				g.ifmt + driver.InternalFmt(i),
				g.pf + driver.PixelFmt(i),
				g.pt,
			}
		}
	}
	t[img.D16] = nativeFmt{driver.D16un, driver.PDepth, driver.TUShort}
	t[img.D24] = nativeFmt{driver.D24un, driver.PDepth, driver.TUInt}
	t[img.D24S8] = nativeFmt{driver.D24unS8ui, driver.PDepthStencil, driver.TUInt248}
	t[img.D32F] = nativeFmt{driver.D32f, driver.PDepth, driver.TFloat}
	return
}()

func native(f img.Format) (nativeFmt, error) {
	if !f.Valid() || nativeFmts[f].ifmt == driver.FmtInvalid {
		return nativeFmt{}, &FormatError{f}
	}
	return nativeFmts[f], nil
}

func texTarget(t img.Type) driver.TexTarget {
	switch t {
	case img.Type1D:
		return driver.Tex1D
	case img.Type3D:
		return driver.Tex3D
	case img.TypeCube:
		return driver.TexCube
	}
	// A single texel is treated as 2D.
	return driver.Tex2D
}

func (d *Device) applySampler(target driver.TexTarget, s *Sampler) {
	d.gl.TexWrap(target, s.WrapS, s.WrapT, s.WrapR)
	d.gl.TexFilter(target, s.Min, s.Mag)
}

func (d *Device) upload(target driver.TexTarget, level int, nf nativeFmt, w, h, depth int, data []byte) {
	d.gl.TexImage(target, level, nf.ifmt, w, h, depth, nf.pf, nf.pt, data)
}

// CreateTexture creates a texture from every level of im.
func (d *Device) CreateTexture(im *img.Image, s Sampler) (int, error) {
	if err := im.Check(); err != nil {
		return -1, err
	}
	nf, err := native(im.Format)
	if err != nil {
		return -1, err
	}
	typ := im.Type()
	if typ == img.TypeUnknown {
		typ = img.Type2D
	}
	target := texTarget(typ)
	id := d.gl.GenTexture()
	d.gl.BindTexture(target, id)
	for l, data := range im.Levels {
		w := img.MipDimension(im.Width, l)
		h := img.MipDimension(im.Height, l)
		z := img.MipDimension(im.Depth, l)
		d.upload(target, l, nf, w, h, z, data)
	}
	if n := len(im.Levels); n > 1 {
		d.gl.TexLevels(target, 0, n-1)
	}
	d.applySampler(target, &s)
	d.gl.BindTexture(target, 0)
	return d.textures.add(id, d.nextGen(), Texture{
		Type:    typ,
		Format:  im.Format,
		Width:   im.Width,
		Height:  im.Height,
		Depth:   im.Depth,
		Levels:  len(im.Levels),
		Sampler: s,
		target:  target,
		nfmt:    nf,
	}), nil
}

// CreateEmptyTexture creates a single-level texture with
// no initial data. 2D textures whose sampler requests
// samples are multisampled.
func (d *Device) CreateEmptyTexture(typ img.Type, f img.Format, width, height, depth int, s Sampler) (int, error) {
	nf, err := native(f)
	if err != nil {
		return -1, err
	}
	if width < 1 || height < 1 || depth < 1 {
		return -1, img.ErrDimension
	}
	switch typ {
	case img.Type1D:
		height, depth = 1, 1
	case img.Type2D:
		depth = 1
	case img.Type3D:
	default:
		return -1, fmt.Errorf("%w: cannot create empty %v texture", ErrMismatch, typ)
	}
	target := texTarget(typ)
	ms := typ == img.Type2D && s.Samples > 0
	if ms {
		target = driver.Tex2DMultisample
	}
	id := d.gl.GenTexture()
	d.gl.BindTexture(target, id)
	if ms {
		d.gl.TexImageMultisample(target, s.Samples, nf.ifmt, width, height)
	} else {
		d.upload(target, 0, nf, width, height, depth, nil)
		d.applySampler(target, &s)
	}
	d.gl.BindTexture(target, 0)
	return d.textures.add(id, d.nextGen(), Texture{
		Type:    typ,
		Format:  f,
		Width:   width,
		Height:  height,
		Depth:   depth,
		Levels:  1,
		Sampler: s,
		target:  target,
		nfmt:    nf,
	}), nil
}

// CreateCubemap creates a cube texture from every level
// of every face of c. Faces are uploaded in the order
// +X, -X, +Y, -Y, +Z, -Z.
func (d *Device) CreateCubemap(c *img.Cubemap, s Sampler) (int, error) {
	if err := c.Check(); err != nil {
		return -1, err
	}
	nf, err := native(c.Format)
	if err != nil {
		return -1, err
	}
	id := d.gl.GenTexture()
	d.gl.BindTexture(driver.TexCube, id)
	levels := c.Levels()
	if levels > 1 {
		d.gl.TexLevels(driver.TexCube, 0, levels-1)
	}
	for face := img.PosX; face <= img.NegZ; face++ {
		for l, data := range c.Faces[face] {
			w := img.MipDimension(c.Width, l)
			h := img.MipDimension(c.Height, l)
			d.upload(driver.CubeFace(face), l, nf, w, h, 1, data)
		}
	}
	d.applySampler(driver.TexCube, &s)
	d.gl.BindTexture(driver.TexCube, 0)
	return d.textures.add(id, d.nextGen(), Texture{
		Type:    img.TypeCube,
		Format:  c.Format,
		Width:   c.Width,
		Height:  c.Height,
		Depth:   1,
		Levels:  levels,
		Sampler: s,
		target:  driver.TexCube,
		nfmt:    nf,
	}), nil
}

// TextureInfo returns the description of texture h.
func (d *Device) TextureInfo(h int) (Texture, bool) {
	_, t, ok := d.textures.get(h)
	if !ok {
		return Texture{}, false
	}
	return *t, true
}

// ReadTexture reads back every level of a non-cube
// texture.
func (d *Device) ReadTexture(h int) (*img.Image, error) {
	id, t, ok := d.textures.get(h)
	switch {
	case !ok:
		return nil, ErrHandle
	case t.Type == img.TypeCube || t.target == driver.Tex2DMultisample:
		return nil, ErrMismatch
	}
	im, err := img.New(t.Format, t.Width, t.Height, t.Depth, t.Levels)
	if err != nil {
		return nil, err
	}
	d.gl.BindTexture(t.target, id)
	for l := range im.Levels {
		d.gl.GetTexImage(t.target, l, t.nfmt.pf, t.nfmt.pt, im.Levels[l])
	}
	d.gl.BindTexture(t.target, 0)
	return im, nil
}

// ReadCubemap reads back every level of every face of a
// cube texture.
func (d *Device) ReadCubemap(h int) (*img.Cubemap, error) {
	id, t, ok := d.textures.get(h)
	switch {
	case !ok:
		return nil, ErrHandle
	case t.Type != img.TypeCube:
		return nil, ErrMismatch
	}
	c, err := img.NewCubemap(t.Format, t.Width, t.Height, t.Levels)
	if err != nil {
		return nil, err
	}
	d.gl.BindTexture(driver.TexCube, id)
	for face := range c.Faces {
		for l := range c.Faces[face] {
			d.gl.GetTexImage(driver.CubeFace(face), l, t.nfmt.pf, t.nfmt.pt, c.Faces[face][l])
		}
	}
	d.gl.BindTexture(driver.TexCube, 0)
	return c, nil
}

// GenerateMipmaps generates the mip chain of texture h
// from its base level.
func (d *Device) GenerateMipmaps(h int) {
	id, t, ok := d.textures.get(h)
	if !ok || t.target == driver.Tex2DMultisample {
		return
	}
	t.Levels = img.MaxLevels(t.Width, t.Height, t.Depth)
	d.gl.BindTexture(t.target, id)
	d.gl.GenerateMipmap(t.target)
	d.gl.TexLevels(t.target, 0, t.Levels-1)
	d.gl.BindTexture(t.target, 0)
}

// SetTextureData replaces the contents of one level of a
// non-cube texture.
func (d *Device) SetTextureData(h, level int, pixels []byte) error {
	id, t, ok := d.textures.get(h)
	switch {
	case !ok:
		return ErrHandle
	case t.Type == img.TypeCube || t.target == driver.Tex2DMultisample:
		return ErrMismatch
	case level < 0 || level >= img.MaxLevels(t.Width, t.Height, t.Depth):
		return ErrLevel
	}
	w := img.MipDimension(t.Width, level)
	hh := img.MipDimension(t.Height, level)
	z := img.MipDimension(t.Depth, level)
	if len(pixels) < w*hh*z*t.Format.BytesPerPixel() {
		return ErrSize
	}
	d.gl.BindTexture(t.target, id)
	d.upload(t.target, level, t.nfmt, w, hh, z, pixels)
	d.gl.BindTexture(t.target, 0)
	if level >= t.Levels {
		t.Levels = level + 1
	}
	return nil
}

// DeleteTexture deletes texture h.
// It returns false if h is not a live texture.
func (d *Device) DeleteTexture(h int) bool {
	id, _, ok := d.textures.kill(h)
	if ok {
		d.gl.DeleteTexture(id)
	}
	return ok
}

// BindTexture binds texture h to the active unit.
func (d *Device) BindTexture(h int) {
	if id, t, ok := d.textures.get(h); ok {
		d.gl.BindTexture(t.target, id)
	}
}

// BindTextureUnit makes unit the active unit and binds
// texture h to it.
func (d *Device) BindTextureUnit(unit, h int) {
	d.ActiveUnit(unit)
	d.BindTexture(h)
}

// ActiveUnit selects the active texture unit.
func (d *Device) ActiveUnit(unit int) {
	d.gl.ActiveTexture(unit)
	d.unit = unit
}

// UnbindTexture unbinds the texture bound to the given
// type in the active unit.
func (d *Device) UnbindTexture(typ img.Type) {
	d.gl.BindTexture(texTarget(typ), 0)
}
