// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package soft

import (
	"github.com/gviegas/pbr/driver"
)

// Texture is the state of a texture object.
type Texture struct {
	// Target is the target the texture was first bound
	// to. It is -1 until then.
	Target driver.TexTarget
	// Faces holds the levels of every face of a cube
	// map. Only Faces[0] is used by other targets.
	Faces   [6][]Level
	Samples int
	Wrap    [3]driver.Wrap
	Min     driver.Filter
	Mag     driver.Filter
	Base    int
	Max     int
	// Mipmaps counts calls to GenerateMipmap.
	Mipmaps int
}

// Level is the storage of one texture level.
type Level struct {
	Width  int
	Height int
	Depth  int
	Format driver.InternalFmt
	PF     driver.PixelFmt
	PT     driver.PixelType
	Data   []byte
}

// Texture returns the texture named tex, or nil.
func (gl *GL) Texture(tex uint32) *Texture { return gl.textures[tex] }

// BoundTexture returns the texture bound to target in
// the given unit.
func (gl *GL) BoundTexture(unit int, target driver.TexTarget) uint32 {
	if unit < 0 || unit >= maxUnit || target.IsCubeFace() {
		return 0
	}
	return gl.units[unit][target]
}

// GenTexture implements driver.GL.
func (gl *GL) GenTexture() uint32 {
	tex := gl.texNames.Get()
	gl.textures[tex] = &Texture{
		Target: -1,
		Min:    driver.FNearestMipLinear,
		Mag:    driver.FLinear,
		Max:    1000,
	}
	return tex
}

// DeleteTexture implements driver.GL.
func (gl *GL) DeleteTexture(tex uint32) {
	if _, ok := gl.textures[tex]; !ok {
		return
	}
	for u := range gl.units {
		for t := range gl.units[u] {
			if gl.units[u][t] == tex {
				gl.units[u][t] = 0
			}
		}
	}
	delete(gl.textures, tex)
	gl.texNames.Put(tex)
}

// ActiveTexture implements driver.GL.
func (gl *GL) ActiveTexture(unit int) {
	if unit < 0 || unit >= maxUnit {
		gl.fail(driver.InvalidEnum)
		return
	}
	gl.unit = unit
}

// BindTexture implements driver.GL.
func (gl *GL) BindTexture(target driver.TexTarget, tex uint32) {
	if target < 0 || int(target) >= nTarget || target.IsCubeFace() {
		gl.fail(driver.InvalidEnum)
		return
	}
	if tex != 0 {
		t, ok := gl.textures[tex]
		switch {
		case !ok:
			gl.fail(driver.InvalidOperation)
			return
		case t.Target == -1:
			t.Target = target
		case t.Target != target:
			gl.fail(driver.InvalidOperation)
			return
		}
	}
	gl.units[gl.unit][target] = tex
}

// bound returns the texture bound to target (or to the
// cube map, for cube faces) and the face index.
func (gl *GL) bound(target driver.TexTarget) (*Texture, int) {
	face := 0
	if target.IsCubeFace() {
		face = int(target - driver.TexCubePosX)
		target = driver.TexCube
	}
	if target < 0 || int(target) >= nTarget {
		gl.fail(driver.InvalidEnum)
		return nil, 0
	}
	tex := gl.units[gl.unit][target]
	if tex == 0 {
		gl.fail(driver.InvalidOperation)
		return nil, 0
	}
	return gl.textures[tex], face
}

// TexImage implements driver.GL.
func (gl *GL) TexImage(target driver.TexTarget, level int, ifmt driver.InternalFmt, width, height, depth int, pf driver.PixelFmt, pt driver.PixelType, data []byte) {
	if target == driver.TexCube || target == driver.Tex2DMultisample {
		gl.fail(driver.InvalidEnum)
		return
	}
	if ifmt == driver.FmtInvalid {
		gl.fail(driver.InvalidEnum)
		return
	}
	if level < 0 || width < 1 || height < 1 || depth < 1 {
		gl.fail(driver.InvalidValue)
		return
	}
	t, face := gl.bound(target)
	if t == nil {
		return
	}
	n := width * height * depth * driver.PixelSize(pf, pt)
	if data != nil && len(data) < n {
		gl.fail(driver.InvalidOperation)
		return
	}
	lvl := Level{
		Width:  width,
		Height: height,
		Depth:  depth,
		Format: ifmt,
		PF:     pf,
		PT:     pt,
		Data:   make([]byte, n),
	}
	copy(lvl.Data, data)
	levels := t.Faces[face]
	for len(levels) <= level {
		levels = append(levels, Level{})
	}
	levels[level] = lvl
	t.Faces[face] = levels
}

// TexImageMultisample implements driver.GL.
func (gl *GL) TexImageMultisample(target driver.TexTarget, samples int, ifmt driver.InternalFmt, width, height int) {
	if target != driver.Tex2DMultisample || ifmt == driver.FmtInvalid {
		gl.fail(driver.InvalidEnum)
		return
	}
	if samples < 1 || width < 1 || height < 1 {
		gl.fail(driver.InvalidValue)
		return
	}
	t, _ := gl.bound(target)
	if t == nil {
		return
	}
	t.Samples = samples
	t.Faces[0] = []Level{{Width: width, Height: height, Depth: 1, Format: ifmt}}
}

// TexWrap implements driver.GL.
func (gl *GL) TexWrap(target driver.TexTarget, s, t, r driver.Wrap) {
	if tex, _ := gl.bound(target); tex != nil {
		tex.Wrap = [3]driver.Wrap{s, t, r}
	}
}

// TexFilter implements driver.GL.
func (gl *GL) TexFilter(target driver.TexTarget, min, mag driver.Filter) {
	if mag != driver.FNearest && mag != driver.FLinear {
		gl.fail(driver.InvalidEnum)
		return
	}
	if tex, _ := gl.bound(target); tex != nil {
		tex.Min, tex.Mag = min, mag
	}
}

// TexLevels implements driver.GL.
func (gl *GL) TexLevels(target driver.TexTarget, base, max int) {
	if base < 0 || max < base {
		gl.fail(driver.InvalidValue)
		return
	}
	if tex, _ := gl.bound(target); tex != nil {
		tex.Base, tex.Max = base, max
	}
}

// GetTexImage implements driver.GL.
// Data is copied as stored; no conversion takes place.
func (gl *GL) GetTexImage(target driver.TexTarget, level int, pf driver.PixelFmt, pt driver.PixelType, dst []byte) {
	if target == driver.TexCube || target == driver.Tex2DMultisample {
		gl.fail(driver.InvalidEnum)
		return
	}
	t, face := gl.bound(target)
	if t == nil {
		return
	}
	if level < 0 || level >= len(t.Faces[face]) || t.Faces[face][level].Data == nil {
		gl.fail(driver.InvalidValue)
		return
	}
	lvl := &t.Faces[face][level]
	if driver.PixelSize(pf, pt) != driver.PixelSize(lvl.PF, lvl.PT) {
		gl.fail(driver.InvalidOperation)
		return
	}
	copy(dst, lvl.Data)
}

// GenerateMipmap implements driver.GL.
// Levels are decimated by point sampling.
func (gl *GL) GenerateMipmap(target driver.TexTarget) {
	if target.IsCubeFace() || target == driver.Tex2DMultisample {
		gl.fail(driver.InvalidEnum)
		return
	}
	t, _ := gl.bound(target)
	if t == nil {
		return
	}
	nface := 1
	if target == driver.TexCube {
		nface = 6
	}
	for f := range nface {
		if len(t.Faces[f]) == 0 || t.Faces[f][0].Data == nil {
			gl.fail(driver.InvalidOperation)
			return
		}
		base := t.Faces[f][0]
		levels := []Level{base}
		for prev := base; prev.Width > 1 || prev.Height > 1 || prev.Depth > 1; {
			next := decimate(&prev)
			levels = append(levels, next)
			prev = next
		}
		t.Faces[f] = levels
	}
	t.Mipmaps++
}

func decimate(l *Level) Level {
	w, h, d := max(1, l.Width/2), max(1, l.Height/2), max(1, l.Depth/2)
	ps := driver.PixelSize(l.PF, l.PT)
	data := make([]byte, w*h*d*ps)
	for z := range d {
		for y := range h {
			for x := range w {
				sx, sy, sz := min(x*2, l.Width-1), min(y*2, l.Height-1), min(z*2, l.Depth-1)
				src := ((sz*l.Height+sy)*l.Width + sx) * ps
				dst := ((z*h+y)*w + x) * ps
				copy(data[dst:dst+ps], l.Data[src:src+ps])
			}
		}
	}
	return Level{
		Width:  w,
		Height: h,
		Depth:  d,
		Format: l.Format,
		PF:     l.PF,
		PT:     l.PT,
		Data:   data,
	}
}
