// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/pbr/driver"
)

var texTargets = [...]uint32{
	driver.Tex1D:            gl.TEXTURE_1D,
	driver.Tex2D:            gl.TEXTURE_2D,
	driver.Tex3D:            gl.TEXTURE_3D,
	driver.TexCube:          gl.TEXTURE_CUBE_MAP,
	driver.TexCubePosX:      gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	driver.TexCubeNegX:      gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	driver.TexCubePosY:      gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	driver.TexCubeNegY:      gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	driver.TexCubePosZ:      gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	driver.TexCubeNegZ:      gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
	driver.Tex2DMultisample: gl.TEXTURE_2D_MULTISAMPLE,
}

var internalFmts = [...]int32{
	driver.FmtInvalid: 0,
	driver.R8un:       gl.R8,
	driver.RG8un:      gl.RG8,
	driver.RGB8un:     gl.RGB8,
	driver.RGBA8un:    gl.RGBA8,
	driver.R16un:      gl.R16,
	driver.RG16un:     gl.RG16,
	driver.RGB16un:    gl.RGB16,
	driver.RGBA16un:   gl.RGBA16,
	driver.R8n:        gl.R8_SNORM,
	driver.RG8n:       gl.RG8_SNORM,
	driver.RGB8n:      gl.RGB8_SNORM,
	driver.RGBA8n:     gl.RGBA8_SNORM,
	driver.R16n:       gl.R16_SNORM,
	driver.RG16n:      gl.RG16_SNORM,
	driver.RGB16n:     gl.RGB16_SNORM,
	driver.RGBA16n:    gl.RGBA16_SNORM,
	driver.R16f:       gl.R16F,
	driver.RG16f:      gl.RG16F,
	driver.RGB16f:     gl.RGB16F,
	driver.RGBA16f:    gl.RGBA16F,
	driver.R32f:       gl.R32F,
	driver.RG32f:      gl.RG32F,
	driver.RGB32f:     gl.RGB32F,
	driver.RGBA32f:    gl.RGBA32F,
	driver.R16i:       gl.R16I,
	driver.RG16i:      gl.RG16I,
	driver.RGB16i:     gl.RGB16I,
	driver.RGBA16i:    gl.RGBA16I,
	driver.R32i:       gl.R32I,
	driver.RG32i:      gl.RG32I,
	driver.RGB32i:     gl.RGB32I,
	driver.RGBA32i:    gl.RGBA32I,
	driver.R16ui:      gl.R16UI,
	driver.RG16ui:     gl.RG16UI,
	driver.RGB16ui:    gl.RGB16UI,
	driver.RGBA16ui:   gl.RGBA16UI,
	driver.R32ui:      gl.R32UI,
	driver.RG32ui:     gl.RG32UI,
	driver.RGB32ui:    gl.RGB32UI,
	driver.RGBA32ui:   gl.RGBA32UI,
	driver.D16un:      gl.DEPTH_COMPONENT16,
	driver.D24un:      gl.DEPTH_COMPONENT24,
	driver.D24unS8ui:  gl.DEPTH24_STENCIL8,
	driver.D32f:       gl.DEPTH_COMPONENT32F,
}

var pixelFmts = [...]uint32{
	driver.PRed:          gl.RED,
	driver.PRG:           gl.RG,
	driver.PRGB:          gl.RGB,
	driver.PRGBA:         gl.RGBA,
	driver.PRedInt:       gl.RED_INTEGER,
	driver.PRGInt:        gl.RG_INTEGER,
	driver.PRGBInt:       gl.RGB_INTEGER,
	driver.PRGBAInt:      gl.RGBA_INTEGER,
	driver.PDepth:        gl.DEPTH_COMPONENT,
	driver.PDepthStencil: gl.DEPTH_STENCIL,
}

var pixelTypes = [...]uint32{
	driver.TUByte:   gl.UNSIGNED_BYTE,
	driver.TByte:    gl.BYTE,
	driver.TUShort:  gl.UNSIGNED_SHORT,
	driver.TShort:   gl.SHORT,
	driver.TUInt:    gl.UNSIGNED_INT,
	driver.TInt:     gl.INT,
	driver.TFloat:   gl.FLOAT,
	driver.THalf:    gl.HALF_FLOAT,
	driver.TUInt248: gl.UNSIGNED_INT_24_8,
}

var wrapModes = [...]int32{
	driver.WRepeat:         gl.REPEAT,
	driver.WMirroredRepeat: gl.MIRRORED_REPEAT,
	driver.WClampEdge:      gl.CLAMP_TO_EDGE,
	driver.WClampBorder:    gl.CLAMP_TO_BORDER,
}

var filters = [...]int32{
	driver.FNearest:           gl.NEAREST,
	driver.FLinear:            gl.LINEAR,
	driver.FNearestMipNearest: gl.NEAREST_MIPMAP_NEAREST,
	driver.FLinearMipNearest:  gl.LINEAR_MIPMAP_NEAREST,
	driver.FNearestMipLinear:  gl.NEAREST_MIPMAP_LINEAR,
	driver.FLinearMipLinear:   gl.LINEAR_MIPMAP_LINEAR,
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

// GenTexture implements driver.GL.
func (c *GL) GenTexture() (tex uint32) {
	gl.GenTextures(1, &tex)
	return
}

// DeleteTexture implements driver.GL.
func (c *GL) DeleteTexture(tex uint32) { gl.DeleteTextures(1, &tex) }

// ActiveTexture implements driver.GL.
func (c *GL) ActiveTexture(unit int) { gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) }

// BindTexture implements driver.GL.
func (c *GL) BindTexture(target driver.TexTarget, tex uint32) {
	gl.BindTexture(texTargets[target], tex)
}

// TexImage implements driver.GL.
// The dimensionality of the call follows from target;
// extra dimensions are ignored.
func (c *GL) TexImage(target driver.TexTarget, level int, ifmt driver.InternalFmt, width, height, depth int, pf driver.PixelFmt, pt driver.PixelType, data []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	t, l, f := texTargets[target], int32(level), internalFmts[ifmt]
	pfmt, ptyp := pixelFmts[pf], pixelTypes[pt]
	switch target {
	case driver.Tex1D:
		gl.TexImage1D(t, l, f, int32(width), 0, pfmt, ptyp, ptr(data))
	case driver.Tex3D:
		gl.TexImage3D(t, l, f, int32(width), int32(height), int32(depth), 0, pfmt, ptyp, ptr(data))
	default:
		gl.TexImage2D(t, l, f, int32(width), int32(height), 0, pfmt, ptyp, ptr(data))
	}
}

// TexImageMultisample implements driver.GL.
func (c *GL) TexImageMultisample(target driver.TexTarget, samples int, ifmt driver.InternalFmt, width, height int) {
	gl.TexImage2DMultisample(texTargets[target], int32(samples), uint32(internalFmts[ifmt]), int32(width), int32(height), true)
}

// TexWrap implements driver.GL.
func (c *GL) TexWrap(target driver.TexTarget, s, t, r driver.Wrap) {
	tgt := texTargets[target]
	gl.TexParameteri(tgt, gl.TEXTURE_WRAP_S, wrapModes[s])
	gl.TexParameteri(tgt, gl.TEXTURE_WRAP_T, wrapModes[t])
	gl.TexParameteri(tgt, gl.TEXTURE_WRAP_R, wrapModes[r])
}

// TexFilter implements driver.GL.
func (c *GL) TexFilter(target driver.TexTarget, min, mag driver.Filter) {
	tgt := texTargets[target]
	gl.TexParameteri(tgt, gl.TEXTURE_MIN_FILTER, filters[min])
	gl.TexParameteri(tgt, gl.TEXTURE_MAG_FILTER, filters[mag])
}

// TexLevels implements driver.GL.
func (c *GL) TexLevels(target driver.TexTarget, base, max int) {
	tgt := texTargets[target]
	gl.TexParameteri(tgt, gl.TEXTURE_BASE_LEVEL, int32(base))
	gl.TexParameteri(tgt, gl.TEXTURE_MAX_LEVEL, int32(max))
}

// GetTexImage implements driver.GL.
func (c *GL) GetTexImage(target driver.TexTarget, level int, pf driver.PixelFmt, pt driver.PixelType, dst []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(texTargets[target], int32(level), pixelFmts[pf], pixelTypes[pt], ptr(dst))
}

// GenerateMipmap implements driver.GL.
func (c *GL) GenerateMipmap(target driver.TexTarget) { gl.GenerateMipmap(texTargets[target]) }
