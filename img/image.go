// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package img implements CPU-side images and cubemaps,
// including the IMG and CUBE containers.
package img

import (
	"encoding/binary"
	"errors"
	"math"
)

const prefix = "img: "

var (
	ErrFormat      = errors.New(prefix + "invalid format")
	ErrDimension   = errors.New(prefix + "invalid dimensions")
	ErrLevels      = errors.New(prefix + "invalid level count")
	ErrUnsupported = errors.New(prefix + "operation not supported for format")
	ErrCorrupt     = errors.New(prefix + "corrupt data")
)

// Image is a (possibly mipmapped) 1D, 2D or 3D image.
// Levels[0] is the base level. Every level is tightly
// packed.
type Image struct {
	Format Format
	Width  int
	Height int
	Depth  int
	Levels [][]byte
}

// MipDimension returns the extent of dimension d at level l.
func MipDimension(d, l int) int { return max(1, d>>l) }

// MaxLevels returns the length of a full mip chain for the
// given base extent.
func MaxLevels(width, height, depth int) int {
	n := max(width, height, depth)
	l := 1
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

func levelSize(f Format, w, h, d int) int {
	if f.IsCompressed() {
		return (w + 3) / 4 * ((h + 3) / 4) * d * f.blockSize()
	}
	return f.BytesPerPixel() * w * h * d
}

// New creates a zeroed image with the given number of levels.
func New(f Format, width, height, depth, levels int) (*Image, error) {
	if !f.Valid() {
		return nil, ErrFormat
	}
	if width < 1 || height < 1 || depth < 1 {
		return nil, ErrDimension
	}
	if levels < 1 || levels > MaxLevels(width, height, depth) {
		return nil, ErrLevels
	}
	im := &Image{f, width, height, depth, make([][]byte, levels)}
	for i := range im.Levels {
		im.Levels[i] = make([]byte, im.LevelSize(i))
	}
	return im, nil
}

// Type returns the dimensionality of im.
func (im *Image) Type() Type {
	switch {
	case im.Depth > 1:
		return Type3D
	case im.Height > 1:
		return Type2D
	case im.Width > 1:
		return Type1D
	}
	return TypeUnknown
}

// LevelSize returns the size in bytes of level l.
func (im *Image) LevelSize(l int) int {
	return levelSize(im.Format,
		MipDimension(im.Width, l),
		MipDimension(im.Height, l),
		MipDimension(im.Depth, l))
}

// TotalSize returns the size in bytes of all levels.
func (im *Image) TotalSize() (n int) {
	for i := range im.Levels {
		n += im.LevelSize(i)
	}
	return
}

// Check verifies that the level data matches the
// dimensions and format of im.
func (im *Image) Check() error {
	if !im.Format.Valid() {
		return ErrFormat
	}
	if im.Width < 1 || im.Height < 1 || im.Depth < 1 {
		return ErrDimension
	}
	if len(im.Levels) < 1 || len(im.Levels) > MaxLevels(im.Width, im.Height, im.Depth) {
		return ErrLevels
	}
	for i, l := range im.Levels {
		if len(l) != im.LevelSize(i) {
			return ErrCorrupt
		}
	}
	return nil
}

// FlipY reverses the order of rows in every level.
func (im *Image) FlipY() error {
	if im.Format.IsCompressed() {
		return ErrUnsupported
	}
	bpp := im.Format.BytesPerPixel()
	for l, data := range im.Levels {
		w, h, d := MipDimension(im.Width, l), MipDimension(im.Height, l), MipDimension(im.Depth, l)
		row := w * bpp
		tmp := make([]byte, row)
		for z := range d {
			slice := data[z*row*h : (z+1)*row*h]
			for y := range h / 2 {
				a := slice[y*row : (y+1)*row]
				b := slice[(h-1-y)*row : (h-y)*row]
				copy(tmp, a)
				copy(a, b)
				copy(b, tmp)
			}
		}
	}
	return nil
}

// FlipX reverses the order of texels in every row.
func (im *Image) FlipX() error {
	if im.Format.IsCompressed() {
		return ErrUnsupported
	}
	bpp := im.Format.BytesPerPixel()
	tmp := make([]byte, bpp)
	for l, data := range im.Levels {
		w := MipDimension(im.Width, l)
		row := w * bpp
		for off := 0; off < len(data); off += row {
			r := data[off : off+row]
			for x := range w / 2 {
				a := r[x*bpp : (x+1)*bpp]
				b := r[(w-1-x)*bpp : (w-x)*bpp]
				copy(tmp, a)
				copy(a, b)
				copy(b, tmp)
			}
		}
	}
	return nil
}

func luma(r, g, b uint32) uint32 { return (77*r + 151*g + 28*b + 128) >> 8 }

// Grayscale converts im to a single-channel image.
// The source must be a non-3D image with at least three
// integer channels of at most 16 bits. 8-bit sources
// produce R8 and 16-bit sources produce R16.
// Alpha is dropped.
func (im *Image) Grayscale() error {
	n, bpc := im.Format.Channels(), im.Format.BytesPerChannel()
	if im.Type() == Type3D || n < 3 || bpc > 2 || bpc == 0 || im.Format.IsFloat() {
		return ErrUnsupported
	}
	for l, data := range im.Levels {
		px := len(data) / (n * bpc)
		dst := make([]byte, px*bpc)
		for i := range px {
			s := data[i*n*bpc:]
			if bpc == 1 {
				dst[i] = byte(luma(uint32(s[0]), uint32(s[1]), uint32(s[2])))
			} else {
				r := uint32(binary.LittleEndian.Uint16(s))
				g := uint32(binary.LittleEndian.Uint16(s[2:]))
				b := uint32(binary.LittleEndian.Uint16(s[4:]))
				binary.LittleEndian.PutUint16(dst[i*2:], uint16(luma(r, g, b)))
			}
		}
		im.Levels[l] = dst
	}
	if bpc == 1 {
		im.Format = R8
	} else {
		im.Format = R16
	}
	return nil
}

// ToneMap converts a 32-bit float image with at least
// three channels to RGB8, applying a Reinhard operator
// after scaling by exposure.
func (im *Image) ToneMap(exposure float32) error {
	n := im.Format.Channels()
	if im.Format.Component() != Float || im.Format.IsDepth() || n < 3 {
		return ErrUnsupported
	}
	for l, data := range im.Levels {
		px := len(data) / (n * 4)
		dst := make([]byte, px*3)
		for i := range px {
			for c := range 3 {
				v := math.Float32frombits(binary.LittleEndian.Uint32(data[(i*n+c)*4:]))
				v *= exposure
				v = 255 * v / (v + 1)
				dst[i*3+c] = byte(min(max(v, 0), 255))
			}
		}
		im.Levels[l] = dst
	}
	im.Format = RGB8
	return nil
}

// Cube faces in storage order.
const (
	PosX = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// FaceNames are the file name suffixes of cubemap faces
// in storage order.
var FaceNames = [6]string{"xpos", "xneg", "ypos", "yneg", "zpos", "zneg"}

// Cubemap is a set of six square images that share format,
// extent and level count.
type Cubemap struct {
	Format Format
	Width  int
	Height int
	Faces  [6][][]byte
}

// NewCubemap creates a zeroed cubemap.
func NewCubemap(f Format, width, height, levels int) (*Cubemap, error) {
	var c Cubemap
	for i := range c.Faces {
		im, err := New(f, width, height, 1, levels)
		if err != nil {
			return nil, err
		}
		c.Faces[i] = im.Levels
	}
	c.Format, c.Width, c.Height = f, width, height
	return &c, nil
}

// CubemapFromFaces assembles a cubemap from six 2D images.
func CubemapFromFaces(faces [6]*Image) (*Cubemap, error) {
	f := faces[0]
	c := &Cubemap{Format: f.Format, Width: f.Width, Height: f.Height}
	for i, im := range faces {
		if im.Format != f.Format || im.Width != f.Width || im.Height != f.Height ||
			im.Depth != 1 || len(im.Levels) != len(f.Levels) {
			return nil, ErrDimension
		}
		c.Faces[i] = im.Levels
	}
	return c, nil
}

// Levels returns the number of levels in each face.
func (c *Cubemap) Levels() int { return len(c.Faces[0]) }

// Face returns face i as an image sharing storage with c.
func (c *Cubemap) Face(i int) *Image {
	return &Image{c.Format, c.Width, c.Height, 1, c.Faces[i]}
}

// LevelSize returns the size in bytes of level l of a
// single face.
func (c *Cubemap) LevelSize(l int) int { return c.Face(0).LevelSize(l) }

// TotalSize returns the size in bytes of every level of
// every face.
func (c *Cubemap) TotalSize() int { return 6 * c.Face(0).TotalSize() }

// Check verifies every face of c.
func (c *Cubemap) Check() error {
	for i := range c.Faces {
		if err := c.Face(i).Check(); err != nil {
			return err
		}
		if len(c.Faces[i]) != c.Levels() {
			return ErrLevels
		}
	}
	return nil
}
