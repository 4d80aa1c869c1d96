// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package img

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP stream.
// Grayscale sources produce R8 or R16; everything else
// produces RGBA8, or RGBA16 for 16-bit sources.
// Rows are stored top to bottom.
func Decode(r io.Reader) (*Image, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	var f Format
	var data []byte
	switch m := m.(type) {
	case *image.Gray:
		f, data = R8, make([]byte, w*h)
		for y := range h {
			copy(data[y*w:], m.Pix[y*m.Stride:y*m.Stride+w])
		}
	case *image.Gray16:
		f, data = R16, make([]byte, w*h*2)
		for y := range h {
			swap16(data[y*w*2:(y+1)*w*2], m.Pix[y*m.Stride:])
		}
	case *image.RGBA64, *image.NRGBA64:
		dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
		f, data = RGBA16, make([]byte, len(dst.Pix))
		swap16(data, dst.Pix)
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
		f, data = RGBA8, dst.Pix
	}
	return &Image{f, w, h, 1, [][]byte{data}}, nil
}

// swap16 copies 16-bit channels from src to dst, swapping
// their byte order. Go images are big-endian; ours are not.
func swap16(dst, src []byte) {
	for i := 0; i+1 < len(dst); i += 2 {
		dst[i], dst[i+1] = src[i+1], src[i]
	}
}

// Load reads an image file, selecting the decoder from
// the file extension.
func Load(path string) (*Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".img") {
		return LoadIMG(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	im, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return im, nil
}

// Save writes the base level of im as PNG, or every level
// as IMG, depending on the file extension.
func Save(path string, im *Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".img":
		return SaveIMG(path, im, true)
	case ".png":
		return SavePNG(path, im)
	}
	return fmt.Errorf("img: unknown extension for %s", path)
}

// canConvert reports whether f can be converted to and from
// the standard image types.
func canConvert(f Format) bool {
	return (f >= R8 && f <= RGBA16) || f == R16UI || f == RGBA16UI
}

// expand converts a single level into an NRGBA or NRGBA64
// image. Missing color channels are zero and missing alpha
// is opaque.
func expand(f Format, w, h int, data []byte) draw.Image {
	n, bpc := f.Channels(), f.BytesPerChannel()
	r := image.Rect(0, 0, w, h)
	if bpc == 1 {
		dst := image.NewNRGBA(r)
		for i := range w * h {
			p := dst.Pix[i*4 : i*4+4]
			p[3] = 255
			copy(p[:n], data[i*n:(i+1)*n])
		}
		return dst
	}
	dst := image.NewNRGBA64(r)
	for i := range w * h {
		p := dst.Pix[i*8 : i*8+8]
		p[6], p[7] = 255, 255
		swap16(p[:n*2], data[i*n*2:(i+1)*n*2])
	}
	return dst
}

// pack is the inverse of expand.
func pack(f Format, m draw.Image) []byte {
	n, bpc := f.Channels(), f.BytesPerChannel()
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]byte, w*h*n*bpc)
	switch m := m.(type) {
	case *image.NRGBA:
		for i := range w * h {
			copy(data[i*n:(i+1)*n], m.Pix[i*4:])
		}
	case *image.NRGBA64:
		for i := range w * h {
			swap16(data[i*n*2:(i+1)*n*2], m.Pix[i*8:])
		}
	}
	return data
}

// GenMipmaps replaces the levels of im after the base with
// a full chain computed by bilinear filtering.
// Only 2D images of 8- and 16-bit unsigned formats are
// supported.
func GenMipmaps(im *Image) error {
	if !canConvert(im.Format) {
		return ErrUnsupported
	}
	if im.Depth != 1 {
		return ErrDimension
	}
	n := MaxLevels(im.Width, im.Height, 1)
	levels := make([][]byte, 1, n)
	levels[0] = im.Levels[0]
	src := expand(im.Format, im.Width, im.Height, im.Levels[0])
	for l := 1; l < n; l++ {
		r := image.Rect(0, 0, MipDimension(im.Width, l), MipDimension(im.Height, l))
		var dst draw.Image
		if _, ok := src.(*image.NRGBA); ok {
			dst = image.NewNRGBA(r)
		} else {
			dst = image.NewNRGBA64(r)
		}
		draw.BiLinear.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
		levels = append(levels, pack(im.Format, dst))
		src = dst
	}
	im.Levels = levels
	return nil
}

// ToImage converts level l of im to a standard image.
func (im *Image) ToImage(l int) (image.Image, error) {
	if !canConvert(im.Format) {
		return nil, ErrUnsupported
	}
	if im.Depth != 1 {
		return nil, ErrDimension
	}
	w, h := MipDimension(im.Width, l), MipDimension(im.Height, l)
	data := im.Levels[l]
	switch im.Format {
	case R8:
		return &image.Gray{Pix: data, Stride: w, Rect: image.Rect(0, 0, w, h)}, nil
	case R16, R16UI:
		m := image.NewGray16(image.Rect(0, 0, w, h))
		swap16(m.Pix, data)
		return m, nil
	}
	return expand(im.Format, w, h, data), nil
}

// EncodePNG writes the base level of im as PNG.
func EncodePNG(w io.Writer, im *Image) error {
	m, err := im.ToImage(0)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}

// SavePNG writes the base level of im to a PNG file.
func SavePNG(path string, im *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err = EncodePNG(bw, im); err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
