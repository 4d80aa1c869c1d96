// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package img

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	imgMagic  = "IMG "
	cubeMagic = "CUBE"
)

// imgHeader is the 32-byte little-endian header of IMG files.
type imgHeader struct {
	ID        [4]byte
	Format    uint32
	Width     uint32
	Height    uint32
	Depth     uint32
	CompSize  uint32
	TotalSize uint32
	Levels    uint32
}

// cubeHeader is the 28-byte little-endian header of CUBE files.
type cubeHeader struct {
	ID        [4]byte
	Format    uint32
	Width     uint32
	Height    uint32
	CompSize  uint32
	TotalSize uint32
	Levels    uint32
}

// payload reads the data section that follows a header.
// The section is zlib-compressed when its stored size differs
// from its logical size. The buffer grows as data arrives, so
// a truncated stream fails before totalSize bytes are held.
func payload(r io.Reader, compSize, totalSize uint32) ([]byte, error) {
	src := io.LimitReader(r, int64(compSize))
	if compSize != totalSize {
		zr, err := zlib.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		defer zr.Close()
		src = zr
	}
	var b bytes.Buffer
	if _, err := io.CopyN(&b, src, int64(totalSize)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return b.Bytes(), nil
}

// dataSize computes the size in bytes of faces images of
// the given format and extent, each with levels levels.
// It fails if the size does not fit in a header field.
func dataSize(f Format, width, height, depth, levels, faces uint32) (uint32, bool) {
	var n uint64
	for l := range levels {
		w := uint64(MipDimension(int(width), int(l)))
		h := uint64(MipDimension(int(height), int(l)))
		d := uint64(MipDimension(int(depth), int(l)))
		factors := [4]uint64{w, h, d, uint64(f.BytesPerPixel())}
		if f.IsCompressed() {
			factors = [4]uint64{(w + 3) / 4, (h + 3) / 4, d, uint64(f.blockSize())}
		}
		sz := uint64(1)
		for _, x := range factors {
			// Both operands are below 1<<32.
			if sz *= x; sz > math.MaxUint32 {
				return 0, false
			}
		}
		if n += sz; n > math.MaxUint32 {
			return 0, false
		}
	}
	if n *= uint64(faces); n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// checkHeader validates the extent, level count and
// declared size of a container header.
func checkHeader(f Format, width, height, depth, levels, faces, totalSize uint32) error {
	if !f.Valid() {
		return ErrFormat
	}
	if width < 1 || height < 1 || depth < 1 {
		return ErrDimension
	}
	if levels < 1 || uint64(levels) > uint64(MaxLevels(int(width), int(height), int(depth))) {
		return ErrLevels
	}
	n, ok := dataSize(f, width, height, depth, levels, faces)
	if !ok {
		return fmt.Errorf("%w: %dx%dx%d image too large", ErrCorrupt, width, height, depth)
	}
	if n != totalSize {
		return fmt.Errorf("%w: size %d does not match header", ErrCorrupt, totalSize)
	}
	return nil
}

func deflate(data []byte) ([]byte, error) {
	var b bytes.Buffer
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ReadIMG decodes an IMG stream.
func ReadIMG(r io.Reader) (*Image, error) {
	var h imgHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if string(h.ID[:]) != imgMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, h.ID[:])
	}
	if err := checkHeader(Format(h.Format), h.Width, h.Height, h.Depth, h.Levels, 1, h.TotalSize); err != nil {
		return nil, err
	}
	im := &Image{
		Format: Format(h.Format),
		Width:  int(h.Width),
		Height: int(h.Height),
		Depth:  int(h.Depth),
		Levels: make([][]byte, h.Levels),
	}
	data, err := payload(r, h.CompSize, h.TotalSize)
	if err != nil {
		return nil, err
	}
	for i := range im.Levels {
		n := im.LevelSize(i)
		im.Levels[i], data = data[:n:n], data[n:]
	}
	return im, nil
}

// WriteIMG encodes im as an IMG stream.
// The payload is compressed if compress is set.
func WriteIMG(w io.Writer, im *Image, compress bool) error {
	if err := im.Check(); err != nil {
		return err
	}
	data := bytes.Join(im.Levels, nil)
	h := imgHeader{
		Format:    uint32(im.Format),
		Width:     uint32(im.Width),
		Height:    uint32(im.Height),
		Depth:     uint32(im.Depth),
		TotalSize: uint32(len(data)),
		Levels:    uint32(len(im.Levels)),
	}
	copy(h.ID[:], imgMagic)
	if compress {
		var err error
		if data, err = deflate(data); err != nil {
			return err
		}
	}
	h.CompSize = uint32(len(data))
	// A compressed payload that happens to be the same size
	// as the raw one would be read back as raw.
	if compress && h.CompSize == h.TotalSize {
		return WriteIMG(w, im, false)
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// ReadCUBE decodes a CUBE stream.
func ReadCUBE(r io.Reader) (*Cubemap, error) {
	var h cubeHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if string(h.ID[:]) != cubeMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, h.ID[:])
	}
	if err := checkHeader(Format(h.Format), h.Width, h.Height, 1, h.Levels, 6, h.TotalSize); err != nil {
		return nil, err
	}
	c := &Cubemap{Format: Format(h.Format), Width: int(h.Width), Height: int(h.Height)}
	for i := range c.Faces {
		c.Faces[i] = make([][]byte, h.Levels)
	}
	data, err := payload(r, h.CompSize, h.TotalSize)
	if err != nil {
		return nil, err
	}
	for i := range c.Faces {
		for l := range c.Faces[i] {
			n := c.LevelSize(l)
			c.Faces[i][l], data = data[:n:n], data[n:]
		}
	}
	return c, nil
}

// WriteCUBE encodes c as a compressed CUBE stream.
func WriteCUBE(w io.Writer, c *Cubemap) error {
	if err := c.Check(); err != nil {
		return err
	}
	var raw []byte
	for i := range c.Faces {
		raw = append(raw, bytes.Join(c.Faces[i], nil)...)
	}
	data, err := deflate(raw)
	if err != nil {
		return err
	}
	h := cubeHeader{
		Format:    uint32(c.Format),
		Width:     uint32(c.Width),
		Height:    uint32(c.Height),
		CompSize:  uint32(len(data)),
		TotalSize: uint32(len(raw)),
		Levels:    uint32(c.Levels()),
	}
	copy(h.ID[:], cubeMagic)
	if h.CompSize == h.TotalSize {
		data = raw
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// LoadIMG reads an IMG file.
func LoadIMG(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	im, err := ReadIMG(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return im, nil
}

// SaveIMG writes im to an IMG file.
func SaveIMG(path string, im *Image, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err = WriteIMG(bw, im, compress); err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// LoadCUBE reads a CUBE file.
func LoadCUBE(path string) (*Cubemap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ReadCUBE(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SaveCUBE writes c to a CUBE file.
func SaveCUBE(path string, c *Cubemap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err = WriteCUBE(bw, c); err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
