// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package img

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		f    Format
		n    int
		bpp  int
		comp Component
	}{
		{R8, 1, 1, UByte},
		{RGBA8, 4, 4, UByte},
		{RGB16, 3, 6, UShort},
		{RG8S, 2, 2, Byte},
		{RGBA16S, 4, 8, Short},
		{RGB16F, 3, 6, Half},
		{RGBA32F, 4, 16, Float},
		{R16I, 1, 2, Short},
		{RG32I, 2, 8, Int},
		{RGBA16UI, 4, 8, UShort},
		{R32UI, 1, 4, UInt},
		{RGB565, 0, 2, UnknownComponent},
		{RG11B10F, 0, 4, UnknownComponent},
		{D16, 1, 2, UShort},
		{D24, 1, 4, UInt},
		{D24S8, 2, 4, UInt},
		{D32F, 1, 4, Float},
		{BC7, 0, 0, UnknownComponent},
	}
	for _, c := range cases {
		assert.Equal(t, c.n, c.f.Channels(), "%v.Channels", c.f)
		assert.Equal(t, c.bpp, c.f.BytesPerPixel(), "%v.BytesPerPixel", c.f)
		assert.Equal(t, c.comp, c.f.Component(), "%v.Component", c.f)
	}
	assert.True(t, D24S8.IsDepth())
	assert.False(t, RGBA32UI.IsDepth())
	assert.True(t, DXT1.IsCompressed())
	assert.False(t, D32F.IsCompressed())
	assert.False(t, Unknown.Valid())
	assert.False(t, nFormat.Valid())
	assert.Equal(t, Format(56), BC7, "format values are persisted")
	assert.Equal(t, "RGB9E5", RGB9E5.String())
}

func TestType(t *testing.T) {
	assert.Equal(t, Type3D, (&Image{Width: 4, Height: 4, Depth: 2}).Type())
	assert.Equal(t, Type2D, (&Image{Width: 4, Height: 2, Depth: 1}).Type())
	assert.Equal(t, Type1D, (&Image{Width: 4, Height: 1, Depth: 1}).Type())
	assert.Equal(t, TypeUnknown, (&Image{Width: 1, Height: 1, Depth: 1}).Type())
}

func TestNew(t *testing.T) {
	im, err := New(RGBA8, 8, 4, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{128, 32, 8, 4}, []int{len(im.Levels[0]), len(im.Levels[1]), len(im.Levels[2]), len(im.Levels[3])})
	assert.Equal(t, 172, im.TotalSize())
	assert.Equal(t, 1, MipDimension(4, 5))
	assert.Equal(t, 4, MaxLevels(8, 4, 1))

	_, err = New(Unknown, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrFormat)
	_, err = New(R8, 0, 1, 1, 1)
	assert.ErrorIs(t, err, ErrDimension)
	_, err = New(R8, 8, 8, 1, 5)
	assert.ErrorIs(t, err, ErrLevels)

	im, err = New(DXT5, 6, 6, 1, 1)
	require.NoError(t, err)
	assert.Len(t, im.Levels[0], 64, "compressed sizes round up to whole blocks")
}

func TestFlip(t *testing.T) {
	im := &Image{R8, 2, 3, 1, [][]byte{{1, 2, 3, 4, 5, 6}, {7}}}
	require.NoError(t, im.FlipY())
	assert.Equal(t, []byte{5, 6, 3, 4, 1, 2}, im.Levels[0])
	assert.Equal(t, []byte{7}, im.Levels[1])
	require.NoError(t, im.FlipX())
	assert.Equal(t, []byte{6, 5, 4, 3, 2, 1}, im.Levels[0])
}

func TestGrayscale(t *testing.T) {
	im := &Image{RGB8, 2, 1, 1, [][]byte{{255, 255, 255, 255, 0, 0}}}
	require.NoError(t, im.Grayscale())
	assert.Equal(t, R8, im.Format)
	assert.Equal(t, []byte{255, 77}, im.Levels[0])

	im16 := &Image{RGBA16, 1, 1, 1, [][]byte{{0, 0, 0, 1, 0, 0, 0xff, 0xff}}}
	require.NoError(t, im16.Grayscale())
	assert.Equal(t, R16, im16.Format)
	assert.Equal(t, uint16((151*256+128)>>8), binary.LittleEndian.Uint16(im16.Levels[0]))

	assert.ErrorIs(t, (&Image{RG8, 1, 1, 1, [][]byte{{0, 0}}}).Grayscale(), ErrUnsupported)
	assert.ErrorIs(t, (&Image{RGB32F, 1, 1, 1, [][]byte{make([]byte, 12)}}).Grayscale(), ErrUnsupported)
	assert.ErrorIs(t, (&Image{RGB8, 2, 2, 2, [][]byte{make([]byte, 24)}}).Grayscale(), ErrUnsupported)
}

func TestToneMap(t *testing.T) {
	data := make([]byte, 16)
	for i, v := range []float32{0, 1, 3, 1000} {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	im := &Image{RGBA32F, 1, 1, 1, [][]byte{data}}
	require.NoError(t, im.ToneMap(1))
	assert.Equal(t, RGB8, im.Format)
	assert.Equal(t, []byte{0, 127, 191}, im.Levels[0])
	assert.ErrorIs(t, (&Image{RGBA8, 1, 1, 1, [][]byte{data[:4]}}).ToneMap(1), ErrUnsupported)
}

func TestIMG(t *testing.T) {
	im, err := New(RGBA8, 4, 4, 1, 3)
	require.NoError(t, err)
	for l := range im.Levels {
		for i := range im.Levels[l] {
			im.Levels[l][i] = byte(l*64 + i)
		}
	}
	for _, compress := range []bool{false, true} {
		var b bytes.Buffer
		require.NoError(t, WriteIMG(&b, im, compress))
		hdr := b.Bytes()[:32]
		assert.Equal(t, "IMG ", string(hdr[:4]))
		total := binary.LittleEndian.Uint32(hdr[24:])
		assert.Equal(t, uint32(im.TotalSize()), total)
		if !compress {
			assert.Equal(t, total, binary.LittleEndian.Uint32(hdr[20:]))
			assert.Equal(t, 32+im.TotalSize(), b.Len())
		}
		got, err := ReadIMG(&b)
		require.NoError(t, err)
		assert.Equal(t, im, got)
	}

	_, err = ReadIMG(bytes.NewReader([]byte("JPEG0000000000000000000000000000")))
	assert.ErrorIs(t, err, ErrCorrupt)
	var b bytes.Buffer
	require.NoError(t, WriteIMG(&b, im, true))
	_, err = ReadIMG(bytes.NewReader(b.Bytes()[:b.Len()-4]))
	assert.ErrorIs(t, err, ErrCorrupt, "truncated payload")
}

func TestReadHeaderSize(t *testing.T) {
	header := func(magic string, fields ...uint32) *bytes.Buffer {
		var b bytes.Buffer
		b.WriteString(magic)
		require.NoError(t, binary.Write(&b, binary.LittleEndian, fields))
		return &b
	}

	// 65536x65536 RGBA8 is 1<<34 bytes, which is 0 in 32 bits.
	_, err := ReadIMG(header("IMG ", uint32(RGBA8), 65536, 65536, 1, 0, 0, 1))
	assert.ErrorIs(t, err, ErrCorrupt, "oversized IMG")
	_, err = ReadCUBE(header("CUBE", uint32(RGBA8), 32768, 32768, 0, 0, 1))
	assert.ErrorIs(t, err, ErrCorrupt, "oversized CUBE")

	// 4x4 RGBA8 is 64 bytes.
	_, err = ReadIMG(header("IMG ", uint32(RGBA8), 4, 4, 1, 63, 63, 1))
	assert.ErrorIs(t, err, ErrCorrupt, "IMG size mismatch")
	_, err = ReadCUBE(header("CUBE", uint32(RGBA8), 4, 4, 6*65, 6*65, 1))
	assert.ErrorIs(t, err, ErrCorrupt, "CUBE size mismatch")

	// A file that claims far more data than it holds.
	_, err = ReadIMG(header("IMG ", uint32(R8), 65536, 65535, 1, 65536*65535, 65536*65535, 1))
	assert.ErrorIs(t, err, ErrCorrupt, "empty IMG")
	b := header("IMG ", uint32(R8), 65535, 65535, 1, 65535*65535, 65535*65535, 1)
	b.Write(make([]byte, 100))
	_, err = ReadIMG(b)
	assert.ErrorIs(t, err, ErrCorrupt, "truncated IMG")

	_, err = ReadIMG(header("IMG ", uint32(RGBA8), 0, 4, 1, 0, 0, 1))
	assert.ErrorIs(t, err, ErrDimension)
	_, err = ReadIMG(header("IMG ", uint32(RGBA8), 4, 4, 1, 64, 64, 1<<32-1))
	assert.ErrorIs(t, err, ErrLevels)
}

func TestCUBE(t *testing.T) {
	c, err := NewCubemap(R8, 2, 2, 2)
	require.NoError(t, err)
	for i := range c.Faces {
		c.Faces[i][0][0] = byte(i + 1)
		c.Faces[i][1][0] = byte(i + 10)
	}
	assert.Equal(t, 6*5, c.TotalSize())

	var b bytes.Buffer
	require.NoError(t, WriteCUBE(&b, c))
	assert.Equal(t, "CUBE", string(b.Bytes()[:4]))
	got, err := ReadCUBE(&b)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	path := filepath.Join(t.TempDir(), "env.cube")
	require.NoError(t, SaveCUBE(path, c))
	got, err = LoadCUBE(path)
	require.NoError(t, err)
	for i := range got.Faces {
		assert.Equal(t, byte(i+1), got.Face(i).Levels[0][0], "face %s", FaceNames[i])
	}

	var faces [6]*Image
	for i := range faces {
		faces[i] = c.Face(i)
	}
	faces[3] = &Image{R8, 4, 4, 1, [][]byte{make([]byte, 16)}}
	_, err = CubemapFromFaces(faces)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestDecode(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	m.Set(1, 1, color.NRGBA{0, 0, 255, 128})
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, m))
	im, err := Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, RGBA8, im.Format)
	assert.Equal(t, []byte{255, 0, 0, 255}, im.Levels[0][:4])
	assert.Equal(t, []byte{0, 0, 255, 128}, im.Levels[0][12:])

	g := image.NewGray16(image.Rect(0, 0, 1, 1))
	g.SetGray16(0, 0, color.Gray16{0x1234})
	b.Reset()
	require.NoError(t, png.Encode(&b, g))
	im, err = Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, R16, im.Format)
	assert.Equal(t, []byte{0x34, 0x12}, im.Levels[0])
}

func TestGenMipmaps(t *testing.T) {
	im := &Image{RGBA8, 4, 2, 1, [][]byte{bytes.Repeat([]byte{200, 100, 50, 255}, 8)}}
	require.NoError(t, GenMipmaps(im))
	require.Len(t, im.Levels, 3)
	assert.NoError(t, im.Check())
	for i, want := range []byte{200, 100, 50, 255} {
		assert.InDelta(t, want, im.Levels[2][i], 1, "channel %d", i)
	}
	assert.ErrorIs(t, GenMipmaps(&Image{RGBA32F, 1, 1, 1, [][]byte{make([]byte, 16)}}), ErrUnsupported)
}

func TestSavePNG(t *testing.T) {
	im := &Image{RGB8, 2, 1, 1, [][]byte{{1, 2, 3, 4, 5, 6}}}
	path := filepath.Join(t.TempDir(), "snapshot.png")
	require.NoError(t, Save(path, im))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, RGBA8, got.Format)
	assert.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, got.Levels[0])
	assert.ErrorIs(t, SavePNG(path, &Image{RGBA32F, 1, 1, 1, [][]byte{make([]byte, 16)}}), ErrUnsupported)
	assert.Error(t, Save(filepath.Join(t.TempDir(), "x.exr"), im))
}
