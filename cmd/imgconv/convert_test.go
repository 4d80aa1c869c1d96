// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/pbr/img"
)

type countProgress int

func (c *countProgress) Add(n int) error { *c += countProgress(n); return nil }

// writePNG writes an 8x4 image whose top row is red and
// whose other rows are c.
func writePNG(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			if y == 0 {
				m.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				m.SetNRGBA(x, y, c)
			}
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())
	return path
}

func TestConvertImage(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", color.NRGBA{0, 0, 255, 255})
	out := filepath.Join(dir, "out.img")

	var p countProgress
	o := options{mips: true, compress: true}
	require.NoError(t, convertImage(out, in, &o, &p))
	assert.Equal(t, countProgress(o.steps(1)), p)

	im, err := img.LoadIMG(out)
	require.NoError(t, err)
	assert.Equal(t, img.RGBA8, im.Format)
	assert.Equal(t, 8, im.Width)
	assert.Equal(t, 4, im.Height)
	assert.Len(t, im.Levels, 4)
	assert.Equal(t, []byte{255, 0, 0, 255}, im.Levels[0][:4])
}

func TestConvertImageFlipGray(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", color.NRGBA{255, 255, 255, 255})
	out := filepath.Join(dir, "out.img")

	var p countProgress
	o := options{flipY: true, gray: true}
	require.NoError(t, convertImage(out, in, &o, &p))
	assert.Equal(t, countProgress(1), p)

	im, err := img.LoadIMG(out)
	require.NoError(t, err)
	assert.Equal(t, img.R8, im.Format)
	require.Len(t, im.Levels, 1)
	// The red row is now the last one.
	assert.Equal(t, byte(255), im.Levels[0][0])
	assert.Equal(t, byte(77), im.Levels[0][len(im.Levels[0])-1])
}

func TestConvertCube(t *testing.T) {
	dir := t.TempDir()
	var faces []string
	for i, n := range [...]string{"px", "nx", "py", "ny", "pz", "nz"} {
		faces = append(faces, writePNG(t, dir, n+".png", color.NRGBA{byte(i * 40), 0, 0, 255}))
	}
	out := filepath.Join(dir, "out.cube")

	var p countProgress
	o := options{mips: true}
	require.NoError(t, convertCube(out, faces, &o, &p))
	assert.Equal(t, countProgress(12), p)

	c, err := img.LoadCUBE(out)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Width)
	assert.Equal(t, 4, c.Levels())
	for i := range 6 {
		// Second row holds the face color.
		assert.Equal(t, byte(i*40), c.Faces[i][0][8*4], "face %d", i)
	}

	var buf bytes.Buffer
	require.NoError(t, describe(&buf, out))
	assert.True(t, strings.Contains(buf.String(), "cube"), buf.String())
	assert.True(t, strings.Contains(buf.String(), "8x4, 4 levels"), buf.String())
}

func TestConvertCubeError(t *testing.T) {
	dir := t.TempDir()
	small := writePNG(t, dir, "a.png", color.NRGBA{})
	out := filepath.Join(dir, "out.cube")
	o := options{}

	assert.ErrorIs(t, convertCube(out, []string{small}, &o, noProgress{}), errFaces)

	// A face of a different size.
	f, err := os.Create(filepath.Join(dir, "big.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 16, 16))))
	require.NoError(t, f.Close())
	faces := []string{small, small, small, small, small, filepath.Join(dir, "big.png")}
	assert.ErrorIs(t, convertCube(out, faces, &o, noProgress{}), img.ErrDimension)

	faces[0] = filepath.Join(dir, "none.png")
	assert.ErrorIs(t, convertCube(out, faces, &o, noProgress{}), os.ErrNotExist)
	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	im, err := img.New(img.RGBA8, 4, 2, 1, 2)
	require.NoError(t, err)
	path := filepath.Join(dir, "x.img")
	require.NoError(t, img.SaveIMG(path, im, false))

	var buf bytes.Buffer
	require.NoError(t, describe(&buf, path))
	assert.Equal(t, path+": 2D RGBA8 4x2x1, 2 levels, 40 bytes\n", buf.String())

	assert.Error(t, describe(&buf, filepath.Join(dir, "none.img")))
}
