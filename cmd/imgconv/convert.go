// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gviegas/pbr/img"
)

// progress is notified as each step of a conversion
// completes.
type progress interface {
	Add(n int) error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }

type options struct {
	mips     bool
	compress bool
	flipY    bool
	gray     bool
}

// steps returns the number of progress steps that a
// conversion of n images takes.
func (o *options) steps(n int) int {
	if o.mips {
		return n * 2
	}
	return n
}

var errFaces = errors.New("imgconv: a cubemap needs six faces (px nx py ny pz nz)")

// load reads path and applies the per-image options.
func load(path string, o *options, p progress) (*img.Image, error) {
	im, err := img.Load(path)
	if err != nil {
		return nil, err
	}
	if o.flipY {
		if err := im.FlipY(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if o.gray {
		if err := im.Grayscale(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	p.Add(1)
	if o.mips {
		if err := img.GenMipmaps(im); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		p.Add(1)
	}
	return im, nil
}

// convertImage writes the image at in to an IMG file.
func convertImage(out, in string, o *options, p progress) error {
	im, err := load(in, o, p)
	if err != nil {
		return err
	}
	return img.SaveIMG(out, im, o.compress)
}

// convertCube assembles the six faces into a CUBE file.
func convertCube(out string, faces []string, o *options, p progress) error {
	if len(faces) != 6 {
		return errFaces
	}
	var ims [6]*img.Image
	for i, f := range faces {
		im, err := load(f, o, p)
		if err != nil {
			return err
		}
		ims[i] = im
	}
	c, err := img.CubemapFromFaces(ims)
	if err != nil {
		return fmt.Errorf("imgconv: faces: %w", err)
	}
	return img.SaveCUBE(out, c)
}

// describe writes a summary of an IMG or CUBE file.
func describe(w io.Writer, path string) error {
	if c, err := img.LoadCUBE(path); err == nil {
		_, err = fmt.Fprintf(w, "%s: cube %v %dx%d, %d levels, %d bytes\n",
			path, c.Format, c.Width, c.Height, c.Levels(), c.TotalSize())
		return err
	}
	im, err := img.LoadIMG(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %v %v %dx%dx%d, %d levels, %d bytes\n",
		path, im.Type(), im.Format, im.Width, im.Height, im.Depth, len(im.Levels), im.TotalSize())
	return err
}
