// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gviegas/pbr/linear"
)

// ErrOBJ means that an OBJ stream is malformed.
var ErrOBJ = errors.New(prefix + "malformed OBJ data")

// objDecoder accumulates the attribute pools of an OBJ
// stream and the face corners that reference them.
type objDecoder struct {
	line      int
	positions []linear.V3
	normals   []linear.V3
	uvs       []linear.V2
	verts     []Vertex
}

func (dec *objDecoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrOBJ, dec.line, fmt.Sprintf(format, args...))
}

// LoadOBJ decodes the geometry of a Wavefront OBJ stream.
// Every face corner becomes a new vertex and indices are
// sequential. Polygons are triangulated as fans.
// Texture coordinates are flipped vertically, and faces
// without normals get a flat face normal.
// Objects, groups and materials are ignored; tangents are
// computed after decoding.
func LoadOBJ(r io.Reader) (*Geometry, error) {
	var dec objDecoder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		dec.line++
		if err := dec.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(dec.verts) == 0 {
		return nil, ErrNoVertices
	}
	idx := make([]uint32, len(dec.verts))
	for i := range idx {
		idx[i] = uint32(i)
	}
	g := New(dec.verts, idx)
	g.ComputeTangents()
	return g, nil
}

// LoadOBJFile is like LoadOBJ but reads from a file.
func LoadOBJFile(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := LoadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		v, err := dec.floats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.positions = append(dec.positions, linear.V3{v[0], v[1], v[2]})
	case "vn":
		v, err := dec.floats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.normals = append(dec.normals, linear.V3{v[0], v[1], v[2]})
	case "vt":
		v, err := dec.floats(fields[1:], 2)
		if err != nil {
			return err
		}
		dec.uvs = append(dec.uvs, linear.V2{v[0], 1 - v[1]})
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

func (dec *objDecoder) floats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.errorf("expected %d values, found %d", n, len(fields))
	}
	v := make([]float32, n)
	for i := range v {
		x, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, dec.errorf("%v", err)
		}
		v[i] = float32(x)
	}
	return v, nil
}

// index resolves a 1-based (or negative, relative) OBJ
// index into a pool of length n.
func (dec *objDecoder) index(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.errorf("%v", err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, dec.errorf("index 0")
	}
	if i < 0 || i >= n {
		return 0, dec.errorf("index %s out of range", s)
	}
	return i, nil
}

// corner parses one v[/vt][/vn] reference.
// It reports whether the corner has a normal.
func (dec *objDecoder) corner(s string) (v Vertex, hasNorm bool, err error) {
	parts := strings.Split(s, "/")
	i, err := dec.index(parts[0], len(dec.positions))
	if err != nil {
		return
	}
	v.Position = dec.positions[i]
	if len(parts) > 1 && parts[1] != "" {
		if i, err = dec.index(parts[1], len(dec.uvs)); err != nil {
			return
		}
		v.UV = dec.uvs[i]
	}
	if len(parts) > 2 && parts[2] != "" {
		if i, err = dec.index(parts[2], len(dec.normals)); err != nil {
			return
		}
		v.Normal = dec.normals[i]
		hasNorm = true
	}
	return
}

func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.errorf("face with %d corners", len(fields))
	}
	corners := make([]Vertex, len(fields))
	flat := false
	for i, f := range fields {
		v, hasNorm, err := dec.corner(f)
		if err != nil {
			return err
		}
		corners[i] = v
		flat = flat || !hasNorm
	}
	for i := 1; i+1 < len(corners); i++ {
		tri := [3]Vertex{corners[0], corners[i], corners[i+1]}
		if flat {
			var e1, e2, n linear.V3
			e1.Sub(&tri[1].Position, &tri[0].Position)
			e2.Sub(&tri[2].Position, &tri[0].Position)
			n.Cross(&e1, &e2)
			n.Norm(&n)
			for j := range tri {
				tri[j].Normal = n
			}
		}
		dec.verts = append(dec.verts, tri[:]...)
	}
	return nil
}
