// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package material implements material descriptions.
//
// A description is a flat set of named parameters, read
// from XML documents of the form:
//
//	<material id="gun" type="unreal">
//		<texture name="diffuse" value="diffuse.png"/>
//		<rgb name="specular" value="0.04 0.04 0.04"/>
//		<float name="roughness" value="0.3"/>
//	</material>
//
// Interpretation of the parameters is left to the engine.
package material

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gviegas/pbr/linear"
)

const prefix = "material: "

var (
	ErrRoot  = errors.New(prefix + "root element is not <material>")
	ErrValue = errors.New(prefix + "malformed parameter value")
)

// Well-known parameter names.
const (
	Diffuse   = "diffuse"
	Normal    = "normal"
	Specular  = "specular"
	Roughness = "roughness"
	Metallic  = "metallic"
)

// Material types.
const (
	Unreal = "unreal"
	Blinn  = "blinn"
)

// ParameterMap holds the parameters of a material.
// Info maps the material id to its type.
type ParameterMap struct {
	Floats   map[string]float32
	RGB      map[string]linear.V3
	Textures map[string]string
	Info     map[string]string
}

// NewParameterMap creates an empty ParameterMap.
func NewParameterMap() *ParameterMap {
	return &ParameterMap{
		Floats:   make(map[string]float32),
		RGB:      make(map[string]linear.V3),
		Textures: make(map[string]string),
		Info:     make(map[string]string),
	}
}

// HasFloat reports whether a float parameter exists.
func (m *ParameterMap) HasFloat(name string) bool { _, ok := m.Floats[name]; return ok }

// HasRGB reports whether an RGB parameter exists.
func (m *ParameterMap) HasRGB(name string) bool { _, ok := m.RGB[name]; return ok }

// HasTexture reports whether a texture parameter exists.
func (m *ParameterMap) HasTexture(name string) bool { _, ok := m.Textures[name]; return ok }

// Float returns the named float, or def if absent.
func (m *ParameterMap) Float(name string, def float32) float32 {
	if x, ok := m.Floats[name]; ok {
		return x
	}
	return def
}

// Color returns the named RGB value, or def if absent.
func (m *ParameterMap) Color(name string, def linear.V3) linear.V3 {
	if c, ok := m.RGB[name]; ok {
		return c
	}
	return def
}

// Texture returns the named texture path, or the empty
// string.
func (m *ParameterMap) Texture(name string) string { return m.Textures[name] }

// Type returns the type of the material identified by id.
func (m *ParameterMap) Type(id string) string { return m.Info[id] }

// HasType reports whether any material in m has type typ.
func (m *ParameterMap) HasType(typ string) bool {
	for _, t := range m.Info {
		if t == typ {
			return true
		}
	}
	return false
}

// SetFloat sets a float parameter.
// Parameters that are already present are kept.
func (m *ParameterMap) SetFloat(name string, x float32) {
	if !m.HasFloat(name) {
		m.Floats[name] = x
	}
}

// SetRGB sets an RGB parameter.
// Parameters that are already present are kept.
func (m *ParameterMap) SetRGB(name string, c linear.V3) {
	if !m.HasRGB(name) {
		m.RGB[name] = c
	}
}

// SetTexture sets a texture parameter.
// Parameters that are already present are kept.
func (m *ParameterMap) SetTexture(name, path string) {
	if !m.HasTexture(name) {
		m.Textures[name] = path
	}
}

type param struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type document struct {
	XMLName  xml.Name `xml:"material"`
	ID       string   `xml:"id,attr"`
	Type     string   `xml:"type,attr"`
	Floats   []param  `xml:"float"`
	RGB      []param  `xml:"rgb"`
	Textures []param  `xml:"texture"`
}

// parseRGB parses three whitespace-separated values.
// Missing components are zero.
func parseRGB(s string) (c linear.V3, err error) {
	f := strings.Fields(s)
	if len(f) > 3 {
		return c, fmt.Errorf("%w: %q", ErrValue, s)
	}
	for i := range f {
		x, err := strconv.ParseFloat(f[i], 32)
		if err != nil {
			return c, fmt.Errorf("%w: %q", ErrValue, s)
		}
		c[i] = float32(x)
	}
	return
}

// LoadXML decodes a material document.
func LoadXML(r io.Reader) (*ParameterMap, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		var unexp xml.UnmarshalError
		if errors.As(err, &unexp) {
			return nil, fmt.Errorf("%w: %v", ErrRoot, err)
		}
		return nil, fmt.Errorf(prefix+"%w", err)
	}
	m := NewParameterMap()
	for _, p := range doc.Floats {
		x, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: float %s: %q", ErrValue, p.Name, p.Value)
		}
		m.SetFloat(p.Name, float32(x))
	}
	for _, p := range doc.RGB {
		c, err := parseRGB(p.Value)
		if err != nil {
			return nil, fmt.Errorf("rgb %s: %w", p.Name, err)
		}
		m.SetRGB(p.Name, c)
	}
	for _, p := range doc.Textures {
		m.SetTexture(p.Name, p.Value)
	}
	m.Info[doc.ID] = doc.Type
	return m, nil
}

// LoadFile decodes the material document at path.
func LoadFile(path string) (*ParameterMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := LoadXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
