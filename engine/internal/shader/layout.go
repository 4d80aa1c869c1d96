// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"unsafe"

	"github.com/gviegas/pbr/linear"
)

// CameraLayout is the layout of per-frame camera data.
// It is defined as follows:
//
//	[0:16]  | view matrix
//	[16:32] | projection matrix
//	[32:48] | view-projection matrix
//	[48:51] | camera position
//	[51]    | (unused)
type CameraLayout [52]float32

// SetV sets the view matrix.
func (l *CameraLayout) SetV(m *linear.M4) { copyM4(l[:16], m) }

// SetP sets the projection matrix.
func (l *CameraLayout) SetP(m *linear.M4) { copyM4(l[16:32], m) }

// SetVP sets the view-projection matrix.
func (l *CameraLayout) SetVP(m *linear.M4) { copyM4(l[32:48], m) }

// SetPosition sets the camera position.
func (l *CameraLayout) SetPosition(p *linear.V3) { l[48], l[49], l[50] = p[0], p[1], p[2] }

// Bytes returns the raw layout data.
func (l *CameraLayout) Bytes() []byte { return bytesOf(l[:]) }

func copyM4(dst []float32, m *linear.M4) {
	copy(dst, unsafe.Slice((*float32)(unsafe.Pointer(m)), 16))
}

func bytesOf(s []float32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*4)
}

func int32Bits(i int32) float32 { return *(*float32)(unsafe.Pointer(&i)) }

// LightLayout is the layout of light data.
// It is defined as follows:
//
//	[0:3]   | position, or direction for directional lights
//	[3]     | auxiliary value (spot light cutoff)
//	[4:7]   | emission (color times intensity)
//	[7]     | light type (int32)
//	[8]     | whether the light is on (int32)
//	[9:12]  | (unused)
type LightLayout [12]float32

// MaxLight is the number of lights in LightsLayout.
const MaxLight = 4

// LightsLayout is the layout of the light array.
type LightsLayout [MaxLight]LightLayout

// Bytes returns the raw layout data.
func (l *LightsLayout) Bytes() []byte {
	return bytesOf(unsafe.Slice(&l[0][0], MaxLight*len(l[0])))
}

// Types of light.
const (
	PointLight int32 = iota
	SpotLight
	DirectLight
)

// SetPosition sets the position, or the direction of a
// DirectLight.
func (l *LightLayout) SetPosition(p *linear.V3) { l[0], l[1], l[2] = p[0], p[1], p[2] }

// SetAux sets the auxiliary value.
// Used for SpotLight.
func (l *LightLayout) SetAux(x float32) { l[3] = x }

// SetEmission sets the emission.
func (l *LightLayout) SetEmission(c *linear.V3) { l[4], l[5], l[6] = c[0], c[1], c[2] }

// SetType sets the light type.
func (l *LightLayout) SetType(typ int32) { l[7] = int32Bits(typ) }

// SetOn sets whether the light is on.
func (l *LightLayout) SetOn(on bool) {
	var bool32 int32
	if on {
		bool32 = 1
	}
	l[8] = int32Bits(bool32)
}

// Type returns the light type.
func (l *LightLayout) Type() int32 { return *(*int32)(unsafe.Pointer(&l[7])) }

// On returns whether the light is on.
func (l *LightLayout) On() bool { return *(*int32)(unsafe.Pointer(&l[8])) != 0 }

// RendererLayout is the layout of tone mapping data.
// It is defined as follows:
//
//	[0]     | gamma
//	[1]     | exposure
//	[2:9]   | tone curve parameters A, B, C, D, E, F, W
//	[9:12]  | (unused)
type RendererLayout [12]float32

// SetGamma sets the gamma.
func (l *RendererLayout) SetGamma(g float32) { l[0] = g }

// SetExposure sets the exposure.
func (l *RendererLayout) SetExposure(e float32) { l[1] = e }

// SetTone sets the tone curve parameters.
func (l *RendererLayout) SetTone(a, b, c, d, e, f, w float32) {
	l[2], l[3], l[4], l[5], l[6], l[7], l[8] = a, b, c, d, e, f, w
}

// Bytes returns the raw layout data.
func (l *RendererLayout) Bytes() []byte { return bytesOf(l[:]) }
