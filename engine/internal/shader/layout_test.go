// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/gviegas/pbr/linear"
)

func checkSlicesT(x, y []float32, t *testing.T, prefix string) {
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		if x[i] != y[i] {
			t.Fatalf("%s: slices differ at index %d\n%v != %v", prefix, i, x[i], y[i])
		}
	}
}

func TestCameraLayout(t *testing.T) {
	// [0:16]
	col := linear.V4{-12, -13, -14, -15}
	v := linear.M4{col, col, col, col}

	// [16:32]
	col = linear.V4{21, -43, 41, -87}
	p := linear.M4{col, col, col, col}

	// [32:48]
	col = linear.V4{12, 34, 56, 78}
	vp := linear.M4{col, col, col, col}

	// [48:51]
	pos := linear.V3{-1, 2, 3.5}

	var l CameraLayout
	l.SetV(&v)
	l.SetP(&p)
	l.SetVP(&vp)
	l.SetPosition(&pos)

	s := "CameraLayout."

	checkSlicesT(l[0:16], unsafe.Slice((*float32)(unsafe.Pointer(&v)), 16), t, s+"SetV")
	checkSlicesT(l[16:32], unsafe.Slice((*float32)(unsafe.Pointer(&p)), 16), t, s+"SetP")
	checkSlicesT(l[32:48], unsafe.Slice((*float32)(unsafe.Pointer(&vp)), 16), t, s+"SetVP")
	checkSlicesT(l[48:51], pos[:], t, s+"SetPosition")
	if x := l[51]; x != 0 {
		t.Fatalf("%s[51]:\nhave %v\nwant 0", s, x)
	}

	if n := len(l.Bytes()); n != 52*4 {
		t.Fatalf("%sBytes: len\nhave %d\nwant %d", s, n, 52*4)
	}
	if b := l.Bytes(); math.Float32frombits(binary.LittleEndian.Uint32(b[48*4:])) != pos[0] {
		t.Fatalf("%sBytes: position does not alias the layout", s)
	}
}

func TestLightLayout(t *testing.T) {
	var l LightLayout
	s := "LightLayout."

	if typ := l.Type(); typ != PointLight {
		t.Fatalf("%sType:\nhave %d\nwant %d", s, typ, PointLight)
	}
	if l.On() {
		t.Fatalf("%sOn:\nhave true\nwant false", s)
	}

	pos := linear.V3{10, -20, 30}
	emis := linear.V3{0.5, 1, 2}
	l.SetPosition(&pos)
	l.SetAux(0.61)
	l.SetEmission(&emis)
	l.SetType(SpotLight)
	l.SetOn(true)

	checkSlicesT(l[0:3], pos[:], t, s+"SetPosition")
	checkSlicesT(l[3:4], []float32{0.61}, t, s+"SetAux")
	checkSlicesT(l[4:7], emis[:], t, s+"SetEmission")
	if typ := l.Type(); typ != SpotLight {
		t.Fatalf("%sType:\nhave %d\nwant %d", s, typ, SpotLight)
	}
	if x := *(*int32)(unsafe.Pointer(&l[7])); x != SpotLight {
		t.Fatalf("%sSetType: bits\nhave %d\nwant %d", s, x, SpotLight)
	}
	if !l.On() {
		t.Fatalf("%sOn:\nhave false\nwant true", s)
	}
	if x := *(*int32)(unsafe.Pointer(&l[8])); x != 1 {
		t.Fatalf("%sSetOn: bits\nhave %d\nwant 1", s, x)
	}
	l.SetOn(false)
	if l.On() {
		t.Fatalf("%sSetOn(false):\nhave true\nwant false", s)
	}
	l.SetType(DirectLight)
	if typ := l.Type(); typ != DirectLight {
		t.Fatalf("%sType:\nhave %d\nwant %d", s, typ, DirectLight)
	}
	checkSlicesT(l[9:], []float32{0, 0, 0}, t, s+"(unused)")
}

func TestLightsLayout(t *testing.T) {
	var l LightsLayout
	if n := len(l.Bytes()); n != 192 {
		t.Fatalf("LightsLayout.Bytes: len\nhave %d\nwant 192", n)
	}
	// std140 array stride of the light struct.
	if n := unsafe.Sizeof(l[0]); n != 48 {
		t.Fatalf("LightLayout size:\nhave %d\nwant 48", n)
	}
	pos := linear.V3{1, 2, 3}
	l[2].SetPosition(&pos)
	b := l.Bytes()
	if x := math.Float32frombits(binary.LittleEndian.Uint32(b[2*48+4:])); x != 2 {
		t.Fatalf("LightsLayout.Bytes: light 2\nhave %v\nwant 2", x)
	}
}

func TestRendererLayout(t *testing.T) {
	var l RendererLayout
	l.SetGamma(2.4)
	l.SetExposure(3)
	l.SetTone(0.15, 0.5, 0.1, 0.2, 0.02, 0.3, 11.2)

	want := []float32{2.4, 3, 0.15, 0.5, 0.1, 0.2, 0.02, 0.3, 11.2, 0, 0, 0}
	checkSlicesT(l[:], want, t, "RendererLayout")

	var m RendererLayout
	m.SetTone(0.15, 0.5, 0.1, 0.2, 0.02, 0.3, 11.2)
	m.SetExposure(3)
	m.SetGamma(2.4)
	if !bytes.Equal(l.Bytes(), m.Bytes()) {
		t.Fatalf("RendererLayout.Bytes:\nhave %v\nwant %v", m.Bytes(), l.Bytes())
	}
	if n := len(l.Bytes()); n != 48 {
		t.Fatalf("RendererLayout.Bytes: len\nhave %d\nwant 48", n)
	}
}
