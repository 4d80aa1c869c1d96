// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"testing"
)

func TestKeyFrom(t *testing.T) {
	for _, x := range [...]struct {
		code int
		want Key
	}{
		{-1, KeyUnknown},
		{0, KeyUnknown},
		{32, KeySpace},
		{49, Key1},
		{52, Key4},
		{65, KeyA},
		{69, KeyE},
		{71, KeyG},
		{72, KeyH},
		{75, KeyK},
		{80, KeyP},
		{82, KeyR},
		{83, KeyS},
		{87, KeyW},
		{90, KeyZ},
		{96, KeyGrave},
		{256, KeyEsc},
		{290, KeyF1},
		{313, KeyF24},
		{314, KeyUnknown},
		{336, KeyPadEqual},
		{347, KeyRMeta},
		{348, KeyUnknown},
		{1 << 20, KeyUnknown},
	} {
		if k := keyFrom(x.code); k != x.want {
			t.Fatalf("keyFrom(%d):\nhave %d\nwant %d", x.code, k, x.want)
		}
	}

	// Every key but the unknown one is mapped once.
	seen := make(map[Key]int)
	for code, k := range keymap {
		if k == KeyUnknown {
			continue
		}
		if prev, ok := seen[k]; ok {
			t.Fatalf("keymap: key %d mapped by codes %d and %d", k, prev, code)
		}
		seen[k] = code
	}
	if n := len(seen); n != int(KeyF24) {
		t.Fatalf("keymap: mapped keys\nhave %d\nwant %d", n, KeyF24)
	}
}

func TestModFrom(t *testing.T) {
	for _, x := range [...]struct {
		mods int
		want Modifier
	}{
		{0, 0},
		{glfwModShift, ModShift},
		{glfwModShift | glfwModControl, ModShift | ModCtrl},
		{glfwModAlt | glfwModSuper | glfwModCapsLock, ModAlt | ModMeta | ModCapsLock},
		{0x20, 0},
	} {
		if m := modFrom(x.mods); m != x.want {
			t.Fatalf("modFrom(%#x):\nhave %#x\nwant %#x", x.mods, m, x.want)
		}
	}
}

func TestButtonFrom(t *testing.T) {
	for code, want := range [...]Button{BtnLeft, BtnRight, BtnMiddle, BtnBackward, BtnForward, BtnUnknown} {
		if b := buttonFrom(code); b != want {
			t.Fatalf("buttonFrom(%d):\nhave %d\nwant %d", code, b, want)
		}
	}
}

func TestNewWindow(t *testing.T) {
	if _, err := NewWindow(0, 360, "Invalid", nil); err == nil {
		t.Fatal("NewWindow: zero width did not fail")
	}
	if PlatformInUse() != None {
		t.Skip("window system available")
	}
	win, err := NewWindow(480, 360, "Will fail", nil)
	if win != nil || err != errMissing {
		t.Fatalf("NewWindow: win, err\nhave %v, %v\nwant nil, %v", win, err, errMissing)
	}
	if n := len(Windows()); n != 0 {
		t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
	}
	// Dummy Dispatch does nothing.
	Dispatch()
	SwapInterval(1)
	if t0, t1 := Time(), Time(); t1 < t0 || t0 < 0 {
		t.Fatalf("Time: not monotonic: %v, %v", t0, t1)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.GLMajor != 4 || o.GLMinor != 1 || o.Samples != 4 {
		t.Fatalf("DefaultOptions:\nhave %+v", o)
	}
}
