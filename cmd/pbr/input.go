// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"github.com/gviegas/pbr/wsi"
)

type keyPress struct {
	key wsi.Key
	mod wsi.Modifier
}

// input accumulates window events between frames.
// It implements the wsi handler interfaces.
type input struct {
	held    [wsi.KeyF24 + 1]bool
	presses []keyPress

	// Right button held.
	look bool
	// Averaged pointer motion of the current frame.
	// dx grows leftwards and dy downwards.
	dx, dy float32
	x, y   int
	hasPos bool

	clicks [][2]int

	resized bool
	quit    bool
}

func (in *input) WindowClose(wsi.Window) { in.quit = true }

func (in *input) WindowResize(wsi.Window, int, int) { in.resized = true }

func (in *input) KeyboardIn(wsi.Window) {}

// KeyboardOut releases every key, since no release
// event will arrive while unfocused.
func (in *input) KeyboardOut(wsi.Window) {
	clear(in.held[:])
	in.look = false
}

func (in *input) KeyboardKey(_ wsi.Window, key wsi.Key, pressed bool, mod wsi.Modifier) {
	if key <= wsi.KeyUnknown || int(key) >= len(in.held) {
		return
	}
	in.held[key] = pressed
	if pressed {
		in.presses = append(in.presses, keyPress{key, mod})
	}
}

func (in *input) PointerIn(_ wsi.Window, x, y int) {
	in.x, in.y, in.hasPos = x, y, true
}

func (in *input) PointerOut(wsi.Window) { in.hasPos = false }

func (in *input) PointerMotion(_ wsi.Window, x, y int) {
	if in.hasPos {
		dx := float32(in.x - x)
		dy := float32(y - in.y)
		in.dx = (in.dx + dx) / 2
		in.dy = (in.dy + dy) / 2
	}
	in.x, in.y, in.hasPos = x, y, true
}

func (in *input) PointerButton(_ wsi.Window, btn wsi.Button, pressed bool, x, y int) {
	switch btn {
	case wsi.BtnRight:
		in.look = pressed
	case wsi.BtnLeft:
		if pressed {
			in.clicks = append(in.clicks, [2]int{x, y})
		}
	}
}

// Held reports whether key is down.
func (in *input) Held(key wsi.Key) bool {
	return key > wsi.KeyUnknown && int(key) < len(in.held) && in.held[key]
}

// endFrame discards the events consumed by a frame.
// Held keys and buttons persist.
func (in *input) endFrame() {
	in.presses = in.presses[:0]
	in.clicks = in.clicks[:0]
	in.dx, in.dy = 0, 0
	in.resized = false
}
