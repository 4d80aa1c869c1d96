// Copyright 2022 Gustavo C. Viegas. All rights reserved.

//go:build cgo

package wsi

import (
	"fmt"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	if err := initGLFW(); err != nil {
		log.Printf("[!] %v", err)
		initDummy()
	}
}

// initGLFW initializes the GLFW platform.
func initGLFW() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("wsi: GLFW initialization failed: %w", err)
	}
	newWindow = newWindowGLFW
	dispatch = glfw.PollEvents
	getTime = glfw.GetTime
	swapInterval = glfw.SwapInterval
	terminate = glfw.Terminate
	platform = GLFW
	return nil
}

// windowGLFW implements Window.
type windowGLFW struct {
	win    *glfw.Window
	width  int
	height int
	title  string
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// newWindowGLFW creates a new GLFW window.
func newWindowGLFW(width, height int, title string, opts *Options) (Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, opts.Samples)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.Visible, glfw.False)

	gw, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("wsi: failed to create window: %w", err)
	}
	w := &windowGLFW{
		win:    gw,
		width:  width,
		height: height,
		title:  title,
	}
	w.setCallbacks()
	return w, nil
}

func (w *windowGLFW) setCallbacks() {
	w.win.SetCloseCallback(func(*glfw.Window) {
		if windowHandler != nil {
			windowHandler.WindowClose(w)
		}
	})
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		if width == w.width && height == w.height {
			return
		}
		w.width, w.height = width, height
		if windowHandler != nil {
			windowHandler.WindowResize(w, width, height)
		}
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if keyboardHandler == nil {
			return
		}
		if focused {
			keyboardHandler.KeyboardIn(w)
		} else {
			keyboardHandler.KeyboardOut(w)
		}
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if keyboardHandler == nil || action == glfw.Repeat {
			return
		}
		keyboardHandler.KeyboardKey(w, keyFrom(int(key)), action == glfw.Press, modFrom(int(mods)))
	})
	w.win.SetCursorEnterCallback(func(gw *glfw.Window, entered bool) {
		if pointerHandler == nil {
			return
		}
		if entered {
			x, y := gw.GetCursorPos()
			pointerHandler.PointerIn(w, int(x), int(y))
		} else {
			pointerHandler.PointerOut(w)
		}
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if pointerHandler != nil {
			pointerHandler.PointerMotion(w, int(x), int(y))
		}
	})
	w.win.SetMouseButtonCallback(func(gw *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if pointerHandler == nil {
			return
		}
		x, y := gw.GetCursorPos()
		pointerHandler.PointerButton(w, buttonFrom(int(btn)), action == glfw.Press, int(x), int(y))
	})
}

// Map shows the window.
func (w *windowGLFW) Map() { w.win.Show() }

// Unmap hides the window.
func (w *windowGLFW) Unmap() { w.win.Hide() }

// Resize resizes the window.
// The size is updated when the window system
// acknowledges it.
func (w *windowGLFW) Resize(width, height int) { w.win.SetSize(width, height) }

// SetTitle sets the window's title.
func (w *windowGLFW) SetTitle(title string) {
	w.win.SetTitle(title)
	w.title = title
}

// Close closes the window.
func (w *windowGLFW) Close() {
	if w.win == nil {
		return
	}
	closeWindow(w)
	w.win.Destroy()
	w.win = nil
}

// Width returns the window's width.
func (w *windowGLFW) Width() int { return w.width }

// Height returns the window's height.
func (w *windowGLFW) Height() int { return w.height }

// Title returns the window's title.
func (w *windowGLFW) Title() string { return w.title }

// FramebufferSize returns the framebuffer size in pixels.
func (w *windowGLFW) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// ShouldClose reports whether the user asked to close
// the window.
func (w *windowGLFW) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose sets the close flag.
func (w *windowGLFW) SetShouldClose(close bool) { w.win.SetShouldClose(close) }

// MakeCurrent makes the window's context current.
func (w *windowGLFW) MakeCurrent() { w.win.MakeContextCurrent() }

// SwapBuffers swaps the front and back buffers.
func (w *windowGLFW) SwapBuffers() { w.win.SwapBuffers() }

// CursorPos returns the pointer position.
func (w *windowGLFW) CursorPos() (float64, float64) { return w.win.GetCursorPos() }
