// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package wsi provides window system integration (WSI)
// for the renderer.
// Windows own an OpenGL context, which the caller makes
// current before opening a driver.
// Because a system need not have a window system, WSI
// is conditionally supported: without cgo, or when GLFW
// fails to initialize, calls to NewWindow always fail.
//
// Every function must be called from the main thread.
package wsi

import (
	"errors"
)

// Window is an on-screen surface with its own GL context.
type Window interface {
	// Map shows the window.
	Map()

	// Unmap hides the window without destroying it.
	Unmap()

	// Resize requests a new size, in screen coordinates.
	Resize(width, height int)

	// SetTitle changes the title bar text.
	SetTitle(title string)

	// Close destroys the window and its context.
	Close()

	// Width returns the current width, in screen
	// coordinates.
	Width() int

	// Height returns the current height, in screen
	// coordinates.
	Height() int

	// Title returns the title bar text.
	Title() string

	// FramebufferSize returns the size of the window's
	// framebuffer, in pixels.
	FramebufferSize() (width, height int)

	// ShouldClose reports whether the user asked to close
	// the window.
	ShouldClose() bool

	// SetShouldClose sets the value returned by
	// ShouldClose.
	SetShouldClose(close bool)

	// MakeCurrent makes the window's context current on
	// the calling thread.
	MakeCurrent()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// CursorPos returns the pointer position relative to
	// the window's top-left corner.
	CursorPos() (x, y float64)
}

// Options configures the context of new windows.
type Options struct {
	// OpenGL version. The context is always a core,
	// forward-compatible profile.
	GLMajor int
	GLMinor int
	// Number of samples of the default framebuffer.
	// Zero disables multisampling.
	Samples   int
	Resizable bool
}

// DefaultOptions returns the options used when NewWindow
// is given nil: a 4.1 context with 4 samples.
func DefaultOptions() Options {
	return Options{GLMajor: 4, GLMinor: 1, Samples: 4, Resizable: true}
}

// NewWindow creates a new hidden window.
// A nil opts means DefaultOptions.
func NewWindow(width, height int, title string, opts *Options) (Window, error) {
	if windowCount >= MaxWindows {
		return nil, errors.New("wsi: too many windows")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("wsi: invalid window size")
	}
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	win, err := newWindow(width, height, title, opts)
	if err != nil {
		return nil, err
	}
	for i := range createdWindows {
		if createdWindows[i] == nil {
			createdWindows[i] = win
			windowCount++
			break
		}
	}
	return win, nil
}

var newWindow func(int, int, string, *Options) (Window, error)

// MaxWindows limits how many windows can be open at
// once.
const MaxWindows = 16

// Windows returns a snapshot of the open windows.
func Windows() []Window {
	if windowCount == 0 {
		return nil
	}
	wins := make([]Window, 0, windowCount)
	for i := range createdWindows {
		if createdWindows[i] != nil {
			wins = append(wins, createdWindows[i])
		}
	}
	return wins
}

// closeWindow removes win from createdWindows and
// decrements windowCount.
// It must be called by implementations on win.Close.
// Note that win must be comparable.
func closeWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == win {
			createdWindows[i] = nil
			windowCount--
			return
		}
	}
}

var (
	windowCount    int
	createdWindows [MaxWindows]Window
)

// Key is the type of keyboard keys.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	KeyGrave
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyBackspace
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLBracket
	KeyRBracket
	KeyBackslash
	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyApostrophe
	KeyReturn
	KeyLShift
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash
	KeyRShift
	KeyLCtrl
	KeyLAlt
	KeyLMeta
	KeySpace
	KeyRMeta
	KeyRAlt
	KeyRCtrl
	KeyEsc
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySysrq
	KeyScrollLock
	KeyPause
	KeyPadNumLock
	KeyPadSlash
	KeyPadStar
	KeyPadMinus
	KeyPadPlus
	KeyPad1
	KeyPad2
	KeyPad3
	KeyPad4
	KeyPad5
	KeyPad6
	KeyPad7
	KeyPad8
	KeyPad9
	KeyPad0
	KeyPadDot
	KeyPadEnter
	KeyPadEqual
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
)

// Modifier is the type of modifier flags.
type Modifier int

// Modifier flags.
const (
	ModCapsLock Modifier = 1 << iota
	ModShift
	ModCtrl
	ModAlt
	ModMeta
)

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
	BtnSide
	BtnForward
	BtnBackward
)

// WindowHandler receives window events.
type WindowHandler interface {
	// WindowClose reports a close request from the
	// window system.
	WindowClose(win Window)

	// WindowResize reports the new size of win, in
	// screen coordinates.
	WindowResize(win Window, newWidth, newHeight int)
}

// SetWindowHandler installs wh as the receiver of window
// events. A nil wh discards them.
func SetWindowHandler(wh WindowHandler) {
	windowHandler = wh
}

var windowHandler WindowHandler

// KeyboardHandler receives keyboard events.
type KeyboardHandler interface {
	// KeyboardIn reports that win gained focus.
	KeyboardIn(win Window)

	// KeyboardOut reports that win lost focus.
	KeyboardOut(win Window)

	// KeyboardKey reports a key transition along with
	// the modifiers active at the time.
	// Auto-repeat does not generate events.
	KeyboardKey(win Window, key Key, pressed bool, modMask Modifier)
}

// SetKeyboardHandler installs kh as the receiver of
// keyboard events.
func SetKeyboardHandler(kh KeyboardHandler) {
	keyboardHandler = kh
}

var keyboardHandler KeyboardHandler

// PointerHandler receives pointer events.
// Positions are relative to the window's top-left
// corner.
type PointerHandler interface {
	// PointerIn reports that the pointer entered win.
	PointerIn(win Window, x, y int)

	// PointerOut reports that the pointer left win.
	PointerOut(win Window)

	// PointerMotion reports a new pointer position.
	PointerMotion(win Window, newX, newY int)

	// PointerButton reports a button transition.
	PointerButton(win Window, btn Button, pressed bool, x, y int)
}

// SetPointerHandler installs ph as the receiver of
// pointer events.
func SetPointerHandler(ph PointerHandler) {
	pointerHandler = ph
}

var pointerHandler PointerHandler

// Dispatch delivers pending events to the installed
// handlers. It does not block.
func Dispatch() {
	dispatch()
}

// Time returns the number of seconds since wsi was
// initialized.
func Time() float64 {
	return getTime()
}

// SwapInterval sets the number of screen updates to wait
// for before swapping buffers of the current context.
func SwapInterval(n int) {
	swapInterval(n)
}

// Terminate destroys every window and releases the
// window system. wsi cannot be used afterwards.
func Terminate() {
	for _, win := range Windows() {
		win.Close()
	}
	terminate()
}

var (
	dispatch     func()
	getTime      func() float64
	swapInterval func(int)
	terminate    func()
)

// Platform identifies the backend behind wsi.
type Platform int

// Platforms.
const (
	// None means no window system: NewWindow fails and
	// Dispatch returns immediately.
	None Platform = iota
	GLFW
)

// PlatformInUse returns the backend selected at init.
func PlatformInUse() Platform {
	return platform
}

var platform Platform
