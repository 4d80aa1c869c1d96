// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

// keyFrom returns the Key value that represents a GLFW
// key code.
// Negative codes (GLFW_KEY_UNKNOWN) and codes past the
// end of keymap are KeyUnknown.
func keyFrom(code int) Key {
	if code < 0 || code >= len(keymap) {
		return KeyUnknown
	}
	return keymap[code]
}

// keymap is indexed by GLFW key codes.
var keymap = [...]Key{
	32: KeySpace,
	39: KeyApostrophe,
	44: KeyComma,
	45: KeyMinus,
	46: KeyDot,
	47: KeySlash,
	48: Key0,
	49: Key1,
	50: Key2,
	51: Key3,
	52: Key4,
	53: Key5,
	54: Key6,
	55: Key7,
	56: Key8,
	57: Key9,
	59: KeySemicolon,
	61: KeyEqual,
	65: KeyA,
	66: KeyB,
	67: KeyC,
	68: KeyD,
	69: KeyE,
	70: KeyF,
	71: KeyG,
	72: KeyH,
	73: KeyI,
	74: KeyJ,
	75: KeyK,
	76: KeyL,
	77: KeyM,
	78: KeyN,
	79: KeyO,
	80: KeyP,
	81: KeyQ,
	82: KeyR,
	83: KeyS,
	84: KeyT,
	85: KeyU,
	86: KeyV,
	87: KeyW,
	88: KeyX,
	89: KeyY,
	90: KeyZ,
	91: KeyLBracket,
	92: KeyBackslash,
	93: KeyRBracket,
	96: KeyGrave,

	256: KeyEsc,
	257: KeyReturn,
	258: KeyTab,
	259: KeyBackspace,
	260: KeyInsert,
	261: KeyDelete,
	262: KeyRight,
	263: KeyLeft,
	264: KeyDown,
	265: KeyUp,
	266: KeyPageUp,
	267: KeyPageDown,
	268: KeyHome,
	269: KeyEnd,
	280: KeyCapsLock,
	281: KeyScrollLock,
	282: KeyPadNumLock,
	283: KeySysrq,
	284: KeyPause,

	290: KeyF1,
	291: KeyF2,
	292: KeyF3,
	293: KeyF4,
	294: KeyF5,
	295: KeyF6,
	296: KeyF7,
	297: KeyF8,
	298: KeyF9,
	299: KeyF10,
	300: KeyF11,
	301: KeyF12,
	302: KeyF13,
	303: KeyF14,
	304: KeyF15,
	305: KeyF16,
	306: KeyF17,
	307: KeyF18,
	308: KeyF19,
	309: KeyF20,
	310: KeyF21,
	311: KeyF22,
	312: KeyF23,
	313: KeyF24,

	320: KeyPad0,
	321: KeyPad1,
	322: KeyPad2,
	323: KeyPad3,
	324: KeyPad4,
	325: KeyPad5,
	326: KeyPad6,
	327: KeyPad7,
	328: KeyPad8,
	329: KeyPad9,
	330: KeyPadDot,
	331: KeyPadSlash,
	332: KeyPadStar,
	333: KeyPadMinus,
	334: KeyPadPlus,
	335: KeyPadEnter,
	336: KeyPadEqual,

	340: KeyLShift,
	341: KeyLCtrl,
	342: KeyLAlt,
	343: KeyLMeta,
	344: KeyRShift,
	345: KeyRCtrl,
	346: KeyRAlt,
	347: KeyRMeta,
}

// GLFW modifier bits.
const (
	glfwModShift    = 0x01
	glfwModControl  = 0x02
	glfwModAlt      = 0x04
	glfwModSuper    = 0x08
	glfwModCapsLock = 0x10
)

// modFrom converts a GLFW modifier mask.
func modFrom(mods int) (m Modifier) {
	for _, x := range [...]struct {
		bit int
		mod Modifier
	}{
		{glfwModShift, ModShift},
		{glfwModControl, ModCtrl},
		{glfwModAlt, ModAlt},
		{glfwModSuper, ModMeta},
		{glfwModCapsLock, ModCapsLock},
	} {
		if mods&x.bit != 0 {
			m |= x.mod
		}
	}
	return
}

// buttonFrom converts a GLFW mouse button.
func buttonFrom(b int) Button {
	switch b {
	case 0:
		return BtnLeft
	case 1:
		return BtnRight
	case 2:
		return BtnMiddle
	case 3:
		return BtnBackward
	case 4:
		return BtnForward
	}
	return BtnUnknown
}
