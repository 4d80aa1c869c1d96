// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package img

import "fmt"

// Format describes the layout of image texels.
// Its numeric values are stored in IMG and CUBE files
// and must not change.
type Format uint32

// Image formats.
const (
	Unknown Format = iota

	R8
	RG8
	RGB8
	RGBA8
	R16
	RG16
	RGB16
	RGBA16

	R8S
	RG8S
	RGB8S
	RGBA8S
	R16S
	RG16S
	RGB16S
	RGBA16S

	R16F
	RG16F
	RGB16F
	RGBA16F
	R32F
	RG32F
	RGB32F
	RGBA32F

	R16I
	RG16I
	RGB16I
	RGBA16I
	R32I
	RG32I
	RGB32I
	RGBA32I

	R16UI
	RG16UI
	RGB16UI
	RGBA16UI
	R32UI
	RG32UI
	RGB32UI
	RGBA32UI

	RGBE8
	RGB9E5
	RG11B10F
	RGB565
	RGBA4
	RGB10A2

	D16
	D24
	D24S8
	D32F

	DXT1
	DXT3
	DXT5
	ATI1N
	ATI2N
	BC7

	nFormat
)

// Component is the data type of a single channel.
type Component int

// Channel components.
const (
	UByte Component = iota
	Byte
	UShort
	Short
	UInt
	Int
	Float
	Half
	UnknownComponent
)

// Type is the dimensionality of an image.
type Type int

// Image types.
const (
	Type1D      Type = 0
	Type2D      Type = 1
	Type3D      Type = 2
	TypeCube    Type = 3
	TypeUnknown Type = 10
)

func (t Type) String() string {
	switch t {
	case Type1D:
		return "1D"
	case Type2D:
		return "2D"
	case Type3D:
		return "3D"
	case TypeCube:
		return "cube"
	}
	return "unknown"
}

// Valid reports whether f names a known format.
func (f Format) Valid() bool { return f > Unknown && f < nFormat }

// uncompressed color formats come in groups of four
// (one per channel count) that share a component.
func (f Format) group() int {
	if f >= R8 && f <= RGBA32UI {
		return int(f-R8) / 4
	}
	return -1
}

var groupComponents = [...]Component{
	UByte, UShort,
	Byte, Short,
	Half, Float,
	Short, Int,
	UShort, UInt,
}

var groupSizes = [...]int{1, 2, 1, 2, 2, 4, 2, 4, 2, 4}

// Channels returns the number of channels in f.
// Packed and compressed formats report zero.
func (f Format) Channels() int {
	if g := f.group(); g >= 0 {
		return int(f-R8)%4 + 1
	}
	switch f {
	case D16, D24, D32F:
		return 1
	case D24S8:
		return 2
	}
	return 0
}

// Component returns the channel data type of f.
func (f Format) Component() Component {
	if g := f.group(); g >= 0 {
		return groupComponents[g]
	}
	switch f {
	case D16:
		return UShort
	case D24, D24S8:
		return UInt
	case D32F:
		return Float
	}
	return UnknownComponent
}

// BytesPerChannel returns the size of one channel of f,
// or zero for packed and compressed formats.
func (f Format) BytesPerChannel() int {
	if g := f.group(); g >= 0 {
		return groupSizes[g]
	}
	switch f {
	case D16:
		return 2
	case D24, D32F:
		return 4
	case D24S8:
		return 2
	}
	return 0
}

// BytesPerPixel returns the size of one texel of f.
// Compressed formats report zero.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGBE8, RGB9E5, RG11B10F, RGB10A2:
		return 4
	case RGB565, RGBA4:
		return 2
	case D24S8:
		return 4
	}
	return f.Channels() * f.BytesPerChannel()
}

// blockSize returns the size of a 4x4 block of a
// compressed format.
func (f Format) blockSize() int {
	switch f {
	case DXT1, ATI1N:
		return 8
	case DXT3, DXT5, ATI2N, BC7:
		return 16
	}
	return 0
}

// IsDepth reports whether f is a depth format.
func (f Format) IsDepth() bool { return f >= D16 && f <= D32F }

// IsCompressed reports whether f is a block-compressed format.
func (f Format) IsCompressed() bool { return f >= DXT1 && f <= BC7 }

// IsFloat reports whether the channels of f hold floating-point
// values.
func (f Format) IsFloat() bool {
	c := f.Component()
	return c == Float || c == Half || f == RG11B10F || f == RGB9E5 || f == RGBE8
}

var formatNames = [...]string{
	"Unknown",
	"R8", "RG8", "RGB8", "RGBA8", "R16", "RG16", "RGB16", "RGBA16",
	"R8S", "RG8S", "RGB8S", "RGBA8S", "R16S", "RG16S", "RGB16S", "RGBA16S",
	"R16F", "RG16F", "RGB16F", "RGBA16F", "R32F", "RG32F", "RGB32F", "RGBA32F",
	"R16I", "RG16I", "RGB16I", "RGBA16I", "R32I", "RG32I", "RGB32I", "RGBA32I",
	"R16UI", "RG16UI", "RGB16UI", "RGBA16UI", "R32UI", "RG32UI", "RGB32UI", "RGBA32UI",
	"RGBE8", "RGB9E5", "RG11B10F", "RGB565", "RGBA4", "RGB10A2",
	"D16", "D24", "D24S8", "D32F",
	"DXT1", "DXT3", "DXT5", "ATI1N", "ATI2N", "BC7",
}

func (f Format) String() string {
	if f < nFormat {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}
