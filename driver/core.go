// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// GL is the main interface to an underlying driver
// implementation.
// It exposes the subset of a GL 4.1 core context that
// is needed to create, bind and draw resources.
// A GL is obtained from a call to Driver.Open.
// It is bound to the thread that owns the native context
// and must not be used concurrently.
//
// Objects are identified by native names (uint32).
// The name 0 never identifies a live object, and
// binding it unbinds the current object of a target.
type GL interface {
	// Driver returns the Driver that owns the GL.
	Driver() Driver

	// GenTexture creates a new texture name.
	GenTexture() uint32

	// DeleteTexture deletes a texture.
	DeleteTexture(tex uint32)

	// ActiveTexture selects the texture unit that
	// BindTexture affects.
	ActiveTexture(unit int)

	// BindTexture binds tex to target in the active
	// texture unit.
	// target must not be a cube face.
	BindTexture(target TexTarget, tex uint32)

	// TexImage specifies the storage of one level of the
	// texture bound to target (or to its cube map, if
	// target is a cube face).
	// data may be nil, in which case the contents of the
	// level are undefined.
	TexImage(target TexTarget, level int, ifmt InternalFmt, width, height, depth int, pf PixelFmt, pt PixelType, data []byte)

	// TexImageMultisample specifies the storage of the
	// multisample texture bound to target.
	TexImageMultisample(target TexTarget, samples int, ifmt InternalFmt, width, height int)

	// TexWrap sets the wrap modes of the texture bound to
	// target.
	TexWrap(target TexTarget, s, t, r Wrap)

	// TexFilter sets the filters of the texture bound to
	// target.
	TexFilter(target TexTarget, min, mag Filter)

	// TexLevels sets the base and max levels of the
	// texture bound to target.
	TexLevels(target TexTarget, base, max int)

	// GetTexImage copies one level of the texture bound
	// to target (or one face of it) into dst.
	GetTexImage(target TexTarget, level int, pf PixelFmt, pt PixelType, dst []byte)

	// GenerateMipmap generates the mip chain of the
	// texture bound to target.
	GenerateMipmap(target TexTarget)

	// GenBuffer creates a new buffer name.
	GenBuffer() uint32

	// DeleteBuffer deletes a buffer.
	DeleteBuffer(buf uint32)

	// BindBuffer binds buf to target.
	BindBuffer(target BufTarget, buf uint32)

	// BufferData allocates size bytes of storage for the
	// buffer bound to target, copying data into it if
	// data is not nil.
	BufferData(target BufTarget, size int, data []byte, usg Usage)

	// MapBuffer maps the buffer bound to target for
	// writing.
	// The returned slice is valid until UnmapBuffer is
	// called. It is nil if mapping fails.
	MapBuffer(target BufTarget) []byte

	// UnmapBuffer unmaps the buffer bound to target.
	UnmapBuffer(target BufTarget) bool

	// BindBufferBase binds buf to the indexed binding
	// point of target.
	BindBufferBase(target BufTarget, index int, buf uint32)

	// GenVertexArray creates a new vertex array name.
	GenVertexArray() uint32

	// DeleteVertexArray deletes a vertex array.
	DeleteVertexArray(va uint32)

	// BindVertexArray binds va.
	BindVertexArray(va uint32)

	// EnableVertexAttrib enables the vertex attribute
	// at index in the bound vertex array.
	EnableVertexAttrib(index int)

	// VertexAttribPointer describes the vertex attribute
	// at index as sourced from the bound vertex buffer.
	VertexAttribPointer(index, size int, typ AttrType, normalized bool, stride, offset int)

	// DrawArrays draws count vertices of the bound
	// vertex array, starting at first.
	DrawArrays(mode Primitive, first, count int)

	// DrawElements draws count indices of type uint32
	// from the bound index buffer, starting at byte
	// offset.
	DrawElements(mode Primitive, count int, offset int)

	// CreateShader creates a shader object for stage.
	CreateShader(stage Stage) uint32

	// ShaderSource replaces the source of sh.
	ShaderSource(sh uint32, src string)

	// CompileShader compiles sh and reports whether it
	// succeeded.
	CompileShader(sh uint32) bool

	// ShaderLog returns the info log of sh.
	ShaderLog(sh uint32) string

	// DeleteShader deletes sh.
	DeleteShader(sh uint32)

	// CreateProgram creates a program object.
	CreateProgram() uint32

	// AttachShader attaches sh to prog.
	AttachShader(prog, sh uint32)

	// DetachShader detaches sh from prog.
	DetachShader(prog, sh uint32)

	// LinkProgram links prog and reports whether it
	// succeeded.
	LinkProgram(prog uint32) bool

	// ProgramLog returns the info log of prog.
	ProgramLog(prog uint32) string

	// DeleteProgram deletes prog.
	DeleteProgram(prog uint32)

	// UseProgram makes prog the current program.
	UseProgram(prog uint32)

	// UniformLocation returns the location of the named
	// uniform of prog, or -1.
	UniformLocation(prog uint32, name string) int32

	// UniformBlockIndex returns the index of the named
	// uniform block of prog, or InvalidIndex.
	UniformBlockIndex(prog uint32, name string) uint32

	// UniformBlockBinding assigns the uniform block at
	// index of prog to a binding point.
	UniformBlockBinding(prog, index uint32, binding int)

	// Uniform* set uniforms of the current program.
	// A location of -1 is silently ignored.
	Uniform1i(loc, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, v0, v1 float32)
	Uniform3f(loc int32, v0, v1, v2 float32)
	Uniform4f(loc int32, v0, v1, v2, v3 float32)
	UniformMatrix3(loc int32, m *[9]float32)
	UniformMatrix4(loc int32, m *[16]float32)

	// Enable enables a capability.
	Enable(c Cap)

	// Disable disables a capability.
	Disable(c Cap)

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn CmpFunc)

	// ClearColor sets the clear color.
	ClearColor(r, g, b, a float32)

	// Clear clears the buffers selected by mask.
	Clear(mask ClearMask)

	// Viewport sets the viewport.
	Viewport(x, y, width, height int)

	// ReadPixels copies a rectangle of the framebuffer
	// into dst.
	ReadPixels(x, y, width, height int, pf PixelFmt, pt PixelType, dst []byte)

	// GetError returns and clears the oldest recorded
	// error, or NoError.
	GetError() ErrorCode
}

// InvalidIndex is the uniform block index returned when
// a block name does not exist.
const InvalidIndex = ^uint32(0)

// TexTarget is the type of texture targets.
type TexTarget int

// Texture targets.
const (
	Tex1D TexTarget = iota
	Tex2D
	Tex3D
	TexCube
	TexCubePosX
	TexCubeNegX
	TexCubePosY
	TexCubeNegY
	TexCubePosZ
	TexCubeNegZ
	Tex2DMultisample
)

// CubeFace returns the target of the i-th cube face, in
// the order +X, -X, +Y, -Y, +Z, -Z.
func CubeFace(i int) TexTarget { return TexCubePosX + TexTarget(i) }

// IsCubeFace returns whether t is one of the cube faces.
func (t TexTarget) IsCubeFace() bool { return t >= TexCubePosX && t <= TexCubeNegZ }

// InternalFmt is the type of sized internal formats.
type InternalFmt int

// Internal formats.
// The suffix describes the component type: un is
// unsigned normalized, n is signed normalized, f is
// floating-point, i/ui are signed/unsigned integers.
const (
	FmtInvalid InternalFmt = iota
	R8un
	RG8un
	RGB8un
	RGBA8un
	R16un
	RG16un
	RGB16un
	RGBA16un
	R8n
	RG8n
	RGB8n
	RGBA8n
	R16n
	RG16n
	RGB16n
	RGBA16n
	R16f
	RG16f
	RGB16f
	RGBA16f
	R32f
	RG32f
	RGB32f
	RGBA32f
	R16i
	RG16i
	RGB16i
	RGBA16i
	R32i
	RG32i
	RGB32i
	RGBA32i
	R16ui
	RG16ui
	RGB16ui
	RGBA16ui
	R32ui
	RG32ui
	RGB32ui
	RGBA32ui
	D16un
	D24un
	D24unS8ui
	D32f
)

// PixelFmt is the type of client pixel formats.
type PixelFmt int

// Pixel formats.
const (
	PRed PixelFmt = iota
	PRG
	PRGB
	PRGBA
	PRedInt
	PRGInt
	PRGBInt
	PRGBAInt
	PDepth
	PDepthStencil
)

// Channels returns the number of components of pf.
func (pf PixelFmt) Channels() int {
	switch pf {
	case PRed, PRedInt, PDepth, PDepthStencil:
		return 1
	case PRG, PRGInt:
		return 2
	case PRGB, PRGBInt:
		return 3
	}
	return 4
}

// PixelType is the type of client pixel component types.
type PixelType int

// Pixel types.
const (
	TUByte PixelType = iota
	TByte
	TUShort
	TShort
	TUInt
	TInt
	TFloat
	THalf
	TUInt248
)

// Size returns the size in bytes of one component of pt.
func (pt PixelType) Size() int {
	switch pt {
	case TUByte, TByte:
		return 1
	case TUShort, TShort, THalf:
		return 2
	}
	return 4
}

// PixelSize returns the size in bytes of one pixel
// described by pf and pt.
func PixelSize(pf PixelFmt, pt PixelType) int {
	if pt == TUInt248 {
		return 4
	}
	return pf.Channels() * pt.Size()
}

// Wrap is the type of texture wrap modes.
type Wrap int

// Wrap modes.
const (
	WRepeat Wrap = iota
	WMirroredRepeat
	WClampEdge
	WClampBorder
)

// Filter is the type of texture filters.
type Filter int

// Filters.
const (
	FNearest Filter = iota
	FLinear
	FNearestMipNearest
	FLinearMipNearest
	FNearestMipLinear
	FLinearMipLinear
)

// BufTarget is the type of buffer targets.
type BufTarget int

// Buffer targets.
const (
	BArray BufTarget = iota
	BElementArray
	BUniform
)

// Usage is the type of buffer usage hints.
type Usage int

// Usage hints.
const (
	UStaticDraw Usage = iota
	UStreamDraw
	UDynamicDraw
)

// AttrType is the type of vertex attribute components.
type AttrType int

// Attribute component types.
const (
	AByte AttrType = iota
	AShort
	AUInt
	AFloat
)

// Size returns the size in bytes of one component of t.
func (t AttrType) Size() int {
	switch t {
	case AByte:
		return 1
	case AShort:
		return 2
	}
	return 4
}

// Primitive is the type of primitive topologies.
type Primitive int

// Primitive topologies.
const (
	PTriangles Primitive = iota
	PTriangleStrip
	PLines
	PPoints
)

// Stage is the type of shader stages.
type Stage int

// Shader stages.
const (
	SVertex Stage = iota
	SFragment
	SGeometry
	SCompute
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case SVertex:
		return "vertex"
	case SFragment:
		return "fragment"
	case SGeometry:
		return "geometry"
	case SCompute:
		return "compute"
	}
	return "unknown"
}

// Cap is the type of context capabilities.
type Cap int

// Capabilities.
const (
	CDepthTest Cap = iota
	CCullFace
	CMultisample
	CSeamlessCube
	CBlend
)

// CmpFunc is the type of depth comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CLess CmpFunc = iota
	CLessEqual
	CEqual
	CAlways
)

// ClearMask is the type of clear masks.
type ClearMask int

// Clear mask bits.
const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// ErrorCode is the type of native error codes.
type ErrorCode int

// Error codes.
const (
	NoError ErrorCode = iota
	InvalidEnum
	InvalidValue
	InvalidOperation
	InvalidFramebufferOperation
	OutOfMemory
)

// String implements fmt.Stringer.
func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "no error"
	case InvalidEnum:
		return "invalid enum"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	case InvalidFramebufferOperation:
		return "invalid framebuffer operation"
	case OutOfMemory:
		return "out of memory"
	}
	return "unknown error"
}
