// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"image"

	"gfx/internal/gl"
)

// Caps describes the capabilities of a Device.
type Caps struct {
	// Version is the major and minor GL version. WebGL versions are
	// reported as their OpenGL ES equivalent.
	Version [2]int
	// ES reports an OpenGL ES or WebGL context.
	ES bool
	// Instancing reports support for instanced draws and per-instance
	// vertex attributes.
	Instancing bool
	// MaxTextureSize is the largest texture width and height.
	MaxTextureSize int

	Vendor, Renderer string
}

type BufferType uint8

const (
	VertexBuffer BufferType = iota
	IndexBuffer
)

// Usage describes how often the contents of a buffer change.
type Usage uint8

const (
	// Immutable buffers are initialized at creation and never updated.
	Immutable Usage = iota
	// Dynamic buffers are updated occasionally.
	Dynamic
	// Stream buffers are updated every frame.
	Stream
)

type TextureFormat uint8

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatRGB8
	// TextureFormatDepth is a depth attachment format.
	TextureFormatDepth
	// TextureFormatAlpha stores a single channel, sampled as alpha.
	TextureFormatAlpha
)

type TextureWrap uint8

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
	WrapMirror
)

type TextureFilter uint8

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// TextureParams describes a texture. The zero value is an empty RGBA8
// texture with clamped, linearly filtered sampling.
type TextureParams struct {
	Format        TextureFormat
	Wrap          TextureWrap
	Filter        TextureFilter
	Width, Height int
}

type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

type UniformType uint8

const (
	UniformFloat1 UniformType = iota
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformInt1
	UniformMat4
)

// UniformDesc describes a program uniform.
type UniformDesc struct {
	Name string
	Type UniformType
	// Count is the array length of the uniform, or 0 for scalars.
	Count int
	// Offset is the minimum byte offset of the uniform in the data passed
	// to SetUniforms. Uniforms are packed in order, so the zero value
	// places the uniform right after the previous one.
	Offset int
}

// ProgramDesc describes the interface of a program.
type ProgramDesc struct {
	// Attributes are bound to vertex attribute locations in order.
	Attributes []string
	Uniforms   []UniformDesc
	// Images are sampler uniforms, assigned texture units in order.
	Images []string
}

type VertexFormat uint8

const (
	VertexFloat1 VertexFormat = iota
	VertexFloat2
	VertexFloat3
	VertexFloat4
	// VertexByte4 is four unsigned bytes normalized to [0, 1].
	VertexByte4
	VertexShort2
	VertexShort4
)

type VertexStep uint8

const (
	StepPerVertex VertexStep = iota
	StepPerInstance
)

// BufferLayout describes one vertex buffer slot of a pipeline.
type BufferLayout struct {
	// Stride is the distance between elements in bytes. Zero means the
	// packed size of the attributes in the buffer.
	Stride int
	Step   VertexStep
	// StepRate is the number of instances per element for
	// StepPerInstance. Zero means 1.
	StepRate int
}

// VertexAttribute describes an attribute in a vertex buffer. Attributes
// of a buffer are packed in order of appearance.
type VertexAttribute struct {
	Name        string
	Format      VertexFormat
	BufferIndex int
}

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcAlphaSaturate
)

type BlendEquation uint8

const (
	EquationAdd BlendEquation = iota
	EquationSubtract
	EquationReverseSubtract
)

type BlendState struct {
	Equation BlendEquation
	Src, Dst BlendFactor
}

// Comparison is a depth or stencil test. The zero value disables the
// depth test.
type Comparison uint8

const (
	CompareNever Comparison = iota + 1
	CompareLess
	CompareLessEqual
	CompareGreater
	CompareGreaterEqual
	CompareEqual
	CompareNotEqual
	CompareAlways
)

type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrClamp
	StencilDecrClamp
	StencilInvert
	StencilIncrWrap
	StencilDecrWrap
)

type StencilFaceState struct {
	Fail, DepthFail, Pass StencilOp
	Test                  Comparison
}

type StencilState struct {
	Front, Back StencilFaceState
	Ref         int
	ReadMask    uint
	WriteMask   uint
}

type CullFace uint8

const (
	CullNothing CullFace = iota
	CullFront
	CullBack
)

type FrontFace uint8

const (
	FrontCCW FrontFace = iota
	FrontCW
)

type PrimitiveType uint8

const (
	Triangles PrimitiveType = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

// ColorMask selects color channels.
type ColorMask uint8

const (
	ColorR ColorMask = 1 << iota
	ColorG
	ColorB
	ColorA

	ColorRGBA = ColorR | ColorG | ColorB | ColorA
)

// PipelineDesc describes a Pipeline. The zero value of every field is the
// GL default: no blending, no depth or stencil test, no culling and all
// channels written.
type PipelineDesc struct {
	Program    Program
	Layouts    []BufferLayout
	Attributes []VertexAttribute
	Primitive  PrimitiveType

	// Blend enables color blending. AlphaBlend, if set, overrides the
	// blend state of the alpha channel.
	Blend      *BlendState
	AlphaBlend *BlendState

	DepthTest  Comparison
	DepthWrite bool
	Stencil    *StencilState

	Cull  CullFace
	Front FrontFace
	// DisableColorWrite masks channels from writes.
	DisableColorWrite ColorMask
}

// ClearMask selects the buffers a pass clears.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// PassAction describes how a pass initializes its target. The zero value
// keeps the previous contents.
type PassAction struct {
	Clear   ClearMask
	Color   [4]float32
	Depth   float32
	Stencil int
}

// Bindings are the resources of a draw.
type Bindings struct {
	// VertexBuffers are indexed by VertexAttribute.BufferIndex.
	VertexBuffers []Buffer
	// IndexBuffer is used by DrawIndexed.
	IndexBuffer Buffer
	// Images are bound to the program's image samplers in order.
	Images []Texture
}

// ClearAll returns a PassAction that clears color to c, depth to 1 and
// stencil to 0.
func ClearAll(c [4]float32) PassAction {
	return PassAction{
		Clear: ClearColor | ClearDepth | ClearStencil,
		Color: c,
		Depth: 1,
	}
}

// BytesPerPixel returns the size of a texel.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatRGB8:
		return 3
	case TextureFormatDepth:
		return 2
	case TextureFormatAlpha:
		return 1
	default:
		return 4
	}
}

// Size returns the byte size of a w×h image in format f.
func (f TextureFormat) Size(w, h int) int {
	return w * h * f.BytesPerPixel()
}

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8:
		return "RGBA8"
	case TextureFormatRGB8:
		return "RGB8"
	case TextureFormatDepth:
		return "Depth"
	case TextureFormatAlpha:
		return "Alpha"
	default:
		return fmt.Sprintf("TextureFormat(%d)", uint8(f))
	}
}

func (p TextureParams) size() image.Point {
	return image.Pt(p.Width, p.Height)
}

func (s ShaderStage) String() string {
	if s == StageFragment {
		return "fragment"
	}
	return "vertex"
}

// size returns the byte size of one element of t.
func (t UniformType) size() int {
	switch t {
	case UniformFloat2:
		return 8
	case UniformFloat3:
		return 12
	case UniformFloat4:
		return 16
	case UniformMat4:
		return 64
	default:
		return 4
	}
}

func (f VertexFormat) components() int {
	switch f {
	case VertexFloat1:
		return 1
	case VertexFloat2, VertexShort2:
		return 2
	case VertexFloat3:
		return 3
	default:
		return 4
	}
}

func (f VertexFormat) size() int {
	switch f {
	case VertexByte4:
		return 4
	case VertexShort2, VertexShort4:
		return 2 * f.components()
	default:
		return 4 * f.components()
	}
}

func (f VertexFormat) glType() gl.Enum {
	switch f {
	case VertexByte4:
		return gl.UNSIGNED_BYTE
	case VertexShort2, VertexShort4:
		return gl.SHORT
	default:
		return gl.FLOAT
	}
}

func (f VertexFormat) normalized() bool {
	return f == VertexByte4
}

func (t BufferType) glTarget() gl.Enum {
	if t == IndexBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (t BufferType) String() string {
	if t == IndexBuffer {
		return "index"
	}
	return "vertex"
}

func (u Usage) glUsage() gl.Enum {
	switch u {
	case Dynamic:
		return gl.DYNAMIC_DRAW
	case Stream:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (w TextureWrap) glWrap() int {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapMirror:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

func (f TextureFilter) glFilter() int {
	if f == FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func (f BlendFactor) glFactor() gl.Enum {
	switch f {
	case BlendOne:
		return gl.ONE
	case BlendSrcColor:
		return gl.SRC_COLOR
	case BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	case BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendDstColor:
		return gl.DST_COLOR
	case BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendDstAlpha:
		return gl.DST_ALPHA
	case BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case BlendSrcAlphaSaturate:
		return gl.SRC_ALPHA_SATURATE
	default:
		return gl.ZERO
	}
}

func (e BlendEquation) glEquation() gl.Enum {
	switch e {
	case EquationSubtract:
		return gl.FUNC_SUBTRACT
	case EquationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	default:
		return gl.FUNC_ADD
	}
}

func (c Comparison) glFunc() gl.Enum {
	switch c {
	case CompareNever:
		return gl.NEVER
	case CompareLess:
		return gl.LESS
	case CompareLessEqual:
		return gl.LEQUAL
	case CompareGreater:
		return gl.GREATER
	case CompareGreaterEqual:
		return gl.GEQUAL
	case CompareEqual:
		return gl.EQUAL
	case CompareNotEqual:
		return gl.NOTEQUAL
	default:
		return gl.ALWAYS
	}
}

func (op StencilOp) glOp() gl.Enum {
	switch op {
	case StencilZero:
		return gl.ZERO
	case StencilReplace:
		return gl.REPLACE
	case StencilIncrClamp:
		return gl.INCR
	case StencilDecrClamp:
		return gl.DECR
	case StencilInvert:
		return gl.INVERT
	case StencilIncrWrap:
		return gl.INCR_WRAP
	case StencilDecrWrap:
		return gl.DECR_WRAP
	default:
		return gl.KEEP
	}
}

func (p PrimitiveType) glMode() gl.Enum {
	switch p {
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case Lines:
		return gl.LINES
	case LineStrip:
		return gl.LINE_STRIP
	case Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
