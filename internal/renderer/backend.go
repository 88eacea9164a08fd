package renderer

import "github.com/go-gl/mathgl/mgl32"

// TextureID is a backend texture object name.
type TextureID uint32

// Capability is a server-side toggle (glEnable/glDisable).
type Capability uint8

const (
	CapTexture2D Capability = iota
	CapBlend
	CapAlphaTest
	CapFog
	CapDepthTest
	CapScissorTest
	CapLighting
	CapCullFace
	capCount
)

// ClientArray is a client-side attribute stream.
type ClientArray uint8

const (
	ArrayVertex ClientArray = iota
	ArrayTexCoord
	ArrayColor
	arrayCount
)

// CombineMode is the fixed-function texture environment mode.
type CombineMode uint8

const (
	CombineModulate CombineMode = iota
	CombineDecal
	CombineReplace
	CombineBlend
)

func (m CombineMode) String() string {
	switch m {
	case CombineModulate:
		return "modulate"
	case CombineDecal:
		return "decal"
	case CombineReplace:
		return "replace"
	case CombineBlend:
		return "blend"
	}
	return "unknown"
}

type DepthFunc uint8

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

type MatrixMode uint8

const (
	MatrixModelView MatrixMode = iota
	MatrixProjection
)

type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

type Wrap uint8

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// PixelFormat selects how upload buffers are laid out.
type PixelFormat uint8

const (
	// FormatRGBA32 is four bytes per texel, R first.
	FormatRGBA32 PixelFormat = iota
	// FormatRGBA5551 is a little-endian packed 16-bit A1R5G5B5 texel.
	FormatRGBA5551
)

// BytesPerPixel returns the texel size of f.
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatRGBA5551 {
		return 2
	}
	return 4
}

// Vertex is one interleaved record of a draw batch. Color is BGRA.
type Vertex struct {
	Pos   [3]float32
	UV    [2]float32
	Color [4]uint8
}

// StringName selects a backend identification string.
type StringName uint8

const (
	StringVersion StringName = iota
	StringExtensions
	StringRenderer
)

// Backend is the fixed-function device the Context drives. Calls are
// synchronous from the caller's view and never fail; device errors are fatal
// to the backend, not recovered here.
type Backend interface {
	GetString(name StringName) string

	GenTexture() TextureID
	DeleteTexture(tex TextureID)
	BindTexture(tex TextureID)
	TexImage2D(width, height int, format PixelFormat, pixels []byte)
	TexParameters(min, mag Filter, wrapS, wrapT Wrap)

	Enable(c Capability)
	Disable(c Capability)
	EnableClientState(a ClientArray)
	DisableClientState(a ClientArray)

	// Stream pointers reference buf until the next draw call returns.
	VertexPointer(buf []Vertex)
	TexCoordPointer(buf []Vertex)
	ColorPointer(buf []Vertex)
	Color4f(r, g, b, a float32)

	TexEnvMode(m CombineMode)
	AlphaFunc(ref float32)
	BlendFunc(src, dst BlendFactor)
	DepthFunc(f DepthFunc)
	DepthMask(write bool)
	Fog(start, end float32, color mgl32.Vec4)

	MatrixMode(m MatrixMode)
	PushMatrix()
	PopMatrix()
	LoadMatrix(m mgl32.Mat4)
	MultMatrix(m mgl32.Mat4)

	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	ShadeSmooth()
	Clear(r, g, b, a float32)

	DrawTriangles(vertexCount int)
}
