package renderer

import "Gopher64/internal/combiner"

// RenderingAPI is the surface the display-list interpreter drives. Context
// is the only implementation; the interface exists so the interpreter can be
// tested without a device.
type RenderingAPI interface {
	ZIsFrom0To1() bool

	UnloadProgram(p *Program)
	LoadProgram(p *Program)
	CreateProgram(sig combiner.Signature) (*Program, error)
	LookupProgram(sig combiner.Signature) (*Program, bool)

	CreateTexture() TextureID
	DeleteTexture(tex TextureID)
	SelectTexture(unit int, tex TextureID) error
	Upload(pixels []byte, width, height int, format PixelFormat) error
	SetSamplerParameters(unit int, linear bool, cms, cmt uint32) error

	SetDepthTest(on bool)
	SetDepthMask(write bool)
	SetZModeDecal(on bool)
	SetViewport(x, y, width, height int)
	SetScissor(x, y, width, height int)
	SetUseAlpha(on bool)

	Draw(buf []Vertex, numTris int) error
	Draw2D(buf []Vertex) error

	Init() error
	OnResize()
	StartFrame()
	EndFrame()
	FinishRender()
}

var _ RenderingAPI = (*Context)(nil)
