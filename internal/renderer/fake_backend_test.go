package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// fakeSnapshot is the device state the fake tracks, independent of the
// Context's own shadow.
type fakeSnapshot struct {
	enabled    [capCount]bool
	arrays     [arrayCount]bool
	combine    CombineMode
	depthFunc  DepthFunc
	depthMask  bool
	alphaRef   float32
	blendSrc   BlendFactor
	blendDst   BlendFactor
	color      mgl32.Vec4
	bound      TextureID
	modelView  mgl32.Mat4
	projection mgl32.Mat4
	stackDepth int
}

type fakeUpload struct {
	width, height int
	format        PixelFormat
	pixels        []byte
	tex           TextureID
}

type fakeTexParams struct {
	tex          TextureID
	min, mag     Filter
	wrapS, wrapT Wrap
}

type fakeDraw struct {
	vertexCount int
	state       fakeSnapshot
}

type fakeBackend struct {
	version     string
	extensions  string
	stringReads map[StringName]int

	state      fakeSnapshot
	matrixMode MatrixMode
	stacks     [2][]mgl32.Mat4

	nextTex     TextureID
	deleted     []TextureID
	texEnvCalls int
	alphaCalls  int
	uploads     []fakeUpload
	texParams   []fakeTexParams
	draws       []fakeDraw
	colorPtrs   int
	viewport    [4]int
	scissor     [4]int
	clears      int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		version:     "1.2.0 GLdc",
		extensions:  "GL_ARB_multitexture",
		stringReads: map[StringName]int{},
		state: fakeSnapshot{
			modelView:  mgl32.Ident4(),
			projection: mgl32.Ident4(),
		},
	}
}

func (f *fakeBackend) snapshot() fakeSnapshot {
	s := f.state
	s.stackDepth = len(f.stacks[0]) + len(f.stacks[1])
	return s
}

func (f *fakeBackend) GetString(name StringName) string {
	f.stringReads[name]++
	switch name {
	case StringVersion:
		return f.version
	case StringExtensions:
		return f.extensions
	}
	return "fake"
}

func (f *fakeBackend) GenTexture() TextureID {
	f.nextTex++
	return f.nextTex
}

func (f *fakeBackend) DeleteTexture(tex TextureID) {
	f.deleted = append(f.deleted, tex)
	if f.state.bound == tex {
		f.state.bound = 0
	}
}

func (f *fakeBackend) BindTexture(tex TextureID) { f.state.bound = tex }

func (f *fakeBackend) TexImage2D(width, height int, format PixelFormat, pixels []byte) {
	f.uploads = append(f.uploads, fakeUpload{
		width:  width,
		height: height,
		format: format,
		pixels: append([]byte(nil), pixels...),
		tex:    f.state.bound,
	})
}

func (f *fakeBackend) TexParameters(min, mag Filter, wrapS, wrapT Wrap) {
	f.texParams = append(f.texParams, fakeTexParams{f.state.bound, min, mag, wrapS, wrapT})
}

func (f *fakeBackend) Enable(c Capability)                  { f.state.enabled[c] = true }
func (f *fakeBackend) Disable(c Capability)                 { f.state.enabled[c] = false }
func (f *fakeBackend) EnableClientState(a ClientArray)      { f.state.arrays[a] = true }
func (f *fakeBackend) DisableClientState(a ClientArray)     { f.state.arrays[a] = false }
func (f *fakeBackend) VertexPointer(buf []Vertex)           {}
func (f *fakeBackend) TexCoordPointer(buf []Vertex)         {}
func (f *fakeBackend) ColorPointer(buf []Vertex)            { f.colorPtrs++ }
func (f *fakeBackend) Color4f(r, g, b, a float32)           { f.state.color = mgl32.Vec4{r, g, b, a} }
func (f *fakeBackend) BlendFunc(src, dst BlendFactor)       { f.state.blendSrc, f.state.blendDst = src, dst }
func (f *fakeBackend) DepthFunc(fn DepthFunc)               { f.state.depthFunc = fn }
func (f *fakeBackend) DepthMask(write bool)                 { f.state.depthMask = write }
func (f *fakeBackend) Fog(start, end float32, c mgl32.Vec4) {}
func (f *fakeBackend) Viewport(x, y, width, height int)     { f.viewport = [4]int{x, y, width, height} }
func (f *fakeBackend) Scissor(x, y, width, height int)      { f.scissor = [4]int{x, y, width, height} }
func (f *fakeBackend) ShadeSmooth()                         {}
func (f *fakeBackend) Clear(r, g, b, a float32)             { f.clears++ }

func (f *fakeBackend) TexEnvMode(m CombineMode) {
	f.texEnvCalls++
	f.state.combine = m
}

func (f *fakeBackend) AlphaFunc(ref float32) {
	f.alphaCalls++
	f.state.alphaRef = ref
}

func (f *fakeBackend) MatrixMode(m MatrixMode) { f.matrixMode = m }

func (f *fakeBackend) current() *mgl32.Mat4 {
	if f.matrixMode == MatrixProjection {
		return &f.state.projection
	}
	return &f.state.modelView
}

func (f *fakeBackend) PushMatrix() {
	f.stacks[f.matrixMode] = append(f.stacks[f.matrixMode], *f.current())
}

func (f *fakeBackend) PopMatrix() {
	st := f.stacks[f.matrixMode]
	if len(st) == 0 {
		panic("matrix stack underflow")
	}
	*f.current() = st[len(st)-1]
	f.stacks[f.matrixMode] = st[:len(st)-1]
}

func (f *fakeBackend) LoadMatrix(m mgl32.Mat4) { *f.current() = m }
func (f *fakeBackend) MultMatrix(m mgl32.Mat4) { *f.current() = f.current().Mul4(m) }

func (f *fakeBackend) DrawTriangles(vertexCount int) {
	f.draws = append(f.draws, fakeDraw{vertexCount: vertexCount, state: f.snapshot()})
}

func (f *fakeBackend) lastDraw() fakeDraw {
	return f.draws[len(f.draws)-1]
}
