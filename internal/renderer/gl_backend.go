package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLBackend drives a legacy (2.1 compatibility) OpenGL context through
// go-gl. It must be used from the thread that owns the context, after
// gl.Init has succeeded.
type GLBackend struct{}

var glCaps = [capCount]uint32{
	CapTexture2D:   gl.TEXTURE_2D,
	CapBlend:       gl.BLEND,
	CapAlphaTest:   gl.ALPHA_TEST,
	CapFog:         gl.FOG,
	CapDepthTest:   gl.DEPTH_TEST,
	CapScissorTest: gl.SCISSOR_TEST,
	CapLighting:    gl.LIGHTING,
	CapCullFace:    gl.CULL_FACE,
}

var glArrays = [arrayCount]uint32{
	ArrayVertex:   gl.VERTEX_ARRAY,
	ArrayTexCoord: gl.TEXTURE_COORD_ARRAY,
	ArrayColor:    gl.COLOR_ARRAY,
}

var glCombineModes = map[CombineMode]int32{
	CombineModulate: gl.MODULATE,
	CombineDecal:    gl.DECAL,
	CombineReplace:  gl.REPLACE,
	CombineBlend:    gl.BLEND,
}

var glBlendFactors = map[BlendFactor]uint32{
	BlendZero:             gl.ZERO,
	BlendOne:              gl.ONE,
	BlendSrcAlpha:         gl.SRC_ALPHA,
	BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
}

var vertexStride = int32(unsafe.Sizeof(Vertex{}))

func (GLBackend) GetString(name StringName) string {
	var p *uint8
	switch name {
	case StringVersion:
		p = gl.GetString(gl.VERSION)
	case StringExtensions:
		p = gl.GetString(gl.EXTENSIONS)
	case StringRenderer:
		p = gl.GetString(gl.RENDERER)
	}
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (GLBackend) GenTexture() TextureID {
	var tex uint32
	gl.GenTextures(1, &tex)
	return TextureID(tex)
}

func (GLBackend) DeleteTexture(tex TextureID) {
	name := uint32(tex)
	gl.DeleteTextures(1, &name)
}

func (GLBackend) BindTexture(tex TextureID) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (GLBackend) TexImage2D(width, height int, format PixelFormat, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	if format == FormatRGBA32 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.BGRA, gl.UNSIGNED_SHORT_1_5_5_5_REV, ptr)
}

func glFilter(f Filter) int32 {
	if f == FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(w Wrap) int32 {
	if w == WrapClamp {
		return gl.CLAMP
	}
	return gl.REPEAT
}

func (GLBackend) TexParameters(min, mag Filter, wrapS, wrapT Wrap) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(mag))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(wrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(wrapT))
}

func (GLBackend) Enable(c Capability)  { gl.Enable(glCaps[c]) }
func (GLBackend) Disable(c Capability) { gl.Disable(glCaps[c]) }

func (GLBackend) EnableClientState(a ClientArray)  { gl.EnableClientState(glArrays[a]) }
func (GLBackend) DisableClientState(a ClientArray) { gl.DisableClientState(glArrays[a]) }

func (GLBackend) VertexPointer(buf []Vertex) {
	if len(buf) == 0 {
		return
	}
	gl.VertexPointer(3, gl.FLOAT, vertexStride, unsafe.Pointer(&buf[0].Pos))
}

func (GLBackend) TexCoordPointer(buf []Vertex) {
	if len(buf) == 0 {
		return
	}
	gl.TexCoordPointer(2, gl.FLOAT, vertexStride, unsafe.Pointer(&buf[0].UV))
}

func (GLBackend) ColorPointer(buf []Vertex) {
	if len(buf) == 0 {
		return
	}
	// GL_BGRA as the size argument selects the BGRA byte order.
	gl.ColorPointer(gl.BGRA, gl.UNSIGNED_BYTE, vertexStride, unsafe.Pointer(&buf[0].Color))
}

func (GLBackend) Color4f(r, g, b, a float32) { gl.Color4f(r, g, b, a) }

func (GLBackend) TexEnvMode(m CombineMode) {
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, glCombineModes[m])
}

func (GLBackend) AlphaFunc(ref float32) { gl.AlphaFunc(gl.GREATER, ref) }

func (GLBackend) BlendFunc(src, dst BlendFactor) {
	gl.BlendFunc(glBlendFactors[src], glBlendFactors[dst])
}

func (GLBackend) DepthFunc(f DepthFunc) {
	if f == DepthLessEqual {
		gl.DepthFunc(gl.LEQUAL)
		return
	}
	gl.DepthFunc(gl.LESS)
}

func (GLBackend) DepthMask(write bool) { gl.DepthMask(write) }

func (GLBackend) Fog(start, end float32, color mgl32.Vec4) {
	gl.Fogi(gl.FOG_MODE, gl.LINEAR)
	gl.Fogf(gl.FOG_START, start)
	gl.Fogf(gl.FOG_END, end)
	gl.Fogfv(gl.FOG_COLOR, &color[0])
}

func (GLBackend) MatrixMode(m MatrixMode) {
	if m == MatrixProjection {
		gl.MatrixMode(gl.PROJECTION)
		return
	}
	gl.MatrixMode(gl.MODELVIEW)
}

func (GLBackend) PushMatrix()             { gl.PushMatrix() }
func (GLBackend) PopMatrix()              { gl.PopMatrix() }
func (GLBackend) LoadMatrix(m mgl32.Mat4) { gl.LoadMatrixf(&m[0]) }
func (GLBackend) MultMatrix(m mgl32.Mat4) { gl.MultMatrixf(&m[0]) }

func (GLBackend) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (GLBackend) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (GLBackend) ShadeSmooth() { gl.ShadeModel(gl.SMOOTH) }

func (GLBackend) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.ClearDepth(1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (GLBackend) DrawTriangles(vertexCount int) {
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
}
