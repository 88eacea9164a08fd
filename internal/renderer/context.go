package renderer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Gopher64/internal/combiner"
	"Gopher64/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedDevice = errors.New("renderer: OpenGL 1.1+ is required")
	ErrShortBuffer       = errors.New("renderer: buffer too short")
	ErrInvalidUnit       = errors.New("renderer: invalid texture unit")
)

// NumTextureUnits is the number of emulated texture slots.
const NumTextureUnits = 2

// pipelineState mirrors what the Context last told the backend.
type pipelineState struct {
	enabled   [capCount]bool
	arrays    [arrayCount]bool
	combine   CombineMode
	depthFunc DepthFunc
	depthMask bool
	alphaRef  float32
	blendSrc  BlendFactor
	blendDst  BlendFactor
	color     mgl32.Vec4
	bound     TextureID
}

// Context is the renderer state for one graphics context: the program pool,
// the loaded program, per-unit texture state and the shadowed pipeline state.
// It is not safe for concurrent use; every call must come from the thread
// that owns the graphics context.
type Context struct {
	backend   Backend
	extractor combiner.Extractor
	cfg       Config

	pool   programPool
	active *Program
	tmu    [NumTextureUnits]samplerState
	state  pipelineState

	// current batch, only held for the duration of a draw call
	vertices []Vertex
	scratch  []byte
	passes   []Pass

	zmodeDecal   bool
	mix, invMix  mgl32.Vec3
	mixColorSet  bool
	viewW, viewH int

	extensions     string
	extensionsRead bool
	npot           bool
	multitexture   bool
}

// NewContext binds a backend and an extractor under cfg. Nothing is sent to
// the backend until Init.
func NewContext(backend Backend, extractor combiner.Extractor, cfg Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if extractor == nil {
		extractor = combiner.BitfieldExtractor{}
	}
	return &Context{
		backend:   backend,
		extractor: extractor,
		cfg:       cfg,
		pool:      newProgramPool(cfg.ProgramPoolSize),
		scratch:   make([]byte, cfg.ScratchSide*cfg.ScratchSide*FormatRGBA32.BytesPerPixel()),
		passes:    []Pass{mixTexturePass{}, fogPass{}},
		viewW:     cfg.ViewportWidth,
		viewH:     cfg.ViewportHeight,
	}, nil
}

// Config returns the settings the Context was built with.
func (c *Context) Config() Config { return c.cfg }

// ParseGLVersion extracts major and minor from a GL_VERSION string, noting
// OpenGL ES prefixes.
func ParseGLVersion(s string) (major, minor int, es bool, ok bool) {
	for _, prefix := range []string{"OpenGL ES-CM ", "OpenGL ES "} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			es = true
			break
		}
	}
	dot := strings.IndexByte(s, '.')
	if dot <= 0 {
		return 0, 0, es, false
	}
	end := dot + 1
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	var err error
	if major, err = strconv.Atoi(s[:dot]); err != nil {
		return 0, 0, es, false
	}
	if minor, err = strconv.Atoi(s[dot+1 : end]); err != nil {
		return 0, 0, es, false
	}
	return major, minor, es, true
}

// HasExtension reports whether the device advertises name. The extension
// string is read once per Context.
func (c *Context) HasExtension(name string) bool {
	if !c.extensionsRead {
		c.extensions = c.backend.GetString(StringExtensions)
		c.extensionsRead = true
	}
	for _, ext := range strings.Fields(c.extensions) {
		if ext == name {
			return true
		}
	}
	return false
}

// SupportsNPOT reports whether uploads skip power-of-two resampling.
func (c *Context) SupportsNPOT() bool { return c.npot && !c.cfg.ForcePOT }

// SupportsMultitexture reports the probed multitexture capability.
func (c *Context) SupportsMultitexture() bool { return c.multitexture }

// Init probes the device and puts the pipeline into its resting state. It is
// called once after the graphics context becomes current.
func (c *Context) Init() error {
	version := c.backend.GetString(StringVersion)
	major, minor, es, ok := ParseGLVersion(version)
	if !ok || es || major < 1 || (major == 1 && minor < 1) {
		return fmt.Errorf("%w, reported %q", ErrUnsupportedDevice, version)
	}

	c.npot = c.HasExtension("GL_ARB_texture_non_power_of_two")
	c.multitexture = major > 1 || minor > 2 || c.HasExtension("GL_ARB_multitexture")

	logger.Log.Info("Renderer device probed",
		zap.String("version", version),
		zap.String("renderer", c.backend.GetString(StringRenderer)),
		zap.Bool("npot", c.npot),
		zap.Bool("multitexture", c.multitexture))

	c.setEnabled(CapLighting, false)
	c.setEnabled(CapCullFace, false)
	c.setBlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	c.setEnabled(CapDepthTest, true)
	c.setDepthFunc(DepthLessEqual)
	c.setDepthMask(true)
	c.setCombineMode(CombineModulate)
	c.setColor(mgl32.Vec4{1, 1, 1, 1})
	c.backend.ShadeSmooth()

	c.setArray(ArrayVertex, true)
	c.setArray(ArrayTexCoord, true)
	c.setArray(ArrayColor, true)

	c.SetViewport(0, 0, c.cfg.ViewportWidth, c.cfg.ViewportHeight)
	c.backend.MatrixMode(MatrixProjection)
	c.backend.LoadMatrix(mgl32.Ident4())
	c.backend.MatrixMode(MatrixModelView)
	c.backend.LoadMatrix(mgl32.Ident4())

	c.backend.Fog(c.cfg.FogStart, c.cfg.FogEnd, c.cfg.FogColor)
	c.backend.Clear(0, 0, 0, 0)
	return nil
}

// ZIsFrom0To1 reports the device depth range convention.
func (c *Context) ZIsFrom0To1() bool { return true }

func (c *Context) setEnabled(cp Capability, on bool) {
	if c.state.enabled[cp] == on {
		return
	}
	c.state.enabled[cp] = on
	if on {
		c.backend.Enable(cp)
	} else {
		c.backend.Disable(cp)
	}
}

func (c *Context) setArray(a ClientArray, on bool) {
	if c.state.arrays[a] == on {
		return
	}
	c.state.arrays[a] = on
	if on {
		c.backend.EnableClientState(a)
	} else {
		c.backend.DisableClientState(a)
	}
}

func (c *Context) setCombineMode(m CombineMode) {
	c.state.combine = m
	c.backend.TexEnvMode(m)
}

func (c *Context) setDepthFunc(f DepthFunc) {
	c.state.depthFunc = f
	c.backend.DepthFunc(f)
}

func (c *Context) setDepthMask(write bool) {
	c.state.depthMask = write
	c.backend.DepthMask(write)
}

func (c *Context) setAlphaRef(ref float32) {
	c.state.alphaRef = ref
	c.backend.AlphaFunc(ref)
}

func (c *Context) setBlendFunc(src, dst BlendFactor) {
	c.state.blendSrc, c.state.blendDst = src, dst
	c.backend.BlendFunc(src, dst)
}

func (c *Context) setColor(col mgl32.Vec4) {
	c.state.color = col
	c.backend.Color4f(col[0], col[1], col[2], col[3])
}

func (c *Context) bindTexture(tex TextureID) {
	c.state.bound = tex
	c.backend.BindTexture(tex)
}

// SetDepthTest toggles depth testing.
func (c *Context) SetDepthTest(on bool) { c.setEnabled(CapDepthTest, on) }

// SetDepthMask toggles depth writes.
func (c *Context) SetDepthMask(write bool) { c.setDepthMask(write) }

// SetZModeDecal switches decal z-mode: LEQUAL depth plus the translation
// bias applied around every draw while it is on.
func (c *Context) SetZModeDecal(on bool) {
	c.zmodeDecal = on
	if on {
		c.setDepthFunc(DepthLessEqual)
	} else {
		c.setDepthFunc(DepthLess)
	}
}

// SetUseAlpha toggles blending.
func (c *Context) SetUseAlpha(on bool) { c.setEnabled(CapBlend, on) }

func (c *Context) SetViewport(x, y, width, height int) {
	c.viewW, c.viewH = width, height
	c.backend.Viewport(x, y, width, height)
}

func (c *Context) SetScissor(x, y, width, height int) {
	c.backend.Scissor(x, y, width, height)
}

// OnResize is a no-op; the viewport follows SetViewport.
func (c *Context) OnResize() {}

// StartFrame clears color and depth.
func (c *Context) StartFrame() {
	c.backend.Clear(0, 0, 0, 1)
}

func (c *Context) EndFrame()     {}
func (c *Context) FinishRender() {}
