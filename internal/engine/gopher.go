package engine

import (
	"runtime"

	"Gopher64/internal/combiner"
	"Gopher64/internal/logger"
	"Gopher64/internal/renderer"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Gopher owns the window, the graphics context and the renderer Context.
// All rendering happens on the goroutine that called Render; other
// goroutines hand work over through SubmitFrame.
type Gopher struct {
	Width           int32
	Height          int32
	Title           string
	WindowDecorated bool

	// FrameChan carries whole frames from producers to the render thread.
	FrameChan chan []Batch

	cfg       renderer.Config
	extractor combiner.Extractor
	window    *glfw.Window
	ctx       *renderer.Context
	frame     []Batch

	onInitCallback   func(ctx *renderer.Context)
	onRenderCallback func(ctx *renderer.Context, deltaTime float64)
}

func NewGopher(cfg renderer.Config) *Gopher {
	logger.Init()
	logger.Log.Info("Gopher64 initializing...")
	return &Gopher{
		Width:           int32(cfg.ViewportWidth),
		Height:          int32(cfg.ViewportHeight),
		Title:           "Gopher64",
		WindowDecorated: true,
		FrameChan:       make(chan []Batch, 4),
		cfg:             cfg,
		extractor:       combiner.BitfieldExtractor{},
	}
}

// SetExtractor replaces the signature decoder used for new programs.
func (gopher *Gopher) SetExtractor(ex combiner.Extractor) {
	gopher.extractor = ex
}

// SetOnInitCallback runs once on the render thread after the renderer is up,
// e.g. to upload textures.
func (gopher *Gopher) SetOnInitCallback(callback func(ctx *renderer.Context)) {
	gopher.onInitCallback = callback
}

// SetOnRenderCallback runs every frame on the render thread after the
// submitted batches are drawn.
func (gopher *Gopher) SetOnRenderCallback(callback func(ctx *renderer.Context, deltaTime float64)) {
	gopher.onRenderCallback = callback
}

// SubmitFrame queues a frame for the render thread. When the queue is full
// the frame is dropped and false is returned.
func (gopher *Gopher) SubmitFrame(batches []Batch) bool {
	select {
	case gopher.FrameChan <- batches:
		return true
	default:
		return false
	}
}

// Render creates the window and a legacy GL context, then runs the render
// loop until the window closes.
func (gopher *Gopher) Render(x, y int) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	decorated := glfw.False
	if gopher.WindowDecorated {
		decorated = glfw.True
	}
	glfw.WindowHint(glfw.Decorated, decorated)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	// fixed function needs a compatibility context
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	var err error
	gopher.window, err = glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return
	}
	gopher.window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		logger.Log.Error("Could not initialize OpenGL", zap.Error(err))
		return
	}
	if x >= 0 && y >= 0 {
		gopher.window.SetPos(x, y)
	}

	gopher.ctx, err = renderer.NewContext(renderer.GLBackend{}, gopher.extractor, gopher.cfg)
	if err != nil {
		logger.Log.Error("Invalid renderer config", zap.Error(err))
		return
	}
	if err := gopher.ctx.Init(); err != nil {
		logger.Log.Error("Renderer initialization failed", zap.Error(err))
		return
	}
	logger.Log.Info("OpenGL render initialized")

	if gopher.onInitCallback != nil {
		gopher.onInitCallback(gopher.ctx)
	}
	gopher.RenderLoop()
}

func (gopher *Gopher) RenderLoop() {
	lastTime := glfw.GetTime()
	lastWidth, lastHeight := gopher.Width, gopher.Height

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		width, height := gopher.window.GetFramebufferSize()
		if int32(width) != lastWidth || int32(height) != lastHeight {
			gopher.Width, gopher.Height = int32(width), int32(height)
			lastWidth, lastHeight = gopher.Width, gopher.Height
			gopher.ctx.SetViewport(0, 0, width, height)
			gopher.ctx.OnResize()
		}

		gopher.drainFrames()

		gopher.ctx.StartFrame()
		if err := DrawFrame(gopher.ctx, gopher.frame); err != nil {
			logger.Log.Error("Batches dropped",
				zap.Int("count", len(multierr.Errors(err))),
				zap.Error(err))
		}
		if gopher.onRenderCallback != nil {
			gopher.onRenderCallback(gopher.ctx, deltaTime)
		}
		gopher.ctx.EndFrame()
		gopher.window.SwapBuffers()
		gopher.ctx.FinishRender()

		glfw.PollEvents()
	}
	logger.Sync()
}

// drainFrames keeps the newest submitted frame; it is redrawn until replaced.
func (gopher *Gopher) drainFrames() {
	for {
		select {
		case frame := <-gopher.FrameChan:
			gopher.frame = frame
		default:
			return
		}
	}
}

// GetWindow returns the GLFW window.
func (gopher *Gopher) GetWindow() *glfw.Window {
	return gopher.window
}

// Context returns the renderer Context once Render has initialized it.
func (gopher *Gopher) Context() *renderer.Context {
	return gopher.ctx
}
