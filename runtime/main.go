package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"Gopher64/internal/combiner"
	"Gopher64/internal/engine"
	"Gopher64/internal/renderer"
)

var textures [2]renderer.TextureID

func main() {
	runtime.LockOSThread()
	fmt.Println("Starting renderer demo...")

	cfgPath := findAsset("renderer.json")
	if cfgPath == "" {
		cfgPath = "renderer.json"
	}
	cfg, err := renderer.LoadConfig(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load %s: %v\n", cfgPath, err)
		cfg = renderer.DefaultConfig()
	}

	gopher := engine.NewGopher(cfg)
	gopher.SetOnInitCallback(func(ctx *renderer.Context) {
		textures[0] = uploadChecker(ctx, 0, 10, [4]byte{255, 255, 255, 255}, [4]byte{40, 40, 200, 255})
		textures[1] = uploadChecker(ctx, 1, 12, [4]byte{255, 200, 0, 255}, [4]byte{0, 0, 0, 0})
		if path := findAsset("texture.png"); path != "" {
			if tex, err := engine.NewTextureCache(ctx).Load(0, path); err == nil {
				ctx.DeleteTexture(textures[0])
				textures[0] = tex
			}
		}
		gopher.SubmitFrame(demoFrame())
	})

	gopher.Render(-1, -1)
}

// uploadChecker uploads a size x size checkerboard; odd sizes go through
// power-of-two resampling on devices without NPOT support.
func uploadChecker(ctx *renderer.Context, unit, size int, a, b [4]byte) renderer.TextureID {
	pix := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				pix = append(pix, a[:]...)
			} else {
				pix = append(pix, b[:]...)
			}
		}
	}
	tex := ctx.CreateTexture()
	if err := ctx.SelectTexture(unit, tex); err != nil {
		fmt.Printf("select texture: %v\n", err)
		return 0
	}
	if err := ctx.SetSamplerParameters(unit, false, 0, 0); err != nil {
		fmt.Printf("sampler: %v\n", err)
	}
	if err := ctx.Upload(pix, size, size, renderer.FormatRGBA32); err != nil {
		fmt.Printf("upload: %v\n", err)
	}
	return tex
}

func quad(x0, y0, x1, y1, z float32, bgra [4]uint8) []renderer.Vertex {
	v := func(x, y, u, t float32) renderer.Vertex {
		return renderer.Vertex{Pos: [3]float32{x, y, z}, UV: [2]float32{u, t}, Color: bgra}
	}
	return []renderer.Vertex{
		v(x0, y0, 0, 0), v(x1, y0, 1, 0), v(x1, y1, 1, 1),
		v(x0, y0, 0, 0), v(x1, y1, 1, 1), v(x0, y1, 0, 1),
	}
}

func demoFrame() []engine.Batch {
	shadeOnly := combiner.Signature(combiner.Input1)
	textured := combiner.Signature(combiner.InputTexel0) | combiner.OptTextureEdge
	// color = (texel0 - texel1) * shade + texel1
	mixed := combiner.Signature(combiner.InputTexel0) |
		combiner.Signature(combiner.InputTexel1)<<3 |
		combiner.Signature(combiner.Input1)<<6 |
		combiner.Signature(combiner.InputTexel1)<<9

	return []engine.Batch{
		{Signature: renderer.SignatureSkybox, Textures: textures, Vertices: quad(-1, -1, 1, 1, 0.99, [4]uint8{255, 128, 64, 255}), Triangles: 2},
		{Signature: shadeOnly, Vertices: quad(-0.9, -0.9, -0.1, -0.1, 0, [4]uint8{0, 200, 0, 255}), Triangles: 2},
		{Signature: textured, Textures: textures, Vertices: quad(0.1, -0.9, 0.9, -0.1, 0, [4]uint8{255, 255, 255, 255}), Triangles: 2},
		{Signature: mixed, Textures: textures, Vertices: quad(-0.9, 0.1, -0.1, 0.9, 0, [4]uint8{128, 128, 128, 255}), Triangles: 2},
		{Signature: renderer.SignatureEyes, Textures: textures, Vertices: quad(0.1, 0.1, 0.9, 0.9, 0, [4]uint8{0, 0, 255, 255}), Triangles: 2, UseAlpha: true},
		{Signature: renderer.SignatureLetter, Textures: textures, Vertices: quad(0.3, 0.3, 0.7, 0.7, 0, [4]uint8{255, 255, 255, 128}), Triangles: 2, UseAlpha: true, ZModeDecal: true},
	}
}

func findAsset(name string) string {
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	paths := []string{
		filepath.Join(exeDir, "assets", name),
		filepath.Join(exeDir, name),
		filepath.Join("assets", name),
		name,
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
