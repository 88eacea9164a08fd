package engine

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"Gopher64/internal/logger"
	"Gopher64/internal/renderer"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
)

// textureTarget is the part of the renderer Context texture loading needs.
type textureTarget interface {
	CreateTexture() renderer.TextureID
	DeleteTexture(tex renderer.TextureID)
	SelectTexture(unit int, tex renderer.TextureID) error
	SetSamplerParameters(unit int, linear bool, cms, cmt uint32) error
	Upload(pixels []byte, width, height int, format renderer.PixelFormat) error
}

// DecodeRGBA decodes a PNG, JPEG or BMP image into tightly packed RGBA bytes.
func DecodeRGBA(r io.Reader) (pixels []byte, width, height int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return rgba.Pix, b.Dx(), b.Dy(), nil
}

// LoadTexture decodes r and uploads it as a new texture on unit with
// repeating linear sampling.
func LoadTexture(t textureTarget, unit int, r io.Reader) (renderer.TextureID, error) {
	pixels, w, h, err := DecodeRGBA(r)
	if err != nil {
		return 0, fmt.Errorf("decoding texture: %w", err)
	}
	tex := t.CreateTexture()
	if err := uploadTexture(t, unit, tex, pixels, w, h); err != nil {
		t.DeleteTexture(tex)
		return 0, err
	}
	return tex, nil
}

func uploadTexture(t textureTarget, unit int, tex renderer.TextureID, pixels []byte, w, h int) error {
	if err := t.SelectTexture(unit, tex); err != nil {
		return err
	}
	if err := t.SetSamplerParameters(unit, true, 0, 0); err != nil {
		return err
	}
	return t.Upload(pixels, w, h, renderer.FormatRGBA32)
}

// LoadTextureFile is LoadTexture reading from path.
func LoadTextureFile(t textureTarget, unit int, path string) (renderer.TextureID, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tex, err := LoadTexture(t, unit, f)
	if err != nil {
		logger.Log.Error("Texture load failed", zap.String("path", path), zap.Error(err))
		return 0, err
	}
	logger.Log.Info("Texture loaded",
		zap.String("path", path),
		zap.Uint32("textureID", uint32(tex)))
	return tex, nil
}
