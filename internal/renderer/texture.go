package renderer

import (
	"fmt"

	"Gopher64/internal/logger"

	"go.uber.org/zap"
)

// Tile clamp mode bits as carried by the display list.
const (
	TileMirror uint32 = 1 << 0
	TileClamp  uint32 = 1 << 1
)

// samplerState is the filter and wrap state of one texture unit plus the
// texture last selected on it.
type samplerState struct {
	min, mag     Filter
	wrapS, wrapT Wrap
	tex          TextureID
}

// wrapFromTile maps tile clamp bits to a wrap mode. Mirroring has no
// fixed-function equivalent on the target and falls back to repeat.
func wrapFromTile(cm uint32) Wrap {
	if cm&TileClamp != 0 {
		return WrapClamp
	}
	return WrapRepeat
}

func checkUnit(unit int) error {
	if unit < 0 || unit >= NumTextureUnits {
		return fmt.Errorf("%w: %d", ErrInvalidUnit, unit)
	}
	return nil
}

// CreateTexture allocates a backend texture object.
func (c *Context) CreateTexture() TextureID {
	return c.backend.GenTexture()
}

// DeleteTexture frees tex and forgets it on every unit that still refers
// to it.
func (c *Context) DeleteTexture(tex TextureID) {
	for i := range c.tmu {
		if c.tmu[i].tex == tex {
			c.tmu[i].tex = 0
		}
	}
	if c.state.bound == tex {
		c.state.bound = 0
	}
	c.backend.DeleteTexture(tex)
}

// SelectTexture records tex as the texture of unit and binds it for the
// following uploads and draws.
func (c *Context) SelectTexture(unit int, tex TextureID) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	c.tmu[unit].tex = tex
	c.bindTexture(tex)
	return nil
}

// SetSamplerParameters records filter and wrap state for unit. Unit 0 is
// applied to the bound texture immediately; other units are applied when
// their texture is rebound for a draw.
func (c *Context) SetSamplerParameters(unit int, linear bool, cms, cmt uint32) error {
	if err := checkUnit(unit); err != nil {
		return err
	}
	filter := FilterNearest
	if linear {
		filter = FilterLinear
	}
	st := &c.tmu[unit]
	st.min, st.mag = filter, filter
	st.wrapS, st.wrapT = wrapFromTile(cms), wrapFromTile(cmt)

	if unit == 0 {
		c.applySampler(0)
	}
	return nil
}

func (c *Context) applySampler(unit int) {
	st := c.tmu[unit]
	c.backend.TexParameters(st.min, st.mag, st.wrapS, st.wrapT)
}

// bindUnit rebinds the texture recorded for unit along with its sampler state.
func (c *Context) bindUnit(unit int) {
	c.bindTexture(c.tmu[unit].tex)
	c.applySampler(unit)
}

// BoundTexture returns the texture recorded for unit.
func (c *Context) BoundTexture(unit int) (TextureID, error) {
	if err := checkUnit(unit); err != nil {
		return 0, err
	}
	return c.tmu[unit].tex, nil
}

// Upload sends width x height texels to the bound texture. Without NPOT
// support the image is first resampled into the scratch buffer at the next
// power-of-two size, clamped to the configured bounds.
func (c *Context) Upload(pixels []byte, width, height int, format PixelFormat) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("upload: invalid size %dx%d", width, height)
	}
	bpp := format.BytesPerPixel()
	if len(pixels) < width*height*bpp {
		return fmt.Errorf("%w: upload of %dx%d needs %d bytes, got %d", ErrShortBuffer, width, height, width*height*bpp, len(pixels))
	}

	if !c.SupportsNPOT() && needsResample(width, height, c.cfg.MinTextureSide) {
		pw, ph := potSize(width, height, c.cfg.MinTextureSide, c.cfg.MaxTextureSide)
		n := pw * ph * bpp
		if n > len(c.scratch) {
			logger.Log.Warn("Texture too large for resample buffer",
				zap.Int("width", width),
				zap.Int("height", height),
				zap.Int("scaledWidth", pw),
				zap.Int("scaledHeight", ph))
			return fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrScratchOverflow, pw, ph, n, len(c.scratch))
		}
		Resample(pixels, width, height, c.scratch[:n], pw, ph, bpp)
		logger.Log.Debug("Texture resampled",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Int("scaledWidth", pw),
			zap.Int("scaledHeight", ph))
		pixels, width, height = c.scratch[:n], pw, ph
	}

	c.backend.TexImage2D(width, height, format, pixels[:width*height*bpp])
	return nil
}
