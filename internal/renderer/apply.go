package renderer

import "github.com/go-gl/mathgl/mgl32"

// applyProgram binds the attribute streams of the current batch for p and,
// on the first call since p was loaded, sets alpha test and the combine
// mode. It reports whether a flat mix color replaced the color stream.
func (c *Context) applyProgram(p *Program) (flatColor bool) {
	c.backend.VertexPointer(c.vertices)

	if p.UsesTexture() {
		c.setEnabled(CapTexture2D, true)
		c.setArray(ArrayTexCoord, true)
		c.backend.TexCoordPointer(c.vertices)
	} else {
		c.setArray(ArrayTexCoord, false)
		c.setEnabled(CapTexture2D, false)
	}

	c.mixColorSet = false
	switch {
	case p.Features.NumInputs == 0:
		c.setArray(ArrayColor, false)
	case c.mixesByVertexColor(p):
		c.storeMixColor(c.vertices[0].Color)
		c.setArray(ArrayColor, false)
		c.setColor(mgl32.Vec4{c.mix[0], c.mix[1], c.mix[2], 1})
		flatColor = true
	default:
		c.setArray(ArrayColor, true)
		c.backend.ColorPointer(c.vertices)
	}

	if p.configured {
		return flatColor
	}
	p.configured = true

	if wantsAlphaDiscard(p) {
		c.setEnabled(CapAlphaTest, true)
		c.setAlphaRef(c.cfg.AlphaDiscardRef)
	} else {
		c.setEnabled(CapAlphaTest, false)
	}
	c.setCombineMode(combineModeFor(p))
	return flatColor
}

// mixesByVertexColor reports whether the two textures of p are mixed by the
// vertex color and the flat-color strategy is enabled.
func (c *Context) mixesByVertexColor(p *Program) bool {
	return c.cfg.MixByVertexColor &&
		p.Features.UsedTextures[1] &&
		p.Features.DoMix[0] &&
		len(c.vertices) > 0
}

// storeMixColor keeps the mix weight taken from a BGRA vertex color and its
// inverse for the second texture pass.
func (c *Context) storeMixColor(bgra [4]uint8) {
	c.mix = mgl32.Vec3{float32(bgra[2]) / 255, float32(bgra[1]) / 255, float32(bgra[0]) / 255}
	c.invMix = mgl32.Vec3{1 - c.mix[0], 1 - c.mix[1], 1 - c.mix[2]}
	c.mixColorSet = true
}
