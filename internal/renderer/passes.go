package renderer

import (
	"Gopher64/internal/combiner"

	"github.com/go-gl/mathgl/mgl32"
)

// Pass is an extra draw over the same triangles after the base draw, run
// before the draw's overrides are reverted. Passes approximate combiner features the fixed-function pipeline cannot express
// in one draw.
type Pass interface {
	Name() string
	Applies(c *Context, p *Program) bool
	Draw(c *Context, p *Program, numTris int)
}

// AddPass appends an extra pass run after every draw it applies to.
func (c *Context) AddPass(pass Pass) {
	c.passes = append(c.passes, pass)
}

// mixTexturePass draws the second texture additively with the inverse of the
// mix color, assuming result = mix(tex0, tex1, shade).
type mixTexturePass struct{}

func (mixTexturePass) Name() string { return "mix-texture" }

func (mixTexturePass) Applies(c *Context, p *Program) bool {
	return c.cfg.MixTexturePass &&
		c.multitexture &&
		p.Category == combiner.CategoryTextureTexture &&
		c.mixColorSet
}

func (mixTexturePass) Draw(c *Context, p *Program, numTris int) {
	c.bindUnit(p.TextureOrder[1])

	s := c.newScope()
	s.enable(CapBlend, true)
	s.blendFunc(BlendOne, BlendOne)
	s.depthFunc(DepthLessEqual)
	s.array(ArrayColor, false)
	s.color(mgl32.Vec4{c.invMix[0], c.invMix[1], c.invMix[2], 1})
	c.backend.DrawTriangles(3 * numTris)
	s.restore()

	c.bindUnit(p.TextureOrder[0])
}

// fogPass blends the fog color over the base triangles for programs carrying
// the fog option, standing in for device fog.
type fogPass struct{}

func (fogPass) Name() string { return "fog" }

func (fogPass) Applies(c *Context, p *Program) bool {
	return c.cfg.FogPass && p.Features.OptFog
}

func (fogPass) Draw(c *Context, p *Program, numTris int) {
	s := c.newScope()
	defer s.restore()
	if p.UsesTexture() {
		s.enable(CapTexture2D, false)
	}
	s.array(ArrayColor, false)
	s.color(c.cfg.FogColor)
	s.enable(CapBlend, true)
	s.depthFunc(DepthLessEqual)
	c.backend.DrawTriangles(3 * numTris)
}
