package renderer

import (
	"fmt"

	"Gopher64/internal/combiner"

	"github.com/go-gl/mathgl/mgl32"
)

// QuadVertices is the vertex count Draw2D expects.
const QuadVertices = 6

// Draw submits numTris triangles from buf with the loaded program. Per
// signature overrides and the decal depth bias are applied around the draw
// call and reverted before Draw returns, in reverse order. buf is not
// retained past the call.
func (c *Context) Draw(buf []Vertex, numTris int) error {
	p := c.active
	if p == nil {
		return ErrNoProgram
	}
	if numTris < 0 || len(buf) < 3*numTris {
		return fmt.Errorf("%w: %d vertices for %d triangles", ErrShortBuffer, len(buf), numTris)
	}

	c.vertices = buf
	defer func() { c.vertices = nil }()

	c.drawBase(p, numTris)
	return nil
}

func (c *Context) drawBase(p *Program, numTris int) {
	flat := c.applyProgram(p)

	// two textures: the primary one goes first
	if p.Features.UsedTextures[1] {
		c.bindUnit(p.TextureOrder[0])
	}

	s := c.newScope()
	defer s.restore()
	if flat {
		s.onRestore(func() { c.setColor(mgl32.Vec4{1, 1, 1, 1}) })
	}
	if o, ok := drawOverrides[p.Signature]; ok {
		o.apply(s)
	}
	if c.zmodeDecal {
		decalDepthBias(c.cfg.DecalOffset)(s)
	}

	c.backend.DrawTriangles(3 * numTris)

	// passes share the base draw's matrices and depth state
	for _, pass := range c.passes {
		if pass.Applies(c, p) {
			pass.Draw(c, p, numTris)
		}
	}
}

// Draw2D draws one screen-space quad from buf under an orthographic
// projection matching the viewport, with fog off.
func (c *Context) Draw2D(buf []Vertex) error {
	if len(buf) < QuadVertices {
		return fmt.Errorf("%w: quad needs %d vertices, got %d", ErrShortBuffer, QuadVertices, len(buf))
	}

	s := c.newScope()
	defer s.restore()
	s.enable(CapFog, false)
	s.matrix(MatrixProjection, mgl32.Ortho2D(0, float32(c.viewW), float32(c.viewH), 0), true)
	s.matrix(MatrixModelView, mgl32.Ident4(), true)
	s.enable(CapTexture2D, true)
	s.array(ArrayTexCoord, true)
	s.array(ArrayColor, true)

	c.backend.VertexPointer(buf)
	c.backend.TexCoordPointer(buf)
	c.backend.ColorPointer(buf)
	if p := c.active; p != nil && p.Features.UsedTextures[1] {
		c.bindUnit(p.TextureOrder[0])
	}

	c.backend.DrawTriangles(QuadVertices)
	return nil
}

// DrawOverrideReason returns why sig gets special handling around draws,
// or "" when it draws with the general model.
func DrawOverrideReason(sig combiner.Signature) string {
	var reason string
	if o, ok := drawOverrides[sig]; ok {
		reason = o.reason
	}
	if o, ok := textureColorModes[sig]; ok {
		reason = joinReason(reason, o.reason)
	}
	if r, ok := alphaDiscardSignatures[sig]; ok {
		reason = joinReason(reason, r)
	}
	return reason
}

func joinReason(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
