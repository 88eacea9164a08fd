package renderer

import (
	"Gopher64/internal/combiner"

	"github.com/go-gl/mathgl/mgl32"
)

// Signatures that get visual-compatibility treatment. The general model
// (Classify plus the category combine modes) stays untouched; these tables
// are layered on top of it.
const (
	SignatureEyes      combiner.Signature = 0x0000038D
	SignatureHead      combiner.Signature = 0x00000551
	SignatureLetter    combiner.Signature = 0x01045A00
	SignatureTitleFade combiner.Signature = 0x01200A00
	SignatureSkybox    combiner.Signature = 0x01200045
)

type combineOverride struct {
	mode   CombineMode
	reason string
}

// textureColorModes replaces the modulate mode of texture+color programs.
var textureColorModes = map[combiner.Signature]combineOverride{
	SignatureLetter:    {CombineDecal, "letter texture keeps its texel color, the shade only carries alpha"},
	SignatureTitleFade: {CombineDecal, "title fade-in takes alpha from the shade and color from the texture"},
	SignatureHead:      {CombineReplace, "head shading mixes the shade in a way modulate over-darkens"},
}

// alphaDiscardSignatures get alpha test at the texture-edge threshold even
// without the texture-edge option bit.
var alphaDiscardSignatures = map[combiner.Signature]string{
	SignatureEyes: "eye texture is cut out by its own alpha",
}

// drawOverride is a temporary pipeline change made around a single draw.
// Every change goes through the scope so it is reverted after the draw.
type drawOverride struct {
	reason string
	apply  func(s *stateScope)
}

var drawOverrides = map[combiner.Signature]drawOverride{
	SignatureEyes: {
		reason: "eyes are decaled over the face and blended by texel alpha",
		apply: func(s *stateScope) {
			s.enable(CapTexture2D, true)
			s.combineMode(CombineDecal)
			s.enable(CapBlend, true)
		},
	},
	SignatureHead: {
		reason: "head renders flat shaded and opaque",
		apply: func(s *stateScope) {
			s.enable(CapTexture2D, false)
			s.enable(CapBlend, false)
		},
	},
	SignatureSkybox: {
		reason: "skybox is drawn behind everything in screen space without fog",
		apply: func(s *stateScope) {
			s.depthMask(false)
			s.depthFunc(DepthLessEqual)
			s.enable(CapBlend, false)
			s.enable(CapFog, false)
			s.matrix(MatrixModelView, mgl32.Ident4(), true)
		},
	},
}

// decalDepthBias emulates polygon offset for decal z-mode by nudging the
// geometry toward the camera.
func decalDepthBias(offset mgl32.Vec3) func(s *stateScope) {
	return func(s *stateScope) {
		s.enable(CapDepthTest, true)
		s.depthFunc(DepthLessEqual)
		s.depthMask(true)
		s.matrix(MatrixModelView, mgl32.Translate3D(offset[0], offset[1], offset[2]), false)
	}
}

// combineModeFor picks the texture environment mode of p.
func combineModeFor(p *Program) CombineMode {
	if p.Category == combiner.CategoryTextureColor {
		if o, ok := textureColorModes[p.Signature]; ok {
			return o.mode
		}
	}
	return CombineModulate
}

// wantsAlphaDiscard reports whether p discards low-alpha texels.
func wantsAlphaDiscard(p *Program) bool {
	if p.Signature.Has(combiner.OptTextureEdge) {
		return true
	}
	_, ok := alphaDiscardSignatures[p.Signature]
	return ok
}
