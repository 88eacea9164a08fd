package combiner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEyeSignature(t *testing.T) {
	// color = mix(input1, texel0, texel0 alpha), alpha unused
	f := BitfieldExtractor{}.Extract(0x0000038D)

	assert.Equal(t, [4]Input{InputTexel0, Input1, InputTexel0Alpha, Input1}, f.Inputs[0])
	assert.Equal(t, [2]bool{true, false}, f.UsedTextures)
	assert.Equal(t, 1, f.NumInputs)
	assert.True(t, f.DoMix[0])
	assert.False(t, f.DoSingle[0])
	assert.True(t, f.DoSingle[1])
	assert.False(t, f.OptTextureEdge)
}

func TestExtractOptions(t *testing.T) {
	sig := Signature(0x00000005) | OptAlpha | OptFog | OptTextureEdge
	f := BitfieldExtractor{}.Extract(sig)

	assert.True(t, f.OptAlpha)
	assert.True(t, f.OptFog)
	assert.True(t, f.OptTextureEdge)
	assert.False(t, f.OptNoise)
	assert.Equal(t, 0, f.NumInputs)
	assert.True(t, f.UsedTextures[0])
	assert.True(t, f.DoMultiply[0])
}

func TestExtractTwoTextures(t *testing.T) {
	// color = (texel0 - texel1) * input1 + texel1
	sig := Signature(InputTexel0) | Signature(InputTexel1)<<3 | Signature(Input1)<<6 | Signature(InputTexel1)<<9
	f := BitfieldExtractor{}.Extract(sig)

	assert.Equal(t, [2]bool{true, true}, f.UsedTextures)
	assert.True(t, f.DoMix[0])
	assert.Equal(t, 1, f.NumInputs)

	cat, ord, err := Classify(f)
	assert.NoError(t, err)
	assert.Equal(t, CategoryTextureTexture, cat)
	// alpha selectors are all zero, so the slot-1 hint is set
	assert.Equal(t, [2]int{1, 0}, ord)
}

func TestExtractColorAlphaSame(t *testing.T) {
	f := BitfieldExtractor{}.Extract(0x00045045)
	assert.True(t, f.ColorAlphaSame)
}

func TestSignatureString(t *testing.T) {
	assert.Equal(t, "0x0000038D", Signature(0x38D).String())
}

func TestExtractorFunc(t *testing.T) {
	ex := ExtractorFunc(func(Signature) Features { return Features{NumInputs: 2} })
	assert.Equal(t, 2, ex.Extract(0).NumInputs)
}

func TestSignatureHas(t *testing.T) {
	sig := Signature(0x38D) | OptFog | OptNoise
	assert.True(t, sig.Has(OptFog))
	assert.True(t, sig.Has(OptFog|OptTextureEdge))
	assert.False(t, sig.Has(OptTextureEdge))
	assert.False(t, Signature(0x38D).Has(OptAlpha|OptFog|OptTextureEdge|OptNoise))
}
