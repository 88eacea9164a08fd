package combiner

import "fmt"

// Signature is the 32-bit key describing how textures and vertex colors are
// combined for a draw batch. The renderer treats it as opaque; only an
// Extractor looks inside.
type Signature uint32

// Option bits carried above the two input selectors.
const (
	OptAlpha       Signature = 1 << 24
	OptFog         Signature = 1 << 25
	OptTextureEdge Signature = 1 << 26
	OptNoise       Signature = 1 << 27
)

// Has reports whether any of the option bits in opt are set.
func (s Signature) Has(opt Signature) bool {
	return s&opt != 0
}

// String formats the signature as eight hex digits.
func (s Signature) String() string {
	return fmt.Sprintf("0x%08X", uint32(s))
}

// Input is one selector slot of the combiner equation.
type Input uint8

const (
	InputZero Input = iota
	Input1
	Input2
	Input3
	Input4
	InputTexel0
	InputTexel0Alpha
	InputTexel1
)

// Features is what a signature asks of the pipeline. Index 0 of the paired
// arrays is the color channel, index 1 the alpha channel.
type Features struct {
	Inputs         [2][4]Input
	OptAlpha       bool
	OptFog         bool
	OptTextureEdge bool
	OptNoise       bool
	UsedTextures   [2]bool
	NumInputs      int
	DoSingle       [2]bool
	DoMultiply     [2]bool
	DoMix          [2]bool
	ColorAlphaSame bool
}

// Extractor reports the features of a signature. Implementations must be
// pure so that results can be cached per signature.
type Extractor interface {
	Extract(sig Signature) Features
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(sig Signature) Features

func (f ExtractorFunc) Extract(sig Signature) Features { return f(sig) }

// BitfieldExtractor decodes the packed layout: color selectors in bits 0-11,
// alpha selectors in bits 12-23, three bits per slot, option bits above.
type BitfieldExtractor struct{}

func (BitfieldExtractor) Extract(sig Signature) Features {
	var f Features
	for i := 0; i < 4; i++ {
		f.Inputs[0][i] = Input((sig >> (i * 3)) & 7)
		f.Inputs[1][i] = Input((sig >> (12 + i*3)) & 7)
	}
	f.OptAlpha = sig.Has(OptAlpha)
	f.OptFog = sig.Has(OptFog)
	f.OptTextureEdge = sig.Has(OptTextureEdge)
	f.OptNoise = sig.Has(OptNoise)

	for c := 0; c < 2; c++ {
		for _, in := range f.Inputs[c] {
			if in >= Input1 && in <= Input4 && int(in) > f.NumInputs {
				f.NumInputs = int(in)
			}
			switch in {
			case InputTexel0, InputTexel0Alpha:
				f.UsedTextures[0] = true
			case InputTexel1:
				f.UsedTextures[1] = true
			}
		}
		f.DoSingle[c] = f.Inputs[c][2] == InputZero
		f.DoMultiply[c] = f.Inputs[c][1] == InputZero && f.Inputs[c][3] == InputZero
		f.DoMix[c] = f.Inputs[c][1] == f.Inputs[c][3]
	}
	f.ColorAlphaSame = sig&0xfff == (sig>>12)&0xfff
	return f
}
