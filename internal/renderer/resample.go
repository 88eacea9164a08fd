package renderer

import "errors"

var ErrScratchOverflow = errors.New("renderer: resampled texture exceeds scratch buffer")

func isPOT(v int) bool {
	return v > 0 && v&(v-1) == 0
}

func nextPOT(v int) int {
	if v <= 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// potSize returns the power-of-two size an upload of w x h is resampled to,
// clamped to [min, max] on each axis.
func potSize(w, h, min, max int) (int, int) {
	clamp := func(v int) int {
		v = nextPOT(v)
		if v > max {
			v = max
		}
		if v < min {
			v = min
		}
		return v
	}
	return clamp(w), clamp(h)
}

// needsResample reports whether a w x h upload must go through potSize on a
// device without NPOT support.
func needsResample(w, h, min int) bool {
	return !isPOT(w) || !isPOT(h) || w < min || h < min
}

// Resample scales in (inW x inH texels of bpp bytes) into out (outW x outH)
// by nearest neighbour. Columns step in 16.16 fixed point starting half a
// step in; rows are picked by integer division. out must hold outW*outH*bpp
// bytes and in must hold inW*inH*bpp bytes.
func Resample(in []byte, inW, inH int, out []byte, outW, outH, bpp int) {
	step := uint64(inW) << 16 / uint64(outW)
	rowBytes := inW * bpp
	o := 0
	for y := 0; y < outH; y++ {
		row := in[(y*inH/outH)*rowBytes:]
		frac := step >> 1
		for x := 0; x < outW; x++ {
			src := int(frac>>16) * bpp
			copy(out[o:o+bpp], row[src:src+bpp])
			o += bpp
			frac += step
		}
	}
}
