package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPotSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{10, 10, 16, 16},
		{3, 5, 8, 8},
		{64, 33, 64, 64},
		{300, 1000, 256, 256},
		{16, 4, 16, 8},
	}
	for _, tt := range tests {
		w, h := potSize(tt.w, tt.h, 8, 256)
		assert.Equal(t, tt.wantW, w, "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "%dx%d", tt.w, tt.h)
	}
}

func TestNeedsResample(t *testing.T) {
	assert.False(t, needsResample(16, 32, 8))
	assert.True(t, needsResample(10, 16, 8))
	assert.True(t, needsResample(4, 16, 8))
}

// coordImage builds an RGBA image whose texel (x, y) is {x, y, 0, 255}.
func coordImage(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+3] = byte(x), byte(y), 255
		}
	}
	return pix
}

func TestResampleNearestNeighbour(t *testing.T) {
	const inW, inH = 10, 10
	outW, outH := potSize(inW, inH, 8, 256)
	require.Equal(t, 16, outW)
	require.Equal(t, 16, outH)

	out := make([]byte, outW*outH*4)
	Resample(coordImage(inW, inH), inW, inH, out, outW, outH, 4)

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			i := (y*outW + x) * 4
			srcX, srcY := int(out[i]), int(out[i+1])
			assert.Equal(t, y*inH/outH, srcY, "row of (%d,%d)", x, y)
			// half-step start may pick the next column
			assert.InDelta(t, x*inW/outW, srcX, 1, "column of (%d,%d)", x, y)
			assert.Equal(t, byte(255), out[i+3])
		}
	}
}

func TestResampleDownscale16Bit(t *testing.T) {
	const inW, inH = 4, 2
	in := make([]byte, inW*inH*2)
	for i := 0; i < inW*inH; i++ {
		in[i*2] = byte(i)
	}
	out := make([]byte, 2*1*2)
	Resample(in, inW, inH, out, 2, 1, 2)

	// step = 2.0, columns 1 and 3 of row 0
	assert.Equal(t, []byte{1, 0, 3, 0}, out)
}

func TestResampleIdentity(t *testing.T) {
	in := coordImage(8, 8)
	out := make([]byte, len(in))
	Resample(in, 8, 8, out, 8, 8, 4)
	assert.Equal(t, in, out)
}

func TestResampleVeryWideRow(t *testing.T) {
	const inW, outW = 70000, 256
	in := make([]byte, inW*4)
	for x := 0; x < inW; x++ {
		in[x*4], in[x*4+1], in[x*4+2] = byte(x), byte(x>>8), byte(x>>16)
	}
	out := make([]byte, outW*4)
	Resample(in, inW, 1, out, outW, 1, 4)

	for x := 0; x < outW; x++ {
		col := int(out[x*4]) | int(out[x*4+1])<<8 | int(out[x*4+2])<<16
		lo, hi := x*inW/outW, (x+1)*inW/outW
		if col < lo || col > hi {
			t.Fatalf("column %d sampled %d, want within [%d, %d]", x, col, lo, hi)
		}
	}
}
