package quantize

import "github.com/go-sixel/sixelenc/raster"

// rgbComponentSize is the number of quantization levels per channel (5 bits).
const rgbComponentSize = 32

// maxHistColors is the bucket count of the quantized color histogram.
const maxHistColors = rgbComponentSize * rgbComponentSize * rgbComponentSize

// rgbMask zeroes the low 3 bits of an 8-bit channel, leaving its top 5 bits.
const rgbMask uint8 = 0xF8

// rgbToU16 buckets an 8-bit RGB triple by its top 5 bits per channel into a
// 15-bit histogram index: (R5<<10)|(G5<<5)|B5.
func rgbToU16(c raster.Color) uint16 {
	return uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
}

// u16ToRGB dequantizes a 15-bit histogram index back to an 8-bit RGB
// triple with its low 3 bits per channel zeroed.
func u16ToRGB(v uint16) raster.Color {
	r5 := uint8(v>>10) & 0x1F
	g5 := uint8(v>>5) & 0x1F
	b5 := uint8(v) & 0x1F
	return raster.Color{R: r5 << 3, G: g5 << 3, B: b5 << 3}
}

// colorHist is the fixed 32768-bucket occupancy histogram used by the
// median-cut quantizer.
type colorHist struct {
	counts [maxHistColors]uint32
}

// buildHistogram scans r once, bucketing every pixel by its top 5 bits per
// channel.
func buildHistogram(r *raster.Raster) *colorHist {
	h := &colorHist{}
	w, ht := r.Width(), r.Height()
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			h.counts[rgbToU16(r.At(x, y))]++
		}
	}
	return h
}

// nonZeroBuckets returns the number of buckets with a non-zero occupancy
// count — K in spec.md's §4.3.
func (h *colorHist) nonZeroBuckets() int {
	k := 0
	for _, c := range h.counts {
		if c > 0 {
			k++
		}
	}
	return k
}
