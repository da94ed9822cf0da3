// Package dither applies error-diffusion dithering against a built
// quantize.Quantizer palette.
package dither

import (
	"github.com/go-sixel/sixelenc/quantize"
	"github.com/go-sixel/sixelenc/raster"
)

// weights are the Floyd-Steinberg neighbor fractions, numerators over 16:
// right 7/16, below-left 3/16, below 5/16, below-right 1/16.
const (
	weightRight      = 7
	weightBelowLeft  = 3
	weightBelow      = 5
	weightBelowRight = 1
	weightDivisor    = 16
)

// FloydSteinberg diffuses quantization error across neighboring pixels in
// raster scan order, snapping each pixel to q's nearest palette color before
// propagating the residual.
//
// r is not modified; the returned raster is a new clone in which every
// pixel holds the palette color chosen for it, so a caller can map every
// pixel through q.IndexOf afterward to get palette ids.
func FloydSteinberg(r *raster.Raster, q quantize.Quantizer) *raster.Raster {
	out := r.Clone()
	w, h := out.Width(), out.Height()

	// errR/errG/errB accumulate diffused error per pixel in whole channel
	// units, since raster.Color channels are integral and error must carry
	// between rows. Each neighbor's share is divided by weightDivisor (and
	// truncated toward zero) when it is distributed.
	errR := make([]int32, w*h)
	errG := make([]int32, w*h)
	errB := make([]int32, w*h)

	clamp := func(v int32) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			orig := out.At(x, y)
			want := raster.Color{
				R: clamp(int32(orig.R) + errR[i]),
				G: clamp(int32(orig.G) + errG[i]),
				B: clamp(int32(orig.B) + errB[i]),
			}

			idx := q.IndexOf(want)
			chosen := q.Palette()[idx]
			out.Set(x, y, chosen)

			dr := int32(want.R) - int32(chosen.R)
			dg := int32(want.G) - int32(chosen.G)
			db := int32(want.B) - int32(chosen.B)

			if x+1 < w {
				j := y*w + (x + 1)
				errR[j] += dr * weightRight / weightDivisor
				errG[j] += dg * weightRight / weightDivisor
				errB[j] += db * weightRight / weightDivisor
			}
			if y+1 < h {
				if x-1 >= 0 {
					j := (y+1)*w + (x - 1)
					errR[j] += dr * weightBelowLeft / weightDivisor
					errG[j] += dg * weightBelowLeft / weightDivisor
					errB[j] += db * weightBelowLeft / weightDivisor
				}
				j := (y+1)*w + x
				errR[j] += dr * weightBelow / weightDivisor
				errG[j] += dg * weightBelow / weightDivisor
				errB[j] += db * weightBelow / weightDivisor
				if x+1 < w {
					j := (y+1)*w + (x + 1)
					errR[j] += dr * weightBelowRight / weightDivisor
					errG[j] += dg * weightBelowRight / weightDivisor
					errB[j] += db * weightBelowRight / weightDivisor
				}
			}
		}
	}

	return out
}
