package quantize

import (
	"testing"

	"github.com/go-sixel/sixelenc/raster"
)

func TestHistogramRoundTrip(t *testing.T) {
	cases := []raster.Color{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 128, G: 64, B: 32},
		{R: 7, G: 7, B: 7},
		{R: 8, G: 15, B: 16},
		{R: 249, G: 250, B: 251},
		{R: 1, G: 254, B: 127},
	}
	for _, c := range cases {
		got := u16ToRGB(rgbToU16(c))
		want := raster.Color{R: c.R & rgbMask, G: c.G & rgbMask, B: c.B & rgbMask}
		if got != want {
			t.Errorf("u16ToRGB(rgbToU16(%v)) = %v, want %v", c, got, want)
		}
	}
}

func TestBuildHistogramNonZeroBuckets(t *testing.T) {
	pix := []raster.Color{
		{R: 255, G: 0, B: 0},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}
	r := raster.New(2, 2, pix)
	h := buildHistogram(r)
	if got := h.nonZeroBuckets(); got != 3 {
		t.Errorf("nonZeroBuckets() = %d, want 3", got)
	}
}
