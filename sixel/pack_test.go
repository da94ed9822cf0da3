package sixel

import (
	"testing"

	"github.com/go-sixel/sixelenc/raster"
)

// fixedPalette is a minimal quantize.Quantizer stub for pack tests: it maps
// colors to indices by exact equality only, which is all these tests need.
type fixedPalette struct {
	colors []raster.Color
}

func (f *fixedPalette) Build(*raster.Raster, int) {}

func (f *fixedPalette) IndexOf(c raster.Color) int {
	for i, p := range f.colors {
		if p == c {
			return i
		}
	}
	return 0
}

func (f *fixedPalette) Palette() []raster.Color { return f.colors }

func TestPackBandWidthInvariant(t *testing.T) {
	red := raster.Color{R: 255}
	blue := raster.Color{B: 255}
	q := &fixedPalette{colors: []raster.Color{red, blue}}

	pix := []raster.Color{red, blue, red, blue, red, blue}
	r := raster.New(6, 1, pix)

	groups := packBand(r, q, 0, 1)
	for _, g := range groups {
		sum := 0
		for _, rn := range g.runs {
			sum += rn.count
		}
		if sum != 6 {
			t.Errorf("color %d: run-length sum %d != width 6", g.id, sum)
		}
	}
}

func TestPackBandRLEMinimality(t *testing.T) {
	red := raster.Color{R: 255}
	q := &fixedPalette{colors: []raster.Color{red}}
	pix := []raster.Color{red, red, red, red}
	r := raster.New(4, 1, pix)

	groups := packBand(r, q, 0, 1)
	if len(groups) != 1 {
		t.Fatalf("expected 1 color group, got %d", len(groups))
	}
	runs := groups[0].runs
	for i := 1; i < len(runs); i++ {
		if runs[i].sixel == runs[i-1].sixel {
			t.Errorf("adjacent runs %d and %d share sixel byte %d, not merged", i-1, i, runs[i].sixel)
		}
	}
}

func TestPackBandSixBitColumn(t *testing.T) {
	gray := raster.Color{R: 128, G: 128, B: 128}
	q := &fixedPalette{colors: []raster.Color{gray}}
	pix := []raster.Color{gray, gray, gray, gray, gray, gray}
	r := raster.New(1, 6, pix)

	groups := packBand(r, q, 0, 6)
	if len(groups) != 1 {
		t.Fatalf("expected 1 color group, got %d", len(groups))
	}
	if len(groups[0].runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(groups[0].runs))
	}
	if got := groups[0].runs[0].sixel; got != 0b111111 {
		t.Errorf("sixel byte = %06b, want 111111", got)
	}
}
