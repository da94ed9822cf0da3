package quantize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-sixel/sixelenc/raster"
)

func TestMedianCutPaletteBound(t *testing.T) {
	pix := make([]raster.Color, 0, 64)
	for r := 0; r < 4; r++ {
		for g := 0; g < 4; g++ {
			for b := 0; b < 4; b++ {
				pix = append(pix, raster.Color{R: uint8(r * 60), G: uint8(g * 60), B: uint8(b * 60)})
			}
		}
	}
	rast := raster.New(8, 8, pix)

	for _, n := range []int{1, 2, 4, 16, 64, 256} {
		var q MedianCut
		q.Build(rast, n)
		if len(q.Palette()) > n {
			t.Errorf("n=%d: palette size %d exceeds bound", n, len(q.Palette()))
		}
		if len(q.Palette()) == 0 {
			t.Errorf("n=%d: palette must be non-empty", n)
		}
	}
}

func TestMedianCutIdentityBelowN(t *testing.T) {
	distinct := []raster.Color{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}
	r := raster.New(3, 1, distinct)

	var q MedianCut
	q.Build(r, 16)
	require.LessOrEqual(t, len(q.Palette()), 16)

	for _, c := range distinct {
		idx := q.IndexOf(c)
		got := q.Palette()[idx]
		want := raster.Color{R: c.R & rgbMask, G: c.G & rgbMask, B: c.B & rgbMask}
		if got != want {
			t.Errorf("IndexOf(%v) -> %v, want dequantized %v", c, got, want)
		}
	}
}

func TestMedianCutTotality(t *testing.T) {
	pix := make([]raster.Color, 0, 256)
	for i := 0; i < 256; i++ {
		pix = append(pix, raster.Color{R: uint8(i), G: uint8(255 - i), B: uint8(i / 2)})
	}
	r := raster.New(256, 1, pix)

	var q MedianCut
	q.Build(r, 16)
	for x := 0; x < 256; x++ {
		idx := q.IndexOf(r.At(x, 0))
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(q.Palette()))
	}
}

func TestSortEntriesByBucket(t *testing.T) {
	entries := []medianCutEntry{{bucket: 5, paletteIndex: 0}, {bucket: 1, paletteIndex: 1}, {bucket: 3, paletteIndex: 2}}
	sortEntriesByBucket(entries)
	for i := 1; i < len(entries); i++ {
		if entries[i].bucket < entries[i-1].bucket {
			t.Fatalf("entries not sorted ascending: %v", entries)
		}
	}
}
