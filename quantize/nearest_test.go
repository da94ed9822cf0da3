package quantize

import (
	"testing"

	"github.com/go-sixel/sixelenc/raster"
)

func TestSqDistance(t *testing.T) {
	a := raster.Color{R: 0, G: 0, B: 0}
	b := raster.Color{R: 3, G: 4, B: 0}
	if got := sqDistance(a, b); got != 25 {
		t.Errorf("sqDistance = %d, want 25", got)
	}
}

func TestNearestByLabPicksClosest(t *testing.T) {
	palette := []raster.Color{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}
	idx := nearestByLab(raster.Color{R: 250, G: 10, B: 5}, palette)
	if idx != 0 {
		t.Errorf("nearestByLab = %d, want 0 (red)", idx)
	}
}
