package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResizeSpec(t *testing.T) {
	w, h, err := parseResizeSpec("320x200")
	require.NoError(t, err)
	require.EqualValues(t, 320, w)
	require.EqualValues(t, 200, h)

	_, _, err = parseResizeSpec("bogus")
	require.Error(t, err)

	_, _, err = parseResizeSpec("320xnope")
	require.Error(t, err)
}

func TestRasterFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	r := rasterFromImage(img)
	require.Equal(t, 2, r.Width())
	require.Equal(t, 2, r.Height())
	require.Equal(t, uint8(255), r.At(0, 0).R)
	require.Equal(t, uint8(255), r.At(1, 0).G)
	require.Equal(t, uint8(255), r.At(0, 1).B)
}
