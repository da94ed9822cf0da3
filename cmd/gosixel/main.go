// Command gosixel converts a raster image to a SIXEL byte stream.
//
// Usage:
//
//	gosixel [options] <input>   PNG/JPEG/GIF/BMP/TIFF -> SIXEL (use "-" for stdin)
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/willibrandon/mtlog/core"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/go-sixel/sixelenc/encode"
	"github.com/go-sixel/sixelenc/internal/telemetry"
	"github.com/go-sixel/sixelenc/raster"
	"github.com/go-sixel/sixelenc/sixel"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gosixel", flag.ContinueOnError)
	var paletteSize int
	fs.IntVar(&paletteSize, "p", 256, "maximum palette size (1-256)")
	fs.IntVar(&paletteSize, "palette", 256, "maximum palette size (1-256)")
	var dither bool
	fs.BoolVar(&dither, "d", false, "enable Floyd-Steinberg dithering")
	fs.BoolVar(&dither, "dither", false, "enable Floyd-Steinberg dithering")
	debug := fs.Bool("debug", false, "insert readability newlines and print a palette preview to stderr")
	resizeSpec := fs.String("resize", "", "pre-resize the decoded image to WxH before quantizing")
	output := fs.String("o", "", `output path ("-" or empty for stdout)`)
	logLevel := fs.String("log-level", "warn", "debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "gosixel: missing input path\nUsage: gosixel [options] <input>")
		return 2
	}
	inputPath := fs.Arg(0)

	logger := telemetry.New(*logLevel)

	if err := convert(inputPath, *output, sixel.Options{
		PaletteSize: paletteSize,
		Dither:      dither,
		Debug:       *debug,
	}, *resizeSpec, *debug, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputPath, err)
		return 1
	}
	return 0
}

func convert(inputPath, outputPath string, opts sixel.Options, resizeSpec string, debug bool, logger core.Logger) error {
	src, err := openInput(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	if resizeSpec != "" {
		w, h, err := parseResizeSpec(resizeSpec)
		if err != nil {
			return fmt.Errorf("parsing -resize: %w", err)
		}
		img = resize.Resize(w, h, img, resize.Lanczos3)
	}

	r := rasterFromImage(img)

	if debug {
		printPalettePreview(os.Stderr, r, opts)
	}

	dst, closeDst, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closeDst()

	if err := encode.Run(context.Background(), logger, encode.Request{
		Raster:  r,
		Writer:  dst,
		Options: opts,
	}); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		w := newBufWriter(os.Stdout)
		return w, func() { w.flush() }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := newBufWriter(f)
	return w, func() { w.flush(); f.Close() }, nil
}

func parseResizeSpec(spec string) (uint, uint, error) {
	parts := strings.SplitN(spec, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", spec)
	}
	w, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", spec, err)
	}
	h, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", spec, err)
	}
	return uint(w), uint(h), nil
}

func rasterFromImage(img image.Image) *raster.Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]raster.Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r32, g32, b32, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pix[y*w+x] = raster.Color{R: uint8(r32 >> 8), G: uint8(g32 >> 8), B: uint8(b32 >> 8)}
		}
	}
	return raster.New(w, h, pix)
}

// printPalettePreview reports the palette -debug would encode, one line per
// entry: hex RGB and CIE Lab coordinates, mirroring the teacher's
// hue/lightness palette reporting.
func printPalettePreview(w io.Writer, r *raster.Raster, opts sixel.Options) {
	palette := sixel.Palette(r, opts)
	fmt.Fprintf(w, "palette: %d colors\n", len(palette))
	for i, c := range palette {
		lab := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
		l, a, bb := lab.Lab()
		fmt.Fprintf(w, "  #%d %02x%02x%02x Lab(%.2f,%.2f,%.2f)\n", i, c.R, c.G, c.B, l, a, bb)
	}
}
