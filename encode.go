package gimtool

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type encoder struct {
	ext    string
	encode func(io.Writer, image.Image) error
}

var encoders = map[string]encoder{
	"png": {"png", png.Encode},
	"bmp": {"bmp", bmp.Encode},
	"tiff": {"tiff", func(w io.Writer, m image.Image) error {
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}},
}

// Formats returns the supported output formats.
func Formats() []string {
	f := make([]string, 0, len(encoders))
	for k := range encoders {
		f = append(f, k)
	}
	sort.Strings(f)
	return f
}

// reduce quantizes m down to a palette of at most n colors.
func reduce(m image.Image, n int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
