package image

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"
	"log"

	"github.com/bodgit/gimtool/gim"
	"github.com/bodgit/gimtool/tile"
)

var discard = log.New(ioutil.Discard, "", 0)

func align(n, a int) int {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}

func bitsPerPixel(f gim.Format) (int, error) {
	switch f {
	case gim.RGBA8888:
		return 32, nil
	case gim.Index8:
		return 8, nil
	case gim.Index4:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %s not supported for conversion", gim.ErrUnsupportedImageFormat, f)
	}
}

type decoder struct {
	p *gim.Picture
	o Options

	logger   *log.Logger
	warnings *log.Logger

	bpp     int
	width   int
	height  int
	layout  tile.Layout
	palette []byte
}

func newDecoder(p *gim.Picture, o *Options) *decoder {
	d := &decoder{
		p:        p,
		logger:   discard,
		warnings: discard,
	}
	if o != nil {
		d.o = *o
		if o.Logger != nil {
			d.logger = o.Logger
		}
		if o.Warnings != nil {
			d.warnings = o.Warnings
		}
	}
	return d
}

// geometry works out the dimensions of the pixel data from the alignment in
// the header, falling back to the size of the payload if the declared pitch
// cannot be right.
func (d *decoder) geometry() error {
	h := d.p.Image

	bpp, err := bitsPerPixel(h.Format)
	if err != nil {
		return err
	}
	d.bpp = bpp

	d.logger.Printf("GIM Image Format: %s\n", h.Format)
	d.logger.Printf("GIM Image Order: %s\n", h.Order)
	d.logger.Printf("Image width: %d, height: %d\n", h.Width, h.Height)
	d.logger.Printf("Image pitch align: %d, height align: %d\n", h.PitchAlign, h.HeightAlign)

	d.width = align(int(h.Width), int(h.PitchAlign))
	d.height = align(int(h.Height), int(h.HeightAlign))

	if int(h.Width) < d.width {
		d.logger.Printf("NOTE: width %d aligned to %d\n", h.Width, d.width)
	}
	if int(h.Height) < d.height {
		d.logger.Printf("NOTE: height %d aligned to %d\n", h.Height, d.height)
	}

	if d.width == 0 || d.height == 0 {
		return fmt.Errorf("%w: %dx%d", gim.ErrInvalidDimensions, d.width, d.height)
	}

	// Only direct color data can be trusted to tell us the pitch
	if h.Format == gim.RGBA8888 && d.width*d.height*4 > len(d.p.ImageData) {
		width := len(d.p.ImageData) / 4 / d.height
		d.warnings.Printf("WARNING: not enough data for pitch, using aligned height to calc width. Aligned width was: %d now: %d\n", d.width, width)
		if width == 0 {
			return fmt.Errorf("%w: %d bytes is less than one row of %d", gim.ErrInvalidDimensions, len(d.p.ImageData), d.height)
		}
		d.width = width
	}

	d.logger.Printf("Image data dimensions: %d x %d\n", d.width, d.height)

	return nil
}

func (d *decoder) tileSize() (int, int) {
	tw, th := tileBytes*8/d.bpp, tileRows
	if d.o.TileWidth > 0 {
		tw = d.o.TileWidth
	}
	if d.o.TileHeight > 0 {
		th = d.o.TileHeight
	}
	return tw, th
}

func (d *decoder) arrange() {
	if d.p.Image.Order != gim.Tiled || d.o.Linear {
		d.layout = tile.Linear(d.width, d.height)
		return
	}

	tw, th := d.tileSize()
	d.layout = tile.Layout{
		Width:      d.width,
		Height:     d.height,
		TileWidth:  tw,
		TileHeight: th,
	}

	tilesX, tilesY := d.layout.Tiles()
	d.logger.Printf("Tile dimensions: %d x %d\n", tw, th)
	d.logger.Printf("Number of tiles: %d x %d\n", tilesX, tilesY)
	if !d.layout.Covers() {
		d.logger.Printf("NOTE: tiles do not cover the image, uncovered pixels are left blank\n")
	}
}

func (d *decoder) readPalette() error {
	if !d.p.Image.Format.Indexed() {
		return nil
	}
	if d.p.Palette == nil {
		return gim.ErrMissingPalette
	}
	palette, err := NormalizePalette(*d.p.Palette, d.p.PaletteData)
	if err != nil {
		return err
	}
	d.palette = palette
	return nil
}

// lastByte returns the offset of the last byte of the i-th pixel.
func (d *decoder) lastByte(i int) int {
	return ((i+1)*d.bpp+7)/8 - 1
}

func (d *decoder) outOfBounds(i int) error {
	return &gim.OutOfBoundsError{
		Offset: d.lastByte(i),
		Len:    len(d.p.ImageData),
	}
}

// check makes sure every pixel the layout reads is present before anything
// is allocated. Pixels are read in order so the first missing one is the
// first that does not fit entirely.
func (d *decoder) check() error {
	if n := d.layout.Pixels(); n > 0 && d.lastByte(n-1) >= len(d.p.ImageData) {
		d.logger.Printf("Need %d pixels, have data for %d\n", n, len(d.p.ImageData)*8/d.bpp)
		return d.outOfBounds(len(d.p.ImageData) * 8 / d.bpp)
	}
	return nil
}

func (d *decoder) index(i int) (byte, error) {
	data := d.p.ImageData
	switch d.bpp {
	case 8:
		if i >= len(data) {
			return 0, d.outOfBounds(i)
		}
		return data[i], nil
	default:
		if i>>1 >= len(data) {
			return 0, d.outOfBounds(i)
		}
		// Low nibble is the first pixel
		if i&1 == 0 {
			return data[i>>1] & 0x0f, nil
		}
		return data[i>>1] >> 4, nil
	}
}

func (d *decoder) decode() (*image.RGBA, error) {
	if err := d.geometry(); err != nil {
		return nil, err
	}
	if err := d.readPalette(); err != nil {
		return nil, err
	}

	d.arrange()

	if err := d.check(); err != nil {
		return nil, err
	}

	m := image.NewRGBA(image.Rect(0, 0, d.width, d.height))

	if d.palette == nil {
		if err := tile.Untile(m.Pix, d.p.ImageData, d.layout, 4); err != nil {
			return nil, err
		}
		return m, nil
	}

	for i, n := 0, d.layout.Pixels(); i < n; i++ {
		v, err := d.index(i)
		if err != nil {
			return nil, err
		}
		x, y := d.layout.Coord(i)
		o := m.PixOffset(x, y)
		copy(m.Pix[o:o+4], d.palette[int(v)*4:int(v)*4+4])
	}

	return m, nil
}

// DecodePicture converts an already loaded picture.
func DecodePicture(p *gim.Picture, o *Options) (*image.RGBA, error) {
	return newDecoder(p, o).decode()
}

// DecodeBytes loads the picture in b and converts it.
func DecodeBytes(b []byte, o *Options) (*image.RGBA, error) {
	p, err := gim.LoadPicture(b)
	if err != nil {
		return nil, err
	}
	return DecodePicture(p, o)
}

// Decode reads a GIM file from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, nil)
}

// DecodeConfig returns the color model and dimensions of a GIM file without
// converting the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	p, err := gim.LoadPicture(b)
	if err != nil {
		return image.Config{}, err
	}
	d := newDecoder(p, nil)
	if err := d.geometry(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
