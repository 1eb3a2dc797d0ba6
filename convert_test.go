package gimtool

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gimtool/gim"
	"github.com/bodgit/gimtool/internal/gimtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testGIM() ([]byte, []byte) {
	pix := make([]byte, 4*2*4)
	for i := range pix {
		pix[i] = byte(i * 5)
	}
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xff
	}
	return gimtest.Build(gimtest.Record{
		Format: uint16(gim.RGBA8888),
		Width:  4,
		Height: 2,
		Data:   pix,
	}, nil), pix
}

func writeTemp(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(file, b, 0644))
	return file
}

func TestNewOptions(t *testing.T) {
	_, err := New(Options{Format: "jpeg"}, nil, nil, nil)
	assert.Error(t, err)
	_, err = New(Options{Colors: 257}, nil, nil, nil)
	assert.Error(t, err)
	_, err = New(Options{Offset: -1}, nil, nil, nil)
	assert.Error(t, err)

	c, err := New(Options{Format: "TIFF"}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "tiff", c.encoder.ext)
	assert.Equal(t, 1, c.opts.Workers)

	assert.Equal(t, []string{"bmp", "png", "tiff"}, Formats())
}

func TestOutputPath(t *testing.T) {
	tables := []struct {
		opts Options
		file string
		want string
	}{
		{Options{}, "/in/texture.gim", "texture.png"},
		{Options{OutputDir: "/out"}, "/in/texture.gim", "/out/texture.png"},
		{Options{InPlace: true, OutputDir: "/out"}, "/in/texture.gim", "/in/texture.png"},
		{Options{Offset: 128, Format: "bmp"}, "/in/archive.bin", "archive_128.bmp"},
	}

	for _, table := range tables {
		c, err := New(table.opts, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash(table.want), c.OutputPath(table.file))
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	b, pix := testGIM()
	file := writeTemp(t, dir, "texture.gim", b)

	report := new(bytes.Buffer)
	c, err := New(Options{InPlace: true}, nil, nil, log.New(report, "", 0))
	require.NoError(t, err)

	output, err := c.ConvertFile(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "texture.png"), output)
	assert.Contains(t, report.String(), "Extracted texture file: "+output)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), m.Bounds())
	// Fully opaque so the encoder drops the alpha channel
	require.IsType(t, &image.RGBA{}, m)
	assert.Equal(t, pix, m.(*image.RGBA).Pix)
}

func TestConvertFileOffset(t *testing.T) {
	dir := t.TempDir()
	b, _ := testGIM()
	file := writeTemp(t, dir, "archive.bin", append(bytes.Repeat([]byte{0xee}, 100), b...))

	c, err := New(Options{Offset: 100, OutputDir: dir, Format: "bmp"}, nil, nil, nil)
	require.NoError(t, err)

	output, err := c.ConvertFile(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "archive_100.bmp"), output)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := bmp.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 2, cfg.Height)

	c, err = New(Options{Offset: int64(len(b) + 101), OutputDir: dir}, nil, nil, nil)
	require.NoError(t, err)
	_, err = c.ConvertFile(file)
	assert.Error(t, err)
}

func TestConvertFileColors(t *testing.T) {
	dir := t.TempDir()
	b, _ := testGIM()
	file := writeTemp(t, dir, "texture.gim", b)

	c, err := New(Options{OutputDir: dir, Format: "tiff", Colors: 4}, nil, nil, nil)
	require.NoError(t, err)

	output, err := c.ConvertFile(file)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	m, err := tiff.Decode(f)
	require.NoError(t, err)
	require.IsType(t, &image.Paletted{}, m)

	colors := make(map[color.Color]struct{})
	for y := m.Bounds().Min.Y; y < m.Bounds().Max.Y; y++ {
		for x := m.Bounds().Min.X; x < m.Bounds().Max.X; x++ {
			colors[m.At(x, y)] = struct{}{}
		}
	}
	assert.LessOrEqual(t, len(colors), 4)
}

func TestConvertFileFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()

	// Short by one byte for the last pixel
	b := gimtest.Build(gimtest.Record{
		Format: uint16(gim.Index8),
		Width:  4,
		Height: 4,
		Data:   make([]byte, 15),
	}, &gimtest.Record{Format: uint16(gim.RGBA8888), Data: make([]byte, 1024)})
	file := writeTemp(t, dir, "broken.gim", b)

	c, err := New(Options{OutputDir: dir}, nil, nil, nil)
	require.NoError(t, err)

	_, err = c.ConvertFile(file)
	assert.ErrorIs(t, err, gim.ErrPixelDataOutOfBounds)
	assert.EqualError(t, err, "gim: source index 15 out of bounds (data length 15)")

	entries, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "broken.gim", entries[0].Name())
}

func TestConvertBatch(t *testing.T) {
	for _, workers := range []int{1, 4} {
		dir := t.TempDir()
		b, _ := testGIM()
		multi := gimtest.Build(gimtest.Record{Format: uint16(gim.RGBA8888), Width: 1, Height: 1, FrameCount: 2, Data: make([]byte, 8)}, nil)

		files := []string{
			writeTemp(t, dir, "one.gim", b),
			writeTemp(t, dir, "multi.gim", multi),
			filepath.Join(dir, "missing.gim"),
			writeTemp(t, dir, "two.gim", b),
		}

		report := new(bytes.Buffer)
		c, err := New(Options{OutputDir: dir, Workers: workers}, nil, nil, log.New(report, "", 0))
		require.NoError(t, err)

		err = c.Convert(files)
		assert.EqualError(t, err, "2 of 4 files failed to convert")

		assert.FileExists(t, filepath.Join(dir, "one.png"))
		assert.FileExists(t, filepath.Join(dir, "two.png"))
		assert.NoFileExists(t, filepath.Join(dir, "multi.png"))
		assert.Contains(t, report.String(), "Error processing file "+files[1]+": failed to load image: gim: multiple frames or levels are not supported")
		assert.Contains(t, report.String(), "Error processing file "+files[2]+": ")
	}
}

func TestConvertRecordsCatalog(t *testing.T) {
	dir := t.TempDir()
	b, _ := testGIM()
	file := writeTemp(t, dir, "texture.gim", b)

	catalog, err := NewCatalog(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer catalog.Close()

	c, err := New(Options{OutputDir: dir}, catalog, nil, nil)
	require.NoError(t, err)
	require.NoError(t, c.Convert([]string{file}))

	e, err := catalog.FindByDigest(Digest(b))
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, Entry{
		Digest: Digest(b),
		Format: "RGBA8888",
		Order:  "Normal",
		Width:  4,
		Height: 2,
		Source: file,
		Output: filepath.Join(dir, "texture.png"),
	}, *e)
}
