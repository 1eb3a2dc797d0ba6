package gimtool

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gimtool/gim"
	gimimage "github.com/bodgit/gimtool/image"
)

func (c *Converter) readFile(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Opened file: %s\n", file)
	c.logger.Printf("File size: %d bytes\n", info.Size())

	if c.opts.Offset > info.Size() {
		return nil, fmt.Errorf("offset %d is beyond the end of the file (%d bytes)", c.opts.Offset, info.Size())
	}

	if c.opts.Offset > 0 {
		c.logger.Printf("Seeking to offset: %d\n", c.opts.Offset)
		if _, err := f.Seek(c.opts.Offset, io.SeekStart); err != nil {
			return nil, err
		}
	}

	b := make([]byte, info.Size()-c.opts.Offset)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, err
	}

	return b, nil
}

// OutputPath returns the file that the conversion of file is written to.
func (c *Converter) OutputPath(file string) string {
	dir := c.opts.OutputDir
	if c.opts.InPlace {
		dir = filepath.Dir(file)
	}
	if dir == "" {
		dir = "."
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if c.opts.Offset > 0 {
		name = fmt.Sprintf("%s_%d", name, c.opts.Offset)
	}

	return filepath.Join(dir, name+"."+c.encoder.ext)
}

// writeFile writes b to a temporary file alongside file and then renames it
// so file either appears complete or not at all.
func writeFile(file string, b []byte) error {
	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}

	if err := os.Rename(f.Name(), file); err != nil {
		os.Remove(f.Name())
		return err
	}

	return nil
}

// ConvertFile converts a single GIM file and returns the path of the file
// written. Nothing is written if the conversion fails.
func (c *Converter) ConvertFile(file string) (string, error) {
	b, err := c.readFile(file)
	if err != nil {
		return "", err
	}

	p, err := gim.LoadPicture(b)
	if err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	m, err := gimimage.DecodePicture(p, &gimimage.Options{
		TileWidth:  c.opts.TileWidth,
		TileHeight: c.opts.TileHeight,
		Linear:     c.opts.Linear,
		Logger:     c.logger,
		Warnings:   c.report,
	})
	if err != nil {
		return "", err
	}

	var out image.Image = m
	if c.opts.Colors > 0 {
		c.logger.Printf("Reducing to %d colors\n", c.opts.Colors)
		out = reduce(m, c.opts.Colors)
	}

	buf := new(bytes.Buffer)
	if err := c.encoder.encode(buf, out); err != nil {
		return "", err
	}

	output := c.OutputPath(file)
	c.logger.Printf("Writing output file: %s\n", output)
	if err := writeFile(output, buf.Bytes()); err != nil {
		return "", err
	}
	c.report.Printf("Extracted texture file: %s\n", output)

	if c.catalog != nil {
		if err := c.catalog.Record(Entry{
			Digest: Digest(b),
			Format: p.Image.Format.String(),
			Order:  p.Image.Order.String(),
			Width:  m.Bounds().Dx(),
			Height: m.Bounds().Dy(),
			Source: file,
			Offset: c.opts.Offset,
			Output: output,
		}); err != nil {
			return output, err
		}
	}

	return output, nil
}
