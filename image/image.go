/*
Package image implements a GIM image decoder.

Pictures are converted to an *image.RGBA whose dimensions are the declared
width and height rounded up to the pitch and height alignment of the file.
Three pixel formats are understood: 32-bit RGBA8888 and the 8 and 4-bit
palette indexed formats with either an RGBA8888 or RGBA5551 palette.

Pixels are either stored in row-major order or in the native PSP order where
the image is split into tiles 16 bytes wide and 8 rows high; 4 by 8 pixels
for RGBA8888, 16 by 8 for INDEX8 and 32 by 8 for INDEX4. The tiled INDEX4
layout has not been verified against real files, set Options.Linear or the
tile size if the output looks scrambled.

Importing this package registers the format with the standard library so
image.Decode recognises GIM files.
*/
package image

import (
	"image"
	"log"

	"github.com/bodgit/gimtool/gim"
)

const (
	paletteColors = 256
	paletteBytes  = paletteColors * 4
	tileBytes     = 16
	tileRows      = 8
)

func init() {
	image.RegisterFormat("gim", gim.Magic, Decode, DecodeConfig)
}

// Options control how the pixel data is interpreted.
type Options struct {
	// TileWidth and TileHeight override the default tile size in pixels
	// when non-zero
	TileWidth  int
	TileHeight int
	// Linear treats tiled images as row-major
	Linear bool
	// Logger receives diagnostic messages, nil discards them
	Logger *log.Logger
	// Warnings receives messages about data that had to be worked
	// around, nil discards them
	Warnings *log.Logger
}
