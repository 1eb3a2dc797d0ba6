/*
Package gimtool is a library for converting GIM textures found in PSP games
into common image formats.
*/
package gimtool

import (
	"fmt"
	"io/ioutil"
	"log"
	"strings"
)

// Options configure a Converter.
type Options struct {
	// Offset is the number of bytes to skip at the start of each file
	// before the GIM header
	Offset int64
	// TileWidth and TileHeight override the default tile size when
	// non-zero
	TileWidth  int
	TileHeight int
	// Linear treats tiled images as row-major
	Linear bool
	// InPlace writes each output file next to its input, otherwise
	// OutputDir is used
	InPlace   bool
	OutputDir string
	// Format selects the output encoder, one of Formats()
	Format string
	// Colors reduces the output to a palette of at most this many colors
	// when non-zero
	Colors int
	// Workers is the number of files converted concurrently
	Workers int
}

// Converter converts GIM files.
type Converter struct {
	opts    Options
	encoder encoder
	catalog *Catalog
	logger  *log.Logger
	report  *log.Logger
}

// New returns a Converter. Diagnostic messages are written to logger while
// results, warnings and per-file errors are written to report. Either may be
// nil. If catalog is not nil each successful conversion is recorded.
func New(opts Options, catalog *Catalog, logger, report *log.Logger) (*Converter, error) {
	if opts.Format == "" {
		opts.Format = "png"
	}
	e, ok := encoders[strings.ToLower(opts.Format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q, expected one of %s", opts.Format, strings.Join(Formats(), ", "))
	}
	if opts.Colors < 0 || opts.Colors > 256 {
		return nil, fmt.Errorf("colors must be between 1 and 256, not %d", opts.Colors)
	}
	if opts.Offset < 0 {
		return nil, fmt.Errorf("negative offset %d", opts.Offset)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if report == nil {
		report = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		opts:    opts,
		encoder: e,
		catalog: catalog,
		logger:  logger,
		report:  report,
	}, nil
}
