package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/gimtool"
	"github.com/bodgit/gimtool/archive"
	"github.com/bodgit/gimtool/cdimage"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gimtool.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func main() {
	app := cli.NewApp()

	app.Name = "gimtool"
	app.Usage = "PSP GIM texture conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GIMTOOL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert GIM textures to images",
			Description: "Each FILE is converted to an image named after it, with the offset appended when non-zero.",
			ArgsUsage:   "FILE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "in-place",
					Aliases: []string{"i"},
					Usage:   "write each image next to its input file",
				},
				&cli.BoolFlag{
					Name:    "linear",
					Aliases: []string{"l"},
					Usage:   "ignore tiling and read pixels in row order",
				},
				&cli.Int64Flag{
					Name:    "offset",
					Aliases: []string{"o"},
					Usage:   "skip `N` bytes at the start of each file",
				},
				&cli.IntFlag{
					Name:    "tile-width",
					Aliases: []string{"x"},
					Usage:   "override tile width with `N` pixels",
				},
				&cli.IntFlag{
					Name:    "tile-height",
					Aliases: []string{"y"},
					Usage:   "override tile height with `N` rows",
				},
				&cli.PathFlag{
					Name:  "output",
					Value: ".",
					Usage: "write images to `DIR`",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: fmt.Sprintf("output `FORMAT`, one of %s", strings.Join(gimtool.Formats(), ", ")),
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce each image to at most `N` colors",
				},
				&cli.IntFlag{
					Name:  "jobs",
					Value: 1,
					Usage: "convert `N` files concurrently",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				catalog, err := gimtool.NewCatalog(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer catalog.Close()

				g, err := gimtool.New(gimtool.Options{
					Offset:     c.Int64("offset"),
					TileWidth:  c.Int("tile-width"),
					TileHeight: c.Int("tile-height"),
					Linear:     c.Bool("linear"),
					InPlace:    c.Bool("in-place"),
					OutputDir:  c.Path("output"),
					Format:     c.String("format"),
					Colors:     c.Int("colors"),
					Workers:    c.Int("jobs"),
				}, catalog, newLogger(c), log.New(os.Stdout, "", 0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := g.Convert(c.Args().Slice()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "unpack",
			Usage:       "Unpack GIM archives",
			Description: "Each FILE is unpacked into a directory named after it.",
			ArgsUsage:   "FILE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "skip-check",
					Aliases: []string{"s"},
					Usage:   "do not require the trailing check entry",
				},
				&cli.PathFlag{
					Name:  "output",
					Value: ".",
					Usage: "unpack to `DIR`",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				var failed int
				for _, file := range c.Args().Slice() {
					files, err := archive.Extract(file, c.Path("output"), c.Bool("skip-check"), logger)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Error processing file %s: %v\n", file, err)
						failed++
						continue
					}
					for _, f := range files {
						fmt.Printf("Extracted file: %s\n", f)
					}
				}

				if failed > 0 {
					return cli.Exit(fmt.Sprintf("%d of %d files failed to unpack", failed, c.NArg()), 1)
				}

				return nil
			},
		},
		{
			Name:        "split",
			Usage:       "Split a PSXCD.IMG disc image",
			Description: "DIRECTORY must contain PSXCD.IMG along with PSXCDNAM.BIN and PSXCDLOC.BIN.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:  "output",
					Value: ".",
					Usage: "write files to `DIR`",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				files, err := cdimage.Split(c.Args().First(), c.Path("output"), newLogger(c))
				for _, f := range files {
					fmt.Printf("Extracted file: %s\n", f)
				}
				if err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "history",
			Usage: "List previous conversions",
			Action: func(c *cli.Context) error {
				catalog, err := gimtool.NewCatalog(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer catalog.Close()

				entries, err := catalog.History()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, e := range entries {
					fmt.Printf("%s %s@%d -> %s (%s, %s, %dx%d)\n", e.Digest, e.Source, e.Offset, e.Output, e.Format, e.Order, e.Width, e.Height)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
