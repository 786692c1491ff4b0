// Command mksprite converts images into packed 1-bit sprite bitmaps and
// previews how they render on the dot screen.
package main

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"runtime"

	"dotlcd/bitmap"
	"dotlcd/internal/buildinfo"
	"dotlcd/screen"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := cli.NewApp()

	app.Name = "mksprite"
	app.Usage = "Sprite bitmap tool for the dot screen"
	app.Version = buildinfo.Short()

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	convertFlags := []cli.Flag{
		&cli.IntFlag{Name: "width", Usage: "resize to this many dots wide (0 = source width)"},
		&cli.IntFlag{Name: "height", Usage: "resize to this many dots high (0 = source height)"},
		&cli.Float64Flag{Name: "threshold", Value: 0.5, Usage: "CIE L* lightness below which a pixel is set"},
		&cli.BoolFlag{Name: "invert", Usage: "set light pixels instead of dark ones"},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "pack",
			Usage:     "Convert images to packed bitmaps",
			ArgsUsage: "FILE...",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "format", Value: "go", Usage: "output format: go or bin"},
				&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory"},
				&cli.StringFlag{Name: "package", Value: "sprites", Usage: "package name for go output"},
			}, convertFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				logger := newLogger(c)
				opts := convertOptions(c)

				format := c.String("format")
				if format != "go" && format != "bin" {
					return cli.Exit(fmt.Sprintf("unknown format %q", format), 1)
				}

				var g errgroup.Group
				g.SetLimit(runtime.NumCPU())
				for _, path := range c.Args().Slice() {
					path := path
					g.Go(func() error {
						out, err := pack(path, c.String("out"), format, c.String("package"), opts)
						if err != nil {
							return fmt.Errorf("%s: %w", path, err)
						}
						logger.Printf("%s -> %s", path, out)
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "preview",
			Usage:     "Render a packed bitmap as a compiled sprite to PNG",
			ArgsUsage: "FILE.bin OUT.png",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "width", Required: true, Usage: "bitmap width in dots"},
				&cli.IntFlag{Name: "height", Required: true, Usage: "bitmap height in dots"},
				&cli.StringFlag{Name: "seed", Usage: "flood-fill seed \"x,y\" for interior transparency"},
				&cli.BoolFlag{Name: "transparent", Usage: "treat background pixels of the whole image as transparent"},
				&cli.IntFlag{Name: "palette", Value: 1, Usage: "palette preset (0-4)"},
				&cli.IntFlag{Name: "dot-size", Value: 2, Usage: "dot size in pixels"},
				&cli.IntFlag{Name: "dot-spacing", Value: 1, Usage: "gap between dots in pixels"},
				&cli.IntFlag{Name: "scale", Value: 4, Usage: "nearest-neighbour upscale factor"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				logger := newLogger(c)
				in, out := c.Args().Get(0), c.Args().Get(1)
				w, h := c.Int("width"), c.Int("height")

				content, err := loadPacked(in, w, h)
				if err != nil {
					return cli.Exit(err, 1)
				}
				seed, err := parseSeed(c.String("seed"), c.Bool("transparent"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				img, sp, err := renderPreview(content, w, h, previewConfig{
					Palette:    c.Int("palette"),
					DotSize:    c.Int("dot-size"),
					DotSpacing: c.Int("dot-spacing"),
					Seed:       seed,
					Scale:      c.Int("scale"),
				})
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := writePNG(out, img); err != nil {
					return cli.Exit(err, 1)
				}
				logger.Printf("%s: %dx%d dots, %s -> %s", in, w, h, sp.Mode, out)
				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Show bitmap and window sizes for images",
			ArgsUsage: "FILE...",
			Flags: append([]cli.Flag{
				&cli.IntFlag{Name: "dot-size", Value: 2, Usage: "dot size in pixels"},
				&cli.IntFlag{Name: "dot-spacing", Value: 1, Usage: "gap between dots in pixels"},
			}, convertFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				opts := convertOptions(c)
				pitch := c.Int("dot-size") + c.Int("dot-spacing")
				for _, path := range c.Args().Slice() {
					_, w, h, err := loadBitmap(path, opts)
					if err != nil {
						return cli.Exit(fmt.Errorf("%s: %w", path, err), 1)
					}
					fmt.Fprintln(c.App.Writer, describe(path, w, h, pitch))
				}
				return nil
			},
		},
		{
			Name:  "palettes",
			Usage: "List palette presets",
			Action: func(c *cli.Context) error {
				for _, line := range paletteTable(screen.Presets) {
					fmt.Fprintln(c.App.Writer, line)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func convertOptions(c *cli.Context) bitmap.Options {
	return bitmap.Options{
		Width:     c.Int("width"),
		Height:    c.Int("height"),
		Threshold: c.Float64("threshold"),
		Invert:    c.Bool("invert"),
	}
}

func describe(path string, w, h, pitch int) string {
	packed := uint64(bitmap.Len(w, h))
	magnified := uint64(w*pitch) * uint64(h*pitch) * 2
	return fmt.Sprintf("%s: %dx%d dots, %s packed, %s magnified (%dx%d px)",
		path, w, h, humanize.Bytes(packed), humanize.Bytes(magnified), w*pitch, h*pitch)
}
