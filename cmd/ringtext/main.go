package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bodgit/ringtext"
	"github.com/bodgit/ringtext/display"
	"github.com/bodgit/ringtext/palette"
	"github.com/bodgit/ringtext/rgb565"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadConfig(c *cli.Context) (ringtext.Config, error) {
	cfg := ringtext.DefaultConfig()
	if file := c.String("config"); file != "" {
		var err error
		if cfg, err = ringtext.LoadConfig(file); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("width") {
		cfg.Display.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Display.Height = c.Int("height")
	}
	return cfg, cfg.Validate()
}

func loadBackground(file string) (image.Image, error) {
	path, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func newPipeline(c *cli.Context) (*ringtext.Pipeline, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	p, err := ringtext.New(cfg, newLogger(c))
	if err != nil {
		return nil, err
	}

	if file := c.String("background"); file != "" {
		m, err := loadBackground(file)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.SetBackground(m)
	}

	return p, nil
}

func newBlitter(c *cli.Context, cfg ringtext.Config) (display.Blitter, func() error, error) {
	device := c.String("fb")
	if device == "" {
		return display.NewTerminal(os.Stdout), func() error { return nil }, nil
	}

	f, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, err
	}

	fb, err := display.NewFramebuffer(f, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	fb.LittleEndian = !c.Bool("big-endian")
	if c.IsSet("stride") {
		fb.Stride = c.Int("stride")
	}

	return fb, f.Close, nil
}

func render(c *cli.Context, p *ringtext.Pipeline, lines []string) (*rgb565.Image, error) {
	file := c.String("db")
	if file == "" {
		return p.Render(lines)
	}

	logger := newLogger(c)

	if c.String("background") != "" {
		logger.Printf("Not using cache with a background image\n")
		return p.Render(lines)
	}

	path, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}

	cache, err := ringtext.NewCache(path)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	key, err := ringtext.Key(p.Config(), lines)
	if err != nil {
		return nil, err
	}

	m, err := cache.Get(key)
	if err != nil {
		return nil, err
	}
	if m != nil {
		logger.Printf("Found %s in cache\n", key)
		return m, nil
	}

	if m, err = p.Render(lines); err != nil {
		return nil, err
	}
	logger.Printf("Adding %s to cache\n", key)

	return m, cache.Put(key, m)
}

func write(c *cli.Context, m *rgb565.Image) error {
	var w io.Writer = os.Stdout
	if file := c.String("output"); file != "" && file != "-" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch c.String("format") {
	case "raw":
		return rgb565.Encode(w, m)
	case "png":
		if n := c.Int("colors"); n > 0 {
			pm, err := palette.Quantize(m, n)
			if err != nil {
				return err
			}
			return png.Encode(w, pm)
		}
		return png.Encode(w, m)
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

var displayFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "fb",
		Usage: "frame buffer `DEVICE` to draw on instead of the terminal",
	},
	&cli.BoolFlag{
		Name:  "big-endian",
		Usage: "write pixels high byte first, as serial bus panels expect",
	},
	&cli.IntFlag{
		Name:  "stride",
		Usage: "frame buffer line length in `BYTES`, if the device pads rows",
	},
	&cli.StringFlag{
		Name:  "background",
		Usage: "draw the ring over `IMAGE`",
	},
}

func main() {
	app := cli.NewApp()

	app.Name = "ringtext"
	app.Usage = "Warp text around a ring for small color displays"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"RINGTEXT_CONFIG"},
			Usage:   "path to TOML configuration `FILE`",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "display width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "display height in pixels",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "render",
			Usage:       "Render text to an image",
			Description: "Each line of FILE is drawn around the ring and the raster is written as PNG or raw big-endian RGB565.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write to `FILE` instead of standard output",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: "output format, png or raw",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce a PNG to at most `N` colors",
				},
				&cli.StringFlag{
					Name:    "db",
					EnvVars: []string{"RINGTEXT_DB"},
					Usage:   "cache rendered rasters in `FILE`",
				},
				&cli.StringFlag{
					Name:  "background",
					Usage: "draw the ring over `IMAGE`",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				lines, err := ringtext.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := newPipeline(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				m, err := render(c, p, lines)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := write(c, m); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "show",
			Usage:       "Show text on a display",
			Description: "Each line of FILE is drawn around the ring, centered on the terminal or a frame buffer.",
			ArgsUsage:   "FILE",
			Flags:       displayFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				lines, err := ringtext.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := newPipeline(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				b, closer, err := newBlitter(c, p.Config())
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if err := p.Show(b, lines); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "watch",
			Usage:       "Show text on a display as it changes",
			Description: "Like show, but FILE is drawn again every time it changes until interrupted.",
			ArgsUsage:   "FILE",
			Flags:       displayFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPipeline(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				b, closer, err := newBlitter(c, p.Config())
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := p.Watch(ctx, c.Args().First(), b); err != nil && !errors.Is(err, context.Canceled) {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "geometry",
			Usage: "Print the ring geometry for the display",
			Action: func(c *cli.Context) error {
				p, err := newPipeline(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				fmt.Println(p.Geometry())

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
