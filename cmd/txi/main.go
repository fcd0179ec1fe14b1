package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/txi"
	"github.com/bodgit/txi/convert"
	"github.com/urfave/cli/v2"
)

const defaultCache = "txi.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var encodingFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		EnvVars: []string{"TXI_FORMAT"},
		Value:   txi.RGBA8888.String(),
		Usage:   "output format, one of RGBA8888, RGBA6666, RGB565 or A8",
	},
	&cli.StringFlag{
		Name:    "rle",
		EnvVars: []string{"TXI_RLE"},
		Value:   txi.RLEAuto.String(),
		Usage:   "run-length encoding, true, false or auto",
	},
	&cli.IntFlag{
		Name:  "colors",
		Usage: "reduce to at most this many colors (up to 256) before encoding, 0 to disable",
	},
}

func options(c *cli.Context) (convert.Options, error) {
	format, err := txi.ParseOutputFormat(c.String("format"))
	if err != nil {
		return convert.Options{}, err
	}

	rle, err := txi.ParseRLEMode(c.String("rle"))
	if err != nil {
		return convert.Options{}, err
	}

	if c.Int("colors") > convert.MaxColors {
		return convert.Options{}, convert.ErrTooManyColors
	}

	return convert.Options{
		Format: format,
		RLE:    rle,
		Colors: c.Int("colors"),
	}, nil
}

func newConverter(c *cli.Context) (*convert.Converter, func() error, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.Bool("no-cache") {
		return convert.New(nil, logger), func() error { return nil }, nil
	}

	cache, err := convert.OpenCache(c.String("cache"))
	if err != nil {
		return nil, nil, err
	}

	return convert.New(cache, logger), cache.Close, nil
}

func info(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := txi.ReadHeader(f)
	if err != nil {
		return err
	}

	fmt.Printf("Format:      %s\n", h.Format)
	fmt.Printf("RLE:         %t\n", h.RLE)
	fmt.Printf("Dimensions:  %dx%d\n", h.Width, h.Height)
	fmt.Printf("Data length: %d\n", h.DataLength)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "txi"
	app.Usage = "TXI texture encoder"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"TXI_CACHE"},
			Value:   filepath.Join(cwd, defaultCache),
			Usage:   "path to cache database",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "don't cache encoded textures",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode an image as a TXI texture",
			Description: "Writes to DESTINATION, or SOURCE with a .txi extension if not given.",
			ArgsUsage:   "SOURCE [DESTINATION]",
			Flags:       encodingFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				src := c.Args().First()
				dst := c.Args().Get(1)
				if dst == "" {
					dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".txi"
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if err := conv.File(src, dst, o); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Encode every image in a directory tree",
			Description: "Each texture is written next to its image with a .txi extension.",
			ArgsUsage:   "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of images to encode concurrently",
				},
			}, encodingFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				conv.SetWorkers(c.Int("workers"))

				if err := conv.Dir(c.Args().First(), o); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "build",
			Usage:       "Encode the textures listed in a manifest",
			Description: "",
			ArgsUsage:   "MANIFEST",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if err := conv.Manifest(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Show the header of a TXI texture",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := info(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
