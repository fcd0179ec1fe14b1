/*
Package convert turns image files into TXI textures.

Files can be converted one at a time, a directory tree at a time or as listed
in a YAML manifest. Encoded textures are remembered in a Cache keyed by the
SHA-1 of the source file and the options used so unchanged images are not
encoded again.
*/
package convert

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bodgit/txi"
	"github.com/ericpauley/go-quantize/quantize"
)

// MaxColors is the largest palette an image can be reduced to.
const MaxColors = 256

// ErrTooManyColors is returned when Options.Colors exceeds MaxColors.
var ErrTooManyColors = errors.New("convert: too many colors")

// Options controls how an image is converted.
type Options struct {
	Format txi.OutputFormat
	RLE    txi.RLEMode
	// If greater than zero, reduce the image to at most this many colors
	// before encoding, up to MaxColors
	Colors int
}

func (o Options) key() string {
	return fmt.Sprintf("%s/%s/%d", o.Format, o.RLE, o.Colors)
}

// Converter converts image files to TXI textures.
type Converter struct {
	cache   *Cache
	logger  *log.Logger
	workers int
}

// New returns a Converter. cache may be nil in which case nothing is cached.
// If logger is nil, nothing is logged.
func New(cache *Cache, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		cache:   cache,
		logger:  logger,
		workers: runtime.NumCPU(),
	}
}

// SetWorkers sets how many files are converted concurrently by Dir and
// Manifest.
func (c *Converter) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	c.workers = n
}

func reduceColors(m image.Image, colors int) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Bytes returns the TXI encoding of the image file.
func (c *Converter) Bytes(file string, o Options) ([]byte, error) {
	if o.Colors > MaxColors {
		return nil, fmt.Errorf("%w: %d, at most %d", ErrTooManyColors, o.Colors, MaxColors)
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(src))

	if c.cache != nil {
		b, err := c.cache.Get(sha, o.key())
		if err != nil {
			return nil, err
		}
		if b != nil {
			c.logger.Printf("Cache hit for \"%s\", with SHA-1 \"%s\"\n", file, sha)
			return b, nil
		}
	}

	m, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	if o.Colors > 0 {
		m = reduceColors(m, o.Colors)
	}

	b := new(bytes.Buffer)
	if err := txi.Encode(b, m, &txi.Options{Format: o.Format, RLE: o.RLE}); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(sha, o.key(), b.Bytes()); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// File converts the image file src and writes the texture to dst.
func (c *Converter) File(src, dst string, o Options) error {
	b, err := c.Bytes(src, o)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return err
	}

	c.logger.Printf("Wrote \"%s\", %d bytes\n", dst, len(b))

	return nil
}
