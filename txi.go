/*
Package txi implements an encoder and decoder for TXI textures.

A TXI file is a 40 byte header of ten little-endian 32-bit words followed by
the pixel data in one of five packed texture formats. The pixel data is
either stored as rows, where each row has its final pixel written twice and
is then padded to a 32-bit boundary and the final row is written twice, or
as a stream of run-length encoded sections with no padding or duplication.

Callers pick an OutputFormat; the texture format stored in the file follows
from it and from whether run-length encoding is used.
*/
package txi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/txi/pixel"
)

const (
	magic        = 0x0a697874 // "txi\n"
	version      = 0x20000028
	sentinel     = 0xdeadbeef
	flagRLE      = 0x10000000
	headerLength = 40
)

var (
	// ErrUnsupportedFormat is returned when an OutputFormat has no texture
	// format to encode it with.
	ErrUnsupportedFormat = errors.New("txi: unsupported output format")

	// ErrEmptyImage is returned when encoding an image with no pixels.
	ErrEmptyImage = errors.New("txi: image has no pixels")

	// ErrShortPixels is returned when the pixel data doesn't cover the
	// image bounds.
	ErrShortPixels = errors.New("txi: pixel data does not match image size")

	errBadRLEMode = errors.New("txi: invalid RLE mode")
)

// OutputFormat is the pixel layout requested by the caller.
type OutputFormat int

// Output formats. RGBA4444 is recognised but cannot be encoded.
const (
	RGBA8888 OutputFormat = iota
	RGB565
	RGBA4444
	RGBA6666
	A8
)

var outputFormatNames = [...]string{
	RGBA8888: "RGBA8888",
	RGB565:   "RGB565",
	RGBA4444: "RGBA4444",
	RGBA6666: "RGBA6666",
	A8:       "A8",
}

func (f OutputFormat) String() string {
	if f >= 0 && int(f) < len(outputFormatNames) {
		return outputFormatNames[f]
	}
	return "OutputFormat(" + strconv.Itoa(int(f)) + ")"
}

// ParseOutputFormat returns the OutputFormat named by s, ignoring case.
func ParseOutputFormat(s string) (OutputFormat, error) {
	for i, name := range outputFormatNames {
		if strings.EqualFold(s, name) {
			return OutputFormat(i), nil
		}
	}
	return 0, fmt.Errorf("txi: unknown output format %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *OutputFormat) UnmarshalText(text []byte) (err error) {
	*f, err = ParseOutputFormat(string(text))
	return
}

// RLEMode controls the use of run-length encoding.
type RLEMode int

// RLEAuto encodes with run-length encoding only when the result is smaller.
const (
	RLEOff RLEMode = iota
	RLEOn
	RLEAuto
)

func (m RLEMode) String() string {
	switch m {
	case RLEOff:
		return "false"
	case RLEOn:
		return "true"
	case RLEAuto:
		return "auto"
	}
	return "RLEMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseRLEMode accepts "auto" or anything strconv.ParseBool accepts.
func ParseRLEMode(s string) (RLEMode, error) {
	if strings.EqualFold(s, "auto") {
		return RLEAuto, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return 0, fmt.Errorf("txi: unknown RLE mode %q", s)
	}
	if b {
		return RLEOn, nil
	}
	return RLEOff, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RLEMode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseRLEMode(string(text))
	return
}

// Options are the encoding parameters. The zero value encodes RGBA8888
// without run-length encoding.
type Options struct {
	Format OutputFormat
	RLE    RLEMode
}

// TextureFormat returns the texture format used to store f. RGBA8888 is
// stored with alpha first when run-length encoded.
func TextureFormat(f OutputFormat, rle bool) (pixel.Format, error) {
	switch f {
	case RGBA8888:
		if rle {
			return pixel.ABGR8888, nil
		}
		return pixel.BGRA8888, nil
	case RGB565:
		return pixel.BGR565, nil
	case RGBA6666:
		return pixel.ABGR6666, nil
	case A8:
		return pixel.A8, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

func align(n int) int {
	return (n + 3) &^ 3
}

// MaxSize returns the largest payload, excluding the header, that encoding a
// width by height image in texture format f can produce.
func MaxSize(width, height int, f pixel.Format, rle bool) int {
	bpp := f.Size()
	if rle {
		// Nothing compresses so every pixel gets its own control byte
		return width * height * (bpp + 1)
	}
	// One extra pixel per row, one extra row and up to three bytes of
	// padding per row
	return (width+1)*(height+1)*bpp + (height+1)*3
}

// Exact payload size without run-length encoding
func rawSize(width, height int, f pixel.Format) int {
	return (height + 1) * align((width+1)*f.Size())
}
