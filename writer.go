package txi

import (
	"image"
	"image/draw"
	"io"

	"github.com/bodgit/txi/cursor"
	"github.com/bodgit/txi/pixel"
	"github.com/bodgit/txi/rle"
)

type encoder struct {
	m      *image.NRGBA
	width  int
	height int

	format pixel.Format
	cur    *cursor.Cursor
	rle    *rle.Encoder

	// Most recently packed pixel
	packed []byte
}

func (e *encoder) emit(p []byte) error {
	if e.rle != nil {
		return e.rle.Encode(p)
	}
	_, err := e.cur.Write(p)
	return err
}

func (e *encoder) row(y int) error {
	i := e.m.PixOffset(e.m.Rect.Min.X, e.m.Rect.Min.Y+y)
	for x := 0; x < e.width; x++ {
		e.format.Pack(e.packed, e.m.Pix[i:i+pixel.SourceSize])
		if err := e.emit(e.packed); err != nil {
			return err
		}
		i += pixel.SourceSize
	}

	if e.rle != nil {
		return nil
	}

	// The final pixel of every row is written twice
	if err := e.emit(e.packed); err != nil {
		return err
	}

	// Align the next row to a 32-bit boundary
	return e.cur.Seek(align(e.cur.Tell()))
}

func (e *encoder) encode() ([]byte, error) {
	for y := 0; y < e.height; y++ {
		if err := e.row(y); err != nil {
			return nil, err
		}
	}

	if e.rle != nil {
		if err := e.rle.Flush(); err != nil {
			return nil, err
		}
	} else {
		// The final row is written twice
		if err := e.row(e.height - 1); err != nil {
			return nil, err
		}
	}

	end := e.cur.Tell()

	h := Header{
		Format:     e.format,
		RLE:        e.rle != nil,
		Width:      uint32(e.width),
		Height:     uint32(e.height),
		DataLength: uint32(end - headerLength),
	}
	b, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if err := e.cur.Seek(0); err != nil {
		return nil, err
	}
	if _, err := e.cur.Write(b); err != nil {
		return nil, err
	}

	return e.cur.Slice(0, end), nil
}

func encode(m *image.NRGBA, f OutputFormat, useRLE bool) ([]byte, error) {
	format, err := TextureFormat(f, useRLE)
	if err != nil {
		return nil, err
	}

	e := encoder{
		m:      m,
		width:  m.Rect.Dx(),
		height: m.Rect.Dy(),
		format: format,
		packed: make([]byte, format.Size()),
	}

	// The header is written last, into the space reserved up front
	e.cur = cursor.New(headerLength + MaxSize(e.width, e.height, format, useRLE))
	if err := e.cur.Seek(headerLength); err != nil {
		return nil, err
	}

	if useRLE {
		e.rle = rle.NewEncoder(e.cur, format.Size())
	}

	return e.encode()
}

func check(m *image.NRGBA) error {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	if w <= 0 || h <= 0 {
		return ErrEmptyImage
	}
	if m.Stride < w*pixel.SourceSize {
		return ErrShortPixels
	}
	if end := m.PixOffset(m.Rect.Max.X-1, m.Rect.Max.Y-1) + pixel.SourceSize; end > len(m.Pix) {
		return ErrShortPixels
	}
	return nil
}

// NewRaster wraps width*height*4 bytes of row-major, non-premultiplied RGBA
// data as an image without copying it.
func NewRaster(width, height int, pix []byte) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	if len(pix) != width*height*pixel.SourceSize {
		return nil, ErrShortPixels
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * pixel.SourceSize,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Marshal returns the TXI encoding of m. A nil o is the same as the zero
// Options. With RLEAuto, the run-length encoded texture is returned only if
// it is smaller than the plain one.
func Marshal(m *image.NRGBA, o *Options) ([]byte, error) {
	var opts Options
	if o != nil {
		opts = *o
	}

	if err := check(m); err != nil {
		return nil, err
	}

	switch opts.RLE {
	case RLEOff:
		return encode(m, opts.Format, false)
	case RLEOn:
		return encode(m, opts.Format, true)
	case RLEAuto:
		b, err := encode(m, opts.Format, true)
		if err != nil {
			return nil, err
		}

		// The plain size only depends on the dimensions so there's no
		// need to encode it to compare
		format, err := TextureFormat(opts.Format, false)
		if err != nil {
			return nil, err
		}
		if len(b)-headerLength < rawSize(m.Rect.Dx(), m.Rect.Dy(), format) {
			return b, nil
		}

		return encode(m, opts.Format, false)
	}

	return nil, errBadRLEMode
}

// Encode writes the Image m to w in TXI format. Images that are not already
// *image.NRGBA are converted first.
func Encode(w io.Writer, m image.Image, o *Options) error {
	nrgba, ok := m.(*image.NRGBA)
	if !ok {
		b := m.Bounds()
		nrgba = image.NewNRGBA(b)
		draw.Draw(nrgba, b, m, b.Min, draw.Src)
	}

	b, err := Marshal(nrgba, o)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}
