package txi

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/txi/pixel"
	"github.com/bodgit/txi/rle"
)

var (
	errNotEnough = errors.New("txi: not enough image data")
	errBadLength = errors.New("txi: data length does not match image size")
)

func init() {
	image.RegisterFormat("txi", "txi\n", Decode, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	header Header
	image  *image.NRGBA
}

// Unpack rows of packed pixels into the image
func (d *decoder) unpack(packed []byte, stride int) {
	bpp := d.header.Format.Size()
	for y := 0; y < int(d.header.Height); y++ {
		src := packed[y*stride:]
		dst := d.image.Pix[y*d.image.Stride:]
		for x := 0; x < int(d.header.Width); x++ {
			d.header.Format.Unpack(dst[x*pixel.SourceSize:], src[x*bpp:])
		}
	}
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	var err error
	if d.header, err = ReadHeader(r); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	// Let the buffer grow as data arrives rather than trusting the header
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(d.header.DataLength)); err != nil {
		if err == io.EOF {
			return errNotEnough
		}
		return err
	}
	payload := buf.Bytes()

	if d.header.Width == 0 || d.header.Height == 0 {
		return errBadLength
	}
	bpp := d.header.Format.Size()

	// Header words are untrusted so bound the image by the payload before
	// sizing anything from them
	pixels := uint64(d.header.Width) * uint64(d.header.Height)
	if d.header.RLE {
		// Each section of at most 1+bpp bytes covers at most 127 pixels
		if pixels > uint64(len(payload))*rle.MaxSection {
			return errBadLength
		}
	} else if pixels > uint64(len(payload)) {
		return errBadLength
	}
	width, height := int(d.header.Width), int(d.header.Height)

	if !d.header.RLE && len(payload) != rawSize(width, height, d.header.Format) {
		return errBadLength
	}

	var packed []byte
	var stride int
	if d.header.RLE {
		stride = width * bpp
		packed = make([]byte, width*height*bpp)
		if err := rle.Decode(packed, payload, bpp); err != nil {
			return err
		}
	} else {
		stride = align((width + 1) * bpp)
		packed = payload
	}

	d.image = image.NewNRGBA(image.Rect(0, 0, width, height))
	d.unpack(packed, stride)

	return nil
}

// Decode reads a TXI texture from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a TXI texture
// without decoding the entire texture.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(d.header.Width),
		Height:     int(d.header.Height),
	}, nil
}
