package txi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/bodgit/txi/pixel"
)

var errBadHeader = errors.New("txi: invalid header")

// On-disk layout
type rawHeader struct {
	Magic        uint32
	Version      uint32
	DataLength   uint32
	DataOffset   uint32
	Format       uint32
	Uncompressed uint32
	Width        uint32
	Height       uint32
	DataLength2  uint32
	Sentinel     uint32
}

// Header describes a TXI texture. It implements the encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler interfaces.
type Header struct {
	Format     pixel.Format
	RLE        bool
	Width      uint32
	Height     uint32
	DataLength uint32
}

// MarshalBinary encodes the header into its 40 byte form. The use of
// run-length encoding is recorded twice, once as a flag in the format code
// and once as an inverted word of its own.
func (h Header) MarshalBinary() ([]byte, error) {
	raw := rawHeader{
		Magic:        magic,
		Version:      version,
		DataLength:   h.DataLength,
		Format:       uint32(h.Format),
		Uncompressed: 1,
		Width:        h.Width,
		Height:       h.Height,
		DataLength2:  h.DataLength,
		Sentinel:     sentinel,
	}
	if h.RLE {
		raw.Format |= flagRLE
		raw.Uncompressed = 0
	}

	b := new(bytes.Buffer)
	b.Grow(headerLength)
	if err := binary.Write(b, binary.LittleEndian, &raw); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from b, which must be exactly 40 bytes.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) != headerLength {
		return errBadHeader
	}

	var raw rawHeader
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &raw); err != nil {
		return err
	}

	if raw.Magic != magic || raw.Version != version || raw.Sentinel != sentinel {
		return errBadHeader
	}
	if raw.DataOffset != 0 || raw.DataLength != raw.DataLength2 {
		return errBadHeader
	}

	rle := raw.Format&flagRLE != 0
	if rle == (raw.Uncompressed != 0) || raw.Uncompressed > 1 {
		return errBadHeader
	}

	format := pixel.Format(raw.Format &^ flagRLE)
	if !format.Valid() {
		return errBadHeader
	}

	*h = Header{
		Format:     format,
		RLE:        rle,
		Width:      raw.Width,
		Height:     raw.Height,
		DataLength: raw.DataLength,
	}

	return nil
}

// ReadHeader reads and decodes a header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var b [headerLength]byte
	if err := readFull(r, b[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Header{}, errNotEnough
		}
		return Header{}, err
	}

	var h Header
	if err := h.UnmarshalBinary(b[:]); err != nil {
		return Header{}, err
	}
	return h, nil
}
