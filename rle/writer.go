package rle

import (
	"bytes"
	"io"
)

type state int

const (
	// Nothing pending, nothing buffered
	stateIdle state = iota
	// last is pending, buf holds zero or more raw pixels
	stateRaw
	// last is the repeated pixel, already copied into buf
	stateCompress
)

// Encoder turns a stream of fixed width pixels into sections, writing each
// section to the underlying writer as soon as it is complete.
type Encoder struct {
	w     io.Writer
	bpp   int
	state state
	last  []byte
	count int

	// Room for a control byte and a full raw section
	buf []byte
}

// NewEncoder returns an Encoder for pixels that are bytesPerPixel wide.
func NewEncoder(w io.Writer, bytesPerPixel int) *Encoder {
	buf := make([]byte, 1, 1+MaxSection*bytesPerPixel)
	return &Encoder{
		w:    w,
		bpp:  bytesPerPixel,
		last: make([]byte, bytesPerPixel),
		buf:  buf,
	}
}

func (e *Encoder) section() error {
	if e.count == 0 {
		return nil
	}

	e.buf[0] = byte(e.count & countMask)
	if e.state == stateCompress {
		e.buf[0] |= compressed
	}

	_, err := e.w.Write(e.buf)

	e.buf = e.buf[:1]
	e.count = 0

	return err
}

// Commit the pending pixel to the raw section
func (e *Encoder) commit() {
	e.buf = append(e.buf, e.last...)
	e.count++
}

// Encode adds the pixel p to the stream. A pixel is only committed to a raw
// section once the following pixel shows it does not start a run.
func (e *Encoder) Encode(p []byte) error {
	if len(p) != e.bpp {
		return errPixelSize
	}

	switch e.state {
	case stateCompress:
		if bytes.Equal(p, e.last) {
			e.count++
			if e.count == MaxSection {
				err := e.section()
				e.state = stateIdle
				return err
			}
			return nil
		}

		err := e.section()
		e.state = stateRaw
		copy(e.last, p)
		return err
	case stateRaw:
		if bytes.Equal(p, e.last) {
			// The raw section so far can't include this run
			if err := e.section(); err != nil {
				return err
			}
			e.state = stateCompress
			e.buf = append(e.buf, e.last...)
			e.count = 2
			return nil
		}

		e.commit()
		copy(e.last, p)
		if e.count == MaxSection {
			return e.section()
		}
		return nil
	default:
		e.state = stateRaw
		copy(e.last, p)
		return nil
	}
}

// Flush writes out any pending pixel and buffered section and resets the
// Encoder so it can be reused.
func (e *Encoder) Flush() error {
	if e.state == stateRaw {
		e.commit()
	}
	err := e.section()
	e.state = stateIdle
	return err
}
