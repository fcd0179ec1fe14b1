/*
Package cursor implements a fixed capacity byte buffer with a movable write
position.

The capacity is decided up front and the buffer never grows; offsets handed
out by Tell remain valid for the life of the cursor. Any attempt to write or
seek beyond the capacity fails with ErrOverflow and leaves the buffer
untouched.
*/
package cursor

import "errors"

// ErrOverflow is returned when a write or seek would go past the capacity.
var ErrOverflow = errors.New("cursor: capacity exceeded")

// Cursor is a preallocated buffer with a write position. It implements
// io.Writer.
type Cursor struct {
	buf []byte
	p   int
}

// New returns a Cursor with size bytes of zeroed capacity.
func New(size int) *Cursor {
	return &Cursor{
		buf: make([]byte, size),
	}
}

// Cap returns the capacity of the cursor.
func (c *Cursor) Cap() int {
	return len(c.buf)
}

// Seek moves the write position to the absolute offset.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return ErrOverflow
	}
	c.p = offset
	return nil
}

// Tell returns the current write position.
func (c *Cursor) Tell() int {
	return c.p
}

// Write copies p to the current position and advances it by len(p).
func (c *Cursor) Write(p []byte) (int, error) {
	if len(p) > len(c.buf)-c.p {
		return 0, ErrOverflow
	}
	c.p += copy(c.buf[c.p:], p)
	return len(p), nil
}

// Slice returns the bytes in [from, to). The returned slice shares memory
// with the cursor.
func (c *Cursor) Slice(from, to int) []byte {
	return c.buf[from:to:to]
}

// Bytes returns everything up to the current position.
func (c *Cursor) Bytes() []byte {
	return c.Slice(0, c.p)
}
