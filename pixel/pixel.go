/*
Package pixel implements the texture formats understood by the TXI container.

Each format maps a 4 byte non-premultiplied R, G, B, A source pixel onto a
fixed width packed pixel of between one and four bytes, reordering channels
and reducing bit depth as required. The set of formats is closed.
*/
package pixel

import "fmt"

// Format is a texture format code as stored in the TXI header.
type Format uint32

// Supported texture formats.
const (
	A8       Format = 0x00080008
	BGR565   Format = 0x01100565
	BGRA8888 Format = 0x01208888
	ABGR6666 Format = 0x02186666
	ABGR8888 Format = 0x02208888
)

// SourceSize is the width of an unpacked pixel in bytes.
const SourceSize = 4

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return f.Size() > 0
}

// Size returns the width of a packed pixel in bytes, or 0 if f is not a
// supported format.
func (f Format) Size() int {
	switch f {
	case A8:
		return 1
	case BGR565:
		return 2
	case ABGR6666:
		return 3
	case BGRA8888, ABGR8888:
		return 4
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case A8:
		return "A8"
	case BGR565:
		return "BGR565"
	case BGRA8888:
		return "BGRA8888"
	case ABGR6666:
		return "ABGR6666"
	case ABGR8888:
		return "ABGR8888"
	}
	return fmt.Sprintf("Format(0x%08x)", uint32(f))
}
