/*
Package rle implements the run-length encoding used by TXI textures.

The encoded stream is a sequence of sections. Each section starts with a
control byte; the low seven bits hold a pixel count between 1 and 127. If the
high bit is set the section is compressed and exactly one pixel follows which
is repeated count times, otherwise the section is raw and count pixels follow
verbatim.
*/
package rle

import "errors"

const (
	// MaxSection is the most pixels a single section can describe.
	MaxSection = 127

	compressed = 0x80
	countMask  = 0x7f
)

var (
	errPixelSize = errors.New("rle: pixel is the wrong size")
	errZeroCount = errors.New("rle: section with zero count")
	errTruncated = errors.New("rle: truncated section")
	errOverrun   = errors.New("rle: sections describe too many pixels")
	errShort     = errors.New("rle: sections describe too few pixels")
)
