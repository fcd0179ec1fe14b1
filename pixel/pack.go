package pixel

// Reduce an 8-bit channel to max, rounding to nearest
func rescale(v byte, max uint32) uint32 {
	return (uint32(v)*max + 127) / 255
}

// Expand a channel of max back to 8 bits
func expand(v, max uint32) byte {
	return byte((v*255 + max/2) / max)
}

// Pack converts the source pixel src into the packed pixel dst. src must hold
// at least SourceSize bytes and dst at least f.Size() bytes. f must be Valid,
// Pack panics otherwise.
func (f Format) Pack(dst, src []byte) {
	r, g, b, a := src[0], src[1], src[2], src[3]

	switch f {
	case A8:
		dst[0] = r
	case BGRA8888:
		dst[0], dst[1], dst[2], dst[3] = b, g, r, a
	case ABGR8888:
		dst[0], dst[1], dst[2], dst[3] = a, b, g, r
	case BGR565:
		r5, g6, b5 := rescale(r, 31), rescale(g, 63), rescale(b, 31)

		dst[0] = byte((g6<<5 | b5) & 0xff)    // gggbbbbb
		dst[1] = byte((g6>>3 | r5<<3) & 0xff) // rrrrrggg
	case ABGR6666:
		// Fully transparent pixels are always zero
		if a == 0 {
			dst[0], dst[1], dst[2] = 0, 0, 0
			return
		}

		r6, g6, b6, a6 := rescale(r, 63), rescale(g, 63), rescale(b, 63), rescale(a, 63)

		dst[0] = byte((b6<<6 | a6) & 0xff)    // bbaaaaaa
		dst[1] = byte((g6<<4 | b6>>2) & 0xff) // ggggbbbb
		dst[2] = byte((r6<<2 | g6>>4) & 0xff) // rrrrrrgg
	default:
		panic("pixel: unsupported format " + f.String())
	}
}

// Unpack converts the packed pixel src back into a SourceSize byte pixel in
// dst. Reduced channels are expanded to the nearest 8-bit value. A8 unpacks
// to opaque grey. f must be Valid, Unpack panics otherwise.
func (f Format) Unpack(dst, src []byte) {
	switch f {
	case A8:
		dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xff
	case BGRA8888:
		dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], src[3]
	case ABGR8888:
		dst[0], dst[1], dst[2], dst[3] = src[3], src[2], src[1], src[0]
	case BGR565:
		v := uint32(src[1])<<8 | uint32(src[0])

		dst[0] = expand(v>>11, 31)
		dst[1] = expand(v>>5&0x3f, 63)
		dst[2] = expand(v&0x1f, 31)
		dst[3] = 0xff
	case ABGR6666:
		v := uint32(src[2])<<16 | uint32(src[1])<<8 | uint32(src[0])

		dst[0] = expand(v>>18, 63)
		dst[1] = expand(v>>12&0x3f, 63)
		dst[2] = expand(v>>6&0x3f, 63)
		dst[3] = expand(v&0x3f, 63)
	default:
		panic("pixel: unsupported format " + f.String())
	}
}
