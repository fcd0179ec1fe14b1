package rle

// Section describes one run-length section.
type Section struct {
	Compressed bool
	Count      int
	// One pixel if Compressed, otherwise Count pixels
	Pixels []byte
}

// Sections splits src into its sections. The Pixels of each section share
// memory with src.
func Sections(src []byte, bytesPerPixel int) ([]Section, error) {
	var sections []Section
	for len(src) > 0 {
		s := Section{
			Compressed: src[0]&compressed != 0,
			Count:      int(src[0] & countMask),
		}
		if s.Count == 0 {
			return nil, errZeroCount
		}

		n := bytesPerPixel
		if !s.Compressed {
			n *= s.Count
		}
		if len(src) < 1+n {
			return nil, errTruncated
		}

		s.Pixels = src[1 : 1+n]
		sections = append(sections, s)
		src = src[1+n:]
	}
	return sections, nil
}

// Decode expands the sections in src into dst, which must be exactly the
// size of the decoded pixels.
func Decode(dst, src []byte, bytesPerPixel int) error {
	sections, err := Sections(src, bytesPerPixel)
	if err != nil {
		return err
	}

	i := 0
	for _, s := range sections {
		if len(dst)-i < s.Count*bytesPerPixel {
			return errOverrun
		}
		if s.Compressed {
			for j := 0; j < s.Count; j++ {
				i += copy(dst[i:], s.Pixels)
			}
			continue
		}
		i += copy(dst[i:], s.Pixels)
	}

	if i != len(dst) {
		return errShort
	}

	return nil
}
