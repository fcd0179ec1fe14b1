package txi_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/txi"
	"github.com/bodgit/txi/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("Should round trip RGBA8888", func(t *testing.T) {
		t.Parallel()
		m := sprite(21, 17)
		for _, mode := range []txi.RLEMode{txi.RLEOff, txi.RLEOn, txi.RLEAuto} {
			b := marshal(t, m, txi.RGBA8888, mode)

			decoded, err := txi.Decode(bytes.NewReader(b))
			require.NoError(t, err)
			assert.Equal(t, m.Rect, decoded.Bounds())
			assert.Equal(t, m.Pix, decoded.(*image.NRGBA).Pix, mode.String())
		}
	})

	t.Run("Should round trip grey A8", func(t *testing.T) {
		t.Parallel()
		m := raster(9, 4, func(x, y int) color.NRGBA {
			v := byte(x * y * 7)
			return color.NRGBA{v, v, v, 255}
		})
		for _, mode := range []txi.RLEMode{txi.RLEOff, txi.RLEOn} {
			decoded, err := txi.Decode(bytes.NewReader(marshal(t, m, txi.A8, mode)))
			require.NoError(t, err)
			assert.Equal(t, m.Pix, decoded.(*image.NRGBA).Pix)
		}
	})

	t.Run("Should unpack reduced formats", func(t *testing.T) {
		t.Parallel()
		m := noise(6, 5, 7)
		for _, f := range []txi.OutputFormat{txi.RGB565, txi.RGBA6666} {
			format, err := txi.TextureFormat(f, false)
			require.NoError(t, err)

			for _, mode := range []txi.RLEMode{txi.RLEOff, txi.RLEOn} {
				decoded, err := txi.Decode(bytes.NewReader(marshal(t, m, f, mode)))
				require.NoError(t, err)

				// Decoding should give the same result as a
				// pack and unpack of each pixel
				packed := make([]byte, format.Size())
				want := make([]byte, pixel.SourceSize)
				for i := 0; i < len(m.Pix); i += pixel.SourceSize {
					format.Pack(packed, m.Pix[i:])
					format.Unpack(want, packed)
					assert.Equal(t, want, decoded.(*image.NRGBA).Pix[i:i+pixel.SourceSize])
				}
			}
		}
	})

	t.Run("Should register with the image package", func(t *testing.T) {
		t.Parallel()
		b := marshal(t, sprite(8, 8), txi.RGBA6666, txi.RLEAuto)

		_, name, err := image.Decode(bytes.NewReader(b))
		require.NoError(t, err)
		assert.Equal(t, "txi", name)

		config, name, err := image.DecodeConfig(bytes.NewReader(b))
		require.NoError(t, err)
		assert.Equal(t, "txi", name)
		assert.Equal(t, 8, config.Width)
		assert.Equal(t, 8, config.Height)
		assert.Equal(t, color.NRGBAModel, config.ColorModel)
	})
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	good := marshal(t, sprite(8, 8), txi.RGB565, txi.RLEOff)
	rle := marshal(t, sprite(8, 8), txi.RGB565, txi.RLEOn)

	tables := map[string][]byte{
		"empty":              nil,
		"truncated header":   good[:20],
		"truncated payload":  good[:len(good)-1],
		"truncated sections": rle[:len(rle)-1],
	}

	for name, b := range tables {
		name, b := name, b
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := txi.Decode(bytes.NewReader(b))
			assert.Error(t, err)
		})
	}

	t.Run("oversized dimensions", func(t *testing.T) {
		t.Parallel()
		for _, h := range []txi.Header{
			{Format: pixel.A8, RLE: true, Width: 0xffffffff, Height: 0xffffffff, DataLength: 2},
			{Format: pixel.A8, RLE: true, Width: 0x10000, Height: 0x10000, DataLength: 2},
			{Format: pixel.BGRA8888, Width: 0xffffffff, Height: 0xffffffff, DataLength: 2},
			{Format: pixel.BGRA8888, Width: 0x7fffffff, Height: 1, DataLength: 2},
		} {
			b, err := h.MarshalBinary()
			require.NoError(t, err)
			b = append(b, 0x81, 0x00)
			assert.NotPanics(t, func() {
				_, err = txi.Decode(bytes.NewReader(b))
			})
			assert.Error(t, err)
		}
	})

	t.Run("bad length", func(t *testing.T) {
		t.Parallel()
		b := append([]byte{}, good[:len(good)-4]...)
		binary.LittleEndian.PutUint32(b[8:], uint32(len(b)-40))
		binary.LittleEndian.PutUint32(b[32:], uint32(len(b)-40))
		_, err := txi.Decode(bytes.NewReader(b))
		assert.Error(t, err)
	})
}

func TestHeader(t *testing.T) {
	t.Parallel()

	h := txi.Header{
		Format:     pixel.ABGR6666,
		RLE:        true,
		Width:      320,
		Height:     200,
		DataLength: 1234,
	}

	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 40)
	assert.Equal(t, uint32(0x12186666), word(b, 4))
	assert.Equal(t, uint32(0), word(b, 5))

	var h2 txi.Header
	require.NoError(t, h2.UnmarshalBinary(b))
	assert.Equal(t, h, h2)

	h3, err := txi.ReadHeader(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, h, h3)

	corrupt := func(i int, v uint32) []byte {
		c := append([]byte{}, b...)
		binary.LittleEndian.PutUint32(c[i*4:], v)
		return c
	}

	for name, c := range map[string][]byte{
		"magic":           corrupt(0, 0x12345678),
		"version":         corrupt(1, 0x10000028),
		"length mismatch": corrupt(2, 99),
		"offset":          corrupt(3, 4),
		"format":          corrupt(4, 0x10000001),
		"flags disagree":  corrupt(5, 1),
		"sentinel":        corrupt(9, 0),
		"short":           b[:39],
	} {
		var bad txi.Header
		assert.Error(t, bad.UnmarshalBinary(c), name)
	}
}
