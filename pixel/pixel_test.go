package pixel_test

import (
	"testing"

	"github.com/bodgit/txi/pixel"
	"github.com/stretchr/testify/assert"
)

var formats = []pixel.Format{
	pixel.A8,
	pixel.BGR565,
	pixel.BGRA8888,
	pixel.ABGR6666,
	pixel.ABGR8888,
}

func TestSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, pixel.A8.Size())
	assert.Equal(t, 2, pixel.BGR565.Size())
	assert.Equal(t, 4, pixel.BGRA8888.Size())
	assert.Equal(t, 3, pixel.ABGR6666.Size())
	assert.Equal(t, 4, pixel.ABGR8888.Size())

	assert.Equal(t, 0, pixel.Format(0).Size())
	assert.False(t, pixel.Format(0x12345678).Valid())
	for _, f := range formats {
		assert.True(t, f.Valid(), f.String())
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ABGR6666", pixel.ABGR6666.String())
	assert.Equal(t, "Format(0x00000001)", pixel.Format(1).String())
}

func TestPack(t *testing.T) {
	t.Parallel()

	tables := []struct {
		format pixel.Format
		src    []byte
		want   []byte
	}{
		{pixel.A8, []byte{255, 0, 0, 255}, []byte{255}},
		{pixel.A8, []byte{17, 200, 100, 0}, []byte{17}},
		{pixel.BGRA8888, []byte{1, 2, 3, 4}, []byte{3, 2, 1, 4}},
		{pixel.ABGR8888, []byte{1, 2, 3, 4}, []byte{4, 3, 2, 1}},
		{pixel.BGR565, []byte{255, 255, 255, 0}, []byte{0xff, 0xff}},
		{pixel.BGR565, []byte{255, 0, 0, 255}, []byte{0x00, 0xf8}},
		{pixel.BGR565, []byte{0, 255, 0, 255}, []byte{0xe0, 0x07}},
		{pixel.BGR565, []byte{0, 0, 255, 255}, []byte{0x1f, 0x00}},
		{pixel.BGR565, []byte{128, 128, 128, 255}, []byte{0x10, 0x84}},
		{pixel.BGR565, []byte{4, 0, 5, 255}, []byte{0x01, 0x00}},
		{pixel.ABGR6666, []byte{255, 255, 255, 0}, []byte{0x00, 0x00, 0x00}},
		{pixel.ABGR6666, []byte{255, 255, 255, 255}, []byte{0xff, 0xff, 0xff}},
		{pixel.ABGR6666, []byte{255, 0, 0, 255}, []byte{0x3f, 0x00, 0xfc}},
		{pixel.ABGR6666, []byte{0, 0, 255, 255}, []byte{0xff, 0x0f, 0x00}},
		{pixel.ABGR6666, []byte{0, 255, 0, 1}, []byte{0x00, 0xf0, 0x03}},
	}

	for _, table := range tables {
		dst := make([]byte, table.format.Size())
		table.format.Pack(dst, table.src)
		assert.Equal(t, table.want, dst, "%s %v", table.format, table.src)
	}
}

func TestPackUnsupported(t *testing.T) {
	t.Parallel()

	f := pixel.Format(0)
	assert.False(t, f.Valid())
	assert.Panics(t, func() {
		f.Pack(make([]byte, 4), []byte{0, 0, 0, 0})
	})
	assert.Panics(t, func() {
		f.Unpack(make([]byte, 4), []byte{0, 0, 0, 0})
	})
}

func TestUnpack(t *testing.T) {
	t.Parallel()

	t.Run("Should be lossless for 8-bit formats", func(t *testing.T) {
		t.Parallel()
		src := []byte{10, 20, 30, 40}
		for _, f := range []pixel.Format{pixel.BGRA8888, pixel.ABGR8888} {
			packed := make([]byte, f.Size())
			f.Pack(packed, src)
			dst := make([]byte, pixel.SourceSize)
			f.Unpack(dst, packed)
			assert.Equal(t, src, dst, f.String())
		}
	})

	t.Run("Should unpack A8 as opaque grey", func(t *testing.T) {
		t.Parallel()
		dst := make([]byte, pixel.SourceSize)
		pixel.A8.Unpack(dst, []byte{99})
		assert.Equal(t, []byte{99, 99, 99, 255}, dst)
	})

	t.Run("Should be close for reduced formats", func(t *testing.T) {
		t.Parallel()
		for v := 0; v < 256; v++ {
			src := []byte{byte(v), byte(255 - v), byte(v), 255}

			packed := make([]byte, 2)
			pixel.BGR565.Pack(packed, src)
			dst := make([]byte, pixel.SourceSize)
			pixel.BGR565.Unpack(dst, packed)
			assert.InDelta(t, src[0], dst[0], 4)
			assert.InDelta(t, src[1], dst[1], 2)
			assert.InDelta(t, src[2], dst[2], 4)
			assert.Equal(t, byte(255), dst[3])

			src[3] = byte(v | 1)
			packed = make([]byte, 3)
			pixel.ABGR6666.Pack(packed, src)
			pixel.ABGR6666.Unpack(dst, packed)
			for i := range src {
				assert.InDelta(t, src[i], dst[i], 2)
			}
		}
	})

	t.Run("Should restore full intensity", func(t *testing.T) {
		t.Parallel()
		dst := make([]byte, pixel.SourceSize)
		pixel.BGR565.Unpack(dst, []byte{0xff, 0xff})
		assert.Equal(t, []byte{255, 255, 255, 255}, dst)
		pixel.ABGR6666.Unpack(dst, []byte{0x3f, 0x00, 0xfc})
		assert.Equal(t, []byte{255, 0, 0, 255}, dst)
	})
}
