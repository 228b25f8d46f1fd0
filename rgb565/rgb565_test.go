package rgb565

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor(t *testing.T) {
	tables := []struct {
		c          Color
		r, g, b, a uint32
	}{
		{0x0000, 0, 0, 0, 0xffff},
		{0xffff, 0xffff, 0xffff, 0xffff, 0xffff},
		{0xf800, 0xffff, 0, 0, 0xffff},
		{0x07e0, 0, 0xffff, 0, 0xffff},
		{0x001f, 0, 0, 0xffff, 0xffff},
	}

	for _, table := range tables {
		r, g, b, a := table.c.RGBA()
		assert.Equal(t, table.r, r, "%#04x", table.c)
		assert.Equal(t, table.g, g, "%#04x", table.c)
		assert.Equal(t, table.b, b, "%#04x", table.c)
		assert.Equal(t, table.a, a, "%#04x", table.c)
	}
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, Color(0xf800), FromColor(color.RGBA{0xff, 0, 0, 0xff}))
	assert.Equal(t, Color(0x07e0), FromColor(color.RGBA{0, 0xff, 0, 0xff}))
	assert.Equal(t, Color(0x001f), FromColor(color.RGBA{0, 0, 0xff, 0xff}))
	assert.Equal(t, Color(0xffff), FromColor(color.White))

	// Every packed color survives a trip through color.Color
	for c := 0; c <= 0xffff; c += 7 {
		assert.Equal(t, Color(c), FromColor(color.RGBA64Model.Convert(Color(c))))
	}
}

func TestLuma(t *testing.T) {
	assert.Equal(t, uint32(0), Color(0).Luma())
	assert.Equal(t, uint32(0xffff), Color(0xffff).Luma())
	assert.Less(t, Color(0x001f).Luma(), Color(0xf800).Luma())
	assert.Less(t, Color(0xf800).Luma(), Color(0x07e0).Luma())
}

func TestImage(t *testing.T) {
	m := NewImage(image.Rect(0, 0, 4, 3))
	assert.Len(t, m.Pix, 24)

	m.SetRGB565(1, 2, 0xabcd)
	assert.Equal(t, Color(0xabcd), m.RGB565At(1, 2))
	assert.Equal(t, []uint8{0xab, 0xcd}, m.Pix[m.PixOffset(1, 2):m.PixOffset(1, 2)+2])

	// Out of range
	m.SetRGB565(4, 0, 0xffff)
	m.SetRGB565(-1, 0, 0xffff)
	assert.Equal(t, Color(0), m.RGB565At(4, 0))

	m.Set(0, 0, color.RGBA{0xff, 0, 0, 0xff})
	assert.Equal(t, Color(0xf800), m.At(0, 0))

	m.Fill(0x1234)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, Color(0x1234), m.RGB565At(x, y))
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	m := NewImage(image.Rect(0, 0, 3, 2))
	m.SetRGB565(0, 0, 0x0102)
	m.SetRGB565(2, 1, 0xf00f)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0xf0, 0x0f}, b.Bytes())

	d, err := Decode(bytes.NewReader(b.Bytes()), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, m, d)

	_, err = Decode(bytes.NewReader(b.Bytes()[:11]), 3, 2)
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(append(b.Bytes(), 0)), 3, 2)
	assert.Equal(t, errTooMuch, err)

	_, err = Decode(bytes.NewReader(nil), 0, 2)
	assert.Equal(t, errBadSize, err)
}

func TestEncodeGeneric(t *testing.T) {
	m := image.NewRGBA(image.Rect(5, 5, 7, 6))
	m.Set(5, 5, color.RGBA{0xff, 0, 0, 0xff})
	m.Set(6, 5, color.RGBA{0, 0, 0xff, 0xff})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, []byte{0xf8, 0x00, 0x00, 0x1f}, b.Bytes())
}

func TestMarshalBinary(t *testing.T) {
	m := NewImage(image.Rect(0, 0, 2, 2))
	m.SetRGB565(1, 1, 0xbeef)

	b, err := m.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0xbe, 0xef}, b)

	var d Image
	require.NoError(t, d.UnmarshalBinary(b))
	assert.Equal(t, m, &d)

	assert.Equal(t, errNotEnough, d.UnmarshalBinary(b[:3]))
	assert.Equal(t, errNotEnough, d.UnmarshalBinary(b[:11]))
	assert.Equal(t, errTooMuch, d.UnmarshalBinary(append(b, 0)))
}
