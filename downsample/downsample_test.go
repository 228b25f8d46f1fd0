package downsample

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/ringtext/bitmap"
	"github.com/bodgit/ringtext/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultLevels.Validate())
	assert.NoError(t, Levels{Level: [4]uint8{0x10, 0x10, 0x10, 0x10}}.Validate())
	assert.Equal(t, errNotMonotonic, Levels{Level: [4]uint8{0x10, 0x20, 0x18, 0xff}}.Validate())
}

func TestColor(t *testing.T) {
	_, ok := DefaultLevels.Color(0)
	assert.False(t, ok)

	c, ok := DefaultLevels.Color(4)
	require.True(t, ok)
	assert.Equal(t, rgb565.Color(0xffff), c)

	c, ok = DefaultLevels.Color(9)
	require.True(t, ok)
	assert.Equal(t, rgb565.Color(0xffff), c)

	green := Levels{
		Level: DefaultLevels.Level,
		Tint:  color.RGBA{0, 0xff, 0, 0xff},
	}
	c, ok = green.Color(4)
	require.True(t, ok)
	assert.Equal(t, rgb565.Color(0x07e0), c)
}

func TestMonotonic(t *testing.T) {
	for _, l := range []Levels{DefaultLevels, {Level: [4]uint8{1, 2, 3, 4}, Tint: color.RGBA{0x80, 0x40, 0xff, 0xff}}} {
		var last uint32
		for count := 1; count <= 4; count++ {
			c, ok := l.Color(count)
			require.True(t, ok)
			assert.GreaterOrEqual(t, c.Luma(), last, "count %d", count)
			last = c.Luma()
		}
	}
}

func TestReduce(t *testing.T) {
	src, err := bitmap.New(8, 5)
	require.NoError(t, err)

	// Blocks with 1, 2, 3 and 4 pixels set across the top
	src.SetBit(0, 0, true)
	src.SetBit(2, 0, true)
	src.SetBit(3, 1, true)
	src.SetBit(4, 0, true)
	src.SetBit(5, 0, true)
	src.SetBit(4, 1, true)
	for _, p := range []image.Point{{6, 0}, {7, 0}, {6, 1}, {7, 1}} {
		src.SetBit(p.X, p.Y, true)
	}
	// The trailing odd row only has its top half
	src.SetBit(1, 4, true)

	const background = rgb565.Color(0x0821)
	dst := rgb565.NewImage(image.Rect(0, 0, 4, 4))
	dst.Fill(background)

	n := Reduce(dst, src, DefaultLevels)
	assert.Equal(t, 5, n)

	for count := 1; count <= 4; count++ {
		c, _ := DefaultLevels.Color(count)
		assert.Equal(t, c, dst.RGB565At(count-1, 0), "count %d", count)
	}

	c, _ := DefaultLevels.Color(1)
	assert.Equal(t, c, dst.RGB565At(0, 2))

	// Untouched blocks keep the background
	assert.Equal(t, background, dst.RGB565At(0, 1))
	assert.Equal(t, background, dst.RGB565At(3, 3))
}

func TestReduceEmpty(t *testing.T) {
	src, err := bitmap.New(64, 54)
	require.NoError(t, err)

	dst := rgb565.NewImage(image.Rect(0, 0, 32, 32))
	n := Reduce(dst, src, DefaultLevels)
	assert.Equal(t, 0, n)
	for _, p := range dst.Pix {
		assert.Equal(t, uint8(0), p)
	}
}
