package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/ringtext/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeExact(t *testing.T) {
	m := rgb565.NewImage(image.Rect(0, 0, 8, 8))
	m.SetRGB565(1, 1, 0x2104)
	m.SetRGB565(2, 2, 0x6318)
	m.SetRGB565(3, 3, 0xffff)

	pm, err := Quantize(m, 16)
	require.NoError(t, err)
	assert.Len(t, pm.Palette, 4)
	assert.Equal(t, m.Bounds(), pm.Bounds())

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, rgb565.Model.Convert(m.At(x, y)), rgb565.Model.Convert(pm.At(x, y)), "(%d, %d)", x, y)
		}
	}
}

func TestQuantizeReduce(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			m.Set(x, y, color.RGBA{uint8(x * 8), uint8(y * 8), 0x80, 0xff})
		}
	}

	pm, err := Quantize(m, 16)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(pm.Palette), 16)
	assert.NotEmpty(t, pm.Palette)
}

func TestQuantizeInvalid(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for _, n := range []int{-1, 0, 1, 257} {
		_, err := Quantize(m, n)
		assert.Equal(t, errBadColors, err, n)
	}
}
