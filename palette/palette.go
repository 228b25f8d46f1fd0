/*
Package palette converts a rendered ring into an indexed image for panels,
and image formats, that take a color table rather than direct color.

A rendered ring only ever holds the background plus one color per brightness
level so it usually fits a small table exactly; anything with more colors,
such as a ring over a photographic background, is reduced with a median cut.
*/
package palette

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// MaxColors is the largest color table an indexed image can hold
const MaxColors = 256

var errBadColors = errors.New("palette: number of colors must be between 2 and 256")

func uniqueColors(m image.Image, limit int) (color.Palette, bool) {
	seen := make(map[color.Color]struct{})
	p := make(color.Palette, 0, limit)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(p) == limit {
				return nil, false
			}
			seen[c] = struct{}{}
			p = append(p, c)
		}
	}
	return p, true
}

// Quantize returns m as an indexed image of no more than n colors. The
// image keeps its bounds.
func Quantize(m image.Image, n int) (*image.Paletted, error) {
	if n < 2 || n > MaxColors {
		return nil, errBadColors
	}

	b := m.Bounds()

	p, ok := uniqueColors(m, n)
	if !ok {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, n), m)
	}

	pm := image.NewPaletted(b, p)
	if ok {
		// Exact, so no need to search for the nearest color
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pm.SetColorIndex(x, y, uint8(p.Index(m.At(x, y))))
			}
		}
		return pm, nil
	}

	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm, nil
}
