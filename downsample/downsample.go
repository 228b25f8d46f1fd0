/*
Package downsample reduces an oversampled 1-bit bitmap by half in each
direction and colorizes it.

Every non-overlapping 2x2 block of the source becomes one pixel of the
destination. The number of set source pixels in the block, from zero to four,
picks a brightness level; blocks with no set pixels are not written at all so
whatever is already in the destination, such as a background, shows through.
*/
package downsample

import (
	"errors"
	"image/color"

	"github.com/bodgit/ringtext/rgb565"
)

// Factor is the reduction in each direction
const Factor = 2

var errNotMonotonic = errors.New("downsample: levels must not decrease")

// Reader is the oversampled source
type Reader interface {
	Width() int
	Height() int
	Bit(x, y int) bool
}

// Setter is the colorized destination
type Setter interface {
	SetRGB565(x, y int, c rgb565.Color)
}

// Levels maps the count of set pixels in a block to a color. Level[i] is the
// brightness used for a count of i+1, applied to Tint.
type Levels struct {
	Level [Factor * Factor]uint8
	Tint  color.RGBA
}

// DefaultLevels is slightly non-linear, favouring blocks that are mostly
// filled, which keeps thin strokes from blooming.
var DefaultLevels = Levels{
	Level: [Factor * Factor]uint8{0x22, 0x66, 0xbb, 0xff},
	Tint:  color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// Validate checks that a larger count never produces a dimmer color
func (l Levels) Validate() error {
	for i := 1; i < len(l.Level); i++ {
		if l.Level[i] < l.Level[i-1] {
			return errNotMonotonic
		}
	}
	return nil
}

func scale(c, level uint8) uint8 {
	return uint8((uint32(c)*uint32(level) + 0x7f) / 0xff)
}

// Color returns the color for a block with count set pixels. No color is
// returned for an empty block.
func (l Levels) Color(count int) (rgb565.Color, bool) {
	if count <= 0 {
		return 0, false
	}
	if count > len(l.Level) {
		count = len(l.Level)
	}
	level := l.Level[count-1]
	return rgb565.FromColor(color.RGBA{
		scale(l.Tint.R, level),
		scale(l.Tint.G, level),
		scale(l.Tint.B, level),
		0xff,
	}), true
}

// palette precomputes the color for every count
func (l Levels) palette() [Factor*Factor + 1]rgb565.Color {
	var p [Factor*Factor + 1]rgb565.Color
	for i := range p {
		p[i], _ = l.Color(i)
	}
	return p
}

// Reduce writes the colorized, downsampled src into dst and returns the
// number of pixels written. Reads past the edge of src count as unset so an
// odd width or height is handled.
func Reduce(dst Setter, src Reader, l Levels) int {
	p := l.palette()

	var n int
	for x := 0; x < src.Width(); x += Factor {
		for y := 0; y < src.Height(); y += Factor {
			var count int
			for dy := 0; dy < Factor; dy++ {
				for dx := 0; dx < Factor; dx++ {
					if src.Bit(x+dx, y+dy) {
						count++
					}
				}
			}
			if count == 0 {
				continue
			}
			dst.SetRGB565(x/Factor, y/Factor, p[count])
			n++
		}
	}

	return n
}
