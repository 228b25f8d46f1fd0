/*
Package warp implements the polar warp of a rectangular 1-bit bitmap onto a
ring.

Every destination pixel inside the ring is mapped back to a pixel in the
source, nearest neighbour, and copied if set. The outer edge of the ring maps
to the top of the source and the inner edge to the bottom; the usable arc of
the ring maps linearly onto the full width of the source, starting at the far
edge of the gap and running clockwise.
*/
package warp

import (
	"math"

	"github.com/bodgit/ringtext/geometry"
	"github.com/chewxy/math32"
)

const (
	degrees = 180 / math.Pi
	twoPi   = float32(2 * math.Pi)
)

// Reader is the source of a warp
type Reader interface {
	Width() int
	Height() int
	Bit(x, y int) bool
}

// Writer is the destination of a warp
type Writer interface {
	SetBit(x, y int, v bool)
	Clear()
}

// Mapper maps destination pixels back to source pixels for one geometry and
// source size.
type Mapper struct {
	g      geometry.Geometry
	w, h   float32
	mx, my int
	wrap   float32
}

// NewMapper returns a Mapper for a source of w by h pixels.
func NewMapper(g geometry.Geometry, w, h int) *Mapper {
	return &Mapper{
		g:    g,
		w:    float32(w),
		h:    float32(h),
		mx:   w - 1,
		my:   h - 1,
		wrap: g.AS - twoPi,
	}
}

func clamp(v, hi int) int {
	switch {
	case v > hi:
		return hi
	case v < 0:
		return 0
	}
	return v
}

// Map returns the source pixel that the destination pixel (x, y) samples.
// If the pixel lies outside the ring, inside the gap or inside the
// exclusion rectangle ok is false.
//
// Pixels exactly on either radius or either edge of the gap are mapped. The
// result is clamped to the source bounds as rounding can land one pixel past
// the last row or column.
func (m *Mapper) Map(x, y int) (sx, sy int, ok bool) {
	g := m.g

	if g.Excluded(x, y) {
		return 0, 0, false
	}

	// The square root, the angle and the conversion to degrees are worked in
	// double precision and stored in single precision
	a := float64(x - g.CX)
	b := float64(y - g.CY)
	r := float32(math.Sqrt(a*a + b*b))
	if r < g.RI || r > g.RO {
		return 0, 0, false
	}

	theta := float32(math.Atan2(b, a))
	// Gaps wider than a half turn wrap past -π
	if theta < m.wrap {
		theta += twoPi
	}
	if theta > g.AE && theta < g.AS {
		return 0, 0, false
	}

	aa := float32(1 - float64((r-g.RI)/g.RRange))

	bb := float32(float64(g.Offset) + degrees*float64(theta))
	if bb > 360 {
		bb -= 360
	}
	bb = float32(float64(bb) / float64(g.Sweep))

	sx = clamp(int(math32.Round(bb*m.w)), m.mx)
	sy = clamp(int(math32.Round(aa*m.h)), m.my)

	return sx, sy, true
}

// Transform clears dst and warps src into it, returning the number of pixels
// set. Only the bounding box of the ring is visited and only set pixels are
// written.
func Transform(dst Writer, src Reader, g geometry.Geometry) int {
	dst.Clear()

	m := NewMapper(g, src.Width(), src.Height())

	var n int
	for x := g.XStart; x < g.XEnd; x++ {
		for y := g.YStart; y < g.YEnd; y++ {
			sx, sy, ok := m.Map(x, y)
			if !ok {
				continue
			}
			if src.Bit(sx, sy) {
				dst.SetBit(x, y, true)
				n++
			}
		}
	}

	return n
}
