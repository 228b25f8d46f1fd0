/*
Package geometry derives the constants used to warp text onto a ring.

Everything is derived from the side D of the square, oversampled destination
canvas. The ring is centered on the canvas with an outer radius as large as
the canvas allows and an inner radius a fixed fraction of that. An angular
gap, the "mouth" of the ring, is left open and centered on the downward
vertical (screen coordinates grow downwards so this is at the bottom of the
display). Text runs clockwise through the remaining sweep, reading left to
right across the top.

Angles follow atan2 in screen coordinates so 0 is to the right of the center
and positive angles turn clockwise, towards the bottom of the canvas.
*/
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

const (
	// DefaultRatio is the ratio of the inner radius to the outer radius
	DefaultRatio = 0.5
	// DefaultGap is the size of the open mouth of the ring in degrees
	DefaultGap = 90.0
	// DefaultMargin is the number of display pixels left around the ring
	DefaultMargin = 6

	// Oversample is the factor the destination canvas is oversampled by
	Oversample = 2

	// diagonal bounds the square inscribed in the inner radius
	diagonal = 0.7071

	pi = float32(math.Pi)
)

var (
	errBadRatio = errors.New("geometry: ratio must be in the range [0, 1)")
	errBadGap   = errors.New("geometry: gap must be in the range (0, 360)")
	errTooSmall = errors.New("geometry: canvas too small")
)

// Options are the tunable constants of the ring
type Options struct {
	// Ratio of inner to outer radius
	Ratio float64 `toml:"ratio"`
	// Gap is the open angular gap in degrees
	Gap float64 `toml:"gap"`
	// Margin is the border in display pixels used by ForDisplay
	Margin int `toml:"margin"`
}

// DefaultOptions returns the options the ring was tuned with
func DefaultOptions() Options {
	return Options{
		Ratio:  DefaultRatio,
		Gap:    DefaultGap,
		Margin: DefaultMargin,
	}
}

// Validate checks the options are usable
func (o Options) Validate() error {
	if o.Ratio < 0 || o.Ratio >= 1 || math.IsNaN(o.Ratio) {
		return errBadRatio
	}
	if o.Gap <= 0 || o.Gap >= 360 || math.IsNaN(o.Gap) {
		return errBadGap
	}
	if o.Margin < 0 {
		return fmt.Errorf("geometry: negative margin %d", o.Margin)
	}
	return nil
}

// Geometry holds the derived constants for one canvas size
type Geometry struct {
	// Size is the side of the square destination canvas
	Size int

	// CX and CY locate the center of the ring
	CX, CY int
	// RO and RI are the outer and inner radii
	RO, RI float32
	// RRange is the radial range, RO - RI
	RRange float32

	// The destination pixels visited are [XStart, XEnd) x [YStart, YEnd).
	// YEnd is also the height of the destination canvas.
	XStart, XEnd int
	YStart, YEnd int

	// ExRad is the half width of the inner exclusion rectangle, any pixel
	// with y > YExStart and XExStart < x < XExEnd is skipped
	ExRad    int
	XExStart int
	XExEnd   int
	YExStart int

	// AE and AS bound the open gap in radians, AE < AS
	AE, AS float32
	// Sweep is the usable arc in degrees
	Sweep float32
	// Offset rotates an angle in degrees so that AS maps to zero
	Offset float32
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}

// New derives the geometry for a destination canvas of side size.
func New(size int, o Options) (Geometry, error) {
	if err := o.Validate(); err != nil {
		return Geometry{}, err
	}
	if size < 4 {
		return Geometry{}, errTooSmall
	}

	g := Geometry{
		Size: size,
		CX:   size / 2,
		CY:   size / 2,
	}

	g.RO = math32.Floor(float32(size-1) / 2)
	g.RI = math32.Floor(g.RO * float32(o.Ratio))
	g.RRange = g.RO - g.RI

	g.XStart = g.CX - int(g.RO)
	g.XEnd = g.CX + int(g.RO)
	g.YStart = g.CY - int(g.RO)

	ae := 90 - o.Gap/2
	as := 90 + o.Gap/2
	g.AE = float32(ae * math.Pi / 180)
	g.AS = float32(as * math.Pi / 180)
	g.Sweep = float32(360 - o.Gap)
	g.Offset = float32(360 - as)

	// The lowest valid pixel sits on a gap edge, on the outer radius when
	// the edge points below the center and on the inner radius otherwise
	k := round4(math.Sin(ae * math.Pi / 180))
	r := g.RO
	if k < 0 {
		r = g.RI
	}
	g.YEnd = g.CY + int(float32(k)*r) + 1

	// The rectangle below the top of the square inscribed in the inner radius
	// only ever covers the inner disk or the gap when the gap is at least a
	// quarter turn; narrower gaps get an empty rectangle
	if o.Gap >= 90 {
		g.ExRad = int(diagonal * g.RI)
	}
	g.XExStart = g.CX - g.ExRad + 1
	g.XExEnd = g.CX + g.ExRad - 1
	g.YExStart = g.CY - g.ExRad + 1

	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}

	return g, nil
}

// ForDisplay derives the geometry for a display of w by h pixels. The canvas
// is sized from the shorter side less the margin and then oversampled.
func ForDisplay(w, h int, o Options) (Geometry, error) {
	if err := o.Validate(); err != nil {
		return Geometry{}, err
	}
	side := w
	if h < side {
		side = h
	}
	return New((side-o.Margin)*Oversample, o)
}

// Validate checks the invariants between the derived constants hold
func (g Geometry) Validate() error {
	switch {
	case g.RI < 0 || g.RI >= g.RO:
		return fmt.Errorf("geometry: inner radius %v not within [0, %v)", g.RI, g.RO)
	case g.RO > float32(g.Size)/2:
		return fmt.Errorf("geometry: outer radius %v exceeds %v", g.RO, float32(g.Size)/2)
	case g.AE >= g.AS || g.AS-g.AE <= 0 || g.AS-g.AE >= 2*pi:
		return errBadGap
	case g.YEnd <= g.YStart || g.YEnd > g.Size:
		return errTooSmall
	}
	return nil
}

// RenderSize returns the side of the downsampled raster
func (g Geometry) RenderSize() int {
	return g.Size / Oversample
}

// Excluded reports whether (x, y) lies in the inner exclusion rectangle
func (g Geometry) Excluded(x, y int) bool {
	return y > g.YExStart && x > g.XExStart && x < g.XExEnd
}

func (g Geometry) String() string {
	return fmt.Sprintf("D=%d center=(%d,%d) ro=%v ri=%v x=[%d,%d) y=[%d,%d) exrad=%d ex=(%d,%d) y>%d gap=(%.1f°,%.1f°)",
		g.Size, g.CX, g.CY, g.RO, g.RI, g.XStart, g.XEnd, g.YStart, g.YEnd,
		g.ExRad, g.XExStart, g.XExEnd, g.YExStart,
		g.AE*180/pi, g.AS*180/pi)
}
