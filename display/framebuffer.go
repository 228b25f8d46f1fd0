package display

import (
	"errors"
	"io"

	"github.com/bodgit/ringtext/rgb565"
)

var (
	errBadScreen = errors.New("display: invalid screen dimensions")
	errBadStride = errors.New("display: stride shorter than a row")
)

// Framebuffer blits into a w by h, 16 bits per pixel, frame buffer. Each row
// that is at least partly on screen is written with a single WriteAt.
type Framebuffer struct {
	w      io.WriterAt
	width  int
	height int

	// LittleEndian swaps each pixel to low byte first, as Linux fbdev
	// devices expect. Panels on a serial bus take the high byte first.
	LittleEndian bool

	// Stride is the number of bytes between the start of one row and the
	// next. It starts as 2*width; set it when the device pads its rows.
	Stride int

	row []byte
}

// NewFramebuffer returns a Framebuffer writing a width by height screen to w
func NewFramebuffer(w io.WriterAt, width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errBadScreen
	}
	return &Framebuffer{
		w:      w,
		width:  width,
		height: height,
		Stride: 2 * width,
	}, nil
}

// Blit implements Blitter. Anything off screen is clipped.
func (f *Framebuffer) Blit(x, y int, m *rgb565.Image) error {
	if f.Stride < 2*f.width {
		return errBadStride
	}

	b := m.Bounds()

	x0, x1 := x, x+b.Dx()
	if x0 < 0 {
		x0 = 0
	}
	if x1 > f.width {
		x1 = f.width
	}
	if x0 >= x1 {
		return nil
	}

	for row := 0; row < b.Dy(); row++ {
		sy := y + row
		if sy < 0 || sy >= f.height {
			continue
		}

		i := m.PixOffset(b.Min.X+x0-x, b.Min.Y+row)
		buf := m.Pix[i : i+2*(x1-x0)]
		if f.LittleEndian {
			f.row = append(f.row[:0], buf...)
			for j := 0; j+1 < len(f.row); j += 2 {
				f.row[j], f.row[j+1] = f.row[j+1], f.row[j]
			}
			buf = f.row
		}

		if _, err := f.w.WriteAt(buf, int64(sy*f.Stride+2*x0)); err != nil {
			return err
		}
	}

	return nil
}
