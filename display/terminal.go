package display

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bodgit/ringtext/rgb565"
	"github.com/muesli/termenv"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// Terminal previews a raster in a terminal, two pixel rows to each line of
// text using the upper half block with the top pixel as foreground and the
// bottom pixel as background. Black pixels are left as the terminal
// background.
type Terminal struct {
	out *termenv.Output
}

// NewTerminal returns a Terminal writing to w. Without options the color
// profile is detected from w.
func NewTerminal(w io.Writer, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{
		out: termenv.NewOutput(w, opts...),
	}
}

func (t *Terminal) color(c rgb565.Color) termenv.Color {
	r, g, b, _ := c.RGBA()
	return t.out.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// Blit implements Blitter. The position is taken in pixels so x is the
// number of columns to indent by and y is halved into a number of lines.
func (t *Terminal) Blit(x, y int, m *rgb565.Image) error {
	w := bufio.NewWriter(t.out)

	if x < 0 {
		x = 0
	}
	for i := 0; i < y/2; i++ {
		w.WriteByte('\n')
	}

	b := m.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py += 2 {
		for i := 0; i < x; i++ {
			w.WriteByte(' ')
		}
		for px := b.Min.X; px < b.Max.X; px++ {
			top, bottom := m.RGB565At(px, py), m.RGB565At(px, py+1)
			switch {
			case top == 0 && bottom == 0:
				w.WriteByte(' ')
			case top == 0:
				w.WriteString(t.out.String(lowerHalf).Foreground(t.color(bottom)).String())
			case bottom == 0:
				w.WriteString(t.out.String(upperHalf).Foreground(t.color(top)).String())
			default:
				w.WriteString(t.out.String(upperHalf).Foreground(t.color(top)).Background(t.color(bottom)).String())
			}
		}
		w.WriteByte('\n')
	}

	return w.Flush()
}
