package rgb565

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"math"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()

	// Rows of an Image are already in the wire format
	if p, ok := m.(*Image); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := p.PixOffset(b.Min.X, y)
			if _, err := e.w.Write(p.Pix[i : i+2*b.Dx()]); err != nil {
				return err
			}
		}
		return nil
	}

	row := make([]byte, 2*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := FromColor(m.At(x, y))
			i := 2 * (x - b.Min.X)
			row[i] = byte(c >> 8)
			row[i+1] = byte(c)
		}
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w as a raw stream of big-endian pixels, top
// row first.
func Encode(w io.Writer, m image.Image) error {
	e := encoder{w: w}
	return e.encode(m)
}

// MarshalBinary encodes the image as its width and height, both 16-bit
// little-endian, followed by the raw pixel stream.
func (p *Image) MarshalBinary() ([]byte, error) {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if w > math.MaxUint16 || h > math.MaxUint16 {
		return nil, errors.New("rgb565: image too large")
	}

	b := new(bytes.Buffer)
	b.Grow(4 + 2*w*h)

	if err := binary.Write(b, binary.LittleEndian, [2]uint16{uint16(w), uint16(h)}); err != nil {
		return nil, err
	}

	if err := Encode(b, p); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
