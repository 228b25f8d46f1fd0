package rgb565

import (
	"encoding/binary"
	"errors"
	"image"
	"io"
)

var (
	errNotEnough = errors.New("rgb565: not enough image data")
	errTooMuch   = errors.New("rgb565: too much image data")
	errBadSize   = errors.New("rgb565: invalid dimensions")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r     io.Reader
	image *Image
}

func (d *decoder) decode(r io.Reader, w, h int) error {
	d.r = r

	if w <= 0 || h <= 0 || w > 0xffff || h > 0xffff {
		return errBadSize
	}

	d.image = NewImage(image.Rect(0, 0, w, h))

	if err := readFull(d.r, d.image.Pix); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	var tmp [1]byte
	if n, err := r.Read(tmp[:]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	return nil
}

// Decode reads a raw stream of w by h pixels from r. The stream must hold
// exactly that many pixels.
func Decode(r io.Reader, w, h int) (*Image, error) {
	var d decoder
	if err := d.decode(r, w, h); err != nil {
		return nil, err
	}
	return d.image, nil
}

// UnmarshalBinary decodes a frame written by MarshalBinary
func (p *Image) UnmarshalBinary(b []byte) error {
	if len(b) < 4 {
		return errNotEnough
	}
	w := int(binary.LittleEndian.Uint16(b[0:2]))
	h := int(binary.LittleEndian.Uint16(b[2:4]))
	if 2*w*h != len(b)-4 {
		if 2*w*h > len(b)-4 {
			return errNotEnough
		}
		return errTooMuch
	}

	p.Rect = image.Rect(0, 0, w, h)
	p.Stride = 2 * w
	p.Pix = append(p.Pix[:0], b[4:]...)

	return nil
}
