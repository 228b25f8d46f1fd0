/*
Package bitmap implements a packed 1-bit raster.

Pixels are stored eight to a byte, most significant bit first, with each row
padded to a whole number of bytes. This is the same layout used by the 1-bit
canvases found in most embedded graphics libraries so a Bitmap can be handed
to a monochrome panel without conversion.

A Bitmap also implements draw.Image so anything that can draw onto an image,
such as a font.Drawer, can draw onto it directly.
*/
package bitmap

import (
	"errors"
	"image"
	"image/color"
)

// maxPixels caps an allocation at 64 megapixels
const maxPixels = 1 << 26

var errBadSize = errors.New("bitmap: invalid dimensions")

var (
	// Off is the color of an unset pixel
	Off = color.Gray{Y: 0x00}
	// On is the color of a set pixel
	On = color.Gray{Y: 0xff}

	// Palette is the color model of a Bitmap
	Palette = color.Palette{Off, On}
)

// Bitmap is a 1-bit raster with its origin at the top-left.
type Bitmap struct {
	pix    []byte
	stride int
	width  int
	height int
}

// New allocates a cleared bitmap of w by h pixels.
func New(w, h int) (*Bitmap, error) {
	if w <= 0 || h <= 0 || w > maxPixels/h {
		return nil, errBadSize
	}
	stride := (w + 7) >> 3
	return &Bitmap{
		pix:    make([]byte, stride*h),
		stride: stride,
		width:  w,
		height: h,
	}, nil
}

// Width returns the width of the bitmap in pixels
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the bitmap in pixels
func (b *Bitmap) Height() int {
	return b.height
}

func (b *Bitmap) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Bit reports whether the pixel at (x, y) is set. Coordinates outside the
// bitmap are always unset.
func (b *Bitmap) Bit(x, y int) bool {
	if !b.in(x, y) {
		return false
	}
	return b.pix[y*b.stride+x>>3]&(0x80>>uint(x&7)) != 0
}

// SetBit sets or clears the pixel at (x, y). Coordinates outside the bitmap
// are ignored.
func (b *Bitmap) SetBit(x, y int, v bool) {
	if !b.in(x, y) {
		return
	}
	i := y*b.stride + x>>3
	mask := byte(0x80 >> uint(x&7))
	if v {
		b.pix[i] |= mask
	} else {
		b.pix[i] &^= mask
	}
}

// Clear unsets every pixel
func (b *Bitmap) Clear() {
	b.Fill(false)
}

// Fill sets every pixel to v. The padding bits at the end of each row are
// left clear.
func (b *Bitmap) Fill(v bool) {
	var fill byte
	if v {
		fill = 0xff
	}
	for i := range b.pix {
		b.pix[i] = fill
	}
	if pad := b.stride<<3 - b.width; v && pad > 0 {
		mask := byte(0xff << uint(pad))
		for y := 0; y < b.height; y++ {
			b.pix[y*b.stride+b.stride-1] &= mask
		}
	}
}

// Count returns the number of set pixels
func (b *Bitmap) Count() int {
	var n int
	for _, p := range b.pix {
		for ; p != 0; p &= p - 1 {
			n++
		}
	}
	return n
}

// ColorModel implements image.Image
func (b *Bitmap) ColorModel() color.Model {
	return Palette
}

// Bounds implements image.Image
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements image.Image
func (b *Bitmap) At(x, y int) color.Color {
	if b.Bit(x, y) {
		return On
	}
	return Off
}

// Set implements draw.Image. Any color at least half as bright as white sets
// the pixel, anything darker clears it.
func (b *Bitmap) Set(x, y int, c color.Color) {
	g := color.Gray16Model.Convert(c).(color.Gray16)
	b.SetBit(x, y, g.Y >= 0x8000)
}
