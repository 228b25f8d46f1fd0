/*
Package rgb565 implements a 16 bits per pixel raster in the 5:6:5 RGB layout
used by most small TFT panels, along with an encoder and decoder for the raw
pixel stream such panels accept.

Each pixel is stored big-endian, red in the top five bits, green in the
middle six and blue in the bottom five, so a row of the raster can be sent to
a panel as is. There is no header, a raw stream is exactly two bytes per
pixel with rows packed end to end.
*/
package rgb565

import (
	"image"
	"image/color"
)

// Color is a packed 5:6:5 RGB color. It is always opaque.
type Color uint16

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1f
	g6 := uint32(c>>5) & 0x3f
	b5 := uint32(c) & 0x1f

	// Replicate the high bits into the low bits so full scale is 0xffff
	r = r5<<11 | r5<<6 | r5<<1 | r5>>4
	g = g6<<10 | g6<<4 | g6>>2
	b = b5<<11 | b5<<6 | b5<<1 | b5>>4

	return r, g, b, 0xffff
}

// FromColor converts any color to the nearest packed color, dropping alpha
func FromColor(c color.Color) Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Color(r>>11<<11 | g>>10<<5 | b>>11)
}

// Luma returns the perceived brightness of c in the range [0, 0xffff]
func (c Color) Luma() uint32 {
	r, g, b, _ := c.RGBA()
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16
}

// Model converts any color to a Color
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// Image is an in-memory image whose At method returns Color values.
type Image struct {
	// Pix holds the pixels, two bytes each, big-endian
	Pix []uint8
	// Stride is the Pix stride in bytes between vertically adjacent pixels
	Stride int
	// Rect is the image's bounds
	Rect image.Rectangle
}

// NewImage returns a new black Image with the given bounds
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Image{
		Pix:    make([]uint8, 2*w*h),
		Stride: 2 * w,
		Rect:   r,
	}
}

// ColorModel implements image.Image
func (p *Image) ColorModel() color.Model { return Model }

// Bounds implements image.Image
func (p *Image) Bounds() image.Rectangle { return p.Rect }

// At implements image.Image
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the packed color of the pixel at (x, y)
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return Color(p.Pix[i])<<8 | Color(p.Pix[i+1])
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y)
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// Set implements draw.Image
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, FromColor(c))
}

// SetRGB565 sets the pixel at (x, y). Pixels outside the image are ignored.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = uint8(c >> 8)
	p.Pix[i+1] = uint8(c)
}

// Fill sets every pixel to c
func (p *Image) Fill(c Color) {
	hi, lo := uint8(c>>8), uint8(c)
	for i := 0; i+1 < len(p.Pix); i += 2 {
		p.Pix[i] = hi
		p.Pix[i+1] = lo
	}
}

// Opaque reports whether the image is fully opaque, which it always is
func (p *Image) Opaque() bool { return true }
