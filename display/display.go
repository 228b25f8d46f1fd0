/*
Package display blits rendered rings to something that shows them.

A Blitter takes a finished raster and the screen position of its top-left
corner. Framebuffer writes into a 16 bits per pixel panel or frame buffer
device, Terminal draws a preview into a color terminal.
*/
package display

import (
	"image"

	"github.com/bodgit/ringtext/rgb565"
)

// Blitter copies a raster to the screen with its top-left corner at (x, y)
type Blitter interface {
	Blit(x, y int, m *rgb565.Image) error
}

// Center returns the position that centers a raster of size r on a screen
// of w by h pixels
func Center(w, h int, r image.Rectangle) image.Point {
	return image.Pt((w-r.Dx())/2, (h-r.Dy())/2)
}
