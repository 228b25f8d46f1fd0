/*
Package text draws lines of monospaced text into a 1-bit bitmap.

Lines are drawn at a fixed left margin, the first with its baseline at a
fixed offset from the top and each following line one line height below the
last. Nothing is wrapped; anything falling outside the bitmap is clipped.
*/
package text

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrTooManyLines is returned when more lines are given than fit
var ErrTooManyLines = errors.New("text: too many lines")

// Options controls the layout of the text
type Options struct {
	// Size is the font size in pixels
	Size float64 `toml:"size"`
	// Left is the x position every line starts at
	Left int `toml:"left"`
	// Top is the baseline of the first line
	Top int `toml:"top"`
	// LineHeight is the distance between baselines
	LineHeight int `toml:"line_height"`
	// MaxLines is the most lines accepted
	MaxLines int `toml:"max_lines"`
	// MaxChars is the most characters accepted in a line
	MaxChars int `toml:"max_chars"`
}

// DefaultOptions returns a layout of five 59 character lines, with room for
// one more, suited to a 1260 by 200 pixel bitmap.
func DefaultOptions() Options {
	return Options{
		Size:       35,
		Left:       10,
		Top:        30,
		LineHeight: 35,
		MaxLines:   6,
		MaxChars:   59,
	}
}

// Validate checks the options are usable
func (o Options) Validate() error {
	switch {
	case o.Size <= 0:
		return fmt.Errorf("text: invalid size %v", o.Size)
	case o.LineHeight <= 0:
		return fmt.Errorf("text: invalid line height %d", o.LineHeight)
	case o.MaxLines <= 0 || o.MaxChars <= 0:
		return errors.New("text: line and character limits must be positive")
	}
	return nil
}

// LineTooLongError is returned when a line holds more characters than
// allowed
type LineTooLongError struct {
	Line  int
	Chars int
	Max   int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("text: line %d has %d characters, maximum is %d", e.Line+1, e.Chars, e.Max)
}

// Rasterizer draws text with one font face. It is not safe for concurrent
// use.
type Rasterizer struct {
	opts Options
	face font.Face
}

// New returns a Rasterizer using Go Mono at the given size.
func New(opts Options) (*Rasterizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return &Rasterizer{
		opts: opts,
		face: face,
	}, nil
}

// Advance returns the width in pixels of a single character
func (r *Rasterizer) Advance() int {
	a, _ := r.face.GlyphAdvance('0')
	return a.Ceil()
}

// Bitmap is an image that can be cleared and drawn on
type Bitmap interface {
	draw.Image
	Clear()
}

// Check returns an error if lines exceed the configured limits
func (r *Rasterizer) Check(lines []string) error {
	if len(lines) > r.opts.MaxLines {
		return fmt.Errorf("%w: %d, maximum is %d", ErrTooManyLines, len(lines), r.opts.MaxLines)
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n > r.opts.MaxChars {
			return &LineTooLongError{Line: i, Chars: n, Max: r.opts.MaxChars}
		}
	}
	return nil
}

// Draw clears dst and draws lines into it. Drawing the same lines again
// produces the same result.
func (r *Rasterizer) Draw(dst Bitmap, lines []string) error {
	if err := r.Check(lines); err != nil {
		return err
	}

	dst.Clear()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: r.face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(r.opts.Left, r.opts.Top+i*r.opts.LineHeight)
		d.DrawString(line)
	}

	return nil
}

// Close releases the font face
func (r *Rasterizer) Close() error {
	return r.face.Close()
}

// ReadLines reads newline separated lines from r, dropping any trailing
// carriage returns.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
