/*
Package ringtext is a library for warping lines of text around a ring for
display on small, round or square, color panels.

Rendering is a three stage pipeline. The text is first drawn into a 1-bit
source bitmap, which is then warped into an oversampled 1-bit ring by mapping
each destination pixel back to the source. Finally the ring is halved in
each direction, the number of filled pixels in each 2x2 block choosing a
brightness, giving the 16-bit raster that is sent to the panel.
*/
package ringtext

import (
	"fmt"
	"image"
	"io"
	"log"
	"sync"
	"time"

	"github.com/bodgit/ringtext/bitmap"
	"github.com/bodgit/ringtext/display"
	"github.com/bodgit/ringtext/downsample"
	"github.com/bodgit/ringtext/geometry"
	"github.com/bodgit/ringtext/rgb565"
	"github.com/bodgit/ringtext/text"
	"github.com/bodgit/ringtext/warp"
	"golang.org/x/image/draw"
)

// Pipeline owns the three buffers of one rendering pipeline. The buffers are
// allocated once and reused by every call to Render. A Pipeline is safe to
// share but renders are serialized; use one Pipeline per screen region to
// render in parallel.
type Pipeline struct {
	mu sync.Mutex

	cfg    Config
	geom   geometry.Geometry
	levels downsample.Levels
	text   *text.Rasterizer

	src        *bitmap.Bitmap
	dst        *bitmap.Bitmap
	rend       *rgb565.Image
	background *rgb565.Image

	logger *log.Logger
}

// New allocates a Pipeline for the configuration
func New(cfg Config, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	geom, err := geometry.ForDisplay(cfg.Display.Width, cfg.Display.Height, cfg.Geometry)
	if err != nil {
		return nil, err
	}

	levels, err := cfg.Levels()
	if err != nil {
		return nil, err
	}

	src, err := bitmap.New(cfg.Source.Width, cfg.Source.Height)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	dst, err := bitmap.New(geom.Size, geom.YEnd)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	r, err := text.New(cfg.Text)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	size := geom.RenderSize()

	logger.Printf("Geometry %s\n", geom)

	return &Pipeline{
		cfg:    cfg,
		geom:   geom,
		levels: levels,
		text:   r,
		src:    src,
		dst:    dst,
		rend:   rgb565.NewImage(image.Rect(0, 0, size, size)),
		logger: logger,
	}, nil
}

// Config returns the configuration the Pipeline was created with
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Geometry returns the derived ring geometry
func (p *Pipeline) Geometry() geometry.Geometry {
	return p.geom
}

// SetBackground sets an image that is scaled to fit and drawn behind the
// ring on every render. Passing nil removes it.
func (p *Pipeline) SetBackground(m image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m == nil {
		p.background = nil
		return
	}

	bg := rgb565.NewImage(p.rend.Bounds())
	draw.ApproxBiLinear.Scale(bg, bg.Bounds(), m, m.Bounds(), draw.Src, nil)
	p.background = bg
}

// Reset clears all three buffers
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.src.Clear()
	p.dst.Clear()
	p.rend.Fill(0)
}

func (p *Pipeline) clearRender() {
	if p.background != nil {
		copy(p.rend.Pix, p.background.Pix)
		return
	}
	p.rend.Fill(0)
}

// Render draws lines around the ring. The returned raster belongs to the
// Pipeline and is overwritten by the next call to Render.
func (p *Pipeline) Render(lines []string) (*rgb565.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.render(lines)
}

func (p *Pipeline) render(lines []string) (*rgb565.Image, error) {
	t0 := time.Now()
	if err := p.text.Draw(p.src, lines); err != nil {
		return nil, err
	}

	t1 := time.Now()
	warped := warp.Transform(p.dst, p.src, p.geom)

	t2 := time.Now()
	p.clearRender()
	written := downsample.Reduce(p.rend, p.dst, p.levels)

	t3 := time.Now()
	p.logger.Printf("Rendered %d lines: text %v, warp %v (%d pixels), downsample %v (%d pixels), total %v\n",
		len(lines), t1.Sub(t0), t2.Sub(t1), warped, t3.Sub(t2), written, t3.Sub(t0))

	return p.rend, nil
}

// Show renders lines and blits the result centered on the display
func (p *Pipeline) Show(b display.Blitter, lines []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, err := p.render(lines)
	if err != nil {
		return err
	}

	pt := display.Center(p.cfg.Display.Width, p.cfg.Display.Height, m.Bounds())
	return b.Blit(pt.X, pt.Y, m)
}

// Close releases the resources held by the Pipeline
func (p *Pipeline) Close() error {
	return p.text.Close()
}
