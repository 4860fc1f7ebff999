// internal/raster/canvas/canvas.go
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tamzrod/panelmon/internal/render"
)

// Canvas is an in-memory panel framebuffer.
// It implements render.Rasterizer and render.Presenter.
//
// Present writes the frame as a PNG when a path is configured.
// Not safe for concurrent use; the render loop owns it.
type Canvas struct {
	img  *image.RGBA
	path string

	// glyph scratch at size 1, scaled into each cell
	glyph *image.RGBA

	presents int
}

// New allocates a w x h canvas. path may be empty (no snapshots).
func New(w, h int, path string) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas: invalid size %dx%d", w, h)
	}
	face := basicfont.Face7x13
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		path:  path,
		glyph: image.NewRGBA(image.Rect(0, 0, face.Advance, face.Height)),
	}, nil
}

// Image exposes the framebuffer (read-only by convention).
func (c *Canvas) Image() *image.RGBA { return c.img }

// Presents returns how many frames were presented.
func (c *Canvas) Presents() int { return c.presents }

func rgba(col render.Color) color.RGBA {
	r, g, b := col.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// FillRect paints a solid rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col render.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(rgba(col)), image.Point{}, draw.Src)
}

// DrawRect outlines a rectangle one pixel wide.
func (c *Canvas) DrawRect(x, y, w, h int, col render.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.FillRect(x, y, w, 1, col)
	c.FillRect(x, y+h-1, w, 1, col)
	c.FillRect(x, y, 1, h, col)
	c.FillRect(x+w-1, y, 1, h, col)
}

// DrawText paints text cell by cell. Each cell is CharW*size by
// CharH*size pixels filled with bg, the glyph scaled into it.
func (c *Canvas) DrawText(x, y int, text string, fg, bg render.Color, size int) {
	if size < 1 {
		size = 1
	}
	cw, ch := render.CharW*size, render.CharH*size

	face := basicfont.Face7x13
	fgU := image.NewUniform(rgba(fg))
	bgU := image.NewUniform(rgba(bg))

	d := &font.Drawer{Dst: c.glyph, Src: fgU, Face: face}

	for i := 0; i < len(text); i++ {
		cell := image.Rect(x+i*cw, y, x+(i+1)*cw, y+ch)
		if !cell.Overlaps(c.img.Bounds()) {
			continue
		}

		draw.Draw(c.glyph, c.glyph.Bounds(), bgU, image.Point{}, draw.Src)
		d.Dot = fixed.P(0, face.Ascent)
		d.DrawString(string(text[i]))

		draw.NearestNeighbor.Scale(c.img, cell, c.glyph, c.glyph.Bounds(), draw.Src, nil)
	}
}

// Present snapshots the frame to the configured path.
// The file is written to a temp name and renamed into place.
func (c *Canvas) Present() error {
	c.presents++
	if c.path == "" {
		return nil
	}

	dir := filepath.Dir(c.path)
	f, err := os.CreateTemp(dir, ".panel-*.png")
	if err != nil {
		return fmt.Errorf("canvas: snapshot: %w", err)
	}
	tmp := f.Name()

	if err := png.Encode(f, c.img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("canvas: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("canvas: snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("canvas: snapshot: %w", err)
	}
	return nil
}
