// internal/render/rasterizer.go
package render

// Color is an RGB565 panel color.
type Color uint16

// RGB expands the color to 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Rasterizer is the pixel-painting capability the scheduler draws through.
// Geometry and colors are decided by the caller; the rasterizer only paints.
type Rasterizer interface {
	// DrawRect outlines a rectangle one pixel wide.
	DrawRect(x, y, w, h int, c Color)

	// FillRect paints a solid rectangle.
	FillRect(x, y, w, h int, c Color)

	// DrawText paints text with its top-left corner at (x, y).
	// Each character cell is CharW*size by CharH*size pixels on bg.
	DrawText(x, y int, text string, fg, bg Color, size int)
}

// Presenter is implemented by rasterizers that buffer output
// (terminal screens, image snapshots). Present is called after a pass
// that painted something.
type Presenter interface {
	Present() error
}

// Character cell of the panel font at size 1.
const (
	CharW = 6
	CharH = 8
)

// TextWidth returns the pixel width of text at the given size.
func TextWidth(text string, size int) int {
	return len(text) * CharW * size
}
