// internal/raster/term/term.go
package term

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/tamzrod/panelmon/internal/render"
)

// Panel pixels per terminal cell.
const (
	CellW = 4
	CellH = 8
)

// Term paints the panel onto a tcell screen.
// It implements render.Rasterizer and render.Presenter.
//
// Fills become colored blanks, outlines become box-drawing runes,
// and text is laid out one rune per cell starting at the mapped column.
type Term struct {
	screen tcell.Screen
}

// New wraps an initialized screen.
func New(screen tcell.Screen) (*Term, error) {
	if screen == nil {
		return nil, errors.New("term: screen required")
	}
	screen.SetStyle(tcell.StyleDefault.Background(color(render.ColorBlack)))
	screen.Clear()
	return &Term{screen: screen}, nil
}

// Open creates and initializes the terminal screen.
func Open() (*Term, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return New(s)
}

func color(c render.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cells maps a pixel span to a half-open cell span.
func cells(p, n, unit int) (int, int) {
	return p / unit, (p + n + unit - 1) / unit
}

// FillRect paints the covered cells with c as background.
func (t *Term) FillRect(x, y, w, h int, c render.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	st := tcell.StyleDefault.Background(color(c)).Foreground(color(c))
	cx0, cx1 := cells(x, w, CellW)
	cy0, cy1 := cells(y, h, CellH)
	for cy := cy0; cy < cy1; cy++ {
		for cx := cx0; cx < cx1; cx++ {
			t.screen.SetContent(cx, cy, ' ', nil, st)
		}
	}
}

// DrawRect outlines the covered cells with box-drawing runes,
// keeping the background already on screen.
func (t *Term) DrawRect(x, y, w, h int, c render.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	cx0, cx1 := cells(x, w, CellW)
	cy0, cy1 := cells(y, h, CellH)
	right, bottom := cx1-1, cy1-1

	put := func(cx, cy int, r rune) {
		_, _, st, _ := t.screen.GetContent(cx, cy)
		t.screen.SetContent(cx, cy, r, nil, st.Foreground(color(c)))
	}

	for cx := cx0 + 1; cx < right; cx++ {
		put(cx, cy0, tcell.RuneHLine)
		put(cx, bottom, tcell.RuneHLine)
	}
	for cy := cy0 + 1; cy < bottom; cy++ {
		put(cx0, cy, tcell.RuneVLine)
		put(right, cy, tcell.RuneVLine)
	}
	put(cx0, cy0, tcell.RuneULCorner)
	put(right, cy0, tcell.RuneURCorner)
	put(cx0, bottom, tcell.RuneLLCorner)
	put(right, bottom, tcell.RuneLRCorner)
}

// DrawText writes one rune per cell. Size is ignored; the terminal
// has a single glyph size.
func (t *Term) DrawText(x, y int, text string, fg, bg render.Color, size int) {
	st := tcell.StyleDefault.Foreground(color(fg)).Background(color(bg))
	if size > 1 {
		st = st.Bold(true)
	}
	cx, cy := x/CellW, y/CellH
	for i, r := range []rune(text) {
		t.screen.SetContent(cx+i, cy, r, nil, st)
	}
}

// Present flushes pending cells to the terminal.
func (t *Term) Present() error {
	t.screen.Show()
	return nil
}

// Close restores the terminal.
func (t *Term) Close() {
	t.screen.Fini()
}
