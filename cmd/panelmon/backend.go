// cmd/panelmon/backend.go
package main

import (
	"fmt"

	cfg "github.com/tamzrod/panelmon/internal/config"
	"github.com/tamzrod/panelmon/internal/raster/canvas"
	"github.com/tamzrod/panelmon/internal/raster/term"
	"github.com/tamzrod/panelmon/internal/render"
)

// backend is the opened display.
// tm is set only for the terminal backend (key handling).
type backend struct {
	r     render.Rasterizer
	tm    *term.Term
	close func()
}

func openBackend(d cfg.DisplayConfig) (backend, error) {
	switch d.Backend {
	case "terminal":
		tm, err := term.Open()
		if err != nil {
			return backend{}, fmt.Errorf("terminal: %w", err)
		}
		return backend{r: tm, tm: tm, close: tm.Close}, nil

	case "image":
		c, err := canvas.New(render.ScreenW, render.ScreenH, d.ImagePath)
		if err != nil {
			return backend{}, err
		}
		return backend{r: c, close: func() {}}, nil

	default:
		return backend{}, fmt.Errorf("unknown display backend %q", d.Backend)
	}
}
