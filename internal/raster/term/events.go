// internal/raster/term/events.go
package term

import "github.com/gdamore/tcell/v2"

// IsQuit reports whether a key event asks to leave the panel.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// WatchKeys polls terminal events until the screen is finalized.
// quit is called once on the first quit key.
// Resizes trigger a full resync of the screen.
func (t *Term) WatchKeys(quit func()) {
	fired := false
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if IsQuit(ev) && !fired {
				fired = true
				quit()
			}
		}
	}
}
