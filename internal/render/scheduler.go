// internal/render/scheduler.go
package render

import (
	"errors"
	"fmt"

	"github.com/tamzrod/panelmon/internal/fields"
)

// FieldView is what the scheduler needs from the field store.
type FieldView interface {
	Value(id fields.ID) string
	Percent(id fields.ID) int
	Changed(g fields.GroupID) bool
	Commit(g fields.GroupID)
}

// Pass describes one render pass.
type Pass struct {
	Forced  bool
	Redrawn []fields.GroupID
}

// Scheduler repaints only the regions whose fields changed since the last
// pass. The first pass is forced and also paints the static chrome.
type Scheduler struct {
	view      FieldView
	r         Rasterizer
	forceFull bool
}

// NewScheduler builds a scheduler with the one-shot full redraw armed.
func NewScheduler(view FieldView, r Rasterizer) (*Scheduler, error) {
	if view == nil {
		return nil, errors.New("render: field view required")
	}
	if r == nil {
		return nil, errors.New("render: rasterizer required")
	}
	return &Scheduler{view: view, r: r, forceFull: true}, nil
}

// Flush runs one render pass.
//
// A dirty group is cleared, repainted from current values and committed as
// a unit. Clean groups issue no drawing calls. The returned error only comes
// from Present; field state is committed regardless.
func (s *Scheduler) Flush() (Pass, error) {
	pass := Pass{Forced: s.forceFull}

	if pass.Forced {
		drawChrome(s.r)
	}

	for _, rg := range panelRegions {
		if !pass.Forced && !s.view.Changed(rg.group) {
			continue
		}

		c := rg.clear
		s.r.FillRect(c.X, c.Y, c.W, c.H, ColorBlack)
		rg.paint(s.r, s.view)
		s.view.Commit(rg.group)

		pass.Redrawn = append(pass.Redrawn, rg.group)
	}

	// one-shot: only ever true -> false
	s.forceFull = false

	if len(pass.Redrawn) == 0 && !pass.Forced {
		return pass, nil
	}

	if p, ok := s.r.(Presenter); ok {
		if err := p.Present(); err != nil {
			return pass, fmt.Errorf("render: present: %w", err)
		}
	}
	return pass, nil
}

// FlushCount adapts Flush to the ingest pipeline's flush hook.
func (s *Scheduler) FlushCount() (int, error) {
	pass, err := s.Flush()
	return len(pass.Redrawn), err
}

// ForceFullRedraw reports whether the next pass is still forced.
func (s *Scheduler) ForceFullRedraw() bool { return s.forceFull }
