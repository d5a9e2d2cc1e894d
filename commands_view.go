package vellum

import "fmt"

func artboardSnapshot(a Artboard) *Artboard {
	out := a
	out.Guides = append([]Guide(nil), a.Guides...)
	return &out
}

// SetArtboard changes the artboard's size or background color. Absent
// fields keep their value; sizes are floored at 1. Commits "Set Artboard"
// by default.
type SetArtboard struct {
	saveUndo
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	Background *Color   `json:"background,omitempty"`
}

func (c SetArtboard) run(e *Engine) Result {
	e.stage(c.commit(true), "Set Artboard")
	ab := &e.doc.Artboard
	if c.Width != nil {
		ab.Width = maxf(*c.Width, 1)
	}
	if c.Height != nil {
		ab.Height = maxf(*c.Height, 1)
	}
	if c.Background != nil {
		ab.Background = *c.Background
	}
	return Result{Artboard: artboardSnapshot(*ab)}
}

// SetClipping turns artboard clipping on or off: whether content outside
// the artboard is drawn. Commits "Set Clipping" by default.
type SetClipping struct {
	saveUndo
	Enabled bool `json:"enabled"`
}

func (c SetClipping) run(e *Engine) Result {
	e.stage(c.commit(true), "Set Clipping")
	e.doc.Clip = c.Enabled
	return Result{}
}

// SetViewport pans or zooms the camera. Absent fields keep their value and
// zoom is clamped to at least 0.01. The viewport is not document state, so
// this is never a history entry.
type SetViewport struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Zoom *float64 `json:"zoom,omitempty"`
}

func (c SetViewport) run(e *Engine) Result {
	vp := &e.doc.Viewport
	if c.X != nil {
		vp.X = *c.X
	}
	if c.Y != nil {
		vp.Y = *c.Y
	}
	if c.Zoom != nil {
		vp.Zoom = maxf(*c.Zoom, 0.01)
	}
	return Result{}
}

// AddGuide drops a ruler guide on the artboard. Commits "Add Guide" by
// default.
type AddGuide struct {
	saveUndo
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
}

func (c AddGuide) run(e *Engine) Result {
	if c.Orientation != Horizontal && c.Orientation != Vertical {
		return Result{Err: fmt.Errorf("unknown guide orientation %q", c.Orientation)}
	}
	e.stage(c.commit(true), "Add Guide")
	e.doc.Artboard.Guides = append(e.doc.Artboard.Guides,
		Guide{Orientation: c.Orientation, Position: c.Position})
	return Result{}
}

// ClearGuides removes every guide. With no guides present it succeeds
// without touching history; otherwise commits "Clear Guides" by default.
type ClearGuides struct {
	saveUndo
}

func (c ClearGuides) run(e *Engine) Result {
	if len(e.doc.Artboard.Guides) == 0 {
		return Result{}
	}
	e.stage(c.commit(true), "Clear Guides")
	e.doc.Artboard.Guides = nil
	return Result{}
}
