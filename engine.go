package vellum

import (
	"honnef.co/go/curve"
)

// Engine owns one document and everything needed to edit it: the undo
// history, the brush registry and the asset store. Commands are the only
// mutation path that records history.
//
// An Engine is single-threaded: confine each instance to one goroutine, or
// serialize access externally. The registries it references are themselves
// safe to share between engines.
type Engine struct {
	doc     *Document
	history *history

	// pending holds the document as it was before the oldest uncommitted
	// mutation, so the next committed entry covers the whole gesture.
	pending *Document

	brushes    *BrushRegistry
	assets     *AssetStore
	snapRadius float64
}

// NewEngine creates an engine with an empty document.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Engine{
		doc:        NewDocument(cfg.artboard),
		history:    newHistory(cfg.historyLimit),
		brushes:    cfg.brushes,
		assets:     cfg.assets,
		snapRadius: cfg.snapRadius,
	}
	if e.brushes == nil {
		e.brushes = NewBrushRegistry()
	}
	if e.assets == nil {
		e.assets = NewAssetStore()
	}
	return e
}

// Do runs one command against the engine's document and returns its
// result. Failures come back in the result, never as panics.
func (e *Engine) Do(cmd Command) Result {
	if cmd == nil {
		return Result{Err: ErrUnknownAction}
	}
	return cmd.run(e)
}

// commit pushes one history entry for the labelled change. Its snapshot is
// the state at the last commit boundary: either what an earlier suppressed
// mutation parked, or the document right now. Command implementations call
// this before they mutate.
func (e *Engine) commit(label string) {
	snap := e.doc
	if e.pending != nil {
		snap = e.pending
	}
	e.history.Commit(label, snap)
	e.pending = nil
	Logger().Debug("history commit", "label", label, "depth", len(e.history.undo))
}

// stage is commit for commands with a save_undo switch. A suppressed
// snapshot parks the pre-change state instead, so a drag streamed as many
// save_undo=false updates and one final commit costs one undo step that
// rolls the whole gesture back.
func (e *Engine) stage(save bool, label string) {
	if save {
		e.commit(label)
		return
	}
	if e.pending == nil {
		e.pending = e.doc.clone()
	}
}

// Undo reverts the most recent change. The camera stays where it is; only
// document state rolls back. Returns false with the history empty.
func (e *Engine) Undo() bool {
	vp := e.doc.Viewport
	doc, label, ok := e.history.Undo(e.doc)
	if !ok {
		return false
	}
	e.doc = doc
	e.doc.Viewport = vp
	e.pending = nil
	Logger().Debug("undo", "label", label)
	return true
}

// Redo re-applies the most recently undone change.
func (e *Engine) Redo() bool {
	vp := e.doc.Viewport
	doc, label, ok := e.history.Redo(e.doc)
	if !ok {
		return false
	}
	e.doc = doc
	e.doc.Viewport = vp
	e.pending = nil
	Logger().Debug("redo", "label", label)
	return true
}

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// HistoryLabels returns the undo stack's labels, oldest first.
func (e *Engine) HistoryLabels() []string { return e.history.Labels() }

// Doc exposes the live document for reading. Mutating it directly
// bypasses history; use commands for anything undo should see.
func (e *Engine) Doc() *Document { return e.doc }

// Brushes returns the engine's brush registry.
func (e *Engine) Brushes() *BrushRegistry { return e.brushes }

// Assets returns the engine's asset store.
func (e *Engine) Assets() *AssetStore { return e.assets }

// SelectedIDs returns a copy of the selection in selection order.
func (e *Engine) SelectedIDs() []ID {
	return append([]ID(nil), e.doc.Selection...)
}

// SelectPoint performs a click selection at a world-space point, topmost
// hit first and locked objects protected, and returns the resulting
// selection.
func (e *Engine) SelectPoint(x, y float64, additive bool) []ID {
	return selectPoint(e.doc, x, y, additive, true, false)
}

// SelectRect performs a marquee selection and returns the resulting
// selection. Locked objects are never marqueed.
func (e *Engine) SelectRect(x1, y1, x2, y2 float64, additive bool) []ID {
	return selectRect(e.doc, x1, y1, x2, y2, additive, false)
}

// HitTestHandles checks a world-space point against the active object's
// manipulation handles at the current zoom. Nil means no handle was hit.
func (e *Engine) HitTestHandles(x, y float64) *HandleHit {
	return hitTestHandles(e.doc, x, y, e.doc.Viewport.Zoom)
}

// SetViewport pans and zooms the camera. Zoom is clamped to at least 0.01.
// Never a history entry.
func (e *Engine) SetViewport(x, y, zoom float64) {
	e.doc.Viewport = Viewport{X: x, Y: y, Zoom: maxf(zoom, 0.01)}
}

// ShouldClosePath reports whether a pointer at the world-space position is
// close enough to the path's first anchor to close it. The snap radius is
// a screen distance, so it shrinks in world units as the zoom grows.
func (e *Engine) ShouldClosePath(p *PenPath, x, y float64) bool {
	zoom := e.doc.Viewport.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return NearFirstAnchor(p, curve.Pt(x, y), e.snapRadius/zoom)
}

// RegisterImage stores pixels in the asset store and returns the key, a
// fresh UUID when key is empty. Image objects and image brush tips refer
// to assets by this key.
func (e *Engine) RegisterImage(key string, w, h int, pixels []byte) string {
	return e.assets.Register(key, w, h, pixels)
}
