package vellum

// Undo reverts the most recent change, or several with steps. Stepping
// past the oldest snapshot stops there; changed reports whether anything
// was reverted at all.
type Undo struct {
	Steps int `json:"steps,omitempty"`
}

func (c Undo) run(e *Engine) Result {
	n := 0
	for i := 0; i < stepCount(c.Steps) && e.Undo(); i++ {
		n++
	}
	return Result{Changed: boolPtr(n > 0), Selected: e.doc.Selection}
}

// Redo re-applies undone changes, mirroring Undo.
type Redo struct {
	Steps int `json:"steps,omitempty"`
}

func (c Redo) run(e *Engine) Result {
	n := 0
	for i := 0; i < stepCount(c.Steps) && e.Redo(); i++ {
		n++
	}
	return Result{Changed: boolPtr(n > 0), Selected: e.doc.Selection}
}

func stepCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// GetHistory lists the undo stack's labels, oldest first.
type GetHistory struct{}

func (GetHistory) run(e *Engine) Result {
	return Result{History: e.history.Labels()}
}

// GetObjects returns the document's object tree as JSON, with group
// children nested under their parents in z-order.
type GetObjects struct{}

func (GetObjects) run(e *Engine) Result {
	data, err := e.ObjectsJSON()
	if err != nil {
		return Result{Err: err}
	}
	return Result{Objects: data}
}

// GetSelected returns the selected IDs in selection order.
type GetSelected struct{}

func (GetSelected) run(e *Engine) Result {
	return Result{Selected: append([]ID(nil), e.doc.Selection...)}
}

// GetArtboard returns the artboard's size, background and guides.
type GetArtboard struct{}

func (GetArtboard) run(e *Engine) Result {
	return Result{Artboard: artboardSnapshot(e.doc.Artboard)}
}
