package vellum

// defaultFill is the fill color given to objects created without one.
var defaultFill = Hex("#4facfe")

// targetIDs merges the singular and plural id parameters commands accept.
func targetIDs(ids []ID, id ID) []ID {
	if len(ids) == 0 && id != 0 {
		return []ID{id}
	}
	return ids
}

// liveIDs filters ids down to those present in the document. Bulk commands
// process each ID independently, so one unknown ID skips that entry rather
// than aborting the rest.
func liveIDs(d *Document, ids []ID) []ID {
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if d.Find(id) != nil {
			out = append(out, id)
		}
	}
	return out
}

func valueOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

// AddObject creates one object of the given kind ("Rectangle" when empty).
// Properties not present in the patch take the engine's creation defaults.
// Commits "Add Object" by default.
type AddObject struct {
	saveUndo
	Kind string `json:"kind"`
	Patch
}

func (c AddObject) run(e *Engine) Result {
	kind := KindRectangle
	if c.Kind != "" {
		var err error
		if kind, err = ParseKind(c.Kind); err != nil {
			return Result{Err: err}
		}
	}
	e.stage(c.commit(true), "Add Object")
	obj := e.doc.NewObject(kind,
		valueOr(c.X, 100), valueOr(c.Y, 100),
		valueOr(c.Width, 100), valueOr(c.Height, 100),
		defaultFill)
	c.applyTo(obj)
	return Result{ID: obj.ID}
}

// UpdateObject patches object properties, one id or a list patched
// identically. By default no snapshot is taken: interactive gestures
// stream updates every frame and the frontend commits once at gesture end
// by setting save_undo.
type UpdateObject struct {
	saveUndo
	ID  ID   `json:"id,omitempty"`
	IDs []ID `json:"ids,omitempty"`
	Patch
}

func (c UpdateObject) run(e *Engine) Result {
	ids := liveIDs(e.doc, targetIDs(c.IDs, c.ID))
	if len(ids) == 0 {
		return Result{Err: ErrNotFound}
	}
	e.stage(c.commit(false), "Update Object")
	for _, id := range ids {
		c.applyTo(e.doc.Find(id))
	}
	if len(ids) == 1 {
		return Result{ID: ids[0]}
	}
	return Result{IDs: ids}
}

// DeleteObjects removes objects and, for groups, their whole subtrees.
// Each ID is handled independently: unknown ones are skipped and the
// command only fails when nothing could be deleted at all. Commits
// "Delete Object" by default.
type DeleteObjects struct {
	saveUndo
	IDs []ID `json:"ids"`
	ID  ID   `json:"id,omitempty"`
}

func (c DeleteObjects) run(e *Engine) Result {
	ids := liveIDs(e.doc, targetIDs(c.IDs, c.ID))
	if len(ids) == 0 {
		return Result{Err: ErrNotFound}
	}
	e.stage(c.commit(true), "Delete Object")
	for _, id := range ids {
		e.doc.Remove(id)
	}
	return Result{IDs: ids}
}

// DuplicateObjects deep-copies objects, skipping unknown IDs. Each copy
// lands just above its source in z-order, offset by (10, 10) and named
// "<source> copy", and the copies become the selection. Commits
// "Duplicate Object" by default.
type DuplicateObjects struct {
	saveUndo
	IDs []ID `json:"ids"`
	ID  ID   `json:"id,omitempty"`
}

func (c DuplicateObjects) run(e *Engine) Result {
	ids := liveIDs(e.doc, targetIDs(c.IDs, c.ID))
	if len(ids) == 0 {
		return Result{Err: ErrNotFound}
	}
	e.stage(c.commit(true), "Duplicate Object")
	dups := make([]ID, 0, len(ids))
	for _, id := range ids {
		if dup, ok := e.doc.Duplicate(id); ok {
			dups = append(dups, dup)
		}
	}
	e.doc.SetSelection(dups)
	return Result{IDs: dups, Selected: e.doc.Selection}
}

// ClearDocument removes every object, clears the selection and resets ID
// allocation, so the next object is ID 1 again. The artboard, guides,
// viewport and clipping flag survive. Commits "Clear Document" by default.
type ClearDocument struct {
	saveUndo
}

func (c ClearDocument) run(e *Engine) Result {
	e.stage(c.commit(true), "Clear Document")
	e.doc.Objects = make(map[ID]*SceneObject)
	e.doc.Order = nil
	e.doc.Selection = nil
	e.doc.NextID = 1
	return Result{}
}
