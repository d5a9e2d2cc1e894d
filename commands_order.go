package vellum

import (
	"errors"

	"honnef.co/go/curve"
)

func boolPtr(b bool) *bool { return &b }

// SelectObjects sets the selection to the given IDs, or with additive
// merges them in shift-click style: already-selected IDs toggle off,
// new ones append. Unknown IDs are skipped; the command fails only when
// every requested ID is unknown. An empty non-additive request clears
// the selection. Selection changes are never history entries.
type SelectObjects struct {
	IDs      []ID `json:"ids"`
	ID       ID   `json:"id,omitempty"`
	Additive bool `json:"additive,omitempty"`
}

func (c SelectObjects) run(e *Engine) Result {
	ids := targetIDs(c.IDs, c.ID)
	live := liveIDs(e.doc, ids)
	if len(ids) > 0 && len(live) == 0 {
		return Result{Err: ErrNotFound}
	}
	if c.Additive {
		for _, id := range live {
			e.doc.ToggleSelection(id)
		}
	} else {
		e.doc.SetSelection(live)
	}
	return Result{Selected: e.doc.Selection}
}

// SelectPoint performs a click selection at a world-space point. The
// topmost hit wins unless topmost_only=false collects everything under
// the cursor. Locked objects are protected from picking unless
// ignore_locked lifts the lock.
type SelectPoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Additive     bool    `json:"additive,omitempty"`
	TopmostOnly  *bool   `json:"topmost_only,omitempty"`
	IgnoreLocked bool    `json:"ignore_locked,omitempty"`
}

func (c SelectPoint) run(e *Engine) Result {
	topmost := true
	if c.TopmostOnly != nil {
		topmost = *c.TopmostOnly
	}
	return Result{Selected: selectPoint(e.doc, c.X, c.Y, c.Additive, topmost, c.IgnoreLocked)}
}

// SelectRect performs a marquee selection over the world-space rectangle
// spanned by two corners.
type SelectRect struct {
	X1           float64 `json:"x1"`
	Y1           float64 `json:"y1"`
	X2           float64 `json:"x2"`
	Y2           float64 `json:"y2"`
	Additive     bool    `json:"additive,omitempty"`
	IgnoreLocked bool    `json:"ignore_locked,omitempty"`
}

func (c SelectRect) run(e *Engine) Result {
	return Result{Selected: selectRect(e.doc, c.X1, c.Y1, c.X2, c.Y2, c.Additive, c.IgnoreLocked)}
}

// HitTestHandles checks a world-space point against the active object's
// manipulation handles at the current viewport zoom. A miss is a success
// with no hit payload.
type HitTestHandles struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c HitTestHandles) run(e *Engine) Result {
	return Result{Hit: hitTestHandles(e.doc, c.X, c.Y, e.doc.Viewport.Zoom)}
}

// MoveToFront raises the object to the top of its z-order. If it is
// already on top the command succeeds without touching history.
type MoveToFront struct {
	saveUndo
	ID ID `json:"id"`
}

func (c MoveToFront) run(e *Engine) Result {
	sibs := e.doc.siblings(c.ID)
	if sibs == nil {
		return Result{Err: ErrNotFound}
	}
	if indexOf(*sibs, c.ID) == len(*sibs)-1 {
		return Result{ID: c.ID, Changed: boolPtr(false), Message: "Already at front"}
	}
	e.stage(c.commit(true), "Move to Front")
	e.doc.MoveToFront(c.ID)
	return Result{ID: c.ID, Changed: boolPtr(true)}
}

// MoveToBack lowers the object to the bottom of its z-order.
type MoveToBack struct {
	saveUndo
	ID ID `json:"id"`
}

func (c MoveToBack) run(e *Engine) Result {
	sibs := e.doc.siblings(c.ID)
	if sibs == nil {
		return Result{Err: ErrNotFound}
	}
	if indexOf(*sibs, c.ID) == 0 {
		return Result{ID: c.ID, Changed: boolPtr(false), Message: "Already at back"}
	}
	e.stage(c.commit(true), "Move to Back")
	e.doc.MoveToBack(c.ID)
	return Result{ID: c.ID, Changed: boolPtr(true)}
}

// MoveForward swaps the object with the sibling above it.
type MoveForward struct {
	saveUndo
	ID ID `json:"id"`
}

func (c MoveForward) run(e *Engine) Result {
	sibs := e.doc.siblings(c.ID)
	if sibs == nil {
		return Result{Err: ErrNotFound}
	}
	if indexOf(*sibs, c.ID) == len(*sibs)-1 {
		return Result{ID: c.ID, Changed: boolPtr(false), Message: "Already at front"}
	}
	e.stage(c.commit(true), "Move Forward")
	e.doc.MoveForward(c.ID)
	return Result{ID: c.ID, Changed: boolPtr(true)}
}

// MoveBackward swaps the object with the sibling below it.
type MoveBackward struct {
	saveUndo
	ID ID `json:"id"`
}

func (c MoveBackward) run(e *Engine) Result {
	sibs := e.doc.siblings(c.ID)
	if sibs == nil {
		return Result{Err: ErrNotFound}
	}
	if indexOf(*sibs, c.ID) == 0 {
		return Result{ID: c.ID, Changed: boolPtr(false), Message: "Already at back"}
	}
	e.stage(c.commit(true), "Move Backward")
	e.doc.MoveBackward(c.ID)
	return Result{ID: c.ID, Changed: boolPtr(true)}
}

// GroupObjects wraps root-level objects in a new group. The group's box is
// the union of the members' world bounds, members keep their stacking
// order and are rebased into the group's local space, and the group lands
// at the topmost member's z-position. The group becomes the selection.
// Commits "Group Objects" by default.
type GroupObjects struct {
	saveUndo
	IDs []ID `json:"ids"`
}

func (c GroupObjects) run(e *Engine) Result {
	if len(c.IDs) < 2 {
		return Result{Err: errors.New("group needs at least two objects")}
	}
	members := make(map[ID]bool, len(c.IDs))
	for _, id := range c.IDs {
		if e.doc.Find(id) == nil {
			return Result{Err: ErrNotFound}
		}
		if indexOf(e.doc.Order, id) < 0 {
			return Result{Err: errors.New("group members must be at the document root")}
		}
		members[id] = true
	}
	e.stage(c.commit(true), "Group Objects")

	var bounds curve.Rect
	var children []ID
	for _, id := range e.doc.Order {
		if !members[id] {
			continue
		}
		b := worldBounds(e.doc.Find(id))
		if children == nil {
			bounds = b
		} else {
			bounds = bounds.Union(b)
		}
		children = append(children, id)
	}

	group := newObject(e.doc.allocID(), KindGroup,
		bounds.MinX(), bounds.MinY(), bounds.Width(), bounds.Height(), defaultFill)
	group.Children = children
	e.doc.Objects[group.ID] = group

	lastIdx := -1
	for i, id := range e.doc.Order {
		if members[id] {
			lastIdx = i
		}
	}
	newOrder := make([]ID, 0, len(e.doc.Order)-len(children)+1)
	for i, id := range e.doc.Order {
		if members[id] {
			if i == lastIdx {
				newOrder = append(newOrder, group.ID)
			}
			continue
		}
		newOrder = append(newOrder, id)
	}
	e.doc.Order = newOrder

	for _, id := range children {
		child := e.doc.Find(id)
		child.X -= group.X
		child.Y -= group.Y
	}
	e.doc.SetSelection([]ID{group.ID})
	return Result{ID: group.ID, Selected: e.doc.Selection}
}

// UngroupObjects dissolves a group. Children are baked back into their
// parent's space, keeping their drawn position and picking up the group's
// rotation, and are spliced into the z-order where the group sat. The
// children become the selection. Commits "Ungroup Objects" by default.
type UngroupObjects struct {
	saveUndo
	ID ID `json:"id"`
}

func (c UngroupObjects) run(e *Engine) Result {
	group := e.doc.Find(c.ID)
	if group == nil {
		return Result{Err: ErrNotFound}
	}
	if group.Kind != KindGroup {
		return Result{Err: errors.New("object is not a group")}
	}
	sibs := e.doc.siblings(c.ID)
	if sibs == nil {
		return Result{Err: ErrNotFound}
	}
	e.stage(c.commit(true), "Ungroup Objects")

	gt := worldTransform(group)
	children := append([]ID(nil), group.Children...)
	for _, id := range children {
		child := e.doc.Find(id)
		if child == nil {
			continue
		}
		wc := curve.Pt(child.X+child.Width/2, child.Y+child.Height/2).Transform(gt)
		child.X = wc.X - child.Width/2
		child.Y = wc.Y - child.Height/2
		child.Rotation += group.Rotation
	}

	idx := indexOf(*sibs, c.ID)
	spliced := make([]ID, 0, len(*sibs)-1+len(children))
	spliced = append(spliced, (*sibs)[:idx]...)
	spliced = append(spliced, children...)
	spliced = append(spliced, (*sibs)[idx+1:]...)
	*sibs = spliced

	delete(e.doc.Objects, c.ID)
	for _, obj := range e.doc.Objects {
		if obj.MaskID == c.ID {
			obj.MaskID = 0
		}
	}
	e.doc.SetSelection(children)
	return Result{IDs: children, Selected: e.doc.Selection}
}
