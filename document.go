package vellum

import "fmt"

// Orientation distinguishes horizontal from vertical guides.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Guide is a ruler guide line on the artboard.
type Guide struct {
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
}

// Artboard is the document's canvas: its size, background color and guides.
type Artboard struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background Color   `json:"background"`
	Guides     []Guide `json:"guides,omitempty"`
}

// Viewport is the camera: a pan offset in world units and a zoom scale.
// The viewport is live UI state and is not captured in history snapshots.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Document is the complete editable state: artboard, viewport, the object
// arena with its root z-order, the selection and the clipping flag.
//
// All objects, including group children, live in the flat Objects arena
// keyed by ID. Z-order is defined purely by position in Order (and in each
// group's Children): later means drawn on top. Exactly one document is live
// per engine and it is always passed explicitly, never held in a global.
type Document struct {
	Artboard  Artboard
	Viewport  Viewport
	Objects   map[ID]*SceneObject
	Order     []ID
	Selection []ID
	Clip      bool
	NextID    ID
}

// NewDocument creates an empty document with the given artboard.
func NewDocument(artboard Artboard) *Document {
	return &Document{
		Artboard: artboard,
		Viewport: Viewport{Zoom: 1},
		Objects:  make(map[ID]*SceneObject),
		NextID:   1,
	}
}

// NewObject allocates an ID, creates an object with engine defaults and
// appends it to the top of the root z-order.
func (d *Document) NewObject(kind Kind, x, y, w, h float64, fill Color) *SceneObject {
	obj := newObject(d.allocID(), kind, x, y, w, h, fill)
	d.Objects[obj.ID] = obj
	d.Order = append(d.Order, obj.ID)
	return obj
}

func (d *Document) allocID() ID {
	id := d.NextID
	d.NextID++
	return id
}

// Find returns the object with the given ID, or nil. Lookup covers nested
// group children; the arena makes it O(1).
func (d *Document) Find(id ID) *SceneObject {
	return d.Objects[id]
}

// Count returns the number of objects in the document, including nested
// group children.
func (d *Document) Count() int { return len(d.Objects) }

// siblings returns the z-order slice the object lives in: the root order or
// some group's child list. Returns nil if the ID is not in the document.
func (d *Document) siblings(id ID) *[]ID {
	if indexOf(d.Order, id) >= 0 {
		return &d.Order
	}
	for _, obj := range d.Objects {
		if len(obj.Children) > 0 && indexOf(obj.Children, id) >= 0 {
			return &obj.Children
		}
	}
	return nil
}

func indexOf(list []ID, id ID) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

// subtreeIDs collects the object's ID and, recursively, all child IDs.
func (d *Document) subtreeIDs(id ID, out []ID) []ID {
	obj := d.Objects[id]
	if obj == nil {
		return out
	}
	out = append(out, id)
	for _, child := range obj.Children {
		out = d.subtreeIDs(child, out)
	}
	return out
}

// Remove deletes an object and its whole subtree, purges removed IDs from
// the selection and clears mask references that pointed into the subtree.
// Returns false if the ID is not present.
func (d *Document) Remove(id ID) bool {
	sibs := d.siblings(id)
	if sibs == nil {
		return false
	}
	idx := indexOf(*sibs, id)
	*sibs = append((*sibs)[:idx], (*sibs)[idx+1:]...)

	removed := make(map[ID]bool)
	for _, rid := range d.subtreeIDs(id, nil) {
		removed[rid] = true
		delete(d.Objects, rid)
	}

	d.Selection = filterIDs(d.Selection, func(sid ID) bool { return !removed[sid] })
	for _, obj := range d.Objects {
		if obj.MaskID != 0 && removed[obj.MaskID] {
			obj.MaskID = 0
		}
	}
	return true
}

func filterIDs(list []ID, keep func(ID) bool) []ID {
	out := list[:0]
	for _, id := range list {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}

// MoveToFront relocates the object to the end of its containing z-order.
// Returns (changed, found).
func (d *Document) MoveToFront(id ID) (bool, bool) {
	sibs := d.siblings(id)
	if sibs == nil {
		return false, false
	}
	idx := indexOf(*sibs, id)
	if idx == len(*sibs)-1 {
		return false, true
	}
	*sibs = append(append((*sibs)[:idx], (*sibs)[idx+1:]...), id)
	return true, true
}

// MoveToBack relocates the object to the start of its containing z-order.
func (d *Document) MoveToBack(id ID) (bool, bool) {
	sibs := d.siblings(id)
	if sibs == nil {
		return false, false
	}
	idx := indexOf(*sibs, id)
	if idx == 0 {
		return false, true
	}
	rest := append((*sibs)[:idx], (*sibs)[idx+1:]...)
	*sibs = append([]ID{id}, rest...)
	return true, true
}

// MoveForward swaps the object with its next sibling; no-op at the front.
func (d *Document) MoveForward(id ID) (bool, bool) {
	sibs := d.siblings(id)
	if sibs == nil {
		return false, false
	}
	idx := indexOf(*sibs, id)
	if idx >= len(*sibs)-1 {
		return false, true
	}
	(*sibs)[idx], (*sibs)[idx+1] = (*sibs)[idx+1], (*sibs)[idx]
	return true, true
}

// MoveBackward swaps the object with its previous sibling; no-op at the back.
func (d *Document) MoveBackward(id ID) (bool, bool) {
	sibs := d.siblings(id)
	if sibs == nil {
		return false, false
	}
	idx := indexOf(*sibs, id)
	if idx <= 0 {
		return false, true
	}
	(*sibs)[idx], (*sibs)[idx-1] = (*sibs)[idx-1], (*sibs)[idx]
	return true, true
}

// Duplicate deep-copies the object (recursively for groups), assigns fresh
// IDs throughout, offsets the copy by (10,10) and inserts it immediately
// above the original in z-order. The copy's ID is returned.
func (d *Document) Duplicate(id ID) (ID, bool) {
	src := d.Find(id)
	if src == nil {
		return 0, false
	}
	sibs := d.siblings(id)
	if sibs == nil {
		return 0, false
	}

	dup := d.duplicateSubtree(src)
	dup.X += 10
	dup.Y += 10
	dup.Name = fmt.Sprintf("%s copy", src.Name)

	idx := indexOf(*sibs, id)
	*sibs = append(*sibs, 0)
	copy((*sibs)[idx+2:], (*sibs)[idx+1:])
	(*sibs)[idx+1] = dup.ID
	return dup.ID, true
}

func (d *Document) duplicateSubtree(src *SceneObject) *SceneObject {
	dup := src.clone()
	dup.ID = d.allocID()
	d.Objects[dup.ID] = dup
	for i, childID := range src.Children {
		child := d.Objects[childID]
		if child == nil {
			continue
		}
		dup.Children[i] = d.duplicateSubtree(child).ID
	}
	return dup
}

// SetSelection replaces the selection, dropping IDs that are not present in
// the document.
func (d *Document) SetSelection(ids []ID) {
	sel := make([]ID, 0, len(ids))
	for _, id := range ids {
		if d.Objects[id] != nil && indexOf(sel, id) < 0 {
			sel = append(sel, id)
		}
	}
	d.Selection = sel
}

// ToggleSelection removes the ID if selected, otherwise appends it.
func (d *Document) ToggleSelection(id ID) {
	if d.Objects[id] == nil {
		return
	}
	if idx := indexOf(d.Selection, id); idx >= 0 {
		d.Selection = append(d.Selection[:idx], d.Selection[idx+1:]...)
		return
	}
	d.Selection = append(d.Selection, id)
}

// IsSelected reports whether the ID is in the selection set.
func (d *Document) IsSelected(id ID) bool {
	return indexOf(d.Selection, id) >= 0
}

// clone returns a deep copy of the document. Used for history snapshots.
func (d *Document) clone() *Document {
	out := &Document{
		Artboard:  d.Artboard,
		Viewport:  d.Viewport,
		Objects:   make(map[ID]*SceneObject, len(d.Objects)),
		Order:     append([]ID(nil), d.Order...),
		Selection: append([]ID(nil), d.Selection...),
		Clip:      d.Clip,
		NextID:    d.NextID,
	}
	out.Artboard.Guides = append([]Guide(nil), d.Artboard.Guides...)
	for id, obj := range d.Objects {
		out.Objects[id] = obj.clone()
	}
	return out
}
