package vellum

import (
	"encoding/json"
	"fmt"

	"honnef.co/go/curve"
)

// Handle identifies one of the nine manipulation handles drawn around the
// last-selected object: eight on the box plus a rotation handle floating
// above the top edge.
type Handle uint8

const (
	HandleTopLeft Handle = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
	HandleRotate
)

var handleNames = [...]string{
	HandleTopLeft:     "TopLeft",
	HandleTop:         "Top",
	HandleTopRight:    "TopRight",
	HandleRight:       "Right",
	HandleBottomRight: "BottomRight",
	HandleBottom:      "Bottom",
	HandleBottomLeft:  "BottomLeft",
	HandleLeft:        "Left",
	HandleRotate:      "Rotate",
}

func (h Handle) String() string {
	if int(h) < len(handleNames) {
		return handleNames[h]
	}
	return "Unknown"
}

// ParseHandle converts a handle name such as "TopLeft" or "Rotate".
func ParseHandle(s string) (Handle, error) {
	for i, name := range handleNames {
		if name == s {
			return Handle(i), nil
		}
	}
	return 0, fmt.Errorf("unknown handle %q", s)
}

func (h Handle) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Handle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHandle(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// IsCorner reports whether the handle is one of the four box corners.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight:
		return true
	}
	return false
}

// HandleHit names the object and handle found under the pointer.
type HandleHit struct {
	ID     ID     `json:"object_id"`
	Handle Handle `json:"handle"`
}

// Handle geometry in screen units. Both shrink in world space as the zoom
// grows so handles keep a constant on-screen size.
const (
	handleRadius       = 6.0
	rotateHandleOffset = 30.0
)

// handlePoint returns the handle's position in the object's local space.
func handlePoint(o *SceneObject, h Handle, zoom float64) curve.Point {
	w, ht := o.Width, o.Height
	switch h {
	case HandleTopLeft:
		return curve.Pt(0, 0)
	case HandleTop:
		return curve.Pt(w/2, 0)
	case HandleTopRight:
		return curve.Pt(w, 0)
	case HandleRight:
		return curve.Pt(w, ht/2)
	case HandleBottomRight:
		return curve.Pt(w, ht)
	case HandleBottom:
		return curve.Pt(w/2, ht)
	case HandleBottomLeft:
		return curve.Pt(0, ht)
	case HandleLeft:
		return curve.Pt(0, ht/2)
	case HandleRotate:
		return curve.Pt(w/2, -rotateHandleOffset/zoom)
	}
	return curve.Pt(0, 0)
}

// hitTestHandles checks the pointer against the handles of the last-selected
// object. Handles are only active on that object; earlier selection entries
// never grow handles. Returns nil when nothing is hit.
func hitTestHandles(d *Document, wx, wy, zoom float64) *HandleHit {
	if len(d.Selection) == 0 {
		return nil
	}
	if zoom <= 0 {
		zoom = 1
	}
	id := d.Selection[len(d.Selection)-1]
	obj := d.Find(id)
	if obj == nil {
		return nil
	}
	local := worldToLocal(obj, curve.Pt(wx, wy))
	radius := handleRadius / zoom
	for h := HandleTopLeft; h <= HandleRotate; h++ {
		if local.Sub(handlePoint(obj, h, zoom)).Hypot() <= radius {
			return &HandleHit{ID: id, Handle: h}
		}
	}
	return nil
}
