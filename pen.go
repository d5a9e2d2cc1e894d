package vellum

import "honnef.co/go/curve"

// Anchor is one on-curve point of an editable path. CIn and COut are the
// incoming and outgoing cubic control points, in absolute coordinates. A
// corner anchor has both controls sitting on P.
type Anchor struct {
	P    curve.Point
	CIn  curve.Point
	COut curve.Point
}

// CornerAnchor returns an anchor with both control points collapsed onto p,
// producing a straight corner. Click-without-drag in a pen tool makes these.
func CornerAnchor(p curve.Point) Anchor {
	return Anchor{P: p, CIn: p, COut: p}
}

// SymmetricAnchor returns an anchor at p whose outgoing control sits at
// cout and whose incoming control mirrors it about p. Click-and-drag in a
// pen tool makes these.
func SymmetricAnchor(p, cout curve.Point) Anchor {
	return Anchor{P: p, CIn: p.Translate(p.Sub(cout)), COut: cout}
}

// ControlSide selects one of an anchor's two control points.
type ControlSide uint8

const (
	ControlIn ControlSide = iota
	ControlOut
)

// PenPath is an editable bezier path: a sequence of anchors, optionally
// closed back to the first. It is the editing-time form of an object's path
// data; EncodePath and DecodePath convert to and from the stored string.
type PenPath struct {
	Anchors []Anchor
	Closed  bool
}

// MoveAnchor translates the anchor and both its control points by the same
// delta, keeping the curve shape around the anchor intact.
func (p *PenPath) MoveAnchor(i int, to curve.Point) {
	if i < 0 || i >= len(p.Anchors) {
		return
	}
	a := &p.Anchors[i]
	d := to.Sub(a.P)
	a.P = to
	a.CIn = a.CIn.Translate(d)
	a.COut = a.COut.Translate(d)
}

// MoveControl moves one control point of the anchor. With mirror, the
// opposite control is reflected about the anchor so the pair stays
// symmetric, which keeps the curve smooth through the anchor.
func (p *PenPath) MoveControl(i int, side ControlSide, to curve.Point, mirror bool) {
	if i < 0 || i >= len(p.Anchors) {
		return
	}
	a := &p.Anchors[i]
	reflected := a.P.Translate(a.P.Sub(to))
	if side == ControlIn {
		a.CIn = to
		if mirror {
			a.COut = reflected
		}
		return
	}
	a.COut = to
	if mirror {
		a.CIn = reflected
	}
}

// NearFirstAnchor reports whether pt lies within radius of the path's first
// anchor. Pen tools use it to decide when a click should close the path
// instead of adding an anchor.
func NearFirstAnchor(p *PenPath, pt curve.Point, radius float64) bool {
	if len(p.Anchors) == 0 {
		return false
	}
	return p.Anchors[0].P.Distance(pt) <= radius
}

// BezPath lowers the editable path to a drawable cubic path. Consecutive
// anchors become one cubic segment from COut of the first to CIn of the
// second; closing adds the segment back to the first anchor.
func (p *PenPath) BezPath() curve.BezPath {
	if len(p.Anchors) == 0 {
		return nil
	}
	path := curve.BezPath{curve.MoveTo(p.Anchors[0].P)}
	for i := 1; i < len(p.Anchors); i++ {
		path = append(path, curve.CubicTo(p.Anchors[i-1].COut, p.Anchors[i].CIn, p.Anchors[i].P))
	}
	if p.Closed {
		if n := len(p.Anchors); n > 1 {
			path = append(path, curve.CubicTo(p.Anchors[n-1].COut, p.Anchors[0].CIn, p.Anchors[0].P))
		}
		path = append(path, curve.ClosePath())
	}
	return path
}

// Bounds returns the path's control box: the axis-aligned box over all
// anchors and control points. It always contains the drawn curve and is
// cheap enough to recompute on every edit.
func (p *PenPath) Bounds() curve.Rect {
	if len(p.Anchors) == 0 {
		return curve.Rect{}
	}
	return p.BezPath().ControlBox()
}
