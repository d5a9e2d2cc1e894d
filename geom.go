package vellum

import "honnef.co/go/curve"

// worldTransform returns the object's local-to-world transform. Local space
// has its origin at the object's top-left corner; rotation is applied about
// the box center.
func worldTransform(o *SceneObject) curve.Affine {
	return curve.Translate(curve.Vec(o.X, o.Y)).
		Mul(curve.RotateAbout(o.Rotation, curve.Pt(o.Width/2, o.Height/2)))
}

// worldToLocal maps a world-space point into the object's local space.
func worldToLocal(o *SceneObject, p curve.Point) curve.Point {
	return p.Transform(worldTransform(o).Invert())
}

// localToWorld maps a local-space point into world space.
func localToWorld(o *SceneObject, p curve.Point) curve.Point {
	return p.Transform(worldTransform(o))
}

// boxCenter returns the object's box center in world space. Rotation is
// about the center, so no transform is needed.
func boxCenter(o *SceneObject) curve.Point {
	return curve.Pt(o.X+o.Width/2, o.Y+o.Height/2)
}

// containsPoint reports whether a world-space point lies inside the
// object's (possibly rotated) box.
func containsPoint(o *SceneObject, wx, wy float64) bool {
	p := worldToLocal(o, curve.Pt(wx, wy))
	return p.X >= 0 && p.X <= o.Width && p.Y >= 0 && p.Y <= o.Height
}

// worldBounds returns the axis-aligned bounding box of the object's rotated
// box in world space.
func worldBounds(o *SceneObject) curve.Rect {
	aff := worldTransform(o)
	r := curve.NewRectFromPoints(
		curve.Pt(0, 0).Transform(aff),
		curve.Pt(o.Width, o.Height).Transform(aff),
	)
	r = r.UnionPoint(curve.Pt(o.Width, 0).Transform(aff))
	r = r.UnionPoint(curve.Pt(0, o.Height).Transform(aff))
	return r
}

func rectsOverlap(a, b curve.Rect) bool {
	return a.MinX() <= b.MaxX() && b.MinX() <= a.MaxX() &&
		a.MinY() <= b.MaxY() && b.MinY() <= a.MaxY()
}
