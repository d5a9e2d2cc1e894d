package vellum

import (
	"math"

	"honnef.co/go/curve"
)

// Box captures an object's placement for interactive transforms: the world
// position of its top-left corner, its size, and its rotation about the box
// center. Frontends grab the box once on mouse-down and feed it back on
// every drag step, so intermediate results never accumulate error.
type Box struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
}

// BoxOf returns the object's current placement.
func BoxOf(o *SceneObject) Box {
	return Box{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height, Rotation: o.Rotation}
}

func (b Box) transform() curve.Affine {
	return curve.Translate(curve.Vec(b.X, b.Y)).
		Mul(curve.RotateAbout(b.Rotation, curve.Pt(b.Width/2, b.Height/2)))
}

// anchorPoint returns the point opposite the handle, in the local space of a
// box with the given dimensions. That point stays fixed during a resize.
func anchorPoint(h Handle, w, ht float64) curve.Point {
	switch h {
	case HandleTopLeft:
		return curve.Pt(w, ht)
	case HandleTop:
		return curve.Pt(w/2, ht)
	case HandleTopRight:
		return curve.Pt(0, ht)
	case HandleRight:
		return curve.Pt(0, ht/2)
	case HandleBottomRight:
		return curve.Pt(0, 0)
	case HandleBottom:
		return curve.Pt(w/2, 0)
	case HandleBottomLeft:
		return curve.Pt(w, 0)
	case HandleLeft:
		return curve.Pt(w, ht/2)
	}
	return curve.Pt(w/2, ht/2)
}

// Resize computes the box after dragging a handle to the world-space pointer
// position (px, py). The handle opposite the dragged one is the anchor and
// keeps its world position exactly, whatever the rotation. Sizes are floored
// at 1 so a box can never collapse or invert. With keepAspect, corner drags
// preserve the initial aspect ratio, growing to whichever dimension the
// pointer asks more of.
//
// The initial box must be the placement at mouse-down, not the current one.
func Resize(initial Box, h Handle, px, py float64, keepAspect bool) Box {
	if h == HandleRotate {
		return initial
	}
	local := curve.Pt(px, py).Transform(initial.transform().Invert())
	w, ht := initial.Width, initial.Height

	newW, newH := w, ht
	switch h {
	case HandleTopLeft:
		newW, newH = w-local.X, ht-local.Y
	case HandleTop:
		newH = ht - local.Y
	case HandleTopRight:
		newW, newH = local.X, ht-local.Y
	case HandleRight:
		newW = local.X
	case HandleBottomRight:
		newW, newH = local.X, local.Y
	case HandleBottom:
		newH = local.Y
	case HandleBottomLeft:
		newW, newH = w-local.X, local.Y
	case HandleLeft:
		newW = w - local.X
	}

	if keepAspect && h.IsCorner() && ht > 0 {
		aspect := w / ht
		wFromH := newH * aspect
		if wFromH > newW {
			newW = wFromH
		} else {
			newH = newW / aspect
		}
	}
	newW = math.Max(newW, 1)
	newH = math.Max(newH, 1)

	anchorWorld := anchorPoint(h, w, ht).Transform(initial.transform())
	rotated := anchorPoint(h, newW, newH).
		Transform(curve.RotateAbout(initial.Rotation, curve.Pt(newW/2, newH/2)))
	return Box{
		X:        anchorWorld.X - rotated.X,
		Y:        anchorWorld.Y - rotated.Y,
		Width:    newW,
		Height:   newH,
		Rotation: initial.Rotation,
	}
}

// RotateBox rotates the box about its center by the angle the pointer swept
// from (sx, sy) to (px, py). Position and size are unchanged, so rotating
// back to the start angle restores the initial box.
func RotateBox(initial Box, sx, sy, px, py float64) Box {
	cx := initial.X + initial.Width/2
	cy := initial.Y + initial.Height/2
	start := math.Atan2(sy-cy, sx-cx)
	cur := math.Atan2(py-cy, px-cx)
	out := initial
	out.Rotation = initial.Rotation + (cur - start)
	return out
}
