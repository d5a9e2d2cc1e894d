package vellum

import "honnef.co/go/curve"

// selectPoint hit-tests a world-space point against root-level objects,
// topmost first, and updates the selection. A plain click replaces the
// selection with the hit object, or clears it on a miss. An additive click
// toggles the hit object and leaves the rest of the selection alone. With
// topmostOnly false the scan keeps going and every object under the point
// is picked up, top to bottom.
//
// Invisible objects are transparent to the test; locked objects are too
// unless ignoreLocked overrides the lock.
func selectPoint(d *Document, wx, wy float64, additive, topmostOnly, ignoreLocked bool) []ID {
	var hits []ID
	for i := len(d.Order) - 1; i >= 0; i-- {
		obj := d.Find(d.Order[i])
		if obj == nil || !obj.Visible {
			continue
		}
		if obj.Locked && !ignoreLocked {
			continue
		}
		if !containsPoint(obj, wx, wy) {
			continue
		}
		hits = append(hits, obj.ID)
		if topmostOnly {
			break
		}
	}

	switch {
	case len(hits) == 0:
		if !additive {
			d.Selection = nil
		}
	case additive && topmostOnly:
		d.ToggleSelection(hits[0])
	case additive:
		for _, id := range hits {
			if !d.IsSelected(id) {
				d.Selection = append(d.Selection, id)
			}
		}
	default:
		d.SetSelection(hits)
	}
	return d.Selection
}

// selectRect selects every root-level object whose world bounds overlap the
// rectangle spanned by the two corners, in z-order. The result replaces the
// selection, or extends it when additive. Invisible objects are never picked
// up by a marquee; locked objects only when ignoreLocked overrides the lock.
func selectRect(d *Document, x1, y1, x2, y2 float64, additive, ignoreLocked bool) []ID {
	sel := curve.NewRectFromPoints(curve.Pt(x1, y1), curve.Pt(x2, y2))
	var hits []ID
	for _, id := range d.Order {
		obj := d.Find(id)
		if obj == nil || !obj.Visible {
			continue
		}
		if obj.Locked && !ignoreLocked {
			continue
		}
		if rectsOverlap(worldBounds(obj), sel) {
			hits = append(hits, id)
		}
	}
	if additive {
		for _, id := range hits {
			if !d.IsSelected(id) {
				d.Selection = append(d.Selection, id)
			}
		}
		return d.Selection
	}
	d.Selection = hits
	return d.Selection
}
