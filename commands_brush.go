package vellum

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// GetBrushes lists all registered presets ordered by ID.
type GetBrushes struct{}

func (GetBrushes) run(e *Engine) Result {
	return Result{Brushes: e.brushes.List()}
}

// UpdateBrush replaces the preset whose ID matches. Presets live in the
// registry, not the document, so brush edits are not undoable.
type UpdateBrush struct {
	BrushPreset
}

func (c UpdateBrush) run(e *Engine) Result {
	if !e.brushes.Update(c.BrushPreset) {
		return Result{Err: ErrBrushNotFound}
	}
	return Result{}
}

// RegisterBrush adds a new preset and returns its assigned ID.
type RegisterBrush struct {
	BrushPreset
}

func (c RegisterBrush) run(e *Engine) Result {
	id := e.brushes.Register(c.BrushPreset)
	return Result{BrushID: &id}
}

// CreateBrushStroke starts a stroke: a path object marked with the brush
// that made it. The object's box wraps the smoothed centerline padded by
// half the brush size; the centerline becomes its path data and the raw
// samples are kept for re-tessellation. Commits "Brush Stroke" by default,
// so one snapshot covers the whole gesture.
type CreateBrushStroke struct {
	saveUndo
	BrushID uint32        `json:"brush_id"`
	Points  []StrokePoint `json:"points"`
	Color   *Color        `json:"color,omitempty"`
}

func (c CreateBrushStroke) run(e *Engine) Result {
	brush, ok := e.brushes.Get(c.BrushID)
	if !ok {
		return Result{Err: ErrBrushNotFound}
	}
	if len(c.Points) == 0 {
		return Result{Err: ErrNoPoints}
	}
	e.stage(c.commit(true), "Brush Stroke")
	fill := Black
	if c.Color != nil {
		fill = *c.Color
	}
	obj := e.doc.NewObject(KindPath, 0, 0, 1, 1, fill)
	obj.Name = fmt.Sprintf("Brush Stroke %d", obj.ID)
	obj.BrushID = c.BrushID
	obj.StrokeWidth = 0
	applyStrokeGeometry(obj, c.Points, brush)
	return Result{ID: obj.ID}
}

// UpdateBrushStroke replaces a live stroke's samples wholesale, typically
// once per pointer frame while painting. It never snapshots: the creating
// command's snapshot already holds the pre-stroke document.
type UpdateBrushStroke struct {
	ID      ID            `json:"id"`
	Points  []StrokePoint `json:"points"`
	BrushID *uint32       `json:"brush_id,omitempty"`
}

func (c UpdateBrushStroke) run(e *Engine) Result {
	obj := e.doc.Find(c.ID)
	if obj == nil {
		return Result{Err: ErrNotFound}
	}
	brushID := obj.BrushID
	if c.BrushID != nil {
		brushID = *c.BrushID
	}
	if brushID == 0 {
		return Result{Err: errors.New("object is not a brush stroke")}
	}
	brush, ok := e.brushes.Get(brushID)
	if !ok {
		return Result{Err: ErrBrushNotFound}
	}
	if len(c.Points) == 0 {
		return Result{Err: ErrNoPoints}
	}
	obj.BrushID = brushID
	applyStrokeGeometry(obj, c.Points, brush)
	return Result{ID: obj.ID}
}

// applyStrokeGeometry lays the stroke into the object: the box wraps the
// smoothed centerline padded by half the brush size, the centerline is
// stored as a polyline in path data, and the raw samples are rebased to
// the box origin.
func applyStrokeGeometry(obj *SceneObject, points []StrokePoint, brush BrushPreset) {
	smoothed := SmoothPoints(points, brush.Smoothing)
	minX, minY := smoothed[0].X, smoothed[0].Y
	maxX, maxY := minX, minY
	for _, p := range smoothed[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	pad := brush.Size / 2
	obj.X = minX - pad
	obj.Y = minY - pad
	obj.Width = maxf(maxX-minX+brush.Size, 1)
	obj.Height = maxf(maxY-minY+brush.Size, 1)
	obj.Rotation = 0

	rel := make([]curve.Point, len(smoothed))
	for i, p := range smoothed {
		rel[i] = curve.Pt(p.X-obj.X, p.Y-obj.Y)
	}
	obj.PathData = EncodePolyline(rel)

	obj.StrokePoints = make([]StrokePoint, len(points))
	for i, p := range points {
		obj.StrokePoints[i] = StrokePoint{X: p.X - obj.X, Y: p.Y - obj.Y, Pressure: p.Pressure}
	}
}
