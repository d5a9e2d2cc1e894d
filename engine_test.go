package vellum

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"
)

// addRect creates a rectangle through the command path and fails the test
// on error.
func addRect(t *testing.T, e *Engine, x, y, w, h float64) ID {
	t.Helper()
	res := e.Do(AddObject{Patch: Patch{X: ptr(x), Y: ptr(y), Width: ptr(w), Height: ptr(h)}})
	if res.Err != nil {
		t.Fatalf("add rect: %v", res.Err)
	}
	return res.ID
}

func changed(r Result) bool { return r.Changed != nil && *r.Changed }

func TestEngineDoNil(t *testing.T) {
	res := NewEngine().Do(nil)
	if !errors.Is(res.Err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", res.Err)
	}
}

// --- Lifecycle Tests ---

func TestAddObject(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e := NewEngine()
		res := e.Do(AddObject{})
		if res.Err != nil {
			t.Fatalf("add: %v", res.Err)
		}
		obj := e.Doc().Find(res.ID)
		if obj == nil {
			t.Fatal("object not in document")
		}
		if obj.Kind != KindRectangle {
			t.Errorf("kind = %v", obj.Kind)
		}
		if obj.X != 100 || obj.Y != 100 || obj.Width != 100 || obj.Height != 100 {
			t.Errorf("box = (%v, %v, %v, %v)", obj.X, obj.Y, obj.Width, obj.Height)
		}
		if obj.Fill != defaultFill {
			t.Errorf("fill = %v", obj.Fill)
		}
		if len(e.SelectedIDs()) != 0 {
			t.Error("adding selected the object")
		}
		if diff := cmp.Diff([]string{"Add Object"}, e.HistoryLabels()); diff != "" {
			t.Errorf("history (-want +got):\n%s", diff)
		}
	})

	t.Run("patch applied", func(t *testing.T) {
		e := NewEngine()
		res := e.Do(AddObject{Kind: "Circle", Patch: Patch{X: ptr(5.0), Fill: &Black}})
		obj := e.Doc().Find(res.ID)
		if obj.Kind != KindCircle || obj.X != 5 || obj.Fill != Black {
			t.Errorf("obj = %+v", obj)
		}
	})

	t.Run("ellipse alias", func(t *testing.T) {
		e := NewEngine()
		res := e.Do(AddObject{Kind: "Ellipse"})
		if got := e.Doc().Find(res.ID).Kind; got != KindCircle {
			t.Errorf("kind = %v, want KindCircle", got)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		e := NewEngine()
		res := e.Do(AddObject{Kind: "Blob"})
		if res.Err == nil || !strings.Contains(res.Err.Error(), `unknown object kind "Blob"`) {
			t.Fatalf("err = %v", res.Err)
		}
		if e.CanUndo() {
			t.Error("failed add left a history entry")
		}
		if e.Doc().Count() != 0 {
			t.Error("failed add created an object")
		}
	})
}

func TestUpdateObject(t *testing.T) {
	t.Run("patches without snapshot", func(t *testing.T) {
		e := NewEngine()
		id := addRect(t, e, 0, 0, 100, 100)
		res := e.Do(UpdateObject{ID: id, Patch: Patch{X: ptr(50.0)}})
		if res.Err != nil {
			t.Fatalf("update: %v", res.Err)
		}
		if got := e.Doc().Find(id).X; got != 50 {
			t.Errorf("x = %v, want 50", got)
		}
		// Interactive drags stream updates; only the add is in history.
		if len(e.HistoryLabels()) != 1 {
			t.Errorf("history = %v", e.HistoryLabels())
		}
	})

	t.Run("save_undo forces snapshot", func(t *testing.T) {
		e := NewEngine()
		id := addRect(t, e, 0, 0, 100, 100)
		e.Do(UpdateObject{saveUndo: saveUndo{SaveUndo: boolPtr(true)}, ID: id, Patch: Patch{X: ptr(50.0)}})
		want := []string{"Add Object", "Update Object"}
		if diff := cmp.Diff(want, e.HistoryLabels()); diff != "" {
			t.Errorf("history (-want +got):\n%s", diff)
		}
	})

	t.Run("bulk patches each id", func(t *testing.T) {
		e := NewEngine()
		a := addRect(t, e, 0, 0, 100, 100)
		b := addRect(t, e, 200, 0, 100, 100)

		res := e.Do(UpdateObject{IDs: []ID{a, b, 999}, Patch: Patch{Opacity: ptr(0.5)}})
		if res.Err != nil {
			t.Fatalf("update: %v", res.Err)
		}
		if diff := cmp.Diff([]ID{a, b}, res.IDs); diff != "" {
			t.Errorf("ids (-want +got):\n%s", diff)
		}
		if e.Doc().Find(a).Opacity != 0.5 || e.Doc().Find(b).Opacity != 0.5 {
			t.Error("patch missed an object")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		e := NewEngine()
		if res := e.Do(UpdateObject{ID: 99}); !errors.Is(res.Err, ErrNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})
}

func TestDeleteObjects(t *testing.T) {
	t.Run("unknown ids are skipped", func(t *testing.T) {
		e := NewEngine()
		a := addRect(t, e, 0, 0, 10, 10)
		b := addRect(t, e, 20, 0, 10, 10)

		res := e.Do(DeleteObjects{IDs: []ID{a, 999}})
		if res.Err != nil {
			t.Fatalf("delete: %v", res.Err)
		}
		if diff := cmp.Diff([]ID{a}, res.IDs); diff != "" {
			t.Errorf("ids (-want +got):\n%s", diff)
		}
		if e.Doc().Find(a) != nil || e.Doc().Find(b) == nil {
			t.Error("wrong object deleted")
		}
	})

	t.Run("all unknown fails without a history entry", func(t *testing.T) {
		e := NewEngine()
		addRect(t, e, 0, 0, 10, 10)

		res := e.Do(DeleteObjects{IDs: []ID{998, 999}})
		if !errors.Is(res.Err, ErrNotFound) {
			t.Fatalf("err = %v", res.Err)
		}
		if e.Doc().Count() != 1 {
			t.Error("delete of unknown ids touched the document")
		}
		if len(e.HistoryLabels()) != 1 {
			t.Error("failed delete left a history entry")
		}
	})

	t.Run("singular id", func(t *testing.T) {
		e := NewEngine()
		a := addRect(t, e, 0, 0, 10, 10)
		res := e.Do(DeleteObjects{ID: a})
		if res.Err != nil {
			t.Fatalf("delete: %v", res.Err)
		}
		if diff := cmp.Diff([]ID{a}, res.IDs); diff != "" {
			t.Errorf("ids (-want +got):\n%s", diff)
		}
		if e.Doc().Find(a) != nil {
			t.Error("object survived delete")
		}
	})

	t.Run("no target", func(t *testing.T) {
		e := NewEngine()
		if res := e.Do(DeleteObjects{}); !errors.Is(res.Err, ErrNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})
}

func TestDuplicateObjects(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 10, 20, 100, 50)

	res := e.Do(DuplicateObjects{ID: a})
	if res.Err != nil {
		t.Fatalf("duplicate: %v", res.Err)
	}
	if len(res.IDs) != 1 {
		t.Fatalf("ids = %v", res.IDs)
	}
	dup := e.Doc().Find(res.IDs[0])
	if dup.X != 20 || dup.Y != 30 {
		t.Errorf("copy at (%v, %v), want (20, 30)", dup.X, dup.Y)
	}
	if dup.Name != "Rectangle 1 copy" {
		t.Errorf("copy name = %q", dup.Name)
	}
	if diff := cmp.Diff([]ID{a, dup.ID}, e.Doc().Order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.IDs, e.SelectedIDs()); diff != "" {
		t.Errorf("selection (-want +got):\n%s", diff)
	}
}

func TestClearDocument(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 10, 10)
	addRect(t, e, 20, 0, 10, 10)
	e.Do(SelectObjects{ID: a})

	if res := e.Do(ClearDocument{}); res.Err != nil {
		t.Fatalf("clear: %v", res.Err)
	}
	d := e.Doc()
	if d.Count() != 0 || len(d.Order) != 0 || len(d.Selection) != 0 {
		t.Errorf("document not empty: %d objects", d.Count())
	}
	if d.NextID != 1 {
		t.Errorf("NextID = %d, want 1", d.NextID)
	}
	if d.Artboard.Width != 800 {
		t.Error("clear touched the artboard")
	}

	// The gesture is undoable like any other.
	e.Do(Undo{})
	if e.Doc().Count() != 2 || e.Doc().Find(a) == nil {
		t.Error("undo did not restore the cleared objects")
	}
}

// --- Grouping Tests ---

func TestGroupObjects(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 100, 100)
	c := addRect(t, e, 500, 500, 50, 50)
	b := addRect(t, e, 200, 0, 100, 100)

	res := e.Do(GroupObjects{IDs: []ID{a, b}})
	if res.Err != nil {
		t.Fatalf("group: %v", res.Err)
	}
	g := e.Doc().Find(res.ID)
	if g == nil || g.Kind != KindGroup {
		t.Fatalf("group object = %+v", g)
	}

	// The group's box is the union of the members' world bounds.
	if g.X != 0 || g.Y != 0 || g.Width != 300 || g.Height != 100 {
		t.Errorf("group box = (%v, %v, %v, %v)", g.X, g.Y, g.Width, g.Height)
	}
	// Members keep their document z-order and are rebased to group space.
	if diff := cmp.Diff([]ID{a, b}, g.Children); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
	if got := e.Doc().Find(b); got.X != 200 || got.Y != 0 {
		t.Errorf("member at (%v, %v), want (200, 0)", got.X, got.Y)
	}
	// The group takes the topmost member's z-position.
	if diff := cmp.Diff([]ID{c, g.ID}, e.Doc().Order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{g.ID}, e.SelectedIDs()); diff != "" {
		t.Errorf("selection (-want +got):\n%s", diff)
	}

	t.Run("too few members", func(t *testing.T) {
		res := e.Do(GroupObjects{IDs: []ID{c}})
		if res.Err == nil || !strings.Contains(res.Err.Error(), "at least two") {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		if res := e.Do(GroupObjects{IDs: []ID{c, 999}}); !errors.Is(res.Err, ErrNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("nested member", func(t *testing.T) {
		res := e.Do(GroupObjects{IDs: []ID{a, c}})
		if res.Err == nil || !strings.Contains(res.Err.Error(), "document root") {
			t.Errorf("err = %v", res.Err)
		}
	})
}

func TestUngroupObjects(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 20, 20)
	b := addRect(t, e, 80, 80, 20, 20)
	g := e.Do(GroupObjects{IDs: []ID{a, b}}).ID
	e.Do(UpdateObject{ID: g, Patch: Patch{Rotation: ptr(math.Pi / 2)}})

	res := e.Do(UngroupObjects{ID: g})
	if res.Err != nil {
		t.Fatalf("ungroup: %v", res.Err)
	}
	if diff := cmp.Diff([]ID{a, b}, res.IDs); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{a, b}, e.Doc().Order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if e.Doc().Find(g) != nil {
		t.Error("group object survived ungroup")
	}

	// Children keep their drawn position: the group's rotation is baked
	// into their placement and their own rotation.
	ao := e.Doc().Find(a)
	if !near(ao.X, 80, 1e-9) || !near(ao.Y, 0, 1e-9) {
		t.Errorf("child a at (%v, %v), want (80, 0)", ao.X, ao.Y)
	}
	if ao.Rotation != math.Pi/2 {
		t.Errorf("child a rotation = %v", ao.Rotation)
	}
	bo := e.Doc().Find(b)
	if !near(bo.X, 0, 1e-9) || !near(bo.Y, 80, 1e-9) {
		t.Errorf("child b at (%v, %v), want (0, 80)", bo.X, bo.Y)
	}
	if diff := cmp.Diff([]ID{a, b}, e.SelectedIDs()); diff != "" {
		t.Errorf("selection (-want +got):\n%s", diff)
	}
}

func TestUngroupErrors(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 10, 10)

	res := e.Do(UngroupObjects{ID: a})
	if res.Err == nil || res.Err.Error() != "object is not a group" {
		t.Errorf("err = %v", res.Err)
	}
	if res := e.Do(UngroupObjects{ID: 99}); !errors.Is(res.Err, ErrNotFound) {
		t.Errorf("err = %v", res.Err)
	}
}

func TestUngroupClearsMaskReference(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 10, 10)
	b := addRect(t, e, 20, 0, 10, 10)
	g := e.Do(GroupObjects{IDs: []ID{a, b}}).ID
	m := addRect(t, e, 50, 50, 10, 10)
	e.Do(UpdateObject{ID: m, Patch: Patch{MaskID: ptr(g)}})

	e.Do(UngroupObjects{ID: g})
	if got := e.Doc().Find(m).MaskID; got != 0 {
		t.Errorf("mask reference = %v, want cleared", got)
	}
}

// --- Z-Order Tests ---

func TestZOrderCommands(t *testing.T) {
	setup := func(t *testing.T) (*Engine, ID, ID, ID) {
		t.Helper()
		e := NewEngine()
		a := addRect(t, e, 0, 0, 10, 10)
		b := addRect(t, e, 20, 0, 10, 10)
		c := addRect(t, e, 40, 0, 10, 10)
		return e, a, b, c
	}

	t.Run("to front", func(t *testing.T) {
		e, a, b, c := setup(t)
		res := e.Do(MoveToFront{ID: a})
		if !changed(res) {
			t.Error("changed = false")
		}
		if diff := cmp.Diff([]ID{b, c, a}, e.Doc().Order); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
		if got := e.HistoryLabels(); got[len(got)-1] != "Move to Front" {
			t.Errorf("history = %v", got)
		}
	})

	t.Run("already at front", func(t *testing.T) {
		e, _, _, c := setup(t)
		res := e.Do(MoveToFront{ID: c})
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if changed(res) || res.Message != "Already at front" {
			t.Errorf("res = %+v", res)
		}
		// No-ops never pollute undo history.
		if len(e.HistoryLabels()) != 3 {
			t.Errorf("history = %v", e.HistoryLabels())
		}
	})

	t.Run("to back", func(t *testing.T) {
		e, a, b, c := setup(t)
		e.Do(MoveToBack{ID: c})
		if diff := cmp.Diff([]ID{c, a, b}, e.Doc().Order); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("already at back", func(t *testing.T) {
		e, a, _, _ := setup(t)
		res := e.Do(MoveToBack{ID: a})
		if changed(res) || res.Message != "Already at back" {
			t.Errorf("res = %+v", res)
		}
	})

	t.Run("forward", func(t *testing.T) {
		e, a, b, c := setup(t)
		e.Do(MoveForward{ID: a})
		if diff := cmp.Diff([]ID{b, a, c}, e.Doc().Order); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("backward", func(t *testing.T) {
		e, a, b, c := setup(t)
		e.Do(MoveBackward{ID: c})
		if diff := cmp.Diff([]ID{a, c, b}, e.Doc().Order); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		e, _, _, _ := setup(t)
		if res := e.Do(MoveForward{ID: 99}); !errors.Is(res.Err, ErrNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})
}

// --- Artboard and Viewport Tests ---

func TestSetArtboard(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		e := NewEngine()
		res := e.Do(SetArtboard{Width: ptr(1024.0)})
		if res.Err != nil {
			t.Fatalf("set artboard: %v", res.Err)
		}
		ab := e.Doc().Artboard
		if ab.Width != 1024 || ab.Height != 600 || ab.Background != White {
			t.Errorf("artboard = %+v", ab)
		}
		if res.Artboard == nil || res.Artboard.Width != 1024 {
			t.Errorf("result artboard = %+v", res.Artboard)
		}
		if diff := cmp.Diff([]string{"Set Artboard"}, e.HistoryLabels()); diff != "" {
			t.Errorf("history (-want +got):\n%s", diff)
		}
	})

	t.Run("size floor", func(t *testing.T) {
		e := NewEngine()
		e.Do(SetArtboard{Width: ptr(0.0), Height: ptr(-5.0)})
		ab := e.Doc().Artboard
		if ab.Width != 1 || ab.Height != 1 {
			t.Errorf("artboard = %vx%v, want 1x1", ab.Width, ab.Height)
		}
	})

	t.Run("snapshot does not share guides", func(t *testing.T) {
		e := NewEngine()
		e.Do(AddGuide{Orientation: Horizontal, Position: 100})
		res := e.Do(SetArtboard{Background: &Black})
		res.Artboard.Guides[0].Position = 999
		if got := e.Doc().Artboard.Guides[0].Position; got != 100 {
			t.Errorf("guide position = %v, want 100", got)
		}
	})
}

func TestSetClipping(t *testing.T) {
	e := NewEngine()
	e.Do(SetClipping{Enabled: true})
	if !e.Doc().Clip {
		t.Error("clipping not enabled")
	}
	if got := e.HistoryLabels(); len(got) != 1 || got[0] != "Set Clipping" {
		t.Errorf("history = %v", got)
	}
	e.Do(SetClipping{Enabled: false})
	if e.Doc().Clip {
		t.Error("clipping not disabled")
	}
}

func TestSetViewportCommand(t *testing.T) {
	e := NewEngine()
	e.Do(SetViewport{X: ptr(40.0), Zoom: ptr(2.0)})
	vp := e.Doc().Viewport
	if vp.X != 40 || vp.Y != 0 || vp.Zoom != 2 {
		t.Errorf("viewport = %+v", vp)
	}

	// The camera is not document state.
	if len(e.HistoryLabels()) != 0 {
		t.Errorf("history = %v", e.HistoryLabels())
	}

	e.Do(SetViewport{Zoom: ptr(0.0)})
	if got := e.Doc().Viewport.Zoom; got != 0.01 {
		t.Errorf("zoom = %v, want clamp to 0.01", got)
	}
}

func TestGuides(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		e := NewEngine()
		if res := e.Do(AddGuide{Orientation: Vertical, Position: 120}); res.Err != nil {
			t.Fatalf("add guide: %v", res.Err)
		}
		want := []Guide{{Orientation: Vertical, Position: 120}}
		if diff := cmp.Diff(want, e.Doc().Artboard.Guides); diff != "" {
			t.Errorf("guides (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown orientation", func(t *testing.T) {
		e := NewEngine()
		res := e.Do(AddGuide{Orientation: "diagonal", Position: 10})
		if res.Err == nil || !strings.Contains(res.Err.Error(), `unknown guide orientation "diagonal"`) {
			t.Fatalf("err = %v", res.Err)
		}
		if e.CanUndo() {
			t.Error("failed add left a history entry")
		}
	})

	t.Run("clear", func(t *testing.T) {
		e := NewEngine()
		e.Do(AddGuide{Orientation: Horizontal, Position: 10})
		e.Do(ClearGuides{})
		if len(e.Doc().Artboard.Guides) != 0 {
			t.Error("guides survived clear")
		}
		want := []string{"Add Guide", "Clear Guides"}
		if diff := cmp.Diff(want, e.HistoryLabels()); diff != "" {
			t.Errorf("history (-want +got):\n%s", diff)
		}
	})

	t.Run("clear with none is not a change", func(t *testing.T) {
		e := NewEngine()
		if res := e.Do(ClearGuides{}); res.Err != nil {
			t.Fatalf("clear guides: %v", res.Err)
		}
		if e.CanUndo() {
			t.Error("no-op clear left a history entry")
		}
	})
}

// --- Brush Command Tests ---

func TestBrushCommands(t *testing.T) {
	e := NewEngine()

	res := e.Do(GetBrushes{})
	if len(res.Brushes) != 2 || res.Brushes[0].Name != "Basic Round" {
		t.Fatalf("brushes = %+v", res.Brushes)
	}

	res = e.Do(RegisterBrush{BrushPreset: BrushPreset{Name: "Marker", Size: 30}})
	if res.BrushID == nil || *res.BrushID != 3 {
		t.Fatalf("brush id = %v", res.BrushID)
	}

	res = e.Do(UpdateBrush{BrushPreset: BrushPreset{ID: 3, Name: "Fat Marker", Size: 40}})
	if res.Err != nil {
		t.Fatalf("update brush: %v", res.Err)
	}
	if got, _ := e.Brushes().Get(3); got.Name != "Fat Marker" {
		t.Errorf("preset = %+v", got)
	}

	if res := e.Do(UpdateBrush{BrushPreset: BrushPreset{ID: 99}}); !errors.Is(res.Err, ErrBrushNotFound) {
		t.Errorf("err = %v", res.Err)
	}

	// Preset edits live outside the document and outside undo.
	if e.CanUndo() {
		t.Errorf("history = %v", e.HistoryLabels())
	}
}

func TestCreateBrushStroke(t *testing.T) {
	e := NewEngine()
	pts := []StrokePoint{{X: 100, Y: 100, Pressure: 1}, {X: 200, Y: 100, Pressure: 1}}

	res := e.Do(CreateBrushStroke{BrushID: 1, Points: pts})
	if res.Err != nil {
		t.Fatalf("create stroke: %v", res.Err)
	}
	obj := e.Doc().Find(res.ID)
	if obj.Kind != KindPath || obj.BrushID != 1 || obj.StrokeWidth != 0 {
		t.Errorf("obj = kind %v, brush %d, stroke width %v", obj.Kind, obj.BrushID, obj.StrokeWidth)
	}
	if obj.Name != "Brush Stroke 1" {
		t.Errorf("name = %q", obj.Name)
	}
	if obj.Fill != Black {
		t.Errorf("fill = %v", obj.Fill)
	}

	// Brush 1 smooths with 0.5, pulling the second sample back to x=150;
	// the box pads the smoothed line by half the brush size.
	if obj.X != 95 || obj.Y != 95 || obj.Width != 60 || obj.Height != 10 {
		t.Errorf("box = (%v, %v, %v, %v)", obj.X, obj.Y, obj.Width, obj.Height)
	}
	if obj.PathData != "M 5,5 L 55,5" {
		t.Errorf("path data = %q", obj.PathData)
	}
	// Raw samples are kept in box space for re-tessellation.
	wantPts := []StrokePoint{{X: 5, Y: 5, Pressure: 1}, {X: 105, Y: 5, Pressure: 1}}
	if diff := cmp.Diff(wantPts, obj.StrokePoints); diff != "" {
		t.Errorf("stroke points (-want +got):\n%s", diff)
	}

	if got := e.HistoryLabels(); len(got) != 1 || got[0] != "Brush Stroke" {
		t.Errorf("history = %v", got)
	}

	t.Run("custom color", func(t *testing.T) {
		res := e.Do(CreateBrushStroke{BrushID: 1, Points: pts, Color: &White})
		if got := e.Doc().Find(res.ID).Fill; got != White {
			t.Errorf("fill = %v", got)
		}
	})

	t.Run("unknown brush", func(t *testing.T) {
		if res := e.Do(CreateBrushStroke{BrushID: 99, Points: pts}); !errors.Is(res.Err, ErrBrushNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("no points", func(t *testing.T) {
		if res := e.Do(CreateBrushStroke{BrushID: 1}); !errors.Is(res.Err, ErrNoPoints) {
			t.Errorf("err = %v", res.Err)
		}
	})
}

func TestUpdateBrushStroke(t *testing.T) {
	e := NewEngine()
	pts := []StrokePoint{{X: 100, Y: 100, Pressure: 1}, {X: 200, Y: 100, Pressure: 1}}
	s := e.Do(CreateBrushStroke{BrushID: 1, Points: pts}).ID

	t.Run("replaces samples without snapshot", func(t *testing.T) {
		res := e.Do(UpdateBrushStroke{ID: s, Points: []StrokePoint{{X: 0, Y: 0, Pressure: 1}, {X: 40, Y: 0, Pressure: 1}}})
		if res.Err != nil {
			t.Fatalf("update stroke: %v", res.Err)
		}
		obj := e.Doc().Find(s)
		if obj.X != -5 || obj.Y != -5 || obj.Width != 30 || obj.Height != 10 {
			t.Errorf("box = (%v, %v, %v, %v)", obj.X, obj.Y, obj.Width, obj.Height)
		}
		if got := e.HistoryLabels(); len(got) != 1 {
			t.Errorf("history = %v", got)
		}
	})

	t.Run("brush override sticks", func(t *testing.T) {
		res := e.Do(UpdateBrushStroke{
			ID:      s,
			Points:  []StrokePoint{{X: 0, Y: 0, Pressure: 1}, {X: 40, Y: 0, Pressure: 1}},
			BrushID: ptr(uint32(2)),
		})
		if res.Err != nil {
			t.Fatalf("update stroke: %v", res.Err)
		}
		obj := e.Doc().Find(s)
		if obj.BrushID != 2 {
			t.Errorf("brush = %d, want 2", obj.BrushID)
		}
		// Brush 2 is wider (size 20) and smooths with 0.3.
		if obj.X != -10 || obj.Width != 48 {
			t.Errorf("box = (%v, _, %v, _)", obj.X, obj.Width)
		}
	})

	t.Run("not a brush stroke", func(t *testing.T) {
		r := addRect(t, e, 0, 0, 10, 10)
		res := e.Do(UpdateBrushStroke{ID: r, Points: pts})
		if res.Err == nil || res.Err.Error() != "object is not a brush stroke" {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("unknown object", func(t *testing.T) {
		if res := e.Do(UpdateBrushStroke{ID: 999, Points: pts}); !errors.Is(res.Err, ErrNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("unknown brush override", func(t *testing.T) {
		res := e.Do(UpdateBrushStroke{ID: s, Points: pts, BrushID: ptr(uint32(99))})
		if !errors.Is(res.Err, ErrBrushNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("no points", func(t *testing.T) {
		if res := e.Do(UpdateBrushStroke{ID: s}); !errors.Is(res.Err, ErrNoPoints) {
			t.Errorf("err = %v", res.Err)
		}
	})
}

// --- Undo and Redo Tests ---

func TestUndoRedo(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 10, 10)
	e.Do(SelectObjects{ID: a})
	e.Do(DeleteObjects{ID: a})

	res := e.Do(Undo{})
	if !changed(res) {
		t.Fatal("undo reported no change")
	}
	if e.Doc().Find(a) == nil {
		t.Fatal("undo did not restore the object")
	}
	// The pre-delete snapshot had the object selected.
	if diff := cmp.Diff([]ID{a}, res.Selected); diff != "" {
		t.Errorf("selection (-want +got):\n%s", diff)
	}
	if !e.CanRedo() {
		t.Fatal("CanRedo = false after undo")
	}

	if res := e.Do(Redo{}); !changed(res) {
		t.Fatal("redo reported no change")
	}
	if e.Doc().Find(a) != nil {
		t.Error("redo did not reapply the delete")
	}
}

func TestUndoSteps(t *testing.T) {
	e := NewEngine()
	addRect(t, e, 0, 0, 10, 10)
	addRect(t, e, 20, 0, 10, 10)

	// Stepping past the oldest snapshot stops there.
	res := e.Do(Undo{Steps: 5})
	if !changed(res) {
		t.Error("undo reported no change")
	}
	if e.Doc().Count() != 0 {
		t.Errorf("count = %d, want 0", e.Doc().Count())
	}
	if e.CanUndo() {
		t.Error("undo stack not drained")
	}

	if res := e.Do(Undo{}); changed(res) {
		t.Error("undo on empty history reported a change")
	}
}

func TestUndoPreservesViewport(t *testing.T) {
	e := NewEngine()
	e.Do(SetViewport{X: ptr(7.0), Y: ptr(9.0), Zoom: ptr(3.0)})
	addRect(t, e, 0, 0, 10, 10)

	e.Do(Undo{})
	vp := e.Doc().Viewport
	if vp.X != 7 || vp.Y != 9 || vp.Zoom != 3 {
		t.Errorf("viewport = %+v, want camera untouched", vp)
	}
}

func TestSaveUndoSuppression(t *testing.T) {
	e := NewEngine()
	res := e.Do(AddObject{saveUndo: saveUndo{SaveUndo: boolPtr(false)}})
	if res.Err != nil {
		t.Fatalf("add: %v", res.Err)
	}
	if e.CanUndo() {
		t.Errorf("history = %v", e.HistoryLabels())
	}
	if e.Doc().Count() != 1 {
		t.Error("suppressed add did not create the object")
	}
}

func TestDragCoalescesIntoOneEntry(t *testing.T) {
	e := NewEngine()
	res := e.Do(AddObject{Patch: Patch{
		X: ptr(100.0), Y: ptr(100.0), Width: ptr(200.0), Height: ptr(150.0),
	}})
	if res.Err != nil {
		t.Fatalf("add: %v", res.Err)
	}
	id := res.ID
	if got := e.HistoryLabels(); len(got) != 1 {
		t.Fatalf("history = %v", got)
	}

	// A drag streams intermediate frames without snapshots, then commits
	// once on release. The whole gesture must cost one undo step that
	// rolls back to the pre-drag position.
	for _, f := range [][2]float64{{120, 108}, {135, 115}, {148, 119}} {
		res := e.Do(UpdateObject{ID: id, Patch: Patch{X: ptr(f[0]), Y: ptr(f[1])}})
		if res.Err != nil {
			t.Fatalf("drag frame: %v", res.Err)
		}
	}
	res = e.Do(UpdateObject{
		saveUndo: saveUndo{SaveUndo: boolPtr(true)},
		ID:       id,
		Patch:    Patch{X: ptr(150.0), Y: ptr(120.0)},
	})
	if res.Err != nil {
		t.Fatalf("release: %v", res.Err)
	}
	want := []string{"Add Object", "Update Object"}
	if diff := cmp.Diff(want, e.HistoryLabels()); diff != "" {
		t.Fatalf("history (-want +got):\n%s", diff)
	}

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	obj := e.Doc().Find(id)
	if obj.X != 100 || obj.Y != 100 {
		t.Errorf("after undo at (%v, %v), want (100, 100)", obj.X, obj.Y)
	}

	if !e.Redo() {
		t.Fatal("redo failed")
	}
	obj = e.Doc().Find(id)
	if obj.X != 150 || obj.Y != 120 {
		t.Errorf("after redo at (%v, %v), want (150, 120)", obj.X, obj.Y)
	}
}

// --- Selection Command Tests ---

func TestSelectCommands(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 100, 100)
	b := addRect(t, e, 200, 0, 100, 100)

	t.Run("by ids", func(t *testing.T) {
		res := e.Do(SelectObjects{IDs: []ID{a, b}})
		if diff := cmp.Diff([]ID{a, b}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("singular id", func(t *testing.T) {
		res := e.Do(SelectObjects{ID: b})
		if diff := cmp.Diff([]ID{b}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("additive toggles", func(t *testing.T) {
		e.Do(SelectObjects{ID: a})
		res := e.Do(SelectObjects{IDs: []ID{a, b}, Additive: true})
		if diff := cmp.Diff([]ID{b}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown ids are skipped", func(t *testing.T) {
		res := e.Do(SelectObjects{IDs: []ID{a, 999}})
		if res.Err != nil {
			t.Fatalf("select: %v", res.Err)
		}
		if diff := cmp.Diff([]ID{a}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("all unknown fails", func(t *testing.T) {
		if res := e.Do(SelectObjects{ID: 999}); !errors.Is(res.Err, ErrNotFound) {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("empty clears", func(t *testing.T) {
		e.Do(SelectObjects{ID: a})
		res := e.Do(SelectObjects{})
		if len(res.Selected) != 0 || len(e.SelectedIDs()) != 0 {
			t.Errorf("selection = %v", res.Selected)
		}
	})

	t.Run("point", func(t *testing.T) {
		res := e.Do(SelectPoint{X: 50, Y: 50})
		if diff := cmp.Diff([]ID{a}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("point picks locked when asked", func(t *testing.T) {
		e.Do(UpdateObject{ID: a, Patch: Patch{Locked: ptr(true)}})
		defer e.Do(UpdateObject{ID: a, Patch: Patch{Locked: ptr(false)}})

		if res := e.Do(SelectPoint{X: 50, Y: 50}); len(res.Selected) != 0 {
			t.Errorf("locked object selected: %v", res.Selected)
		}
		res := e.Do(SelectPoint{X: 50, Y: 50, IgnoreLocked: true})
		if diff := cmp.Diff([]ID{a}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("rect", func(t *testing.T) {
		res := e.Do(SelectRect{X1: -10, Y1: -10, X2: 400, Y2: 200})
		if diff := cmp.Diff([]ID{a, b}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("rect additive extends", func(t *testing.T) {
		e.Do(SelectObjects{ID: b})
		res := e.Do(SelectRect{X1: -10, Y1: -10, X2: 110, Y2: 110, Additive: true})
		if diff := cmp.Diff([]ID{b, a}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("point collects stack", func(t *testing.T) {
		c := addRect(t, e, 40, 40, 100, 100)
		res := e.Do(SelectPoint{X: 50, Y: 50, TopmostOnly: boolPtr(false)})
		if diff := cmp.Diff([]ID{c, a}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})
}

func TestHitTestHandlesCommand(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 100, 100, 100, 60)
	e.Do(SelectObjects{ID: a})

	res := e.Do(HitTestHandles{X: 100, Y: 100})
	if res.Err != nil || res.Hit == nil {
		t.Fatalf("res = %+v", res)
	}
	if res.Hit.ID != a || res.Hit.Handle != HandleTopLeft {
		t.Errorf("hit = %+v", res.Hit)
	}

	// A miss is a success with no payload.
	res = e.Do(HitTestHandles{X: 500, Y: 500})
	if res.Err != nil || res.Hit != nil {
		t.Errorf("res = %+v", res)
	}
}

// --- Query Command Tests ---

func TestQueryCommands(t *testing.T) {
	e := NewEngine()
	a := addRect(t, e, 0, 0, 10, 10)
	addRect(t, e, 20, 0, 10, 10)
	e.Do(SelectObjects{ID: a})

	t.Run("history", func(t *testing.T) {
		res := e.Do(GetHistory{})
		want := []string{"Add Object", "Add Object"}
		if diff := cmp.Diff(want, res.History); diff != "" {
			t.Errorf("history (-want +got):\n%s", diff)
		}
	})

	t.Run("selected", func(t *testing.T) {
		res := e.Do(GetSelected{})
		if diff := cmp.Diff([]ID{a}, res.Selected); diff != "" {
			t.Errorf("selection (-want +got):\n%s", diff)
		}
	})

	t.Run("artboard", func(t *testing.T) {
		res := e.Do(GetArtboard{})
		if res.Artboard == nil || res.Artboard.Width != 800 || res.Artboard.Background != White {
			t.Errorf("artboard = %+v", res.Artboard)
		}
	})

	t.Run("objects", func(t *testing.T) {
		res := e.Do(GetObjects{})
		if res.Err != nil {
			t.Fatalf("get objects: %v", res.Err)
		}
		var tree []struct {
			ID   ID     `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(res.Objects, &tree); err != nil {
			t.Fatalf("objects payload: %v", err)
		}
		if len(tree) != 2 || tree[0].ID != a {
			t.Errorf("tree = %+v", tree)
		}
	})
}

func TestShouldClosePath(t *testing.T) {
	e := NewEngine()
	p := &PenPath{Anchors: []Anchor{
		CornerAnchor(curve.Pt(100, 100)),
		CornerAnchor(curve.Pt(200, 100)),
	}}

	if !e.ShouldClosePath(p, 104, 100) {
		t.Error("pointer 4 units away should close at the default radius")
	}
	if e.ShouldClosePath(p, 109, 100) {
		t.Error("pointer 9 units away should not close")
	}

	// The radius is a screen distance: zooming in shrinks it in world
	// units.
	e.SetViewport(0, 0, 2)
	if e.ShouldClosePath(p, 105, 100) {
		t.Error("pointer 5 units away should not close at zoom 2")
	}
	if !e.ShouldClosePath(p, 103, 100) {
		t.Error("pointer 3 units away should close at zoom 2")
	}
}

func TestRegisterImage(t *testing.T) {
	e := NewEngine()
	key := e.RegisterImage("hero", 2, 2, make([]byte, 16))
	if key != "hero" {
		t.Errorf("key = %q", key)
	}
	img := e.Assets().Get("hero")
	if img == nil || img.Width != 2 || img.Height != 2 {
		t.Errorf("asset = %+v", img)
	}
}
