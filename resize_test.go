package vellum

import (
	"math"
	"testing"
)

func TestResizeAxisAligned(t *testing.T) {
	initial := Box{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name   string
		handle Handle
		px, py float64
		want   Box
	}{
		{
			name:   "bottom right grows both",
			handle: HandleBottomRight,
			px:     160, py: 120,
			want: Box{X: 10, Y: 20, Width: 150, Height: 100},
		},
		{
			name:   "top left drags origin",
			handle: HandleTopLeft,
			px:     0, py: 0,
			want: Box{X: 0, Y: 0, Width: 110, Height: 70},
		},
		{
			name:   "right edge ignores y",
			handle: HandleRight,
			px:     200, py: 500,
			want: Box{X: 10, Y: 20, Width: 190, Height: 50},
		},
		{
			name:   "top edge ignores x",
			handle: HandleTop,
			px:     -40, py: 0,
			want: Box{X: 10, Y: 0, Width: 100, Height: 70},
		},
		{
			name:   "bottom left",
			handle: HandleBottomLeft,
			px:     0, py: 100,
			want: Box{X: 0, Y: 20, Width: 110, Height: 80},
		},
		{
			name:   "collapse floors at one",
			handle: HandleBottomRight,
			px:     5, py: 10,
			want: Box{X: 10, Y: 20, Width: 1, Height: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(initial, tt.handle, tt.px, tt.py, false)
			if !boxNear(got, tt.want, 1e-9) {
				t.Errorf("Resize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeKeepAspect(t *testing.T) {
	initial := Box{X: 10, Y: 20, Width: 100, Height: 50} // aspect 2:1

	t.Run("height dominates", func(t *testing.T) {
		// Pointer asks for 100x100; aspect forces width to 200.
		got := Resize(initial, HandleBottomRight, 110, 120, true)
		if !near(got.Width, 200, 1e-9) || !near(got.Height, 100, 1e-9) {
			t.Errorf("size = %v x %v, want 200 x 100", got.Width, got.Height)
		}
	})

	t.Run("width dominates", func(t *testing.T) {
		// Pointer asks for 150x25; aspect forces height to 75.
		got := Resize(initial, HandleBottomRight, 160, 45, true)
		if !near(got.Width, 150, 1e-9) || !near(got.Height, 75, 1e-9) {
			t.Errorf("size = %v x %v, want 150 x 75", got.Width, got.Height)
		}
	})

	t.Run("edges ignore aspect", func(t *testing.T) {
		got := Resize(initial, HandleRight, 210, 20, true)
		if !near(got.Width, 200, 1e-9) || !near(got.Height, 50, 1e-9) {
			t.Errorf("size = %v x %v, want 200 x 50", got.Width, got.Height)
		}
	})
}

// TestResizeAnchorStaysFixed drags every handle on boxes at several
// rotations and verifies the opposite handle never moves in world space.
func TestResizeAnchorStaysFixed(t *testing.T) {
	handles := []Handle{
		HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
		HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
	}
	rotations := []float64{0, math.Pi / 6, math.Pi / 2, -2.2}

	for _, rot := range rotations {
		for _, h := range handles {
			initial := Box{X: 40, Y: 30, Width: 120, Height: 80, Rotation: rot}
			before := anchorPoint(h, initial.Width, initial.Height).Transform(initial.transform())

			got := Resize(initial, h, 250, 190, false)
			after := anchorPoint(h, got.Width, got.Height).Transform(got.transform())

			if !pointNear(before, after, 1e-9) {
				t.Errorf("rot %.2f handle %v: anchor moved %v -> %v", rot, h, before, after)
			}
			if got.Rotation != rot {
				t.Errorf("rot %.2f handle %v: rotation changed to %v", rot, h, got.Rotation)
			}
		}
	}
}

func TestResizeRotateHandleIsNoop(t *testing.T) {
	initial := Box{X: 10, Y: 20, Width: 100, Height: 50, Rotation: 0.3}
	if got := Resize(initial, HandleRotate, 500, 500, false); got != initial {
		t.Errorf("Resize with rotate handle = %+v, want unchanged", got)
	}
}

func TestRotateBox(t *testing.T) {
	initial := Box{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name           string
		sx, sy, px, py float64
		startRot       float64
		want           float64
	}{
		{"quarter turn", 100, 50, 50, 100, 0, math.Pi / 2},
		{"no sweep", 100, 50, 100, 50, 0, 0},
		{"half turn", 100, 50, 0, 50, 0, math.Pi},
		{"adds to existing rotation", 100, 50, 50, 100, 1, 1 + math.Pi/2},
		{"counter-clockwise", 100, 50, 50, 0, 0, -math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := initial
			in.Rotation = tt.startRot
			got := RotateBox(in, tt.sx, tt.sy, tt.px, tt.py)
			if !near(got.Rotation, tt.want, 1e-9) {
				t.Errorf("Rotation = %v, want %v", got.Rotation, tt.want)
			}
			if got.X != in.X || got.Y != in.Y || got.Width != in.Width || got.Height != in.Height {
				t.Error("RotateBox changed placement or size")
			}
		})
	}
}

func TestBoxOf(t *testing.T) {
	obj := &SceneObject{X: 1, Y: 2, Width: 3, Height: 4, Rotation: 5}
	if got := BoxOf(obj); got != (Box{X: 1, Y: 2, Width: 3, Height: 4, Rotation: 5}) {
		t.Errorf("BoxOf = %+v", got)
	}
}

func boxNear(a, b Box, epsilon float64) bool {
	return near(a.X, b.X, epsilon) && near(a.Y, b.Y, epsilon) &&
		near(a.Width, b.Width, epsilon) && near(a.Height, b.Height, epsilon) &&
		near(a.Rotation, b.Rotation, epsilon)
}
