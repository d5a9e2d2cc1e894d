package vellum

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
)

// BrushTip describes the shape stamped along a brush stroke.
// This is a sealed interface - only types in this package implement it.
//
// Two tips exist: CalligraphicTip, an ellipse with a fixed angle, and
// ImageTip, which stamps a registered raster asset.
type BrushTip interface {
	// tipMarker is an unexported method that seals this interface.
	tipMarker()
}

// CalligraphicTip is an elliptical tip. Roundness 1 is a full circle;
// values toward 0 flatten it into a blade held at Angle radians.
type CalligraphicTip struct {
	Angle     float64
	Roundness float64
}

func (CalligraphicTip) tipMarker() {}

// ImageTip stamps the raster asset registered under ImageID.
type ImageTip struct {
	ImageID string
}

func (ImageTip) tipMarker() {}

var (
	_ BrushTip = CalligraphicTip{}
	_ BrushTip = ImageTip{}
)

// BrushPreset is one configured brush: a tip plus the parameters that drive
// stamp placement along a stroke.
//
// Spacing is the distance between stamps as a fraction of Size. Scatter
// displaces every stamp randomly, scaled by Size. RotationJitter turns each
// stamp by a random angle up to pi times its value. With PressureSize, pen
// pressure scales the stamp between MinSize (a fraction of Size) and Size.
// Smoothing is the input-smoothing strength applied to raw pointer samples
// before tessellation, 0 for none.
type BrushPreset struct {
	ID             uint32
	Name           string
	Tip            BrushTip
	Size           float64
	Spacing        float64
	Scatter        float64
	RotationJitter float64
	PressureSize   bool
	MinSize        float64
	Smoothing      float64
}

type brushJSON struct {
	ID             uint32  `json:"id"`
	Name           string  `json:"name"`
	Tip            tipJSON `json:"tip"`
	Size           float64 `json:"size"`
	Spacing        float64 `json:"spacing"`
	Scatter        float64 `json:"scatter"`
	RotationJitter float64 `json:"rotation_jitter"`
	PressureSize   bool    `json:"pressure_size"`
	MinSize        float64 `json:"min_size"`
	Smoothing      float64 `json:"smoothing"`
}

type tipJSON struct {
	Type      string  `json:"type"`
	Angle     float64 `json:"angle"`
	Roundness float64 `json:"roundness"`
	ImageID   string  `json:"image_id,omitempty"`
}

func (p BrushPreset) MarshalJSON() ([]byte, error) {
	out := brushJSON{
		ID:             p.ID,
		Name:           p.Name,
		Size:           p.Size,
		Spacing:        p.Spacing,
		Scatter:        p.Scatter,
		RotationJitter: p.RotationJitter,
		PressureSize:   p.PressureSize,
		MinSize:        p.MinSize,
		Smoothing:      p.Smoothing,
	}
	switch tip := p.Tip.(type) {
	case CalligraphicTip:
		out.Tip = tipJSON{Type: "calligraphic", Angle: tip.Angle, Roundness: tip.Roundness}
	case ImageTip:
		out.Tip = tipJSON{Type: "image", ImageID: tip.ImageID}
	default:
		out.Tip = tipJSON{Type: "calligraphic", Roundness: 1}
	}
	return json.Marshal(out)
}

func (p *BrushPreset) UnmarshalJSON(data []byte) error {
	var in brushJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = BrushPreset{
		ID:             in.ID,
		Name:           in.Name,
		Size:           in.Size,
		Spacing:        in.Spacing,
		Scatter:        in.Scatter,
		RotationJitter: in.RotationJitter,
		PressureSize:   in.PressureSize,
		MinSize:        in.MinSize,
		Smoothing:      in.Smoothing,
	}
	switch in.Tip.Type {
	case "calligraphic", "":
		p.Tip = CalligraphicTip{Angle: in.Tip.Angle, Roundness: in.Tip.Roundness}
	case "image":
		p.Tip = ImageTip{ImageID: in.Tip.ImageID}
	default:
		return fmt.Errorf("unknown brush tip type %q", in.Tip.Type)
	}
	return nil
}

// DefaultBrushes returns the built-in presets. The slice is fresh on every
// call so callers may modify it.
func DefaultBrushes() []BrushPreset {
	return []BrushPreset{
		{
			ID:           1,
			Name:         "Basic Round",
			Tip:          CalligraphicTip{Angle: 0, Roundness: 1},
			Size:         10,
			Spacing:      0.1,
			PressureSize: true,
			MinSize:      0.2,
			Smoothing:    0.5,
		},
		{
			ID:           2,
			Name:         "Calligraphic Flat",
			Tip:          CalligraphicTip{Angle: math.Pi / 4, Roundness: 0.1},
			Size:         20,
			Spacing:      0.05,
			PressureSize: true,
			MinSize:      0.5,
			Smoothing:    0.3,
		},
	}
}

// BrushRegistry holds brush presets keyed by ID. A registry is safe for
// concurrent use and may be shared between engines.
type BrushRegistry struct {
	mu      sync.Mutex
	brushes map[uint32]BrushPreset
}

// NewBrushRegistry returns a registry seeded with the default presets.
func NewBrushRegistry() *BrushRegistry {
	r := &BrushRegistry{brushes: make(map[uint32]BrushPreset)}
	for _, b := range DefaultBrushes() {
		r.brushes[b.ID] = b
	}
	return r
}

// Get returns the preset with the given ID.
func (r *BrushRegistry) Get(id uint32) (BrushPreset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brushes[id]
	return b, ok
}

// Register adds the preset under a fresh ID, one past the highest in use,
// and returns that ID. The preset's own ID field is ignored.
func (r *BrushRegistry) Register(p BrushPreset) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID uint32
	for id := range r.brushes {
		if id > maxID {
			maxID = id
		}
	}
	p.ID = maxID + 1
	r.brushes[p.ID] = p
	return p.ID
}

// Update replaces the preset whose ID matches p.ID. Returns false if no
// such preset exists.
func (r *BrushRegistry) Update(p BrushPreset) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brushes[p.ID]; !ok {
		return false
	}
	r.brushes[p.ID] = p
	return true
}

// List returns all presets ordered by ID.
func (r *BrushRegistry) List() []BrushPreset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BrushPreset, 0, len(r.brushes))
	for _, b := range r.brushes {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
