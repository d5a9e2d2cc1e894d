package vellum

// Option configures an Engine during creation.
//
// Example:
//
//	// Default 800x600 white artboard
//	e := vellum.NewEngine()
//
//	// Custom artboard, shared brush registry
//	e := vellum.NewEngine(
//		vellum.WithArtboard(1920, 1080, vellum.White),
//		vellum.WithBrushRegistry(brushes),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	artboard     Artboard
	historyLimit int
	snapRadius   float64
	brushes      *BrushRegistry
	assets       *AssetStore
}

func defaultConfig() engineOptions {
	return engineOptions{
		artboard:     Artboard{Width: 800, Height: 600, Background: White},
		historyLimit: 100,
		snapRadius:   8,
	}
}

// WithArtboard sets the initial artboard size and background color.
func WithArtboard(width, height float64, background Color) Option {
	return func(o *engineOptions) {
		o.artboard = Artboard{
			Width:      maxf(width, 1),
			Height:     maxf(height, 1),
			Background: background,
		}
	}
}

// WithHistoryLimit caps the undo depth: the oldest snapshot is dropped
// once the stack exceeds the limit. Zero or negative means unbounded.
func WithHistoryLimit(limit int) Option {
	return func(o *engineOptions) {
		o.historyLimit = limit
	}
}

// WithSnapRadius sets the pen tool's close-path snap distance in screen
// units.
func WithSnapRadius(radius float64) Option {
	return func(o *engineOptions) {
		o.snapRadius = radius
	}
}

// WithBrushRegistry shares a brush registry between engines instead of
// giving this engine its own copy of the defaults.
func WithBrushRegistry(r *BrushRegistry) Option {
	return func(o *engineOptions) {
		o.brushes = r
	}
}

// WithAssetStore shares an asset store between engines.
func WithAssetStore(s *AssetStore) Option {
	return func(o *engineOptions) {
		o.assets = s
	}
}
