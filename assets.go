package vellum

import (
	"sync"

	"github.com/google/uuid"
)

// ImageAsset is a registered raster image: RGBA pixels, 4 bytes per pixel,
// row major.
type ImageAsset struct {
	Width  int
	Height int
	Pixels []byte
}

// AssetStore holds the raster assets referenced by image objects and image
// brush tips, keyed by string. A store is safe for concurrent use and may
// be shared between engines.
type AssetStore struct {
	mu     sync.Mutex
	images map[string]*ImageAsset
}

// NewAssetStore returns an empty store.
func NewAssetStore() *AssetStore {
	return &AssetStore{images: make(map[string]*ImageAsset)}
}

// Register stores pixels under the key and returns the key actually used.
// An empty key gets a fresh UUID.
func (s *AssetStore) Register(key string, w, h int, pixels []byte) string {
	if key == "" {
		key = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[key] = &ImageAsset{Width: w, Height: h, Pixels: pixels}
	return key
}

// Get returns the asset under the key, or nil.
func (s *AssetStore) Get(key string) *ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.images[key]
}

// Replace swaps the pixels of an existing asset. Objects referring to the
// key pick up the new pixels on their next draw; the swap is not an
// undoable document change. Returns false when the key is unknown.
func (s *AssetStore) Replace(key string, w, h int, pixels []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[key]; !ok {
		return false
	}
	s.images[key] = &ImageAsset{Width: w, Height: h, Pixels: pixels}
	return true
}

// Len returns the number of registered assets.
func (s *AssetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
