package model

import (
	"image"
	"sync"
)

// DocumentModel is the single current-image slot. Every replacement bumps
// the revision so derived data (scaled previews) can be keyed on it.
// The zero value is empty and usable.
type DocumentModel struct {
	mu       sync.RWMutex
	img      image.Image
	source   string
	revision uint64
}

func NewDocumentModel() *DocumentModel { return &DocumentModel{} }

// Replace installs img as the current image. source names where it came from
// (file path, "screen", "crop").
func (m *DocumentModel) Replace(img image.Image, source string) uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.img = img
	m.source = source
	m.revision++
	return m.revision
}

// Image returns the current image or nil.
func (m *DocumentModel) Image() image.Image {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.img
}

func (m *DocumentModel) Source() string {
	if m == nil {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

func (m *DocumentModel) Revision() uint64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// Loaded reports whether an image is present.
func (m *DocumentModel) Loaded() bool { return m.Image() != nil }
