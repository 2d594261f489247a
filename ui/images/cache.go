package images

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

type previewKey struct {
	revision   uint64
	maxW, maxH int
}

// PreviewCache keeps recently scaled previews keyed by document revision and
// target size, so pointer drags do not rescale the source on every event.
type PreviewCache struct {
	cache *lru.Cache[previewKey, *image.NRGBA]
}

// NewPreviewCache returns a cache holding up to size previews.
func NewPreviewCache(size int) *PreviewCache {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[previewKey, *image.NRGBA](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &PreviewCache{cache: c}
}

// Get returns the scaled preview of img for revision, computing it on a miss.
// Callers must not modify the returned image.
func (p *PreviewCache) Get(revision uint64, img image.Image, maxW, maxH int) *image.NRGBA {
	if img == nil {
		return nil
	}
	if p == nil || p.cache == nil {
		return ScaleToFit(img, maxW, maxH)
	}
	key := previewKey{revision: revision, maxW: maxW, maxH: maxH}
	if v, ok := p.cache.Get(key); ok {
		return v
	}
	v := ScaleToFit(img, maxW, maxH)
	p.cache.Add(key, v)
	return v
}

// Len reports the number of cached previews.
func (p *PreviewCache) Len() int {
	if p == nil || p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

// Purge drops all cached previews.
func (p *PreviewCache) Purge() {
	if p != nil && p.cache != nil {
		p.cache.Purge()
	}
}
