// cache.go — Process-lifetime image cache keyed by source string.
package resource

import (
	"image"
	"sync"
	"time"
)

type cacheEntry struct {
	img    image.Image
	loaded time.Time
}

// ImageCache stores decoded images keyed by their exact source string
// (URL or filesystem path). Two source strings that reference the same
// bytes are cached separately; there is no content-hash dedup.
//
// With a zero refresh interval entries live for the process lifetime.
// A positive interval makes stale entries reload on next access.
type ImageCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	refresh time.Duration
}

// NewImageCache creates a cache. refresh == 0 means entries never expire.
func NewImageCache(refresh time.Duration) *ImageCache {
	return &ImageCache{
		entries: make(map[string]cacheEntry),
		refresh: refresh,
	}
}

// Get returns the cached image for key, if present and fresh.
func (c *ImageCache) Get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.refresh > 0 && time.Since(e.loaded) > c.refresh {
		delete(c.entries, key)
		return nil, false
	}
	return e.img, true
}

// Put stores an image under key.
func (c *ImageCache) Put(key string, img image.Image) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{img: img, loaded: time.Now()}
	c.mu.Unlock()
}

// GetOrLoad returns the cached image or invokes load to populate it.
// The lock is not held across load, so concurrent misses for the same key
// may both load; the write is idempotent and last write wins.
func (c *ImageCache) GetOrLoad(key string, load func() (image.Image, error)) (image.Image, error) {
	if img, ok := c.Get(key); ok {
		return img, nil
	}
	img, err := load()
	if err != nil {
		return nil, err
	}
	c.Put(key, img)
	return img, nil
}

// Len reports the number of cached entries.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
