// Package resource classifies and loads drawable references: remote URLs,
// local asset paths, literal color expressions, and short emoji glyphs.
package resource

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Kind is the classification of a reference string.
type Kind int

const (
	KindPath Kind = iota
	KindURL
	KindColor
	KindGlyph
)

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// Classify determines how a reference string should be handled.
// Glyph detection runs first so that a single emoji is never mistaken
// for a filename; color detection runs before the path fallback.
func Classify(ref string) Kind {
	switch {
	case IsGlyph(ref):
		return KindGlyph
	case urlPattern.MatchString(ref):
		return KindURL
	case IsColor(ref):
		return KindColor
	default:
		return KindPath
	}
}

// IsGlyph reports whether ref is a short emoji/symbol run (at most three
// runes, none of them from the ASCII/Latin range). Such references are
// rendered as literal text, never loaded as images.
func IsGlyph(ref string) bool {
	if ref == "" {
		return false
	}
	n := 0
	for _, r := range ref {
		n++
		if n > 3 || r < 0x2000 {
			return false
		}
	}
	return true
}

// Sentinel failure modes, wrapped inside *ResolveError.
var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNetworkFetch  = errors.New("network fetch failed")
	ErrDecode        = errors.New("image decode failed")
)

// ResolveError records which reference failed and why.
type ResolveError struct {
	Ref string
	Err error
}

func (e *ResolveError) Error() string { return fmt.Sprintf("resolve %q: %v", e.Ref, e.Err) }
func (e *ResolveError) Unwrap() error { return e.Err }

// Resolved is the outcome of a successful resolution: either a decoded
// image, or a glyph to be drawn as literal text (Image == nil).
type Resolved struct {
	Image image.Image
	Glyph string
}

// IsGlyph reports whether the reference resolved to text instead of pixels.
func (r *Resolved) IsGlyph() bool { return r.Image == nil }

// Resolver turns reference strings into drawable inputs, caching decoded
// images by their exact source string.
type Resolver struct {
	cache  *ImageCache
	client *http.Client
}

// DefaultFetchTimeout bounds remote image fetches so a hung origin cannot
// block a render forever.
const DefaultFetchTimeout = 15 * time.Second

// NewResolver creates a resolver backed by the given cache. A zero timeout
// selects DefaultFetchTimeout.
func NewResolver(cache *ImageCache, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Resolver{
		cache:  cache,
		client: &http.Client{Timeout: timeout},
	}
}

// Resolve loads the reference. Glyphs pass through untouched. URLs are
// fetched and decoded. Anything else is treated as a path relative to
// baseDir and must exist locally before a decode is attempted; there is no
// network fallback for paths. Color strings must be filtered out by the
// caller with IsColor before calling Resolve.
func (r *Resolver) Resolve(ref, baseDir string) (*Resolved, error) {
	if IsGlyph(ref) {
		return &Resolved{Glyph: ref}, nil
	}

	if urlPattern.MatchString(ref) {
		img, err := r.cache.GetOrLoad(ref, func() (image.Image, error) {
			return r.fetch(ref)
		})
		if err != nil {
			return nil, err
		}
		return &Resolved{Image: img}, nil
	}

	p := ref
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, ref)
	}
	if _, err := os.Stat(p); err != nil {
		return nil, &ResolveError{Ref: ref, Err: ErrAssetNotFound}
	}
	img, err := r.cache.GetOrLoad(p, func() (image.Image, error) {
		f, err := os.Open(p)
		if err != nil {
			return nil, &ResolveError{Ref: ref, Err: ErrAssetNotFound}
		}
		defer f.Close()
		decoded, _, err := image.Decode(f)
		if err != nil {
			return nil, &ResolveError{Ref: ref, Err: ErrDecode}
		}
		return decoded, nil
	})
	if err != nil {
		return nil, err
	}
	return &Resolved{Image: img}, nil
}

// fetch downloads and decodes a remote image.
func (r *Resolver) fetch(url string) (image.Image, error) {
	resp, err := r.client.Get(url)
	if err != nil {
		return nil, &ResolveError{Ref: url, Err: ErrNetworkFetch}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ResolveError{Ref: url, Err: fmt.Errorf("%w: status %d", ErrNetworkFetch, resp.StatusCode)}
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &ResolveError{Ref: url, Err: ErrDecode}
	}
	return img, nil
}
