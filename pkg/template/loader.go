// loader.go — Template document loading with a process-lifetime cache.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is the only failure mode of Load: the named template either
// has no source or its document cannot be read as JSON. A found document
// with missing fields is not repaired here — defaulting is the layout
// engine's job.
var ErrNotFound = errors.New("template not found")

// OverlayFile is the conventional overlay image inside a template bundle.
const OverlayFile = "template.png"

// Source supplies raw template documents by name.
type Source interface {
	Load(name string) ([]byte, error)
}

// AssetSource is optionally implemented by sources whose templates carry
// sibling assets (overlay image, icons) on the local filesystem.
type AssetSource interface {
	AssetDir(name string) string
}

// DirSource reads <root>/<name>/template.json.
type DirSource struct {
	Root string
}

// Load reads the document for name. Names containing path separators or
// parent references are rejected outright.
func (s DirSource) Load(name string) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: illegal name %q", ErrNotFound, name)
	}
	data, err := os.ReadFile(filepath.Join(s.Root, name, "template.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// AssetDir returns the directory holding the template's sibling assets.
func (s DirSource) AssetDir(name string) string {
	if !validName(name) {
		return ""
	}
	return filepath.Join(s.Root, name)
}

func validName(name string) bool {
	return name != "" &&
		!strings.ContainsAny(name, `/\`) &&
		name != "." && name != ".."
}

type loadedDoc struct {
	doc    *Document
	loaded time.Time
}

// Loader caches parsed documents by template name. With a zero refresh
// interval a successfully loaded document is never re-read for the
// process lifetime.
type Loader struct {
	src     Source
	mu      sync.Mutex
	cache   map[string]loadedDoc
	refresh time.Duration
}

// NewLoader creates a loader over src. refresh == 0 disables expiry.
func NewLoader(src Source, refresh time.Duration) *Loader {
	return &Loader{
		src:     src,
		cache:   make(map[string]loadedDoc),
		refresh: refresh,
	}
}

// Load returns the cached document for name, reading and parsing it on
// first access. Any read or parse failure maps to ErrNotFound.
func (l *Loader) Load(name string) (*Document, error) {
	l.mu.Lock()
	if e, ok := l.cache[name]; ok {
		if l.refresh == 0 || time.Since(e.loaded) <= l.refresh {
			l.mu.Unlock()
			return e.doc, nil
		}
		delete(l.cache, name)
	}
	l.mu.Unlock()

	data, err := l.src.Load(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}

	l.mu.Lock()
	l.cache[name] = loadedDoc{doc: &doc, loaded: time.Now()}
	l.mu.Unlock()
	return &doc, nil
}

// AssetDir returns the template's local asset directory, or "" when the
// source has no filesystem presence (remote or test sources).
func (l *Loader) AssetDir(name string) string {
	if as, ok := l.src.(AssetSource); ok {
		return as.AssetDir(name)
	}
	return ""
}
