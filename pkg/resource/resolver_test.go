package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0, 128, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeTempPNG(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, pngBytes(t, 4, 4), 0644))
	return p
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ref  string
		want Kind
	}{
		{"🪙", KindGlyph},
		{"⭐", KindGlyph},
		{"https://example.com/a.png", KindURL},
		{"HTTP://EXAMPLE.COM/A.PNG", KindURL},
		{"#1e1e1e", KindColor},
		{"rgb(1,2,3)", KindColor},
		{"teal", KindColor},
		{"icons/coin.png", KindPath},
		{"coin.png", KindPath},
		{"", KindPath},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.ref), tt.ref)
	}
}

func TestIsGlyph(t *testing.T) {
	assert.True(t, IsGlyph("🪙"))
	assert.True(t, IsGlyph("⭐⭐"))
	assert.False(t, IsGlyph(""))
	assert.False(t, IsGlyph("abc"))
	assert.False(t, IsGlyph("a🪙"))
	assert.False(t, IsGlyph("🪙🪙🪙🪙"))
}

func TestResolveGlyph(t *testing.T) {
	r := NewResolver(NewImageCache(0), 0)
	res, err := r.Resolve("🪙", "")
	require.NoError(t, err)
	assert.True(t, res.IsGlyph())
	assert.Equal(t, "🪙", res.Glyph)
}

func TestResolveLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeTempPNG(t, dir, "avatar.png")

	cache := NewImageCache(0)
	r := NewResolver(cache, 0)

	res, err := r.Resolve("avatar.png", dir)
	require.NoError(t, err)
	require.False(t, res.IsGlyph())
	assert.Equal(t, 4, res.Image.Bounds().Dx())
	assert.Equal(t, 1, cache.Len())

	// Second resolution is a cache hit, keyed by the resolved path.
	_, err = r.Resolve("avatar.png", dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestResolveLocalMissing(t *testing.T) {
	r := NewResolver(NewImageCache(0), 0)
	_, err := r.Resolve("nope.png", t.TempDir())
	assert.ErrorIs(t, err, ErrAssetNotFound)

	var re *ResolveError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "nope.png", re.Ref)
}

func TestResolveLocalUndecodable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0644))

	r := NewResolver(NewImageCache(0), 0)
	_, err := r.Resolve("bad.png", dir)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestResolveRemote(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(pngBytes(t, 8, 8))
	}))
	defer ts.Close()

	r := NewResolver(NewImageCache(0), 0)

	res, err := r.Resolve(ts.URL+"/a.png", "")
	require.NoError(t, err)
	assert.Equal(t, 8, res.Image.Bounds().Dx())

	// Cached by the literal URL: no second fetch.
	_, err = r.Resolve(ts.URL+"/a.png", "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestResolveRemoteBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	r := NewResolver(NewImageCache(0), 0)
	_, err := r.Resolve(ts.URL+"/missing.png", "")
	assert.ErrorIs(t, err, ErrNetworkFetch)
}

func TestResolveRemoteUndecodable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer ts.Close()

	r := NewResolver(NewImageCache(0), 0)
	_, err := r.Resolve(ts.URL+"/page", "")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestResolveConnectionRefused(t *testing.T) {
	r := NewResolver(NewImageCache(0), 0)
	_, err := r.Resolve("http://127.0.0.1:1/x.png", "")
	assert.ErrorIs(t, err, ErrNetworkFetch)
}
