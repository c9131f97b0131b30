package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurautils/perfilcard/pkg/layout"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	fonts, err := NewFontManager()
	require.NoError(t, err)
	return NewRenderer(fonts)
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestRenderDimensions(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Render(nil, 320, 160)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestRenderFillRect(t *testing.T) {
	r := newTestRenderer(t)
	red := color.RGBA{255, 0, 0, 255}
	img, err := r.Render([]layout.Op{
		layout.FillRect{W: 100, H: 100, Color: red},
	}, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, red, rgbaAt(img, 50, 50))
}

func TestRenderLayeringOrder(t *testing.T) {
	r := newTestRenderer(t)
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	img, err := r.Render([]layout.Op{
		layout.FillRect{W: 100, H: 100, Color: red},
		layout.FillRect{X: 25, Y: 25, W: 50, H: 50, Color: blue},
	}, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, blue, rgbaAt(img, 50, 50), "later ops paint over earlier ones")
	assert.Equal(t, red, rgbaAt(img, 5, 5))
}

func TestRenderCircleClipBlit(t *testing.T) {
	r := newTestRenderer(t)

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, white)
		}
	}

	black := color.RGBA{0, 0, 0, 255}
	img, err := r.Render([]layout.Op{
		layout.FillRect{W: 100, H: 100, Color: black},
		layout.Blit{Src: src, X: 10, Y: 10, W: 80, H: 80, Clip: &layout.Clip{Shape: layout.ShapeCircle}},
	}, 100, 100)
	require.NoError(t, err)

	assert.Equal(t, white, rgbaAt(img, 50, 50), "clip interior shows the image")
	assert.Equal(t, black, rgbaAt(img, 12, 12), "clip corner stays background")
}

func TestRenderClipDoesNotLeak(t *testing.T) {
	r := newTestRenderer(t)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	green := color.RGBA{0, 255, 0, 255}

	img, err := r.Render([]layout.Op{
		layout.Blit{Src: src, X: 10, Y: 10, W: 20, H: 20, Clip: &layout.Clip{Shape: layout.ShapeCircle}},
		layout.FillRect{W: 100, H: 100, Color: green},
	}, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, green, rgbaAt(img, 5, 5), "fill after a clipped blit covers the whole canvas")
}

func TestRenderProgressBar(t *testing.T) {
	r := newTestRenderer(t)
	track := color.RGBA{40, 40, 40, 255}
	fill := color.RGBA{0, 255, 0, 255}

	img, err := r.Render([]layout.Op{
		layout.ProgressBar{
			X: 0, Y: 40, W: 200, H: 20,
			Fraction:   0.5,
			Background: track,
			Fill:       fill,
			Border:     color.RGBA{255, 255, 255, 255},
		},
	}, 200, 100)
	require.NoError(t, err)

	assert.Equal(t, fill, rgbaAt(img, 50, 50), "left half is filled")
	assert.Equal(t, track, rgbaAt(img, 150, 50), "right half shows the track")
}

func TestRenderText(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Render([]layout.Op{
		layout.FillRect{W: 200, H: 100, Color: color.RGBA{0, 0, 0, 255}},
		layout.Text{Value: "Hello", X: 10, Y: 50, Size: 32, Color: color.RGBA{255, 255, 255, 255}},
	}, 200, 100)
	require.NoError(t, err)

	// Some pixel in the text area is no longer pure black.
	var touched bool
	for y := 20; y < 55 && !touched; y++ {
		for x := 10; x < 120; x++ {
			if rgbaAt(img, x, y) != (color.RGBA{0, 0, 0, 255}) {
				touched = true
				break
			}
		}
	}
	assert.True(t, touched, "text drawing leaves visible pixels")
}

func TestEncodePNG(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Render([]layout.Op{
		layout.FillRect{W: 64, H: 32, Color: color.RGBA{9, 9, 9, 255}},
	}, 64, 32)
	require.NoError(t, err)

	buf, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 32, decoded.Bounds().Dy())
}

func TestFontManagerFaces(t *testing.T) {
	fm, err := NewFontManager()
	require.NoError(t, err)

	regular, err := fm.Face(24, "")
	require.NoError(t, err)
	again, err := fm.Face(24, "regular")
	require.NoError(t, err)
	assert.Equal(t, regular, again, "faces are cached per size and weight")

	bold, err := fm.Face(24, "bold")
	require.NoError(t, err)
	assert.NotEqual(t, regular, bold)

	fallback, err := fm.Face(0, "")
	require.NoError(t, err)
	assert.NotNil(t, fallback)
}

func TestMeasureString(t *testing.T) {
	fm, err := NewFontManager()
	require.NoError(t, err)

	short := fm.MeasureString("hi", 24, "")
	long := fm.MeasureString("hello world", 24, "")
	assert.Greater(t, long, short)
	assert.Greater(t, short, 0)
}
