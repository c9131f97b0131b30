package resource

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#1e1e1e", color.RGBA{0x1e, 0x1e, 0x1e, 255}},
		{"#ff000080", color.RGBA{255, 0, 0, 0x80}},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}},
		{"rgba(10,20,30,0.5)", color.RGBA{10, 20, 30, 128}},
		{"RGB(1,2,3)", color.RGBA{1, 2, 3, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{" #fff ", color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c, tt.in)
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{
		"", "#ff", "#fffff", "#gggggg",
		"rgb(300,0,0)", "rgba(1,2,3,2)",
		"notacolorname", "https://example.com/x.png", "avatar.png",
	} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestIsColor(t *testing.T) {
	assert.True(t, IsColor("#abc"))
	assert.True(t, IsColor("rgba(0,0,0,1)"))
	assert.True(t, IsColor("teal"))
	assert.False(t, IsColor("template.png"))
	assert.False(t, IsColor("http://example.com/bg.png"))
}

func TestMustColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, MustColor("red", fallback))
	assert.Equal(t, fallback, MustColor("bogus", fallback))
	assert.Equal(t, fallback, MustColor("", fallback))
}
