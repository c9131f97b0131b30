// fonts.go — Font face management with embedded regular and bold faces.
// Uses golang.org/x/image/font for OpenType rendering; faces are cached
// per (size, weight) since face creation is not free.
package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	size float64
	bold bool
}

// FontManager hands out font faces and text measurements.
type FontManager struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFontManager parses the embedded Go fonts.
func NewFontManager() (*FontManager, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &FontManager{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Face returns a cached face for the given size and weight. Non-positive
// sizes fall back to 24; any weight other than "bold" selects regular.
func (fm *FontManager) Face(size float64, weight string) (font.Face, error) {
	if size <= 0 {
		size = 24
	}
	key := faceKey{size: size, bold: weight == "bold"}

	fm.mu.Lock()
	defer fm.mu.Unlock()
	if face, ok := fm.faces[key]; ok {
		return face, nil
	}

	src := fm.regular
	if key.bold {
		src = fm.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	fm.faces[key] = face
	return face, nil
}

// MeasureString reports the pixel advance of s. Implements layout.Measurer.
func (fm *FontManager) MeasureString(s string, size float64, weight string) int {
	face, err := fm.Face(size, weight)
	if err != nil {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}
