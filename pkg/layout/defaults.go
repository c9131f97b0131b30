// defaults.go — Per-block defaulting of partially specified template
// fields. The loader never repairs documents; every gap is filled here,
// immediately before the block is turned into operations.
package layout

import (
	"image/color"

	"github.com/aurautils/perfilcard/pkg/template"
)

// Hard-coded fallbacks for documents that omit styling entirely.
var (
	fallbackCanvas = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}
	fallbackText   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	fallbackPanel  = color.RGBA{0x2a, 0x2a, 0x2a, 0xff}
	fallbackFill   = color.RGBA{0x00, 0xff, 0xcc, 0xff}
	fallbackBorder = color.RGBA{0x44, 0x44, 0x44, 0xff}
)

const (
	defaultFontSize  = 24.0
	defaultAvatar    = 96
	defaultBarHeight = 24
	defaultIconPad   = 8.0
)

func fontDefaults(f template.Font) template.Font {
	if f.Size <= 0 {
		f.Size = defaultFontSize
	}
	return f
}

func slotDefaults(s template.TextSlot) template.TextSlot {
	s.Font = fontDefaults(s.Font)
	return s
}

func avatarDefaults(a template.Avatar) template.Avatar {
	if a.Size <= 0 {
		a.Size = defaultAvatar
	}
	if a.Shape != "rounded" {
		a.Shape = "circle"
	}
	if a.Shape == "rounded" && a.Radius <= 0 {
		a.Radius = a.Size / 8
	}
	return a
}

func sidebarDefaults(s template.Sidebar) template.Sidebar {
	if s.Width <= 0 {
		s.Width = 200
	}
	if s.Height <= 0 {
		s.Height = 300
	}
	return s
}

func barDefaults(b template.XPBar, canvasW int) template.XPBar {
	if b.Width <= 0 {
		b.Width = canvasW / 2
	}
	if b.Height <= 0 {
		b.Height = defaultBarHeight
	}
	if b.Radius < 0 {
		b.Radius = 0
	}
	return b
}

func coinsDefaults(c template.Coins) template.Coins {
	if c.Size <= 0 {
		c.Size = 28
	}
	c.Font = fontDefaults(c.Font)
	return c
}

func itemDefaults(it template.TextItem) template.TextItem {
	it.Font = fontDefaults(it.Font)
	if it.LineHeight <= 0 {
		it.LineHeight = int(it.Font.Size * 1.5)
	}
	return it
}
