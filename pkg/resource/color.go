// color.go — Color expression parsing: hex, rgb()/rgba(), CSS names.
package resource

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

var rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9]*\.?[0-9]+)\s*)?\)$`)

// cssNames covers the color keywords templates actually use. A bare word
// outside this set is treated as a path, not a color.
var cssNames = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"lime":    {0, 255, 0, 255},
	"teal":    {0, 128, 128, 255},
	"navy":    {0, 0, 128, 255},
	"maroon":  {128, 0, 0, 255},
	"olive":   {128, 128, 0, 255},
	"brown":   {165, 42, 42, 255},
	"gold":    {255, 215, 0, 255},
	"coral":   {255, 127, 80, 255},
	"crimson": {220, 20, 60, 255},
	"indigo":  {75, 0, 130, 255},
	"violet":  {238, 130, 238, 255},
	"salmon":  {250, 128, 114, 255},
	"tomato":  {255, 99, 71, 255},
}

// IsColor reports whether s is a literal color expression. Callers must
// check this before passing a reference to Resolve — colors are never
// handed to the image loader.
func IsColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r,g,b)",
// "rgba(r,g,b,a)" and known CSS color names.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		r, err1 := strconv.ParseUint(m[1], 10, 16)
		g, err2 := strconv.ParseUint(m[2], 10, 16)
		b, err3 := strconv.ParseUint(m[3], 10, 16)
		if err1 != nil || err2 != nil || err3 != nil || r > 255 || g > 255 || b > 255 {
			return color.RGBA{}, fmt.Errorf("invalid rgb() channel in %q", s)
		}
		a := 255.0
		if m[4] != "" {
			f, err := strconv.ParseFloat(m[4], 64)
			if err != nil || f < 0 || f > 1 {
				return color.RGBA{}, fmt.Errorf("invalid alpha in %q", s)
			}
			a = f * 255
		}
		return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a + 0.5)}, nil
	}

	if c, ok := cssNames[strings.ToLower(s)]; ok {
		return c, nil
	}

	return color.RGBA{}, fmt.Errorf("unrecognized color %q", s)
}

// parseHex handles 3, 6 and 8 digit hex colors (without the leading '#').
func parseHex(hex string) (color.RGBA, error) {
	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color #%s", hex)
		}
		r := uint8(v >> 8)
		g := uint8(v >> 4 & 0xF)
		b := uint8(v & 0xF)
		return color.RGBA{r*16 + r, g*16 + g, b*16 + b, 255}, nil
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color #%s", hex)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color #%s", hex)
		}
		return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color #%s: expected 3, 6 or 8 digits", hex)
	}
}

// MustColor parses s, falling back to the given default on error.
// Safe for rendering paths where a malformed template color should
// degrade instead of failing the whole card.
func MustColor(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
