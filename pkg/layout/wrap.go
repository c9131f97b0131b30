// wrap.go — Greedy word wrapping against measured text widths.
package layout

import "strings"

// Measurer reports the pixel advance of a string at a given font size and
// weight. Implemented by render.FontManager; tests inject fixed-width fakes.
type Measurer interface {
	MeasureString(s string, size float64, weight string) int
}

// wrapText packs words greedily into lines no wider than maxWidth. A single
// word wider than maxWidth is placed alone on its own line, never broken
// mid-word. Once maxLines lines exist the remaining words are dropped
// silently. maxLines <= 0 means unlimited.
func wrapText(s string, maxWidth, maxLines int, size float64, weight string, m Measurer) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		test := current + " " + word
		if m.MeasureString(test, size, weight) > maxWidth {
			lines = append(lines, current)
			if maxLines > 0 && len(lines) == maxLines {
				return lines
			}
			current = word
		} else {
			current = test
		}
	}
	lines = append(lines, current)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
