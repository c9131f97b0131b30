package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedMeasurer makes every rune 10px wide, independent of size/weight.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureString(s string, _ float64, _ string) int {
	return 10 * len([]rune(s))
}

func wrap(s string, maxWidth, maxLines int) []string {
	return wrapText(s, maxWidth, maxLines, 16, "", fixedMeasurer{})
}

func TestWrapFitsOneLine(t *testing.T) {
	assert.Equal(t, []string{"short text"}, wrap("short text", 100, 0))
}

func TestWrapGreedyPacking(t *testing.T) {
	// 10 chars per line at width 100.
	assert.Equal(t, []string{"aa bb cc", "dd ee"}, wrap("aa bb cc dd ee", 90, 0))
}

func TestWrapMaxLinesDropsRemainder(t *testing.T) {
	lines := wrap("one two three four five six seven eight nine ten", 150, 2)
	assert.Len(t, lines, 2)
	assert.Equal(t, "one two three", lines[0])
	assert.Equal(t, "four five six", lines[1])
}

func TestWrapOverlongWordAlone(t *testing.T) {
	lines := wrap("hi extraordinarily ok", 100, 0)
	assert.Equal(t, []string{"hi", "extraordinarily", "ok"}, lines)
}

func TestWrapNoWidthLimit(t *testing.T) {
	assert.Equal(t, []string{"a b c"}, wrap("a  b \t c", 0, 0))
}

func TestWrapEmpty(t *testing.T) {
	assert.Nil(t, wrap("", 100, 2))
	assert.Nil(t, wrap("   ", 100, 2))
}
