package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// glyphAspect is the estimated advance of a monospace glyph relative to the
// font size.
const glyphAspect = 0.65

// CharsPerLine estimates how many characters fit across width pixels.
func CharsPerLine(width, fontSize int) int {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	n := int(float64(width) / (float64(fontSize) * glyphAspect))
	if n < 1 {
		return 1
	}
	return n
}

// Wrap breaks text into lines no wider than CharsPerLine, filling each line
// greedily. Explicit newlines are kept as line breaks and words longer than
// a line are left whole.
func Wrap(text string, width, fontSize int) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	wrapped := wordwrap.String(text, CharsPerLine(width, fontSize))
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
