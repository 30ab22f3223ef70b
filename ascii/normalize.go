package ascii

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// NormalizeLine forces a line to an exact display width in terminal
// columns. Wide runes (East Asian fullwidth) count as two columns; a rune
// that would straddle the target width is dropped rather than split.
// Shorter lines are padded with single-width spaces. Normalizing an
// already-normalized line is a no-op.
func NormalizeLine(line string, width int) string {
	if width <= 0 {
		return ""
	}

	current := StringWidth(line)
	if current == width {
		return line
	}
	if current < width {
		return line + strings.Repeat(" ", width-current)
	}

	var b strings.Builder
	b.Grow(width)
	used := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}

// StringWidth returns the display width of a string in terminal columns.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runewidth.RuneWidth(r)
	}
	return w
}
