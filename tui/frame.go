package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rows reserved above the map for the info line and separator.
const headerRows = 2

// Frame is one fully composed screen: the header fields plus the map rows
// with the marker already overlaid. Frames are compared textually between
// ticks; an identical frame is never flushed twice. MarkerRow/MarkerCol
// locate the marker cell for styling (-1 when no marker is on the map; the
// fine ramp contains an 'X' of its own, so the glyph alone cannot identify
// the marker).
type Frame struct {
	IP        string
	Place     string
	Interval  string
	Rows      []string
	MarkerRow int
	MarkerCol int
}

// String renders the frame to one comparable text blob.
func (f Frame) String() string {
	var b strings.Builder
	b.WriteString("External IP: ")
	b.WriteString(f.IP)
	b.WriteString(" -- Location: ")
	b.WriteString(f.Place)
	b.WriteString(" -- (Updates every ")
	b.WriteString(f.Interval)
	b.WriteString(")\n")
	for _, row := range f.Rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func runeDisplayWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}
