package ascii

import (
	"errors"
	"strings"
)

// ErrTooSmall is returned when the requested grid needs more cells than the
// source bitmap has pixels.
var ErrTooSmall = errors.New("ascii: image resolution too small for requested grid")

// Render converts a grayscale bitmap into rows of glyphs, cols cells wide.
// scale is the character aspect compensation (cell height / cell width as
// seen on screen): tiles are w = W/cols pixels wide and w/scale tall, so a
// scale below 1 yields fewer, taller tiles. The last tile in each row and
// column absorbs the division remainder; no samples are dropped and none
// overlap. Output depends only on the inputs, so it is re-run on resize and
// never per frame.
func Render(b *Bitmap, cols int, scale float64, fine bool) ([]string, error) {
	ramp := SelectRamp(fine)

	w := float64(b.W) / float64(cols)
	h := w / scale
	rows := int(float64(b.H) / h)

	// Tiles shorter or narrower than one pixel collapse to zero samples
	// under truncation, so a grid denser than the source in either axis is
	// rejected outright.
	if cols > b.W || rows > b.H || w < 1 || h < 1 {
		return nil, ErrTooSmall
	}

	out := make([]string, 0, rows)
	for j := 0; j < rows; j++ {
		y1 := int(float64(j) * h)
		y2 := int(float64(j+1) * h)
		if j == rows-1 {
			y2 = b.H
		}

		var line strings.Builder
		line.Grow(cols)
		for i := 0; i < cols; i++ {
			x1 := int(float64(i) * w)
			x2 := int(float64(i+1) * w)
			if i == cols-1 {
				x2 = b.W
			}
			line.WriteRune(ramp.Glyph(b.averageAt(x1, y1, x2, y2)))
		}
		out = append(out, line.String())
	}
	return out, nil
}

// averageAt computes the arithmetic mean luminance of the tile
// [x1,x2)x[y1,y2). Tiles are never empty: with tile extents of at least one
// pixel, consecutive truncated boundaries are always strictly increasing.
func (b *Bitmap) averageAt(x1, y1, x2, y2 int) uint8 {
	var sum uint64
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			sum += uint64(b.At(x, y))
		}
	}
	return uint8(sum / uint64((x2-x1)*(y2-y1)))
}
