package ascii

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Bitmap is a rectangular grid of luminance samples (0 dark, 255 light),
// row-major. It is read once per terminal-size change and never mutated.
type Bitmap struct {
	W, H int
	Pix  []uint8
}

// At returns the luminance sample at (x, y). No bounds checking; callers
// iterate within W/H.
func (b *Bitmap) At(x, y int) uint8 {
	return b.Pix[y*b.W+x]
}

// LoadBitmap decodes a PNG or JPEG file into a grayscale bitmap. Luminance
// is the plain channel average, matching how the map asset was authored.
func LoadBitmap(path string) (*Bitmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode map image %s: %w", path, err)
	}

	bounds := img.Bounds()
	bm := &Bitmap{
		W:   bounds.Dx(),
		H:   bounds.Dy(),
		Pix: make([]uint8, bounds.Dx()*bounds.Dy()),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA channels are 16-bit; average then scale to 8-bit.
			bm.Pix[i] = uint8(((r + g + b) / 3) >> 8)
			i++
		}
	}
	return bm, nil
}

// BitmapFromRows builds a bitmap from a '#'-on-space ASCII asset: '#' is
// land (dark), everything else ocean (light).
func BitmapFromRows(rows []string) *Bitmap {
	if len(rows) == 0 {
		return &Bitmap{}
	}
	w := len(rows[0])
	bm := &Bitmap{W: w, H: len(rows), Pix: make([]uint8, w*len(rows))}
	for y, row := range rows {
		for x := 0; x < w; x++ {
			lum := uint8(255)
			if x < len(row) && row[x] == '#' {
				lum = 0
			}
			bm.Pix[y*w+x] = lum
		}
	}
	return bm
}
