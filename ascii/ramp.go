package ascii

// Grayscale ramps from Paul Bourke's character sets
// (http://paulbourke.net/dataformats/asciiart/), darkest first. The source
// map image is black land on white ocean, so the light end of both ramps is
// a plain space and open water renders empty.

// RampCoarse has 9 luminance levels.
var RampCoarse = []rune("@%*+=_-: ")

// RampFine has 70 luminance levels.
var RampFine = []rune("$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. ")

// Ramp quantizes luminance values into glyphs.
type Ramp []rune

// Glyph returns the ramp character for a luminance value. 0 maps to the
// first character, 255 to the last, and the index never decreases as
// luminance increases.
func (r Ramp) Glyph(luminance uint8) rune {
	return r[int(luminance)*(len(r)-1)/255]
}

// SelectRamp picks the fine 70-level ramp or the coarse 9-level one.
func SelectRamp(fine bool) Ramp {
	if fine {
		return Ramp(RampFine)
	}
	return Ramp(RampCoarse)
}
