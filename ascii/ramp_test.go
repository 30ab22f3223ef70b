package ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRampExtremes(t *testing.T) {
	tests := []struct {
		name string
		ramp Ramp
	}{
		{"coarse", Ramp(RampCoarse)},
		{"fine", Ramp(RampFine)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ramp[0], tt.ramp.Glyph(0), "luminance 0 must map to the darkest glyph")
			assert.Equal(t, tt.ramp[len(tt.ramp)-1], tt.ramp.Glyph(255), "luminance 255 must map to the lightest glyph")
		})
	}
}

func TestRampMonotonic(t *testing.T) {
	for _, ramp := range []Ramp{Ramp(RampCoarse), Ramp(RampFine)} {
		index := func(r rune) int {
			for i, c := range ramp {
				if c == r {
					return i
				}
			}
			t.Fatalf("glyph %q not in ramp", r)
			return -1
		}

		prev := 0
		for l := 0; l <= 255; l++ {
			i := index(ramp.Glyph(uint8(l)))
			if i < prev {
				t.Fatalf("ramp index decreased at luminance %d: %d -> %d", l, prev, i)
			}
			prev = i
		}
	}
}

func TestSelectRamp(t *testing.T) {
	assert.Len(t, SelectRamp(false), 9)
	assert.Len(t, SelectRamp(true), 70)
}
