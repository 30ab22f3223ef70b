package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectCorners(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantR    int
		wantC    int
	}{
		{"north-west corner", 90, -180, 0, 0},
		{"south-east corner", -90, 180, 29, 99},
		{"equator meridian", 0, 0, 15, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := Project(tt.lat, tt.lon, 30, 100, 1.0)
			assert.Equal(t, tt.wantR, r)
			assert.Equal(t, tt.wantC, c)
		})
	}
}

func TestProjectClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude far north", 1000, 0},
		{"latitude far south", -1000, 0},
		{"longitude far east", 0, 720},
		{"longitude far west", 0, -720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := Project(tt.lat, tt.lon, 24, 80, DefaultLatCorrection)
			assert.GreaterOrEqual(t, r, 0)
			assert.Less(t, r, 24)
			assert.GreaterOrEqual(t, c, 0)
			assert.Less(t, c, 80)
		})
	}
}

func TestProjectCorrectionStretchesSouth(t *testing.T) {
	// The correction factor only scales the vertical mapping: a southern
	// location lands further down than with the neutral factor.
	neutralR, neutralC := Project(-30, 20, 60, 120, 1.0)
	stretchedR, stretchedC := Project(-30, 20, 60, 120, DefaultLatCorrection)
	assert.Greater(t, stretchedR, neutralR)
	assert.Equal(t, neutralC, stretchedC)
}
