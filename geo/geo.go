// Package geo holds the location record and the equirectangular
// lat/lon-to-cell projection.
package geo

import "fmt"

// DefaultLatCorrection compensates for the shipped map asset not spanning
// the full polar range edge to edge (1/0.85, calibrated against map.png).
// It is a property of the specific image, not of the projection; recalibrate
// when changing the asset.
const DefaultLatCorrection = 1.0 / 0.85

// Location is a resolved public address with its approximate position.
// Replaced wholesale on every successful lookup, never partially mutated.
type Location struct {
	IP      string
	Lat     float64
	Lon     float64
	City    string
	Region  string
	Country string
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%s, %s, %s) %.4f,%.4f", l.IP, l.City, l.Region, l.Country, l.Lat, l.Lon)
}

// Project maps latitude/longitude onto a (row, col) cell of a rows x cols
// grid. Row 0 is the north edge, column 0 is longitude -180. Out-of-range
// coordinates clamp to the grid rather than fail; latCorrection stretches
// the vertical mapping (1.0 is neutral).
func Project(lat, lon float64, rows, cols int, latCorrection float64) (int, int) {
	r := int((90 - lat) / 180 * float64(rows) * latCorrection)
	c := int((lon + 180) / 360 * float64(cols))
	return clamp(r, 0, rows-1), clamp(c, 0, cols-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
