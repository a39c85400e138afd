// README: Geographic point value object (decimal degrees).
package types

import "math"

type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point has finite coordinates inside the WGS84 range.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
