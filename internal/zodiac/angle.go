// Package zodiac classifies ecliptic longitudes into zodiac signs and animates
// the boundaries between two sign conventions.
package zodiac

import "math"

// Normalize maps an angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	if deg >= 0 && deg < 360 {
		return deg
	}
	a := math.Mod(math.Mod(deg, 360)+360, 360)
	// Mod can round a tiny negative up to exactly 360
	if a >= 360 {
		return 0
	}
	return a
}

// ShortestDelta returns to-from adjusted by ±360 so that the result lies in
// (-180, 180] and follows the shorter arc around the circle.
func ShortestDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		// -180 and 180 are the same arc length; report 180
		d += 360
	}
	return d
}

// ArcSpan returns the angular width of the arc [start, end), accounting for
// arcs that cross the 0°/360° seam.
func ArcSpan(start, end float64) float64 {
	if start > end {
		return end + 360 - start
	}
	return end - start
}

// ArcMidpoint returns the longitude halfway along the arc [start, end).
func ArcMidpoint(start, end float64) float64 {
	return Normalize(start + ArcSpan(start, end)/2)
}
