// Package astro provides time scales, reference-frame conversions and the
// fixed-star catalog used to place bodies on the ecliptic.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// DaysSinceJ2000 returns fractional days elapsed since J2000.0.
// The time is taken as UTC; the difference from TT is ignored.
func DaysSinceJ2000(t time.Time) float64 {
	return julian.TimeToJD(t.UTC()) - base.J2000
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
