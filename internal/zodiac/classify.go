package zodiac

import (
	"errors"
	"math"
)

// BoundaryEpsilon is how close (in degrees) a longitude must be to a sign
// boundary for the fallback classification to attribute it to that sign.
const BoundaryEpsilon = 1e-6

// ErrClassificationAmbiguous marks a classification that matched no sign
// and was resolved by the deterministic fallback.
var ErrClassificationAmbiguous = errors.New("zodiac: no sign contains longitude")

// Classification is the result of placing a longitude in a table.
type Classification struct {
	Sign      Sign
	Index     int
	Longitude float64 // normalized input
	Degraded  bool    // resolved by fallback rather than by arc membership
}

// Err returns ErrClassificationAmbiguous for degraded classifications.
func (c Classification) Err() error {
	if c.Degraded {
		return ErrClassificationAmbiguous
	}
	return nil
}

// Classify returns the sign of table whose arc contains lon.
//
// The longitude is normalized first. A wrapping sign is tested before the
// ordinary in-order scan; arcs are half-open, so a longitude on a boundary
// belongs to the sign that starts there.
//
// If no arc contains the longitude, which can only happen for tables with
// gaps such as mid-transition tables with floating-point drift, Classify
// falls back in this order: the wraparound sign when lon is within
// BoundaryEpsilon of its boundaries, then the first sign with a boundary
// within BoundaryEpsilon, then the first sign in table order. Such results
// have Degraded set.
func Classify(lon float64, table Table) Classification {
	lon = Normalize(lon)

	if i := table.Wraparound(); i >= 0 && table[i].Contains(lon) {
		return Classification{Sign: table[i], Index: i, Longitude: lon}
	}

	for i, s := range table {
		if !s.Wraps() && s.Contains(lon) {
			return Classification{Sign: s, Index: i, Longitude: lon}
		}
	}

	i := fallbackIndex(lon, table)
	return Classification{Sign: table[i], Index: i, Longitude: lon, Degraded: true}
}

func fallbackIndex(lon float64, table Table) int {
	if i := table.Index(WraparoundSign); i >= 0 && nearBoundary(lon, table[i]) {
		return i
	}
	for i, s := range table {
		if nearBoundary(lon, s) {
			return i
		}
	}
	return 0
}

// nearBoundary compares on the circle so that 359.9999999 is near 0.
func nearBoundary(lon float64, s Sign) bool {
	return math.Abs(ShortestDelta(lon, Normalize(s.Start))) <= BoundaryEpsilon ||
		math.Abs(ShortestDelta(lon, Normalize(s.End))) <= BoundaryEpsilon
}
