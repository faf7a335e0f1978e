package zodiac

// Interpolate blends from toward to at eased progress p in [0, 1].
//
// Tables are index-aligned. The glyph and name of every result sign come
// from to; only the boundaries move. Ordinary signs interpolate start and
// end linearly. The wraparound sign interpolates along the shorter arc so
// its boundaries never sweep the long way round, and keeps its seam
// crossing near whichever endpoint wraps: always when to wraps, and during
// the first half when only from wrapped.
//
// p <= 0 returns from's boundaries and p >= 1 returns an exact copy of to.
func Interpolate(from, to Table, p float64) Table {
	if p >= 1 {
		return to
	}

	var out Table
	for i := range out {
		f, t := from[i], to[i]
		s := Sign{Glyph: t.Glyph, Name: t.Name}

		switch {
		case p <= 0:
			s.Start, s.End = f.Start, f.End
		case f.IsWraparound() || t.IsWraparound():
			s.Start, s.End = interpolateWraparound(f, t, p)
		default:
			s.Start = lerp(f.Start, t.Start, p)
			s.End = lerp(f.End, t.End, p)
		}
		out[i] = s
	}
	return out
}

func interpolateWraparound(f, t Sign, p float64) (start, end float64) {
	start = Normalize(f.Start + ShortestDelta(f.Start, t.Start)*p)
	end = Normalize(f.End + ShortestDelta(f.End, t.End)*p)

	switch {
	case t.IsWraparound() && t.Wraps():
		if start < end {
			start += 360
		}
	case f.IsWraparound() && f.Wraps():
		if start < end && p < 0.5 {
			start += 360
		}
	}
	return start, end
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// EaseInOut is the quadratic ease-in-out curve applied to linear animation
// progress. Input is clamped to [0, 1].
func EaseInOut(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	case p < 0.5:
		return 2 * p * p
	default:
		q := -2*p + 2
		return 1 - q*q/2
	}
}
