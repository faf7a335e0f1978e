// Package chart assembles classified body placements into a wheel chart and
// renders or exports it.
package chart

import (
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// EveningArcSpan is the width of the evening-sky arc in degrees.
const EveningArcSpan = 45.0

// Placement is one body classified against a table.
type Placement struct {
	Info          ephem.BodyInfo
	Position      ephem.Position
	Sign          zodiac.Sign
	SignIndex     int
	DegreesInSign float64
	Degraded      bool
}

// StarPlacement is a fixed star projected onto the ecliptic.
type StarPlacement struct {
	Star         astro.Star
	LongitudeDeg float64
	LatitudeDeg  float64
	Sign         zodiac.Sign
}

// Arc is a half-open stretch of ecliptic [Start, End) in degrees.
type Arc struct {
	Start float64
	End   float64
}

// Contains reports whether lon lies on the arc.
func (a Arc) Contains(lon float64) bool {
	lon = zodiac.Normalize(lon)
	if a.Start > a.End {
		return lon >= a.Start || lon < a.End
	}
	return lon >= a.Start && lon < a.End
}

// Span returns the arc width in degrees.
func (a Arc) Span() float64 {
	return zodiac.ArcSpan(a.Start, a.End)
}

// EveningArc returns the stretch of ecliptic following the Sun, which is
// what stays above the western horizon after sunset.
func EveningArc(sunLon float64) Arc {
	return Arc{
		Start: zodiac.Normalize(sunLon),
		End:   zodiac.Normalize(sunLon + EveningArcSpan),
	}
}

// Chart is everything needed to draw one frame of the wheel.
type Chart struct {
	Time       time.Time
	Table      zodiac.Table
	Placements []Placement
	Stars      []StarPlacement

	EveningArc    Arc
	HasEveningArc bool // false when the Sun's position is unavailable

	Degraded    int // placements resolved by the classifier fallback
	Approximate int // placements from the approximate oracle
	Dropped     int // positions skipped because they were invalid
}

// Build classifies every valid position against table. Invalid positions
// are counted in Dropped and left out; unknown bodies are dropped the same
// way since the registry has nothing to draw for them.
func Build(t time.Time, table zodiac.Table, positions []ephem.Position, stars []astro.Star) Chart {
	c := Chart{Time: t, Table: table}

	for _, pos := range positions {
		info, err := pos.Body.Info()
		if !pos.Valid || err != nil {
			c.Dropped++
			continue
		}

		cl := zodiac.Classify(pos.LongitudeDeg, table)
		c.Placements = append(c.Placements, Placement{
			Info:          info,
			Position:      pos,
			Sign:          cl.Sign,
			SignIndex:     cl.Index,
			DegreesInSign: cl.Sign.DegreesInto(cl.Longitude),
			Degraded:      cl.Degraded,
		})
		if cl.Degraded {
			c.Degraded++
		}
		if pos.Approximate {
			c.Approximate++
		}
		if pos.Body == ephem.BodySun {
			c.EveningArc = EveningArc(pos.LongitudeDeg)
			c.HasEveningArc = true
		}
	}

	for _, s := range stars {
		lon, lat := s.Ecliptic()
		c.Stars = append(c.Stars, StarPlacement{
			Star:         s,
			LongitudeDeg: lon,
			LatitudeDeg:  lat,
			Sign:         zodiac.Classify(lon, table).Sign,
		})
	}

	return c
}

// Placement returns the placement for body, if it was charted.
func (c Chart) Placement(body ephem.Body) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Info.Body == body {
			return p, true
		}
	}
	return Placement{}, false
}

// TableName names a table by the canonical convention it matches, or
// "transition" for an interpolated table.
func TableName(t zodiac.Table) string {
	switch t {
	case zodiac.TrueTable():
		return zodiac.ConventionTrue.String()
	case zodiac.TraditionalTable():
		return zodiac.ConventionTraditional.String()
	default:
		return "transition"
	}
}
