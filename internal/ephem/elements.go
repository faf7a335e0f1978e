package ephem

import (
	"math"
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// ElementsOracle approximates longitudes from each body's mean motion and
// eccentricity. It never fails for a registered body, which makes it the
// last resort behind a precise oracle. For the planets the result is a
// heliocentric mean longitude with no Earth-to-planet parallax, so Mercury,
// Venus and Mars can sit tens of degrees off their geocentric longitude.
// The Sun and Moon stay within a few degrees.
type ElementsOracle struct{}

// NewElementsOracle creates an elements-based oracle.
func NewElementsOracle() *ElementsOracle {
	return &ElementsOracle{}
}

// Name implements Oracle.
func (o *ElementsOracle) Name() string {
	return "elements"
}

// Position implements Oracle.
func (o *ElementsOracle) Position(body Body, t time.Time) (Position, error) {
	info, err := body.Info()
	if err != nil {
		return Position{Body: body, Time: t}, err
	}

	return Position{
		Body:         body,
		Time:         t,
		LongitudeDeg: ElementsLongitude(info.Elements, astro.DaysSinceJ2000(t)),
		Source:       o.Name(),
		Approximate:  true,
		Valid:        true,
	}, nil
}

// ElementsLongitude returns the approximate longitude in [0, 360) after
// days since J2000.0: the mean longitude plus a first-order equation of
// center, 2e·sin M, converted from radians to degrees. For planets this is
// heliocentric.
func ElementsLongitude(el Elements, days float64) float64 {
	meanMotion := 360 / el.PeriodDays
	m := math.Mod(meanMotion*days+el.PhaseOffsetDeg, 360)
	center := 2 * el.Eccentricity * math.Sin(m*math.Pi/180) * 180 / math.Pi

	return zodiac.Normalize(m + center)
}
