package ephem

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBody is returned for a body outside the registry. It indicates a
// programming error and is never absorbed by Fallback.
var ErrUnknownBody = errors.New("ephem: unknown body")

// Body identifies one of the charted bodies.
type Body int

const (
	BodyMoon Body = iota
	BodySun
	BodyMercury
	BodyVenus
	BodyMars
	BodyJupiter
	BodySaturn
)

// Elements are the simplified orbital elements used by ElementsOracle.
type Elements struct {
	PeriodDays     float64 // sidereal period; geocentric motion for the Sun and Moon
	PhaseOffsetDeg float64 // mean longitude at J2000.0
	Eccentricity   float64
	InclinationDeg float64
}

// BodyInfo describes a body for computation and display.
type BodyInfo struct {
	Body  Body
	Code  string // lowercase key used in config and CLI flags
	Name  string
	Glyph string
	Color string // hex display color

	// OrbitFraction places the body's ring as a fraction of the zodiac
	// ring radius; the Moon is innermost and Saturn outermost.
	OrbitFraction float64

	Elements Elements

	// vsop87 is the planetposition body index, or -1 for bodies that are
	// not computed from VSOP87 files.
	vsop87 int
}

var bodies = []BodyInfo{
	{BodyMoon, "moon", "Moon", "☽", "#d1d1d1", 0.25,
		Elements{27.321582, 134.9, 0.0549, 5.145}, -1},
	{BodySun, "sun", "Sun", "☉", "#ffdd44", 0.375,
		Elements{365.256363, 280.46, 0.01671022, 0}, -1},
	{BodyMercury, "mercury", "Mercury", "☿", "#8c8c8c", 0.5,
		Elements{87.9691, 174.796, 0.20563069, 7.00487}, 0},
	{BodyVenus, "venus", "Venus", "♀", "#e39e54", 0.625,
		Elements{224.7008, 50.115, 0.00677323, 3.39471}, 1},
	{BodyMars, "mars", "Mars", "♂", "#c1440e", 0.75,
		Elements{686.9796, 19.3730, 0.09341233, 1.85061}, 3},
	{BodyJupiter, "jupiter", "Jupiter", "♃", "#d8ca9d", 0.875,
		Elements{4332.59, 18.818, 0.04839266, 1.30530}, 4},
	{BodySaturn, "saturn", "Saturn", "♄", "#e0bb95", 1.0,
		Elements{10759.22, 320.346, 0.05415060, 2.48446}, 5},
}

// Bodies returns the registry in display order, innermost ring first.
func Bodies() []BodyInfo {
	out := make([]BodyInfo, len(bodies))
	copy(out, bodies)
	return out
}

// AllBodies returns every registered body identifier.
func AllBodies() []Body {
	out := make([]Body, len(bodies))
	for i, b := range bodies {
		out[i] = b.Body
	}
	return out
}

// Info returns the registry entry for b.
func (b Body) Info() (BodyInfo, error) {
	if b < 0 || int(b) >= len(bodies) {
		return BodyInfo{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(b))
	}
	return bodies[b], nil
}

// String returns the body's display name.
func (b Body) String() string {
	info, err := b.Info()
	if err != nil {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return info.Name
}

// ParseBody looks a body up by code or name, ignoring case.
func ParseBody(s string) (Body, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, info := range bodies {
		if info.Code == key {
			return info.Body, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, s)
}

// ParseBodies parses a list of body names. An empty list selects all bodies.
func ParseBodies(names []string) ([]Body, error) {
	if len(names) == 0 {
		return AllBodies(), nil
	}
	out := make([]Body, 0, len(names))
	for _, n := range names {
		b, err := ParseBody(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
