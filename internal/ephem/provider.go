// Package ephem provides geocentric ecliptic longitudes for the charted
// bodies from interchangeable position oracles.
package ephem

import (
	"errors"
	"time"
)

// ErrPositionUnavailable is returned when an oracle cannot compute a body's
// position. Fallback recovers from it with an approximate oracle.
var ErrPositionUnavailable = errors.New("ephem: position unavailable")

// Position is a body's geocentric ecliptic position at an instant.
type Position struct {
	Body         Body      `json:"-" yaml:"-"`
	Time         time.Time `json:"time" yaml:"time"`
	LongitudeDeg float64   `json:"longitude" yaml:"longitude"`
	LatitudeDeg  float64   `json:"latitude" yaml:"latitude"`
	Source       string    `json:"source" yaml:"source"`
	Approximate  bool      `json:"approximate" yaml:"approximate"`
	Valid        bool      `json:"valid" yaml:"valid"`
}

// Oracle computes body positions.
type Oracle interface {
	// Name returns the oracle name for display/logging.
	Name() string

	// Position returns the geocentric ecliptic position of body at t.
	// Failures wrap ErrPositionUnavailable or ErrUnknownBody.
	Position(body Body, t time.Time) (Position, error)
}

// Sample asks oracle for every body at t. A body whose position cannot be
// computed is returned with Valid unset so the rest of the chart can still
// be drawn. Only ErrUnknownBody aborts the whole sample.
func Sample(oracle Oracle, list []Body, t time.Time) ([]Position, error) {
	out := make([]Position, 0, len(list))
	for _, b := range list {
		pos, err := oracle.Position(b, t)
		if errors.Is(err, ErrUnknownBody) {
			return nil, err
		}
		if err != nil {
			pos = Position{Body: b, Time: t, Source: oracle.Name()}
		}
		out = append(out, pos)
	}
	return out, nil
}

// Mode represents which oracle to use.
type Mode int

const (
	ModeAuto        Mode = iota // Precise, falling back to approximate
	ModePrecise                 // Precise only; unavailable bodies are dropped
	ModeApproximate             // Orbital-element approximation only
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModePrecise:
		return "precise"
	case ModeApproximate:
		return "approximate"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. Unknown strings select ModeAuto.
func ParseMode(s string) Mode {
	switch s {
	case "precise", "meeus", "vsop87":
		return ModePrecise
	case "approximate", "elements":
		return ModeApproximate
	default:
		return ModeAuto
	}
}
