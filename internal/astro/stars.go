package astro

import (
	"fmt"
	"strings"
)

// Star represents a cataloged star with position and brightness.
type Star struct {
	Name   string  // Common name (e.g., "Regulus")
	RAdeg  float64 // Right Ascension in degrees (J2000)
	DecDeg float64 // Declination in degrees (J2000)
	Mag    float64 // Apparent visual magnitude (lower = brighter)
}

// Ecliptic returns the star's J2000 ecliptic longitude and latitude.
func (s Star) Ecliptic() (lonDeg, latDeg float64) {
	return RADecToEcliptic(s.RAdeg, s.DecDeg)
}

// StarCatalog holds a collection of stars for rendering.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns the bright stars lying near the ecliptic.
// Coordinates are J2000 epoch.
func DefaultStarCatalog() StarCatalog {
	stars := make([]Star, len(zodiacalStars))
	copy(stars, zodiacalStars)
	return StarCatalog{Stars: stars}
}

// Lookup finds a star by name, ignoring case.
func (c StarCatalog) Lookup(name string) (Star, bool) {
	for _, s := range c.Stars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// Select returns the named stars in the order given.
func (c StarCatalog) Select(names []string) ([]Star, error) {
	out := make([]Star, 0, len(names))
	for _, n := range names {
		s, ok := c.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown star %q", n)
		}
		out = append(out, s)
	}
	return out, nil
}

// RoyalStars are the fixed stars drawn by default.
var RoyalStars = []string{"Regulus", "Spica", "Antares", "Aldebaran"}

// zodiacalStars is ordered roughly by magnitude (brightest first).
var zodiacalStars = []Star{
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Regulus", 152.093, 11.967, 1.35},
	{"Castor", 113.650, 31.889, 1.58},
	{"Shaula", 263.402, -37.104, 1.63},
	{"Elnath", 81.573, 28.608, 1.65},
	{"Kaus Australis", 276.043, -34.384, 1.85},
	{"Hamal", 31.793, 23.463, 2.00},
	{"Nunki", 283.816, -26.297, 2.02},
	{"Algieba", 146.463, 19.842, 2.08},
	{"Denebola", 177.265, 14.572, 2.13},
	{"Dschubba", 240.083, -22.622, 2.32},
	{"Zosma", 168.527, 20.524, 2.56},
	{"Acrab", 241.359, -19.805, 2.62},
	{"Zubeneschamali", 229.252, -9.383, 2.61},
	{"Sheratan", 28.660, 20.808, 2.64},
	{"Zubenelgenubi", 222.720, -16.042, 2.75},
	{"Vindemiatrix", 195.544, 10.959, 2.83},
	{"Alcyone", 56.871, 24.105, 2.87},
	{"Sadalsuud", 322.890, -5.571, 2.91},
	{"Sadalmelik", 331.446, -0.320, 2.96},
	{"Asellus Australis", 131.171, 18.154, 3.94},
	{"Acubens", 134.622, 11.858, 4.25},
}
