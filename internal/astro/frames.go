package astro

import (
	"math"

	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Spherical builds a vector from longitude and latitude in degrees and a
// radius. It works for any frame where longitude is measured in the XY
// plane from +X toward +Y.
func Spherical(lonDeg, latDeg, r float64) Vec3 {
	lon, lat := degToRad(lonDeg), degToRad(latDeg)
	cosLat := math.Cos(lat)
	return Vec3{
		X: r * cosLat * math.Cos(lon),
		Y: r * cosLat * math.Sin(lon),
		Z: r * math.Sin(lat),
	}
}

// EclipticLongitude returns the ecliptic longitude in degrees [0, 360) for a
// vector in an ecliptic frame.
func EclipticLongitude(v Vec3) float64 {
	return zodiac.Normalize(radToDeg(math.Atan2(v.Y, v.X)))
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(v.Z / r))
}

// ObliquityJ2000 is the mean obliquity of the ecliptic at J2000.0 in degrees.
const ObliquityJ2000 = 23.439291

var obliquityRad = degToRad(ObliquityJ2000)

// EquatorialToEcliptic rotates an equatorial vector about X by the
// obliquity. Units are preserved.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	cosE := math.Cos(obliquityRad)
	sinE := math.Sin(obliquityRad)

	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// RADecToEcliptic converts J2000 right ascension and declination (degrees)
// to ecliptic longitude and latitude (degrees).
func RADecToEcliptic(raDeg, decDeg float64) (lonDeg, latDeg float64) {
	ecl := EquatorialToEcliptic(Spherical(raDeg, decDeg, 1))
	return EclipticLongitude(ecl), EclipticLatitude(ecl)
}

// GeocentricLongitude returns the ecliptic longitude of a body as seen from
// Earth, given heliocentric ecliptic vectors for both.
func GeocentricLongitude(body, earth Vec3) float64 {
	return EclipticLongitude(body.Sub(earth))
}
