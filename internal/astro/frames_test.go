package astro

import (
	"math"
	"testing"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Sub(t *testing.T) {
	v := Vec3{3, 4, 12}
	if got := v.Sub(Vec3{1, 1, 1}); got != (Vec3{2, 3, 11}) {
		t.Errorf("Sub = %v, want {2 3 11}", got)
	}
	if got := v.Sub(v); got != (Vec3{}) {
		t.Errorf("v.Sub(v) = %v, want zero", got)
	}
}

func TestSpherical(t *testing.T) {
	tests := []struct {
		name             string
		lon, lat, r      float64
		wantLon, wantLat float64
	}{
		{"origin direction", 0, 0, 1, 0, 0},
		{"quarter turn", 90, 0, 2, 90, 0},
		{"behind", 200, 0, 1, 200, 0},
		{"inclined", 310, 5, 1.5, 310, 5},
		{"south", 45, -30, 1, 45, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Spherical(tt.lon, tt.lat, tt.r)
			if math.Abs(v.Norm()-tt.r) > 1e-12 {
				t.Errorf("Norm = %v, want %v", v.Norm(), tt.r)
			}
			if got := EclipticLongitude(v); math.Abs(got-tt.wantLon) > 1e-9 {
				t.Errorf("longitude = %v, want %v", got, tt.wantLon)
			}
			if got := EclipticLatitude(v); math.Abs(got-tt.wantLat) > 1e-9 {
				t.Errorf("latitude = %v, want %v", got, tt.wantLat)
			}
		})
	}
}

func TestEquatorialToEcliptic(t *testing.T) {
	// The north celestial pole tilts toward +Y by the obliquity
	ecl := EquatorialToEcliptic(Vec3{0, 0, 1})

	if math.Abs(ecl.X) > 1e-10 {
		t.Errorf("X should be 0, got %v", ecl.X)
	}
	if math.Abs(ecl.Y-math.Sin(obliquityRad)) > 1e-9 {
		t.Errorf("Y = %v, want %v", ecl.Y, math.Sin(obliquityRad))
	}
	if math.Abs(ecl.Z-math.Cos(obliquityRad)) > 1e-9 {
		t.Errorf("Z = %v, want %v", ecl.Z, math.Cos(obliquityRad))
	}
}

func TestEquatorialToEclipticPreservesLength(t *testing.T) {
	original := Vec3{1, 2, 3}
	ecl := EquatorialToEcliptic(original)

	if math.Abs(ecl.Norm()-original.Norm()) > 1e-10 {
		t.Errorf("Norm changed: %v -> %v", original.Norm(), ecl.Norm())
	}
	if ecl.X != original.X {
		t.Errorf("X = %v, want %v unchanged", ecl.X, original.X)
	}
}

func TestRADecToEcliptic(t *testing.T) {
	tests := []struct {
		name             string
		ra, dec          float64
		wantLon, wantLat float64
	}{
		{"vernal equinox", 0, 0, 0, 0},
		{"summer solstice", 90, ObliquityJ2000, 90, 0},
		{"autumnal equinox", 180, 0, 180, 0},
		{"regulus", 152.093, 11.967, 149.83, 0.46},
		{"spica", 201.298, -11.161, 203.84, -2.05},
		{"antares", 247.352, -26.432, 249.76, -4.57},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lon, lat := RADecToEcliptic(tt.ra, tt.dec)
			if math.Abs(lon-tt.wantLon) > 0.01 {
				t.Errorf("lon = %.3f, want %.2f", lon, tt.wantLon)
			}
			if math.Abs(lat-tt.wantLat) > 0.01 {
				t.Errorf("lat = %.3f, want %.2f", lat, tt.wantLat)
			}
		})
	}
}

func TestEclipticLongitude(t *testing.T) {
	tests := []struct {
		v       Vec3
		wantDeg float64
	}{
		{Vec3{1, 0, 0}, 0},
		{Vec3{0, 1, 0}, 90},
		{Vec3{-1, 0, 0}, 180},
		{Vec3{0, -1, 0}, 270},
		{Vec3{1, 1, 0}, 45},
		{Vec3{1, -1e-12, 0}, 360 - 1e-12*180/math.Pi},
	}

	for _, tt := range tests {
		got := EclipticLongitude(tt.v)
		if math.Abs(got-tt.wantDeg) > 0.01 {
			t.Errorf("EclipticLongitude(%v) = %.2f°, want %.2f°", tt.v, got, tt.wantDeg)
		}
		if got < 0 || got >= 360 {
			t.Errorf("EclipticLongitude(%v) = %v out of range", tt.v, got)
		}
	}
}

func TestGeocentricLongitude(t *testing.T) {
	// Sun at the origin seen from Earth at longitude 180 appears at 0
	earth := Spherical(180, 0, 1)
	if got := GeocentricLongitude(Vec3{}, earth); math.Abs(got) > 1e-9 && math.Abs(got-360) > 1e-9 {
		t.Errorf("sun longitude = %v, want 0", got)
	}

	// Mars at opposition shares Earth's heliocentric longitude
	mars := Spherical(90, 0, 1.52)
	earth = Spherical(90, 0, 1)
	if got := GeocentricLongitude(mars, earth); math.Abs(got-90) > 1e-9 {
		t.Errorf("opposition longitude = %v, want 90", got)
	}
}
