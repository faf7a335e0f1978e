package astro

import (
	"math"
	"testing"
	"time"
)

func TestDaysSinceJ2000(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 0},
		{"J2000 midnight", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), -0.5},
		{"plus 36 hours", time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC), 1.5},
		{"sputnik", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31 - 2451545},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 2460369.5 - 2451545},
		{"non-UTC zone", time.Date(2000, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysSinceJ2000(tt.t)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("DaysSinceJ2000() = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}
