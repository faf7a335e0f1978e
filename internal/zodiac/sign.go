package zodiac

import (
	"fmt"
	"strings"
)

// SignCount is the number of signs in every table.
const SignCount = 12

// WraparoundSign names the one sign whose arc may cross the 0°/360° seam.
const WraparoundSign = "Pisces"

// Sign is a zodiac sign with its ecliptic arc [Start, End) in degrees.
// When Start > End the arc crosses the 0°/360° seam.
type Sign struct {
	Glyph string  `json:"glyph" yaml:"glyph"`
	Name  string  `json:"name" yaml:"name"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Wraps reports whether the sign's arc crosses the 0°/360° seam.
func (s Sign) Wraps() bool {
	return s.Start > s.End
}

// IsWraparound reports whether s is the sign designated to carry the seam,
// whether or not it currently wraps.
func (s Sign) IsWraparound() bool {
	return s.Name == WraparoundSign
}

// Span returns the angular width of the sign in degrees.
func (s Sign) Span() float64 {
	return ArcSpan(s.Start, s.End)
}

// Midpoint returns the longitude at the middle of the sign's arc.
func (s Sign) Midpoint() float64 {
	return ArcMidpoint(s.Start, s.End)
}

// Contains reports whether lon lies in the half-open arc [Start, End).
func (s Sign) Contains(lon float64) bool {
	if s.Wraps() {
		return lon >= s.Start || lon < s.End
	}
	return lon >= s.Start && lon < s.End
}

// DegreesInto returns how far lon lies past the start of the sign.
func (s Sign) DegreesInto(lon float64) float64 {
	return Normalize(lon - s.Start)
}

// Table is an ordered set of twelve signs, Aries through Pisces.
// Tables are values: copying a Table copies every sign.
type Table [SignCount]Sign

// Index returns the position of the named sign, or -1.
func (t Table) Index(name string) int {
	for i, s := range t {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

// Wraparound returns the index of the sign currently crossing the seam,
// or -1 if no sign wraps.
func (t Table) Wraparound() int {
	for i, s := range t {
		if s.Wraps() {
			return i
		}
	}
	return -1
}

// Validate checks that the table has the structural invariants the
// classifier relies on: named signs, at most one wrapping sign, and
// wrapping only on the designated sign.
func (t Table) Validate() error {
	wrapping := 0
	for i, s := range t {
		if s.Name == "" {
			return fmt.Errorf("sign %d has no name", i)
		}
		if s.Wraps() {
			wrapping++
			if !s.IsWraparound() {
				return fmt.Errorf("sign %s wraps but only %s may cross 0°", s.Name, WraparoundSign)
			}
		}
	}
	if wrapping > 1 {
		return fmt.Errorf("%d signs wrap, at most one allowed", wrapping)
	}
	return nil
}

// Convention selects one of the two canonical tables.
type Convention int

const (
	ConventionTrue        Convention = iota // IAU constellation boundary crossings
	ConventionTraditional                   // Equal 30° signs
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case ConventionTrue:
		return "true"
	case ConventionTraditional:
		return "traditional"
	default:
		return "unknown"
	}
}

// ParseConvention parses a convention name.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "iau", "sidereal":
		return ConventionTrue, nil
	case "traditional", "tropical", "equal":
		return ConventionTraditional, nil
	default:
		return ConventionTrue, fmt.Errorf("unknown zodiac convention %q", s)
	}
}

// Toggle returns the other convention.
func (c Convention) Toggle() Convention {
	if c == ConventionTrue {
		return ConventionTraditional
	}
	return ConventionTrue
}

// Table returns the canonical table for the convention.
func (c Convention) Table() Table {
	if c == ConventionTraditional {
		return traditionalTable
	}
	return trueTable
}

// trueTable follows the IAU constellation boundaries along the ecliptic.
var trueTable = Table{
	{Glyph: "♈", Name: "Aries", Start: 29.0, End: 53.4},
	{Glyph: "♉", Name: "Taurus", Start: 53.4, End: 90.4},
	{Glyph: "♊", Name: "Gemini", Start: 90.4, End: 118.2},
	{Glyph: "♋", Name: "Cancer", Start: 118.2, End: 138.1},
	{Glyph: "♌", Name: "Leo", Start: 138.1, End: 174.1},
	{Glyph: "♍", Name: "Virgo", Start: 174.1, End: 217.8},
	{Glyph: "♎", Name: "Libra", Start: 217.8, End: 241.1},
	{Glyph: "♏", Name: "Scorpius", Start: 241.1, End: 266.5},
	{Glyph: "♐", Name: "Sagittarius", Start: 266.5, End: 299.7},
	{Glyph: "♑", Name: "Capricornus", Start: 299.7, End: 327.8},
	{Glyph: "♒", Name: "Aquarius", Start: 327.8, End: 351.5},
	{Glyph: "♓", Name: "Pisces", Start: 351.5, End: 29.0},
}

// traditionalTable divides the ecliptic into equal 30° signs.
var traditionalTable = Table{
	{Glyph: "♈", Name: "Aries", Start: 0, End: 30},
	{Glyph: "♉", Name: "Taurus", Start: 30, End: 60},
	{Glyph: "♊", Name: "Gemini", Start: 60, End: 90},
	{Glyph: "♋", Name: "Cancer", Start: 90, End: 120},
	{Glyph: "♌", Name: "Leo", Start: 120, End: 150},
	{Glyph: "♍", Name: "Virgo", Start: 150, End: 180},
	{Glyph: "♎", Name: "Libra", Start: 180, End: 210},
	{Glyph: "♏", Name: "Scorpius", Start: 210, End: 240},
	{Glyph: "♐", Name: "Sagittarius", Start: 240, End: 270},
	{Glyph: "♑", Name: "Capricornus", Start: 270, End: 300},
	{Glyph: "♒", Name: "Aquarius", Start: 300, End: 330},
	{Glyph: "♓", Name: "Pisces", Start: 330, End: 360},
}

// TrueTable returns a copy of the IAU-boundary table.
func TrueTable() Table { return trueTable }

// TraditionalTable returns a copy of the equal-30° table.
func TraditionalTable() Table { return traditionalTable }
