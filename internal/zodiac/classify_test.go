package zodiac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalTablesValidate(t *testing.T) {
	require.NoError(t, TrueTable().Validate())
	require.NoError(t, TraditionalTable().Validate())

	assert.Equal(t, 11, TrueTable().Wraparound())
	assert.Equal(t, -1, TraditionalTable().Wraparound())
}

func TestValidateRejectsBadTables(t *testing.T) {
	tbl := TraditionalTable()
	tbl[0].Start, tbl[0].End = 40, 10
	assert.Error(t, tbl.Validate())

	tbl = TrueTable()
	tbl[3].Name = ""
	assert.Error(t, tbl.Validate())
}

func TestClassifyCoverage(t *testing.T) {
	for _, conv := range []Convention{ConventionTrue, ConventionTraditional} {
		t.Run(conv.String(), func(t *testing.T) {
			table := conv.Table()
			for lon := 0.0; lon < 360; lon += 0.01 {
				c := Classify(lon, table)
				require.False(t, c.Degraded, "lon %.2f degraded", lon)
				require.True(t, table[c.Index].Contains(c.Longitude))
			}
		})
	}
}

func TestClassifyHalfOpenBoundaries(t *testing.T) {
	for _, conv := range []Convention{ConventionTrue, ConventionTraditional} {
		table := conv.Table()
		for i, s := range table {
			if s.End >= 360 {
				continue
			}
			c := Classify(s.End, table)
			want := table[(i+1)%SignCount].Name
			assert.Equal(t, want, c.Sign.Name, "%s: end of %s", conv, s.Name)

			c = Classify(s.Start, table)
			assert.Equal(t, s.Name, c.Sign.Name, "%s: start of %s", conv, s.Name)
		}
	}
}

func TestClassifyKnownLongitudes(t *testing.T) {
	tests := []struct {
		name  string
		lon   float64
		conv  Convention
		want  string
		index int
	}{
		{"zero in true is pisces", 0, ConventionTrue, "Pisces", 11},
		{"just below seam in true", 359.9, ConventionTrue, "Pisces", 11},
		{"aries in true", 30, ConventionTrue, "Aries", 0},
		{"aries start in true", 29.0, ConventionTrue, "Aries", 0},
		{"pisces traditional", 355, ConventionTraditional, "Pisces", 11},
		{"pisces true", 355, ConventionTrue, "Pisces", 11},
		{"zero in traditional is aries", 0, ConventionTraditional, "Aries", 0},
		{"ophiuchus region", 250, ConventionTrue, "Scorpius", 7},
		{"negative input normalized", -5, ConventionTraditional, "Pisces", 11},
		{"over full turn", 390, ConventionTraditional, "Taurus", 1},
		{"360 is aries", 360, ConventionTraditional, "Aries", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.lon, tt.conv.Table())
			assert.Equal(t, tt.want, c.Sign.Name)
			assert.Equal(t, tt.index, c.Index)
			assert.NoError(t, c.Err())
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	t.Run("gap near pisces", func(t *testing.T) {
		table := TrueTable()
		table[11].End = 29.0 - 1e-7
		c := Classify(29.0-5e-8, table)
		assert.True(t, c.Degraded)
		assert.Equal(t, "Pisces", c.Sign.Name)
		assert.True(t, errors.Is(c.Err(), ErrClassificationAmbiguous))
	})

	t.Run("gap near another boundary", func(t *testing.T) {
		table := TraditionalTable()
		table[4].End = 149.9999999
		c := Classify(149.99999995, table)
		assert.True(t, c.Degraded)
		assert.Equal(t, "Leo", c.Sign.Name)
	})

	t.Run("wide gap uses first sign", func(t *testing.T) {
		table := TraditionalTable()
		table[5].End = 170
		c := Classify(175, table)
		assert.True(t, c.Degraded)
		assert.Equal(t, 0, c.Index)
	})
}

func TestSignDegreesInto(t *testing.T) {
	pisces := TrueTable()[11]
	assert.InDelta(t, 13.5, pisces.DegreesInto(5), 1e-9)
	assert.InDelta(t, 3.5, pisces.DegreesInto(355), 1e-9)
}

func TestParseConvention(t *testing.T) {
	tests := []struct {
		in      string
		want    Convention
		wantErr bool
	}{
		{"true", ConventionTrue, false},
		{"IAU", ConventionTrue, false},
		{"traditional", ConventionTraditional, false},
		{" tropical ", ConventionTraditional, false},
		{"vedic", ConventionTrue, true},
	}
	for _, tt := range tests {
		got, err := ParseConvention(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	assert.Equal(t, ConventionTraditional, ConventionTrue.Toggle())
	assert.Equal(t, ConventionTrue, ConventionTraditional.Toggle())
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	a := TrueTable()
	a[0].Start = 99
	assert.Equal(t, 29.0, TrueTable()[0].Start)
}
