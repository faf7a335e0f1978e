package ephem

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-zodiac/internal/logging"
)

func TestFallbackUsesPrimaryWhenAvailable(t *testing.T) {
	primary := &stubOracle{name: "primary", lon: 10}
	secondary := &stubOracle{name: "secondary", lon: 20}
	f := NewFallback(primary, secondary, nil)

	pos, err := f.Position(BodySun, j2000)
	require.NoError(t, err)
	assert.Equal(t, 10.0, pos.LongitudeDeg)
	assert.False(t, pos.Approximate)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackSubstitutesOnUnavailable(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelInfo)
	log.SetOutput(&buf)

	primary := &stubOracle{name: "primary", errs: map[Body]error{BodySaturn: ErrPositionUnavailable}}
	secondary := &stubOracle{name: "secondary", lon: 20}
	f := NewFallback(primary, secondary, log)

	for i := 0; i < 3; i++ {
		pos, err := f.Position(BodySaturn, j2000)
		require.NoError(t, err)
		assert.True(t, pos.Valid)
		assert.True(t, pos.Approximate)
		assert.Equal(t, "secondary", pos.Source)
		assert.Equal(t, 20.0, pos.LongitudeDeg)
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "WARN"), "fallback should warn once per body")
}

func TestFallbackDoesNotAbsorbUnknownBody(t *testing.T) {
	primary := &stubOracle{name: "primary"}
	secondary := &stubOracle{name: "secondary"}
	f := NewFallback(primary, secondary, nil)

	_, err := f.Position(Body(50), j2000)
	assert.ErrorIs(t, err, ErrUnknownBody)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	primary := &stubOracle{name: "primary", errs: map[Body]error{BodyVenus: boom}}
	secondary := &stubOracle{name: "secondary"}
	f := NewFallback(primary, secondary, nil)

	_, err := f.Position(BodyVenus, j2000)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackBothFail(t *testing.T) {
	primary := &stubOracle{name: "primary", errs: map[Body]error{BodyMoon: ErrPositionUnavailable}}
	secondary := &stubOracle{name: "secondary", errs: map[Body]error{BodyMoon: errors.New("also broken")}}
	f := NewFallback(primary, secondary, nil)

	_, err := f.Position(BodyMoon, j2000)
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestAutoOracleWithoutPlanetFiles(t *testing.T) {
	o := NewOracle(ModeAuto, Options{VSOP87Dir: filepath.Join(t.TempDir(), "none")})

	positions, err := Sample(o, AllBodies(), j2000)
	require.NoError(t, err)

	for _, p := range positions {
		assert.True(t, p.Valid, p.Body.String())
		switch p.Body {
		case BodySun, BodyMoon:
			assert.False(t, p.Approximate, "%s is computed without data files", p.Body)
		default:
			assert.True(t, p.Approximate, "%s should fall back", p.Body)
		}
	}
}
