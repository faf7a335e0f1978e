package ephem

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
	"golang.org/x/sync/singleflight"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// lightDaysPerAU is the light travel time across one AU, in days.
const lightDaysPerAU = 0.0057755183

// MeeusOracle computes positions with the algorithms from Meeus'
// Astronomical Algorithms. The Sun and Moon need no data files; planets
// need the VSOP87B files in Dir and fail with ErrPositionUnavailable when
// they cannot be loaded.
type MeeusOracle struct {
	dir string

	group singleflight.Group

	mu      sync.RWMutex
	planets map[int]*pp.V87Planet
	failed  map[int]error
}

// NewMeeusOracle creates an oracle reading VSOP87 files from dir. An empty
// dir uses the VSOP87 environment variable.
func NewMeeusOracle(dir string) *MeeusOracle {
	return &MeeusOracle{
		dir:     dir,
		planets: make(map[int]*pp.V87Planet),
		failed:  make(map[int]error),
	}
}

// Name implements Oracle.
func (o *MeeusOracle) Name() string {
	return "meeus"
}

// Position implements Oracle.
func (o *MeeusOracle) Position(body Body, t time.Time) (Position, error) {
	info, err := body.Info()
	if err != nil {
		return Position{Body: body, Time: t}, err
	}

	jde := julian.TimeToJD(t.UTC())
	pos := Position{Body: body, Time: t, Source: o.Name()}

	switch body {
	case BodySun:
		pos.LongitudeDeg = zodiac.Normalize(solar.ApparentLongitude(base.J2000Century(jde)).Deg())
	case BodyMoon:
		lon, lat, _ := moonposition.Position(jde)
		pos.LongitudeDeg = zodiac.Normalize(lon.Deg())
		pos.LatitudeDeg = lat.Deg()
	default:
		lon, lat, err := o.planetLongitude(info, jde)
		if err != nil {
			return Position{Body: body, Time: t, Source: o.Name()}, err
		}
		pos.LongitudeDeg = lon
		pos.LatitudeDeg = lat
	}

	pos.Valid = true
	return pos, nil
}

// planetLongitude returns geocentric longitude and latitude, corrected once
// for light time.
func (o *MeeusOracle) planetLongitude(info BodyInfo, jde float64) (lon, lat float64, err error) {
	earth, err := o.planet(pp.Earth, "Earth")
	if err != nil {
		return 0, 0, err
	}
	planet, err := o.planet(info.vsop87, info.Name)
	if err != nil {
		return 0, 0, err
	}

	e := heliocentric(earth, jde)
	tau := lightDaysPerAU * heliocentric(planet, jde).Sub(e).Norm()
	p := heliocentric(planet, jde-tau)

	return astro.GeocentricLongitude(p, e), astro.EclipticLatitude(p.Sub(e)), nil
}

func heliocentric(p *pp.V87Planet, jde float64) astro.Vec3 {
	l, b, r := p.Position(jde)
	return astro.Spherical(l.Deg(), b.Deg(), r)
}

// planet returns the loaded VSOP87 series for ibody. Concurrent first loads
// share one read; failures are remembered so a missing directory is not
// rescanned for every position.
func (o *MeeusOracle) planet(ibody int, name string) (*pp.V87Planet, error) {
	o.mu.RLock()
	p, ok := o.planets[ibody]
	ferr := o.failed[ibody]
	o.mu.RUnlock()

	if ok {
		return p, nil
	}
	if ferr != nil {
		return nil, ferr
	}

	v, err, _ := o.group.Do(strconv.Itoa(ibody), func() (interface{}, error) {
		p, err := o.load(ibody)

		o.mu.Lock()
		defer o.mu.Unlock()
		if err != nil {
			err = fmt.Errorf("%w: load VSOP87 %s: %w", ErrPositionUnavailable, name, err)
			o.failed[ibody] = err
			return nil, err
		}
		o.planets[ibody] = p
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pp.V87Planet), nil
}

func (o *MeeusOracle) load(ibody int) (*pp.V87Planet, error) {
	if o.dir == "" {
		return pp.LoadPlanet(ibody)
	}
	return pp.LoadPlanetPath(ibody, o.dir)
}

// Loaded reports how many planet series are cached.
func (o *MeeusOracle) Loaded() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.planets)
}
