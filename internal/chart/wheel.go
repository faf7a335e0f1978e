package chart

import (
	"math"
	"strings"
)

// CellKind tags what a canvas cell shows so renderers can style it.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellRing
	CellSpoke
	CellSign
	CellOrbit
	CellEveningArc
	CellStar
	CellBody
	CellApprox
	CellEarth
)

// Cell is one character of the wheel.
type Cell struct {
	Rune  rune
	Kind  CellKind
	Color string // hex color for bodies and stars, empty otherwise
}

// Canvas is a character grid. Row 0 is the top of the wheel.
type Canvas struct {
	Width  int
	Height int
	Cells  [][]Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Rune: ' '}
		}
	}
	return &Canvas{Width: width, Height: height, Cells: cells}
}

// At returns the cell at x, y, or an empty cell out of bounds.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return Cell{Rune: ' '}
	}
	return c.Cells[y][x]
}

func (c *Canvas) set(x, y int, cell Cell) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Cells[y][x] = cell
}

// setEmpty only draws over blank cells; used for background strokes.
func (c *Canvas) setEmpty(x, y int, cell Cell) {
	if c.At(x, y).Kind != CellEmpty {
		return
	}
	c.set(x, y, cell)
}

// String returns the canvas as plain text with trailing blanks trimmed.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Cells {
		var line strings.Builder
		for _, cell := range row {
			line.WriteRune(cell.Rune)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteRune('\n')
	}
	return b.String()
}

// Ring radii as fractions of the wheel radius.
const (
	starRing       = 1.0
	zodiacOuter    = 0.92
	zodiacGlyphs   = 0.84
	zodiacInner    = 0.76
	orbitMaxRadius = 0.68
)

// WheelOptions control optional layers.
type WheelOptions struct {
	HideStars      bool
	HideEveningArc bool
	HideOrbits     bool
}

// geometry maps ecliptic longitude and a radius fraction to a cell. Terminal
// cells are about twice as tall as wide, so x is stretched.
type geometry struct {
	cx, cy int
	ry     float64
}

func newGeometry(width, height int) geometry {
	ry := math.Min(float64(height)/2-1, float64(width)/4-1)
	if ry < 1 {
		ry = 1
	}
	return geometry{cx: width / 2, cy: height / 2, ry: ry}
}

// ScreenAngle converts ecliptic longitude to the drawing angle: 0° of
// longitude is at the top and longitude increases clockwise.
func ScreenAngle(lon float64) float64 {
	return 90 - lon
}

func (g geometry) point(lon, frac float64) (int, int) {
	theta := ScreenAngle(lon) * math.Pi / 180
	r := frac * g.ry
	x := g.cx + int(math.Round(2*r*math.Cos(theta)))
	y := g.cy - int(math.Round(r*math.Sin(theta)))
	return x, y
}

func (g geometry) steps(frac float64) int {
	// Roughly one sample per cell on the stretched circumference.
	n := int(2 * math.Pi * frac * g.ry * 2)
	if n < 16 {
		n = 16
	}
	if n > 720 {
		n = 720
	}
	return n
}

// Wheel draws the chart onto a width×height canvas: star ring outermost,
// then the zodiac ring with boundary spokes and sign glyphs, then one orbit
// ring per body with Earth at the center.
func Wheel(c Chart, width, height int, opts WheelOptions) *Canvas {
	cv := NewCanvas(width, height)
	if width < 8 || height < 4 {
		return cv
	}
	g := newGeometry(width, height)

	g.circle(cv, zodiacOuter, Cell{Rune: '·', Kind: CellRing})
	g.circle(cv, zodiacInner, Cell{Rune: '·', Kind: CellRing})

	if !opts.HideEveningArc && c.HasEveningArc {
		g.arc(cv, c.EveningArc, starRing, Cell{Rune: '═', Kind: CellEveningArc})
	}

	for _, s := range c.Table {
		g.spoke(cv, s.Start, zodiacInner, zodiacOuter)
	}
	for _, s := range c.Table {
		x, y := g.point(s.Midpoint(), zodiacGlyphs)
		cv.set(x, y, Cell{Rune: firstRune(s.Glyph), Kind: CellSign})
	}

	if !opts.HideOrbits {
		for _, p := range c.Placements {
			g.circle(cv, p.Info.OrbitFraction*orbitMaxRadius, Cell{Rune: '·', Kind: CellOrbit})
		}
	}

	if !opts.HideStars {
		for _, s := range c.Stars {
			x, y := g.point(s.LongitudeDeg, starRing)
			cv.set(x, y, Cell{Rune: '✶', Kind: CellStar, Color: "#d1d1d1"})
		}
	}

	// Outer rings first so inner bodies win on overlap.
	for i := len(c.Placements) - 1; i >= 0; i-- {
		p := c.Placements[i]
		x, y := g.point(p.Position.LongitudeDeg, p.Info.OrbitFraction*orbitMaxRadius)
		color := p.Info.Color
		if p.Position.Approximate {
			color = Dim(color)
			cv.set(x+1, y, Cell{Rune: '~', Kind: CellApprox, Color: color})
		}
		cv.set(x, y, Cell{Rune: firstRune(p.Info.Glyph), Kind: CellBody, Color: color})
	}

	cv.set(g.cx, g.cy, Cell{Rune: '⊕', Kind: CellEarth, Color: "#4a90d9"})
	return cv
}

func (g geometry) circle(cv *Canvas, frac float64, cell Cell) {
	n := g.steps(frac)
	for i := 0; i < n; i++ {
		x, y := g.point(360*float64(i)/float64(n), frac)
		cv.setEmpty(x, y, cell)
	}
}

func (g geometry) arc(cv *Canvas, a Arc, frac float64, cell Cell) {
	span := a.Span()
	n := int(float64(g.steps(frac)) * span / 360)
	if n < 2 {
		n = 2
	}
	for i := 0; i <= n; i++ {
		x, y := g.point(a.Start+span*float64(i)/float64(n), frac)
		cv.set(x, y, cell)
	}
}

func (g geometry) spoke(cv *Canvas, lon, from, to float64) {
	n := int((to - from) * g.ry * 2)
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		f := from + (to-from)*float64(i)/float64(n)
		x, y := g.point(lon, f)
		cv.set(x, y, Cell{Rune: '+', Kind: CellSpoke})
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}
