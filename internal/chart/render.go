package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// Renderer consumes the active table and the body positions for one frame.
// Rendering problems are the renderer's own concern.
type Renderer interface {
	Render(table zodiac.Table, positions []ephem.Position)
}

// TextRenderer writes a summary table, and optionally the wheel, as plain
// text.
type TextRenderer struct {
	Out   io.Writer
	Stars []astro.Star

	Wheel  bool
	Width  int // wheel size in cells; defaults to 72×36
	Height int

	err error
}

// Render implements Renderer.
func (r *TextRenderer) Render(table zodiac.Table, positions []ephem.Position) {
	var t time.Time
	if len(positions) > 0 {
		t = positions[0].Time
	}
	c := Build(t, table, positions, r.Stars)

	var b strings.Builder
	WriteSummary(&b, c)
	if r.Wheel {
		w, h := r.Width, r.Height
		if w <= 0 {
			w = 72
		}
		if h <= 0 {
			h = 36
		}
		b.WriteString("\n")
		b.WriteString(Wheel(c, w, h, WheelOptions{}).String())
	}

	_, r.err = io.WriteString(r.Out, b.String())
}

// Err returns the error from the last Render, if writing failed.
func (r *TextRenderer) Err() error {
	return r.err
}

// WriteSummary writes a text table of placements, stars and counters.
func WriteSummary(w io.Writer, c Chart) {
	fmt.Fprintf(w, "Zodiac @ %s (%s)\n", c.Time.Format(time.RFC3339), TableName(c.Table))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(c.Placements) == 0 {
		fmt.Fprintln(w, "No positions available")
	} else {
		fmt.Fprintf(w, "%-10s %-16s %10s %9s  %s\n", "Body", "Sign", "Longitude", "In sign", "")
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, p := range c.Placements {
			flag := ""
			if p.Position.Approximate {
				flag = "~"
			}
			if p.Degraded {
				flag += "?"
			}
			fmt.Fprintf(w, "%-10s %-16s %9.2f° %8.2f°  %s\n",
				p.Info.Glyph+" "+p.Info.Name,
				p.Sign.Glyph+" "+p.Sign.Name,
				p.Position.LongitudeDeg,
				p.DegreesInSign,
				flag,
			)
		}
	}

	if len(c.Stars) > 0 {
		fmt.Fprintln(w)
		for _, s := range c.Stars {
			fmt.Fprintf(w, "✶ %-10s %-16s %9.2f°\n", s.Star.Name, s.Sign.Glyph+" "+s.Sign.Name, s.LongitudeDeg)
		}
	}

	if c.HasEveningArc {
		fmt.Fprintf(w, "\nEvening sky: %.1f° – %.1f°\n", c.EveningArc.Start, c.EveningArc.End)
	}

	fmt.Fprintf(w, "\n%d bodies, %d approximate, %d ambiguous, %d unavailable\n",
		len(c.Placements), c.Approximate, c.Degraded, c.Dropped)
}
