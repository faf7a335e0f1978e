package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// Format is an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an export format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// ChartExport is the serializable form of a Chart.
type ChartExport struct {
	Time       string        `json:"time" yaml:"time"`
	Convention string        `json:"convention" yaml:"convention"`
	Signs      []zodiac.Sign `json:"signs" yaml:"signs"`
	Bodies     []BodyExport  `json:"bodies" yaml:"bodies"`
	Stars      []StarExport  `json:"stars,omitempty" yaml:"stars,omitempty"`
	EveningSky *ArcExport    `json:"evening_sky,omitempty" yaml:"evening_sky,omitempty"`
	Ambiguous  int           `json:"ambiguous" yaml:"ambiguous"`
	Dropped    int           `json:"unavailable" yaml:"unavailable"`
}

// BodyExport is one placement.
type BodyExport struct {
	Name          string  `json:"name" yaml:"name"`
	Glyph         string  `json:"glyph" yaml:"glyph"`
	Longitude     float64 `json:"longitude" yaml:"longitude"`
	Latitude      float64 `json:"latitude" yaml:"latitude"`
	Sign          string  `json:"sign" yaml:"sign"`
	DegreesInSign float64 `json:"degrees_in_sign" yaml:"degrees_in_sign"`
	Source        string  `json:"source" yaml:"source"`
	Approximate   bool    `json:"approximate" yaml:"approximate"`
	Ambiguous     bool    `json:"ambiguous,omitempty" yaml:"ambiguous,omitempty"`
}

// StarExport is one fixed star.
type StarExport struct {
	Name      string  `json:"name" yaml:"name"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Sign      string  `json:"sign" yaml:"sign"`
}

// ArcExport is the evening-sky arc.
type ArcExport struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// ExportChart converts a Chart to its serializable form.
func ExportChart(c Chart) *ChartExport {
	e := &ChartExport{
		Time:       c.Time.UTC().Format(time.RFC3339),
		Convention: TableName(c.Table),
		Signs:      c.Table[:],
		Bodies:     make([]BodyExport, 0, len(c.Placements)),
		Ambiguous:  c.Degraded,
		Dropped:    c.Dropped,
	}

	for _, p := range c.Placements {
		e.Bodies = append(e.Bodies, BodyExport{
			Name:          p.Info.Name,
			Glyph:         p.Info.Glyph,
			Longitude:     round(p.Position.LongitudeDeg, 4),
			Latitude:      round(p.Position.LatitudeDeg, 4),
			Sign:          p.Sign.Name,
			DegreesInSign: round(p.DegreesInSign, 4),
			Source:        p.Position.Source,
			Approximate:   p.Position.Approximate,
			Ambiguous:     p.Degraded,
		})
	}

	for _, s := range c.Stars {
		e.Stars = append(e.Stars, StarExport{
			Name:      s.Star.Name,
			Longitude: round(s.LongitudeDeg, 4),
			Latitude:  round(s.LatitudeDeg, 4),
			Sign:      s.Sign.Name,
		})
	}

	if c.HasEveningArc {
		e.EveningSky = &ArcExport{Start: round(c.EveningArc.Start, 4), End: round(c.EveningArc.End, 4)}
	}

	return e
}

// WriteJSON writes the export as indented JSON.
func (e *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteYAML writes the export as YAML.
func (e *ChartExport) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return err
	}
	return enc.Close()
}

// Export writes c to w in the given format.
func Export(w io.Writer, c Chart, f Format) error {
	switch f {
	case FormatJSON:
		return ExportChart(c).WriteJSON(w)
	case FormatYAML:
		return ExportChart(c).WriteYAML(w)
	case FormatText:
		WriteSummary(w, c)
		return nil
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
