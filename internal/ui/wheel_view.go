package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/state"
)

// cardWidth is the width of the info card column beside the wheel.
const cardWidth = 30

// WheelModel renders the zodiac wheel with body info cards.
type WheelModel struct {
	width    int
	height   int
	snapshot state.Snapshot

	showStars bool
	showArc   bool
}

// NewWheelModel creates a wheel view with every layer visible.
func NewWheelModel() WheelModel {
	return WheelModel{
		showStars: true,
		showArc:   true,
	}
}

// SetSize updates the viewport size.
func (m WheelModel) SetSize(width, height int) WheelModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m WheelModel) UpdateData(snapshot state.Snapshot) WheelModel {
	m.snapshot = snapshot
	return m
}

// ToggleStars shows or hides the fixed stars.
func (m WheelModel) ToggleStars() WheelModel {
	m.showStars = !m.showStars
	return m
}

// ToggleArc shows or hides the evening-sky arc.
func (m WheelModel) ToggleArc() WheelModel {
	m.showArc = !m.showArc
	return m
}

// ShowStars returns whether the fixed stars are visible.
func (m WheelModel) ShowStars() bool {
	return m.showStars
}

// ShowArc returns whether the evening-sky arc is visible.
func (m WheelModel) ShowArc() bool {
	return m.showArc
}

// View renders the wheel, the card column and the HUD.
func (m WheelModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Terminal too small for the zodiac wheel"
	}

	canvasW := m.width - cardWidth - 2
	canvasH := m.height - 2 // HUD
	cv := chart.Wheel(m.snapshot.Chart, canvasW, canvasH, chart.WheelOptions{
		HideStars:      !m.showStars,
		HideEveningArc: !m.showArc,
	})

	wheel := renderCanvas(cv)
	cards := m.renderCards(canvasH)

	body := lipgloss.JoinHorizontal(lipgloss.Top, wheel, "  ", cards)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHUD())
}

// renderCanvas converts the wheel canvas to a styled string.
func renderCanvas(cv *chart.Canvas) string {
	var b strings.Builder

	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	spokeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	signStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	orbitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	arcStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E9A23B"))

	for _, row := range cv.Cells {
		for _, cell := range row {
			var style lipgloss.Style

			switch cell.Kind {
			case chart.CellEmpty:
				b.WriteRune(cell.Rune)
				continue
			case chart.CellRing:
				style = ringStyle
			case chart.CellSpoke:
				style = spokeStyle
			case chart.CellSign:
				style = signStyle
			case chart.CellOrbit:
				style = orbitStyle
			case chart.CellEveningArc:
				style = arcStyle
			case chart.CellBody, chart.CellEarth:
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Color)).Bold(true)
			default:
				// Stars and approximate markers
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Color))
			}

			b.WriteString(style.Render(string(cell.Rune)))
		}
		b.WriteRune('\n')
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// renderCards draws one info card per placed body, as many as fit.
func (m WheelModel) renderCards(maxHeight int) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	if len(m.snapshot.Chart.Placements) == 0 {
		return dimStyle.Render("Computing positions...")
	}

	var cards []string
	used := 0
	for _, p := range m.snapshot.Chart.Placements {
		card := renderCard(p)
		h := lipgloss.Height(card)
		if used+h > maxHeight {
			break
		}
		cards = append(cards, card)
		used += h
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderCard shows glyph, name, sign and longitude on the body's colors.
func renderCard(p chart.Placement) string {
	bg, border := chart.CardColors(p.Info.Color)
	fg := chart.TextColor(bg)

	style := lipgloss.NewStyle().
		Width(cardWidth-2).
		Padding(0, 1).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))

	title := fmt.Sprintf("%s %s  %s %s", p.Info.Glyph, p.Info.Name, p.Sign.Glyph, p.Sign.Name)
	detail := fmt.Sprintf("%.2f°  (%.1f° in sign)", p.Position.LongitudeDeg, p.DegreesInSign)
	switch {
	case p.Degraded:
		detail += " ?"
	case p.Position.Approximate:
		detail += " ~"
	}

	return style.Render(title + "\n" + detail)
}

// renderHUD shows the convention, oracle and layer toggles below the wheel.
func (m WheelModel) renderHUD() string {
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	snap := m.snapshot
	convention := chart.TableName(snap.Table)
	if snap.Animating {
		convention = "→ " + snap.Convention.String()
	}

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	b.WriteString(dimStyle.Render("Zodiac:"))
	b.WriteString(accentStyle.Render(convention))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Oracle:"))
	oracle := snap.OracleName
	if oracle == "" {
		oracle = "-"
	}
	b.WriteString(valueStyle.Render(oracle))
	if snap.Chart.Approximate > 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf(" (%d ~)", snap.Chart.Approximate)))
	}
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Ambiguous:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", snap.Ambiguous)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Stars:"))
	b.WriteString(valueStyle.Render(onOff(m.showStars)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Evening:"))
	b.WriteString(valueStyle.Render(onOff(m.showArc)))

	return b.String()
}
