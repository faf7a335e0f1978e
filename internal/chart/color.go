package chart

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// AdjustColor shifts every RGB channel of a hex color by delta (on the
// 0-255 scale), clamping at black and white. Unparseable input is returned
// unchanged.
func AdjustColor(hex string, delta int) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	d := float64(delta) / 255
	c.R += d
	c.G += d
	c.B += d
	return c.Clamped().Hex()
}

// CardColors returns the background and border colors for a body's info
// card, darker and lighter than the body color respectively.
func CardColors(hex string) (background, border string) {
	return AdjustColor(hex, -40), AdjustColor(hex, 20)
}

// TextColor picks black or white text for legibility on bg.
func TextColor(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// Dim blends hex halfway toward a dark gray, used for approximate bodies.
func Dim(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	gray, _ := colorful.Hex("#3a3a3a")
	return c.BlendLab(gray, 0.5).Clamped().Hex()
}
