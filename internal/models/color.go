package models

import (
	"math"
)

// minDisplayValue keeps dim presets visible in the terminal
const minDisplayValue = 0.3

// Color approximates a lighting preset on screen. Group commands only set
// hue and brightness, so saturation is taken as full.
type Color struct {
	// Hue: 0-65535 (maps to 0-360 degrees)
	Hue int
	// Brightness: 1-254
	Brightness int
}

// NewColor creates a Color from bridge hue and brightness values
func NewColor(hue, brightness int) Color {
	return Color{Hue: ClampHue(hue), Brightness: ClampBrightness(brightness)}
}

// RGB returns the color as RGB values (0-255 each)
func (c Color) RGB() (r, g, b uint8) {
	h := float64(ClampHue(c.Hue)) / MaxHue * 360.0
	v := math.Max(float64(ClampBrightness(c.Brightness))/MaxBrightness, minDisplayValue)

	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	q := v * (1 - f)
	t := v * f

	var rf, gf, bf float64
	switch int(i) {
	case 0:
		rf, gf, bf = v, t, 0
	case 1:
		rf, gf, bf = q, v, 0
	case 2:
		rf, gf, bf = 0, v, t
	case 3:
		rf, gf, bf = 0, q, v
	case 4:
		rf, gf, bf = t, 0, v
	default:
		rf, gf, bf = v, 0, q
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

// HexString returns the color as a hex string (e.g., "#FF0000")
func (c Color) HexString() string {
	r, g, b := c.RGB()
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}
