package game

import (
	"image/color"
	"math"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// accent is the theme's accent hue drifting slowly with phase.
func accent(hue, phase float64, alpha float64) color.RGBA {
	r, g, b := hsvToRgb(hue+20*math.Sin(phase), 0.7, 0.9)
	return color.RGBA{R: r, G: g, B: b, A: uint8(255 * clamp01(alpha))}
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	c.A = uint8(float64(c.A) * clamp01(alpha))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
