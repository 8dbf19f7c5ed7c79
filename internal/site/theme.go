package site

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrUnknownLang  = errors.New("unknown language")
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

var Themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

func ParseTheme(s string) (Theme, error) {
	for _, t := range Themes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Next cycles light -> dark -> auto -> light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeAuto
	default:
		return ThemeLight
	}
}

// Effective resolves auto against the system preference.
func (t Theme) Effective(systemDark bool) Theme {
	switch t {
	case ThemeLight, ThemeDark:
		return t
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}

// SystemDark stands in for a desktop dark-mode preference: evenings and
// nights count as dark.
func SystemDark(now time.Time) bool {
	h := now.Hour()
	return h >= 19 || h < 7
}

type Colors struct {
	Background color.RGBA
	Surface    color.RGBA
	Border     color.RGBA
	Text       color.RGBA
	TextMuted  color.RGBA
	AccentHue  float64
}

// Palette returns colors for an effective theme; auto is treated as light.
func Palette(effective Theme) Colors {
	if effective == ThemeDark {
		return Colors{
			Background: color.RGBA{R: 15, G: 23, B: 42, A: 255},
			Surface:    color.RGBA{R: 30, G: 41, B: 59, A: 230},
			Border:     color.RGBA{R: 71, G: 85, B: 105, A: 255},
			Text:       color.RGBA{R: 248, G: 250, B: 252, A: 255},
			TextMuted:  color.RGBA{R: 148, G: 163, B: 184, A: 255},
			AccentHue:  200,
		}
	}
	return Colors{
		Background: color.RGBA{R: 248, G: 250, B: 252, A: 255},
		Surface:    color.RGBA{R: 255, G: 255, B: 255, A: 230},
		Border:     color.RGBA{R: 203, G: 213, B: 225, A: 255},
		Text:       color.RGBA{R: 15, G: 23, B: 42, A: 255},
		TextMuted:  color.RGBA{R: 100, G: 116, B: 139, A: 255},
		AccentHue:  220,
	}
}
