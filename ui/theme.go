package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Night palette.
var (
	ColorSky    = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff} // slate-900
	ColorPanel  = color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff} // slate-800
	ColorBorder = color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff} // slate-700
	ColorSea    = color.NRGBA{R: 0x17, G: 0x25, B: 0x54, A: 0xff} // blue-950
	ColorWave   = color.NRGBA{R: 0x1d, G: 0x4e, B: 0xd8, A: 0x4c} // blue-700, 30%
	ColorTower  = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	ColorStripe = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	ColorLamp   = color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	ColorMorse  = color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff} // amber-400
	ColorGood   = color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
	ColorBad    = color.NRGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff}
)

// NightTheme is the dark theme of the lighthouse window.
type NightTheme struct {
	fyne.Theme
}

// NewNightTheme creates a new instance of the night theme.
func NewNightTheme() fyne.Theme {
	return &NightTheme{Theme: theme.DefaultTheme()}
}

// Color returns the night palette for the background and panels and defers
// to the default dark variant otherwise.
func (t *NightTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorSky
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return ColorPanel
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return ColorBorder
	}
	return t.Theme.Color(name, theme.VariantDark)
}
