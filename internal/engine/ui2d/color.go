package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for UI theming.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	// Overlay theme, dark panels with calendar greens.
	ColorPanelBg      = Color{0.05, 0.07, 0.06, 0.92}
	ColorPanelBorder  = Color{0.19, 0.25, 0.21, 1}
	ColorButtonNormal = Color{0.1, 0.27, 0.16, 1}
	ColorButtonHover  = Color{0.15, 0.4, 0.23, 1}
	ColorButtonActive = Color{0.22, 0.6, 0.33, 1}
	ColorButtonOff    = Color{0.12, 0.14, 0.13, 1}
	ColorInputBg      = Color{0.03, 0.04, 0.04, 1}
	ColorInputBorder  = Color{0.2, 0.26, 0.22, 1}
	ColorText         = Color{0.9, 0.93, 0.91, 1}
	ColorTextDim      = Color{0.5, 0.56, 0.52, 1}
	ColorHighlight    = Color{0.25, 0.77, 0.39, 1}
	ColorError        = Color{0.97, 0.32, 0.29, 1}
)

// Contribution bucket colors, lightest to most active.
var (
	ColorLevelNone = RGB(0x16, 0x1b, 0x22)
	ColorLevelLow  = RGB(0x0e, 0x44, 0x29)
	ColorLevelMid  = RGB(0x00, 0x6d, 0x32)
	ColorLevelHigh = RGB(0x39, 0xd3, 0x53)
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
