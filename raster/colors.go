package raster

import (
	"fmt"
	"strings"
)

// Basic named colors, the CSS keyword palette
var (
	Black   = Rgb{R: 0, G: 0, B: 0}
	Silver  = Rgb{R: 192, G: 192, B: 192}
	Gray    = Rgb{R: 128, G: 128, B: 128}
	White   = Rgb{R: 255, G: 255, B: 255}
	Maroon  = Rgb{R: 128, G: 0, B: 0}
	Red     = Rgb{R: 255, G: 0, B: 0}
	Purple  = Rgb{R: 128, G: 0, B: 128}
	Fuchsia = Rgb{R: 255, G: 0, B: 255}
	Green   = Rgb{R: 0, G: 128, B: 0}
	Lime    = Rgb{R: 0, G: 255, B: 0}
	Olive   = Rgb{R: 128, G: 128, B: 0}
	Yellow  = Rgb{R: 255, G: 255, B: 0}
	Navy    = Rgb{R: 0, G: 0, B: 128}
	Blue    = Rgb{R: 0, G: 0, B: 255}
	Teal    = Rgb{R: 0, G: 128, B: 128}
	Aqua    = Rgb{R: 0, G: 255, B: 255}
	Orange  = Rgb{R: 255, G: 165, B: 0}

	// Transparent is fully transparent black
	Transparent = Rgba{}
)

// ParseHex parses a hex color. Accepted forms, with or without a leading
// '#': RGB, RRGGBB, RGBA, RRGGBBAA. Three- and six-digit forms are opaque.
func ParseHex(s string) (Rgba, error) {
	digits := strings.TrimPrefix(s, "#")

	var n [8]uint8
	if len(digits) > len(n) {
		return Rgba{}, &HexError{Input: s}
	}
	for i := 0; i < len(digits); i++ {
		v, ok := hexNibble(digits[i])
		if !ok {
			return Rgba{}, &HexError{Input: s}
		}
		n[i] = v
	}

	switch len(digits) {
	case 3:
		return Rgba{R: n[0] * 0x11, G: n[1] * 0x11, B: n[2] * 0x11, A: 255}, nil
	case 4:
		return Rgba{R: n[0] * 0x11, G: n[1] * 0x11, B: n[2] * 0x11, A: n[3] * 0x11}, nil
	case 6:
		return Rgba{R: n[0]<<4 | n[1], G: n[2]<<4 | n[3], B: n[4]<<4 | n[5], A: 255}, nil
	case 8:
		return Rgba{R: n[0]<<4 | n[1], G: n[2]<<4 | n[3], B: n[4]<<4 | n[5], A: n[6]<<4 | n[7]}, nil
	}
	return Rgba{}, &HexError{Input: s}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Hex formats the color as "#rrggbb"
func (p Rgb) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

// Hex formats the color as "#rrggbbaa"
func (p Rgba) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", p.R, p.G, p.B, p.A)
}
