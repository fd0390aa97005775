package raster

// ColorType identifies the channel layout of pixel data
type ColorType uint8

const (
	// ColorTypeL is 8-bit grayscale
	ColorTypeL ColorType = iota

	// ColorTypeLA is 8-bit grayscale with alpha
	ColorTypeLA

	// ColorTypeRgb is 8-bit red, green, blue
	ColorTypeRgb

	// ColorTypeRgba is 8-bit red, green, blue, alpha
	ColorTypeRgba

	// ColorTypePaletted is an 8-bit index into a color table
	ColorTypePaletted

	// ColorTypeDynamic matches any layout; used by codecs that decide per image
	ColorTypeDynamic
)

// String returns a human-readable name
func (c ColorType) String() string {
	switch c {
	case ColorTypeL:
		return "grayscale"
	case ColorTypeLA:
		return "grayscale+alpha"
	case ColorTypeRgb:
		return "rgb"
	case ColorTypeRgba:
		return "rgba"
	case ColorTypePaletted:
		return "paletted"
	case ColorTypeDynamic:
		return "dynamic"
	}
	return "unknown"
}

// Channels returns the number of samples per pixel.
// Dynamic has no fixed layout and returns 0.
func (c ColorType) Channels() int {
	switch c {
	case ColorTypeL, ColorTypePaletted:
		return 1
	case ColorTypeLA:
		return 2
	case ColorTypeRgb:
		return 3
	case ColorTypeRgba:
		return 4
	}
	return 0
}

// HasAlpha reports whether the layout carries an alpha channel.
// Paletted counts as alpha-capable since palette entries may be transparent.
func (c ColorType) HasAlpha() bool {
	switch c {
	case ColorTypeLA, ColorTypeRgba, ColorTypePaletted, ColorTypeDynamic:
		return true
	}
	return false
}
