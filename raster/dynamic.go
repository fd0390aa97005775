package raster

// dynTag discriminates the runtime representation held by a Dynamic pixel.
// The zero tag marks an unset pixel so that the zero Dynamic is usable.
type dynTag uint8

const (
	dynUnset dynTag = iota
	dynL
	dynLA
	dynRgb
	dynRgba
)

// Dynamic is a pixel whose representation is chosen at runtime.
// It holds one of L, LA, Rgb or Rgba and behaves like that representation
// for every pixel operation. Channel storage is normalized so that equal
// logical pixels compare equal with ==.
type Dynamic struct {
	tag dynTag
	c   Rgba
}

// DynamicL creates a Dynamic holding a grayscale value
func DynamicL(l uint8) Dynamic {
	return Dynamic{tag: dynL, c: Rgba{R: l, G: l, B: l, A: 255}}
}

// DynamicLA creates a Dynamic holding a grayscale+alpha value
func DynamicLA(l, a uint8) Dynamic {
	return Dynamic{tag: dynLA, c: Rgba{R: l, G: l, B: l, A: a}}
}

// DynamicRgb creates a Dynamic holding a truecolor value
func DynamicRgb(r, g, b uint8) Dynamic {
	return Dynamic{tag: dynRgb, c: Rgba{R: r, G: g, B: b, A: 255}}
}

// DynamicRgba creates a Dynamic holding a truecolor+alpha value
func DynamicRgba(r, g, b, a uint8) Dynamic {
	return Dynamic{tag: dynRgba, c: Rgba{R: r, G: g, B: b, A: a}}
}

// DynamicOf converts any pixel to a Dynamic keeping its color type.
// Bit pixels become grayscale.
func DynamicOf[P Pixel[P]](p P) Dynamic {
	c := p.RGBA()
	switch p.ColorType() {
	case ColorTypeL:
		return DynamicL(c.R)
	case ColorTypeLA:
		return DynamicLA(c.R, c.A)
	case ColorTypeRgb:
		return DynamicRgb(c.R, c.G, c.B)
	default:
		return DynamicRgba(c.R, c.G, c.B, c.A)
	}
}

// dynamicFromRGBA builds a Dynamic of the given color type from rgba channels
func dynamicFromRGBA(ct ColorType, c Rgba) Dynamic {
	switch ct {
	case ColorTypeL:
		return DynamicL(luma(c.R, c.G, c.B))
	case ColorTypeLA:
		return DynamicLA(luma(c.R, c.G, c.B), c.A)
	case ColorTypeRgb:
		return DynamicRgb(c.R, c.G, c.B)
	default:
		return DynamicRgba(c.R, c.G, c.B, c.A)
	}
}

// ColorType returns the layout of the held representation,
// or ColorTypeDynamic for the zero (unset) pixel
func (p Dynamic) ColorType() ColorType {
	switch p.tag {
	case dynL:
		return ColorTypeL
	case dynLA:
		return ColorTypeLA
	case dynRgb:
		return ColorTypeRgb
	case dynRgba:
		return ColorTypeRgba
	}
	return ColorTypeDynamic
}

// BitDepth returns 8
func (Dynamic) BitDepth() int { return 8 }

// AlphaComponent returns the alpha channel of alpha-capable representations
func (p Dynamic) AlphaComponent() (uint8, bool) {
	switch p.tag {
	case dynLA, dynRgba:
		return p.c.A, true
	}
	return 255, false
}

// Luminance returns the BT.601 luminance of the held value
func (p Dynamic) Luminance() uint8 {
	switch p.tag {
	case dynL, dynLA:
		return p.c.R
	}
	return luma(p.c.R, p.c.G, p.c.B)
}

// Inverted inverts the color channels of the held value, alpha untouched
func (p Dynamic) Inverted() Dynamic {
	return p.MapComponents(func(v uint8) uint8 { return ^v })
}

// MapComponents applies fn to the color channels of the held value, alpha untouched
func (p Dynamic) MapComponents(fn func(uint8) uint8) Dynamic {
	switch p.tag {
	case dynL:
		return DynamicL(fn(p.c.R))
	case dynLA:
		return DynamicLA(fn(p.c.R), p.c.A)
	case dynRgb:
		return DynamicRgb(fn(p.c.R), fn(p.c.G), fn(p.c.B))
	case dynRgba:
		return DynamicRgba(fn(p.c.R), fn(p.c.G), fn(p.c.B), p.c.A)
	}
	return p
}

// Blend composites other over this pixel. The result keeps this pixel's
// representation; other is widened to rgba for the composite.
func (p Dynamic) Blend(other Dynamic) Dynamic {
	if p.tag == dynUnset {
		return other
	}
	blended := p.effectiveRgba().Blend(other.effectiveRgba())
	return dynamicFromRGBA(p.ColorType(), blended)
}

// RGBA widens the held value to 8-bit rgba
func (p Dynamic) RGBA() Rgba {
	if p.tag == dynUnset {
		return Rgba{}
	}
	return p.c
}

// effectiveRgba is RGBA with unset treated as transparent black
func (p Dynamic) effectiveRgba() Rgba {
	if p.tag == dynUnset {
		return Rgba{}
	}
	return p.c
}

// FromRGBA narrows rgba channels into this pixel's representation.
// The zero Dynamic adopts the full rgba representation.
func (p Dynamic) FromRGBA(c Rgba) Dynamic {
	if p.tag == dynUnset {
		return DynamicRgba(c.R, c.G, c.B, c.A)
	}
	return dynamicFromRGBA(p.ColorType(), c)
}

// AsL narrows the held value to grayscale
func (p Dynamic) AsL() L {
	return L{L: p.Luminance()}
}

// AsLA narrows the held value to grayscale+alpha
func (p Dynamic) AsLA() LA {
	a, _ := p.AlphaComponent()
	return LA{L: p.Luminance(), A: a}
}

// AsRgb widens or narrows the held value to truecolor
func (p Dynamic) AsRgb() Rgb {
	c := p.effectiveRgba()
	return Rgb{R: c.R, G: c.G, B: c.B}
}

// AsRgba widens the held value to truecolor+alpha
func (p Dynamic) AsRgba() Rgba {
	return p.effectiveRgba()
}
