package raster

import "github.com/chewxy/math32"

// Pixel is the constraint satisfied by every pixel representation.
// A pixel is a small comparable value type; all channel values are 8-bit.
// FromRGBA is called on any value of the type (usually the zero value)
// and builds a new pixel from 8-bit rgba channels, narrowing lossily
// where the representation requires it.
type Pixel[P any] interface {
	comparable

	// ColorType returns the channel layout of this pixel
	ColorType() ColorType

	// BitDepth returns the significant bits per channel
	BitDepth() int

	// AlphaComponent returns the alpha value and whether the
	// representation actually stores one. Alpha-less pixels report 255.
	AlphaComponent() (uint8, bool)

	// Luminance returns the BT.601 luminance of the pixel
	Luminance() uint8

	// Inverted returns the pixel with color channels inverted, alpha untouched
	Inverted() P

	// MapComponents applies fn to every color channel, alpha untouched
	MapComponents(fn func(uint8) uint8) P

	// Blend composites other over this pixel
	Blend(other P) P

	// RGBA widens the pixel to 8-bit rgba
	RGBA() Rgba

	// FromRGBA narrows 8-bit rgba channels into this representation
	FromRGBA(c Rgba) P
}

// luma converts rgb channels to BT.601 luminance.
// Equal channels return directly; the float path truncates.
func luma(r, g, b uint8) uint8 {
	if r == g && g == b {
		return r
	}
	return uint8(0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b))
}

// blendChannel composites a single channel pair given premultiplied weights
func blendChannel(top, under, topW, underW, outA float32) uint8 {
	return uint8(math32.Round((top*topW + under*underW) / outA))
}

// L is an 8-bit grayscale pixel
type L struct {
	L uint8
}

// NewL creates a grayscale pixel
func NewL(l uint8) L {
	return L{L: l}
}

// ColorType returns ColorTypeL
func (L) ColorType() ColorType { return ColorTypeL }

// BitDepth returns 8
func (L) BitDepth() int { return 8 }

// AlphaComponent reports no alpha channel
func (L) AlphaComponent() (uint8, bool) { return 255, false }

// Luminance returns the gray value itself
func (p L) Luminance() uint8 { return p.L }

// Inverted returns the inverted gray value
func (p L) Inverted() L { return L{L: ^p.L} }

// MapComponents applies fn to the gray value
func (p L) MapComponents(fn func(uint8) uint8) L { return L{L: fn(p.L)} }

// Blend returns other; a pixel without alpha is fully opaque
func (p L) Blend(other L) L { return other }

// RGBA replicates the gray value into the color channels
func (p L) RGBA() Rgba { return Rgba{R: p.L, G: p.L, B: p.L, A: 255} }

// FromRGBA narrows via BT.601 luminance, dropping alpha
func (L) FromRGBA(c Rgba) L { return L{L: luma(c.R, c.G, c.B)} }

// LA is an 8-bit grayscale pixel with alpha
type LA struct {
	L uint8
	A uint8
}

// NewLA creates a grayscale+alpha pixel
func NewLA(l, a uint8) LA {
	return LA{L: l, A: a}
}

// ColorType returns ColorTypeLA
func (LA) ColorType() ColorType { return ColorTypeLA }

// BitDepth returns 8
func (LA) BitDepth() int { return 8 }

// AlphaComponent returns the alpha channel
func (p LA) AlphaComponent() (uint8, bool) { return p.A, true }

// Luminance returns the gray value
func (p LA) Luminance() uint8 { return p.L }

// Inverted inverts the gray value, alpha untouched
func (p LA) Inverted() LA { return LA{L: ^p.L, A: p.A} }

// MapComponents applies fn to the gray value, alpha untouched
func (p LA) MapComponents(fn func(uint8) uint8) LA { return LA{L: fn(p.L), A: p.A} }

// Blend composites other over this pixel
func (p LA) Blend(other LA) LA {
	switch other.A {
	case 255:
		return other
	case 0:
		return p
	}
	topA := float32(other.A) / 255
	underA := float32(p.A) / 255 * (1 - topA)
	outA := topA + underA
	return LA{
		L: blendChannel(float32(other.L), float32(p.L), topA, underA, outA),
		A: uint8(math32.Round(outA * 255)),
	}
}

// RGBA replicates the gray value, keeping alpha
func (p LA) RGBA() Rgba { return Rgba{R: p.L, G: p.L, B: p.L, A: p.A} }

// FromRGBA narrows via BT.601 luminance, keeping alpha
func (LA) FromRGBA(c Rgba) LA { return LA{L: luma(c.R, c.G, c.B), A: c.A} }

// Rgb is an 8-bit truecolor pixel
type Rgb struct {
	R uint8
	G uint8
	B uint8
}

// NewRgb creates a truecolor pixel
func NewRgb(r, g, b uint8) Rgb {
	return Rgb{R: r, G: g, B: b}
}

// ColorType returns ColorTypeRgb
func (Rgb) ColorType() ColorType { return ColorTypeRgb }

// BitDepth returns 8
func (Rgb) BitDepth() int { return 8 }

// AlphaComponent reports no alpha channel
func (Rgb) AlphaComponent() (uint8, bool) { return 255, false }

// Luminance returns the BT.601 luminance
func (p Rgb) Luminance() uint8 { return luma(p.R, p.G, p.B) }

// Inverted inverts all color channels
func (p Rgb) Inverted() Rgb { return Rgb{R: ^p.R, G: ^p.G, B: ^p.B} }

// MapComponents applies fn to each color channel
func (p Rgb) MapComponents(fn func(uint8) uint8) Rgb {
	return Rgb{R: fn(p.R), G: fn(p.G), B: fn(p.B)}
}

// Blend returns other; a pixel without alpha is fully opaque
func (p Rgb) Blend(other Rgb) Rgb { return other }

// RGBA widens with full alpha
func (p Rgb) RGBA() Rgba { return Rgba{R: p.R, G: p.G, B: p.B, A: 255} }

// FromRGBA drops the alpha channel
func (Rgb) FromRGBA(c Rgba) Rgb { return Rgb{R: c.R, G: c.G, B: c.B} }

// Rgba is an 8-bit truecolor pixel with alpha
type Rgba struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// NewRgba creates a truecolor+alpha pixel
func NewRgba(r, g, b, a uint8) Rgba {
	return Rgba{R: r, G: g, B: b, A: a}
}

// ColorType returns ColorTypeRgba
func (Rgba) ColorType() ColorType { return ColorTypeRgba }

// BitDepth returns 8
func (Rgba) BitDepth() int { return 8 }

// AlphaComponent returns the alpha channel
func (p Rgba) AlphaComponent() (uint8, bool) { return p.A, true }

// Luminance returns the BT.601 luminance
func (p Rgba) Luminance() uint8 { return luma(p.R, p.G, p.B) }

// Inverted inverts the color channels, alpha untouched
func (p Rgba) Inverted() Rgba { return Rgba{R: ^p.R, G: ^p.G, B: ^p.B, A: p.A} }

// MapComponents applies fn to each color channel, alpha untouched
func (p Rgba) MapComponents(fn func(uint8) uint8) Rgba {
	return Rgba{R: fn(p.R), G: fn(p.G), B: fn(p.B), A: p.A}
}

// Blend composites other over this pixel in float space
func (p Rgba) Blend(other Rgba) Rgba {
	switch other.A {
	case 255:
		return other
	case 0:
		return p
	}
	topA := float32(other.A) / 255
	underA := float32(p.A) / 255 * (1 - topA)
	outA := topA + underA
	return Rgba{
		R: blendChannel(float32(other.R), float32(p.R), topA, underA, outA),
		G: blendChannel(float32(other.G), float32(p.G), topA, underA, outA),
		B: blendChannel(float32(other.B), float32(p.B), topA, underA, outA),
		A: uint8(math32.Round(outA * 255)),
	}
}

// RGBA returns the pixel itself
func (p Rgba) RGBA() Rgba { return p }

// FromRGBA returns the channels unchanged
func (Rgba) FromRGBA(c Rgba) Rgba { return c }

// Bit is a 1-bit pixel, either on (white) or off (black)
type Bit struct {
	On bool
}

// NewBit creates a 1-bit pixel
func NewBit(on bool) Bit {
	return Bit{On: on}
}

// ColorType returns ColorTypeL; bit pixels are a 1-bit grayscale layout
func (Bit) ColorType() ColorType { return ColorTypeL }

// BitDepth returns 1
func (Bit) BitDepth() int { return 1 }

// AlphaComponent reports no alpha channel
func (Bit) AlphaComponent() (uint8, bool) { return 255, false }

// Luminance returns 255 when on, 0 when off
func (p Bit) Luminance() uint8 {
	if p.On {
		return 255
	}
	return 0
}

// Inverted flips the bit
func (p Bit) Inverted() Bit { return Bit{On: !p.On} }

// MapComponents applies fn to the 0/255 gray value and thresholds the result
func (p Bit) MapComponents(fn func(uint8) uint8) Bit {
	return Bit{On: fn(p.Luminance()) > 127}
}

// Blend returns other; a pixel without alpha is fully opaque
func (p Bit) Blend(other Bit) Bit { return other }

// RGBA widens to black or white
func (p Bit) RGBA() Rgba {
	v := p.Luminance()
	return Rgba{R: v, G: v, B: v, A: 255}
}

// FromRGBA thresholds the BT.601 luminance at 127
func (Bit) FromRGBA(c Rgba) Bit { return Bit{On: luma(c.R, c.G, c.B) > 127} }

// ConvertPixel converts between any two pixel representations through
// 8-bit rgba. Narrowing conversions are lossy and total.
func ConvertPixel[Q Pixel[Q], P Pixel[P]](p P) Q {
	var z Q
	return z.FromRGBA(p.RGBA())
}
