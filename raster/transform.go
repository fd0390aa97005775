package raster

import (
	"github.com/chewxy/math32"

	"github.com/cocosip/go-raster/internal/imath"
)

// Cropped returns the sub-image between (x0, y0) inclusive and
// (x1, y1) exclusive, clamped to the image bounds
func (img *Image[P]) Cropped(x0, y0, x1, y1 int) (*Image[P], error) {
	x0 = imath.Clamp(x0, 0, img.width)
	y0 = imath.Clamp(y0, 0, img.height)
	x1 = imath.Clamp(x1, 0, img.width)
	y1 = imath.Clamp(y1, 0, img.height)
	if x1 <= x0 || y1 <= y0 {
		return nil, &DimensionError{Width: x1 - x0, Height: y1 - y0}
	}

	out := img.emptyLike(x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		copy(out.pix[(y-y0)*out.width:], img.pix[y*img.width+x0:y*img.width+x1])
	}
	return out, nil
}

// Mirrored returns the image flipped about its vertical axis
func (img *Image[P]) Mirrored() *Image[P] {
	out := img.emptyLike(img.width, img.height)
	for y := 0; y < img.height; y++ {
		row := img.pix[y*img.width : (y+1)*img.width]
		dst := out.pix[y*img.width : (y+1)*img.width]
		for x, p := range row {
			dst[img.width-1-x] = p
		}
	}
	return out
}

// Flipped returns the image flipped about its horizontal axis
func (img *Image[P]) Flipped() *Image[P] {
	out := img.emptyLike(img.width, img.height)
	for y := 0; y < img.height; y++ {
		copy(out.pix[(img.height-1-y)*img.width:], img.pix[y*img.width:(y+1)*img.width])
	}
	return out
}

// Rotated90 returns the image rotated 90 degrees clockwise
func (img *Image[P]) Rotated90() *Image[P] {
	out := img.emptyLike(img.height, img.width)
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			out.pix[x*out.width+(img.height-1-y)] = img.pix[y*img.width+x]
		}
	}
	return out
}

// Rotated180 returns the image rotated 180 degrees
func (img *Image[P]) Rotated180() *Image[P] {
	out := img.emptyLike(img.width, img.height)
	n := len(img.pix)
	for i, p := range img.pix {
		out.pix[n-1-i] = p
	}
	return out
}

// Rotated270 returns the image rotated 90 degrees counter-clockwise
func (img *Image[P]) Rotated270() *Image[P] {
	out := img.emptyLike(img.height, img.width)
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			out.pix[(img.width-1-x)*out.width+y] = img.pix[y*img.width+x]
		}
	}
	return out
}

// Inverted returns the image with every pixel's color channels inverted
func (img *Image[P]) Inverted() *Image[P] {
	return img.Mapped(func(_, _ int, p P) P { return p.Inverted() })
}

// Brightened adds amount to every color channel, saturating at 255.
// Alpha channels are untouched.
func (img *Image[P]) Brightened(amount uint8) *Image[P] {
	return img.Mapped(func(_, _ int, p P) P {
		return p.MapComponents(func(v uint8) uint8 { return satAdd8(v, amount) })
	})
}

// Darkened subtracts amount from every color channel, saturating at 0.
// Alpha channels are untouched.
func (img *Image[P]) Darkened(amount uint8) *Image[P] {
	return img.Mapped(func(_, _ int, p P) P {
		return p.MapComponents(func(v uint8) uint8 { return satSub8(v, amount) })
	})
}

func satAdd8(v, d uint8) uint8 {
	s := uint16(v) + uint16(d)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func satSub8(v, d uint8) uint8 {
	if d > v {
		return 0
	}
	return v - d
}

// HueRotated rotates the hue of every pixel by the given angle in degrees.
// Alpha channels are untouched. Gray pixels are preserved.
func (img *Image[P]) HueRotated(degrees int) *Image[P] {
	rad := float32(degrees) * math32.Pi / 180
	cos, sin := math32.Cos(rad), math32.Sin(rad)

	// SVG feColorMatrix hueRotate coefficients
	m := [9]float32{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072,
	}

	var z P
	return img.Mapped(func(_, _ int, p P) P {
		c := p.RGBA()
		r, g, b := float32(c.R), float32(c.G), float32(c.B)
		out := Rgba{
			R: imath.ClampToByte(math32.Round(m[0]*r + m[1]*g + m[2]*b)),
			G: imath.ClampToByte(math32.Round(m[3]*r + m[4]*g + m[5]*b)),
			B: imath.ClampToByte(math32.Round(m[6]*r + m[7]*g + m[8]*b)),
			A: c.A,
		}
		return z.FromRGBA(out)
	})
}

// Paste copies other onto the image with its top-left corner at (x, y),
// replacing the pixels underneath. The pasted region is clipped.
func (img *Image[P]) Paste(x, y int, other *Image[P]) {
	for sy := 0; sy < other.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= img.height {
			continue
		}
		for sx := 0; sx < other.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= img.width {
				continue
			}
			img.pix[dy*img.width+dx] = other.pix[sy*other.width+sx]
		}
	}
}

// Overlay composites other onto the image with its top-left corner at
// (x, y), blending through each pixel's alpha. The region is clipped.
func (img *Image[P]) Overlay(x, y int, other *Image[P]) {
	for sy := 0; sy < other.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= img.height {
			continue
		}
		for sx := 0; sx < other.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= img.width {
				continue
			}
			i := dy*img.width + dx
			img.pix[i] = img.pix[i].Blend(other.pix[sy*other.width+sx])
		}
	}
}

// MaskAlpha replaces the alpha channel of img with the gray values of
// mask. The two images must have identical dimensions.
func MaskAlpha(img *Image[Rgba], mask *Image[L]) error {
	if img.width != mask.width || img.height != mask.height {
		return &DimensionError{
			Width:    mask.width,
			Height:   mask.height,
			Expected: img.Len(),
			Received: mask.Len(),
		}
	}
	for i := range img.pix {
		img.pix[i].A = mask.pix[i].L
	}
	return nil
}
