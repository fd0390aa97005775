package raster

import (
	"image"
	"image/color"
)

// ToNRGBA copies the image into a stdlib *image.NRGBA
func (img *Image[P]) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	for i, p := range img.pix {
		c := p.RGBA()
		o := i * 4
		out.Pix[o] = c.R
		out.Pix[o+1] = c.G
		out.Pix[o+2] = c.B
		out.Pix[o+3] = c.A
	}
	return out
}

// ToImage copies the image into a stdlib image: *image.Gray for
// grayscale pixel types, *image.NRGBA for everything else
func (img *Image[P]) ToImage() image.Image {
	var zero P
	if zero.ColorType() == ColorTypeL {
		out := image.NewGray(image.Rect(0, 0, img.width, img.height))
		for i, p := range img.pix {
			out.Pix[i] = p.Luminance()
		}
		return out
	}
	return img.ToNRGBA()
}

// FromImage copies a stdlib image into an Image of pixel type P.
// Dynamic pixels adopt a tag matching the source's color model.
func FromImage[P Pixel[P]](src image.Image) (*Image[P], error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}

	var zero P
	mk := zero.FromRGBA
	if _, ok := any(zero).(Dynamic); ok {
		ct := stdColorType(src)
		mk = func(c Rgba) P {
			return any(dynamicFromRGBA(ct, c)).(P)
		}
	}

	pix := make([]P, w*h)
	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride:]
			for x := 0; x < w; x++ {
				o := x * 4
				pix[y*w+x] = mk(Rgba{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]})
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := s.Pix[y*s.Stride:]
			for x := 0; x < w; x++ {
				v := row[x]
				pix[y*w+x] = mk(Rgba{R: v, G: v, B: v, A: 255})
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				pix[y*w+x] = mk(Rgba{R: c.R, G: c.G, B: c.B, A: c.A})
			}
		}
	}
	return &Image[P]{width: w, height: h, pix: pix}, nil
}

// stdColorType maps a stdlib image's color model to the closest layout
func stdColorType(src image.Image) ColorType {
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		return ColorTypeL
	case *image.YCbCr, *image.CMYK:
		return ColorTypeRgb
	}
	return ColorTypeRgba
}
