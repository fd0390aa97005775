package gif

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"

	"github.com/cocosip/go-raster/raster"
)

// GIF transparency is one bit; this is the cutoff between the shared
// transparent entry and fully opaque
const alphaOpaque = 128

// frameToNRGBA widens any 8-bit frame layout to a standard image
func frameToNRGBA(frame *raster.FrameData) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	n := frame.Width * frame.Height
	switch frame.Color {
	case raster.ColorTypeL:
		for i := 0; i < n; i++ {
			v := frame.Pix[i]
			out.Pix[i*4], out.Pix[i*4+1], out.Pix[i*4+2], out.Pix[i*4+3] = v, v, v, 255
		}
	case raster.ColorTypeLA:
		for i := 0; i < n; i++ {
			v, a := frame.Pix[i*2], frame.Pix[i*2+1]
			out.Pix[i*4], out.Pix[i*4+1], out.Pix[i*4+2], out.Pix[i*4+3] = v, v, v, a
		}
	case raster.ColorTypeRgb:
		for i := 0; i < n; i++ {
			out.Pix[i*4] = frame.Pix[i*3]
			out.Pix[i*4+1] = frame.Pix[i*3+1]
			out.Pix[i*4+2] = frame.Pix[i*3+2]
			out.Pix[i*4+3] = 255
		}
	default:
		copy(out.Pix, frame.Pix)
	}
	return out
}

func hasTransparency(src *image.NRGBA) bool {
	for i := 3; i < len(src.Pix); i += 4 {
		if src.Pix[i] < alphaOpaque {
			return true
		}
	}
	return false
}

// exactQuantize returns a paletted copy when the image fits a 256-entry
// palette without loss, nil otherwise. Entries keep first-seen order;
// pixels under the alpha cutoff share one leading transparent entry and
// the rest are stored fully opaque.
func exactQuantize(src *image.NRGBA, transparent bool) *image.Paletted {
	pal := make(color.Palette, 0, 16)
	if transparent {
		pal = append(pal, color.NRGBA{})
	}
	index := make(map[color.NRGBA]uint8)

	out := image.NewPaletted(src.Bounds(), nil)
	for i := 0; i < len(src.Pix); i += 4 {
		if src.Pix[i+3] < alphaOpaque {
			out.Pix[i/4] = 0
			continue
		}
		c := color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 255}
		idx, ok := index[c]
		if !ok {
			if len(pal) == 256 {
				return nil
			}
			idx = uint8(len(pal))
			pal = append(pal, c)
			index[c] = idx
		}
		out.Pix[i/4] = idx
	}
	out.Palette = pal
	return out
}

// ditherQuantize maps the image onto the standard 256-color palette
// with error diffusion, reserving entry 0 for transparency when needed
func ditherQuantize(src *image.NRGBA, transparent bool) *image.Paletted {
	pal := palette.Plan9
	if transparent {
		pal = append(color.Palette{color.NRGBA{}}, palette.Plan9[:255]...)
	}
	out := image.NewPaletted(src.Bounds(), pal)
	draw.FloydSteinberg.Draw(out, src.Bounds(), src, image.Point{})
	return out
}

// quantize builds the paletted frame the encoder hands to the format
// writer, exact when possible
func quantize(frame *raster.FrameData) *image.Paletted {
	src := frameToNRGBA(frame)
	transparent := hasTransparency(src)
	if out := exactQuantize(src, transparent); out != nil {
		return out
	}
	return ditherQuantize(src, transparent)
}
