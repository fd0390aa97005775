package draw

import "github.com/cocosip/go-raster/raster"

// Fill produces the pixel painted at each coordinate a shape covers.
// Solid colors ignore the coordinates; gradients and image fills use
// them.
type Fill[P raster.Pixel[P]] interface {
	// SetBounds tells the fill the half-open rectangle it is about to
	// cover. Shapes call it once before plotting; gradients scale their
	// stops to this rectangle, other fills ignore it.
	SetBounds(x0, y0, x1, y1 int)

	// At returns the fill pixel for the given image coordinate
	At(x, y int) P
}

// SolidFill paints a single color everywhere
type SolidFill[P raster.Pixel[P]] struct {
	Color P
}

// Solid creates a solid color fill
func Solid[P raster.Pixel[P]](color P) *SolidFill[P] {
	return &SolidFill[P]{Color: color}
}

// SetBounds is a no-op for solid fills
func (f *SolidFill[P]) SetBounds(x0, y0, x1, y1 int) {}

// At returns the fill color
func (f *SolidFill[P]) At(x, y int) P { return f.Color }

// ImageFill paints pixels sampled from another image at the same
// coordinates. Coordinates outside the source fall back to the source's
// top-left pixel, so undersized sources produce solid margins rather
// than holes.
type ImageFill[P raster.Pixel[P]] struct {
	Source *raster.Image[P]
}

// NewImageFill creates a fill that samples from src
func NewImageFill[P raster.Pixel[P]](src *raster.Image[P]) *ImageFill[P] {
	return &ImageFill[P]{Source: src}
}

// SetBounds is a no-op for image fills
func (f *ImageFill[P]) SetBounds(x0, y0, x1, y1 int) {}

// At returns the source pixel at (x, y), or the pixel at (0, 0) when
// (x, y) is outside the source
func (f *ImageFill[P]) At(x, y int) P {
	if p, err := f.Source.Pixel(x, y); err == nil {
		return p
	}
	return f.Source.MustPixel(0, 0)
}
