package filter

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/cocosip/go-raster/raster"
)

// GaussianBlur blurs the image with a gaussian kernel of the given
// radius
func GaussianBlur[P raster.Pixel[P]](img *raster.Image[P], radius float64) *raster.Image[P] {
	return fromStd[P](blur.Gaussian(img.ToImage(), radius))
}

// Median replaces each pixel with the median of the window of the given
// size, removing speckle noise
func Median[P raster.Pixel[P]](img *raster.Image[P], size float64) *raster.Image[P] {
	return fromStd[P](effect.Median(img.ToImage(), size))
}

// Grayscale converts the image colors to their luminance. The pixel
// representation is unchanged; color pixels come back with equal
// channels.
func Grayscale[P raster.Pixel[P]](img *raster.Image[P]) *raster.Image[P] {
	return fromStd[P](effect.Grayscale(img.ToImage()))
}

// Sobel highlights edges with the sobel operator
func Sobel[P raster.Pixel[P]](img *raster.Image[P]) *raster.Image[P] {
	return fromStd[P](effect.Sobel(img.ToImage()))
}

// AdjustContrast scales the distance of every color value from middle
// gray. The change is in [-1, 1], where 0 leaves the image unchanged.
func AdjustContrast[P raster.Pixel[P]](img *raster.Image[P], change float64) *raster.Image[P] {
	return fromStd[P](adjust.Contrast(img.ToImage(), change))
}

func fromStd[P raster.Pixel[P]](src image.Image) *raster.Image[P] {
	return raster.Must(raster.FromImage[P](src))
}
