package draw

import "github.com/cocosip/go-raster/raster"

// Rectangle is an axis-aligned rectangle with an optional fill and an
// optional border. A rectangle with neither, or with a non-positive
// size, draws nothing.
type Rectangle[P raster.Pixel[P]] struct {
	// X, Y is the top-left corner
	X int
	Y int

	Width  int
	Height int

	Fill   Fill[P]
	Border *Border[P]
}

// NewRectangle creates a rectangle at (x, y) with the given size
func NewRectangle[P raster.Pixel[P]](x, y, width, height int) *Rectangle[P] {
	return &Rectangle[P]{X: x, Y: y, Width: width, Height: height}
}

// Square creates a square with side length side at (x, y)
func Square[P raster.Pixel[P]](x, y, side int) *Rectangle[P] {
	return NewRectangle[P](x, y, side, side)
}

// Draw renders the rectangle onto img
func (r *Rectangle[P]) Draw(img *raster.Image[P]) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	x1, y1 := r.X+r.Width, r.Y+r.Height

	if r.Fill != nil {
		r.Fill.SetBounds(r.X, r.Y, x1, y1)
		for y := r.Y; y < y1; y++ {
			for x := r.X; x < x1; x++ {
				img.OverlayPixel(x, y, r.Fill.At(x, y))
			}
		}
	}

	if r.Border.active() {
		inner, outer := r.Border.offsets()
		c := r.Border.Color

		// Top and bottom bands span the rectangle's width
		for x := r.X; x < x1; x++ {
			for y := r.Y - outer; y < r.Y+inner; y++ {
				img.OverlayPixel(x, y, c)
			}
			for y := y1 - inner; y < y1+outer; y++ {
				img.OverlayPixel(x, y, c)
			}
		}

		// Left and right bands span the full bordered height
		for y := r.Y - outer; y < y1+outer; y++ {
			for x := r.X - outer; x < r.X+inner; x++ {
				img.OverlayPixel(x, y, c)
			}
			for x := x1 - inner; x < x1+outer; x++ {
				img.OverlayPixel(x, y, c)
			}
		}
	}
}
