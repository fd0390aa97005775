// Package draw renders shapes, borders and fills onto raster images.
//
// Every shape implements Drawable and paints itself through the target
// image's overlay mode, so drawing with OverlayMerge composites through
// alpha while OverlayReplace writes pixels directly. Coordinates outside
// the image are clipped.
package draw

import "github.com/cocosip/go-raster/raster"

// Drawable is implemented by every shape that can render itself onto an
// image.
type Drawable[P raster.Pixel[P]] interface {
	Draw(img *raster.Image[P])
}

// Point is an integer pixel coordinate
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// BorderPosition places a border relative to the edge of its shape
type BorderPosition uint8

const (
	// BorderOutset grows the border outward from the shape edge
	BorderOutset BorderPosition = iota

	// BorderInset grows the border inward, over the shape's contents
	BorderInset

	// BorderCenter splits the thickness across the shape edge
	BorderCenter
)

// Border describes a shape outline. A zero Thickness disables the
// border.
type Border[P raster.Pixel[P]] struct {
	Color     P
	Thickness int
	Position  BorderPosition
}

// NewBorder creates an outset border with the given color and thickness
func NewBorder[P raster.Pixel[P]](color P, thickness int) *Border[P] {
	return &Border[P]{Color: color, Thickness: thickness}
}

// offsets returns how far the border extends inward and outward from
// the shape edge. The two always sum to the thickness.
func (b *Border[P]) offsets() (inner, outer int) {
	switch b.Position {
	case BorderInset:
		return b.Thickness, 0
	case BorderCenter:
		in := b.Thickness / 2
		return in, b.Thickness - in
	default:
		return 0, b.Thickness
	}
}

// active reports whether the border should be rendered
func (b *Border[P]) active() bool {
	return b != nil && b.Thickness > 0
}
