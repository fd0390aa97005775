package draw

import (
	"math"

	"github.com/cocosip/go-raster/internal/imath"
	"github.com/cocosip/go-raster/raster"
)

// Line is a straight line segment between two points with an optional
// thickness. Thickness below 1 draws a single-pixel Bresenham line;
// thicker lines are centered on the segment.
type Line[P raster.Pixel[P]] struct {
	X0 int
	Y0 int
	X1 int
	Y1 int

	Fill      Fill[P]
	Thickness int
}

// NewLine creates a single-pixel line from (x0, y0) to (x1, y1)
func NewLine[P raster.Pixel[P]](x0, y0, x1, y1 int) *Line[P] {
	return &Line[P]{X0: x0, Y0: y0, X1: x1, Y1: y1, Thickness: 1}
}

// Draw renders the line onto img
func (l *Line[P]) Draw(img *raster.Image[P]) {
	if l.Fill == nil {
		return
	}
	l.Fill.SetBounds(
		min(l.X0, l.X1), min(l.Y0, l.Y1),
		max(l.X0, l.X1)+1, max(l.Y0, l.Y1)+1,
	)

	switch {
	case l.Thickness <= 1:
		l.thin(img)
	case l.X0 == l.X1 || l.Y0 == l.Y1:
		l.thickStraight(img)
	default:
		l.thickSlanted(img)
	}
}

// thin plots the segment with Bresenham's algorithm
func (l *Line[P]) thin(img *raster.Image[P]) {
	x0, y0, x1, y1 := l.X0, l.Y0, l.X1, l.Y1

	steep := imath.Abs(y1-y0) > imath.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := imath.Abs(y1 - y0)
	e := dx / 2
	step := 1
	if y0 > y1 {
		step = -1
	}

	y := y0
	for x := x0; x <= x1; x++ {
		px, py := x, y
		if steep {
			px, py = y, x
		}
		img.OverlayPixel(px, py, l.Fill.At(px, py))

		e -= dy
		if e < 0 {
			y += step
			e += dx
		}
	}
}

// thickStraight plots an axis-aligned thick line as a block of spans
// centered on the segment
func (l *Line[P]) thickStraight(img *raster.Image[P]) {
	adj := l.Thickness / 2

	x0, x1 := min(l.X0, l.X1), max(l.X0, l.X1)
	y0, y1 := min(l.Y0, l.Y1), max(l.Y0, l.Y1)
	if l.X0 == l.X1 {
		x0 -= adj
		x1 = x0 + l.Thickness - 1
	} else {
		y0 -= adj
		y1 = y0 + l.Thickness - 1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.OverlayPixel(x, y, l.Fill.At(x, y))
		}
	}
}

// thickSlanted plots a thick line as the quad formed by offsetting the
// segment perpendicular to its direction
func (l *Line[P]) thickSlanted(img *raster.Image[P]) {
	angle := math.Atan2(float64(l.Y1-l.Y0), float64(l.X1-l.X0))
	half := float64(l.Thickness) / 2
	ux := half * math.Cos(angle+math.Pi/2)
	uy := half * math.Sin(angle+math.Pi/2)

	quad := closeRing([]Point{
		{X: l.X0 + round(ux), Y: l.Y0 + round(uy)},
		{X: l.X0 - round(ux), Y: l.Y0 - round(uy)},
		{X: l.X1 - round(ux), Y: l.Y1 - round(uy)},
		{X: l.X1 + round(ux), Y: l.Y1 + round(uy)},
	})
	scanFill(img, quad, l.Fill)
}

func round(v float64) int {
	return int(math.Round(v))
}
