package draw

import (
	"math"
	"sort"

	"github.com/cocosip/go-raster/raster"
)

// Polygon is a closed polygon with an optional scanline fill and an
// optional border drawn along its edges. Fewer than three vertices draw
// nothing; the ring is closed automatically when the first and last
// vertices differ.
type Polygon[P raster.Pixel[P]] struct {
	Vertices []Point

	Fill   Fill[P]
	Border *Border[P]
}

// NewPolygon creates a polygon from the given vertices
func NewPolygon[P raster.Pixel[P]](vertices ...Point) *Polygon[P] {
	return &Polygon[P]{Vertices: vertices}
}

// Regular creates a regular n-gon centered at (cx, cy) with its first
// vertex straight up from the center. n must be at least 3.
func Regular[P raster.Pixel[P]](n, cx, cy, radius int) *Polygon[P] {
	return RegularRotated[P](n, cx, cy, radius, math.Pi/2)
}

// RegularRotated creates a regular n-gon centered at (cx, cy). The
// angle, in radians, rotates the first vertex counter-clockwise from
// the positive x axis. Vertices round to the nearest pixel.
func RegularRotated[P raster.Pixel[P]](n, cx, cy, radius int, angle float64) *Polygon[P] {
	if n < 3 {
		return &Polygon[P]{}
	}
	base := 2 * math.Pi / float64(n)
	vertices := make([]Point, n)
	for i := range vertices {
		sin, cos := math.Sincos(base*float64(i) - angle)
		vertices[i] = Point{
			X: cx + round(float64(radius)*cos),
			Y: cy + round(float64(radius)*sin),
		}
	}
	return &Polygon[P]{Vertices: vertices}
}

// Draw renders the polygon onto img
func (pg *Polygon[P]) Draw(img *raster.Image[P]) {
	if len(pg.Vertices) < 3 {
		return
	}
	ring := closeRing(pg.Vertices)

	if pg.Fill != nil {
		x0, y0, x1, y1 := ringBounds(ring)
		pg.Fill.SetBounds(x0, y0, x1+1, y1+1)
		scanFill(img, ring, pg.Fill)
	}

	if pg.Border.active() {
		for i := 0; i+1 < len(ring); i++ {
			edge := Line[P]{
				X0: ring[i].X, Y0: ring[i].Y,
				X1: ring[i+1].X, Y1: ring[i+1].Y,
				Fill:      Solid(pg.Border.Color),
				Thickness: pg.Border.Thickness,
			}
			edge.Draw(img)
		}
	}
}

// closeRing appends the first vertex when the ring is not yet closed
func closeRing(vertices []Point) []Point {
	if vertices[0] == vertices[len(vertices)-1] {
		return vertices
	}
	ring := make([]Point, len(vertices)+1)
	copy(ring, vertices)
	ring[len(vertices)] = vertices[0]
	return ring
}

func ringBounds(ring []Point) (x0, y0, x1, y1 int) {
	x0, y0 = ring[0].X, ring[0].Y
	x1, y1 = x0, y0
	for _, v := range ring[1:] {
		x0, x1 = min(x0, v.X), max(x1, v.X)
		y0, y1 = min(y0, v.Y), max(y1, v.Y)
	}
	return x0, y0, x1, y1
}

// scanFill fills the closed ring one scanline at a time: each line
// collects the x positions where it crosses an edge, sorts them, and
// fills between successive pairs. Vertices lying on the scanline count
// once per edge that continues below it.
func scanFill[P raster.Pixel[P]](img *raster.Image[P], ring []Point, fill Fill[P]) {
	_, yMin, _, yMax := ringBounds(ring)
	yMin = max(yMin, 0)
	yMax = min(yMax, img.Height()-1)

	xs := make([]int, 0, 8)
	for y := yMin; y <= yMax; y++ {
		xs = xs[:0]
		for i := 0; i+1 < len(ring); i++ {
			x1, y1 := ring[i].X, ring[i].Y
			x2, y2 := ring[i+1].X, ring[i+1].Y
			if !(y1 <= y && y2 >= y || y2 <= y && y1 >= y) {
				continue
			}
			switch {
			case y1 == y2:
				xs = append(xs, x1, x2)
			case y1 == y || y2 == y:
				if y2 > y {
					xs = append(xs, x1)
				}
				if y1 > y {
					xs = append(xs, x2)
				}
			default:
				frac := float32(y-y1) / float32(y2-y1)
				xs = append(xs, x1+int(frac*float32(x2-x1)))
			}
		}

		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				img.OverlayPixel(x, y, fill.At(x, y))
			}
		}
	}
}
