package draw

import "github.com/cocosip/go-raster/raster"

// Ellipse is an axis-aligned ellipse given by its center and radii,
// with an optional fill and an optional border. An ellipse with
// neither, or with a non-positive radius, draws nothing.
type Ellipse[P raster.Pixel[P]] struct {
	// CX, CY is the center
	CX int
	CY int

	RadiusX int
	RadiusY int

	Fill   Fill[P]
	Border *Border[P]
}

// NewEllipse creates an ellipse centered at (cx, cy) with the given radii
func NewEllipse[P raster.Pixel[P]](cx, cy, radiusX, radiusY int) *Ellipse[P] {
	return &Ellipse[P]{CX: cx, CY: cy, RadiusX: radiusX, RadiusY: radiusY}
}

// Circle creates a circle centered at (cx, cy) with the given radius
func Circle[P raster.Pixel[P]](cx, cy, radius int) *Ellipse[P] {
	return NewEllipse[P](cx, cy, radius, radius)
}

// Draw renders the ellipse onto img
func (e *Ellipse[P]) Draw(img *raster.Image[P]) {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return
	}
	if e.Fill != nil {
		e.Fill.SetBounds(e.CX-e.RadiusX, e.CY-e.RadiusY, e.CX+e.RadiusX, e.CY+e.RadiusY)
	}

	// Borderless fills use midpoint scanline rasterizers; bordered
	// ellipses fall back to testing every pixel of the bounding box
	// against the two rings.
	if !e.Border.active() {
		if e.Fill == nil {
			return
		}
		if e.RadiusX == e.RadiusY {
			e.fillCircle(img)
		} else {
			e.fillEllipse(img)
		}
		return
	}

	if e.RadiusX == e.RadiusY {
		e.renderCircle(img)
	} else {
		e.renderEllipse(img)
	}
}

func (e *Ellipse[P]) span(img *raster.Image[P], x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		img.OverlayPixel(x, y, e.Fill.At(x, y))
	}
}

// fillCircle rasterizes a filled circle with the midpoint algorithm,
// plotting horizontal spans between the octant-mirrored edge points
func (e *Ellipse[P]) fillCircle(img *raster.Image[P]) {
	cx, cy, r := e.CX, e.CY, e.RadiusX

	x, y := 0, r
	p := 1 - r
	for x <= y {
		e.span(img, cx-x, cx+x, cy+y)
		e.span(img, cx-y, cx+y, cy+x)
		e.span(img, cx-x, cx+x, cy-y)
		e.span(img, cx-y, cx+y, cy-x)

		x++
		if p < 0 {
			p += 2*x + 1
		} else {
			y--
			p += 2*(x-y) + 1
		}
	}
}

// fillEllipse rasterizes a filled ellipse with the two-region midpoint
// algorithm, mirroring each span across both axes
func (e *Ellipse[P]) fillEllipse(img *raster.Image[P]) {
	cx, cy := e.CX, e.CY
	a, b := e.RadiusX, e.RadiusY
	a2, b2 := a*a, b*b

	x, y := 0, b
	px, py := 0, 2*a2*y

	mirror := func(x, y int) {
		e.span(img, cx-x, cx+x, cy+y)
		e.span(img, cx-x, cx+x, cy-y)
	}

	p := float32(b2-a2*b) + 0.25*float32(a2)
	for px < py {
		x++
		px += 2 * b2
		if p < 0 {
			p += float32(b2 + px)
		} else {
			y--
			py -= 2 * a2
			p += float32(b2 + px - py)
		}
		mirror(x, y)
	}

	fp := float32(x) + 0.5
	p = float32(b2)*fp*fp + float32(a2*(y-1)*(y-1)) - float32(a2*b2)
	for y > 0 {
		y--
		py -= 2 * a2
		if p > 0 {
			p += float32(a2 - py)
		} else {
			x++
			px += 2 * b2
			p += float32(a2 + px - py)
		}
		mirror(x, y)
	}
}

// renderCircle tests every pixel of the bounding box against the fill
// disc and the border ring
func (e *Ellipse[P]) renderCircle(img *raster.Image[P]) {
	cx, cy, r := e.CX, e.CY, e.RadiusX
	r2 := r * r

	inner, outer := e.Border.offsets()
	i2 := (r - inner) * (r - inner)
	o2 := (r + outer) * (r + outer)

	x0, y0 := cx-r-outer, cy-r-outer
	x1, y1 := cx+r+outer, cy+r+outer

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := x-cx, y-cy
			d2 := dx*dx + dy*dy

			if d2 >= i2 && d2 <= o2 {
				img.OverlayPixel(x, y, e.Border.Color)
			}
			if e.Fill != nil && d2 <= r2 {
				img.OverlayPixel(x, y, e.Fill.At(x, y))
			}
		}
	}
}

// renderEllipse tests every pixel of the bounding box against the fill
// ellipse and the border ring
func (e *Ellipse[P]) renderEllipse(img *raster.Image[P]) {
	cx, cy := e.CX, e.CY
	a, b := e.RadiusX, e.RadiusY
	a2, b2 := float32(a*a), float32(b*b)

	inner, outer := e.Border.offsets()
	ia2 := float32((a - inner) * (a - inner))
	ib2 := float32((b - inner) * (b - inner))
	oa2 := float32((a + outer - 1) * (a + outer - 1))
	ob2 := float32((b + outer - 1) * (b + outer - 1))

	x0, y0 := cx-a-outer, cy-b-outer
	x1, y1 := cx+a+outer, cy+b+outer

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx2 := float32((x - cx) * (x - cx))
			dy2 := float32((y - cy) * (y - cy))

			if dx2/ia2+dy2/ib2 >= 1 && dx2/oa2+dy2/ob2 <= 1 {
				img.OverlayPixel(x, y, e.Border.Color)
			}
			if e.Fill != nil && dx2/a2+dy2/b2 <= 1 {
				img.OverlayPixel(x, y, e.Fill.At(x, y))
			}
		}
	}
}
