package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-raster/raster"
)

func newCanvas(t *testing.T, w, h int) *raster.Image[raster.Rgb] {
	t.Helper()
	img, err := raster.New(w, h, raster.Black)
	require.NoError(t, err)
	return img
}

func pixelAt(t *testing.T, img *raster.Image[raster.Rgb], x, y int) raster.Rgb {
	t.Helper()
	p, err := img.Pixel(x, y)
	require.NoError(t, err)
	return p
}

// TestRectangleFill draws a filled rectangle and checks its extent
func TestRectangleFill(t *testing.T) {
	img := newCanvas(t, 10, 10)

	r := NewRectangle[raster.Rgb](2, 3, 4, 2)
	r.Fill = Solid(raster.Red)
	r.Draw(img)

	filled := 0
	img.ForEach(func(x, y int, p raster.Rgb) {
		if p == raster.Red {
			filled++
		}
	})
	assert.Equal(t, 8, filled)
	assert.Equal(t, raster.Red, pixelAt(t, img, 2, 3))
	assert.Equal(t, raster.Red, pixelAt(t, img, 5, 4))
	assert.Equal(t, raster.Black, pixelAt(t, img, 6, 3))
	assert.Equal(t, raster.Black, pixelAt(t, img, 2, 5))
}

// TestRectangleBorderPositions checks where each border position puts
// the border relative to the shape edge
func TestRectangleBorderPositions(t *testing.T) {
	tests := []struct {
		name     string
		position BorderPosition
		inside   bool
		outside  bool
	}{
		{"outset", BorderOutset, false, true},
		{"inset", BorderInset, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newCanvas(t, 12, 12)

			r := NewRectangle[raster.Rgb](3, 3, 4, 4)
			r.Border = &Border[raster.Rgb]{Color: raster.White, Thickness: 1, Position: tt.position}
			r.Draw(img)

			inside := pixelAt(t, img, 3, 4) == raster.White
			outside := pixelAt(t, img, 2, 4) == raster.White
			assert.Equal(t, tt.inside, inside, "inside edge")
			assert.Equal(t, tt.outside, outside, "outside edge")
		})
	}
}

// TestRectangleClipped draws partially off the canvas without error
func TestRectangleClipped(t *testing.T) {
	img := newCanvas(t, 6, 6)

	r := Square[raster.Rgb](-2, -2, 5)
	r.Fill = Solid(raster.Lime)
	r.Border = NewBorder(raster.White, 2)
	r.Draw(img)

	assert.Equal(t, raster.Lime, pixelAt(t, img, 0, 0))
	assert.Equal(t, raster.Black, pixelAt(t, img, 5, 5))
}

// TestCircleFill checks the extremes and symmetry of a filled circle
func TestCircleFill(t *testing.T) {
	img := newCanvas(t, 11, 11)

	c := Circle[raster.Rgb](5, 5, 3)
	c.Fill = Solid(raster.Blue)
	c.Draw(img)

	for _, p := range []Point{{5, 5}, {2, 5}, {8, 5}, {5, 2}, {5, 8}} {
		assert.Equal(t, raster.Blue, pixelAt(t, img, p.X, p.Y), "at %v", p)
	}
	assert.Equal(t, raster.Black, pixelAt(t, img, 1, 1))
	assert.Equal(t, raster.Black, pixelAt(t, img, 9, 9))

	// Fourfold symmetry about the center
	img.ForEach(func(x, y int, p raster.Rgb) {
		assert.Equal(t, p, pixelAt(t, img, 10-x, y))
		assert.Equal(t, p, pixelAt(t, img, x, 10-y))
	})
}

// TestEllipseFill checks a non-circular ellipse stays inside its radii
func TestEllipseFill(t *testing.T) {
	img := newCanvas(t, 13, 9)

	e := NewEllipse[raster.Rgb](6, 4, 5, 3)
	e.Fill = Solid(raster.Teal)
	e.Draw(img)

	assert.Equal(t, raster.Teal, pixelAt(t, img, 6, 4))
	assert.Equal(t, raster.Teal, pixelAt(t, img, 2, 4))
	assert.Equal(t, raster.Teal, pixelAt(t, img, 10, 4))
	assert.Equal(t, raster.Black, pixelAt(t, img, 0, 0))
	assert.Equal(t, raster.Black, pixelAt(t, img, 12, 8))
}

// TestCircleBorder draws a borderless-fill-free ring and probes it
func TestCircleBorder(t *testing.T) {
	img := newCanvas(t, 13, 13)

	c := Circle[raster.Rgb](6, 6, 4)
	c.Border = NewBorder(raster.White, 1)
	c.Draw(img)

	assert.Equal(t, raster.White, pixelAt(t, img, 6, 1))
	assert.Equal(t, raster.White, pixelAt(t, img, 6, 2))
	assert.Equal(t, raster.White, pixelAt(t, img, 11, 6))
	assert.Equal(t, raster.Black, pixelAt(t, img, 6, 6))
}

// TestLineThin draws a diagonal and checks every pixel on it
func TestLineThin(t *testing.T) {
	img := newCanvas(t, 8, 8)

	l := NewLine[raster.Rgb](0, 0, 5, 5)
	l.Fill = Solid(raster.Yellow)
	l.Draw(img)

	for i := 0; i <= 5; i++ {
		assert.Equal(t, raster.Yellow, pixelAt(t, img, i, i), "at (%d,%d)", i, i)
	}
	assert.Equal(t, raster.Black, pixelAt(t, img, 6, 6))
	assert.Equal(t, raster.Black, pixelAt(t, img, 0, 1))
}

// TestLineSteep draws a mostly-vertical line and checks both endpoints
func TestLineSteep(t *testing.T) {
	img := newCanvas(t, 8, 8)

	l := NewLine[raster.Rgb](2, 0, 3, 7)
	l.Fill = Solid(raster.Yellow)
	l.Draw(img)

	assert.Equal(t, raster.Yellow, pixelAt(t, img, 2, 0))
	assert.Equal(t, raster.Yellow, pixelAt(t, img, 3, 7))
	painted := 0
	img.ForEach(func(x, y int, p raster.Rgb) {
		if p == raster.Yellow {
			painted++
		}
	})
	assert.Equal(t, 8, painted)
}

// TestLineThickHorizontal checks the band drawn by a thick straight line
func TestLineThickHorizontal(t *testing.T) {
	img := newCanvas(t, 10, 10)

	l := NewLine[raster.Rgb](1, 5, 8, 5)
	l.Fill = Solid(raster.Orange)
	l.Thickness = 3
	l.Draw(img)

	for y := 4; y <= 6; y++ {
		assert.Equal(t, raster.Orange, pixelAt(t, img, 1, y))
		assert.Equal(t, raster.Orange, pixelAt(t, img, 8, y))
	}
	assert.Equal(t, raster.Black, pixelAt(t, img, 1, 3))
	assert.Equal(t, raster.Black, pixelAt(t, img, 1, 7))
	assert.Equal(t, raster.Black, pixelAt(t, img, 0, 5))
}

// TestLineThickSlanted checks the quad drawn by a thick diagonal line
func TestLineThickSlanted(t *testing.T) {
	img := newCanvas(t, 10, 10)

	l := NewLine[raster.Rgb](0, 0, 7, 7)
	l.Fill = Solid(raster.Orange)
	l.Thickness = 3
	l.Draw(img)

	assert.Equal(t, raster.Orange, pixelAt(t, img, 3, 3))
	assert.Equal(t, raster.Orange, pixelAt(t, img, 1, 3))
	assert.Equal(t, raster.Orange, pixelAt(t, img, 5, 3))
	assert.Equal(t, raster.Black, pixelAt(t, img, 0, 3))
	assert.Equal(t, raster.Black, pixelAt(t, img, 9, 3))
}

// TestPolygonTriangle fills a triangle and probes inside and outside
func TestPolygonTriangle(t *testing.T) {
	img := newCanvas(t, 11, 9)

	pg := NewPolygon[raster.Rgb](Pt(5, 1), Pt(9, 7), Pt(1, 7))
	pg.Fill = Solid(raster.Fuchsia)
	pg.Draw(img)

	assert.Equal(t, raster.Fuchsia, pixelAt(t, img, 5, 1))
	assert.Equal(t, raster.Fuchsia, pixelAt(t, img, 5, 4))
	assert.Equal(t, raster.Fuchsia, pixelAt(t, img, 3, 7))
	assert.Equal(t, raster.Fuchsia, pixelAt(t, img, 9, 7))
	assert.Equal(t, raster.Black, pixelAt(t, img, 2, 4))
	assert.Equal(t, raster.Black, pixelAt(t, img, 8, 3))
}

// TestPolygonRegular builds a diamond from Regular and fills it
func TestPolygonRegular(t *testing.T) {
	pg := Regular[raster.Rgb](4, 5, 5, 3)
	require.Len(t, pg.Vertices, 4)
	assert.Contains(t, pg.Vertices, Pt(5, 2))
	assert.Contains(t, pg.Vertices, Pt(8, 5))
	assert.Contains(t, pg.Vertices, Pt(5, 8))
	assert.Contains(t, pg.Vertices, Pt(2, 5))

	img := newCanvas(t, 11, 11)
	pg.Fill = Solid(raster.Green)
	pg.Draw(img)

	assert.Equal(t, raster.Green, pixelAt(t, img, 5, 5))
	assert.Equal(t, raster.Black, pixelAt(t, img, 2, 2))
}

// TestPolygonDegenerate makes sure too few vertices draw nothing
func TestPolygonDegenerate(t *testing.T) {
	img := newCanvas(t, 5, 5)

	pg := NewPolygon[raster.Rgb](Pt(1, 1), Pt(3, 3))
	pg.Fill = Solid(raster.White)
	pg.Draw(img)

	img.ForEach(func(x, y int, p raster.Rgb) {
		assert.Equal(t, raster.Black, p)
	})
}

// TestImageFill samples a source image and falls back to its top-left
// pixel outside the source bounds
func TestImageFill(t *testing.T) {
	src, err := raster.FromFn(3, 3, func(x, y int) raster.Rgb {
		return raster.NewRgb(uint8(x*10), uint8(y*10), 0)
	})
	require.NoError(t, err)

	img := newCanvas(t, 6, 6)
	r := NewRectangle[raster.Rgb](0, 0, 6, 6)
	r.Fill = NewImageFill(src)
	r.Draw(img)

	assert.Equal(t, raster.NewRgb(10, 20, 0), pixelAt(t, img, 1, 2))
	assert.Equal(t, raster.NewRgb(0, 0, 0), pixelAt(t, img, 4, 4), "fallback pixel")
}

// TestDrawHonorsOverlayMode draws a translucent fill in merge mode and
// expects alpha compositing
func TestDrawHonorsOverlayMode(t *testing.T) {
	img, err := raster.New(4, 4, raster.NewRgba(0, 0, 255, 255))
	require.NoError(t, err)
	img.WithOverlayMode(raster.OverlayMerge)

	r := NewRectangle[raster.Rgba](0, 0, 4, 4)
	r.Fill = Solid(raster.NewRgba(255, 0, 0, 128))
	r.Draw(img)

	p, err := img.Pixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, raster.NewRgba(128, 0, 127, 255), p)
}

// TestDrawableInterface makes sure every shape satisfies Drawable
func TestDrawableInterface(t *testing.T) {
	var _ Drawable[raster.Rgb] = (*Rectangle[raster.Rgb])(nil)
	var _ Drawable[raster.Rgb] = (*Ellipse[raster.Rgb])(nil)
	var _ Drawable[raster.Rgb] = (*Line[raster.Rgb])(nil)
	var _ Drawable[raster.Rgb] = (*Polygon[raster.Rgb])(nil)
}
