package draw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-raster/raster"
)

// TestResolvePositions covers endpoint defaults and evenly spread runs
func TestResolvePositions(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"all auto", []float64{nan, nan, nan}, []float64{0, 0.5, 1}},
		{"interior auto", []float64{0, nan, 1}, []float64{0, 0.5, 1}},
		{"auto run", []float64{0, nan, nan, nan, 1}, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"mixed", []float64{0.2, nan, 0.4, nan, nan, 1}, []float64{0.2, 0.3, 0.4, 0.6, 0.8, 1}},
		{"single auto", []float64{nan}, []float64{0}},
		{"no auto", []float64{0, 0.3, 1}, []float64{0, 0.3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolvePositions(tt.in)
			require.Len(t, tt.in, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], tt.in[i], 1e-9, "position %d", i)
			}
		})
	}
}

// TestAuto makes sure the sentinel really is NaN
func TestAuto(t *testing.T) {
	assert.True(t, math.IsNaN(Auto))
}

// TestLinearGradientHorizontal renders a left-to-right ramp and checks
// its endpoints, midpoint and monotonicity
func TestLinearGradientHorizontal(t *testing.T) {
	img, err := raster.New(10, 1, raster.Rgb{})
	require.NoError(t, err)

	g := &LinearGradient[raster.Rgb]{Space: BlendRgb}
	g.AddStop(raster.Black, 0)
	g.AddStop(raster.White, 1)
	require.NoError(t, g.Validate())

	r := NewRectangle[raster.Rgb](0, 0, 10, 1)
	r.Fill = g
	r.Draw(img)

	first, err := img.Pixel(0, 0)
	require.NoError(t, err)
	mid, err := img.Pixel(5, 0)
	require.NoError(t, err)
	last, err := img.Pixel(9, 0)
	require.NoError(t, err)

	assert.Equal(t, raster.Black, first)
	assert.Equal(t, raster.NewRgb(128, 128, 128), mid)
	assert.Equal(t, raster.NewRgb(230, 230, 230), last)

	prev := uint8(0)
	for x := 0; x < 10; x++ {
		p, err := img.Pixel(x, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.R, prev, "ramp not monotonic at x=%d", x)
		prev = p.R
	}
}

// TestLinearGradientAngle renders a top-to-bottom ramp at angle pi/2
func TestLinearGradientAngle(t *testing.T) {
	img, err := raster.New(3, 8, raster.Rgb{})
	require.NoError(t, err)

	g := &LinearGradient[raster.Rgb]{Angle: math.Pi / 2, Space: BlendRgb}
	g.AddStop(raster.Black, 0)
	g.AddStop(raster.White, 1)

	r := NewRectangle[raster.Rgb](0, 0, 3, 8)
	r.Fill = g
	r.Draw(img)

	top, err := img.Pixel(1, 0)
	require.NoError(t, err)
	bottom, err := img.Pixel(1, 7)
	require.NoError(t, err)
	assert.Less(t, top.R, bottom.R)

	// Rows are uniform when the gradient runs vertically
	left, err := img.Pixel(0, 4)
	require.NoError(t, err)
	right, err := img.Pixel(2, 4)
	require.NoError(t, err)
	assert.Equal(t, left, right)
}

// TestRadialGradient expects the first stop at the center and the last
// at the corners
func TestRadialGradient(t *testing.T) {
	img, err := raster.New(11, 11, raster.Rgb{})
	require.NoError(t, err)

	g := &RadialGradient[raster.Rgb]{Space: BlendRgb}
	g.AddColor(raster.White)
	g.AddColor(raster.Black)

	r := NewRectangle[raster.Rgb](0, 0, 11, 11)
	r.Fill = g
	r.Draw(img)

	center, err := img.Pixel(5, 5)
	require.NoError(t, err)
	corner, err := img.Pixel(0, 0)
	require.NoError(t, err)
	edge, err := img.Pixel(5, 0)
	require.NoError(t, err)

	assert.Greater(t, center.R, uint8(200))
	assert.Equal(t, raster.Black, corner)
	assert.Less(t, edge.R, center.R)
}

// TestGradientAlpha interpolates alpha linearly between stops
func TestGradientAlpha(t *testing.T) {
	g := &LinearGradient[raster.Rgba]{Space: BlendRgb}
	g.AddStop(raster.NewRgba(255, 0, 0, 0), 0)
	g.AddStop(raster.NewRgba(255, 0, 0, 255), 1)
	g.SetBounds(0, 0, 100, 1)

	p := g.At(50, 0)
	assert.InDelta(t, 128, float64(p.A), 2)
}

// TestGradientBlendSpaces samples every blend space without leaving the
// 8-bit gamut
func TestGradientBlendSpaces(t *testing.T) {
	spaces := []BlendSpace{BlendLinearRgb, BlendRgb, BlendLab, BlendLuv, BlendHcl}
	for _, space := range spaces {
		g := &LinearGradient[raster.Rgb]{Space: space}
		g.AddStop(raster.Red, 0)
		g.AddStop(raster.Blue, 1)
		g.SetBounds(0, 0, 10, 10)

		for x := 0; x < 10; x++ {
			g.At(x, 5)
		}
	}
}

// TestGradientValidate rejects malformed stop lists
func TestGradientValidate(t *testing.T) {
	tests := []struct {
		name  string
		stops []GradientStop[raster.Rgb]
		ok    bool
	}{
		{"empty", nil, false},
		{"out of range", []GradientStop[raster.Rgb]{{Color: raster.Red, Position: 1.5}}, false},
		{
			"descending",
			[]GradientStop[raster.Rgb]{
				{Color: raster.Red, Position: 0.8},
				{Color: raster.Blue, Position: 0.2},
			},
			false,
		},
		{
			"auto positions",
			[]GradientStop[raster.Rgb]{
				{Color: raster.Red, Position: Auto},
				{Color: raster.Blue, Position: Auto},
			},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &LinearGradient[raster.Rgb]{Stops: tt.stops}
			err := g.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// TestSingleStopGradient paints the lone stop everywhere
func TestSingleStopGradient(t *testing.T) {
	g := &LinearGradient[raster.Rgb]{}
	g.AddColor(raster.Olive)
	g.SetBounds(0, 0, 5, 5)

	assert.Equal(t, raster.Olive, g.At(0, 0))
	assert.Equal(t, raster.Olive, g.At(4, 4))
}
