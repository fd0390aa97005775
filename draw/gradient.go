package draw

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/cocosip/go-raster/raster"
)

// Auto marks a gradient stop position to be distributed automatically.
// Leading Auto positions resolve to 0, trailing ones to 1, and interior
// runs spread evenly between their known neighbors: positions
// [0, Auto, 1] resolve to [0, 0.5, 1].
var Auto = math.NaN()

// BlendSpace selects the color space gradient stops are interpolated in
type BlendSpace uint8

const (
	// BlendLinearRgb interpolates in linear RGB, the default
	BlendLinearRgb BlendSpace = iota

	// BlendRgb interpolates in gamma-encoded RGB
	BlendRgb

	// BlendLab interpolates in CIE L*a*b* space
	BlendLab

	// BlendLuv interpolates in CIE L*u*v* space
	BlendLuv

	// BlendHcl interpolates in HCL space
	BlendHcl
)

// GradientStop pairs a color with its position along the gradient.
// Positions are in [0, 1]; Auto positions are resolved when the
// gradient is rendered.
type GradientStop[P raster.Pixel[P]] struct {
	Color    P
	Position float64
}

// LinearGradient fills a region with colors blended along a direction.
//
// The angle is in radians; 0 runs left to right and angles increase
// clockwise in image coordinates. Stops must be sorted by position.
type LinearGradient[P raster.Pixel[P]] struct {
	Angle float64
	Stops []GradientStop[P]
	Space BlendSpace

	ramp       ramp
	x, y, w, h float64
	tx, ty     float64
}

// AddStop appends a stop at the given position
func (g *LinearGradient[P]) AddStop(color P, position float64) {
	g.Stops = append(g.Stops, GradientStop[P]{Color: color, Position: position})
}

// AddColor appends a stop whose position is distributed automatically
func (g *LinearGradient[P]) AddColor(color P) {
	g.AddStop(color, Auto)
}

// Validate checks that the gradient can be rendered
func (g *LinearGradient[P]) Validate() error {
	return validateStops(g.Stops)
}

// SetBounds resolves the stops against the target rectangle
func (g *LinearGradient[P]) SetBounds(x0, y0, x1, y1 int) {
	g.x = float64(x0)
	g.y = float64(y0)
	g.w = math.Max(float64(x1-x0), 1)
	g.h = math.Max(float64(y1-y0), 1)

	angle := math.Mod(g.Angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	g.tx = math.Cos(angle)
	g.ty = math.Sin(angle)

	g.ramp = makeRamp(g.Space, g.Stops)
}

// At returns the gradient color at (x, y)
func (g *LinearGradient[P]) At(x, y int) P {
	// Project the point, relative to the rectangle center, onto the
	// gradient direction. The projection spans [-0.5, 0.5] across the
	// rectangle.
	fx := float64(x) - g.x - g.w/2
	fy := float64(y) - g.y - g.h/2
	t := fx/g.w*g.tx + fy/g.h*g.ty

	var zero P
	return zero.FromRGBA(g.ramp.at(0.5 + t))
}

// RadialGradient fills a region with colors blended outward from its
// center. Position 0 is the center of the bounding rectangle and 1 lies
// on the ellipse inscribed in it; points beyond clamp to the last stop.
type RadialGradient[P raster.Pixel[P]] struct {
	Stops []GradientStop[P]
	Space BlendSpace

	ramp           ramp
	cx, cy, rx, ry float64
}

// AddStop appends a stop at the given position
func (g *RadialGradient[P]) AddStop(color P, position float64) {
	g.Stops = append(g.Stops, GradientStop[P]{Color: color, Position: position})
}

// AddColor appends a stop whose position is distributed automatically
func (g *RadialGradient[P]) AddColor(color P) {
	g.AddStop(color, Auto)
}

// Validate checks that the gradient can be rendered
func (g *RadialGradient[P]) Validate() error {
	return validateStops(g.Stops)
}

// SetBounds resolves the stops against the target rectangle
func (g *RadialGradient[P]) SetBounds(x0, y0, x1, y1 int) {
	g.cx = (float64(x0) + float64(x1)) / 2
	g.cy = (float64(y0) + float64(y1)) / 2
	g.rx = math.Max(float64(x1-x0)/2, 0.5)
	g.ry = math.Max(float64(y1-y0)/2, 0.5)
	g.ramp = makeRamp(g.Space, g.Stops)
}

// At returns the gradient color at (x, y)
func (g *RadialGradient[P]) At(x, y int) P {
	dx := (float64(x) - g.cx) / g.rx
	dy := (float64(y) - g.cy) / g.ry
	t := math.Sqrt(dx*dx + dy*dy)

	var zero P
	return zero.FromRGBA(g.ramp.at(t))
}

func validateStops[P raster.Pixel[P]](stops []GradientStop[P]) error {
	if len(stops) == 0 {
		return errors.New("gradient needs at least one stop")
	}
	last := 0.0
	for i, s := range stops {
		if math.IsNaN(s.Position) {
			continue
		}
		if s.Position < 0 || s.Position > 1 {
			return fmt.Errorf("stop %d: position %v outside [0, 1]", i, s.Position)
		}
		if s.Position < last {
			return fmt.Errorf("stop %d: position %v before previous stop at %v", i, s.Position, last)
		}
		last = s.Position
	}
	return nil
}

// ramp is a gradient with resolved stop positions. Colors are kept in
// go-colorful form so blending can run in the configured space; alpha
// is interpolated linearly alongside.
type ramp struct {
	space  BlendSpace
	pos    []float64
	colors []colorful.Color
	alphas []float64
}

func makeRamp[P raster.Pixel[P]](space BlendSpace, stops []GradientStop[P]) ramp {
	r := ramp{
		space:  space,
		pos:    make([]float64, len(stops)),
		colors: make([]colorful.Color, len(stops)),
		alphas: make([]float64, len(stops)),
	}
	for i, s := range stops {
		c := s.Color.RGBA()
		r.pos[i] = s.Position
		r.colors[i] = colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
		r.alphas[i] = float64(c.A) / 255
	}
	resolvePositions(r.pos)
	return r
}

// resolvePositions replaces NaN entries in place: a leading NaN becomes
// 0, a trailing NaN becomes 1, and interior NaN runs are spread evenly
// between the known positions around them.
func resolvePositions(pos []float64) {
	if len(pos) == 0 {
		return
	}
	if math.IsNaN(pos[0]) {
		pos[0] = 0
	}
	last := len(pos) - 1
	if math.IsNaN(pos[last]) {
		pos[last] = 1
	}

	for i := 0; i < last; {
		if !math.IsNaN(pos[i+1]) {
			i++
			continue
		}
		j := i + 1
		for math.IsNaN(pos[j]) {
			j++
		}
		step := (pos[j] - pos[i]) / float64(j-i)
		for k := i + 1; k < j; k++ {
			pos[k] = pos[i] + step*float64(k-i)
		}
		i = j
	}
}

// at samples the ramp at t, clamping to the outermost stops
func (r *ramp) at(t float64) raster.Rgba {
	n := len(r.pos)
	if n == 0 {
		return raster.Rgba{}
	}
	if t <= r.pos[0] || n == 1 {
		return r.stop(0)
	}
	if t >= r.pos[n-1] {
		return r.stop(n - 1)
	}

	i := 0
	for i+2 < n && t > r.pos[i+1] {
		i++
	}
	span := r.pos[i+1] - r.pos[i]
	u := 0.0
	if span > 0 {
		u = (t - r.pos[i]) / span
	}

	c := r.blend(r.colors[i], r.colors[i+1], u).Clamped()
	cr, cg, cb := c.RGB255()
	a := r.alphas[i] + (r.alphas[i+1]-r.alphas[i])*u
	return raster.Rgba{R: cr, G: cg, B: cb, A: uint8(a*255 + 0.5)}
}

func (r *ramp) stop(i int) raster.Rgba {
	c := r.colors[i].Clamped()
	cr, cg, cb := c.RGB255()
	return raster.Rgba{R: cr, G: cg, B: cb, A: uint8(r.alphas[i]*255 + 0.5)}
}

func (r *ramp) blend(c1, c2 colorful.Color, t float64) colorful.Color {
	switch r.space {
	case BlendRgb:
		return c1.BlendRgb(c2, t)
	case BlendLab:
		return c1.BlendLab(c2, t)
	case BlendLuv:
		return c1.BlendLuv(c2, t)
	case BlendHcl:
		return c1.BlendHcl(c2, t)
	default:
		return c1.BlendLinearRgb(c2, t)
	}
}
