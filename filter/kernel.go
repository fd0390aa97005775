// Package filter applies convolution kernels and image effects to
// raster images.
//
// Kernels are hand-built square matrices run by Convolve; the effect
// functions wrap the bild library behind the same generic API. All
// filters return a new image and leave the input untouched.
package filter

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/cocosip/go-raster/internal/imath"
	"github.com/cocosip/go-raster/raster"
)

// Kernel is a square convolution matrix with an odd side length.
// Weights are laid out row-major.
type Kernel struct {
	side    int
	weights []float32
}

// NewKernel creates a kernel from row-major weights. The side must be
// odd and positive and the weight count must be side*side.
func NewKernel(side int, weights []float32) (*Kernel, error) {
	if side <= 0 || side%2 == 0 {
		return nil, fmt.Errorf("kernel side must be odd and positive, got %d", side)
	}
	if len(weights) != side*side {
		return nil, fmt.Errorf("kernel of side %d needs %d weights, got %d", side, side*side, len(weights))
	}
	w := make([]float32, len(weights))
	copy(w, weights)
	return &Kernel{side: side, weights: w}, nil
}

// Side returns the side length
func (k *Kernel) Side() int { return k.side }

// Radius returns the distance from the center to the edge
func (k *Kernel) Radius() int { return k.side / 2 }

// Weight returns the weight at the given offsets from the center.
// Offsets must be within [-Radius, Radius].
func (k *Kernel) Weight(dx, dy int) float32 {
	r := k.side / 2
	return k.weights[(dy+r)*k.side+(dx+r)]
}

// Sum returns the sum of all weights
func (k *Kernel) Sum() float32 {
	var sum float32
	for _, w := range k.weights {
		sum += w
	}
	return sum
}

// Scaled returns a copy with every weight multiplied by f
func (k *Kernel) Scaled(f float32) *Kernel {
	w := make([]float32, len(k.weights))
	for i, v := range k.weights {
		w[i] = v * f
	}
	return &Kernel{side: k.side, weights: w}
}

// Normalized returns a copy scaled so the weights sum to 1. A kernel
// whose weights sum to zero, like an edge detector, is returned
// unchanged.
func (k *Kernel) Normalized() *Kernel {
	sum := k.Sum()
	if sum == 0 {
		return k.Scaled(1)
	}
	return k.Scaled(1 / sum)
}

// BoxBlur returns a normalized averaging kernel covering a square of
// the given radius around each pixel
func BoxBlur(radius int) *Kernel {
	if radius < 1 {
		radius = 1
	}
	side := 2*radius + 1
	weights := make([]float32, side*side)
	for i := range weights {
		weights[i] = 1
	}
	k := &Kernel{side: side, weights: weights}
	return k.Normalized()
}

// Sharpen returns a 3x3 sharpening kernel
func Sharpen() *Kernel {
	return &Kernel{side: 3, weights: []float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}}
}

// EdgeDetect returns a 3x3 Laplacian edge detection kernel
func EdgeDetect() *Kernel {
	return &Kernel{side: 3, weights: []float32{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}}
}

// Emboss returns a 3x3 embossing kernel
func Emboss() *Kernel {
	return &Kernel{side: 3, weights: []float32{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	}}
}

// Convolve runs the kernel over the image and returns the result.
// Sampling clamps at the edges, so border pixels reuse their nearest
// neighbors. Color channels are convolved; each pixel keeps its own
// alpha.
func Convolve[P raster.Pixel[P]](img *raster.Image[P], k *Kernel) *raster.Image[P] {
	w, h := img.Dimensions()
	var zero P
	out := raster.Must(raster.New(w, h, zero))

	src := img.Pixels()
	dst := out.Pixels()
	r := k.side / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb float32
			for dy := -r; dy <= r; dy++ {
				sy := imath.Clamp(y+dy, 0, h-1)
				for dx := -r; dx <= r; dx++ {
					sx := imath.Clamp(x+dx, 0, w-1)
					c := src[sy*w+sx].RGBA()
					wt := k.weights[(dy+r)*k.side+(dx+r)]
					sr += wt * float32(c.R)
					sg += wt * float32(c.G)
					sb += wt * float32(c.B)
				}
			}

			a, _ := src[y*w+x].AlphaComponent()
			dst[y*w+x] = zero.FromRGBA(raster.Rgba{
				R: imath.ClampToByte(math32.Round(sr)),
				G: imath.ClampToByte(math32.Round(sg)),
				B: imath.ClampToByte(math32.Round(sb)),
				A: a,
			})
		}
	}
	return out
}
