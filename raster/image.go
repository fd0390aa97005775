package raster

import "math"

// OverlayMode controls how pixels are combined when drawing or pasting
type OverlayMode uint8

const (
	// OverlayReplace writes the new pixel unconditionally
	OverlayReplace OverlayMode = iota

	// OverlayMerge alpha-composites the new pixel over the existing one
	OverlayMerge
)

// String returns a human-readable name
func (m OverlayMode) String() string {
	if m == OverlayMerge {
		return "merge"
	}
	return "replace"
}

// Image is an in-memory raster image. Pixels are stored in a contiguous
// row-major slice of exactly width*height elements.
//
// An Image performs no internal locking; callers that share an image
// across goroutines own the synchronization.
type Image[P Pixel[P]] struct {
	width   int
	height  int
	pix     []P
	format  Format
	overlay OverlayMode
}

// New creates an image of the given size with every pixel set to fill
func New[P Pixel[P]](width, height int, fill P) (*Image[P], error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	pix := make([]P, width*height)
	var zero P
	if fill != zero {
		for i := range pix {
			pix[i] = fill
		}
	}
	return &Image[P]{width: width, height: height, pix: pix}, nil
}

// FromPixels creates an image from a row-major pixel slice and a width.
// The height is derived from the pixel count, which must be a positive
// multiple of the width. The slice is retained, not copied.
func FromPixels[P Pixel[P]](width int, pix []P) (*Image[P], error) {
	if width <= 0 {
		return nil, &DimensionError{Width: width, Height: 0}
	}
	if len(pix) == 0 || len(pix)%width != 0 {
		height := len(pix) / width
		return nil, &DimensionError{
			Width:    width,
			Height:   height,
			Expected: height * width,
			Received: len(pix),
		}
	}
	return &Image[P]{width: width, height: len(pix) / width, pix: pix}, nil
}

// FromFn creates an image by evaluating fn at every coordinate
func FromFn[P Pixel[P]](width, height int, fn func(x, y int) P) (*Image[P], error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	pix := make([]P, width*height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[i] = fn(x, y)
			i++
		}
	}
	return &Image[P]{width: width, height: height, pix: pix}, nil
}

// Must panics if err is non-nil, otherwise returns img.
// It simplifies construction of images from constant inputs.
func Must[P Pixel[P]](img *Image[P], err error) *Image[P] {
	if err != nil {
		panic("raster: " + err.Error())
	}
	return img
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return &DimensionError{Width: width, Height: height}
	}
	if width > math.MaxInt/height {
		return &DimensionError{Width: width, Height: height}
	}
	return nil
}

// Width returns the image width in pixels
func (img *Image[P]) Width() int { return img.width }

// Height returns the image height in pixels
func (img *Image[P]) Height() int { return img.height }

// Dimensions returns the width and height
func (img *Image[P]) Dimensions() (int, int) { return img.width, img.height }

// Len returns the number of pixels
func (img *Image[P]) Len() int { return len(img.pix) }

// IsEmpty reports whether the image has no pixels
func (img *Image[P]) IsEmpty() bool { return len(img.pix) == 0 }

// Center returns the coordinates of the center pixel
func (img *Image[P]) Center() (int, int) { return img.width / 2, img.height / 2 }

// Format returns the format this image was decoded from,
// or FormatUnknown for images built in memory
func (img *Image[P]) Format() Format { return img.format }

// OverlayMode returns the mode used by Overlay and the drawing routines
func (img *Image[P]) OverlayMode() OverlayMode { return img.overlay }

// WithOverlayMode sets the overlay mode and returns the image
func (img *Image[P]) WithOverlayMode(m OverlayMode) *Image[P] {
	img.overlay = m
	return img
}

func (img *Image[P]) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

// Pixel returns the pixel at (x, y)
func (img *Image[P]) Pixel(x, y int) (P, error) {
	if !img.inBounds(x, y) {
		var zero P
		return zero, &BoundsError{X: x, Y: y, Width: img.width, Height: img.height}
	}
	return img.pix[y*img.width+x], nil
}

// MustPixel returns the pixel at (x, y), panicking when the coordinate
// is out of bounds. For callers that have already checked.
func (img *Image[P]) MustPixel(x, y int) P {
	p, err := img.Pixel(x, y)
	if err != nil {
		panic("raster: " + err.Error())
	}
	return p
}

// SetPixel replaces the pixel at (x, y)
func (img *Image[P]) SetPixel(x, y int, p P) error {
	if !img.inBounds(x, y) {
		return &BoundsError{X: x, Y: y, Width: img.width, Height: img.height}
	}
	img.pix[y*img.width+x] = p
	return nil
}

// OverlayPixel combines p with the pixel at (x, y) according to the
// image's overlay mode. Out-of-bounds coordinates are ignored, which
// lets drawing code clip for free.
func (img *Image[P]) OverlayPixel(x, y int, p P) {
	if !img.inBounds(x, y) {
		return
	}
	i := y*img.width + x
	if img.overlay == OverlayMerge {
		img.pix[i] = img.pix[i].Blend(p)
		return
	}
	img.pix[i] = p
}

// Pixels returns the backing pixel slice in row-major order.
// The slice is live; writes through it modify the image.
func (img *Image[P]) Pixels() []P { return img.pix }

// Rows returns one slice per row, each sharing the backing store
func (img *Image[P]) Rows() [][]P {
	rows := make([][]P, img.height)
	for y := 0; y < img.height; y++ {
		rows[y] = img.pix[y*img.width : (y+1)*img.width]
	}
	return rows
}

// ForEach calls fn for every pixel in row-major order
func (img *Image[P]) ForEach(fn func(x, y int, p P)) {
	i := 0
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			fn(x, y, img.pix[i])
			i++
		}
	}
}

// Map replaces every pixel with fn's result, in place
func (img *Image[P]) Map(fn func(x, y int, p P) P) {
	i := 0
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			img.pix[i] = fn(x, y, img.pix[i])
			i++
		}
	}
}

// Mapped returns a copy with every pixel replaced by fn's result
func (img *Image[P]) Mapped(fn func(x, y int, p P) P) *Image[P] {
	out := img.Clone()
	out.Map(fn)
	return out
}

// Clone returns a deep copy of the image
func (img *Image[P]) Clone() *Image[P] {
	pix := make([]P, len(img.pix))
	copy(pix, img.pix)
	return &Image[P]{
		width:   img.width,
		height:  img.height,
		pix:     pix,
		format:  img.format,
		overlay: img.overlay,
	}
}

// emptyLike returns an uninitialized image with the given size carrying
// over format and overlay mode
func (img *Image[P]) emptyLike(width, height int) *Image[P] {
	return &Image[P]{
		width:   width,
		height:  height,
		pix:     make([]P, width*height),
		format:  img.format,
		overlay: img.overlay,
	}
}

// Convert converts an image to another pixel representation
func Convert[Q Pixel[Q], P Pixel[P]](img *Image[P]) *Image[Q] {
	out := &Image[Q]{
		width:   img.width,
		height:  img.height,
		pix:     make([]Q, len(img.pix)),
		format:  img.format,
		overlay: img.overlay,
	}
	var z Q
	for i, p := range img.pix {
		out.pix[i] = z.FromRGBA(p.RGBA())
	}
	return out
}
