package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when an image width or height is zero or negative
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrDimensionMismatch is returned when pixel data does not match the declared dimensions
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrOutOfBounds is returned when a coordinate lies outside the image
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrUnknownFormat is returned when data matches no registered format
	ErrUnknownFormat = errors.New("unknown image format")

	// ErrCodecNotFound is returned when no codec is registered for a format
	ErrCodecNotFound = errors.New("codec not found")

	// ErrCorruptData is returned when encoded data violates its format's structure
	ErrCorruptData = errors.New("corrupt image data")

	// ErrInsufficientData is returned when encoded data ends before the image is complete
	ErrInsufficientData = errors.New("insufficient image data")

	// ErrUnsupportedFeature is returned when data uses a legal format feature
	// this implementation does not handle
	ErrUnsupportedFeature = errors.New("unsupported format feature")

	// ErrUnsupportedPixelModel is returned when a codec cannot represent the
	// requested color type and bit depth
	ErrUnsupportedPixelModel = errors.New("unsupported pixel model")

	// ErrEmptySequence is returned when encoding a sequence with no frames
	ErrEmptySequence = errors.New("empty image sequence")

	// ErrInvalidHex is returned when parsing a malformed hex color
	ErrInvalidHex = errors.New("invalid hex color")

	// ErrInvalidOptions is returned when encode options fail validation
	ErrInvalidOptions = errors.New("invalid encode options")
)

// DimensionError reports invalid or mismatched image dimensions.
// It unwraps to ErrInvalidDimensions or ErrDimensionMismatch.
type DimensionError struct {
	Width    int // declared width
	Height   int // declared height (0 when derived from pixel count)
	Expected int // expected pixel count (mismatch only)
	Received int // received pixel count (mismatch only)
}

// Error implements the error interface
func (e *DimensionError) Error() string {
	if e.mismatch() {
		return fmt.Sprintf("dimension mismatch: got %d pixels for %dx%d (want %d)",
			e.Received, e.Width, e.Height, e.Expected)
	}
	return fmt.Sprintf("invalid dimensions: %dx%d", e.Width, e.Height)
}

// Unwrap returns the matching sentinel error
func (e *DimensionError) Unwrap() error {
	if e.mismatch() {
		return ErrDimensionMismatch
	}
	return ErrInvalidDimensions
}

func (e *DimensionError) mismatch() bool {
	return e.Expected != 0 || e.Received != 0
}

// BoundsError reports an access outside the image area.
// It unwraps to ErrOutOfBounds.
type BoundsError struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Error implements the error interface
func (e *BoundsError) Error() string {
	return fmt.Sprintf("coordinate (%d, %d) out of bounds for %dx%d image", e.X, e.Y, e.Width, e.Height)
}

// Unwrap returns ErrOutOfBounds
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// CorruptError reports a structural violation in encoded data.
// Offset is the byte position of the violation, or -1 when the
// underlying decoder does not track positions.
// It unwraps to ErrCorruptData.
type CorruptError struct {
	Format Format
	Offset int64
	Detail string
}

// Error implements the error interface
func (e *CorruptError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("corrupt %s data: %s", e.Format.orUnknown(), e.Detail)
	}
	return fmt.Sprintf("corrupt %s data at offset %d: %s", e.Format.orUnknown(), e.Offset, e.Detail)
}

// Unwrap returns ErrCorruptData
func (e *CorruptError) Unwrap() error {
	return ErrCorruptData
}

// FeatureError reports encoded data that uses a legal feature of its
// format which this implementation does not support.
// It unwraps to ErrUnsupportedFeature.
type FeatureError struct {
	Format  Format
	Feature string
}

// Error implements the error interface
func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s: unsupported feature: %s", e.Format.orUnknown(), e.Feature)
}

// Unwrap returns ErrUnsupportedFeature
func (e *FeatureError) Unwrap() error {
	return ErrUnsupportedFeature
}

// PixelModelError reports a color type and bit depth a codec cannot encode.
// It unwraps to ErrUnsupportedPixelModel.
type PixelModelError struct {
	Format Format
	Color  ColorType
	Depth  int
}

// Error implements the error interface
func (e *PixelModelError) Error() string {
	return fmt.Sprintf("%s cannot encode %d-bit %s pixels", e.Format.orUnknown(), e.Depth, e.Color)
}

// Unwrap returns ErrUnsupportedPixelModel
func (e *PixelModelError) Unwrap() error {
	return ErrUnsupportedPixelModel
}

// HexError reports a malformed hex color string.
// It unwraps to ErrInvalidHex.
type HexError struct {
	Input string
}

// Error implements the error interface
func (e *HexError) Error() string {
	return fmt.Sprintf("invalid hex color %q", e.Input)
}

// Unwrap returns ErrInvalidHex
func (e *HexError) Unwrap() error {
	return ErrInvalidHex
}
