package raster

import (
	"fmt"
	"time"
)

// FrameData is the raw pixel payload exchanged with codecs: tightly
// packed samples in row-major order, interleaved per pixel according
// to Color. Built-in codecs produce and consume 8-bit samples.
type FrameData struct {
	Pix      []byte    // packed samples
	Width    int       // image width in pixels
	Height   int       // image height in pixels
	Color    ColorType // sample layout of Pix
	BitDepth int       // bits per sample
}

// Validate checks that the frame is internally consistent
func (f *FrameData) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return &DimensionError{Width: f.Width, Height: f.Height}
	}
	ch := f.Color.Channels()
	if ch == 0 {
		return fmt.Errorf("frame color type %s has no fixed layout: %w", f.Color, ErrUnsupportedPixelModel)
	}
	if f.BitDepth != 8 && f.BitDepth != 16 {
		return fmt.Errorf("frame bit depth %d: %w", f.BitDepth, ErrUnsupportedPixelModel)
	}
	need := f.Width * f.Height * ch * (f.BitDepth / 8)
	if len(f.Pix) != need {
		return fmt.Errorf("frame has %d bytes, want %d: %w", len(f.Pix), need, ErrDimensionMismatch)
	}
	return nil
}

// EncodeOptions carries cross-codec encoding parameters.
// A nil *EncodeOptions selects codec defaults everywhere.
type EncodeOptions struct {
	// Quality for lossy codecs (1-100, higher is better).
	// 0 selects the codec default.
	Quality int

	// CompressionLevel for deflate-based codecs, using compress/flate
	// levels (-2 to 9). 0 selects the codec default.
	CompressionLevel int
}

// Validate checks the option values
func (o *EncodeOptions) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("quality %d (must be 1-100): %w", o.Quality, ErrInvalidOptions)
	}
	if o.CompressionLevel < -2 || o.CompressionLevel > 9 {
		return fmt.Errorf("compression level %d (must be -2..9): %w", o.CompressionLevel, ErrInvalidOptions)
	}
	return nil
}

// Codec encodes and decodes one image format on raw frames.
// Implementations must be safe for concurrent use; the built-ins are
// stateless values.
type Codec interface {
	// Format returns the format this codec handles
	Format() Format

	// Decode decodes a complete encoded image into a raw frame
	Decode(data []byte) (*FrameData, error)

	// Encode encodes a raw frame. A nil opts selects defaults.
	Encode(frame *FrameData, opts *EncodeOptions) ([]byte, error)

	// CanEncode reports whether the codec can encode the given sample
	// layout. Decode-only codecs return false for every layout.
	CanEncode(color ColorType, depth int) bool
}

// SequenceFrame is one frame of an animated image on the codec side
type SequenceFrame struct {
	FrameData
	Delay    time.Duration
	Disposal DisposalMethod
}

// SequenceData is a decoded or to-be-encoded animation
type SequenceData struct {
	Frames []SequenceFrame
	Loop   LoopCount
}

// SequenceCodec is implemented by codecs whose format holds multiple
// frames. Callers discover it with a type assertion on a Codec.
type SequenceCodec interface {
	Codec

	// DecodeSequence decodes every frame
	DecodeSequence(data []byte) (*SequenceData, error)

	// EncodeSequence encodes all frames with their timing metadata
	EncodeSequence(seq *SequenceData, opts *EncodeOptions) ([]byte, error)
}
