// Package jpeg implements the JPEG format over the standard library
// codec.
//
// Decoding flattens chroma-subsampled and CMYK images to rgb and keeps
// grayscale single-channel. Encoding accepts grayscale and rgb frames;
// JPEG has no alpha channel. The codec registers itself in the default
// registry on import.
package jpeg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	stdjpeg "image/jpeg"
	"io"

	"github.com/cocosip/go-raster/raster"
)

// DefaultQuality is used when no quality option is given
const DefaultQuality = stdjpeg.DefaultQuality

// Codec implements raster.Codec for JPEG
type Codec struct{}

// Format returns raster.FormatJPEG
func (Codec) Format() raster.Format { return raster.FormatJPEG }

// Decode decodes a JPEG image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode encodes a raw frame as JPEG
func (Codec) Encode(frame *raster.FrameData, opts *raster.EncodeOptions) ([]byte, error) {
	return Encode(frame, opts)
}

// CanEncode accepts 8-bit layouts without alpha
func (Codec) CanEncode(color raster.ColorType, depth int) bool {
	return depth == 8 && (color == raster.ColorTypeL || color == raster.ColorTypeRgb)
}

// Decode decodes a JPEG image into a raw grayscale or rgb frame
func Decode(data []byte) (*raster.FrameData, error) {
	img, err := stdjpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mapError(err)
	}
	return frameFromImage(img), nil
}

func mapError(err error) error {
	var uerr stdjpeg.UnsupportedError
	var ferr stdjpeg.FormatError
	switch {
	case errors.As(err, &uerr):
		return &raster.FeatureError{Format: raster.FormatJPEG, Feature: string(uerr)}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("jpeg: %w", raster.ErrInsufficientData)
	case errors.As(err, &ferr):
		return &raster.CorruptError{Format: raster.FormatJPEG, Offset: -1, Detail: string(ferr)}
	default:
		return &raster.CorruptError{Format: raster.FormatJPEG, Offset: -1, Detail: err.Error()}
	}
}

// frameFromImage packs a decoded standard library image, keeping
// grayscale single-channel and widening everything else to rgb
func frameFromImage(img image.Image) *raster.FrameData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := img.(*image.Gray); ok {
		out := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(out[y*w:], g.Pix[y*g.Stride:y*g.Stride+w])
		}
		return &raster.FrameData{Pix: out, Width: w, Height: h, Color: raster.ColorTypeL, BitDepth: 8}
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	out := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		out[i*3] = rgba.Pix[i*4]
		out[i*3+1] = rgba.Pix[i*4+1]
		out[i*3+2] = rgba.Pix[i*4+2]
	}
	return &raster.FrameData{Pix: out, Width: w, Height: h, Color: raster.ColorTypeRgb, BitDepth: 8}
}

// Encode encodes a raw 8-bit frame as JPEG. opts.Quality selects the
// encoder quality, zero meaning DefaultQuality.
func Encode(frame *raster.FrameData, opts *raster.EncodeOptions) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.BitDepth != 8 {
		return nil, &raster.PixelModelError{Format: raster.FormatJPEG, Color: frame.Color, Depth: frame.BitDepth}
	}

	var img image.Image
	switch frame.Color {
	case raster.ColorTypeL:
		g := image.NewGray(image.Rect(0, 0, frame.Width, frame.Height))
		copy(g.Pix, frame.Pix)
		img = g
	case raster.ColorTypeRgb:
		n := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
		for i := 0; i < frame.Width*frame.Height; i++ {
			n.Pix[i*4] = frame.Pix[i*3]
			n.Pix[i*4+1] = frame.Pix[i*3+1]
			n.Pix[i*4+2] = frame.Pix[i*3+2]
			n.Pix[i*4+3] = 255
		}
		img = n
	default:
		return nil, &raster.PixelModelError{Format: raster.FormatJPEG, Color: frame.Color, Depth: frame.BitDepth}
	}

	quality := DefaultQuality
	if opts != nil && opts.Quality != 0 {
		quality = opts.Quality
	}
	var buf bytes.Buffer
	if err := stdjpeg.Encode(&buf, img, &stdjpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("jpeg: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Register registers the JPEG codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatJPEG,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: 0, Magic: []byte{0xff, 0xd8, 0xff}}},
	})
}

// init automatically registers the codec
func init() {
	Register()
}
