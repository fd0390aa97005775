// Package tiff implements the TIFF format over golang.org/x/image/tiff.
//
// Decoding handles both byte orders and normalizes 16-bit samples down
// to 8 bits. Encoding writes deflate-compressed files. Canon CR2 raw
// files share the TIFF magic and are excluded from detection. The
// codec registers itself in the default registry on import.
package tiff

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"

	"golang.org/x/image/tiff"

	"github.com/cocosip/go-raster/raster"
)

// Codec implements raster.Codec for TIFF
type Codec struct{}

// Format returns raster.FormatTIFF
func (Codec) Format() raster.Format { return raster.FormatTIFF }

// Decode decodes a TIFF image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode encodes a raw frame as TIFF. The library picks its own
// deflate level, so opts is unused.
func (Codec) Encode(frame *raster.FrameData, _ *raster.EncodeOptions) ([]byte, error) {
	return Encode(frame)
}

// CanEncode accepts every 8-bit layout
func (Codec) CanEncode(color raster.ColorType, depth int) bool {
	if depth != 8 {
		return false
	}
	switch color {
	case raster.ColorTypeL, raster.ColorTypeLA, raster.ColorTypeRgb, raster.ColorTypeRgba:
		return true
	}
	return false
}

func mapError(err error) error {
	var uerr tiff.UnsupportedError
	var ferr tiff.FormatError
	switch {
	case errors.As(err, &uerr):
		return &raster.FeatureError{Format: raster.FormatTIFF, Feature: string(uerr)}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("tiff: %w", raster.ErrInsufficientData)
	case errors.As(err, &ferr):
		return &raster.CorruptError{Format: raster.FormatTIFF, Offset: -1, Detail: string(ferr)}
	default:
		return &raster.CorruptError{Format: raster.FormatTIFF, Offset: -1, Detail: err.Error()}
	}
}

// Decode decodes a TIFF image into a raw frame
func Decode(data []byte) (*raster.FrameData, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mapError(err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		out := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(out[y*w:], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return &raster.FrameData{Pix: out, Width: w, Height: h, Color: raster.ColorTypeL, BitDepth: 8}, nil
	case *image.Gray16:
		out := make([]byte, w*h)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				out[y*w+x] = row[x*2] // keep the high byte
			}
		}
		return &raster.FrameData{Pix: out, Width: w, Height: h, Color: raster.ColorTypeL, BitDepth: 8}, nil
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &raster.FrameData{Pix: rgba.Pix, Width: w, Height: h, Color: raster.ColorTypeRgba, BitDepth: 8}, nil
}

// Encode encodes a raw 8-bit frame as a deflate-compressed TIFF
func Encode(frame *raster.FrameData) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.BitDepth != 8 {
		return nil, &raster.PixelModelError{Format: raster.FormatTIFF, Color: frame.Color, Depth: frame.BitDepth}
	}

	var img image.Image
	switch frame.Color {
	case raster.ColorTypeL:
		g := image.NewGray(image.Rect(0, 0, frame.Width, frame.Height))
		copy(g.Pix, frame.Pix)
		img = g
	case raster.ColorTypeLA, raster.ColorTypeRgb, raster.ColorTypeRgba:
		n := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
		fillNRGBA(n.Pix, frame)
		img = n
	default:
		return nil, &raster.PixelModelError{Format: raster.FormatTIFF, Color: frame.Color, Depth: frame.BitDepth}
	}

	var buf bytes.Buffer
	opt := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(&buf, img, opt); err != nil {
		return nil, fmt.Errorf("tiff: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func fillNRGBA(dst []byte, frame *raster.FrameData) {
	n := frame.Width * frame.Height
	switch frame.Color {
	case raster.ColorTypeLA:
		for i := 0; i < n; i++ {
			v, a := frame.Pix[i*2], frame.Pix[i*2+1]
			dst[i*4], dst[i*4+1], dst[i*4+2], dst[i*4+3] = v, v, v, a
		}
	case raster.ColorTypeRgb:
		for i := 0; i < n; i++ {
			dst[i*4] = frame.Pix[i*3]
			dst[i*4+1] = frame.Pix[i*3+1]
			dst[i*4+2] = frame.Pix[i*3+2]
			dst[i*4+3] = 255
		}
	default:
		copy(dst, frame.Pix)
	}
}

// sniff excludes Canon CR2 raw files, which begin with a valid TIFF
// header followed by a "CR" tag at offset 8
func sniff(data []byte) bool {
	return len(data) < 10 || data[8] != 'C' || data[9] != 'R'
}

// Register registers the TIFF codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format: raster.FormatTIFF,
		Codec:  Codec{},
		Signatures: []raster.Signature{
			{Offset: 0, Magic: []byte{'I', 'I', 0x2a, 0x00}},
			{Offset: 0, Magic: []byte{'M', 'M', 0x00, 0x2a}},
		},
		Sniff:    sniff,
		SniffLen: 10,
	})
}

// init automatically registers the codec
func init() {
	Register()
}
