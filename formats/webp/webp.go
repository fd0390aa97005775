// Package webp implements decoding of the WebP format over
// golang.org/x/image/webp.
//
// Lossy images come back as rgb, lossless and alpha-carrying ones as
// rgba. There is no encoder. The codec registers itself in the default
// registry on import.
package webp

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"

	"golang.org/x/image/webp"

	"github.com/cocosip/go-raster/raster"
)

const headerSize = 12 // RIFF, length, WEBP

// Codec implements raster.Codec for WebP
type Codec struct{}

// Format returns raster.FormatWebP
func (Codec) Format() raster.Format { return raster.FormatWebP }

// Decode decodes a WebP image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode is unsupported; the codec is decode-only
func (Codec) Encode(*raster.FrameData, *raster.EncodeOptions) ([]byte, error) {
	return nil, &raster.FeatureError{Format: raster.FormatWebP, Feature: "encoding"}
}

// CanEncode returns false for every layout
func (Codec) CanEncode(raster.ColorType, int) bool { return false }

// Decode decodes a WebP image into a raw rgb or rgba frame
func Decode(data []byte) (*raster.FrameData, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("webp: header: %w", raster.ErrInsufficientData)
	}
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("webp: %w", raster.ErrInsufficientData)
		}
		return nil, &raster.CorruptError{Format: raster.FormatWebP, Offset: -1, Detail: err.Error()}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	// Lossy streams without an alpha chunk decode as plain YCbCr
	if _, ok := img.(*image.YCbCr); ok {
		out := make([]byte, w*h*3)
		for i := 0; i < w*h; i++ {
			out[i*3] = rgba.Pix[i*4]
			out[i*3+1] = rgba.Pix[i*4+1]
			out[i*3+2] = rgba.Pix[i*4+2]
		}
		return &raster.FrameData{Pix: out, Width: w, Height: h, Color: raster.ColorTypeRgb, BitDepth: 8}, nil
	}
	return &raster.FrameData{Pix: rgba.Pix, Width: w, Height: h, Color: raster.ColorTypeRgba, BitDepth: 8}, nil
}

// sniff confirms the WEBP fourcc inside a RIFF container
func sniff(data []byte) bool {
	return len(data) >= headerSize && string(data[8:12]) == "WEBP"
}

// Register registers the WebP codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatWebP,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: 0, Magic: []byte("RIFF")}},
		Sniff:      sniff,
		SniffLen:   headerSize,
	})
}

// init automatically registers the codec
func init() {
	Register()
}
