// Package dicom implements decoding of DICOM pixel data over
// github.com/suyashkumar/dicom.
//
// Native uncompressed frames decode to grayscale or rgb; 16-bit
// monochrome samples are auto-windowed onto the 8-bit range with a
// min/max stretch and MONOCHROME1 images are inverted to the usual
// white-is-bright convention. Encapsulated transfer syntaxes and
// palette or YBR photometric interpretations are reported as
// unsupported features. There is no encoder. The codec registers
// itself in the default registry on import.
package dicom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/cocosip/go-raster/raster"
)

// Magic sits after the 128-byte preamble
const (
	Magic       = "DICM"
	magicOffset = 128
)

// Codec implements raster.Codec for DICOM
type Codec struct{}

// Format returns raster.FormatDICOM
func (Codec) Format() raster.Format { return raster.FormatDICOM }

// Decode decodes the first frame of a DICOM file
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode is unsupported; the codec is decode-only
func (Codec) Encode(*raster.FrameData, *raster.EncodeOptions) ([]byte, error) {
	return nil, &raster.FeatureError{Format: raster.FormatDICOM, Feature: "encoding"}
}

// CanEncode returns false for every layout
func (Codec) CanEncode(raster.ColorType, int) bool { return false }

// Decode parses a DICOM file and converts its first frame into a raw
// 8-bit grayscale or rgb frame
func Decode(data []byte) (*raster.FrameData, error) {
	if len(data) < magicOffset+len(Magic) {
		return nil, fmt.Errorf("dicom: preamble: %w", raster.ErrInsufficientData)
	}
	if string(data[magicOffset:magicOffset+len(Magic)]) != Magic {
		return nil, &raster.CorruptError{Format: raster.FormatDICOM, Offset: magicOffset, Detail: "bad magic"}
	}

	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("dicom: %w", raster.ErrInsufficientData)
		}
		return nil, &raster.CorruptError{Format: raster.FormatDICOM, Offset: -1, Detail: err.Error()}
	}

	photometric := "MONOCHROME2"
	if el, err := ds.FindElementByTag(tag.PhotometricInterpretation); err == nil {
		if vals, ok := el.Value.GetValue().([]string); ok && len(vals) > 0 {
			photometric = strings.TrimSpace(vals[0])
		}
	}
	signed := false
	if el, err := ds.FindElementByTag(tag.PixelRepresentation); err == nil {
		if vals, ok := el.Value.GetValue().([]int); ok && len(vals) > 0 {
			signed = vals[0] != 0
		}
	}

	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, &raster.CorruptError{Format: raster.FormatDICOM, Offset: -1, Detail: "missing PixelData"}
	}
	info, ok := el.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return nil, &raster.CorruptError{Format: raster.FormatDICOM, Offset: -1, Detail: "unexpected PixelData value"}
	}
	if info.IsEncapsulated {
		return nil, &raster.FeatureError{Format: raster.FormatDICOM, Feature: "encapsulated transfer syntax"}
	}
	if len(info.Frames) == 0 {
		return nil, &raster.CorruptError{Format: raster.FormatDICOM, Offset: -1, Detail: "no frames"}
	}

	fr := info.Frames[0]
	native, err := fr.GetNativeFrame()
	if err != nil {
		return nil, &raster.FeatureError{Format: raster.FormatDICOM, Feature: "encapsulated transfer syntax"}
	}
	width, height := native.Cols, native.Rows
	if width <= 0 || height <= 0 || len(native.Data) != width*height {
		return nil, &raster.CorruptError{
			Format: raster.FormatDICOM,
			Offset: -1,
			Detail: fmt.Sprintf("%d samples for %dx%d", len(native.Data), width, height),
		}
	}

	samples := len(native.Data[0])
	switch {
	case samples == 1 && (photometric == "MONOCHROME1" || photometric == "MONOCHROME2" || photometric == ""):
		pix := grayFrame(native.Data, native.BitsPerSample, signed)
		if photometric == "MONOCHROME1" {
			for i := range pix {
				pix[i] = 255 - pix[i]
			}
		}
		return &raster.FrameData{Pix: pix, Width: width, Height: height, Color: raster.ColorTypeL, BitDepth: 8}, nil

	case samples == 3 && photometric == "RGB":
		if native.BitsPerSample != 8 {
			return nil, &raster.FeatureError{
				Format:  raster.FormatDICOM,
				Feature: fmt.Sprintf("%d-bit color samples", native.BitsPerSample),
			}
		}
		pix := make([]byte, 0, len(native.Data)*3)
		for _, px := range native.Data {
			pix = append(pix, uint8(px[0]), uint8(px[1]), uint8(px[2]))
		}
		return &raster.FrameData{Pix: pix, Width: width, Height: height, Color: raster.ColorTypeRgb, BitDepth: 8}, nil

	default:
		return nil, &raster.FeatureError{
			Format:  raster.FormatDICOM,
			Feature: fmt.Sprintf("photometric interpretation %s with %d samples per pixel", photometric, samples),
		}
	}
}

// grayFrame flattens single-sample pixels to 8 bits. Sub-16-bit data
// passes through; anything wider is windowed onto the full range.
func grayFrame(data [][]int, bits int, signed bool) []byte {
	values := make([]int, len(data))
	for i, px := range data {
		values[i] = normalize(px[0], bits, signed)
	}
	if bits <= 8 {
		out := make([]byte, len(values))
		for i, v := range values {
			out[i] = uint8(v & 0xff)
		}
		return out
	}
	return windowTo8(values)
}

// normalize reinterprets two's-complement samples when the pixel
// representation says they are signed
func normalize(v, bits int, signed bool) int {
	if !signed {
		return v
	}
	switch {
	case bits <= 8:
		return int(int8(uint8(v)))
	default:
		return int(int16(uint16(v)))
	}
}

// windowTo8 stretches raw sample values onto the 8-bit range, the
// usual auto window for display
func windowTo8(values []int) []byte {
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}
	scale := 255.0 / float64(maxV-minV)
	out := make([]byte, len(values))
	for i, v := range values {
		out[i] = uint8(float64(v-minV)*scale + 0.5)
	}
	return out
}

// Register registers the DICOM codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatDICOM,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: magicOffset, Magic: []byte(Magic)}},
	})
}

// init automatically registers the codec
func init() {
	Register()
}
