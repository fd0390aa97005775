// Package bmp implements the Windows BMP format.
//
// Decoding accepts uncompressed BI_RGB images at 1, 4, 8, 24 and 32
// bits per pixel, bottom-up or top-down, with BITMAPINFOHEADER or one
// of its extended variants. Encoding writes 8-bit grayscale (palette),
// 24-bit rgb or 32-bit rgba files. The codec registers itself in the
// default registry on import.
package bmp

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-raster/raster"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40

	biRGB       = 0
	biRLE8      = 1
	biRLE4      = 2
	biBitfields = 3
)

// infoHeader is the BITMAPINFOHEADER structure
type infoHeader struct {
	Size            uint32 // the number of bytes required by the structure
	Width           int32  // the width of the bitmap, in pixels
	Height          int32  // the height of the bitmap, negative for top-down rows
	Planes          uint16 // the number of planes for the target device
	BitCount        uint16 // the number of bits per pixel
	Compression     uint32 // the type of compression
	SizeImage       uint32 // the size of the image, in bytes
	XPixelsPerM     int32  // the horizontal resolution, in pixels per meter
	YPixelsPerM     int32  // the vertical resolution, in pixels per meter
	ColorsUsed      uint32 // the number of color indexes used by the bitmap
	ColorsImportant uint32 // the number of color indexes required for display
}

// rowSize returns the padded byte length of one scan line
func rowSize(width, bitCount int) int {
	return (width*bitCount + 31) / 32 * 4
}

// Codec implements raster.Codec for BMP
type Codec struct{}

// Format returns raster.FormatBMP
func (Codec) Format() raster.Format { return raster.FormatBMP }

// Decode decodes a BMP image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode encodes a raw frame as BMP. The format is uncompressed and
// has no tunables, so opts is unused.
func (Codec) Encode(frame *raster.FrameData, _ *raster.EncodeOptions) ([]byte, error) {
	return Encode(frame)
}

// CanEncode accepts 8-bit grayscale, rgb and rgba layouts
func (Codec) CanEncode(color raster.ColorType, depth int) bool {
	if depth != 8 {
		return false
	}
	switch color {
	case raster.ColorTypeL, raster.ColorTypeRgb, raster.ColorTypeRgba:
		return true
	}
	return false
}

// Decode decodes an uncompressed BMP image into a raw rgb or rgba frame
func Decode(data []byte) (*raster.FrameData, error) {
	if len(data) < fileHeaderSize+infoHeaderSize {
		return nil, fmt.Errorf("bmp: header: %w", raster.ErrInsufficientData)
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil, &raster.CorruptError{Format: raster.FormatBMP, Offset: 0, Detail: "bad magic"}
	}
	offBits := int64(binary.LittleEndian.Uint32(data[10:14]))

	info := infoHeader{
		Size:        binary.LittleEndian.Uint32(data[14:18]),
		Width:       int32(binary.LittleEndian.Uint32(data[18:22])),
		Height:      int32(binary.LittleEndian.Uint32(data[22:26])),
		Planes:      binary.LittleEndian.Uint16(data[26:28]),
		BitCount:    binary.LittleEndian.Uint16(data[28:30]),
		Compression: binary.LittleEndian.Uint32(data[30:34]),
		ColorsUsed:  binary.LittleEndian.Uint32(data[46:50]),
	}

	// BITMAPV4HEADER and BITMAPV5HEADER extend the 40-byte layout; the
	// fields read above sit at the same offsets in all of them.
	if info.Size < infoHeaderSize {
		return nil, &raster.FeatureError{Format: raster.FormatBMP, Feature: "core header"}
	}
	if int64(info.Size) > int64(len(data))-fileHeaderSize {
		return nil, fmt.Errorf("bmp: info header: %w", raster.ErrInsufficientData)
	}

	switch info.Compression {
	case biRGB:
	case biRLE8, biRLE4:
		return nil, &raster.FeatureError{Format: raster.FormatBMP, Feature: "rle compression"}
	case biBitfields:
		return nil, &raster.FeatureError{Format: raster.FormatBMP, Feature: "bitfield masks"}
	default:
		return nil, &raster.CorruptError{
			Format: raster.FormatBMP,
			Offset: 30,
			Detail: fmt.Sprintf("compression %d", info.Compression),
		}
	}

	topDown := false
	height := int(info.Height)
	if height < 0 {
		topDown = true
		height = -height
	}
	width := int(info.Width)
	if width <= 0 || height == 0 {
		return nil, &raster.CorruptError{
			Format: raster.FormatBMP,
			Offset: 18,
			Detail: fmt.Sprintf("dimensions %dx%d", info.Width, info.Height),
		}
	}

	switch info.BitCount {
	case 1, 4, 8, 24, 32:
	case 16, 64:
		return nil, &raster.FeatureError{
			Format:  raster.FormatBMP,
			Feature: fmt.Sprintf("%d-bit pixels", info.BitCount),
		}
	default:
		return nil, &raster.CorruptError{
			Format: raster.FormatBMP,
			Offset: 28,
			Detail: fmt.Sprintf("bit count %d", info.BitCount),
		}
	}
	bitCount := int(info.BitCount)

	var palette [][3]uint8
	if bitCount <= 8 {
		entries := int(info.ColorsUsed)
		if entries == 0 {
			entries = 1 << bitCount
		}
		if entries > 1<<bitCount {
			return nil, &raster.CorruptError{
				Format: raster.FormatBMP,
				Offset: 46,
				Detail: fmt.Sprintf("%d palette entries for %d-bit pixels", entries, bitCount),
			}
		}
		palOff := fileHeaderSize + int(info.Size)
		if palOff+entries*4 > len(data) {
			return nil, fmt.Errorf("bmp: palette: %w", raster.ErrInsufficientData)
		}
		palette = make([][3]uint8, entries)
		for i := range palette {
			o := palOff + i*4
			palette[i] = [3]uint8{data[o+2], data[o+1], data[o]} // stored bgr
		}
	}

	stride := rowSize(width, bitCount)
	need := offBits + int64(stride)*int64(height)
	if offBits < fileHeaderSize+int64(info.Size) || need > int64(len(data)) {
		return nil, fmt.Errorf("bmp: %dx%d pixel array at offset %d: %w",
			width, height, offBits, raster.ErrInsufficientData)
	}

	color := raster.ColorTypeRgb
	outCh := 3
	if bitCount == 32 {
		color = raster.ColorTypeRgba
		outCh = 4
	}
	out := make([]byte, width*height*outCh)

	for y := 0; y < height; y++ {
		row := data[offBits+int64(y)*int64(stride):]
		oy := height - 1 - y
		if topDown {
			oy = y
		}
		o := oy * width * outCh

		switch bitCount {
		case 32:
			for x := 0; x < width; x++ {
				out[o] = row[x*4+2]
				out[o+1] = row[x*4+1]
				out[o+2] = row[x*4]
				out[o+3] = row[x*4+3]
				o += 4
			}
		case 24:
			for x := 0; x < width; x++ {
				out[o] = row[x*3+2]
				out[o+1] = row[x*3+1]
				out[o+2] = row[x*3]
				o += 3
			}
		case 8:
			for x := 0; x < width; x++ {
				idx := int(row[x])
				if idx >= len(palette) {
					return nil, paletteIndexError(offBits, y, stride, x, idx)
				}
				out[o], out[o+1], out[o+2] = palette[idx][0], palette[idx][1], palette[idx][2]
				o += 3
			}
		case 4:
			for x := 0; x < width; x++ {
				idx := int(row[x/2] >> (4 - x%2*4) & 0x0f)
				if idx >= len(palette) {
					return nil, paletteIndexError(offBits, y, stride, x/2, idx)
				}
				out[o], out[o+1], out[o+2] = palette[idx][0], palette[idx][1], palette[idx][2]
				o += 3
			}
		case 1:
			for x := 0; x < width; x++ {
				idx := int(row[x/8] >> (7 - x%8) & 1)
				if idx >= len(palette) {
					return nil, paletteIndexError(offBits, y, stride, x/8, idx)
				}
				out[o], out[o+1], out[o+2] = palette[idx][0], palette[idx][1], palette[idx][2]
				o += 3
			}
		}
	}

	return &raster.FrameData{
		Pix:      out,
		Width:    width,
		Height:   height,
		Color:    color,
		BitDepth: 8,
	}, nil
}

func paletteIndexError(offBits int64, y, stride, xByte, idx int) error {
	return &raster.CorruptError{
		Format: raster.FormatBMP,
		Offset: offBits + int64(y)*int64(stride) + int64(xByte),
		Detail: fmt.Sprintf("palette index %d out of range", idx),
	}
}

// Encode encodes a raw 8-bit frame as BMP. Grayscale frames get a
// 256-entry gray palette, rgb becomes 24-bit and rgba 32-bit BI_RGB
// with alpha in the fourth sample.
func Encode(frame *raster.FrameData) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.BitDepth != 8 {
		return nil, &raster.PixelModelError{Format: raster.FormatBMP, Color: frame.Color, Depth: frame.BitDepth}
	}

	var bitCount, paletteSize int
	switch frame.Color {
	case raster.ColorTypeL:
		bitCount, paletteSize = 8, 256*4
	case raster.ColorTypeRgb:
		bitCount = 24
	case raster.ColorTypeRgba:
		bitCount = 32
	default:
		return nil, &raster.PixelModelError{Format: raster.FormatBMP, Color: frame.Color, Depth: frame.BitDepth}
	}

	stride := rowSize(frame.Width, bitCount)
	offBits := fileHeaderSize + infoHeaderSize + paletteSize
	fileSize := offBits + stride*frame.Height

	out := make([]byte, 0, fileSize)
	out = append(out, 'B', 'M')
	out = binary.LittleEndian.AppendUint32(out, uint32(fileSize))
	out = binary.LittleEndian.AppendUint32(out, 0) // reserved
	out = binary.LittleEndian.AppendUint32(out, uint32(offBits))

	out = binary.LittleEndian.AppendUint32(out, infoHeaderSize)
	out = binary.LittleEndian.AppendUint32(out, uint32(frame.Width))
	out = binary.LittleEndian.AppendUint32(out, uint32(frame.Height))
	out = binary.LittleEndian.AppendUint16(out, 1) // planes
	out = binary.LittleEndian.AppendUint16(out, uint16(bitCount))
	out = binary.LittleEndian.AppendUint32(out, biRGB)
	out = binary.LittleEndian.AppendUint32(out, uint32(stride*frame.Height))
	out = binary.LittleEndian.AppendUint32(out, 0) // x pixels per meter
	out = binary.LittleEndian.AppendUint32(out, 0) // y pixels per meter
	out = binary.LittleEndian.AppendUint32(out, 0) // colors used
	out = binary.LittleEndian.AppendUint32(out, 0) // colors important

	if paletteSize > 0 {
		for i := 0; i < 256; i++ {
			out = append(out, byte(i), byte(i), byte(i), 0)
		}
	}

	ch := frame.Color.Channels()
	pad := stride - frame.Width*ch
	if bitCount == 8 {
		pad = stride - frame.Width
	}
	for y := frame.Height - 1; y >= 0; y-- {
		row := frame.Pix[y*frame.Width*ch:]
		switch frame.Color {
		case raster.ColorTypeL:
			out = append(out, row[:frame.Width]...)
		case raster.ColorTypeRgb:
			for x := 0; x < frame.Width; x++ {
				out = append(out, row[x*3+2], row[x*3+1], row[x*3])
			}
		case raster.ColorTypeRgba:
			for x := 0; x < frame.Width; x++ {
				out = append(out, row[x*4+2], row[x*4+1], row[x*4], row[x*4+3])
			}
		}
		for i := 0; i < pad; i++ {
			out = append(out, 0)
		}
	}

	return out, nil
}

// Register registers the BMP codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatBMP,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: 0, Magic: []byte("BM")}},
	})
}

// init automatically registers the codec
func init() {
	Register()
}
