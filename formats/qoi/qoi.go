// Package qoi implements the QOI (Quite OK Image) format.
//
// QOI is a single-frame lossless format with 8-bit rgb/rgba payloads.
// The codec registers itself in the default registry on import.
package qoi

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-raster/raster"
)

// Magic is the QOI file signature
const Magic = "qoif"

const (
	headerSize = 14

	opIndex = 0x00 // 00xxxxxx
	opDiff  = 0x40 // 01xxxxxx
	opLuma  = 0x80 // 10xxxxxx
	opRun   = 0xc0 // 11xxxxxx
	opRgb   = 0xfe
	opRgba  = 0xff

	mask2 = 0xc0

	maxRun = 62

	// maxPixels caps decoded image size; one stream byte covers at most
	// maxRun pixels, so the length check below bounds allocations too
	maxPixels = 400_000_000
)

var endMarker = []byte{0, 0, 0, 0, 0, 0, 0, 1}

type pixel struct {
	r, g, b, a uint8
}

func hash(p pixel) int {
	return int(3*p.r+5*p.g+7*p.b+11*p.a) % 64
}

// Codec implements raster.Codec for QOI
type Codec struct{}

// Format returns raster.FormatQOI
func (Codec) Format() raster.Format { return raster.FormatQOI }

// Decode decodes a QOI image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode encodes a raw frame as QOI. The format is lossless and has no
// tunables, so opts is unused.
func (Codec) Encode(frame *raster.FrameData, _ *raster.EncodeOptions) ([]byte, error) {
	return Encode(frame)
}

// CanEncode accepts any 8-bit layout; grayscale is widened to rgb
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

// Decode decodes a QOI image into a raw rgb or rgba frame
func Decode(data []byte) (*raster.FrameData, error) {
	if len(data) < headerSize+len(endMarker) {
		return nil, fmt.Errorf("qoi: header: %w", raster.ErrInsufficientData)
	}
	if string(data[:4]) != Magic {
		return nil, &raster.CorruptError{Format: raster.FormatQOI, Offset: 0, Detail: "bad magic"}
	}

	width := binary.BigEndian.Uint32(data[4:8])
	height := binary.BigEndian.Uint32(data[8:12])
	channels := data[12]
	colorspace := data[13]

	if channels != 3 && channels != 4 {
		return nil, &raster.CorruptError{
			Format: raster.FormatQOI,
			Offset: 12,
			Detail: fmt.Sprintf("channels %d (want 3 or 4)", channels),
		}
	}
	if colorspace > 1 {
		return nil, &raster.CorruptError{
			Format: raster.FormatQOI,
			Offset: 13,
			Detail: fmt.Sprintf("colorspace %d (want 0 or 1)", colorspace),
		}
	}
	pixels := uint64(width) * uint64(height)
	if pixels == 0 {
		return nil, &raster.CorruptError{Format: raster.FormatQOI, Offset: 4, Detail: "zero dimensions"}
	}
	if pixels > maxPixels {
		return nil, &raster.CorruptError{
			Format: raster.FormatQOI,
			Offset: 4,
			Detail: fmt.Sprintf("%dx%d exceeds the pixel limit", width, height),
		}
	}

	// A stream byte decodes to at most maxRun pixels. Declared
	// dimensions beyond that bound cannot be satisfied, so reject them
	// before allocating the output.
	stream := data[headerSize : len(data)-len(endMarker)]
	if pixels > uint64(len(stream))*maxRun {
		return nil, fmt.Errorf("qoi: %dx%d pixels from %d stream bytes: %w",
			width, height, len(stream), raster.ErrInsufficientData)
	}

	outCh := int(channels)
	color := raster.ColorTypeRgb
	if channels == 4 {
		color = raster.ColorTypeRgba
	}
	out := make([]byte, int(pixels)*outCh)

	var index [64]pixel
	px := pixel{a: 255}
	n := int(pixels)
	streamEnd := len(data) - len(endMarker)

	write := func(i int, p pixel) {
		o := i * outCh
		out[o] = p.r
		out[o+1] = p.g
		out[o+2] = p.b
		if outCh == 4 {
			out[o+3] = p.a
		}
	}

	p := headerSize
	for i := 0; i < n; {
		if p >= streamEnd {
			return nil, fmt.Errorf("qoi: pixel stream truncated at offset %d: %w", p, raster.ErrInsufficientData)
		}
		b1 := data[p]
		p++

		switch {
		case b1 == opRgb:
			if p+3 > streamEnd {
				return nil, fmt.Errorf("qoi: rgb chunk truncated at offset %d: %w", p-1, raster.ErrInsufficientData)
			}
			px.r, px.g, px.b = data[p], data[p+1], data[p+2]
			p += 3
		case b1 == opRgba:
			if p+4 > streamEnd {
				return nil, fmt.Errorf("qoi: rgba chunk truncated at offset %d: %w", p-1, raster.ErrInsufficientData)
			}
			px.r, px.g, px.b, px.a = data[p], data[p+1], data[p+2], data[p+3]
			p += 4
		case b1&mask2 == opIndex:
			px = index[b1&0x3f]
		case b1&mask2 == opDiff:
			px.r += b1>>4&0x03 - 2
			px.g += b1>>2&0x03 - 2
			px.b += b1&0x03 - 2
		case b1&mask2 == opLuma:
			if p >= streamEnd {
				return nil, fmt.Errorf("qoi: luma chunk truncated at offset %d: %w", p-1, raster.ErrInsufficientData)
			}
			b2 := data[p]
			p++
			dg := b1&0x3f - 32
			px.r += dg + b2>>4&0x0f - 8
			px.g += dg
			px.b += dg + b2&0x0f - 8
		default: // opRun
			run := int(b1&0x3f) + 1
			if i+run > n {
				return nil, &raster.CorruptError{
					Format: raster.FormatQOI,
					Offset: int64(p - 1),
					Detail: "run crosses the image end",
				}
			}
			for j := 0; j < run; j++ {
				write(i+j, px)
			}
			i += run
			continue
		}

		index[hash(px)] = px
		write(i, px)
		i++
	}

	if p != streamEnd {
		return nil, &raster.CorruptError{
			Format: raster.FormatQOI,
			Offset: int64(p),
			Detail: "trailing data after the last pixel",
		}
	}
	if !bytes.Equal(data[streamEnd:], endMarker) {
		return nil, &raster.CorruptError{
			Format: raster.FormatQOI,
			Offset: int64(streamEnd),
			Detail: "missing end marker",
		}
	}

	return &raster.FrameData{
		Pix:      out,
		Width:    int(width),
		Height:   int(height),
		Color:    color,
		BitDepth: 8,
	}, nil
}

// Encode encodes a raw 8-bit frame as QOI. Grayscale layouts are
// widened to rgb, keeping alpha when present.
func Encode(frame *raster.FrameData) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.BitDepth != 8 {
		return nil, &raster.PixelModelError{Format: raster.FormatQOI, Color: frame.Color, Depth: frame.BitDepth}
	}

	srcCh := frame.Color.Channels()
	channels := uint8(3)
	if frame.Color.HasAlpha() {
		channels = 4
	}

	n := frame.Width * frame.Height
	out := make([]byte, 0, headerSize+n*int(channels)+n/maxRun+len(endMarker))
	out = append(out, Magic...)
	out = binary.BigEndian.AppendUint32(out, uint32(frame.Width))
	out = binary.BigEndian.AppendUint32(out, uint32(frame.Height))
	out = append(out, channels, 0)

	var index [64]pixel
	prev := pixel{a: 255}
	run := 0

	for i := 0; i < n; i++ {
		px := readPixel(frame.Pix[i*srcCh:], frame.Color)

		if px == prev {
			run++
			if run == maxRun {
				out = append(out, opRun|byte(run-1))
				run = 0
			}
			continue
		}
		if run > 0 {
			out = append(out, opRun|byte(run-1))
			run = 0
		}

		h := hash(px)
		switch {
		case index[h] == px:
			out = append(out, opIndex|byte(h))
		case px.a != prev.a:
			out = append(out, opRgba, px.r, px.g, px.b, px.a)
		default:
			dr := int8(px.r - prev.r)
			dg := int8(px.g - prev.g)
			db := int8(px.b - prev.b)
			drg := dr - dg
			dbg := db - dg

			switch {
			case dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1:
				out = append(out, opDiff|byte(dr+2)<<4|byte(dg+2)<<2|byte(db+2))
			case dg >= -32 && dg <= 31 && drg >= -8 && drg <= 7 && dbg >= -8 && dbg <= 7:
				out = append(out, opLuma|byte(dg+32), byte(drg+8)<<4|byte(dbg+8))
			default:
				out = append(out, opRgb, px.r, px.g, px.b)
			}
		}
		index[h] = px
		prev = px
	}
	if run > 0 {
		out = append(out, opRun|byte(run-1))
	}

	return append(out, endMarker...), nil
}

// readPixel widens one packed pixel to rgba
func readPixel(s []byte, color raster.ColorType) pixel {
	switch color {
	case raster.ColorTypeL:
		return pixel{r: s[0], g: s[0], b: s[0], a: 255}
	case raster.ColorTypeLA:
		return pixel{r: s[0], g: s[0], b: s[0], a: s[1]}
	case raster.ColorTypeRgb:
		return pixel{r: s[0], g: s[1], b: s[2], a: 255}
	default:
		return pixel{r: s[0], g: s[1], b: s[2], a: s[3]}
	}
}

// Register registers the QOI codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatQOI,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: 0, Magic: []byte(Magic)}},
	})
}

// init automatically registers the codec
func init() {
	Register()
}
