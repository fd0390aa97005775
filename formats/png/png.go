// Package png implements the PNG format with a hand-rolled chunk
// layer over compress/zlib.
//
// Decoding accepts non-interlaced 8-bit images in every color type,
// expanding palettes to rgb or rgba. Adam7 interlace, 16-bit samples
// and color-key transparency are reported as unsupported features.
// Encoding writes non-interlaced 8-bit files with adaptive per-row
// filtering. The codec registers itself in the default registry on
// import.
package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cocosip/go-raster/raster"
)

// Magic is the 8-byte PNG signature
const Magic = "\x89PNG\r\n\x1a\n"

// Color types from the PNG standard
const (
	ctGray      = 0
	ctRGB       = 2
	ctPalette   = 3
	ctGrayAlpha = 4
	ctRGBA      = 6
)

// maxPixels caps decoded image size
const maxPixels = 1 << 27

// header is the parsed IHDR payload
type header struct {
	width     int
	height    int
	bitDepth  uint8
	colorType uint8
}

func validDepth(ct, depth uint8) bool {
	switch ct {
	case ctGray:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8 || depth == 16
	case ctRGB, ctGrayAlpha, ctRGBA:
		return depth == 8 || depth == 16
	case ctPalette:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8
	}
	return false
}

func channelCount(ct uint8) int {
	switch ct {
	case ctGray, ctPalette:
		return 1
	case ctGrayAlpha:
		return 2
	case ctRGB:
		return 3
	default:
		return 4
	}
}

// Codec implements raster.Codec for PNG
type Codec struct{}

// Format returns raster.FormatPNG
func (Codec) Format() raster.Format { return raster.FormatPNG }

// Decode decodes a PNG image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode encodes a raw frame as PNG
func (Codec) Encode(frame *raster.FrameData, opts *raster.EncodeOptions) ([]byte, error) {
	return Encode(frame, opts)
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

func parseHeader(c chunk) (header, error) {
	h := header{
		width:     int(int32(binary.BigEndian.Uint32(c.data[0:4]))),
		height:    int(int32(binary.BigEndian.Uint32(c.data[4:8]))),
		bitDepth:  c.data[8],
		colorType: c.data[9],
	}
	if h.width <= 0 || h.height <= 0 {
		return h, &raster.CorruptError{
			Format: raster.FormatPNG,
			Offset: c.offset + 8,
			Detail: fmt.Sprintf("dimensions %dx%d", h.width, h.height),
		}
	}
	if uint64(h.width)*uint64(h.height) > maxPixels {
		return h, &raster.CorruptError{
			Format: raster.FormatPNG,
			Offset: c.offset + 8,
			Detail: fmt.Sprintf("%dx%d exceeds the pixel limit", h.width, h.height),
		}
	}
	if c.data[10] != 0 {
		return h, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset + 18, Detail: "compression method"}
	}
	if c.data[11] != 0 {
		return h, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset + 19, Detail: "filter method"}
	}
	switch c.data[12] {
	case 0:
	case 1:
		return h, &raster.FeatureError{Format: raster.FormatPNG, Feature: "adam7 interlace"}
	default:
		return h, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset + 20, Detail: "interlace method"}
	}
	if !validDepth(h.colorType, h.bitDepth) {
		return h, &raster.CorruptError{
			Format: raster.FormatPNG,
			Offset: c.offset + 16,
			Detail: fmt.Sprintf("color type %d with bit depth %d", h.colorType, h.bitDepth),
		}
	}
	if h.bitDepth != 8 {
		return h, &raster.FeatureError{
			Format:  raster.FormatPNG,
			Feature: fmt.Sprintf("%d-bit samples", h.bitDepth),
		}
	}
	return h, nil
}

// Decode decodes a PNG image into a raw frame, expanding palettes
func Decode(data []byte) (*raster.FrameData, error) {
	if len(data) < len(Magic) {
		return nil, fmt.Errorf("png: signature: %w", raster.ErrInsufficientData)
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: 0, Detail: "bad signature"}
	}
	r := &chunkReader{data: data, pos: len(Magic)}

	c, err := r.next()
	if err != nil {
		return nil, err
	}
	if c.typ != "IHDR" || len(c.data) != 13 {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "missing IHDR"}
	}
	hdr, err := parseHeader(c)
	if err != nil {
		return nil, err
	}

	var (
		palette  [][3]uint8
		trns     []uint8
		idat     []byte
		seenIDAT bool
	)
loop:
	for {
		c, err = r.next()
		if err != nil {
			return nil, err
		}
		switch c.typ {
		case "IHDR":
			return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "duplicate IHDR"}
		case "PLTE":
			if palette != nil || seenIDAT {
				return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "misplaced PLTE"}
			}
			if len(c.data) == 0 || len(c.data)%3 != 0 || len(c.data) > 256*3 {
				return nil, &raster.CorruptError{
					Format: raster.FormatPNG,
					Offset: c.offset,
					Detail: fmt.Sprintf("PLTE length %d", len(c.data)),
				}
			}
			palette = make([][3]uint8, len(c.data)/3)
			for i := range palette {
				palette[i] = [3]uint8{c.data[i*3], c.data[i*3+1], c.data[i*3+2]}
			}
		case "tRNS":
			switch hdr.colorType {
			case ctPalette:
				if palette == nil || len(c.data) > len(palette) {
					return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "misplaced tRNS"}
				}
				trns = append([]uint8(nil), c.data...)
			case ctGray, ctRGB:
				return nil, &raster.FeatureError{Format: raster.FormatPNG, Feature: "color-key transparency"}
			default:
				return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "tRNS with an alpha channel"}
			}
		case "IDAT":
			idat = append(idat, c.data...)
			seenIDAT = true
		case "acTL":
			return nil, &raster.FeatureError{Format: raster.FormatPNG, Feature: "animation"}
		case "IEND":
			break loop
		default:
			if !c.ancillary() {
				return nil, &raster.FeatureError{
					Format:  raster.FormatPNG,
					Feature: fmt.Sprintf("critical chunk %s", c.typ),
				}
			}
		}
	}

	if hdr.colorType == ctPalette && palette == nil {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "missing PLTE"}
	}
	if !seenIDAT {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: c.offset, Detail: "missing IDAT"}
	}

	channels := channelCount(hdr.colorType)
	stride := hdr.width * channels
	raw, err := inflate(idat, (stride+1)*hdr.height)
	if err != nil {
		return nil, err
	}

	prev := make([]byte, stride)
	for y := 0; y < hdr.height; y++ {
		row := raw[y*(stride+1):]
		if err := unfilterRow(row[0], row[1:stride+1], prev, channels); err != nil {
			return nil, err
		}
		prev = row[1 : stride+1]
	}

	if hdr.colorType == ctPalette {
		return expandPalette(hdr, raw, palette, trns)
	}

	out := make([]byte, stride*hdr.height)
	for y := 0; y < hdr.height; y++ {
		copy(out[y*stride:], raw[y*(stride+1)+1:][:stride])
	}
	var color raster.ColorType
	switch hdr.colorType {
	case ctGray:
		color = raster.ColorTypeL
	case ctGrayAlpha:
		color = raster.ColorTypeLA
	case ctRGB:
		color = raster.ColorTypeRgb
	default:
		color = raster.ColorTypeRgba
	}
	return &raster.FrameData{
		Pix:      out,
		Width:    hdr.width,
		Height:   hdr.height,
		Color:    color,
		BitDepth: 8,
	}, nil
}

// expandPalette widens index rows to rgb, or rgba when transparency
// entries are present
func expandPalette(hdr header, raw []byte, palette [][3]uint8, trns []uint8) (*raster.FrameData, error) {
	outCh := 3
	color := raster.ColorTypeRgb
	if len(trns) > 0 {
		outCh = 4
		color = raster.ColorTypeRgba
	}
	out := make([]byte, hdr.width*hdr.height*outCh)
	o := 0
	for y := 0; y < hdr.height; y++ {
		row := raw[y*(hdr.width+1)+1:][:hdr.width]
		for _, idx := range row {
			if int(idx) >= len(palette) {
				return nil, &raster.CorruptError{
					Format: raster.FormatPNG,
					Offset: -1,
					Detail: fmt.Sprintf("palette index %d out of range", idx),
				}
			}
			p := palette[idx]
			out[o], out[o+1], out[o+2] = p[0], p[1], p[2]
			if outCh == 4 {
				a := uint8(255)
				if int(idx) < len(trns) {
					a = trns[idx]
				}
				out[o+3] = a
			}
			o += outCh
		}
	}
	return &raster.FrameData{
		Pix:      out,
		Width:    hdr.width,
		Height:   hdr.height,
		Color:    color,
		BitDepth: 8,
	}, nil
}

// inflate decompresses the concatenated IDAT payload, which must hold
// exactly size bytes
func inflate(compressed []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: -1, Detail: "zlib: " + err.Error()}
	}
	defer zr.Close()
	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: -1, Detail: "pixel stream ends early"}
	}
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n != 0 {
		return nil, &raster.CorruptError{Format: raster.FormatPNG, Offset: -1, Detail: "pixel stream runs long"}
	}
	return out, nil
}

// Encode encodes a raw 8-bit frame as PNG. opts.CompressionLevel
// selects the deflate level, zero meaning the zlib default.
func Encode(frame *raster.FrameData, opts *raster.EncodeOptions) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.BitDepth != 8 {
		return nil, &raster.PixelModelError{Format: raster.FormatPNG, Color: frame.Color, Depth: frame.BitDepth}
	}
	var ct uint8
	switch frame.Color {
	case raster.ColorTypeL:
		ct = ctGray
	case raster.ColorTypeLA:
		ct = ctGrayAlpha
	case raster.ColorTypeRgb:
		ct = ctRGB
	case raster.ColorTypeRgba:
		ct = ctRGBA
	default:
		return nil, &raster.PixelModelError{Format: raster.FormatPNG, Color: frame.Color, Depth: frame.BitDepth}
	}
	level := zlib.DefaultCompression
	if opts != nil && opts.CompressionLevel != 0 {
		level = opts.CompressionLevel
	}

	out := append(make([]byte, 0, len(frame.Pix)/2+64), Magic...)
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(frame.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(frame.Height))
	ihdr[8] = 8
	ihdr[9] = ct
	out = appendChunk(out, "IHDR", ihdr)

	channels := frame.Color.Channels()
	stride := frame.Width * channels

	var zbuf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&zbuf, level)
	if err != nil {
		return nil, fmt.Errorf("png: compression level %d: %w", level, raster.ErrInvalidOptions)
	}
	scratch := make([][]byte, 5)
	for i := range scratch {
		scratch[i] = make([]byte, stride)
	}
	prev := make([]byte, stride)
	for y := 0; y < frame.Height; y++ {
		cur := frame.Pix[y*stride : (y+1)*stride]
		ft, row := chooseFilter(scratch, cur, prev, channels)
		zw.Write([]byte{ft})
		zw.Write(row)
		prev = cur
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("png: flush pixel stream: %w", err)
	}
	out = appendChunk(out, "IDAT", zbuf.Bytes())
	return appendChunk(out, "IEND", nil), nil
}

// Register registers the PNG codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatPNG,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: 0, Magic: []byte(Magic)}},
	})
}

// init automatically registers the codec
func init() {
	Register()
}
