package raster

import (
	"fmt"
	"io"
	"os"
)

// Decode detects the format of data and decodes it into an image of
// the requested pixel type, converting the decoded samples as needed.
// The matching codec package must be registered (usually by a blank
// import of formats/all or an individual format package).
func Decode[P Pixel[P]](data []byte) (*Image[P], error) {
	f := DetectFormat(data)
	if f == FormatUnknown {
		return nil, fmt.Errorf("detect format: %w", ErrUnknownFormat)
	}
	return DecodeFormat[P](data, f)
}

// DecodeFormat decodes data as the given format
func DecodeFormat[P Pixel[P]](data []byte, f Format) (*Image[P], error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	fd, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	img, err := imageFromFrame[P](fd, f)
	if err != nil {
		return nil, err
	}
	img.format = f
	return img, nil
}

// DecodeReader reads r to its end and decodes the contents
func DecodeReader[P Pixel[P]](r io.Reader) (*Image[P], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode[P](data)
}

// Open reads and decodes an image file, detecting the format from its
// contents rather than the file name
func Open[P Pixel[P]](path string) (*Image[P], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode[P](data)
}

// Encode encodes the image in the given format with default options
func Encode[P Pixel[P]](img *Image[P], f Format) ([]byte, error) {
	return EncodeWithOptions(img, f, nil)
}

// EncodeWithOptions encodes the image in the given format.
// The codec's ability to represent the image's pixel model is checked
// up front; an incapable codec yields a PixelModelError.
func EncodeWithOptions[P Pixel[P]](img *Image[P], f Format, opts *EncodeOptions) ([]byte, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
	}
	color, depth := encodeModel(img)
	if !c.CanEncode(color, depth) {
		return nil, &PixelModelError{Format: f, Color: color, Depth: depth}
	}
	return c.Encode(frameFromImage(img, color), opts)
}

// Save encodes the image in the format implied by the file extension
// and writes it to path
func Save[P Pixel[P]](img *Image[P], path string) error {
	f, err := FormatFromExtension(path)
	if err != nil {
		return err
	}
	data, err := Encode(img, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DecodeSequence decodes data into an animated sequence. Formats
// without animation support produce a single-frame sequence.
func DecodeSequence[P Pixel[P]](data []byte) (*ImageSequence[P], error) {
	f := DetectFormat(data)
	if f == FormatUnknown {
		return nil, fmt.Errorf("detect format: %w", ErrUnknownFormat)
	}
	c, err := Lookup(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}

	sc, ok := c.(SequenceCodec)
	if !ok {
		img, err := DecodeFormat[P](data, f)
		if err != nil {
			return nil, err
		}
		return NewSequence[P]().Append(NewFrame(img)), nil
	}

	sd, err := sc.DecodeSequence(data)
	if err != nil {
		return nil, err
	}
	seq := NewSequence[P]().WithLoop(sd.Loop)
	for i := range sd.Frames {
		sf := &sd.Frames[i]
		img, err := imageFromFrame[P](&sf.FrameData, f)
		if err != nil {
			return nil, err
		}
		img.format = f
		seq.Append(NewFrame(img).WithDelay(sf.Delay).WithDisposal(sf.Disposal))
	}
	return seq, nil
}

// EncodeSequence encodes an animated sequence in the given format.
// Single-frame sequences fall back to plain encoding for formats
// without animation support.
func EncodeSequence[P Pixel[P]](seq *ImageSequence[P], f Format, opts *EncodeOptions) ([]byte, error) {
	if seq.Len() == 0 {
		return nil, ErrEmptySequence
	}
	c, err := Lookup(f)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
	}

	first, _ := seq.First()
	color, depth := encodeModel(first.Image())
	if !c.CanEncode(color, depth) {
		return nil, &PixelModelError{Format: f, Color: color, Depth: depth}
	}

	sc, ok := c.(SequenceCodec)
	if !ok {
		if seq.Len() == 1 {
			return c.Encode(frameFromImage(first.Image(), color), opts)
		}
		return nil, &FeatureError{Format: f, Feature: "animation"}
	}

	sd := &SequenceData{Loop: seq.Loop(), Frames: make([]SequenceFrame, 0, seq.Len())}
	for _, fr := range seq.Frames() {
		sd.Frames = append(sd.Frames, SequenceFrame{
			FrameData: *frameFromImage(fr.Image(), color),
			Delay:     fr.Delay(),
			Disposal:  fr.Disposal(),
		})
	}
	return sc.EncodeSequence(sd, opts)
}

// encodeModel determines the sample layout an image encodes to.
// Dynamic images take the layout of their first pixel; 1-bit pixels
// normalize to 8-bit grayscale.
func encodeModel[P Pixel[P]](img *Image[P]) (ColorType, int) {
	var zero P
	color, depth := zero.ColorType(), zero.BitDepth()
	if color == ColorTypeDynamic {
		color = ColorTypeRgba
		if img.Len() > 0 {
			if ct := img.pix[0].ColorType(); ct != ColorTypeDynamic {
				color = ct
			}
		}
		depth = 8
	}
	if depth == 1 {
		color, depth = ColorTypeL, 8
	}
	return color, depth
}

// frameFromImage packs an image into a raw frame with the given layout
func frameFromImage[P Pixel[P]](img *Image[P], color ColorType) *FrameData {
	ch := color.Channels()
	pix := make([]byte, len(img.pix)*ch)
	i := 0
	for _, p := range img.pix {
		c := p.RGBA()
		switch color {
		case ColorTypeL:
			pix[i] = luma(c.R, c.G, c.B)
		case ColorTypeLA:
			pix[i] = luma(c.R, c.G, c.B)
			pix[i+1] = c.A
		case ColorTypeRgb:
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
		default:
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
		i += ch
	}
	return &FrameData{
		Pix:      pix,
		Width:    img.width,
		Height:   img.height,
		Color:    color,
		BitDepth: 8,
	}
}

// imageFromFrame unpacks a raw frame into an image of pixel type P.
// Decoding into Dynamic keeps the frame's color type as the pixel tag.
func imageFromFrame[P Pixel[P]](fd *FrameData, f Format) (*Image[P], error) {
	if err := checkDimensions(fd.Width, fd.Height); err != nil {
		return nil, err
	}
	if fd.BitDepth != 8 {
		return nil, &PixelModelError{Format: f, Color: fd.Color, Depth: fd.BitDepth}
	}
	switch fd.Color {
	case ColorTypeL, ColorTypeLA, ColorTypeRgb, ColorTypeRgba:
	default:
		// Codecs expand palettes before handing frames over
		return nil, &PixelModelError{Format: f, Color: fd.Color, Depth: fd.BitDepth}
	}
	ch := fd.Color.Channels()
	if need := fd.Width * fd.Height * ch; len(fd.Pix) != need {
		return nil, &CorruptError{
			Format: f,
			Offset: -1,
			Detail: fmt.Sprintf("decoded frame has %d bytes, want %d", len(fd.Pix), need),
		}
	}

	var zero P
	mk := zero.FromRGBA
	if _, ok := any(zero).(Dynamic); ok {
		ct := fd.Color
		mk = func(c Rgba) P {
			return any(dynamicFromRGBA(ct, c)).(P)
		}
	}

	pix := make([]P, fd.Width*fd.Height)
	for i := range pix {
		o := i * ch
		var c Rgba
		switch fd.Color {
		case ColorTypeL:
			v := fd.Pix[o]
			c = Rgba{R: v, G: v, B: v, A: 255}
		case ColorTypeLA:
			v := fd.Pix[o]
			c = Rgba{R: v, G: v, B: v, A: fd.Pix[o+1]}
		case ColorTypeRgb:
			c = Rgba{R: fd.Pix[o], G: fd.Pix[o+1], B: fd.Pix[o+2], A: 255}
		default:
			c = Rgba{R: fd.Pix[o], G: fd.Pix[o+1], B: fd.Pix[o+2], A: fd.Pix[o+3]}
		}
		pix[i] = mk(c)
	}
	return &Image[P]{width: fd.Width, height: fd.Height, pix: pix}, nil
}
