// Package gif implements the GIF format over the standard library
// codec.
//
// Animations decode to full composited frames with their timing and
// disposal metadata. Encoding quantizes each frame, keeping colors
// exact when a frame fits a 256-entry palette and dithering otherwise.
// The codec registers itself in the default registry on import.
package gif

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	stdgif "image/gif"
	"io"
	"strings"
	"time"

	"github.com/cocosip/go-raster/raster"
)

// Codec implements raster.SequenceCodec for GIF
type Codec struct{}

// Format returns raster.FormatGIF
func (Codec) Format() raster.Format { return raster.FormatGIF }

// Decode decodes the first frame of a GIF image
func (Codec) Decode(data []byte) (*raster.FrameData, error) {
	return Decode(data)
}

// Encode encodes a raw frame as a single-frame GIF
func (Codec) Encode(frame *raster.FrameData, opts *raster.EncodeOptions) ([]byte, error) {
	return Encode(frame, opts)
}

// CanEncode accepts every 8-bit layout; frames are quantized
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

// DecodeSequence decodes every frame
func (Codec) DecodeSequence(data []byte) (*raster.SequenceData, error) {
	return DecodeSequence(data)
}

// EncodeSequence encodes all frames with their timing metadata
func (Codec) EncodeSequence(seq *raster.SequenceData, opts *raster.EncodeOptions) ([]byte, error) {
	return EncodeSequence(seq, opts)
}

func mapError(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || strings.HasSuffix(err.Error(), io.ErrUnexpectedEOF.Error()) {
		return fmt.Errorf("gif: %w", raster.ErrInsufficientData)
	}
	return &raster.CorruptError{
		Format: raster.FormatGIF,
		Offset: -1,
		Detail: strings.TrimPrefix(err.Error(), "gif: "),
	}
}

// Decode decodes the first frame, composited onto the logical canvas
func Decode(data []byte) (*raster.FrameData, error) {
	seq, err := DecodeSequence(data)
	if err != nil {
		return nil, err
	}
	return &seq.Frames[0].FrameData, nil
}

// DecodeSequence decodes an animation into full rgba frames. Frames
// are composited the way a viewer plays them, honoring per-frame
// regions, transparency and disposal.
func DecodeSequence(data []byte) (*raster.SequenceData, error) {
	g, err := stdgif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, mapError(err)
	}
	if len(g.Image) == 0 {
		return nil, &raster.CorruptError{Format: raster.FormatGIF, Offset: -1, Detail: "no frames"}
	}

	width, height := g.Config.Width, g.Config.Height
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	seq := &raster.SequenceData{
		Frames: make([]raster.SequenceFrame, 0, len(g.Image)),
		Loop:   loopFromGIF(g.LoopCount),
	}

	for i, src := range g.Image {
		disposal := uint8(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var saved []byte
		if disposal == stdgif.DisposalPrevious {
			saved = append([]byte(nil), canvas.Pix...)
		}

		rect := src.Bounds().Intersect(canvas.Bounds())
		draw.Draw(canvas, rect, src, rect.Min, draw.Over)

		delay := time.Duration(0)
		if i < len(g.Delay) {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		seq.Frames = append(seq.Frames, raster.SequenceFrame{
			FrameData: raster.FrameData{
				Pix:      append([]byte(nil), canvas.Pix...),
				Width:    width,
				Height:   height,
				Color:    raster.ColorTypeRgba,
				BitDepth: 8,
			},
			Delay:    delay,
			Disposal: disposalFromGIF(disposal),
		})

		switch disposal {
		case stdgif.DisposalBackground:
			draw.Draw(canvas, rect, image.Transparent, image.Point{}, draw.Src)
		case stdgif.DisposalPrevious:
			copy(canvas.Pix, saved)
		}
	}
	return seq, nil
}

// Encode encodes a raw 8-bit frame as a single-frame GIF. The format
// has no tunables, so opts is unused.
func Encode(frame *raster.FrameData, _ *raster.EncodeOptions) ([]byte, error) {
	if err := validateFrame(frame); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := stdgif.Encode(&buf, quantize(frame), nil); err != nil {
		return nil, fmt.Errorf("gif: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeSequence encodes an animation. All frames must share the
// dimensions of the first.
func EncodeSequence(seq *raster.SequenceData, _ *raster.EncodeOptions) ([]byte, error) {
	if len(seq.Frames) == 0 {
		return nil, fmt.Errorf("gif: %w", raster.ErrEmptySequence)
	}
	first := &seq.Frames[0].FrameData

	g := &stdgif.GIF{LoopCount: loopToGIF(seq.Loop)}
	for i := range seq.Frames {
		f := &seq.Frames[i]
		if err := validateFrame(&f.FrameData); err != nil {
			return nil, err
		}
		if f.Width != first.Width || f.Height != first.Height {
			return nil, fmt.Errorf("gif: frame %d is %dx%d, want %dx%d: %w",
				i, f.Width, f.Height, first.Width, first.Height, raster.ErrDimensionMismatch)
		}
		g.Image = append(g.Image, quantize(&f.FrameData))
		g.Delay = append(g.Delay, int(f.Delay/(10*time.Millisecond)))
		g.Disposal = append(g.Disposal, disposalToGIF(f.Disposal))
	}

	var buf bytes.Buffer
	if err := stdgif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("gif: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func validateFrame(frame *raster.FrameData) error {
	if err := frame.Validate(); err != nil {
		return err
	}
	if frame.BitDepth != 8 {
		return &raster.PixelModelError{Format: raster.FormatGIF, Color: frame.Color, Depth: frame.BitDepth}
	}
	switch frame.Color {
	case raster.ColorTypeL, raster.ColorTypeLA, raster.ColorTypeRgb, raster.ColorTypeRgba:
		return nil
	}
	return &raster.PixelModelError{Format: raster.FormatGIF, Color: frame.Color, Depth: frame.BitDepth}
}

// The netscape loop extension counts restarts, not plays, and its
// absence means play once. LoopCount counts total plays with zero as
// forever, so the two shift by one.
func loopFromGIF(n int) raster.LoopCount {
	switch {
	case n == 0:
		return raster.LoopInfinite
	case n < 0:
		return raster.LoopCount(1)
	default:
		return raster.LoopCount(n + 1)
	}
}

func loopToGIF(loop raster.LoopCount) int {
	switch {
	case loop.Infinite():
		return 0
	case loop == 1:
		return -1
	default:
		return int(loop) - 1
	}
}

func disposalFromGIF(d uint8) raster.DisposalMethod {
	switch d {
	case stdgif.DisposalBackground:
		return raster.DisposalBackground
	case stdgif.DisposalPrevious:
		return raster.DisposalPrevious
	default:
		return raster.DisposalNone
	}
}

func disposalToGIF(d raster.DisposalMethod) byte {
	switch d {
	case raster.DisposalBackground:
		return stdgif.DisposalBackground
	case raster.DisposalPrevious:
		return stdgif.DisposalPrevious
	default:
		return stdgif.DisposalNone
	}
}

// Register registers the GIF codec in the default registry
func Register() {
	raster.Register(raster.Registration{
		Format:     raster.FormatGIF,
		Codec:      Codec{},
		Signatures: []raster.Signature{{Offset: 0, Magic: []byte("GIF8")}},
	})
}

// init automatically registers the codec
func init() {
	Register()
}
