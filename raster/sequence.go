package raster

import "time"

// DisposalMethod says what happens to the canvas after a frame is shown
type DisposalMethod uint8

const (
	// DisposalNone leaves the frame in place
	DisposalNone DisposalMethod = iota

	// DisposalBackground clears the frame area to the background
	DisposalBackground

	// DisposalPrevious restores what the frame covered
	DisposalPrevious
)

// String returns a human-readable name
func (d DisposalMethod) String() string {
	switch d {
	case DisposalBackground:
		return "background"
	case DisposalPrevious:
		return "previous"
	}
	return "none"
}

// LoopCount is the number of times an animation plays.
// The zero value loops forever.
type LoopCount int

// LoopInfinite plays the animation forever
const LoopInfinite LoopCount = 0

// LoopN plays the animation n times
func LoopN(n int) LoopCount { return LoopCount(n) }

// CountOrZero returns the play count, with 0 meaning infinite
func (l LoopCount) CountOrZero() int { return int(l) }

// Infinite reports whether the animation loops forever
func (l LoopCount) Infinite() bool { return l == LoopInfinite }

// Frame is a single image within a sequence, with its display duration
// and disposal behavior
type Frame[P Pixel[P]] struct {
	image    *Image[P]
	delay    time.Duration
	disposal DisposalMethod
}

// NewFrame wraps an image in a frame with zero delay and no disposal
func NewFrame[P Pixel[P]](img *Image[P]) Frame[P] {
	return Frame[P]{image: img}
}

// WithDelay sets the display duration and returns the frame
func (f Frame[P]) WithDelay(d time.Duration) Frame[P] {
	f.delay = d
	return f
}

// WithDisposal sets the disposal method and returns the frame
func (f Frame[P]) WithDisposal(m DisposalMethod) Frame[P] {
	f.disposal = m
	return f
}

// Image returns the frame's image
func (f Frame[P]) Image() *Image[P] { return f.image }

// Delay returns the display duration
func (f Frame[P]) Delay() time.Duration { return f.delay }

// Disposal returns the disposal method
func (f Frame[P]) Disposal() DisposalMethod { return f.disposal }

// ImageSequence is an ordered list of frames plus a loop count,
// the in-memory form of an animated image
type ImageSequence[P Pixel[P]] struct {
	frames []Frame[P]
	loop   LoopCount
}

// NewSequence creates an empty sequence that loops forever
func NewSequence[P Pixel[P]]() *ImageSequence[P] {
	return &ImageSequence[P]{}
}

// Append adds a frame and returns the sequence
func (s *ImageSequence[P]) Append(f Frame[P]) *ImageSequence[P] {
	s.frames = append(s.frames, f)
	return s
}

// Len returns the number of frames
func (s *ImageSequence[P]) Len() int { return len(s.frames) }

// Frames returns the backing frame slice
func (s *ImageSequence[P]) Frames() []Frame[P] { return s.frames }

// First returns the first frame
func (s *ImageSequence[P]) First() (Frame[P], bool) {
	if len(s.frames) == 0 {
		return Frame[P]{}, false
	}
	return s.frames[0], true
}

// Loop returns the loop count
func (s *ImageSequence[P]) Loop() LoopCount { return s.loop }

// WithLoop sets the loop count and returns the sequence
func (s *ImageSequence[P]) WithLoop(l LoopCount) *ImageSequence[P] {
	s.loop = l
	return s
}
