package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// TestToNRGBA tests the packed layout of the stdlib copy
func TestToNRGBA(t *testing.T) {
	img := Must(FromPixels(2, []Rgba{
		NewRgba(1, 2, 3, 4), NewRgba(5, 6, 7, 8),
	}))

	out := img.ToNRGBA()
	if got := out.Bounds(); got.Dx() != 2 || got.Dy() != 1 {
		t.Fatalf("Bounds = %v, want 2x1", got)
	}
	want := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	for i, b := range want {
		if out.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, out.Pix[i], b)
		}
	}
}

// TestToImage tests the grayscale and truecolor output types
func TestToImage(t *testing.T) {
	gray := Must(FromPixels(2, []L{{10}, {200}}))
	if out, ok := gray.ToImage().(*image.Gray); !ok {
		t.Errorf("L image converted to %T, want *image.Gray", gray.ToImage())
	} else if out.Pix[0] != 10 || out.Pix[1] != 200 {
		t.Errorf("gray Pix = %v, want [10 200]", out.Pix)
	}

	bits := Must(FromPixels(2, []Bit{{On: true}, {On: false}}))
	if out, ok := bits.ToImage().(*image.Gray); !ok {
		t.Errorf("Bit image converted to %T, want *image.Gray", bits.ToImage())
	} else if out.Pix[0] != 255 || out.Pix[1] != 0 {
		t.Errorf("bit Pix = %v, want [255 0]", out.Pix)
	}

	rgb := Must(New(1, 1, NewRgb(9, 8, 7)))
	if _, ok := rgb.ToImage().(*image.NRGBA); !ok {
		t.Errorf("Rgb image converted to %T, want *image.NRGBA", rgb.ToImage())
	}
}

// TestFromImageNRGBA tests the non-premultiplied fast path
func TestFromImageNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	src.SetNRGBA(1, 1, color.NRGBA{R: 0, G: 255, B: 0, A: 255})

	img, err := FromImage[Rgba](src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got, _ := img.Pixel(0, 0); got != NewRgba(255, 0, 0, 128) {
		t.Errorf("pixel (0,0) = %+v, want {255 0 0 128}", got)
	}
	if got, _ := img.Pixel(1, 1); got != NewRgba(0, 255, 0, 255) {
		t.Errorf("pixel (1,1) = %+v, want {0 255 0 255}", got)
	}
	if got, _ := img.Pixel(1, 0); got != (Rgba{}) {
		t.Errorf("pixel (1,0) = %+v, want zero", got)
	}
}

// TestFromImageGray tests the grayscale fast path
func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 70})
	src.SetGray(1, 0, color.Gray{Y: 230})

	img, err := FromImage[L](src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got, _ := img.Pixel(0, 0); got != NewL(70) {
		t.Errorf("pixel (0,0) = %+v, want {70}", got)
	}
	if got, _ := img.Pixel(1, 0); got != NewL(230) {
		t.Errorf("pixel (1,0) = %+v, want {230}", got)
	}
}

// TestFromImageGeneric tests the conversion path for premultiplied sources
func TestFromImageGeneric(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	// Premultiplied half-transparent red
	src.SetRGBA(0, 0, color.RGBA{R: 128, G: 0, B: 0, A: 128})

	img, err := FromImage[Rgba](src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got, _ := img.Pixel(0, 0); got != NewRgba(255, 0, 0, 128) {
		t.Errorf("pixel = %+v, want un-premultiplied {255 0 0 128}", got)
	}
}

// TestFromImageDynamic tests that Dynamic pixels adopt the source model
func TestFromImageDynamic(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 99})

	img, err := FromImage[Dynamic](gray)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got, _ := img.Pixel(0, 0); got != DynamicL(99) {
		t.Errorf("pixel = %+v, want DynamicL(99)", got)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	img2, err := FromImage[Dynamic](nrgba)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got, _ := img2.Pixel(0, 0); got != DynamicRgba(1, 2, 3, 4) {
		t.Errorf("pixel = %+v, want DynamicRgba(1, 2, 3, 4)", got)
	}
}

// TestFromImageEmpty tests rejection of empty bounds
func TestFromImageEmpty(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := FromImage[Rgba](src); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("error = %v, want ErrInvalidDimensions", err)
	}
}

// TestStdRoundTrip tests Image -> stdlib -> Image preservation
func TestStdRoundTrip(t *testing.T) {
	src := Must(FromFn(3, 2, func(x, y int) Rgba {
		return NewRgba(uint8(x*40), uint8(y*90), uint8(x+y), uint8(255-x*20))
	}))

	back, err := FromImage[Rgba](src.ToNRGBA())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	for i, p := range back.Pixels() {
		if p != src.Pixels()[i] {
			t.Errorf("pixel %d = %+v, want %+v", i, p, src.Pixels()[i])
		}
	}
}
