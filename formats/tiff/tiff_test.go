package tiff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cocosip/go-raster/raster"
)

// TestEncodeDecodeRoundTrip tests lossless round trips per layout
func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		color     raster.ColorType
		wantColor raster.ColorType
	}{
		{"gray", raster.ColorTypeL, raster.ColorTypeL},
		{"rgb widens to rgba", raster.ColorTypeRgb, raster.ColorTypeRgba},
		{"rgba", raster.ColorTypeRgba, raster.ColorTypeRgba},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height := 21, 13
			ch := tt.color.Channels()
			pix := make([]byte, width*height*ch)
			for i := range pix {
				pix[i] = byte(i * 5 % 256)
			}

			frame := &raster.FrameData{Pix: pix, Width: width, Height: height, Color: tt.color, BitDepth: 8}
			encoded, err := Encode(frame)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Width != width || decoded.Height != height {
				t.Errorf("dimension mismatch: got %dx%d, want %dx%d",
					decoded.Width, decoded.Height, width, height)
			}
			if decoded.Color != tt.wantColor {
				t.Errorf("color mismatch: got %s, want %s", decoded.Color, tt.wantColor)
			}

			want := pix
			if tt.color == raster.ColorTypeRgb {
				want = make([]byte, 0, width*height*4)
				for i := 0; i < width*height; i++ {
					want = append(want, pix[i*3], pix[i*3+1], pix[i*3+2], 255)
				}
			}
			if !bytes.Equal(decoded.Pix, want) {
				t.Error("round trip is not lossless")
			}
		})
	}
}

// TestDecodeErrors tests error mapping for malformed input
func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte("definitely not a tiff")); !errors.Is(err, raster.ErrCorruptData) {
		t.Errorf("garbage error = %v, want %v", err, raster.ErrCorruptData)
	}
	if _, err := Decode(nil); err == nil {
		t.Error("empty input accepted")
	}
}

// TestSniffExcludesCR2 tests that Canon raw files are left undetected
func TestSniffExcludesCR2(t *testing.T) {
	cr2 := []byte{'I', 'I', 0x2a, 0x00, 0x10, 0x00, 0x00, 0x00, 'C', 'R', 0x02, 0x00}
	if sniff(cr2) {
		t.Error("CR2 header accepted")
	}
	plain := []byte{'I', 'I', 0x2a, 0x00, 0x08, 0x00, 0x00, 0x00, 0x05, 0x00}
	if !sniff(plain) {
		t.Error("plain TIFF header rejected")
	}
	if !sniff([]byte{'M', 'M', 0x00, 0x2a}) {
		t.Error("short probe rejected")
	}
}

// TestEncodeRejectsBadDepth tests encoder-side validation
func TestEncodeRejectsBadDepth(t *testing.T) {
	frame := &raster.FrameData{
		Pix:      make([]byte, 2*2*3*2),
		Width:    2,
		Height:   2,
		Color:    raster.ColorTypeRgb,
		BitDepth: 16,
	}
	if _, err := Encode(frame); !errors.Is(err, raster.ErrUnsupportedPixelModel) {
		t.Errorf("error = %v, want %v", err, raster.ErrUnsupportedPixelModel)
	}
}
