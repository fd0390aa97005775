package raster

import "testing"

// TestPixelLayouts tests the layout metadata of every pixel representation
func TestPixelLayouts(t *testing.T) {
	t.Run("L", func(t *testing.T) {
		p := NewL(9)
		if p.ColorType() != ColorTypeL {
			t.Errorf("ColorType = %s, want %s", p.ColorType(), ColorTypeL)
		}
		if p.BitDepth() != 8 {
			t.Errorf("BitDepth = %d, want 8", p.BitDepth())
		}
		if a, ok := p.AlphaComponent(); a != 255 || ok {
			t.Errorf("AlphaComponent = (%d, %v), want (255, false)", a, ok)
		}
	})
	t.Run("LA", func(t *testing.T) {
		p := NewLA(9, 33)
		if p.ColorType() != ColorTypeLA {
			t.Errorf("ColorType = %s, want %s", p.ColorType(), ColorTypeLA)
		}
		if p.BitDepth() != 8 {
			t.Errorf("BitDepth = %d, want 8", p.BitDepth())
		}
		if a, ok := p.AlphaComponent(); a != 33 || !ok {
			t.Errorf("AlphaComponent = (%d, %v), want (33, true)", a, ok)
		}
	})
	t.Run("Rgb", func(t *testing.T) {
		p := NewRgb(1, 2, 3)
		if p.ColorType() != ColorTypeRgb {
			t.Errorf("ColorType = %s, want %s", p.ColorType(), ColorTypeRgb)
		}
		if a, ok := p.AlphaComponent(); a != 255 || ok {
			t.Errorf("AlphaComponent = (%d, %v), want (255, false)", a, ok)
		}
	})
	t.Run("Rgba", func(t *testing.T) {
		p := NewRgba(1, 2, 3, 4)
		if p.ColorType() != ColorTypeRgba {
			t.Errorf("ColorType = %s, want %s", p.ColorType(), ColorTypeRgba)
		}
		if a, ok := p.AlphaComponent(); a != 4 || !ok {
			t.Errorf("AlphaComponent = (%d, %v), want (4, true)", a, ok)
		}
	})
	t.Run("Bit", func(t *testing.T) {
		p := NewBit(true)
		if p.ColorType() != ColorTypeL {
			t.Errorf("ColorType = %s, want %s", p.ColorType(), ColorTypeL)
		}
		if p.BitDepth() != 1 {
			t.Errorf("BitDepth = %d, want 1", p.BitDepth())
		}
		if a, ok := p.AlphaComponent(); a != 255 || ok {
			t.Errorf("AlphaComponent = (%d, %v), want (255, false)", a, ok)
		}
	})
}

// TestLuminance tests the BT.601 weighting and the equal-channel shortcut
func TestLuminance(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"mid gray", 42, 42, 42, 42},
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 149},
		{"blue", 0, 0, 255, 29},
		{"yellow", 255, 255, 0, 225},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRgb(tt.r, tt.g, tt.b).Luminance(); got != tt.want {
				t.Errorf("Luminance(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}

	// Luminance ignores alpha
	if got := NewRgba(255, 0, 0, 0).Luminance(); got != 76 {
		t.Errorf("Rgba Luminance = %d, want 76", got)
	}
	if got := NewLA(200, 0).Luminance(); got != 200 {
		t.Errorf("LA Luminance = %d, want 200", got)
	}
}

// TestInverted tests channel inversion with alpha untouched
func TestInverted(t *testing.T) {
	if got := NewRgba(1, 2, 3, 40).Inverted(); got != NewRgba(254, 253, 252, 40) {
		t.Errorf("Rgba Inverted = %+v, want {254 253 252 40}", got)
	}
	if got := NewRgb(0, 128, 255).Inverted(); got != NewRgb(255, 127, 0) {
		t.Errorf("Rgb Inverted = %+v, want {255 127 0}", got)
	}
	if got := NewLA(10, 20).Inverted(); got != NewLA(245, 20) {
		t.Errorf("LA Inverted = %+v, want {245 20}", got)
	}
	if got := NewL(0).Inverted(); got != NewL(255) {
		t.Errorf("L Inverted = %+v, want {255}", got)
	}
}

// TestMapComponents tests per-channel mapping with alpha untouched
func TestMapComponents(t *testing.T) {
	half := func(v uint8) uint8 { return v / 2 }

	if got := NewRgba(10, 20, 30, 128).MapComponents(half); got != NewRgba(5, 10, 15, 128) {
		t.Errorf("Rgba MapComponents = %+v, want {5 10 15 128}", got)
	}
	if got := NewLA(100, 77).MapComponents(half); got != NewLA(50, 77) {
		t.Errorf("LA MapComponents = %+v, want {50 77}", got)
	}
	if got := NewRgb(8, 9, 10).MapComponents(half); got != NewRgb(4, 4, 5) {
		t.Errorf("Rgb MapComponents = %+v, want {4 4 5}", got)
	}
}

// TestRgbaBlend tests alpha compositing on truecolor pixels
func TestRgbaBlend(t *testing.T) {
	tests := []struct {
		name  string
		under Rgba
		top   Rgba
		want  Rgba
	}{
		{"opaque top replaces", NewRgba(1, 2, 3, 255), NewRgba(9, 8, 7, 255), NewRgba(9, 8, 7, 255)},
		{"transparent top keeps under", NewRgba(1, 2, 3, 200), NewRgba(9, 8, 7, 0), NewRgba(1, 2, 3, 200)},
		{"half red over opaque blue", NewRgba(0, 0, 255, 255), NewRgba(255, 0, 0, 128), NewRgba(128, 0, 127, 255)},
		{"half over transparent keeps top color", NewRgba(0, 0, 0, 0), NewRgba(10, 20, 30, 128), NewRgba(10, 20, 30, 128)},
		{"half over half accumulates alpha", NewRgba(0, 0, 0, 128), NewRgba(255, 255, 255, 128), NewRgba(170, 170, 170, 192)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.under.Blend(tt.top); got != tt.want {
				t.Errorf("Blend = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestLABlend tests alpha compositing on grayscale pixels
func TestLABlend(t *testing.T) {
	tests := []struct {
		name  string
		under LA
		top   LA
		want  LA
	}{
		{"opaque top replaces", NewLA(1, 255), NewLA(9, 255), NewLA(9, 255)},
		{"transparent top keeps under", NewLA(1, 200), NewLA(9, 0), NewLA(1, 200)},
		{"half over opaque", NewLA(200, 255), NewLA(100, 128), NewLA(150, 255)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.under.Blend(tt.top); got != tt.want {
				t.Errorf("Blend = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestOpaqueBlend tests that alpha-less pixels composite by replacement
func TestOpaqueBlend(t *testing.T) {
	if got := NewL(10).Blend(NewL(200)); got != NewL(200) {
		t.Errorf("L Blend = %+v, want {200}", got)
	}
	if got := NewRgb(1, 2, 3).Blend(NewRgb(7, 8, 9)); got != NewRgb(7, 8, 9) {
		t.Errorf("Rgb Blend = %+v, want {7 8 9}", got)
	}
	if got := NewBit(false).Blend(NewBit(true)); got != NewBit(true) {
		t.Errorf("Bit Blend = %+v, want {true}", got)
	}
}

// TestBit tests the 1-bit pixel's thresholding behavior
func TestBit(t *testing.T) {
	tests := []struct {
		name string
		c    Rgba
		want bool
	}{
		{"gray 127 is off", NewRgba(127, 127, 127, 255), false},
		{"gray 128 is on", NewRgba(128, 128, 128, 255), true},
		{"red is off", NewRgba(255, 0, 0, 255), false},
		{"light gray is on", NewRgba(200, 200, 200, 255), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Bit{}).FromRGBA(tt.c); got.On != tt.want {
				t.Errorf("FromRGBA(%+v).On = %v, want %v", tt.c, got.On, tt.want)
			}
		})
	}

	if got := NewBit(true).RGBA(); got != NewRgba(255, 255, 255, 255) {
		t.Errorf("on RGBA = %+v, want white", got)
	}
	if got := NewBit(false).RGBA(); got != NewRgba(0, 0, 0, 255) {
		t.Errorf("off RGBA = %+v, want black", got)
	}
	if got := NewBit(true).Inverted(); got.On {
		t.Error("Inverted did not flip the bit")
	}
	if got := NewBit(true).MapComponents(func(v uint8) uint8 { return ^v }); got.On {
		t.Error("MapComponents(invert) did not turn the bit off")
	}
}

// TestFromRGBA tests narrowing into each representation
func TestFromRGBA(t *testing.T) {
	c := NewRgba(255, 0, 0, 128)

	if got := (L{}).FromRGBA(c); got != NewL(76) {
		t.Errorf("L FromRGBA = %+v, want {76}", got)
	}
	if got := (LA{}).FromRGBA(c); got != NewLA(76, 128) {
		t.Errorf("LA FromRGBA = %+v, want {76 128}", got)
	}
	if got := (Rgb{}).FromRGBA(c); got != NewRgb(255, 0, 0) {
		t.Errorf("Rgb FromRGBA = %+v, want {255 0 0}", got)
	}
	if got := (Rgba{}).FromRGBA(c); got != c {
		t.Errorf("Rgba FromRGBA = %+v, want %+v", got, c)
	}
}

// TestConvertPixel tests conversion between representations through rgba
func TestConvertPixel(t *testing.T) {
	if got := ConvertPixel[L](NewRgb(255, 0, 0)); got != NewL(76) {
		t.Errorf("Rgb->L = %+v, want {76}", got)
	}
	if got := ConvertPixel[Rgba](NewL(42)); got != NewRgba(42, 42, 42, 255) {
		t.Errorf("L->Rgba = %+v, want {42 42 42 255}", got)
	}
	if got := ConvertPixel[LA](NewRgba(255, 0, 0, 128)); got != NewLA(76, 128) {
		t.Errorf("Rgba->LA = %+v, want {76 128}", got)
	}
	if got := ConvertPixel[Rgb](NewBit(true)); got != NewRgb(255, 255, 255) {
		t.Errorf("Bit->Rgb = %+v, want white", got)
	}
	if got := ConvertPixel[Bit](NewL(128)); !got.On {
		t.Error("L{128}->Bit is off, want on")
	}
	if got := ConvertPixel[Bit](NewL(127)); got.On {
		t.Error("L{127}->Bit is on, want off")
	}
}
