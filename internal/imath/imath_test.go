package imath

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  int
		want       int
	}{
		{"below range", -5, 0, 10, 0},
		{"above range", 15, 0, 10, 10},
		{"inside range", 7, 0, 10, 7},
		{"at lower bound", 0, 0, 10, 0},
		{"at upper bound", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	if got := Abs(-3); got != 3 {
		t.Errorf("Abs(-3) = %d, want 3", got)
	}
	if got := Abs(3); got != 3 {
		t.Errorf("Abs(3) = %d, want 3", got)
	}
	if got := Abs(-2.5); got != 2.5 {
		t.Errorf("Abs(-2.5) = %v, want 2.5", got)
	}
}

func TestClampToByte(t *testing.T) {
	tests := []struct {
		name string
		v    float32
		want uint8
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"mid", 127.9, 127},
		{"max", 255, 255},
		{"overflow", 300, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampToByte(tt.v); got != tt.want {
				t.Errorf("ClampToByte(%v) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}
