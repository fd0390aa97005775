// Package imath provides small generic numeric helpers shared by the
// pixel, drawing and filtering code.
package imath

import "golang.org/x/exp/constraints"

// Clamp restricts v to the range [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns the absolute value of v
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// ClampToByte converts a float value to uint8, clamping to [0, 255]
func ClampToByte[T constraints.Float](v T) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
