// Package imop implements the small pixel operations that surround the seam solver:
// float to 8-bit format adaptation, global thresholding,
// box-filter downscaling and upscaling by a factor of two.
//
// Every function takes its input read-only and returns a freshly allocated image.
package imop

import (
	"errors"
	"math"
)

var (
	// ErrBadFactor is returned when a scale factor is smaller than one.
	ErrBadFactor = errors.New("imop: scale factor must be at least 1")

	// ErrTooSmall is returned when the image is smaller than the scale factor.
	ErrTooSmall = errors.New("imop: image is smaller than the scale factor")

	// ErrBadShape is returned when a float pixel array is empty, ragged or has less than 3 channels.
	ErrBadShape = errors.New("imop: pixel array must be rectangular with at least 3 channels")
)

// Adapt rounds v to the nearest integer and clips it to the 0-255 range.
func Adapt(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
