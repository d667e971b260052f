package histogram

import (
	"fmt"

	"lane-detector/internal/models"
)

const Bins = 256

// Histogram counts samples per intensity level
type Histogram [Bins]int

// Compute builds the intensity histogram of img
func Compute(img *models.ImageBuffer) (Histogram, error) {
	var h Histogram
	if img == nil || img.Len() == 0 {
		return h, fmt.Errorf("%w: no samples to count", models.ErrEmptyImage)
	}

	for y := 0; y < img.Height(); y++ {
		for _, v := range img.Row(y) {
			h[v]++
		}
	}
	return h, nil
}

// Total returns the number of counted samples
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Min returns the lowest populated level, ok is false for an empty histogram
func (h *Histogram) Min() (level uint8, ok bool) {
	for i := 0; i < Bins; i++ {
		if h[i] > 0 {
			return uint8(i), true
		}
	}
	return 0, false
}

// Max returns the highest populated level, ok is false for an empty histogram
func (h *Histogram) Max() (level uint8, ok bool) {
	for i := Bins - 1; i >= 0; i-- {
		if h[i] > 0 {
			return uint8(i), true
		}
	}
	return 0, false
}
