package threshold

import (
	"context"
	"fmt"

	"lane-detector/internal/models"
	"lane-detector/internal/processing/chain"
	"lane-detector/internal/processing/histogram"
)

const (
	Black uint8 = 0
	White uint8 = 255

	// ParamThreshold overrides the computed threshold when set to a uint8
	ParamThreshold = "threshold"
)

// SelectThreshold returns the midpoint between the darkest and brightest
// sample, rounded down.
func SelectThreshold(img *models.ImageBuffer) (uint8, error) {
	hist, err := histogram.Compute(img)
	if err != nil {
		return 0, err
	}

	minVal, ok := hist.Min()
	if !ok {
		return 0, fmt.Errorf("%w: histogram has no populated levels", models.ErrEmptyImage)
	}
	maxVal, _ := hist.Max()

	return uint8((int(minVal) + int(maxVal)) / 2), nil
}

// Binarize maps samples strictly above t to White and everything else to Black
func Binarize(img *models.ImageBuffer, t uint8) (*models.ImageBuffer, error) {
	if img == nil || img.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to binarize", models.ErrEmptyImage)
	}

	dst, err := models.NewImageBuffer(img.Width(), img.Height())
	if err != nil {
		return nil, err
	}

	for y := 0; y < img.Height(); y++ {
		for x, v := range img.Row(y) {
			if v > t {
				dst.Set(x, y, White)
			}
		}
	}

	return dst, nil
}

// BinarizeStep selects a threshold for its input and binarizes it
type BinarizeStep struct{}

func NewBinarizeStep() *BinarizeStep {
	return &BinarizeStep{}
}

func (b *BinarizeStep) Name() string {
	return "binarize"
}

func (b *BinarizeStep) ShouldExecute(params map[string]interface{}) bool {
	return true
}

func (b *BinarizeStep) Apply(ctx context.Context, input *models.ImageBuffer, params map[string]interface{}) (*chain.StepResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	t, fixed := params[ParamThreshold].(uint8)
	if !fixed {
		var err error
		t, err = SelectThreshold(input)
		if err != nil {
			return nil, fmt.Errorf("threshold selection failed: %w", err)
		}
	}

	out, err := Binarize(input, t)
	if err != nil {
		return nil, err
	}

	return &chain.StepResult{
		Output: out,
		Values: map[string]interface{}{
			ParamThreshold: t,
			"fixed":        fixed,
		},
	}, nil
}
