package filters

import (
	"context"
	"fmt"

	"lane-detector/internal/models"
	"lane-detector/internal/processing/chain"
)

const (
	ParamTargetWidth  = "target_width"
	ParamTargetHeight = "target_height"
)

// Resize scales img to targetWidth x targetHeight by nearest-neighbor
// sampling. Source indices are truncated, so upscaling repeats samples.
func Resize(img *models.ImageBuffer, targetWidth, targetHeight int) (*models.ImageBuffer, error) {
	if img == nil || img.Len() == 0 {
		return nil, fmt.Errorf("%w: resize source has no samples", models.ErrInvalidDimension)
	}
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("%w: resize target %dx%d", models.ErrInvalidDimension, targetWidth, targetHeight)
	}

	dst, err := models.NewImageBuffer(targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}

	srcW, srcH := img.Width(), img.Height()
	for y := 0; y < targetHeight; y++ {
		row := img.Row(y * srcH / targetHeight)
		for x := 0; x < targetWidth; x++ {
			dst.Set(x, y, row[x*srcW/targetWidth])
		}
	}

	return dst, nil
}

// ResizeStep runs Resize with the target taken from params
type ResizeStep struct{}

func NewResizeStep() *ResizeStep {
	return &ResizeStep{}
}

func (r *ResizeStep) Name() string {
	return "resize"
}

func (r *ResizeStep) ShouldExecute(params map[string]interface{}) bool {
	_, hasW := params[ParamTargetWidth].(int)
	_, hasH := params[ParamTargetHeight].(int)
	return hasW && hasH
}

func (r *ResizeStep) Apply(ctx context.Context, input *models.ImageBuffer, params map[string]interface{}) (*chain.StepResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	width, _ := params[ParamTargetWidth].(int)
	height, _ := params[ParamTargetHeight].(int)

	out, err := Resize(input, width, height)
	if err != nil {
		return nil, err
	}

	return &chain.StepResult{
		Output: out,
		Values: map[string]interface{}{
			"source_width":  input.Width(),
			"source_height": input.Height(),
		},
	}, nil
}
