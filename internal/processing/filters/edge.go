package filters

import (
	"context"
	"fmt"
	"math"

	"lane-detector/internal/models"
	"lane-detector/internal/processing/chain"
)

// Kernel is a 3x3 convolution kernel indexed [row][column]
type Kernel [3][3]int32

var (
	KernelX = Kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	KernelY = Kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// DetectEdges computes the Sobel gradient magnitude of img. Border pixels are
// left at zero and the magnitude is truncated and clamped to 255.
func DetectEdges(img *models.ImageBuffer) (*models.ImageBuffer, error) {
	if img == nil || img.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to filter", models.ErrEmptyImage)
	}

	width, height := img.Width(), img.Height()
	dst, err := models.NewImageBuffer(width, height)
	if err != nil {
		return nil, err
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx, gy := convolve(img, x, y)
			dst.Set(x, y, magnitude(gx, gy))
		}
	}

	return dst, nil
}

func convolve(img *models.ImageBuffer, x, y int) (gx, gy int32) {
	for j := 0; j < 3; j++ {
		row := img.Row(y + j - 1)
		for i := 0; i < 3; i++ {
			v := int32(row[x+i-1])
			gx += KernelX[j][i] * v
			gy += KernelY[j][i] * v
		}
	}
	return gx, gy
}

func magnitude(gx, gy int32) uint8 {
	sq := int64(gx)*int64(gx) + int64(gy)*int64(gy)
	m := int64(math.Sqrt(float64(sq)))
	if m > 255 {
		return 255
	}
	return uint8(m)
}

// EdgeStep runs DetectEdges
type EdgeStep struct{}

func NewEdgeStep() *EdgeStep {
	return &EdgeStep{}
}

func (e *EdgeStep) Name() string {
	return "edges"
}

func (e *EdgeStep) ShouldExecute(params map[string]interface{}) bool {
	return true
}

func (e *EdgeStep) Apply(ctx context.Context, input *models.ImageBuffer, params map[string]interface{}) (*chain.StepResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out, err := DetectEdges(input)
	if err != nil {
		return nil, err
	}

	return &chain.StepResult{Output: out}, nil
}
