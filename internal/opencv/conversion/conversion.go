package conversion

import (
	"fmt"

	"lane-detector/internal/models"
	"lane-detector/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ConvertToGrayscale converts BGR or BGRA input to a single-channel Mat.
// Single-channel input is cloned.
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if err := src.Validate("grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	srcMat := src.GetMat()
	_, _, channels := src.Shape()

	var code gocv.ColorConversionCode
	switch channels {
	case 1:
		return safe.NewMatFromMat(srcMat.Clone(), src.Tag()+"_gray")
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	dst := gocv.NewMat()
	gocv.CvtColor(srcMat, &dst, code)
	return safe.NewMatFromMat(dst, src.Tag()+"_gray")
}

// MatToBuffer copies an 8-bit Mat into an ImageBuffer, converting color
// input to luminance first.
func MatToBuffer(src *safe.Mat) (*models.ImageBuffer, error) {
	if err := src.Validate("Mat to buffer conversion"); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmptyImage, err)
	}

	gray := src
	if _, _, channels := src.Shape(); channels != 1 {
		converted, err := ConvertToGrayscale(src)
		if err != nil {
			return nil, err
		}
		defer converted.Close()
		gray = converted
	}

	if gray.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unsupported Mat type %v, want 8-bit single channel", gray.Type())
	}

	data, err := gray.Bytes()
	if err != nil {
		return nil, fmt.Errorf("pixel access failed: %w", err)
	}

	rows, cols, _ := gray.Shape()
	return models.NewImageBufferFromSamples(cols, rows, data)
}
