package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lane-detector/internal/models"
	"lane-detector/internal/opencv/conversion"
	"lane-detector/internal/opencv/safe"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// CheckExists reports ErrFileNotFound for a missing path or a directory
func CheckExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", models.ErrFileNotFound, path)
	}
	return nil
}

// OpenCVLoader decodes with OpenCV directly into a single-channel Mat
type OpenCVLoader struct {
	logger Logger
}

func NewOpenCVLoader(log Logger) *OpenCVLoader {
	return &OpenCVLoader{logger: log}
}

func (l *OpenCVLoader) Name() string {
	return "opencv"
}

func (l *OpenCVLoader) Load(ctx context.Context, path string) (*models.ImageBuffer, error) {
	if err := CheckExists(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path":      path,
		"extension": strings.ToLower(filepath.Ext(path)),
		"decoder":   l.Name(),
	})

	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to decode image with OpenCV: %s", path)
	}

	safeMat, err := safe.NewMatFromMat(mat, "loaded_image")
	if err != nil {
		return nil, fmt.Errorf("failed to create safe Mat: %w", err)
	}
	defer safeMat.Close()

	return conversion.MatToBuffer(safeMat)
}

// StdLoader decodes with the Go image packages, without cgo
type StdLoader struct {
	logger Logger
}

func NewStdLoader(log Logger) *StdLoader {
	return &StdLoader{logger: log}
}

func (l *StdLoader) Name() string {
	return "stdlib"
}

func (l *StdLoader) Load(ctx context.Context, path string) (*models.ImageBuffer, error) {
	if err := CheckExists(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with standard library: %w", err)
	}

	l.logger.Debug("ImageLoader", "image decoded", map[string]interface{}{
		"path":    path,
		"format":  format,
		"decoder": l.Name(),
	})

	return models.FromImage(img)
}
