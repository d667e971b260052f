package pipeline

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lane-detector/internal/models"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageSaver encodes stage outputs to image files
type ImageSaver struct {
	logger Logger
}

func NewImageSaver(log Logger) *ImageSaver {
	return &ImageSaver{logger: log}
}

// FormatFromPath picks an encoder from the file extension, PNG by default
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}

func (s *ImageSaver) SaveToWriter(writer io.Writer, buf *models.ImageBuffer, format string) error {
	if buf == nil {
		return fmt.Errorf("%w: no image data to save", models.ErrEmptyImage)
	}

	img := buf.ToGray()

	s.logger.Debug("ImageSaver", "saving image", map[string]interface{}{
		"format": format,
		"width":  buf.Width(),
		"height": buf.Height(),
	})

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	case "bmp":
		err = bmp.Encode(writer, img)
	case "tiff":
		err = tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	case "png", "":
		err = png.Encode(writer, img)
	default:
		s.logger.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": strings.ToUpper(format),
		})
		err = png.Encode(writer, img)
	}

	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": format,
		})
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	return nil
}

func (s *ImageSaver) SaveToPath(path string, buf *models.ImageBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := s.SaveToWriter(f, buf, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path": path,
	})
	return nil
}
